package internal

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure kinds the pipeline can surface.
// Stage code wraps the underlying cause with fmt.Errorf and one of these
// so callers can classify failures with errors.Is.
var (
	// ErrMissingDependency indicates an external tool (yt-dlp, ffmpeg, whisper) is not installed
	ErrMissingDependency = errors.New("missing external dependency")

	// ErrDownloadFailed indicates the video download stage failed
	ErrDownloadFailed = errors.New("video download failed")

	// ErrExtractionFailed indicates the audio extraction stage failed
	ErrExtractionFailed = errors.New("audio extraction failed")

	// ErrTranscriptionFailed indicates the transcription stage failed
	ErrTranscriptionFailed = errors.New("transcription failed")

	// ErrProvider indicates the remote AI call failed (network, auth, quota)
	ErrProvider = errors.New("provider request failed")

	// ErrParse indicates the provider response was not a well-formed report
	ErrParse = errors.New("malformed provider response")

	// ErrMissingCredential indicates no API key is set for the selected provider
	ErrMissingCredential = errors.New("missing API key")

	// ErrCacheIO indicates the cache directory could not be created or written
	ErrCacheIO = errors.New("cache I/O error")

	// ErrCacheBusy indicates another pipeline run holds the cache directory lock
	ErrCacheBusy = errors.New("cache directory locked by another run")
)

// StageError attaches the pipeline stage name to the underlying failure.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
