package internal

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Transcriber turns a cached audio artifact into a transcript artifact.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath, transcriptPath string) (*Transcript, error)
}

// WhisperTranscriber runs the local whisper CLI.
type WhisperTranscriber struct {
	cmdRunner CommandRunner
	model     string
	verbose   bool
}

// NewWhisperTranscriber creates a whisper-backed transcriber using the
// given model (e.g. "base").
func NewWhisperTranscriber(cmdRunner CommandRunner, model string, verbose bool) *WhisperTranscriber {
	return &WhisperTranscriber{
		cmdRunner: cmdRunner,
		model:     model,
		verbose:   verbose,
	}
}

// Transcribe runs whisper on the audio file and writes the JSON output to
// transcriptPath. Whisper names its output after the input file, so the
// result is renamed into place before parsing.
func (w *WhisperTranscriber) Transcribe(ctx context.Context, audioPath, transcriptPath string) (*Transcript, error) {
	if _, err := exec.LookPath("whisper"); err != nil {
		return nil, fmt.Errorf("%w: whisper not found in PATH", ErrMissingDependency)
	}

	if w.verbose {
		fmt.Printf("Transcribing %s with whisper (%s model)\n", audioPath, w.model)
	}

	outputDir := filepath.Dir(transcriptPath)

	output, err := w.cmdRunner.Run(ctx, "whisper",
		audioPath,
		"--model", w.model,
		"--output_format", "json",
		"--output_dir", outputDir)

	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v\n%s", ErrTranscriptionFailed, audioPath, err, string(output))
	}

	// whisper writes <audio basename>.json
	base := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	whisperOutput := filepath.Join(outputDir, base+".json")

	if whisperOutput != transcriptPath {
		if err := os.Rename(whisperOutput, transcriptPath); err != nil {
			return nil, fmt.Errorf("%w: renaming whisper output: %v", ErrTranscriptionFailed, err)
		}
	}

	transcript, err := LoadTranscript(transcriptPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTranscriptionFailed, err)
	}

	return transcript, nil
}
