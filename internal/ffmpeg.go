package internal

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// AudioExtractor produces a mono 16 kHz WAV from a video file, the input
// format whisper expects.
type AudioExtractor interface {
	Extract(ctx context.Context, videoPath, audioPath string) error
}

// FFmpegExtractor extracts audio using the ffmpeg binary.
type FFmpegExtractor struct {
	cmdRunner CommandRunner
	verbose   bool
}

// NewFFmpegExtractor creates an ffmpeg-backed audio extractor.
func NewFFmpegExtractor(cmdRunner CommandRunner, verbose bool) *FFmpegExtractor {
	return &FFmpegExtractor{
		cmdRunner: cmdRunner,
		verbose:   verbose,
	}
}

// Extract converts the video's audio track to 16-bit PCM, 16 kHz, mono.
func (f *FFmpegExtractor) Extract(ctx context.Context, videoPath, audioPath string) error {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return fmt.Errorf("%w: ffmpeg not found in PATH", ErrMissingDependency)
	}

	if f.verbose {
		fmt.Printf("Extracting audio from %s\n", videoPath)
	}

	output, err := f.cmdRunner.Run(ctx, "ffmpeg",
		"-y",
		"-i", videoPath,
		"-vn",
		"-acodec", "pcm_s16le",
		"-ar", "16000",
		"-ac", "1",
		audioPath)

	if err != nil {
		return fmt.Errorf("%w: %s: %v\n%s", ErrExtractionFailed, videoPath, err, string(output))
	}

	return nil
}

// Duration returns an audio file's duration in seconds via ffprobe.
func (f *FFmpegExtractor) Duration(ctx context.Context, audioFile string) (float64, error) {
	if _, err := exec.LookPath("ffprobe"); err != nil {
		return 0, fmt.Errorf("%w: ffprobe not found in PATH", ErrMissingDependency)
	}

	output, err := f.cmdRunner.Run(ctx, "ffprobe",
		"-i", audioFile,
		"-show_entries", "format=duration",
		"-v", "quiet",
		"-of", "csv=p=0")

	if err != nil {
		return 0, fmt.Errorf("ffprobe failed: %w\nOutput: %s", err, string(output))
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(string(output)), 64)
	if err != nil {
		return 0, fmt.Errorf("parsing duration: %w", err)
	}

	return duration, nil
}
