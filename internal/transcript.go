package internal

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Transcript is the structured speech-to-text output produced by whisper.
type Transcript struct {
	Text     string    `json:"text"`
	Segments []Segment `json:"segments"`
	Language string    `json:"language"`
}

// Segment is one timed span of transcribed speech.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Duration returns the transcript length in seconds, taken from the final segment.
func (t *Transcript) Duration() float64 {
	if len(t.Segments) == 0 {
		return 0
	}
	return t.Segments[len(t.Segments)-1].End
}

// LoadTranscript reads a cached transcript artifact.
func LoadTranscript(path string) (*Transcript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading transcript: %w", err)
	}
	var transcript Transcript
	if err := json.Unmarshal(data, &transcript); err != nil {
		return nil, fmt.Errorf("parsing transcript: %w", err)
	}
	return &transcript, nil
}

// FormatTimestamp renders seconds as an MM:SS timestamp.
func FormatTimestamp(seconds float64) string {
	mins := int(seconds / 60)
	secs := int(seconds) % 60
	return fmt.Sprintf("%02d:%02d", mins, secs)
}

// FormatWithTimestamps renders the transcript as "[MM:SS] text" lines,
// the shape the report prompt feeds to the provider.
func (t *Transcript) FormatWithTimestamps() string {
	lines := make([]string, 0, len(t.Segments))
	for _, seg := range t.Segments {
		lines = append(lines, fmt.Sprintf("[%s] %s", FormatTimestamp(seg.Start), strings.TrimSpace(seg.Text)))
	}
	return strings.Join(lines, "\n")
}
