package internal

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Report is the terminal artifact of the pipeline: a structured analysis
// of the video generated by an AI provider.
type Report struct {
	Title           string    `json:"title"`
	Summary         string    `json:"summary"`
	DurationMinutes float64   `json:"duration_minutes"`
	Language        string    `json:"language"`
	Difficulty      string    `json:"difficulty"`
	Topics          []string  `json:"topics"`
	KeyTakeaways    []string  `json:"key_takeaways"`
	Chapters        []Chapter `json:"chapters"`
	Prerequisites   []string  `json:"prerequisites"`
	TargetAudience  string    `json:"target_audience"`
}

// Chapter is one logical section of the video.
type Chapter struct {
	StartSeconds float64 `json:"start_seconds"`
	EndSeconds   float64 `json:"end_seconds"`
	Title        string  `json:"title"`
	Summary      string  `json:"summary"`
}

// Validate checks the report invariants: non-negative numbers and
// chapters ordered by start time without overlaps.
func (r *Report) Validate() error {
	if r.DurationMinutes < 0 {
		return fmt.Errorf("negative duration_minutes: %g", r.DurationMinutes)
	}
	for i, ch := range r.Chapters {
		if ch.StartSeconds < 0 || ch.EndSeconds < 0 {
			return fmt.Errorf("chapter %d has negative timestamps", i+1)
		}
		if ch.EndSeconds < ch.StartSeconds {
			return fmt.Errorf("chapter %d ends before it starts", i+1)
		}
		if i > 0 && ch.StartSeconds < r.Chapters[i-1].EndSeconds {
			return fmt.Errorf("chapter %d overlaps chapter %d", i+1, i)
		}
	}
	return nil
}

// ParseReport parses a provider response into a Report. Providers are
// instructed to emit bare JSON but occasionally wrap it in a markdown
// code fence, so fences are stripped before decoding. Any malformed or
// invariant-violating response yields ErrParse, never a partial report.
func ParseReport(content string) (*Report, error) {
	content = stripCodeFence(content)

	var report Report
	if err := json.Unmarshal([]byte(content), &report); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if err := report.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return &report, nil
}

// stripCodeFence removes a surrounding ```json ... ``` fence if present.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// LoadReport reads a cached report artifact.
func LoadReport(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading report: %w", err)
	}
	var report Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return &report, nil
}

// SaveReport writes a report artifact as pretty-printed JSON.
func SaveReport(report *Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("%w: saving report: %v", ErrCacheIO, err)
	}
	return nil
}

// Markdown renders the report as human-readable markdown.
func (r *Report) Markdown() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# %s\n\n", r.Title))
	sb.WriteString(fmt.Sprintf("**Duration:** %.0f minutes | **Difficulty:** %s | **Language:** %s\n\n",
		r.DurationMinutes, r.Difficulty, r.Language))

	sb.WriteString("## Summary\n\n")
	sb.WriteString(r.Summary)
	sb.WriteString("\n\n")

	sb.WriteString("## Topics Covered\n\n")
	for _, topic := range r.Topics {
		sb.WriteString(fmt.Sprintf("- %s\n", topic))
	}
	sb.WriteString("\n")

	sb.WriteString("## Key Takeaways\n\n")
	for i, takeaway := range r.KeyTakeaways {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, takeaway))
	}
	sb.WriteString("\n")

	sb.WriteString("## Chapters\n\n")
	for _, ch := range r.Chapters {
		sb.WriteString(fmt.Sprintf("### [%s–%s] %s\n\n", FormatTimestamp(ch.StartSeconds), FormatTimestamp(ch.EndSeconds), ch.Title))
		sb.WriteString(fmt.Sprintf("%s\n\n", ch.Summary))
	}

	if len(r.Prerequisites) > 0 {
		sb.WriteString("## Prerequisites\n\n")
		for _, prereq := range r.Prerequisites {
			sb.WriteString(fmt.Sprintf("- %s\n", prereq))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Target Audience\n\n")
	sb.WriteString(r.TargetAudience)
	sb.WriteString("\n")

	return sb.String()
}
