package internal

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

const wellFormedReport = `{
  "title": "Intro to Raft",
  "summary": "An overview of the Raft consensus algorithm.",
  "duration_minutes": 42,
  "language": "en",
  "difficulty": "Intermediate",
  "topics": ["consensus", "replication"],
  "key_takeaways": ["leaders drive replication", "terms order elections"],
  "chapters": [
    {"start_seconds": 0, "end_seconds": 300, "title": "Motivation", "summary": "Why consensus."},
    {"start_seconds": 300, "end_seconds": 900, "title": "Leader election", "summary": "Terms and votes."}
  ],
  "prerequisites": ["distributed systems basics"],
  "target_audience": "Backend engineers"
}`

func TestParseReportWellFormed(t *testing.T) {
	report, err := ParseReport(wellFormedReport)
	if err != nil {
		t.Fatalf("ParseReport: %v", err)
	}
	if report.Title != "Intro to Raft" {
		t.Fatalf("title = %q", report.Title)
	}
	if len(report.Chapters) != 2 {
		t.Fatalf("chapters = %d", len(report.Chapters))
	}
}

func TestParseReportStripsCodeFence(t *testing.T) {
	fenced := "```json\n" + wellFormedReport + "\n```"
	report, err := ParseReport(fenced)
	if err != nil {
		t.Fatalf("ParseReport with fence: %v", err)
	}
	if report.Language != "en" {
		t.Fatalf("language = %q", report.Language)
	}
}

func TestParseReportMalformed(t *testing.T) {
	cases := map[string]string{
		"not json":   "the video is about Raft",
		"truncated":  wellFormedReport[:50],
		"empty":      "",
		"plain list": `["a", "b"]`,
	}
	for name, content := range cases {
		if _, err := ParseReport(content); !errors.Is(err, ErrParse) {
			t.Fatalf("%s: error = %v, want ErrParse", name, err)
		}
	}
}

func TestParseReportRejectsInvariantViolations(t *testing.T) {
	overlapping := strings.Replace(wellFormedReport, `"start_seconds": 300`, `"start_seconds": 200`, 1)
	if _, err := ParseReport(overlapping); !errors.Is(err, ErrParse) {
		t.Fatalf("overlapping chapters accepted: %v", err)
	}

	negative := strings.Replace(wellFormedReport, `"duration_minutes": 42`, `"duration_minutes": -1`, 1)
	if _, err := ParseReport(negative); !errors.Is(err, ErrParse) {
		t.Fatalf("negative duration accepted: %v", err)
	}

	inverted := strings.Replace(wellFormedReport, `"end_seconds": 300`, `"end_seconds": -300`, 1)
	if _, err := ParseReport(inverted); !errors.Is(err, ErrParse) {
		t.Fatalf("negative chapter timestamp accepted: %v", err)
	}
}

func TestReportSaveLoadRoundTrip(t *testing.T) {
	report, err := ParseReport(wellFormedReport)
	if err != nil {
		t.Fatalf("ParseReport: %v", err)
	}

	path := filepath.Join(t.TempDir(), "report_grok_en.json")
	if err := SaveReport(report, path); err != nil {
		t.Fatalf("SaveReport: %v", err)
	}

	loaded, err := LoadReport(path)
	if err != nil {
		t.Fatalf("LoadReport: %v", err)
	}
	if loaded.Title != report.Title || len(loaded.Chapters) != len(report.Chapters) {
		t.Fatalf("round trip mismatch: %+v", loaded)
	}
}

func TestReportMarkdown(t *testing.T) {
	report, err := ParseReport(wellFormedReport)
	if err != nil {
		t.Fatalf("ParseReport: %v", err)
	}

	md := report.Markdown()
	for _, want := range []string{
		"# Intro to Raft",
		"## Summary",
		"## Topics Covered",
		"## Key Takeaways",
		"## Chapters",
		"[05:00–15:00] Leader election",
		"## Prerequisites",
		"## Target Audience",
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("markdown missing %q:\n%s", want, md)
		}
	}
}
