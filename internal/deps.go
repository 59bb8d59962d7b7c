package internal

import (
	"fmt"
	"os/exec"
)

// Requirement defines an external binary the pipeline relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// DepStatus reports the availability of a dependency.
type DepStatus struct {
	Requirement
	Available bool
	Detail    string
}

// Requirements lists the external tools the pipeline stages invoke.
func Requirements() []Requirement {
	return []Requirement{
		{Name: "yt-dlp", Command: "yt-dlp", Description: "video downloader (auto-installed if missing)", Optional: true},
		{Name: "ffmpeg", Command: "ffmpeg", Description: "audio extraction"},
		{Name: "ffprobe", Command: "ffprobe", Description: "media duration probing"},
		{Name: "whisper", Command: "whisper", Description: "speech-to-text engine"},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []DepStatus {
	results := make([]DepStatus, 0, len(requirements))
	for _, req := range requirements {
		status := DepStatus{Requirement: req}
		if _, err := exec.LookPath(req.Command); err != nil {
			status.Available = false
			status.Detail = fmt.Sprintf("binary %q not found", req.Command)
		} else {
			status.Available = true
		}
		results = append(results, status)
	}
	return results
}
