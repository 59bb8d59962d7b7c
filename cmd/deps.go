package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vidbrief/vidbrief/internal"
)

// depsCmd reports availability of the external tools the pipeline invokes.
var depsCmd = &cobra.Command{
	Use:   "deps",
	Short: "Check availability of external tools",
	Example: `  # Check yt-dlp, ffmpeg, ffprobe, and whisper
  vidbrief deps`,
	Run: func(cmd *cobra.Command, args []string) {
		for _, status := range internal.CheckBinaries(internal.Requirements()) {
			mark := "✓"
			if !status.Available {
				mark = "✗"
			}
			line := fmt.Sprintf("%s %s - %s", mark, status.Name, status.Description)
			if status.Detail != "" {
				line += fmt.Sprintf(" (%s)", status.Detail)
			}
			fmt.Println(line)
		}
	},
}

func init() {
	rootCmd.AddCommand(depsCmd)
}
