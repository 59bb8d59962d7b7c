package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vidbrief/vidbrief/internal"
)

// transcribeCmd represents the transcribe command
var transcribeCmd = &cobra.Command{
	Use:   "transcribe [URL]",
	Short: "Download and transcribe a video (cached)",
	Example: `  # Print the transcript with timestamps
  vidbrief transcribe "https://www.youtube.com/watch?v=tAP1eZYEuKA"

  # Save transcript text to a file
  vidbrief transcribe "https://youtu.be/tAP1eZYEuKA" -o transcript.txt

  # Re-run the download and transcription stages
  vidbrief transcribe "https://youtu.be/tAP1eZYEuKA" --force`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// No provider involved: transcription is local
		app := internal.NewApp(config, internal.ProviderGrok)

		force, _ := cmd.Flags().GetBool("force")
		transcript, err := app.Transcript(cmd.Context(), args[0], force)
		if err != nil {
			return err
		}

		text := transcript.FormatWithTimestamps()

		// Handle output flag
		outputFile, _ := cmd.Flags().GetString("output")
		if outputFile != "" {
			return os.WriteFile(outputFile, []byte(text), 0644)
		}

		fmt.Println(text)
		return nil
	},
}

func init() {
	transcribeCmd.Flags().BoolP("force", "f", false, "Ignore cached artifacts and re-run every stage")
	transcribeCmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
	rootCmd.AddCommand(transcribeCmd)
}
