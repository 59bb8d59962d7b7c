package cmd

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/vidbrief/vidbrief/internal"
)

// cpCmd copies the report markdown to the system clipboard instead of printing it.
var cpCmd = &cobra.Command{
	Use:   "cp [URL]",
	Short: "Copy the video report to the clipboard",
	Example: `  # Copy the report as markdown
  vidbrief cp "https://www.youtube.com/watch?v=tAP1eZYEuKA"

  # Copy a report generated by OpenAI
  vidbrief cp "https://youtu.be/tAP1eZYEuKA" --provider openai`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		provider, opts, err := resolveRunOptions(cmd, config)
		if err != nil {
			return err
		}

		if _, err := provider.APIKey(); err != nil {
			return err
		}

		app := internal.NewApp(config, provider)
		result, err := app.Analyze(cmd.Context(), args[0], opts)
		if err != nil {
			return err
		}

		if err := clipboard.WriteAll(result.Report.Markdown()); err != nil {
			return fmt.Errorf("copying report to clipboard: %w", err)
		}

		if !config.Quiet {
			fmt.Println("Report copied to clipboard")
		}

		return nil
	},
}

func init() {
	addPipelineFlags(cpCmd)
	rootCmd.AddCommand(cpCmd)
}
