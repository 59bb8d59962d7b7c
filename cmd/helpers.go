package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vidbrief/vidbrief/internal"
)

// addPipelineFlags adds the flags shared by commands that run the pipeline.
func addPipelineFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("lang", "l", "", "Report language (e.g. \"en\", \"ru\"); defaults to the video's detected language")
	cmd.Flags().StringP("provider", "p", "", "AI provider: grok, openai, or gemini")
	cmd.Flags().BoolP("force", "f", false, "Ignore cached artifacts and re-run every stage")
	cmd.Flags().String("prompt", "", "Custom report prompt template (string or file path)")
}

// resolveRunOptions merges flags and config into pipeline run options.
func resolveRunOptions(cmd *cobra.Command, config *internal.Config) (internal.Provider, internal.RunOptions, error) {
	providerName, _ := cmd.Flags().GetString("provider")
	if providerName == "" {
		providerName = config.Provider
	}
	provider, err := internal.ParseProvider(providerName)
	if err != nil {
		return "", internal.RunOptions{}, err
	}

	lang, _ := cmd.Flags().GetString("lang")
	if lang == "" {
		lang = config.Lang
	}

	force, _ := cmd.Flags().GetBool("force")

	if prompt, _ := cmd.Flags().GetString("prompt"); prompt != "" {
		config.Prompt = prompt
	}

	return provider, internal.RunOptions{
		Provider: provider,
		Lang:     lang,
		Force:    force,
	}, nil
}

// handleOutputFlags propagates verbose/quiet flags into the config.
func handleOutputFlags(cmd *cobra.Command, config *internal.Config) error {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return fmt.Errorf("failed to get verbose flag: %w", err)
	}
	quiet, err := cmd.Flags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	config.Verbose = verbose
	config.Quiet = quiet
	return nil
}
