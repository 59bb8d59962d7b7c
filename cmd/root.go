package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vidbrief/vidbrief/internal"
)

var (
	config *internal.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "vidbrief [URL]",
	Short: "Video analyzer - download, transcribe, and generate AI reports",
	Long: `vidbrief downloads a video, transcribes its audio with Whisper,
and generates a structured AI report: title, summary, difficulty,
topics, key takeaways, chapters, prerequisites, and target audience.

Intermediate artifacts (video, audio, transcript, report) are cached
per URL, so repeated invocations skip completed stages.`,
	Example: `  # Analyze a video with the default provider (grok)
  vidbrief "https://www.youtube.com/watch?v=tAP1eZYEuKA"

  # Generate the report with OpenAI, in English
  vidbrief "https://youtu.be/tAP1eZYEuKA" --provider openai --lang en

  # Ignore cached artifacts and re-run every stage
  vidbrief "https://youtu.be/tAP1eZYEuKA" --force`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return handleOutputFlags(cmd, config)
	},
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		provider, opts, err := resolveRunOptions(cmd, config)
		if err != nil {
			return err
		}

		// Validate the credential before any stage runs
		if _, err := provider.APIKey(); err != nil {
			return err
		}

		app := internal.NewApp(config, provider)
		result, err := app.Analyze(cmd.Context(), args[0], opts)
		if err != nil {
			return err
		}

		if !config.Quiet {
			fmt.Printf("\nSaved: %s\n", result.ReportPath)
		}

		rendered, err := internal.RenderMarkdown(result.Report.Markdown())
		if err != nil {
			return fmt.Errorf("rendering report: %w", err)
		}
		fmt.Println(rendered)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	// Create a cancellable context for the entire application
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize configuration with Viper
	config = internal.InitConfig()

	// Ensure XDG directories exist
	if err := internal.EnsureDirs(config.ConfigDir, config.CacheDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating XDG directories: %v\n", err)
		os.Exit(1)
	}

	// Ensure default config and prompt template exist in XDG config directory
	if err := internal.EnsureDefaultConfig(config.ConfigDir); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to ensure default config: %v\n", err)
	}
	if err := internal.EnsureDefaultPrompt(config.ConfigDir); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to ensure default prompt: %v\n", err)
	}

	// Make sure a yt-dlp binary is available
	internal.InstallYtDlp(ctx)

	// Set up signal handling for graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Println("\nReceived interrupt signal, shutting down...")
		cancel()
		os.Exit(1)
	}()

	// Set context on root command
	rootCmd.SetContext(ctx)

	return rootCmd.Execute()
}

func init() {
	addPipelineFlags(rootCmd)
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for debugging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress status output")
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
}
