package internal

import (
	"context"
	"fmt"
)

// App holds the application state and dependencies
type App struct {
	pipeline *Pipeline
	config   *Config
	ui       UIManager
}

// NewApp initializes the application for the selected provider
func NewApp(config *Config, provider Provider, options ...AppOption) *App {
	cmdRunner := &DefaultCommandRunner{}
	ui := NewUIManager(config.Verbose, config.Quiet)

	cache := NewCache(config.CacheDir)
	promptManager := NewPromptManager(config.ConfigDir, config.Prompt)

	downloader := NewYtDlpDownloader(config.Verbose)
	extractor := NewFFmpegExtractor(cmdRunner, config.Verbose)
	transcriber := NewWhisperTranscriber(cmdRunner, config.WhisperModel, config.Verbose)
	generator := NewGenerator(provider, nil, promptManager, config.ReportTimeout, config.Verbose)

	app := &App{
		pipeline: NewPipeline(cache, downloader, extractor, transcriber, generator, ui),
		config:   config,
		ui:       ui,
	}

	// Apply any custom options
	for _, option := range options {
		option(app)
	}

	return app
}

// AppOption customizes App creation
type AppOption func(*App)

// WithPipeline sets a custom pipeline (used by tests)
func WithPipeline(pipeline *Pipeline) AppOption {
	return func(a *App) {
		a.pipeline = pipeline
	}
}

// Analyze runs the full pipeline for a URL and returns the result.
func (app *App) Analyze(ctx context.Context, url string, opts RunOptions) (*RunResult, error) {
	if err := EnsureDirs(app.config.CacheDir); err != nil {
		return nil, fmt.Errorf("%w: creating cache root: %v", ErrCacheIO, err)
	}
	return app.pipeline.Run(ctx, url, opts)
}

// Transcript runs the pipeline through the Transcribe stage only.
func (app *App) Transcript(ctx context.Context, url string, force bool) (*Transcript, error) {
	if err := EnsureDirs(app.config.CacheDir); err != nil {
		return nil, fmt.Errorf("%w: creating cache root: %v", ErrCacheIO, err)
	}
	return app.pipeline.Transcript(ctx, url, force)
}
