package internal

import (
	"context"
	"fmt"

	"github.com/gofrs/flock"
)

// Stage names, in pipeline order. Each stage produces one cached artifact.
const (
	StageDownload       = "Download"
	StageExtractAudio   = "ExtractAudio"
	StageTranscribe     = "Transcribe"
	StageGenerateReport = "GenerateReport"
)

// ReportGenerator is the capability a provider exposes to the pipeline.
type ReportGenerator interface {
	Generate(ctx context.Context, transcript *Transcript, lang string) (*Report, error)
}

// RunOptions controls a single pipeline run.
type RunOptions struct {
	Provider Provider
	// Lang overrides the report language; empty means use the
	// transcript's detected language.
	Lang string
	// Force ignores cached artifacts and re-runs every stage.
	Force bool
}

// RunResult is the outcome of a completed pipeline run.
type RunResult struct {
	Report     *Report
	ReportPath string
	Transcript *Transcript
	CacheDir   string
}

// Pipeline runs the fixed stage sequence Download -> ExtractAudio ->
// Transcribe -> GenerateReport against the cache. Strictly sequential:
// each stage completes before the next begins, and the first failure
// aborts the run with the stage name attached.
type Pipeline struct {
	cache       *Cache
	downloader  VideoDownloader
	extractor   AudioExtractor
	transcriber Transcriber
	generator   ReportGenerator
	ui          UIManager
}

// NewPipeline assembles a pipeline from its stage runners.
func NewPipeline(cache *Cache, downloader VideoDownloader, extractor AudioExtractor, transcriber Transcriber, generator ReportGenerator, ui UIManager) *Pipeline {
	return &Pipeline{
		cache:       cache,
		downloader:  downloader,
		extractor:   extractor,
		transcriber: transcriber,
		generator:   generator,
		ui:          ui,
	}
}

// Run executes all four stages for the URL and returns the report.
func (p *Pipeline) Run(ctx context.Context, url string, opts RunOptions) (*RunResult, error) {
	dir, lock, err := p.acquire(url)
	if err != nil {
		return nil, &StageError{Stage: StageDownload, Err: err}
	}
	defer func() { _ = lock.Unlock() }()

	transcript, err := p.runTranscribeStages(ctx, url, dir, opts.Force)
	if err != nil {
		return nil, err
	}

	lang := opts.Lang
	if lang == "" {
		lang = transcript.Language
	}

	reportPath := p.cache.ReportPath(dir, opts.Provider, lang)
	var report *Report
	if !opts.Force && ArtifactExists(reportPath) {
		report, err = LoadReport(reportPath)
		if err != nil {
			return nil, &StageError{Stage: StageGenerateReport, Err: err}
		}
		p.ui.Printf("✓ Report generated (%s) (cached)\n", opts.Provider)
	} else {
		spinner := p.ui.NewSpinner(fmt.Sprintf("Generating %s report with %s...", lang, opts.Provider))
		report, err = p.generator.Generate(ctx, transcript, lang)
		spinner.Finish()
		if err != nil {
			return nil, &StageError{Stage: StageGenerateReport, Err: err}
		}
		if err := SaveReport(report, reportPath); err != nil {
			return nil, &StageError{Stage: StageGenerateReport, Err: err}
		}
		p.ui.Printf("✓ Report generated (%s)\n", opts.Provider)
	}

	return &RunResult{
		Report:     report,
		ReportPath: reportPath,
		Transcript: transcript,
		CacheDir:   dir,
	}, nil
}

// Transcript executes the pipeline only through the Transcribe stage.
func (p *Pipeline) Transcript(ctx context.Context, url string, force bool) (*Transcript, error) {
	dir, lock, err := p.acquire(url)
	if err != nil {
		return nil, &StageError{Stage: StageDownload, Err: err}
	}
	defer func() { _ = lock.Unlock() }()

	return p.runTranscribeStages(ctx, url, dir, force)
}

// acquire resolves the cache directory for the URL and locks it for the
// duration of the run.
func (p *Pipeline) acquire(url string) (string, *flock.Flock, error) {
	dir, err := p.cache.EnsureDir(url)
	if err != nil {
		return "", nil, err
	}
	lock, err := p.cache.Lock(dir)
	if err != nil {
		return "", nil, err
	}
	return dir, lock, nil
}

// runTranscribeStages runs the first three stages and returns the parsed
// transcript. The caller holds the cache directory lock.
func (p *Pipeline) runTranscribeStages(ctx context.Context, url, dir string, force bool) (*Transcript, error) {
	// Stage: Download
	var video string
	if !force {
		video = p.cache.FindVideo(dir)
	}
	if video != "" {
		p.ui.Printf("✓ Downloaded (cached)\n")
	} else {
		spinner := p.ui.NewSpinner("Downloading video...")
		downloaded, err := p.downloader.Download(ctx, url, dir)
		spinner.Finish()
		if err != nil {
			return nil, &StageError{Stage: StageDownload, Err: err}
		}
		video = downloaded
		p.ui.Printf("✓ Downloaded\n")
	}

	// Stage: ExtractAudio
	audio := p.cache.AudioPath(dir)
	if !force && ArtifactExists(audio) {
		p.ui.Printf("✓ Audio extracted (cached)\n")
	} else {
		spinner := p.ui.NewSpinner("Extracting audio...")
		err := p.extractor.Extract(ctx, video, audio)
		spinner.Finish()
		if err != nil {
			return nil, &StageError{Stage: StageExtractAudio, Err: err}
		}
		p.ui.Printf("✓ Audio extracted\n")
	}

	// Stage: Transcribe
	transcriptPath := p.cache.TranscriptPath(dir)
	var transcript *Transcript
	if !force && ArtifactExists(transcriptPath) {
		loaded, err := LoadTranscript(transcriptPath)
		if err != nil {
			return nil, &StageError{Stage: StageTranscribe, Err: err}
		}
		transcript = loaded
		p.ui.Printf("✓ Transcribed: %.1f min, %s (cached)\n", transcript.Duration()/60, transcript.Language)
	} else {
		spinner := p.ui.NewSpinner("Transcribing with Whisper...")
		produced, err := p.transcriber.Transcribe(ctx, audio, transcriptPath)
		spinner.Finish()
		if err != nil {
			return nil, &StageError{Stage: StageTranscribe, Err: err}
		}
		transcript = produced
		p.ui.Printf("✓ Transcribed: %.1f min, %s detected\n", transcript.Duration()/60, transcript.Language)
	}

	return transcript, nil
}
