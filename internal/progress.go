package internal

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
)

// UIManager handles all user interface concerns (spinners, status, verbose output)
type UIManager interface {
	NewSpinner(description string) Spinner

	// Verbose output
	Verbose(format string, args ...any)

	// Status messages
	Printf(format string, args ...any)
	Println(args ...any)
}

// Spinner abstracts per-stage progress indication
type Spinner interface {
	Describe(description string)
	Finish()
}

// StandardUIManager handles normal UI operations
type StandardUIManager struct {
	verbose bool
	quiet   bool
	tty     bool
}

func NewUIManager(verbose, quiet bool) UIManager {
	return &StandardUIManager{
		verbose: verbose,
		quiet:   quiet,
		tty:     isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()),
	}
}

// NewSpinner creates a stage spinner; silent when quiet or not a terminal
func (ui *StandardUIManager) NewSpinner(description string) Spinner {
	if ui.quiet || !ui.tty {
		return &silentSpinner{}
	}

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionClearOnFinish(),
	)
	return &visibleSpinner{bar: bar}
}

// Verbose output
func (ui *StandardUIManager) Verbose(format string, args ...any) {
	if ui.verbose {
		fmt.Printf(format, args...)
	}
}

// Status messages
func (ui *StandardUIManager) Printf(format string, args ...any) {
	if !ui.quiet {
		fmt.Printf(format, args...)
	}
}

func (ui *StandardUIManager) Println(args ...any) {
	if !ui.quiet {
		fmt.Println(args...)
	}
}

// visibleSpinner wraps the actual progress bar
type visibleSpinner struct {
	bar *progressbar.ProgressBar
}

func (v *visibleSpinner) Describe(description string) {
	v.bar.Describe(description)
}

func (v *visibleSpinner) Finish() {
	_ = v.bar.Finish()
}

// silentSpinner is used in quiet or non-interactive mode
type silentSpinner struct{}

func (s *silentSpinner) Describe(string) {}
func (s *silentSpinner) Finish()         {}
