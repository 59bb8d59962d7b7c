package internal

import (
	"context"
	"embed"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/lrstanley/go-ytdlp"
	"github.com/spf13/viper"
)

// CommandRunner executes external commands
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// DefaultCommandRunner implements CommandRunner
type DefaultCommandRunner struct{}

func (r *DefaultCommandRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	return cmd.CombinedOutput()
}

// Config holds application settings
type Config struct {
	// User configurable settings
	Provider      string
	Lang          string
	WhisperModel  string
	ReportTimeout time.Duration
	Prompt        string
	Verbose       bool
	Quiet         bool
	MCPLog        bool

	// Fixed XDG paths (not configurable except cache_dir)
	ConfigDir string
	CacheDir  string
}

//go:embed config.toml report_prompt.txt
var defaultFS embed.FS

// ensureDefaultFile checks if a file exists in the specified directory
// and creates it from the embedded default if it doesn't exist
func ensureDefaultFile(configDir, embedFilename, description string) error {
	filePath := filepath.Join(configDir, embedFilename)

	if FileExists(filePath) {
		return nil
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	defaultContent, err := defaultFS.ReadFile(embedFilename)
	if err != nil {
		return fmt.Errorf("reading embedded default %s: %w", description, err)
	}

	if err := os.WriteFile(filePath, defaultContent, 0644); err != nil {
		return fmt.Errorf("writing default %s: %w", description, err)
	}

	fmt.Printf("Created default %s at %s\n", description, filePath)
	return nil
}

// EnsureDefaultConfig checks if a config file exists in the XDG config directory
// and creates it from the embedded default if it doesn't exist
func EnsureDefaultConfig(configDir string) error {
	return ensureDefaultFile(configDir, "config.toml", "configuration")
}

// EnsureDefaultPrompt checks if a report_prompt.txt file exists in the XDG
// config directory and creates it from the embedded default if it doesn't exist
func EnsureDefaultPrompt(configDir string) error {
	return ensureDefaultFile(configDir, "report_prompt.txt", "report prompt template")
}

// InstallYtDlp makes sure a yt-dlp binary is available, downloading one
// into the cache if the system has none.
func InstallYtDlp(ctx context.Context) {
	ytdlp.MustInstall(ctx, nil)
}

// InitConfig initializes Viper and loads configuration
func InitConfig() *Config {
	// XDG standard directories
	configDir := filepath.Join(xdg.ConfigHome, "vidbrief")
	cacheDir := filepath.Join(xdg.CacheHome, "vidbrief")

	v := viper.New()

	// Defaults for configurable settings
	v.SetDefault("provider", "grok")
	v.SetDefault("lang", "")
	v.SetDefault("whisper_model", "base")
	v.SetDefault("report_timeout", 2*time.Minute)
	v.SetDefault("cache_dir", cacheDir)
	v.SetDefault("prompt", "") // if empty will use default prompt template
	v.SetDefault("verbose", false)
	v.SetDefault("quiet", false)
	v.SetDefault("mcp_log", false)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	// Environment variables
	v.SetEnvPrefix("VIDBRIEF")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "Warning: Error reading config file: %v\n", err)
		}
	}

	config := &Config{
		Provider:      v.GetString("provider"),
		Lang:          v.GetString("lang"),
		WhisperModel:  v.GetString("whisper_model"),
		ReportTimeout: v.GetDuration("report_timeout"),
		Prompt:        v.GetString("prompt"),
		Verbose:       v.GetBool("verbose"),
		Quiet:         v.GetBool("quiet"),
		MCPLog:        v.GetBool("mcp_log"),

		ConfigDir: configDir,
		CacheDir:  v.GetString("cache_dir"),
	}

	if config.Verbose {
		fmt.Printf("Using config file: %s\n", v.ConfigFileUsed())
	}

	return config
}
