package internal

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

// PromptData is the template input for the report system prompt.
type PromptData struct {
	Lang string
}

// PromptManager loads and renders the report prompt template.
// The template lives in the config directory and can be overridden per
// invocation with either an inline string or a file path.
type PromptManager struct {
	promptFile   string
	promptString string
	configDir    string
}

// NewPromptManager creates a prompt manager. promptSetting may be empty
// (use the default template from the config directory), a file path, or
// an inline template string.
func NewPromptManager(configDir, promptSetting string) *PromptManager {
	pm := &PromptManager{configDir: configDir}

	if promptSetting != "" {
		if IsLikelyFilePath(promptSetting) && FileExists(promptSetting) {
			pm.promptFile = promptSetting
		} else {
			pm.promptString = promptSetting
		}
	}

	return pm
}

// SystemPrompt renders the system prompt instructing the provider to emit
// a strict-JSON report in the target language.
func (pm *PromptManager) SystemPrompt(lang string) (string, error) {
	var tmplContent string

	if pm.promptString != "" {
		tmplContent = pm.promptString
	} else {
		promptFile := pm.promptFile
		if promptFile == "" {
			promptFile = filepath.Join(pm.configDir, "report_prompt.txt")
		}
		content, err := os.ReadFile(promptFile)
		if err != nil {
			return "", fmt.Errorf("reading prompt template: %w", err)
		}
		tmplContent = string(content)
	}

	tmpl, err := template.New("prompt").Parse(tmplContent)
	if err != nil {
		return "", fmt.Errorf("parsing prompt template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, PromptData{Lang: lang}); err != nil {
		return "", fmt.Errorf("executing prompt template: %w", err)
	}

	return buf.String(), nil
}

// UserPrompt formats the transcript payload sent alongside the system prompt.
func (pm *PromptManager) UserPrompt(transcript *Transcript) string {
	return fmt.Sprintf("Analyze this video transcript (duration: %.1f minutes, language: %s):\n\n%s",
		transcript.Duration()/60, transcript.Language, transcript.FormatWithTimestamps())
}

// IsLikelyFilePath uses heuristics to decide if a string is a file path
// rather than an inline prompt template.
func IsLikelyFilePath(s string) bool {
	if strings.Contains(s, "/") || strings.Contains(s, "\\") {
		return true
	}

	if strings.Contains(s, ".txt") || strings.Contains(s, ".md") ||
		strings.Contains(s, ".template") || strings.Contains(s, ".tmpl") {
		return true
	}

	if len(s) > 200 {
		return false
	}

	return !strings.Contains(s, " ") && !strings.Contains(s, "\n")
}
