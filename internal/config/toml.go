// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Profile  ProfileConfig  `toml:"profile"`
	Training TrainingConfig `toml:"training"`
	LLM      LLMConfig      `toml:"llm"`
}

// ProfileConfig maps learner identity settings.
type ProfileConfig struct {
	User   *string `toml:"user"`
	Layout *string `toml:"layout"`
}

// TrainingConfig maps plan-generation settings.
type TrainingConfig struct {
	HistoryWindow   *int `toml:"history-window"`
	MaxFocusLetters *int `toml:"max-focus-letters"`
	WordCount       *int `toml:"word-count"`
	SentenceCount   *int `toml:"sentence-count"`
}

// LLMConfig maps content-generation settings. API keys stay in the
// environment; only the provider and model selection live in the file.
type LLMConfig struct {
	Enabled  *bool   `toml:"enabled"`
	Provider *string `toml:"provider"`
	Model    *string `toml:"model"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// Settings is the resolved configuration after applying file overrides
// on top of defaults.
type Settings struct {
	User            string
	Layout          string
	HistoryWindow   int
	MaxFocusLetters int
	WordCount       int
	SentenceCount   int
	LLMEnabled      bool
	LLMProvider     string
	LLMModel        string
}

// DefaultSettings returns the built-in defaults.
func DefaultSettings() Settings {
	return Settings{
		User:            "default",
		Layout:          "qwerty",
		HistoryWindow:   100,
		MaxFocusLetters: 8,
		WordCount:       20,
		SentenceCount:   3,
		LLMEnabled:      false,
	}
}

// Resolve applies the file overrides to the defaults.
func Resolve(file FileConfig) Settings {
	s := DefaultSettings()
	if file.Profile.User != nil {
		s.User = *file.Profile.User
	}
	if file.Profile.Layout != nil {
		s.Layout = *file.Profile.Layout
	}
	if file.Training.HistoryWindow != nil {
		s.HistoryWindow = *file.Training.HistoryWindow
	}
	if file.Training.MaxFocusLetters != nil {
		s.MaxFocusLetters = *file.Training.MaxFocusLetters
	}
	if file.Training.WordCount != nil {
		s.WordCount = *file.Training.WordCount
	}
	if file.Training.SentenceCount != nil {
		s.SentenceCount = *file.Training.SentenceCount
	}
	if file.LLM.Enabled != nil {
		s.LLMEnabled = *file.LLM.Enabled
	}
	if file.LLM.Provider != nil {
		s.LLMProvider = *file.LLM.Provider
	}
	if file.LLM.Model != nil {
		s.LLMModel = *file.LLM.Model
	}
	return s
}
