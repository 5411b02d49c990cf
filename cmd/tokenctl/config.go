package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config holds tokenctl settings.
type Config struct {
	JournalPath string
	LogLevel    string
}

type fileConfig struct {
	JournalPath string `toml:"journal_path"`
	LogLevel    string `toml:"log_level"`
}

func defaultConfig() Config {
	return Config{
		JournalPath: ":memory:",
		LogLevel:    "info",
	}
}

func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	if meta.IsDefined("journal_path") {
		if p := strings.TrimSpace(raw.JournalPath); p != "" {
			cfg.JournalPath = p
		}
	}
	if meta.IsDefined("log_level") {
		if l := strings.TrimSpace(raw.LogLevel); l != "" {
			cfg.LogLevel = l
		}
	}

	return cfg, nil
}
