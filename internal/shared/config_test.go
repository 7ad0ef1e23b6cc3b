package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Credentials.Gemini.Model != "gemini-2.5-flash" {
			t.Errorf("expected gemini model gemini-2.5-flash, got %s", config.Credentials.Gemini.Model)
		}

		if config.Split.BatchSize != 50 {
			t.Errorf("expected batch size 50, got %d", config.Split.BatchSize)
		}

		if config.Split.SampleSize != 10 {
			t.Errorf("expected sample size 10, got %d", config.Split.SampleSize)
		}

		if config.Split.SuggestionCount != 3 {
			t.Errorf("expected suggestion count 3, got %d", config.Split.SuggestionCount)
		}

		if config.Split.BatchDelayMS != 1000 {
			t.Errorf("expected batch delay 1000ms, got %d", config.Split.BatchDelayMS)
		}

		if config.Split.InsertDelayMS != 500 {
			t.Errorf("expected insert delay 500ms, got %d", config.Split.InsertDelayMS)
		}

		if config.Split.Privacy != "private" {
			t.Errorf("expected privacy private, got %s", config.Split.Privacy)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		defaultConfig := DefaultConfig()
		if config.Split.BatchSize != defaultConfig.Split.BatchSize {
			t.Errorf("created config batch size doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("expected error when config file already exists")
		}
	})

	t.Run("LoadConfig missing file", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
			t.Error("expected error for missing config file")
		}
	})

	t.Run("LoadConfig invalid toml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.toml")
		if err := os.WriteFile(path, []byte("[credentials\nbroken"), 0644); err != nil {
			t.Fatal(err)
		}

		if _, err := LoadConfig(path); err == nil {
			t.Error("expected error for invalid toml")
		}
	})
}
