package shared

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Credentials CredentialsConfig `toml:"credentials"`
	Split       SplitConfig       `toml:"split"`
}

// CredentialsConfig contains service-specific credentials.
type CredentialsConfig struct {
	YouTube YouTubeConfig `toml:"youtube"`
	Gemini  GeminiConfig  `toml:"gemini"`
}

// YouTubeConfig contains YouTube Data API credentials.
//
// APIKey covers read-only playlist access; OAuthToken is required for playlist creation and insertion.
type YouTubeConfig struct {
	APIKey     string `toml:"api_key"`
	OAuthToken string `toml:"oauth_token"`
}

// GeminiConfig contains Gemini API credentials and model selection.
type GeminiConfig struct {
	APIKey string `toml:"api_key"`
	Model  string `toml:"model"`
}

// SplitConfig contains tunables for the classification and fan-out pipeline.
type SplitConfig struct {
	BatchSize       int    `toml:"batch_size"`       // Songs per classification request (max 50)
	SampleSize      int    `toml:"sample_size"`      // Songs sampled for category suggestion
	SuggestionCount int    `toml:"suggestion_count"` // Categories requested from the oracle
	BatchDelayMS    int    `toml:"batch_delay_ms"`   // Pacing between classification batches
	InsertDelayMS   int    `toml:"insert_delay_ms"`  // Pacing between playlist item insertions
	Privacy         string `toml:"privacy"`          // Privacy status for created playlists
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read config file: %v", ErrMissingConfig, err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrInvalidConfig, err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	// Check if file already exists
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	// Write the embedded example config to the file
	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
