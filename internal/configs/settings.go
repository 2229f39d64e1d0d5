package configs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is the prefix of every environment variable read into Settings.
const EnvPrefix = "HUSH"

const (
	identityFileName = "identity.toml"
	storeFileName    = "spaces.toml"
	activityFileName = "activity.jsonl"
)

// Settings holds the directories hush reads and writes.
type Settings struct {
	// ConfigDir holds the identity file. HUSH_CONFIG_DIR overrides it.
	ConfigDir string `envconfig:"CONFIG_DIR"`
	// DataDir holds the space store and activity log. HUSH_DATA_DIR overrides it.
	DataDir string `envconfig:"DATA_DIR"`
}

// HushSettings is initialized by InitSettings before any command runs.
var HushSettings *Settings

// InitSettings resolves Settings from the environment and stores them in
// HushSettings. Unset directories fall back to the per-user defaults of the
// platform.
func InitSettings() error {
	s, err := LoadSettings()
	if err != nil {
		return err
	}
	HushSettings = s
	return nil
}

// LoadSettings resolves Settings without touching HushSettings.
func LoadSettings() (*Settings, error) {
	var s Settings
	if err := envconfig.Process(EnvPrefix, &s); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}

	if s.ConfigDir == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("error getting config directory: %w", err)
		}
		s.ConfigDir = filepath.Join(configDir, "hush")
	}

	if s.DataDir == "" {
		dataDir := os.Getenv("XDG_DATA_HOME")
		if dataDir == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return nil, fmt.Errorf("error getting home directory: %w", err)
			}
			dataDir = filepath.Join(homeDir, ".local", "share")
		}
		s.DataDir = filepath.Join(dataDir, "hush")
	}

	return &s, nil
}

// IdentityPath is where the persisted identity lives.
func (s *Settings) IdentityPath() string {
	return filepath.Join(s.ConfigDir, identityFileName)
}

// StorePath is where the spaces and their posts are kept.
func (s *Settings) StorePath() string {
	return filepath.Join(s.DataDir, storeFileName)
}

// ActivityPath is where the activity log is appended.
func (s *Settings) ActivityPath() string {
	return filepath.Join(s.DataDir, activityFileName)
}
