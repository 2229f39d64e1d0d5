package configs

import (
	"path/filepath"
	"testing"
)

func TestLoadSettingsFromEnvironment(t *testing.T) {
	configDir := t.TempDir()
	dataDir := t.TempDir()
	t.Setenv("HUSH_CONFIG_DIR", configDir)
	t.Setenv("HUSH_DATA_DIR", dataDir)

	s, err := LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}

	if s.ConfigDir != configDir {
		t.Errorf("Expected ConfigDir %q, got %q", configDir, s.ConfigDir)
	}
	if s.IdentityPath() != filepath.Join(configDir, "identity.toml") {
		t.Errorf("Unexpected identity path %q", s.IdentityPath())
	}
	if s.StorePath() != filepath.Join(dataDir, "spaces.toml") {
		t.Errorf("Unexpected store path %q", s.StorePath())
	}
	if s.ActivityPath() != filepath.Join(dataDir, "activity.jsonl") {
		t.Errorf("Unexpected activity path %q", s.ActivityPath())
	}
}

func TestLoadSettingsFallsBackToXDGDataHome(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("HUSH_CONFIG_DIR", t.TempDir())
	t.Setenv("HUSH_DATA_DIR", "")
	t.Setenv("XDG_DATA_HOME", xdg)

	s, err := LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}
	if s.DataDir != filepath.Join(xdg, "hush") {
		t.Errorf("Expected DataDir under XDG_DATA_HOME, got %q", s.DataDir)
	}
}

func TestInitSettingsSetsGlobal(t *testing.T) {
	original := HushSettings
	defer func() { HushSettings = original }()

	dir := t.TempDir()
	t.Setenv("HUSH_CONFIG_DIR", dir)
	t.Setenv("HUSH_DATA_DIR", dir)

	if err := InitSettings(); err != nil {
		t.Fatalf("InitSettings failed: %v", err)
	}
	if HushSettings == nil || HushSettings.DataDir != dir {
		t.Fatalf("HushSettings not initialized from environment: %+v", HushSettings)
	}
}
