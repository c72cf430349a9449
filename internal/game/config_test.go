package game

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "turnbattle.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	for _, path := range []string{"", filepath.Join(t.TempDir(), "missing.yaml")} {
		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig(%q) error = %v", path, err)
		}
		if len(cfg.Party) != 4 || cfg.PartyLevel != 1 || cfg.EnemyLevel != 1 {
			t.Errorf("LoadConfig(%q) = %+v, want defaults", path, cfg)
		}
		if cfg.Timings != DefaultTimings() {
			t.Errorf("Timings = %+v, want defaults", cfg.Timings)
		}
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := writeConfig(t, `
seed: 42
data_dir: ./content
party: [hero, mage]
party_level: 3
enemy_level: 2
encounter: wolf_pack
speed_order: true
log_size: 4
timings:
  intro: 250ms
  action: 1.5s
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Seed != 42 || cfg.DataDir != "./content" || cfg.Encounter != "wolf_pack" {
		t.Errorf("cfg = %+v", cfg)
	}
	if len(cfg.Party) != 2 || cfg.Party[1] != "mage" || cfg.PartyLevel != 3 || cfg.EnemyLevel != 2 {
		t.Errorf("party fields = %+v", cfg)
	}
	if !cfg.SpeedOrder || cfg.LogSize != 4 {
		t.Errorf("speed_order %v log_size %d", cfg.SpeedOrder, cfg.LogSize)
	}
	if cfg.Timings.Intro != 250*time.Millisecond || cfg.Timings.Action != 1500*time.Millisecond {
		t.Errorf("Timings = %+v", cfg.Timings)
	}
	if cfg.Timings.Think != DefaultTimings().Think || cfg.Timings.Outcome != DefaultTimings().Outcome {
		t.Errorf("unset timings should keep defaults: %+v", cfg.Timings)
	}
	if cfg.LogFile != "turnbattle.log" {
		t.Errorf("LogFile = %q, want default", cfg.LogFile)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad yaml", "party: [hero\n"},
		{"empty party", "party: []\n"},
		{"party level", "party_level: 0\n"},
		{"enemy level", "enemy_level: -1\n"},
		{"bad duration", "timings:\n  intro: soon\n"},
	}

	for _, tt := range tests {
		if _, err := LoadConfig(writeConfig(t, tt.body)); err == nil {
			t.Errorf("%s: LoadConfig() succeeded, want error", tt.name)
		}
	}
}
