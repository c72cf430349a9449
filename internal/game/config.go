package game

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Timings are the fixed delays the battle waits on before each transition.
type Timings struct {
	Intro   time.Duration `yaml:"intro"`   // Entering -> PlayerTurn
	Think   time.Duration `yaml:"think"`   // EnemyTurn -> Executing
	Action  time.Duration `yaml:"action"`  // between resolved commands
	Outcome time.Duration `yaml:"outcome"` // Victory/Defeat/Fleeing -> concluded
}

// DefaultTimings returns the delays used when none are configured.
func DefaultTimings() Timings {
	return Timings{
		Intro:   time.Second,
		Think:   500 * time.Millisecond,
		Action:  800 * time.Millisecond,
		Outcome: 2 * time.Second,
	}
}

// withDefaults fills zero delays from DefaultTimings.
func (t Timings) withDefaults() Timings {
	d := DefaultTimings()
	if t.Intro <= 0 {
		t.Intro = d.Intro
	}
	if t.Think <= 0 {
		t.Think = d.Think
	}
	if t.Action <= 0 {
		t.Action = d.Action
	}
	if t.Outcome <= 0 {
		t.Outcome = d.Outcome
	}
	return t
}

// Config holds game configuration options.
type Config struct {
	// Seed for random number generation. Used for reproducible battles.
	// A seed of 0 means a random seed will be generated.
	Seed int64 `yaml:"seed"`

	// DataDir overrides the embedded configuration files when set.
	DataDir string `yaml:"data_dir"`

	// Party lists party template ids in roster order.
	Party      []string `yaml:"party"`
	PartyLevel int      `yaml:"party_level"`

	EnemyLevel int `yaml:"enemy_level"`
	// Encounter names a group id. Empty picks a group weighted by encounter rate.
	Encounter string `yaml:"encounter"`

	// LogFile receives the structured log. Empty disables logging.
	LogFile string `yaml:"log_file"`
	// LogSize is the number of battle messages kept on screen.
	LogSize int `yaml:"log_size"`

	// SpeedOrder sorts each round's queue by actor speed instead of enqueue order.
	SpeedOrder bool `yaml:"speed_order"`

	Timings Timings `yaml:"timings"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() Config {
	return Config{
		Party:      []string{"hero", "mage", "warrior", "rogue"},
		PartyLevel: 1,
		EnemyLevel: 1,
		LogFile:    "turnbattle.log",
		LogSize:    DefaultLogSize,
		Timings:    DefaultTimings(),
	}
}

// LoadConfig reads a YAML config file on top of DefaultConfig.
// An empty path or a missing file yields the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	cfg.Timings = cfg.Timings.withDefaults()
	return cfg, nil
}

// Validate checks the values a battle cannot start without.
func (c Config) Validate() error {
	if len(c.Party) == 0 {
		return errors.New("party must name at least one member")
	}
	if c.PartyLevel < 1 {
		return fmt.Errorf("party_level must be at least 1, got %d", c.PartyLevel)
	}
	if c.EnemyLevel < 1 {
		return fmt.Errorf("enemy_level must be at least 1, got %d", c.EnemyLevel)
	}
	return nil
}
