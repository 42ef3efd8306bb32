package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Game    GameConfig    `toml:"game"`
	Physics PhysicsConfig `toml:"physics"`
	Input   InputConfig   `toml:"input"`
	Logging LoggingConfig `toml:"logging"`
}

type GameConfig struct {
	Title      string        `toml:"title"`
	Map        string        `toml:"map"`
	ScriptsDir string        `toml:"scripts_dir"`
	Width      int           `toml:"width"`  // terminal columns, 0 = whole screen
	Height     int           `toml:"height"` // terminal rows, 0 = whole screen
	TickRate   time.Duration `toml:"tick_rate"`
	MaxDT      time.Duration `toml:"max_dt"` // clamp for a single frame step
	StartTime  int64         // set at boot, not from config
}

type PhysicsConfig struct {
	Gravity     float64 `toml:"gravity"`
	Epsilon     float64 `toml:"epsilon"`
	GroundProbe float64 `toml:"ground_probe"`
}

type InputConfig struct {
	// Terminals report presses but not releases; a key counts as held until
	// no repeat arrived for this long.
	Hold     time.Duration     `toml:"hold"`
	Bindings map[string]string `toml:"bindings"` // action name -> key name
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
	Output string `toml:"output"` // file path; the terminal belongs to the renderer
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse decodes TOML over the defaults. name is used in error messages.
func Parse(data []byte, name string) (*Config, error) {
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", name, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", name, err)
	}
	cfg.Game.StartTime = time.Now().Unix()
	return cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Game.Map == "":
		return fmt.Errorf("game.map is empty")
	case c.Game.TickRate <= 0:
		return fmt.Errorf("game.tick_rate must be positive, got %s", c.Game.TickRate)
	case c.Game.MaxDT < c.Game.TickRate:
		return fmt.Errorf("game.max_dt %s is shorter than tick_rate %s", c.Game.MaxDT, c.Game.TickRate)
	case c.Physics.Epsilon <= 0:
		return fmt.Errorf("physics.epsilon must be positive")
	case c.Physics.GroundProbe < c.Physics.Epsilon:
		return fmt.Errorf("physics.ground_probe must be at least epsilon")
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Game: GameConfig{
			Title:      "platformer",
			Map:        "data/levels/level1.yaml",
			ScriptsDir: "scripts",
			TickRate:   16 * time.Millisecond,
			MaxDT:      100 * time.Millisecond,
		},
		Physics: PhysicsConfig{
			Gravity:     825,
			Epsilon:     1,
			GroundProbe: 3,
		},
		Input: InputConfig{
			Hold: 150 * time.Millisecond,
			Bindings: map[string]string{
				"left":    "left",
				"right":   "right",
				"jump":    "space",
				"forward": "w",
				"back":    "s",
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			Output: "platformer.log",
		},
	}
}
