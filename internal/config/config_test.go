package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse(nil, "empty")
	require.NoError(t, err)

	assert.Equal(t, 825.0, cfg.Physics.Gravity)
	assert.Equal(t, 1.0, cfg.Physics.Epsilon)
	assert.Equal(t, 3.0, cfg.Physics.GroundProbe)
	assert.Equal(t, 16*time.Millisecond, cfg.Game.TickRate)
	assert.Equal(t, "space", cfg.Input.Bindings["jump"])
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.NotZero(t, cfg.Game.StartTime)
}

func TestParseOverrides(t *testing.T) {
	src := `
[game]
title = "cave"
map = "levels/cave.yaml"
tick_rate = "20ms"
max_dt = "50ms"

[physics]
gravity = 400.5

[input]
hold = "200ms"
[input.bindings]
jump = "up"
fire = "x"

[logging]
level = "debug"
format = "json"
`
	cfg, err := Parse([]byte(src), "inline")
	require.NoError(t, err)

	assert.Equal(t, "cave", cfg.Game.Title)
	assert.Equal(t, "levels/cave.yaml", cfg.Game.Map)
	assert.Equal(t, 20*time.Millisecond, cfg.Game.TickRate)
	assert.Equal(t, 50*time.Millisecond, cfg.Game.MaxDT)
	assert.Equal(t, 400.5, cfg.Physics.Gravity)
	assert.Equal(t, 1.0, cfg.Physics.Epsilon, "untouched keys keep defaults")
	assert.Equal(t, 200*time.Millisecond, cfg.Input.Hold)
	assert.Equal(t, "up", cfg.Input.Bindings["jump"])
	assert.Equal(t, "x", cfg.Input.Bindings["fire"])
	assert.Equal(t, "left", cfg.Input.Bindings["left"], "bindings merge into defaults")
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestParseRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"syntax":       "[game",
		"empty map":    "[game]\nmap = \"\"",
		"tick rate":    "[game]\ntick_rate = \"0s\"",
		"max dt":       "[game]\ntick_rate = \"50ms\"\nmax_dt = \"10ms\"",
		"epsilon":      "[physics]\nepsilon = 0.0",
		"ground probe": "[physics]\nepsilon = 2.0\nground_probe = 1.0",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(src), name)
			assert.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "platformer.toml")
	require.NoError(t, os.WriteFile(path, []byte("[game]\ntitle = \"file\"\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "file", cfg.Game.Title)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
