package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestDefaultGeometry(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 400.0, cfg.Playfield.Width)
	assert.Equal(t, 600.0, cfg.Playfield.Height)
	assert.Equal(t, 390, cfg.MaxGapTop())
}

func TestParsePartialKeepsDefaults(t *testing.T) {
	cfg, err := Parse([]byte("physics:\n  gravity: 0.25\n"))
	require.NoError(t, err)

	assert.Equal(t, 0.25, cfg.Physics.Gravity)
	assert.Equal(t, -8.0, cfg.Physics.JumpImpulse)
	assert.Equal(t, 52.0, cfg.Obstacles.Width)
}

func TestParseEmptyDocument(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("physics:\n  gravityy: 1\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gravityy")
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := Default()
	cfg.Physics.JumpImpulse = 3
	cfg.Actor.HitboxInset = 20
	cfg.Obstacles.SpawnInterval = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jump_impulse")
	assert.Contains(t, err.Error(), "hitbox_inset")
	assert.Contains(t, err.Error(), "spawn_interval")
}

func TestMaxGapTopFractionalGeometry(t *testing.T) {
	cfg := Default()
	cfg.Obstacles.GapSize = 160.5
	require.NoError(t, cfg.Validate())

	top := cfg.MaxGapTop()
	assert.Equal(t, 389, top)
	lower := cfg.Playfield.Height - (float64(top) + cfg.Obstacles.GapSize)
	assert.GreaterOrEqual(t, lower, float64(cfg.Obstacles.MinHeight))

	cfg.Playfield.Height = 600.9
	cfg.Obstacles.GapSize = 160
	assert.Equal(t, 390, cfg.MaxGapTop())
}

func TestValidateGapMustFit(t *testing.T) {
	cfg := Default()
	cfg.Obstacles.GapSize = 550

	require.Error(t, cfg.Validate())
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("obstacles:\n  speed: 4\n"), 0o600))

	cfg, source, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, source)
	assert.Equal(t, 4.0, cfg.Obstacles.Speed)
}

func TestLoadCustomPathErrors(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("physics: [not, a, map]\n"), 0o600))
	_, _, err = Load(bad)
	require.Error(t, err)
}

func TestDumpRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Obstacles.GapSize = 150

	data, err := Dump(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(data), "gap_size: 150")

	back, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, cfg, back)
}
