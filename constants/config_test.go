package constants

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigMissingFileGivesDefaults(t *testing.T) {
	assert := assert.New(t)
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.NoError(err)
	assert.Equal(DefaultConfig(), cfg)

	cfg, err = LoadConfig("")
	assert.NoError(err)
	assert.Equal(DefaultConfig(), cfg)
}

func TestLoadConfigFormats(t *testing.T) {
	tests := map[string]string{
		"engraver.yaml": "clef: treble\nsignatures: false\nmax_bars: 4\n",
		"engraver.toml": "clef = \"treble\"\nsignatures = false\nmax_bars = 4\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)
			path := filepath.Join(t.TempDir(), name)
			assert.NoError(os.WriteFile(path, []byte(body), 0666))

			cfg, err := LoadConfig(path)
			assert.NoError(err)
			assert.Equal("treble", cfg.Clef)
			assert.False(cfg.Signatures)
			assert.Equal(4, cfg.MaxBars)
			assert.Equal(1, cfg.Channels, "unset keys keep defaults")
		})
	}
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "engraver.yaml")
	assert.NoError(t, os.WriteFile(bad, []byte("clef: [unterminated"), 0666))
	_, err := LoadConfig(bad)
	assert.Error(t, err)

	ini := filepath.Join(dir, "engraver.ini")
	assert.NoError(t, os.WriteFile(ini, []byte("x=1"), 0666))
	_, err = LoadConfig(ini)
	assert.Error(t, err)
}

func TestEnvGetters(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("OUT_DIR", "")
	assert.Equal(t, "8080", GetPort())
	assert.Equal(t, "./out", GetOutDir())
}
