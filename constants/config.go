package constants

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config holds engraving settings read from engraver.yaml or engraver.toml.
type Config struct {
	Clef string `yaml:"clef" toml:"clef"`
	// Signatures draws the clef and time signature on the first bar.
	Signatures bool `yaml:"signatures" toml:"signatures"`
	// MaxBars limits how many measures a layout engraves, 0 for all.
	MaxBars  int `yaml:"max_bars" toml:"max_bars"`
	Channels int `yaml:"channels" toml:"channels"`
	// DebounceMillis delays re-engraving after a watched file changes.
	DebounceMillis int `yaml:"debounce_millis" toml:"debounce_millis"`
}

func DefaultConfig() Config {
	return Config{
		Clef:           "alto",
		Signatures:     true,
		Channels:       1,
		DebounceMillis: 200,
	}
}

// LoadConfig reads a YAML or TOML config file over the defaults. A missing
// file is not an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	} else if err != nil {
		return cfg, errors.Wrap(err, "could not read config")
	}

	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	default:
		return cfg, errors.Errorf("unsupported config format %q", path)
	}
	if err != nil {
		return cfg, errors.Wrapf(err, "could not parse config %v", path)
	}
	return cfg, nil
}
