package cli

import (
	"github.com/BurntSushi/toml"

	"github.com/matzehuels/bigpicture/pkg/errors"
	"github.com/matzehuels/bigpicture/pkg/render/box/layout"
)

// fileConfig is the shape of a --config file:
//
//	[layout]
//	padding = 20
//	nested_row_width = 900
//
// Keys left out keep their default.
type fileConfig struct {
	Layout layout.Config `toml:"layout"`
}

// loadConfig returns the layout constants, starting from the defaults and
// applying path when it is set.
func loadConfig(path string) (layout.Config, error) {
	cfg := fileConfig{Layout: layout.DefaultConfig()}
	if path == "" {
		return cfg.Layout, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return layout.Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return layout.Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q", undecoded[0].String())
	}
	if err := cfg.Layout.Validate(); err != nil {
		return layout.Config{}, err
	}
	return cfg.Layout, nil
}
