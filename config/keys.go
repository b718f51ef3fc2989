package config

import (
	"os"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
	"github.com/pelletier/go-toml/v2"
)

// KeyOverride rebinds an action to a key chord, e.g.
//
//	[[bind]]
//	action = "zoom-in"
//	key = "="
//	modifier = "none"
type KeyOverride struct {
	Action   string `toml:"action"`
	Key      string `toml:"key"`
	Modifier string `toml:"modifier"`
}

type keyOverrideFile struct {
	Bind []KeyOverride `toml:"bind"`
}

// LoadKeyOverrides reads a TOML key override file. A missing file is not an error.
func LoadKeyOverrides(path string) ([]KeyOverride, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fault.Wrap(err, fmsg.With("read key overrides"), ftag.With("config"))
	}
	return ParseKeyOverrides(data)
}

// ParseKeyOverrides decodes TOML key overrides
func ParseKeyOverrides(data []byte) ([]KeyOverride, error) {
	var f keyOverrideFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fault.Wrap(err,
			fmsg.WithDesc("parse key overrides", "The key override file is not valid TOML"),
			ftag.With("config"))
	}
	var out []KeyOverride
	for _, b := range f.Bind {
		if b.Action == "" || b.Key == "" {
			continue
		}
		if b.Modifier == "" {
			b.Modifier = "none"
		}
		out = append(out, b)
	}
	return out, nil
}
