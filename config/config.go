package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/Southclaws/fault"
	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
)

// PlatformCommand names the modifier treated as the platform command key
type PlatformCommand string

const (
	CommandCtrl PlatformCommand = "ctrl"
	CommandMeta PlatformCommand = "meta"
)

// SnapConfig controls tick snapping
type SnapConfig struct {
	Enabled bool `json:"enabled"`
	Divisor int  `json:"divisor"`
}

// TonePreviewConfig defines the MIDI output used to audition notes
type TonePreviewConfig struct {
	PortName string `json:"portName,omitempty"`
	Channel  uint8  `json:"channel"`
	Velocity uint8  `json:"velocity"`
}

// OtoEditorConfig picks the external oto editor
type OtoEditorConfig struct {
	UseVLabeler  bool     `json:"useVLabeler"`
	VLabelerPath string   `json:"vlabelerPath,omitempty"`
	Args         []string `json:"args,omitempty"`
}

// FrqToolConfig defines the external frequency-curve generator
type FrqToolConfig struct {
	Command     string   `json:"command,omitempty"`
	Args        []string `json:"args,omitempty"`
	Parallelism int      `json:"parallelism"`
}

// Config is the main configuration structure
type Config struct {
	PlatformCommand PlatformCommand   `json:"platformCommand"`
	Snap            SnapConfig        `json:"snap"`
	ValueTipMargin  float64           `json:"valueTipMargin"`
	DoubleClickMs   int               `json:"doubleClickMs"`
	TickWidth       int               `json:"tickWidth"`
	TonePreview     TonePreviewConfig `json:"tonePreview"`
	OtoEditor       OtoEditorConfig   `json:"otoEditor"`
	FrqTool         FrqToolConfig     `json:"frqTool"`
	KeysFile        string            `json:"keysFile,omitempty"`
	Palette         string            `json:"palette,omitempty"`
	Debug           bool              `json:"debug,omitempty"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		PlatformCommand: CommandCtrl,
		Snap: SnapConfig{
			Enabled: true,
			Divisor: 4,
		},
		ValueTipMargin: 21,
		DoubleClickMs:  350,
		TickWidth:      60,
		TonePreview: TonePreviewConfig{
			Channel:  0,
			Velocity: 100,
		},
		FrqTool: FrqToolConfig{
			Command:     "frqgen",
			Parallelism: 2,
		},
	}
}

// Dir returns the config directory path
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "go-pianoroll"), nil
}

// Path returns the full path to config.json
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or returns defaults if not found
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFile(path)
}

// LoadFile reads a config file; missing fields keep their defaults
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fault.Wrap(err, fmsg.With("read config"), ftag.With("config"))
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fault.Wrap(err,
			fmsg.WithDesc("parse config", "The config file "+path+" is not valid JSON"),
			ftag.With("config"))
	}
	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	d := DefaultConfig()
	if c.PlatformCommand != CommandMeta {
		c.PlatformCommand = CommandCtrl
	}
	if c.Snap.Divisor <= 0 {
		c.Snap.Divisor = d.Snap.Divisor
	}
	if c.ValueTipMargin <= 0 {
		c.ValueTipMargin = d.ValueTipMargin
	}
	if c.DoubleClickMs <= 0 {
		c.DoubleClickMs = d.DoubleClickMs
	}
	if c.TickWidth <= 0 {
		c.TickWidth = d.TickWidth
	}
	if c.FrqTool.Parallelism <= 0 {
		c.FrqTool.Parallelism = 1
	}
}

// Save writes the config to disk
func (c *Config) Save() error {
	path, err := Path()
	if err != nil {
		return fault.Wrap(err, fmsg.With("locate config"), ftag.With("config"))
	}
	return c.SaveFile(path)
}

// SaveFile writes the config to path, creating its directory
func (c *Config) SaveFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fault.Wrap(err, fmsg.With("create config dir"), ftag.With("config"))
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fault.Wrap(err, fmsg.With("encode config"), ftag.With("config"))
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fault.Wrap(err, fmsg.With("write config"), ftag.With("config"))
	}
	return nil
}

// KeysPath resolves the key override file relative to the config dir
func (c *Config) KeysPath() string {
	if c.KeysFile == "" {
		return ""
	}
	if filepath.IsAbs(c.KeysFile) {
		return c.KeysFile
	}
	dir, err := Dir()
	if err != nil {
		return c.KeysFile
	}
	return filepath.Join(dir, c.KeysFile)
}
