// Package config handles demo configuration loading and management.
package config

import (
	"errors"
	"fmt"
)

// SoundCount is the number of looping clips, one per screen quadrant.
const SoundCount = 4

var (
	ErrInvalidSize = errors.New("window size must be positive")
	ErrSoundCount  = fmt.Errorf("exactly %d sounds are required", SoundCount)
	ErrVolume      = errors.New("volume must be within [0, 1]")
)

// Config holds all demo settings.
type Config struct {
	Window  WindowConfig  `yaml:"window"`
	Assets  AssetsConfig  `yaml:"assets"`
	Audio   AudioConfig   `yaml:"audio"`
	Logging LoggingConfig `yaml:"logging"`
	Debug   DebugConfig   `yaml:"debug"`
}

// WindowConfig holds window settings.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	VSync  bool   `yaml:"vsync"`
}

// AssetsConfig holds file paths. Relative paths resolve against Root.
type AssetsConfig struct {
	Root        string        `yaml:"root"`
	MapTexture  string        `yaml:"map_texture"`
	KopiTexture string        `yaml:"kopi_texture"`
	Shaders     ShadersConfig `yaml:"shaders"`
}

// ShadersConfig holds optional shader source overrides. An empty path
// selects the built-in source.
type ShadersConfig struct {
	MapVertex  string `yaml:"map_vertex"`
	KopiVertex string `yaml:"kopi_vertex"`
	Fragment   string `yaml:"fragment"`
}

// AudioConfig holds the quadrant sounds and volume. Sounds are ordered
// top-right, top-left, bottom-left, bottom-right.
type AudioConfig struct {
	Sounds       []string `yaml:"sounds"`
	MasterVolume float64  `yaml:"master_volume"`
	Muted        bool     `yaml:"muted"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// DebugConfig holds developer settings.
type DebugConfig struct {
	ScreenshotDir string `yaml:"screenshot_dir"`
}

// Default returns a Config with the demo's stock values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:  "World Map",
			Width:  1200,
			Height: 600,
			VSync:  true,
		},
		Assets: AssetsConfig{
			Root:        "res",
			MapTexture:  "world_map.png",
			KopiTexture: "kopi.png",
		},
		Audio: AudioConfig{
			Sounds:       []string{"sound1.wav", "sound2.wav", "sound3.wav", "sound4.wav"},
			MasterVolume: 1.0,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Debug: DebugConfig{
			ScreenshotDir: "screenshots",
		},
	}
}

// Validate checks that the config can start the demo.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, c.Window.Width, c.Window.Height)
	}
	if len(c.Audio.Sounds) != SoundCount {
		return fmt.Errorf("%w, got %d", ErrSoundCount, len(c.Audio.Sounds))
	}
	if c.Audio.MasterVolume < 0 || c.Audio.MasterVolume > 1 {
		return fmt.Errorf("%w: %g", ErrVolume, c.Audio.MasterVolume)
	}
	return nil
}
