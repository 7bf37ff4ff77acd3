// Package app wires the core, the cartridge loader and a display backend
// into a runnable application, and owns its configuration.
package app

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config holds the application configuration.
type Config struct {
	Window    WindowConfig    `json:"window"`
	Video     VideoConfig     `json:"video"`
	Emulation EmulationConfig `json:"emulation"`
}

// WindowConfig contains window settings.
type WindowConfig struct {
	Title string `json:"title"`
	Scale int    `json:"scale"` // native resolution multiplier
}

// VideoConfig contains display settings.
type VideoConfig struct {
	VSync   bool   `json:"vsync"`
	Backend string `json:"backend"` // "ebitengine" or "headless"
}

// EmulationConfig contains emulation settings.
type EmulationConfig struct {
	HeadlessFrames int `json:"headless_frames"` // frame budget for headless runs
}

// NewConfig returns a configuration with default values.
func NewConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Title: "famicore",
			Scale: 3,
		},
		Video: VideoConfig{
			VSync:   true,
			Backend: "ebitengine",
		},
		Emulation: EmulationConfig{
			HeadlessFrames: 60,
		},
	}
}

// LoadConfig reads a JSON configuration file, filling unset fields with
// defaults.
func LoadConfig(path string) (*Config, error) {
	config := NewConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return config, nil
}

// SaveToFile writes the configuration as indented JSON.
func (c *Config) SaveToFile(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) validate() error {
	if c.Window.Scale < 1 || c.Window.Scale > 8 {
		return fmt.Errorf("window scale %d out of range 1-8", c.Window.Scale)
	}
	switch c.Video.Backend {
	case "ebitengine", "headless":
	default:
		return fmt.Errorf("unknown video backend %q", c.Video.Backend)
	}
	if c.Emulation.HeadlessFrames < 0 {
		return fmt.Errorf("headless frame count must not be negative")
	}
	return nil
}
