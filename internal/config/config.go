// Package config persists the trainer's user settings as JSON under the
// platform config directory. The engine treats the settings as read-mostly
// input; loading and saving live entirely here.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/SsnAgo/guitar-practice/internal/fretboard"
	"github.com/SsnAgo/guitar-practice/internal/pitch"
)

// DoMode selects how the tonal center is anchored
type DoMode string

const (
	DoModePitch    DoMode = "pitch"    // transpose the scale by note name
	DoModePosition DoMode = "position" // anchor do to a fretboard point
)

// Recognized option bounds. Out-of-range values are clamped on load, never
// rejected.
const (
	MinBPM = 40
	MaxBPM = 200

	MinSequenceLength = 7
	MaxSequenceLength = 50

	MaxPrepareDelayMs = 10000
)

// Config holds application configuration
type Config struct {
	FirstLaunchCompleted bool `json:"first_launch_completed"`

	DoMode     DoMode             `json:"do_mode"`
	DoNoteName string             `json:"do_note_name"`
	DoPosition fretboard.Position `json:"do_position"`

	BPM            int `json:"bpm"`
	SequenceLength int `json:"sequence_length"`
	PrepareDelayMs int `json:"prepare_delay_ms"`

	MidiOutPort string `json:"midi_out_port"`
}

// Default returns the settings used on first launch.
func Default() *Config {
	return &Config{
		DoMode:         DoModePitch,
		DoNoteName:     "C",
		DoPosition:     fretboard.Position{String: 5, Fret: 3},
		BPM:            60,
		SequenceLength: 7,
		PrepareDelayMs: 2000,
	}
}

// Normalize clamps every option into its recognized range and repairs
// unusable values, so the rest of the app never sees an invalid setting.
func (c *Config) Normalize() {
	if c.DoMode != DoModePitch && c.DoMode != DoModePosition {
		c.DoMode = DoModePitch
	}
	if _, ok := pitch.NameIndex(c.DoNoteName); !ok {
		c.DoNoteName = "C"
	}
	if !c.DoPosition.Valid() {
		c.DoPosition = fretboard.Position{String: 5, Fret: 3}
	}
	c.BPM = clamp(c.BPM, MinBPM, MaxBPM)
	c.SequenceLength = clamp(c.SequenceLength, MinSequenceLength, MaxSequenceLength)
	c.PrepareDelayMs = clamp(c.PrepareDelayMs, 0, MaxPrepareDelayMs)
}

// PrepareDelay returns the pre-roll setting as a duration.
func (c *Config) PrepareDelay() time.Duration {
	return time.Duration(c.PrepareDelayMs) * time.Millisecond
}

// DoSpec converts the stored settings into the resolver's tagged union.
func (c *Config) DoSpec() fretboard.DoSpec {
	if c.DoMode == DoModePosition {
		return fretboard.PositionDo{Pos: c.DoPosition}
	}
	return fretboard.PitchDo{Name: c.DoNoteName}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// configDir returns the platform-appropriate config directory
func configDir() (string, error) {
	configHome, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configHome, "guitar-practice"), nil
}

// ConfigPath returns the full path to the config file
func ConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, returning defaults if not found
func Load() (*Config, error) {
	configPath, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()
	return &cfg, nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	configPath, err := ConfigPath()
	if err != nil {
		return err
	}

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}
