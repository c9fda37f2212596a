package config

import (
	"testing"

	"github.com/SsnAgo/guitar-practice/internal/fretboard"
)

func TestNormalizeClampsRanges(t *testing.T) {
	cfg := &Config{
		DoMode:         "sideways",
		DoNoteName:     "Db",
		DoPosition:     fretboard.Position{String: 9, Fret: 40},
		BPM:            500,
		SequenceLength: 2,
		PrepareDelayMs: -100,
	}
	cfg.Normalize()

	if cfg.DoMode != DoModePitch {
		t.Errorf("DoMode = %q, want pitch", cfg.DoMode)
	}
	if cfg.DoNoteName != "C" {
		t.Errorf("DoNoteName = %q, want C", cfg.DoNoteName)
	}
	if !cfg.DoPosition.Valid() {
		t.Errorf("DoPosition = %+v still invalid", cfg.DoPosition)
	}
	if cfg.BPM != MaxBPM {
		t.Errorf("BPM = %d, want %d", cfg.BPM, MaxBPM)
	}
	if cfg.SequenceLength != MinSequenceLength {
		t.Errorf("SequenceLength = %d, want %d", cfg.SequenceLength, MinSequenceLength)
	}
	if cfg.PrepareDelayMs != 0 {
		t.Errorf("PrepareDelayMs = %d, want 0", cfg.PrepareDelayMs)
	}
}

func TestNormalizeKeepsValidValues(t *testing.T) {
	cfg := Default()
	cfg.BPM = 90
	cfg.SequenceLength = 12
	cfg.PrepareDelayMs = 1000
	cfg.DoMode = DoModePosition
	cfg.DoNoteName = "F#"
	cfg.Normalize()

	if cfg.BPM != 90 || cfg.SequenceLength != 12 || cfg.PrepareDelayMs != 1000 {
		t.Errorf("normalize mangled valid values: %+v", cfg)
	}
	if cfg.DoMode != DoModePosition || cfg.DoNoteName != "F#" {
		t.Errorf("normalize mangled do settings: %+v", cfg)
	}
}

func TestDoSpecConversion(t *testing.T) {
	cfg := Default()

	cfg.DoMode = DoModePitch
	cfg.DoNoteName = "G"
	if spec, ok := cfg.DoSpec().(fretboard.PitchDo); !ok || spec.Name != "G" {
		t.Errorf("pitch mode spec = %#v", cfg.DoSpec())
	}

	cfg.DoMode = DoModePosition
	cfg.DoPosition = fretboard.Position{String: 4, Fret: 2}
	spec, ok := cfg.DoSpec().(fretboard.PositionDo)
	if !ok || spec.Pos != (fretboard.Position{String: 4, Fret: 2}) {
		t.Errorf("position mode spec = %#v", cfg.DoSpec())
	}
}

func TestLoadSaveRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	// First load on a fresh directory returns defaults.
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DoNoteName != "C" || cfg.BPM != 60 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}

	cfg.BPM = 144
	cfg.DoMode = DoModePosition
	cfg.DoPosition = fretboard.Position{String: 6, Fret: 3}
	cfg.MidiOutPort = "FluidSynth virtual port"
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if loaded.BPM != 144 || loaded.DoMode != DoModePosition ||
		loaded.DoPosition != (fretboard.Position{String: 6, Fret: 3}) ||
		loaded.MidiOutPort != "FluidSynth virtual port" {
		t.Errorf("round trip lost data: %+v", loaded)
	}
}
