package fretboard

import "fmt"

// DoSpec selects where the movable tonal center ("do") sits. It is a sealed
// two-variant union so the resolver's two algorithms stay statically
// distinguished rather than hiding behind a mode flag.
type DoSpec interface {
	// Key is the canonical serialization used as part of cache keys.
	Key() string

	isDoSpec()
}

// PitchDo anchors do to a note name: the whole scale is transposed so that
// degree 1 sounds the named pitch class.
type PitchDo struct {
	Name string
}

func (d PitchDo) Key() string { return "pitch:" + d.Name }
func (PitchDo) isDoSpec()     {}

// PositionDo anchors do to a physical fretboard point; every other degree is
// computed relative to that position's pitch.
type PositionDo struct {
	Pos Position
}

func (d PositionDo) Key() string { return fmt.Sprintf("position:%s", d.Pos.Label()) }
func (PositionDo) isDoSpec()     {}
