// Package pitch provides equal-temperament pitch arithmetic shared by the
// fretboard resolver and the MIDI synth. Pitches are MIDI note numbers
// (middle C = 60), note names use sharps-only spelling.
package pitch

import (
	"fmt"
	"strconv"
	"strings"
)

// Pitch is an absolute semitone index on the MIDI scale.
// Arithmetic is modulo-12 for note-name derivation, unbounded for
// ordering and distance.
type Pitch int

// noteNames is the canonical chromatic spelling, index = pitch mod 12.
var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// NameIndex returns the chromatic index (0-11) of a canonical note name.
func NameIndex(name string) (int, bool) {
	for i, n := range noteNames {
		if n == name {
			return i, true
		}
	}
	return 0, false
}

// IndexName returns the canonical note name for a chromatic index.
// The index is reduced modulo 12, so any pitch value is accepted.
func IndexName(i int) string {
	return noteNames[((i%12)+12)%12]
}

// NoteNames returns the 12 canonical chromatic names in ascending order.
func NoteNames() []string {
	names := make([]string, len(noteNames))
	copy(names, noteNames[:])
	return names
}

// Name returns the note name of the pitch ("C", "F#", ...).
func (p Pitch) Name() string {
	return IndexName(int(p))
}

// Octave returns the scientific octave number (MIDI convention: C4 = 60).
func (p Pitch) Octave() int {
	return int(p)/12 - 1
}

// String formats the pitch as name plus octave, e.g. "C3" for pitch 48.
// This is the identifier handed to the audio backend.
func (p Pitch) String() string {
	return fmt.Sprintf("%s%d", p.Name(), p.Octave())
}

// Parse converts a "name+octave" identifier such as "C3" or "F#2" back to a
// Pitch. It is the inverse of String for all pitches the instrument can play.
func Parse(s string) (Pitch, error) {
	split := strings.LastIndexFunc(s, func(r rune) bool {
		return r != '-' && (r < '0' || r > '9')
	})
	if split < 0 || split+1 >= len(s) {
		return 0, fmt.Errorf("malformed pitch %q", s)
	}
	idx, ok := NameIndex(s[:split+1])
	if !ok {
		return 0, fmt.Errorf("unknown note name in %q", s)
	}
	octave, err := strconv.Atoi(s[split+1:])
	if err != nil {
		return 0, fmt.Errorf("malformed octave in %q: %w", s, err)
	}
	return Pitch((octave+1)*12 + idx), nil
}
