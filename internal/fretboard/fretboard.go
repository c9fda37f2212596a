// Package fretboard maps solfège scale degrees onto positions of a
// standard-tuned six-string guitar. It contains the instrument geometry,
// the do-specification variants, the position resolver and a memoizing
// cache for resolved notes.
package fretboard

import (
	"fmt"

	"github.com/SsnAgo/guitar-practice/internal/pitch"
)

const (
	// NumStrings is the string count; string 1 is the highest-pitched (high E).
	NumStrings = 6
	// MaxFret is the highest playable fret.
	MaxFret = 14
)

// openPitch is the pitch of each open string, indexed by string number
// (1 = high E). Index 0 is unused.
//
// E4(64)  B3(59)  G3(55)  D3(50)  A2(45)  E2(40)
var openPitch = [NumStrings + 1]pitch.Pitch{0, 64, 59, 55, 50, 45, 40}

// Position is a physical point on the fretboard. Fret 0 is the open string.
type Position struct {
	String int `json:"string"` // 1..NumStrings, 1 = highest-pitched
	Fret   int `json:"fret"`   // 0..MaxFret
}

// Valid reports whether the position exists on the instrument.
func (p Position) Valid() bool {
	return p.String >= 1 && p.String <= NumStrings && p.Fret >= 0 && p.Fret <= MaxFret
}

// Pitch returns the pitch sounded by the position. Each position maps to
// exactly one pitch; the reverse mapping is many-to-one.
func (p Position) Pitch() pitch.Pitch {
	return openPitch[p.String] + pitch.Pitch(p.Fret)
}

// Label returns a short "s<string>/f<fret>" form for logs and cache keys.
func (p Position) Label() string {
	return fmt.Sprintf("s%d/f%d", p.String, p.Fret)
}

// MappedNote is a fully resolved, playable unit: scale digit, fretboard
// position, absolute pitch and note name. Immutable once produced.
type MappedNote struct {
	Digit    int            // 1..7, or 0 for "not in the active major scale"
	Position Position
	Pitch    pitch.Pitch
	Name     string
}

// scaleOffsets maps a major-scale degree (1..7) to its semitone offset
// above the tonal center. Index 0 is unused.
var scaleOffsets = [8]int{0, 0, 2, 4, 5, 7, 9, 11}

// degreeForOffset is the reverse lookup: semitone offset within an octave
// to scale degree, or 0 for a non-member.
var degreeForOffset = map[int]int{0: 1, 2: 2, 4: 3, 5: 4, 7: 5, 9: 6, 11: 7}

// ScaleOffset returns the semitone offset of a major-scale degree above do.
func ScaleOffset(digit int) int {
	return scaleOffsets[digit]
}
