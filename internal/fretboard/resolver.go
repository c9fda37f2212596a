package fretboard

import (
	"fmt"
	"math"

	"github.com/SsnAgo/guitar-practice/internal/pitch"
)

// homeDo is the tonal center whose fingering is hard-wired; every other
// pitch-anchored center is reached by transposing from here.
const homeDo = "C"

// homePositions is the idiomatic open-position C major fingering, one
// position per scale degree. Degree 1 is the C on the A string, third fret.
// Index 0 is unused.
var homePositions = [8]Position{
	1: {String: 5, Fret: 3}, // C3
	2: {String: 4, Fret: 0}, // D3
	3: {String: 4, Fret: 2}, // E3
	4: {String: 4, Fret: 3}, // F3
	5: {String: 3, Fret: 0}, // G3
	6: {String: 3, Fret: 2}, // A3
	7: {String: 2, Fret: 0}, // B3
}

// Distance weights for the position search. A string crossing counts as two
// fret slides, so the search prefers staying on the same string and sliding.
const (
	fretWeight   = 1.0
	stringWeight = 2.0
)

// highestPitch is the top of the playable range: the first string at the
// last fret.
func highestPitch() pitch.Pitch {
	return openPitch[1] + pitch.Pitch(MaxFret)
}

// Resolve maps a scale degree onto a concrete fretboard position and pitch
// under the given do-specification.
//
// For PitchDo at the home center the fixed fingering table is used directly;
// any other note name transposes the home fingering's pitch by the chromatic
// difference and searches for the nearest position anchored at the home
// fingering. For PositionDo the degree's pitch is offset from the anchor
// position's pitch and the search is anchored at that position.
//
// A position-anchored do high on the neck can push upper degrees past the
// last fret; those degrees are voiced an octave lower instead, so every
// playable position is a valid anchor.
//
// Resolve panics when the target pitch is unreachable on the instrument:
// that cannot happen for major-scale degrees under a supported tuning, so it
// indicates a misconfigured tuning table rather than a user error.
func Resolve(digit int, do DoSpec) MappedNote {
	if digit < 1 || digit > 7 {
		panic(fmt.Sprintf("fretboard: scale degree %d out of range 1..7", digit))
	}

	var target pitch.Pitch
	var pos Position

	switch d := do.(type) {
	case PitchDo:
		idx, ok := pitch.NameIndex(d.Name)
		if !ok {
			panic(fmt.Sprintf("fretboard: unknown do note name %q", d.Name))
		}
		homeIdx, _ := pitch.NameIndex(homeDo)
		diff := ((idx-homeIdx)%12 + 12) % 12
		ref := homePositions[digit]
		target = ref.Pitch() + pitch.Pitch(diff)
		if diff == 0 {
			pos = ref // natural fingering, no search needed
		} else {
			pos = nearestPosition(target, ref)
		}
	case PositionDo:
		target = d.Pos.Pitch() + pitch.Pitch(ScaleOffset(digit))
		if target > highestPitch() {
			target -= 12
		}
		pos = nearestPosition(target, d.Pos)
	default:
		panic(fmt.Sprintf("fretboard: unhandled do spec %T", do))
	}

	return MappedNote{
		Digit:    digit,
		Position: pos,
		Pitch:    target,
		Name:     target.Name(),
	}
}

// nearestPosition finds the playable position sounding target that minimizes
// hand movement away from ref. Ties break to the lowest fret, then the
// lowest string number, so resolution is deterministic.
func nearestPosition(target pitch.Pitch, ref Position) Position {
	best := Position{}
	bestScore := math.Inf(1)
	found := false

	for s := 1; s <= NumStrings; s++ {
		fret := int(target - openPitch[s])
		if fret < 0 || fret > MaxFret {
			continue
		}
		score := fretWeight*math.Abs(float64(fret-ref.Fret)) +
			stringWeight*math.Abs(float64(s-ref.String))
		better := score < bestScore ||
			(score == bestScore && (fret < best.Fret ||
				(fret == best.Fret && s < best.String)))
		if !found || better {
			best = Position{String: s, Fret: fret}
			bestScore = score
			found = true
		}
	}

	if !found {
		panic(fmt.Sprintf("fretboard: pitch %s unreachable within %d frets; tuning table misconfigured?",
			target, MaxFret))
	}
	return best
}

// DoPitch returns the absolute pitch that degree 1 sounds under the given
// do-specification.
func DoPitch(do DoSpec) pitch.Pitch {
	switch d := do.(type) {
	case PitchDo:
		idx, ok := pitch.NameIndex(d.Name)
		if !ok {
			panic(fmt.Sprintf("fretboard: unknown do note name %q", d.Name))
		}
		homeIdx, _ := pitch.NameIndex(homeDo)
		diff := ((idx-homeIdx)%12 + 12) % 12
		return homePositions[1].Pitch() + pitch.Pitch(diff)
	case PositionDo:
		return d.Pos.Pitch()
	default:
		panic(fmt.Sprintf("fretboard: unhandled do spec %T", do))
	}
}

// Tap resolves a user-tapped fretboard position against the active scale.
// The position's pitch is known; the digit is inferred from scale membership
// and is 0 when the tapped pitch is not a member of the active major scale.
func Tap(pos Position, do DoSpec) MappedNote {
	p := pos.Pitch()
	rel := ((int(p-DoPitch(do)) % 12) + 12) % 12
	return MappedNote{
		Digit:    degreeForOffset[rel], // zero value is the non-member sentinel
		Position: pos,
		Pitch:    p,
		Name:     p.Name(),
	}
}
