package fretboard

import (
	"strings"
	"testing"

	"github.com/SsnAgo/guitar-practice/internal/pitch"
)

func TestResolveHomeFingering(t *testing.T) {
	// At the home tonal center the fixed fingering table is used verbatim.
	do := PitchDo{Name: "C"}
	for digit := 1; digit <= 7; digit++ {
		note := Resolve(digit, do)
		if note.Position != homePositions[digit] {
			t.Errorf("digit %d: position = %+v, want %+v", digit, note.Position, homePositions[digit])
		}
		if note.Pitch != homePositions[digit].Pitch() {
			t.Errorf("digit %d: pitch = %d, want %d", digit, note.Pitch, homePositions[digit].Pitch())
		}
	}

	// The canonical spot check: do=C, digit 1 is the C on the A string.
	note := Resolve(1, do)
	if note.Position != (Position{String: 5, Fret: 3}) {
		t.Errorf("do=C digit 1 resolved to %+v, want {5 3}", note.Position)
	}
	if note.Name != "C" {
		t.Errorf("do=C digit 1 note name = %q, want C", note.Name)
	}
}

func TestResolveAllCentersInBounds(t *testing.T) {
	// Every degree of every pitch-anchored center must land on a real
	// position sounding the right pitch class.
	cIdx, _ := pitch.NameIndex("C")
	for _, name := range pitch.NoteNames() {
		idx, _ := pitch.NameIndex(name)
		diff := ((idx-cIdx)%12 + 12) % 12
		for digit := 1; digit <= 7; digit++ {
			note := Resolve(digit, PitchDo{Name: name})
			if !note.Position.Valid() {
				t.Fatalf("do=%s digit %d: position %+v out of bounds", name, digit, note.Position)
			}
			if note.Position.Pitch() != note.Pitch {
				t.Errorf("do=%s digit %d: position sounds %d, note says %d",
					name, digit, note.Position.Pitch(), note.Pitch)
			}
			want := pitch.IndexName(int(homePositions[digit].Pitch()) + diff)
			if note.Name != want {
				t.Errorf("do=%s digit %d: note name %q, want %q", name, digit, note.Name, want)
			}
		}
	}
}

func TestResolvePositionAnchored(t *testing.T) {
	do := PositionDo{Pos: Position{String: 6, Fret: 5}} // A2
	tests := []struct {
		digit   int
		wantPos Position
		wantStr string
	}{
		{1, Position{String: 6, Fret: 5}, "A2"},  // do stays put
		{2, Position{String: 6, Fret: 7}, "B2"},  // slide beats crossing
		{5, Position{String: 5, Fret: 7}, "E3"},  // crossing beats a 7-fret slide
	}
	for _, tt := range tests {
		note := Resolve(tt.digit, do)
		if note.Position != tt.wantPos {
			t.Errorf("digit %d: position = %+v, want %+v", tt.digit, note.Position, tt.wantPos)
		}
		if got := note.Pitch.String(); got != tt.wantStr {
			t.Errorf("digit %d: pitch = %s, want %s", tt.digit, got, tt.wantStr)
		}
	}
}

func TestResolveHighAnchorFoldsDegreesDown(t *testing.T) {
	do := PositionDo{Pos: Position{String: 1, Fret: 4}} // G#4, 10 semitones below the top
	for digit := 1; digit <= 7; digit++ {
		note := Resolve(digit, do)
		if !note.Position.Valid() {
			t.Fatalf("digit %d: position %+v out of bounds", digit, note.Position)
		}
		wantClass := (int(do.Pos.Pitch()) + ScaleOffset(digit)) % 12
		if int(note.Pitch)%12 != wantClass {
			t.Errorf("digit %d: pitch class %d, want %d", digit, int(note.Pitch)%12, wantClass)
		}
	}
	// The seventh would sound above the last fret; it drops an octave
	// instead of failing.
	if got := Resolve(7, do).Pitch.String(); got != "G4" {
		t.Errorf("digit 7: pitch = %s, want G4", got)
	}
}

func TestResolveAnyAnchorStaysOnInstrument(t *testing.T) {
	// Every playable cell is a legal do anchor, including the top of the
	// neck: no degree may resolve off the instrument, and none may panic.
	for s := 1; s <= NumStrings; s++ {
		for f := 0; f <= MaxFret; f++ {
			do := PositionDo{Pos: Position{String: s, Fret: f}}
			for digit := 1; digit <= 7; digit++ {
				note := Resolve(digit, do)
				if !note.Position.Valid() {
					t.Fatalf("do=s%d/f%d digit %d: position %+v out of bounds",
						s, f, digit, note.Position)
				}
				if note.Position.Pitch() != note.Pitch {
					t.Errorf("do=s%d/f%d digit %d: position sounds %d, note says %d",
						s, f, digit, note.Position.Pitch(), note.Pitch)
				}
			}
		}
	}
}

func TestResolveDeterministic(t *testing.T) {
	do := PitchDo{Name: "F#"}
	for digit := 1; digit <= 7; digit++ {
		first := Resolve(digit, do)
		for i := 0; i < 10; i++ {
			if again := Resolve(digit, do); again != first {
				t.Fatalf("digit %d: resolution not stable: %+v vs %+v", digit, first, again)
			}
		}
	}
}

func TestNearestPositionPrefersSameString(t *testing.T) {
	// B3 (59) from the D-string home region: the 4-fret slide on the G
	// string is closer than the open B string two strings away.
	got := nearestPosition(59, Position{String: 3, Fret: 2})
	if got != (Position{String: 3, Fret: 4}) {
		t.Errorf("nearestPosition(59, s3/f2) = %+v, want {3 4}", got)
	}
}

func TestNearestPositionTieBreaksLowestFret(t *testing.T) {
	// From s2/f3, pitch 59 scores 3.0 both as s2/f0 (3-fret slide) and
	// s3/f4 (1-fret slide + 1 string crossing). The tie goes to the
	// lower fret.
	got := nearestPosition(59, Position{String: 2, Fret: 3})
	if got != (Position{String: 2, Fret: 0}) {
		t.Errorf("tie broke to %+v, want {2 0}", got)
	}
}

func TestNearestPositionUnreachablePanics(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic for unreachable pitch")
		}
		if !strings.Contains(r.(string), "unreachable") {
			t.Fatalf("unexpected panic message: %v", r)
		}
	}()
	nearestPosition(20, Position{String: 6, Fret: 0}) // below the low E
}

func TestTapScaleMembership(t *testing.T) {
	do := PitchDo{Name: "C"}
	tests := []struct {
		pos       Position
		wantDigit int
		wantName  string
	}{
		{Position{String: 5, Fret: 3}, 1, "C"},
		{Position{String: 5, Fret: 4}, 0, "C#"}, // not in C major
		{Position{String: 3, Fret: 0}, 5, "G"},
		{Position{String: 1, Fret: 1}, 4, "F"},  // octave above still degree 4
		{Position{String: 6, Fret: 2}, 0, "F#"},
	}
	for _, tt := range tests {
		note := Tap(tt.pos, do)
		if note.Digit != tt.wantDigit {
			t.Errorf("tap %s: digit = %d, want %d", tt.pos.Label(), note.Digit, tt.wantDigit)
		}
		if note.Name != tt.wantName {
			t.Errorf("tap %s: name = %q, want %q", tt.pos.Label(), note.Name, tt.wantName)
		}
		if note.Pitch != tt.pos.Pitch() {
			t.Errorf("tap %s: pitch = %d, want %d", tt.pos.Label(), note.Pitch, tt.pos.Pitch())
		}
	}
}

func TestTapPositionAnchored(t *testing.T) {
	do := PositionDo{Pos: Position{String: 6, Fret: 0}} // do = E2
	if note := Tap(Position{String: 6, Fret: 2}, do); note.Digit != 2 {
		t.Errorf("F#2 against E-do: digit = %d, want 2", note.Digit)
	}
	if note := Tap(Position{String: 6, Fret: 12}, do); note.Digit != 1 {
		t.Errorf("E3 against E-do: digit = %d, want 1 (octave equivalence)", note.Digit)
	}
	if note := Tap(Position{String: 6, Fret: 1}, do); note.Digit != 0 {
		t.Errorf("F2 against E-do: digit = %d, want 0", note.Digit)
	}
}
