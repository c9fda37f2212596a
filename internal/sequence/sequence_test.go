package sequence

import "testing"

func TestGenerateClampsLength(t *testing.T) {
	for _, req := range []int{-5, 0, 3, 7} {
		if got := Generate(req).Len(); got != MinLength {
			t.Errorf("Generate(%d).Len() = %d, want %d", req, got, MinLength)
		}
	}
	if got := Generate(20).Len(); got != 20 {
		t.Errorf("Generate(20).Len() = %d, want 20", got)
	}
}

func TestGenerateFirstSevenIsPermutation(t *testing.T) {
	// Every call must yield a permutation of 1..7: no value missing, no
	// duplicates within the first seven.
	for i := 0; i < 1000; i++ {
		seq := Generate(7)
		var seen [8]bool
		for _, d := range seq.Digits {
			if d < 1 || d > 7 {
				t.Fatalf("digit %d out of range", d)
			}
			if seen[d] {
				t.Fatalf("digit %d duplicated in %v", d, seq.Digits)
			}
			seen[d] = true
		}
		for d := 1; d <= 7; d++ {
			if !seen[d] {
				t.Fatalf("digit %d missing from %v", d, seq.Digits)
			}
		}
	}
}

func TestGenerateLongSequenceCoverage(t *testing.T) {
	for i := 0; i < 100; i++ {
		seq := Generate(30)
		counts := make(map[int]int)
		for _, d := range seq.Digits {
			if d < 1 || d > 7 {
				t.Fatalf("digit %d out of range in %v", d, seq.Digits)
			}
			counts[d]++
		}
		for d := 1; d <= 7; d++ {
			if counts[d] < 1 {
				t.Fatalf("digit %d absent from length-30 sequence", d)
			}
		}
	}
}

func TestGenerateAssignsUniqueIDs(t *testing.T) {
	a, b := Generate(7), Generate(7)
	if a.ID == "" || b.ID == "" {
		t.Fatal("sequence ID empty")
	}
	if a.ID == b.ID {
		t.Fatal("two sequences share an ID")
	}
}

func TestGenerateShufflesUniformly(t *testing.T) {
	// A crude bias check: over many draws, each digit should appear first
	// roughly 1/7 of the time. Allow a generous band; this is guarding
	// against a broken shuffle, not measuring entropy.
	const draws = 7000
	first := make(map[int]int)
	for i := 0; i < draws; i++ {
		first[Generate(7).Digits[0]]++
	}
	for d := 1; d <= 7; d++ {
		if first[d] < draws/14 || first[d] > draws/4 {
			t.Errorf("digit %d appeared first %d times out of %d", d, first[d], draws)
		}
	}
}
