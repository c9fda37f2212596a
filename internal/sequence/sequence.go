// Package sequence produces the random solfège-digit sequences the trainer
// plays back.
package sequence

import (
	"math/rand"

	"github.com/google/uuid"
)

// MinLength is the shortest sequence that can cover every scale degree once.
const MinLength = 7

// Sequence is an ordered run of scale degrees (1..7). The first seven
// elements are a permutation of 1..7 so every degree appears at least once;
// anything beyond that is unconstrained uniform digits.
type Sequence struct {
	ID     string `json:"id"`
	Digits []int  `json:"digits"`
}

// Len returns the number of digits in the sequence.
func (s Sequence) Len() int {
	return len(s.Digits)
}

// Generate builds a new practice sequence of the requested length. Lengths
// below MinLength are clamped up to it. The leading seven digits are an
// unbiased random permutation of 1..7 (Fisher-Yates via rand.Shuffle, never
// rejection sampling); the remainder is independent uniform digits in 1..7.
// The digit-0 sentinel is never generated.
func Generate(length int) Sequence {
	if length < MinLength {
		length = MinLength
	}

	digits := make([]int, 0, length)
	for d := 1; d <= 7; d++ {
		digits = append(digits, d)
	}
	rand.Shuffle(len(digits), func(i, j int) {
		digits[i], digits[j] = digits[j], digits[i]
	})

	for len(digits) < length {
		digits = append(digits, rand.Intn(7)+1)
	}

	return Sequence{
		ID:     uuid.New().String(),
		Digits: digits,
	}
}
