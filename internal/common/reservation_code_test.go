package common

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateReservationCode(t *testing.T) {
	pattern := regexp.MustCompile(`^[A-Z0-9]+$`)

	code := GenerateReservationCode(0)
	assert.Len(t, code, DefaultReservationCodeLength)
	assert.Regexp(t, pattern, code)

	long := GenerateReservationCode(10)
	assert.Len(t, long, 10)
	assert.Regexp(t, pattern, long)
}

func TestGenerateReservationCode_UsesWholeAlphabet(t *testing.T) {
	seen := make(map[rune]bool)
	for i := 0; i < 2000; i++ {
		for _, c := range GenerateReservationCode(6) {
			seen[c] = true
		}
	}
	assert.Len(t, seen, len(ReservationCodeAlphabet))
}
