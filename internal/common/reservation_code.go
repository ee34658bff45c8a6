package common

import "math/rand/v2"

const (
	ReservationCodeAlphabet      = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	DefaultReservationCodeLength = 6
)

// GenerateReservationCode draws length characters uniformly from A-Z0-9.
// Codes are not unique by construction; callers retry on collision.
func GenerateReservationCode(length int) string {
	if length <= 0 {
		length = DefaultReservationCodeLength
	}
	code := make([]byte, length)
	for i := range code {
		code[i] = ReservationCodeAlphabet[rand.IntN(len(ReservationCodeAlphabet))]
	}
	return string(code)
}
