package game

import (
	"crypto/rand"
	"math/big"
	"strings"
)

const (
	codeLength = 6

	// codeChars leaves out characters that are easy to misread
	codeChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

	maxCodeAttempts = 5
)

// newGameCode returns a random join code
func newGameCode() (string, error) {
	code := make([]byte, codeLength)
	limit := big.NewInt(int64(len(codeChars)))
	for i := range code {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		code[i] = codeChars[n.Int64()]
	}
	return string(code), nil
}

// NormalizeCode trims and upper-cases a code typed by a player
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
