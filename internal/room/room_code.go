package room

import (
	"errors"
	"math/rand"
)

const (
	codeLength = 4
	maxRetries = 100
)

var letters = []byte("ABCDEFGHIJKLMNOPQRSTUVWXYZ")

var ErrNoFreeCode = errors.New("no free session code")

// GenerateCode draws 4-letter uppercase codes from rng until taken reports one
// as free. With 26^4 codes it only gives up when the server is nearly full.
func GenerateCode(rng *rand.Rand, taken func(string) bool) (string, error) {
	b := make([]byte, codeLength)
	for n := 0; n < maxRetries; n++ {
		for i := range b {
			b[i] = letters[rng.Intn(len(letters))]
		}
		if code := string(b); !taken(code) {
			return code, nil
		}
	}
	return "", ErrNoFreeCode
}
