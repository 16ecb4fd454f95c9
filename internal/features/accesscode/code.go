package accesscode

import (
	"crypto/rand"
	"fmt"
)

// Crockford base32 without I, L, O and U.
const codeAlphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

const (
	codeGroups    = 3
	codeGroupSize = 4
)

// generateCode is swapped in tests to force collisions.
var generateCode = randomCode

// randomCode returns a code such as 7K2M-QX9D-A4TE.
// 256 is a multiple of 32, so masking a random byte keeps symbols uniform.
func randomCode() (string, error) {
	raw := make([]byte, codeGroups*codeGroupSize)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}

	out := make([]byte, 0, len(raw)+codeGroups-1)
	for i, b := range raw {
		if i > 0 && i%codeGroupSize == 0 {
			out = append(out, '-')
		}
		out = append(out, codeAlphabet[b&31])
	}
	return string(out), nil
}
