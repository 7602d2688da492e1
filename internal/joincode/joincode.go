// Package joincode generates the human-shareable codes used to join a
// group: three uppercase letters followed by six digits, e.g. "KXR204817".
// With 26^3 * 10^6 combinations collisions are rare, but uniqueness is
// still verified against existing groups through a caller-supplied
// callback.
package joincode

import (
	"fmt"
	"math/rand"
)

// Length is the total code length: 3 letters + 6 digits.
const Length = 9

// Generate produces one candidate code from the given source. Callers
// that need determinism pass a seeded *rand.Rand.
func Generate(r *rand.Rand) string {
	buf := make([]byte, Length)
	for i := 0; i < 3; i++ {
		buf[i] = byte('A' + r.Intn(26))
	}
	for i := 3; i < Length; i++ {
		buf[i] = byte('0' + r.Intn(10))
	}
	return string(buf)
}

// GenerateUnique retries Generate until exists reports the code as
// unused. The exists callback returns whether a group already holds the
// code; its error aborts generation.
func GenerateUnique(r *rand.Rand, exists func(code string) (bool, error)) (string, error) {
	for {
		code := Generate(r)
		taken, err := exists(code)
		if err != nil {
			return "", fmt.Errorf("failed to check join code uniqueness: %w", err)
		}
		if !taken {
			return code, nil
		}
	}
}

// Valid reports whether the code matches the expected shape.
func Valid(code string) bool {
	if len(code) != Length {
		return false
	}
	for i := 0; i < 3; i++ {
		if code[i] < 'A' || code[i] > 'Z' {
			return false
		}
	}
	for i := 3; i < Length; i++ {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
	}
	return true
}
