// Package random generates passwords and tokens from the platform's
// cryptographic source.
package random

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
)

// passwordAlphabet deliberately omits characters that read ambiguously
// (0/O, 1/l/I) so generated passwords survive being typed from paper.
const passwordAlphabet = "abcdefghijkmnopqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// MinPasswordLength is the shortest password Password will generate.
const MinPasswordLength = 6

// Password generates a random password of the given length from an
// unambiguous alphabet.
func Password(length int) (string, error) {
	if length < MinPasswordLength {
		return "", fmt.Errorf("random: password length %d below minimum %d", length, MinPasswordLength)
	}
	out := make([]byte, length)
	max := big.NewInt(int64(len(passwordAlphabet)))
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("random: read entropy: %w", err)
		}
		out[i] = passwordAlphabet[n.Int64()]
	}
	return string(out), nil
}

// Token generates a hex token carrying the given number of random
// bytes, suitable for session or reset keys.
func Token(bytes int) (string, error) {
	if bytes <= 0 {
		return "", fmt.Errorf("random: token size must be positive")
	}
	buf := make([]byte, bytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("random: read entropy: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
