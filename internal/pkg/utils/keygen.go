package utils

import (
	"crypto/rand"
	"math/big"
	"strings"
)

const base62Chars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

const secretKeyLen = 48

// GenerateKey returns a random base62 secret with the given prefix, used as
// a workspace bearer token.
func GenerateKey(prefix string) (string, error) {
	var sb strings.Builder
	sb.WriteString(prefix)

	for range secretKeyLen {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(base62Chars))))
		if err != nil {
			return "", err
		}
		sb.WriteByte(base62Chars[num.Int64()])
	}

	return sb.String(), nil
}
