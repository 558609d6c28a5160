package sharing

import (
	"crypto/rand"
	"fmt"

	"github.com/btcsuite/btcutil/base58"
)

// SharingKeyLength is the number of random bytes behind one sharing key
const SharingKeyLength = 16

// GenerateSharingKey produces a new opaque sharing key: base58-encoded random
// bytes, URL-safe without escaping. Keys are unique for any practical number
// of shares and immutable once issued.
func GenerateSharingKey() (string, error) {
	raw := make([]byte, SharingKeyLength)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate sharing key: %w", err)
	}
	return base58.Encode(raw), nil
}
