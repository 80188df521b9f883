package app

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// AccessTokenBytes is the entropy of a minted access token before hex encoding.
const AccessTokenBytes = 128

// TokenGenerator mints access tokens.
type TokenGenerator func() (string, error)

func NewAccessToken() (string, error) {
	buf := make([]byte, AccessTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate access token failed: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
