package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
)

// CodeChallengeMethod is the PKCE transform sent along with a challenge.
const CodeChallengeMethod = "s256"

// NewCodeVerifier returns a random PKCE code verifier of 43 url-safe characters.
func NewCodeVerifier() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// CodeChallenge derives the S256 challenge for verifier.
func CodeChallenge(verifier string) string {
	sum := sha256.Sum256([]byte(verifier))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
