// Package cryptox implements the one-way credential hasher used for account
// passwords. Digests are bcrypt strings with the salt and cost embedded, so
// hashing the same plaintext twice yields different digests and verification
// needs no external parameters.
package cryptox

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashCost is the bcrypt cost used for newly hashed passwords.
const HashCost = bcrypt.DefaultCost

// VerifyResult is the outcome of comparing a digest against a plaintext
// candidate.
type VerifyResult int

const (
	// Mismatch means the plaintext does not correspond to the digest.
	Mismatch VerifyResult = iota
	// Match means the plaintext corresponds to the digest.
	Match
	// MatchStaleCost means the plaintext matches, but the digest was
	// produced with a cost below HashCost and should be rehashed when
	// convenient. Callers may treat it exactly like Match.
	MatchStaleCost
)

// HashPassword hashes a plaintext password. The returned digest embeds a
// fresh random salt.
func HashPassword(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), HashCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(digest), nil
}

// VerifyPassword checks plaintext against a digest produced by HashPassword.
// The comparison is constant time with respect to the password. A malformed
// digest is reported as an error, never as a silent Mismatch.
func VerifyPassword(digest string, plaintext string) (VerifyResult, error) {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return Mismatch, nil
	}
	if err != nil {
		return Mismatch, fmt.Errorf("malformed digest: %w", err)
	}

	cost, err := bcrypt.Cost([]byte(digest))
	if err != nil {
		return Mismatch, fmt.Errorf("malformed digest: %w", err)
	}
	if cost < HashCost {
		return MatchStaleCost, nil
	}

	return Match, nil
}
