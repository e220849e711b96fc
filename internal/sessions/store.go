package sessions

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"
)

// Store maps opaque session ids (the sid cookie) to user ids.
type Store interface {
	Create(ctx context.Context, userID string, ttl time.Duration) (string, error)

	Lookup(ctx context.Context, sessionID string) (string, error)

	Delete(ctx context.Context, sessionID string) error
}

var ErrSessionNotFound = errors.New("session not found or expired")

func newSessionID() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
