package sessions

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_CreateLookupDelete(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	sid, err := store.Create(ctx, "user-1", time.Hour)
	require.NoError(t, err)
	assert.Len(t, sid, 64)

	userID, err := store.Lookup(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)

	require.NoError(t, store.Delete(ctx, sid))

	_, err = store.Lookup(ctx, sid)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemoryStore_Expiry(t *testing.T) {
	store := NewMemoryStore()
	now := time.Now()
	store.now = func() time.Time { return now }
	ctx := context.Background()

	sid, err := store.Create(ctx, "user-1", time.Minute)
	require.NoError(t, err)

	store.now = func() time.Time { return now.Add(2 * time.Minute) }

	_, err = store.Lookup(ctx, sid)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemoryStore_UnknownSession(t *testing.T) {
	_, err := NewMemoryStore().Lookup(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
