package sessions

import (
	"context"
	"time"

	"github.com/redis/rueidis"
)

type RedisStore struct {
	client rueidis.Client
	prefix string
}

func NewRedisStore(client rueidis.Client, keyPrefix string) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: keyPrefix,
	}
}

func (r *RedisStore) Create(ctx context.Context, userID string, ttl time.Duration) (string, error) {
	sessionID, err := newSessionID()
	if err != nil {
		return "", err
	}

	cmd := r.client.B().Setex().Key(r.key(sessionID)).Seconds(int64(ttl.Seconds())).Value(userID).Build()
	if err := r.client.Do(ctx, cmd).Error(); err != nil {
		return "", err
	}

	return sessionID, nil
}

func (r *RedisStore) Lookup(ctx context.Context, sessionID string) (string, error) {
	cmd := r.client.B().Get().Key(r.key(sessionID)).Build()
	userID, err := r.client.Do(ctx, cmd).ToString()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return "", ErrSessionNotFound
		}
		return "", err
	}

	return userID, nil
}

func (r *RedisStore) Delete(ctx context.Context, sessionID string) error {
	cmd := r.client.B().Del().Key(r.key(sessionID)).Build()
	return r.client.Do(ctx, cmd).Error()
}

func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Do(ctx, r.client.B().Ping().Build()).Error()
}

func (r *RedisStore) key(sessionID string) string {
	return r.prefix + sessionID
}
