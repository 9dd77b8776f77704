package formstore

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/formkit/pkg/form"
)

// RedisStore keeps snapshots as JSON strings with a TTL.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewRedisStore creates a store on client. Keys are prefix+id; a ttl of zero
// keeps snapshots until deleted.
func NewRedisStore(client redis.UniversalClient, prefix string, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, prefix: prefix, ttl: ttl}
}

func (r *RedisStore) key(id string) string {
	return r.prefix + id
}

func (r *RedisStore) Save(ctx context.Context, s form.Snapshot) error {
	if err := check(s); err != nil {
		return err
	}
	b, err := encode(s)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.key(s.ID), b, r.ttl).Err(); err != nil {
		return errors.Join(ErrStoreFailed, err)
	}
	return nil
}

func (r *RedisStore) Get(ctx context.Context, id string) (form.Snapshot, error) {
	b, err := r.client.Get(ctx, r.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return form.Snapshot{}, ErrSnapshotNotFound
	}
	if err != nil {
		return form.Snapshot{}, errors.Join(ErrStoreFailed, err)
	}
	return decode(b)
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, r.key(id)).Err(); err != nil {
		return errors.Join(ErrStoreFailed, err)
	}
	return nil
}
