package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis stores one hash per equipment, one field per queried window, so an
// invalidation drops every window of that equipment with a single DEL.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{client: client, ttl: ttl}
}

// Connect dials redis and pings it once.
func Connect(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

func (r *Redis) Get(ctx context.Context, equipmentID int64, window string, dst any) (bool, error) {
	raw, err := r.client.HGet(ctx, key(equipmentID), window).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (r *Redis) Set(ctx context.Context, equipmentID int64, window string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	k := key(equipmentID)
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, k, window, raw)
		pipe.Expire(ctx, k, r.ttl)
		return nil
	})
	return err
}

func (r *Redis) Invalidate(ctx context.Context, equipmentIDs ...int64) error {
	if len(equipmentIDs) == 0 {
		return nil
	}
	keys := make([]string, 0, len(equipmentIDs))
	for _, id := range equipmentIDs {
		keys = append(keys, key(id))
	}
	return r.client.Del(ctx, keys...).Err()
}
