package storage

import (
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// CachedCount reads an integer aggregate through Redis. On a cache
// miss the fetch function is called and the result stored with the
// given TTL. Redis being absent or failing degrades to a direct fetch;
// the chat assistant must keep answering either way.
func (s *Service) CachedCount(key string, ttl time.Duration, fetch func() (int64, error)) (int64, error) {
	if s.Redis == nil {
		return fetch()
	}

	cached, err := s.Redis.Get(s.Ctx, key).Result()
	if err == nil {
		if value, parseErr := strconv.ParseInt(cached, 10, 64); parseErr == nil {
			return value, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		slog.Debug("aggregate cache read failed", "key", key, "error", err)
	}

	value, err := fetch()
	if err != nil {
		return 0, err
	}

	if err := s.Redis.Set(s.Ctx, key, strconv.FormatInt(value, 10), ttl).Err(); err != nil {
		slog.Debug("aggregate cache write failed", "key", key, "error", err)
	}
	return value, nil
}
