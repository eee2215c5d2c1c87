package storage

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"

	"rsi-tracker/src/helpers"
	"rsi-tracker/src/logger"
	"rsi-tracker/src/models"
)

const redisKeyPrefix = "assets:"

// -----------------------------------------------------------------------------

// RedisStore keeps the cache in Redis. Entries are stored as JSON so the
// timestamp travels with the payload and the day-validity check needs no
// second lookup.
type RedisStore struct {
	Config *models.MConfig
	Client *redis.Client
	Logger *logger.Logger

	initOnce sync.Once
	initErr  error
}

// -----------------------------------------------------------------------------

func NewRedisStore(cfg *models.MConfig, log *logger.Logger) *RedisStore {
	return &RedisStore{
		Config: cfg,
		Logger: log,
	}
}

// -----------------------------------------------------------------------------

func (s *RedisStore) Initialize() error {
	s.initOnce.Do(func() {
		s.Client = redis.NewClient(&redis.Options{
			Addr:     s.Config.Storage.RedisAddr,
			Password: s.Config.Storage.RedisPassword,
			DB:       s.Config.Storage.RedisDB,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := s.Client.Ping(ctx).Err(); err != nil {
			s.initErr = &helpers.DatabaseError{TrackerError: helpers.TrackerError{Message: "failed to reach redis", Cause: err}}
			return
		}
		s.Logger.Info("Redis cache initialized at %s", s.Config.Storage.RedisAddr)
	})
	return s.initErr
}

// -----------------------------------------------------------------------------

func (s *RedisStore) Get(ctx context.Context, key string) (*models.MCacheEntry, error) {
	raw, err := s.Client.Get(ctx, redisKeyPrefix+key).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, &helpers.DatabaseError{TrackerError: helpers.TrackerError{Message: "failed to read cache entry", Cause: err}}
	}

	var entry models.MCacheEntry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		return nil, &helpers.DatabaseError{TrackerError: helpers.TrackerError{Message: "corrupt cache entry", Cause: err}}
	}
	return &entry, nil
}

// -----------------------------------------------------------------------------

func (s *RedisStore) Put(ctx context.Context, entry models.MCacheEntry) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	if err := s.Client.Set(ctx, redisKeyPrefix+entry.Symbol, raw, 0).Err(); err != nil {
		return &helpers.DatabaseError{TrackerError: helpers.TrackerError{Message: "failed to write cache entry", Cause: err}}
	}
	return nil
}

// -----------------------------------------------------------------------------

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.Client.Del(ctx, redisKeyPrefix+key).Err(); err != nil {
		return &helpers.DatabaseError{TrackerError: helpers.TrackerError{Message: "failed to delete cache entry", Cause: err}}
	}
	return nil
}

// -----------------------------------------------------------------------------

func (s *RedisStore) Clear(ctx context.Context) error {
	iter := s.Client.Scan(ctx, 0, redisKeyPrefix+"*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return &helpers.DatabaseError{TrackerError: helpers.TrackerError{Message: "failed to scan cache keys", Cause: err}}
	}
	if len(keys) > 0 {
		if err := s.Client.Del(ctx, keys...).Err(); err != nil {
			return &helpers.DatabaseError{TrackerError: helpers.TrackerError{Message: "failed to clear cache", Cause: err}}
		}
	}
	s.Logger.Info("Redis cache cleared (%d keys)", len(keys))
	return nil
}

// -----------------------------------------------------------------------------

func (s *RedisStore) Close() error {
	if s.Client != nil {
		return s.Client.Close()
	}
	return nil
}
