package session

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/btcforcorps/orangepages/internal/config"
	"github.com/google/uuid"
	redis "github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

var ErrSessionNotFound = errors.New("session_not_found")

// Store maps opaque session tokens to user IDs in redis. Sessions expire
// on their own; Destroy only exists for explicit logout.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStore(cfg config.Config) *Store {
	client := redis.NewClient(&redis.Options{
		Addr:     strings.TrimSpace(cfg.RedisAddr),
		Password: strings.TrimSpace(cfg.RedisPassword),
		DB:       cfg.RedisDB,
	})
	return &Store{
		client: client,
		ttl:    time.Duration(cfg.SessionTTLHours) * time.Hour,
	}
}

func (s *Store) Create(ctx context.Context, userID string) (string, time.Time, error) {
	token := uuid.NewString()
	expiresAt := time.Now().Add(s.ttl)
	err := s.client.Set(ctx, sessionKeyPrefix+token, userID, s.ttl).Err()
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

func (s *Store) Resolve(ctx context.Context, token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrSessionNotFound
	}
	userID, err := s.client.Get(ctx, sessionKeyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrSessionNotFound
		}
		return "", err
	}
	return userID, nil
}

func (s *Store) Destroy(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	return s.client.Del(ctx, sessionKeyPrefix+token).Err()
}
