// Package ratelimit throttles benefit-claim traffic with a redis token
// bucket and serializes concurrent claims per (business, event).
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/btcforcorps/orangepages/internal/config"
	redis "github.com/redis/go-redis/v9"
)

const (
	keyBenefitClaimUser = "benefit:claim:user:%s"
	keyBenefitClaimLock = "benefit:claim:lock:%s:%s"

	claimLockTTL = 10 * time.Second
)

type BenefitLimiter struct {
	enabled bool

	bucket *TokenBucket
	locker *Locker
	holder *config.BenefitsConfigHolder
}

func NewBenefitLimiter(cfg config.Config, holder *config.BenefitsConfigHolder) (*BenefitLimiter, error) {
	if !cfg.RateLimitEnabled {
		return nil, nil
	}

	addr := strings.TrimSpace(cfg.RedisAddr)
	if addr == "" {
		return nil, errors.New("rate limit redis addr is required")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: strings.TrimSpace(cfg.RedisPassword),
		DB:       cfg.RedisDB,
	})

	return &BenefitLimiter{
		enabled: true,
		bucket:  NewTokenBucket(client),
		locker:  NewLocker(client),
		holder:  holder,
	}, nil
}

func (l *BenefitLimiter) Enabled() bool {
	return l != nil && l.enabled
}

// AllowUser admits one benefit-claim request for the user. Limits come
// from the hot-reloaded benefits config.
func (l *BenefitLimiter) AllowUser(ctx context.Context, userID string) (*Result, error) {
	if !l.Enabled() {
		return &Result{Allowed: true}, nil
	}
	benefits := l.holder.Current()
	rate := benefits.ClaimRatePerMin / 60.0
	return l.bucket.Allow(ctx, fmt.Sprintf(keyBenefitClaimUser, strings.TrimSpace(userID)), rate, benefits.ClaimBurst)
}

// TryLockClaim takes a short lock so two concurrent claims for the same
// (business, event) cannot both pass the remaining-count check.
func (l *BenefitLimiter) TryLockClaim(ctx context.Context, businessID, eventID string) (string, bool, error) {
	if !l.Enabled() {
		return "", true, nil
	}
	key := fmt.Sprintf(keyBenefitClaimLock, strings.TrimSpace(businessID), strings.TrimSpace(eventID))
	return l.locker.TryLock(ctx, key, claimLockTTL)
}

func (l *BenefitLimiter) ReleaseClaim(ctx context.Context, businessID, eventID, token string) error {
	if !l.Enabled() {
		return nil
	}
	key := fmt.Sprintf(keyBenefitClaimLock, strings.TrimSpace(businessID), strings.TrimSpace(eventID))
	return l.locker.Release(ctx, key, token)
}
