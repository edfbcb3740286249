package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/arklim/social-platform-community/internal/core/port"
)

const defaultKeyPrefix = "community:login:attempts"

// LoginAttemptStore keeps one sorted set of attempt timestamps per
// identifier. It answers the only question the login limiter asks: how many
// attempts remain inside the window, and when did the earliest of them
// happen.
type LoginAttemptStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewLoginAttemptStore constructs a store under the given keyspace prefix.
// A non-positive ttl leaves keys without expiry.
func NewLoginAttemptStore(client *redis.Client, prefix string, ttl time.Duration) *LoginAttemptStore {
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	return &LoginAttemptStore{client: client, prefix: prefix, ttl: ttl}
}

// RecordAttempt appends one attempt and refreshes the key expiry in a single
// round trip.
func (s *LoginAttemptStore) RecordAttempt(ctx context.Context, identifier string, at time.Time) error {
	key := s.key(identifier)

	pipe := s.client.TxPipeline()
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(at.UnixNano()), Member: at.UnixNano()})
	if s.ttl > 0 {
		pipe.Expire(ctx, key, s.ttl)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("record login attempt: %w", err)
	}
	return nil
}

// Tally drops attempts that fell out of the window, then reports how many
// remain and the earliest remaining timestamp. A zero time means the window
// is empty. Trim and count run in one transaction so a concurrent attempt
// cannot land between them.
func (s *LoginAttemptStore) Tally(ctx context.Context, identifier string, window time.Duration, now time.Time) (int, time.Time, error) {
	if window <= 0 {
		return 0, time.Time{}, errors.New("window must be positive")
	}

	key := s.key(identifier)
	cutoff := strconv.FormatFloat(float64(now.Add(-window).UnixNano()), 'f', -1, 64)

	pipe := s.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, key, "-inf", cutoff)
	card := pipe.ZCard(ctx, key)
	earliest := pipe.ZRange(ctx, key, 0, 0)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, time.Time{}, fmt.Errorf("tally login attempts: %w", err)
	}

	members := earliest.Val()
	if len(members) == 0 {
		return int(card.Val()), time.Time{}, nil
	}

	nanos, err := strconv.ParseInt(members[0], 10, 64)
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("parse attempt timestamp: %w", err)
	}

	return int(card.Val()), time.Unix(0, nanos), nil
}

func (s *LoginAttemptStore) key(identifier string) string {
	return s.prefix + ":" + identifier
}

var _ port.RateLimitStore = (*LoginAttemptStore)(nil)
