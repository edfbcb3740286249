package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T) *LoginAttemptStore {
	t.Helper()

	server := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewLoginAttemptStore(client, "test:login", time.Minute)
}

func TestTallyCountsRecordedAttempts(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		if err := store.RecordAttempt(ctx, "1.2.3.4", now.Add(time.Duration(i)*time.Second)); err != nil {
			t.Fatalf("RecordAttempt() error: %v", err)
		}
	}

	count, _, err := store.Tally(ctx, "1.2.3.4", time.Minute, now.Add(3*time.Second))
	if err != nil {
		t.Fatalf("Tally() error: %v", err)
	}
	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}

	count, earliest, err := store.Tally(ctx, "5.6.7.8", time.Minute, now)
	if err != nil {
		t.Fatalf("Tally() error: %v", err)
	}
	if count != 0 {
		t.Errorf("count for other identifier = %d, want 0", count)
	}
	if !earliest.IsZero() {
		t.Errorf("earliest for empty window = %v, want zero time", earliest)
	}
}

func TestTallyEvictsExpiredAttempts(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	if err := store.RecordAttempt(ctx, "a", now.Add(-2*time.Minute)); err != nil {
		t.Fatalf("RecordAttempt() error: %v", err)
	}
	if err := store.RecordAttempt(ctx, "a", now); err != nil {
		t.Fatalf("RecordAttempt() error: %v", err)
	}

	count, _, err := store.Tally(ctx, "a", time.Minute, now)
	if err != nil {
		t.Fatalf("Tally() error: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}

	// The stale attempt is gone from the set, not merely ignored.
	count, _, err = store.Tally(ctx, "a", 10*time.Minute, now)
	if err != nil {
		t.Fatalf("Tally() error: %v", err)
	}
	if count != 1 {
		t.Errorf("count after eviction = %d, want 1", count)
	}
}

func TestTallyReturnsEarliestAttempt(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	first := now.Add(-30 * time.Second)

	if err := store.RecordAttempt(ctx, "c", first); err != nil {
		t.Fatalf("RecordAttempt() error: %v", err)
	}
	if err := store.RecordAttempt(ctx, "c", now); err != nil {
		t.Fatalf("RecordAttempt() error: %v", err)
	}

	count, earliest, err := store.Tally(ctx, "c", time.Minute, now)
	if err != nil {
		t.Fatalf("Tally() error: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
	if !earliest.Equal(first) {
		t.Errorf("earliest = %v, want %v", earliest, first)
	}
}

func TestTallyRejectsNonPositiveWindow(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, _, err := store.Tally(ctx, "x", 0, time.Now()); err == nil {
		t.Error("Tally must reject a zero window")
	}
	if _, _, err := store.Tally(ctx, "x", -time.Second, time.Now()); err == nil {
		t.Error("Tally must reject a negative window")
	}
}

func TestKeyPrefixDefaultsToCommunityKeyspace(t *testing.T) {
	server := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := NewLoginAttemptStore(client, "", 0)
	ctx := context.Background()

	if err := store.RecordAttempt(ctx, "9.9.9.9", time.Now()); err != nil {
		t.Fatalf("RecordAttempt() error: %v", err)
	}

	if !server.Exists("community:login:attempts:9.9.9.9") {
		t.Errorf("keys = %v, want community:login:attempts:9.9.9.9", server.Keys())
	}
}
