package presence

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	defaultKey    = "presence:visitors"
	visitorPrefix = "visitor_"
	maxVisitorID  = 64
)

// Tracker counts live visitors. Each visitor is a member of a sorted set scored
// by its last heartbeat; members older than the TTL no longer count.
type Tracker struct {
	client *redis.Client
	key    string
	ttl    time.Duration
	now    func() time.Time
}

func NewTracker(client *redis.Client, ttl time.Duration) *Tracker {
	return &Tracker{
		client: client,
		key:    defaultKey,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Heartbeat marks visitorID as online and returns it. An empty or oversized id
// is replaced by a freshly generated one.
func (t *Tracker) Heartbeat(ctx context.Context, visitorID string) (string, error) {
	if visitorID == "" || len(visitorID) > maxVisitorID {
		visitorID = NewVisitorID()
	}
	score := float64(t.now().UnixMilli())
	if err := t.client.ZAdd(ctx, t.key, redis.Z{Score: score, Member: visitorID}).Err(); err != nil {
		return "", fmt.Errorf("presence heartbeat: %w", err)
	}
	return visitorID, nil
}

// Count drops expired visitors and returns how many remain.
func (t *Tracker) Count(ctx context.Context) (int64, error) {
	cutoff := t.now().Add(-t.ttl).UnixMilli()

	var card *redis.IntCmd
	_, err := t.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZRemRangeByScore(ctx, t.key, "-inf", "("+strconv.FormatInt(cutoff, 10))
		card = pipe.ZCard(ctx, t.key)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("presence count: %w", err)
	}
	return card.Val(), nil
}

func (t *Tracker) Leave(ctx context.Context, visitorID string) error {
	if err := t.client.ZRem(ctx, t.key, visitorID).Err(); err != nil {
		return fmt.Errorf("presence leave: %w", err)
	}
	return nil
}

func NewVisitorID() string {
	return visitorPrefix + uuid.NewString()
}
