package hold

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/atelierhq/studio-booking-backend/internal/schedule"
)

const holdTTL = 10 * time.Second

// RedisHolder holds individual grid slots via SetNX keys with a short TTL.
type RedisHolder struct {
	client *redis.Client
	grid   schedule.Grid
}

// NewRedisHolder creates a holder backed by the given Redis address.
func NewRedisHolder(addr string, grid schedule.Grid) *RedisHolder {
	return &RedisHolder{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		grid:   grid,
	}
}

func (h *RedisHolder) Acquire(ctx context.Context, resourceID string, start, end time.Time) (Release, bool, error) {
	slots := h.grid.SlotRange(start, start, end)

	keys := make([]string, 0, len(slots))
	for _, slot := range slots {
		keys = append(keys, slotKey(resourceID, start, slot))
	}

	var held []string
	release := func() {
		if len(held) > 0 {
			// Holds expire on their own; deleting early is a courtesy.
			_ = h.client.Del(context.Background(), held...).Err()
		}
	}

	for _, key := range keys {
		ok, err := h.client.SetNX(ctx, key, "held", holdTTL).Result()
		if err != nil {
			release()
			return nil, false, fmt.Errorf("acquire slot hold: %w", err)
		}
		if !ok {
			release()
			return nil, false, nil
		}
		held = append(held, key)
	}

	return release, true, nil
}

// Close releases the underlying Redis connection.
func (h *RedisHolder) Close() error {
	return h.client.Close()
}

func slotKey(resourceID string, day time.Time, slot int) string {
	return fmt.Sprintf("hold:%s:%s:%d", resourceID, day.Format("2006-01-02"), slot)
}
