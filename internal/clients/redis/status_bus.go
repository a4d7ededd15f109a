package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/luminakids/storyreel-backend/internal/platform/envutil"
	"github.com/luminakids/storyreel-backend/internal/platform/logger"
)

// JobStatusEvent is broadcast on every render-job status transition so the
// admin console's jobs view can update without polling the API.
type JobStatusEvent struct {
	JobID        string    `json:"job_id"`
	Status       string    `json:"status"`
	ErrorMessage string    `json:"error_message,omitempty"`
	OutputURL    string    `json:"output_url,omitempty"`
	At           time.Time `json:"at"`
}

type StatusBus interface {
	Publish(ctx context.Context, evt JobStatusEvent) error
	// StartForwarder subscribes and invokes onEvent for each message until
	// ctx is cancelled.
	StartForwarder(ctx context.Context, onEvent func(evt JobStatusEvent)) error
	Close() error
}

type statusBus struct {
	log     *logger.Logger
	rdb     *goredis.Client
	channel string
}

func NewStatusBus(log *logger.Logger) (StatusBus, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := envutil.Str("REDIS_ADDR", "")
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	ch := envutil.Str("REDIS_JOB_CHANNEL", "job-status")

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &statusBus{
		log:     log.With("client", "RedisStatusBus"),
		rdb:     rdb,
		channel: ch,
	}, nil
}

func (b *statusBus) Publish(ctx context.Context, evt JobStatusEvent) error {
	if evt.At.IsZero() {
		evt.At = time.Now().UTC()
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal status event: %w", err)
	}
	return b.rdb.Publish(ctx, b.channel, payload).Err()
}

func (b *statusBus) StartForwarder(ctx context.Context, onEvent func(evt JobStatusEvent)) error {
	sub := b.rdb.Subscribe(ctx, b.channel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("redis subscribe: %w", err)
	}

	go func() {
		defer sub.Close()
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var evt JobStatusEvent
				if err := json.Unmarshal([]byte(msg.Payload), &evt); err != nil {
					b.log.Warn("Dropping malformed status event", "error", err)
					continue
				}
				onEvent(evt)
			}
		}
	}()
	return nil
}

func (b *statusBus) Close() error {
	return b.rdb.Close()
}
