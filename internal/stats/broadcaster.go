package stats

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	ws "github.com/adibarra/shadle/pkg/http/ws"
)

// Broadcaster listens for Redis Pub/Sub stats updates and forwards them to
// every connected WebSocket client.
type Broadcaster struct {
	redis   *redis.Client
	hub     *ws.Hub
	channel string
	logger  zerolog.Logger
}

// NewBroadcaster creates a Pub/Sub powered stats broadcaster.
func NewBroadcaster(redis *redis.Client, hub *ws.Hub, channel string, logger zerolog.Logger) *Broadcaster {
	if channel == "" {
		channel = UpdateChannel
	}
	return &Broadcaster{
		redis:   redis,
		hub:     hub,
		channel: channel,
		logger:  logger.With().Str("component", "stats_broadcaster").Logger(),
	}
}

// Run subscribes to the update channel and blocks until the context is
// cancelled.
func (b *Broadcaster) Run(ctx context.Context) error {
	if b.redis == nil || b.hub == nil {
		return nil
	}

	sub := b.redis.Subscribe(ctx, b.channel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			b.forward(msg.Payload)
		}
	}
}

func (b *Broadcaster) forward(payload string) {
	// Validate before fanning out; a garbled document stops here.
	var stats PuzzleStats
	if err := json.Unmarshal([]byte(payload), &stats); err != nil {
		b.logger.Warn().Err(err).Msg("failed to decode stats update payload")
		return
	}

	if b.hub.Len() == 0 {
		return
	}

	msg := ws.Message{
		Type:    ws.TypeStatsUpdate,
		Payload: json.RawMessage(payload),
	}
	if err := b.hub.BroadcastAll(msg); err != nil {
		b.logger.Warn().Err(err).Msg("failed to broadcast stats update")
	}
}
