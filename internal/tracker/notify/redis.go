package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/radieske/betledger/pkg/contracts/events"
)

// RedisBroadcaster envia o resumo atualizado para o canal lido pelo dashboard-stream
type RedisBroadcaster struct {
	r       *redis.Client
	channel string
}

func NewRedisBroadcaster(r *redis.Client, channel string) *RedisBroadcaster {
	return &RedisBroadcaster{r: r, channel: channel}
}

// Snapshot monta o payload publicado no canal
func Snapshot(e Event) ([]byte, error) {
	raw, err := json.Marshal(e.Stats)
	if err != nil {
		return nil, err
	}
	return json.Marshal(events.StatsSnapshot{
		Type:   "stats",
		Action: string(e.Change.Action),
		Stats:  raw,
		Ts:     e.At,
	})
}

func (b *RedisBroadcaster) Notify(ctx context.Context, e Event) error {
	payload, err := Snapshot(e)
	if err != nil {
		return err
	}
	if err := b.r.Publish(ctx, b.channel, string(payload)).Err(); err != nil {
		return fmt.Errorf("publish stats snapshot: %w", err)
	}
	return nil
}
