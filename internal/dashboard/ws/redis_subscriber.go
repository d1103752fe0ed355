package ws

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/radieske/betledger/pkg/contracts/events"
)

// StartRedisSubscriber escuta o canal de stats e repassa cada snapshot ao Hub.
// Mensagens que não são um StatsSnapshot válido são descartadas.
func StartRedisSubscriber(ctx context.Context, r *redis.Client, channel string, hub *Hub, log *zap.Logger) {
	sub := r.Subscribe(ctx, channel)
	ch := sub.Channel()
	go func() {
		for {
			select {
			case <-ctx.Done():
				_ = sub.Close() // encerra a inscrição ao finalizar o contexto
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				if msg == nil {
					continue
				}
				forward(hub, []byte(msg.Payload), log)
			}
		}
	}()
}

func forward(hub *Hub, payload []byte, log *zap.Logger) {
	var snap events.StatsSnapshot
	if err := json.Unmarshal(payload, &snap); err != nil || snap.Type == "" {
		log.Warn("ws subscriber dropped message", zap.Error(err))
		return
	}
	hub.Broadcast(payload)
}
