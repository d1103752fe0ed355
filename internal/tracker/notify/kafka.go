package notify

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	sharedkafka "github.com/radieske/betledger/internal/shared/kafka"
	"github.com/radieske/betledger/pkg/contracts/events"
)

type messageWriter interface {
	sharedkafka.MessageWriter
	Close() error
}

// KafkaPublisher publica LedgerChanged no tópico configurado no writer
type KafkaPublisher struct {
	writer messageWriter
	log    *zap.Logger
}

func NewKafkaPublisher(w messageWriter, log *zap.Logger) *KafkaPublisher {
	return &KafkaPublisher{writer: w, log: log}
}

// Notify usa o id da entidade como chave, mantendo eventos da mesma entidade na mesma partição
func (p *KafkaPublisher) Notify(ctx context.Context, e Event) error {
	ev := events.LedgerChanged{
		Action:         string(e.Change.Action),
		EntityID:       e.Change.EntityID,
		BankrollBefore: e.BankrollBefore,
		BankrollAfter:  e.BankrollAfter,
		Delta:          e.Change.Delta,
		Ts:             e.At,
	}
	key := ev.EntityID
	if key == "" {
		key = ev.Action
	}
	if err := sharedkafka.WriteJSON(ctx, p.writer, key, ev, e.At); err != nil {
		return fmt.Errorf("publish ledger_changed: %w", err)
	}

	p.log.Debug("published ledger change", zap.String("action", ev.Action), zap.String("entity_id", ev.EntityID))
	return nil
}

// Close finaliza o writer e libera recursos associados.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
