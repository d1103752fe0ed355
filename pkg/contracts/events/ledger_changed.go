package events

import (
	"time"

	"github.com/shopspring/decimal"
)

// Evento publicado no tópico "ledger_changed" após cada mutação gravada.
// Serve para views ao vivo, não é trilha de auditoria.
type LedgerChanged struct {
	Action         string          `json:"action"` // "bet.created" | "selection.settled" | ...
	EntityID       string          `json:"entityId,omitempty"`
	BankrollBefore decimal.Decimal `json:"bankrollBefore"`
	BankrollAfter  decimal.Decimal `json:"bankrollAfter"`
	Delta          decimal.Decimal `json:"delta"`
	Ts             time.Time       `json:"ts"`
}
