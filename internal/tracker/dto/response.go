package dto

import (
	"github.com/shopspring/decimal"

	"github.com/radieske/betledger/internal/tracker/betting"
	"github.com/radieske/betledger/internal/tracker/ledger"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// MutationResponse é devolvido por toda escrita. Noop=true quando o id não existe.
type MutationResponse struct {
	Action      string              `json:"action"`
	EntityID    string              `json:"entityId,omitempty"`
	Noop        bool                `json:"noop"`
	Delta       decimal.Decimal     `json:"delta"`
	Bankroll    decimal.Decimal     `json:"bankroll"`
	Bet         *betting.Bet        `json:"bet,omitempty"`
	Transaction *ledger.Transaction `json:"transaction,omitempty"`
}
