package dto

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/radieske/betledger/internal/tracker/betting"
	"github.com/radieske/betledger/internal/tracker/dates"
	"github.com/radieske/betledger/internal/tracker/ledger"
)

var ErrInvalidInput = errors.New("invalid input")

var one = decimal.NewFromInt(1)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

type SelectionRequest struct {
	Event        string          `json:"event"`
	Market       string          `json:"market"`
	Pick         string          `json:"pick"`
	DetailedPick string          `json:"detailedPick,omitempty"`
	Odds         decimal.Decimal `json:"odds"`
	Sport        betting.Sport   `json:"sport"`
}

type CreateBetRequest struct {
	Name       string             `json:"name"`
	Stake      decimal.Decimal    `json:"stake"`
	Date       string             `json:"date"`
	Time       string             `json:"time,omitempty"`
	Bookmaker  string             `json:"bookmaker,omitempty"`
	Selections []SelectionRequest `json:"selections"`
}

func (r CreateBetRequest) Validate() error {
	if !r.Stake.IsPositive() {
		return invalid("stake must be greater than zero")
	}
	if len(r.Selections) == 0 {
		return invalid("at least one selection is required")
	}
	if _, ok := dates.Parse(r.Date); !ok {
		return invalid("date must be YYYY-MM-DD")
	}
	if r.Time != "" && !validClock(r.Time) {
		return invalid("time must be HH:MM or HH:MM:SS")
	}
	for i, s := range r.Selections {
		switch {
		case strings.TrimSpace(s.Event) == "":
			return invalid("selection %d: event is required", i)
		case strings.TrimSpace(s.Market) == "":
			return invalid("selection %d: market is required", i)
		case strings.TrimSpace(s.Pick) == "":
			return invalid("selection %d: pick is required", i)
		case !s.Odds.GreaterThan(one):
			return invalid("selection %d: odds must be greater than 1", i)
		case !s.Sport.Valid():
			return invalid("selection %d: unknown sport %q", i, s.Sport)
		}
	}
	return nil
}

func (r CreateBetRequest) Drafts() []betting.SelectionDraft {
	out := make([]betting.SelectionDraft, 0, len(r.Selections))
	for _, s := range r.Selections {
		out = append(out, betting.SelectionDraft{
			Event:        strings.TrimSpace(s.Event),
			Market:       strings.TrimSpace(s.Market),
			Pick:         strings.TrimSpace(s.Pick),
			DetailedPick: strings.TrimSpace(s.DetailedPick),
			Odds:         s.Odds,
			Sport:        s.Sport,
		})
	}
	return out
}

func (r CreateBetRequest) Meta() betting.BetMeta {
	return betting.BetMeta{
		Name:      r.Name,
		Date:      r.Date,
		Time:      r.Time,
		Bookmaker: strings.TrimSpace(r.Bookmaker),
	}
}

type SelectionStatusRequest struct {
	Status betting.SelectionStatus `json:"status"`
}

func (r SelectionStatusRequest) Validate() error {
	if !r.Status.Valid() {
		return invalid("unknown status %q", r.Status)
	}
	return nil
}

// TransactionRequest serve tanto para criar quanto para editar um movimento
type TransactionRequest struct {
	Type      ledger.TransactionType `json:"type"`
	Amount    decimal.Decimal        `json:"amount"`
	Date      string                 `json:"date"`
	Bookmaker string                 `json:"bookmaker,omitempty"`
	Notes     string                 `json:"notes,omitempty"`
}

func (r TransactionRequest) Validate() error {
	if !r.Type.Valid() {
		return invalid("type must be DEPOSIT or WITHDRAWAL")
	}
	if !r.Amount.IsPositive() {
		return invalid("amount must be greater than zero")
	}
	if _, ok := dates.Parse(r.Date); !ok {
		return invalid("date must be an ISO date")
	}
	return nil
}

func (r TransactionRequest) Meta() ledger.TransactionMeta {
	return ledger.TransactionMeta{
		Date:      r.Date,
		Bookmaker: strings.TrimSpace(r.Bookmaker),
		Notes:     strings.TrimSpace(r.Notes),
	}
}

// Transaction monta o registro editado preservando o id
func (r TransactionRequest) Transaction(id string) ledger.Transaction {
	m := r.Meta()
	return ledger.Transaction{
		ID:        id,
		Type:      r.Type,
		Amount:    r.Amount,
		Date:      m.Date,
		Bookmaker: m.Bookmaker,
		Notes:     m.Notes,
	}
}

type BankrollRequest struct {
	Amount *decimal.Decimal `json:"amount"`
}

func (r BankrollRequest) Validate() error {
	if r.Amount == nil {
		return invalid("amount is required")
	}
	if r.Amount.IsNegative() {
		return invalid("amount must not be negative")
	}
	return nil
}

func validClock(s string) bool {
	for _, l := range []string{"15:04", "15:04:05"} {
		if _, err := time.Parse(l, s); err == nil {
			return true
		}
	}
	return false
}
