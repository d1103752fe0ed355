package betting

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SelectionDraft é uma seleção ainda sem id nem status
type SelectionDraft struct {
	Event        string
	Market       string
	Pick         string
	DetailedPick string
	Odds         decimal.Decimal
	Sport        Sport
}

// BetMeta agrupa os campos informativos do bilhete
type BetMeta struct {
	Name      string
	Date      string
	Time      string
	Bookmaker string
}

// NewBet monta um bilhete PENDING a partir das seleções informadas.
// TotalOdds e PotentialReturn refletem o bilhete como feito e não são recalculados depois.
// Espera entrada já validada (stake > 0, ao menos uma seleção).
func NewBet(drafts []SelectionDraft, stake decimal.Decimal, meta BetMeta) Bet {
	selections := make([]Selection, 0, len(drafts))
	total := decimal.NewFromInt(1)
	for _, d := range drafts {
		selections = append(selections, Selection{
			ID:           uuid.NewString(),
			Event:        d.Event,
			Market:       d.Market,
			Pick:         d.Pick,
			DetailedPick: d.DetailedPick,
			Odds:         d.Odds,
			Status:       SelectionPending,
			Sport:        d.Sport,
		})
		total = total.Mul(d.Odds)
	}

	name := strings.TrimSpace(meta.Name)
	if name == "" && len(selections) > 0 {
		name = selections[0].Event
	}

	return Bet{
		ID:              uuid.NewString(),
		Name:            name,
		Stake:           stake,
		TotalOdds:       total,
		PotentialReturn: stake.Mul(total),
		Date:            meta.Date,
		Time:            meta.Time,
		Bookmaker:       meta.Bookmaker,
		Selections:      selections,
		status:          BetPending,
		profit:          decimal.Zero,
	}
}

// WithSelectionStatus devolve uma cópia do bilhete com a seleção alterada e
// status/lucro recalculados. ok=false se a seleção não existe.
func (b Bet) WithSelectionStatus(selectionID string, status SelectionStatus) (Bet, bool) {
	idx := -1
	for i, s := range b.Selections {
		if s.ID == selectionID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return b, false
	}
	next := b.Clone()
	next.Selections[idx].Status = status
	return next.Settle(), true
}

// Settle reaplica o Resolve sobre as seleções atuais
func (b Bet) Settle() Bet {
	out := Resolve(b.Selections, b.Stake)
	b.status = out.Status
	b.profit = out.Profit
	return b
}
