package betting

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// SelectionStatus é o estado de liquidação de uma seleção
type SelectionStatus string

const (
	SelectionPending SelectionStatus = "PENDING"
	SelectionWon     SelectionStatus = "WON"
	SelectionLost    SelectionStatus = "LOST"
	SelectionVoid    SelectionStatus = "VOID"
)

func (s SelectionStatus) Valid() bool {
	switch s {
	case SelectionPending, SelectionWon, SelectionLost, SelectionVoid:
		return true
	}
	return false
}

// BetStatus é derivado das seleções pelo Resolve, nunca definido diretamente
type BetStatus string

const (
	BetPending BetStatus = "PENDING"
	BetWon     BetStatus = "WON"
	BetLost    BetStatus = "LOST"
	BetVoid    BetStatus = "VOID"
)

func (s BetStatus) Valid() bool {
	switch s {
	case BetPending, BetWon, BetLost, BetVoid:
		return true
	}
	return false
}

// Settled indica aposta ganha ou perdida (void não conta)
func (s BetStatus) Settled() bool { return s == BetWon || s == BetLost }

type Sport string

const (
	SportFootball   Sport = "FOOTBALL"
	SportBasketball Sport = "BASKETBALL"
	SportTennis     Sport = "TENNIS"
	SportF1         Sport = "F1"
	SportUFC        Sport = "UFC"
)

func (s Sport) Valid() bool {
	switch s {
	case SportFootball, SportBasketball, SportTennis, SportF1, SportUFC:
		return true
	}
	return false
}

// Selection é uma perna do bilhete. Só Status muda depois da criação.
type Selection struct {
	ID           string          `json:"id"`
	Event        string          `json:"event"`
	Market       string          `json:"market"`
	Pick         string          `json:"pick"`
	DetailedPick string          `json:"detailedPick,omitempty"`
	Odds         decimal.Decimal `json:"odds"`
	Status       SelectionStatus `json:"status"`
	Sport        Sport           `json:"sport"`
}

// Bet é um bilhete com uma ou mais seleções.
// status e profit são campos em cache, escritos somente pelo resolver deste pacote.
type Bet struct {
	ID              string
	Name            string
	Stake           decimal.Decimal
	TotalOdds       decimal.Decimal
	PotentialReturn decimal.Decimal
	Date            string
	Time            string
	Bookmaker       string
	Selections      []Selection

	status BetStatus
	profit decimal.Decimal
}

func (b Bet) Status() BetStatus       { return b.status }
func (b Bet) Profit() decimal.Decimal { return b.profit }

// Clone copia o bilhete incluindo as seleções
func (b Bet) Clone() Bet {
	c := b
	c.Selections = append([]Selection(nil), b.Selections...)
	return c
}

type betJSON struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Stake           decimal.Decimal `json:"stake"`
	TotalOdds       decimal.Decimal `json:"totalOdds"`
	PotentialReturn decimal.Decimal `json:"potentialReturn"`
	Status          BetStatus       `json:"status"`
	Date            string          `json:"date"`
	Time            string          `json:"time,omitempty"`
	Profit          decimal.Decimal `json:"profit"`
	Bookmaker       string          `json:"bookmaker,omitempty"`
	Selections      []Selection     `json:"selections"`
}

func (b Bet) MarshalJSON() ([]byte, error) {
	sel := b.Selections
	if sel == nil {
		sel = []Selection{}
	}
	return json.Marshal(betJSON{
		ID:              b.ID,
		Name:            b.Name,
		Stake:           b.Stake,
		TotalOdds:       b.TotalOdds,
		PotentialReturn: b.PotentialReturn,
		Status:          b.status,
		Date:            b.Date,
		Time:            b.Time,
		Profit:          b.profit,
		Bookmaker:       b.Bookmaker,
		Selections:      sel,
	})
}

// UnmarshalJSON mantém status/profit como foram gravados: o bankroll acumulou
// exatamente esses valores, então recalcular aqui quebraria a reversão.
func (b *Bet) UnmarshalJSON(data []byte) error {
	var in betJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	*b = Bet{
		ID:              in.ID,
		Name:            in.Name,
		Stake:           in.Stake,
		TotalOdds:       in.TotalOdds,
		PotentialReturn: in.PotentialReturn,
		Date:            in.Date,
		Time:            in.Time,
		Bookmaker:       in.Bookmaker,
		Selections:      in.Selections,
		status:          in.Status,
		profit:          in.Profit,
	}
	if b.status == "" {
		b.status = BetPending
	}
	return nil
}
