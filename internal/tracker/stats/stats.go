package stats

import (
	"github.com/shopspring/decimal"

	"github.com/radieske/betledger/internal/tracker/betting"
	"github.com/radieske/betledger/internal/tracker/ledger"
	"github.com/radieske/betledger/internal/tracker/state"
)

var hundred = decimal.NewFromInt(100)

// Stats é o resumo exibido no dashboard. Nunca é persistido.
type Stats struct {
	TotalStaked    decimal.Decimal `json:"totalStaked"`
	TotalProfit    decimal.Decimal `json:"totalProfit"`
	ROI            decimal.Decimal `json:"roi"`
	WinRate        decimal.Decimal `json:"winRate"`
	TotalBets      int             `json:"totalBets"`
	TotalDeposited decimal.Decimal `json:"totalDeposited"`
	TotalWithdrawn decimal.Decimal `json:"totalWithdrawn"`
	NetBalance     decimal.Decimal `json:"netBalance"`
	Bankroll       decimal.Decimal `json:"bankroll"`
}

// Compute calcula o resumo a partir de um snapshot
func Compute(s state.State) Stats {
	out := Stats{
		TotalStaked:    decimal.Zero,
		TotalProfit:    decimal.Zero,
		ROI:            decimal.Zero,
		WinRate:        decimal.Zero,
		TotalBets:      len(s.Bets),
		TotalDeposited: decimal.Zero,
		TotalWithdrawn: decimal.Zero,
		Bankroll:       s.Bankroll,
	}

	var won, settled int64
	for _, b := range s.Bets {
		out.TotalStaked = out.TotalStaked.Add(b.Stake)
		out.TotalProfit = out.TotalProfit.Add(b.Profit())
		switch b.Status() {
		case betting.BetWon:
			won++
			settled++
		case betting.BetLost:
			settled++
		}
	}
	if settled > 0 {
		out.WinRate = decimal.NewFromInt(won).Div(decimal.NewFromInt(settled)).Mul(hundred)
	}
	if !out.TotalStaked.IsZero() {
		out.ROI = out.TotalProfit.Div(out.TotalStaked).Mul(hundred)
	}

	for _, t := range s.Transactions {
		switch t.Type {
		case ledger.Deposit:
			out.TotalDeposited = out.TotalDeposited.Add(t.Amount)
		case ledger.Withdrawal:
			out.TotalWithdrawn = out.TotalWithdrawn.Add(t.Amount)
		}
	}
	// sacado - depositado: ganho líquido já retirado da casa
	out.NetBalance = out.TotalWithdrawn.Sub(out.TotalDeposited)

	return out
}
