package stats

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radieske/betledger/internal/tracker/betting"
	"github.com/radieske/betledger/internal/tracker/ledger"
	"github.com/radieske/betledger/internal/tracker/state"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertDec(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, dec(want).Equal(got), "want %s, got %s", want, got)
}

type betSpec struct {
	stake, odds string
	status      betting.SelectionStatus
	date, clock string
	bookmaker   string
	sport       betting.Sport
}

func makeBet(t *testing.T, s betSpec) betting.Bet {
	t.Helper()
	sport := s.sport
	if sport == "" {
		sport = betting.SportFootball
	}
	b := betting.NewBet([]betting.SelectionDraft{
		{Event: "E", Market: "M", Pick: "P", Odds: dec(s.odds), Sport: sport},
	}, dec(s.stake), betting.BetMeta{Date: s.date, Time: s.clock, Bookmaker: s.bookmaker})
	if s.status != "" && s.status != betting.SelectionPending {
		var ok bool
		b, ok = b.WithSelectionStatus(b.Selections[0].ID, s.status)
		require.True(t, ok)
	}
	return b
}

func TestCompute(t *testing.T) {
	st := state.Empty()
	st.Bankroll = dec("1234")
	st.Bets = []betting.Bet{
		makeBet(t, betSpec{stake: "10", odds: "2.0", status: betting.SelectionWon}),  // +10
		makeBet(t, betSpec{stake: "20", odds: "1.5", status: betting.SelectionLost}), // -20
		makeBet(t, betSpec{stake: "30", odds: "3.0", status: betting.SelectionWon}),  // +60
		makeBet(t, betSpec{stake: "40", odds: "1.8", status: betting.SelectionVoid}),
		makeBet(t, betSpec{stake: "100", odds: "1.8"}),
	}
	st.Transactions = []ledger.Transaction{
		{ID: "1", Type: ledger.Deposit, Amount: dec("500")},
		{ID: "2", Type: ledger.Deposit, Amount: dec("100")},
		{ID: "3", Type: ledger.Withdrawal, Amount: dec("150")},
	}

	got := Compute(st)
	assert.Equal(t, 5, got.TotalBets)
	assertDec(t, "200", got.TotalStaked)
	assertDec(t, "50", got.TotalProfit)
	assertDec(t, "25", got.ROI)
	assert.True(t, got.WinRate.Round(4).Equal(dec("66.6667")), got.WinRate.String())
	assertDec(t, "600", got.TotalDeposited)
	assertDec(t, "150", got.TotalWithdrawn)
	assertDec(t, "-450", got.NetBalance)
	assertDec(t, "1234", got.Bankroll)
}

func TestCompute_Empty(t *testing.T) {
	got := Compute(state.Empty())
	assert.Equal(t, 0, got.TotalBets)
	assert.True(t, got.ROI.IsZero())
	assert.True(t, got.WinRate.IsZero())
	assert.True(t, got.NetBalance.IsZero())
}

func TestCompute_OnlyVoidAndPending(t *testing.T) {
	st := state.Empty()
	st.Bets = []betting.Bet{
		makeBet(t, betSpec{stake: "10", odds: "2.0", status: betting.SelectionVoid}),
		makeBet(t, betSpec{stake: "10", odds: "2.0"}),
	}
	got := Compute(st)
	assert.True(t, got.WinRate.IsZero())
	assert.True(t, got.ROI.IsZero())
	assertDec(t, "20", got.TotalStaked)
}

func TestProfitEvolution(t *testing.T) {
	st := state.Empty()
	st.Bets = []betting.Bet{
		makeBet(t, betSpec{stake: "10", odds: "2.0", status: betting.SelectionWon, date: "2024-03-02"}),
		makeBet(t, betSpec{stake: "10", odds: "2.0", status: betting.SelectionLost, date: "2024-03-01", clock: "18:00"}),
		makeBet(t, betSpec{stake: "10", odds: "2.0", status: betting.SelectionVoid, date: "2024-02-01"}),
		makeBet(t, betSpec{stake: "10", odds: "3.0", status: betting.SelectionWon, date: "2024-03-01", clock: "20:00"}),
	}

	got := ProfitEvolution(st)
	require.Len(t, got, 4)
	assert.Equal(t, StartLabel, got[0].Label)
	assertDec(t, "0", got[0].Value)
	assert.Equal(t, "2024-03-01", got[1].Label)
	assertDec(t, "-10", got[1].Value)
	assertDec(t, "10", got[2].Value)
	assert.Equal(t, "2024-03-02", got[3].Label)
	assertDec(t, "20", got[3].Value)
}

func TestProfitBySport(t *testing.T) {
	st := state.Empty()
	st.Bets = []betting.Bet{
		makeBet(t, betSpec{stake: "10", odds: "2.0", status: betting.SelectionWon, sport: betting.SportTennis}),
		makeBet(t, betSpec{stake: "10", odds: "2.0", status: betting.SelectionLost, sport: betting.SportFootball}),
		makeBet(t, betSpec{stake: "5", odds: "3.0", status: betting.SelectionWon, sport: betting.SportTennis}),
		makeBet(t, betSpec{stake: "50", odds: "3.0", sport: betting.SportUFC}),
	}

	got := ProfitBySport(st)
	require.Len(t, got, 2)
	assert.Equal(t, betting.SportTennis, got[0].Sport)
	assertDec(t, "20", got[0].Profit)
	assert.Equal(t, betting.SportFootball, got[1].Sport)
	assertDec(t, "-10", got[1].Profit)
}

func TestBankrollEvolution(t *testing.T) {
	st := state.Empty()
	st.Bankroll = dec("130")
	st.Bets = []betting.Bet{
		makeBet(t, betSpec{stake: "10", odds: "4.0", status: betting.SelectionWon, date: "2024-01-05"}),
		makeBet(t, betSpec{stake: "10", odds: "2.0", date: "2024-01-06"}),
	}
	st.Transactions = []ledger.Transaction{
		{ID: "w", Type: ledger.Withdrawal, Amount: dec("20"), Date: "2024-01-10"},
		{ID: "d", Type: ledger.Deposit, Amount: dec("120"), Date: "2024-01-01"},
	}

	now := time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)
	got := BankrollEvolution(st, now)
	require.Len(t, got, 4)

	assert.Equal(t, "2024-01-01", got[0].Label)
	assertDec(t, "0", got[0].Value)
	assert.Equal(t, "2024-01-05", got[1].Label)
	assertDec(t, "120", got[1].Value)
	assert.Equal(t, "2024-01-10", got[2].Label)
	assertDec(t, "150", got[2].Value)
	assert.Equal(t, "2024-02-01", got[3].Label)
	assertDec(t, "130", got[3].Value)
}
