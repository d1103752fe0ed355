package stats

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/radieske/betledger/internal/tracker/betting"
	"github.com/radieske/betledger/internal/tracker/dates"
	"github.com/radieske/betledger/internal/tracker/state"
)

const (
	StartLabel = "start"
	dayLayout  = "2006-01-02"

	// horário assumido quando o bilhete não tem hora
	sortClock     = "00:00:00"
	bankrollClock = "23:59:59"
)

// Point é um ponto de série temporal para os gráficos
type Point struct {
	Label string          `json:"label"`
	Value decimal.Decimal `json:"value"`
}

// SportProfit é o lucro agregado de um esporte
type SportProfit struct {
	Sport  betting.Sport   `json:"sport"`
	Profit decimal.Decimal `json:"profit"`
}

func settledBets(bets []betting.Bet) []betting.Bet {
	out := make([]betting.Bet, 0, len(bets))
	for _, b := range bets {
		if b.Status().Settled() {
			out = append(out, b)
		}
	}
	return out
}

func betTime(b betting.Bet, fallback string) time.Time {
	t, _ := dates.Combine(b.Date, b.Time, fallback)
	return t
}

func label(t time.Time, raw string) string {
	if t.IsZero() {
		return raw
	}
	return t.Format(dayLayout)
}

// ProfitEvolution devolve o lucro acumulado dos bilhetes liquidados em ordem
// cronológica, começando por um ponto "start" em 0.
func ProfitEvolution(s state.State) []Point {
	bets := settledBets(s.Bets)
	sort.SliceStable(bets, func(i, j int) bool {
		return betTime(bets[i], sortClock).Before(betTime(bets[j], sortClock))
	})

	out := make([]Point, 0, len(bets)+1)
	out = append(out, Point{Label: StartLabel, Value: decimal.Zero})
	cum := decimal.Zero
	for _, b := range bets {
		cum = cum.Add(b.Profit())
		out = append(out, Point{Label: label(betTime(b, sortClock), b.Date), Value: cum})
	}
	return out
}

// ProfitBySport agrupa o lucro pelo esporte da primeira seleção, na ordem em que aparecem
func ProfitBySport(s state.State) []SportProfit {
	out := []SportProfit{}
	index := map[betting.Sport]int{}
	for _, b := range settledBets(s.Bets) {
		if len(b.Selections) == 0 {
			continue
		}
		sport := b.Selections[0].Sport
		i, ok := index[sport]
		if !ok {
			i = len(out)
			index[sport] = i
			out = append(out, SportProfit{Sport: sport, Profit: decimal.Zero})
		}
		out[i].Profit = out[i].Profit.Add(b.Profit())
	}
	return out
}

type bankrollEvent struct {
	at     time.Time
	change decimal.Decimal
}

// BankrollEvolution reconstrói o histórico do bankroll andando para trás a partir
// do valor atual. O último ponto é sempre o bankroll de agora.
func BankrollEvolution(s state.State, now time.Time) []Point {
	events := make([]bankrollEvent, 0, len(s.Bets)+len(s.Transactions))
	for _, b := range settledBets(s.Bets) {
		events = append(events, bankrollEvent{at: betTime(b, bankrollClock), change: b.Profit()})
	}
	for _, t := range s.Transactions {
		at, _ := dates.Parse(t.Date)
		events = append(events, bankrollEvent{at: at, change: t.Effect()})
	}
	sort.SliceStable(events, func(i, j int) bool { return events[i].at.After(events[j].at) })

	points := make([]Point, 0, len(events)+1)
	current := s.Bankroll
	points = append(points, Point{Label: now.Format(dayLayout), Value: current})
	for _, e := range events {
		current = current.Sub(e.change)
		points = append(points, Point{Label: label(e.at, ""), Value: current})
	}

	for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
		points[i], points[j] = points[j], points[i]
	}
	return points
}
