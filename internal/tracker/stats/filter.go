package stats

import (
	"sort"
	"strings"
	"time"

	"github.com/radieske/betledger/internal/tracker/betting"
	"github.com/radieske/betledger/internal/tracker/dates"
)

const All = "ALL"

type SortOrder string

const (
	SortDateDesc      SortOrder = "date-desc"
	SortDateAsc       SortOrder = "date-asc"
	SortStakeDesc     SortOrder = "stake-desc"
	SortStakeAsc      SortOrder = "stake-asc"
	SortPotentialDesc SortOrder = "potential-desc"
	SortPotentialAsc  SortOrder = "potential-asc"
)

func (o SortOrder) Valid() bool {
	switch o {
	case SortDateDesc, SortDateAsc, SortStakeDesc, SortStakeAsc, SortPotentialDesc, SortPotentialAsc:
		return true
	}
	return false
}

// BetFilter: campos vazios ou "ALL" não filtram. Sort vazio = date-desc.
type BetFilter struct {
	Status    string
	Bookmaker string
	Sort      SortOrder
}

// FilterBets aplica filtro de status, casa de apostas e ordenação sobre uma cópia
func FilterBets(bets []betting.Bet, f BetFilter) []betting.Bet {
	out := make([]betting.Bet, 0, len(bets))
	for _, b := range bets {
		if !matches(f.Status, string(b.Status())) || !matches(f.Bookmaker, b.Bookmaker) {
			continue
		}
		out = append(out, b)
	}

	order := f.Sort
	if order == "" {
		order = SortDateDesc
	}
	var less func(a, b betting.Bet) bool
	switch order {
	case SortDateDesc:
		less = func(a, b betting.Bet) bool { return betTime(a, sortClock).After(betTime(b, sortClock)) }
	case SortDateAsc:
		less = func(a, b betting.Bet) bool { return betTime(a, sortClock).Before(betTime(b, sortClock)) }
	case SortStakeDesc:
		less = func(a, b betting.Bet) bool { return a.Stake.GreaterThan(b.Stake) }
	case SortStakeAsc:
		less = func(a, b betting.Bet) bool { return a.Stake.LessThan(b.Stake) }
	case SortPotentialDesc:
		less = func(a, b betting.Bet) bool { return a.PotentialReturn.GreaterThan(b.PotentialReturn) }
	case SortPotentialAsc:
		less = func(a, b betting.Bet) bool { return a.PotentialReturn.LessThan(b.PotentialReturn) }
	default:
		return out
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func matches(filter, value string) bool {
	return filter == "" || filter == All || filter == value
}

// Bookmakers lista as casas distintas, sem vazios, na ordem em que aparecem
func Bookmakers(bets []betting.Bet) []string {
	out := []string{}
	seen := map[string]struct{}{}
	for _, b := range bets {
		if strings.TrimSpace(b.Bookmaker) == "" {
			continue
		}
		if _, ok := seen[b.Bookmaker]; ok {
			continue
		}
		seen[b.Bookmaker] = struct{}{}
		out = append(out, b.Bookmaker)
	}
	return out
}

// HistoryFilter: From/To são datas YYYY-MM-DD inclusivas; vazias não limitam
type HistoryFilter struct {
	Status string
	From   string
	To     string
}

// History devolve bilhetes fechados (WON, LOST ou VOID), do mais recente ao mais antigo
func History(bets []betting.Bet, f HistoryFilter) []betting.Bet {
	var from, to time.Time
	if t, ok := dates.Parse(f.From); ok {
		from = t.Truncate(24 * time.Hour)
	}
	if t, ok := dates.Parse(f.To); ok {
		to = t.Truncate(24 * time.Hour).Add(24*time.Hour - time.Millisecond)
	}

	out := make([]betting.Bet, 0, len(bets))
	for _, b := range bets {
		if b.Status() == betting.BetPending || !matches(f.Status, string(b.Status())) {
			continue
		}
		if day, ok := dates.Parse(b.Date); ok {
			if !from.IsZero() && day.Before(from) {
				continue
			}
			if !to.IsZero() && day.After(to) {
				continue
			}
		}
		out = append(out, b)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return betTime(out[i], sortClock).After(betTime(out[j], sortClock))
	})
	return out
}
