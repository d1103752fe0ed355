package state

import (
	"github.com/shopspring/decimal"

	"github.com/radieske/betledger/internal/tracker/betting"
	"github.com/radieske/betledger/internal/tracker/ledger"
)

// State é o agregado completo do tracker: bilhetes, movimentos e bankroll.
// As funções de transição nunca alteram o State recebido.
type State struct {
	Bets         []betting.Bet        `json:"bets"`
	Transactions []ledger.Transaction `json:"transactions"`
	Bankroll     decimal.Decimal      `json:"bankroll"`
}

// Empty é o estado inicial: listas vazias e bankroll 0
func Empty() State {
	return State{
		Bets:         []betting.Bet{},
		Transactions: []ledger.Transaction{},
		Bankroll:     decimal.Zero,
	}
}

// Clone faz cópia profunda o suficiente para leitura fora do lock
func (s State) Clone() State {
	out := State{
		Bets:         make([]betting.Bet, 0, len(s.Bets)),
		Transactions: append([]ledger.Transaction{}, s.Transactions...),
		Bankroll:     s.Bankroll,
	}
	for _, b := range s.Bets {
		out.Bets = append(out.Bets, b.Clone())
	}
	return out
}

// FindBet retorna o índice do bilhete, ou -1
func (s State) FindBet(id string) int {
	for i, b := range s.Bets {
		if b.ID == id {
			return i
		}
	}
	return -1
}

type Action string

const (
	ActionBetCreated         Action = "bet.created"
	ActionSelectionSettled   Action = "selection.settled"
	ActionBetDeleted         Action = "bet.deleted"
	ActionTransactionAdded   Action = "transaction.added"
	ActionTransactionUpdated Action = "transaction.updated"
	ActionTransactionDeleted Action = "transaction.deleted"
	ActionBankrollSet        Action = "bankroll.set"
)

// Change descreve o efeito de uma transição.
// Applied=false significa no-op (id desconhecido); nesse caso o State devolvido é o anterior.
type Change struct {
	Action   Action
	EntityID string
	Applied  bool
	Delta    decimal.Decimal
}
