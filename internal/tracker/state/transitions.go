package state

import (
	"github.com/shopspring/decimal"

	"github.com/radieske/betledger/internal/tracker/betting"
	"github.com/radieske/betledger/internal/tracker/ledger"
)

func noop(action Action, id string) Change {
	return Change{Action: action, EntityID: id, Delta: decimal.Zero}
}

// CreateBet insere o bilhete no início da lista. Não mexe no bankroll.
func CreateBet(prev State, drafts []betting.SelectionDraft, stake decimal.Decimal, meta betting.BetMeta) (State, betting.Bet, Change) {
	bet := betting.NewBet(drafts, stake, meta)

	next := prev
	next.Bets = make([]betting.Bet, 0, len(prev.Bets)+1)
	next.Bets = append(next.Bets, bet)
	next.Bets = append(next.Bets, prev.Bets...)

	return next, bet, Change{Action: ActionBetCreated, EntityID: bet.ID, Applied: true, Delta: decimal.Zero}
}

// SetSelectionStatus altera uma seleção, reliquida o bilhete e aplica
// delta = lucro novo - lucro antigo ao bankroll no mesmo passo.
func SetSelectionStatus(prev State, betID, selectionID string, status betting.SelectionStatus) (State, Change) {
	idx := prev.FindBet(betID)
	if idx < 0 {
		return prev, noop(ActionSelectionSettled, betID)
	}
	old := prev.Bets[idx]
	updated, ok := old.WithSelectionStatus(selectionID, status)
	if !ok {
		return prev, noop(ActionSelectionSettled, betID)
	}

	delta := updated.Profit().Sub(old.Profit())

	next := prev
	next.Bets = append([]betting.Bet(nil), prev.Bets...)
	next.Bets[idx] = updated
	next.Bankroll = prev.Bankroll.Add(delta)

	return next, Change{Action: ActionSelectionSettled, EntityID: betID, Applied: true, Delta: delta}
}

// DeleteBet remove o bilhete e desfaz o lucro que ele tinha contribuído
func DeleteBet(prev State, betID string) (State, Change) {
	idx := prev.FindBet(betID)
	if idx < 0 {
		return prev, noop(ActionBetDeleted, betID)
	}
	removed := prev.Bets[idx].Profit()

	next := prev
	next.Bets = make([]betting.Bet, 0, len(prev.Bets)-1)
	next.Bets = append(next.Bets, prev.Bets[:idx]...)
	next.Bets = append(next.Bets, prev.Bets[idx+1:]...)
	next.Bankroll = prev.Bankroll.Sub(removed)

	return next, Change{Action: ActionBetDeleted, EntityID: betID, Applied: true, Delta: removed.Neg()}
}

// AddTransaction registra o movimento e aplica o efeito no bankroll
func AddTransaction(prev State, typ ledger.TransactionType, amount decimal.Decimal, meta ledger.TransactionMeta) (State, ledger.Transaction, Change) {
	tx := ledger.NewTransaction(typ, amount, meta)

	next := prev
	next.Transactions = make([]ledger.Transaction, 0, len(prev.Transactions)+1)
	next.Transactions = append(next.Transactions, tx)
	next.Transactions = append(next.Transactions, prev.Transactions...)
	ledger.SortByDateDesc(next.Transactions)
	next.Bankroll = prev.Bankroll.Add(tx.Effect())

	return next, tx, Change{Action: ActionTransactionAdded, EntityID: tx.ID, Applied: true, Delta: tx.Effect()}
}

// UpdateTransaction reverte o efeito do registro gravado (nunca o do chamador)
// e aplica o efeito da versão nova.
func UpdateTransaction(prev State, updated ledger.Transaction) (State, Change) {
	idx := ledger.Find(prev.Transactions, updated.ID)
	if idx < 0 {
		return prev, noop(ActionTransactionUpdated, updated.ID)
	}
	stored := prev.Transactions[idx]
	delta := stored.Reversal().Add(updated.Effect())

	next := prev
	next.Transactions = append([]ledger.Transaction(nil), prev.Transactions...)
	next.Transactions[idx] = updated
	ledger.SortByDateDesc(next.Transactions)
	next.Bankroll = prev.Bankroll.Add(delta)

	return next, Change{Action: ActionTransactionUpdated, EntityID: updated.ID, Applied: true, Delta: delta}
}

// DeleteTransaction desfaz o efeito do movimento e o remove
func DeleteTransaction(prev State, id string) (State, Change) {
	idx := ledger.Find(prev.Transactions, id)
	if idx < 0 {
		return prev, noop(ActionTransactionDeleted, id)
	}
	delta := prev.Transactions[idx].Reversal()

	next := prev
	next.Transactions = make([]ledger.Transaction, 0, len(prev.Transactions)-1)
	next.Transactions = append(next.Transactions, prev.Transactions[:idx]...)
	next.Transactions = append(next.Transactions, prev.Transactions[idx+1:]...)
	next.Bankroll = prev.Bankroll.Add(delta)

	return next, Change{Action: ActionTransactionDeleted, EntityID: id, Applied: true, Delta: delta}
}

// SetBankroll sobrescreve o saldo sem passar pelo histórico de movimentos
func SetBankroll(prev State, amount decimal.Decimal) (State, Change) {
	next := prev
	next.Bankroll = amount
	return next, Change{Action: ActionBankrollSet, Applied: true, Delta: amount.Sub(prev.Bankroll)}
}
