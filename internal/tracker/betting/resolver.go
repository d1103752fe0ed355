package betting

import "github.com/shopspring/decimal"

// Outcome é o resultado derivado de um conjunto de seleções
type Outcome struct {
	Status BetStatus
	Profit decimal.Decimal
}

// Resolve deriva status e lucro do bilhete a partir dos status das seleções.
// Ordem de precedência fixa:
//  1. qualquer LOST -> LOST, lucro = -stake
//  2. qualquer PENDING -> PENDING, lucro 0
//  3. todas VOID -> VOID, lucro 0 (lista vazia cai aqui)
//  4. senão WON, lucro = stake * produto(odds das WON) - stake; VOID fica fora do produto
func Resolve(selections []Selection, stake decimal.Decimal) Outcome {
	var lost, pending bool
	allVoid := true
	for _, s := range selections {
		switch s.Status {
		case SelectionLost:
			lost = true
		case SelectionPending:
			pending = true
		}
		if s.Status != SelectionVoid {
			allVoid = false
		}
	}

	switch {
	case lost:
		return Outcome{Status: BetLost, Profit: stake.Neg()}
	case pending:
		return Outcome{Status: BetPending, Profit: decimal.Zero}
	case allVoid:
		return Outcome{Status: BetVoid, Profit: decimal.Zero}
	}

	effective := decimal.NewFromInt(1)
	for _, s := range selections {
		if s.Status == SelectionWon {
			effective = effective.Mul(s.Odds)
		}
	}
	return Outcome{Status: BetWon, Profit: stake.Mul(effective).Sub(stake)}
}
