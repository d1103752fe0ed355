package ledger

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/radieske/betledger/internal/tracker/dates"
)

type TransactionType string

const (
	Deposit    TransactionType = "DEPOSIT"
	Withdrawal TransactionType = "WITHDRAWAL"
)

func (t TransactionType) Valid() bool { return t == Deposit || t == Withdrawal }

// Transaction é um movimento de caixa manual contra o bankroll
type Transaction struct {
	ID        string          `json:"id"`
	Type      TransactionType `json:"type"`
	Amount    decimal.Decimal `json:"amount"`
	Date      string          `json:"date"`
	Bookmaker string          `json:"bookmaker,omitempty"`
	Notes     string          `json:"notes,omitempty"`
}

// TransactionMeta agrupa os campos informativos de um movimento
type TransactionMeta struct {
	Date      string
	Bookmaker string
	Notes     string
}

// NewTransaction cria um movimento com id novo. amount deve ser > 0 (validado na borda).
func NewTransaction(typ TransactionType, amount decimal.Decimal, meta TransactionMeta) Transaction {
	return Transaction{
		ID:        uuid.NewString(),
		Type:      typ,
		Amount:    amount,
		Date:      meta.Date,
		Bookmaker: meta.Bookmaker,
		Notes:     meta.Notes,
	}
}

// Effect é o quanto o movimento soma ao bankroll: +amount no depósito, -amount no saque
func (t Transaction) Effect() decimal.Decimal {
	if t.Type == Deposit {
		return t.Amount
	}
	return t.Amount.Neg()
}

// Reversal desfaz exatamente o Effect
func (t Transaction) Reversal() decimal.Decimal { return t.Effect().Neg() }

// SortByDateDesc ordena do mais recente para o mais antigo, estável para datas iguais.
// Datas inválidas vão para o fim.
func SortByDateDesc(txs []Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		a, _ := dates.Parse(txs[i].Date)
		b, _ := dates.Parse(txs[j].Date)
		return a.After(b)
	})
}

// Find retorna o índice do movimento com o id informado, ou -1
func Find(txs []Transaction, id string) int {
	for i, t := range txs {
		if t.ID == id {
			return i
		}
	}
	return -1
}
