package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/radieske/betledger/internal/tracker/betting"
	"github.com/radieske/betledger/internal/tracker/ledger"
	"github.com/radieske/betledger/internal/tracker/state"
)

// chaves dos três documentos independentes
const (
	KeyBets         = "sportBets"
	KeyTransactions = "sportTransactions"
	KeyBankroll     = "sportBankroll"
)

// Document é um valor JSON gravado sob uma chave
type Document struct {
	Key   string
	Value []byte
}

// Backend grava documentos. PutAll deve ser atômico: ou grava todos ou nenhum.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	PutAll(ctx context.Context, docs []Document) error
}

// Store converte o State para os três documentos e de volta
type Store struct {
	backend Backend
	log     *zap.Logger
}

func New(b Backend, log *zap.Logger) *Store {
	return &Store{backend: b, log: log}
}

// Load lê cada chave de forma isolada. Chave ausente assume o padrão;
// chave ilegível é logada e assume o padrão sem afetar as outras.
func (s *Store) Load(ctx context.Context) state.State {
	st := state.Empty()

	var bets []betting.Bet
	if s.read(ctx, KeyBets, &bets) && bets != nil {
		st.Bets = bets
	}

	var txs []ledger.Transaction
	if s.read(ctx, KeyTransactions, &txs) && txs != nil {
		st.Transactions = txs
	}

	var bankroll decimal.Decimal
	if s.read(ctx, KeyBankroll, &bankroll) {
		st.Bankroll = bankroll
	}

	return st
}

func (s *Store) read(ctx context.Context, key string, dst any) bool {
	raw, ok, err := s.backend.Get(ctx, key)
	if err != nil {
		s.log.Warn("store read failed, using default", zap.String("key", key), zap.Error(err))
		return false
	}
	if !ok || len(raw) == 0 {
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		s.log.Warn("store document malformed, using default", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// Save grava o snapshot completo numa única operação do backend
func (s *Store) Save(ctx context.Context, st state.State) error {
	docs, err := Encode(st)
	if err != nil {
		return err
	}
	if err := s.backend.PutAll(ctx, docs); err != nil {
		return fmt.Errorf("store save: %w", err)
	}
	return nil
}

// Encode serializa o State nos três documentos, sempre na mesma ordem
func Encode(st state.State) ([]Document, error) {
	bets := st.Bets
	if bets == nil {
		bets = []betting.Bet{}
	}
	txs := st.Transactions
	if txs == nil {
		txs = []ledger.Transaction{}
	}

	values := []struct {
		key string
		v   any
	}{
		{KeyBets, bets},
		{KeyTransactions, txs},
		{KeyBankroll, st.Bankroll},
	}

	docs := make([]Document, 0, len(values))
	for _, kv := range values {
		b, err := json.Marshal(kv.v)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", kv.key, err)
		}
		docs = append(docs, Document{Key: kv.key, Value: b})
	}
	return docs, nil
}
