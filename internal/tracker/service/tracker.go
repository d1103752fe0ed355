package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/radieske/betledger/internal/tracker/betting"
	"github.com/radieske/betledger/internal/tracker/ledger"
	"github.com/radieske/betledger/internal/tracker/notify"
	"github.com/radieske/betledger/internal/tracker/state"
	"github.com/radieske/betledger/internal/tracker/stats"
)

// Store é a persistência do snapshot completo
type Store interface {
	Load(ctx context.Context) state.State
	Save(ctx context.Context, st state.State) error
}

// Result é o desfecho de uma transição, lido do mesmo estado que foi gravado.
// Bet e Transaction só vêm preenchidos quando a entidade continua no estado.
type Result struct {
	state.Change
	Bankroll    decimal.Decimal
	Bet         *betting.Bet
	Transaction *ledger.Transaction
}

func resultOf(st state.State, ch state.Change) Result {
	res := Result{Change: ch, Bankroll: st.Bankroll}
	switch ch.Action {
	case state.ActionBetCreated, state.ActionSelectionSettled:
		if i := st.FindBet(ch.EntityID); i >= 0 {
			b := st.Bets[i].Clone()
			res.Bet = &b
		}
	case state.ActionTransactionAdded, state.ActionTransactionUpdated:
		if i := ledger.Find(st.Transactions, ch.EntityID); i >= 0 {
			tx := st.Transactions[i]
			res.Transaction = &tx
		}
	}
	return res
}

// Tracker serializa todas as transições atrás de um mutex.
// O estado só é trocado depois que o snapshot novo foi gravado.
type Tracker struct {
	mu sync.Mutex
	st state.State

	store    Store
	notifier notify.Notifier
	metrics  *Metrics
	log      *zap.Logger
	timeout  time.Duration
	now      func() time.Time
}

type Option func(*Tracker)

func WithNotifier(n notify.Notifier) Option { return func(t *Tracker) { t.notifier = n } }
func WithMetrics(m *Metrics) Option { return func(t *Tracker) { t.metrics = m } }
func WithClock(now func() time.Time) Option { return func(t *Tracker) { t.now = now } }

// WithTimeout limita cada chamada ao store e aos notifiers
func WithTimeout(d time.Duration) Option {
	return func(t *Tracker) {
		if d > 0 {
			t.timeout = d
		}
	}
}

func New(store Store, log *zap.Logger, opts ...Option) *Tracker {
	t := &Tracker{
		st:      state.Empty(),
		store:   store,
		log:     log,
		timeout: 3 * time.Second,
		now:     time.Now,
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

// Restore carrega o estado salvo. Chaves ausentes ou inválidas viram padrão.
func (t *Tracker) Restore(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	st := t.store.Load(ctx)

	t.mu.Lock()
	t.st = st
	t.mu.Unlock()

	t.metrics.setBankroll(st.Bankroll)
	t.log.Info("state restored",
		zap.Int("bets", len(st.Bets)),
		zap.Int("transactions", len(st.Transactions)),
		zap.String("bankroll", st.Bankroll.String()),
	)
}

// Snapshot devolve uma cópia do estado atual
func (t *Tracker) Snapshot() state.State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.st.Clone()
}

func (t *Tracker) Stats() stats.Stats {
	return stats.Compute(t.Snapshot())
}

func (t *Tracker) Now() time.Time { return t.now() }

func (t *Tracker) CreateBet(ctx context.Context, drafts []betting.SelectionDraft, stake decimal.Decimal, meta betting.BetMeta) (Result, error) {
	return t.apply(ctx, func(prev state.State) (state.State, state.Change) {
		next, _, ch := state.CreateBet(prev, drafts, stake, meta)
		return next, ch
	})
}

func (t *Tracker) SetSelectionStatus(ctx context.Context, betID, selectionID string, status betting.SelectionStatus) (Result, error) {
	return t.apply(ctx, func(prev state.State) (state.State, state.Change) {
		return state.SetSelectionStatus(prev, betID, selectionID, status)
	})
}

func (t *Tracker) DeleteBet(ctx context.Context, betID string) (Result, error) {
	return t.apply(ctx, func(prev state.State) (state.State, state.Change) {
		return state.DeleteBet(prev, betID)
	})
}

func (t *Tracker) AddTransaction(ctx context.Context, typ ledger.TransactionType, amount decimal.Decimal, meta ledger.TransactionMeta) (Result, error) {
	return t.apply(ctx, func(prev state.State) (state.State, state.Change) {
		next, _, ch := state.AddTransaction(prev, typ, amount, meta)
		return next, ch
	})
}

func (t *Tracker) UpdateTransaction(ctx context.Context, updated ledger.Transaction) (Result, error) {
	return t.apply(ctx, func(prev state.State) (state.State, state.Change) {
		return state.UpdateTransaction(prev, updated)
	})
}

func (t *Tracker) DeleteTransaction(ctx context.Context, id string) (Result, error) {
	return t.apply(ctx, func(prev state.State) (state.State, state.Change) {
		return state.DeleteTransaction(prev, id)
	})
}

func (t *Tracker) SetBankroll(ctx context.Context, amount decimal.Decimal) (Result, error) {
	return t.apply(ctx, func(prev state.State) (state.State, state.Change) {
		return state.SetBankroll(prev, amount)
	})
}

// apply roda a transição, grava e só então troca o estado.
// Falha ao gravar descarta a transição; notificação é best-effort e fora do lock.
func (t *Tracker) apply(ctx context.Context, fn func(prev state.State) (state.State, state.Change)) (Result, error) {
	t.mu.Lock()
	prev := t.st
	next, ch := fn(prev)

	if !ch.Applied {
		t.mu.Unlock()
		t.metrics.noop(ch.Action)
		t.metrics.mutation(ch.Action, "noop")
		if ch.Action == state.ActionTransactionDeleted {
			t.log.Warn("transaction not found, nothing to delete", zap.String("id", ch.EntityID))
		} else {
			t.log.Debug("mutation ignored, unknown id", zap.String("action", string(ch.Action)), zap.String("id", ch.EntityID))
		}
		return resultOf(prev, ch), nil
	}

	sctx, cancel := context.WithTimeout(ctx, t.timeout)
	err := t.store.Save(sctx, next)
	cancel()
	if err != nil {
		t.mu.Unlock()
		t.metrics.storeError("save")
		t.metrics.mutation(ch.Action, "error")
		t.log.Error("state save failed, change discarded", zap.String("action", string(ch.Action)), zap.Error(err))
		return Result{Change: ch}, fmt.Errorf("%s: %w", ch.Action, err)
	}
	t.st = next
	res := resultOf(next, ch)
	t.mu.Unlock()

	t.metrics.mutation(ch.Action, "ok")
	t.metrics.setBankroll(next.Bankroll)
	t.log.Info("state changed",
		zap.String("action", string(ch.Action)),
		zap.String("id", ch.EntityID),
		zap.String("delta", ch.Delta.String()),
		zap.String("bankroll", next.Bankroll.String()),
	)

	t.publish(ctx, prev.Bankroll, next, ch)
	return res, nil
}

func (t *Tracker) publish(ctx context.Context, before decimal.Decimal, next state.State, ch state.Change) {
	if t.notifier == nil {
		return
	}
	nctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), t.timeout)
	defer cancel()

	err := t.notifier.Notify(nctx, notify.Event{
		Change:         ch,
		BankrollBefore: before,
		BankrollAfter:  next.Bankroll,
		Stats:          stats.Compute(next),
		At:             t.now().UTC(),
	})
	if err != nil {
		t.metrics.notifyError()
		t.log.Warn("notification failed", zap.String("action", string(ch.Action)), zap.Error(err))
	}
}
