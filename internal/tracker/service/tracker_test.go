package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/radieske/betledger/internal/tracker/betting"
	"github.com/radieske/betledger/internal/tracker/ledger"
	"github.com/radieske/betledger/internal/tracker/notify"
	"github.com/radieske/betledger/internal/tracker/state"
	"github.com/radieske/betledger/internal/tracker/store"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type recorder struct {
	mu     sync.Mutex
	events []notify.Event
	err    error
}

func (r *recorder) Notify(_ context.Context, e notify.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return r.err
}

type flakyStore struct {
	*store.Store
	fail bool
}

func (f *flakyStore) Save(ctx context.Context, st state.State) error {
	if f.fail {
		return errors.New("connection refused")
	}
	return f.Store.Save(ctx, st)
}

func newTracker(t *testing.T, opts ...Option) (*Tracker, *store.Store) {
	t.Helper()
	s := store.New(store.NewMemory(), zap.NewNop())
	tr := New(s, zap.NewNop(), opts...)
	tr.Restore(context.Background())
	return tr, s
}

func drafts() []betting.SelectionDraft {
	return []betting.SelectionDraft{
		{Event: "A x B", Market: "1X2", Pick: "A", Odds: dec("1.5"), Sport: betting.SportFootball},
		{Event: "C x D", Market: "1X2", Pick: "D", Odds: dec("2.0"), Sport: betting.SportBasketball},
	}
}

func TestTracker_LifecyclePersistsEveryStep(t *testing.T) {
	ctx := context.Background()
	tr, s := newTracker(t)

	_, err := tr.SetBankroll(ctx, dec("1000"))
	require.NoError(t, err)

	created, err := tr.CreateBet(ctx, drafts(), dec("20"), betting.BetMeta{Date: "2024-05-01"})
	require.NoError(t, err)
	require.NotNil(t, created.Bet)
	bet := *created.Bet

	for _, sel := range bet.Selections {
		_, err = tr.SetSelectionStatus(ctx, bet.ID, sel.ID, betting.SelectionWon)
		require.NoError(t, err)
	}
	assert.True(t, dec("1040").Equal(tr.Snapshot().Bankroll))

	stored := s.Load(ctx)
	require.Len(t, stored.Bets, 1)
	assert.Equal(t, betting.BetWon, stored.Bets[0].Status())
	assert.True(t, dec("1040").Equal(stored.Bankroll))

	ch, err := tr.DeleteBet(ctx, bet.ID)
	require.NoError(t, err)
	assert.True(t, ch.Applied)
	assert.True(t, dec("1000").Equal(tr.Snapshot().Bankroll))
	assert.True(t, dec("1000").Equal(s.Load(ctx).Bankroll))
}

func TestTracker_ResultReflectsCommittedState(t *testing.T) {
	ctx := context.Background()
	tr, _ := newTracker(t)

	res, err := tr.SetBankroll(ctx, dec("1000"))
	require.NoError(t, err)
	assert.True(t, dec("1000").Equal(res.Bankroll))

	res, err = tr.CreateBet(ctx, drafts(), dec("20"), betting.BetMeta{Date: "2024-05-01"})
	require.NoError(t, err)
	require.NotNil(t, res.Bet)
	assert.Equal(t, res.EntityID, res.Bet.ID)
	bet := *res.Bet

	res, err = tr.SetSelectionStatus(ctx, bet.ID, bet.Selections[0].ID, betting.SelectionLost)
	require.NoError(t, err)
	assert.True(t, dec("-20").Equal(res.Delta))
	assert.True(t, dec("980").Equal(res.Bankroll))
	require.NotNil(t, res.Bet)
	assert.Equal(t, betting.BetLost, res.Bet.Status())

	res, err = tr.AddTransaction(ctx, ledger.Withdrawal, dec("30"), ledger.TransactionMeta{Date: "2024-01-01"})
	require.NoError(t, err)
	require.NotNil(t, res.Transaction)
	assert.True(t, dec("30").Equal(res.Transaction.Amount))
	assert.True(t, dec("950").Equal(res.Bankroll))

	res, err = tr.DeleteBet(ctx, "ghost")
	require.NoError(t, err)
	assert.False(t, res.Applied)
	assert.True(t, dec("950").Equal(res.Bankroll))
	assert.Nil(t, res.Bet)
}

// cada resposta precisa casar delta e bankroll da mesma transição,
// mesmo com escritas concorrentes
func TestTracker_ConcurrentResultsAreConsistent(t *testing.T) {
	ctx := context.Background()
	tr, _ := newTracker(t)

	results := make([]Result, 40)
	var wg sync.WaitGroup
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := tr.AddTransaction(ctx, ledger.Deposit, dec("5"), ledger.TransactionMeta{Date: "2024-01-01"})
			assert.NoError(t, err)
			results[i] = res
		}(i)
	}
	wg.Wait()

	seen := map[string]bool{}
	for _, res := range results {
		key := res.Bankroll.String()
		assert.False(t, seen[key], "bankroll %s reported twice", key)
		seen[key] = true
		assert.True(t, res.Bankroll.GreaterThanOrEqual(dec("5")))
		assert.True(t, res.Bankroll.Mod(dec("5")).IsZero())
	}
	assert.Len(t, seen, 40)
	assert.True(t, dec("200").Equal(tr.Snapshot().Bankroll))
}

func TestTracker_RestoreFromStore(t *testing.T) {
	ctx := context.Background()
	tr, s := newTracker(t)
	_, err := tr.AddTransaction(ctx, ledger.Deposit, dec("150"), ledger.TransactionMeta{Date: "2024-01-01"})
	require.NoError(t, err)

	again := New(s, zap.NewNop())
	again.Restore(ctx)
	snap := again.Snapshot()
	assert.Len(t, snap.Transactions, 1)
	assert.True(t, dec("150").Equal(snap.Bankroll))
}

func TestTracker_SaveFailureKeepsState(t *testing.T) {
	ctx := context.Background()
	fs := &flakyStore{Store: store.New(store.NewMemory(), zap.NewNop())}
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	rec := &recorder{}
	tr := New(fs, zap.NewNop(), WithMetrics(m), WithNotifier(rec))

	added, err := tr.AddTransaction(ctx, ledger.Deposit, dec("100"), ledger.TransactionMeta{Date: "2024-01-01"})
	require.NoError(t, err)
	require.NotNil(t, added.Transaction)

	fs.fail = true
	edited := *added.Transaction
	edited.Type = ledger.Withdrawal
	_, err = tr.UpdateTransaction(ctx, edited)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "transaction.updated")

	snap := tr.Snapshot()
	assert.True(t, dec("100").Equal(snap.Bankroll))
	assert.Equal(t, ledger.Deposit, snap.Transactions[0].Type)

	_, err = tr.CreateBet(ctx, drafts(), dec("10"), betting.BetMeta{})
	require.Error(t, err)
	assert.Empty(t, tr.Snapshot().Bets)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.storeErrors.WithLabelValues("save")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.mutations.WithLabelValues("transaction.added", "ok")))
	assert.Equal(t, float64(100), testutil.ToFloat64(m.bankroll))
	assert.Len(t, rec.events, 1)
}

func TestTracker_NoopsDoNotSaveOrNotify(t *testing.T) {
	ctx := context.Background()
	fs := &flakyStore{Store: store.New(store.NewMemory(), zap.NewNop()), fail: true}
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	rec := &recorder{}
	tr := New(fs, zap.NewNop(), WithMetrics(m), WithNotifier(rec))

	ch, err := tr.DeleteTransaction(ctx, "ghost")
	require.NoError(t, err)
	assert.False(t, ch.Applied)

	ch, err = tr.SetSelectionStatus(ctx, "ghost", "sel", betting.SelectionWon)
	require.NoError(t, err)
	assert.False(t, ch.Applied)

	ch, err = tr.DeleteBet(ctx, "ghost")
	require.NoError(t, err)
	assert.False(t, ch.Applied)

	assert.Empty(t, rec.events)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.noops.WithLabelValues("transaction.deleted")))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.storeErrors.WithLabelValues("save")))
}

func TestTracker_NotifiesWithBankrollAndStats(t *testing.T) {
	ctx := context.Background()
	rec := &recorder{}
	at := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	tr, _ := newTracker(t, WithNotifier(rec), WithClock(func() time.Time { return at }))

	_, err := tr.SetBankroll(ctx, dec("50"))
	require.NoError(t, err)
	_, err = tr.AddTransaction(ctx, ledger.Withdrawal, dec("20"), ledger.TransactionMeta{Date: "2024-01-01"})
	require.NoError(t, err)

	require.Len(t, rec.events, 2)
	last := rec.events[1]
	assert.Equal(t, state.ActionTransactionAdded, last.Change.Action)
	assert.True(t, dec("50").Equal(last.BankrollBefore))
	assert.True(t, dec("30").Equal(last.BankrollAfter))
	assert.True(t, dec("-20").Equal(last.Change.Delta))
	assert.True(t, dec("20").Equal(last.Stats.TotalWithdrawn))
	assert.Equal(t, at, last.At)
}

func TestTracker_NotifyFailureIsNotFatal(t *testing.T) {
	ctx := context.Background()
	rec := &recorder{err: errors.New("broker down")}
	m := NewMetrics(prometheus.NewRegistry())
	tr, _ := newTracker(t, WithNotifier(rec), WithMetrics(m))

	_, err := tr.SetBankroll(ctx, dec("10"))
	require.NoError(t, err)
	assert.True(t, dec("10").Equal(tr.Snapshot().Bankroll))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.notifyErrors))
}

func TestTracker_ConcurrentMutationsSerialize(t *testing.T) {
	ctx := context.Background()
	tr, s := newTracker(t)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := tr.AddTransaction(ctx, ledger.Deposit, dec("2"), ledger.TransactionMeta{Date: "2024-01-01"})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	snap := tr.Snapshot()
	assert.Len(t, snap.Transactions, 50)
	assert.True(t, dec("100").Equal(snap.Bankroll))
	assert.True(t, dec("100").Equal(s.Load(ctx).Bankroll))
}

func TestTracker_SnapshotIsACopy(t *testing.T) {
	ctx := context.Background()
	tr, _ := newTracker(t)
	_, err := tr.CreateBet(ctx, drafts(), dec("10"), betting.BetMeta{})
	require.NoError(t, err)

	snap := tr.Snapshot()
	snap.Bets[0].Selections[0].Status = betting.SelectionLost
	snap.Bankroll = dec("999")

	fresh := tr.Snapshot()
	assert.Equal(t, betting.SelectionPending, fresh.Bets[0].Selections[0].Status)
	assert.True(t, fresh.Bankroll.IsZero())
	assert.Equal(t, 1, tr.Stats().TotalBets)
}
