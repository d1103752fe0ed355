package notify

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/radieske/betledger/internal/tracker/state"
	"github.com/radieske/betledger/internal/tracker/stats"
)

// Event é o que o tracker anuncia depois de gravar uma mutação
type Event struct {
	Change         state.Change
	BankrollBefore decimal.Decimal
	BankrollAfter  decimal.Decimal
	Stats          stats.Stats
	At             time.Time
}

type Notifier interface {
	Notify(ctx context.Context, e Event) error
}

// Fanout repassa o evento para todos os notifiers, mesmo se algum falhar
type Fanout []Notifier

func (f Fanout) Notify(ctx context.Context, e Event) error {
	var errs []error
	for _, n := range f {
		if err := n.Notify(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
