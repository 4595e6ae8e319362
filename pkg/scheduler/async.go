package scheduler

import (
	"context"
	"log/slog"
	"sync"

	"github.com/abcstfabu/kapparot-online/pkg/models"
	"github.com/abcstfabu/kapparot-online/pkg/sheets"
)

// Async delivers each event on its own goroutine. The request context is
// detached so the task outlives the response that scheduled it; the client's
// own timeout bounds it.
type Async struct {
	Client sheets.Client
	Logger *slog.Logger

	wg sync.WaitGroup
}

func NewAsync(client sheets.Client, logger *slog.Logger) *Async {
	return &Async{
		Client: client,
		Logger: logger,
	}
}

var _ Scheduler = (*Async)(nil)

func (a *Async) Schedule(ctx context.Context, ev *models.LogEvent) error {
	if ev == nil {
		return ErrNilEvent
	}

	ctx = context.WithoutCancel(ctx)
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()

		res := Deliver(ctx, a.Client, ev)
		if !res.Success {
			a.Logger.WarnContext(ctx, "remote logging failed",
				"kind", ev.Kind,
				"transaction_id", TransactionID(ev),
				"method", res.Method,
				"error", res.Error,
			)
			return
		}
		a.Logger.DebugContext(ctx, "remote logging delivered",
			"kind", ev.Kind,
			"transaction_id", TransactionID(ev),
			"method", res.Method,
		)
	}()

	return nil
}

// Wait blocks until every scheduled task has finished.
func (a *Async) Wait() {
	a.wg.Wait()
}
