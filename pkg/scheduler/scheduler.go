package scheduler

import (
	"context"
	"errors"
	"fmt"

	"github.com/abcstfabu/kapparot-online/pkg/models"
	"github.com/abcstfabu/kapparot-online/pkg/sheets"
)

var (
	ErrNilEvent     = errors.New("log event is nil")
	ErrUnknownEvent = errors.New("unknown log event kind")
)

// Scheduler launches a remote logging task without waiting for its outcome.
// A returned error only means the task could not be launched.
type Scheduler interface {
	Schedule(ctx context.Context, ev *models.LogEvent) error
}

// Deliver performs the single delivery attempt for ev.
func Deliver(ctx context.Context, client sheets.Client, ev *models.LogEvent) sheets.Result {
	switch {
	case ev == nil:
		return sheets.Result{Method: client.Method(), Error: ErrNilEvent.Error()}
	case ev.Kind == models.RecordDonation && ev.Record != nil:
		return client.RecordDonation(ctx, ev.Record)
	case ev.Kind == models.UpdateStatus && ev.TransactionID != "":
		return client.UpdateStatus(ctx, ev.TransactionID, ev.Status)
	default:
		return sheets.Result{Method: client.Method(), Error: fmt.Sprintf("%v: %q", ErrUnknownEvent, ev.Kind)}
	}
}

// TransactionID returns the id an event is about, for logging.
func TransactionID(ev *models.LogEvent) string {
	if ev == nil {
		return ""
	}
	if ev.Record != nil {
		return ev.Record.TransactionID
	}
	return ev.TransactionID
}
