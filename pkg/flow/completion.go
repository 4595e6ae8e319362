package flow

import (
	"context"

	"github.com/abcstfabu/kapparot-online/pkg/models"
	"github.com/abcstfabu/kapparot-online/pkg/sheets"
)

// Reconciliation is the outcome of returning from an external payment.
type Reconciliation struct {
	Pending *models.PendingPayment
	Result  sheets.Result
	Draft   *models.DonationDraft
}

// Found reports whether a pending payment was waiting.
func (r *Reconciliation) Found() bool {
	return r.Pending != nil
}

// Complete reads the draft once for display and clears it. The accumulator
// and any pending payment are kept.
func (m *Machine) Complete(ctx context.Context, sessionID string) (*models.DonationDraft, bool) {
	draft, ok := m.Store.Draft(ctx, sessionID)
	m.Store.ClearDraft(ctx, sessionID)
	return draft, ok
}

// ReturnFromPayment reconciles the pending payment left by a redirect. The
// status update is attempted once and the pending record is discarded whatever
// the outcome.
func (m *Machine) ReturnFromPayment(ctx context.Context, sessionID string) *Reconciliation {
	rec := &Reconciliation{}
	rec.Draft, _ = m.Complete(ctx, sessionID)

	pending, ok := m.Store.PendingPayment(ctx, sessionID)
	if !ok {
		return rec
	}
	rec.Pending = pending

	rec.Result = m.Updater.UpdateStatus(ctx, pending.TransactionID, string(models.Completed))
	m.Store.ClearPendingPayment(ctx, sessionID)

	if !rec.Result.Success {
		m.Logger.WarnContext(ctx, "payment status update failed",
			"session_id", sessionID,
			"transaction_id", pending.TransactionID,
			"method", rec.Result.Method,
			"error", rec.Result.Error,
		)
	} else {
		m.Logger.InfoContext(ctx, "payment reconciled",
			"session_id", sessionID,
			"transaction_id", pending.TransactionID,
			"method", rec.Result.Method,
		)
	}

	return rec
}

// StartNewSession wipes the draft, the accumulator and any pending payment.
func (m *Machine) StartNewSession(ctx context.Context, sessionID string) {
	m.Store.ClearDraft(ctx, sessionID)
	m.Store.ClearAccumulator(ctx, sessionID)
	m.Store.ClearPendingPayment(ctx, sessionID)
}
