package flow

import (
	"context"

	"github.com/abcstfabu/kapparot-online/pkg/models"
	"github.com/abcstfabu/kapparot-online/pkg/prayers"
	"github.com/abcstfabu/kapparot-online/pkg/validation"
	"github.com/shopspring/decimal"
)

// Prayer display steps.
const (
	StepIntroduction = 1
	StepCeremony     = 2
	StepComplete     = 3
)

// PrayerView is what PrayerShown shows for one step. HasText is false on the
// ceremony step for categories without ritual text.
type PrayerView struct {
	Draft       *models.DonationDraft
	DisplayName string
	Step        int
	Language    prayers.Language
	Text        prayers.Text
	HasText     bool
	Total       decimal.Decimal
	PrayerCount int
}

// Prayer returns the view of step in lang. Steps outside 1..3 are clamped.
func (m *Machine) Prayer(ctx context.Context, sessionID string, step int, lang prayers.Language) (*PrayerView, error) {
	draft, ok := m.Store.Draft(ctx, sessionID)
	if !ok || draft.PrayerType == "" {
		return nil, ErrNoDraft
	}

	step = min(max(step, StepIntroduction), StepComplete)
	acc := m.Store.Accumulator(ctx, sessionID)

	view := &PrayerView{
		Draft:       draft,
		DisplayName: validation.PrayerTypeDisplayName(draft.PrayerType),
		Step:        step,
		Language:    lang,
		Total:       acc.TotalAmount,
		PrayerCount: len(acc.Prayers),
	}
	if view.Total.IsZero() {
		view.Total = draft.Amount
	}

	switch step {
	case StepIntroduction:
		view.Text, view.HasText = prayers.Introductory, true
	case StepCeremony:
		view.Text, view.HasText = prayers.For(draft.PrayerType)
	}

	return view, nil
}

// PerformAnother stamps the shown prayer as completed and loops back to
// Collecting. It returns the email to prefill.
func (m *Machine) PerformAnother(ctx context.Context, sessionID string) string {
	acc := m.markPrayerCompleted(ctx, sessionID)
	return acc.Email
}

// ProceedToPayment stamps the shown prayer as completed and replaces the draft
// with the aggregate of the sitting: category Multiple, amount the running
// total, and a fresh transaction id. The per-prayer breakdown stays in the accumulator.
func (m *Machine) ProceedToPayment(ctx context.Context, sessionID string) (*models.DonationDraft, error) {
	draft, ok := m.Store.Draft(ctx, sessionID)
	if !ok {
		return nil, ErrNoDraft
	}

	acc := m.markPrayerCompleted(ctx, sessionID)

	now := m.now()
	aggregate := &models.DonationDraft{
		PrayerType:    models.Multiple,
		Amount:        acc.TotalAmount,
		Email:         acc.Email,
		Timestamp:     &now,
		TransactionID: m.NewTransactionID(now),
	}
	// accumulator lost (expired or cleared elsewhere): fall back to the draft
	if len(acc.Prayers) == 0 || !acc.TotalAmount.IsPositive() {
		aggregate.Amount = draft.Amount
		aggregate.Email = draft.Email
	}

	m.Store.SaveDraft(ctx, sessionID, aggregate)

	m.Logger.InfoContext(ctx, "proceeding to payment",
		"session_id", sessionID,
		"transaction_id", aggregate.TransactionID,
		"amount", aggregate.Amount.String(),
		"prayers", len(acc.Prayers),
	)

	return aggregate, nil
}

func (m *Machine) markPrayerCompleted(ctx context.Context, sessionID string) *models.SessionAccumulator {
	acc := m.Store.Accumulator(ctx, sessionID)
	if acc.MarkLastCompleted(m.now()) {
		m.Store.SaveAccumulator(ctx, sessionID, acc)
	}
	return acc
}
