package flow

import (
	"context"
	"strings"

	"github.com/abcstfabu/kapparot-online/pkg/models"
	"github.com/abcstfabu/kapparot-online/pkg/validation"
	"github.com/shopspring/decimal"
)

// HomeView is what the Collecting form shows.
type HomeView struct {
	Email       string
	Total       decimal.Decimal
	PrayerCount int
}

// SubmitInput is the raw Collecting form.
type SubmitInput struct {
	PrayerType string
	Amount     string
	Email      string
}

// Start enters Collecting. reset clears the accumulator; email prefills the form.
// Amount and category are never prefilled.
func (m *Machine) Start(ctx context.Context, sessionID, email string, reset bool) *HomeView {
	if reset {
		m.Store.ClearAccumulator(ctx, sessionID)
	}
	acc := m.Store.Accumulator(ctx, sessionID)
	return &HomeView{
		Email:       email,
		Total:       acc.TotalAmount,
		PrayerCount: len(acc.Prayers),
	}
}

// Submit moves Collecting to PrayerShown. The new prayer is written to the
// draft slot and appended to the accumulator.
func (m *Machine) Submit(ctx context.Context, sessionID string, in SubmitInput) (*models.DonationDraft, error) {
	prayerType := models.PrayerType(strings.TrimSpace(in.PrayerType))
	if !prayerType.IsLeaf() {
		return nil, ErrInvalidPrayerType
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(in.Amount))
	if err != nil || !validation.IsValidAmount(amount) {
		return nil, ErrInvalidAmount
	}

	email := strings.TrimSpace(in.Email)
	if !validation.IsValidEmail(email) {
		return nil, ErrInvalidEmail
	}

	now := m.now()
	acc := m.Store.Accumulator(ctx, sessionID)
	acc.Email = email
	acc.Add(models.PrayerRecord{
		PrayerType:  prayerType,
		Amount:      amount,
		PerformedAt: now,
	})

	draft := &models.DonationDraft{
		PrayerType: prayerType,
		Amount:     amount,
		Email:      email,
		Timestamp:  &now,
	}

	m.Store.SaveDraft(ctx, sessionID, draft)
	m.Store.SaveAccumulator(ctx, sessionID, acc)

	m.Logger.DebugContext(ctx, "prayer submitted",
		"session_id", sessionID,
		"prayer_type", prayerType,
		"amount", amount.String(),
		"total", acc.TotalAmount.String(),
	)

	return draft, nil
}
