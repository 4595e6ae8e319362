package mapping

import (
	"testing"
	"time"

	"github.com/abcstfabu/kapparot-online/pkg/api"
	"github.com/abcstfabu/kapparot-online/pkg/models"
	"github.com/abcstfabu/kapparot-online/pkg/sheets"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var loggedAt = time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC)

func TestToTransactionRecord(t *testing.T) {
	t.Run("Payment Selected", func(t *testing.T) {
		d := &models.DonationDraft{
			PrayerType:    models.Multiple,
			Amount:        decimal.RequireFromString("54.50"),
			Email:         "x@y.org",
			TransactionID: "KAP-1-ABCDE",
			PaymentMethod: "Credit Card (Stripe)",
		}

		rec := ToTransactionRecord(d, loggedAt)

		assert.Equal(t, &models.TransactionRecord{
			Timestamp:     "2025-10-01T12:00:00Z",
			PrayerType:    "Multiple Kapparot Prayers",
			Amount:        "54.5",
			Email:         "x@y.org",
			TransactionID: "KAP-1-ABCDE",
			PaymentMethod: "Credit Card (Stripe)",
			Status:        "Payment Selected",
		}, rec)
	})

	t.Run("Completed With Unknown Category", func(t *testing.T) {
		completed := loggedAt
		d := &models.DonationDraft{PrayerType: "self-goat", Amount: decimal.NewFromInt(18), CompletedAt: &completed}

		rec := ToTransactionRecord(d, loggedAt)

		assert.Equal(t, "self-goat", rec.PrayerType)
		assert.Equal(t, "Completed", rec.Status)
	})
}

func TestToRecordEvent(t *testing.T) {
	ev := ToRecordEvent(&models.DonationDraft{PrayerType: models.SelfMale, Amount: decimal.NewFromInt(18)}, loggedAt)

	assert.Equal(t, models.RecordDonation, ev.Kind)
	require.NotNil(t, ev.Record)
	assert.Equal(t, "Male (For Yourself)", ev.Record.PrayerType)
}

func TestToDomainDraft(t *testing.T) {
	now := loggedAt.Add(time.Minute)

	t.Run("Minimal", func(t *testing.T) {
		d := ToDomainDraft(&api.DonationRequest{PrayerType: "multiple", Amount: decimal.NewFromInt(54), Email: "x@y.org"}, now)

		assert.Equal(t, models.Multiple, d.PrayerType)
		assert.True(t, d.Amount.Equal(decimal.NewFromInt(54)))
		assert.Empty(t, d.TransactionID)
		assert.Nil(t, d.CompletedAt)
		assert.Equal(t, models.PaymentSelected, d.Status())
	})

	t.Run("Optional Fields", func(t *testing.T) {
		txID, method, completedAt := "KAP-1-ABCDE", "Zelle/QuickPay", "2025-10-01T12:00:00Z"
		d := ToDomainDraft(&api.DonationRequest{
			PrayerType:    "self-male",
			Amount:        decimal.NewFromInt(18),
			Email:         "a@b.com",
			TransactionId: &txID,
			PaymentMethod: &method,
			CompletedAt:   &completedAt,
		}, now)

		assert.Equal(t, txID, d.TransactionID)
		assert.Equal(t, method, d.PaymentMethod)
		require.NotNil(t, d.CompletedAt)
		assert.True(t, loggedAt.Equal(*d.CompletedAt))
	})

	t.Run("Unparsable Completion Still Completes", func(t *testing.T) {
		completedAt := "yesterday"
		d := ToDomainDraft(&api.DonationRequest{PrayerType: "self-male", Amount: decimal.NewFromInt(18), Email: "a@b.com", CompletedAt: &completedAt}, now)

		require.NotNil(t, d.CompletedAt)
		assert.True(t, now.Equal(*d.CompletedAt))
		assert.Equal(t, models.Completed, d.Status())
	})
}

func TestToApiLoggingResponse(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		resp := ToApiLoggingResponse(sheets.Result{Success: true, Method: sheets.MethodAppsScript}, true, "saved")

		assert.True(t, resp.Success)
		assert.Equal(t, api.LoggingMethodAppsScript, resp.Method)
		assert.Nil(t, resp.Error)
	})

	t.Run("Failure Downgrades To Local", func(t *testing.T) {
		resp := ToApiLoggingResponse(sheets.Result{Method: sheets.MethodSheets, Error: "HTTP 403: denied"}, true, "saved locally")

		assert.True(t, resp.Success)
		assert.Equal(t, api.LoggingMethodLocalStorage, resp.Method)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "HTTP 403: denied", *resp.Error)
	})
}
