package mapping

import (
	"time"

	"github.com/abcstfabu/kapparot-online/pkg/api"
	"github.com/abcstfabu/kapparot-online/pkg/models"
	"github.com/abcstfabu/kapparot-online/pkg/sheets"
	"github.com/abcstfabu/kapparot-online/pkg/validation"
)

// ToTransactionRecord converts a donation draft to a spreadsheet row logged at the given time.
// The payment method is expected to already be a display label.
func ToTransactionRecord(d *models.DonationDraft, loggedAt time.Time) *models.TransactionRecord {
	return &models.TransactionRecord{
		Timestamp:     loggedAt.UTC().Format(time.RFC3339Nano),
		PrayerType:    validation.PrayerTypeDisplayName(d.PrayerType),
		Amount:        d.Amount.String(),
		Email:         d.Email,
		TransactionID: d.TransactionID,
		PaymentMethod: d.PaymentMethod,
		Status:        string(d.Status()),
	}
}

// ToRecordEvent wraps a draft in a RecordDonation log event.
func ToRecordEvent(d *models.DonationDraft, loggedAt time.Time) *models.LogEvent {
	return &models.LogEvent{
		Kind:   models.RecordDonation,
		Record: ToTransactionRecord(d, loggedAt),
	}
}

// ToDomainDraft converts a validated API DonationRequest to a domain draft.
// Only the presence of completedAt matters; an unparsable value is stamped with now.
func ToDomainDraft(req *api.DonationRequest, now time.Time) *models.DonationDraft {
	d := &models.DonationDraft{
		PrayerType: models.PrayerType(req.PrayerType),
		Amount:     req.Amount,
		Email:      req.Email,
	}
	if req.TransactionId != nil {
		d.TransactionID = *req.TransactionId
	}
	if req.PaymentMethod != nil {
		d.PaymentMethod = *req.PaymentMethod
	}
	if req.CompletedAt != nil && *req.CompletedAt != "" {
		completedAt, err := time.Parse(time.RFC3339Nano, *req.CompletedAt)
		if err != nil {
			completedAt = now
		}
		d.CompletedAt = &completedAt
	}
	return d
}

// ToApiLoggingResponse converts a remote logging result to an API response.
// A failed attempt always reports the local-only method.
func ToApiLoggingResponse(res sheets.Result, success bool, message string) *api.LoggingResponse {
	resp := &api.LoggingResponse{
		Success: success,
		Method:  api.LoggingMethod(res.Method),
		Message: message,
	}
	if !res.Success {
		resp.Method = api.LoggingMethodLocalStorage
	}
	if res.Error != "" {
		e := res.Error
		resp.Error = &e
	}
	return resp
}
