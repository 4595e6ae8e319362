package donations

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/abcstfabu/kapparot-online/pkg/api"
	"github.com/abcstfabu/kapparot-online/pkg/mapping"
	"github.com/abcstfabu/kapparot-online/pkg/sheets"
	"github.com/abcstfabu/kapparot-online/pkg/validation"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

const (
	invalidDonationMessage = "Invalid donation data provided"
	invalidUpdateMessage   = "Invalid request data. transactionId and status are required."
)

// DonationsHandler serves the spreadsheet logging API. Once a request is
// valid it answers 200 whatever happens downstream.
type DonationsHandler struct {
	Client sheets.Client
	Logger *slog.Logger
	Now    func() time.Time
}

// NewDonationsHandler creates a new DonationsHandler.
func NewDonationsHandler(client sheets.Client, logger *slog.Logger) *DonationsHandler {
	return &DonationsHandler{Client: client, Logger: logger, Now: time.Now}
}

var methodNames = map[sheets.Method]string{
	sheets.MethodAppsScript: "Google Apps Script",
	sheets.MethodSheets:     "Google Sheets API",
	sheets.MethodLocal:      "localStorage",
}

// GetSaveDonationInfo reports whether remote logging is configured.
func (h *DonationsHandler) GetSaveDonationInfo(w http.ResponseWriter, r *http.Request) {
	method := methodNames[h.Client.Method()]
	writeJSON(w, http.StatusOK, &api.ApiInfo{
		Message:    "Kapparot donation API is running",
		Configured: h.Client.Configured(),
		Method:     &method,
		Timestamp:  h.Now().UTC(),
	})
}

// GetUpdatePaymentStatusInfo reports whether remote logging is configured.
func (h *DonationsHandler) GetUpdatePaymentStatusInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, &api.ApiInfo{
		Message:    "Payment status update API is running",
		Configured: h.Client.Configured(),
		Timestamp:  h.Now().UTC(),
	})
}

// SaveDonation logs a donation row. Spreadsheet failures are reported in the
// body of a 200 response and the donation counts as saved locally.
func (h *DonationsHandler) SaveDonation(w http.ResponseWriter, r *http.Request) {
	obj, ok := h.decodeObject(w, r)
	if !ok {
		return
	}

	req, ok := toDonationRequest(obj)
	if !ok {
		writeError(w, http.StatusBadRequest, invalidDonationMessage, nil)
		return
	}

	ctx := r.Context()
	if !h.Client.Configured() {
		h.Logger.WarnContext(ctx, "spreadsheet logging not configured, donation kept locally")
		writeJSON(w, http.StatusOK, mapping.ToApiLoggingResponse(
			sheets.Result{Success: true, Method: sheets.MethodLocal}, true,
			"Data saved locally (Google Sheets not configured)"))
		return
	}

	now := h.Now()
	record := mapping.ToTransactionRecord(mapping.ToDomainDraft(req, now), now)
	res := h.Client.RecordDonation(ctx, record)
	if !res.Success {
		h.Logger.ErrorContext(ctx, "failed to save donation to spreadsheet",
			"transaction_id", record.TransactionID,
			"method", res.Method,
			"error", res.Error,
		)
		writeJSON(w, http.StatusOK, mapping.ToApiLoggingResponse(res, true, "Data saved locally (Google Sheets error)"))
		return
	}

	message := "Data saved to Google Sheets successfully"
	if res.Method == sheets.MethodAppsScript {
		message = "Data saved to Google Sheets via Apps Script successfully"
	}
	writeJSON(w, http.StatusOK, mapping.ToApiLoggingResponse(res, true, message))
}

// UpdatePaymentStatus sets the status of a logged donation. A failed update
// is still a 200 with success false.
func (h *DonationsHandler) UpdatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	obj, ok := h.decodeObject(w, r)
	if !ok {
		return
	}

	req, ok := toPaymentStatusRequest(obj)
	if !ok {
		writeError(w, http.StatusBadRequest, invalidUpdateMessage, nil)
		return
	}

	ctx := r.Context()
	if !h.Client.Configured() {
		h.Logger.WarnContext(ctx, "spreadsheet logging not configured for payment status update")
		writeJSON(w, http.StatusOK, mapping.ToApiLoggingResponse(
			sheets.Result{Success: true, Method: sheets.MethodLocal}, true,
			"Payment status update skipped (Google Sheets not configured)"))
		return
	}

	res := h.Client.UpdateStatus(ctx, req.TransactionId, req.Status)
	if !res.Success {
		h.Logger.ErrorContext(ctx, "failed to update payment status",
			"transaction_id", req.TransactionId,
			"method", res.Method,
			"error", res.Error,
		)
		writeJSON(w, http.StatusOK, mapping.ToApiLoggingResponse(res, false, "Payment status update failed"))
		return
	}

	writeJSON(w, http.StatusOK, mapping.ToApiLoggingResponse(res, true, "Payment status updated successfully"))
}

// decodeObject parses the body as a JSON object. Unparsable JSON is an
// internal error; well-formed JSON of another shape is the caller's to reject.
func (h *DonationsHandler) decodeObject(w http.ResponseWriter, r *http.Request) (map[string]any, bool) {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()

	var body any
	if err := dec.Decode(&body); err != nil {
		h.Logger.ErrorContext(r.Context(), "failed to parse request body", "error", err)
		message := err.Error()
		writeError(w, http.StatusInternalServerError, "Internal server error", &message)
		return nil, false
	}

	obj, _ := body.(map[string]any)
	return obj, true
}

func toDonationRequest(obj map[string]any) (*api.DonationRequest, bool) {
	prayerType, ok := obj["prayerType"].(string)
	if !ok {
		return nil, false
	}

	n, ok := obj["amount"].(json.Number)
	if !ok {
		return nil, false
	}
	amount, err := decimal.NewFromString(n.String())
	if err != nil || !validation.IsValidAmount(amount) {
		return nil, false
	}

	email, ok := obj["email"].(string)
	if !ok || !strings.Contains(email, "@") {
		return nil, false
	}

	return &api.DonationRequest{
		PrayerType:    prayerType,
		Amount:        amount,
		Email:         email,
		TransactionId: optionalString(obj, "transactionId"),
		PaymentMethod: optionalString(obj, "paymentMethod"),
		CompletedAt:   optionalString(obj, "completedAt"),
	}, true
}

func toPaymentStatusRequest(obj map[string]any) (*api.PaymentStatusRequest, bool) {
	txID, ok := obj["transactionId"].(string)
	if !ok || txID == "" {
		return nil, false
	}
	status, ok := obj["status"].(string)
	if !ok {
		return nil, false
	}
	return &api.PaymentStatusRequest{TransactionId: txID, Status: status}, true
}

// optionalString returns nil for absent or falsy values.
func optionalString(obj map[string]any, key string) *string {
	v := obj[key]
	if v == nil || v == false || v == json.Number("0") {
		return nil
	}
	s, err := cast.ToStringE(v)
	if err != nil || s == "" {
		return nil
	}
	return &s
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string, detail *string) {
	writeJSON(w, status, &api.ErrorResponse{Error: message, Message: detail})
}
