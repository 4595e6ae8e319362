package sheets

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/abcstfabu/kapparot-online/pkg/models"
)

// Method names where a donation ended up.
type Method string

const (
	MethodLocal      Method = "localStorage"
	MethodAppsScript Method = "apps-script"
	MethodSheets     Method = "sheets"
)

// DefaultSheetName is the tab rows are appended to when none is configured.
const DefaultSheetName = "Donations"

var ErrNotConfigured = errors.New("spreadsheet logging is not configured")

// Result is the outcome of one remote logging attempt.
type Result struct {
	Success bool
	Method  Method
	Error   string
}

func resultOf(m Method, err error) Result {
	if err != nil {
		return Result{Success: false, Method: m, Error: err.Error()}
	}
	return Result{Success: true, Method: m}
}

// StatusUpdater issues reconciliation calls for a transaction.
type StatusUpdater interface {
	UpdateStatus(ctx context.Context, transactionID, status string) Result
}

// Client logs donation events to the external spreadsheet.
// Implementations make a single attempt per call and never retry.
type Client interface {
	StatusUpdater
	Configured() bool
	Method() Method
	RecordDonation(ctx context.Context, record *models.TransactionRecord) Result
}

type Config struct {
	AppsScriptURL string
	APIKey        string
	SheetID       string
	SheetName     string
	Timeout       time.Duration
	HTTPClient    *http.Client
}

// New picks the Apps Script webhook when its URL is set, then the values API
// when an API key and sheet id are set, and otherwise a local-only client.
func New(ctx context.Context, cfg Config) (Client, error) {
	switch {
	case cfg.AppsScriptURL != "":
		return NewAppsScriptClient(cfg.AppsScriptURL, cfg.HTTPClient, cfg.Timeout), nil
	case cfg.APIKey != "" && cfg.SheetID != "":
		c, err := NewValuesClient(ctx, cfg.APIKey, cfg.SheetID, cfg.SheetName, cfg.Timeout)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return Unconfigured{}, nil
	}
}

// Unconfigured short-circuits every call to a local-only success without network I/O.
type Unconfigured struct{}

var _ Client = Unconfigured{}

func (Unconfigured) Configured() bool { return false }

func (Unconfigured) Method() Method { return MethodLocal }

func (Unconfigured) RecordDonation(context.Context, *models.TransactionRecord) Result {
	return Result{Success: true, Method: MethodLocal}
}

func (Unconfigured) UpdateStatus(context.Context, string, string) Result {
	return Result{Success: true, Method: MethodLocal}
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
