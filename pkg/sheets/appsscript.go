package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/abcstfabu/kapparot-online/pkg/models"
)

const maxResponseBody = 64 << 10

var errAppsScript = errors.New("apps script error")

// AppsScriptClient posts flat JSON payloads to a Google Apps Script web app
// bound to the donations spreadsheet.
type AppsScriptClient struct {
	URL        string
	HTTPClient *http.Client
	Timeout    time.Duration
	Now        func() time.Time
}

var _ Client = (*AppsScriptClient)(nil)

func NewAppsScriptClient(url string, httpClient *http.Client, timeout time.Duration) *AppsScriptClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &AppsScriptClient{
		URL:        url,
		HTTPClient: httpClient,
		Timeout:    timeout,
		Now:        time.Now,
	}
}

type statusUpdatePayload struct {
	Action        string `json:"action"`
	TransactionID string `json:"transactionId"`
	Status        string `json:"status"`
	CompletedAt   string `json:"completedAt"`
}

type appsScriptResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

func (c *AppsScriptClient) Configured() bool { return true }

func (c *AppsScriptClient) Method() Method { return MethodAppsScript }

// RecordDonation appends the record as a new row.
func (c *AppsScriptClient) RecordDonation(ctx context.Context, record *models.TransactionRecord) Result {
	return resultOf(MethodAppsScript, c.post(ctx, record))
}

// UpdateStatus asks the script to set the status of the row holding transactionID.
func (c *AppsScriptClient) UpdateStatus(ctx context.Context, transactionID, status string) Result {
	payload := statusUpdatePayload{
		Action:        "update",
		TransactionID: transactionID,
		Status:        status,
		CompletedAt:   c.Now().UTC().Format(time.RFC3339Nano),
	}
	return resultOf(MethodAppsScript, c.post(ctx, payload))
}

func (c *AppsScriptClient) post(ctx context.Context, payload any) error {
	ctx, cancel := withTimeout(ctx, c.Timeout)
	defer cancel()

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal apps script payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build apps script request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call apps script: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return fmt.Errorf("failed to read apps script response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var out appsScriptResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return fmt.Errorf("failed to decode apps script response: %w", err)
	}
	if !out.Success {
		if out.Error != "" {
			return errors.New(out.Error)
		}
		return errAppsScript
	}
	return nil
}
