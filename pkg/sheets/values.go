package sheets

import (
	"context"
	"fmt"
	"time"

	"github.com/abcstfabu/kapparot-online/pkg/models"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

// ValuesClient appends rows through the Sheets values API. Status updates are
// appended as rows too since the client never reads rows back.
type ValuesClient struct {
	service   *sheetsapi.Service
	SheetID   string
	SheetName string
	Timeout   time.Duration
	Now       func() time.Time
}

var _ Client = (*ValuesClient)(nil)

func NewValuesClient(ctx context.Context, apiKey, sheetID, sheetName string, timeout time.Duration, opts ...option.ClientOption) (*ValuesClient, error) {
	if apiKey == "" || sheetID == "" {
		return nil, ErrNotConfigured
	}
	if sheetName == "" {
		sheetName = DefaultSheetName
	}

	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	service, err := sheetsapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &ValuesClient{
		service:   service,
		SheetID:   sheetID,
		SheetName: sheetName,
		Timeout:   timeout,
		Now:       time.Now,
	}, nil
}

func (c *ValuesClient) Configured() bool { return true }

func (c *ValuesClient) Method() Method { return MethodSheets }

func (c *ValuesClient) RecordDonation(ctx context.Context, record *models.TransactionRecord) Result {
	row := []interface{}{
		record.Timestamp,
		record.PrayerType,
		record.Amount,
		record.Email,
		record.TransactionID,
		record.PaymentMethod,
		record.Status,
	}
	return resultOf(MethodSheets, c.append(ctx, row))
}

func (c *ValuesClient) UpdateStatus(ctx context.Context, transactionID, status string) Result {
	row := []interface{}{
		c.Now().UTC().Format(time.RFC3339Nano),
		"", "", "",
		transactionID,
		"",
		status,
	}
	return resultOf(MethodSheets, c.append(ctx, row))
}

func (c *ValuesClient) append(ctx context.Context, row []interface{}) error {
	ctx, cancel := withTimeout(ctx, c.Timeout)
	defer cancel()

	vr := &sheetsapi.ValueRange{Values: [][]interface{}{row}}
	_, err := c.service.Spreadsheets.Values.
		Append(c.SheetID, c.SheetName+"!A:G", vr).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to append row to sheet %s: %w", c.SheetName, err)
	}
	return nil
}
