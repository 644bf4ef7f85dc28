// Package google mirrors ledger rows to a Google Sheets spreadsheet.
package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"zhangben/internal/core"
	ports "zhangben/internal/sheets"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	companySheet  string
	dailySheet    string
	deletedSheet  string
}

var _ ports.BackupWriter = (*Client)(nil)

// NewFromEnv creates a Sheets client from environment variables.
// Required: GOOGLE_SPREADSHEET_ID plus service account credentials via
// GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or
// GOOGLE_APPLICATION_CREDENTIALS.
// Optional sheet names: GOOGLE_COMPANY_SHEET_NAME (default "Company"),
// GOOGLE_DAILY_SHEET_NAME (default "Daily"),
// GOOGLE_DELETED_SHEET_NAME (default "Deleted").
func NewFromEnv(ctx context.Context) (*Client, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		companySheet:  envOr("GOOGLE_COMPANY_SHEET_NAME", "Company"),
		dailySheet:    envOr("GOOGLE_DAILY_SHEET_NAME", "Daily"),
		deletedSheet:  envOr("GOOGLE_DELETED_SHEET_NAME", "Deleted"),
	}, nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	var err error

	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	slog.InfoContext(ctx, "Google Sheets service created")
	return service, nil
}

// AppendCompanyRow appends a company ledger row to the backup sheet.
func (c *Client) AppendCompanyRow(ctx context.Context, tx core.Transaction) (string, error) {
	if err := tx.Validate(); err != nil {
		return "", fmt.Errorf("validation failed: %w", err)
	}
	row := []any{
		tx.ID, tx.Date.String(), string(tx.Type), tx.Item, tx.Category, tx.Note,
		tx.RawAmount, tx.Amount, tx.Tax, tx.Surplus, tx.Fee, tx.KOLSalary,
		tx.NetAmount, tx.SettledPeriod,
	}
	return c.appendRow(ctx, c.companySheet, row)
}

// AppendDailyRow appends a daily ledger row to the backup sheet.
func (c *Client) AppendDailyRow(ctx context.Context, d core.DailyTransaction) (string, error) {
	if err := d.Validate(); err != nil {
		return "", fmt.Errorf("validation failed: %w", err)
	}
	row := []any{d.ID, d.Date.String(), d.Item, d.Category, d.Note, d.Amount}
	return c.appendRow(ctx, c.dailySheet, row)
}

// MarkDeleted records a deletion as a tombstone row. The backup stays
// append-only so it remains usable as an audit log.
func (c *Client) MarkDeleted(ctx context.Context, collection string, id int64) (string, error) {
	row := []any{collection, id, time.Now().UTC().Format(time.RFC3339)}
	return c.appendRow(ctx, c.deletedSheet, row)
}

func (c *Client) appendRow(ctx context.Context, sheetName string, row []any) (string, error) {
	if c.svc == nil {
		return "", errors.New("sheets service not initialized")
	}

	rng := fmt.Sprintf("%s!A:A", sheetName)
	vr := &gsheet.ValueRange{Values: [][]any{row}}

	resp, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("append to sheet %s: %w", sheetName, err)
	}

	ref := rng
	if resp.Updates != nil && resp.Updates.UpdatedRange != "" {
		ref = resp.Updates.UpdatedRange
	}
	return ref, nil
}
