package settle

import (
	"context"

	"zhangben/internal/core"
)

// Ledger is the narrow store contract the engine depends on. The
// engine reads full snapshots and appends rows; it never updates and
// never deletes (corrections happen by deleting a settlement row
// through the store and re-settling).
type Ledger interface {
	// CompanyTransactions returns the current full company ledger.
	CompanyTransactions(ctx context.Context) ([]core.Transaction, error)

	// AppendCompany appends a company-ledger row and returns its id.
	AppendCompany(ctx context.Context, tx core.Transaction) (int64, error)

	// AppendDaily appends a daily-ledger row and returns its id.
	AppendDaily(ctx context.Context, d core.DailyTransaction) (int64, error)
}
