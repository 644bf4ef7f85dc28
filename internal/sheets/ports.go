package sheets

import (
	"context"

	"zhangben/internal/core"
)

// BackupWriter mirrors ledger rows to an external backup. The backup is
// append-only: deletions are recorded as tombstone rows so the backup
// doubles as an audit log.
type BackupWriter interface {
	AppendCompanyRow(ctx context.Context, tx core.Transaction) (rowRef string, err error)
	AppendDailyRow(ctx context.Context, d core.DailyTransaction) (rowRef string, err error)
	MarkDeleted(ctx context.Context, collection string, id int64) (rowRef string, err error)
}
