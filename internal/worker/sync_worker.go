// Package worker mirrors ledger changes from SQLite to the external
// backup, driven by AMQP sync messages.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"zhangben/internal/amqp"
	"zhangben/internal/core"
	"zhangben/internal/sheets"
	"zhangben/internal/storage"
)

// RowSource loads ledger rows by id.
type RowSource interface {
	GetCompany(ctx context.Context, id int64) (core.Transaction, error)
	GetDaily(ctx context.Context, id int64) (core.DailyTransaction, error)
}

type SyncWorker struct {
	source RowSource
	backup sheets.BackupWriter
}

func NewSyncWorker(source RowSource, backup sheets.BackupWriter) *SyncWorker {
	return &SyncWorker{source: source, backup: backup}
}

// HandleSyncMessage processes one ledger sync message. A row that no
// longer exists at append time was deleted in the meantime; the delete
// message carries its own tombstone, so the append is skipped.
func (w *SyncWorker) HandleSyncMessage(ctx context.Context, msg *amqp.LedgerSyncMessage) error {
	if msg.Op == amqp.OpDelete {
		ref, err := w.backup.MarkDeleted(ctx, msg.Collection, msg.RowID)
		if err != nil {
			return fmt.Errorf("mark deleted in backup: %w", err)
		}
		slog.InfoContext(ctx, "Recorded deletion in backup",
			"collection", msg.Collection, "row_id", msg.RowID, "ref", ref)
		return nil
	}

	var (
		ref string
		err error
	)
	switch msg.Collection {
	case amqp.CollectionCompany:
		var tx core.Transaction
		tx, err = w.source.GetCompany(ctx, msg.RowID)
		if err == nil {
			ref, err = w.backup.AppendCompanyRow(ctx, tx)
		}
	case amqp.CollectionDaily:
		var d core.DailyTransaction
		d, err = w.source.GetDaily(ctx, msg.RowID)
		if err == nil {
			ref, err = w.backup.AppendDailyRow(ctx, d)
		}
	default:
		return fmt.Errorf("unknown collection %q", msg.Collection)
	}

	if errors.Is(err, storage.ErrNotFound) {
		slog.WarnContext(ctx, "Row gone before backup, skipping",
			"collection", msg.Collection, "row_id", msg.RowID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("backup %s row %d: %w", msg.Collection, msg.RowID, err)
	}

	slog.InfoContext(ctx, "Backed up ledger row",
		"collection", msg.Collection, "row_id", msg.RowID, "ref", ref)
	return nil
}
