// Package services orchestrates ledger operations across the store and
// the AMQP sync channel.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"zhangben/internal/amqp"
	"zhangben/internal/classify"
	"zhangben/internal/core"
	"zhangben/internal/report"
)

// Store is the persistence surface the services need.
type Store interface {
	CompanyTransactions(ctx context.Context) ([]core.Transaction, error)
	AppendCompany(ctx context.Context, tx core.Transaction) (int64, error)
	GetCompany(ctx context.Context, id int64) (core.Transaction, error)
	DeleteCompany(ctx context.Context, id int64) error
	DailyTransactions(ctx context.Context) ([]core.DailyTransaction, error)
	AppendDaily(ctx context.Context, d core.DailyTransaction) (int64, error)
	GetDaily(ctx context.Context, id int64) (core.DailyTransaction, error)
	DeleteDaily(ctx context.Context, id int64) error
}

// SyncPublisher publishes ledger sync messages for the backup worker.
type SyncPublisher interface {
	PublishLedgerSync(ctx context.Context, collection string, rowID int64, op string) error
}

// LedgerService handles company and daily ledger entries: classify,
// persist, and notify the backup worker.
type LedgerService struct {
	store     Store
	publisher SyncPublisher
}

func NewLedgerService(store Store, publisher SyncPublisher) *LedgerService {
	return &LedgerService{store: store, publisher: publisher}
}

// AddIncome classifies and stores a company income entry.
func (s *LedgerService) AddIncome(ctx context.Context, in classify.IncomeInput) (core.Transaction, error) {
	tx, err := classify.Income(in)
	if err != nil {
		return core.Transaction{}, err
	}
	id, err := s.store.AppendCompany(ctx, tx)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("save income: %w", err)
	}
	tx.ID = id
	s.publishSync(ctx, amqp.CollectionCompany, id, amqp.OpAppend)
	return tx, nil
}

// AddExpense classifies and stores a company expense entry.
func (s *LedgerService) AddExpense(ctx context.Context, in classify.ExpenseInput) (core.Transaction, error) {
	tx, err := classify.Expense(in)
	if err != nil {
		return core.Transaction{}, err
	}
	id, err := s.store.AppendCompany(ctx, tx)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("save expense: %w", err)
	}
	tx.ID = id
	s.publishSync(ctx, amqp.CollectionCompany, id, amqp.OpAppend)
	return tx, nil
}

// AddDaily classifies and stores a daily ledger entry.
func (s *LedgerService) AddDaily(ctx context.Context, in classify.DailyInput) (core.DailyTransaction, error) {
	d, err := classify.Daily(in)
	if err != nil {
		return core.DailyTransaction{}, err
	}
	id, err := s.store.AppendDaily(ctx, d)
	if err != nil {
		return core.DailyTransaction{}, fmt.Errorf("save daily entry: %w", err)
	}
	d.ID = id
	s.publishSync(ctx, amqp.CollectionDaily, id, amqp.OpAppend)
	return d, nil
}

// AddFixedDaily stores the monthly fixed-expense batch. Amounts are
// keyed by template label; labels with a zero amount are skipped and
// unknown labels are rejected.
func (s *LedgerService) AddFixedDaily(ctx context.Context, date core.Date, amounts map[string]int64) ([]core.DailyTransaction, error) {
	for label := range amounts {
		if !core.ValidCategory(label, core.FixedExpenseLabels) {
			return nil, &classify.FieldError{Field: label, Err: core.ErrInvalidCategory}
		}
	}

	var out []core.DailyTransaction
	// Iterate in template order so rows land in a stable sequence.
	for _, label := range core.FixedExpenseLabels {
		amount, ok := amounts[label]
		if !ok || amount == 0 {
			continue
		}
		if amount < 0 {
			return out, &classify.FieldError{Field: label, Err: core.ErrInvalidAmount}
		}
		category := label
		if !core.ValidCategory(category, core.DailyCategories) {
			category = core.CategoryOther
		}
		d := core.DailyTransaction{Date: date, Item: label, Category: category, Amount: amount}
		id, err := s.store.AppendDaily(ctx, d)
		if err != nil {
			return out, fmt.Errorf("save fixed expense %s: %w", label, err)
		}
		d.ID = id
		s.publishSync(ctx, amqp.CollectionDaily, id, amqp.OpAppend)
		out = append(out, d)
	}
	return out, nil
}

// ListCompany returns company rows, optionally filtered to one month.
func (s *LedgerService) ListCompany(ctx context.Context, month *core.Period) ([]core.Transaction, error) {
	txs, err := s.store.CompanyTransactions(ctx)
	if err != nil {
		return nil, err
	}
	if month == nil {
		return txs, nil
	}
	out := make([]core.Transaction, 0, len(txs))
	for _, tx := range txs {
		if month.Contains(tx.Date) {
			out = append(out, tx)
		}
	}
	return out, nil
}

// ListDaily returns daily rows, optionally filtered to one month.
func (s *LedgerService) ListDaily(ctx context.Context, month *core.Period) ([]core.DailyTransaction, error) {
	rows, err := s.store.DailyTransactions(ctx)
	if err != nil {
		return nil, err
	}
	if month == nil {
		return rows, nil
	}
	out := make([]core.DailyTransaction, 0, len(rows))
	for _, d := range rows {
		if month.Contains(d.Date) {
			out = append(out, d)
		}
	}
	return out, nil
}

// DeleteCompany removes a company row and notifies the backup worker.
// Deleting a settlement row reopens its period.
func (s *LedgerService) DeleteCompany(ctx context.Context, id int64) error {
	tx, err := s.store.GetCompany(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.DeleteCompany(ctx, id); err != nil {
		return err
	}
	if tx.Type == core.TypeSettlement {
		slog.InfoContext(ctx, "Settlement row deleted, period reopened",
			"id", id, "period", tx.SettledPeriod)
	}
	s.publishSync(ctx, amqp.CollectionCompany, id, amqp.OpDelete)
	return nil
}

// DeleteDaily removes a daily row and notifies the backup worker.
func (s *LedgerService) DeleteDaily(ctx context.Context, id int64) error {
	d, err := s.store.GetDaily(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.DeleteDaily(ctx, id); err != nil {
		return err
	}
	if d.IsPayout() {
		slog.InfoContext(ctx, "Settlement payout row deleted", "id", id, "date", d.Date.String())
	}
	s.publishSync(ctx, amqp.CollectionDaily, id, amqp.OpDelete)
	return nil
}

// MonthlyReport computes the company figures for one period.
func (s *LedgerService) MonthlyReport(ctx context.Context, p core.Period) (report.MonthlySummary, report.AllTimeSummary, error) {
	txs, err := s.store.CompanyTransactions(ctx)
	if err != nil {
		return report.MonthlySummary{}, report.AllTimeSummary{}, err
	}
	return report.Monthly(txs, p), report.AllTime(txs), nil
}

// AnnualReportFor computes the year-to-date company breakdown.
func (s *LedgerService) AnnualReportFor(ctx context.Context, year int) (report.AnnualReport, error) {
	txs, err := s.store.CompanyTransactions(ctx)
	if err != nil {
		return report.AnnualReport{}, err
	}
	return report.Annual(txs, year), nil
}

// DailyReport computes the daily ledger board for one period.
func (s *LedgerService) DailyReport(ctx context.Context, p core.Period) (report.DailySummary, error) {
	rows, err := s.store.DailyTransactions(ctx)
	if err != nil {
		return report.DailySummary{}, err
	}
	return report.DailyMonthly(rows, p), nil
}

// publishSync notifies the backup worker. Publish failures never fail
// the request; the row is already persisted locally.
func (s *LedgerService) publishSync(ctx context.Context, collection string, id int64, op string) {
	if s.publisher == nil {
		slog.WarnContext(ctx, "Sync publisher not available, skipping message",
			"collection", collection, "row_id", id, "op", op)
		return
	}
	if err := s.publisher.PublishLedgerSync(ctx, collection, id, op); err != nil {
		slog.ErrorContext(ctx, "Failed to publish sync message",
			"collection", collection, "row_id", id, "op", op, "error", err)
	}
}
