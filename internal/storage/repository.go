// Package storage persists the company and daily ledgers in SQLite.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"zhangben/internal/core"
	"zhangben/internal/settle"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

const companyColumns = `id, date, type, item, category, note, raw_amount, amount,
	tax, surplus, fee, kol_salary, net_amount, settled_period, created_at`

// CompanyTransactions implements settle.Ledger. Rows are returned
// newest first.
func (r *SQLiteRepository) CompanyTransactions(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+companyColumns+` FROM company_tx ORDER BY date DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("query company transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		tx, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate company transactions: %w", err)
	}
	return out, nil
}

// AppendCompany implements settle.Ledger. A unique index on the
// settled period turns a double-settlement race into
// settle.ErrAlreadySettled instead of a duplicate posting.
func (r *SQLiteRepository) AppendCompany(ctx context.Context, tx core.Transaction) (int64, error) {
	if err := tx.Validate(); err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO company_tx (date, type, item, category, note, raw_amount, amount,
			tax, surplus, fee, kol_salary, net_amount, settled_period, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		tx.Date.String(), string(tx.Type), tx.Item, tx.Category, tx.Note,
		tx.RawAmount, tx.Amount, tx.Tax, tx.Surplus, tx.Fee, tx.KOLSalary,
		tx.NetAmount, tx.SettledPeriod, time.Now().UTC())
	if err != nil {
		if isSettledPeriodConflict(err) {
			return 0, fmt.Errorf("%s: %w", tx.SettledPeriod, settle.ErrAlreadySettled)
		}
		return 0, fmt.Errorf("insert company transaction: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("company transaction id: %w", err)
	}

	slog.InfoContext(ctx, "Company transaction saved",
		"id", id, "type", tx.Type, "item", tx.Item, "date", tx.Date.String())
	return id, nil
}

// GetCompany returns a single company row by id.
func (r *SQLiteRepository) GetCompany(ctx context.Context, id int64) (core.Transaction, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+companyColumns+` FROM company_tx WHERE id = ?`, id)
	tx, err := scanCompany(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, ErrNotFound
	}
	return tx, err
}

// DeleteCompany removes a company row. Deleting a settlement row is
// the correction path: it reopens the period for re-settlement.
func (r *SQLiteRepository) DeleteCompany(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM company_tx WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete company transaction: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	slog.InfoContext(ctx, "Company transaction deleted", "id", id)
	return nil
}

// SettlementForPeriod returns the settlement row for a period, or
// ErrNotFound when the period has not been settled.
func (r *SQLiteRepository) SettlementForPeriod(ctx context.Context, p core.Period) (core.Transaction, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+companyColumns+` FROM company_tx WHERE settled_period = ?`, p.String())
	tx, err := scanCompany(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, ErrNotFound
	}
	return tx, err
}

// DailyTransactions returns the full daily ledger, newest first.
func (r *SQLiteRepository) DailyTransactions(ctx context.Context) ([]core.DailyTransaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, date, item, category, note, amount, created_at
		 FROM daily_tx ORDER BY date DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("query daily transactions: %w", err)
	}
	defer rows.Close()

	var out []core.DailyTransaction
	for rows.Next() {
		d, err := scanDaily(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate daily transactions: %w", err)
	}
	return out, nil
}

// AppendDaily implements settle.Ledger.
func (r *SQLiteRepository) AppendDaily(ctx context.Context, d core.DailyTransaction) (int64, error) {
	if err := d.Validate(); err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO daily_tx (date, item, category, note, amount, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		d.Date.String(), d.Item, d.Category, d.Note, d.Amount, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("insert daily transaction: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("daily transaction id: %w", err)
	}

	slog.InfoContext(ctx, "Daily transaction saved",
		"id", id, "item", d.Item, "date", d.Date.String())
	return id, nil
}

// GetDaily returns a single daily row by id.
func (r *SQLiteRepository) GetDaily(ctx context.Context, id int64) (core.DailyTransaction, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, date, item, category, note, amount, created_at
		 FROM daily_tx WHERE id = ?`, id)
	d, err := scanDaily(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.DailyTransaction{}, ErrNotFound
	}
	return d, err
}

// DeleteDaily removes a daily row.
func (r *SQLiteRepository) DeleteDaily(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM daily_tx WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete daily transaction: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	slog.InfoContext(ctx, "Daily transaction deleted", "id", id)
	return nil
}

// ErrNotFound is returned when a row id does not exist.
var ErrNotFound = errors.New("record not found")

type scanner interface {
	Scan(dest ...any) error
}

func scanCompany(s scanner) (core.Transaction, error) {
	var (
		tx        core.Transaction
		date      string
		typ       string
		createdAt sql.NullTime
	)
	err := s.Scan(&tx.ID, &date, &typ, &tx.Item, &tx.Category, &tx.Note,
		&tx.RawAmount, &tx.Amount, &tx.Tax, &tx.Surplus, &tx.Fee,
		&tx.KOLSalary, &tx.NetAmount, &tx.SettledPeriod, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Transaction{}, err
		}
		return core.Transaction{}, fmt.Errorf("scan company transaction: %w", err)
	}
	tx.Type = core.TxType(typ)
	if tx.Date, err = core.ParseDate(date); err != nil {
		return core.Transaction{}, fmt.Errorf("company row %d: %w", tx.ID, err)
	}
	tx.CreatedAt = createdAt.Time
	return tx, nil
}

func scanDaily(s scanner) (core.DailyTransaction, error) {
	var (
		d         core.DailyTransaction
		date      string
		createdAt sql.NullTime
	)
	err := s.Scan(&d.ID, &date, &d.Item, &d.Category, &d.Note, &d.Amount, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.DailyTransaction{}, err
		}
		return core.DailyTransaction{}, fmt.Errorf("scan daily transaction: %w", err)
	}
	if d.Date, err = core.ParseDate(date); err != nil {
		return core.DailyTransaction{}, fmt.Errorf("daily row %d: %w", d.ID, err)
	}
	d.CreatedAt = createdAt.Time
	return d, nil
}

// isSettledPeriodConflict recognizes a violation of the unique
// settlement-period index. The driver reports it by constraint code
// and column, not by index name.
func isSettledPeriodConflict(err error) bool {
	if err == nil {
		return false
	}
	var se *sqlite.Error
	if errors.As(err, &se) {
		return se.Code() == sqlite3.SQLITE_CONSTRAINT_UNIQUE
	}
	return strings.Contains(err.Error(), "company_tx.settled_period")
}

// Ensure the repository satisfies the engine's store contract.
var _ settle.Ledger = (*SQLiteRepository)(nil)
