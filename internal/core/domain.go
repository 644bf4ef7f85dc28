package core

import (
	"errors"
	"strings"
	"time"
)

const (
	TypeIncome     TxType = "income"
	TypeExpense    TxType = "expense"
	TypeSettlement TxType = "settlement"
)

type (
	TxType string

	// Transaction is one money movement in the company ledger.
	// RawAmount is the pre-tax gross for income rows; Amount is the
	// expense amount for expense rows and the retained amount for
	// settlement rows. SettledPeriod is set only on settlement rows.
	Transaction struct {
		ID            int64
		Date          Date
		Type          TxType
		Item          string
		Category      string
		Note          string
		RawAmount     int64
		Amount        int64
		Tax           int64
		Surplus       int64
		Fee           int64
		KOLSalary     int64
		NetAmount     int64
		SettledPeriod string
		CreatedAt     time.Time
	}

	// DailyTransaction is a personal expense row, or a settlement payout
	// when Category is CategoryPayout.
	DailyTransaction struct {
		ID        int64
		Date      Date
		Item      string
		Category  string
		Note      string
		Amount    int64
		CreatedAt time.Time
	}
)

var (
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrEmptyItem       = errors.New("empty item")
	ErrInvalidType     = errors.New("invalid transaction type")
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidPeriod   = errors.New("invalid period")
)

// IsPayout reports whether the row was generated by a settlement.
func (d DailyTransaction) IsPayout() bool {
	return d.Category == CategoryPayout
}

func (t Transaction) Validate() error {
	if err := t.Date.Validate(); err != nil {
		return err
	}
	switch t.Type {
	case TypeIncome, TypeExpense, TypeSettlement:
	default:
		return ErrInvalidType
	}
	if len(strings.TrimSpace(t.Item)) == 0 {
		return ErrEmptyItem
	}
	if len(t.Item) > 200 {
		return errors.New("item too long (max 200 characters)")
	}
	switch t.Type {
	case TypeIncome:
		if t.RawAmount < 0 {
			return ErrInvalidAmount
		}
	case TypeExpense:
		if t.Amount <= 0 {
			return ErrInvalidAmount
		}
	case TypeSettlement:
		// Amount may be zero: a tiny profit can round to a zero retained
		// share, and the row must still exist to mark the period settled.
		if t.Amount < 0 {
			return ErrInvalidAmount
		}
	}
	if t.Type == TypeSettlement {
		if _, err := ParsePeriod(t.SettledPeriod); err != nil {
			return ErrInvalidPeriod
		}
	}
	return nil
}

func (d DailyTransaction) Validate() error {
	if err := d.Date.Validate(); err != nil {
		return err
	}
	if len(strings.TrimSpace(d.Item)) == 0 {
		return ErrEmptyItem
	}
	if len(d.Item) > 200 {
		return errors.New("item too long (max 200 characters)")
	}
	if d.Amount <= 0 {
		return ErrInvalidAmount
	}
	return nil
}
