// Package classify derives the stored financial fields of a ledger
// entry from its raw form input: tax withholding, retained surplus,
// transfer fees and the net amount payable to the daily ledger.
package classify

import (
	"fmt"
	"strings"

	"zhangben/internal/core"
)

// FieldError reports a validation failure on a named input field.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// IncomeInput is the raw company-income entry form.
type IncomeInput struct {
	Date     core.Date
	Category string
	// Item is the free-text name, required when Category is 其他.
	Item string
	Note string
	// Gross is the pre-tax entered amount.
	Gross int64
	// NonPrimaryBank indicates the transfer arrived outside the primary
	// bank and incurs the fixed transfer fee.
	NonPrimaryBank bool
	// KOLSalary is the pass-through wage for KOL marketing income.
	KOLSalary int64
}

type ExpenseInput struct {
	Date     core.Date
	Category string
	Item     string
	Note     string
	Amount   int64
}

type DailyInput struct {
	Date     core.Date
	Category string
	Item     string
	Note     string
	Amount   int64
}

// Income classifies a company income entry.
//
// General income withholds a flat 5% tax of gross and retains 30% of
// gross as company surplus. KOL marketing income instead computes tax
// so that gross equals net-of-tax × 1.05, deducts the KOL wage, and
// retains 30% of what remains.
func Income(in IncomeInput) (core.Transaction, error) {
	if err := in.Date.Validate(); err != nil {
		return core.Transaction{}, &FieldError{Field: "date", Err: err}
	}
	if !core.ValidCategory(in.Category, core.IncomeCategories) {
		return core.Transaction{}, &FieldError{Field: "category", Err: core.ErrInvalidCategory}
	}
	if in.Gross < 0 {
		return core.Transaction{}, &FieldError{Field: "gross", Err: core.ErrInvalidAmount}
	}
	item, err := resolveItem(in.Category, in.Item)
	if err != nil {
		return core.Transaction{}, err
	}

	tx := core.Transaction{
		Date:      in.Date,
		Type:      core.TypeIncome,
		Item:      item,
		Category:  in.Category,
		Note:      strings.TrimSpace(in.Note),
		RawAmount: in.Gross,
	}

	if in.Category == core.CategoryKOLIncome {
		if in.KOLSalary < 0 {
			return core.Transaction{}, &FieldError{Field: "kolSalary", Err: core.ErrInvalidAmount}
		}
		tx.Tax = core.RoundDiv(in.Gross*core.TaxRatePercent, 100+core.TaxRatePercent)
		base := in.Gross - tx.Tax - in.KOLSalary
		if base < 0 {
			return core.Transaction{}, &FieldError{Field: "kolSalary", Err: core.ErrInvalidAmount}
		}
		tx.KOLSalary = in.KOLSalary
		tx.Surplus = core.RoundPercent(base, core.SurplusRatePercent)
		tx.NetAmount = in.Gross - tx.Tax - in.KOLSalary - tx.Surplus
		return tx, nil
	}

	tx.Tax = core.RoundPercent(in.Gross, core.TaxRatePercent)
	baseSurplus := core.RoundPercent(in.Gross, core.SurplusRatePercent)
	if in.NonPrimaryBank {
		tx.Fee = core.TransferFee
	}
	tx.Surplus = baseSurplus - tx.Fee
	tx.NetAmount = in.Gross - tx.Tax - baseSurplus
	return tx, nil
}

// Expense classifies a company expense entry. The amount is stored
// as entered; the note is kept as a separate field.
func Expense(in ExpenseInput) (core.Transaction, error) {
	if err := in.Date.Validate(); err != nil {
		return core.Transaction{}, &FieldError{Field: "date", Err: err}
	}
	if !core.ValidCategory(in.Category, core.ExpenseCategories) {
		return core.Transaction{}, &FieldError{Field: "category", Err: core.ErrInvalidCategory}
	}
	if in.Amount <= 0 {
		return core.Transaction{}, &FieldError{Field: "amount", Err: core.ErrInvalidAmount}
	}
	item, err := resolveItem(in.Category, in.Item)
	if err != nil {
		return core.Transaction{}, err
	}
	return core.Transaction{
		Date:     in.Date,
		Type:     core.TypeExpense,
		Item:     item,
		Category: in.Category,
		Note:     strings.TrimSpace(in.Note),
		Amount:   in.Amount,
	}, nil
}

// Daily classifies a personal daily-ledger expense entry.
func Daily(in DailyInput) (core.DailyTransaction, error) {
	if err := in.Date.Validate(); err != nil {
		return core.DailyTransaction{}, &FieldError{Field: "date", Err: err}
	}
	if !core.ValidCategory(in.Category, core.DailyCategories) {
		return core.DailyTransaction{}, &FieldError{Field: "category", Err: core.ErrInvalidCategory}
	}
	if in.Amount <= 0 {
		return core.DailyTransaction{}, &FieldError{Field: "amount", Err: core.ErrInvalidAmount}
	}
	item, err := resolveItem(in.Category, in.Item)
	if err != nil {
		return core.DailyTransaction{}, err
	}
	return core.DailyTransaction{
		Date:     in.Date,
		Item:     item,
		Category: in.Category,
		Note:     strings.TrimSpace(in.Note),
		Amount:   in.Amount,
	}, nil
}

// resolveItem picks the display item: the category name itself, or the
// user-supplied name when the category is 其他.
func resolveItem(category, item string) (string, error) {
	if category != core.CategoryOther {
		return category, nil
	}
	item = strings.TrimSpace(item)
	if item == "" {
		return "", &FieldError{Field: "item", Err: core.ErrEmptyItem}
	}
	return item, nil
}
