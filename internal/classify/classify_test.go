package classify

import (
	"errors"
	"testing"
	"time"

	"zhangben/internal/core"
)

var day = core.NewDate(2024, time.May, 10)

func TestIncomeGeneral(t *testing.T) {
	tx, err := Income(IncomeInput{
		Date:     day,
		Category: "冠智薪資",
		Gross:    10000,
	})
	if err != nil {
		t.Fatalf("Income: %v", err)
	}
	if tx.Tax != 500 {
		t.Errorf("Tax = %d, want 500", tx.Tax)
	}
	if tx.Surplus != 3000 {
		t.Errorf("Surplus = %d, want 3000", tx.Surplus)
	}
	if tx.NetAmount != 6500 {
		t.Errorf("NetAmount = %d, want 6500", tx.NetAmount)
	}
	if tx.Fee != 0 {
		t.Errorf("Fee = %d, want 0", tx.Fee)
	}
	if tx.Type != core.TypeIncome || tx.Item != "冠智薪資" {
		t.Errorf("unexpected record: %+v", tx)
	}
}

func TestIncomeNonPrimaryBankFee(t *testing.T) {
	tx, err := Income(IncomeInput{
		Date:           day,
		Category:       "發票費",
		Gross:          10000,
		NonPrimaryBank: true,
	})
	if err != nil {
		t.Fatalf("Income: %v", err)
	}
	if tx.Fee != core.TransferFee {
		t.Errorf("Fee = %d, want %d", tx.Fee, core.TransferFee)
	}
	// The fee comes out of the retained surplus, not the net amount.
	if tx.Surplus != 3000-core.TransferFee {
		t.Errorf("Surplus = %d, want %d", tx.Surplus, 3000-core.TransferFee)
	}
	if tx.NetAmount != 6500 {
		t.Errorf("NetAmount = %d, want 6500", tx.NetAmount)
	}
}

func TestIncomeKOL(t *testing.T) {
	tx, err := Income(IncomeInput{
		Date:      day,
		Category:  core.CategoryKOLIncome,
		Gross:     10500,
		KOLSalary: 3000,
	})
	if err != nil {
		t.Fatalf("Income: %v", err)
	}
	if tx.Tax != 500 {
		t.Errorf("Tax = %d, want 500", tx.Tax)
	}
	if tx.KOLSalary != 3000 {
		t.Errorf("KOLSalary = %d, want 3000", tx.KOLSalary)
	}
	if tx.Surplus != 2100 {
		t.Errorf("Surplus = %d, want 2100", tx.Surplus)
	}
	if tx.NetAmount != 4900 {
		t.Errorf("NetAmount = %d, want 4900", tx.NetAmount)
	}
}

func TestIncomeValidation(t *testing.T) {
	tests := []struct {
		name  string
		in    IncomeInput
		field string
		want  error
	}{
		{
			name:  "negative gross",
			in:    IncomeInput{Date: day, Category: "冠智薪資", Gross: -1},
			field: "gross",
			want:  core.ErrInvalidAmount,
		},
		{
			name:  "unknown category",
			in:    IncomeInput{Date: day, Category: "董事分紅", Gross: 100},
			field: "category",
			want:  core.ErrInvalidCategory,
		},
		{
			name:  "other without item",
			in:    IncomeInput{Date: day, Category: core.CategoryOther, Gross: 100},
			field: "item",
			want:  core.ErrEmptyItem,
		},
		{
			name:  "zero date",
			in:    IncomeInput{Category: "冠智薪資", Gross: 100},
			field: "date",
			want:  core.ErrInvalidDate,
		},
		{
			name:  "kol salary exceeds gross",
			in:    IncomeInput{Date: day, Category: core.CategoryKOLIncome, Gross: 1000, KOLSalary: 5000},
			field: "kolSalary",
			want:  core.ErrInvalidAmount,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Income(tt.in)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Income() err = %v, want %v", err, tt.want)
			}
			var fe *FieldError
			if !errors.As(err, &fe) {
				t.Fatalf("error should be a *FieldError, got %T", err)
			}
			if fe.Field != tt.field {
				t.Errorf("Field = %q, want %q", fe.Field, tt.field)
			}
		})
	}
}

func TestExpense(t *testing.T) {
	tx, err := Expense(ExpenseInput{
		Date:     day,
		Category: "會計費",
		Note:     "五月記帳",
		Amount:   2000,
	})
	if err != nil {
		t.Fatalf("Expense: %v", err)
	}
	if tx.Amount != 2000 || tx.Type != core.TypeExpense {
		t.Errorf("unexpected record: %+v", tx)
	}
	if tx.Item != "會計費" || tx.Note != "五月記帳" {
		t.Errorf("item/note: %q %q", tx.Item, tx.Note)
	}

	if _, err := Expense(ExpenseInput{Date: day, Category: "會計費", Amount: 0}); !errors.Is(err, core.ErrInvalidAmount) {
		t.Errorf("zero amount: %v", err)
	}
}

func TestDaily(t *testing.T) {
	d, err := Daily(DailyInput{
		Date:     day,
		Category: core.CategoryOther,
		Item:     "孝親費",
		Amount:   6000,
	})
	if err != nil {
		t.Fatalf("Daily: %v", err)
	}
	if d.Item != "孝親費" || d.Amount != 6000 {
		t.Errorf("unexpected record: %+v", d)
	}

	if _, err := Daily(DailyInput{Date: day, Category: "遊艇維護", Amount: 100}); !errors.Is(err, core.ErrInvalidCategory) {
		t.Errorf("unknown category: %v", err)
	}
}
