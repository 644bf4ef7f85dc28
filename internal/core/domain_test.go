package core

import (
	"errors"
	"testing"
	"time"
)

func TestTransactionValidate(t *testing.T) {
	valid := Transaction{
		Date:      NewDate(2024, time.May, 10),
		Type:      TypeIncome,
		Item:      "冠智薪資",
		Category:  "冠智薪資",
		RawAmount: 10000,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid income should pass: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Transaction)
		want   error
	}{
		{"zero date", func(tx *Transaction) { tx.Date = Date{} }, ErrInvalidDate},
		{"bad type", func(tx *Transaction) { tx.Type = "transfer" }, ErrInvalidType},
		{"empty item", func(tx *Transaction) { tx.Item = "  " }, ErrEmptyItem},
		{"negative gross", func(tx *Transaction) { tx.RawAmount = -1 }, ErrInvalidAmount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := valid
			tt.mutate(&tx)
			if err := tx.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSettlementRowValidate(t *testing.T) {
	tx := Transaction{
		Date:          NewDate(2024, time.June, 1),
		Type:          TypeSettlement,
		Item:          "2024-05 盈餘結算",
		Category:      CategorySettlement,
		Amount:        11250,
		SettledPeriod: "2024-05",
	}
	if err := tx.Validate(); err != nil {
		t.Fatalf("valid settlement should pass: %v", err)
	}

	// Zero retained amount happens when a one-dollar profit rounds the
	// company share down to nothing; the marker row must still be valid.
	tx.Amount = 0
	if err := tx.Validate(); err != nil {
		t.Errorf("zero-amount settlement should pass: %v", err)
	}
	tx.Amount = -1
	if err := tx.Validate(); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("negative settlement amount: got %v, want %v", err, ErrInvalidAmount)
	}
	tx.Amount = 11250

	tx.SettledPeriod = "2024-5"
	if err := tx.Validate(); !errors.Is(err, ErrInvalidPeriod) {
		t.Errorf("malformed settled period: got %v, want %v", err, ErrInvalidPeriod)
	}

	tx.SettledPeriod = ""
	if err := tx.Validate(); !errors.Is(err, ErrInvalidPeriod) {
		t.Errorf("missing settled period: got %v, want %v", err, ErrInvalidPeriod)
	}
}

func TestDailyTransactionValidate(t *testing.T) {
	d := DailyTransaction{
		Date:     NewDate(2024, time.May, 3),
		Item:     "餐費",
		Category: "餐費",
		Amount:   120,
	}
	if err := d.Validate(); err != nil {
		t.Fatalf("valid daily row should pass: %v", err)
	}
	d.Amount = 0
	if err := d.Validate(); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("zero amount: got %v, want %v", err, ErrInvalidAmount)
	}
}

func TestIsPayout(t *testing.T) {
	d := DailyTransaction{Category: CategoryPayout}
	if !d.IsPayout() {
		t.Error("payout marker category should be recognised")
	}
	d.Category = "餐費"
	if d.IsPayout() {
		t.Error("ordinary category must not be a payout")
	}
}
