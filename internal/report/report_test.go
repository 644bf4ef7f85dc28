package report

import (
	"testing"
	"time"

	"zhangben/internal/core"
)

func income(date core.Date, gross, tax int64) core.Transaction {
	return core.Transaction{Date: date, Type: core.TypeIncome, Item: "冠智薪資", RawAmount: gross, Tax: tax}
}

func expense(date core.Date, amount int64) core.Transaction {
	return core.Transaction{Date: date, Type: core.TypeExpense, Item: "會計費", Amount: amount}
}

func settlement(date core.Date, amount int64, period string) core.Transaction {
	return core.Transaction{
		Date: date, Type: core.TypeSettlement,
		Item: period + " 盈餘結算", Category: core.CategorySettlement,
		Amount: amount, SettledPeriod: period,
	}
}

func TestMonthly(t *testing.T) {
	may := core.Period{Year: 2024, Month: time.May}
	txs := []core.Transaction{
		income(core.NewDate(2024, time.May, 2), 30000, 1500),
		income(core.NewDate(2024, time.May, 20), 20000, 1000),
		expense(core.NewDate(2024, time.May, 10), 10000),
		// Out of period: must be ignored.
		income(core.NewDate(2024, time.April, 28), 99999, 5000),
		expense(core.NewDate(2024, time.June, 1), 7777),
		// Settlement rows never count toward monthly figures.
		settlement(core.NewDate(2024, time.May, 31), 5000, "2024-04"),
	}

	s := Monthly(txs, may)
	if s.Revenue != 50000 {
		t.Errorf("Revenue = %d, want 50000", s.Revenue)
	}
	if s.Tax != 2500 {
		t.Errorf("Tax = %d, want 2500", s.Tax)
	}
	if s.Expense != 10000 {
		t.Errorf("Expense = %d, want 10000", s.Expense)
	}
	if s.NetProfit != 37500 {
		t.Errorf("NetProfit = %d, want 37500", s.NetProfit)
	}
}

func TestMonthlyEmpty(t *testing.T) {
	s := Monthly(nil, core.Period{Year: 2024, Month: time.May})
	if s.Revenue != 0 || s.Tax != 0 || s.Expense != 0 || s.NetProfit != 0 {
		t.Errorf("empty set should aggregate to zeros: %+v", s)
	}
}

func TestMonthlyLegacyRows(t *testing.T) {
	// Rows that predate the RawAmount field carry only a net amount.
	legacy := core.Transaction{
		Date: core.NewDate(2024, time.May, 5), Type: core.TypeIncome,
		Item: "發票費", NetAmount: 8000,
	}
	s := Monthly([]core.Transaction{legacy}, core.Period{Year: 2024, Month: time.May})
	if s.Revenue != 8000 {
		t.Errorf("legacy revenue = %d, want 8000", s.Revenue)
	}
	if s.Tax != 0 {
		t.Errorf("legacy tax = %d, want 0", s.Tax)
	}
}

func TestAllTime(t *testing.T) {
	txs := []core.Transaction{
		income(core.NewDate(2024, time.April, 2), 30000, 1500),
		expense(core.NewDate(2024, time.April, 5), 8000),
		settlement(core.NewDate(2024, time.May, 1), 6150, "2024-04"),
		income(core.NewDate(2024, time.May, 2), 10000, 500),
	}
	s := AllTime(txs)
	// Generated: 28500 + 9500 = 38000 - 8000 expense = 30000; distributed 6150.
	if s.NetProfit != 23850 {
		t.Errorf("NetProfit = %d, want 23850", s.NetProfit)
	}
	if s.Settled != 6150 {
		t.Errorf("Settled = %d, want 6150", s.Settled)
	}
	if s.Assets != core.StartingCapital+6150 {
		t.Errorf("Assets = %d, want %d", s.Assets, core.StartingCapital+6150)
	}
}

func TestAllTimeDeficit(t *testing.T) {
	txs := []core.Transaction{
		income(core.NewDate(2024, time.April, 2), 1000, 50),
		expense(core.NewDate(2024, time.April, 5), 5950),
	}
	s := AllTime(txs)
	if s.NetProfit != -5000 {
		t.Errorf("NetProfit = %d, want -5000", s.NetProfit)
	}
	if s.Assets != core.StartingCapital {
		t.Errorf("Assets = %d, want %d", s.Assets, core.StartingCapital)
	}
}

func TestAnnual(t *testing.T) {
	txs := []core.Transaction{
		income(core.NewDate(2024, time.February, 2), 30000, 1500),
		expense(core.NewDate(2024, time.February, 10), 4000),
		income(core.NewDate(2024, time.July, 2), 20000, 1000),
		settlement(core.NewDate(2024, time.March, 1), 9000, "2024-02"),
		income(core.NewDate(2023, time.December, 2), 11111, 555),
	}
	r := Annual(txs, 2024)
	if r.TotalIncome != 50000 || r.TotalTax != 2500 || r.TotalExpense != 4000 {
		t.Errorf("totals: %+v", r)
	}
	if r.NetProfit != 43500 {
		t.Errorf("NetProfit = %d, want 43500", r.NetProfit)
	}
	if len(r.Months) != 2 {
		t.Fatalf("Months = %d, want 2", len(r.Months))
	}
	if r.Months[0].Period.Month != time.February || r.Months[1].Period.Month != time.July {
		t.Errorf("active months: %+v", r.Months)
	}
}

func TestDailyMonthly(t *testing.T) {
	may := core.Period{Year: 2024, Month: time.May}
	rows := []core.DailyTransaction{
		{Date: core.NewDate(2024, time.May, 2), Item: "餐費", Category: "餐費", Amount: 300},
		{Date: core.NewDate(2024, time.May, 3), Item: "房租", Category: "房租", Amount: 15000},
		{Date: core.NewDate(2024, time.May, 5), Item: "2024-04 公司分潤", Category: core.CategoryPayout, Amount: 26250},
		{Date: core.NewDate(2024, time.April, 5), Item: "餐費", Category: "餐費", Amount: 999},
	}
	s := DailyMonthly(rows, may)
	if s.Income != 26250 {
		t.Errorf("Income = %d, want 26250", s.Income)
	}
	if s.Expense != 15300 {
		t.Errorf("Expense = %d, want 15300", s.Expense)
	}
	if s.Balance != 10950 {
		t.Errorf("Balance = %d, want 10950", s.Balance)
	}
}

func TestByItem(t *testing.T) {
	may := core.Period{Year: 2024, Month: time.May}
	txs := []core.Transaction{
		expense(core.NewDate(2024, time.May, 1), 100),
		expense(core.NewDate(2024, time.May, 2), 200),
		{Date: core.NewDate(2024, time.May, 3), Type: core.TypeExpense, Item: "稅金", Amount: 500},
	}
	got := ByItem(txs, may, core.TypeExpense)
	if len(got) != 2 {
		t.Fatalf("groups = %d, want 2", len(got))
	}
	if got[0].Item != "稅金" || got[0].Amount != 500 {
		t.Errorf("largest first: %+v", got[0])
	}
	if got[1].Item != "會計費" || got[1].Amount != 300 {
		t.Errorf("summed group: %+v", got[1])
	}
}
