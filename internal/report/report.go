// Package report computes read-only aggregates over the transaction
// set: monthly figures, all-time profit, assets and annual summaries.
// All functions are pure; they never mutate or perform I/O.
package report

import (
	"sort"
	"time"

	"zhangben/internal/core"
)

// MonthlySummary holds the settlement-relevant figures for one period.
type MonthlySummary struct {
	Period    core.Period `json:"period"`
	Revenue   int64       `json:"revenue"`
	Tax       int64       `json:"tax"`
	Expense   int64       `json:"expense"`
	NetProfit int64       `json:"netProfit"`
}

// AllTimeSummary covers the entire company ledger history.
type AllTimeSummary struct {
	// NetProfit is cumulative profit generated minus cumulative profit
	// already distributed through settlements. Negative means the
	// company carries a historical deficit.
	NetProfit int64 `json:"netProfit"`
	// Settled is the total retained through settlement rows.
	Settled int64 `json:"settled"`
	// Assets is the paid-in capital plus settled retentions. Unsettled
	// income does not move assets.
	Assets int64 `json:"assets"`
}

// Monthly aggregates income, tax and expense for the given period.
// Settlement rows are excluded; they only affect assets.
func Monthly(txs []core.Transaction, p core.Period) MonthlySummary {
	s := MonthlySummary{Period: p}
	for _, tx := range txs {
		if !p.Contains(tx.Date) {
			continue
		}
		switch tx.Type {
		case core.TypeIncome:
			s.Revenue += incomeGross(tx)
			s.Tax += tx.Tax
		case core.TypeExpense:
			s.Expense += tx.Amount
		}
	}
	s.NetProfit = s.Revenue - s.Tax - s.Expense
	return s
}

// AllTime aggregates the full history: profit generated, profit
// distributed, and the resulting company assets.
func AllTime(txs []core.Transaction) AllTimeSummary {
	var s AllTimeSummary
	for _, tx := range txs {
		switch tx.Type {
		case core.TypeIncome:
			s.NetProfit += incomeGross(tx) - tx.Tax
		case core.TypeExpense:
			s.NetProfit -= tx.Amount
		case core.TypeSettlement:
			s.NetProfit -= tx.Amount
			s.Settled += tx.Amount
		}
	}
	s.Assets = core.StartingCapital + s.Settled
	return s
}

// AnnualReport is the year-to-date breakdown shown on the annual view.
type AnnualReport struct {
	Year         int              `json:"year"`
	TotalIncome  int64            `json:"totalIncome"`
	TotalExpense int64            `json:"totalExpense"`
	TotalTax     int64            `json:"totalTax"`
	NetProfit    int64            `json:"netProfit"`
	Months       []MonthlySummary `json:"months"`
}

// Annual summarises a calendar year month by month. Months without
// activity are omitted.
func Annual(txs []core.Transaction, year int) AnnualReport {
	r := AnnualReport{Year: year}
	for m := time.January; m <= time.December; m++ {
		s := Monthly(txs, core.Period{Year: year, Month: m})
		if s.Revenue == 0 && s.Expense == 0 {
			continue
		}
		r.Months = append(r.Months, s)
		r.TotalIncome += s.Revenue
		r.TotalTax += s.Tax
		r.TotalExpense += s.Expense
	}
	r.NetProfit = r.TotalIncome - r.TotalExpense - r.TotalTax
	return r
}

// DailySummary is the income/expense/balance board of the daily ledger
// for one month. Payout rows count as income, everything else as
// expense.
type DailySummary struct {
	Period  core.Period `json:"period"`
	Income  int64       `json:"income"`
	Expense int64       `json:"expense"`
	Balance int64       `json:"balance"`
}

func DailyMonthly(rows []core.DailyTransaction, p core.Period) DailySummary {
	s := DailySummary{Period: p}
	for _, d := range rows {
		if !p.Contains(d.Date) {
			continue
		}
		if d.IsPayout() {
			s.Income += d.Amount
		} else {
			s.Expense += d.Amount
		}
	}
	s.Balance = s.Income - s.Expense
	return s
}

// ItemAmount is one slice of a per-item breakdown, largest first.
type ItemAmount struct {
	Item   string `json:"item"`
	Amount int64  `json:"amount"`
}

// ByItem groups the period's rows of the given type by item label.
func ByItem(txs []core.Transaction, p core.Period, typ core.TxType) []ItemAmount {
	sums := map[string]int64{}
	for _, tx := range txs {
		if tx.Type != typ || !p.Contains(tx.Date) {
			continue
		}
		if typ == core.TypeIncome {
			sums[tx.Item] += incomeGross(tx)
		} else {
			sums[tx.Item] += tx.Amount
		}
	}
	out := make([]ItemAmount, 0, len(sums))
	for item, amt := range sums {
		out = append(out, ItemAmount{Item: item, Amount: amt})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount != out[j].Amount {
			return out[i].Amount > out[j].Amount
		}
		return out[i].Item < out[j].Item
	})
	return out
}

// incomeGross falls back to the net amount for legacy rows that
// predate the RawAmount field.
func incomeGross(tx core.Transaction) int64 {
	if tx.RawAmount > 0 {
		return tx.RawAmount
	}
	return tx.NetAmount
}
