package http

import (
	"time"

	"zhangben/internal/core"
)

// Wire representations of ledger rows. The core types stay free of
// serialization concerns.
type companyTx struct {
	ID            int64  `json:"id"`
	Date          string `json:"date"`
	Type          string `json:"type"`
	Item          string `json:"item"`
	Category      string `json:"category"`
	Note          string `json:"note,omitempty"`
	RawAmount     int64  `json:"rawAmount"`
	Amount        int64  `json:"amount"`
	Tax           int64  `json:"tax"`
	Surplus       int64  `json:"surplus"`
	Fee           int64  `json:"fee"`
	KOLSalary     int64  `json:"kolSalary"`
	NetAmount     int64  `json:"netAmount"`
	SettledPeriod string `json:"settledPeriod,omitempty"`
	CreatedAt     string `json:"createdAt,omitempty"`
}

type dailyTx struct {
	ID        int64  `json:"id"`
	Date      string `json:"date"`
	Item      string `json:"item"`
	Category  string `json:"category"`
	Note      string `json:"note,omitempty"`
	Amount    int64  `json:"amount"`
	Payout    bool   `json:"payout"`
	CreatedAt string `json:"createdAt,omitempty"`
}

func toCompanyTx(tx core.Transaction) companyTx {
	return companyTx{
		ID:            tx.ID,
		Date:          tx.Date.String(),
		Type:          string(tx.Type),
		Item:          tx.Item,
		Category:      tx.Category,
		Note:          tx.Note,
		RawAmount:     tx.RawAmount,
		Amount:        tx.Amount,
		Tax:           tx.Tax,
		Surplus:       tx.Surplus,
		Fee:           tx.Fee,
		KOLSalary:     tx.KOLSalary,
		NetAmount:     tx.NetAmount,
		SettledPeriod: tx.SettledPeriod,
		CreatedAt:     formatCreatedAt(tx.CreatedAt),
	}
}

func toCompanyTxs(txs []core.Transaction) []companyTx {
	out := make([]companyTx, 0, len(txs))
	for _, tx := range txs {
		out = append(out, toCompanyTx(tx))
	}
	return out
}

func toDailyTx(d core.DailyTransaction) dailyTx {
	return dailyTx{
		ID:        d.ID,
		Date:      d.Date.String(),
		Item:      d.Item,
		Category:  d.Category,
		Note:      d.Note,
		Amount:    d.Amount,
		Payout:    d.IsPayout(),
		CreatedAt: formatCreatedAt(d.CreatedAt),
	}
}

func toDailyTxs(rows []core.DailyTransaction) []dailyTx {
	out := make([]dailyTx, 0, len(rows))
	for _, d := range rows {
		out = append(out, toDailyTx(d))
	}
	return out
}

func formatCreatedAt(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
