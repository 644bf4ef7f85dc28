// Package settle implements the monthly settlement engine: it decides
// whether a period's books can be closed, splits the net profit
// between retained company equity and a daily-ledger payout, and
// performs the two-row posting with idempotency guards.
package settle

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"zhangben/internal/core"
	"zhangben/internal/report"
)

const (
	StateOpen     State = "open"
	StateEligible State = "eligible"
	StateSettled  State = "settled"
)

// State describes where a period stands in its settlement lifecycle.
type State string

// Split is the computed division of one month's net profit.
type Split struct {
	// DeficitCovered is applied to erase a historical deficit before
	// any payout happens.
	DeficitCovered int64 `json:"deficitCovered"`
	// CompanyShare is the retained portion of the post-deficit profit.
	CompanyShare int64 `json:"companyShare"`
	// DailyShare is paid out to the daily ledger. Always equals the
	// post-deficit profit minus CompanyShare.
	DailyShare int64 `json:"dailyShare"`
	// CompanyTotal is the amount posted on the settlement row:
	// DeficitCovered + CompanyShare.
	CompanyTotal int64 `json:"companyTotal"`
}

// Evaluation is a read-only snapshot of a period's settlement state.
type Evaluation struct {
	Period         core.Period           `json:"period"`
	State          State                 `json:"state"`
	DeficitPending bool                  `json:"deficitPending"`
	Monthly        report.MonthlySummary `json:"monthly"`
	AllTime        report.AllTimeSummary `json:"allTime"`
	// Projected is the split that settling now would produce. Zero
	// when the period is not eligible.
	Projected Split `json:"projected"`
}

// Result is a completed settlement.
type Result struct {
	Period    core.Period           `json:"period"`
	Split     Split                 `json:"split"`
	Monthly   report.MonthlySummary `json:"monthly"`
	CompanyID int64                 `json:"companyId"`
	// DailyID is zero when the whole profit went to deficit recovery
	// and no payout row was written.
	DailyID int64 `json:"dailyId"`
}

// Engine evaluates and confirms monthly settlements against a Ledger.
// It holds no ledger state of its own; every decision derives from a
// fresh read of the transaction set.
type Engine struct {
	ledger Ledger
	today  func() core.Date

	mu      sync.Mutex
	pending map[core.Period]struct{}
}

func NewEngine(ledger Ledger) *Engine {
	return &Engine{
		ledger:  ledger,
		today:   core.Today,
		pending: make(map[core.Period]struct{}),
	}
}

// Evaluate computes the period's state and projected split without
// writing anything.
func (e *Engine) Evaluate(ctx context.Context, p core.Period) (Evaluation, error) {
	txs, err := e.ledger.CompanyTransactions(ctx)
	if err != nil {
		return Evaluation{}, fmt.Errorf("read company ledger: %w", err)
	}
	return evaluate(txs, p), nil
}

// Settle closes the period's books: it re-checks the idempotency guard
// against a fresh snapshot, posts the company settlement row, and then
// the daily payout row if any share is due.
//
// A failure after the company write is returned as *PartialError so
// the caller can distinguish "nothing happened, retry" from "half
// happened, reconcile first".
func (e *Engine) Settle(ctx context.Context, p core.Period) (Result, error) {
	if err := e.acquire(p); err != nil {
		return Result{}, err
	}
	defer e.release(p)

	// Guard and figures are recomputed at confirmation time, not
	// reused from an earlier Evaluate call.
	txs, err := e.ledger.CompanyTransactions(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("read company ledger: %w", err)
	}
	if settled(txs, p) {
		return Result{}, fmt.Errorf("%s: %w", p, ErrAlreadySettled)
	}
	monthly := report.Monthly(txs, p)
	if monthly.NetProfit <= 0 {
		return Result{}, fmt.Errorf("%s net profit %d: %w", p, monthly.NetProfit, ErrNoProfit)
	}
	allTime := report.AllTime(txs)
	split := computeSplit(monthly.NetProfit, allTime.NetProfit-monthly.NetProfit)

	today := e.today()
	companyRow := core.Transaction{
		Date:          today,
		Type:          core.TypeSettlement,
		Item:          p.String() + " 盈餘結算",
		Category:      core.CategorySettlement,
		Amount:        split.CompanyTotal,
		SettledPeriod: p.String(),
	}
	companyID, err := e.ledger.AppendCompany(ctx, companyRow)
	if err != nil {
		return Result{}, fmt.Errorf("append settlement row: %w", err)
	}

	res := Result{Period: p, Split: split, Monthly: monthly, CompanyID: companyID}
	if split.DailyShare > 0 {
		payout := core.DailyTransaction{
			Date:     today,
			Item:     p.String() + " 公司分潤",
			Category: core.CategoryPayout,
			Amount:   split.DailyShare,
		}
		dailyID, err := e.ledger.AppendDaily(ctx, payout)
		if err != nil {
			return res, &PartialError{Period: p, CompanyID: companyID, Err: err}
		}
		res.DailyID = dailyID
	}

	slog.InfoContext(ctx, "Period settled",
		"period", p.String(),
		"net_profit", monthly.NetProfit,
		"deficit_covered", split.DeficitCovered,
		"company_total", split.CompanyTotal,
		"daily_share", split.DailyShare)

	return res, nil
}

func (e *Engine) acquire(p core.Period) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, busy := e.pending[p]; busy {
		return fmt.Errorf("%s: %w", p, ErrSettlementPending)
	}
	e.pending[p] = struct{}{}
	return nil
}

func (e *Engine) release(p core.Period) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.pending, p)
}

func evaluate(txs []core.Transaction, p core.Period) Evaluation {
	ev := Evaluation{
		Period:  p,
		Monthly: report.Monthly(txs, p),
		AllTime: report.AllTime(txs),
	}
	prior := ev.AllTime.NetProfit - ev.Monthly.NetProfit
	ev.DeficitPending = prior < 0

	switch {
	case settled(txs, p):
		ev.State = StateSettled
	case ev.Monthly.NetProfit > 0:
		ev.State = StateEligible
		ev.Projected = computeSplit(ev.Monthly.NetProfit, prior)
	default:
		ev.State = StateOpen
	}
	return ev
}

// settled reports whether a settlement row tagged to the period
// already exists. The match is on the explicit SettledPeriod field;
// settlement rows carry the posting date, which may fall outside the
// period being settled.
func settled(txs []core.Transaction, p core.Period) bool {
	key := p.String()
	for _, tx := range txs {
		if tx.Type == core.TypeSettlement && tx.SettledPeriod == key {
			return true
		}
	}
	return false
}

// computeSplit divides a positive net profit. priorNetProfit is the
// all-time figure excluding the month being settled; when negative,
// that deficit is repaid before anything is split or paid out.
//
// DailyShare is derived by subtraction so the parts always sum back
// to the profit exactly.
func computeSplit(netProfit, priorNetProfit int64) Split {
	var s Split
	if priorNetProfit < 0 {
		deficit := -priorNetProfit
		s.DeficitCovered = min(netProfit, deficit)
	}
	remaining := netProfit - s.DeficitCovered
	if remaining > 0 {
		s.CompanyShare = core.RoundPercent(remaining, core.SplitRatePercent)
		s.DailyShare = remaining - s.CompanyShare
	}
	s.CompanyTotal = s.DeficitCovered + s.CompanyShare
	return s
}
