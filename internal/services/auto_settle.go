package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"zhangben/internal/core"
	"zhangben/internal/settle"
)

// AutoSettleProcessor settles the previous month once it becomes
// eligible. Settlement stays an explicit command issued by this
// processor, never a side effect of a read path.
type AutoSettleProcessor struct {
	settlement *SettlementService
}

func NewAutoSettleProcessor(settlement *SettlementService) *AutoSettleProcessor {
	return &AutoSettleProcessor{settlement: settlement}
}

// ProcessDuePeriod checks the month before now and settles it when
// eligible. Returns true when a settlement was posted.
func (p *AutoSettleProcessor) ProcessDuePeriod(ctx context.Context, now time.Time) (bool, error) {
	if p.settlement == nil {
		return false, fmt.Errorf("processor not properly initialized")
	}

	period := core.PeriodOf(now).Previous()

	eval, err := p.settlement.Evaluate(ctx, period)
	if err != nil {
		return false, fmt.Errorf("evaluate period %s: %w", period, err)
	}

	switch eval.State {
	case settle.StateSettled:
		return false, nil
	case settle.StateOpen:
		slog.InfoContext(ctx, "Period not eligible for auto-settlement",
			"period", period.String(),
			"net_profit", eval.Monthly.NetProfit,
			"deficit_pending", eval.DeficitPending)
		return false, nil
	}

	res, err := p.settlement.Settle(ctx, period)
	if err != nil {
		// Lost the race against a manual settlement; nothing to do.
		if errors.Is(err, settle.ErrAlreadySettled) || errors.Is(err, settle.ErrSettlementPending) {
			slog.InfoContext(ctx, "Period settled concurrently, skipping",
				"period", period.String())
			return false, nil
		}
		if errors.Is(err, settle.ErrNoProfit) {
			return false, nil
		}
		return false, fmt.Errorf("auto-settle period %s: %w", period, err)
	}

	slog.InfoContext(ctx, "Auto-settlement posted",
		"period", period.String(),
		"company_total", res.Split.CompanyTotal,
		"daily_share", res.Split.DailyShare,
		"deficit_covered", res.Split.DeficitCovered)
	return true, nil
}
