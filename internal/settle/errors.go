package settle

import (
	"errors"
	"fmt"

	"zhangben/internal/core"
)

var (
	// ErrAlreadySettled means a settlement row for the period already
	// exists. The caller must refresh its view; retrying cannot help.
	ErrAlreadySettled = errors.New("period already settled")

	// ErrNoProfit means the period's net profit is zero or negative.
	ErrNoProfit = errors.New("no profit to settle")

	// ErrSettlementPending means another settlement for the same period
	// is still in flight in this process.
	ErrSettlementPending = errors.New("settlement already in progress")
)

// PartialError reports a settlement where the company-side row was
// written but the daily payout failed. The ledger is inconsistent
// until the operator deletes the company row and retries, so this is
// surfaced distinctly from plain store failures.
type PartialError struct {
	Period    core.Period
	CompanyID int64
	Err       error
}

func (e *PartialError) Error() string {
	return fmt.Sprintf("settlement %s partially applied: company row %d written, daily payout failed: %v",
		e.Period, e.CompanyID, e.Err)
}

func (e *PartialError) Unwrap() error { return e.Err }
