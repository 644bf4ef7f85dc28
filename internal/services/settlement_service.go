package services

import (
	"context"
	"errors"
	"log/slog"

	"zhangben/internal/amqp"
	"zhangben/internal/core"
	"zhangben/internal/settle"
)

// SettlementService wraps the settlement engine and notifies the backup
// worker about the rows a settlement writes.
type SettlementService struct {
	engine    *settle.Engine
	publisher SyncPublisher
}

func NewSettlementService(engine *settle.Engine, publisher SyncPublisher) *SettlementService {
	return &SettlementService{engine: engine, publisher: publisher}
}

// Evaluate previews the settlement state of a period without writing.
func (s *SettlementService) Evaluate(ctx context.Context, p core.Period) (settle.Evaluation, error) {
	return s.engine.Evaluate(ctx, p)
}

// Settle confirms a settlement. Sync messages cover whatever rows were
// written, including the company row of a partial failure.
func (s *SettlementService) Settle(ctx context.Context, p core.Period) (settle.Result, error) {
	res, err := s.engine.Settle(ctx, p)
	if err != nil {
		var partial *settle.PartialError
		if errors.As(err, &partial) && partial.CompanyID > 0 {
			s.publishSync(ctx, amqp.CollectionCompany, partial.CompanyID)
		}
		return res, err
	}

	s.publishSync(ctx, amqp.CollectionCompany, res.CompanyID)
	if res.DailyID > 0 {
		s.publishSync(ctx, amqp.CollectionDaily, res.DailyID)
	}
	return res, nil
}

func (s *SettlementService) publishSync(ctx context.Context, collection string, id int64) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishLedgerSync(ctx, collection, id, amqp.OpAppend); err != nil {
		slog.ErrorContext(ctx, "Failed to publish settlement sync message",
			"collection", collection, "row_id", id, "error", err)
	}
}
