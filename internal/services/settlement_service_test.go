package services

import (
	"context"
	"errors"
	"testing"

	"zhangben/internal/amqp"
	"zhangben/internal/core"
	"zhangben/internal/settle"
)

func newTestSettlementService(store *fakeStore) *SettlementService {
	return NewSettlementService(settle.NewEngine(store), &fakePublisher{})
}

func seedProfitableJune(store *fakeStore) {
	ctx := context.Background()
	store.AppendCompany(ctx, core.Transaction{
		Date: core.NewDate(2024, 6, 5), Type: core.TypeIncome,
		Item: "冠智薪資", Category: "冠智薪資",
		RawAmount: 50000, Tax: 2500, Surplus: 15000, NetAmount: 32500,
	})
	store.AppendCompany(ctx, core.Transaction{
		Date: core.NewDate(2024, 6, 10), Type: core.TypeExpense,
		Item: "會計費", Category: "會計費", Amount: 10000,
	})
}

func TestSettlementServicePublishesBothRows(t *testing.T) {
	store := newFakeStore()
	seedProfitableJune(store)
	pub := &fakePublisher{}
	svc := NewSettlementService(settle.NewEngine(store), pub)
	p := core.Period{Year: 2024, Month: 6}

	res, err := svc.Settle(context.Background(), p)
	if err != nil {
		t.Fatalf("Settle() error = %v", err)
	}
	if res.DailyID == 0 {
		t.Fatal("expected a payout row")
	}

	if len(pub.msgs) != 2 {
		t.Fatalf("published %d messages, want 2", len(pub.msgs))
	}
	if m := pub.msgs[0]; m.collection != amqp.CollectionCompany || m.rowID != res.CompanyID || m.op != amqp.OpAppend {
		t.Errorf("first message = %+v", m)
	}
	if m := pub.msgs[1]; m.collection != amqp.CollectionDaily || m.rowID != res.DailyID {
		t.Errorf("second message = %+v", m)
	}
}

func TestSettlementServicePartialFailurePublishesCompanyRow(t *testing.T) {
	store := newFakeStore()
	seedProfitableJune(store)
	store.failAppendDaily = true
	pub := &fakePublisher{}
	svc := NewSettlementService(settle.NewEngine(store), pub)

	_, err := svc.Settle(context.Background(), core.Period{Year: 2024, Month: 6})
	var partial *settle.PartialError
	if !errors.As(err, &partial) {
		t.Fatalf("Settle() error = %v, want *settle.PartialError", err)
	}

	// The company row exists and must reach the backup even though the
	// settlement as a whole failed.
	if len(pub.msgs) != 1 {
		t.Fatalf("published %d messages, want 1", len(pub.msgs))
	}
	if m := pub.msgs[0]; m.collection != amqp.CollectionCompany || m.rowID != partial.CompanyID {
		t.Errorf("message = %+v, want company row %d", m, partial.CompanyID)
	}
}

func TestSettlementServiceAlreadySettled(t *testing.T) {
	store := newFakeStore()
	seedProfitableJune(store)
	pub := &fakePublisher{}
	svc := NewSettlementService(settle.NewEngine(store), pub)
	p := core.Period{Year: 2024, Month: 6}

	if _, err := svc.Settle(context.Background(), p); err != nil {
		t.Fatalf("first Settle() error = %v", err)
	}
	published := len(pub.msgs)

	_, err := svc.Settle(context.Background(), p)
	if !errors.Is(err, settle.ErrAlreadySettled) {
		t.Fatalf("second Settle() error = %v, want ErrAlreadySettled", err)
	}
	if len(pub.msgs) != published {
		t.Error("a rejected settlement must not publish messages")
	}
}

func TestSettlementServiceEvaluateDoesNotWrite(t *testing.T) {
	store := newFakeStore()
	seedProfitableJune(store)
	pub := &fakePublisher{}
	svc := NewSettlementService(settle.NewEngine(store), pub)

	eval, err := svc.Evaluate(context.Background(), core.Period{Year: 2024, Month: 6})
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if eval.State != settle.StateEligible {
		t.Errorf("State = %s, want eligible", eval.State)
	}
	if len(store.company) != 2 || len(store.daily) != 0 || len(pub.msgs) != 0 {
		t.Error("Evaluate must not write rows or publish messages")
	}
}
