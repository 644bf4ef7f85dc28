// Package memory is an in-process backup store used in tests and when
// no spreadsheet is configured.
package memory

import (
	"context"
	"fmt"
	"sync"

	"zhangben/internal/core"
)

type Store struct {
	mu      sync.Mutex
	company []core.Transaction
	daily   []core.DailyTransaction
	deleted []Tombstone
}

type Tombstone struct {
	Collection string
	ID         int64
}

func New() *Store {
	return &Store{}
}

func (s *Store) AppendCompanyRow(_ context.Context, tx core.Transaction) (string, error) {
	if err := tx.Validate(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.company = append(s.company, tx)
	return fmt.Sprintf("mem:company:%d", len(s.company)), nil
}

func (s *Store) AppendDailyRow(_ context.Context, d core.DailyTransaction) (string, error) {
	if err := d.Validate(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.daily = append(s.daily, d)
	return fmt.Sprintf("mem:daily:%d", len(s.daily)), nil
}

func (s *Store) MarkDeleted(_ context.Context, collection string, id int64) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, Tombstone{Collection: collection, ID: id})
	return fmt.Sprintf("mem:deleted:%d", len(s.deleted)), nil
}

// CompanyRows returns a copy of the backed-up company rows.
func (s *Store) CompanyRows() []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Transaction(nil), s.company...)
}

// DailyRows returns a copy of the backed-up daily rows.
func (s *Store) DailyRows() []core.DailyTransaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.DailyTransaction(nil), s.daily...)
}

// Tombstones returns a copy of the recorded deletions.
func (s *Store) Tombstones() []Tombstone {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Tombstone(nil), s.deleted...)
}
