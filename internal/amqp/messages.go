package amqp

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	CollectionCompany = "company"
	CollectionDaily   = "daily"

	OpAppend = "append"
	OpDelete = "delete"
)

// LedgerSyncMessage tells the backup worker that a ledger row changed.
// It carries only the collection, row id and operation; the worker
// fetches the row from the database.
type LedgerSyncMessage struct {
	MessageID  string    `json:"message_id"`
	Collection string    `json:"collection"`
	RowID      int64     `json:"row_id"`
	Op         string    `json:"op"`
	Timestamp  time.Time `json:"timestamp"`
}

func NewLedgerSyncMessage(collection string, rowID int64, op string) *LedgerSyncMessage {
	return &LedgerSyncMessage{
		MessageID:  uuid.NewString(),
		Collection: collection,
		RowID:      rowID,
		Op:         op,
		Timestamp:  time.Now(),
	}
}

func (m *LedgerSyncMessage) Validate() error {
	if m.Collection != CollectionCompany && m.Collection != CollectionDaily {
		return errors.New("unknown collection: " + m.Collection)
	}
	if m.Op != OpAppend && m.Op != OpDelete {
		return errors.New("unknown op: " + m.Op)
	}
	if m.RowID <= 0 {
		return errors.New("row id must be positive")
	}
	return nil
}

func (m *LedgerSyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func LedgerSyncMessageFromJSON(data []byte) (*LedgerSyncMessage, error) {
	var msg LedgerSyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	return &msg, nil
}
