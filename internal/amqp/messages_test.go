package amqp

import (
	"testing"
)

func TestNewLedgerSyncMessage(t *testing.T) {
	msg := NewLedgerSyncMessage(CollectionCompany, 42, OpAppend)

	if msg.MessageID == "" {
		t.Error("NewLedgerSyncMessage() should assign a message id")
	}
	if msg.Timestamp.IsZero() {
		t.Error("NewLedgerSyncMessage() Timestamp should not be zero")
	}
	if err := msg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestLedgerSyncMessageFromJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{
			name: "valid append",
			body: `{"message_id":"m1","collection":"company","row_id":7,"op":"append"}`,
		},
		{
			name: "valid delete on daily",
			body: `{"message_id":"m2","collection":"daily","row_id":3,"op":"delete"}`,
		},
		{
			name:    "unknown collection",
			body:    `{"message_id":"m3","collection":"calendar","row_id":7,"op":"append"}`,
			wantErr: true,
		},
		{
			name:    "unknown op",
			body:    `{"message_id":"m4","collection":"company","row_id":7,"op":"upsert"}`,
			wantErr: true,
		},
		{
			name:    "zero row id",
			body:    `{"message_id":"m5","collection":"company","row_id":0,"op":"append"}`,
			wantErr: true,
		},
		{
			name:    "malformed json",
			body:    `{"row_id": "seven"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := LedgerSyncMessageFromJSON([]byte(tt.body))
			if tt.wantErr {
				if err == nil {
					t.Error("LedgerSyncMessageFromJSON() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("LedgerSyncMessageFromJSON() error = %v", err)
			}
			if msg.RowID <= 0 {
				t.Errorf("RowID = %d, want positive", msg.RowID)
			}
		})
	}
}
