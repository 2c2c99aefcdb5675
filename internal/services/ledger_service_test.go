package services

import (
	"context"
	"testing"

	"momentum/internal/core"
)

func TestNewLedgerService(t *testing.T) {
	service := NewLedgerService(nil, nil)

	if service == nil {
		t.Error("NewLedgerService should return a non-nil service")
	}
	if service.storage != nil {
		t.Error("NewLedgerService should set storage to nil when passed nil")
	}
}

func TestLedgerService_RecordTransaction_Invalid(t *testing.T) {
	service := NewLedgerService(nil, nil)

	// Validation runs before any storage access, so a nil repository is fine here
	_, err := service.RecordTransaction(context.Background(), core.Transaction{})
	if err == nil {
		t.Error("RecordTransaction should reject an empty transaction")
	}

	_, err = service.RecordTransaction(context.Background(), core.Transaction{
		Title:  "No account",
		Amount: core.Money{Cents: 100},
		Date:   date(2024, 3, 15),
		Type:   core.Expense,
	})
	if err == nil {
		t.Error("RecordTransaction should reject a transaction without an account")
	}
}

func TestLedgerService_Close(t *testing.T) {
	t.Run("nil components", func(t *testing.T) {
		service := &LedgerService{}

		if err := service.Close(); err != nil {
			t.Fatalf("Close should not return error with nil components: %v", err)
		}
	})
}
