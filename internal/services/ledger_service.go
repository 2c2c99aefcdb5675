package services

import (
	"context"
	"fmt"
	"log/slog"

	"momentum/internal/amqp"
	"momentum/internal/core"
	"momentum/internal/storage"
)

// LedgerService orchestrates ledger writes across SQLite and AMQP. The
// local write is authoritative; a failed broker publish is logged and the
// durable sync queue still carries the entry to the mirror.
type LedgerService struct {
	storage    *storage.SQLiteRepository
	amqpClient *amqp.Client
}

func NewLedgerService(storage *storage.SQLiteRepository, amqpClient *amqp.Client) *LedgerService {
	return &LedgerService{
		storage:    storage,
		amqpClient: amqpClient,
	}
}

// RecordTransaction validates and saves a ledger entry, then nudges the
// mirror worker over AMQP.
func (s *LedgerService) RecordTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}
	if t.AccountID <= 0 {
		return core.Transaction{}, fmt.Errorf("transaction requires an account")
	}

	saved, err := s.storage.CreateTransaction(ctx, t)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("save transaction: %w", err)
	}

	if err := s.publishSyncMessage(ctx, saved.ID, 1); err != nil {
		slog.ErrorContext(ctx, "Failed to publish sync message",
			"id", saved.ID, "error", err)
		// Entry is saved locally; the sync queue will still reach the mirror
	}

	return saved, nil
}

// DeleteTransaction soft deletes a ledger entry. The mirror delete rides
// the sync queue, which snapshots the entry's data before it disappears.
func (s *LedgerService) DeleteTransaction(ctx context.Context, id int64) error {
	if err := s.storage.SoftDeleteTransaction(ctx, id); err != nil {
		return fmt.Errorf("soft delete transaction: %w", err)
	}
	return nil
}

// SetReconciled toggles the reconciled flag on an entry.
func (s *LedgerService) SetReconciled(ctx context.Context, id int64, reconciled bool) error {
	return s.storage.SetReconciled(ctx, id, reconciled)
}

// UpdateNotes replaces an entry's notes.
func (s *LedgerService) UpdateNotes(ctx context.Context, id int64, notes string) error {
	return s.storage.UpdateTransactionNotes(ctx, id, notes)
}

func (s *LedgerService) publishSyncMessage(ctx context.Context, id, version int64) error {
	if s.amqpClient == nil {
		slog.WarnContext(ctx, "AMQP client not available, skipping sync message")
		return nil
	}
	return s.amqpClient.PublishTransactionSync(ctx, id, version)
}

// Close closes both storage and AMQP connections.
func (s *LedgerService) Close() error {
	var errs []error

	if s.storage != nil {
		if err := s.storage.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	if s.amqpClient != nil {
		if err := s.amqpClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close ledger service: %v", errs)
	}

	return nil
}
