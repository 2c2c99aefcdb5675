package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"momentum/internal/core"
	"momentum/internal/sheets"
	"momentum/internal/storage"
)

// SyncProcessorConfig holds configuration for the sync processor
type SyncProcessorConfig struct {
	// PollInterval is how often to check for pending items (default: 10s)
	PollInterval time.Duration

	// BatchSize is the max number of items to process per poll cycle (default: 10)
	BatchSize int

	// MaxRetries is the maximum retry attempts before marking as failed (default: 3)
	MaxRetries int

	// CleanupInterval is how often to clean up completed items (default: 1h)
	CleanupInterval time.Duration

	// CleanupAge is how old completed items must be before cleanup (default: 24h)
	CleanupAge time.Duration
}

// DefaultSyncProcessorConfig returns sensible defaults
func DefaultSyncProcessorConfig() SyncProcessorConfig {
	return SyncProcessorConfig{
		PollInterval:    10 * time.Second,
		BatchSize:       10,
		MaxRetries:      3,
		CleanupInterval: 1 * time.Hour,
		CleanupAge:      24 * time.Hour,
	}
}

// SyncProcessor drains the durable sync queue into the spreadsheet mirror.
type SyncProcessor struct {
	storage *storage.SQLiteRepository
	writer  sheets.LedgerWriter
	deleter sheets.LedgerDeleter
	config  SyncProcessorConfig

	// Lifecycle management
	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewSyncProcessor creates a new sync processor
func NewSyncProcessor(
	storage *storage.SQLiteRepository,
	writer sheets.LedgerWriter,
	deleter sheets.LedgerDeleter,
	config SyncProcessorConfig,
) *SyncProcessor {
	return &SyncProcessor{
		storage: storage,
		writer:  writer,
		deleter: deleter,
		config:  config,
	}
}

// Start begins the processing loop. Returns an error if already running.
func (p *SyncProcessor) Start(ctx context.Context) error {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return fmt.Errorf("sync processor is already running")
	}
	p.running = true
	p.stopCh = make(chan struct{})
	p.doneCh = make(chan struct{})
	p.mu.Unlock()

	// Reset any stale processing items from previous crashes
	if err := p.storage.ResetStaleProcessing(ctx); err != nil {
		slog.WarnContext(ctx, "Failed to reset stale processing items", "error", err)
	}

	go p.runLoop(ctx)

	slog.InfoContext(ctx, "Sync processor started",
		"poll_interval", p.config.PollInterval,
		"batch_size", p.config.BatchSize)

	return nil
}

// Stop gracefully stops the processor and waits for completion.
func (p *SyncProcessor) Stop(ctx context.Context) error {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return nil
	}
	p.mu.Unlock()

	close(p.stopCh)

	select {
	case <-p.doneCh:
		slog.InfoContext(ctx, "Sync processor stopped gracefully")
	case <-ctx.Done():
		slog.WarnContext(ctx, "Sync processor stop timed out")
		return ctx.Err()
	}

	p.mu.Lock()
	p.running = false
	p.mu.Unlock()

	return nil
}

// IsRunning returns whether the processor is currently running
func (p *SyncProcessor) IsRunning() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

// runLoop is the main processing loop
func (p *SyncProcessor) runLoop(ctx context.Context) {
	defer close(p.doneCh)

	pollTicker := time.NewTicker(p.config.PollInterval)
	defer pollTicker.Stop()

	cleanupTicker := time.NewTicker(p.config.CleanupInterval)
	defer cleanupTicker.Stop()

	// Process immediately on startup
	p.processBatch(ctx)

	for {
		select {
		case <-p.stopCh:
			return
		case <-ctx.Done():
			return
		case <-pollTicker.C:
			p.processBatch(ctx)
		case <-cleanupTicker.C:
			p.cleanupCompleted(ctx)
		}
	}
}

// processBatch processes a single batch of pending items
func (p *SyncProcessor) processBatch(ctx context.Context) {
	items, err := p.storage.DequeueSyncBatch(ctx, int64(p.config.BatchSize))
	if err != nil {
		slog.ErrorContext(ctx, "Failed to dequeue sync batch", "error", err)
		return
	}

	if len(items) == 0 {
		return
	}

	slog.DebugContext(ctx, "Processing sync batch", "count", len(items))

	for _, item := range items {
		select {
		case <-p.stopCh:
			return
		case <-ctx.Done():
			return
		default:
		}

		if err := p.storage.MarkSyncProcessing(ctx, item.ID); err != nil {
			slog.ErrorContext(ctx, "Failed to mark item as processing",
				"id", item.ID, "error", err)
			continue
		}

		var processErr error
		switch item.Operation {
		case "sync":
			processErr = p.processSyncItem(ctx, item)
		case "delete":
			processErr = p.processDeleteItem(ctx, item)
		default:
			processErr = fmt.Errorf("unknown operation: %s", item.Operation)
		}

		if processErr != nil {
			p.handleFailure(ctx, item, processErr)
		} else {
			p.handleSuccess(ctx, item)
		}
	}
}

// processSyncItem mirrors one ledger entry to the spreadsheet
func (p *SyncProcessor) processSyncItem(ctx context.Context, item storage.SyncQueueItem) error {
	txn, err := p.storage.GetTransaction(ctx, item.TransactionID)
	if err != nil {
		return fmt.Errorf("get transaction %d: %w", item.TransactionID, err)
	}

	ref, err := p.writer.Append(ctx, txn)
	if err != nil {
		return fmt.Errorf("append to mirror: %w", err)
	}

	if err := p.storage.MarkSynced(ctx, item.TransactionID); err != nil {
		slog.WarnContext(ctx, "Failed to mark transaction as synced",
			"transaction_id", item.TransactionID, "error", err)
		// Don't fail the queue item - the mirror write succeeded
	}

	slog.InfoContext(ctx, "Mirrored transaction to spreadsheet",
		"transaction_id", item.TransactionID,
		"sheets_ref", ref)

	return nil
}

// processDeleteItem removes one ledger entry from the mirror using the
// snapshot stored on the queue item; the source row is already gone.
func (p *SyncProcessor) processDeleteItem(ctx context.Context, item storage.SyncQueueItem) error {
	if p.deleter == nil {
		slog.WarnContext(ctx, "No deleter configured, skipping delete",
			"transaction_id", item.TransactionID)
		return nil
	}

	txn := core.Transaction{
		ID:     item.TransactionID,
		Title:  item.Title,
		Amount: core.Money{Cents: item.AmountCents},
		Date:   item.Date,
		Type:   item.Type,
	}

	if err := p.deleter.Delete(ctx, txn); err != nil {
		return fmt.Errorf("delete from mirror: %w", err)
	}

	slog.InfoContext(ctx, "Deleted transaction from spreadsheet mirror",
		"transaction_id", item.TransactionID)

	return nil
}

// handleSuccess marks an item as completed
func (p *SyncProcessor) handleSuccess(ctx context.Context, item storage.SyncQueueItem) {
	if err := p.storage.MarkSyncComplete(ctx, item.ID); err != nil {
		slog.ErrorContext(ctx, "Failed to mark sync complete",
			"id", item.ID, "error", err)
	}
}

// handleFailure handles a failed sync attempt with retry logic
func (p *SyncProcessor) handleFailure(ctx context.Context, item storage.SyncQueueItem, processErr error) {
	slog.WarnContext(ctx, "Sync processing failed",
		"id", item.ID,
		"operation", item.Operation,
		"attempt", item.Attempts+1,
		"error", processErr)

	if item.Attempts+1 >= int64(p.config.MaxRetries) {
		if err := p.storage.MarkSyncFailed(ctx, item.ID, processErr.Error()); err != nil {
			slog.ErrorContext(ctx, "Failed to mark sync as failed",
				"id", item.ID, "error", err)
		}

		if item.Operation == "sync" {
			if err := p.storage.MarkSyncError(ctx, item.TransactionID); err != nil {
				slog.ErrorContext(ctx, "Failed to mark transaction sync error",
					"transaction_id", item.TransactionID, "error", err)
			}
		}

		slog.ErrorContext(ctx, "Sync item failed permanently after max retries",
			"id", item.ID,
			"transaction_id", item.TransactionID,
			"attempts", item.Attempts+1)
	} else {
		if err := p.storage.IncrementSyncAttempt(ctx, item.ID, processErr.Error()); err != nil {
			slog.ErrorContext(ctx, "Failed to increment sync attempt",
				"id", item.ID, "error", err)
		}
	}
}

// cleanupCompleted removes old completed items
func (p *SyncProcessor) cleanupCompleted(ctx context.Context) {
	cutoff := time.Now().Add(-p.config.CleanupAge)
	if err := p.storage.CleanupCompletedSyncs(ctx, cutoff); err != nil {
		slog.ErrorContext(ctx, "Failed to cleanup completed syncs", "error", err)
	}
}

// Stats returns current queue statistics
func (p *SyncProcessor) Stats(ctx context.Context) (storage.SyncQueueStats, error) {
	return p.storage.GetSyncQueueStats(ctx)
}

// RetryFailed resets all failed items for retry
func (p *SyncProcessor) RetryFailed(ctx context.Context) error {
	return p.storage.RetryFailedSyncs(ctx)
}
