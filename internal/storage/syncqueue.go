package storage

import (
	"context"
	"fmt"
	"time"

	"momentum/internal/core"
)

// SyncQueueItem is one durable outbox entry. The txn_* columns carry a
// snapshot of the ledger entry so a delete can still be mirrored after
// the row itself is gone.
type SyncQueueItem struct {
	ID            int64
	TransactionID int64
	Operation     string
	Status        string
	Attempts      int64
	LastError     string
	Title         string
	AmountCents   int64
	Date          core.Date
	Type          core.TransactionType
}

// SyncQueueStats summarizes the outbox by status.
type SyncQueueStats struct {
	Pending    int64
	Processing int64
	Completed  int64
	Failed     int64
}

const syncQueueColumns = `id, transaction_id, operation, status, attempts, last_error,
	txn_title, txn_amount_cents, txn_date, txn_type`

// DequeueSyncBatch returns up to limit pending items, oldest first.
func (r *SQLiteRepository) DequeueSyncBatch(ctx context.Context, limit int64) ([]SyncQueueItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+syncQueueColumns+` FROM sync_queue WHERE status = 'pending' ORDER BY id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("dequeue sync batch: %w", err)
	}
	defer rows.Close()

	var items []SyncQueueItem
	for rows.Next() {
		var item SyncQueueItem
		var date, typ string
		if err := rows.Scan(&item.ID, &item.TransactionID, &item.Operation, &item.Status,
			&item.Attempts, &item.LastError, &item.Title, &item.AmountCents, &date, &typ); err != nil {
			return nil, fmt.Errorf("scan sync item: %w", err)
		}
		item.Date = parseDate(date)
		item.Type = core.TransactionType(typ)
		items = append(items, item)
	}
	return items, rows.Err()
}

// MarkSyncProcessing claims a queue item.
func (r *SQLiteRepository) MarkSyncProcessing(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE sync_queue SET status = 'processing' WHERE id = ? AND status = 'pending'`, id)
	if err != nil {
		return fmt.Errorf("mark sync processing: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark sync processing: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("sync item %d: %w", id, ErrNotFound)
	}
	return nil
}

// MarkSyncComplete marks a queue item done.
func (r *SQLiteRepository) MarkSyncComplete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE sync_queue SET status = 'completed', completed_at = CURRENT_TIMESTAMP WHERE id = ?`, id); err != nil {
		return fmt.Errorf("mark sync complete: %w", err)
	}
	return nil
}

// MarkSyncFailed marks a queue item as permanently failed.
func (r *SQLiteRepository) MarkSyncFailed(ctx context.Context, id int64, lastError string) error {
	if _, err := r.db.ExecContext(ctx, `
		UPDATE sync_queue SET status = 'failed', attempts = attempts + 1, last_error = ?
		WHERE id = ?`, lastError, id); err != nil {
		return fmt.Errorf("mark sync failed: %w", err)
	}
	return nil
}

// IncrementSyncAttempt returns a failed attempt to the pending pool for retry.
func (r *SQLiteRepository) IncrementSyncAttempt(ctx context.Context, id int64, lastError string) error {
	if _, err := r.db.ExecContext(ctx, `
		UPDATE sync_queue SET status = 'pending', attempts = attempts + 1, last_error = ?
		WHERE id = ?`, lastError, id); err != nil {
		return fmt.Errorf("increment sync attempt: %w", err)
	}
	return nil
}

// ResetStaleProcessing returns items stuck in processing back to pending.
// Called on startup to recover from a crash mid-batch.
func (r *SQLiteRepository) ResetStaleProcessing(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE sync_queue SET status = 'pending' WHERE status = 'processing'`); err != nil {
		return fmt.Errorf("reset stale processing: %w", err)
	}
	return nil
}

// CleanupCompletedSyncs deletes completed items older than the cutoff.
func (r *SQLiteRepository) CleanupCompletedSyncs(ctx context.Context, cutoff time.Time) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM sync_queue WHERE status = 'completed' AND completed_at < ?`,
		cutoff.UTC().Format("2006-01-02 15:04:05")); err != nil {
		return fmt.Errorf("cleanup completed syncs: %w", err)
	}
	return nil
}

// RetryFailedSyncs resets failed items for another round of attempts.
func (r *SQLiteRepository) RetryFailedSyncs(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE sync_queue SET status = 'pending', attempts = 0, last_error = '' WHERE status = 'failed'`); err != nil {
		return fmt.Errorf("retry failed syncs: %w", err)
	}
	return nil
}

// GetSyncQueueStats counts outbox items by status.
func (r *SQLiteRepository) GetSyncQueueStats(ctx context.Context) (SyncQueueStats, error) {
	var stats SyncQueueStats
	err := r.db.QueryRowContext(ctx, `
		SELECT
			COUNT(CASE WHEN status = 'pending' THEN 1 END),
			COUNT(CASE WHEN status = 'processing' THEN 1 END),
			COUNT(CASE WHEN status = 'completed' THEN 1 END),
			COUNT(CASE WHEN status = 'failed' THEN 1 END)
		FROM sync_queue`).
		Scan(&stats.Pending, &stats.Processing, &stats.Completed, &stats.Failed)
	if err != nil {
		return SyncQueueStats{}, fmt.Errorf("sync queue stats: %w", err)
	}
	return stats, nil
}
