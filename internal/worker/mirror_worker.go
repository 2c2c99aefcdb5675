// Package worker runs the mirror side of the ledger: it consumes AMQP
// sync nudges and drains the durable sync queue into the configured
// mirror target.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"momentum/internal/amqp"
	"momentum/internal/backend"
	applog "momentum/internal/log"
	"momentum/internal/services"
	"momentum/internal/storage"
)

// MirrorWorker keeps the external mirror in step with the local ledger.
// AMQP messages are a fast path; the durable sync queue drained by the
// embedded processor is the path of record, so a lost message never
// loses an entry.
type MirrorWorker struct {
	storage    *storage.SQLiteRepository
	amqpClient *amqp.Client
	mirror     backend.Mirror
	processor  *services.SyncProcessor
	logger     *applog.StructuredLogger
}

func NewMirrorWorker(
	storage *storage.SQLiteRepository,
	amqpClient *amqp.Client,
	mirror backend.Mirror,
	config services.SyncProcessorConfig,
) *MirrorWorker {
	return &MirrorWorker{
		storage:    storage,
		amqpClient: amqpClient,
		mirror:     mirror,
		processor:  services.NewSyncProcessor(storage, mirror, mirror, config),
		logger: applog.NewStructuredLogger(applog.New(applog.Config{
			Component: applog.ComponentMirror,
		})),
	}
}

// Run starts the worker and blocks until ctx is cancelled or a fatal
// error occurs.
func (w *MirrorWorker) Run(ctx context.Context) error {
	if err := w.processor.Start(ctx); err != nil {
		return fmt.Errorf("start sync processor: %w", err)
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := w.processor.Stop(stopCtx); err != nil {
			slog.Error("Failed to stop sync processor", "error", err)
		}
	}()

	g, gctx := errgroup.WithContext(ctx)

	if w.amqpClient != nil {
		g.Go(func() error {
			err := w.amqpClient.ConsumeTransactionSync(gctx, func(msg *amqp.TransactionSyncMessage) error {
				return w.HandleSyncMessage(gctx, msg)
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("consume sync messages: %w", err)
			}
			return nil
		})
	} else {
		slog.InfoContext(ctx, "AMQP client not available, relying on sync queue polling only")
	}

	g.Go(func() error {
		<-gctx.Done()
		return nil
	})

	return g.Wait()
}

// HandleSyncMessage mirrors a single ledger entry referenced by an AMQP
// nudge. A missing entry means it was deleted after the nudge was sent;
// the sync queue's delete snapshot covers the mirror, so the message is
// acked without action.
func (w *MirrorWorker) HandleSyncMessage(ctx context.Context, msg *amqp.TransactionSyncMessage) error {
	slog.InfoContext(ctx, "Processing sync message",
		"id", msg.ID,
		"version", msg.Version)

	txn, err := w.storage.GetTransaction(ctx, msg.ID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			slog.InfoContext(ctx, "Entry no longer exists, skipping mirror append", "id", msg.ID)
			return nil
		}
		return fmt.Errorf("get transaction from storage: %w", err)
	}

	ref, err := w.mirror.Append(ctx, txn)
	if err != nil {
		if markErr := w.storage.MarkSyncError(ctx, txn.ID); markErr != nil {
			slog.ErrorContext(ctx, "Failed to mark sync error", "id", txn.ID, "error", markErr)
		}
		return fmt.Errorf("append to mirror: %w", err)
	}

	if err := w.storage.MarkSynced(ctx, txn.ID); err != nil {
		// The mirror write succeeded; a stale flag only costs a retry
		slog.ErrorContext(ctx, "Failed to mark as synced", "id", txn.ID, "error", err)
	}

	w.logger.LogEntryMirrored(ctx, txn.Title, txn.Amount.Cents, txn.AccountID, string(txn.Type), ref)

	return nil
}

// VerifyTaxonomy checks that every local category exists in the mirror's
// taxonomy and logs the ones it cannot find. The mirror is advisory here;
// local categories stay authoritative.
func (w *MirrorWorker) VerifyTaxonomy(ctx context.Context) error {
	mirrorCategories, err := w.mirror.List(ctx)
	if err != nil {
		return fmt.Errorf("list mirror taxonomy: %w", err)
	}

	known := make(map[string]bool, len(mirrorCategories))
	for _, name := range mirrorCategories {
		known[name] = true
	}

	local, err := w.storage.ListCategories(ctx)
	if err != nil {
		return fmt.Errorf("list local categories: %w", err)
	}

	missing := 0
	for _, c := range local {
		if !known[c.Name] {
			slog.WarnContext(ctx, "Category missing from mirror taxonomy", "name", c.Name)
			missing++
		}
	}

	slog.InfoContext(ctx, "Taxonomy verified",
		"local", len(local),
		"mirror", len(mirrorCategories),
		"missing", missing)

	return nil
}

// Stats exposes the sync queue counters for health reporting.
func (w *MirrorWorker) Stats(ctx context.Context) (storage.SyncQueueStats, error) {
	return w.processor.Stats(ctx)
}

// RetryFailed requeues failed sync items.
func (w *MirrorWorker) RetryFailed(ctx context.Context) error {
	return w.processor.RetryFailed(ctx)
}
