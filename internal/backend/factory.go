package backend

import (
	"context"
	"fmt"
	"log/slog"

	gsheet "momentum/internal/sheets/google"
	"momentum/internal/sheets/memory"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *slog.Logger
}

// NewFactory creates a new mirror factory
func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{
		logger: logger,
	}
}

// CreateMirror implements Factory.CreateMirror
func (f *DefaultFactory) CreateMirror(ctx context.Context, config Config) (*MirrorResult, error) {
	if !config.Type.IsValid() {
		return nil, fmt.Errorf("invalid mirror type: %s", config.Type)
	}

	switch config.Type {
	case SheetsMirror:
		return f.createSheetsMirror(ctx)
	case MemoryMirror:
		return f.createMemoryMirror(config)
	default:
		return nil, fmt.Errorf("unsupported mirror type: %s", config.Type)
	}
}

func (f *DefaultFactory) createSheetsMirror(ctx context.Context) (*MirrorResult, error) {
	cli, err := gsheet.NewFromEnv(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Google Sheets client: %w", err)
	}

	f.logger.Info("Initialized Google Sheets mirror")

	return &MirrorResult{
		Mirror:  cli,
		Cleanup: nil,
	}, nil
}

func (f *DefaultFactory) createMemoryMirror(config Config) (*MirrorResult, error) {
	dataDir := config.DataDirectory
	if dataDir == "" {
		dataDir = "data"
	}

	store := memory.NewFromFiles(dataDir)

	f.logger.Info("Initialized memory mirror", "data_directory", dataDir)

	return &MirrorResult{
		Mirror:  store,
		Cleanup: nil,
	}, nil
}
