package backend

import (
	"context"

	"momentum/internal/sheets"
)

// Mirror is the external copy of the ledger that the sync worker writes
// to. Every mirror must accept appends and deletes and expose the category
// taxonomy it knows about.
type Mirror interface {
	sheets.LedgerWriter
	sheets.LedgerDeleter
	sheets.TaxonomyReader
}

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// MirrorResult contains the mirror instance and optional cleanup function
type MirrorResult struct {
	Mirror  Mirror
	Cleanup CleanupFunc
}

// Factory creates mirrors based on configuration
type Factory interface {
	CreateMirror(ctx context.Context, config Config) (*MirrorResult, error)
}

// Config holds configuration for mirror creation
type Config struct {
	Type MirrorType

	// Google Sheets specific
	GoogleSpreadsheetID      string
	GoogleLedgerSheetName    string
	GoogleTaxonomySheetName  string
	GoogleServiceAccountFile string
	GoogleServiceAccountJSON string

	// Memory mirror specific
	DataDirectory string
}

// MirrorType represents the kind of mirror target
type MirrorType string

const (
	SheetsMirror MirrorType = "sheets"
	MemoryMirror MirrorType = "memory"
)

// String implements fmt.Stringer
func (mt MirrorType) String() string {
	return string(mt)
}

// IsValid returns true if the mirror type is valid
func (mt MirrorType) IsValid() bool {
	switch mt {
	case SheetsMirror, MemoryMirror:
		return true
	default:
		return false
	}
}
