package sheets

import (
	"context"

	"momentum/internal/core"
)

// Ports for outbound mirror adapters.
type (
	LedgerWriter interface {
		Append(ctx context.Context, t core.Transaction) (rowRef string, err error)
	}

	LedgerDeleter interface {
		Delete(ctx context.Context, t core.Transaction) error
	}

	TaxonomyReader interface {
		List(ctx context.Context) (categories []string, err error)
	}

	// OverviewReader provides aggregated monthly data from the mirror.
	OverviewReader interface {
		// ReadMonthOverview returns totals for a specific year and month.
		ReadMonthOverview(ctx context.Context, year int, month int) (core.MonthOverview, error)
	}

	// TransactionLister returns the mirrored entries for a given month.
	TransactionLister interface {
		ListTransactions(ctx context.Context, year int, month int) ([]core.Transaction, error)
	}
)
