package google

import (
	"strconv"
	"strings"
	"time"

	"momentum/internal/core"
)

// parseLedgerRow converts one spreadsheet row (A=date, B=title, C=amount,
// D=type, E=category) into a ledger entry. Header rows and rows a user
// mangled by hand come back with ok=false.
func parseLedgerRow(cols []string) (core.Transaction, bool) {
	if len(cols) < 4 {
		return core.Transaction{}, false
	}

	day, err := time.Parse("2006-01-02", strings.TrimSpace(cols[0]))
	if err != nil {
		return core.Transaction{}, false
	}

	title := strings.TrimSpace(cols[1])
	if title == "" {
		return core.Transaction{}, false
	}

	cents, ok := parseDecimalToCents(cols[2])
	if !ok || cents <= 0 {
		return core.Transaction{}, false
	}

	typ := core.TransactionType(strings.ToLower(strings.TrimSpace(cols[3])))
	if !typ.Valid() {
		return core.Transaction{}, false
	}

	return core.Transaction{
		Date:   core.Date{Time: day},
		Title:  title,
		Amount: core.Money{Cents: cents},
		Type:   typ,
	}, true
}

func parseDecimalToCents(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	// Normalize decimal comma
	s = strings.ReplaceAll(s, ",", ".")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	cents := int64((f * 100.0) + 0.5)
	return cents, true
}
