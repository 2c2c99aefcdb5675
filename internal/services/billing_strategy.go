// Package services provides business logic and orchestration services.
//
// This file implements the Strategy Pattern for advancing subscription due
// dates. Each billing cycle has its own advancer that encapsulates the
// calendar arithmetic for that cycle.

package services

import (
	"fmt"
	"time"

	"momentum/internal/core"
)

// CycleAdvancer is the strategy interface for computing a subscription's
// next due date after a posting.
type CycleAdvancer interface {
	// Next returns the due date that follows the given one.
	Next(from core.Date) core.Date
}

// MonthlyAdvancer implements CycleAdvancer for monthly subscriptions.
type MonthlyAdvancer struct{}

// Next returns the same day one month later, clamped to the month's end.
func (MonthlyAdvancer) Next(from core.Date) core.Date {
	return core.Date{Time: addMonthsClamped(from.Time, 1)}
}

// AnnualAdvancer implements CycleAdvancer for annual subscriptions.
type AnnualAdvancer struct{}

// Next returns the same day one year later. Feb 29 clamps to Feb 28.
func (AnnualAdvancer) Next(from core.Date) core.Date {
	return core.Date{Time: addMonthsClamped(from.Time, 12)}
}

// QuarterlyAdvancer implements CycleAdvancer for quarterly subscriptions.
type QuarterlyAdvancer struct{}

// Next returns the same day three months later, clamped to the month's end.
func (QuarterlyAdvancer) Next(from core.Date) core.Date {
	return core.Date{Time: addMonthsClamped(from.Time, 3)}
}

// WeeklyAdvancer implements CycleAdvancer for weekly subscriptions.
type WeeklyAdvancer struct{}

func (WeeklyAdvancer) Next(from core.Date) core.Date {
	return core.Date{Time: from.AddDate(0, 0, 7)}
}

// BiweeklyAdvancer implements CycleAdvancer for biweekly subscriptions.
type BiweeklyAdvancer struct{}

func (BiweeklyAdvancer) Next(from core.Date) core.Date {
	return core.Date{Time: from.AddDate(0, 0, 14)}
}

// addMonthsClamped adds months keeping the day of month, clamping to the
// target month's last day. AddDate alone would roll Jan 31 into March.
func addMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	first := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	lastDay := first.AddDate(0, 1, -1).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, t.Location())
}

// cycleAdvancers maps billing cycles to their corresponding advancers.
// This registry enables O(1) lookup and easy extension for new cycles.
var cycleAdvancers = map[core.BillingCycle]CycleAdvancer{
	core.Monthly:   MonthlyAdvancer{},
	core.Annual:    AnnualAdvancer{},
	core.Quarterly: QuarterlyAdvancer{},
	core.Weekly:    WeeklyAdvancer{},
	core.Biweekly:  BiweeklyAdvancer{},
}

// GetCycleAdvancer returns the advancer for a billing cycle.
// Returns an error if the cycle is not supported.
func GetCycleAdvancer(cycle core.BillingCycle) (CycleAdvancer, error) {
	advancer, ok := cycleAdvancers[cycle]
	if !ok {
		return nil, fmt.Errorf("unknown billing cycle: %s", cycle)
	}
	return advancer, nil
}

// RegisterCycleAdvancer allows registering custom advancers for new cycles.
func RegisterCycleAdvancer(cycle core.BillingCycle, advancer CycleAdvancer) {
	cycleAdvancers[cycle] = advancer
}
