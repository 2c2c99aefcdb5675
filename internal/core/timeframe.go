package core

import (
	"fmt"
	"time"
)

// TimeFrame is a named relative date-range filter used to window
// transactions for reporting.
type TimeFrame string

const (
	Last30Days TimeFrame = "last30days"
	Last90Days TimeFrame = "last90days"
	ThisYear   TimeFrame = "thisyear"
	LastYear   TimeFrame = "lastyear"
	AllTime    TimeFrame = "alltime"
)

// TimeFrames lists every supported frame.
func TimeFrames() []TimeFrame {
	return []TimeFrame{Last30Days, Last90Days, ThisYear, LastYear, AllTime}
}

// ParseTimeFrame maps a label to a TimeFrame.
func ParseTimeFrame(s string) (TimeFrame, error) {
	switch TimeFrame(s) {
	case Last30Days, Last90Days, ThisYear, LastYear, AllTime:
		return TimeFrame(s), nil
	default:
		return "", fmt.Errorf("unknown time frame: %q", s)
	}
}

func (f TimeFrame) Valid() bool {
	_, err := ParseTimeFrame(string(f))
	return err == nil
}

// Contains reports whether date falls inside the frame's window relative to
// now. now is explicit so callers stay deterministic and testable.
//
// LastYear means the previous calendar year exactly (Jan 1 through Dec 31
// of now.Year()-1), not a rolling 365-day window.
func (f TimeFrame) Contains(date, now time.Time) bool {
	switch f {
	case Last30Days:
		return withinRollingDays(date, now, 30)
	case Last90Days:
		return withinRollingDays(date, now, 90)
	case ThisYear:
		return date.Year() == now.Year()
	case LastYear:
		return date.Year() == now.Year()-1
	case AllTime:
		return true
	default:
		return false
	}
}

// FilterByFrame returns the transactions whose dates fall inside the frame.
func FilterByFrame(txns []Transaction, frame TimeFrame, now time.Time) []Transaction {
	out := make([]Transaction, 0, len(txns))
	for _, t := range txns {
		if frame.Contains(t.Date.Time, now) {
			out = append(out, t)
		}
	}
	return out
}

func withinRollingDays(date, now time.Time, days int) bool {
	start := now.AddDate(0, 0, -days)
	return !date.Before(start) && !date.After(now)
}
