package services

import (
	"context"
	"time"

	"momentum/internal/core"
	"momentum/internal/storage"
)

// ReportService aggregates the ledger into overviews and time-frame
// reports. All filtering happens in core over the full entry list so the
// math is identical wherever it is invoked.
type ReportService struct {
	storage *storage.SQLiteRepository
}

func NewReportService(storage *storage.SQLiteRepository) *ReportService {
	return &ReportService{storage: storage}
}

// MonthOverview returns income, expenses, net and category breakdown for
// one calendar month.
func (s *ReportService) MonthOverview(ctx context.Context, year, month int) (core.MonthOverview, error) {
	txns, err := s.storage.ListTransactions(ctx)
	if err != nil {
		return core.MonthOverview{}, err
	}
	names, err := s.storage.CategoryNames(ctx)
	if err != nil {
		return core.MonthOverview{}, err
	}
	return core.BuildMonthOverview(txns, year, month, names), nil
}

// FrameReport returns totals for a named time frame relative to now.
func (s *ReportService) FrameReport(ctx context.Context, frame core.TimeFrame, now time.Time) (core.FrameReport, error) {
	txns, err := s.storage.ListTransactions(ctx)
	if err != nil {
		return core.FrameReport{}, err
	}
	names, err := s.storage.CategoryNames(ctx)
	if err != nil {
		return core.FrameReport{}, err
	}
	return core.BuildFrameReport(txns, frame, now, names), nil
}
