package http

import (
	"log/slog"
	"net/http"

	"momentum/internal/core"
)

func (s *Server) handleMonthOverview(w http.ResponseWriter, r *http.Request) {
	params := ParseMonthParams(r.URL.Query(), timeNow())
	if params.Month < 1 || params.Month > 12 {
		BadRequestError("month must be between 1 and 12").Write(w)
		return
	}

	key := overviewCacheKey(params.Year, params.Month)
	if overview, ok := s.overviewCache.Get(key); ok {
		NewJSONResponse().Header("X-Cache", "HIT").Payload(overviewJSON(overview)).Write(w)
		return
	}

	overview, err := s.reports.MonthOverview(r.Context(), params.Year, params.Month)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to build month overview",
			"year", params.Year, "month", params.Month, "error", err)
		InternalServerError("failed to build overview").Write(w)
		return
	}

	s.overviewCache.Set(key, overview)
	NewJSONResponse().Header("X-Cache", "MISS").Payload(overviewJSON(overview)).Write(w)
}

func (s *Server) handleFrameReport(w http.ResponseWriter, r *http.Request) {
	frameParam := r.URL.Query().Get("frame")
	if frameParam == "" {
		frameParam = string(core.Last30Days)
	}
	frame, err := core.ParseTimeFrame(frameParam)
	if err != nil {
		BadRequestError(err.Error()).Write(w)
		return
	}

	// Rolling windows drift with the clock; the short TTL bounds staleness.
	if report, ok := s.reportCache.Get(string(frame)); ok {
		NewJSONResponse().Header("X-Cache", "HIT").Payload(frameReportJSON(report)).Write(w)
		return
	}

	report, err := s.reports.FrameReport(r.Context(), frame, timeNow())
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to build frame report",
			"frame", frame, "error", err)
		InternalServerError("failed to build report").Write(w)
		return
	}

	s.reportCache.Set(string(frame), report)
	NewJSONResponse().Header("X-Cache", "MISS").Payload(frameReportJSON(report)).Write(w)
}
