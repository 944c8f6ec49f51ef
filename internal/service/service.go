package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/kjstillabower/weatherman/internal/aggregate"
	"github.com/kjstillabower/weatherman/internal/observability"
	"github.com/kjstillabower/weatherman/internal/report"
	"github.com/kjstillabower/weatherman/internal/store"
)

// ErrNoData is returned when a request's files are missing or hold no readings.
var ErrNoData = errors.New("no data for request")

// ErrUnknownKind is returned for a request whose Kind has no handler.
var ErrUnknownKind = errors.New("unknown report kind")

// handler produces one kind of report from the stores selected for a request.
type handler func(r *report.Renderer, req report.Request, sel *store.Set) error

var handlers = map[report.Kind]handler{
	report.KindYearlySummary:   yearlySummary,
	report.KindMonthlyAverages: monthlyAverages,
	report.KindDailyChart:      dailyChart,
	report.KindCombinedChart:   combinedChart,
}

// ReportService resolves report requests against the loaded stores and renders them.
type ReportService struct {
	set      *store.Set
	renderer *report.Renderer
	logger   *zap.Logger
}

// New creates a ReportService over set. A nil logger discards request warnings.
func New(set *store.Set, renderer *report.Renderer, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{set: set, renderer: renderer, logger: logger}
}

// Run produces the report for req.
//
// A single-month request whose file is absent returns ErrNoData. A whole-year
// request uses whichever of its twelve files are present and returns ErrNoData
// only when none are. Monthly averages over zero readings render a no-data report
// and succeed; a yearly summary over zero readings returns ErrNoData.
func (s *ReportService) Run(ctx context.Context, req report.Request) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	kind := req.Kind.Flag()
	h, ok := handlers[req.Kind]
	if !ok {
		observability.RecordReport("unknown", observability.ReportStatusError)
		return fmt.Errorf("%w: %d", ErrUnknownKind, int(req.Kind))
	}

	sel, missing := s.set.Select(req.Files)
	if sel.Len() == 0 || (!req.WholeYear() && len(missing) > 0) {
		observability.RecordReport(kind, observability.ReportStatusNoData)
		return fmt.Errorf("%w: %s: file not found: %v", ErrNoData, req, missing)
	}
	if len(missing) > 0 {
		s.logger.Debug("data files not found", zap.String("request", req.String()), zap.Strings("files", missing))
	}

	if err := h(s.renderer, req, sel); err != nil {
		status := observability.ReportStatusError
		if errors.Is(err, ErrNoData) {
			status = observability.ReportStatusNoData
		}
		observability.RecordReport(kind, status)
		return fmt.Errorf("%s: %w", req, err)
	}
	observability.RecordReport(kind, observability.ReportStatusOK)
	return nil
}

// RunAll runs every request in order, logging failures and continuing past them.
// It returns the number of requests that failed.
func (s *ReportService) RunAll(ctx context.Context, reqs []report.Request) int {
	failed := 0
	for _, req := range reqs {
		err := s.Run(ctx, req)
		switch {
		case err == nil:
			continue
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			s.logger.Warn("report run stopped", zap.Error(err))
			return failed + 1
		case errors.Is(err, ErrNoData):
			s.logger.Warn("report skipped", zap.String("request", req.String()), zap.Error(err))
		default:
			s.logger.Error("report failed", zap.String("request", req.String()), zap.Error(err))
		}
		failed++
	}
	return failed
}

func yearlySummary(r *report.Renderer, _ report.Request, sel *store.Set) error {
	res, err := aggregate.YearlyExtremes(sel)
	if errors.Is(err, aggregate.ErrNoReadings) {
		return fmt.Errorf("%w: %v", ErrNoData, err)
	}
	if err != nil {
		return err
	}
	return r.YearlySummary(res)
}

func monthlyAverages(r *report.Renderer, _ report.Request, sel *store.Set) error {
	return r.MonthlyAverages(aggregate.MonthlyAverages(sel.Merged()))
}

func dailyChart(r *report.Renderer, req report.Request, sel *store.Set) error {
	return r.DailyChart(report.ChartTitle(req), aggregate.DailyBars(sel.Merged()))
}

func combinedChart(r *report.Renderer, req report.Request, sel *store.Set) error {
	return r.CombinedChart(report.ChartTitle(req), aggregate.DailyBars(sel.Merged()))
}
