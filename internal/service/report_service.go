package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/dafibh/spendboard/internal/analytics"
	"github.com/dafibh/spendboard/internal/domain"
	"github.com/dafibh/spendboard/internal/util"
	"github.com/rs/zerolog"
)

const (
	// ReportURLExpiry is how long an exported report link stays valid
	ReportURLExpiry = 15 * time.Minute
	reportPrefix    = "reports"
	reportMIMEType  = "text/csv"
)

// ReportService exports monthly expense reports to object storage
type ReportService struct {
	loader  snapshotLoader
	storage domain.ReportStorage
	logger  zerolog.Logger
	now     func() time.Time
}

// NewReportService creates a new ReportService. A nil storage disables exports.
func NewReportService(
	categoryRepo domain.CategoryRepository,
	expenseRepo domain.ExpenseRepository,
	budgetRepo domain.RecurringBudgetRepository,
	storage domain.ReportStorage,
	logger zerolog.Logger,
) *ReportService {
	return &ReportService{
		loader: snapshotLoader{
			categoryRepo: categoryRepo,
			expenseRepo:  expenseRepo,
			budgetRepo:   budgetRepo,
		},
		storage: storage,
		logger:  logger.With().Str("component", "report_service").Logger(),
		now:     time.Now,
	}
}

// IsEnabled indicates whether report storage is configured
func (s *ReportService) IsEnabled() bool {
	return s != nil && s.storage != nil
}

// Export writes the expenses and budget status of a month as CSV, uploads it and
// returns a presigned download link.
func (s *ReportService) Export(ctx context.Context, monthKey string) (*domain.ExportedReport, error) {
	if !s.IsEnabled() {
		return nil, domain.ErrReportsUnavailable
	}

	period, err := util.ParseMonthKey(monthKey)
	if err != nil {
		return nil, err
	}

	snap, err := s.loader.load(ctx)
	if err != nil {
		return nil, err
	}

	data, rows, err := renderReport(snap, period)
	if err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}

	objectPath := fmt.Sprintf("%s/%s.csv", reportPrefix, period.Key)
	if err := s.storage.Upload(ctx, objectPath, bytes.NewReader(data), reportMIMEType, int64(len(data))); err != nil {
		s.logger.Error().Err(err).Str("path", objectPath).Msg("Failed to upload report")
		return nil, fmt.Errorf("upload report: %w", err)
	}

	url, err := s.storage.GeneratePresignedURL(ctx, objectPath, ReportURLExpiry)
	if err != nil {
		s.logger.Error().Err(err).Str("path", objectPath).Msg("Failed to presign report")
		return nil, fmt.Errorf("presign report: %w", err)
	}

	s.logger.Info().Str("path", objectPath).Int("rows", rows).Msg("Report exported")
	return &domain.ExportedReport{
		Month:     period.Key,
		Path:      objectPath,
		URL:       url,
		Rows:      rows,
		ExpiresAt: s.now().Add(ReportURLExpiry).UTC(),
	}, nil
}

// renderReport writes the month's expenses followed by its budget status. It returns
// the CSV bytes and the number of expense rows.
func renderReport(snap *snapshot, period domain.Period) ([]byte, int, error) {
	refs := analytics.IndexCategories(snap.categories)
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	records := [][]string{{"date", "category", "description", "amount"}}
	var expenseRows int
	for _, e := range snap.expenses {
		if !period.Contains(e.Date) {
			continue
		}
		records = append(records, []string{
			util.FormatDate(e.Date),
			refs.Ref(e.CategoryID).Name,
			e.Description,
			e.Amount.StringFixed(2),
		})
		expenseRows++
	}

	dashboard := buildDashboard(snap, period.First, 0)
	records = append(records,
		[]string{},
		[]string{"category", "budget", "spent", "remaining", "percentage", "over_budget"},
	)
	for _, status := range dashboard.BudgetStatus {
		records = append(records, []string{
			status.Category.Name,
			status.Budget.StringFixed(2),
			status.Spent.StringFixed(2),
			status.Remaining.StringFixed(2),
			status.Percentage.StringFixed(2),
			strconv.FormatBool(status.IsOverBudget),
		})
	}
	records = append(records, []string{
		"TOTAL",
		dashboard.Overall.TotalBudget.StringFixed(2),
		dashboard.Overall.TotalSpent.StringFixed(2),
		dashboard.Overall.Remaining.StringFixed(2),
		dashboard.Overall.UtilizationPct.StringFixed(2),
		strconv.FormatBool(dashboard.Overall.Remaining.IsNegative()),
	})

	if err := w.WriteAll(records); err != nil {
		return nil, 0, err
	}
	return buf.Bytes(), expenseRows, nil
}
