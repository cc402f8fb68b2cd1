package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dafibh/spendboard/internal/analytics"
	"github.com/dafibh/spendboard/internal/domain"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// NoExpensesInsight is returned instead of calling the generator when nothing has been recorded
const NoExpensesInsight = "No expenses found. Start adding expenses to get AI-powered insights!"

// InsightService hands spending summaries to an external text generator
type InsightService struct {
	loader         snapshotLoader
	generator      domain.InsightGenerator
	currencySymbol string
	logger         zerolog.Logger
}

// NewInsightService creates a new InsightService. A nil generator disables insights.
func NewInsightService(
	categoryRepo domain.CategoryRepository,
	expenseRepo domain.ExpenseRepository,
	budgetRepo domain.RecurringBudgetRepository,
	generator domain.InsightGenerator,
	currencySymbol string,
	logger zerolog.Logger,
) *InsightService {
	return &InsightService{
		loader: snapshotLoader{
			categoryRepo: categoryRepo,
			expenseRepo:  expenseRepo,
			budgetRepo:   budgetRepo,
		},
		generator:      generator,
		currencySymbol: currencySymbol,
		logger:         logger.With().Str("component", "insight_service").Logger(),
	}
}

// IsEnabled indicates whether a generator is configured
func (s *InsightService) IsEnabled() bool {
	return s != nil && s.generator != nil
}

// Generate produces insights for the month containing ref
func (s *InsightService) Generate(ctx context.Context, ref time.Time) (*domain.Insight, error) {
	if !s.IsEnabled() {
		return nil, domain.ErrInsightsUnavailable
	}

	snap, err := s.loader.load(ctx)
	if err != nil {
		return nil, err
	}
	if len(snap.expenses) == 0 {
		return &domain.Insight{Text: NoExpensesInsight}, nil
	}

	dashboard := buildDashboard(snap, ref, domain.DefaultRecentTransactions)
	spending := spendingByCategory(snap)
	facts := &domain.InsightFacts{
		TotalExpenses:        sumExpenses(snap.expenses),
		CurrentMonthExpenses: dashboard.Total,
		CurrentMonthBudget:   dashboard.Overall.TotalBudget,
		NumTransactions:      len(snap.expenses),
		Categories:           len(spending),
		BudgetsSet:           len(snap.budgets),
	}

	prompt := s.buildPrompt(dashboard, spending, facts)
	text, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		s.logger.Error().Err(err).Str("month", dashboard.Period.Key).Msg("Insight generation failed")
		return nil, fmt.Errorf("generate insights: %w", err)
	}

	s.logger.Info().Str("month", dashboard.Period.Key).Int("prompt_bytes", len(prompt)).Msg("Insights generated")
	return &domain.Insight{Text: text, Summary: facts}, nil
}

func (s *InsightService) buildPrompt(dashboard *domain.DashboardSummary, spending []domain.CategoryAmount, facts *domain.InsightFacts) string {
	money := func(d decimal.Decimal) string {
		return s.currencySymbol + d.StringFixed(2)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Analyze this expense data (amounts in %s) and provide clear, actionable insights:\n\n", s.currencySymbol)

	fmt.Fprintf(&b, "Current Month (%s):\n", dashboard.Period.Key)
	fmt.Fprintf(&b, "- Expenses: %s\n", money(dashboard.Total))
	fmt.Fprintf(&b, "- Budget: %s\n", money(dashboard.Overall.TotalBudget))
	fmt.Fprintf(&b, "- Transactions: %d\n\n", dashboard.TransactionCount)

	fmt.Fprintf(&b, "Total Expenses (All Time): %s\n", money(facts.TotalExpenses))
	fmt.Fprintf(&b, "Total Transactions: %d\n\n", facts.NumTransactions)

	b.WriteString("Spending by Category:\n")
	for _, row := range spending {
		fmt.Fprintf(&b, "- %s: %s\n", row.Category.Name, money(row.Amount))
	}

	b.WriteString("\nRecurring Monthly Budgets:\n")
	if len(dashboard.BudgetStatus) == 0 {
		b.WriteString("No budgets set\n")
	}
	for _, status := range dashboard.BudgetStatus {
		fmt.Fprintf(&b, "- %s: Budget %s, Current Month Spent %s\n",
			status.Category.Name, money(status.Budget), money(status.Spent))
	}

	b.WriteString(`
Provide:
1. Key spending patterns and insights
2. Budget adherence analysis for current month
3. Specific recommendations for reducing expenses
4. Areas where spending can be optimized
5. Financial health assessment

Keep the response concise, actionable, and focused on the current month.`)
	return b.String()
}

// spendingByCategory returns all-time totals per category, largest first
func spendingByCategory(snap *snapshot) []domain.CategoryAmount {
	refs := analytics.IndexCategories(snap.categories)
	totals := make(map[domain.CategoryRef]decimal.Decimal)
	for _, e := range snap.expenses {
		ref := refs.Ref(e.CategoryID)
		totals[ref] = totals[ref].Add(e.Amount)
	}

	rows := make([]domain.CategoryAmount, 0, len(totals))
	for ref, total := range totals {
		rows = append(rows, domain.CategoryAmount{Category: ref, Amount: total})
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].Amount.Equal(rows[j].Amount) {
			return rows[i].Amount.GreaterThan(rows[j].Amount)
		}
		return rows[i].Category.Name < rows[j].Category.Name
	})
	return rows
}

func sumExpenses(expenses []*domain.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}
