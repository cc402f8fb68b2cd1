package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/dafibh/spendboard/internal/domain"
	"github.com/dafibh/spendboard/internal/util"
	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/shopspring/decimal"
)

const trendBarWidth = 40

// Predefined colors
var (
	boldRed    = color.New(color.FgRed, color.Bold).SprintFunc()
	boldGreen  = color.New(color.FgGreen, color.Bold).SprintFunc()
	boldYellow = color.New(color.FgYellow, color.Bold).SprintFunc()
	boldCyan   = color.New(color.FgCyan, color.Bold).SprintFunc()
)

// DisableColor turns off ANSI colors for both renderers
func DisableColor() {
	color.NoColor = true
	pterm.DisableColor()
}

// Renderer prints summaries as terminal tables
type Renderer struct {
	out      io.Writer
	currency string
}

// NewRenderer creates a Renderer writing to out
func NewRenderer(out io.Writer, currency string) *Renderer {
	return &Renderer{out: out, currency: currency}
}

func (r *Renderer) money(d decimal.Decimal) string {
	return r.currency + d.StringFixed(2)
}

func renderTable(data pterm.TableData) string {
	table := pterm.DefaultTable.
		WithHasHeader().
		WithBoxed().
		WithHeaderStyle(pterm.NewStyle(pterm.FgLightCyan)).
		WithData(data)

	rendered, err := table.Srender()
	if err != nil {
		return fmt.Sprintf("render table: %v\n", err)
	}
	return rendered
}

// Dashboard prints the monthly dashboard
func (r *Renderer) Dashboard(summary *domain.DashboardSummary) {
	fmt.Fprintln(r.out, boldCyan(summary.Label))
	fmt.Fprintf(r.out, "Spent %s across %d transactions\n\n", r.money(summary.Total), summary.TransactionCount)

	if len(summary.BudgetStatus) == 0 {
		fmt.Fprintln(r.out, "No recurring budgets set.")
	} else {
		data := pterm.TableData{{"Category", "Budget", "Spent", "Remaining", "Used"}}
		for _, s := range summary.BudgetStatus {
			data = append(data, []string{
				s.Category.Icon + " " + s.Category.Name,
				r.money(s.Budget),
				r.money(s.Spent),
				r.money(s.Remaining),
				usage(s.CategoryBudgetStatus),
			})
		}
		fmt.Fprint(r.out, renderTable(data))
	}

	overall := summary.Overall
	fmt.Fprintf(r.out, "\nOverall: %s of %s (%s%%), %s remaining\n\n",
		r.money(overall.TotalSpent),
		r.money(overall.TotalBudget),
		overall.UtilizationPct.StringFixed(1),
		r.money(overall.Remaining))

	if len(summary.Recent) == 0 {
		fmt.Fprintln(r.out, "No expenses recorded.")
		return
	}
	data := pterm.TableData{{"Date", "Category", "Description", "Amount"}}
	for _, e := range summary.Recent {
		data = append(data, []string{
			util.FormatDate(e.Expense.Date),
			e.Category.Name,
			e.Expense.Description,
			r.money(e.Expense.Amount),
		})
	}
	fmt.Fprint(r.out, renderTable(data))
}

func usage(s domain.CategoryBudgetStatus) string {
	switch {
	case s.Unbounded:
		return boldRed("no limit")
	case s.IsOverBudget:
		return boldRed(s.Percentage.StringFixed(1) + "%")
	case s.Percentage.GreaterThanOrEqual(decimal.NewFromInt(80)):
		return boldYellow(s.Percentage.StringFixed(1) + "%")
	default:
		return boldGreen(s.Percentage.StringFixed(1) + "%")
	}
}

// Analytics prints the analytics summary with a bar chart of the trend
func (r *Renderer) Analytics(summary *domain.AnalyticsSummary) {
	fmt.Fprintf(r.out, "%s\n", boldCyan(fmt.Sprintf("Analytics for %s", util.FormatMonthLabel(summary.Period))))
	fmt.Fprintf(r.out, "Average monthly spend: %s\n", r.money(summary.AverageMonthlySpend))
	if summary.TopCategory != nil {
		fmt.Fprintf(r.out, "Top category: %s (%s)\n", summary.TopCategory.Category.Name, r.money(summary.TopCategory.Amount))
	}
	fmt.Fprintf(r.out, "%d categories, %d transactions\n\n", summary.TotalCategories, summary.TotalTransactions)

	fmt.Fprint(r.out, renderTable(r.trendTable(summary.MonthlyTrend)))

	if len(summary.BudgetVsActual) > 0 {
		data := pterm.TableData{{"Category", "Budget", "Actual"}}
		for _, row := range summary.BudgetVsActual {
			actual := r.money(row.Actual)
			if row.Actual.GreaterThan(row.Budget) {
				actual = boldRed(actual)
			}
			data = append(data, []string{row.Category.Name, r.money(row.Budget), actual})
		}
		fmt.Fprint(r.out, "\n"+renderTable(data))
	}
}

func (r *Renderer) trendTable(trend []domain.MonthAmount) pterm.TableData {
	maxAmount := decimal.Zero
	for _, m := range trend {
		if m.Amount.GreaterThan(maxAmount) {
			maxAmount = m.Amount
		}
	}

	data := pterm.TableData{{"Month", "Spent", ""}}
	for _, m := range trend {
		bar := ""
		if maxAmount.IsPositive() {
			width := m.Amount.Div(maxAmount).Mul(decimal.NewFromInt(trendBarWidth)).IntPart()
			bar = pterm.FgBlue.Sprint(strings.Repeat("█", int(width)))
		}
		data = append(data, []string{m.Month, r.money(m.Amount), bar})
	}
	return data
}

// Report prints the location of an exported report
func (r *Renderer) Report(report *domain.ExportedReport) {
	fmt.Fprintf(r.out, "%s %s (%d expenses)\n", boldGreen("Report written:"), report.URL, report.Rows)
}
