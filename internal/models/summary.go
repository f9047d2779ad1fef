package models

import (
	"sort"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SummaryTotals are the overall budgeted and current sums for expenses and
// incomes, plus the resulting nets.
type SummaryTotals struct {
	TotalBudgetedExpenses decimal.Decimal `json:"total_budgeted_expenses"`
	TotalCurrentExpenses  decimal.Decimal `json:"total_current_expenses"`
	TotalBudgetedIncome   decimal.Decimal `json:"total_budgeted_income"`
	TotalCurrentIncome    decimal.Decimal `json:"total_current_income"`
	TotalBudgeted         decimal.Decimal `json:"total_budgeted"`
	TotalCurrent          decimal.Decimal `json:"total_current"`
}

// Totals calculates the summary totals over all expenses and incomes
// matching the filters.
func Totals(db *gorm.DB, period string, monthID uint) (SummaryTotals, error) {
	expenses, err := Expenses(db, ExpenseFilter{Period: period, MonthID: monthID})
	if err != nil {
		return SummaryTotals{}, err
	}

	incomes, err := Incomes(db, IncomeFilter{Period: period, MonthID: monthID})
	if err != nil {
		return SummaryTotals{}, err
	}

	var totals SummaryTotals
	for _, expense := range expenses {
		totals.TotalBudgetedExpenses = totals.TotalBudgetedExpenses.Add(expense.Budget)
		totals.TotalCurrentExpenses = totals.TotalCurrentExpenses.Add(expense.Cost)
	}

	for _, income := range incomes {
		totals.TotalBudgetedIncome = totals.TotalBudgetedIncome.Add(income.Budget)
		totals.TotalCurrentIncome = totals.TotalCurrentIncome.Add(income.Amount)
	}

	totals.TotalBudgeted = totals.TotalBudgetedIncome.Sub(totals.TotalBudgetedExpenses)
	totals.TotalCurrent = totals.TotalCurrentIncome.Sub(totals.TotalCurrentExpenses)

	return totals, nil
}

// CategorySummary is the budget and actual cost of all expenses in one
// category.
type CategorySummary struct {
	Category   string          `json:"category"`
	Budget     decimal.Decimal `json:"budget"`
	Total      decimal.Decimal `json:"total"`
	OverBudget bool            `json:"over_budget"`
}

// CategorySummaries groups all expenses by category and sums budget and
// cost, ordered by category name.
func CategorySummaries(db *gorm.DB, monthID uint) ([]CategorySummary, error) {
	expenses, err := Expenses(db, ExpenseFilter{MonthID: monthID})
	if err != nil {
		return nil, err
	}

	byCategory := make(map[string]*CategorySummary)
	for _, expense := range expenses {
		summary, ok := byCategory[expense.Category.Name]
		if !ok {
			summary = &CategorySummary{Category: expense.Category.Name}
			byCategory[expense.Category.Name] = summary
		}

		summary.Budget = summary.Budget.Add(expense.Budget)
		summary.Total = summary.Total.Add(expense.Cost)
	}

	summaries := make([]CategorySummary, 0, len(byCategory))
	for _, summary := range byCategory {
		summary.OverBudget = summary.Total.GreaterThan(summary.Budget)
		summaries = append(summaries, *summary)
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Category < summaries[j].Category
	})

	return summaries, nil
}

// IncomeTypeSummary is the budget and actual amount of all incomes of one
// type.
type IncomeTypeSummary struct {
	IncomeType string          `json:"income_type"`
	Budget     decimal.Decimal `json:"budget"`
	Total      decimal.Decimal `json:"total"`
}

// IncomeTypeSummaries groups all incomes by income type and sums budget and
// amount, ordered by type name.
func IncomeTypeSummaries(db *gorm.DB, period string, monthID uint) ([]IncomeTypeSummary, error) {
	incomes, err := Incomes(db, IncomeFilter{Period: period, MonthID: monthID})
	if err != nil {
		return nil, err
	}

	byType := make(map[string]*IncomeTypeSummary)
	for _, income := range incomes {
		summary, ok := byType[income.IncomeType.Name]
		if !ok {
			summary = &IncomeTypeSummary{IncomeType: income.IncomeType.Name}
			byType[income.IncomeType.Name] = summary
		}

		summary.Budget = summary.Budget.Add(income.Budget)
		summary.Total = summary.Total.Add(income.Amount)
	}

	summaries := make([]IncomeTypeSummary, 0, len(byType))
	for _, summary := range byType {
		summaries = append(summaries, *summary)
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].IncomeType < summaries[j].IncomeType
	})

	return summaries, nil
}

// PeriodSummary is the income, expenses and difference of one period.
type PeriodSummary struct {
	Period        string          `json:"period"`
	Color         string          `json:"color"`
	TotalIncome   decimal.Decimal `json:"total_income"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	Difference    decimal.Decimal `json:"difference"`
}

// PeriodSummaryReport groups the totals by period and adds grand totals.
type PeriodSummaryReport struct {
	Periods              []PeriodSummary `json:"periods"`
	GrandTotalIncome     decimal.Decimal `json:"grand_total_income"`
	GrandTotalExpenses   decimal.Decimal `json:"grand_total_expenses"`
	GrandTotalDifference decimal.Decimal `json:"grand_total_difference"`
}

// PeriodSummaries calculates income and expense totals per period.
func PeriodSummaries(db *gorm.DB, monthID uint) (PeriodSummaryReport, error) {
	periods, err := Periods(db)
	if err != nil {
		return PeriodSummaryReport{}, err
	}

	report := PeriodSummaryReport{Periods: make([]PeriodSummary, 0, len(periods))}
	for _, period := range periods {
		expenses, err := Expenses(db, ExpenseFilter{Period: period.Name, MonthID: monthID})
		if err != nil {
			return PeriodSummaryReport{}, err
		}

		incomes, err := Incomes(db, IncomeFilter{Period: period.Name, MonthID: monthID})
		if err != nil {
			return PeriodSummaryReport{}, err
		}

		summary := PeriodSummary{Period: period.Name, Color: period.Color}
		for _, expense := range expenses {
			summary.TotalExpenses = summary.TotalExpenses.Add(expense.Cost)
		}

		for _, income := range incomes {
			summary.TotalIncome = summary.TotalIncome.Add(income.Amount)
		}

		summary.Difference = summary.TotalIncome.Sub(summary.TotalExpenses)
		report.Periods = append(report.Periods, summary)

		report.GrandTotalIncome = report.GrandTotalIncome.Add(summary.TotalIncome)
		report.GrandTotalExpenses = report.GrandTotalExpenses.Add(summary.TotalExpenses)
	}

	report.GrandTotalDifference = report.GrandTotalIncome.Sub(report.GrandTotalExpenses)

	return report, nil
}

// CategoryTrend is the spend of one category within one month.
type CategoryTrend struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Color    string          `json:"color"`
}

// MonthTrend is the financial outcome of one month.
type MonthTrend struct {
	MonthID       uint            `json:"month_id"`
	MonthName     string          `json:"month_name"`
	Year          int             `json:"year"`
	Month         int             `json:"month"`
	TotalIncome   decimal.Decimal `json:"total_income"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	NetSavings    decimal.Decimal `json:"net_savings"`
	SavingsRate   decimal.Decimal `json:"savings_rate"`
	Categories    []CategoryTrend `json:"categories"`
}

// MonthlyTrendReport lists the per-month trends oldest first plus averages
// over the reported months.
type MonthlyTrendReport struct {
	Months             []MonthTrend    `json:"months"`
	AverageIncome      decimal.Decimal `json:"average_income"`
	AverageExpenses    decimal.Decimal `json:"average_expenses"`
	AverageSavingsRate decimal.Decimal `json:"average_savings_rate"`
}

// MonthlyTrends reports income, expenses, savings and the per-category
// breakdown for the most recent limit months, oldest first. The savings rate
// average only counts months that had income.
func MonthlyTrends(db *gorm.DB, limit int) (MonthlyTrendReport, error) {
	months, err := Months(db)
	if err != nil {
		return MonthlyTrendReport{}, err
	}

	if len(months) > limit {
		months = months[:limit]
	}

	// Months returns most recent first, trends read oldest first.
	for i, j := 0, len(months)-1; i < j; i, j = i+1, j-1 {
		months[i], months[j] = months[j], months[i]
	}

	categories, err := Categories(db)
	if err != nil {
		return MonthlyTrendReport{}, err
	}

	colors := make(map[string]string, len(categories))
	for _, category := range categories {
		colors[category.Name] = category.Color
	}

	report := MonthlyTrendReport{Months: make([]MonthTrend, 0, len(months))}

	var totalIncome, totalExpenses, totalSavingsRate decimal.Decimal
	var monthsWithIncome int

	hundred := decimal.NewFromInt(100)
	for _, month := range months {
		expenses, err := Expenses(db, ExpenseFilter{MonthID: month.ID})
		if err != nil {
			return MonthlyTrendReport{}, err
		}

		incomes, err := Incomes(db, IncomeFilter{MonthID: month.ID})
		if err != nil {
			return MonthlyTrendReport{}, err
		}

		trend := MonthTrend{
			MonthID:   month.ID,
			MonthName: month.Name,
			Year:      month.Year,
			Month:     month.Month,
		}

		byCategory := make(map[string]decimal.Decimal)
		for _, expense := range expenses {
			trend.TotalExpenses = trend.TotalExpenses.Add(expense.Cost)
			byCategory[expense.Category.Name] = byCategory[expense.Category.Name].Add(expense.Cost)
		}

		for _, income := range incomes {
			trend.TotalIncome = trend.TotalIncome.Add(income.Amount)
		}

		trend.NetSavings = trend.TotalIncome.Sub(trend.TotalExpenses)
		if trend.TotalIncome.IsPositive() {
			trend.SavingsRate = trend.NetSavings.Div(trend.TotalIncome).Mul(hundred).Round(1)
			totalSavingsRate = totalSavingsRate.Add(trend.SavingsRate)
			monthsWithIncome++
		}

		trend.Categories = make([]CategoryTrend, 0, len(byCategory))
		for name, amount := range byCategory {
			color, ok := colors[name]
			if !ok {
				color = "#8b5cf6"
			}

			trend.Categories = append(trend.Categories, CategoryTrend{Category: name, Amount: amount, Color: color})
		}

		sort.Slice(trend.Categories, func(i, j int) bool {
			return trend.Categories[i].Category < trend.Categories[j].Category
		})

		report.Months = append(report.Months, trend)

		totalIncome = totalIncome.Add(trend.TotalIncome)
		totalExpenses = totalExpenses.Add(trend.TotalExpenses)
	}

	if len(report.Months) > 0 {
		count := decimal.NewFromInt(int64(len(report.Months)))
		report.AverageIncome = totalIncome.Div(count).Round(2)
		report.AverageExpenses = totalExpenses.Div(count).Round(2)
	}

	if monthsWithIncome > 0 {
		report.AverageSavingsRate = totalSavingsRate.Div(decimal.NewFromInt(int64(monthsWithIncome))).Round(1)
	}

	return report, nil
}
