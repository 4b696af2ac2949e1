package report

import (
	"context"
	"time"

	"github.com/govalues/decimal"

	"github.com/hospfin/ledger/internal/finance"
)

// Line is one report row with the selected-window and since-inception sums.
type Line struct {
	Name       string
	Period     decimal.Decimal
	Cumulative decimal.Decimal
}

// IncomeExpenditure reports operating income against operating expense for
// a period, with cumulative-from-inception columns alongside.
type IncomeExpenditure struct {
	From time.Time
	To   time.Time

	Income  []Line
	Expense []Line

	TotalIncomePeriod      decimal.Decimal
	TotalIncomeCumulative  decimal.Decimal
	TotalExpensePeriod     decimal.Decimal
	TotalExpenseCumulative decimal.Decimal
	SurplusPeriod          decimal.Decimal
	SurplusCumulative      decimal.Decimal
}

func (s *service) IncomeExpenditure(ctx context.Context, from, to time.Time) (IncomeExpenditure, error) {
	r, release, err := s.src.View(ctx)
	if err != nil {
		return IncomeExpenditure{}, err
	}
	defer release()

	calc := newCalculators(r)
	ie := IncomeExpenditure{From: from, To: to}

	incomeRows, err := calc.cat.IncomeTotals(ctx, from, to)
	if err != nil {
		return IncomeExpenditure{}, err
	}
	for _, row := range incomeRows {
		ie.Income = append(ie.Income, Line{Name: row.Category.Name, Period: row.Period, Cumulative: row.Cumulative})
		ie.TotalIncomePeriod = finance.Add(ie.TotalIncomePeriod, row.Period)
		ie.TotalIncomeCumulative = finance.Add(ie.TotalIncomeCumulative, row.Cumulative)
	}

	expenseRows, err := calc.cat.OperatingExpenseTotals(ctx, from, to)
	if err != nil {
		return IncomeExpenditure{}, err
	}
	for _, row := range expenseRows {
		ie.Expense = append(ie.Expense, Line{Name: row.Category.Name, Period: row.Period, Cumulative: row.Cumulative})
		ie.TotalExpensePeriod = finance.Add(ie.TotalExpensePeriod, row.Period)
		ie.TotalExpenseCumulative = finance.Add(ie.TotalExpenseCumulative, row.Cumulative)
	}

	// House rent is split by building floor: two independent sub-ledgers,
	// shown only when nonzero in either window.
	for _, f := range floors {
		period, err := r.RentDeductionTotal(ctx, f, from, to)
		if err != nil {
			return IncomeExpenditure{}, err
		}
		cumulative, err := r.RentDeductionTotal(ctx, f, finance.Inception, to)
		if err != nil {
			return IncomeExpenditure{}, err
		}
		if period.IsZero() && cumulative.IsZero() {
			continue
		}
		ie.Expense = append(ie.Expense, Line{Name: floorLabel(f), Period: period, Cumulative: cumulative})
		ie.TotalExpensePeriod = finance.Add(ie.TotalExpensePeriod, period)
		ie.TotalExpenseCumulative = finance.Add(ie.TotalExpenseCumulative, cumulative)
	}

	specials, err := calc.cat.SpecialExpenses(ctx, from, to)
	if err != nil {
		return IncomeExpenditure{}, err
	}
	for _, row := range specials {
		ie.Expense = append(ie.Expense, Line{Name: row.Description, Period: row.Period, Cumulative: row.Cumulative})
		ie.TotalExpensePeriod = finance.Add(ie.TotalExpensePeriod, row.Period)
		ie.TotalExpenseCumulative = finance.Add(ie.TotalExpenseCumulative, row.Cumulative)
	}

	ie.SurplusPeriod = finance.Sub(ie.TotalIncomePeriod, ie.TotalExpensePeriod)
	ie.SurplusCumulative = finance.Sub(ie.TotalIncomeCumulative, ie.TotalExpenseCumulative)
	return ie, nil
}
