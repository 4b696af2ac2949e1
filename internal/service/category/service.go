// Package category aggregates ledger transactions per income or expense
// category for a date window, with the derived-income special cases.
package category

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/govalues/decimal"

	"github.com/hospfin/ledger/internal/finance"
)

// Repo defines read operations needed by the aggregator.
type Repo interface {
	// Categories returns categories of a kind, active first, ordered by name.
	Categories(ctx context.Context, kind finance.CategoryKind) ([]finance.Category, error)
	// CategorySum sums absolute transaction amounts for a category over
	// [from, to]. A nil origins slice means all origins.
	CategorySum(ctx context.Context, categoryID uuid.UUID, origins []finance.TxOrigin, from, to time.Time) (decimal.Decimal, error)
	// SumByCode sums absolute transaction amounts across all categories
	// tagged with the code over [from, to].
	SumByCode(ctx context.Context, code finance.CategoryCode, from, to time.Time) (decimal.Decimal, error)
	// UncategorizedExpenses groups manual, uncategorized, negative-amount
	// expense rows by description over [from, to].
	UncategorizedExpenses(ctx context.Context, from, to time.Time) ([]finance.DescriptionSum, error)
}

// ProfitSource supplies realized sale profit for derived income categories.
type ProfitSource interface {
	GroupProfit(ctx context.Context, group finance.ProductGroup, from, to time.Time) (decimal.Decimal, error)
}

// Row is one category line with the selected-window and since-inception sums.
type Row struct {
	Category   finance.Category
	Period     decimal.Decimal
	Cumulative decimal.Decimal
}

// SpecialRow is a description-grouped pseudo-category for uncategorized
// expenses.
type SpecialRow struct {
	Description string
	Period      decimal.Decimal
	Cumulative  decimal.Decimal
}

// Service computes per-category totals.
type Service interface {
	// IncomeTotals returns a row per active income category. Derived
	// categories report sale profit plus manual transactions only, so
	// sale proceeds are never counted both as profit and as receipts.
	IncomeTotals(ctx context.Context, from, to time.Time) ([]Row, error)
	// OperatingExpenseTotals returns a row per active non-capital expense
	// category. Capital categories are balance-sheet items, not period
	// expenses.
	OperatingExpenseTotals(ctx context.Context, from, to time.Time) ([]Row, error)
	// SpecialExpenses lists uncategorized expenses grouped by description.
	SpecialExpenses(ctx context.Context, from, to time.Time) ([]SpecialRow, error)
	// SumByCode exposes code-tagged sums for balance-sheet lines.
	SumByCode(ctx context.Context, code finance.CategoryCode, from, to time.Time) (decimal.Decimal, error)
}

type service struct {
	repo   Repo
	profit ProfitSource
}

func New(repo Repo, profit ProfitSource) Service {
	return &service{repo: repo, profit: profit}
}

// manualOnly restricts derived-income sums to hand-entered rows.
var manualOnly = []finance.TxOrigin{finance.OriginManual}

func (s *service) IncomeTotals(ctx context.Context, from, to time.Time) ([]Row, error) {
	cats, err := s.repo.Categories(ctx, finance.KindIncome)
	if err != nil {
		return nil, err
	}
	rows := make([]Row, 0, len(cats))
	for _, c := range cats {
		if !c.Active {
			continue
		}
		row, err := s.incomeRow(ctx, c, from, to)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *service) incomeRow(ctx context.Context, c finance.Category, from, to time.Time) (Row, error) {
	origins := []finance.TxOrigin(nil)
	if c.Derived() {
		origins = manualOnly
	}
	period, err := s.repo.CategorySum(ctx, c.ID, origins, from, to)
	if err != nil {
		return Row{}, err
	}
	cumulative, err := s.repo.CategorySum(ctx, c.ID, origins, finance.Inception, to)
	if err != nil {
		return Row{}, err
	}
	if c.Derived() {
		p, err := s.profit.GroupProfit(ctx, c.DerivedFrom, from, to)
		if err != nil {
			return Row{}, err
		}
		period = finance.Add(period, p)
		cp, err := s.profit.GroupProfit(ctx, c.DerivedFrom, finance.Inception, to)
		if err != nil {
			return Row{}, err
		}
		cumulative = finance.Add(cumulative, cp)
	}
	return Row{Category: c, Period: period, Cumulative: cumulative}, nil
}

func (s *service) OperatingExpenseTotals(ctx context.Context, from, to time.Time) ([]Row, error) {
	cats, err := s.repo.Categories(ctx, finance.KindExpense)
	if err != nil {
		return nil, err
	}
	rows := make([]Row, 0, len(cats))
	for _, c := range cats {
		if !c.Active || c.Capital {
			continue
		}
		period, err := s.repo.CategorySum(ctx, c.ID, nil, from, to)
		if err != nil {
			return nil, err
		}
		cumulative, err := s.repo.CategorySum(ctx, c.ID, nil, finance.Inception, to)
		if err != nil {
			return nil, err
		}
		rows = append(rows, Row{Category: c, Period: period, Cumulative: cumulative})
	}
	return rows, nil
}

func (s *service) SpecialExpenses(ctx context.Context, from, to time.Time) ([]SpecialRow, error) {
	period, err := s.repo.UncategorizedExpenses(ctx, from, to)
	if err != nil {
		return nil, err
	}
	cumulative, err := s.repo.UncategorizedExpenses(ctx, finance.Inception, to)
	if err != nil {
		return nil, err
	}
	byDesc := make(map[string]*SpecialRow)
	for _, ds := range cumulative {
		byDesc[ds.Description] = &SpecialRow{Description: ds.Description, Cumulative: ds.Amount}
	}
	for _, ds := range period {
		row, ok := byDesc[ds.Description]
		if !ok {
			// Period rows are a subset of cumulative rows; tolerate a
			// stray one rather than drop it.
			row = &SpecialRow{Description: ds.Description}
			byDesc[ds.Description] = row
		}
		row.Period = ds.Amount
	}
	descs := make([]string, 0, len(byDesc))
	for d := range byDesc {
		descs = append(descs, d)
	}
	sort.Strings(descs)
	rows := make([]SpecialRow, 0, len(descs))
	for _, d := range descs {
		rows = append(rows, *byDesc[d])
	}
	return rows, nil
}

func (s *service) SumByCode(ctx context.Context, code finance.CategoryCode, from, to time.Time) (decimal.Decimal, error) {
	return s.repo.SumByCode(ctx, code, from, to)
}
