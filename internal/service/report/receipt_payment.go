package report

import (
	"context"
	"sort"
	"time"

	"github.com/govalues/decimal"

	"github.com/hospfin/ledger/internal/finance"
)

// ReceiptPayment is the cash-basis period report combining fund and
// operating movements. The receipt side (opening + receipts) equals the
// payment side (payments + closing) by construction; both totals and their
// difference are exposed for diagnostic display rather than asserted.
type ReceiptPayment struct {
	From time.Time
	To   time.Time

	OpeningPeriod     decimal.Decimal
	OpeningCumulative decimal.Decimal
	// Adjustment is the residual between the live account balance and the
	// balance calculated from all recorded transactions: untracked manual
	// adjustments such as initial inventory capitalization. It is shown as
	// an explicit line, never dropped.
	Adjustment decimal.Decimal

	Receipts []Line
	Payments []Line

	ReceiptsTotalPeriod     decimal.Decimal
	ReceiptsTotalCumulative decimal.Decimal
	PaymentsTotalPeriod     decimal.Decimal
	PaymentsTotalCumulative decimal.Decimal
	ClosingPeriod           decimal.Decimal
	ClosingCumulative       decimal.Decimal

	ReceiptSideTotal decimal.Decimal
	PaymentSideTotal decimal.Decimal
	Difference       decimal.Decimal
	Balanced         bool
}

func (s *service) ReceiptPayment(ctx context.Context, from, to time.Time) (ReceiptPayment, error) {
	r, release, err := s.src.View(ctx)
	if err != nil {
		return ReceiptPayment{}, err
	}
	defer release()

	rp := ReceiptPayment{From: from, To: to}
	now := s.now()

	actual, err := r.ActualBankBalance(ctx)
	if err != nil {
		return ReceiptPayment{}, err
	}

	// Rewind the live balance back to the window start: everything dated
	// in [from, now] has not happened yet at the opening instant.
	sinceIn, sinceOut, err := r.FundTotals(ctx, from, now)
	if err != nil {
		return ReceiptPayment{}, err
	}
	sinceIncome, sinceExpense, err := r.TransactionTotals(ctx, from, now)
	if err != nil {
		return ReceiptPayment{}, err
	}
	netSince := finance.Add(finance.Sub(sinceIn, sinceOut), finance.Sub(sinceIncome, sinceExpense))
	rp.OpeningPeriod = finance.Sub(actual, netSince)

	// Cumulative opening: the genesis constant plus whatever the recorded
	// transactions cannot explain about the live balance.
	allIn, allOut, err := r.FundTotals(ctx, finance.Inception, to)
	if err != nil {
		return ReceiptPayment{}, err
	}
	allIncome, allExpense, err := r.TransactionTotals(ctx, finance.Inception, to)
	if err != nil {
		return ReceiptPayment{}, err
	}
	calculated := finance.Add(s.opening, finance.Add(finance.Sub(allIn, allOut), finance.Sub(allIncome, allExpense)))
	rp.Adjustment = finance.Sub(actual, calculated)
	rp.OpeningCumulative = finance.Add(s.opening, rp.Adjustment)

	if rp.Receipts, err = s.receiptLines(ctx, r, from, to); err != nil {
		return ReceiptPayment{}, err
	}
	if rp.Payments, err = s.paymentLines(ctx, r, from, to); err != nil {
		return ReceiptPayment{}, err
	}

	periodIn, periodOut, err := r.FundTotals(ctx, from, to)
	if err != nil {
		return ReceiptPayment{}, err
	}
	periodIncome, periodExpense, err := r.TransactionTotals(ctx, from, to)
	if err != nil {
		return ReceiptPayment{}, err
	}
	rp.ReceiptsTotalPeriod = finance.Add(periodIn, periodIncome)
	rp.PaymentsTotalPeriod = finance.Add(periodOut, periodExpense)
	rp.ReceiptsTotalCumulative = finance.Add(allIn, allIncome)
	rp.PaymentsTotalCumulative = finance.Add(allOut, allExpense)

	rp.ClosingPeriod = finance.Sub(finance.Add(rp.OpeningPeriod, rp.ReceiptsTotalPeriod), rp.PaymentsTotalPeriod)
	rp.ClosingCumulative = finance.Sub(finance.Add(rp.OpeningCumulative, rp.ReceiptsTotalCumulative), rp.PaymentsTotalCumulative)

	rp.ReceiptSideTotal = finance.Add(rp.OpeningPeriod, rp.ReceiptsTotalPeriod)
	rp.PaymentSideTotal = finance.Add(rp.PaymentsTotalPeriod, rp.ClosingPeriod)
	// Round before comparing so float display drift can't flag a
	// consistent ledger as unbalanced.
	rp.Difference = finance.Sub(finance.Round2(rp.ReceiptSideTotal), finance.Round2(rp.PaymentSideTotal))
	rp.Balanced = rp.Difference.IsZero()
	return rp, nil
}

// receiptLines lists fund-in purposes and income categories on a cash
// basis: raw receipts, no derived-profit recomputation.
func (s *service) receiptLines(ctx context.Context, r Reader, from, to time.Time) ([]Line, error) {
	lines, err := s.fundLines(ctx, r, finance.FundIn, from, to)
	if err != nil {
		return nil, err
	}
	catLines, err := s.categoryCashLines(ctx, r, finance.KindIncome, from, to)
	if err != nil {
		return nil, err
	}
	return append(lines, catLines...), nil
}

// paymentLines lists fund-out purposes and every expense category, capital
// ones included since cash went out either way, plus uncategorized payments.
func (s *service) paymentLines(ctx context.Context, r Reader, from, to time.Time) ([]Line, error) {
	lines, err := s.fundLines(ctx, r, finance.FundOut, from, to)
	if err != nil {
		return nil, err
	}
	catLines, err := s.categoryCashLines(ctx, r, finance.KindExpense, from, to)
	if err != nil {
		return nil, err
	}
	lines = append(lines, catLines...)

	period, err := r.UncategorizedExpenses(ctx, from, to)
	if err != nil {
		return nil, err
	}
	cumulative, err := r.UncategorizedExpenses(ctx, finance.Inception, to)
	if err != nil {
		return nil, err
	}
	return append(lines, mergeDescriptionLines(period, cumulative)...), nil
}

func (s *service) fundLines(ctx context.Context, r Reader, flow finance.FundFlow, from, to time.Time) ([]Line, error) {
	period, err := r.FundPurposeSums(ctx, flow, from, to)
	if err != nil {
		return nil, err
	}
	cumulative, err := r.FundPurposeSums(ctx, flow, finance.Inception, to)
	if err != nil {
		return nil, err
	}
	return mergeDescriptionLines(period, cumulative), nil
}

func (s *service) categoryCashLines(ctx context.Context, r Reader, kind finance.CategoryKind, from, to time.Time) ([]Line, error) {
	cats, err := r.Categories(ctx, kind)
	if err != nil {
		return nil, err
	}
	lines := make([]Line, 0, len(cats))
	for _, c := range cats {
		if !c.Active {
			continue
		}
		period, err := r.CategorySum(ctx, c.ID, nil, from, to)
		if err != nil {
			return nil, err
		}
		cumulative, err := r.CategorySum(ctx, c.ID, nil, finance.Inception, to)
		if err != nil {
			return nil, err
		}
		lines = append(lines, Line{Name: c.Name, Period: period, Cumulative: cumulative})
	}
	return lines, nil
}

// mergeDescriptionLines joins windowed and cumulative description sums into
// stable, name-sorted lines.
func mergeDescriptionLines(period, cumulative []finance.DescriptionSum) []Line {
	byName := make(map[string]*Line)
	for _, ds := range cumulative {
		byName[ds.Description] = &Line{Name: ds.Description, Cumulative: ds.Amount}
	}
	for _, ds := range period {
		ln, ok := byName[ds.Description]
		if !ok {
			ln = &Line{Name: ds.Description}
			byName[ds.Description] = ln
		}
		ln.Period = ds.Amount
	}
	names := make([]string, 0, len(byName))
	for n := range byName {
		names = append(names, n)
	}
	sort.Strings(names)
	out := make([]Line, 0, len(names))
	for _, n := range names {
		out = append(out, *byName[n])
	}
	return out
}
