package report

import (
	"context"
	"time"

	"github.com/govalues/decimal"

	"github.com/hospfin/ledger/internal/finance"
)

// BalanceSheetAssets are the point-in-time asset lines.
type BalanceSheetAssets struct {
	BankBalance         decimal.Decimal
	MedicineStockValue  decimal.Decimal
	OpticsStockValue    decimal.Decimal
	AdvanceHouseRent    decimal.Decimal
	FixedAssetsValue    decimal.Decimal
	HouseSecurity       decimal.Decimal
	OpticsReceivable    decimal.Decimal
	MedicineReceivable  decimal.Decimal
	OperationReceivable decimal.Decimal
	Total               decimal.Decimal
}

// BalanceSheetLiabilities are the point-in-time liability lines.
type BalanceSheetLiabilities struct {
	OpticsVendorDue   decimal.Decimal
	MedicineVendorDue decimal.Decimal
	AssetPurchaseDue  decimal.Decimal
	Total             decimal.Decimal
}

// BalanceSheet is the reconciled point-in-time statement. Difference is
// surfaced exactly as computed; a nonzero value is a data-quality signal,
// never forced to zero.
type BalanceSheet struct {
	AsOn        time.Time
	Assets      BalanceSheetAssets
	Liabilities BalanceSheetLiabilities
	Fund        decimal.Decimal
	NetProfit   decimal.Decimal
	Difference  decimal.Decimal
	Balanced    bool
}

func (s *service) BalanceSheet(ctx context.Context, asOn time.Time) (BalanceSheet, error) {
	r, release, err := s.src.View(ctx)
	if err != nil {
		return BalanceSheet{}, err
	}
	defer release()
	return s.balanceSheet(ctx, r, asOn)
}

func (s *service) balanceSheet(ctx context.Context, r Reader, asOn time.Time) (BalanceSheet, error) {
	calc := newCalculators(r)
	bs := BalanceSheet{AsOn: asOn}

	fundIn, fundOut, err := r.FundTotals(ctx, finance.Inception, asOn)
	if err != nil {
		return BalanceSheet{}, err
	}
	income, expense, err := r.TransactionTotals(ctx, finance.Inception, asOn)
	if err != nil {
		return BalanceSheet{}, err
	}

	a := &bs.Assets
	a.BankBalance = finance.Add(s.opening, finance.Sub(fundIn, fundOut))
	a.BankBalance = finance.Add(a.BankBalance, finance.Sub(income, expense))

	if a.MedicineStockValue, err = calc.stk.MedicineValue(ctx, asOn); err != nil {
		return BalanceSheet{}, err
	}
	if a.OpticsStockValue, err = calc.stk.OpticsValue(ctx, asOn); err != nil {
		return BalanceSheet{}, err
	}
	if a.AdvanceHouseRent, err = s.advanceRentRemaining(ctx, r, asOn); err != nil {
		return BalanceSheet{}, err
	}
	if a.FixedAssetsValue, err = calc.cat.SumByCode(ctx, finance.CodeAssetPurchase, finance.Inception, asOn); err != nil {
		return BalanceSheet{}, err
	}
	if a.HouseSecurity, err = calc.cat.SumByCode(ctx, finance.CodeHouseSecurity, finance.Inception, asOn); err != nil {
		return BalanceSheet{}, err
	}
	if a.OpticsReceivable, err = calc.due.SaleDue(ctx, finance.GroupOptics, asOn); err != nil {
		return BalanceSheet{}, err
	}
	if a.MedicineReceivable, err = calc.due.SaleDue(ctx, finance.GroupMedicine, asOn); err != nil {
		return BalanceSheet{}, err
	}
	if a.OperationReceivable, err = calc.due.OperationReceivable(ctx, asOn); err != nil {
		return BalanceSheet{}, err
	}
	for _, v := range []decimal.Decimal{
		a.BankBalance, a.MedicineStockValue, a.OpticsStockValue,
		a.AdvanceHouseRent, a.FixedAssetsValue, a.HouseSecurity,
		a.OpticsReceivable, a.MedicineReceivable, a.OperationReceivable,
	} {
		a.Total = finance.Add(a.Total, v)
	}

	l := &bs.Liabilities
	if l.OpticsVendorDue, err = calc.due.VendorDue(ctx, finance.VendorOptics, asOn); err != nil {
		return BalanceSheet{}, err
	}
	if l.MedicineVendorDue, err = calc.due.VendorDue(ctx, finance.VendorMedicine, asOn); err != nil {
		return BalanceSheet{}, err
	}
	if l.AssetPurchaseDue, err = calc.due.VendorDue(ctx, finance.VendorFixedAsset, asOn); err != nil {
		return BalanceSheet{}, err
	}
	l.Total = finance.Add(finance.Add(l.OpticsVendorDue, l.MedicineVendorDue), l.AssetPurchaseDue)

	bs.Fund = finance.Sub(fundIn, fundOut)

	if bs.NetProfit, err = s.netProfit(ctx, r, calc, asOn); err != nil {
		return BalanceSheet{}, err
	}

	claims := finance.Add(finance.Add(l.Total, bs.Fund), bs.NetProfit)
	bs.Difference = finance.Sub(a.Total, claims)
	bs.Balanced = finance.Round2(bs.Difference).IsZero()
	return bs, nil
}

// advanceRentRemaining is prepaid rent not yet accrued: per-floor advances
// minus deductions, both up to the cutoff.
func (s *service) advanceRentRemaining(ctx context.Context, r Reader, asOn time.Time) (decimal.Decimal, error) {
	total := finance.Zero
	for _, f := range floors {
		paid, err := r.RentAdvanceTotal(ctx, f, asOn)
		if err != nil {
			return finance.Zero, err
		}
		accrued, err := r.RentDeductionTotal(ctx, f, finance.Inception, asOn)
		if err != nil {
			return finance.Zero, err
		}
		total = finance.Add(total, finance.Sub(paid, accrued))
	}
	return total, nil
}

// netProfit is cumulative operating income minus cumulative operating
// expense minus accrued rent. Derived income categories already report sale
// profit; capital categories are excluded from expense.
func (s *service) netProfit(ctx context.Context, r Reader, calc calculators, asOn time.Time) (decimal.Decimal, error) {
	incomeRows, err := calc.cat.IncomeTotals(ctx, finance.Inception, asOn)
	if err != nil {
		return finance.Zero, err
	}
	expenseRows, err := calc.cat.OperatingExpenseTotals(ctx, finance.Inception, asOn)
	if err != nil {
		return finance.Zero, err
	}
	specials, err := calc.cat.SpecialExpenses(ctx, finance.Inception, asOn)
	if err != nil {
		return finance.Zero, err
	}

	profit := finance.Zero
	for _, row := range incomeRows {
		profit = finance.Add(profit, row.Cumulative)
	}
	for _, row := range expenseRows {
		profit = finance.Sub(profit, row.Cumulative)
	}
	for _, row := range specials {
		profit = finance.Sub(profit, row.Cumulative)
	}
	for _, f := range floors {
		accrued, err := r.RentDeductionTotal(ctx, f, finance.Inception, asOn)
		if err != nil {
			return finance.Zero, err
		}
		profit = finance.Sub(profit, accrued)
	}
	return profit, nil
}
