// Package report assembles the three financial reports from the category,
// stock, and due calculators. Every report request opens one consistent
// read view so a slow report cannot observe a self-inconsistent ledger.
package report

import (
	"context"
	"time"

	"github.com/govalues/decimal"

	"github.com/hospfin/ledger/internal/finance"
	"github.com/hospfin/ledger/internal/service/category"
	"github.com/hospfin/ledger/internal/service/due"
	"github.com/hospfin/ledger/internal/service/stock"
)

// Reader is the full read surface a report computes over. A single Reader
// must present one transactional snapshot of the ledger.
type Reader interface {
	category.Repo
	stock.Repo
	due.Repo

	// FundTotals sums fund-in and fund-out over [from, to].
	FundTotals(ctx context.Context, from, to time.Time) (in, out decimal.Decimal, err error)
	// FundPurposeSums groups fund movements of a flow by purpose over [from, to].
	FundPurposeSums(ctx context.Context, flow finance.FundFlow, from, to time.Time) ([]finance.DescriptionSum, error)
	// TransactionTotals sums income and absolute expense over [from, to].
	TransactionTotals(ctx context.Context, from, to time.Time) (income, expense decimal.Decimal, err error)
	// RentAdvanceTotal sums rent prepayments for a floor dated at or before to.
	RentAdvanceTotal(ctx context.Context, floor finance.Floor, to time.Time) (decimal.Decimal, error)
	// RentDeductionTotal sums rent accruals for a floor over [from, to].
	RentDeductionTotal(ctx context.Context, floor finance.Floor, from, to time.Time) (decimal.Decimal, error)
	// ActualBankBalance is the live running balance maintained by the
	// cashier module, current as of now.
	ActualBankBalance(ctx context.Context) (decimal.Decimal, error)
}

// Source opens a consistent read view of the ledger store. The release
// function must be called exactly once when the report is done.
type Source interface {
	View(ctx context.Context) (Reader, func(), error)
}

// Service produces the balance sheet, income & expenditure, and receipt &
// payment reports.
type Service interface {
	BalanceSheet(ctx context.Context, asOn time.Time) (BalanceSheet, error)
	IncomeExpenditure(ctx context.Context, from, to time.Time) (IncomeExpenditure, error)
	ReceiptPayment(ctx context.Context, from, to time.Time) (ReceiptPayment, error)
}

type service struct {
	src     Source
	opening decimal.Decimal
	now     func() time.Time
}

// New constructs the report service. opening is the fixed historical
// constant for the ledger's genesis bank balance.
func New(src Source, opening decimal.Decimal) Service {
	return &service{src: src, opening: opening, now: time.Now}
}

// NewWithClock is used by tests that need a fixed "now" for the
// receipt & payment rewind.
func NewWithClock(src Source, opening decimal.Decimal, now func() time.Time) Service {
	return &service{src: src, opening: opening, now: now}
}

// calculators bundles the sub-services bound to one snapshot.
type calculators struct {
	cat category.Service
	stk stock.Service
	due due.Service
}

func newCalculators(r Reader) calculators {
	stk := stock.New(r)
	return calculators{
		cat: category.New(r, stk),
		stk: stk,
		due: due.New(r),
	}
}

// floorLabel names the per-floor rent rows in report output.
func floorLabel(f finance.Floor) string {
	switch f {
	case finance.FloorGround:
		return "House Rent (Ground Floor)"
	case finance.FloorFirst:
		return "House Rent (First Floor)"
	default:
		return "House Rent"
	}
}

var floors = []finance.Floor{finance.FloorGround, finance.FloorFirst}
