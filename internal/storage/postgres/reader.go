package postgres

// Store and Tx expose the same read surface; Store queries the pool
// directly, Tx queries inside its snapshot transaction.

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/govalues/decimal"

	"github.com/hospfin/ledger/internal/finance"
)

func (s *Store) Categories(ctx context.Context, kind finance.CategoryKind) ([]finance.Category, error) {
	return categories(ctx, s.pool, kind)
}

func (s *Store) CategorySum(ctx context.Context, categoryID uuid.UUID, origins []finance.TxOrigin, from, to time.Time) (decimal.Decimal, error) {
	return categorySum(ctx, s.pool, categoryID, origins, from, to)
}

func (s *Store) SumByCode(ctx context.Context, code finance.CategoryCode, from, to time.Time) (decimal.Decimal, error) {
	return sumByCode(ctx, s.pool, code, from, to)
}

func (s *Store) UncategorizedExpenses(ctx context.Context, from, to time.Time) ([]finance.DescriptionSum, error) {
	return uncategorizedExpenses(ctx, s.pool, from, to)
}

func (s *Store) Movements(ctx context.Context, line finance.ProductLine, to time.Time) ([]finance.StockMovement, error) {
	return movements(ctx, s.pool, line, to)
}

func (s *Store) Vendors(ctx context.Context, group finance.VendorGroup) ([]finance.VendorAccount, error) {
	return vendors(ctx, s.pool, group)
}

func (s *Store) VendorNetAfter(ctx context.Context, vendorID uuid.UUID, after time.Time) (decimal.Decimal, decimal.Decimal, error) {
	return vendorNetAfter(ctx, s.pool, vendorID, after)
}

func (s *Store) Sales(ctx context.Context, group finance.ProductGroup, upTo time.Time) ([]finance.SaleRecord, error) {
	return sales(ctx, s.pool, group, upTo)
}

func (s *Store) SalePaymentsTotal(ctx context.Context, saleID uuid.UUID, upTo time.Time) (decimal.Decimal, error) {
	return salePaymentsTotal(ctx, s.pool, saleID, upTo)
}

func (s *Store) Bookings(ctx context.Context, upTo time.Time) ([]finance.OperationBooking, error) {
	return bookings(ctx, s.pool, upTo)
}

func (s *Store) FundTotals(ctx context.Context, from, to time.Time) (decimal.Decimal, decimal.Decimal, error) {
	return fundTotals(ctx, s.pool, from, to)
}

func (s *Store) FundPurposeSums(ctx context.Context, flow finance.FundFlow, from, to time.Time) ([]finance.DescriptionSum, error) {
	return fundPurposeSums(ctx, s.pool, flow, from, to)
}

func (s *Store) TransactionTotals(ctx context.Context, from, to time.Time) (decimal.Decimal, decimal.Decimal, error) {
	return transactionTotals(ctx, s.pool, from, to)
}

func (s *Store) RentAdvanceTotal(ctx context.Context, floor finance.Floor, to time.Time) (decimal.Decimal, error) {
	return rentAdvanceTotal(ctx, s.pool, floor, to)
}

func (s *Store) RentDeductionTotal(ctx context.Context, floor finance.Floor, from, to time.Time) (decimal.Decimal, error) {
	return rentDeductionTotal(ctx, s.pool, floor, from, to)
}

func (s *Store) ActualBankBalance(ctx context.Context) (decimal.Decimal, error) {
	return actualBankBalance(ctx, s.pool)
}

func (t *Tx) Categories(ctx context.Context, kind finance.CategoryKind) ([]finance.Category, error) {
	return categories(ctx, t.tx, kind)
}

func (t *Tx) CategorySum(ctx context.Context, categoryID uuid.UUID, origins []finance.TxOrigin, from, to time.Time) (decimal.Decimal, error) {
	return categorySum(ctx, t.tx, categoryID, origins, from, to)
}

func (t *Tx) SumByCode(ctx context.Context, code finance.CategoryCode, from, to time.Time) (decimal.Decimal, error) {
	return sumByCode(ctx, t.tx, code, from, to)
}

func (t *Tx) UncategorizedExpenses(ctx context.Context, from, to time.Time) ([]finance.DescriptionSum, error) {
	return uncategorizedExpenses(ctx, t.tx, from, to)
}

func (t *Tx) Movements(ctx context.Context, line finance.ProductLine, to time.Time) ([]finance.StockMovement, error) {
	return movements(ctx, t.tx, line, to)
}

func (t *Tx) Vendors(ctx context.Context, group finance.VendorGroup) ([]finance.VendorAccount, error) {
	return vendors(ctx, t.tx, group)
}

func (t *Tx) VendorNetAfter(ctx context.Context, vendorID uuid.UUID, after time.Time) (decimal.Decimal, decimal.Decimal, error) {
	return vendorNetAfter(ctx, t.tx, vendorID, after)
}

func (t *Tx) Sales(ctx context.Context, group finance.ProductGroup, upTo time.Time) ([]finance.SaleRecord, error) {
	return sales(ctx, t.tx, group, upTo)
}

func (t *Tx) SalePaymentsTotal(ctx context.Context, saleID uuid.UUID, upTo time.Time) (decimal.Decimal, error) {
	return salePaymentsTotal(ctx, t.tx, saleID, upTo)
}

func (t *Tx) Bookings(ctx context.Context, upTo time.Time) ([]finance.OperationBooking, error) {
	return bookings(ctx, t.tx, upTo)
}

func (t *Tx) FundTotals(ctx context.Context, from, to time.Time) (decimal.Decimal, decimal.Decimal, error) {
	return fundTotals(ctx, t.tx, from, to)
}

func (t *Tx) FundPurposeSums(ctx context.Context, flow finance.FundFlow, from, to time.Time) ([]finance.DescriptionSum, error) {
	return fundPurposeSums(ctx, t.tx, flow, from, to)
}

func (t *Tx) TransactionTotals(ctx context.Context, from, to time.Time) (decimal.Decimal, decimal.Decimal, error) {
	return transactionTotals(ctx, t.tx, from, to)
}

func (t *Tx) RentAdvanceTotal(ctx context.Context, floor finance.Floor, to time.Time) (decimal.Decimal, error) {
	return rentAdvanceTotal(ctx, t.tx, floor, to)
}

func (t *Tx) RentDeductionTotal(ctx context.Context, floor finance.Floor, from, to time.Time) (decimal.Decimal, error) {
	return rentDeductionTotal(ctx, t.tx, floor, from, to)
}

func (t *Tx) ActualBankBalance(ctx context.Context) (decimal.Decimal, error) {
	return actualBankBalance(ctx, t.tx)
}
