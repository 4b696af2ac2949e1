package postgres

// Package postgres provides a pgx-backed read-only implementation of the
// ledger query interfaces used by the report services.
//
// It is intentionally small and explicit. The schema is owned by the
// hospital application that writes the ledger; this package focuses on
// mapping rows to domain entities and running the aggregate queries.
// Numeric sums are selected as text and parsed into decimals so no value
// ever passes through a float.

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/govalues/decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hospfin/ledger/internal/errs"
	"github.com/hospfin/ledger/internal/finance"
)

// Store holds a pgx connection pool. All methods are safe for concurrent
// use. For report consistency callers should use BeginReport and run every
// sub-aggregation on the returned Tx.
type Store struct {
	pool *pgxpool.Pool
}

// Open establishes a pgx pool using the provided connection string.
func Open(ctx context.Context, dsn string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return &Store{pool: pool}, nil
}

// Close releases the underlying pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Ready pings the pool to verify connectivity.
func (s *Store) Ready(ctx context.Context) error { return s.pool.Ping(ctx) }

// BeginReport opens a repeatable-read, read-only transaction so every
// aggregate within one report observes the same snapshot even while the
// hospital application keeps writing.
func (s *Store) BeginReport(ctx context.Context) (*Tx, error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: begin report snapshot: %v", errs.ErrUnavailable, err)
	}
	return &Tx{tx: tx}, nil
}

// Tx wraps a read-only pgx.Tx and serves the same query surface as Store.
type Tx struct{ tx pgx.Tx }

// Release ends the snapshot. Rollback is the natural end of a read-only
// transaction.
func (t *Tx) Release(ctx context.Context) { _ = t.tx.Rollback(ctx) }

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func parseDec(s string) (decimal.Decimal, error) {
	if s == "" {
		return finance.Zero, nil
	}
	return decimal.Parse(s)
}

// --- category reads ---

const categoriesSQL = `
        select id, name, kind, code, active, capital, coalesce(derived_from, '')
        from categories
        where kind = $1
        order by name asc
`

func categories(ctx context.Context, q querier, kind finance.CategoryKind) ([]finance.Category, error) {
	rows, err := q.Query(ctx, categoriesSQL, string(kind))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]finance.Category, 0)
	for rows.Next() {
		var c finance.Category
		var kindStr, codeStr, derived string
		if err := rows.Scan(&c.ID, &c.Name, &kindStr, &codeStr, &c.Active, &c.Capital, &derived); err != nil {
			return nil, err
		}
		c.Kind = finance.CategoryKind(kindStr)
		c.Code = finance.CategoryCode(codeStr)
		c.DerivedFrom = finance.ProductGroup(derived)
		out = append(out, c)
	}
	return out, rows.Err()
}

const categorySumSQL = `
        select coalesce(sum(abs(amount)), 0)::text
        from transactions
        where category_id = $1
          and date >= $2 and date <= $3
          and ($4::text[] is null or origin = any($4))
`

func categorySum(ctx context.Context, q querier, categoryID uuid.UUID, origins []finance.TxOrigin, from, to time.Time) (decimal.Decimal, error) {
	var originStrs []string
	for _, o := range origins {
		originStrs = append(originStrs, string(o))
	}
	var sum string
	if err := q.QueryRow(ctx, categorySumSQL, categoryID, from, to, originStrs).Scan(&sum); err != nil {
		return finance.Zero, err
	}
	return parseDec(sum)
}

const sumByCodeSQL = `
        select coalesce(sum(abs(t.amount)), 0)::text
        from transactions t
        join categories c on c.id = t.category_id
        where c.code = $1
          and t.date >= $2 and t.date <= $3
`

func sumByCode(ctx context.Context, q querier, code finance.CategoryCode, from, to time.Time) (decimal.Decimal, error) {
	var sum string
	if err := q.QueryRow(ctx, sumByCodeSQL, string(code), from, to).Scan(&sum); err != nil {
		return finance.Zero, err
	}
	return parseDec(sum)
}

const uncategorizedSQL = `
        select description, sum(abs(amount))::text
        from transactions
        where category_id is null
          and type = 'expense'
          and origin = 'manual'
          and amount < 0
          and date >= $1 and date <= $2
        group by description
        order by description asc
`

func uncategorizedExpenses(ctx context.Context, q querier, from, to time.Time) ([]finance.DescriptionSum, error) {
	rows, err := q.Query(ctx, uncategorizedSQL, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDescriptionSums(rows)
}

func scanDescriptionSums(rows pgx.Rows) ([]finance.DescriptionSum, error) {
	out := make([]finance.DescriptionSum, 0)
	for rows.Next() {
		var ds finance.DescriptionSum
		var amount string
		if err := rows.Scan(&ds.Description, &amount); err != nil {
			return nil, err
		}
		var err error
		if ds.Amount, err = parseDec(amount); err != nil {
			return nil, err
		}
		out = append(out, ds)
	}
	return out, rows.Err()
}

// --- stock reads ---

const movementsSQL = `
        select id, line, sku, kind, qty, unit_price::text, unit_cost::text, date
        from stock_movements
        where line = $1 and date <= $2
        order by date asc, id asc
`

func movements(ctx context.Context, q querier, line finance.ProductLine, to time.Time) ([]finance.StockMovement, error) {
	rows, err := q.Query(ctx, movementsSQL, string(line), to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]finance.StockMovement, 0)
	for rows.Next() {
		var m finance.StockMovement
		var lineStr, kindStr, price, cost string
		if err := rows.Scan(&m.ID, &lineStr, &m.SKU, &kindStr, &m.Qty, &price, &cost, &m.Date); err != nil {
			return nil, err
		}
		m.Line = finance.ProductLine(lineStr)
		m.Kind = finance.MovementKind(kindStr)
		if m.UnitPrice, err = parseDec(price); err != nil {
			return nil, err
		}
		if m.UnitCost, err = parseDec(cost); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// --- due reads ---

const vendorsSQL = `
        select id, name, vendor_group, current_balance::text, balance_type
        from vendors
        where vendor_group = $1
        order by name asc
`

func vendors(ctx context.Context, q querier, group finance.VendorGroup) ([]finance.VendorAccount, error) {
	rows, err := q.Query(ctx, vendorsSQL, string(group))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]finance.VendorAccount, 0)
	for rows.Next() {
		var v finance.VendorAccount
		var groupStr, balance, balanceType string
		if err := rows.Scan(&v.ID, &v.Name, &groupStr, &balance, &balanceType); err != nil {
			return nil, err
		}
		v.Group = finance.VendorGroup(groupStr)
		v.BalanceType = finance.BalanceType(balanceType)
		if v.CurrentBalance, err = parseDec(balance); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

const vendorNetAfterSQL = `
        select
            coalesce(sum(amount) filter (where kind = 'payment'), 0)::text,
            coalesce(sum(amount) filter (where kind = 'purchase'), 0)::text
        from vendor_transactions
        where vendor_id = $1 and date > $2
`

func vendorNetAfter(ctx context.Context, q querier, vendorID uuid.UUID, after time.Time) (decimal.Decimal, decimal.Decimal, error) {
	var paymentsStr, purchasesStr string
	if err := q.QueryRow(ctx, vendorNetAfterSQL, vendorID, after).Scan(&paymentsStr, &purchasesStr); err != nil {
		return finance.Zero, finance.Zero, err
	}
	payments, err := parseDec(paymentsStr)
	if err != nil {
		return finance.Zero, finance.Zero, err
	}
	purchases, err := parseDec(purchasesStr)
	if err != nil {
		return finance.Zero, finance.Zero, err
	}
	return payments, purchases, nil
}

const salesSQL = `
        select id, sale_group, total_amount::text, advance_payment::text, advance_source, created_at, deleted_at
        from sales
        where sale_group = $1 and created_at <= $2 and deleted_at is null
        order by created_at asc
`

func sales(ctx context.Context, q querier, group finance.ProductGroup, upTo time.Time) ([]finance.SaleRecord, error) {
	rows, err := q.Query(ctx, salesSQL, string(group), upTo)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]finance.SaleRecord, 0)
	for rows.Next() {
		var sale finance.SaleRecord
		var groupStr, total, advance, source string
		if err := rows.Scan(&sale.ID, &groupStr, &total, &advance, &source, &sale.CreatedAt, &sale.DeletedAt); err != nil {
			return nil, err
		}
		sale.Group = finance.ProductGroup(groupStr)
		sale.AdvanceSource = finance.AdvanceSource(source)
		if sale.TotalAmount, err = parseDec(total); err != nil {
			return nil, err
		}
		if sale.AdvancePayment, err = parseDec(advance); err != nil {
			return nil, err
		}
		out = append(out, sale)
	}
	return out, rows.Err()
}

const salePaymentsTotalSQL = `
        select coalesce(sum(amount), 0)::text
        from sale_payments
        where sale_id = $1 and date <= $2
`

func salePaymentsTotal(ctx context.Context, q querier, saleID uuid.UUID, upTo time.Time) (decimal.Decimal, error) {
	var sum string
	if err := q.QueryRow(ctx, salePaymentsTotalSQL, saleID, upTo).Scan(&sum); err != nil {
		return finance.Zero, err
	}
	return parseDec(sum)
}

const bookingsSQL = `
        select id, patient_name, status, due_amount::text, date
        from operation_bookings
        where date <= $1
        order by date asc
`

func bookings(ctx context.Context, q querier, upTo time.Time) ([]finance.OperationBooking, error) {
	rows, err := q.Query(ctx, bookingsSQL, upTo)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]finance.OperationBooking, 0)
	for rows.Next() {
		var b finance.OperationBooking
		var status, due string
		if err := rows.Scan(&b.ID, &b.PatientName, &status, &due, &b.Date); err != nil {
			return nil, err
		}
		b.Status = finance.BookingStatus(status)
		if b.DueAmount, err = parseDec(due); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// --- fund / bank / rent reads ---

const fundTotalsSQL = `
        select
            coalesce(sum(amount) filter (where flow = 'fund_in'), 0)::text,
            coalesce(sum(amount) filter (where flow = 'fund_out'), 0)::text
        from fund_transactions
        where date >= $1 and date <= $2
`

func fundTotals(ctx context.Context, q querier, from, to time.Time) (decimal.Decimal, decimal.Decimal, error) {
	var inStr, outStr string
	if err := q.QueryRow(ctx, fundTotalsSQL, from, to).Scan(&inStr, &outStr); err != nil {
		return finance.Zero, finance.Zero, err
	}
	in, err := parseDec(inStr)
	if err != nil {
		return finance.Zero, finance.Zero, err
	}
	out, err := parseDec(outStr)
	if err != nil {
		return finance.Zero, finance.Zero, err
	}
	return in, out, nil
}

const fundPurposeSumsSQL = `
        select purpose, sum(amount)::text
        from fund_transactions
        where flow = $1 and date >= $2 and date <= $3
        group by purpose
        order by purpose asc
`

func fundPurposeSums(ctx context.Context, q querier, flow finance.FundFlow, from, to time.Time) ([]finance.DescriptionSum, error) {
	rows, err := q.Query(ctx, fundPurposeSumsSQL, string(flow), from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDescriptionSums(rows)
}

const transactionTotalsSQL = `
        select
            coalesce(sum(abs(amount)) filter (where type = 'income'), 0)::text,
            coalesce(sum(abs(amount)) filter (where type = 'expense'), 0)::text
        from transactions
        where date >= $1 and date <= $2
`

func transactionTotals(ctx context.Context, q querier, from, to time.Time) (decimal.Decimal, decimal.Decimal, error) {
	var incomeStr, expenseStr string
	if err := q.QueryRow(ctx, transactionTotalsSQL, from, to).Scan(&incomeStr, &expenseStr); err != nil {
		return finance.Zero, finance.Zero, err
	}
	income, err := parseDec(incomeStr)
	if err != nil {
		return finance.Zero, finance.Zero, err
	}
	expense, err := parseDec(expenseStr)
	if err != nil {
		return finance.Zero, finance.Zero, err
	}
	return income, expense, nil
}

const rentAdvanceTotalSQL = `
        select coalesce(sum(amount), 0)::text
        from rent_advances
        where floor = $1 and date <= $2
`

func rentAdvanceTotal(ctx context.Context, q querier, floor finance.Floor, to time.Time) (decimal.Decimal, error) {
	var sum string
	if err := q.QueryRow(ctx, rentAdvanceTotalSQL, string(floor), to).Scan(&sum); err != nil {
		return finance.Zero, err
	}
	return parseDec(sum)
}

const rentDeductionTotalSQL = `
        select coalesce(sum(amount), 0)::text
        from rent_deductions
        where floor = $1 and date >= $2 and date <= $3
`

func rentDeductionTotal(ctx context.Context, q querier, floor finance.Floor, from, to time.Time) (decimal.Decimal, error) {
	var sum string
	if err := q.QueryRow(ctx, rentDeductionTotalSQL, string(floor), from, to).Scan(&sum); err != nil {
		return finance.Zero, err
	}
	return parseDec(sum)
}

const actualBalanceSQL = `select balance::text from account_balance limit 1`

func actualBankBalance(ctx context.Context, q querier) (decimal.Decimal, error) {
	var balance string
	err := q.QueryRow(ctx, actualBalanceSQL).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return finance.Zero, nil
	}
	if err != nil {
		return finance.Zero, err
	}
	return parseDec(balance)
}
