// Package due derives point-in-time receivables and payables.
//
// Two strategies coexist deliberately. Payables rewind a vendor's stored
// current balance by the transactions dated after the cutoff; this is
// O(vendors) but assumes the current balance is trustworthy now. Receivables
// are summed directly from per-sale payment history; this is exact but scans
// all payments per sale. Unifying them would change the failure
// characteristics of each, so both are preserved.
package due

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/govalues/decimal"

	"github.com/hospfin/ledger/internal/finance"
)

// Repo defines read operations needed by the calculator.
type Repo interface {
	// Vendors returns the vendor accounts of a group with their stored
	// current balances.
	Vendors(ctx context.Context, group finance.VendorGroup) ([]finance.VendorAccount, error)
	// VendorNetAfter sums a vendor's payments and purchases dated strictly
	// after the cutoff.
	VendorNetAfter(ctx context.Context, vendorID uuid.UUID, after time.Time) (payments, purchases decimal.Decimal, err error)
	// Sales returns non-deleted sales of a group created at or before upTo.
	Sales(ctx context.Context, group finance.ProductGroup, upTo time.Time) ([]finance.SaleRecord, error)
	// SalePaymentsTotal sums ledger payments against a sale dated at or
	// before upTo.
	SalePaymentsTotal(ctx context.Context, saleID uuid.UUID, upTo time.Time) (decimal.Decimal, error)
	// Bookings returns operation bookings dated at or before upTo.
	Bookings(ctx context.Context, upTo time.Time) ([]finance.OperationBooking, error)
}

// Service derives historically accurate dues without stored snapshots.
type Service interface {
	// VendorDue rewinds each vendor's current balance to asOn and sums the
	// positive results. Advance (negative) balances clamp to zero.
	VendorDue(ctx context.Context, group finance.VendorGroup, asOn time.Time) (decimal.Decimal, error)
	// SaleDue sums outstanding sale balances as of asOn directly from
	// payment history.
	SaleDue(ctx context.Context, group finance.ProductGroup, asOn time.Time) (decimal.Decimal, error)
	// OperationReceivable sums due amounts of completed bookings only.
	OperationReceivable(ctx context.Context, asOn time.Time) (decimal.Decimal, error)
}

type service struct {
	repo Repo
}

func New(repo Repo) Service { return &service{repo: repo} }

func (s *service) VendorDue(ctx context.Context, group finance.VendorGroup, asOn time.Time) (decimal.Decimal, error) {
	vendors, err := s.repo.Vendors(ctx, group)
	if err != nil {
		return finance.Zero, err
	}
	total := finance.Zero
	for _, v := range vendors {
		balance := v.CurrentBalance
		if v.BalanceType == finance.BalanceAdvance {
			balance = balance.Neg()
		}
		payments, purchases, err := s.repo.VendorNetAfter(ctx, v.ID, asOn)
		if err != nil {
			return finance.Zero, err
		}
		// Undo everything that happened after the cutoff: payments since
		// then lowered the balance, purchases raised it.
		rewound := finance.Sub(finance.Add(balance, payments), purchases)
		total = finance.Add(total, finance.ClampNonNeg(rewound))
	}
	return total, nil
}

func (s *service) SaleDue(ctx context.Context, group finance.ProductGroup, asOn time.Time) (decimal.Decimal, error) {
	sales, err := s.repo.Sales(ctx, group, asOn)
	if err != nil {
		return finance.Zero, err
	}
	total := finance.Zero
	for _, sale := range sales {
		paid, err := s.paidAsOf(ctx, sale, asOn)
		if err != nil {
			return finance.Zero, err
		}
		due := finance.Sub(sale.TotalAmount, paid)
		total = finance.Add(total, finance.ClampNonNeg(due))
	}
	return total, nil
}

// paidAsOf picks the payment-table figure or the legacy advance column per
// the sale's migration flag, never both.
func (s *service) paidAsOf(ctx context.Context, sale finance.SaleRecord, asOn time.Time) (decimal.Decimal, error) {
	if sale.AdvanceSource == finance.AdvanceInLegacy {
		return sale.AdvancePayment, nil
	}
	return s.repo.SalePaymentsTotal(ctx, sale.ID, asOn)
}

func (s *service) OperationReceivable(ctx context.Context, asOn time.Time) (decimal.Decimal, error) {
	bookings, err := s.repo.Bookings(ctx, asOn)
	if err != nil {
		return finance.Zero, err
	}
	total := finance.Zero
	for _, b := range bookings {
		// Pending or scheduled bookings carry unearned advances; only
		// completed work is a receivable.
		if b.Status != finance.BookingCompleted {
			continue
		}
		total = finance.Add(total, finance.ClampNonNeg(b.DueAmount))
	}
	return total, nil
}
