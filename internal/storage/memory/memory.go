package memory

// Package memory provides a simple in-memory ledger store used for
// development and tests. It implements every reader interface the report
// services depend on while keeping code paths easy to follow.

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/govalues/decimal"

	"github.com/hospfin/ledger/internal/finance"
)

// Store is an in-memory implementation of the ledger read interfaces.
// It is guarded by an RWMutex for concurrent reads/writes. Writes only
// happen through Seed helpers, so a report over a seeded store always sees
// one consistent state.
type Store struct {
	mu             sync.RWMutex
	categories     []finance.Category
	transactions   []finance.LedgerTransaction
	fundTxs        []finance.FundTransaction
	vendors        []finance.VendorAccount
	vendorTxs      []finance.VendorTransaction
	sales          []finance.SaleRecord
	salePayments   []finance.SalePayment
	movements      []finance.StockMovement
	bookings       []finance.OperationBooking
	rentAdvances   []finance.RentAdvance
	rentDeductions []finance.RentDeduction
	actualBalance  decimal.Decimal
}

// New constructs an empty in-memory store.
func New() *Store { return &Store{} }

// Seed helpers for local dev/tests.

func (s *Store) SeedCategory(c finance.Category) {
	s.mu.Lock()
	s.categories = append(s.categories, c)
	s.mu.Unlock()
}

func (s *Store) SeedTransaction(t finance.LedgerTransaction) {
	s.mu.Lock()
	s.transactions = append(s.transactions, t)
	s.mu.Unlock()
}

func (s *Store) SeedFundTransaction(t finance.FundTransaction) {
	s.mu.Lock()
	s.fundTxs = append(s.fundTxs, t)
	s.mu.Unlock()
}

func (s *Store) SeedVendor(v finance.VendorAccount) {
	s.mu.Lock()
	s.vendors = append(s.vendors, v)
	s.mu.Unlock()
}

func (s *Store) SeedVendorTransaction(t finance.VendorTransaction) {
	s.mu.Lock()
	s.vendorTxs = append(s.vendorTxs, t)
	s.mu.Unlock()
}

func (s *Store) SeedSale(sale finance.SaleRecord) {
	s.mu.Lock()
	s.sales = append(s.sales, sale)
	s.mu.Unlock()
}

func (s *Store) SeedSalePayment(p finance.SalePayment) {
	s.mu.Lock()
	s.salePayments = append(s.salePayments, p)
	s.mu.Unlock()
}

func (s *Store) SeedMovement(m finance.StockMovement) {
	s.mu.Lock()
	s.movements = append(s.movements, m)
	s.mu.Unlock()
}

func (s *Store) SeedBooking(b finance.OperationBooking) {
	s.mu.Lock()
	s.bookings = append(s.bookings, b)
	s.mu.Unlock()
}

func (s *Store) SeedRentAdvance(a finance.RentAdvance) {
	s.mu.Lock()
	s.rentAdvances = append(s.rentAdvances, a)
	s.mu.Unlock()
}

func (s *Store) SeedRentDeduction(d finance.RentDeduction) {
	s.mu.Lock()
	s.rentDeductions = append(s.rentDeductions, d)
	s.mu.Unlock()
}

// SetActualBalance sets the live running balance normally maintained by the
// cashier module.
func (s *Store) SetActualBalance(b decimal.Decimal) {
	s.mu.Lock()
	s.actualBalance = b
	s.mu.Unlock()
}

// Reset clears all seeded data.
func (s *Store) Reset() {
	s.mu.Lock()
	s.categories = nil
	s.transactions = nil
	s.fundTxs = nil
	s.vendors = nil
	s.vendorTxs = nil
	s.sales = nil
	s.salePayments = nil
	s.movements = nil
	s.bookings = nil
	s.rentAdvances = nil
	s.rentDeductions = nil
	s.actualBalance = finance.Zero
	s.mu.Unlock()
}

// Ready reports whether the store can serve queries; always yes in memory.
func (s *Store) Ready(context.Context) error { return nil }

// inWindow reports d in [from, to] inclusive.
func inWindow(d, from, to time.Time) bool {
	return !d.Before(from) && !d.After(to)
}

// --- category.Repo ---

func (s *Store) Categories(_ context.Context, kind finance.CategoryKind) ([]finance.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]finance.Category, 0)
	for _, c := range s.categories {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) CategorySum(_ context.Context, categoryID uuid.UUID, origins []finance.TxOrigin, from, to time.Time) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := finance.Zero
	for _, t := range s.transactions {
		if t.CategoryID == nil || *t.CategoryID != categoryID {
			continue
		}
		if !inWindow(t.Date, from, to) {
			continue
		}
		if !originMatch(t.Origin, origins) {
			continue
		}
		total = finance.Add(total, finance.Abs(t.Amount))
	}
	return total, nil
}

func (s *Store) SumByCode(_ context.Context, code finance.CategoryCode, from, to time.Time) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make(map[uuid.UUID]struct{})
	for _, c := range s.categories {
		if c.Code == code {
			ids[c.ID] = struct{}{}
		}
	}
	total := finance.Zero
	for _, t := range s.transactions {
		if t.CategoryID == nil {
			continue
		}
		if _, ok := ids[*t.CategoryID]; !ok {
			continue
		}
		if !inWindow(t.Date, from, to) {
			continue
		}
		total = finance.Add(total, finance.Abs(t.Amount))
	}
	return total, nil
}

func (s *Store) UncategorizedExpenses(_ context.Context, from, to time.Time) ([]finance.DescriptionSum, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	byDesc := make(map[string]decimal.Decimal)
	for _, t := range s.transactions {
		if t.CategoryID != nil || t.Type != finance.TxExpense {
			continue
		}
		if t.Origin != finance.OriginManual || !t.Amount.IsNeg() {
			continue
		}
		if !inWindow(t.Date, from, to) {
			continue
		}
		byDesc[t.Description] = finance.Add(byDesc[t.Description], finance.Abs(t.Amount))
	}
	return descriptionSums(byDesc), nil
}

func originMatch(o finance.TxOrigin, origins []finance.TxOrigin) bool {
	if len(origins) == 0 {
		return true
	}
	for _, want := range origins {
		if o == want {
			return true
		}
	}
	return false
}

func descriptionSums(byDesc map[string]decimal.Decimal) []finance.DescriptionSum {
	descs := make([]string, 0, len(byDesc))
	for d := range byDesc {
		descs = append(descs, d)
	}
	sort.Strings(descs)
	out := make([]finance.DescriptionSum, 0, len(descs))
	for _, d := range descs {
		out = append(out, finance.DescriptionSum{Description: d, Amount: byDesc[d]})
	}
	return out
}

// --- stock.Repo ---

func (s *Store) Movements(_ context.Context, line finance.ProductLine, to time.Time) ([]finance.StockMovement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]finance.StockMovement, 0)
	for _, m := range s.movements {
		if m.Line == line && !m.Date.After(to) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

// --- due.Repo ---

func (s *Store) Vendors(_ context.Context, group finance.VendorGroup) ([]finance.VendorAccount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]finance.VendorAccount, 0)
	for _, v := range s.vendors {
		if v.Group == group {
			out = append(out, v)
		}
	}
	return out, nil
}

func (s *Store) VendorNetAfter(_ context.Context, vendorID uuid.UUID, after time.Time) (decimal.Decimal, decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	payments, purchases := finance.Zero, finance.Zero
	for _, t := range s.vendorTxs {
		if t.VendorID != vendorID || !t.Date.After(after) {
			continue
		}
		switch t.Kind {
		case finance.VendorPayment:
			payments = finance.Add(payments, t.Amount)
		case finance.VendorPurchase:
			purchases = finance.Add(purchases, t.Amount)
		}
	}
	return payments, purchases, nil
}

func (s *Store) Sales(_ context.Context, group finance.ProductGroup, upTo time.Time) ([]finance.SaleRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]finance.SaleRecord, 0)
	for _, sale := range s.sales {
		if sale.Group != group || sale.CreatedAt.After(upTo) || sale.DeletedAt != nil {
			continue
		}
		out = append(out, sale)
	}
	return out, nil
}

func (s *Store) SalePaymentsTotal(_ context.Context, saleID uuid.UUID, upTo time.Time) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := finance.Zero
	for _, p := range s.salePayments {
		if p.SaleID == saleID && !p.Date.After(upTo) {
			total = finance.Add(total, p.Amount)
		}
	}
	return total, nil
}

func (s *Store) Bookings(_ context.Context, upTo time.Time) ([]finance.OperationBooking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]finance.OperationBooking, 0)
	for _, b := range s.bookings {
		if !b.Date.After(upTo) {
			out = append(out, b)
		}
	}
	return out, nil
}

// --- report.Reader extras ---

func (s *Store) FundTotals(_ context.Context, from, to time.Time) (decimal.Decimal, decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	in, out := finance.Zero, finance.Zero
	for _, t := range s.fundTxs {
		if !inWindow(t.Date, from, to) {
			continue
		}
		switch t.Flow {
		case finance.FundIn:
			in = finance.Add(in, t.Amount)
		case finance.FundOut:
			out = finance.Add(out, t.Amount)
		}
	}
	return in, out, nil
}

func (s *Store) FundPurposeSums(_ context.Context, flow finance.FundFlow, from, to time.Time) ([]finance.DescriptionSum, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	byPurpose := make(map[string]decimal.Decimal)
	for _, t := range s.fundTxs {
		if t.Flow != flow || !inWindow(t.Date, from, to) {
			continue
		}
		byPurpose[t.Purpose] = finance.Add(byPurpose[t.Purpose], t.Amount)
	}
	return descriptionSums(byPurpose), nil
}

func (s *Store) TransactionTotals(_ context.Context, from, to time.Time) (decimal.Decimal, decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	income, expense := finance.Zero, finance.Zero
	for _, t := range s.transactions {
		if !inWindow(t.Date, from, to) {
			continue
		}
		switch t.Type {
		case finance.TxIncome:
			income = finance.Add(income, finance.Abs(t.Amount))
		case finance.TxExpense:
			expense = finance.Add(expense, finance.Abs(t.Amount))
		}
	}
	return income, expense, nil
}

func (s *Store) RentAdvanceTotal(_ context.Context, floor finance.Floor, to time.Time) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := finance.Zero
	for _, a := range s.rentAdvances {
		if a.Floor == floor && !a.Date.After(to) {
			total = finance.Add(total, a.Amount)
		}
	}
	return total, nil
}

func (s *Store) RentDeductionTotal(_ context.Context, floor finance.Floor, from, to time.Time) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := finance.Zero
	for _, d := range s.rentDeductions {
		if d.Floor == floor && inWindow(d.Date, from, to) {
			total = finance.Add(total, d.Amount)
		}
	}
	return total, nil
}

func (s *Store) ActualBankBalance(context.Context) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.actualBalance, nil
}
