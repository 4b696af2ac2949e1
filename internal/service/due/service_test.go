package due

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/govalues/decimal"

	"github.com/hospfin/ledger/internal/finance"
	"github.com/hospfin/ledger/internal/storage/memory"
)

func day(d int) time.Time {
	return time.Date(2025, time.January, d, 12, 0, 0, 0, time.UTC)
}

func amt(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.Parse(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return d
}

func mustEq(t *testing.T, got, want decimal.Decimal, what string) {
	t.Helper()
	if got.Cmp(want) != 0 {
		t.Fatalf("%s = %s, want %s", what, got, want)
	}
}

func TestVendorDueRewindsTransactionsAfterCutoff(t *testing.T) {
	store := memory.New()
	v := finance.VendorAccount{ID: uuid.New(), Name: "Frames Ltd", Group: finance.VendorOptics, CurrentBalance: amt(t, "1000"), BalanceType: finance.BalanceDue}
	store.SeedVendor(v)
	// After the cutoff: a payment of 200 and a purchase of 500. Rewinding
	// re-adds the payment and removes the purchase.
	store.SeedVendorTransaction(finance.VendorTransaction{ID: uuid.New(), VendorID: v.ID, Kind: finance.VendorPayment, Amount: amt(t, "200"), Date: day(20)})
	store.SeedVendorTransaction(finance.VendorTransaction{ID: uuid.New(), VendorID: v.ID, Kind: finance.VendorPurchase, Amount: amt(t, "500"), Date: day(25)})

	svc := New(store)
	due, err := svc.VendorDue(context.Background(), finance.VendorOptics, day(15))
	if err != nil {
		t.Fatalf("VendorDue: %v", err)
	}
	mustEq(t, due, amt(t, "700"), "vendor due")
}

func TestVendorDueWithNoLaterTransactionsIsCurrentBalance(t *testing.T) {
	store := memory.New()
	store.SeedVendor(finance.VendorAccount{ID: uuid.New(), Name: "A", Group: finance.VendorMedicine, CurrentBalance: amt(t, "800"), BalanceType: finance.BalanceDue})
	store.SeedVendor(finance.VendorAccount{ID: uuid.New(), Name: "B", Group: finance.VendorMedicine, CurrentBalance: amt(t, "150"), BalanceType: finance.BalanceDue})

	svc := New(store)
	due, err := svc.VendorDue(context.Background(), finance.VendorMedicine, day(31))
	if err != nil {
		t.Fatalf("VendorDue: %v", err)
	}
	mustEq(t, due, amt(t, "950"), "vendor due")
}

func TestVendorDueShiftsByOneDayDelta(t *testing.T) {
	store := memory.New()
	v := finance.VendorAccount{ID: uuid.New(), Name: "Frames Ltd", Group: finance.VendorOptics, CurrentBalance: amt(t, "1000"), BalanceType: finance.BalanceDue}
	store.SeedVendor(v)
	store.SeedVendorTransaction(finance.VendorTransaction{ID: uuid.New(), VendorID: v.ID, Kind: finance.VendorPurchase, Amount: amt(t, "300"), Date: day(16)})

	svc := New(store)
	before, err := svc.VendorDue(context.Background(), finance.VendorOptics, day(15))
	if err != nil {
		t.Fatalf("VendorDue: %v", err)
	}
	after, err := svc.VendorDue(context.Background(), finance.VendorOptics, day(16))
	if err != nil {
		t.Fatalf("VendorDue: %v", err)
	}
	// Moving the cutoff over Jan 16 changes the result by exactly that
	// day's purchase.
	mustEq(t, after, amt(t, "1000"), "due including the purchase")
	mustEq(t, before, amt(t, "700"), "due before the purchase")
}

func TestVendorAdvanceBalanceClampsToZero(t *testing.T) {
	store := memory.New()
	store.SeedVendor(finance.VendorAccount{ID: uuid.New(), Name: "Prepaid Ltd", Group: finance.VendorOptics, CurrentBalance: amt(t, "300"), BalanceType: finance.BalanceAdvance})
	store.SeedVendor(finance.VendorAccount{ID: uuid.New(), Name: "Owed Ltd", Group: finance.VendorOptics, CurrentBalance: amt(t, "400"), BalanceType: finance.BalanceDue})

	svc := New(store)
	due, err := svc.VendorDue(context.Background(), finance.VendorOptics, day(31))
	if err != nil {
		t.Fatalf("VendorDue: %v", err)
	}
	// The prepaid vendor contributes zero, not minus 300.
	mustEq(t, due, amt(t, "400"), "vendor due")
}

func TestSaleDueNeverDoubleCountsAdvance(t *testing.T) {
	store := memory.New()

	// Migrated sale: the advance lives in the payments table. The stale
	// legacy column must be ignored even though it is populated.
	migrated := finance.SaleRecord{ID: uuid.New(), Group: finance.GroupOptics, TotalAmount: amt(t, "5000"), AdvancePayment: amt(t, "1000"), AdvanceSource: finance.AdvanceInLedger, CreatedAt: day(3)}
	store.SeedSale(migrated)
	store.SeedSalePayment(finance.SalePayment{ID: uuid.New(), SaleID: migrated.ID, Amount: amt(t, "1000"), Date: day(3), Advance: true})

	// Legacy sale: only the advance column counts.
	legacy := finance.SaleRecord{ID: uuid.New(), Group: finance.GroupOptics, TotalAmount: amt(t, "3000"), AdvancePayment: amt(t, "500"), AdvanceSource: finance.AdvanceInLegacy, CreatedAt: day(5)}
	store.SeedSale(legacy)

	svc := New(store)
	due, err := svc.SaleDue(context.Background(), finance.GroupOptics, day(31))
	if err != nil {
		t.Fatalf("SaleDue: %v", err)
	}
	// 4000 outstanding on the migrated sale, 2500 on the legacy one.
	mustEq(t, due, amt(t, "6500"), "sale due")
}

func TestSaleDueExcludesDeletedAndLaterSales(t *testing.T) {
	store := memory.New()
	deleted := day(10)
	store.SeedSale(finance.SaleRecord{ID: uuid.New(), Group: finance.GroupMedicine, TotalAmount: amt(t, "900"), AdvanceSource: finance.AdvanceInLedger, CreatedAt: day(2), DeletedAt: &deleted})
	store.SeedSale(finance.SaleRecord{ID: uuid.New(), Group: finance.GroupMedicine, TotalAmount: amt(t, "700"), AdvanceSource: finance.AdvanceInLedger, CreatedAt: day(20)})
	store.SeedSale(finance.SaleRecord{ID: uuid.New(), Group: finance.GroupMedicine, TotalAmount: amt(t, "400"), AdvanceSource: finance.AdvanceInLedger, CreatedAt: day(4)})

	svc := New(store)
	due, err := svc.SaleDue(context.Background(), finance.GroupMedicine, day(15))
	if err != nil {
		t.Fatalf("SaleDue: %v", err)
	}
	mustEq(t, due, amt(t, "400"), "sale due")
}

func TestOperationReceivableCountsCompletedOnly(t *testing.T) {
	store := memory.New()
	store.SeedBooking(finance.OperationBooking{ID: uuid.New(), PatientName: "Done", Status: finance.BookingCompleted, DueAmount: amt(t, "5000"), Date: day(5)})
	store.SeedBooking(finance.OperationBooking{ID: uuid.New(), PatientName: "Pending", Status: finance.BookingPending, DueAmount: amt(t, "3000"), Date: day(6)})
	store.SeedBooking(finance.OperationBooking{ID: uuid.New(), PatientName: "Scheduled", Status: finance.BookingScheduled, DueAmount: amt(t, "2000"), Date: day(7)})

	svc := New(store)
	got, err := svc.OperationReceivable(context.Background(), day(31))
	if err != nil {
		t.Fatalf("OperationReceivable: %v", err)
	}
	mustEq(t, got, amt(t, "5000"), "operation receivable")
}
