package category

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/govalues/decimal"

	"github.com/hospfin/ledger/internal/finance"
	"github.com/hospfin/ledger/internal/service/stock"
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

func newService(store *memory.Store) Service {
	return New(store, stock.New(store))
}

func TestDerivedIncomeIsProfitPlusManualOnly(t *testing.T) {
	store := memory.New()
	optics := finance.Category{ID: uuid.New(), Name: "Optics Sales", Kind: finance.KindIncome, Code: finance.CodeGeneral, Active: true, DerivedFrom: finance.GroupOptics}
	store.SeedCategory(optics)

	// Raw sale proceeds posted by the sale subsystem. These must not be
	// summed: the profit recomputation already covers them.
	store.SeedTransaction(finance.LedgerTransaction{ID: uuid.New(), Type: finance.TxIncome, CategoryID: &optics.ID, Origin: finance.OriginSalePayment, Amount: amt(t, "1500"), Date: day(8)})
	// A hand-entered receipt in the same category still counts.
	store.SeedTransaction(finance.LedgerTransaction{ID: uuid.New(), Type: finance.TxIncome, CategoryID: &optics.ID, Origin: finance.OriginManual, Amount: amt(t, "100"), Date: day(9)})
	// Sale margin: 2 units at 100 over cost.
	store.SeedMovement(finance.StockMovement{ID: uuid.New(), Line: finance.LineFrame, SKU: "FR-1", Kind: finance.MovementBuy, Qty: 5, UnitPrice: amt(t, "400"), Date: day(2)})
	store.SeedMovement(finance.StockMovement{ID: uuid.New(), Line: finance.LineFrame, SKU: "FR-1", Kind: finance.MovementSell, Qty: 2, UnitPrice: amt(t, "500"), UnitCost: amt(t, "400"), Date: day(8)})

	rows, err := newService(store).IncomeTotals(context.Background(), day(1), day(31))
	if err != nil {
		t.Fatalf("IncomeTotals: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	mustEq(t, rows[0].Period, amt(t, "300"), "derived income period")
	mustEq(t, rows[0].Cumulative, amt(t, "300"), "derived income cumulative")
}

func TestPlainIncomeSumsAllOrigins(t *testing.T) {
	store := memory.New()
	operation := finance.Category{ID: uuid.New(), Name: "Operation Income", Kind: finance.KindIncome, Code: finance.CodeGeneral, Active: true}
	store.SeedCategory(operation)
	store.SeedTransaction(finance.LedgerTransaction{ID: uuid.New(), Type: finance.TxIncome, CategoryID: &operation.ID, Origin: finance.OriginManual, Amount: amt(t, "45000"), Date: day(5)})
	store.SeedTransaction(finance.LedgerTransaction{ID: uuid.New(), Type: finance.TxIncome, CategoryID: &operation.ID, Origin: finance.OriginSalePayment, Amount: amt(t, "5000"), Date: day(6)})

	rows, err := newService(store).IncomeTotals(context.Background(), day(1), day(31))
	if err != nil {
		t.Fatalf("IncomeTotals: %v", err)
	}
	mustEq(t, rows[0].Period, amt(t, "50000"), "income period")
}

func TestOperatingExpensesExcludeCapitalAndInactive(t *testing.T) {
	store := memory.New()
	salary := finance.Category{ID: uuid.New(), Name: "Salary", Kind: finance.KindExpense, Code: finance.CodeGeneral, Active: true}
	assets := finance.Category{ID: uuid.New(), Name: "Asset Purchase", Kind: finance.KindExpense, Code: finance.CodeAssetPurchase, Active: true, Capital: true}
	closed := finance.Category{ID: uuid.New(), Name: "Old Category", Kind: finance.KindExpense, Code: finance.CodeGeneral, Active: false}
	for _, c := range []finance.Category{salary, assets, closed} {
		store.SeedCategory(c)
	}
	store.SeedTransaction(finance.LedgerTransaction{ID: uuid.New(), Type: finance.TxExpense, CategoryID: &salary.ID, Origin: finance.OriginManual, Amount: amt(t, "30000"), Date: day(28)})
	store.SeedTransaction(finance.LedgerTransaction{ID: uuid.New(), Type: finance.TxExpense, CategoryID: &assets.ID, Origin: finance.OriginAssetPurchase, Amount: amt(t, "120000"), Date: day(3)})
	store.SeedTransaction(finance.LedgerTransaction{ID: uuid.New(), Type: finance.TxExpense, CategoryID: &closed.ID, Origin: finance.OriginManual, Amount: amt(t, "999"), Date: day(4)})

	rows, err := newService(store).OperatingExpenseTotals(context.Background(), day(1), day(31))
	if err != nil {
		t.Fatalf("OperatingExpenseTotals: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].Category.Name != "Salary" {
		t.Fatalf("unexpected category %q", rows[0].Category.Name)
	}
	mustEq(t, rows[0].Period, amt(t, "30000"), "operating expense")
}

func TestNegativeLegacyAmountsAggregateAbsolute(t *testing.T) {
	store := memory.New()
	salary := finance.Category{ID: uuid.New(), Name: "Salary", Kind: finance.KindExpense, Code: finance.CodeGeneral, Active: true}
	store.SeedCategory(salary)
	store.SeedTransaction(finance.LedgerTransaction{ID: uuid.New(), Type: finance.TxExpense, CategoryID: &salary.ID, Origin: finance.OriginManual, Amount: amt(t, "-2500"), Date: day(5)})
	store.SeedTransaction(finance.LedgerTransaction{ID: uuid.New(), Type: finance.TxExpense, CategoryID: &salary.ID, Origin: finance.OriginManual, Amount: amt(t, "1500"), Date: day(6)})

	rows, err := newService(store).OperatingExpenseTotals(context.Background(), day(1), day(31))
	if err != nil {
		t.Fatalf("OperatingExpenseTotals: %v", err)
	}
	mustEq(t, rows[0].Period, amt(t, "4000"), "expense period")
}

func TestSpecialExpensesGroupByDescription(t *testing.T) {
	store := memory.New()
	store.SeedTransaction(finance.LedgerTransaction{ID: uuid.New(), Type: finance.TxExpense, CategoryID: nil, Origin: finance.OriginManual, Amount: amt(t, "-1200"), Date: day(14), Description: "Rickshaw fare"})
	store.SeedTransaction(finance.LedgerTransaction{ID: uuid.New(), Type: finance.TxExpense, CategoryID: nil, Origin: finance.OriginManual, Amount: amt(t, "-800"), Date: day(20), Description: "Rickshaw fare"})
	store.SeedTransaction(finance.LedgerTransaction{ID: uuid.New(), Type: finance.TxExpense, CategoryID: nil, Origin: finance.OriginManual, Amount: amt(t, "-300"), Date: day(3), Description: "Courier"})
	// Positive-amount uncategorized rows are not in the special list.
	store.SeedTransaction(finance.LedgerTransaction{ID: uuid.New(), Type: finance.TxExpense, CategoryID: nil, Origin: finance.OriginManual, Amount: amt(t, "400"), Date: day(4), Description: "Misc"})

	rows, err := newService(store).SpecialExpenses(context.Background(), day(10), day(31))
	if err != nil {
		t.Fatalf("SpecialExpenses: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	// Name-sorted: Courier first, out of window so period is zero.
	if rows[0].Description != "Courier" {
		t.Fatalf("first row %q, want Courier", rows[0].Description)
	}
	mustEq(t, rows[0].Period, finance.Zero, "courier period")
	mustEq(t, rows[0].Cumulative, amt(t, "300"), "courier cumulative")
	mustEq(t, rows[1].Period, amt(t, "2000"), "rickshaw period")
	mustEq(t, rows[1].Cumulative, amt(t, "2000"), "rickshaw cumulative")
}
