package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/govalues/decimal"

	"github.com/hospfin/ledger/internal/finance"
	"github.com/hospfin/ledger/internal/service/report"
	"github.com/hospfin/ledger/internal/storage/memory"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

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

type errResp struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func setup(t *testing.T) (*memory.Store, http.Handler) {
	t.Helper()
	store := memory.New()

	operation := finance.Category{ID: uuid.New(), Name: "Operation Income", Kind: finance.KindIncome, Code: finance.CodeGeneral, Active: true}
	salary := finance.Category{ID: uuid.New(), Name: "Salary", Kind: finance.KindExpense, Code: finance.CodeGeneral, Active: true}
	store.SeedCategory(operation)
	store.SeedCategory(salary)
	store.SeedFundTransaction(finance.FundTransaction{ID: uuid.New(), Flow: finance.FundIn, Purpose: "Capital", Amount: amt(t, "1000"), Date: day(5)})
	store.SeedTransaction(finance.LedgerTransaction{ID: uuid.New(), Type: finance.TxIncome, CategoryID: &operation.ID, Origin: finance.OriginManual, Amount: amt(t, "500"), Date: day(10)})
	store.SeedTransaction(finance.LedgerTransaction{ID: uuid.New(), Type: finance.TxExpense, CategoryID: &salary.ID, Origin: finance.OriginManual, Amount: amt(t, "200"), Date: day(12)})
	store.SeedVendor(finance.VendorAccount{ID: uuid.New(), Name: "Frames Ltd", Group: finance.VendorOptics, CurrentBalance: amt(t, "400"), BalanceType: finance.BalanceDue})
	store.SeedMovement(finance.StockMovement{ID: uuid.New(), Line: finance.LineFrame, SKU: "FR-1", Kind: finance.MovementBuy, Qty: 10, UnitPrice: amt(t, "100"), Date: day(4)})
	store.SeedMovement(finance.StockMovement{ID: uuid.New(), Line: finance.LineFrame, SKU: "FR-1", Kind: finance.MovementSell, Qty: 3, UnitPrice: amt(t, "150"), UnitCost: amt(t, "100"), Date: day(9)})

	src := report.StaticSource{Reader: store}
	reports := report.New(src, finance.Zero)
	h := New(reports, src, "BDT", store.Ready, testLogger()).Handler()
	return store, h
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestGetBalanceSheet(t *testing.T) {
	_, h := setup(t)
	rec := get(t, h, "/v1/reports/balance-sheet?as_on_date=2025-01-31")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp balanceSheetResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Filters.AsOnDate != "2025-01-31" {
		t.Fatalf("filters echo %q", resp.Filters.AsOnDate)
	}
	if resp.Assets.BankBalance != 1300 {
		t.Fatalf("bank balance = %v, want 1300", resp.Assets.BankBalance)
	}
	if resp.Liabilities.OpticsVendorDue != 400 {
		t.Fatalf("optics vendor due = %v, want 400", resp.Liabilities.OpticsVendorDue)
	}
	if resp.Assets.TotalDisplay == "" {
		t.Fatal("expected a formatted total")
	}
}

func TestGetBalanceSheetRejectsBadDate(t *testing.T) {
	_, h := setup(t)
	rec := get(t, h, "/v1/reports/balance-sheet?as_on_date=31-01-2025")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var er errResp
	if err := json.Unmarshal(rec.Body.Bytes(), &er); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if er.Error == "" {
		t.Fatal("expected an error message")
	}
}

func TestGetIncomeExpenditureRejectsReversedRange(t *testing.T) {
	_, h := setup(t)
	rec := get(t, h, "/v1/reports/income-expenditure?from_date=2025-01-31&to_date=2025-01-01")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestGetReceiptPayment(t *testing.T) {
	store, h := setup(t)
	store.SetActualBalance(amt(t, "1300"))
	rec := get(t, h, "/v1/reports/receipt-payment?from_date=2025-01-01&to_date=2025-01-31")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp receiptPaymentResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.IsBalanced {
		t.Fatalf("expected balanced report, difference %v", resp.Difference)
	}
	if resp.ReceiptSideTotal != resp.PaymentSideTotal {
		t.Fatalf("side totals differ: %v vs %v", resp.ReceiptSideTotal, resp.PaymentSideTotal)
	}
}

func TestGetStockLine(t *testing.T) {
	_, h := setup(t)
	rec := get(t, h, "/v1/stock/frame?from_date=2025-01-01&to_date=2025-01-31")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp stockLineResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Line != "frame" || len(resp.Rows) != 1 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.Rows[0].AvailableQty != 7 {
		t.Fatalf("available qty = %d, want 7", resp.Rows[0].AvailableQty)
	}
}

func TestGetStockLineUnknown(t *testing.T) {
	_, h := setup(t)
	rec := get(t, h, "/v1/stock/contactlens")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestGetVendorDues(t *testing.T) {
	_, h := setup(t)
	rec := get(t, h, "/v1/dues/vendors?group=optics&as_on_date=2025-01-31")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp vendorDuesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Group != "optics" || resp.Due != 400 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestGetVendorDuesRequiresGroup(t *testing.T) {
	_, h := setup(t)
	rec := get(t, h, "/v1/dues/vendors?as_on_date=2025-01-31")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestHealthAndReadiness(t *testing.T) {
	_, h := setup(t)
	if rec := get(t, h, "/healthz"); rec.Code != http.StatusOK {
		t.Fatalf("healthz: expected 200, got %d", rec.Code)
	}
	if rec := get(t, h, "/readyz"); rec.Code != http.StatusOK {
		t.Fatalf("readyz: expected 200, got %d", rec.Code)
	}

	store := memory.New()
	src := report.StaticSource{Reader: store}
	failing := func(context.Context) error { return errors.New("connection refused") }
	down := New(report.New(src, finance.Zero), src, "BDT", failing, testLogger()).Handler()
	if rec := get(t, down, "/readyz"); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("readyz: expected 503, got %d", rec.Code)
	}
}
