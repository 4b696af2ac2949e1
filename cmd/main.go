package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/govalues/decimal"

	"github.com/hospfin/ledger/internal/config"
	"github.com/hospfin/ledger/internal/finance"
	"github.com/hospfin/ledger/internal/httpapi"
	"github.com/hospfin/ledger/internal/jobs"
	"github.com/hospfin/ledger/internal/scheduler"
	"github.com/hospfin/ledger/internal/service/report"
	"github.com/hospfin/ledger/internal/storage/memory"
	pgstore "github.com/hospfin/ledger/internal/storage/postgres"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}

	logger := buildLogger(cfg.LogLevel, cfg.LogFormat)
	slog.SetDefault(logger)

	var src report.Source
	var ready func(context.Context) error
	var closeFn func()

	if cfg.DatabaseURL != "" {
		pg, err := pgstore.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to connect to postgres", "err", err)
			os.Exit(1)
		}
		src = pgstore.NewSource(pg)
		ready = pg.Ready
		closeFn = pg.Close
		logger.Info("storage backend: postgres")
	} else {
		store := memory.New()
		if cfg.DevSeed {
			seedDev(store)
			logger.Info("dev seed applied")
		}
		src = report.StaticSource{Reader: store}
		ready = store.Ready
		logger.Info("storage backend: memory")
	}

	reports := report.New(src, cfg.OpeningBalance)
	srv := httpapi.New(reports, src, cfg.Currency, ready, logger)

	sched := scheduler.New(logger)
	reconciler := jobs.NewReconciler(reports, logger)
	if err := sched.Add(scheduler.Job{
		Name:     "reconcile",
		Schedule: cfg.ReconcileSchedule,
		Run:      reconciler.Run,
	}); err != nil {
		logger.Error("invalid reconcile schedule", "schedule", cfg.ReconcileSchedule, "err", err)
		os.Exit(1)
	}
	sched.Start()

	httpSrv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Handler(),
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("reporting service listening", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(ctxShutdown); err != nil {
			logger.Error("server shutdown error", "err", err)
		}
	case err := <-errCh:
		logger.Error("server error", "err", err)
	}

	sched.Stop()
	if closeFn != nil {
		closeFn()
	}
}

// seedDev loads a small data set covering every report surface so the
// endpoints return non-trivial figures out of the box.
func seedDev(store *memory.Store) {
	day := func(d int) time.Time {
		return time.Date(2025, time.January, d, 12, 0, 0, 0, time.UTC)
	}
	amt := func(s string) decimal.Decimal { return decimal.MustParse(s) }

	optics := finance.Category{ID: uuid.New(), Name: "Optics Sales", Kind: finance.KindIncome, Code: finance.CodeGeneral, Active: true, DerivedFrom: finance.GroupOptics}
	medicine := finance.Category{ID: uuid.New(), Name: "Medicine Sales", Kind: finance.KindIncome, Code: finance.CodeGeneral, Active: true, DerivedFrom: finance.GroupMedicine}
	operation := finance.Category{ID: uuid.New(), Name: "Operation Income", Kind: finance.KindIncome, Code: finance.CodeGeneral, Active: true}
	salary := finance.Category{ID: uuid.New(), Name: "Staff Salary", Kind: finance.KindExpense, Code: finance.CodeGeneral, Active: true}
	electricity := finance.Category{ID: uuid.New(), Name: "Electricity", Kind: finance.KindExpense, Code: finance.CodeGeneral, Active: true}
	assets := finance.Category{ID: uuid.New(), Name: "Asset Purchase", Kind: finance.KindExpense, Code: finance.CodeAssetPurchase, Active: true, Capital: true}
	security := finance.Category{ID: uuid.New(), Name: "House Security", Kind: finance.KindExpense, Code: finance.CodeHouseSecurity, Active: true, Capital: true}
	for _, c := range []finance.Category{optics, medicine, operation, salary, electricity, assets, security} {
		store.SeedCategory(c)
	}

	store.SeedFundTransaction(finance.FundTransaction{ID: uuid.New(), Flow: finance.FundIn, Purpose: "Founder capital", Amount: amt("500000"), Date: day(1)})
	store.SeedFundTransaction(finance.FundTransaction{ID: uuid.New(), Flow: finance.FundOut, Purpose: "Founder drawing", Amount: amt("20000"), Date: day(20)})

	store.SeedTransaction(finance.LedgerTransaction{ID: uuid.New(), Type: finance.TxIncome, CategoryID: &operation.ID, Origin: finance.OriginManual, Amount: amt("45000"), Date: day(5), Description: "Cataract operations"})
	store.SeedTransaction(finance.LedgerTransaction{ID: uuid.New(), Type: finance.TxExpense, CategoryID: &salary.ID, Origin: finance.OriginManual, Amount: amt("30000"), Date: day(28), Description: "January salaries"})
	store.SeedTransaction(finance.LedgerTransaction{ID: uuid.New(), Type: finance.TxExpense, CategoryID: &electricity.ID, Origin: finance.OriginManual, Amount: amt("4500"), Date: day(10), Description: "January bill"})
	store.SeedTransaction(finance.LedgerTransaction{ID: uuid.New(), Type: finance.TxExpense, CategoryID: &assets.ID, Origin: finance.OriginAssetPurchase, Amount: amt("120000"), Date: day(3), Description: "Slit lamp"})
	store.SeedTransaction(finance.LedgerTransaction{ID: uuid.New(), Type: finance.TxExpense, CategoryID: &security.ID, Origin: finance.OriginManual, Amount: amt("50000"), Date: day(2), Description: "Landlord security deposit"})
	store.SeedTransaction(finance.LedgerTransaction{ID: uuid.New(), Type: finance.TxExpense, CategoryID: nil, Origin: finance.OriginManual, Amount: amt("-1200"), Date: day(14), Description: "Rickshaw fare"})

	opticsVendor := finance.VendorAccount{ID: uuid.New(), Name: "Dhaka Frames Ltd", Group: finance.VendorOptics, CurrentBalance: amt("15000"), BalanceType: finance.BalanceDue}
	medVendor := finance.VendorAccount{ID: uuid.New(), Name: "Square Pharma Depot", Group: finance.VendorMedicine, CurrentBalance: amt("8000"), BalanceType: finance.BalanceDue}
	store.SeedVendor(opticsVendor)
	store.SeedVendor(medVendor)
	store.SeedVendorTransaction(finance.VendorTransaction{ID: uuid.New(), VendorID: opticsVendor.ID, Kind: finance.VendorPurchase, Amount: amt("25000"), Date: day(4)})
	store.SeedVendorTransaction(finance.VendorTransaction{ID: uuid.New(), VendorID: opticsVendor.ID, Kind: finance.VendorPayment, Amount: amt("10000"), Date: day(18)})

	sale := finance.SaleRecord{ID: uuid.New(), Group: finance.GroupOptics, TotalAmount: amt("6000"), AdvanceSource: finance.AdvanceInLedger, CreatedAt: day(8)}
	store.SeedSale(sale)
	store.SeedSalePayment(finance.SalePayment{ID: uuid.New(), SaleID: sale.ID, Amount: amt("2000"), Date: day(8), Advance: true})

	store.SeedMovement(finance.StockMovement{ID: uuid.New(), Line: finance.LineFrame, SKU: "FR-CLASSIC", Kind: finance.MovementBuy, Qty: 10, UnitPrice: amt("800"), Date: day(4)})
	store.SeedMovement(finance.StockMovement{ID: uuid.New(), Line: finance.LineFrame, SKU: "FR-CLASSIC", Kind: finance.MovementSell, Qty: 3, UnitPrice: amt("1500"), UnitCost: amt("800"), Date: day(9)})
	store.SeedMovement(finance.StockMovement{ID: uuid.New(), Line: finance.LineMedicine, SKU: "EYE-DROP", Kind: finance.MovementBuy, Qty: 100, UnitPrice: amt("40"), Date: day(6)})
	store.SeedMovement(finance.StockMovement{ID: uuid.New(), Line: finance.LineMedicine, SKU: "EYE-DROP", Kind: finance.MovementSell, Qty: 30, UnitPrice: amt("60"), UnitCost: amt("40"), Date: day(12)})

	store.SeedBooking(finance.OperationBooking{ID: uuid.New(), PatientName: "Rahima Begum", Status: finance.BookingCompleted, DueAmount: amt("5000"), Date: day(15)})
	store.SeedBooking(finance.OperationBooking{ID: uuid.New(), PatientName: "Abdul Karim", Status: finance.BookingScheduled, DueAmount: amt("7000"), Date: day(25)})

	store.SeedRentAdvance(finance.RentAdvance{ID: uuid.New(), Floor: finance.FloorGround, Amount: amt("120000"), Date: day(1)})
	store.SeedRentDeduction(finance.RentDeduction{ID: uuid.New(), Floor: finance.FloorGround, Amount: amt("10000"), Date: day(31)})

	store.SetActualBalance(amt("320000"))
}

func parseLogLevel(s string) slog.Leveler {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error", "err":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func buildLogger(level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLogLevel(level)}
	if strings.ToLower(strings.TrimSpace(format)) == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
