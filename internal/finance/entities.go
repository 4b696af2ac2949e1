package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/govalues/decimal"
)

// TxType classifies a ledger transaction as money in or money out.
type TxType string

const (
	// TxIncome records money received.
	TxIncome TxType = "income"
	// TxExpense records money paid out. Legacy rows may carry a negative
	// amount; aggregation always takes the absolute value.
	TxExpense TxType = "expense"
)

// TxOrigin identifies the subsystem that generated a ledger transaction.
// Aggregation filters by this enum instead of matching description text.
type TxOrigin string

const (
	// OriginManual marks transactions entered by hand at the counter.
	OriginManual TxOrigin = "manual"
	// OriginSaleProfit marks rows posted by the sale subsystem for realized profit.
	OriginSaleProfit TxOrigin = "sale_profit"
	// OriginSalePayment marks cash received against a sale (including advances).
	OriginSalePayment TxOrigin = "sale_payment"
	// OriginVendorPayment marks cash paid to a vendor against purchases.
	OriginVendorPayment TxOrigin = "vendor_payment"
	// OriginAssetPurchase marks capital asset acquisitions.
	OriginAssetPurchase TxOrigin = "asset_purchase"
	// OriginStockPurchase marks inventory purchases.
	OriginStockPurchase TxOrigin = "stock_purchase"
)

// LedgerTransaction is a single money movement in the operating ledger.
type LedgerTransaction struct {
	ID          uuid.UUID
	Type        TxType
	// CategoryID is nil for uncategorized rows; those surface as
	// description-grouped pseudo-categories in the expenditure report.
	CategoryID  *uuid.UUID
	Origin      TxOrigin
	Amount      decimal.Decimal
	Date        time.Time
	Description string
	CreatedBy   string
}

// FundFlow is the direction of a capital movement.
type FundFlow string

const (
	FundIn  FundFlow = "fund_in"
	FundOut FundFlow = "fund_out"
)

// FundTransaction is a capital movement, distinct from operating income/expense.
type FundTransaction struct {
	ID      uuid.UUID
	Flow    FundFlow
	Purpose string
	Amount  decimal.Decimal
	Date    time.Time
}

// CategoryKind separates income categories from expense categories.
type CategoryKind string

const (
	KindIncome  CategoryKind = "income"
	KindExpense CategoryKind = "expense"
)

// CategoryCode tags categories whose sums feed specific balance-sheet lines.
// Reports look these up by code, never by display name.
type CategoryCode string

const (
	CodeGeneral       CategoryCode = "general"
	CodeAssetPurchase CategoryCode = "asset_purchase"
	CodeStockPurchase CategoryCode = "stock_purchase"
	CodeVendorPayment CategoryCode = "vendor_payment"
	CodeAdvanceRent   CategoryCode = "advance_rent"
	CodeHouseSecurity CategoryCode = "house_security"
)

// ProductGroup identifies a sale subsystem feeding derived income.
type ProductGroup string

const (
	GroupOptics   ProductGroup = "optics"
	GroupMedicine ProductGroup = "medicine"
)

// Category is an income or expense bucket.
type Category struct {
	ID     uuid.UUID
	Name   string
	Kind   CategoryKind
	Code   CategoryCode
	Active bool
	// Capital marks balance-sheet expense categories (asset purchases,
	// stock purchases, vendor payments, prepaid rent/security). These are
	// excluded from the operating expense view.
	Capital bool
	// DerivedFrom, when set on an income category, means the reported value
	// is recomputed as sale profit for the group rather than summed from
	// raw receipts. Manual transactions of the category still count.
	DerivedFrom ProductGroup
}

// Derived reports whether the category value is recomputed from sales.
func (c Category) Derived() bool { return c.DerivedFrom != "" }

// VendorGroup partitions vendor accounts by what they supply.
type VendorGroup string

const (
	VendorOptics     VendorGroup = "optics"
	VendorMedicine   VendorGroup = "medicine"
	VendorFixedAsset VendorGroup = "fixed_asset"
)

// BalanceType states whether a vendor's running balance is owed or prepaid.
type BalanceType string

const (
	BalanceDue     BalanceType = "due"
	BalanceAdvance BalanceType = "advance"
)

// VendorAccount carries a running balance that reflects the ledger as of the
// moment it was last updated. It is NOT point-in-time for a historical date;
// historical due is reconstructed by rewinding transactions dated after the
// cutoff.
type VendorAccount struct {
	ID             uuid.UUID
	Name           string
	Group          VendorGroup
	CurrentBalance decimal.Decimal
	BalanceType    BalanceType
}

// VendorTxKind is the direction of a vendor ledger movement.
type VendorTxKind string

const (
	VendorPurchase VendorTxKind = "purchase"
	VendorPayment  VendorTxKind = "payment"
)

// VendorTransaction is a purchase from or payment to a vendor.
type VendorTransaction struct {
	ID       uuid.UUID
	VendorID uuid.UUID
	Kind     VendorTxKind
	Amount   decimal.Decimal
	Date     time.Time
}

// AdvanceSource states where a sale's advance was recorded during the
// payments-table migration: as ledger payment rows or only in the legacy
// advance_payment column. Due calculations use one or the other, never both.
type AdvanceSource string

const (
	AdvanceInLedger AdvanceSource = "ledger"
	AdvanceInLegacy AdvanceSource = "legacy_field"
)

// SaleRecord is an optics or medicine sale.
type SaleRecord struct {
	ID             uuid.UUID
	Group          ProductGroup
	TotalAmount    decimal.Decimal
	// AdvancePayment is the legacy column; consulted only when
	// AdvanceSource is AdvanceInLegacy.
	AdvancePayment decimal.Decimal
	AdvanceSource  AdvanceSource
	CreatedAt      time.Time
	DeletedAt      *time.Time
}

// SalePayment is a cash receipt against a sale.
type SalePayment struct {
	ID      uuid.UUID
	SaleID  uuid.UUID
	Amount  decimal.Decimal
	Date    time.Time
	Advance bool
}

// ProductLine is an inventory line with its own stock movements.
type ProductLine string

const (
	LineFrame           ProductLine = "frame"
	LineLens            ProductLine = "lens"
	LineCompleteGlasses ProductLine = "complete_glasses"
	LineMedicine        ProductLine = "medicine"
)

// OpticsLines are the product lines valued per SKU and summed into the
// optics stock figure. Medicine is valued with the bulk formula instead.
var OpticsLines = []ProductLine{LineFrame, LineLens, LineCompleteGlasses}

// MovementKind is the direction of a stock movement.
type MovementKind string

const (
	MovementBuy  MovementKind = "buy"
	MovementSell MovementKind = "sell"
)

// StockMovement is a buy or sell event for a SKU.
type StockMovement struct {
	ID   uuid.UUID
	Line ProductLine
	SKU  string
	Kind MovementKind
	Qty  int64
	// UnitPrice is the buy price for buys and the sell price for sells.
	UnitPrice decimal.Decimal
	// UnitCost is set on sells: the buy cost of the units sold.
	UnitCost decimal.Decimal
	Date     time.Time
}

// BookingStatus is the lifecycle state of an operation booking.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingScheduled BookingStatus = "scheduled"
	BookingCompleted BookingStatus = "completed"
)

// OperationBooking is a surgery booking. Only completed bookings count as a
// receivable; advances on pending or scheduled bookings are unearned.
type OperationBooking struct {
	ID          uuid.UUID
	PatientName string
	Status      BookingStatus
	DueAmount   decimal.Decimal
	Date        time.Time
}

// Floor identifies one of the two building floors with independent
// prepaid-rent sub-ledgers.
type Floor string

const (
	FloorGround Floor = "ground"
	FloorFirst  Floor = "first"
)

// RentAdvance is a lump prepayment of house rent for a floor.
type RentAdvance struct {
	ID     uuid.UUID
	Floor  Floor
	Amount decimal.Decimal
	Date   time.Time
}

// RentDeduction accrues one period's rent against a floor's advance.
type RentDeduction struct {
	ID     uuid.UUID
	Floor  Floor
	Amount decimal.Decimal
	Date   time.Time
}

// DescriptionSum is a free-text-grouped aggregate used for uncategorized
// expenses and fund purposes.
type DescriptionSum struct {
	Description string
	Amount      decimal.Decimal
}
