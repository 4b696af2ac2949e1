package httpapi

import (
	"github.com/hospfin/ledger/internal/finance"
	"github.com/hospfin/ledger/internal/service/report"
	"github.com/hospfin/ledger/internal/service/stock"
)

// All monetary fields are rounded to 2 decimal places here, at the
// boundary; the services compute on decimals throughout.

type asOnFilters struct {
	AsOnDate string `json:"as_on_date"`
}

type rangeFilters struct {
	FromDate string `json:"from_date"`
	ToDate   string `json:"to_date"`
}

type balanceSheetAssetsDTO struct {
	BankBalance         float64 `json:"bank_balance"`
	MedicineStockValue  float64 `json:"medicine_stock_value"`
	OpticsStockValue    float64 `json:"optics_stock_value"`
	AdvanceHouseRent    float64 `json:"advance_house_rent"`
	FixedAssetsValue    float64 `json:"fixed_assets_value"`
	HouseSecurity       float64 `json:"house_security"`
	OpticsReceivable    float64 `json:"optics_receivable"`
	MedicineReceivable  float64 `json:"medicine_receivable"`
	OperationReceivable float64 `json:"operation_receivable"`
	Total               float64 `json:"total"`
	TotalDisplay        string  `json:"total_display"`
}

type balanceSheetLiabilitiesDTO struct {
	OpticsVendorDue   float64 `json:"optics_vendor_due"`
	MedicineVendorDue float64 `json:"medicine_vendor_due"`
	AssetPurchaseDue  float64 `json:"asset_purchase_due"`
	Total             float64 `json:"total"`
	TotalDisplay      string  `json:"total_display"`
}

type balanceSheetResponse struct {
	Filters     asOnFilters                `json:"filters"`
	Assets      balanceSheetAssetsDTO      `json:"assets"`
	Liabilities balanceSheetLiabilitiesDTO `json:"liabilities"`
	Fund        float64                    `json:"fund"`
	NetProfit   float64                    `json:"net_profit"`
	Difference  float64                    `json:"difference"`
	IsBalanced  bool                       `json:"is_balanced"`
}

func (s *Server) toBalanceSheetResponse(bs report.BalanceSheet) balanceSheetResponse {
	return balanceSheetResponse{
		Filters: asOnFilters{AsOnDate: bs.AsOn.Format(dateLayout)},
		Assets: balanceSheetAssetsDTO{
			BankBalance:         finance.Float(bs.Assets.BankBalance),
			MedicineStockValue:  finance.Float(bs.Assets.MedicineStockValue),
			OpticsStockValue:    finance.Float(bs.Assets.OpticsStockValue),
			AdvanceHouseRent:    finance.Float(bs.Assets.AdvanceHouseRent),
			FixedAssetsValue:    finance.Float(bs.Assets.FixedAssetsValue),
			HouseSecurity:       finance.Float(bs.Assets.HouseSecurity),
			OpticsReceivable:    finance.Float(bs.Assets.OpticsReceivable),
			MedicineReceivable:  finance.Float(bs.Assets.MedicineReceivable),
			OperationReceivable: finance.Float(bs.Assets.OperationReceivable),
			Total:               finance.Float(bs.Assets.Total),
			TotalDisplay:        finance.Display(s.currency, bs.Assets.Total),
		},
		Liabilities: balanceSheetLiabilitiesDTO{
			OpticsVendorDue:   finance.Float(bs.Liabilities.OpticsVendorDue),
			MedicineVendorDue: finance.Float(bs.Liabilities.MedicineVendorDue),
			AssetPurchaseDue:  finance.Float(bs.Liabilities.AssetPurchaseDue),
			Total:             finance.Float(bs.Liabilities.Total),
			TotalDisplay:      finance.Display(s.currency, bs.Liabilities.Total),
		},
		Fund:       finance.Float(bs.Fund),
		NetProfit:  finance.Float(bs.NetProfit),
		Difference: finance.Float(bs.Difference),
		IsBalanced: bs.Balanced,
	}
}

type lineDTO struct {
	Name       string  `json:"name"`
	Period     float64 `json:"period"`
	Cumulative float64 `json:"cumulative"`
}

func toLineDTOs(lines []report.Line) []lineDTO {
	out := make([]lineDTO, 0, len(lines))
	for _, ln := range lines {
		out = append(out, lineDTO{
			Name:       ln.Name,
			Period:     finance.Float(ln.Period),
			Cumulative: finance.Float(ln.Cumulative),
		})
	}
	return out
}

type incomeExpenditureResponse struct {
	Filters                rangeFilters `json:"filters"`
	Income                 []lineDTO    `json:"income"`
	Expense                []lineDTO    `json:"expense"`
	TotalIncomePeriod      float64      `json:"total_income_period"`
	TotalIncomeCumulative  float64      `json:"total_income_cumulative"`
	TotalExpensePeriod     float64      `json:"total_expense_period"`
	TotalExpenseCumulative float64      `json:"total_expense_cumulative"`
	SurplusPeriod          float64      `json:"surplus_period"`
	SurplusCumulative      float64      `json:"surplus_cumulative"`
}

func toIncomeExpenditureResponse(ie report.IncomeExpenditure) incomeExpenditureResponse {
	return incomeExpenditureResponse{
		Filters: rangeFilters{
			FromDate: ie.From.Format(dateLayout),
			ToDate:   ie.To.Format(dateLayout),
		},
		Income:                 toLineDTOs(ie.Income),
		Expense:                toLineDTOs(ie.Expense),
		TotalIncomePeriod:      finance.Float(ie.TotalIncomePeriod),
		TotalIncomeCumulative:  finance.Float(ie.TotalIncomeCumulative),
		TotalExpensePeriod:     finance.Float(ie.TotalExpensePeriod),
		TotalExpenseCumulative: finance.Float(ie.TotalExpenseCumulative),
		SurplusPeriod:          finance.Float(ie.SurplusPeriod),
		SurplusCumulative:      finance.Float(ie.SurplusCumulative),
	}
}

type receiptPaymentResponse struct {
	Filters                 rangeFilters `json:"filters"`
	OpeningPeriod           float64      `json:"opening_period"`
	OpeningCumulative       float64      `json:"opening_cumulative"`
	Adjustment              float64      `json:"adjustment"`
	Receipts                []lineDTO    `json:"receipts"`
	Payments                []lineDTO    `json:"payments"`
	ReceiptsTotalPeriod     float64      `json:"receipts_total_period"`
	ReceiptsTotalCumulative float64      `json:"receipts_total_cumulative"`
	PaymentsTotalPeriod     float64      `json:"payments_total_period"`
	PaymentsTotalCumulative float64      `json:"payments_total_cumulative"`
	ClosingPeriod           float64      `json:"closing_period"`
	ClosingCumulative       float64      `json:"closing_cumulative"`
	ReceiptSideTotal        float64      `json:"receipt_side_total"`
	PaymentSideTotal        float64      `json:"payment_side_total"`
	Difference              float64      `json:"difference"`
	IsBalanced              bool         `json:"is_balanced"`
}

func toReceiptPaymentResponse(rp report.ReceiptPayment) receiptPaymentResponse {
	return receiptPaymentResponse{
		Filters: rangeFilters{
			FromDate: rp.From.Format(dateLayout),
			ToDate:   rp.To.Format(dateLayout),
		},
		OpeningPeriod:           finance.Float(rp.OpeningPeriod),
		OpeningCumulative:       finance.Float(rp.OpeningCumulative),
		Adjustment:              finance.Float(rp.Adjustment),
		Receipts:                toLineDTOs(rp.Receipts),
		Payments:                toLineDTOs(rp.Payments),
		ReceiptsTotalPeriod:     finance.Float(rp.ReceiptsTotalPeriod),
		ReceiptsTotalCumulative: finance.Float(rp.ReceiptsTotalCumulative),
		PaymentsTotalPeriod:     finance.Float(rp.PaymentsTotalPeriod),
		PaymentsTotalCumulative: finance.Float(rp.PaymentsTotalCumulative),
		ClosingPeriod:           finance.Float(rp.ClosingPeriod),
		ClosingCumulative:       finance.Float(rp.ClosingCumulative),
		ReceiptSideTotal:        finance.Float(rp.ReceiptSideTotal),
		PaymentSideTotal:        finance.Float(rp.PaymentSideTotal),
		Difference:              finance.Float(rp.Difference),
		IsBalanced:              rp.Balanced,
	}
}

type stockRowDTO struct {
	SKU            string  `json:"sku"`
	BoughtQty      int64   `json:"bought_qty"`
	SoldQty        int64   `json:"sold_qty"`
	AvailableQty   int64   `json:"available_qty"`
	BuyPrice       float64 `json:"buy_price"`
	AvailableValue float64 `json:"available_value"`
	Profit         float64 `json:"profit"`
}

type stockLineResponse struct {
	Filters        rangeFilters  `json:"filters"`
	Line           string        `json:"line"`
	Rows           []stockRowDTO `json:"rows"`
	AvailableValue float64       `json:"available_value"`
	Profit         float64       `json:"profit"`
}

func toStockLineResponse(rep stock.LineReport, filters rangeFilters) stockLineResponse {
	rows := make([]stockRowDTO, 0, len(rep.Rows))
	for _, row := range rep.Rows {
		rows = append(rows, stockRowDTO{
			SKU:            row.SKU,
			BoughtQty:      row.BoughtQty,
			SoldQty:        row.SoldQty,
			AvailableQty:   row.AvailableQty,
			BuyPrice:       finance.Float(row.BuyPrice),
			AvailableValue: finance.Float(row.AvailableValue),
			Profit:         finance.Float(row.Profit),
		})
	}
	return stockLineResponse{
		Filters:        filters,
		Line:           string(rep.Line),
		Rows:           rows,
		AvailableValue: finance.Float(rep.AvailableValue),
		Profit:         finance.Float(rep.Profit),
	}
}

type vendorDuesResponse struct {
	Filters    asOnFilters `json:"filters"`
	Group      string      `json:"group"`
	Due        float64     `json:"due"`
	DueDisplay string      `json:"due_display"`
}
