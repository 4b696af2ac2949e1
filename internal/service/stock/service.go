// Package stock values inventory and realizes profit for the product lines.
//
// Optics lines (frames, lenses, complete glasses) are valued per SKU:
// available quantity times buy price. Medicine is valued with the bulk
// formula cumulative purchases minus cumulative cost of goods sold, because
// medicine purchases are tracked as bulk totals rather than individually
// valued lots. The asymmetry is deliberate and must be preserved.
package stock

import (
	"context"
	"sort"
	"time"

	"github.com/govalues/decimal"

	"github.com/hospfin/ledger/internal/finance"
)

// Repo defines read operations needed by the valuator.
type Repo interface {
	// Movements returns all stock movements for a line dated at or before
	// to, ordered by date.
	Movements(ctx context.Context, line finance.ProductLine, to time.Time) ([]finance.StockMovement, error)
}

// Row is the per-SKU valuation for a window.
type Row struct {
	SKU            string
	BoughtQty      int64
	SoldQty        int64
	AvailableQty   int64
	BuyPrice       decimal.Decimal
	AvailableValue decimal.Decimal
	Profit         decimal.Decimal
}

// LineReport carries per-SKU rows plus line totals.
type LineReport struct {
	Line           finance.ProductLine
	Rows           []Row
	AvailableValue decimal.Decimal
	Profit         decimal.Decimal
}

// Service computes stock valuations and realized profit.
type Service interface {
	// Line aggregates one product line over [from, to]. Passing
	// finance.Inception as from means since the beginning of time.
	Line(ctx context.Context, line finance.ProductLine, from, to time.Time) (LineReport, error)
	// OpticsValue is the point-in-time stock value of the three optics
	// lines combined.
	OpticsValue(ctx context.Context, to time.Time) (decimal.Decimal, error)
	// MedicineValue is cumulative purchases minus cumulative COGS.
	MedicineValue(ctx context.Context, to time.Time) (decimal.Decimal, error)
	// GroupProfit is realized profit (sell minus cost over in-window
	// sells) for a sale group over [from, to].
	GroupProfit(ctx context.Context, group finance.ProductGroup, from, to time.Time) (decimal.Decimal, error)
}

type service struct {
	repo Repo
}

func New(repo Repo) Service { return &service{repo: repo} }

func (s *service) Line(ctx context.Context, line finance.ProductLine, from, to time.Time) (LineReport, error) {
	movements, err := s.repo.Movements(ctx, line, to)
	if err != nil {
		return LineReport{}, err
	}

	type skuState struct {
		boughtWindow int64
		soldWindow   int64
		boughtTotal  int64
		soldTotal    int64
		buyPrice     decimal.Decimal
		profit       decimal.Decimal
	}
	bySKU := make(map[string]*skuState)
	get := func(sku string) *skuState {
		st, ok := bySKU[sku]
		if !ok {
			st = &skuState{}
			bySKU[sku] = st
		}
		return st
	}

	for _, m := range movements {
		st := get(m.SKU)
		inWindow := !m.Date.Before(from)
		switch m.Kind {
		case finance.MovementBuy:
			st.boughtTotal += m.Qty
			// Available stock is valued at the latest buy price.
			st.buyPrice = m.UnitPrice
			if inWindow {
				st.boughtWindow += m.Qty
			}
		case finance.MovementSell:
			st.soldTotal += m.Qty
			if inWindow {
				st.soldWindow += m.Qty
				margin := finance.Sub(m.UnitPrice, m.UnitCost)
				st.profit = finance.Add(st.profit, finance.MulInt(margin, m.Qty))
			}
		}
	}

	report := LineReport{Line: line}
	skus := make([]string, 0, len(bySKU))
	for sku := range bySKU {
		skus = append(skus, sku)
	}
	sort.Strings(skus)
	for _, sku := range skus {
		st := bySKU[sku]
		available := st.boughtTotal - st.soldTotal
		row := Row{
			SKU:            sku,
			BoughtQty:      st.boughtWindow,
			SoldQty:        st.soldWindow,
			AvailableQty:   available,
			BuyPrice:       st.buyPrice,
			AvailableValue: finance.MulInt(st.buyPrice, available),
			Profit:         st.profit,
		}
		report.Rows = append(report.Rows, row)
		report.AvailableValue = finance.Add(report.AvailableValue, row.AvailableValue)
		report.Profit = finance.Add(report.Profit, row.Profit)
	}
	return report, nil
}

func (s *service) OpticsValue(ctx context.Context, to time.Time) (decimal.Decimal, error) {
	total := finance.Zero
	for _, line := range finance.OpticsLines {
		rep, err := s.Line(ctx, line, finance.Inception, to)
		if err != nil {
			return finance.Zero, err
		}
		total = finance.Add(total, rep.AvailableValue)
	}
	return total, nil
}

func (s *service) MedicineValue(ctx context.Context, to time.Time) (decimal.Decimal, error) {
	movements, err := s.repo.Movements(ctx, finance.LineMedicine, to)
	if err != nil {
		return finance.Zero, err
	}
	purchases := finance.Zero
	cogs := finance.Zero
	for _, m := range movements {
		switch m.Kind {
		case finance.MovementBuy:
			purchases = finance.Add(purchases, finance.MulInt(m.UnitPrice, m.Qty))
		case finance.MovementSell:
			cogs = finance.Add(cogs, finance.MulInt(m.UnitCost, m.Qty))
		}
	}
	return finance.Sub(purchases, cogs), nil
}

func (s *service) GroupProfit(ctx context.Context, group finance.ProductGroup, from, to time.Time) (decimal.Decimal, error) {
	lines := []finance.ProductLine{finance.LineMedicine}
	if group == finance.GroupOptics {
		lines = finance.OpticsLines
	}
	total := finance.Zero
	for _, line := range lines {
		rep, err := s.Line(ctx, line, from, to)
		if err != nil {
			return finance.Zero, err
		}
		total = finance.Add(total, rep.Profit)
	}
	return total, nil
}
