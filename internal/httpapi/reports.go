package httpapi

import (
	"net/http"

	chi "github.com/go-chi/chi/v5"

	"github.com/hospfin/ledger/internal/finance"
	"github.com/hospfin/ledger/internal/service/due"
	"github.com/hospfin/ledger/internal/service/stock"
)

func (s *Server) getBalanceSheet(w http.ResponseWriter, r *http.Request) {
	q := r.Context().Value(ctxKeyAsOn).(asOnQuery)
	bs, err := s.reports.BalanceSheet(r.Context(), q.AsOn)
	if err != nil {
		s.storeFailure(w, err)
		return
	}
	toJSON(w, http.StatusOK, s.toBalanceSheetResponse(bs))
}

func (s *Server) getIncomeExpenditure(w http.ResponseWriter, r *http.Request) {
	q := r.Context().Value(ctxKeyRange).(rangeQuery)
	ie, err := s.reports.IncomeExpenditure(r.Context(), q.From, q.To)
	if err != nil {
		s.storeFailure(w, err)
		return
	}
	toJSON(w, http.StatusOK, toIncomeExpenditureResponse(ie))
}

func (s *Server) getReceiptPayment(w http.ResponseWriter, r *http.Request) {
	q := r.Context().Value(ctxKeyRange).(rangeQuery)
	rp, err := s.reports.ReceiptPayment(r.Context(), q.From, q.To)
	if err != nil {
		s.storeFailure(w, err)
		return
	}
	toJSON(w, http.StatusOK, toReceiptPaymentResponse(rp))
}

// productLines maps the URL segment to a stock line. Medicine is served
// through the same endpoint even though its valuation is bulk rather than
// per-SKU; the per-SKU rows still carry the quantities.
var productLines = map[string]finance.ProductLine{
	"frame":            finance.LineFrame,
	"lens":             finance.LineLens,
	"complete_glasses": finance.LineCompleteGlasses,
	"medicine":         finance.LineMedicine,
}

func (s *Server) getStockLine(w http.ResponseWriter, r *http.Request) {
	line, ok := productLines[chi.URLParam(r, "line")]
	if !ok {
		writeErr(w, http.StatusNotFound, "unknown product line", "not_found")
		return
	}
	q := r.Context().Value(ctxKeyRange).(rangeQuery)

	reader, release, err := s.src.View(r.Context())
	if err != nil {
		s.storeFailure(w, err)
		return
	}
	defer release()

	rep, err := stock.New(reader).Line(r.Context(), line, q.From, q.To)
	if err != nil {
		s.storeFailure(w, err)
		return
	}
	filters := rangeFilters{
		FromDate: q.From.Format(dateLayout),
		ToDate:   q.To.Format(dateLayout),
	}
	toJSON(w, http.StatusOK, toStockLineResponse(rep, filters))
}

var vendorGroups = map[string]finance.VendorGroup{
	"optics":      finance.VendorOptics,
	"medicine":    finance.VendorMedicine,
	"fixed_asset": finance.VendorFixedAsset,
}

func (s *Server) getVendorDues(w http.ResponseWriter, r *http.Request) {
	group, ok := vendorGroups[r.URL.Query().Get("group")]
	if !ok {
		badRequest(w, "group must be one of optics, medicine, fixed_asset")
		return
	}
	q := r.Context().Value(ctxKeyAsOn).(asOnQuery)

	reader, release, err := s.src.View(r.Context())
	if err != nil {
		s.storeFailure(w, err)
		return
	}
	defer release()

	amount, err := due.New(reader).VendorDue(r.Context(), group, q.AsOn)
	if err != nil {
		s.storeFailure(w, err)
		return
	}
	toJSON(w, http.StatusOK, vendorDuesResponse{
		Filters:    asOnFilters{AsOnDate: q.AsOn.Format(dateLayout)},
		Group:      string(group),
		Due:        finance.Float(amount),
		DueDisplay: finance.Display(s.currency, amount),
	})
}
