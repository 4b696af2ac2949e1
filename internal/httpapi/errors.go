package httpapi

import (
	"errors"
	"net/http"

	"github.com/hospfin/ledger/internal/errs"
)

// errorResponse is the standard error payload for the API.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeErr(w http.ResponseWriter, status int, msg, code string) {
	toJSON(w, status, errorResponse{Error: msg, Code: code})
}

func badRequest(w http.ResponseWriter, msg string) { writeErr(w, http.StatusBadRequest, msg, "") }

// storeFailure maps an underlying query failure to a hard error response.
// Reports are never served partially; missing components would be worse
// than no report.
func (s *Server) storeFailure(w http.ResponseWriter, err error) {
	s.log.Error("report query failed", "err", err)
	if errors.Is(err, errs.ErrUnavailable) {
		writeErr(w, http.StatusServiceUnavailable, "ledger store unavailable", "store_unavailable")
		return
	}
	writeErr(w, http.StatusInternalServerError, "report computation failed", "internal")
}
