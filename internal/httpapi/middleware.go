package httpapi

import (
	"context"
	"net/http"
	"time"
)

type ctxKey string

const ctxKeyAsOn ctxKey = "validatedAsOn"
const ctxKeyRange ctxKey = "validatedRange"

const dateLayout = "2006-01-02"

// asOnQuery holds the resolved cutoff for point-in-time reports.
type asOnQuery struct {
	AsOn time.Time
}

// rangeQuery holds the resolved window for period reports.
type rangeQuery struct {
	From time.Time
	To   time.Time
}

// endOfDay pushes a parsed date to the last instant of that day so
// same-day transactions are included by inclusive upper bounds.
func endOfDay(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 59, 0, time.UTC)
}

func startOfMonth(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// parseDateParam parses a query date, returning the fallback when absent.
// Missing dates are a convenience default, not an error; malformed ones are.
func parseDateParam(raw string, fallback time.Time) (time.Time, bool) {
	if raw == "" {
		return fallback, true
	}
	d, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// validateAsOnQuery resolves as_on_date (default today) and stores it in
// the request context for the handler to use.
func (s *Server) validateAsOnQuery() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.URL.Query().Get("as_on_date")
			d, ok := parseDateParam(raw, time.Now().UTC())
			if !ok {
				badRequest(w, "invalid as_on_date: want YYYY-MM-DD")
				return
			}
			q := asOnQuery{AsOn: endOfDay(d)}
			ctx := context.WithValue(r.Context(), ctxKeyAsOn, q)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// validateRangeQuery resolves from_date (default current month start) and
// to_date (default today).
func (s *Server) validateRangeQuery() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			now := time.Now().UTC()
			from, ok := parseDateParam(r.URL.Query().Get("from_date"), startOfMonth(now))
			if !ok {
				badRequest(w, "invalid from_date: want YYYY-MM-DD")
				return
			}
			to, ok := parseDateParam(r.URL.Query().Get("to_date"), now)
			if !ok {
				badRequest(w, "invalid to_date: want YYYY-MM-DD")
				return
			}
			if to.Before(from) {
				badRequest(w, "to_date is before from_date")
				return
			}
			q := rangeQuery{From: from, To: endOfDay(to)}
			ctx := context.WithValue(r.Context(), ctxKeyRange, q)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
