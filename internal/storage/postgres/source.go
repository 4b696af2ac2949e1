package postgres

import (
	"context"

	"github.com/hospfin/ledger/internal/service/report"
)

// Source hands report computations a repeatable-read snapshot so every
// figure in a single report is drawn from the same instant.
type Source struct{ store *Store }

func NewSource(store *Store) Source { return Source{store: store} }

func (s Source) View(ctx context.Context) (report.Reader, func(), error) {
	tx, err := s.store.BeginReport(ctx)
	if err != nil {
		return nil, nil, err
	}
	return tx, func() { tx.Release(context.Background()) }, nil
}
