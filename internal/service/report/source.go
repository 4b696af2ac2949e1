package report

import "context"

// StaticSource adapts a store that already behaves as one consistent
// Reader to the Source interface. The in-memory store qualifies: its only
// writes are test seeding.
type StaticSource struct {
	Reader Reader
}

func (s StaticSource) View(context.Context) (Reader, func(), error) {
	return s.Reader, func() {}, nil
}
