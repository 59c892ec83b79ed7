package postgres

import "github.com/geocoder89/calhub/internal/observability"

// observe times a query when metrics are wired; a nil Prom is a no-op.
func observe(m *observability.Prom, op string, fn func() error) error {
	if m == nil {
		return fn()
	}

	return m.ObserveDB(op, fn)
}
