package domain

// MaxValidPrice is the upper bound for a plausible price. Values above it
// are treated as corrupted sentinel data (typically a market identifier
// that leaked into a price column) and rejected rather than clamped.
const MaxValidPrice = 1_000_000

// Observation is one (date, price) point in the futures time series.
type Observation struct {
	Date  Date
	Price float64
}

// Valid reports whether the observation satisfies the price invariant
// 0 < price <= MaxValidPrice and carries a non-zero date.
func (o Observation) Valid() bool {
	return !o.Date.IsZero() && o.Price > 0 && o.Price <= MaxValidPrice
}
