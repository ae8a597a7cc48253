// Package extract locates plausible (date, price) pairs inside arbitrarily
// shaped raw candidates. It is deliberately permissive: structural guesses
// live here, while precision is enforced entirely by the normalize package.
package extract

// Aliases holds the priority-ordered field-name tables used to search
// keyed records. Kept as declarative data so deployments can extend the
// tables from configuration without touching extraction logic.
type Aliases struct {
	// Date fields, in priority order. First present wins.
	Date []string
	// Price fields, in priority order. First present wins.
	Price []string
	// Containers are keys whose sequence values are unwrapped and
	// scanned when a record carries no recognized date/price fields.
	Containers []string
}

// DefaultAliases returns the field-name tables observed across the known
// upstream payload shapes.
func DefaultAliases() Aliases {
	return Aliases{
		Date:       []string{"date", "time", "timestamp", "x", "datetime", "t"},
		Price:      []string{"price", "value", "y", "close", "last", "settlement"},
		Containers: []string{"data", "series", "values", "prices", "points", "items"},
	}
}

// merged fills any empty table from the defaults so a partially
// configured Aliases still extracts.
func (a Aliases) merged() Aliases {
	def := DefaultAliases()
	if len(a.Date) == 0 {
		a.Date = def.Date
	}
	if len(a.Price) == 0 {
		a.Price = def.Price
	}
	if len(a.Containers) == 0 {
		a.Containers = def.Containers
	}
	return a
}
