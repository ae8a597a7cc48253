package extract

import (
	"sort"

	"eua-price-lab/internal/domain"
	"eua-price-lab/internal/normalize"
)

// Extractor converts raw candidates into observations. It never fails:
// unparseable candidates simply contribute nothing.
type Extractor struct {
	aliases Aliases
}

// New creates an Extractor. Empty alias tables fall back to the defaults.
func New(aliases Aliases) *Extractor {
	return &Extractor{aliases: aliases.merged()}
}

// Extract walks a candidate and returns every observation it can impose
// structure on. The result may be empty and may contain duplicate dates;
// deduplication is the reconciler's job.
func (e *Extractor) Extract(candidate domain.RawCandidate) []domain.Observation {
	switch v := candidate.(type) {
	case []any:
		return e.extractSequence(v)
	case []domain.RawCandidate:
		var out []domain.Observation
		for _, item := range v {
			out = append(out, e.Extract(item)...)
		}
		return out
	case map[string]any:
		return e.extractRecord(v)
	default:
		// Scalars carry no pair on their own.
		return nil
	}
}

// extractSequence handles list shapes. A flat list of two or more scalars
// is an ordered pair taken positionally as (date, price); anything else
// recurses into each element independently.
func (e *Extractor) extractSequence(seq []any) []domain.Observation {
	if len(seq) >= 2 && allScalars(seq) {
		if obs, ok := normalize.ParseObservation(seq[0], seq[1]); ok {
			return []domain.Observation{obs}
		}
		return nil
	}

	var out []domain.Observation
	for _, item := range seq {
		out = append(out, e.Extract(item)...)
	}
	return out
}

// extractRecord handles keyed records: alias search first, then container
// unwrapping, then the anonymous two-entry fallback.
func (e *Extractor) extractRecord(rec map[string]any) []domain.Observation {
	dateTok, dateFound := firstAlias(rec, e.aliases.Date)
	priceTok, priceFound := firstAlias(rec, e.aliases.Price)

	if dateFound && priceFound {
		if obs, ok := normalize.ParseObservation(dateTok, priceTok); ok {
			return []domain.Observation{obs}
		}
		return nil
	}

	// No usable named fields: unwrap known container keys and scan
	// whatever sequences they hold.
	var out []domain.Observation
	for _, key := range e.aliases.Containers {
		if seq, ok := rec[key].([]any); ok {
			out = append(out, e.extractSequence(seq)...)
		}
	}
	if len(out) > 0 {
		return out
	}

	// Anonymous pair-shaped record: exactly two entries, neither under a
	// recognized name. Go maps are unordered, so "positional" means the
	// key-sorted value order, with one swap retry.
	if len(rec) == 2 && !dateFound && !priceFound {
		keys := make([]string, 0, 2)
		for k := range rec {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		v0, v1 := rec[keys[0]], rec[keys[1]]
		if obs, ok := normalize.ParseObservation(v0, v1); ok {
			return []domain.Observation{obs}
		}
		if obs, ok := normalize.ParseObservation(v1, v0); ok {
			return []domain.Observation{obs}
		}
	}

	return nil
}

// firstAlias returns the value under the first present alias, in table order.
func firstAlias(rec map[string]any, aliases []string) (any, bool) {
	for _, name := range aliases {
		if v, ok := rec[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// allScalars reports whether no element of seq is itself a collection.
func allScalars(seq []any) bool {
	for _, item := range seq {
		switch item.(type) {
		case []any, map[string]any:
			return false
		}
	}
	return true
}
