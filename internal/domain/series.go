package domain

import "sort"

// Series is a date-deduplicated collection of observations in ascending
// date order. All mutation happens by building a new Series; a Series
// handed to a store is never modified in place.
type Series []Observation

// NewSeries builds a canonical Series from arbitrary observations:
// invalid observations are dropped, duplicate dates collapse to the last
// occurrence, and the result is sorted ascending by date.
func NewSeries(obs []Observation) Series {
	byDate := make(map[Date]Observation, len(obs))
	for _, o := range obs {
		if !o.Valid() {
			continue
		}
		byDate[o.Date] = o
	}

	s := make(Series, 0, len(byDate))
	for _, o := range byDate {
		s = append(s, o)
	}
	sort.Slice(s, func(i, j int) bool { return s[i].Date.Before(s[j].Date) })
	return s
}

// At returns the observation for the given date, if present.
func (s Series) At(d Date) (Observation, bool) {
	// Series is sorted ascending, binary search by date.
	i := sort.Search(len(s), func(i int) bool { return !s[i].Date.Before(d) })
	if i < len(s) && s[i].Date == d {
		return s[i], true
	}
	return Observation{}, false
}

// First returns the earliest observation. Second result is false when empty.
func (s Series) First() (Observation, bool) {
	if len(s) == 0 {
		return Observation{}, false
	}
	return s[0], true
}

// Last returns the latest observation. Second result is false when empty.
func (s Series) Last() (Observation, bool) {
	if len(s) == 0 {
		return Observation{}, false
	}
	return s[len(s)-1], true
}

// Equal reports whether two series hold identical observations in
// identical order.
func (s Series) Equal(other Series) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}
