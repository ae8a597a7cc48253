package domain

// RawCandidate is an untyped value produced by a fetch source: a keyed
// record, an ordered pair, or an arbitrarily nested collection of either.
// It carries no invariants; the extractor imposes structure on it or
// discards it.
type RawCandidate any
