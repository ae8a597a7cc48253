package domain

// RunRecord is the audit summary of one reconciliation run.
// Corresponds to the scrape_runs table in PostgreSQL.
type RunRecord struct {
	RunID          string // deterministic per-run identifier
	StartedAt      int64  // Unix timestamp in milliseconds
	FinishedAt     int64  // Unix timestamp in milliseconds
	Source         string // fetch source names, comma separated
	CandidatesSeen int    // raw candidates received from the fetch layer
	Extracted      int    // observations that survived normalization
	RowsRepaired   int    // persisted rows recovered by the repair pass
	RowsDiscarded  int    // persisted rows dropped as unrecoverable
	MergedTotal    int    // observations in the merged series
	NewDates       int    // dates added or updated by this run
	Written        int    // rows written back to the canonical store
}
