package reconcile

import (
	"sort"
	"time"
)

// IDSet is a set of trimmed, non-empty row identifiers.
type IDSet map[string]struct{}

// NewIDSet builds a set from the given identifiers.
func NewIDSet(ids ...string) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// Add inserts id into the set. Empty identifiers are ignored.
func (s IDSet) Add(id string) {
	if id == "" {
		return
	}
	s[id] = struct{}{}
}

// Has reports whether id is in the set.
func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Len returns the number of identifiers.
func (s IDSet) Len() int {
	return len(s)
}

// Difference returns the identifiers of s that are not in other.
func (s IDSet) Difference(other IDSet) IDSet {
	out := make(IDSet)
	for id := range s {
		if !other.Has(id) {
			out[id] = struct{}{}
		}
	}
	return out
}

// Intersect returns the identifiers present in both s and other.
func (s IDSet) Intersect(other IDSet) IDSet {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	out := make(IDSet)
	for id := range small {
		if large.Has(id) {
			out[id] = struct{}{}
		}
	}
	return out
}

// Sorted returns the identifiers in ascending order for deterministic output.
func (s IDSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// Snapshot is the destination's identifier state for one table, split by the
// soft-delete flag. Live and Deleted are disjoint; together they are every
// identifier the table has ever stored.
type Snapshot struct {
	Live    IDSet
	Deleted IDSet
}

// Result is the outcome of reconciling one table.
type Result struct {
	// ToDelete are live identifiers missing from the source.
	ToDelete IDSet `json:"-"`
	// ToReactivate are soft-deleted identifiers that reappeared in the source.
	ToReactivate IDSet `json:"-"`
}

// TableState is the position of a table in the load state machine.
type TableState string

const (
	StatePending    TableState = "pending"
	StateConnected  TableState = "connected"
	StateReconciled TableState = "reconciled"
	StateFlagged    TableState = "flagged"
	StateUpserted   TableState = "upserted"
	StateDone       TableState = "done"
	StateFailed     TableState = "failed"
)

// Status is the terminal classification of a table in a run.
type Status string

const (
	StatusSuccess Status = "success"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// TableResult records what happened to one table during a run.
type TableResult struct {
	Table       string     `json:"table"`
	State       TableState `json:"state"`
	Status      Status     `json:"status"`
	Reason      string     `json:"reason,omitempty"`
	Rows        int        `json:"rows"`
	Deleted     int        `json:"deleted"`
	Reactivated int        `json:"reactivated"`
	Upserted    int        `json:"upserted"`
	DryRun      bool       `json:"dry_run,omitempty"`
}

// RunSummary collects the per-table results of one synchronization run.
type RunSummary struct {
	RunID    string        `json:"run_id"`
	Started  time.Time     `json:"started"`
	Finished time.Time     `json:"finished"`
	Tables   []TableResult `json:"tables"`
}

// Failed reports whether any table ended in the failed status.
func (s *RunSummary) Failed() bool {
	for _, t := range s.Tables {
		if t.Status == StatusFailed {
			return true
		}
	}
	return false
}

// Count returns the number of tables with the given status.
func (s *RunSummary) Count(status Status) int {
	n := 0
	for _, t := range s.Tables {
		if t.Status == status {
			n++
		}
	}
	return n
}
