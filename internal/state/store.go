package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/uetail/internal/target"
)

// Snapshot represents the latest target list available to the UI.
type Snapshot struct {
	Targets             []target.Target
	HasTargets          bool // true once any refresh succeeded
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive refresh failures
	Generation          uint64
}

// Discovered returns the number of auto-discovered projects in the list.
func (s Snapshot) Discovered() int {
	_, n := target.Counts(s.Targets)
	return n
}

// IsStale returns true when discovery has failed several times in a row.
func (s Snapshot) IsStale() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update replaces the stored target list. When err is non-nil the targets
// are still stored (they hold whatever could be gathered) and the error is
// recorded for visibility. A nil targets slice with a non-nil err keeps the
// previous list.
func (s *Store) Update(targets []target.Target, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.LastUpdated = time.Now()
	s.snapshot.Generation++

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.ConsecutiveFailures++
		if targets == nil {
			return
		}
	} else {
		s.snapshot.LastError = nil
		s.snapshot.ConsecutiveFailures = 0
	}

	s.snapshot.Targets = cloneTargets(targets)
	s.snapshot.HasTargets = true
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Targets = cloneTargets(s.snapshot.Targets)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneTargets(items []target.Target) []target.Target {
	if len(items) == 0 {
		return nil
	}
	dup := make([]target.Target, len(items))
	copy(dup, items)
	return dup
}
