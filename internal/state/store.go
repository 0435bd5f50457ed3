package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/framewatch/internal/source"
)

// Snapshot represents the latest data available to the UI.
type Snapshot struct {
	Resource            source.Resource
	HasResource         bool
	Seq                 uint64 // sequence number of the reload that produced the data
	Reloads             uint64 // completed reloads, successful or not
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int
}

// IsOffline returns true when the source has failed for multiple reloads.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the snapshot. Reload results can
// arrive out of order; results older than the newest applied one are dropped.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
	applied  uint64
}

// Update records the outcome of reload seq. When err is non-nil the previous
// data is kept but the error is recorded for visibility. It reports whether
// the result was applied.
func (s *Store) Update(seq uint64, res *source.Resource, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != 0 && seq < s.applied {
		return false
	}
	if seq > s.applied {
		s.applied = seq
	}
	s.snapshot.Reloads++
	s.snapshot.LastUpdated = time.Now()

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.ConsecutiveFailures++
		return true
	}

	if res != nil {
		s.snapshot.Resource = *res
		s.snapshot.HasResource = true
		s.snapshot.Seq = seq
	}
	s.snapshot.LastError = nil
	s.snapshot.ConsecutiveFailures = 0
	return true
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}
