package store

import "sync/atomic"

// Lakehouse publishes the current snapshot to readers. The snapshot
// reference is swapped atomically; a query that started against the
// old snapshot keeps reading it unchanged.
type Lakehouse struct {
	snap atomic.Pointer[Snapshot]
}

// NewLakehouse creates a lakehouse serving the given snapshot
func NewLakehouse(s *Snapshot) *Lakehouse {
	l := &Lakehouse{}
	l.snap.Store(s)
	return l
}

// Snapshot returns the currently published snapshot
func (l *Lakehouse) Snapshot() *Snapshot {
	return l.snap.Load()
}

// Swap replaces the published snapshot. Callers must pass a fully
// constructed snapshot; in-place mutation of a published snapshot is
// never allowed.
func (l *Lakehouse) Swap(s *Snapshot) {
	l.snap.Store(s)
}
