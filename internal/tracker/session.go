package tracker

import (
	"sync"

	"builders-panel/internal/model"

	"github.com/google/uuid"
)

// Session is the per-user polling state: cursor, read set and the last applied snapshot.
//
// Every fetch takes a sequence number from Issue before it is sent. Results are applied
// only when their sequence is newer than the last applied one, so a slow response can
// never move the cursor back.
type Session struct {
	id string

	mu       sync.Mutex
	cursor   int
	readSet  ReadSet
	snapshot model.Snapshot
	issued   uint64
	applied  uint64

	unread        int
	unreadEmitted bool
}

// Delta is what changed when a snapshot was applied.
type Delta struct {
	Seq           uint64
	Snapshot      model.Snapshot
	New           []model.Record
	PreviousCount int
	Unread        int
	UnreadChanged bool
	// ListChanged is true when the snapshot length differs from the previous cursor.
	ListChanged bool
}

// State is a copy of the session internals.
type State struct {
	ID       string
	Cursor   int
	ReadSet  ReadSet
	Snapshot model.Snapshot
	Unread   int
	Issued   uint64
	Applied  uint64
}

func NewSession() *Session {
	return &Session{
		id:      uuid.NewString(),
		readSet: NewReadSet(),
	}
}

func (s *Session) ID() string { return s.id }

// Issue hands out the next request sequence number.
func (s *Session) Issue() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	return s.issued
}

// Apply runs change detection for a fresh snapshot and advances the cursor.
func (s *Session) Apply(seq uint64, snapshot model.Snapshot) (Delta, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq <= s.applied {
		return Delta{}, ErrStaleResult
	}
	return s.applyLocked(seq, snapshot), nil
}

// MarkAllRead acknowledges every record in snapshot. The read set only grows, so
// identities from a stale snapshot are still merged; the cursor moves only for fresh ones.
func (s *Session) MarkAllRead(seq uint64, snapshot model.Snapshot) (Delta, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.readSet = MarkAllRead(snapshot, s.readSet)
	if seq <= s.applied {
		return s.unreadDeltaLocked(), ErrStaleResult
	}
	return s.applyLocked(seq, snapshot), nil
}

func (s *Session) applyLocked(seq uint64, snapshot model.Snapshot) Delta {
	prev := s.cursor
	d := Delta{
		Seq:           seq,
		Snapshot:      snapshot,
		New:           DetectNew(prev, snapshot),
		PreviousCount: prev,
		ListChanged:   len(snapshot) != prev,
	}

	s.applied = seq
	s.cursor = len(snapshot)
	s.snapshot = snapshot

	u := s.unreadDeltaLocked()
	d.Unread, d.UnreadChanged = u.Unread, u.UnreadChanged
	return d
}

func (s *Session) unreadDeltaLocked() Delta {
	unread := ComputeUnread(s.snapshot, s.readSet)
	changed := !s.unreadEmitted || unread != s.unread
	s.unread = unread
	s.unreadEmitted = true
	return Delta{Seq: s.applied, Snapshot: s.snapshot, Unread: unread, UnreadChanged: changed}
}

// Reset drops all state. Requests issued before the reset are treated as stale.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cursor = 0
	s.readSet = NewReadSet()
	s.snapshot = nil
	s.unread = 0
	s.unreadEmitted = false
	s.applied = s.issued
}

// State returns a copy of the session state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return State{
		ID:       s.id,
		Cursor:   s.cursor,
		ReadSet:  s.readSet.With(),
		Snapshot: append(model.Snapshot(nil), s.snapshot...),
		Unread:   s.unread,
		Issued:   s.issued,
		Applied:  s.applied,
	}
}
