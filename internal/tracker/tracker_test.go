package tracker

import (
	"fmt"
	"testing"
	"time"

	"builders-panel/internal/model"
)

func snapshotOf(n int) model.Snapshot {
	base := time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)
	out := make(model.Snapshot, n)
	for i := range out {
		out[i] = model.NewRecord("TEST_EVENT", fmt.Sprintf("n%d", i), base.Add(time.Duration(i)*time.Second))
	}
	return out
}

func TestDetectNew(t *testing.T) {
	snap := snapshotOf(5)

	tests := []struct {
		name      string
		prevCount int
		snapshot  model.Snapshot
		want      []string
	}{
		{name: "two new at the tail", prevCount: 3, snapshot: snap, want: []string{"n3", "n4"}},
		{name: "no growth", prevCount: 5, snapshot: snap, want: nil},
		{name: "shrunk upstream", prevCount: 7, snapshot: snap, want: nil},
		{name: "first poll", prevCount: 0, snapshot: snap[:2], want: []string{"n0", "n1"}},
		{name: "negative cursor treated as zero", prevCount: -1, snapshot: snap[:1], want: []string{"n0"}},
		{name: "empty snapshot", prevCount: 0, snapshot: nil, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DetectNew(tt.prevCount, tt.snapshot)
			if len(got) != len(tt.want) {
				t.Fatalf("DetectNew() returned %d records, want %d", len(got), len(tt.want))
			}
			for i, r := range got {
				if r.Payload != tt.want[i] {
					t.Errorf("record %d = %q, want %q", i, r.Payload, tt.want[i])
				}
			}
		})
	}
}

func TestDetectNew_DoesNotAliasSnapshot(t *testing.T) {
	snap := snapshotOf(3)
	got := DetectNew(1, snap)
	got[0].Payload = "changed"
	if snap[1].Payload != "n1" {
		t.Error("DetectNew result shares memory with the snapshot")
	}
}

func TestComputeUnread_NeverNegative(t *testing.T) {
	for s := 0; s <= 4; s++ {
		for r := 0; r <= 6; r++ {
			keys := make([]string, r)
			for i := range keys {
				keys[i] = fmt.Sprintf("k%d", i)
			}
			got := ComputeUnread(snapshotOf(s), NewReadSet(keys...))
			want := s - r
			if want < 0 {
				want = 0
			}
			if got != want {
				t.Errorf("ComputeUnread(S=%d, R=%d) = %d, want %d", s, r, got, want)
			}
		}
	}
}

func TestMarkAllRead_Idempotent(t *testing.T) {
	snap := snapshotOf(3)

	once := MarkAllRead(snap, NewReadSet())
	twice := MarkAllRead(snap, once)

	if !once.Equal(twice) {
		t.Errorf("second MarkAllRead changed the set: %v vs %v", once.Keys(), twice.Keys())
	}
	if once.Len() != 3 {
		t.Errorf("Len() = %d, want 3", once.Len())
	}
	for _, r := range snap {
		if !once.IsRead(r) {
			t.Errorf("%s not marked read", r.Key())
		}
	}
	if ComputeUnread(snap, twice) != 0 {
		t.Error("unread should be zero after MarkAllRead")
	}
}

func TestMarkAllRead_DoesNotMutateInput(t *testing.T) {
	in := NewReadSet("a")
	_ = MarkAllRead(snapshotOf(2), in)
	if in.Len() != 1 {
		t.Errorf("input set modified, Len() = %d", in.Len())
	}
}

func TestMarkAllRead_DuplicateIdentityUndercounts(t *testing.T) {
	ts := time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)
	snap := model.Snapshot{
		model.NewRecord("ORDER_CREATED", "a", ts),
		model.NewRecord("ORDER_CREATED", "b", ts),
	}
	rs := MarkAllRead(snap, NewReadSet())
	if rs.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 for colliding identities", rs.Len())
	}
	if got := ComputeUnread(snap, rs); got != 1 {
		t.Errorf("ComputeUnread() = %d, want 1", got)
	}
}
