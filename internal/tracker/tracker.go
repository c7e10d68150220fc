package tracker

import "builders-panel/internal/model"

// DetectNew returns the records of snapshot beyond previousCount, in order.
// Only length is compared: a snapshot that did not grow yields nothing, even if
// its content changed.
func DetectNew(previousCount int, snapshot model.Snapshot) []model.Record {
	if previousCount < 0 {
		previousCount = 0
	}
	if len(snapshot) <= previousCount {
		return nil
	}
	return append([]model.Record(nil), snapshot[previousCount:]...)
}

// ComputeUnread is max(0, len(snapshot) - readSet.Len()).
// It is an approximation: duplicate identities or a shrinking snapshot make it undercount.
func ComputeUnread(snapshot model.Snapshot, readSet ReadSet) int {
	unread := len(snapshot) - readSet.Len()
	if unread < 0 {
		return 0
	}
	return unread
}

// MarkAllRead returns readSet extended with the identity of every record in snapshot.
func MarkAllRead(snapshot model.Snapshot, readSet ReadSet) ReadSet {
	keys := make([]string, len(snapshot))
	for i, r := range snapshot {
		keys[i] = r.Key()
	}
	return readSet.With(keys...)
}
