package tracker

import (
	"sort"

	"builders-panel/internal/model"
)

// ReadSet holds the identity keys of acknowledged notifications.
// The zero value is an empty set. Methods never mutate the receiver.
type ReadSet struct {
	keys map[string]struct{}
}

// NewReadSet returns a set holding keys.
func NewReadSet(keys ...string) ReadSet {
	s := ReadSet{keys: make(map[string]struct{}, len(keys))}
	for _, k := range keys {
		s.keys[k] = struct{}{}
	}
	return s
}

func (s ReadSet) Len() int { return len(s.keys) }

func (s ReadSet) Has(key string) bool {
	_, ok := s.keys[key]
	return ok
}

// Keys returns the keys in lexical order.
func (s ReadSet) Keys() []string {
	out := make([]string, 0, len(s.keys))
	for k := range s.keys {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// With returns a copy of s extended with keys.
func (s ReadSet) With(keys ...string) ReadSet {
	out := ReadSet{keys: make(map[string]struct{}, len(s.keys)+len(keys))}
	for k := range s.keys {
		out.keys[k] = struct{}{}
	}
	for _, k := range keys {
		out.keys[k] = struct{}{}
	}
	return out
}

// Equal reports whether both sets hold the same keys.
func (s ReadSet) Equal(other ReadSet) bool {
	if s.Len() != other.Len() {
		return false
	}
	for k := range s.keys {
		if !other.Has(k) {
			return false
		}
	}
	return true
}

// IsRead reports whether record has been acknowledged.
func (s ReadSet) IsRead(record model.Record) bool {
	return s.Has(record.Key())
}
