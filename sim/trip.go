package sim

import (
	"sort"
	"strings"
)

// TripID is the opaque unique identifier of a traveler and its rule.
type TripID string

// A Trip is one potential journey. Depart and Arrive are the calendar offsets
// that, combined with the hypertime a history becomes complete at, determine
// when the traveler leaves and where it lands.
type Trip struct {
	ID     TripID
	Depart CalTime
	Arrive CalTime
}

// A History is the exact set of travelers that have reached a given hypertime
// coordinate. Histories are treated as immutable; With returns a copy.
type History map[TripID]struct{}

// NewHistory creates a history holding the given traveler IDs.
func NewHistory(ids ...TripID) History {
	h := make(History, len(ids))
	for _, id := range ids {
		h[id] = struct{}{}
	}
	return h
}

// Has tells if the traveler has reached this history.
func (h History) Has(id TripID) bool {
	_, ok := h[id]
	return ok
}

// With returns a new history that additionally contains id. The receiver is
// not modified.
func (h History) With(id TripID) History {
	out := make(History, len(h)+1)
	for k := range h {
		out[k] = struct{}{}
	}
	out[id] = struct{}{}
	return out
}

// Equal tells if two histories contain exactly the same travelers.
func (h History) Equal(other History) bool {
	if len(h) != len(other) {
		return false
	}

	for k := range h {
		if _, ok := other[k]; !ok {
			return false
		}
	}

	return true
}

// IDs returns the traveler IDs in sorted order.
func (h History) IDs() []TripID {
	ids := make([]TripID, 0, len(h))
	for k := range h {
		ids = append(ids, k)
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return ids
}

// Key returns the canonical string form of the history. Two histories have
// the same key if and only if they are Equal, so the key can serve as a map
// key for exact-match rule lookup.
func (h History) Key() string {
	ids := h.IDs()
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = string(id)
	}

	return strings.Join(parts, "\x1f")
}

// String returns a human-readable form of the history.
func (h History) String() string {
	ids := h.IDs()
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = string(id)
	}

	return "{" + strings.Join(parts, ",") + "}"
}
