package sim

// A Ruleset answers which trips fire for an exact history. A trip keyed by
// history H fires for H only, never for a superset or subset of H.
//
// Ruleset is a capability rather than a concrete map. The engine only ever
// performs lookups and must not assume the ruleset is enumerable.
type Ruleset interface {
	// Lookup returns the ordered list of trips that fire when the current
	// history equals h exactly. It returns nil when no rule is keyed by h.
	Lookup(h History) []Trip
}

// A TripTable is the plain map-backed Ruleset implementation.
type TripTable struct {
	entries map[string][]Trip
}

// NewTripTable creates an empty TripTable.
func NewTripTable() *TripTable {
	return &TripTable{
		entries: make(map[string][]Trip),
	}
}

// Add appends trips to the rule list keyed by exactly h. Validation of
// duplicate trip IDs belongs to the parsing layer, not here.
func (t *TripTable) Add(h History, trips ...Trip) {
	key := h.Key()
	t.entries[key] = append(t.entries[key], trips...)
}

// Lookup returns the trips keyed by exactly h.
func (t *TripTable) Lookup(h History) []Trip {
	return t.entries[h.Key()]
}
