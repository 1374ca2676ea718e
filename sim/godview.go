package sim

// A Box is a permanent log record: the named trip was actually in transit
// over the half-open real-time interval [Start.R0, Rf). Boxes only describe
// intervals strictly in the past relative to the simulation clock.
type Box struct {
	Start Event
	Rf    RealTime
}

// A GodView is one immutable snapshot of the whole simulation: the ruleset,
// the clock, the partition of the hypertime axis, and the transit log.
// Stepping never mutates a snapshot; it produces a new one, so callers may
// retain any number of snapshots for scrubbing.
type GodView struct {
	Rules  Ruleset
	Now    RealTime
	Chunks []Chunk
	Past   []Box
}

// NewGodView creates the initial snapshot: clock at zero, a single chunk
// covering the whole universe with an empty history, and an empty past.
func NewGodView(rules Ruleset) GodView {
	return GodView{
		Rules: rules,
		Now:   0,
		Chunks: []Chunk{
			{Start: 0, End: EdgeOfUniverse(), History: NewHistory()},
		},
	}
}

// Step applies the single atomic transition of the engine: it discovers the
// departures happening exactly now, advances the clock to the next
// interesting time, sweeps the corresponding bands across the partition, and
// logs one box per departure that occurred.
//
// Once the clock reaches EndOfTime the snapshot is a fixed point and Step
// returns it unchanged apart from normalization.
func Step(gv GodView) GodView {
	chunks := NormalizeChunks(gv.Chunks, departureSplitPoints(gv))

	next := NextInterestingTime(chunks, gv.Rules, gv.Now)
	if IsEndOfTime(next) {
		// Permanently quiescent. Without any event left to protect a
		// boundary, the partition collapses to its minimal form, which makes
		// stepping the returned snapshot a strict no-op.
		return GodView{
			Rules:  gv.Rules,
			Now:    next,
			Chunks: NormalizeChunks(chunks, nil),
			Past:   gv.Past,
		}
	}
	dt := next - gv.Now

	var immediate []Event
	for _, e := range NonPastEvents(chunks, gv.Rules, gv.Now) {
		if e.R0 == gv.Now {
			immediate = append(immediate, e)
		}
	}
	occurring := dropPreempted(immediate)

	evolved := EvolveChunks(chunks, occurring, dt)

	past := make([]Box, len(gv.Past), len(gv.Past)+len(occurring))
	copy(past, gv.Past)
	for _, e := range occurring {
		past = append(past, Box{Start: e, Rf: e.R0 + dt})
	}

	out := GodView{Rules: gv.Rules, Now: next, Chunks: evolved, Past: past}
	out.Chunks = NormalizeChunks(out.Chunks, departureSplitPoints(out))

	return out
}

// departureSplitPoints collects the departure points of every currently
// discoverable non-past event. Normalizing with these forced splits keeps a
// just-triggered boundary from being merged away even when the histories on
// both sides look identical.
func departureSplitPoints(gv GodView) map[Hypertime]struct{} {
	points := make(map[Hypertime]struct{})
	for _, e := range NonPastEvents(gv.Chunks, gv.Rules, gv.Now) {
		points[e.DepartH0] = struct{}{}
	}

	return points
}

// dropPreempted removes any event whose departure point coincides with
// another event's arrival point. The arriving band rewrites the history at
// that coordinate the same instant, so the departure keyed by the old
// history does not occur and its boundary must not be evolved twice.
func dropPreempted(immediate []Event) []Event {
	kept := make([]Event, 0, len(immediate))

	for i, e := range immediate {
		preempted := false
		for j, other := range immediate {
			if i != j && e.DepartH0 == other.ArriveH0 {
				preempted = true
				break
			}
		}

		if !preempted {
			kept = append(kept, e)
		}
	}

	return kept
}
