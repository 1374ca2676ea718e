package sim

// EvolveChunks advances the partition across a step of length dt, applying
// the given set of simultaneous departures.
//
// For every chunk, each event whose arrival point falls inside it splits out
// the band [ArriveH0, ArriveH0+dt), tagged with the chunk's history plus the
// arriving traveler. Each event whose departure point falls inside the
// possibly already split chunk then splits out [DepartH0, DepartH0+dt)
// without changing its history; the departing band is distinguished for
// bookkeeping, the arrival elsewhere is what changes history.
//
// All events must share one departure real time. The result may contain
// mergeable neighbors; callers normalize.
func EvolveChunks(chunks []Chunk, nowEvents []Event, dt RealTime) []Chunk {
	requireSimultaneous(nowEvents)

	out := make([]Chunk, 0, len(chunks))
	for _, c := range chunks {
		pieces := []Chunk{c}

		for _, e := range nowEvents {
			if !c.Contains(e.ArriveH0) {
				continue
			}

			arrived := e.TripID
			pieces = carve(pieces,
				e.ArriveH0, e.ArriveH0+Hypertime(dt),
				func(h History) History { return h.With(arrived) })
		}

		for _, e := range nowEvents {
			if !c.Contains(e.DepartH0) {
				continue
			}

			pieces = carve(pieces, e.DepartH0, e.DepartH0+Hypertime(dt), nil)
		}

		out = append(out, pieces...)
	}

	return out
}

func requireSimultaneous(events []Event) {
	for _, e := range events {
		if e.R0 != events[0].R0 {
			invariantViolated(
				"evolving events disagree on departure time: %v vs %v",
				events[0].R0, e.R0)
		}
	}
}

// carve splits every piece overlapping [lo, hi) at the band boundaries and
// retags the inside of the band. A nil retag keeps the history, producing a
// pure split.
func carve(
	pieces []Chunk,
	lo, hi Hypertime,
	retag func(History) History,
) []Chunk {
	out := make([]Chunk, 0, len(pieces)+2)

	for _, p := range pieces {
		if hi <= p.Start || p.End <= lo {
			out = append(out, p)
			continue
		}

		if p.Start < lo {
			out = append(out, Chunk{Start: p.Start, End: lo, History: p.History})
		}

		mid := Chunk{
			Start:   maxHyper(p.Start, lo),
			End:     minHyper(p.End, hi),
			History: p.History,
		}
		if retag != nil {
			mid.History = retag(p.History)
		}
		out = append(out, mid)

		if hi < p.End {
			out = append(out, Chunk{Start: hi, End: p.End, History: p.History})
		}
	}

	return out
}

func minHyper(a, b Hypertime) Hypertime {
	if a < b {
		return a
	}
	return b
}

func maxHyper(a, b Hypertime) Hypertime {
	if a > b {
		return a
	}
	return b
}
