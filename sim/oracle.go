package sim

// NextInterestingTime returns the minimal future real time at which the
// partition or any history must change. It returns EndOfTime when nothing
// will ever change again.
//
// Candidates, over all discoverable non-past events:
//   - a future event's own departure time;
//   - for a band departing exactly now, the moments its departure band and
//     its arrival band each reach the end of their chunks;
//   - for each pair of now events (a band paired with itself included), the
//     moment one band's arrival sweep catches up to where the other band
//     started departing, since the history active there changes at that
//     point.
func NextInterestingTime(chunks []Chunk, rules Ruleset, now RealTime) RealTime {
	events := NonPastEvents(chunks, rules, now)

	next := EndOfTime()
	var active []Event

	for _, e := range events {
		if e.R0 > now {
			next = minReal(next, e.R0)
			continue
		}

		active = append(active, e)
		next = minReal(next, now+TimeUntilChunkEnd(chunks, e.DepartH0))
		next = minReal(next, now+TimeUntilChunkEnd(chunks, e.ArriveH0))
	}

	for _, e := range active {
		for _, e2 := range active {
			if e2.ArriveH0 > e.DepartH0 {
				next = minReal(next, now+RealTime(e2.ArriveH0-e.DepartH0))
			}
		}
	}

	return next
}

func minReal(a, b RealTime) RealTime {
	if a < b {
		return a
	}
	return b
}
