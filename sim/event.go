package sim

// An Event is a discovered, not-yet-logged candidate firing of a trip. The
// trip departs at real time R0 from the departure point DepartH0 and, if it
// occurs, lands on ArriveH0.
type Event struct {
	TripID   TripID
	R0       RealTime
	DepartH0 Hypertime
	ArriveH0 Hypertime
}

// NonPastEvents derives every trip firing that is either departing exactly
// now or will depart in the future, given the current partition.
//
// Only the start coordinate of each chunk is evaluated; the interior of a
// chunk is covered implicitly because evolution sweeps a band across it one
// instant after the coordinate to its left.
//
// An arrival can instantaneously complete the history that a further rule is
// keyed by. One level of such chained lookahead is performed: for a trip
// departing exactly now, the trips keyed by the arrival chunk's history plus
// the arriving traveler are discovered as second-order events. Deeper chains
// surface naturally on subsequent steps.
func NonPastEvents(chunks []Chunk, rules Ruleset, now RealTime) []Event {
	var events []Event

	for _, c := range chunks {
		for _, t := range rules.Lookup(c.History) {
			r0 := DepartureRealTime(c.Start, t.Depart)
			if r0 < now {
				// Strictly past; already logged as a box.
				continue
			}

			arriveH0 := ArrivalHypertime(r0, t.Arrive)
			events = append(events, Event{
				TripID:   t.ID,
				R0:       r0,
				DepartH0: c.Start,
				ArriveH0: arriveH0,
			})

			if r0 == now && arriveH0 >= 0 {
				events = append(events,
					chainedEvents(chunks, rules, now, t.ID, c.Start, arriveH0)...)
			}
		}
	}

	return events
}

// chainedEvents discovers the second-order departures enabled by a trip that
// is departing now and landing on arriveH0. The emitted events keep the
// first-order departure point as their DepartH0.
func chainedEvents(
	chunks []Chunk,
	rules Ruleset,
	now RealTime,
	arriving TripID,
	departH0, arriveH0 Hypertime,
) []Event {
	landing := chunkContaining(chunks, arriveH0)
	postArrival := landing.History.With(arriving)

	var events []Event
	for _, t2 := range rules.Lookup(postArrival) {
		r0 := DepartureRealTime(arriveH0, t2.Depart)
		if r0 <= now {
			continue
		}

		events = append(events, Event{
			TripID:   t2.ID,
			R0:       r0,
			DepartH0: departH0,
			ArriveH0: ArrivalHypertime(r0, t2.Arrive),
		})
	}

	return events
}
