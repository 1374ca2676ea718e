package sim

import "math"

// CalTime is a calendar offset carried by a trip rule, in the unit of second.
// It is relative, not a coordinate, and can be negative.
type CalTime float64

// Hypertime is a coordinate on the branching axis of the simulated universe.
// Only non-negative hypertimes are tracked; negative hypertime is off the
// edge of the universe.
type Hypertime float64

// RealTime is a coordinate on the master simulation clock axis.
type RealTime float64

// DepartureRealTime returns the real time at which a traveler positioned at
// hypertime h departs, given the trip's departure calendar offset c.
func DepartureRealTime(h Hypertime, c CalTime) RealTime {
	return RealTime(float64(h) + float64(c))
}

// ArrivalHypertime returns the hypertime on which a traveler departing at
// real time r lands, given the trip's arrival calendar offset c.
func ArrivalHypertime(r RealTime, c CalTime) Hypertime {
	return Hypertime(float64(r) - float64(c))
}

// EndOfTime is the real time at which a quiescent universe rests. A GodView
// whose clock reaches EndOfTime never changes again.
func EndOfTime() RealTime {
	return RealTime(math.Inf(1))
}

// EdgeOfUniverse is the upper end of the last chunk in every partition.
func EdgeOfUniverse() Hypertime {
	return Hypertime(math.Inf(1))
}

// IsEndOfTime tells if r is the quiescent clock value.
func IsEndOfTime(r RealTime) bool {
	return math.IsInf(float64(r), 1)
}
