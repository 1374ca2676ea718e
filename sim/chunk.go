package sim

import (
	"math"
	"sort"
)

// A Chunk is a half-open interval [Start, End) of hypertime over which one
// history holds at the current real time.
type Chunk struct {
	Start   Hypertime
	End     Hypertime
	History History
}

// Contains tells if the hypertime coordinate h falls inside the chunk.
func (c Chunk) Contains(h Hypertime) bool {
	return c.Start <= h && h < c.End
}

// NormalizeChunks returns the canonical, minimal form of a chunk partition:
// sorted by start, adjacent chunks with equal histories merged. A boundary
// listed in forceSplitAt is never merged away even when the histories on both
// sides are equal; this keeps a just-triggered departure boundary alive.
//
// The input must already be a valid partition of [0, +Inf): non-empty,
// gap-free after sorting, no zero or negative length intervals. Violations
// panic with InvariantError. The input is never modified.
func NormalizeChunks(
	chunks []Chunk,
	forceSplitAt map[Hypertime]struct{},
) []Chunk {
	if len(chunks) == 0 {
		invariantViolated("chunk list must not be empty")
	}

	sorted := make([]Chunk, len(chunks))
	copy(sorted, chunks)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	validatePartition(sorted)

	out := make([]Chunk, 0, len(sorted))
	out = append(out, sorted[0])
	for _, c := range sorted[1:] {
		last := &out[len(out)-1]

		_, forced := forceSplitAt[c.Start]
		if !forced && last.History.Equal(c.History) {
			last.End = c.End
			continue
		}

		out = append(out, c)
	}

	return out
}

func validatePartition(sorted []Chunk) {
	if sorted[0].Start != 0 {
		invariantViolated(
			"chunk list must start at 0, starts at %v", sorted[0].Start)
	}

	if !math.IsInf(float64(sorted[len(sorted)-1].End), 1) {
		invariantViolated("chunk list must end at +Inf, ends at %v",
			sorted[len(sorted)-1].End)
	}

	for i, c := range sorted {
		if c.End <= c.Start {
			invariantViolated(
				"chunk [%v, %v) has non-positive length", c.Start, c.End)
		}

		if i > 0 && sorted[i-1].End != c.Start {
			invariantViolated("chunk list has a gap between %v and %v",
				sorted[i-1].End, c.Start)
		}
	}
}

// chunkContaining returns the chunk whose interval covers h. Every
// non-negative hypertime is covered by a valid partition, so a miss is an
// engine defect.
func chunkContaining(chunks []Chunk, h Hypertime) Chunk {
	for _, c := range chunks {
		if c.Contains(h) {
			return c
		}
	}

	invariantViolated("no chunk contains hypertime %v", h)
	return Chunk{}
}

// TimeUntilChunkEnd returns how long it takes a band sweeping rightward from
// h to reach the end of the chunk containing h. For negative h, the band is
// off the edge of the universe and the distance is how long until it crosses
// into the tracked range.
func TimeUntilChunkEnd(chunks []Chunk, h Hypertime) RealTime {
	if h < 0 {
		return RealTime(-h)
	}

	c := chunkContaining(chunks, h)

	return RealTime(c.End - h)
}
