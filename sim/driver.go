package sim

// EvolveUntil repeatedly steps the snapshot until the clock reaches target,
// or stops early when the universe goes quiescent. The final step may carry
// the clock past target; the boxes it logged still end exactly at the new
// clock, so the past never describes a non-past interval.
func EvolveUntil(target RealTime, gv GodView) GodView {
	for gv.Now < target && !IsEndOfTime(gv.Now) {
		gv = Step(gv)
	}

	return gv
}
