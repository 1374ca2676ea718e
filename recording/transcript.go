package recording

import (
	"math"

	"github.com/sarchlab/hypertime/sim"
)

// BoxRow is the table schema for one transit box.
type BoxRow struct {
	TripID   string
	R0       float64
	Rf       float64
	DepartH0 float64
	ArriveH0 float64
}

// StepRow is the table schema for one applied step.
type StepRow struct {
	StepIndex  int
	Now        float64
	ChunkCount int
	BoxCount   int
}

// A Transcript is a driver hook that records every step and every new box
// into a Recorder.
type Transcript struct {
	recorder Recorder
	steps    int
}

// NewTranscript creates the transcript tables and returns the hook to attach
// to a driver.
func NewTranscript(recorder Recorder) *Transcript {
	recorder.CreateTable("boxes", BoxRow{})
	recorder.CreateTable("steps", StepRow{})

	return &Transcript{recorder: recorder}
}

// Func records the step that just completed.
func (t *Transcript) Func(ctx sim.HookCtx) {
	if ctx.Pos != sim.HookPosAfterStep {
		return
	}

	gv, ok := ctx.Item.(sim.GodView)
	if !ok {
		return
	}

	boxes, _ := ctx.Detail.([]sim.Box)
	for _, b := range boxes {
		t.recorder.InsertData("boxes", BoxRow{
			TripID:   string(b.Start.TripID),
			R0:       float64(b.Start.R0),
			Rf:       float64(b.Rf),
			DepartH0: float64(b.Start.DepartH0),
			ArriveH0: float64(b.Start.ArriveH0),
		})
	}

	t.steps++
	t.recorder.InsertData("steps", StepRow{
		StepIndex:  t.steps,
		Now:        clampForStorage(gv.Now),
		ChunkCount: len(gv.Chunks),
		BoxCount:   len(gv.Past),
	})
}

// clampForStorage maps the quiescent clock to the largest storable float so
// the steps table never carries SQL infinities.
func clampForStorage(r sim.RealTime) float64 {
	if sim.IsEndOfTime(r) {
		return math.MaxFloat64
	}

	return float64(r)
}
