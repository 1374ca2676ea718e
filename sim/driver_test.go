package sim

import (
	"bytes"
	"log"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type recordingHook struct {
	positions []*HookPos
	boxes     []Box
}

func (h *recordingHook) Func(ctx HookCtx) {
	h.positions = append(h.positions, ctx.Pos)

	if ctx.Pos == HookPosAfterStep {
		h.boxes = append(h.boxes, ctx.Detail.([]Box)...)
	}
}

var _ = Describe("Driver", func() {
	var rules *TripTable

	BeforeEach(func() {
		rules = NewTripTable()
		rules.Add(NewHistory(), Trip{ID: "a", Depart: 3, Arrive: 1})
	})

	It("should start at the initial snapshot", func() {
		d := NewDriver(rules)

		Expect(d.CurrentTime()).To(BeNumerically("==", 0))
		Expect(d.SnapshotCount()).To(Equal(1))
		Expect(d.View().Past).To(BeEmpty())
	})

	It("should retain every snapshot it produces", func() {
		d := NewDriver(rules)

		Expect(d.RunUntil(20)).To(Succeed())

		Expect(d.CurrentTime()).To(BeNumerically("==", 21))
		Expect(d.SnapshotAt(0).Now).To(BeNumerically("==", 0))

		previous := RealTime(-1)
		for i := 0; i < d.SnapshotCount(); i++ {
			snapshot := d.SnapshotAt(i)
			Expect(snapshot.Now).To(BeNumerically(">", previous))
			previous = snapshot.Now
		}
	})

	It("should panic on an out-of-range snapshot index", func() {
		d := NewDriver(rules)

		Expect(func() {
			d.SnapshotAt(1)
		}).To(Panic())
	})

	It("should invoke hooks around each step", func() {
		d := NewDriver(rules)
		hook := &recordingHook{}
		d.AcceptHook(hook)

		d.StepOnce()
		d.StepOnce()

		Expect(hook.positions).To(Equal([]*HookPos{
			HookPosBeforeStep, HookPosAfterStep,
			HookPosBeforeStep, HookPosAfterStep,
		}))
	})

	It("should hand new boxes to after-step hooks", func() {
		d := NewDriver(rules)
		hook := &recordingHook{}
		d.AcceptHook(hook)

		Expect(d.RunUntil(20)).To(Succeed())

		Expect(hook.boxes).To(Equal(d.View().Past))
	})

	It("should stop at quiescence", func() {
		d := NewDriver(NewTripTable())

		Expect(d.RunUntil(100)).To(Succeed())

		Expect(IsEndOfTime(d.CurrentTime())).To(BeTrue())

		count := d.SnapshotCount()
		Expect(d.RunUntil(200)).To(Succeed())
		Expect(d.SnapshotCount()).To(Equal(count))
	})
})

var _ = Describe("BoxLogger", func() {
	It("should print every transit the simulation logs", func() {
		rules := NewTripTable()
		rules.Add(NewHistory(), Trip{ID: "a", Depart: 3, Arrive: 1})

		buf := &bytes.Buffer{}
		d := NewDriver(rules)
		d.AcceptHook(NewBoxLogger(log.New(buf, "", 0)))

		Expect(d.RunUntil(10)).To(Succeed())

		Expect(buf.String()).To(ContainSubstring("trip a in transit"))
	})
})
