package sim

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// expectValidPartition checks the structural chunk invariants: sorted,
// gap-free, starting at 0, ending at the universe edge, all intervals of
// positive length.
func expectValidPartition(chunks []Chunk) {
	GinkgoHelper()

	Expect(chunks).NotTo(BeEmpty())
	Expect(chunks[0].Start).To(BeNumerically("==", 0))
	Expect(math.IsInf(float64(chunks[len(chunks)-1].End), 1)).To(BeTrue())

	for i, c := range chunks {
		Expect(c.End).To(BeNumerically(">", c.Start))
		if i > 0 {
			Expect(c.Start).To(BeNumerically("==", chunks[i-1].End))
		}
	}
}

func expectConsistentPast(gv GodView) {
	GinkgoHelper()

	for _, b := range gv.Past {
		Expect(b.Start.R0).To(BeNumerically("<", b.Rf))
		Expect(b.Rf).To(BeNumerically("<=", gv.Now))
	}
}

var _ = Describe("GodView", func() {
	It("should start with one empty-history chunk at time zero", func() {
		gv := NewGodView(NewTripTable())

		Expect(gv.Now).To(BeNumerically("==", 0))
		Expect(gv.Past).To(BeEmpty())
		Expect(gv.Chunks).To(HaveLen(1))
		Expect(gv.Chunks[0].Start).To(BeNumerically("==", 0))
		Expect(IsEndOfTime(RealTime(gv.Chunks[0].End))).To(BeTrue())
		Expect(gv.Chunks[0].History.Equal(NewHistory())).To(BeTrue())
	})
})

var _ = Describe("Step", func() {
	It("should go quiescent under an empty ruleset", func() {
		gv := NewGodView(NewTripTable())

		out := Step(gv)

		Expect(IsEndOfTime(out.Now)).To(BeTrue())
		Expect(out.Chunks).To(HaveLen(1))
		Expect(out.Past).To(BeEmpty())
	})

	It("should be a fixed point once quiescent", func() {
		gv := Step(NewGodView(NewTripTable()))

		again := Step(gv)

		Expect(again.Now).To(Equal(gv.Now))
		Expect(again.Chunks).To(Equal(gv.Chunks))
		Expect(again.Past).To(Equal(gv.Past))
	})

	It("should not mutate its input", func() {
		rules := NewTripTable()
		rules.Add(NewHistory(), Trip{ID: "a", Depart: 3, Arrive: 1})
		gv := NewGodView(rules)
		first := Step(gv)

		Step(first)
		Step(first)

		Expect(gv.Now).To(BeNumerically("==", 0))
		Expect(gv.Chunks).To(HaveLen(1))
		Expect(first.Now).To(BeNumerically("==", 3))
		Expect(first.Past).To(BeEmpty())
	})

	It("should keep the clock strictly increasing until quiescent", func() {
		rules := NewTripTable()
		rules.Add(NewHistory(), Trip{ID: "a", Depart: 3, Arrive: 1})
		gv := NewGodView(rules)

		for i := 0; i < 12; i++ {
			next := Step(gv)
			Expect(next.Now).To(BeNumerically(">", gv.Now))
			expectValidPartition(next.Chunks)
			expectConsistentPast(next)
			gv = next
		}
	})
})

var _ = Describe("EvolveUntil", func() {
	It("should stop early when the universe goes quiescent", func() {
		gv := EvolveUntil(100, NewGodView(NewTripTable()))

		Expect(IsEndOfTime(gv.Now)).To(BeTrue())
		Expect(gv.Past).To(BeEmpty())
	})

	It("should produce repeating stripes for a single past-travel rule",
		func() {
			rules := NewTripTable()
			rules.Add(NewHistory(), Trip{ID: "a", Depart: 3, Arrive: 1})

			gv := EvolveUntil(20, NewGodView(rules))

			Expect(gv.Now).To(BeNumerically("==", 21))
			Expect(gv.Past).To(HaveLen(5))

			for i, b := range gv.Past {
				departH0 := Hypertime(4 * i)
				r0 := RealTime(3 + 4*i)

				Expect(b.Start.TripID).To(Equal(TripID("a")))
				Expect(b.Start.R0).To(BeNumerically("==", r0))
				Expect(b.Rf).To(BeNumerically("==", r0+2))
				Expect(b.Start.DepartH0).To(BeNumerically("==", departH0))
				Expect(b.Start.ArriveH0).To(
					BeNumerically("==", departH0+2))
			}

			expectValidPartition(gv.Chunks)
			expectConsistentPast(gv)
		})

	It("should let an arriving traveler preempt a concurrent departure",
		func() {
			rules := NewTripTable()
			rules.Add(NewHistory(), Trip{ID: "a", Depart: 5, Arrive: 0})
			rules.Add(NewHistory("a"), Trip{ID: "b", Depart: 2, Arrive: 5})

			gv := EvolveUntil(15, NewGodView(rules))

			Expect(len(gv.Past)).To(BeNumerically(">=", 3))

			first := gv.Past[0]
			Expect(first.Start).To(Equal(Event{
				TripID: "a", R0: 5, DepartH0: 0, ArriveH0: 5,
			}))
			Expect(first.Rf).To(BeNumerically("==", 7))

			second := gv.Past[1]
			Expect(second.Start).To(Equal(Event{
				TripID: "b", R0: 7, DepartH0: 5, ArriveH0: 2,
			}))
			Expect(second.Rf).To(BeNumerically("==", 9))

			// The departure of a from hypertime 2 at real time 7 was
			// preempted by b landing there the same instant; a instead
			// departs from hypertime 4 two seconds later.
			third := gv.Past[2]
			Expect(third.Start).To(Equal(Event{
				TripID: "a", R0: 9, DepartH0: 4, ArriveH0: 9,
			}))
			Expect(third.Rf).To(BeNumerically("==", 10))

			expectValidPartition(gv.Chunks)
			expectConsistentPast(gv)
		})

	It("should keep every snapshot structurally sound along the way", func() {
		rules := NewTripTable()
		rules.Add(NewHistory(), Trip{ID: "a", Depart: 5, Arrive: 0})
		rules.Add(NewHistory("a"), Trip{ID: "b", Depart: 2, Arrive: 5})
		gv := NewGodView(rules)

		for gv.Now < 30 && !IsEndOfTime(gv.Now) {
			gv = Step(gv)
			expectValidPartition(gv.Chunks)
			expectConsistentPast(gv)
		}
	})
})
