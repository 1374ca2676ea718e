package sim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	gomock "go.uber.org/mock/gomock"
)

var _ = Describe("NonPastEvents", func() {
	It("should discover a future departure", func() {
		rules := NewTripTable()
		rules.Add(NewHistory(), Trip{ID: "a", Depart: 8, Arrive: 6})

		events := NonPastEvents(wholeUniverse(NewHistory()), rules, 5)

		Expect(events).To(HaveLen(1))
		Expect(events[0]).To(Equal(Event{
			TripID: "a", R0: 8, DepartH0: 0, ArriveH0: 2,
		}))
	})

	It("should skip strictly past departures", func() {
		rules := NewTripTable()
		rules.Add(NewHistory(), Trip{ID: "a", Depart: 3, Arrive: 1})

		events := NonPastEvents(wholeUniverse(NewHistory()), rules, 5)

		Expect(events).To(BeEmpty())
	})

	It("should discover departures per chunk boundary", func() {
		rules := NewTripTable()
		rules.Add(NewHistory(), Trip{ID: "a", Depart: 10, Arrive: 0})
		chunks := []Chunk{
			{Start: 0, End: 4, History: NewHistory()},
			{Start: 4, End: 6, History: NewHistory("b")},
			{Start: 6, End: EdgeOfUniverse(), History: NewHistory()},
		}

		events := NonPastEvents(chunks, rules, 0)

		Expect(events).To(HaveLen(2))
		Expect(events[0].DepartH0).To(BeNumerically("==", 0))
		Expect(events[1].DepartH0).To(BeNumerically("==", 6))
		Expect(events[1].R0).To(BeNumerically("==", 16))
	})

	It("should chain one level of lookahead through an arrival", func() {
		rules := NewTripTable()
		rules.Add(NewHistory(), Trip{ID: "a", Depart: 5, Arrive: 0})
		rules.Add(NewHistory("a"), Trip{ID: "b", Depart: 2, Arrive: 5})

		events := NonPastEvents(wholeUniverse(NewHistory()), rules, 5)

		Expect(events).To(HaveLen(2))
		Expect(events[0]).To(Equal(Event{
			TripID: "a", R0: 5, DepartH0: 0, ArriveH0: 5,
		}))
		// The chained event keeps the first-order departure point.
		Expect(events[1]).To(Equal(Event{
			TripID: "b", R0: 7, DepartH0: 0, ArriveH0: 2,
		}))
	})

	It("should not chain through an off-edge arrival", func() {
		rules := NewTripTable()
		rules.Add(NewHistory(), Trip{ID: "a", Depart: 5, Arrive: 7})
		rules.Add(NewHistory("a"), Trip{ID: "b", Depart: 2, Arrive: 5})

		events := NonPastEvents(wholeUniverse(NewHistory()), rules, 5)

		Expect(events).To(HaveLen(1))
		Expect(events[0].ArriveH0).To(BeNumerically("==", -2))
	})

	It("should not chain to a departure at or before now", func() {
		rules := NewTripTable()
		rules.Add(NewHistory(), Trip{ID: "a", Depart: 5, Arrive: 0})
		rules.Add(NewHistory("a"), Trip{ID: "b", Depart: 0, Arrive: 1})

		events := NonPastEvents(wholeUniverse(NewHistory()), rules, 5)

		// b would depart at 5+0 == now and is not a second-order event.
		Expect(events).To(HaveLen(1))
		Expect(events[0].TripID).To(Equal(TripID("a")))
	})

	It("should not chain beyond one level", func() {
		rules := NewTripTable()
		rules.Add(NewHistory(), Trip{ID: "a", Depart: 5, Arrive: 0})
		rules.Add(NewHistory("a"), Trip{ID: "b", Depart: 2, Arrive: 5})
		rules.Add(NewHistory("a", "b"), Trip{ID: "c", Depart: 1, Arrive: 0})

		events := NonPastEvents(wholeUniverse(NewHistory()), rules, 5)

		Expect(events).To(HaveLen(2))
	})
})

var _ = Describe("NonPastEvents with a ruleset capability", func() {
	var (
		mockCtrl *gomock.Controller
		rules    *MockRuleset
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		rules = NewMockRuleset(mockCtrl)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should look up each chunk's exact history", func() {
		chunks := []Chunk{
			{Start: 0, End: 2, History: NewHistory()},
			{Start: 2, End: EdgeOfUniverse(), History: NewHistory("a")},
		}

		rules.EXPECT().Lookup(NewHistory()).Return(nil)
		rules.EXPECT().Lookup(NewHistory("a")).Return(nil)

		Expect(NonPastEvents(chunks, rules, 0)).To(BeEmpty())
	})

	It("should look up the post-arrival history during lookahead", func() {
		chunks := wholeUniverse(NewHistory())

		rules.EXPECT().Lookup(NewHistory()).
			Return([]Trip{{ID: "a", Depart: 0, Arrive: -3}})
		rules.EXPECT().Lookup(NewHistory("a")).Return(nil)

		events := NonPastEvents(chunks, rules, 0)

		Expect(events).To(HaveLen(1))
		Expect(events[0].ArriveH0).To(BeNumerically("==", 3))
	})
})
