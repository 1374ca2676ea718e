package sim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Time Domain", func() {
	It("should relate depart offset to departure real time", func() {
		Expect(DepartureRealTime(3, 5)).To(BeNumerically("==", 8))
		Expect(DepartureRealTime(3, -5)).To(BeNumerically("==", -2))
	})

	It("should relate arrive offset to arrival hypertime", func() {
		Expect(ArrivalHypertime(8, 6)).To(BeNumerically("==", 2))
		Expect(ArrivalHypertime(5, 7)).To(BeNumerically("==", -2))
	})

	It("should round trip between the two conversions", func() {
		hs := []Hypertime{0, 0.5, 1, 2.25, 100, 1e6}
		cs := []CalTime{-10, -3.5, -1, 0, 0.5, 1, 7, 42}

		for _, h := range hs {
			for _, c := range cs {
				r := DepartureRealTime(h, c)
				Expect(ArrivalHypertime(r, c)).To(
					BeNumerically("==", h))
			}
		}
	})

	It("should recognize the quiescent clock", func() {
		Expect(IsEndOfTime(EndOfTime())).To(BeTrue())
		Expect(IsEndOfTime(0)).To(BeFalse())
		Expect(IsEndOfTime(1e18)).To(BeFalse())
	})
})
