package search_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"tracker.app/api-server/internal/model"
	"tracker.app/api-server/internal/search"
)

var _ = Describe("DateRange", func() {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	It("maps 7d to the preceding week", func() {
		start, end, err := search.DateRange("7d", now)
		Expect(err).NotTo(HaveOccurred())
		Expect(*start).To(Equal(time.Date(2024, 6, 8, 0, 0, 0, 0, time.UTC)))
		Expect(*end).To(Equal(now))
	})

	It("maps the other day symbols to their offsets", func() {
		for symbol, days := range map[string]int{"1d": 1, "30d": 30, "90d": 90} {
			start, end, err := search.DateRange(symbol, now)
			Expect(err).NotTo(HaveOccurred())
			Expect(*start).To(Equal(now.AddDate(0, 0, -days)))
			Expect(*end).To(Equal(now))
		}
	})

	It("omits both bounds for all", func() {
		start, end, err := search.DateRange("all", now)
		Expect(err).NotTo(HaveOccurred())
		Expect(start).To(BeNil())
		Expect(end).To(BeNil())
	})

	It("rejects unknown symbols", func() {
		_, _, err := search.DateRange("14d", now)
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("ApplicationLabel", func() {
	It("maps an absent application to the System sentinel", func() {
		Expect(search.ApplicationLabel(nil)).To(Equal("System"))
		empty := model.Application("")
		Expect(search.ApplicationLabel(&empty)).To(Equal("System"))
	})

	It("passes real applications through", func() {
		app := model.AppNRE
		Expect(search.ApplicationLabel(&app)).To(Equal("NRE"))
	})
})
