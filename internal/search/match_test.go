package search_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"tracker.app/api-server/internal/search"
)

var _ = Describe("Classify", func() {
	It("tags title matches", func() {
		matchType, ok := search.Classify("TRK-100", "Epic Release Notes", "epic")
		Expect(ok).To(BeTrue())
		Expect(matchType).To(Equal(search.MatchTitle))
	})

	It("tags id matches and prefers id when both match", func() {
		matchType, ok := search.Classify("TRK-100", "Fix TRK-100 regression", "trk-100")
		Expect(ok).To(BeTrue())
		Expect(matchType).To(Equal(search.MatchID))
	})

	It("reports no match", func() {
		_, ok := search.Classify("TRK-100", "Login epic", "checkout")
		Expect(ok).To(BeFalse())
	})
})

var _ = Describe("Highlight", func() {
	It("wraps the matched substring case-insensitively without altering surrounding text", func() {
		Expect(search.Highlight("Epic Release Notes", "epic")).
			To(Equal("<mark>Epic</mark> Release Notes"))
	})

	It("wraps every occurrence", func() {
		Expect(search.Highlight("epic EPIC epic", "epic")).
			To(Equal("<mark>epic</mark> <mark>EPIC</mark> <mark>epic</mark>"))
	})

	It("returns text unchanged when nothing matches", func() {
		Expect(search.Highlight("Login flow", "epic")).To(Equal("Login flow"))
	})

	It("returns text unchanged for an empty query", func() {
		Expect(search.Highlight("Login flow", "")).To(Equal("Login flow"))
	})

	It("handles runes whose lowered form is longer", func() {
		// Ⱥ (U+023A, 2 bytes) lowers to ⱥ (U+2C65, 3 bytes).
		Expect(search.Highlight("ȺȺȺb", "b")).To(Equal("ȺȺȺ<mark>b</mark>"))
		Expect(search.Highlight("ȺȺȺb", "ⱥ")).
			To(Equal("<mark>Ⱥ</mark><mark>Ⱥ</mark><mark>Ⱥ</mark>b"))
	})

	It("handles runes whose lowered form is shorter", func() {
		// İ (U+0130, 2 bytes) lowers to i (1 byte).
		Expect(search.Highlight("İİb", "b")).To(Equal("İİ<mark>b</mark>"))
		Expect(search.Highlight("İstanbul deploy", "istanbul")).
			To(Equal("<mark>İstanbul</mark> deploy"))
	})
})
