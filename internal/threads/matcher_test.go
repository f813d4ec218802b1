package threads_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smykla-labs/crashlink/internal/threads"
)

var _ = Describe("Matchers", func() {
	mainSnap := threads.Snapshot{ID: 1, Name: "main"}
	renderSnap := threads.Snapshot{ID: 9, Name: "render-loop"}

	It("selects the main goroutine by its reserved name", func() {
		m := threads.MainGoroutine()
		Expect(m.Match(mainSnap)).To(BeTrue())
		Expect(m.Match(renderSnap)).To(BeFalse())
	})

	It("selects by substring", func() {
		m := threads.NameContains("render")
		Expect(m.Match(renderSnap)).To(BeTrue())
		Expect(m.Match(mainSnap)).To(BeFalse())
		Expect(m.Name()).To(Equal("name_contains:render"))
	})

	Describe("AllowListMatcher", func() {
		It("selects everything when empty", func() {
			m, err := threads.NewAllowList(nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(m.Match(mainSnap)).To(BeTrue())
			Expect(m.Match(renderSnap)).To(BeTrue())
		})

		It("selects names matching any pattern", func() {
			m, err := threads.NewAllowList([]string{"render-*", "^io$"})
			Expect(err).NotTo(HaveOccurred())
			Expect(m.Match(renderSnap)).To(BeTrue())
			Expect(m.Match(threads.Snapshot{Name: "io"})).To(BeTrue())
			Expect(m.Match(mainSnap)).To(BeFalse())
			Expect(m.Name()).To(Equal("allow_list:render-*,^io$"))
		})

		It("fails on invalid patterns", func() {
			_, err := threads.NewAllowList([]string{"(bad"})
			Expect(err).To(HaveOccurred())
		})
	})
})
