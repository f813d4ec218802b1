package threads_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smykla-labs/crashlink/internal/threads"
)

var _ = Describe("Pattern", func() {
	DescribeTable("DetectPatternType",
		func(pattern string, expected threads.PatternType) {
			Expect(threads.DetectPatternType(pattern)).To(Equal(expected))
		},
		Entry("plain name", "render", threads.PatternTypeGlob),
		Entry("star glob", "worker-*", threads.PatternTypeGlob),
		Entry("question glob", "io?", threads.PatternTypeGlob),
		Entry("anchored regex", "^worker-\\d+$", threads.PatternTypeRegex),
		Entry("alternation", "render|audio", threads.PatternTypeRegex),
		Entry("dot star", "pool.*", threads.PatternTypeRegex),
	)

	It("matches globs against goroutine names", func() {
		p, err := threads.CompilePattern("worker-*")
		Expect(err).NotTo(HaveOccurred())
		Expect(p.Match("worker-12")).To(BeTrue())
		Expect(p.Match("render")).To(BeFalse())
		Expect(p.String()).To(Equal("worker-*"))
	})

	It("matches regexes against goroutine names", func() {
		p, err := threads.CompilePattern("^worker-\\d+$")
		Expect(err).NotTo(HaveOccurred())
		Expect(p.Match("worker-3")).To(BeTrue())
		Expect(p.Match("worker-x")).To(BeFalse())
	})

	It("rejects invalid regexes", func() {
		_, err := threads.CompilePattern("(unclosed")
		Expect(err).To(HaveOccurred())
	})

	Describe("PatternCache", func() {
		var cache *threads.PatternCache

		BeforeEach(func() {
			cache = threads.NewPatternCache()
		})

		It("returns the same compiled instance", func() {
			first, err := cache.Get("render*")
			Expect(err).NotTo(HaveOccurred())

			second, err := cache.Get("render*")
			Expect(err).NotTo(HaveOccurred())
			Expect(first).To(BeIdenticalTo(second))
			Expect(cache.Size()).To(Equal(1))
		})

		It("caches compilation errors", func() {
			_, err1 := cache.Get("(bad")
			_, err2 := cache.Get("(bad")
			Expect(err1).To(HaveOccurred())
			Expect(err2).To(Equal(err1))
			Expect(cache.Size()).To(BeZero())
		})
	})
})
