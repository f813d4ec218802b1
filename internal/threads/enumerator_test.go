package threads_test

import (
	"errors"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smykla-labs/crashlink/internal/threads"
	"github.com/smykla-labs/crashlink/pkg/logger"
)

type panickingSource struct{}

func (panickingSource) Snapshot() ([]threads.Snapshot, error) {
	panic("stack walk blew up")
}

type panickingMatcher struct{}

func (panickingMatcher) Match(threads.Snapshot) bool { panic("bad matcher") }
func (panickingMatcher) Name() string                { return "panicking" }

var _ = Describe("Enumerator", func() {
	var source *threads.StaticSource

	BeforeEach(func() {
		source = &threads.StaticSource{Snapshots: []threads.Snapshot{
			{ID: 1, Name: "main", State: "chan receive", Frames: []threads.Frame{
				{Function: "main.main", File: "/src/app/main.go", Line: 12},
			}},
			{ID: 7, Name: "worker-1", Frames: []threads.Frame{
				{Function: "app/worker.(*Pool).run", File: "/src/app/worker/pool.go", Line: 88},
				{Function: "runtime.goexit", File: "/go/src/runtime/asm_amd64.s", Line: 1700},
			}},
		}}
	})

	It("finds the main goroutine", func() {
		e := threads.NewEnumerator(logger.NewNoOpLogger(), source)

		s, ok := e.Find(threads.MainGoroutine())
		Expect(ok).To(BeTrue())
		Expect(s.ID).To(Equal(1))
	})

	It("reports no snapshot when the hint matches nothing", func() {
		e := threads.NewEnumerator(logger.NewNoOpLogger(), source)

		_, ok := e.Find(threads.NameContains("does-not-exist"))
		Expect(ok).To(BeFalse())

		text, ok := e.FindRendered(threads.NameContains("does-not-exist"))
		Expect(ok).To(BeFalse())
		Expect(text).To(BeEmpty())
	})

	It("renders one prefixed frame per line", func() {
		e := threads.NewEnumerator(logger.NewNoOpLogger(), source)

		text, ok := e.FindRendered(threads.NameContains("worker"))
		Expect(ok).To(BeTrue())
		Expect(text).To(Equal(
			"    at app/worker.(*Pool).run(/src/app/worker/pool.go:88)\n" +
				"    at runtime.goexit(/go/src/runtime/asm_amd64.s:1700)\n",
		))
	})

	It("degrades source errors to not found", func() {
		e := threads.NewEnumerator(logger.NewNoOpLogger(), &threads.StaticSource{Err: errors.New("boom")})

		_, ok := e.Find(threads.MainGoroutine())
		Expect(ok).To(BeFalse())
	})

	It("degrades source panics to not found", func() {
		e := threads.NewEnumerator(logger.NewNoOpLogger(), panickingSource{})

		_, ok := e.Find(threads.MainGoroutine())
		Expect(ok).To(BeFalse())
		Expect(e.Collect(threads.MainGoroutine(), 0)).To(BeNil())
	})

	It("degrades matcher panics to not found", func() {
		e := threads.NewEnumerator(logger.NewNoOpLogger(), source)

		text, ok := e.FindRendered(panickingMatcher{})
		Expect(ok).To(BeFalse())
		Expect(text).To(BeEmpty())
	})

	It("collects with a limit", func() {
		all, err := threads.NewAllowList(nil)
		Expect(err).NotTo(HaveOccurred())

		e := threads.NewEnumerator(logger.NewNoOpLogger(), source)
		Expect(e.Collect(all, 0)).To(HaveLen(2))
		Expect(e.Collect(all, 1)).To(HaveLen(1))
	})

	It("renders all snapshots with headers", func() {
		out := threads.RenderAll(source.Snapshots)
		Expect(out).To(HavePrefix(`"main" id=1 state=chan receive` + "\n"))
		Expect(strings.Count(out, threads.FramePrefix)).To(Equal(3))
	})
})

var _ = Describe("Parse", func() {
	It("parses a runtime.Stack dump", func() {
		dump := "goroutine 1 [chan receive]:\n" +
			"main.main()\n" +
			"\t/src/app/main.go:12 +0x1d\n" +
			"\n" +
			"goroutine 7 [select]:\n" +
			"main.worker(0xc000010000)\n" +
			"\t/src/app/main.go:40 +0x9a\n"

		snaps, err := threads.Parse([]byte(dump))
		Expect(err).NotTo(HaveOccurred())
		Expect(snaps).To(HaveLen(2))

		Expect(snaps[0].ID).To(Equal(1))
		Expect(snaps[0].Name).To(Equal(threads.MainName))
		Expect(snaps[0].Frames).To(HaveLen(1))
		Expect(snaps[0].Frames[0].Line).To(Equal(12))
		Expect(snaps[0].Frames[0].File).To(Equal("/src/app/main.go"))
		Expect(snaps[1].Name).To(Equal("goroutine 7"))
	})

	It("fails on input without goroutines", func() {
		_, err := threads.Parse([]byte("nothing to see here\n"))
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("RuntimeSource", func() {
	It("captures named goroutines of this process", func() {
		ready := make(chan struct{})
		done := make(chan struct{})

		go func() {
			threads.SetName("crashlink-test-sleeper")
			defer threads.ClearName()

			close(ready)
			<-done
		}()

		<-ready
		defer close(done)

		e := threads.NewEnumerator(logger.NewNoOpLogger(), threads.NewRuntimeSource())

		s, ok := e.Find(threads.NameContains("crashlink-test-sleeper"))
		Expect(ok).To(BeTrue())
		Expect(s.Frames).NotTo(BeEmpty())
	})

	It("lists the calling goroutine first", func() {
		snaps, err := threads.NewRuntimeSource().Snapshot()
		Expect(err).NotTo(HaveOccurred())
		Expect(snaps).NotTo(BeEmpty())
		Expect(snaps[0].ID).To(Equal(threads.CurrentID()))
	})

	It("resolves a name hint to the caller when another name extends it", func() {
		id := threads.CurrentID()
		own := threads.NameOf(id)

		ready := make(chan struct{})
		done := make(chan struct{})

		go func() {
			threads.SetName(own + "0")
			defer threads.ClearName()

			close(ready)
			<-done
		}()

		<-ready
		defer close(done)

		e := threads.NewEnumerator(logger.NewNoOpLogger(), threads.NewRuntimeSource())

		s, ok := e.Find(threads.NameContains(own))
		Expect(ok).To(BeTrue())
		Expect(s.ID).To(Equal(id))
	})

	It("finds the main goroutine", func() {
		e := threads.NewEnumerator(logger.NewNoOpLogger(), threads.NewRuntimeSource())

		text, ok := e.FindRendered(threads.MainGoroutine())
		Expect(ok).To(BeTrue())
		Expect(text).To(HavePrefix(threads.FramePrefix))
	})
})

var _ = Describe("CurrentID", func() {
	It("returns a positive id and names follow it", func() {
		id := threads.CurrentID()
		Expect(id).To(BeNumerically(">", 0))

		threads.SetName("registry-worker")
		Expect(threads.NameOf(id)).To(Equal("registry-worker"))

		threads.ClearName()
		Expect(threads.NameOf(id)).NotTo(Equal("registry-worker"))
	})
})
