package router_test

import (
	"testing"

	"github.com/cockroachdb/errors"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smykla-labs/crashlink/internal/dispatch"
	"github.com/smykla-labs/crashlink/internal/engine"
	"github.com/smykla-labs/crashlink/internal/router"
	"github.com/smykla-labs/crashlink/pkg/logger"
)

func TestRouter(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Router Suite")
}

var errAugment = errors.New("disk full")

type fakeBinding struct {
	armed bool
	crash dispatch.Handler
	anr   dispatch.Handler
}

func (b *fakeBinding) Armed() bool { return b.armed }

//nolint:ireturn // test double
func (b *fakeBinding) CrashHandler() dispatch.Handler { return b.crash }

//nolint:ireturn // test double
func (b *fakeBinding) ANRHandler() dispatch.Handler { return b.anr }

type call struct {
	kind  string
	path  string
	stack bool
	main  bool
	hint  string
}

type fakeAugmentor struct {
	calls []call
	err   error
	panic bool
}

func (a *fakeAugmentor) AugmentCrash(path string, needsStacktrace, isMain bool, hint string) error {
	a.calls = append(a.calls, call{kind: "crash", path: path, stack: needsStacktrace, main: isMain, hint: hint})
	if a.panic {
		panic("augmentation exploded")
	}

	return a.err
}

func (a *fakeAugmentor) AugmentANR(path string) error {
	a.calls = append(a.calls, call{kind: "anr", path: path})
	if a.panic {
		panic("augmentation exploded")
	}

	return a.err
}

type received struct {
	path      string
	emergency string
}

var _ = Describe("Router", func() {
	var (
		binding   *fakeBinding
		augmentor *fakeAugmentor
		crashes   []received
		anrs      []received
		r         *router.Router
	)

	BeforeEach(func() {
		crashes, anrs = nil, nil
		binding = &fakeBinding{
			armed: true,
			crash: dispatch.HandlerFunc(func(p, e string) error {
				crashes = append(crashes, received{p, e})

				return nil
			}),
			anr: dispatch.HandlerFunc(func(p, e string) error {
				anrs = append(anrs, received{p, e})

				return nil
			}),
		}
		augmentor = &fakeAugmentor{}

		log := logger.NewNoOpLogger()
		r = router.New(log, binding, augmentor, dispatch.NewDispatcher(log))
	})

	It("augments then dispatches a native crash once", func() {
		r.OnNativeCrash(engine.NativeCrash{
			ReportPath:             "/d/t.native.xcrash",
			Emergency:              "SIGSEGV",
			NeedsManagedStacktrace: true,
			ThreadNameHint:         "Render",
		})

		Expect(augmentor.calls).To(Equal([]call{{kind: "crash", path: "/d/t.native.xcrash", stack: true, hint: "Render"}}))
		Expect(crashes).To(Equal([]received{{"/d/t.native.xcrash", "SIGSEGV"}}))
		Expect(anrs).To(BeEmpty())
	})

	It("augments then dispatches an anr once", func() {
		r.OnANR(engine.ANR{ReportPath: "/d/t.anr.xcrash", Emergency: "ANR"})

		Expect(augmentor.calls).To(Equal([]call{{kind: "anr", path: "/d/t.anr.xcrash"}}))
		Expect(anrs).To(Equal([]received{{"/d/t.anr.xcrash", "ANR"}}))
		Expect(crashes).To(BeEmpty())
	})

	It("skips augmentation for an empty path but still dispatches", func() {
		r.OnNativeCrash(engine.NativeCrash{Emergency: "SIGABRT"})
		r.OnANR(engine.ANR{Emergency: "ANR"})

		Expect(augmentor.calls).To(BeEmpty())
		Expect(crashes).To(Equal([]received{{"", "SIGABRT"}}))
		Expect(anrs).To(Equal([]received{{"", "ANR"}}))
	})

	It("ignores notifications while not armed", func() {
		binding.armed = false

		r.OnNativeCrash(engine.NativeCrash{ReportPath: "/d/t", Emergency: "x"})
		r.OnANR(engine.ANR{ReportPath: "/d/t", Emergency: "x"})

		Expect(augmentor.calls).To(BeEmpty())
		Expect(crashes).To(BeEmpty())
		Expect(anrs).To(BeEmpty())
	})

	It("dispatches after degraded augmentation", func() {
		augmentor.err = errAugment

		r.OnNativeCrash(engine.NativeCrash{ReportPath: "/d/t", Emergency: "x"})
		Expect(crashes).To(HaveLen(1))
	})

	It("dispatches after augmentation panics", func() {
		augmentor.panic = true

		Expect(func() {
			r.OnNativeCrash(engine.NativeCrash{ReportPath: "/d/t", Emergency: "x"})
			r.OnANR(engine.ANR{ReportPath: "/d/t", Emergency: "y"})
		}).NotTo(Panic())
		Expect(crashes).To(HaveLen(1))
		Expect(anrs).To(HaveLen(1))
	})

	It("survives a panicking handler", func() {
		binding.crash = dispatch.HandlerFunc(func(string, string) error { panic("handler exploded") })

		Expect(func() {
			r.OnNativeCrash(engine.NativeCrash{ReportPath: "/d/t", Emergency: "x"})
		}).NotTo(Panic())
	})

	It("delivers a later notification after a handler panicked", func() {
		var delivered []received

		binding.crash = dispatch.HandlerFunc(func(p, e string) error {
			delivered = append(delivered, received{p, e})
			if len(delivered) == 1 {
				panic("handler exploded")
			}

			return nil
		})

		Expect(func() {
			r.OnNativeCrash(engine.NativeCrash{ReportPath: "/d/first", Emergency: "x", NeedsManagedStacktrace: true})
			r.OnNativeCrash(engine.NativeCrash{ReportPath: "/d/second", Emergency: "y", NeedsManagedStacktrace: true})
		}).NotTo(Panic())

		Expect(augmentor.calls).To(Equal([]call{
			{kind: "crash", path: "/d/first", stack: true},
			{kind: "crash", path: "/d/second", stack: true},
		}))
		Expect(delivered).To(Equal([]received{{"/d/first", "x"}, {"/d/second", "y"}}))
	})

	It("tolerates missing handlers", func() {
		binding.crash, binding.anr = nil, nil

		Expect(func() {
			r.OnNativeCrash(engine.NativeCrash{Emergency: "x"})
			r.OnANR(engine.ANR{Emergency: "y"})
		}).NotTo(Panic())
	})

	It("exposes its entry points as the callback table", func() {
		cb := r.Callbacks()
		cb.NativeCrash(engine.NativeCrash{Emergency: "via table"})

		Expect(crashes).To(Equal([]received{{"", "via table"}}))
	})
})
