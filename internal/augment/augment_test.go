package augment_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smykla-labs/crashlink/internal/augment"
	"github.com/smykla-labs/crashlink/internal/crashdump"
	"github.com/smykla-labs/crashlink/internal/meminfo"
	"github.com/smykla-labs/crashlink/internal/threads"
	"github.com/smykla-labs/crashlink/pkg/logger"
)

func TestAugment(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Augment Suite")
}

var errSource = errors.New("stack capture failed")

type fixedMemory struct{}

func (fixedMemory) Collect() meminfo.Summary {
	return meminfo.Summary{Process: []meminfo.Entry{{Key: "VmRSS", Value: "12 MiB"}}}
}

func newReport(dir string) string {
	path := filepath.Join(dir, "tombstone_00000000000000000001_1.0__app.native.xcrash")

	f, err := os.Create(path)
	Expect(err).NotTo(HaveOccurred())

	defer f.Close()

	Expect(crashdump.WriteHeader(f, []crashdump.Field{{Key: "Crash type", Value: "native"}})).To(Succeed())
	Expect(crashdump.WriteSection(f, crashdump.Section{Title: crashdump.SectionEmergency, Body: "SIGSEGV"})).To(Succeed())

	return path
}

var _ = Describe("Augmentor", func() {
	var (
		dir   string
		path  string
		snaps []threads.Snapshot
	)

	newAugmentor := func(source threads.Source) *augment.Augmentor {
		log := logger.NewNoOpLogger()

		return augment.New(log, threads.NewEnumerator(log, source), fixedMemory{})
	}

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
		path = newReport(dir)
		snaps = []threads.Snapshot{
			{ID: 1, Name: "main", Frames: []threads.Frame{
				{Function: "main.crash", File: "main.go", Line: 10},
				{Function: "main.main", File: "main.go", Line: 3},
			}},
			{ID: 12, Name: "RenderThread", Frames: []threads.Frame{
				{Function: "ui.draw", File: "ui.go", Line: 99},
			}},
		}
	})

	parse := func() *crashdump.Report {
		r, err := crashdump.ParseFile(path)
		Expect(err).NotTo(HaveOccurred())

		return r
	}

	It("appends the main goroutine stack before memory info", func() {
		a := newAugmentor(&threads.StaticSource{Snapshots: snaps})

		Expect(a.AugmentCrash(path, true, true, "")).To(Succeed())

		r := parse()
		Expect(r.Titles()).To(Equal([]string{crashdump.SectionStacktrace, crashdump.SectionMemoryInfo}))

		st, _ := r.Section(crashdump.SectionStacktrace)
		Expect(st.Body).To(Equal("    at main.crash(main.go:10)\n    at main.main(main.go:3)"))

		mem, _ := r.Section(crashdump.SectionMemoryInfo)
		Expect(mem.Body).To(ContainSubstring("VmRSS: 12 MiB"))
	})

	It("finds a goroutine by name hint", func() {
		a := newAugmentor(&threads.StaticSource{Snapshots: snaps})

		Expect(a.AugmentCrash(path, true, false, "Render")).To(Succeed())

		st, ok := parse().Section(crashdump.SectionStacktrace)
		Expect(ok).To(BeTrue())
		Expect(st.Body).To(ContainSubstring("ui.draw(ui.go:99)"))
	})

	It("skips the stack trace when not requested", func() {
		a := newAugmentor(&threads.StaticSource{Snapshots: snaps})

		Expect(a.AugmentCrash(path, false, true, "")).To(Succeed())
		Expect(parse().Titles()).To(Equal([]string{crashdump.SectionMemoryInfo}))
	})

	It("still appends memory info when no goroutine matches", func() {
		a := newAugmentor(&threads.StaticSource{Snapshots: snaps})

		Expect(a.AugmentCrash(path, true, false, "no-such-thread")).To(Succeed())
		Expect(parse().Titles()).To(Equal([]string{crashdump.SectionMemoryInfo}))
	})

	It("still appends memory info when enumeration fails", func() {
		a := newAugmentor(&threads.StaticSource{Err: errSource})

		Expect(a.AugmentCrash(path, true, true, "")).To(Succeed())
		Expect(parse().Titles()).To(Equal([]string{crashdump.SectionMemoryInfo}))
	})

	It("appends only memory info to anr traces", func() {
		a := newAugmentor(&threads.StaticSource{Snapshots: snaps})

		Expect(a.AugmentANR(path)).To(Succeed())
		Expect(parse().Titles()).To(Equal([]string{crashdump.SectionMemoryInfo}))
	})

	It("preserves the engine-written content", func() {
		before, err := os.ReadFile(path)
		Expect(err).NotTo(HaveOccurred())

		Expect(newAugmentor(&threads.StaticSource{Snapshots: snaps}).AugmentCrash(path, true, true, "")).To(Succeed())

		after, err := os.ReadFile(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(strings.HasPrefix(string(after), string(before))).To(BeTrue())
	})

	It("degrades without creating a missing report", func() {
		missing := filepath.Join(dir, "gone.native.xcrash")

		err := newAugmentor(&threads.StaticSource{Snapshots: snaps}).AugmentCrash(missing, true, true, "")
		Expect(errors.Is(err, augment.ErrDegraded)).To(BeTrue())
		Expect(missing).NotTo(BeAnExistingFile())
	})
})
