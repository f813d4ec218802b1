package crashdump_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smykla-labs/crashlink/internal/crashdump"
)

func TestCrashdump(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Crashdump Suite")
}

func writeReport(dir, name string) string {
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	Expect(err).NotTo(HaveOccurred())

	defer f.Close()

	Expect(crashdump.WriteHeader(f, []crashdump.Field{
		{Key: "Crash type", Value: "native"},
		{Key: "App ID", Value: "com.example"},
	})).To(Succeed())
	Expect(crashdump.WriteSection(f, crashdump.Section{
		Title: crashdump.SectionEmergency,
		Body:  "signal 11 (SIGSEGV), code 1 (SEGV_MAPERR)\nfault addr 0x0",
	})).To(Succeed())

	return path
}

var _ = Describe("Section", func() {
	It("renders title, body and a trailing blank line", func() {
		s := crashdump.Section{Title: "memory info", Body: " Process:\n   VmRSS: 1.0 MiB\n"}
		Expect(s.Render()).To(Equal("memory info:\n Process:\n   VmRSS: 1.0 MiB\n\n"))
	})
})

var _ = Describe("AppendSection", func() {
	var dir string

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
	})

	It("appends after existing content without truncating", func() {
		path := writeReport(dir, "r.native.xcrash")
		before, err := os.ReadFile(path)
		Expect(err).NotTo(HaveOccurred())

		Expect(crashdump.AppendSection(path, crashdump.Section{Title: "memory info", Body: "x"})).To(Succeed())

		after, err := os.ReadFile(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(after)).To(HavePrefix(string(before)))
		Expect(string(after)).To(HaveSuffix("memory info:\nx\n\n"))
	})

	It("does not create a missing report", func() {
		path := filepath.Join(dir, "absent.native.xcrash")

		err := crashdump.AppendSection(path, crashdump.Section{Title: "memory info", Body: "x"})
		Expect(errors.Is(err, crashdump.ErrReportMissing)).To(BeTrue())
		Expect(path).NotTo(BeAnExistingFile())
	})
})

var _ = Describe("Parse", func() {
	It("reads header, emergency and sections in order", func() {
		dir := GinkgoT().TempDir()
		path := writeReport(dir, "tombstone_00000000000000000042_1.0__com.example.native.xcrash")

		Expect(crashdump.AppendSection(path, crashdump.Section{
			Title: crashdump.SectionStacktrace,
			Body:  "main.crash(main.go:10)\n    at main.main(main.go:3)",
		})).To(Succeed())
		Expect(crashdump.AppendSection(path, crashdump.Section{
			Title: crashdump.SectionMemoryInfo,
			Body:  " Process:\n\n   VmRSS: 1.0 MiB",
		})).To(Succeed())

		r, err := crashdump.ParseFile(path)
		Expect(err).NotTo(HaveOccurred())

		Expect(r.Kind).To(Equal(crashdump.KindNative))
		appID, _ := r.HeaderValue("App ID")
		Expect(appID).To(Equal("com.example"))
		Expect(r.Emergency).To(Equal("signal 11 (SIGSEGV), code 1 (SEGV_MAPERR)\nfault addr 0x0"))
		Expect(r.Titles()).To(Equal([]string{crashdump.SectionStacktrace, crashdump.SectionMemoryInfo}))

		mem, ok := r.Section(crashdump.SectionMemoryInfo)
		Expect(ok).To(BeTrue())
		Expect(mem.Body).To(Equal(" Process:\n\n   VmRSS: 1.0 MiB"))
	})

	It("rejects input without the banner", func() {
		_, err := crashdump.Parse(strings.NewReader("hello\n"))
		Expect(err).To(MatchError(crashdump.ErrNotReport))
	})
})

var _ = Describe("Naming", func() {
	It("round-trips kind and time through the file name", func() {
		at := time.Unix(1700000000, 123)
		name := crashdump.FileName(crashdump.KindANR, at, "2.1", "com.example")

		Expect(name).To(HavePrefix("tombstone_"))
		Expect(name).To(HaveSuffix("_2.1__com.example.anr.xcrash"))
		Expect(crashdump.KindOf(name)).To(Equal(crashdump.KindANR))

		ts, ok := crashdump.TimeOf(name)
		Expect(ok).To(BeTrue())
		Expect(ts.Equal(at)).To(BeTrue())
	})

	DescribeTable("KindOf",
		func(name string, kind crashdump.Kind) {
			Expect(crashdump.KindOf(name)).To(Equal(kind))
		},
		Entry("native", "a.native.xcrash", crashdump.KindNative),
		Entry("anr", "a.anr.xcrash", crashdump.KindANR),
		Entry("other", "a.txt", crashdump.KindUnknown),
	)

	It("sorts names chronologically", func() {
		early := crashdump.FileName(crashdump.KindANR, time.Unix(9, 0), "1", "a")
		late := crashdump.FileName(crashdump.KindANR, time.Unix(10, 0), "1", "a")
		Expect(early < late).To(BeTrue())
	})
})

var _ = Describe("Summarize", func() {
	It("summarizes a report", func() {
		dir := GinkgoT().TempDir()
		path := writeReport(dir, crashdump.FileName(crashdump.KindNative, time.Unix(5, 0), "1.0", "com.example"))

		s, err := crashdump.Summarize(path, 20)
		Expect(err).NotTo(HaveOccurred())

		Expect(s.Kind).To(Equal(crashdump.KindNative))
		Expect(s.Timestamp.Equal(time.Unix(5, 0))).To(BeTrue())
		Expect(s.Emergency).To(Equal("signal 11 (SIGSEG..."))
		Expect(s.Size).To(BeNumerically(">", 0))
		Expect(s.HumanSize()).To(HaveSuffix("B"))
		Expect(s.ID).NotTo(HaveSuffix(".xcrash"))
	})

	It("leaves short text untouched", func() {
		Expect(crashdump.Truncate("short", 20)).To(Equal("short"))
		Expect(crashdump.Truncate("unbounded text", 0)).To(Equal("unbounded text"))
	})
})
