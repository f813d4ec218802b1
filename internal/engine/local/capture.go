package local

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/cockroachdb/errors"
	"github.com/hako/durafmt"

	"github.com/smykla-labs/crashlink/internal/crashdump"
	"github.com/smykla-labs/crashlink/internal/engine"
	"github.com/smykla-labs/crashlink/internal/threads"
)

// Fault describes the signal a crash report is written for.
type Fault struct {
	Signal string
	Number int
	Code   string
	Addr   uintptr
}

var testFault = Fault{Signal: "SIGSEGV", Number: 11, Code: "SEGV_MAPERR", Addr: 0}

// Emergency renders the one-line excerpt handed to the crash callback.
func (f Fault) Emergency(goroutine string) string {
	return fmt.Sprintf("signal %d (%s), code %s, fault addr 0x%x in %q",
		f.Number, f.Signal, f.Code, f.Addr, goroutine)
}

// crash writes a native report and notifies. A report that cannot be
// written is reported with an empty path.
func (e *Engine) crash(st *armed, fault Fault) {
	id := threads.CurrentID()
	name := threads.NameOf(id)
	now := e.now()

	emergency := fault.Emergency(name)
	path := filepath.Join(st.hs.LogDir, crashdump.FileName(crashdump.KindNative, now, st.hs.AppVersion, st.hs.AppID))

	sections := []crashdump.Section{{Title: crashdump.SectionEmergency, Body: emergency}}

	if st.hs.CrashDumpAllThreads {
		others := e.otherThreads(st, id, st.hs.CrashDumpAllThreadsCountMax)
		sections = append(sections, crashdump.Section{Title: crashdump.SectionOtherThreads, Body: others})
	}

	if st.hs.CrashDumpMap {
		sections = append(sections, e.memoryMap())
	}

	if st.hs.CrashDumpFds {
		sections = append(sections, e.openFiles())
	}

	if err := e.write(path, e.header(st, crashdump.KindNative, now, id, name), sections); err != nil {
		e.log.Error("writing native report failed", "path", path, "error", err)
		path = ""
	}

	if st.callbacks.NativeCrash == nil {
		return
	}

	st.callbacks.NativeCrash(engine.NativeCrash{
		ReportPath:             path,
		Emergency:              emergency,
		NeedsManagedStacktrace: true,
		IsMainThread:           name == threads.MainName,
		// The hint may be a prefix of another name ("goroutine 7" in
		// "goroutine 70"). runtime.Stack lists the calling goroutine first,
		// so a lookup from this goroutine hits its own stack first.
		ThreadNameHint: name,
	})
}

// anr writes an ANR trace, applies retention and notifies.
func (e *Engine) anr(st *armed) {
	now := e.now()
	id := threads.CurrentID()

	emergency := fmt.Sprintf("ANR in %s (%s)", st.hs.AppID, st.hs.AppVersion)
	path := filepath.Join(st.hs.LogDir, crashdump.FileName(crashdump.KindANR, now, st.hs.AppVersion, st.hs.AppID))

	sections := []crashdump.Section{
		{Title: crashdump.SectionEmergency, Body: emergency},
		{Title: crashdump.SectionOtherThreads, Body: e.otherThreads(st, 0, 0)},
	}

	if st.hs.ANRDumpFds {
		sections = append(sections, e.openFiles())
	}

	if err := e.write(path, e.header(st, crashdump.KindANR, now, id, threads.NameOf(id)), sections); err != nil {
		e.log.Error("writing anr trace failed", "path", path, "error", err)
		path = ""
	} else {
		e.prune(st.hs.LogDir, st.hs.ANRLogCountMax)
	}

	if st.callbacks.ANR == nil {
		return
	}

	st.callbacks.ANR(engine.ANR{ReportPath: path, Emergency: emergency})
}

func (e *Engine) header(st *armed, kind crashdump.Kind, now time.Time, id int, name string) []crashdump.Field {
	hs := st.hs

	return []crashdump.Field{
		{Key: "Tombstone maker", Value: "crashlink " + runtime.Version()},
		{Key: "Crash type", Value: string(kind)},
		{Key: "Start time", Value: e.started.Format(time.RFC3339Nano)},
		{Key: "Crash time", Value: now.Format(time.RFC3339Nano)},
		{Key: "Uptime", Value: durafmt.Parse(now.Sub(e.started)).LimitFirstN(2).String()},
		{Key: "App ID", Value: hs.AppID},
		{Key: "App version", Value: hs.AppVersion},
		{Key: "API level", Value: strconv.Itoa(hs.APILevel)},
		{Key: "OS version", Value: hs.OSVersion},
		{Key: "ABI list", Value: strings.Join(hs.ABIList, ",")},
		{Key: "Manufacturer", Value: hs.Manufacturer},
		{Key: "Brand", Value: hs.Brand},
		{Key: "Model", Value: hs.Model},
		{Key: "Build fingerprint", Value: hs.BuildFingerprint},
		{Key: "pid", Value: strconv.Itoa(os.Getpid())},
		{Key: "goroutine", Value: fmt.Sprintf("%d (%s)", id, name)},
	}
}

// otherThreads renders allow-listed goroutines other than skip, at most
// limit of them when limit is positive.
func (e *Engine) otherThreads(st *armed, skip, limit int) string {
	snaps := e.threads.Collect(excluding{id: skip, inner: st.allow}, limit)
	if len(snaps) == 0 {
		return "(none)"
	}

	return strings.TrimRight(threads.RenderAll(snaps), "\n")
}

func (e *Engine) memoryMap() crashdump.Section {
	data, err := os.ReadFile(filepath.Join(e.procDir, "maps"))
	if err != nil {
		return crashdump.Section{Title: "memory map", Body: "(unavailable: " + err.Error() + ")"}
	}

	return crashdump.Section{Title: "memory map", Body: strings.TrimRight(string(data), "\n")}
}

func (e *Engine) openFiles() crashdump.Section {
	dir := filepath.Join(e.procDir, "fd")

	entries, err := os.ReadDir(dir)
	if err != nil {
		return crashdump.Section{Title: "open files", Body: "(unavailable: " + err.Error() + ")"}
	}

	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		target, err := os.Readlink(filepath.Join(dir, entry.Name()))
		if err != nil {
			continue
		}

		lines = append(lines, "    fd "+entry.Name()+": "+target)
	}

	return crashdump.Section{Title: "open files", Body: strings.Join(lines, "\n")}
}

func (*Engine) write(path string, header []crashdump.Field, sections []crashdump.Section) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
	if err != nil {
		return errors.Wrap(err, "creating report")
	}

	if err := crashdump.WriteHeader(f, header); err != nil {
		_ = f.Close()

		return err
	}

	for _, s := range sections {
		if err := crashdump.WriteSection(f, s); err != nil {
			_ = f.Close()

			return err
		}
	}

	return errors.Wrap(f.Close(), "closing report")
}

// prune keeps the newest keep ANR traces in dir. Values below one keep one.
func (e *Engine) prune(dir string, keep int) {
	keep = max(keep, 1)

	matches, err := doublestar.FilepathGlob(crashdump.Glob(dir, crashdump.KindANR))
	if err != nil {
		e.log.Warn("listing anr traces failed", "error", err)

		return
	}

	if len(matches) <= keep {
		return
	}

	// Names embed a zero-padded timestamp, so lexical order is chronological.
	slices.Sort(matches)

	for _, old := range matches[:len(matches)-keep] {
		if err := os.Remove(old); err != nil {
			e.log.Warn("removing old anr trace failed", "path", old, "error", err)
		}
	}
}

// excluding wraps a matcher and drops one goroutine id.
type excluding struct {
	id    int
	inner threads.Matcher
}

func (m excluding) Match(s threads.Snapshot) bool {
	return s.ID != m.id && m.inner.Match(s)
}

func (m excluding) Name() string {
	return m.inner.Name()
}
