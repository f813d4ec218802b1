// Package meminfo collects a process memory summary for crash reports.
//
// Every reading is best effort. A source that cannot be read (no procfs, a
// failing syscall) is left out of the summary rather than reported as an
// error, because the summary is taken while the process may already be
// damaged.
package meminfo

import (
	"bufio"
	"io"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// statusKeys are the /proc/self/status fields kept in the summary, in order.
var statusKeys = []string{
	"VmPeak",
	"VmSize",
	"VmHWM",
	"VmRSS",
	"RssAnon",
	"RssFile",
	"RssShmem",
	"VmSwap",
	"Threads",
}

// Entry is one labelled reading.
type Entry struct {
	Key   string
	Value string
}

// Summary is a point-in-time memory summary, grouped by source.
type Summary struct {
	System  []Entry
	Process []Entry
	Runtime []Entry
}

// Collector gathers memory readings. The zero value reads the live process.
type Collector struct {
	// StatusPath overrides /proc/self/status.
	StatusPath string
}

// Collect returns a summary of the live process.
func Collect() Summary {
	return (&Collector{}).Collect()
}

// Collect gathers system, process and Go runtime memory readings.
func (c *Collector) Collect() Summary {
	path := c.StatusPath
	if path == "" {
		path = "/proc/self/status"
	}

	return Summary{
		System:  systemEntries(),
		Process: processEntries(path),
		Runtime: runtimeEntries(),
	}
}

// String renders the summary as report section text.
func (s Summary) String() string {
	var sb strings.Builder

	writeGroup(&sb, "System", s.System)
	writeGroup(&sb, "Process", s.Process)
	writeGroup(&sb, "Go runtime", s.Runtime)

	return sb.String()
}

func writeGroup(sb *strings.Builder, title string, entries []Entry) {
	if len(entries) == 0 {
		return
	}

	sb.WriteString(" ")
	sb.WriteString(title)
	sb.WriteString(":\n")

	for _, e := range entries {
		sb.WriteString("   ")
		sb.WriteString(e.Key)
		sb.WriteString(": ")
		sb.WriteString(e.Value)
		sb.WriteByte('\n')
	}
}

func processEntries(path string) []Entry {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	return parseStatus(f)
}

// parseStatus extracts statusKeys from a /proc/<pid>/status stream. Sizes
// reported in kB are rendered in human form.
func parseStatus(r io.Reader) []Entry {
	found := make(map[string]string, len(statusKeys))

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		key, rest, ok := strings.Cut(scanner.Text(), ":")
		if !ok {
			continue
		}

		found[key] = strings.TrimSpace(rest)
	}

	entries := make([]Entry, 0, len(statusKeys))

	for _, key := range statusKeys {
		raw, ok := found[key]
		if !ok {
			continue
		}

		entries = append(entries, Entry{Key: key, Value: formatStatusValue(raw)})
	}

	return entries
}

func formatStatusValue(raw string) string {
	fields := strings.Fields(raw)
	if len(fields) != 2 || fields[1] != "kB" {
		return raw
	}

	kb, err := strconv.ParseUint(fields[0], 10, 64)
	if err != nil {
		return raw
	}

	return humanize.IBytes(kb * 1024)
}

func runtimeEntries() []Entry {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	return []Entry{
		{Key: "HeapAlloc", Value: humanize.IBytes(ms.HeapAlloc)},
		{Key: "HeapSys", Value: humanize.IBytes(ms.HeapSys)},
		{Key: "HeapObjects", Value: humanize.Comma(int64(ms.HeapObjects))},
		{Key: "StackInuse", Value: humanize.IBytes(ms.StackInuse)},
		{Key: "Sys", Value: humanize.IBytes(ms.Sys)},
		{Key: "NumGC", Value: strconv.FormatUint(uint64(ms.NumGC), 10)},
		{Key: "Goroutines", Value: strconv.Itoa(runtime.NumGoroutine())},
	}
}
