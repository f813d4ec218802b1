package meminfo

import (
	"strings"
	"testing"
)

func TestParseStatus(t *testing.T) {
	t.Parallel()

	status := strings.Join([]string{
		"Name:\tcrashlink",
		"VmPeak:\t  204800 kB",
		"VmRSS:\t    1024 kB",
		"Threads:\t12",
		"Cpus_allowed:\tff",
	}, "\n")

	entries := parseStatus(strings.NewReader(status))

	want := []Entry{
		{Key: "VmPeak", Value: "200 MiB"},
		{Key: "VmRSS", Value: "1.0 MiB"},
		{Key: "Threads", Value: "12"},
	}

	if len(entries) != len(want) {
		t.Fatalf("got %d entries, want %d: %+v", len(entries), len(want), entries)
	}

	for i := range want {
		if entries[i] != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, entries[i], want[i])
		}
	}
}

func TestCollectMissingStatusFile(t *testing.T) {
	t.Parallel()

	c := &Collector{StatusPath: "/nonexistent/status"}
	summary := c.Collect()

	if summary.Process != nil {
		t.Errorf("expected no process entries, got %+v", summary.Process)
	}

	if len(summary.Runtime) == 0 {
		t.Error("expected runtime entries")
	}

	out := summary.String()
	if !strings.Contains(out, "Go runtime:") {
		t.Errorf("expected runtime group in %q", out)
	}

	if strings.Contains(out, "Process:") {
		t.Errorf("did not expect process group in %q", out)
	}
}

func TestSummaryStringOrder(t *testing.T) {
	t.Parallel()

	s := Summary{
		System:  []Entry{{Key: "MemTotal", Value: "8 GiB"}},
		Process: []Entry{{Key: "VmRSS", Value: "10 MiB"}},
		Runtime: []Entry{{Key: "Goroutines", Value: "3"}},
	}

	want := " System:\n   MemTotal: 8 GiB\n" +
		" Process:\n   VmRSS: 10 MiB\n" +
		" Go runtime:\n   Goroutines: 3\n"

	if got := s.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
