package meminfo

import (
	"github.com/dustin/go-humanize"
	"golang.org/x/sys/unix"
)

func systemEntries() []Entry {
	var info unix.Sysinfo_t
	if err := unix.Sysinfo(&info); err != nil {
		return nil
	}

	unit := uint64(info.Unit)
	total := uint64(info.Totalram) * unit
	free := uint64(info.Freeram) * unit

	entries := []Entry{
		{Key: "MemTotal", Value: humanize.IBytes(total)},
		{Key: "MemFree", Value: humanize.IBytes(free)},
	}

	if total >= free {
		entries = append(entries, Entry{Key: "MemUsed", Value: humanize.IBytes(total - free)})
	}

	if swap := uint64(info.Totalswap) * unit; swap > 0 {
		entries = append(entries,
			Entry{Key: "SwapTotal", Value: humanize.IBytes(swap)},
			Entry{Key: "SwapFree", Value: humanize.IBytes(uint64(info.Freeswap) * unit)},
		)
	}

	return entries
}
