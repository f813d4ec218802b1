package crashdump

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	filePrefix = "tombstone_"

	// SuffixNative ends native crash report names.
	SuffixNative = ".native.xcrash"

	// SuffixANR ends ANR trace names.
	SuffixANR = ".anr.xcrash"
)

// FileName returns the report file name for a fault captured at t.
func FileName(kind Kind, t time.Time, appVersion, appID string) string {
	return fmt.Sprintf("%s%020d_%s__%s%s", filePrefix, t.UnixNano(), appVersion, appID, suffix(kind))
}

// Glob returns a doublestar pattern matching all reports of kind in dir.
func Glob(dir string, kind Kind) string {
	return filepath.ToSlash(filepath.Join(dir, filePrefix+"*"+suffix(kind)))
}

// KindOf derives the report kind from its file name.
func KindOf(path string) Kind {
	switch {
	case strings.HasSuffix(path, SuffixNative):
		return KindNative
	case strings.HasSuffix(path, SuffixANR):
		return KindANR
	default:
		return KindUnknown
	}
}

// TimeOf decodes the capture time from a report file name.
func TimeOf(path string) (time.Time, bool) {
	name := strings.TrimPrefix(filepath.Base(path), filePrefix)
	if name == filepath.Base(path) {
		return time.Time{}, false
	}

	digits, _, ok := strings.Cut(name, "_")
	if !ok {
		return time.Time{}, false
	}

	nanos, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return time.Time{}, false
	}

	return time.Unix(0, nanos), true
}

// ID returns the file name without its kind suffix.
func ID(path string) string {
	base := filepath.Base(path)

	return strings.TrimSuffix(strings.TrimSuffix(base, SuffixNative), SuffixANR)
}

func suffix(kind Kind) string {
	if kind == KindANR {
		return SuffixANR
	}

	return SuffixNative
}
