package crashdump

import (
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
)

// DefaultEmergencyWidth is the display width emergency excerpts are
// truncated to in summaries.
const DefaultEmergencyWidth = 80

// Summarize parses the report at path into a Summary.
func Summarize(path string, width int) (*Summary, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrapf(err, "stat %s", path)
	}

	r, err := ParseFile(path)
	if err != nil {
		return nil, err
	}

	ts, _ := TimeOf(path)

	return &Summary{
		ID:        ID(path),
		Kind:      r.Kind,
		Timestamp: ts,
		Emergency: Truncate(firstLine(r.Emergency), width),
		FilePath:  path,
		Size:      info.Size(),
		Sections:  r.Titles(),
	}, nil
}

// HumanSize returns the report size in IEC units.
func (s *Summary) HumanSize() string {
	return humanize.IBytes(uint64(max(s.Size, 0)))
}

// Truncate shortens s to at most width display cells, marking the cut
// with an ellipsis. Non-positive widths disable truncation.
func Truncate(s string, width int) string {
	if width <= 0 {
		return s
	}

	return runewidth.Truncate(s, width, "...")
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")

	return line
}
