package crashdump

import (
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrReportMissing is returned when appending to a report that does not exist.
var ErrReportMissing = errors.New("report file does not exist")

// Render formats s the way it appears in a report.
func (s Section) Render() string {
	var b strings.Builder

	b.WriteString(s.Title)
	b.WriteString(":\n")
	b.WriteString(strings.TrimRight(s.Body, "\n"))
	b.WriteString("\n\n")

	return b.String()
}

// WriteHeader writes the banner and header fields followed by a blank line.
func WriteHeader(w io.Writer, fields []Field) error {
	var b strings.Builder

	b.WriteString(Banner)
	b.WriteString("\n")

	for _, f := range fields {
		b.WriteString(f.Key)
		b.WriteString(": '")
		b.WriteString(f.Value)
		b.WriteString("'\n")
	}

	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())

	return errors.Wrap(err, "writing report header")
}

// WriteSection writes s to w.
func WriteSection(w io.Writer, s Section) error {
	_, err := io.WriteString(w, s.Render())

	return errors.Wrapf(err, "writing section %q", s.Title)
}

// AppendSection appends s to the report at path. The file is never
// created or truncated; a missing report yields ErrReportMissing.
func AppendSection(path string, s Section) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return errors.Mark(errors.Wrapf(err, "appending %q", s.Title), ErrReportMissing)
		}

		return errors.Wrapf(err, "opening report %s", path)
	}

	if err := WriteSection(f, s); err != nil {
		_ = f.Close()

		return err
	}

	return errors.Wrapf(f.Close(), "closing report %s", path)
}
