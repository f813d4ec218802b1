package crashdump

import (
	"bufio"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrNotReport is returned when input does not start with the report banner.
var ErrNotReport = errors.New("not a crash report")

var (
	headerLine = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9 _-]*): '(.*)'$`)
	titleLine  = regexp.MustCompile(`^([a-z][a-z0-9 _-]*):$`)
)

// maxLine bounds a single report line; goroutine frames can be long.
const maxLine = 1 << 20

// ParseFile reads the report at path.
func ParseFile(path string) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening report %s", path)
	}
	defer f.Close()

	r, err := Parse(f)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing report %s", path)
	}

	r.Path = path
	r.Kind = KindOf(path)

	return r, nil
}

// Parse reads a report. A blank line only ends a section when the next
// line is a section title or the input ends.
func Parse(in io.Reader) (*Report, error) {
	lines, err := readLines(in)
	if err != nil {
		return nil, err
	}

	if len(lines) == 0 || lines[0] != Banner {
		return nil, ErrNotReport
	}

	r := &Report{Kind: KindUnknown}

	i := 1
	for ; i < len(lines) && lines[i] != ""; i++ {
		if m := headerLine.FindStringSubmatch(lines[i]); m != nil {
			r.Header = append(r.Header, Field{Key: m[1], Value: m[2]})
		}
	}

	var current *Section

	var body []string

	flush := func() {
		if current == nil {
			return
		}

		current.Body = strings.TrimRight(strings.Join(body, "\n"), "\n")
		if current.Title == SectionEmergency && r.Emergency == "" {
			r.Emergency = current.Body
		} else {
			r.Sections = append(r.Sections, *current)
		}

		current, body = nil, nil
	}

	for ; i < len(lines); i++ {
		line := lines[i]

		if line == "" && (i+1 == len(lines) || titleLine.MatchString(lines[i+1])) {
			flush()

			continue
		}

		if current == nil {
			if m := titleLine.FindStringSubmatch(line); m != nil {
				current = &Section{Title: m[1]}
			}

			continue
		}

		body = append(body, line)
	}

	flush()

	return r, nil
}

func readLines(in io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLine)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "reading report")
	}

	return lines, nil
}
