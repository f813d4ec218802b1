package threads

import (
	"strconv"
	"strings"
)

// MainName is the reserved name of the program's main goroutine.
const MainName = "main"

// FramePrefix starts every rendered frame line.
const FramePrefix = "    at "

// Frame is one call in a goroutine stack.
type Frame struct {
	Function string
	File     string
	Line     int
}

// String renders the frame as "function(file:line)".
func (f Frame) String() string {
	if f.File == "" {
		return f.Function
	}

	return f.Function + "(" + f.File + ":" + strconv.Itoa(f.Line) + ")"
}

// Snapshot is the captured state of one goroutine. Valid only at capture time.
type Snapshot struct {
	ID     int
	Name   string
	State  string
	Frames []Frame
}

// Render formats the frames of s, one per line, each prefixed by FramePrefix.
func Render(s Snapshot) string {
	var sb strings.Builder

	for _, f := range s.Frames {
		sb.WriteString(FramePrefix)
		sb.WriteString(f.String())
		sb.WriteByte('\n')
	}

	return sb.String()
}

// RenderAll formats several snapshots with a header line per goroutine, the
// layout used for "all threads" dumps.
func RenderAll(snaps []Snapshot) string {
	var sb strings.Builder

	for i, s := range snaps {
		if i > 0 {
			sb.WriteByte('\n')
		}

		sb.WriteString(`"`)
		sb.WriteString(s.Name)
		sb.WriteString(`" id=`)
		sb.WriteString(strconv.Itoa(s.ID))

		if s.State != "" {
			sb.WriteString(" state=")
			sb.WriteString(s.State)
		}

		sb.WriteByte('\n')
		sb.WriteString(Render(s))
	}

	return sb.String()
}
