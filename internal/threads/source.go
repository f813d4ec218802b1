package threads

import (
	"bytes"
	"io"
	"runtime"

	"github.com/cockroachdb/errors"
	"github.com/maruel/panicparse/v2/stack"
)

const (
	initialStackBytes = 64 << 10

	// MaxStackBytes bounds the buffer used to capture all goroutine stacks.
	// Output beyond it is dropped, which truncates the last goroutines.
	MaxStackBytes = 64 << 20
)

// ErrNoGoroutines is returned when a dump contains no parsable goroutine.
var ErrNoGoroutines = errors.New("no goroutines in stack dump")

// Source produces goroutine snapshots.
type Source interface {
	// Snapshot captures every live goroutine.
	Snapshot() ([]Snapshot, error)
}

// RuntimeSource captures the live goroutines of this process.
type RuntimeSource struct {
	// MaxBytes overrides MaxStackBytes when positive.
	MaxBytes int
}

// NewRuntimeSource creates a RuntimeSource with the default buffer cap.
func NewRuntimeSource() *RuntimeSource {
	return &RuntimeSource{}
}

// Snapshot captures all goroutines with runtime.Stack and parses the dump.
func (s *RuntimeSource) Snapshot() ([]Snapshot, error) {
	return Parse(s.dump())
}

func (s *RuntimeSource) dump() []byte {
	limit := s.MaxBytes
	if limit <= 0 {
		limit = MaxStackBytes
	}

	size := min(initialStackBytes, limit)

	for {
		buf := make([]byte, size)

		n := runtime.Stack(buf, true)
		if n < len(buf) || size >= limit {
			return buf[:n]
		}

		size = min(size*2, limit)
	}
}

// Parse converts a runtime.Stack style dump into snapshots. Names come from
// the goroutine name registry.
func Parse(dump []byte) ([]Snapshot, error) {
	snap, _, err := stack.ScanSnapshot(bytes.NewReader(dump), io.Discard, &stack.Opts{})
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Wrap(err, "parsing goroutine dump")
	}

	if snap == nil || len(snap.Goroutines) == 0 {
		return nil, ErrNoGoroutines
	}

	out := make([]Snapshot, 0, len(snap.Goroutines))

	for _, g := range snap.Goroutines {
		frames := make([]Frame, 0, len(g.Stack.Calls))
		for _, call := range g.Stack.Calls {
			frames = append(frames, Frame{
				Function: call.Func.Complete,
				File:     call.RemoteSrcPath,
				Line:     call.Line,
			})
		}

		out = append(out, Snapshot{
			ID:     g.ID,
			Name:   NameOf(g.ID),
			State:  g.State,
			Frames: frames,
		})
	}

	return out, nil
}

// StaticSource returns a fixed set of snapshots. Useful for tests and for
// replaying a previously captured dump.
type StaticSource struct {
	Snapshots []Snapshot
	Err       error
}

// Snapshot returns the configured snapshots or error.
func (s *StaticSource) Snapshot() ([]Snapshot, error) {
	if s.Err != nil {
		return nil, s.Err
	}

	return s.Snapshots, nil
}

// Verify interface compliance.
var (
	_ Source = (*RuntimeSource)(nil)
	_ Source = (*StaticSource)(nil)
)
