package threads

import (
	"github.com/cockroachdb/errors"

	"github.com/smykla-labs/crashlink/pkg/logger"
)

// Enumerator searches goroutine snapshots. It never returns an error: every
// failure, panics included, is logged and reported as "not found".
type Enumerator struct {
	source Source
	log    logger.Logger
}

// NewEnumerator creates an Enumerator over source. A nil source means the
// live runtime.
func NewEnumerator(log logger.Logger, source Source) *Enumerator {
	if source == nil {
		source = NewRuntimeSource()
	}

	if log == nil {
		log = logger.NewNoOpLogger()
	}

	return &Enumerator{source: source, log: log}
}

// Find returns the first snapshot selected by m.
func (e *Enumerator) Find(m Matcher) (found Snapshot, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("goroutine enumeration panicked",
				"matcher", m.Name(),
				"error", errors.Newf("%v", r),
			)

			found, ok = Snapshot{}, false
		}
	}()

	snaps, err := e.source.Snapshot()
	if err != nil {
		e.log.Warn("goroutine enumeration failed", "matcher", m.Name(), "error", err)

		return Snapshot{}, false
	}

	for _, s := range snaps {
		if m.Match(s) {
			return s, true
		}
	}

	e.log.Debug("no goroutine matched", "matcher", m.Name(), "goroutines", len(snaps))

	return Snapshot{}, false
}

// FindRendered finds the first snapshot selected by m and renders it.
// Rendering happens under the same failure isolation as the search.
func (e *Enumerator) FindRendered(m Matcher) (text string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("rendering goroutine stack panicked",
				"matcher", m.Name(),
				"error", errors.Newf("%v", r),
			)

			text, ok = "", false
		}
	}()

	s, found := e.Find(m)
	if !found {
		return "", false
	}

	text = Render(s)
	if text == "" {
		return "", false
	}

	return text, true
}

// Collect returns every snapshot selected by m, at most limit of them when
// limit is positive.
func (e *Enumerator) Collect(m Matcher, limit int) (out []Snapshot) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("goroutine collection panicked", "error", errors.Newf("%v", r))
			out = nil
		}
	}()

	snaps, err := e.source.Snapshot()
	if err != nil {
		e.log.Warn("goroutine enumeration failed", "matcher", m.Name(), "error", err)

		return nil
	}

	for _, s := range snaps {
		if limit > 0 && len(out) >= limit {
			break
		}

		if m.Match(s) {
			out = append(out, s)
		}
	}

	return out
}
