// Package augment appends Go-side information to engine-written reports.
package augment

import (
	"github.com/cockroachdb/errors"

	"github.com/smykla-labs/crashlink/internal/crashdump"
	"github.com/smykla-labs/crashlink/internal/meminfo"
	"github.com/smykla-labs/crashlink/internal/threads"
	"github.com/smykla-labs/crashlink/pkg/logger"
)

// ErrDegraded marks augmentation steps that could not complete. The report
// is left as it was; degradation is never fatal.
var ErrDegraded = errors.New("report augmentation degraded")

// MemorySource produces the memory info section body.
type MemorySource interface {
	Collect() meminfo.Summary
}

// Augmentor appends sections to reports.
type Augmentor struct {
	log     logger.Logger
	threads *threads.Enumerator
	memory  MemorySource
}

// New creates an Augmentor. A nil memory source reads the live process.
func New(log logger.Logger, enumerator *threads.Enumerator, memory MemorySource) *Augmentor {
	if memory == nil {
		memory = &meminfo.Collector{}
	}

	return &Augmentor{log: log, threads: enumerator, memory: memory}
}

// AugmentCrash extends a native crash report. When needsStacktrace is set
// the crashing goroutine (the main goroutine if isMain, otherwise the first
// whose name contains hint) is appended as the stack trace section. The
// memory info section is always appended, after the stack trace.
func (a *Augmentor) AugmentCrash(path string, needsStacktrace, isMain bool, hint string) error {
	var errs []error

	if needsStacktrace {
		if err := a.appendStacktrace(path, isMain, hint); err != nil {
			errs = append(errs, err)
		}
	}

	if err := a.appendMemory(path); err != nil {
		errs = append(errs, err)
	}

	return combine(errs)
}

// AugmentANR extends an ANR trace with the memory info section.
func (a *Augmentor) AugmentANR(path string) error {
	return combine([]error{a.appendMemory(path)})
}

func (a *Augmentor) appendStacktrace(path string, isMain bool, hint string) error {
	var m threads.Matcher = threads.NameContains(hint)
	if isMain {
		m = threads.MainGoroutine()
	}

	text, ok := a.threads.FindRendered(m)
	if !ok {
		a.log.Debug("crashing goroutine not found, stack trace skipped", "matcher", m.Name())

		return nil
	}

	return a.append(path, crashdump.Section{Title: crashdump.SectionStacktrace, Body: text})
}

func (a *Augmentor) appendMemory(path string) error {
	return a.append(path, crashdump.Section{
		Title: crashdump.SectionMemoryInfo,
		Body:  a.memory.Collect().String(),
	})
}

func (a *Augmentor) append(path string, s crashdump.Section) error {
	if err := crashdump.AppendSection(path, s); err != nil {
		a.log.Warn("appending report section failed", "path", path, "section", s.Title, "error", err)

		return errors.Mark(err, ErrDegraded)
	}

	a.log.Debug("report section appended", "path", path, "section", s.Title)

	return nil
}

func combine(errs []error) error {
	var out error
	for _, err := range errs {
		out = errors.CombineErrors(out, err)
	}

	return out
}
