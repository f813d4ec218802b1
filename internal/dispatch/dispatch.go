// Package dispatch invokes caller-supplied report handlers with isolation.
//
// A handler runs synchronously on the notifying goroutine. Whatever it
// does (return an error, panic) is captured and logged here, so a faulty
// handler can never escalate the fault being reported.
package dispatch

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/smykla-labs/crashlink/pkg/logger"
)

// ErrCallbackFailed marks errors returned by or recovered from a handler.
var ErrCallbackFailed = errors.New("callback failed")

// Handler receives a finished report. reportPath may be empty when the
// engine could not write a report; emergency is the engine's excerpt.
type Handler interface {
	OnCrash(reportPath, emergency string) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(reportPath, emergency string) error

// OnCrash calls f.
func (f HandlerFunc) OnCrash(reportPath, emergency string) error {
	return f(reportPath, emergency)
}

// Kind names the notification being dispatched in logs.
type Kind string

const (
	KindNativeCrash Kind = "native_crash"
	KindANR         Kind = "anr"
)

// Dispatcher invokes handlers.
type Dispatcher struct {
	log logger.Logger
}

// NewDispatcher creates a Dispatcher.
func NewDispatcher(log logger.Logger) *Dispatcher {
	return &Dispatcher{log: log}
}

// Dispatch calls handler once with path and emergency. A nil handler is a
// no-op. Failures are logged at warn level and returned marked with
// ErrCallbackFailed; callers on the fault path discard them.
func (d *Dispatcher) Dispatch(kind Kind, handler Handler, path, emergency string) (err error) {
	if handler == nil {
		d.log.Debug("no handler registered", "kind", kind)

		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			err = errors.Mark(
				errors.WithStack(errors.Newf("handler panicked: %s", fmt.Sprint(r))),
				ErrCallbackFailed,
			)
			d.log.Warn("handler panicked", "kind", kind, "path", path, "panic", fmt.Sprint(r))
		}
	}()

	if herr := handler.OnCrash(path, emergency); herr != nil {
		d.log.Warn("handler failed", "kind", kind, "path", path, "error", herr)

		return errors.Mark(errors.Wrapf(herr, "%s handler", kind), ErrCallbackFailed)
	}

	d.log.Debug("handler completed", "kind", kind, "path", path)

	return nil
}

// Verify interface compliance.
var _ Handler = HandlerFunc(nil)
