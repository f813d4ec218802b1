// Package router receives engine notifications and runs the report
// pipeline: augment the report, then hand it to the caller's handler
// exactly once.
package router

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/smykla-labs/crashlink/internal/dispatch"
	"github.com/smykla-labs/crashlink/internal/engine"
	"github.com/smykla-labs/crashlink/pkg/logger"
)

// Binding is the part of the engine binding the router reads.
type Binding interface {
	Armed() bool
	CrashHandler() dispatch.Handler
	ANRHandler() dispatch.Handler
}

// Augmentor extends reports before dispatch.
type Augmentor interface {
	AugmentCrash(path string, needsStacktrace, isMain bool, hint string) error
	AugmentANR(path string) error
}

// Router holds the notification entry points.
type Router struct {
	log        logger.Logger
	binding    Binding
	augmentor  Augmentor
	dispatcher *dispatch.Dispatcher
}

// New creates a Router.
func New(log logger.Logger, binding Binding, augmentor Augmentor, dispatcher *dispatch.Dispatcher) *Router {
	return &Router{
		log:        log,
		binding:    binding,
		augmentor:  augmentor,
		dispatcher: dispatcher,
	}
}

// Callbacks returns the table handed to the engine at arming.
func (r *Router) Callbacks() engine.Callbacks {
	return engine.Callbacks{
		NativeCrash: r.OnNativeCrash,
		ANR:         r.OnANR,
	}
}

// OnNativeCrash handles a native crash notification.
func (r *Router) OnNativeCrash(n engine.NativeCrash) {
	if !r.binding.Armed() {
		r.log.Debug("native crash notification ignored, engine not armed", "path", n.ReportPath)

		return
	}

	if n.ReportPath != "" {
		r.guard("native_crash", func() error {
			return r.augmentor.AugmentCrash(n.ReportPath, n.NeedsManagedStacktrace, n.IsMainThread, n.ThreadNameHint)
		})
	}

	_ = r.dispatcher.Dispatch(dispatch.KindNativeCrash, r.binding.CrashHandler(), n.ReportPath, n.Emergency)
}

// OnANR handles an ANR notification.
func (r *Router) OnANR(n engine.ANR) {
	if !r.binding.Armed() {
		r.log.Debug("anr notification ignored, engine not armed", "path", n.ReportPath)

		return
	}

	if n.ReportPath != "" {
		r.guard("anr", func() error {
			return r.augmentor.AugmentANR(n.ReportPath)
		})
	}

	_ = r.dispatcher.Dispatch(dispatch.KindANR, r.binding.ANRHandler(), n.ReportPath, n.Emergency)
}

// guard runs an augmentation step. Errors and panics are logged and
// absorbed so dispatch always follows.
func (r *Router) guard(kind string, step func() error) {
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error("report augmentation panicked",
				"kind", kind,
				"error", errors.WithStack(errors.Newf("%s", fmt.Sprint(rec))),
			)
		}
	}()

	if err := step(); err != nil {
		r.log.Warn("report augmentation degraded", "kind", kind, "error", err)
	}
}
