// Package local is an in-process capture engine. It writes reports for
// synthetic faults and calls back through the handshake's callback table,
// which makes the whole arming and notification path usable without a
// native signal handler.
package local

import (
	"os"
	"runtime/debug"
	"sync/atomic"
	"time"

	"github.com/smykla-labs/crashlink/internal/engine"
	"github.com/smykla-labs/crashlink/internal/threads"
	"github.com/smykla-labs/crashlink/pkg/logger"
)

// Init status codes.
const (
	statusOK             = 0
	statusBadPayload     = -1
	statusLogDir         = -2
	statusInvalidPattern = -3
)

// TestGoroutineName names the goroutine TestCrash(true) runs on.
const TestGoroutineName = "crashlink-test-crash"

// armed is the state captured at Init.
type armed struct {
	hs        engine.Handshake
	callbacks engine.Callbacks
	allow     threads.Matcher
}

// Engine is the in-process engine.
type Engine struct {
	log     logger.Logger
	now     func() time.Time
	started time.Time
	threads *threads.Enumerator
	procDir string

	state          atomic.Pointer[armed]
	managedCrashed atomic.Bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// WithThreadSource overrides where goroutine stacks are read from.
func WithThreadSource(source threads.Source) Option {
	return func(e *Engine) {
		e.threads = threads.NewEnumerator(e.log, source)
	}
}

// WithProcDir overrides /proc/self for open-file and memory-map sections.
func WithProcDir(dir string) Option {
	return func(e *Engine) {
		e.procDir = dir
	}
}

// New creates an unarmed Engine.
func New(log logger.Logger, opts ...Option) *Engine {
	e := &Engine{
		log:     log,
		now:     time.Now,
		procDir: "/proc/self",
	}

	e.threads = threads.NewEnumerator(log, nil)

	for _, opt := range opts {
		opt(e)
	}

	e.started = e.now()

	return e
}

// Register adds a factory for this engine under engine.LibraryName.
func Register(r *engine.RegistryLoader, log logger.Logger, opts ...Option) {
	r.Register(engine.LibraryName, func() (engine.Engine, error) {
		return New(log, opts...), nil
	})
}

// Init decodes the handshake and prepares the report directory.
func (e *Engine) Init(payload []byte, callbacks engine.Callbacks) int {
	hs, err := engine.DecodeHandshake(payload)
	if err != nil || hs.LogDir == "" {
		e.log.Error("invalid handshake", "error", err)

		return statusBadPayload
	}

	if err := os.MkdirAll(hs.LogDir, 0o750); err != nil {
		e.log.Error("cannot create log dir", "log_dir", hs.LogDir, "error", err)

		return statusLogDir
	}

	allow, err := threads.NewAllowList(hs.CrashDumpAllThreadsAllow)
	if err != nil {
		e.log.Error("invalid thread allow list", "error", err)

		return statusInvalidPattern
	}

	if hs.CrashEnabled && hs.CrashDumpAllThreads {
		debug.SetTraceback("all")
	}

	e.state.Store(&armed{hs: hs, callbacks: callbacks, allow: allow})

	e.log.Debug("local engine initialized",
		"log_dir", hs.LogDir,
		"crash_enabled", hs.CrashEnabled,
		"anr_enabled", hs.ANREnabled,
	)

	return statusOK
}

// NotifyManagedCrash suppresses ANR capture from now on: a process that is
// already crashing looks unresponsive while it unwinds.
func (e *Engine) NotifyManagedCrash() {
	e.managedCrashed.Store(true)
}

// TestCrash captures a synthetic SIGSEGV, on a dedicated named goroutine
// when newGoroutine is set.
func (e *Engine) TestCrash(newGoroutine bool) {
	st := e.state.Load()
	if st == nil || !st.hs.CrashEnabled {
		return
	}

	if !newGoroutine {
		e.crash(st, testFault)

		return
	}

	go func() {
		threads.SetName(TestGoroutineName)
		defer threads.ClearName()

		e.crash(st, testFault)
	}()
}

// TestANR captures a synthetic ANR unless ANR capture is disabled or a
// managed crash was reported.
func (e *Engine) TestANR() {
	st := e.state.Load()
	if st == nil || !st.hs.ANREnabled {
		return
	}

	if e.managedCrashed.Load() {
		e.log.Debug("anr suppressed after managed crash")

		return
	}

	e.anr(st)
}

// Verify interface compliance.
var _ engine.Engine = (*Engine)(nil)
