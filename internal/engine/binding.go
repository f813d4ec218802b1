package engine

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/cockroachdb/errors"

	"github.com/smykla-labs/crashlink/internal/config"
	"github.com/smykla-labs/crashlink/internal/dispatch"
	"github.com/smykla-labs/crashlink/internal/host"
	pkgconfig "github.com/smykla-labs/crashlink/pkg/config"
	"github.com/smykla-labs/crashlink/pkg/logger"
)

// State is the arming state of a Binding.
type State int32

const (
	StateUnarmed State = iota
	StateArmed
	// StateFailed is terminal.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateUnarmed:
		return "unarmed"
	case StateArmed:
		return "armed"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// Params are the inputs of the arming handshake.
type Params struct {
	// Config is copied at Arm; later changes by the caller have no effect.
	Config *pkgconfig.Config

	CrashHandler dispatch.Handler
	ANRHandler   dispatch.Handler

	// Loader obtains the engine. Required.
	Loader Loader

	// Callbacks is the table the engine calls on a fault.
	Callbacks Callbacks
}

// Binding owns the engine handle and the arming state.
type Binding struct {
	log       logger.Logger
	prober    host.Prober
	validator *config.Validator

	mu    sync.Mutex // serializes Arm
	state atomic.Int32

	// Written once under mu before state becomes StateArmed or
	// StateFailed; read without locking afterwards.
	engine       Engine
	cfg          *pkgconfig.Config
	crashHandler dispatch.Handler
	anrHandler   dispatch.Handler
	anrEnabled   bool
	err          error
}

// NewBinding creates an unarmed Binding. prober supplies host
// information for the handshake.
func NewBinding(log logger.Logger, prober host.Prober) *Binding {
	return &Binding{
		log:       log,
		prober:    prober,
		validator: config.NewValidator(),
	}
}

// State returns the current arming state.
func (b *Binding) State() State {
	return State(b.state.Load())
}

// Armed reports whether the handshake succeeded.
func (b *Binding) Armed() bool {
	return b.State() == StateArmed
}

// ANREnabled reports the effective ANR setting. False unless armed.
func (b *Binding) ANREnabled() bool {
	return b.Armed() && b.anrEnabled
}

// CrashHandler returns the native crash handler. Nil unless armed.
//
//nolint:ireturn // handler is caller-supplied
func (b *Binding) CrashHandler() dispatch.Handler {
	if !b.Armed() {
		return nil
	}

	return b.crashHandler
}

// ANRHandler returns the ANR handler. Nil unless armed.
//
//nolint:ireturn // handler is caller-supplied
func (b *Binding) ANRHandler() dispatch.Handler {
	if !b.Armed() {
		return nil
	}

	return b.anrHandler
}

// Config returns the configuration copy taken at arming. Nil unless armed.
func (b *Binding) Config() *pkgconfig.Config {
	if !b.Armed() {
		return nil
	}

	return b.cfg
}

// Arm performs the handshake. Arming an armed binding is a no-op; a
// failed binding returns its recorded failure without retrying.
// Errors are marked with ErrLoadFailed or ErrHandshakeFailed.
func (b *Binding) Arm(params Params) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.State() {
	case StateArmed:
		b.log.Debug("engine already armed")

		return nil
	case StateFailed:
		return b.err
	case StateUnarmed:
	}

	cfg := params.Config.Clone()

	if params.Loader == nil {
		return b.fail(errors.Mark(errors.New("no engine loader configured"), ErrLoadFailed))
	}

	eng, err := params.Loader.Load(LibraryName)
	if err != nil {
		return b.fail(errors.Mark(errors.Wrapf(err, "loading %s", LibraryName), ErrLoadFailed))
	}

	if err := b.validator.Validate(cfg); err != nil {
		return b.fail(errors.Mark(errors.Wrap(err, "validating configuration"), ErrHandshakeFailed))
	}

	info := b.prober.Probe()
	anrEnabled := b.anrPolicy(cfg, info)

	payload, err := NewHandshake(cfg, info, anrEnabled).Marshal()
	if err != nil {
		return b.fail(errors.Mark(err, ErrHandshakeFailed))
	}

	if err := callInit(eng, payload, params.Callbacks); err != nil {
		return b.fail(errors.Mark(err, ErrHandshakeFailed))
	}

	b.engine = eng
	b.cfg = cfg
	b.crashHandler = params.CrashHandler
	b.anrHandler = params.ANRHandler
	b.anrEnabled = anrEnabled
	b.state.Store(int32(StateArmed))

	b.log.Info("engine armed",
		"app_id", cfg.AppID,
		"log_dir", cfg.LogDir,
		"crash_enabled", cfg.Crash.IsEnabled(),
		"anr_enabled", anrEnabled,
	)

	return nil
}

// anrPolicy returns the effective ANR setting: requested, and the host
// platform version is known and satisfies the configured constraint.
func (b *Binding) anrPolicy(cfg *pkgconfig.Config, info host.Info) bool {
	if !cfg.ANR.IsEnabled() {
		return false
	}

	constraint := cfg.ANR.GetMinPlatformVersion()

	ok, err := info.Satisfies(constraint)
	if err != nil || !ok {
		b.log.Info("anr capture disabled by platform policy",
			"os_version", info.OSVersion,
			"constraint", constraint,
		)

		return false
	}

	return true
}

func (b *Binding) fail(err error) error {
	b.err = err
	b.state.Store(int32(StateFailed))
	b.log.Error("engine arming failed", "error", err)

	return err
}

// callInit runs the engine's init with panic isolation.
func callInit(eng Engine, payload []byte, callbacks Callbacks) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.WithStack(errors.Newf("engine init panicked: %s", fmt.Sprint(r)))
		}
	}()

	if status := eng.Init(payload, callbacks); status != 0 {
		return errors.Newf("engine init returned status %d", status)
	}

	return nil
}

// NotifyManagedCrash forwards to the engine when armed and ANR capture is
// effectively enabled.
func (b *Binding) NotifyManagedCrash() {
	if !b.ANREnabled() {
		return
	}

	b.engine.NotifyManagedCrash()
}

// TestNativeCrash asks the engine for a synthetic crash when armed.
func (b *Binding) TestNativeCrash(newGoroutine bool) {
	if !b.Armed() {
		b.log.Debug("test crash ignored, engine not armed")

		return
	}

	b.engine.TestCrash(newGoroutine)
}

// TestANR asks the engine for a synthetic ANR when armed.
func (b *Binding) TestANR() {
	if !b.Armed() {
		b.log.Debug("test anr ignored, engine not armed")

		return
	}

	b.engine.TestANR()
}
