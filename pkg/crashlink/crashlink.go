// Package crashlink connects a Go application to a crash-capture engine.
//
// A Client arms the engine once with a configuration and two optional
// handlers. When the engine later reports a native crash or an ANR, the
// report is extended with the Go side's view (the crashing goroutine's
// stack, memory statistics) and handed to the matching handler exactly
// once.
//
//	client := crashlink.New(cfg,
//		crashlink.WithCrashHandler(crashlink.HandlerFunc(upload)),
//	)
//	if status := client.Init(); status != crashlink.StatusOK {
//		log.Printf("crash capture unavailable: %s", status)
//	}
package crashlink

import (
	"github.com/smykla-labs/crashlink/internal/augment"
	"github.com/smykla-labs/crashlink/internal/dispatch"
	"github.com/smykla-labs/crashlink/internal/engine"
	"github.com/smykla-labs/crashlink/internal/engine/local"
	"github.com/smykla-labs/crashlink/internal/host"
	"github.com/smykla-labs/crashlink/internal/router"
	"github.com/smykla-labs/crashlink/internal/threads"
	"github.com/smykla-labs/crashlink/pkg/config"
	"github.com/smykla-labs/crashlink/pkg/logger"
)

// Handler receives finished reports.
type Handler = dispatch.Handler

// HandlerFunc adapts a function to Handler.
type HandlerFunc = dispatch.HandlerFunc

// Status is the result of Init.
type Status = engine.Status

// Init results.
const (
	StatusOK                = engine.StatusOK
	StatusLoadLibraryFailed = engine.StatusLoadLibraryFailed
	StatusInitLibraryFailed = engine.StatusInitLibraryFailed
)

// Engine and Loader let callers supply their own capture engine.
type (
	Engine      = engine.Engine
	Loader      = engine.Loader
	Callbacks   = engine.Callbacks
	NativeCrash = engine.NativeCrash
	ANR         = engine.ANR
)

// Client is a caller-owned handle on one engine binding.
type Client struct {
	cfg          *config.Config
	log          logger.Logger
	crashHandler Handler
	anrHandler   Handler
	loader       Loader
	prober       host.Prober
	source       threads.Source

	binding *engine.Binding
	router  *router.Router
}

// Option configures a Client.
type Option func(*Client)

// WithCrashHandler sets the native crash handler.
func WithCrashHandler(h Handler) Option {
	return func(c *Client) {
		c.crashHandler = h
	}
}

// WithANRHandler sets the ANR handler.
func WithANRHandler(h Handler) Option {
	return func(c *Client) {
		c.anrHandler = h
	}
}

// WithLoader replaces the built-in in-process engine.
func WithLoader(l Loader) Option {
	return func(c *Client) {
		c.loader = l
	}
}

// WithLogger sets the logger for crashlink's own diagnostics.
func WithLogger(log logger.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// WithHost overrides host probing.
func WithHost(p host.Prober) Option {
	return func(c *Client) {
		c.prober = p
	}
}

// WithThreadSource overrides where goroutine stacks are read from.
func WithThreadSource(s threads.Source) Option {
	return func(c *Client) {
		c.source = s
	}
}

// New creates an unarmed Client. cfg is copied when Init runs.
func New(cfg *config.Config, opts ...Option) *Client {
	c := &Client{cfg: cfg}

	for _, opt := range opts {
		opt(c)
	}

	if c.log == nil {
		c.log = logger.NewNoOpLogger()
	}

	if c.prober == nil {
		c.prober = host.NewSystemProber()
	}

	if c.loader == nil {
		registry := engine.NewRegistryLoader()
		local.Register(registry, c.log.With("component", "engine"), local.WithThreadSource(c.source))
		c.loader = registry
	}

	enumerator := threads.NewEnumerator(c.log.With("component", "threads"), c.source)
	dispatcher := dispatch.NewDispatcher(c.log.With("component", "dispatch"))

	c.binding = engine.NewBinding(c.log.With("component", "binding"), c.prober)
	c.router = router.New(
		c.log.With("component", "router"),
		c.binding,
		augment.New(c.log.With("component", "augment"), enumerator, nil),
		dispatcher,
	)

	return c
}

// Init arms the engine. It runs the handshake at most once: later calls
// return StatusOK after success and the original failure otherwise.
func (c *Client) Init() Status {
	err := c.binding.Arm(engine.Params{
		Config:       c.cfg,
		CrashHandler: c.crashHandler,
		ANRHandler:   c.anrHandler,
		Loader:       c.loader,
		Callbacks:    c.router.Callbacks(),
	})

	return engine.StatusFromError(err)
}

// Armed reports whether Init succeeded.
func (c *Client) Armed() bool {
	return c.binding.Armed()
}

// ANREnabled reports whether ANR capture is effectively on.
func (c *Client) ANREnabled() bool {
	return c.binding.ANREnabled()
}

// NotifyManagedCrash tells the engine a crash was handled on the Go side.
// No-op unless armed with ANR capture enabled.
func (c *Client) NotifyManagedCrash() {
	c.binding.NotifyManagedCrash()
}

// TestNativeCrash triggers a synthetic native crash. No-op unless armed.
func (c *Client) TestNativeCrash(newGoroutine bool) {
	c.binding.TestNativeCrash(newGoroutine)
}

// TestANR triggers a synthetic ANR. No-op unless armed.
func (c *Client) TestANR() {
	c.binding.TestANR()
}

// Verify interface compliance.
var _ router.Binding = (*engine.Binding)(nil)
