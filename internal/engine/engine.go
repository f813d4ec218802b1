// Package engine binds crashlink to a crash-capture engine.
//
// Arming is a one-time, all-or-nothing handshake: the engine is loaded,
// then initialized with the full configuration and a callback table.
// After a successful handshake the binding is read-only; the notification
// path only ever reads its state.
package engine

//go:generate go tool mockgen -source=engine.go -destination=mocks/engine_mock.go -package=mocks

// LibraryName is the name the loader resolves to obtain the engine.
const LibraryName = "crashlink"

// Engine is the capture engine. It installs the fault handlers, writes
// reports and calls back through the table handed over in Init.
type Engine interface {
	// Init arms the engine with an encoded Handshake. Zero means success.
	Init(payload []byte, callbacks Callbacks) int

	// NotifyManagedCrash tells the engine a crash was handled on the Go
	// side, so a hang observed while it unwinds is not reported as an ANR.
	NotifyManagedCrash()

	// TestCrash triggers a synthetic native crash, on a new goroutine
	// when newGoroutine is set.
	TestCrash(newGoroutine bool)

	// TestANR triggers a synthetic ANR.
	TestANR()
}

// Loader obtains an engine by library name.
type Loader interface {
	Load(name string) (Engine, error)
}

// NativeCrash is the payload of a native crash notification.
type NativeCrash struct {
	// ReportPath is the report written by the engine. Empty when the
	// engine could not write one.
	ReportPath string

	// Emergency is the engine's short excerpt of the fault.
	Emergency string

	// NeedsManagedStacktrace asks for the crashing goroutine's stack to be
	// appended to the report.
	NeedsManagedStacktrace bool

	// IsMainThread is set when the fault happened on the main goroutine.
	IsMainThread bool

	// ThreadNameHint is a substring of the crashing goroutine's name.
	ThreadNameHint string
}

// ANR is the payload of an application-not-responding notification.
type ANR struct {
	ReportPath string
	Emergency  string
}

// Callbacks is the table of entry points the engine invokes. It replaces
// any symbolic lookup: the engine receives function values at Init.
type Callbacks struct {
	NativeCrash func(NativeCrash)
	ANR         func(ANR)
}
