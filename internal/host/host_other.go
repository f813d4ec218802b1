//go:build !linux

package host

import (
	"runtime"
)

// SystemProber reports what the Go runtime knows about the host. Platform
// version probing is only implemented on Linux.
type SystemProber struct {
	// DMIDir is accepted for parity with Linux and ignored.
	DMIDir string
}

// NewSystemProber creates a SystemProber for the live host.
func NewSystemProber() *SystemProber {
	return &SystemProber{}
}

// Probe returns the runtime-derived fields only.
func (*SystemProber) Probe() Info {
	return Info{
		ABIs:             abiList(runtime.GOARCH),
		Manufacturer:     runtime.GOOS,
		BuildFingerprint: fingerprint(runtime.GOOS, runtime.GOARCH, runtime.Version()),
		NativeLibDir:     executableDir(),
	}
}

// Verify interface compliance.
var _ Prober = (*SystemProber)(nil)
