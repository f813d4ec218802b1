package host

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sys/unix"
)

const dmiDir = "/sys/class/dmi/id"

// SystemProber reads host information from uname and DMI.
type SystemProber struct {
	// DMIDir overrides /sys/class/dmi/id.
	DMIDir string
}

// NewSystemProber creates a SystemProber for the live host.
func NewSystemProber() *SystemProber {
	return &SystemProber{DMIDir: dmiDir}
}

// Probe reads uname and DMI identity files. Missing data is left empty.
func (p *SystemProber) Probe() Info {
	var uts unix.Utsname

	var release, version, machine string

	if err := unix.Uname(&uts); err == nil {
		release = unix.ByteSliceToString(uts.Release[:])
		version = unix.ByteSliceToString(uts.Version[:])
		machine = unix.ByteSliceToString(uts.Machine[:])
	}

	manufacturer := p.readDMI("sys_vendor")
	brand := p.readDMI("board_vendor")
	model := p.readDMI("product_name")

	return Info{
		APILevel:         apiLevel(release),
		OSVersion:        release,
		ABIs:             abiList(runtime.GOARCH),
		Manufacturer:     manufacturer,
		Brand:            brand,
		Model:            model,
		BuildFingerprint: fingerprint(manufacturer, brand, model, release, version, machine),
		NativeLibDir:     executableDir(),
	}
}

func (p *SystemProber) readDMI(name string) string {
	dir := p.DMIDir
	if dir == "" {
		dir = dmiDir
	}

	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return ""
	}

	return strings.TrimSpace(string(data))
}

// Verify interface compliance.
var _ Prober = (*SystemProber)(nil)
