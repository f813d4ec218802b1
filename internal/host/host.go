// Package host probes the identifying properties of the machine the
// application runs on. They are passed to the capture engine during the
// arming handshake and gate features that depend on the platform version.
package host

import (
	"encoding/hex"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/cockroachdb/errors"
	"github.com/zeebo/blake3"
)

// Info describes the host platform. Fields that could not be read are empty.
type Info struct {
	// APILevel is a monotonically increasing platform level derived from the
	// platform version (major*100 + minor). Zero when unknown.
	APILevel int

	// OSVersion is the raw platform release string (kernel release on Linux).
	OSVersion string

	// ABIs lists the supported binary interfaces, preferred first.
	ABIs []string

	Manufacturer string
	Brand        string
	Model        string

	// BuildFingerprint uniquely identifies the platform build.
	BuildFingerprint string

	// NativeLibDir is where the application's native libraries live.
	NativeLibDir string
}

// Prober reads host information. Tests substitute a StaticProber.
type Prober interface {
	Probe() Info
}

// releaseVersion captures the leading dotted numeric part of a release
// string such as "6.8.0-45-generic".
var releaseVersion = regexp.MustCompile(`^\d+(\.\d+){0,2}`)

// ErrUnknownVersion is returned when a release string has no version prefix.
var ErrUnknownVersion = errors.New("platform version unknown")

// PlatformVersion parses the OS version of info.
func (i Info) PlatformVersion() (*semver.Version, error) {
	match := releaseVersion.FindString(i.OSVersion)
	if match == "" {
		return nil, errors.Wrapf(ErrUnknownVersion, "release %q", i.OSVersion)
	}

	v, err := semver.NewVersion(match)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing release %q", i.OSVersion)
	}

	return v, nil
}

// Satisfies reports whether the platform version meets constraint. An
// unknown version never satisfies anything.
func (i Info) Satisfies(constraint string) (bool, error) {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return false, errors.Wrapf(err, "invalid version constraint %q", constraint)
	}

	v, err := i.PlatformVersion()
	if err != nil {
		return false, nil //nolint:nilerr // unknown version is a policy outcome, not a failure
	}

	return c.Check(v), nil
}

// apiLevel derives the numeric platform level from a release string.
func apiLevel(release string) int {
	v, err := (Info{OSVersion: release}).PlatformVersion()
	if err != nil {
		return 0
	}

	return int(v.Major())*100 + int(v.Minor())
}

// fingerprint hashes the fields that together identify a platform build.
func fingerprint(parts ...string) string {
	sum := blake3.Sum256([]byte(strings.Join(parts, "\x00")))

	return hex.EncodeToString(sum[:16])
}

// abiList maps GOARCH to the ABI names the capture engine understands.
func abiList(goarch string) []string {
	switch goarch {
	case "arm64":
		return []string{"arm64-v8a", "armeabi-v7a", "armeabi"}
	case "arm":
		return []string{"armeabi-v7a", "armeabi"}
	case "amd64":
		return []string{"x86_64", "x86"}
	case "386":
		return []string{"x86"}
	default:
		return []string{goarch}
	}
}

// executableDir returns the directory of the running binary, which is
// where a bundled engine library is expected.
func executableDir() string {
	exe, err := os.Executable()
	if err != nil {
		return ""
	}

	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}

	return filepath.Dir(exe)
}

// StaticProber returns a fixed Info.
type StaticProber struct {
	Info Info
}

// Probe returns the configured Info.
func (s *StaticProber) Probe() Info {
	return s.Info
}

// NewInfo fills the derived fields (APILevel, BuildFingerprint, ABIs) of a
// partially populated Info. Used by tests and by engines that report host
// data of their own.
func NewInfo(osVersion, manufacturer, brand, model string) Info {
	return Info{
		APILevel:         apiLevel(osVersion),
		OSVersion:        osVersion,
		ABIs:             abiList(runtime.GOARCH),
		Manufacturer:     manufacturer,
		Brand:            brand,
		Model:            model,
		BuildFingerprint: fingerprint(manufacturer, brand, model, osVersion),
	}
}

// Verify interface compliance.
var _ Prober = (*StaticProber)(nil)
