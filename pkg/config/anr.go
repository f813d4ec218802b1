package config

const (
	// DefaultANRLogCountMax is the default number of ANR traces retained.
	DefaultANRLogCountMax = 10

	// DefaultANRMinPlatformVersion is the default platform version constraint
	// ANR capture requires.
	DefaultANRMinPlatformVersion = ">= 3.10"
)

// ANRConfig configures application-not-responding capture.
type ANRConfig struct {
	// Enabled controls whether ANR conditions are captured. Capture is
	// additionally gated by MinPlatformVersion.
	// Default: true
	Enabled *bool `json:"enabled,omitempty" koanf:"enabled" toml:"enabled"`

	// Rethrow controls whether the ANR is forwarded to the platform after capture.
	// Default: true
	Rethrow *bool `json:"rethrow,omitempty" koanf:"rethrow" toml:"rethrow"`

	// LogCountMax is the number of ANR traces kept in the log directory.
	// Default: 10
	LogCountMax *int `json:"log_count_max,omitempty" koanf:"log_count_max" toml:"log_count_max"`

	// LogcatSystemLines is the number of system log lines included.
	// Default: 50
	LogcatSystemLines *int `json:"logcat_system_lines,omitempty" koanf:"logcat_system_lines" toml:"logcat_system_lines"`

	// LogcatEventsLines is the number of events log lines included.
	// Default: 50
	LogcatEventsLines *int `json:"logcat_events_lines,omitempty" koanf:"logcat_events_lines" toml:"logcat_events_lines"`

	// LogcatMainLines is the number of main log lines included.
	// Default: 200
	LogcatMainLines *int `json:"logcat_main_lines,omitempty" koanf:"logcat_main_lines" toml:"logcat_main_lines"`

	// DumpFds includes the list of open file descriptors.
	// Default: true
	DumpFds *bool `json:"dump_fds,omitempty" koanf:"dump_fds" toml:"dump_fds"`

	// MinPlatformVersion is a semver constraint the host platform version
	// must satisfy for ANR capture to be armed.
	// Default: ">= 3.10"
	MinPlatformVersion string `json:"min_platform_version,omitempty" koanf:"min_platform_version" toml:"min_platform_version"`
}

// IsEnabled returns whether ANR capture was requested.
func (a *ANRConfig) IsEnabled() bool {
	if a == nil {
		return true
	}

	return boolOr(a.Enabled, true)
}

// ShouldRethrow returns whether the ANR is forwarded to the platform.
func (a *ANRConfig) ShouldRethrow() bool {
	if a == nil {
		return true
	}

	return boolOr(a.Rethrow, true)
}

// GetLogCountMax returns the number of retained ANR traces.
func (a *ANRConfig) GetLogCountMax() int {
	if a == nil {
		return DefaultANRLogCountMax
	}

	return intOr(a.LogCountMax, DefaultANRLogCountMax)
}

// GetLogcatSystemLines returns the system log line count.
func (a *ANRConfig) GetLogcatSystemLines() int {
	if a == nil {
		return DefaultLogcatSystemLines
	}

	return intOr(a.LogcatSystemLines, DefaultLogcatSystemLines)
}

// GetLogcatEventsLines returns the events log line count.
func (a *ANRConfig) GetLogcatEventsLines() int {
	if a == nil {
		return DefaultLogcatEventsLines
	}

	return intOr(a.LogcatEventsLines, DefaultLogcatEventsLines)
}

// GetLogcatMainLines returns the main log line count.
func (a *ANRConfig) GetLogcatMainLines() int {
	if a == nil {
		return DefaultLogcatMainLines
	}

	return intOr(a.LogcatMainLines, DefaultLogcatMainLines)
}

// ShouldDumpFds returns whether open file descriptors are dumped.
func (a *ANRConfig) ShouldDumpFds() bool {
	if a == nil {
		return true
	}

	return boolOr(a.DumpFds, true)
}

// GetMinPlatformVersion returns the platform version constraint.
func (a *ANRConfig) GetMinPlatformVersion() string {
	if a == nil || a.MinPlatformVersion == "" {
		return DefaultANRMinPlatformVersion
	}

	return a.MinPlatformVersion
}

func (a *ANRConfig) clone() *ANRConfig {
	if a == nil {
		return nil
	}

	return &ANRConfig{
		Enabled:            cloneBool(a.Enabled),
		Rethrow:            cloneBool(a.Rethrow),
		LogCountMax:        cloneInt(a.LogCountMax),
		LogcatSystemLines:  cloneInt(a.LogcatSystemLines),
		LogcatEventsLines:  cloneInt(a.LogcatEventsLines),
		LogcatMainLines:    cloneInt(a.LogcatMainLines),
		DumpFds:            cloneBool(a.DumpFds),
		MinPlatformVersion: a.MinPlatformVersion,
	}
}
