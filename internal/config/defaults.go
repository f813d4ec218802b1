package config

import (
	pkgconfig "github.com/smykla-labs/crashlink/pkg/config"
)

const (
	// DefaultLogLevel is the level of crashlink's own diagnostics.
	DefaultLogLevel = "info"

	// DefaultFileName is the config file looked up in the working directory.
	DefaultFileName = "crashlink.toml"

	// EnvPrefix prefixes every environment variable crashlink reads.
	EnvPrefix = "CRASHLINK_"
)

// DefaultConfig returns a configuration with every field set to its default.
// LogDir has no default and is left empty.
func DefaultConfig() *pkgconfig.Config {
	return &pkgconfig.Config{
		LogLevel: DefaultLogLevel,
		Crash:    DefaultCrashConfig(),
		ANR:      DefaultANRConfig(),
	}
}

// DefaultCrashConfig returns the default native crash settings.
func DefaultCrashConfig() *pkgconfig.CrashConfig {
	return &pkgconfig.CrashConfig{
		Enabled:                boolPtr(true),
		Rethrow:                boolPtr(true),
		LogcatSystemLines:      intPtr(pkgconfig.DefaultLogcatSystemLines),
		LogcatEventsLines:      intPtr(pkgconfig.DefaultLogcatEventsLines),
		LogcatMainLines:        intPtr(pkgconfig.DefaultLogcatMainLines),
		DumpElfHash:            boolPtr(true),
		DumpMap:                boolPtr(true),
		DumpFds:                boolPtr(true),
		DumpAllThreads:         boolPtr(true),
		DumpAllThreadsCountMax: intPtr(0),
	}
}

// DefaultANRConfig returns the default ANR settings.
func DefaultANRConfig() *pkgconfig.ANRConfig {
	return &pkgconfig.ANRConfig{
		Enabled:            boolPtr(true),
		Rethrow:            boolPtr(true),
		LogCountMax:        intPtr(pkgconfig.DefaultANRLogCountMax),
		LogcatSystemLines:  intPtr(pkgconfig.DefaultLogcatSystemLines),
		LogcatEventsLines:  intPtr(pkgconfig.DefaultLogcatEventsLines),
		LogcatMainLines:    intPtr(pkgconfig.DefaultLogcatMainLines),
		DumpFds:            boolPtr(true),
		MinPlatformVersion: pkgconfig.DefaultANRMinPlatformVersion,
	}
}

// DefaultsMap returns the defaults keyed by koanf path, suitable for a
// confmap provider.
func DefaultsMap() map[string]any {
	return map[string]any{
		"log_level":                        DefaultLogLevel,
		"crash.enabled":                    true,
		"crash.rethrow":                    true,
		"crash.logcat_system_lines":        pkgconfig.DefaultLogcatSystemLines,
		"crash.logcat_events_lines":        pkgconfig.DefaultLogcatEventsLines,
		"crash.logcat_main_lines":          pkgconfig.DefaultLogcatMainLines,
		"crash.dump_elf_hash":              true,
		"crash.dump_map":                   true,
		"crash.dump_fds":                   true,
		"crash.dump_all_threads":           true,
		"crash.dump_all_threads_count_max": 0,
		"anr.enabled":                      true,
		"anr.rethrow":                      true,
		"anr.log_count_max":                pkgconfig.DefaultANRLogCountMax,
		"anr.logcat_system_lines":          pkgconfig.DefaultLogcatSystemLines,
		"anr.logcat_events_lines":          pkgconfig.DefaultLogcatEventsLines,
		"anr.logcat_main_lines":            pkgconfig.DefaultLogcatMainLines,
		"anr.dump_fds":                     true,
		"anr.min_platform_version":         pkgconfig.DefaultANRMinPlatformVersion,
	}
}

func boolPtr(v bool) *bool {
	return &v
}

func intPtr(v int) *int {
	return &v
}
