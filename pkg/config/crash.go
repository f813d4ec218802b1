package config

const (
	// DefaultLogcatSystemLines is the default number of system log lines captured.
	DefaultLogcatSystemLines = 50

	// DefaultLogcatEventsLines is the default number of events log lines captured.
	DefaultLogcatEventsLines = 50

	// DefaultLogcatMainLines is the default number of main log lines captured.
	DefaultLogcatMainLines = 200
)

// CrashConfig configures native crash capture.
type CrashConfig struct {
	// Enabled controls whether native crashes are captured.
	// Default: true
	Enabled *bool `json:"enabled,omitempty" koanf:"enabled" toml:"enabled"`

	// Rethrow controls whether the engine re-raises the fault after capture
	// so the platform's default handling still runs.
	// Default: true
	Rethrow *bool `json:"rethrow,omitempty" koanf:"rethrow" toml:"rethrow"`

	// LogcatSystemLines is the number of system log lines included.
	// Default: 50
	LogcatSystemLines *int `json:"logcat_system_lines,omitempty" koanf:"logcat_system_lines" toml:"logcat_system_lines"`

	// LogcatEventsLines is the number of events log lines included.
	// Default: 50
	LogcatEventsLines *int `json:"logcat_events_lines,omitempty" koanf:"logcat_events_lines" toml:"logcat_events_lines"`

	// LogcatMainLines is the number of main log lines included.
	// Default: 200
	LogcatMainLines *int `json:"logcat_main_lines,omitempty" koanf:"logcat_main_lines" toml:"logcat_main_lines"`

	// DumpElfHash includes ELF build-id hashes of loaded modules.
	// Default: true
	DumpElfHash *bool `json:"dump_elf_hash,omitempty" koanf:"dump_elf_hash" toml:"dump_elf_hash"`

	// DumpMap includes the process memory map.
	// Default: true
	DumpMap *bool `json:"dump_map,omitempty" koanf:"dump_map" toml:"dump_map"`

	// DumpFds includes the list of open file descriptors.
	// Default: true
	DumpFds *bool `json:"dump_fds,omitempty" koanf:"dump_fds" toml:"dump_fds"`

	// DumpAllThreads includes the stacks of every other thread.
	// Default: true
	DumpAllThreads *bool `json:"dump_all_threads,omitempty" koanf:"dump_all_threads" toml:"dump_all_threads"`

	// DumpAllThreadsCountMax limits how many threads are dumped. Zero means no limit.
	// Default: 0
	DumpAllThreadsCountMax *int `json:"dump_all_threads_count_max,omitempty" koanf:"dump_all_threads_count_max" toml:"dump_all_threads_count_max"`

	// DumpAllThreadsAllowList restricts DumpAllThreads to threads whose name
	// matches one of these patterns (glob or regex). Empty means all threads.
	DumpAllThreadsAllowList []string `json:"dump_all_threads_allow_list,omitempty" koanf:"dump_all_threads_allow_list" toml:"dump_all_threads_allow_list"`
}

// IsEnabled returns whether crash capture is enabled.
func (c *CrashConfig) IsEnabled() bool {
	if c == nil {
		return true
	}

	return boolOr(c.Enabled, true)
}

// ShouldRethrow returns whether the engine re-raises the fault.
func (c *CrashConfig) ShouldRethrow() bool {
	if c == nil {
		return true
	}

	return boolOr(c.Rethrow, true)
}

// GetLogcatSystemLines returns the system log line count.
func (c *CrashConfig) GetLogcatSystemLines() int {
	if c == nil {
		return DefaultLogcatSystemLines
	}

	return intOr(c.LogcatSystemLines, DefaultLogcatSystemLines)
}

// GetLogcatEventsLines returns the events log line count.
func (c *CrashConfig) GetLogcatEventsLines() int {
	if c == nil {
		return DefaultLogcatEventsLines
	}

	return intOr(c.LogcatEventsLines, DefaultLogcatEventsLines)
}

// GetLogcatMainLines returns the main log line count.
func (c *CrashConfig) GetLogcatMainLines() int {
	if c == nil {
		return DefaultLogcatMainLines
	}

	return intOr(c.LogcatMainLines, DefaultLogcatMainLines)
}

// ShouldDumpElfHash returns whether ELF hashes are dumped.
func (c *CrashConfig) ShouldDumpElfHash() bool {
	if c == nil {
		return true
	}

	return boolOr(c.DumpElfHash, true)
}

// ShouldDumpMap returns whether memory maps are dumped.
func (c *CrashConfig) ShouldDumpMap() bool {
	if c == nil {
		return true
	}

	return boolOr(c.DumpMap, true)
}

// ShouldDumpFds returns whether open file descriptors are dumped.
func (c *CrashConfig) ShouldDumpFds() bool {
	if c == nil {
		return true
	}

	return boolOr(c.DumpFds, true)
}

// ShouldDumpAllThreads returns whether all threads are dumped.
func (c *CrashConfig) ShouldDumpAllThreads() bool {
	if c == nil {
		return true
	}

	return boolOr(c.DumpAllThreads, true)
}

// GetDumpAllThreadsCountMax returns the thread dump limit (0 = unlimited).
func (c *CrashConfig) GetDumpAllThreadsCountMax() int {
	if c == nil {
		return 0
	}

	return intOr(c.DumpAllThreadsCountMax, 0)
}

func (c *CrashConfig) clone() *CrashConfig {
	if c == nil {
		return nil
	}

	return &CrashConfig{
		Enabled:                 cloneBool(c.Enabled),
		Rethrow:                 cloneBool(c.Rethrow),
		LogcatSystemLines:       cloneInt(c.LogcatSystemLines),
		LogcatEventsLines:       cloneInt(c.LogcatEventsLines),
		LogcatMainLines:         cloneInt(c.LogcatMainLines),
		DumpElfHash:             cloneBool(c.DumpElfHash),
		DumpMap:                 cloneBool(c.DumpMap),
		DumpFds:                 cloneBool(c.DumpFds),
		DumpAllThreads:          cloneBool(c.DumpAllThreads),
		DumpAllThreadsCountMax:  cloneInt(c.DumpAllThreadsCountMax),
		DumpAllThreadsAllowList: append([]string(nil), c.DumpAllThreadsAllowList...),
	}
}
