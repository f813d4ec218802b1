// Package config provides configuration schema types for crashlink.
package config

// Config is the root configuration for arming the capture engine.
type Config struct {
	// AppID identifies the application in reports.
	AppID string `json:"app_id,omitempty" koanf:"app_id" toml:"app_id"`

	// AppVersion is the application version recorded in reports.
	AppVersion string `json:"app_version,omitempty" koanf:"app_version" toml:"app_version"`

	// LogDir is the directory the engine writes reports into.
	// Required.
	LogDir string `json:"log_dir,omitempty" koanf:"log_dir" toml:"log_dir"`

	// LogLevel is the level of crashlink's own diagnostics.
	// Default: "info"
	LogLevel string `json:"log_level,omitempty" koanf:"log_level" toml:"log_level"`

	// Crash contains native crash capture settings.
	Crash *CrashConfig `json:"crash,omitempty" koanf:"crash" toml:"crash"`

	// ANR contains application-not-responding capture settings.
	ANR *ANRConfig `json:"anr,omitempty" koanf:"anr" toml:"anr"`
}

// GetCrash returns the crash config, creating it if it doesn't exist.
func (c *Config) GetCrash() *CrashConfig {
	if c.Crash == nil {
		c.Crash = &CrashConfig{}
	}

	return c.Crash
}

// GetANR returns the ANR config, creating it if it doesn't exist.
func (c *Config) GetANR() *ANRConfig {
	if c.ANR == nil {
		c.ANR = &ANRConfig{}
	}

	return c.ANR
}

// Clone returns a deep copy. The engine binding keeps a clone so that
// changes made by the caller after arming have no effect.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	out := *c
	out.Crash = c.Crash.clone()
	out.ANR = c.ANR.clone()

	return &out
}

func cloneBool(p *bool) *bool {
	if p == nil {
		return nil
	}

	v := *p

	return &v
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}

	v := *p

	return &v
}

func boolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}

	return *p
}

func intOr(p *int, def int) int {
	if p == nil {
		return def
	}

	return *p
}
