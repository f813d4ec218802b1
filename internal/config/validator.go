package config

import (
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/cockroachdb/errors"

	"github.com/smykla-labs/crashlink/internal/threads"
	pkgconfig "github.com/smykla-labs/crashlink/pkg/config"
)

var validLogLevels = []string{"debug", "info", "warn", "warning", "error"}

// Validator checks a configuration before it is used to arm the engine.
type Validator struct{}

// NewValidator creates a new Validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate returns the first problem found in cfg, or nil.
func (v *Validator) Validate(cfg *pkgconfig.Config) error {
	if cfg == nil || strings.TrimSpace(cfg.LogDir) == "" {
		return ErrMissingLogDir
	}

	if err := validateLogLevel(cfg.LogLevel); err != nil {
		return err
	}

	if err := v.validateCrash(cfg.Crash); err != nil {
		return errors.Wrap(err, "crash")
	}

	if err := v.validateANR(cfg.ANR); err != nil {
		return errors.Wrap(err, "anr")
	}

	return nil
}

func validateLogLevel(level string) error {
	if level == "" {
		return nil
	}

	for _, l := range validLogLevels {
		if strings.EqualFold(level, l) {
			return nil
		}
	}

	return errors.Wrapf(ErrInvalidLogLevel, "%q", level)
}

func (*Validator) validateCrash(c *pkgconfig.CrashConfig) error {
	if c == nil {
		return nil
	}

	limits := map[string]*int{
		"logcat_system_lines":        c.LogcatSystemLines,
		"logcat_events_lines":        c.LogcatEventsLines,
		"logcat_main_lines":          c.LogcatMainLines,
		"dump_all_threads_count_max": c.DumpAllThreadsCountMax,
	}
	if err := validateLimits(limits); err != nil {
		return err
	}

	for _, p := range c.DumpAllThreadsAllowList {
		if _, err := threads.CompilePattern(p); err != nil {
			return errors.Mark(errors.Wrapf(err, "dump_all_threads_allow_list %q", p), ErrInvalidPattern)
		}
	}

	return nil
}

func (*Validator) validateANR(a *pkgconfig.ANRConfig) error {
	if a == nil {
		return nil
	}

	limits := map[string]*int{
		"log_count_max":       a.LogCountMax,
		"logcat_system_lines": a.LogcatSystemLines,
		"logcat_events_lines": a.LogcatEventsLines,
		"logcat_main_lines":   a.LogcatMainLines,
	}
	if err := validateLimits(limits); err != nil {
		return err
	}

	if _, err := semver.NewConstraint(a.GetMinPlatformVersion()); err != nil {
		return errors.Mark(
			errors.Wrapf(err, "min_platform_version %q", a.GetMinPlatformVersion()),
			ErrInvalidVersionConstraint,
		)
	}

	return nil
}

func validateLimits(limits map[string]*int) error {
	for name, v := range limits {
		if v != nil && *v < 0 {
			return errors.Wrapf(ErrNegativeLimit, "%s = %d", name, *v)
		}
	}

	return nil
}
