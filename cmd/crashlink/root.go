package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/smykla-labs/crashlink/internal/config/provider"
	pkgconfig "github.com/smykla-labs/crashlink/pkg/config"
	"github.com/smykla-labs/crashlink/pkg/logger"
)

// app holds state shared by all subcommands.
type app struct {
	stdout io.Writer
	stderr io.Writer

	configPath string
	flags      *pflag.FlagSet

	log logger.Logger
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:           "crashlink",
		Short:         "Exercise and inspect crash capture",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "path to a crashlink.toml config file")
	pf.String("log-dir", "", "directory reports are written to")
	pf.String("log-level", "", "crashlink diagnostics level (debug, info, warn, error)")
	pf.String("app-id", "", "application id recorded in reports")
	a.flags = pf

	root.AddCommand(
		newTestCrashCmd(a),
		newTestANRCmd(a),
		newShowCmd(a),
		newConfigCmd(a),
	)

	return root
}

// flagOverrides maps explicitly set global flags to config keys.
func (a *app) flagOverrides() map[string]any {
	keys := map[string]string{
		"log-dir":   "log_dir",
		"log-level": "log_level",
		"app-id":    "app_id",
	}

	out := make(map[string]any)

	a.flags.Visit(func(f *pflag.Flag) {
		if key, ok := keys[f.Name]; ok {
			out[key] = f.Value.String()
		}
	})

	return out
}

func (a *app) provider() *provider.Provider {
	return provider.NewDefaultProvider(a.configPath, a.flagOverrides())
}

// loadConfig loads and validates the configuration and sets up logging.
func (a *app) loadConfig() (*pkgconfig.Config, error) {
	cfg, err := a.provider().Load()
	if err != nil {
		return nil, err
	}

	a.log = newLogger(a.stderr, cfg.LogLevel)

	return cfg, nil
}

// newLogger writes human-readable logs to a terminal and JSON otherwise.
func newLogger(w io.Writer, level string) logger.Logger {
	opts := &slog.HandlerOptions{Level: logger.ParseLevel(level)}

	var handler slog.Handler
	if isTerminal(w) {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	return logger.NewSlogLogger(slog.New(handler))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)

	return ok && term.IsTerminal(int(f.Fd()))
}

// terminalWidth returns the width of w when it is a terminal.
func terminalWidth(w io.Writer) (int, bool) {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0, false
	}

	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return 0, false
	}

	return width, true
}
