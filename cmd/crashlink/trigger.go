package main

import (
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/smykla-labs/crashlink/pkg/crashlink"
)

const reportTimeout = 10 * time.Second

var (
	errInitFailed  = errors.New("crash capture could not be armed")
	errNoReport    = errors.New("no report was delivered")
	errANRDisabled = errors.New("anr capture is disabled on this platform")
)

type delivered struct {
	path      string
	emergency string
}

// channelHandler forwards the first report to a channel.
func channelHandler(ch chan<- delivered) crashlink.HandlerFunc {
	return func(path, emergency string) error {
		select {
		case ch <- delivered{path: path, emergency: emergency}:
		default:
		}

		return nil
	}
}

func newTestCrashCmd(a *app) *cobra.Command {
	var newGoroutine bool

	cmd := &cobra.Command{
		Use:   "test-crash",
		Short: "Trigger a synthetic native crash and print the report",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			ch := make(chan delivered, 1)

			client, err := a.arm(crashlink.WithCrashHandler(channelHandler(ch)))
			if err != nil {
				return err
			}

			client.TestNativeCrash(newGoroutine)

			return a.await(ch)
		},
	}

	cmd.Flags().BoolVar(&newGoroutine, "new-goroutine", false, "crash on a dedicated goroutine")

	return cmd
}

func newTestANRCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "test-anr",
		Short: "Trigger a synthetic ANR and print the trace",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			ch := make(chan delivered, 1)

			client, err := a.arm(crashlink.WithANRHandler(channelHandler(ch)))
			if err != nil {
				return err
			}

			if !client.ANREnabled() {
				return errANRDisabled
			}

			client.TestANR()

			return a.await(ch)
		},
	}
}

func (a *app) arm(opts ...crashlink.Option) (*crashlink.Client, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, err
	}

	client := crashlink.New(cfg, append(opts, crashlink.WithLogger(a.log))...)

	if status := client.Init(); status != crashlink.StatusOK {
		return nil, errors.Wrapf(errInitFailed, "status %s (%d)", status, status.Code())
	}

	return client, nil
}

func (a *app) await(ch <-chan delivered) error {
	select {
	case d := <-ch:
		fmt.Fprintf(a.stdout, "report: %s\n", d.path)
		fmt.Fprintf(a.stdout, "emergency: %s\n", d.emergency)

		return nil
	case <-time.After(reportTimeout):
		return errNoReport
	}
}
