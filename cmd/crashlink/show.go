package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/smykla-labs/crashlink/internal/crashdump"
)

var errUnknownFormat = errors.New("unknown output format")

// shownReport is the structured form printed by show.
type shownReport struct {
	Summary *crashdump.Summary `json:"summary" yaml:"summary"`
	Report  *crashdump.Report  `json:"report" yaml:"report"`
}

func newShowCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show <report>",
		Short: "Print a crash or ANR report",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			width, ok := terminalWidth(a.stdout)
			if !ok {
				width = crashdump.DefaultEmergencyWidth
			}

			summary, err := crashdump.Summarize(args[0], width)
			if err != nil {
				return err
			}

			report, err := crashdump.ParseFile(args[0])
			if err != nil {
				return err
			}

			return writeReport(a.stdout, format, shownReport{Summary: summary, Report: report})
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "output format: text, json or yaml")

	return cmd
}

func writeReport(w io.Writer, format string, r shownReport) error {
	switch strings.ToLower(format) {
	case "text":
		return writeText(w, r)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return errors.Wrap(enc.Encode(r), "encoding json")
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)

		if err := enc.Encode(r); err != nil {
			return errors.Wrap(err, "encoding yaml")
		}

		return errors.Wrap(enc.Close(), "encoding yaml")
	default:
		return errors.Wrapf(errUnknownFormat, "%q", format)
	}
}

func writeText(w io.Writer, r shownReport) error {
	var sb strings.Builder

	s := r.Summary
	fmt.Fprintf(&sb, "ID:        %s\n", s.ID)
	fmt.Fprintf(&sb, "Kind:      %s\n", s.Kind)

	if !s.Timestamp.IsZero() {
		fmt.Fprintf(&sb, "Time:      %s\n", s.Timestamp.UTC().Format("2006-01-02 15:04:05.000 MST"))
	}

	fmt.Fprintf(&sb, "Size:      %s\n", s.HumanSize())
	fmt.Fprintf(&sb, "Emergency: %s\n", s.Emergency)
	fmt.Fprintf(&sb, "Sections:  %s\n", strings.Join(s.Sections, ", "))

	for _, f := range r.Report.Header {
		fmt.Fprintf(&sb, "  %s: %s\n", f.Key, f.Value)
	}

	for _, sec := range r.Report.Sections {
		sb.WriteString("\n")
		sb.WriteString(sec.Render())
	}

	_, err := io.WriteString(w, sb.String())

	return errors.Wrap(err, "writing report")
}
