package main

import (
	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

func newConfigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			cfg, err := a.provider().LoadUnvalidated()
			if err != nil {
				return err
			}

			enc := toml.NewEncoder(a.stdout)
			enc.SetIndentTables(true)

			return errors.Wrap(enc.Encode(cfg), "encoding config")
		},
	}
}
