package main

import (
	"github.com/spf13/cobra"

	"camdir/internal/infra/fs"
	"camdir/internal/logging"
	"camdir/internal/presentation"
)

func newDevicesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "devices",
		Short: "List attached removable volumes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			logger := logging.New(cmd.ErrOrStderr(), cfg.Verbose)

			discoverer := newStorageDiscoverer(cfg, fs.NewOSStore(), logger)
			devices, err := discoverer.List(cmd.Context())
			if err != nil {
				return err
			}

			printer := presentation.Printer{Writer: cmd.OutOrStdout(), Verbose: cfg.Verbose}
			printer.PrintDevices(devices)
			return nil
		},
	}
}
