package main

import (
	"github.com/spf13/cobra"

	"camdir/internal/app"
	"camdir/internal/infra/picker"
	"camdir/internal/logging"
	"camdir/internal/presentation"
)

func newLsCmd(opts *rootOptions) *cobra.Command {
	var dirs []string

	cmd := &cobra.Command{
		Use:   "ls",
		Short: "Discover a device and print its file list",
		Long: "Runs discovery once and prints the resolved folder's files. With --dir the\n" +
			"folder is chosen directly and discovery is skipped.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			logger := logging.New(cmd.ErrOrStderr(), cfg.Verbose)

			session, err := newSession(cfg, logger)
			if err != nil {
				return err
			}

			var state app.State
			if len(dirs) > 0 {
				state, err = session.Pick(cmd.Context(), picker.Static{Dirs: dirs})
			} else {
				state, err = session.Refresh(cmd.Context())
			}
			logger.Verbosef("ls finished: %v", err)

			printer := presentation.Printer{Writer: cmd.OutOrStdout(), Verbose: cfg.Verbose}
			printer.PrintState(state)
			if state.View() == app.ViewError {
				return exitCode(1)
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&dirs, "dir", nil, "Folder to list instead of discovering a device")
	return cmd
}
