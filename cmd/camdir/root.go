package main

import (
	"context"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"camdir/internal/config"
	appErrors "camdir/internal/errors"
	"camdir/internal/logging"
	"camdir/internal/tui"
)

type rootOptions struct {
	viper      *viper.Viper
	configFile string
}

func (o *rootOptions) load() (config.Config, error) {
	return config.Load(o.viper, o.configFile)
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{viper: viper.New()}

	cmd := &cobra.Command{
		Use:           "camdir",
		Short:         "Show the files of an attached camera's media folder",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			return runTUI(cmd.Context(), cfg)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "Config file (default is $XDG_CONFIG_HOME/camdir/camdir.toml)")
	if err := config.RegisterFlags(opts.viper, cmd.PersistentFlags()); err != nil {
		panic(err)
	}

	cmd.AddCommand(newLsCmd(opts), newDevicesCmd(opts))
	return cmd
}

func runTUI(ctx context.Context, cfg config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}

	// The alternate screen owns stdout, so verbose logs go to a file.
	var out io.Writer = io.Discard
	if cfg.Verbose {
		f, err := tea.LogToFile("camdir.log", "camdir")
		if err != nil {
			return appErrors.Wrap(appErrors.IOFailure, "open log", "camdir.log", err)
		}
		defer f.Close()
		out = f
	}
	logger := logging.New(out, cfg.Verbose)

	session, err := newSession(cfg, logger)
	if err != nil {
		return err
	}

	start, _ := os.UserHomeDir()
	model := tui.NewModel(ctx, session, tui.Config{PickerStart: start})
	if _, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return appErrors.Wrap(appErrors.Internal, "tui", "", err)
	}
	return nil
}
