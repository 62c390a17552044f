package presentation

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"camdir/internal/app"
	"camdir/internal/domain"
	appErrors "camdir/internal/errors"
)

type Printer struct {
	Writer  io.Writer
	Verbose bool
}

// PrintState writes the single rendering State.View selects.
func (p Printer) PrintState(state app.State) {
	switch state.View() {
	case app.ViewError:
		fmt.Fprintln(p.Writer, appErrors.Message(state.Err))
	case app.ViewFiles:
		if p.Verbose {
			p.printSource(state)
		}
		for _, name := range state.Files {
			fmt.Fprintln(p.Writer, name)
		}
	default:
		fmt.Fprintln(p.Writer, "No files")
		if state.Notice != "" {
			fmt.Fprintln(p.Writer, state.Notice)
		}
	}
}

func (p Printer) printSource(state app.State) {
	if state.Device.MountPoint != "" {
		fmt.Fprintf(p.Writer, "Device: %s (%s)\n", state.Device.DisplayName(), state.Device.DisplayID())
	}
	fmt.Fprintf(p.Writer, "Directory: %s\n", state.Dir.LocalPath())
	fmt.Fprintln(p.Writer)
}

func (p Printer) PrintDevices(devices []domain.Device) {
	if len(devices) == 0 {
		fmt.Fprintln(p.Writer, "No removable volumes attached.")
		return
	}
	fmt.Fprintln(p.Writer, DeviceTable(devices))
}

// DeviceTable renders devices as a bordered table.
func DeviceTable(devices []domain.Device) string {
	rows := make([][]string, 0, len(devices))
	for _, d := range devices {
		mount := d.MountPoint
		if mount == "" {
			mount = "(not mounted)"
		}
		rows = append(rows, []string{d.DisplayName(), d.DisplayID(), mount, d.DevicePath})
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("NAME", "UUID", "MOUNT", "DEVICE").
		Rows(rows...).
		String()
}
