package presentation

import (
	"bytes"
	"strings"
	"testing"

	"camdir/internal/app"
	"camdir/internal/domain"
	appErrors "camdir/internal/errors"
)

func TestPrintStateFiles(t *testing.T) {
	var buf bytes.Buffer
	printer := Printer{Writer: &buf}

	printer.PrintState(app.State{Files: domain.FileList{"IMG_0001.JPG", "IMG_0002.JPG"}, Loaded: true})
	if buf.String() != "IMG_0001.JPG\nIMG_0002.JPG\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestPrintStateErrorHidesFiles(t *testing.T) {
	var buf bytes.Buffer
	printer := Printer{Writer: &buf}

	printer.PrintState(app.State{Err: appErrors.NoPermission, Files: domain.FileList{"a"}})
	if buf.String() != "No permission\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestPrintStateEmptyWithNotice(t *testing.T) {
	var buf bytes.Buffer
	printer := Printer{Writer: &buf}

	printer.PrintState(app.State{Notice: "Nothing found: no device"})
	output := buf.String()
	if !strings.HasPrefix(output, "No files\n") || !strings.Contains(output, "no device") {
		t.Fatalf("unexpected output %q", output)
	}
}

func TestPrintStateVerboseShowsSource(t *testing.T) {
	var buf bytes.Buffer
	printer := Printer{Writer: &buf, Verbose: true}

	printer.PrintState(app.State{
		Files:  domain.FileList{"a.jpg"},
		Device: domain.Device{Name: "LEICA", MountPoint: "/media/u/LEICA"},
		Dir:    domain.FileURL("/media/u/LEICA/DCIM/100LEICA"),
	})
	output := buf.String()
	if !strings.Contains(output, "Device: LEICA (nil)") {
		t.Fatalf("expected device line, got %q", output)
	}
	if !strings.Contains(output, "Directory: /media/u/LEICA/DCIM/100LEICA") {
		t.Fatalf("expected directory line, got %q", output)
	}
}

func TestPrintDevices(t *testing.T) {
	var buf bytes.Buffer
	printer := Printer{Writer: &buf}

	printer.PrintDevices(nil)
	if !strings.Contains(buf.String(), "No removable volumes") {
		t.Fatalf("unexpected output %q", buf.String())
	}

	buf.Reset()
	printer.PrintDevices([]domain.Device{{Name: "SD", ID: "0E2B-1F3A", MountPoint: "/Volumes/SD", DevicePath: "/dev/disk4s1"}})
	output := buf.String()
	for _, want := range []string{"NAME", "SD", "0E2B-1F3A", "/Volumes/SD", "/dev/disk4s1"} {
		if !strings.Contains(output, want) {
			t.Fatalf("expected %q in %q", want, output)
		}
	}
}
