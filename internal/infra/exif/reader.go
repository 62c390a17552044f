package exif

import (
	"context"
	"errors"
	"strings"

	goexif "github.com/rwcarlsen/goexif/exif"
	"github.com/spf13/afero"
)

// Reader identifies the camera that wrote an image.
type Reader struct {
	Fs afero.Fs
}

// CameraModel returns "<Make> <Model>" from the EXIF header of path, without
// repeating the make when the model already starts with it.
func (r Reader) CameraModel(ctx context.Context, path string) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	fsys := r.Fs
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	file, err := fsys.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	x, err := goexif.Decode(file)
	if err != nil {
		return "", err
	}

	maker := tagString(x, goexif.Make)
	model := tagString(x, goexif.Model)
	switch {
	case model == "" && maker == "":
		return "", errors.New("exif camera model not found")
	case model == "":
		return maker, nil
	case maker == "" || strings.HasPrefix(strings.ToLower(model), strings.ToLower(maker)):
		return model, nil
	default:
		return maker + " " + model, nil
	}
}

func tagString(x *goexif.Exif, name goexif.FieldName) string {
	tag, err := x.Get(name)
	if err != nil {
		return ""
	}
	str, err := tag.StringVal()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(strings.TrimRight(str, "\x00"))
}
