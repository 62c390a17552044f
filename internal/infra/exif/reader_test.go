package exif

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCameraModelRejectsNonExif(t *testing.T) {
	mem := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(mem, "/card/IMG_0001.JPG", []byte("not a jpeg"), 0o644))

	_, err := Reader{Fs: mem}.CameraModel(context.Background(), "/card/IMG_0001.JPG")
	assert.Error(t, err)
}

func TestCameraModelMissingFile(t *testing.T) {
	_, err := Reader{Fs: afero.NewMemMapFs()}.CameraModel(context.Background(), "/nope.jpg")
	assert.Error(t, err)
}

func TestCameraModelHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Reader{}.CameraModel(ctx, "/whatever.jpg")
	assert.ErrorIs(t, err, context.Canceled)
}
