package app

import (
	"context"
	"errors"

	"camdir/internal/domain"
	appErrors "camdir/internal/errors"
	"camdir/internal/logging"
)

// Lister enumerates the entry names of one directory inside a scoped access
// bracket.
type Lister struct {
	Access ScopedAccess
	Reader DirReader
	Logger logging.Logger
}

// List returns the raw entry names of dir. A refused access grant yields an
// empty list and no error.
func (l *Lister) List(ctx context.Context, dir domain.DirectoryURL) (domain.FileList, error) {
	if l.Access == nil || l.Reader == nil {
		return nil, errors.New("lister requires Access and Reader")
	}

	if !l.Access.Begin(dir) {
		l.Logger.Verbosef("Cannot start scoped access to %s", dir.String())
		return domain.FileList{}, nil
	}
	defer l.Access.End(dir)

	stop := l.Logger.Measure("Listing " + dir.LocalPath())
	defer stop()

	names, err := l.Reader.ReadDirNames(ctx, dir.LocalPath())
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, appErrors.Wrap(appErrors.IOFailure, "readdir", dir.LocalPath(), err)
	}
	if names == nil {
		names = []string{}
	}
	return domain.FileList(names), nil
}
