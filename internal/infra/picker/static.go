package picker

import (
	"context"

	"camdir/internal/domain"
	appErrors "camdir/internal/errors"
)

// Static is a non-interactive picker fed from the command line. Only the
// first selection is used; an empty selection counts as cancelled.
type Static struct {
	Dirs []string
}

func (s Static) Pick(ctx context.Context) (domain.DirectoryURL, bool, error) {
	if err := ctx.Err(); err != nil {
		return domain.DirectoryURL{}, false, err
	}
	if len(s.Dirs) == 0 {
		return domain.DirectoryURL{}, false, nil
	}
	dir, err := domain.ParseURL(s.Dirs[0])
	if err != nil {
		return domain.DirectoryURL{}, false, appErrors.Wrap(appErrors.InvalidPath, "pick", s.Dirs[0], err)
	}
	return dir, true, nil
}
