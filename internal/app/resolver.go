package app

import (
	"fmt"
	"path"
	"strings"

	"camdir/internal/domain"
	appErrors "camdir/internal/errors"
)

// Resolver redirects a device URL from one well-known DCIM subfolder to
// another by replacing a single path segment.
type Resolver struct {
	From string
	To   string
}

func NewResolver(from, to string) (Resolver, error) {
	if from == "" || to == "" {
		return Resolver{}, appErrors.New(appErrors.InvalidConfig, "resolver", "", "from and to segments are required")
	}
	if strings.Contains(from, "/") || strings.Contains(to, "/") {
		return Resolver{}, appErrors.New(appErrors.InvalidConfig, "resolver", "", "segments must not contain '/'")
	}
	if _, err := path.Match(from, ""); err != nil {
		return Resolver{}, appErrors.Wrap(appErrors.InvalidConfig, "resolver", from, err)
	}
	return Resolver{From: from, To: to}, nil
}

func (r Resolver) Resolve(raw domain.DirectoryURL) (domain.Resolution, error) {
	if raw.Scheme != "" && raw.Scheme != "file" {
		return domain.Resolution{}, appErrors.New(appErrors.InvalidPath, "resolve", raw.String(), "not a file url")
	}
	segments := raw.Segments()
	if len(segments) == 0 {
		return domain.Resolution{}, appErrors.New(appErrors.InvalidPath, "resolve", raw.String(), "empty path")
	}

	// The deepest segment matching From or equal to To is redirected, so a
	// resolved URL resolves to itself.
	idx := lastIndex(segments, func(s string) bool { return s == r.To || r.matchesFrom(s) })
	if idx < 0 {
		return domain.Resolution{}, appErrors.Wrap(appErrors.InvalidPath, "resolve", raw.String(),
			fmt.Errorf("no segment matches %q or %q", r.From, r.To))
	}

	replaced := make([]string, len(segments))
	copy(replaced, segments)
	replaced[idx] = r.To

	return domain.Resolution{
		Target: raw.WithSegments(replaced),
		Dir:    raw.WithSegments(replaced[:idx+1]),
	}, nil
}

func (r Resolver) matchesFrom(segment string) bool {
	if segment == r.To {
		return false
	}
	ok, err := path.Match(r.From, segment)
	return err == nil && ok
}

func lastIndex(segments []string, pred func(string) bool) int {
	for i := len(segments) - 1; i >= 0; i-- {
		if pred(segments[i]) {
			return i
		}
	}
	return -1
}
