package domain

import (
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

// DirectoryURL is a file URL pointing at a directory or at a resource inside
// one. Local paths are stored slash-separated.
type DirectoryURL struct {
	url.URL
}

func FileURL(localPath string) DirectoryURL {
	p := filepath.ToSlash(localPath)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return DirectoryURL{URL: url.URL{Scheme: "file", Path: p}}
}

// ParseURL accepts either a file URL or a plain local path.
func ParseURL(raw string) (DirectoryURL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DirectoryURL{}, fmt.Errorf("empty url")
	}
	if !strings.Contains(raw, "://") {
		return FileURL(raw), nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return DirectoryURL{}, err
	}
	if u.Scheme != "file" {
		return DirectoryURL{}, fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	return DirectoryURL{URL: *u}, nil
}

func (d DirectoryURL) IsZero() bool {
	return d.Scheme == "" && d.Path == ""
}

func (d DirectoryURL) LocalPath() string {
	return filepath.FromSlash(d.Path)
}

func (d DirectoryURL) Segments() []string {
	trimmed := strings.Trim(d.Path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

func (d DirectoryURL) WithSegments(segments []string) DirectoryURL {
	out := d
	out.Path = "/" + strings.Join(segments, "/")
	out.RawPath = ""
	return out
}

func (d DirectoryURL) Join(name string) DirectoryURL {
	out := d
	out.Path = path.Join(d.Path, name)
	out.RawPath = ""
	return out
}
