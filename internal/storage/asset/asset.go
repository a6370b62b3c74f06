// Package asset fetches document assets referenced by gallery items, either from the
// report directory or from S3 (s3://bucket/key).
package asset

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/kailas-cloud/evalview/internal/domain"
)

const (
	s3Scheme = "s3://"
	// URLPrefix is where the host serves assets.
	URLPrefix = "/files/"
	s3URLSeg  = "s3/"
)

// Dir reads assets relative to a root directory.
type Dir struct {
	root string
}

// NewDir creates a directory fetcher.
func NewDir(root string) *Dir {
	return &Dir{root: root}
}

// Fetch reads a file under the root. Paths escaping the root are rejected.
func (d *Dir) Fetch(_ context.Context, p string) ([]byte, error) {
	clean := path.Clean("/" + filepath.ToSlash(p))
	if clean == "/" {
		return nil, fmt.Errorf("%q: %w", p, domain.ErrAssetNotFound)
	}
	data, err := os.ReadFile(filepath.Join(d.root, filepath.FromSlash(clean)))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%q: %w", p, domain.ErrAssetNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read asset %q: %w", p, err)
	}
	return data, nil
}

type fetcher interface {
	Fetch(ctx context.Context, p string) ([]byte, error)
}

// Router dispatches by scheme: s3:// paths go to the S3 fetcher, the rest to the directory.
type Router struct {
	local fetcher
	s3    fetcher
}

// NewRouter creates a router. s3 may be nil when no bucket access is configured.
func NewRouter(local, s3 fetcher) *Router {
	return &Router{local: local, s3: s3}
}

// Fetch reads the asset at p.
func (r *Router) Fetch(ctx context.Context, p string) ([]byte, error) {
	if strings.HasPrefix(p, s3Scheme) {
		if r.s3 == nil {
			return nil, fmt.Errorf("%q (s3 not configured): %w", p, domain.ErrAssetNotFound)
		}
		return r.s3.Fetch(ctx, p)
	}
	return r.local.Fetch(ctx, p)
}

// URL maps an asset path to the host URL that serves it.
func URL(p string) string {
	if rest, ok := strings.CutPrefix(p, s3Scheme); ok {
		return URLPrefix + s3URLSeg + escapePath(rest)
	}
	return URLPrefix + escapePath(strings.TrimPrefix(filepath.ToSlash(p), "/"))
}

// FromURL reverses URL for the part after URLPrefix.
func FromURL(rest string) string {
	if s, ok := strings.CutPrefix(rest, s3URLSeg); ok {
		return s3Scheme + s
	}
	return rest
}

func escapePath(p string) string {
	segs := strings.Split(p, "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return strings.Join(segs, "/")
}

func splitS3(p string) (bucket, key string, err error) {
	rest := strings.TrimPrefix(p, s3Scheme)
	bucket, key, ok := strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", fmt.Errorf("malformed s3 path %q: %w", p, domain.ErrAssetNotFound)
	}
	return bucket, key, nil
}
