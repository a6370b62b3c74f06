package chi

import (
	"context"

	"github.com/kailas-cloud/evalview/internal/usecase/session"
)

// ReportSession is the interactive report the server exposes.
type ReportSession interface {
	SelectDocument(ctx context.Context, docID *string) error
	ToggleGallery(ctx context.Context) error
	Navigate(ctx context.Context, docID string, direction int) error
	GalleryAsset(ctx context.Context, path string) error
	Render(ctx context.Context) (string, error)
	State(ctx context.Context) (session.Snapshot, error)
}

// AssetFetcher reads document assets by their report path.
type AssetFetcher interface {
	Fetch(ctx context.Context, path string) ([]byte, error)
}
