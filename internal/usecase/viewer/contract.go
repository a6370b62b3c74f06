package viewer

import (
	"context"

	domviewer "github.com/kailas-cloud/evalview/internal/domain/viewer"
)

// Decoder opens a paginated asset. It is the external renderer's decode step.
type Decoder interface {
	Decode(ctx context.Context, path string) (domviewer.Document, error)
}

// Render describes a painted page.
type Render struct {
	Page   int
	Scale  float64
	Width  float64
	Height float64
}

// Painter renders one page of a decoded asset at the given scale.
type Painter interface {
	Paint(ctx context.Context, doc domviewer.Document, page int, scale float64) (Render, error)
}

// Display shows viewer state on the surface.
type Display interface {
	ShowLoading(docID string)
	ShowNavigation(s domviewer.State)
	ShowPage(s domviewer.State, r Render)
	ShowError(docID string)
}

// Dispatcher schedules a completion onto the event loop that owns the registry.
type Dispatcher interface {
	Post(fn func())
}
