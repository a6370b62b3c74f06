// Package pdfasset decodes PDF assets with pdfcpu and lays out page renders for the
// document viewer. Pixels are painted by the browser; the server owns page geometry.
package pdfasset

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	domviewer "github.com/kailas-cloud/evalview/internal/domain/viewer"
	"github.com/kailas-cloud/evalview/internal/usecase/viewer"
)

type fetcher interface {
	Fetch(ctx context.Context, p string) ([]byte, error)
}

// Document is a decoded PDF: the media box of every page.
type Document struct {
	dims []types.Dim
}

// NumPages returns the page count.
func (d *Document) NumPages() int { return len(d.dims) }

// PageWidth returns the width of a 1-based page, 0 when out of range.
func (d *Document) PageWidth(page int) float64 {
	if page < 1 || page > len(d.dims) {
		return 0
	}
	return d.dims[page-1].Width
}

// PageHeight returns the height of a 1-based page, 0 when out of range.
func (d *Document) PageHeight(page int) float64 {
	if page < 1 || page > len(d.dims) {
		return 0
	}
	return d.dims[page-1].Height
}

// Decoder reads page geometry from PDF assets.
type Decoder struct {
	fetch fetcher
	conf  *model.Configuration
}

// NewDecoder creates a decoder reading assets through f.
func NewDecoder(f fetcher) *Decoder {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &Decoder{fetch: f, conf: conf}
}

// Decode fetches and parses the asset at path.
func (d *Decoder) Decode(ctx context.Context, path string) (domviewer.Document, error) {
	data, err := d.fetch.Fetch(ctx, path)
	if err != nil {
		return nil, err
	}
	doc, err := d.decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (d *Decoder) decode(rs io.ReadSeeker) (*Document, error) {
	dims, err := api.PageDims(rs, d.conf)
	if err != nil {
		return nil, fmt.Errorf("decode pdf: %w", err)
	}
	return &Document{dims: dims}, nil
}

// Painter sizes page renders.
type Painter struct{}

// Paint returns the canvas geometry of page at scale.
func (Painter) Paint(_ context.Context, doc domviewer.Document, page int, scale float64) (viewer.Render, error) {
	if doc == nil || page < 1 || page > doc.NumPages() {
		return viewer.Render{}, fmt.Errorf("page %d: %w", page, domviewer.ErrPageOutOfRange)
	}
	r := viewer.Render{Page: page, Scale: scale, Width: doc.PageWidth(page) * scale}
	if h, ok := doc.(interface{ PageHeight(int) float64 }); ok {
		r.Height = h.PageHeight(page) * scale
	}
	return r, nil
}
