package pdfasset

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"github.com/kailas-cloud/evalview/internal/domain"
	domviewer "github.com/kailas-cloud/evalview/internal/domain/viewer"
)

// --- Mocks ---

type fileFetcher struct{}

func (fileFetcher) Fetch(_ context.Context, p string) ([]byte, error) {
	data, err := os.ReadFile("testdata/" + p)
	if err != nil {
		return nil, domain.ErrAssetNotFound
	}
	return data, nil
}

type widthOnly struct{}

func (widthOnly) NumPages() int         { return 1 }
func (widthOnly) PageWidth(int) float64 { return 100 }

// --- Tests ---

func TestDecoder_Decode(t *testing.T) {
	doc, err := NewDecoder(fileFetcher{}).Decode(context.Background(), "two-pages.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.NumPages() != 2 {
		t.Fatalf("expected 2 pages, got %d", doc.NumPages())
	}
	if doc.PageWidth(1) != 612 || doc.PageWidth(2) != 842 {
		t.Errorf("unexpected widths %v, %v", doc.PageWidth(1), doc.PageWidth(2))
	}
	if doc.PageWidth(3) != 0 {
		t.Error("out-of-range page must have zero width")
	}
}

func TestDecoder_Errors(t *testing.T) {
	d := NewDecoder(fileFetcher{})
	if _, err := d.Decode(context.Background(), "missing.pdf"); !errors.Is(err, domain.ErrAssetNotFound) {
		t.Errorf("expected ErrAssetNotFound, got %v", err)
	}
	if _, err := d.Decode(context.Background(), "broken.pdf"); err == nil {
		t.Error("expected decode error")
	}
}

func TestPainter_Paint(t *testing.T) {
	doc := &Document{dims: []types.Dim{{Width: 612, Height: 792}}}

	r, err := Painter{}.Paint(context.Background(), doc, 1, 0.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Page != 1 || r.Scale != 0.5 || r.Width != 306 || r.Height != 396 {
		t.Errorf("unexpected render %+v", r)
	}

	r, err = Painter{}.Paint(context.Background(), widthOnly{}, 1, 2)
	if err != nil || r.Width != 200 || r.Height != 0 {
		t.Errorf("unexpected render %+v (%v)", r, err)
	}

	for _, page := range []int{0, 2} {
		if _, err := (Painter{}).Paint(context.Background(), doc, page, 1); !errors.Is(err, domviewer.ErrPageOutOfRange) {
			t.Errorf("page %d: expected ErrPageOutOfRange, got %v", page, err)
		}
	}
}
