package htmlsurface

import (
	"fmt"
	"math"
	"strconv"

	"github.com/PuerkitoBio/goquery"

	domviewer "github.com/kailas-cloud/evalview/internal/domain/viewer"
	"github.com/kailas-cloud/evalview/internal/usecase/viewer"
)

func (s *Surface) pdfItemOf(docID string) *goquery.Selection {
	return byAttr(s.gallery().Find(".pdf-item"), "data-doc-id", docID).First()
}

// ShowLoading puts the viewer of docID in its loading state.
func (s *Surface) ShowLoading(docID string) {
	item := s.pdfItemOf(docID)
	show(item.Find(".pdf-loading"))
	hide(item.Find(".pdf-error"))
	setDisabled(item.Find(".pdf-prev, .pdf-next"), true)
}

// ShowNavigation updates the page label and the navigation buttons.
func (s *Surface) ShowNavigation(st domviewer.State) {
	item := s.pdfItemOf(st.DocID)
	item.Find(".pdf-page-info").SetText(fmt.Sprintf("Page %d of %d", st.CurrentPage, st.TotalPages))
	setDisabled(item.Find(".pdf-prev"), !domviewer.CanPrevious(st))
	setDisabled(item.Find(".pdf-next"), !domviewer.CanNext(st))
}

// ShowPage sizes the canvas for a rendered page. Pixels are painted client side.
func (s *Surface) ShowPage(st domviewer.State, r viewer.Render) {
	item := s.pdfItemOf(st.DocID)
	hide(item.Find(".pdf-loading"))
	hide(item.Find(".pdf-error"))

	canvas := item.Find("canvas.pdf-canvas")
	show(canvas)
	canvas.SetAttr("width", strconv.Itoa(int(math.Round(r.Width))))
	canvas.SetAttr("height", strconv.Itoa(int(math.Round(r.Height))))
	canvas.SetAttr("data-page", strconv.Itoa(r.Page))
	canvas.SetAttr("data-scale", strconv.FormatFloat(r.Scale, 'f', -1, 64))
	s.ShowNavigation(st)
}

// ShowError replaces the viewer of docID with its inline error indicator.
func (s *Surface) ShowError(docID string) {
	item := s.pdfItemOf(docID)
	hide(item.Find(".pdf-loading"))
	hide(item.Find("canvas.pdf-canvas"))
	show(item.Find(".pdf-error"))
	setDisabled(item.Find(".pdf-prev, .pdf-next"), true)
}
