package htmlsurface

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/kailas-cloud/evalview/internal/domain/view"
	"github.com/kailas-cloud/evalview/internal/usecase/session"
)

var _ session.Surface = (*Surface)(nil)

// InstallControls inserts the filter bar below the report header. A surface that
// already has one is left alone.
func (s *Surface) InstallControls(docIDs []string) {
	if s.doc.Find("#filter-bar").Length() > 0 {
		return
	}

	var b strings.Builder
	b.WriteString(`<div class="filter-bar" id="filter-bar">`)
	b.WriteString(`<label for="doc-filter">Document:</label>`)
	b.WriteString(`<select id="doc-filter" name="doc_id">`)
	b.WriteString(`<option value="" selected>` + esc(view.AggregateTitle) + `</option>`)
	for _, id := range docIDs {
		b.WriteString(`<option value="` + esc(id) + `">` + esc(id) + `</option>`)
	}
	b.WriteString(`</select>`)
	b.WriteString(`<button type="button" id="filter-reset">Reset</button>`)
	b.WriteString(`<button type="button" id="doc-toggle" disabled>` + esc(session.ShowDocumentLabel) + `</button>`)
	b.WriteString(`<span class="view-title" id="view-title">` + esc(view.AggregateTitle) + `</span>`)
	b.WriteString(`</div>`)

	if header := s.doc.Find("header").First(); header.Length() > 0 {
		header.AfterHtml(b.String())
		return
	}
	s.doc.Find("body").First().PrependHtml(b.String())
}

// SetTitle updates the active view label.
func (s *Surface) SetTitle(title string) {
	s.doc.Find("#view-title").SetText(title)
}

// SetSelection marks the selector option of docID.
func (s *Surface) SetSelection(docID string) {
	options := s.doc.Find("#doc-filter option")
	options.RemoveAttr("selected")
	byAttr(options, "value", docID).First().SetAttr("selected", "")
}

// SetToggle updates the document toggle control.
func (s *Surface) SetToggle(t session.Toggle) {
	btn := s.doc.Find("#doc-toggle")
	btn.SetText(t.Label)
	setDisabled(btn, !t.Enabled)
}

func setDisabled(sel *goquery.Selection, disabled bool) {
	if disabled {
		sel.SetAttr("disabled", "")
		return
	}
	sel.RemoveAttr("disabled")
}
