package htmlsurface

import (
	"testing"

	domviewer "github.com/kailas-cloud/evalview/internal/domain/viewer"
	"github.com/kailas-cloud/evalview/internal/usecase/session"
	"github.com/kailas-cloud/evalview/internal/usecase/viewer"
)

func TestInstallControls_Once(t *testing.T) {
	s := loadReport(t, "report.html")
	s.InstallControls([]string{"inv-1", "inv-2"})
	s.InstallControls([]string{"other"})

	if n := s.doc.Find("#filter-bar").Length(); n != 1 {
		t.Fatalf("expected one filter bar, got %d", n)
	}
	if !s.doc.Find("header").Next().Is("#filter-bar") {
		t.Error("filter bar must follow the header")
	}

	options := s.doc.Find("#doc-filter option")
	if options.Length() != 3 {
		t.Fatalf("expected 3 options, got %d", options.Length())
	}
	if v, _ := options.Eq(1).Attr("value"); v != "inv-1" {
		t.Errorf("options must follow record order, got %q first", v)
	}
	if _, ok := s.doc.Find("#doc-toggle").Attr("disabled"); !ok {
		t.Error("toggle starts disabled")
	}
}

func TestControls_SelectionTitleToggle(t *testing.T) {
	s := loadReport(t, "report.html")
	s.InstallControls([]string{"inv-1", "inv-2"})

	s.SetSelection("inv-2")
	selected := s.doc.Find("#doc-filter option[selected]")
	if selected.Length() != 1 || selected.AttrOr("value", "") != "inv-2" {
		t.Errorf("expected only inv-2 selected, got %d options", selected.Length())
	}

	s.SetTitle("Document: inv-2")
	if got := textOf(s.doc.Find("#view-title")); got != "Document: inv-2" {
		t.Errorf("unexpected title %q", got)
	}

	s.SetToggle(session.Toggle{Enabled: true, Label: session.HideDocumentLabel})
	btn := s.doc.Find("#doc-toggle")
	if _, ok := btn.Attr("disabled"); ok || textOf(btn) != session.HideDocumentLabel {
		t.Errorf("unexpected toggle %q", textOf(btn))
	}
}

func TestSetGalleryVisible(t *testing.T) {
	s := loadReport(t, "report.html")

	s.SetGalleryVisible(false)
	if !hidden(s.gallery()) || s.doc.Find("main").HasClass(twoColumnClass) {
		t.Error("expected hidden gallery and single column")
	}
	s.SetGalleryVisible(true)
	if hidden(s.gallery()) || !s.doc.Find("main").HasClass(twoColumnClass) {
		t.Error("expected visible gallery and two columns")
	}
}

func TestDisplay_ViewerLifecycle(t *testing.T) {
	s := loadReport(t, "report.html")
	s.renderGallery(map[string]string{"inv 1/a": "docs/a.pdf"})
	item := s.pdfItemOf("inv 1/a")
	if item.Length() != 1 {
		t.Fatal("expected pdf item for a doc_id with spaces and slashes")
	}

	s.ShowLoading("inv 1/a")
	if hidden(item.Find(".pdf-loading")) || !hidden(item.Find(".pdf-error")) {
		t.Error("expected loading indicator only")
	}

	st := domviewer.State{DocID: "inv 1/a", Phase: domviewer.PhaseReady, CurrentPage: 2, TotalPages: 3}
	s.ShowPage(st, viewer.Render{Page: 2, Scale: 1.5, Width: 918, Height: 1188.4})

	canvas := item.Find("canvas.pdf-canvas")
	if canvas.AttrOr("width", "") != "918" || canvas.AttrOr("height", "") != "1188" {
		t.Errorf("unexpected canvas size %sx%s", canvas.AttrOr("width", ""), canvas.AttrOr("height", ""))
	}
	if canvas.AttrOr("data-page", "") != "2" || canvas.AttrOr("data-scale", "") != "1.5" {
		t.Error("canvas must carry page and scale")
	}
	if !hidden(item.Find(".pdf-loading")) {
		t.Error("loading indicator must be hidden after render")
	}
	if got := textOf(item.Find(".pdf-page-info")); got != "Page 2 of 3" {
		t.Errorf("unexpected page label %q", got)
	}
	if _, ok := item.Find(".pdf-prev").Attr("disabled"); ok {
		t.Error("previous must be enabled on page 2")
	}
	if _, ok := item.Find(".pdf-next").Attr("disabled"); ok {
		t.Error("next must be enabled on page 2 of 3")
	}

	s.ShowError("inv 1/a")
	if hidden(item.Find(".pdf-error")) || !hidden(canvas) {
		t.Error("expected error indicator in place of the canvas")
	}
	if _, ok := item.Find(".pdf-next").Attr("disabled"); !ok {
		t.Error("navigation must be disabled after an error")
	}
}

func TestDisplay_UnknownDocIsIgnored(t *testing.T) {
	s := loadReport(t, "report.html")
	s.ShowLoading("missing")
	s.ShowError("missing")
	s.ShowNavigation(domviewer.State{DocID: "missing"})
}
