package htmlsurface

import (
	"strconv"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	domviewer "github.com/kailas-cloud/evalview/internal/domain/viewer"
)

const twoColumnClass = "two-column"

func (s *Surface) gallery() *goquery.Selection {
	return s.section(gallerySections...)
}

func (s *Surface) captureGallery() map[string]string {
	files := make(map[string]string)
	gallery := s.gallery().Find(".document-gallery").First()

	gallery.Find(".pdf-item").Each(func(_ int, item *goquery.Selection) {
		id, ok := item.Attr("data-doc-id")
		path, hasPath := item.Attr("data-pdf-path")
		if ok && hasPath && id != "" {
			files[id] = path
		}
	})
	gallery.Find(".image-item").Each(func(_ int, item *goquery.Selection) {
		img := item.Find("img").First()
		id := img.AttrOr("alt", "")
		if id == "" {
			id = textOf(item.Find("strong").First())
		}
		path := item.AttrOr("data-path", img.AttrOr("src", ""))
		if id != "" && path != "" {
			files[id] = path
		}
	})
	return files
}

// renderGallery rebuilds the gallery items. Paginated assets get a viewer shell
// that starts in the loading state.
func (s *Surface) renderGallery(files map[string]string) {
	sec := s.gallery()
	if sec.Length() == 0 {
		return
	}
	gallery := ensureChild(sec, ".document-gallery", `<div class="document-gallery"></div>`)
	gallery.Empty()

	items := make([]*html.Node, 0, len(files))
	for _, id := range sortedKeys(files) {
		path := files[id]
		if domviewer.IsPaginated(path) {
			items = append(items, s.pdfItem(id, path))
		} else {
			items = append(items, s.imageItem(id, path))
		}
	}
	gallery.AppendNodes(items...)
}

// SetGalleryVisible shows or hides the gallery together with the two-column layout.
func (s *Surface) SetGalleryVisible(visible bool) {
	sec := s.gallery()
	layout := s.doc.Find("main").First()
	if layout.Length() == 0 {
		layout = s.doc.Find("body").First()
	}
	if visible {
		show(sec)
		layout.AddClass(twoColumnClass)
		return
	}
	hide(sec)
	layout.RemoveClass(twoColumnClass)
}

func (s *Surface) imageItem(id, path string) *html.Node {
	return element(atom.Div, []html.Attribute{attr("class", "image-item"), attr("data-path", path)},
		element(atom.Img, []html.Attribute{attr("src", s.assetURL(path)), attr("alt", id)}),
		caption(id),
	)
}

func (s *Surface) pdfItem(id, path string) *html.Node {
	return element(atom.Div, []html.Attribute{
		attr("class", "pdf-item"),
		attr("data-doc-id", id),
		attr("data-pdf-path", path),
		attr("data-src", s.assetURL(path)),
	},
		element(atom.Div, []html.Attribute{attr("class", "pdf-container")},
			element(atom.Canvas, []html.Attribute{attr("id", "pdf-canvas-"+id), attr("class", "pdf-canvas")}),
			element(atom.Div, []html.Attribute{attr("class", "pdf-loading"), attr("id", "pdf-loading-"+id)},
				text("Loading PDF...")),
			element(atom.Div, []html.Attribute{attr("class", "pdf-error"), attr("id", "pdf-error-"+id), attr("style", "display: none;")},
				text("Error loading PDF")),
		),
		element(atom.Div, []html.Attribute{attr("class", "pdf-controls")},
			pageButton("pdf-prev", id, domviewer.Previous, "Previous"),
			element(atom.Span, []html.Attribute{attr("class", "pdf-page-info"), attr("id", "pdf-page-info-"+id)}),
			pageButton("pdf-next", id, domviewer.Next, "Next"),
		),
		caption(id),
	)
}

func pageButton(class, id string, direction int, label string) *html.Node {
	return element(atom.Button, []html.Attribute{
		attr("type", "button"),
		attr("class", class),
		attr("data-doc-id", id),
		attr("data-direction", strconv.Itoa(direction)),
		attr("disabled", ""),
	}, text(label))
}

func caption(id string) *html.Node {
	return element(atom.P, nil, element(atom.Strong, nil, text(id)))
}
