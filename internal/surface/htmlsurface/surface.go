// Package htmlsurface drives a rendered static HTML report with goquery. It reads the
// aggregate view out of the report markup and applies any view-model back onto it.
//
// Elements are matched by their label text or doc_id, never by position.
package htmlsurface

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/kailas-cloud/evalview/internal/domain/view"
)

// Section headings of the report.
const (
	sectionSummary    = "Executive Summary"
	sectionFields     = "Field Performance Analysis"
	sectionConfusion  = "Confusion Matrix"
	sectionNonMatches = "Non-Matches Analysis"
)

var gallerySections = []string{"Document Gallery", "PDF Gallery"}

const defaultMaxNonMatches = 1000

// Surface is a parsed report. It is not safe for concurrent use.
type Surface struct {
	doc           *goquery.Document
	maxNonMatches int
	assetURL      func(path string) string
	logger        *zap.Logger
}

// Parse reads a report from r.
func Parse(r io.Reader, logger *zap.Logger) (*Surface, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse report: %w", err)
	}
	return &Surface{
		doc:           doc,
		maxNonMatches: defaultMaxNonMatches,
		assetURL:      func(path string) string { return path },
		logger:        logger,
	}, nil
}

// Load reads a report file.
func Load(path string, logger *zap.Logger) (*Surface, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open report: %w", err)
	}
	defer f.Close()
	return Parse(f, logger)
}

// WithMaxNonMatches caps the non-match rows rendered at once.
func (s *Surface) WithMaxNonMatches(n int) *Surface {
	if n >= 0 {
		s.maxNonMatches = n
	}
	return s
}

// WithAssetURL sets how gallery asset paths become browser URLs.
func (s *Surface) WithAssetURL(fn func(path string) string) *Surface {
	if fn != nil {
		s.assetURL = fn
	}
	return s
}

// HTML serializes the current report.
func (s *Surface) HTML() (string, error) {
	out, err := s.doc.Html()
	if err != nil {
		return "", fmt.Errorf("serialize report: %w", err)
	}
	return out, nil
}

// Apply renders every section from vm.
func (s *Surface) Apply(vm view.ViewModel) {
	s.renderSummary(vm.ExecutiveSummary)
	s.renderFields(vm.FieldAnalysis)
	s.renderConfusion(vm.ConfusionMatrix)
	s.renderNonMatches(vm.NonMatches, vm.NonMatchTotal)
	s.renderGallery(vm.DocumentFiles)
}

// Capture reads the displayed report into a view-model. Absent sections yield
// empty sub-objects and unreadable values are skipped.
func (s *Surface) Capture() view.ViewModel {
	vm := view.New()
	vm.ExecutiveSummary = s.captureSummary()
	vm.FieldAnalysis = s.captureFields()
	vm.ConfusionMatrix = s.captureConfusion()
	vm.NonMatches, vm.NonMatchTotal = s.captureNonMatches()
	vm.DocumentFiles = s.captureGallery()
	return vm
}

// section finds the report section headed by one of titles.
func (s *Surface) section(titles ...string) *goquery.Selection {
	return s.doc.Find(".section").FilterFunction(func(_ int, sec *goquery.Selection) bool {
		h := textOf(sec.ChildrenFiltered("h2").First())
		for _, t := range titles {
			if h == t {
				return true
			}
		}
		return false
	}).First()
}

// byKey indexes items by the text of their labelSel descendant. The first item wins.
func byKey(items *goquery.Selection, labelSel string) map[string]*goquery.Selection {
	out := make(map[string]*goquery.Selection, items.Length())
	items.Each(func(_ int, item *goquery.Selection) {
		key := textOf(item.Find(labelSel).First())
		if key == "" {
			return
		}
		if _, dup := out[key]; !dup {
			out[key] = item
		}
	})
	return out
}

func sameNode(a, b *goquery.Selection) bool {
	if a == nil || b == nil || a.Length() == 0 || b.Length() == 0 {
		return false
	}
	return a.Get(0) == b.Get(0)
}

// byAttr finds the elements of sel whose attribute equals value.
func byAttr(sel *goquery.Selection, attr, value string) *goquery.Selection {
	return sel.FilterFunction(func(_ int, el *goquery.Selection) bool {
		v, ok := el.Attr(attr)
		return ok && v == value
	})
}

// ensureChild returns the first selector match within parent, appending markup
// when there is none.
func ensureChild(parent *goquery.Selection, selector, markup string) *goquery.Selection {
	if found := parent.Find(selector).First(); found.Length() > 0 {
		return found
	}
	parent.AppendHtml(markup)
	return parent.Find(selector).First()
}

// placeholder shows the section's "No ... available" paragraph only when empty.
func placeholder(sec *goquery.Selection, empty bool) {
	sec.ChildrenFiltered("p").Each(func(_ int, p *goquery.Selection) {
		if !strings.HasPrefix(textOf(p), "No ") {
			return
		}
		if empty {
			show(p)
		} else {
			hide(p)
		}
	})
}

func textOf(sel *goquery.Selection) string {
	return strings.TrimSpace(sel.Text())
}

func esc(s string) string {
	return html.EscapeString(s)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
