package htmlsurface

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/kailas-cloud/evalview/internal/domain/view"
)

const (
	nonMatchColumns = 5
	maxValueRunes   = 100
)

// captureNonMatches returns the listed rows and the "Found N" total, which exceeds
// the row count when the table was capped.
func (s *Surface) captureNonMatches() ([]view.NonMatch, int) {
	sec := s.section(sectionNonMatches)
	if sec.Length() == 0 {
		return nil, 0
	}

	var out []view.NonMatch
	sec.Find("table#non-matches-table tbody tr").Each(func(_ int, tr *goquery.Selection) {
		tds := tr.Find("td")
		if tds.Length() < nonMatchColumns {
			return
		}
		out = append(out, view.NonMatch{
			DocID:       textOf(tds.Eq(0)),
			FieldPath:   textOf(tds.Eq(1)),
			Type:        textOf(tds.Eq(2)),
			GroundTruth: textOf(tds.Eq(3)),
			Prediction:  textOf(tds.Eq(4)),
		})
	})
	return out, max(foundTotal(sec), len(out))
}

// foundTotal reads N from the "Found N non-matches." line, 0 when absent.
func foundTotal(sec *goquery.Selection) int {
	total := 0
	sec.ChildrenFiltered("p").EachWithBreak(func(_ int, p *goquery.Selection) bool {
		rest, ok := strings.CutPrefix(textOf(p), "Found ")
		if !ok {
			return true
		}
		num, _, _ := strings.Cut(rest, " ")
		if n, err := strconv.Atoi(strings.ReplaceAll(num, ",", "")); err == nil {
			total = n
		}
		return false
	})
	return total
}

// renderNonMatches rebuilds the section body: summary line, capped table and note.
// total is the full non-match count; it never drops below len(nms).
func (s *Surface) renderNonMatches(nms []view.NonMatch, total int) {
	sec := s.section(sectionNonMatches)
	if sec.Length() == 0 {
		return
	}
	sec.Children().Not("h2").Remove()

	total = max(total, len(nms))
	if total == 0 {
		sec.AppendHtml("<p>No non-matches found.</p>")
		return
	}

	p := message.NewPrinter(language.English)
	var b strings.Builder
	b.WriteString(p.Sprintf("<p>Found %d non-matches.</p>", total))
	b.WriteString(`<table class="data-table" id="non-matches-table"><thead><tr>` +
		`<th>Document</th><th>Field</th><th>Type</th><th>Ground Truth</th><th>Prediction</th>` +
		`</tr></thead><tbody>`)

	shown := nms
	if len(shown) > s.maxNonMatches {
		shown = shown[:s.maxNonMatches]
	}
	for _, nm := range shown {
		b.WriteString("<tr>")
		for _, v := range []string{nm.DocID, nm.FieldPath, nm.Type, truncate(nm.GroundTruth), truncate(nm.Prediction)} {
			b.WriteString("<td>" + esc(v) + "</td>")
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</tbody></table>")

	if total > len(shown) {
		b.WriteString(p.Sprintf("<p><em>Showing %d of %d non-matches.</em></p>", len(shown), total))
	}
	sec.AppendHtml(b.String())
}

func truncate(v string) string {
	r := []rune(v)
	if len(r) <= maxValueRunes {
		return v
	}
	return string(r[:maxValueRunes])
}
