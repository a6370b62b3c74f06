package htmlsurface

import (
	"fmt"
	"strconv"

	"github.com/PuerkitoBio/goquery"

	"github.com/kailas-cloud/evalview/internal/domain/view"
)

const (
	correctColor = "#28a745"
	errorColor   = "#dc3545"
)

func (s *Surface) captureConfusion() map[string]view.CMCell {
	cells := make(map[string]view.CMCell)
	sec := s.section(sectionConfusion)
	if sec.Length() == 0 {
		return cells
	}

	sec.Find(".cm-grid .cm-cell").Each(func(_ int, cell *goquery.Selection) {
		label := textOf(cell.Find(".cm-label").First())
		value, err := strconv.Atoi(textOf(cell.Find(".cm-value").First()))
		if label == "" || err != nil {
			return
		}
		pct, _ := parsePercent(textOf(cell.Find(".cm-percentage").First()))
		cells[label] = view.CMCell{Value: value, Percentage: pct}
	})
	return cells
}

func (s *Surface) renderConfusion(cells map[string]view.CMCell) {
	sec := s.section(sectionConfusion)
	if sec.Length() == 0 {
		return
	}
	placeholder(sec, len(cells) == 0)

	grid := sec.Find(".cm-grid").First()
	if grid.Length() == 0 {
		if len(cells) == 0 {
			return
		}
		grid = ensureChild(sec, ".cm-grid", `<div class="cm-grid"></div>`)
	}

	items := grid.Find(".cm-cell")
	existing := byKey(items, ".cm-label")
	items.Each(func(_ int, cell *goquery.Selection) {
		label := textOf(cell.Find(".cm-label").First())
		if _, ok := cells[label]; !ok || !sameNode(existing[label], cell) {
			hide(cell)
		}
	})

	for _, label := range cellOrder(cells) {
		c := cells[label]
		cell, ok := existing[label]
		if !ok {
			grid.AppendHtml(cmCell(label, c))
			continue
		}
		show(cell)
		cell.Find(".cm-value").SetText(strconv.Itoa(c.Value))
		cell.Find(".cm-percentage").SetText(formatShare(c.Percentage))
	}
}

// cellOrder lists the standard labels first, then any others alphabetically.
func cellOrder(cells map[string]view.CMCell) []string {
	order := make([]string, 0, len(cells))
	known := make(map[string]bool, len(view.CMLabels))
	for _, l := range view.CMLabels {
		known[l] = true
		if _, ok := cells[l]; ok {
			order = append(order, l)
		}
	}
	for _, l := range sortedKeys(cells) {
		if !known[l] {
			order = append(order, l)
		}
	}
	return order
}

func cmCell(label string, c view.CMCell) string {
	color := errorColor
	if label == "TP" || label == "TN" {
		color = correctColor
	}
	return fmt.Sprintf(`<div class="cm-cell" style="border-left-color: %s;">`+
		`<div class="cm-label">%s</div><div class="cm-value">%d</div><div class="cm-percentage">%s</div></div>`,
		color, esc(label), c.Value, formatShare(c.Percentage))
}

func formatShare(pct float64) string {
	return strconv.FormatFloat(pct, 'f', 1, 64) + "%"
}
