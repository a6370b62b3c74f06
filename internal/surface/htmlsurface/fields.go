package htmlsurface

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/kailas-cloud/evalview/internal/domain/view"
)

const (
	fieldChartMarkup = `<div class="field-chart"><h4>F1 Score</h4></div>`
	fieldTableMarkup = `<table class="data-table data-table-numeric" id="performance-table">` +
		`<thead><tr><th>Field</th><th>Precision</th><th>Recall</th><th>F1 Score</th>` +
		`<th>TP</th><th>FD</th><th>FA</th><th>FN</th></tr></thead><tbody></tbody></table>`
	fieldColumns = 8
)

func (s *Surface) captureFields() view.FieldAnalysis {
	var fa view.FieldAnalysis
	sec := s.section(sectionFields)
	if sec.Length() == 0 {
		return fa
	}

	sec.Find(".field-chart .field-bar").Each(func(_ int, bar *goquery.Selection) {
		name := textOf(bar.Find(".field-label").First())
		value, err := strconv.ParseFloat(textOf(bar.Find(".bar-value").First()), 64)
		if name == "" || err != nil {
			return
		}
		width, ok := parsePercent(styleValue(bar.Find(".bar-fill"), "width"))
		if !ok {
			width = float64(view.ScorePercent(value))
		}
		fa.Chart = append(fa.Chart, view.ChartBar{
			Field: name,
			Value: value,
			Width: int(width),
			Color: view.TierFor(value),
		})
	})

	sec.Find("table#performance-table tbody tr").Each(func(_ int, tr *goquery.Selection) {
		tds := tr.Find("td")
		if tds.Length() < fieldColumns {
			return
		}
		name := textOf(tds.Eq(0))
		if name == "" {
			return
		}
		fa.Table = append(fa.Table, view.FieldRow{
			Field:     name,
			Precision: cellFloat(tds.Eq(1)),
			Recall:    cellFloat(tds.Eq(2)),
			F1:        cellFloat(tds.Eq(3)),
			TP:        cellInt(tds.Eq(4)),
			FD:        cellInt(tds.Eq(5)),
			FA:        cellInt(tds.Eq(6)),
			FN:        cellInt(tds.Eq(7)),
		})
	})
	return fa
}

func (s *Surface) renderFields(fa view.FieldAnalysis) {
	sec := s.section(sectionFields)
	if sec.Length() == 0 {
		return
	}
	placeholder(sec, len(fa.Chart) == 0 && len(fa.Table) == 0)
	renderChart(sec, fa.Chart)
	renderFieldTable(sec, fa.Table)
}

func renderChart(sec *goquery.Selection, bars []view.ChartBar) {
	chart := sec.Find(".field-chart").First()
	if chart.Length() == 0 {
		if len(bars) == 0 {
			return
		}
		chart = ensureChild(sec, ".field-chart", fieldChartMarkup)
	}

	items := chart.Find(".field-bar")
	existing := byKey(items, ".field-label")
	wanted := make(map[string]bool, len(bars))
	for _, b := range bars {
		wanted[b.Field] = true
	}
	items.Each(func(_ int, bar *goquery.Selection) {
		name := textOf(bar.Find(".field-label").First())
		if !wanted[name] || !sameNode(existing[name], bar) {
			hide(bar)
		}
	})

	for _, b := range bars {
		bar, ok := existing[b.Field]
		if !ok {
			chart.AppendHtml(chartBar(b))
			continue
		}
		show(bar)
		fill := bar.Find(".bar-fill")
		setStyle(fill, "width", fmt.Sprintf("%d%%", b.Width))
		setStyle(fill, "background-color", b.Color.Color())
		setTier(fill, b.Color)
		bar.Find(".bar-value").SetText(formatRatio(b.Value))
	}
}

func renderFieldTable(sec *goquery.Selection, rows []view.FieldRow) {
	table := sec.Find("table#performance-table").First()
	if table.Length() == 0 {
		if len(rows) == 0 {
			return
		}
		table = ensureChild(sec, "table#performance-table", fieldTableMarkup)
	}
	tbody := ensureChild(table, "tbody", "<tbody></tbody>")

	trs := tbody.Find("tr")
	existing := make(map[string]*goquery.Selection, trs.Length())
	trs.Each(func(_ int, tr *goquery.Selection) {
		name := textOf(tr.Find("td").First())
		if _, dup := existing[name]; name != "" && !dup {
			existing[name] = tr
		}
	})
	wanted := make(map[string]bool, len(rows))
	for _, r := range rows {
		wanted[r.Field] = true
	}
	trs.Each(func(_ int, tr *goquery.Selection) {
		name := textOf(tr.Find("td").First())
		if !wanted[name] || !sameNode(existing[name], tr) {
			hide(tr)
		}
	})

	for _, r := range rows {
		tr, ok := existing[r.Field]
		if !ok || tr.Find("td").Length() < fieldColumns {
			if ok {
				tr.Remove()
			}
			tbody.AppendHtml(fieldRow(r))
			continue
		}
		show(tr)
		tds := tr.Find("td")
		tds.Eq(1).SetText(formatRatio(r.Precision))
		tds.Eq(2).SetText(formatRatio(r.Recall))
		tds.Eq(3).SetText(formatRatio(r.F1))
		setStyle(tds.Eq(3), "background-color", view.TierFor(r.F1).Color())
		setTier(tds.Eq(3), view.TierFor(r.F1))
		tds.Eq(4).SetText(strconv.Itoa(r.TP))
		tds.Eq(5).SetText(strconv.Itoa(r.FD))
		tds.Eq(6).SetText(strconv.Itoa(r.FA))
		tds.Eq(7).SetText(strconv.Itoa(r.FN))
	}
}

func chartBar(b view.ChartBar) string {
	return fmt.Sprintf(`<div class="field-bar"><div class="field-label">%s</div>`+
		`<div class="bar-container"><div class="bar-fill %s" style="width: %d%%; background-color: %s;"></div>`+
		`<span class="bar-value">%s</span></div></div>`,
		esc(b.Field), b.Color.Class(), b.Width, b.Color.Color(), formatRatio(b.Value))
}

func fieldRow(r view.FieldRow) string {
	return fmt.Sprintf(`<tr><td>%s</td><td>%s</td><td>%s</td>`+
		`<td class="%s" style="background-color: %s; color: white; font-weight: bold;">%s</td>`+
		`<td>%d</td><td>%d</td><td>%d</td><td>%d</td></tr>`,
		esc(r.Field), formatRatio(r.Precision), formatRatio(r.Recall),
		view.TierFor(r.F1).Class(), view.TierFor(r.F1).Color(), formatRatio(r.F1),
		r.TP, r.FD, r.FA, r.FN)
}

func formatRatio(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

func cellFloat(td *goquery.Selection) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(td.Text()), 64)
	if err != nil {
		return 0
	}
	return v
}

func cellInt(td *goquery.Selection) int {
	v, err := strconv.Atoi(strings.TrimSpace(td.Text()))
	if err != nil {
		return 0
	}
	return v
}
