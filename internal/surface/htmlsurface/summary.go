package htmlsurface

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/kailas-cloud/evalview/internal/domain/view"
)

// labelOrder is the card order used when cards have to be added.
var labelOrder = []string{
	view.LabelDocuments,
	view.LabelPrecision,
	view.LabelRecall,
	view.LabelF1,
	view.LabelAccuracy,
}

func (s *Surface) captureSummary() view.ExecutiveSummary {
	es := view.ExecutiveSummary{Metrics: map[string]view.MetricValue{}}
	sec := s.section(sectionSummary)
	if sec.Length() == 0 {
		return es
	}

	if g := sec.Find(".performance-section .gauge-value").First(); g.Length() > 0 {
		if pct, ok := parsePercent(textOf(g)); ok {
			v := pct / 100
			es.GaugeValue = &v
		} else {
			s.logger.Debug("Skipping unreadable gauge", zap.String("text", textOf(g)))
		}
	}

	sec.Find(".summary-grid .metric-card").Each(func(_ int, card *goquery.Selection) {
		label := textOf(card.Find(".metric-label").First())
		value := card.Find(".metric-value").First()
		if label == "" || value.Length() == 0 {
			return
		}
		es.Metrics[label] = view.ParseMetric(value.Text())
	})
	return es
}

func (s *Surface) renderSummary(es view.ExecutiveSummary) {
	sec := s.section(sectionSummary)
	if sec.Length() == 0 {
		return
	}
	renderGauge(sec, es.GaugeValue)

	grid := ensureChild(sec, ".summary-grid", `<div class="summary-grid"></div>`)
	cards := byKey(grid.Find(".metric-card"), ".metric-label")
	grid.Find(".metric-card").Each(func(_ int, card *goquery.Selection) {
		label := textOf(card.Find(".metric-label").First())
		if _, ok := es.Metrics[label]; !ok || !sameNode(cards[label], card) {
			hide(card)
		}
	})

	for _, label := range orderedLabels(es.Metrics) {
		mv := es.Metrics[label]
		card, ok := cards[label]
		if !ok {
			grid.AppendHtml(metricCard(label, mv))
			continue
		}
		show(card)
		setMetricValue(card.Find(".metric-value").First(), mv)
	}
}

func renderGauge(sec *goquery.Selection, gauge *float64) {
	perf := sec.Find(".performance-section").First()
	if gauge == nil {
		hide(perf)
		return
	}
	if perf.Length() == 0 {
		sec.ChildrenFiltered("h2").First().AfterHtml(
			`<div class="performance-section">` + gaugeMarkup(*gauge) + `</div>`)
		return
	}
	show(perf)

	pct := view.ScorePercent(*gauge)
	tier := view.TierFor(*gauge)
	circle := perf.Find(".gauge-circle")
	setStyle(circle, "background", gaugeGradient(tier.Color(), pct))
	setTier(circle, tier)
	perf.Find(".gauge-value").SetText(fmt.Sprintf("%d%%", pct))
}

func gaugeGradient(color string, pct int) string {
	return fmt.Sprintf("conic-gradient(%s %d%%, #e9ecef %d%%)", color, pct, pct)
}

func gaugeMarkup(v float64) string {
	pct := view.ScorePercent(v)
	tier := view.TierFor(v)
	return fmt.Sprintf(`<div class="performance-gauge">`+
		`<div class="gauge-circle %s" style="background: %s;">`+
		`<div class="gauge-inner"><span class="gauge-value">%d%%</span><span class="gauge-label">Overall</span></div>`+
		`</div></div>`, tier.Class(), gaugeGradient(tier.Color(), pct), pct)
}

func metricCard(label string, mv view.MetricValue) string {
	style := ""
	if mv.Kind == view.KindNumber {
		style = fmt.Sprintf(` style="color: %s;"`, view.TierFor(mv.Number).Color())
	}
	return fmt.Sprintf(`<div class="metric-card"><div class="metric-value"%s>%s</div><div class="metric-label">%s</div></div>`,
		style, esc(mv.Display()), esc(label))
}

func setMetricValue(el *goquery.Selection, mv view.MetricValue) {
	el.SetText(mv.Display())
	if mv.Kind == view.KindNumber {
		setStyle(el, "color", view.TierFor(mv.Number).Color())
		return
	}
	removeStyle(el, "color")
}

// orderedLabels lists the known card labels first, then the rest alphabetically.
func orderedLabels(metrics map[string]view.MetricValue) []string {
	rank := make(map[string]int, len(labelOrder))
	for i, l := range labelOrder {
		rank[l] = i
	}
	labels := sortedKeys(metrics)
	sort.SliceStable(labels, func(i, j int) bool {
		ri, iok := rank[labels[i]]
		rj, jok := rank[labels[j]]
		switch {
		case iok && jok:
			return ri < rj
		case iok != jok:
			return iok
		default:
			return false
		}
	})
	return labels
}

func parsePercent(s string) (float64, bool) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
