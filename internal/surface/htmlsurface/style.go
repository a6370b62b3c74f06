package htmlsurface

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/kailas-cloud/evalview/internal/domain/view"
)

type declaration struct {
	prop  string
	value string
}

func parseStyle(style string) []declaration {
	var decls []declaration
	for _, part := range strings.Split(style, ";") {
		prop, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		prop = strings.ToLower(strings.TrimSpace(prop))
		if prop == "" {
			continue
		}
		decls = append(decls, declaration{prop: prop, value: strings.TrimSpace(value)})
	}
	return decls
}

func formatStyle(decls []declaration) string {
	if len(decls) == 0 {
		return ""
	}
	parts := make([]string, len(decls))
	for i, d := range decls {
		parts[i] = d.prop + ": " + d.value
	}
	return strings.Join(parts, "; ") + ";"
}

// styleValue returns one inline style property of the first element.
func styleValue(sel *goquery.Selection, prop string) string {
	for _, d := range parseStyle(sel.First().AttrOr("style", "")) {
		if d.prop == prop {
			return d.value
		}
	}
	return ""
}

// setStyle sets an inline style property on every element, keeping the others.
func setStyle(sel *goquery.Selection, prop, value string) {
	sel.Each(func(_ int, el *goquery.Selection) {
		decls := parseStyle(el.AttrOr("style", ""))
		found := false
		for i := range decls {
			if decls[i].prop == prop {
				decls[i].value = value
				found = true
			}
		}
		if !found {
			decls = append(decls, declaration{prop: prop, value: value})
		}
		el.SetAttr("style", formatStyle(decls))
	})
}

// setTier replaces any tier class on sel with the class of t.
func setTier(sel *goquery.Selection, t view.Tier) {
	for _, other := range []view.Tier{view.TierGood, view.TierWarning, view.TierBad} {
		sel.RemoveClass(other.Class())
	}
	sel.AddClass(t.Class())
}

func removeStyle(sel *goquery.Selection, prop string) {
	sel.Each(func(_ int, el *goquery.Selection) {
		style, ok := el.Attr("style")
		if !ok {
			return
		}
		decls := parseStyle(style)
		kept := decls[:0]
		for _, d := range decls {
			if d.prop != prop {
				kept = append(kept, d)
			}
		}
		if len(kept) == 0 {
			el.RemoveAttr("style")
			return
		}
		el.SetAttr("style", formatStyle(kept))
	})
}

func hide(sel *goquery.Selection) { setStyle(sel, "display", "none") }
func show(sel *goquery.Selection) { removeStyle(sel, "display") }

func hidden(sel *goquery.Selection) bool {
	return styleValue(sel, "display") == "none"
}
