package htmlsurface

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// element builds an element node. Attribute values and text stay raw on the node;
// escaping happens once, when the document is rendered.
func element(a atom.Atom, attrs []html.Attribute, children ...*html.Node) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
	for _, c := range children {
		n.AppendChild(c)
	}
	return n
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}
