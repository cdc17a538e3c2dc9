package bbcode

import (
	"strings"

	"golang.org/x/net/html"
)

// FromHTML parses editor HTML into the node tree. Elements without a markup
// equivalent are unwrapped so their textual content survives.
func FromHTML(input string) ([]*Node, error) {
	doc, err := html.Parse(strings.NewReader(input))
	if err != nil {
		return nil, err
	}
	body := findBody(doc)
	if body == nil {
		return nil, nil
	}
	return convertChildren(body), nil
}

// FromRichText converts editor HTML straight to bracket markup.
func FromRichText(input string) (string, error) {
	nodes, err := FromHTML(input)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(ToBBCode(nodes)), nil
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if body := findBody(c); body != nil {
			return body
		}
	}
	return nil
}

func convertChildren(n *html.Node) []*Node {
	var out []*Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, convert(c)...)
	}
	return out
}

func convert(n *html.Node) []*Node {
	switch n.Type {
	case html.TextNode:
		if n.Data == "" {
			return nil
		}
		return []*Node{text(n.Data)}
	case html.ElementNode:
		return convertElement(n)
	default:
		return nil
	}
}

func convertElement(n *html.Node) []*Node {
	children := convertChildren(n)

	switch n.Data {
	case "strong", "b":
		return wrapNodes(KindBold, "", children)
	case "em", "i":
		return wrapNodes(KindItalic, "", children)
	case "u", "ins":
		return wrapNodes(KindUnderline, "", children)
	case "a":
		return wrapNodes(KindURL, attr(n, "href"), children)
	case "img":
		return []*Node{{Kind: KindImage, Text: attr(n, "src")}}
	case "br":
		return []*Node{text("\n")}
	case "p":
		return append(children, text("\n"))
	case "center":
		return wrapNodes(KindCenter, "", children)
	case "ul", "ol":
		return []*Node{{Kind: KindList, Ordered: n.Data == "ol", Children: listItems(n)}}
	case "li":
		// handled by the parent list; reached only for orphan items
		return children
	case "font":
		return convertFont(n, children)
	case "span", "div":
		return convertStyled(n, children)
	default:
		// no markup equivalent, unwrap
		return children
	}
}

// convertFont maps the legacy <font size/face/color> element, nesting one
// wrapper per present attribute.
func convertFont(n *html.Node, children []*Node) []*Node {
	out := children
	if color := attr(n, "color"); color != "" {
		out = wrapNodes(KindColor, color, out)
	}
	if face := attr(n, "face"); face != "" {
		out = wrapNodes(KindFont, face, out)
	}
	if size := attr(n, "size"); size != "" {
		out = wrapNodes(KindSize, size, out)
	}
	return out
}

// convertStyled maps span/div inline styles (font-size, font-family, color,
// text-align, margin-left) onto markup wrappers.
func convertStyled(n *html.Node, children []*Node) []*Node {
	style := parseStyle(attr(n, "style"))
	out := children

	if color, ok := style["color"]; ok {
		out = wrapNodes(KindColor, color, out)
	}
	if family, ok := style["font-family"]; ok {
		out = wrapNodes(KindFont, strings.Trim(family, "'\""), out)
	}
	if px, ok := style["font-size"]; ok {
		out = wrapNodes(KindSize, pxToSize(px), out)
	}

	align := style["text-align"]
	if align == "" {
		align = strings.ToLower(attr(n, "align"))
	}
	switch align {
	case "center":
		out = wrapNodes(KindCenter, "", out)
	case "right":
		out = wrapNodes(KindRight, "", out)
	}
	if margin, ok := style["margin-left"]; ok && margin != "0" && margin != "0px" {
		out = wrapNodes(KindIndent, "", out)
	}
	return out
}

func listItems(n *html.Node) []*Node {
	var items []*Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "li" {
			items = append(items, &Node{Kind: KindItem, Children: trimItem(convertChildren(c))})
		}
	}
	return items
}

// trimItem strips the leading/trailing whitespace browsers leave around list
// item content.
func trimItem(nodes []*Node) []*Node {
	if len(nodes) > 0 && nodes[0].Kind == KindText {
		nodes[0].Text = strings.TrimLeft(nodes[0].Text, " \t\n")
	}
	if len(nodes) > 0 {
		if last := nodes[len(nodes)-1]; last.Kind == KindText {
			last.Text = strings.TrimRight(last.Text, " \t\n")
		}
	}
	out := nodes[:0]
	for _, n := range nodes {
		if n.Kind == KindText && n.Text == "" {
			continue
		}
		out = append(out, n)
	}
	return out
}

func wrapNodes(kind Kind, arg string, children []*Node) []*Node {
	return []*Node{{Kind: kind, Arg: arg, Children: children}}
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

func parseStyle(style string) map[string]string {
	out := map[string]string{}
	for _, decl := range strings.Split(style, ";") {
		key, val, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		out[strings.ToLower(strings.TrimSpace(key))] = strings.TrimSpace(val)
	}
	return out
}
