package bbcode

import (
	"html"
	"strings"
)

// ToBBCode serializes the node tree back to bracket markup.
func ToBBCode(nodes []*Node) string {
	var b strings.Builder
	writeBBCode(&b, nodes)
	return b.String()
}

func writeBBCode(b *strings.Builder, nodes []*Node) {
	for _, n := range nodes {
		switch n.Kind {
		case KindText:
			b.WriteString(n.Text)
		case KindBold:
			wrapBBCode(b, "B", "", n.Children)
		case KindItalic:
			wrapBBCode(b, "I", "", n.Children)
		case KindUnderline:
			wrapBBCode(b, "U", "", n.Children)
		case KindSize:
			wrapBBCode(b, "SIZE", n.Arg, n.Children)
		case KindFont:
			wrapBBCode(b, "FONT", n.Arg, n.Children)
		case KindColor:
			wrapBBCode(b, "COLOR", n.Arg, n.Children)
		case KindURL:
			b.WriteString("[URL='" + n.Arg + "']")
			writeBBCode(b, n.Children)
			b.WriteString("[/URL]")
		case KindImage:
			b.WriteString("[IMG]" + n.Text + "[/IMG]")
		case KindCenter:
			wrapBBCode(b, "CENTER", "", n.Children)
		case KindRight:
			wrapBBCode(b, "RIGHT", "", n.Children)
		case KindIndent:
			wrapBBCode(b, "INDENT", "", n.Children)
		case KindList:
			if n.Ordered {
				b.WriteString("[LIST=1]")
			} else {
				b.WriteString("[LIST]")
			}
			for _, item := range n.Children {
				b.WriteString("\n[*]")
				writeBBCode(b, item.Children)
			}
			b.WriteString("\n[/LIST]")
		case KindItem:
			// only reachable when serializing a detached item
			writeBBCode(b, n.Children)
		}
	}
}

func wrapBBCode(b *strings.Builder, name, arg string, children []*Node) {
	if arg != "" {
		b.WriteString("[" + name + "=" + arg + "]")
	} else {
		b.WriteString("[" + name + "]")
	}
	writeBBCode(b, children)
	b.WriteString("[/" + name + "]")
}

// ToHTML serializes the node tree to the rich-text HTML representation used
// by the visual editor.
func ToHTML(nodes []*Node) string {
	var b strings.Builder
	writeHTML(&b, nodes)
	return b.String()
}

func writeHTML(b *strings.Builder, nodes []*Node) {
	for _, n := range nodes {
		switch n.Kind {
		case KindText:
			b.WriteString(strings.ReplaceAll(html.EscapeString(n.Text), "\n", "<br>"))
		case KindBold:
			wrapHTML(b, "strong", "", n.Children)
		case KindItalic:
			wrapHTML(b, "em", "", n.Children)
		case KindUnderline:
			wrapHTML(b, "u", "", n.Children)
		case KindSize:
			px, ok := sizeToPx[n.Arg]
			if !ok {
				px = "14px"
			}
			wrapHTML(b, "span", "font-size:"+px, n.Children)
		case KindFont:
			wrapHTML(b, "span", "font-family:"+n.Arg, n.Children)
		case KindColor:
			wrapHTML(b, "span", "color:"+n.Arg, n.Children)
		case KindURL:
			b.WriteString(`<a href="` + html.EscapeString(n.Arg) + `">`)
			writeHTML(b, n.Children)
			b.WriteString("</a>")
		case KindImage:
			b.WriteString(`<img src="` + html.EscapeString(n.Text) + `">`)
		case KindCenter:
			wrapHTML(b, "div", "text-align:center", n.Children)
		case KindRight:
			wrapHTML(b, "div", "text-align:right", n.Children)
		case KindIndent:
			wrapHTML(b, "div", "margin-left:20px", n.Children)
		case KindList:
			tagName := "ul"
			if n.Ordered {
				tagName = "ol"
			}
			b.WriteString("<" + tagName + ">")
			for _, item := range n.Children {
				b.WriteString("<li>")
				writeHTML(b, item.Children)
				b.WriteString("</li>")
			}
			b.WriteString("</" + tagName + ">")
		case KindItem:
			writeHTML(b, n.Children)
		}
	}
}

func wrapHTML(b *strings.Builder, tagName, style string, children []*Node) {
	if style != "" {
		b.WriteString(`<` + tagName + ` style="` + style + `">`)
	} else {
		b.WriteString("<" + tagName + ">")
	}
	writeHTML(b, children)
	b.WriteString("</" + tagName + ">")
}

// ToRichText converts bracket markup straight to editor HTML.
func ToRichText(markup string) string {
	return ToHTML(Parse(markup))
}
