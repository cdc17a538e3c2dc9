package bbcode

import "strings"

// Container tags and whether they expect an argument.
var knownTags = map[string]bool{
	"b": false, "i": false, "u": false,
	"size": true, "font": true, "color": true, "url": true,
	"img": false, "center": false, "right": false,
	"list": false, "indent": false, "*": false,
}

var tagKinds = map[string]Kind{
	"b": KindBold, "i": KindItalic, "u": KindUnderline,
	"size": KindSize, "font": KindFont, "color": KindColor,
	"url": KindURL, "center": KindCenter, "right": KindRight,
	"indent": KindIndent,
}

type tag struct {
	name    string // lowercase
	arg     string
	closing bool
	raw     string // original bracket text
	end     int    // index just past the ']'
}

// readTag tries to read a bracket tag starting at pos (s[pos] == '[').
func readTag(s string, pos int) (tag, bool) {
	rb := strings.IndexByte(s[pos:], ']')
	if rb < 0 {
		return tag{}, false
	}
	rb += pos
	inner := s[pos+1 : rb]
	if inner == "" || strings.ContainsAny(inner, "[\n") {
		return tag{}, false
	}

	t := tag{raw: s[pos : rb+1], end: rb + 1}
	if strings.HasPrefix(inner, "/") {
		t.closing = true
		inner = inner[1:]
	}
	if eq := strings.IndexByte(inner, '='); eq >= 0 {
		t.arg = strings.Trim(inner[eq+1:], "'\"")
		inner = inner[:eq]
	}
	t.name = strings.ToLower(strings.TrimSpace(inner))
	if _, ok := knownTags[t.name]; !ok {
		return tag{}, false
	}
	return t, true
}

type parser struct {
	s string
}

// Parse builds the node tree for BBCode input. Unknown tags, unmatched
// closings and unclosed containers all degrade to literal text.
func Parse(input string) []*Node {
	p := &parser{s: input}
	nodes, _, _ := p.parse(0, "")
	return nodes
}

// parse consumes nodes until the closing tag of stop ("" means end of input).
// closed reports whether the expected closing tag was found.
func (p *parser) parse(pos int, stop string) (nodes []*Node, end int, closed bool) {
	var buf strings.Builder
	flush := func() {
		if buf.Len() > 0 {
			nodes = append(nodes, text(buf.String()))
			buf.Reset()
		}
	}

	for pos < len(p.s) {
		if p.s[pos] != '[' {
			buf.WriteByte(p.s[pos])
			pos++
			continue
		}
		t, ok := readTag(p.s, pos)
		if !ok {
			buf.WriteByte('[')
			pos++
			continue
		}

		if t.closing {
			if t.name == stop {
				flush()
				return nodes, t.end, true
			}
			// closing tag that matches nothing open here
			buf.WriteString(t.raw)
			pos = t.end
			continue
		}

		switch t.name {
		case "*":
			// item separators are only meaningful inside [LIST]
			if stop == "list" {
				flush()
				nodes = append(nodes, &Node{Kind: KindItem})
				pos = t.end
			} else {
				buf.WriteString(t.raw)
				pos = t.end
			}
		case "img":
			src, next, found := p.rawUntilClose(t.end, "img")
			if !found {
				buf.WriteString(t.raw)
				pos = t.end
				continue
			}
			flush()
			nodes = append(nodes, &Node{Kind: KindImage, Text: strings.TrimSpace(src)})
			pos = next
		case "list":
			children, next, found := p.parse(t.end, "list")
			if !found {
				buf.WriteString(t.raw)
				pos = t.end
				continue
			}
			flush()
			nodes = append(nodes, &Node{
				Kind:     KindList,
				Ordered:  t.arg == "1",
				Children: groupItems(children),
			})
			pos = next
		default:
			children, next, found := p.parse(t.end, t.name)
			if !found {
				buf.WriteString(t.raw)
				pos = t.end
				continue
			}
			flush()
			nodes = append(nodes, &Node{Kind: tagKinds[t.name], Arg: t.arg, Children: children})
			pos = next
		}
	}

	flush()
	return nodes, pos, stop == ""
}

// rawUntilClose returns the literal text up to [/name], without parsing it.
func (p *parser) rawUntilClose(pos int, name string) (string, int, bool) {
	needle := "[/" + name + "]"
	lower := strings.ToLower(p.s[pos:])
	idx := strings.Index(lower, needle)
	if idx < 0 {
		return "", pos, false
	}
	return p.s[pos : pos+idx], pos + idx + len(needle), true
}

// groupItems folds the flat children of a [LIST] into KindItem nodes:
// everything after each [*] marker up to the next one belongs to that item.
func groupItems(children []*Node) []*Node {
	var items []*Node
	var current *Node
	for _, child := range children {
		if child.Kind == KindItem {
			current = &Node{Kind: KindItem}
			items = append(items, current)
			continue
		}
		if current == nil {
			// text before the first marker: only whitespace is expected
			if child.Kind == KindText && strings.TrimSpace(child.Text) == "" {
				continue
			}
			current = &Node{Kind: KindItem}
			items = append(items, current)
		}
		if child.Kind == KindText {
			child.Text = strings.TrimSpace(child.Text)
			if child.Text == "" {
				continue
			}
		}
		current.Children = append(current.Children, child)
	}
	return items
}
