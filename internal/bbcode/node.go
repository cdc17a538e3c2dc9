// Package bbcode models the forum markup as a typed node tree with a
// tolerant parser and independent serializers to BBCode and to the rich-text
// HTML the shell's visual editor works with. Unparseable fragments degrade
// to plain text instead of failing.
package bbcode

// Kind identifies a node in the markup tree.
type Kind int

const (
	KindText Kind = iota
	KindBold
	KindItalic
	KindUnderline
	KindSize
	KindFont
	KindColor
	KindURL
	KindImage
	KindCenter
	KindRight
	KindList
	KindItem
	KindIndent
)

// Node is one element of the markup tree. Text carries literal content for
// KindText and the source URL for KindImage; Arg carries the tag argument
// (size number, font name, color, link target).
type Node struct {
	Kind     Kind
	Text     string
	Arg      string
	Ordered  bool // KindList
	Children []*Node
}

func text(s string) *Node { return &Node{Kind: KindText, Text: s} }

// PlainText flattens the tree to its textual content, dropping all markup.
func PlainText(nodes []*Node) string {
	var out []byte
	var walk func([]*Node)
	walk = func(ns []*Node) {
		for _, n := range ns {
			switch n.Kind {
			case KindText:
				out = append(out, n.Text...)
			case KindImage:
				// images carry no text
			default:
				walk(n.Children)
			}
		}
	}
	walk(nodes)
	return string(out)
}

// Font size steps used by the forum, BBCode size 1..7 to pixels.
var sizeToPx = map[string]string{
	"1": "10px", "2": "12px", "3": "14px", "4": "16px",
	"5": "18px", "6": "20px", "7": "22px",
}

func pxToSize(px string) string {
	for size, p := range sizeToPx {
		if p == px {
			return size
		}
	}
	return "3"
}
