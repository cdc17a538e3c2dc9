package bbcode_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forik/backend/internal/bbcode"
)

func TestParseSimpleTags(t *testing.T) {
	nodes := bbcode.Parse("[B]bold[/B] and [I]italic[/I]")

	require.Len(t, nodes, 3)
	assert.Equal(t, bbcode.KindBold, nodes[0].Kind)
	assert.Equal(t, " and ", nodes[1].Text)
	assert.Equal(t, bbcode.KindItalic, nodes[2].Kind)
	assert.Equal(t, "bold", bbcode.PlainText(nodes[:1]))
}

func TestParseArgumentsAndQuotes(t *testing.T) {
	nodes := bbcode.Parse("[SIZE=6]big[/SIZE][URL='https://example.com']link[/URL]")

	require.Len(t, nodes, 2)
	assert.Equal(t, bbcode.KindSize, nodes[0].Kind)
	assert.Equal(t, "6", nodes[0].Arg)
	assert.Equal(t, bbcode.KindURL, nodes[1].Kind)
	assert.Equal(t, "https://example.com", nodes[1].Arg)
}

func TestParseUnclosedTagDegradesToText(t *testing.T) {
	nodes := bbcode.Parse("[B]never closed")

	require.Len(t, nodes, 1)
	assert.Equal(t, bbcode.KindText, nodes[0].Kind)
	assert.Equal(t, "[B]never closed", nodes[0].Text)
}

func TestParseUnknownTagIsLiteral(t *testing.T) {
	nodes := bbcode.Parse("[WEIRD]stuff[/WEIRD]")

	assert.Equal(t, "[WEIRD]stuff[/WEIRD]", bbcode.PlainText(nodes))
}

func TestParseImageContentIsRaw(t *testing.T) {
	nodes := bbcode.Parse("[IMG]https://i.imgur.com/x.png[/IMG]")

	require.Len(t, nodes, 1)
	assert.Equal(t, bbcode.KindImage, nodes[0].Kind)
	assert.Equal(t, "https://i.imgur.com/x.png", nodes[0].Text)
}

func TestParseList(t *testing.T) {
	nodes := bbcode.Parse("[LIST]\n[*]first\n[*]second\n[/LIST]")

	require.Len(t, nodes, 1)
	list := nodes[0]
	assert.Equal(t, bbcode.KindList, list.Kind)
	assert.False(t, list.Ordered)
	require.Len(t, list.Children, 2)
	assert.Equal(t, "first", bbcode.PlainText(list.Children[0].Children))
	assert.Equal(t, "second", bbcode.PlainText(list.Children[1].Children))
}

func TestParseOrderedList(t *testing.T) {
	nodes := bbcode.Parse("[LIST=1]\n[*]one\n[/LIST]")

	require.Len(t, nodes, 1)
	assert.True(t, nodes[0].Ordered)
}

func TestBBCodeRoundTrip(t *testing.T) {
	inputs := []string{
		"[B]bold[/B]",
		"[SIZE=6][FONT=Book Antiqua]styled[/FONT][/SIZE]",
		"[CENTER][IMG]https://i.imgur.com/x.png[/IMG][/CENTER]",
		"[URL='https://forum.example']rules[/URL]",
		"plain text stays plain",
	}
	for _, in := range inputs {
		assert.Equal(t, in, bbcode.ToBBCode(bbcode.Parse(in)), in)
	}
}

func TestToHTML(t *testing.T) {
	html := bbcode.ToRichText("[B]bold[/B]\n[SIZE=6]big[/SIZE]")

	assert.Contains(t, html, "<strong>bold</strong>")
	assert.Contains(t, html, "<br>")
	assert.Contains(t, html, `<span style="font-size:20px">big</span>`)
}

func TestToHTMLEscapesText(t *testing.T) {
	html := bbcode.ToRichText("[B]<script>[/B]")

	assert.Contains(t, html, "&lt;script&gt;")
	assert.NotContains(t, html, "<script>")
}

func TestFromRichTextBasics(t *testing.T) {
	out, err := bbcode.FromRichText("<strong>bold</strong> and <em>italic</em>")
	require.NoError(t, err)
	assert.Equal(t, "[B]bold[/B] and [I]italic[/I]", out)
}

func TestFromRichTextStyledSpan(t *testing.T) {
	out, err := bbcode.FromRichText(`<span style="font-size:20px">big</span>`)
	require.NoError(t, err)
	assert.Equal(t, "[SIZE=6]big[/SIZE]", out)
}

func TestFromRichTextAlignmentAndLists(t *testing.T) {
	out, err := bbcode.FromRichText(`<div style="text-align:center">mid</div><ul><li> a </li><li>b</li></ul>`)
	require.NoError(t, err)
	assert.Equal(t, "[CENTER]mid[/CENTER][LIST]\n[*]a\n[*]b\n[/LIST]", out)
}

func TestFromRichTextLegacyFont(t *testing.T) {
	out, err := bbcode.FromRichText(`<font size="6" color="red">x</font>`)
	require.NoError(t, err)
	assert.Equal(t, "[SIZE=6][COLOR=red]x[/COLOR][/SIZE]", out)
}

func TestFromRichTextUnknownElementsUnwrap(t *testing.T) {
	out, err := bbcode.FromRichText("<section><strong>kept</strong></section>")
	require.NoError(t, err)
	assert.Equal(t, "[B]kept[/B]", out)
}

func TestRichTextRoundTrip(t *testing.T) {
	in := "[CENTER][B]Жалоба[/B][/CENTER]"
	html := bbcode.ToRichText(in)
	back, err := bbcode.FromRichText(html)
	require.NoError(t, err)
	assert.Equal(t, in, back)
}
