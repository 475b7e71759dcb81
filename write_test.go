package mdtree

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func para(inlines ...Inline) *Para { return &Para{Inlines: inlines} }

func item(blocks ...Block) *ListItem { return &ListItem{Blocks: blocks} }

func format(opts Options, blocks ...Block) string {
	return Format(&Doc{Blocks: blocks}, opts)
}

func TestFormatEscaping(t *testing.T) {
	var tests = []struct {
		name string
		in   Block
		want string
	}{
		{"inline syntax", para(&Str{"a*b_c [x] <y> ~z `q` \\"}), "a\\*b\\_c \\[x\\] \\<y\\> \\~z \\`q\\` \\\\\n"},
		{"heading", para(&Str{"# not a heading"}), "\\# not a heading\n"},
		{"ordered", para(&Str{"1. not a list"}), "1\\. not a list\n"},
		{"bullet", para(&Str{"- not a list"}), "\\- not a list\n"},
		{"quote", para(&Str{"> not a quote"}), "\\> not a quote\n"},
		{"mid line", para(&Str{"a # 1. - b"}), "a # 1. - b\n"},
		{"entity", para(&Str{"AT&T &amp;"}), "AT&T \\&amp;\n"},
		{"pipe outside table", para(&Str{"a|b"}), "a|b\n"},
		{"heading text", &Heading{Level: 3, Inlines: []Inline{&Str{"x "}, &Emph{[]Inline{&Str{"y"}}}}}, "### x *y*\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, format(DefaultOptions(), tt.in))
		})
	}
}

func TestFormatInlineCode(t *testing.T) {
	assert.Equal(t, "`x`\n", format(DefaultOptions(), para(&Code{"x"})))
	assert.Equal(t, "``a`b``\n", format(DefaultOptions(), para(&Code{"a`b"})))
	assert.Equal(t, "`` `x ``\n", format(DefaultOptions(), para(&Code{"`x"})))
	assert.Equal(t, "`a b`\n", format(DefaultOptions(), para(&Code{"a\nb"})))
}

func TestFormatLinks(t *testing.T) {
	link := func(url, title string) *Para {
		return para(&Link{Inlines: []Inline{&Str{"l"}}, Target: Target{Url: url, Title: title}})
	}
	assert.Equal(t, `[l](https://e.com/a\(b\) "say \"hi\"")`+"\n", format(DefaultOptions(), link("https://e.com/a(b)", `say "hi"`)))
	assert.Equal(t, "[l](<a b>)\n", format(DefaultOptions(), link("a b", "")))
	assert.Equal(t, "[l](<>)\n", format(DefaultOptions(), link("", "")))
	assert.Equal(t, `![a\*b](i.png)`+"\n", format(DefaultOptions(), para(&Image{Alt: "a*b", Target: Target{Url: "i.png"}})))
}

func TestFormatCodeBlocks(t *testing.T) {
	lang := "go"
	fenced := DefaultOptions()
	indented := DefaultOptions().WithFences(false)

	assert.Equal(t, "```go\nx := 1\n```\n", format(fenced, &CodeBlock{Lang: &lang, Text: "x := 1"}))
	assert.Equal(t, "```\nplain\n```\n", format(fenced, &CodeBlock{Text: "plain"}))
	assert.Equal(t, "````\n```\ninner\n```\n````\n", format(fenced, &CodeBlock{Text: "```\ninner\n```"}))

	assert.Equal(t, "    a\n\n    b\n", format(indented, &CodeBlock{Text: "a\n\nb"}))
	assert.Equal(t, "```go\nx\n```\n", format(indented, &CodeBlock{Lang: &lang, Text: "x"}))
	assert.Equal(t, "```\n\nx\n```\n", format(indented, &CodeBlock{Text: "\nx"}))
	assert.Equal(t, "```\n```\n", format(indented, &CodeBlock{}))
}

func TestFormatBlockQuote(t *testing.T) {
	out := format(DefaultOptions(), &BlockQuote{Blocks: []Block{
		para(&Str{"a"}),
		para(&Str{"b"}),
		&BlockQuote{Blocks: []Block{para(&Str{"c"})}},
	}})
	assert.Equal(t, "> a\n>\n> b\n>\n> > c\n", out)
}

func TestFormatThematicBreak(t *testing.T) {
	assert.Equal(t, "a\n\n---\n\nb\n", format(DefaultOptions(), para(&Str{"a"}), HR, para(&Str{"b"})))
	assert.Equal(t, "___\n", format(DefaultOptions().WithRule("_"), HR))
}

func TestFormatAdjacentLists(t *testing.T) {
	bullet := func(s string) *List { return &List{Start: 1, Items: []*ListItem{item(para(&Str{s}))}} }
	ordered := func(s string) *List {
		return &List{Ordered: true, Start: 1, Items: []*ListItem{item(para(&Str{s}))}}
	}
	assert.Equal(t, "- a\n\n* b\n\n- c\n", format(DefaultOptions(), bullet("a"), bullet("b"), bullet("c")))
	assert.Equal(t, "* a\n\n- b\n", format(DefaultOptions().WithBullet("*"), bullet("a"), bullet("b")))
	assert.Equal(t, "1. a\n\n1) b\n", format(DefaultOptions(), ordered("a"), ordered("b")))
	assert.Equal(t, "- a\n\nx\n\n- b\n", format(DefaultOptions(), bullet("a"), para(&Str{"x"}), bullet("b")))
}

func TestFormatListIndent(t *testing.T) {
	list := &List{Start: 1, Items: []*ListItem{
		item(para(&Str{"a"}), &List{Start: 1, Items: []*ListItem{item(para(&Str{"b"}))}}),
	}}
	assert.Equal(t, "- a\n  - b\n", format(DefaultOptions(), list))
	assert.Equal(t, "-   a\n    -   b\n", format(DefaultOptions().WithListIndent(IndentTabWidth), list))

	ordered := &List{Ordered: true, Start: 1, Items: []*ListItem{item(para(&Str{"one"}), &CodeBlock{Text: "a\nb"})}}
	assert.Equal(t, "1. one\n   ```\n   a\n   b\n   ```\n", format(DefaultOptions(), ordered))
	assert.Equal(t, "1.  one\n    ```\n    a\n    b\n    ```\n", format(DefaultOptions().WithListIndent(IndentTabWidth), ordered))
}

func TestFormatCheckboxNeedsParagraph(t *testing.T) {
	list := &List{Start: 1, Items: []*ListItem{
		{Checkbox: Checked, Blocks: []Block{&CodeBlock{Text: "x"}}},
		{Checkbox: Unchecked, Blocks: []Block{para(&Str{"y"})}},
	}}
	assert.Equal(t, "- ```\n  x\n  ```\n- [ ] y\n", format(DefaultOptions(), list))
}

func TestFormatTableShapes(t *testing.T) {
	cell := func(s string, align Alignment) *TableCell {
		return &TableCell{Align: align, Inlines: []Inline{&Str{s}}}
	}
	table := &Table{Rows: []*TableRow{
		{Cells: []*TableCell{cell("h1", AlignLeft), cell("h2", AlignNone)}},
		{Cells: []*TableCell{cell("a|b", AlignLeft)}},
	}}
	assert.Equal(t, "| h1   | h2  |\n| ---- | --- |\n| a\\|b |     |\n", format(DefaultOptions(), table))
	assert.Equal(t, "\n", format(DefaultOptions(), &Table{}))
}

func TestFormatTrailingNewline(t *testing.T) {
	assert.Equal(t, "\n", Format(&Doc{}, DefaultOptions()))
	assert.Equal(t, "a\n", format(DefaultOptions(), para(&Str{"a\n\n"})))
	assert.Equal(t, "```\nx\n\n```\n", format(DefaultOptions(), &CodeBlock{Text: "x\n"}))
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, &Doc{Blocks: []Block{para(&Str{"hi"})}}, Options{}))
	assert.Equal(t, "hi\n", buf.String())
}

func TestFormatBlockSyntaxInText(t *testing.T) {
	var tests = []struct {
		name   string
		blocks []Block
		want   string
	}{
		{"thematic break", []Block{para(&Str{"a"}), para(&Str{"---"})}, "a\n\n\\---\n"},
		{"short dash run", []Block{para(&Str{"-- x"})}, "\\-- x\n"},
		{"setext underline", []Block{para(&Str{"==="})}, "\\===\n"},
		{"closing hashes", []Block{&Heading{Level: 1, Inlines: []Inline{&Str{"C #"}}}}, "# C \\#\n"},
		{"only hashes", []Block{&Heading{Level: 2, Inlines: []Inline{&Str{"##"}}}}, "## \\##\n"},
		{"hash in word", []Block{&Heading{Level: 1, Inlines: []Inline{&Str{"C#"}}}}, "# C#\n"},
		{"code pipe in table", []Block{&Table{Rows: []*TableRow{
			{Cells: []*TableCell{{Header: true, Inlines: []Inline{&Code{"x|y"}}}}},
		}}}, "| `x\\|y` |\n| ------ |\n"},
		{"code pipe outside table", []Block{para(&Code{"x|y"})}, "`x|y`\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, format(DefaultOptions(), tt.blocks...))
		})
	}
}

func TestFormatKeepsUnicodeSpaces(t *testing.T) {
	assert.Equal(t, "10\u00a0km\n", format(DefaultOptions(), para(&Str{"10\u00a0km"})))
	assert.Equal(t, "a\u2003b c\n", format(DefaultOptions(), para(&Str{"a\u2003b \t\n c"})))
}

func TestFormatDelimiterWhitespace(t *testing.T) {
	var tests = []struct {
		name    string
		inlines []Inline
		want    string
	}{
		{"trailing", []Inline{&Strong{[]Inline{&Str{"bold "}}}, &Str{"text"}}, "**bold** text\n"},
		{"leading", []Inline{&Str{"a"}, &Strong{[]Inline{&Str{" bold"}}}}, "a **bold**\n"},
		{"both", []Inline{&Emph{[]Inline{&Str{" x "}}}, &Str{"y"}}, "*x* y\n"},
		{"nested", []Inline{&Strong{[]Inline{&Strikeout{[]Inline{&Str{"x "}}}}}, &Str{"y"}}, "**~~x~~** y\n"},
		{"adjacent", []Inline{&Str{"a"}, &Emph{[]Inline{&Str{"b"}}}, &Str{"c"}}, "a*b*c\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, format(DefaultOptions(), para(tt.inlines...)))
		})
	}
}
