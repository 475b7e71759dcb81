package compose

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/growler/go-mdtree"
)

func TestMountMergesTopLevelNodes(t *testing.T) {
	c := mdtree.NewContainer(mdtree.NewStore())
	require.NoError(t, Mount(c, Heading(1, Text("A")), nil, Paragraph(Text("b"))))

	s := c.Store()
	root := c.Root()
	require.True(t, s.IsElement(root, mdtree.RoleRoot))
	assert.Len(t, c.Attached(), 2)
	assert.Equal(t, "root\n  heading depth=1\n    text \"A\"\n  paragraph\n    text \"b\"\n", s.Dump(root))
}

func TestMountStopsAtFirstError(t *testing.T) {
	c := mdtree.NewContainer(mdtree.NewStore())
	err := Mount(c,
		Paragraph(Text("kept")),
		Paragraph(El("span", nil)),
		Paragraph(Text("never")),
	)
	assert.True(t, errors.Is(err, mdtree.ErrUnsupportedRole))
	assert.Equal(t, `paragraph child 0: create "span": unsupported role`, err.Error())
	assert.Len(t, c.Attached(), 1)
}

func TestBuildLeavesNodeUnattached(t *testing.T) {
	s := mdtree.NewStore()
	id, err := Build(s, Quote(Text("q")))
	require.NoError(t, err)
	assert.Equal(t, mdtree.NoNode, s.Parent(id))
	assert.Equal(t, "q", s.TextContent(id))
}

func TestFactoriesOmitUnsetProps(t *testing.T) {
	assert.Nil(t, Cell(mdtree.AlignNone).Props)
	assert.Nil(t, HeaderCell("").Props)
	assert.Equal(t, mdtree.Props{"align": "right"}, Cell(mdtree.AlignRight).Props)
	assert.Equal(t, mdtree.Props{"value": "x"}, CodeBlock("", "x").Props)
	assert.Equal(t, mdtree.Props{"url": "u"}, Link("u", "").Props)
	assert.Equal(t, mdtree.Props{"url": "u", "alt": "a", "title": "t"}, Image("u", "a", "t").Props)
	assert.Nil(t, ListItem().Props)
	assert.Equal(t, mdtree.Props{"checked": false}, Task(false).Props)
}

func TestRender(t *testing.T) {
	out, err := Render(mdtree.NewRenderer(mdtree.DefaultOptions(), nil),
		Heading(2, Text("Title")),
		Quote(Paragraph(Text("quoted "), InlineCode("code"))),
		ThematicBreak(),
	)
	require.NoError(t, err)
	assert.Equal(t, "## Title\n\n> quoted `code`\n\n---\n", out)
}

func TestDecode(t *testing.T) {
	const doc = `
- role: heading
  props: {depth: 2}
  children: [Title]
- role: paragraph
  children:
    - "Some "
    - role: strong
      children: [bold]
    - " text."
- role: list
  props: {ordered: true}
  children:
    - role: listItem
      props: {checked: true}
      children: [done]
`
	nodes, err := Decode(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, nodes, 3)

	out, err := Render(mdtree.NewRenderer(mdtree.DefaultOptions(), nil), nodes...)
	require.NoError(t, err)
	assert.Equal(t, "## Title\n\nSome **bold** text.\n\n1. [x] done\n", out)
}

func TestDecodeSingleNodeAndJSON(t *testing.T) {
	nodes, err := Decode(strings.NewReader(`{"role": "paragraph", "children": ["hi"]}`))
	require.NoError(t, err)
	assert.Equal(t, []Node{El(mdtree.RoleParagraph, nil, Text("hi"))}, nodes)

	nodes, err = Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, nodes)
}

func TestDecodeAliases(t *testing.T) {
	const doc = `
- &greeting
  role: paragraph
  children: [hello]
- *greeting
`
	nodes, err := Decode(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	assert.Equal(t, nodes[0], nodes[1])
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode(strings.NewReader("- role: div\n"))
	assert.True(t, errors.Is(err, mdtree.ErrUnsupportedRole))
	assert.Equal(t, `line 1: parse "div": unsupported role`, err.Error())

	_, err = Decode(strings.NewReader("- [nested, sequence]\n"))
	assert.EqualError(t, err, "line 1: expected text or element")

	_, err = Decode(strings.NewReader("- role: paragraph\n  children: {a: b}\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")
}
