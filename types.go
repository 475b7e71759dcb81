// Package mdtree builds markdown documents from a mutable generic node
// tree.
//
// A driver issues create/append/insert/remove/update calls against a Store
// and attaches top-level nodes to a Container. Render then lowers the tree
// into a strict block/inline AST (Doc) and serializes it as markdown text.
package mdtree

import (
	"strings"
)

// A convenience function to check if an element is of a particular type.
//
// Example:
//
//	if mdtree.Is[*mdtree.Str](elt) {
//	    ...
func Is[P any, S Element](elt S) bool {
	_, ok := any(elt).(P)
	return ok
}

// Returns a shallow copy of an element.
func Clone[P Element](elt P) P {
	return elt.clone().(P)
}

// AST element interface
type Element interface {
	writable
	element()
	clone() Element
}

type inlinesContainer interface {
	inlines() []Inline
}

type blocksContainer interface {
	blocks() []Block
}

// AST object tag
type Tag string

func (t Tag) Tag() Tag       { return t }
func (t Tag) String() string { return string(t) }

// AST object with tag
type Tagged interface {
	Tag() Tag
}

// Inline element: lives inside headings, paragraphs and table cells.
type Inline interface {
	Element
	Tagged
	inline()
}

// Block element: lives in the document, block quotes and list items.
type Block interface {
	Element
	Tagged
	block()
}

func apply[E Element](e E, transformers ...func(E) (E, error)) (E, error) {
	var err error
	for _, t := range transformers {
		if e, err = t(e); err != nil {
			return e, err
		}
	}
	return e, nil
}

// Lowered document (list of blocks)
type Doc struct {
	Blocks []Block
}

const DocTag = Tag("Doc")

func (d *Doc) Tag() Tag        { return DocTag }
func (d *Doc) blocks() []Block { return d.Blocks }
func (d *Doc) element()        {}
func (d *Doc) clone() Element {
	c := *d
	return &c
}
func (d *Doc) Apply(transformers ...func(*Doc) (*Doc, error)) (*Doc, error) {
	return apply(d, transformers...)
}

// Text returns the document's plain text: block texts joined by newlines.
func (d *Doc) Text() string {
	var parts []string
	Query(d, func(b Block) WalkResult {
		switch b := b.(type) {
		case *Heading:
			parts = append(parts, plainText(b.Inlines))
		case *Para:
			parts = append(parts, plainText(b.Inlines))
		case *CodeBlock:
			parts = append(parts, b.Text)
		default:
			return WalkContinue
		}
		return WalkSkip
	})
	return strings.Join(parts, "\n")
}

// Outline returns copies of the document's headings in document order,
// including headings nested in quotes and lists.
func (d *Doc) Outline() []*Heading {
	var headings []*Heading
	Query(d, func(h *Heading) WalkResult {
		headings = append(headings, Clone(h))
		return WalkSkip
	})
	return headings
}

func plainText(inlines []Inline) string {
	var sb strings.Builder
	for _, i := range inlines {
		switch i := i.(type) {
		case *Str:
			sb.WriteString(i.Text)
		case *Code:
			sb.WriteString(i.Text)
		case *Image:
			sb.WriteString(i.Alt)
		}
		Query(i, func(i Inline) WalkResult {
			switch i := i.(type) {
			case *Str:
				sb.WriteString(i.Text)
			case *Code:
				sb.WriteString(i.Text)
			}
			return WalkContinue
		})
	}
	return sb.String()
}

// Text (string)
type Str struct {
	Text string
}

const StrTag = Tag("Str")

func (s *Str) Tag() Tag { return StrTag }
func (s *Str) clone() Element {
	c := *s
	return &c
}
func (s *Str) inline()  {}
func (s *Str) element() {}

// Emphasized text (list of inlines)
type Emph struct {
	Inlines []Inline
}

const EmphTag = Tag("Emph")

func (e *Emph) Tag() Tag          { return EmphTag }
func (e *Emph) inlines() []Inline { return e.Inlines }
func (e *Emph) clone() Element {
	c := *e
	return &c
}
func (e *Emph) inline()  {}
func (e *Emph) element() {}

// Strongly emphasized text (list of inlines)
type Strong struct {
	Inlines []Inline
}

const StrongTag = Tag("Strong")

func (s *Strong) Tag() Tag          { return StrongTag }
func (s *Strong) inlines() []Inline { return s.Inlines }
func (s *Strong) inline()           {}
func (s *Strong) clone() Element {
	c := *s
	return &c
}
func (s *Strong) element() {}

// Struck-through text (list of inlines)
type Strikeout struct {
	Inlines []Inline
}

const StrikeoutTag = Tag("Strikeout")

func (s *Strikeout) Tag() Tag          { return StrikeoutTag }
func (s *Strikeout) inlines() []Inline { return s.Inlines }
func (s *Strikeout) inline()           {}
func (s *Strikeout) clone() Element {
	c := *s
	return &c
}
func (s *Strikeout) element() {}

// Inline code (literal)
type Code struct {
	Text string
}

const CodeTag = Tag("Code")

func (c *Code) Tag() Tag { return CodeTag }
func (c *Code) clone() Element {
	c1 := *c
	return &c1
}
func (c *Code) inline()  {}
func (c *Code) element() {}

// Link or image destination
type Target struct {
	Url   string
	Title string // empty when absent
}

// Hyperlink: text (list of inlines), target
type Link struct {
	Inlines []Inline
	Target  Target
}

const LinkTag = Tag("Link")

func (l *Link) Tag() Tag          { return LinkTag }
func (l *Link) inlines() []Inline { return l.Inlines }
func (l *Link) clone() Element {
	c := *l
	return &c
}
func (l *Link) inline()  {}
func (l *Link) element() {}

// Image: alt text, target. Only ever the sole content of a paragraph.
type Image struct {
	Alt    string
	Target Target
}

const ImageTag = Tag("Image")

func (i *Image) Tag() Tag { return ImageTag }
func (i *Image) clone() Element {
	c := *i
	return &c
}
func (i *Image) element() {}
func (i *Image) inline()  {}

// Paragraph (list of inlines)
type Para struct {
	Inlines []Inline
}

const ParaTag = Tag("Para")

func (p *Para) Tag() Tag          { return ParaTag }
func (p *Para) inlines() []Inline { return p.Inlines }
func (p *Para) clone() Element {
	c := *p
	return &c
}
func (p *Para) block()   {}
func (p *Para) element() {}
func (p *Para) Apply(transformers ...func(*Para) (*Para, error)) (*Para, error) {
	return apply(p, transformers...)
}

// Heading - level (1..6) and text (inlines)
type Heading struct {
	Level   int
	Inlines []Inline
}

const HeadingTag = Tag("Heading")

func (h *Heading) Tag() Tag          { return HeadingTag }
func (h *Heading) inlines() []Inline { return h.Inlines }
func (h *Heading) clone() Element {
	c := *h
	return &c
}
func (h *Heading) block()   {}
func (h *Heading) element() {}
func (h *Heading) Apply(transformers ...func(*Heading) (*Heading, error)) (*Heading, error) {
	return apply(h, transformers...)
}

// Title returns the heading's plain text.
func (h *Heading) Title() string {
	return plainText(h.Inlines)
}

// Code block (literal). Lang is nil when no language was given, which is
// distinct from an empty info string.
type CodeBlock struct {
	Lang *string
	Text string
}

const CodeBlockTag = Tag("CodeBlock")

func (b *CodeBlock) Tag() Tag { return CodeBlockTag }
func (b *CodeBlock) clone() Element {
	c := *b
	return &c
}
func (b *CodeBlock) block()   {}
func (b *CodeBlock) element() {}

// Block quote (list of blocks)
type BlockQuote struct {
	Blocks []Block
}

const BlockQuoteTag = Tag("BlockQuote")

func (b *BlockQuote) Tag() Tag        { return BlockQuoteTag }
func (b *BlockQuote) blocks() []Block { return b.Blocks }
func (b *BlockQuote) clone() Element {
	c := *b
	return &c
}
func (b *BlockQuote) block()   {}
func (b *BlockQuote) element() {}
func (b *BlockQuote) Apply(transformers ...func(*BlockQuote) (*BlockQuote, error)) (*BlockQuote, error) {
	return apply(b, transformers...)
}

// Checkbox is the task state of a list item.
type Checkbox int8

const (
	NoCheckbox Checkbox = iota
	Unchecked
	Checked
)

// List item (list of blocks, never empty once lowered)
type ListItem struct {
	Checkbox Checkbox
	Blocks   []Block
}

func (i *ListItem) blocks() []Block { return i.Blocks }
func (i *ListItem) element()        {}
func (i *ListItem) clone() Element {
	c := *i
	return &c
}

// Ordered or bullet list. Start is the first ordinal of an ordered list.
type List struct {
	Ordered bool
	Start   int
	Items   []*ListItem
}

const ListTag = Tag("List")

func (l *List) Tag() Tag { return ListTag }
func (l *List) clone() Element {
	c := *l
	return &c
}
func (l *List) block()   {}
func (l *List) element() {}
func (l *List) Apply(transformers ...func(*List) (*List, error)) (*List, error) {
	return apply(l, transformers...)
}

var HR = &ThematicBreak{}

// Thematic break
type ThematicBreak struct{}

const ThematicBreakTag = Tag("ThematicBreak")

func (*ThematicBreak) Tag() Tag       { return ThematicBreakTag }
func (*ThematicBreak) clone() Element { return HR }
func (*ThematicBreak) block()         {}
func (*ThematicBreak) element()       {}

type Alignment Tag

const (
	AlignNone   Alignment = "none"
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

type TableCell struct {
	Header  bool
	Align   Alignment
	Inlines []Inline
}

func (t *TableCell) element()          {}
func (t *TableCell) inlines() []Inline { return t.Inlines }
func (t *TableCell) clone() Element {
	c := *t
	return &c
}

type TableRow struct {
	Cells []*TableCell
}

func (t *TableRow) element() {}
func (t *TableRow) clone() Element {
	c := *t
	return &c
}

// Table (list of rows, the first being the header row). Rows may have
// different lengths; the writer pads them.
type Table struct {
	Rows []*TableRow
}

const TableTag = Tag("Table")

func (t *Table) Tag() Tag { return TableTag }
func (t *Table) clone() Element {
	c := *t
	return &c
}
func (t *Table) block()   {}
func (t *Table) element() {}
func (t *Table) Apply(transformers ...func(*Table) (*Table, error)) (*Table, error) {
	return apply(t, transformers...)
}

// Columns returns the number of cells in the longest row.
func (t *Table) Columns() int {
	n := 0
	for _, r := range t.Rows {
		if len(r.Cells) > n {
			n = len(r.Cells)
		}
	}
	return n
}
