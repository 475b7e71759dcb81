package mdtree

import (
	"github.com/pkg/errors"
)

// Lower converts the generic tree rooted at root into a lowered document.
//
// Nested root-role elements are flattened, adjacent inline nodes are
// grouped into paragraphs, and stray inline content in block positions is
// wrapped rather than rejected. The only structural failure is an element
// whose role Lower does not know (ErrUnknownRole); property values of the
// wrong type fail with ErrInvalidProperty.
func Lower(s *Store, root NodeID) (*Doc, error) {
	l := lowerer{s: s}
	blocks, err := l.flow(l.flatten(root, nil))
	if err != nil {
		return nil, err
	}
	return &Doc{Blocks: blocks}, nil
}

type lowerer struct {
	s *Store
}

// flatten appends to dst the top-level nodes of id: id itself unless it is
// a root-role element, in which case its children, recursively.
func (l *lowerer) flatten(id NodeID, dst []NodeID) []NodeID {
	if !l.s.IsElement(id, RoleRoot) {
		return append(dst, id)
	}
	for _, c := range l.s.Children(id) {
		dst = l.flatten(c, dst)
	}
	return dst
}

// isInline reports whether id is grouped into a paragraph with its inline
// neighbours.
func (l *lowerer) isInline(id NodeID) bool {
	return l.s.Kind(id) == KindText || l.s.Role(id).Inline()
}

// flow lowers a sequence of sibling nodes in a block context. Runs of
// inline nodes become one paragraph each.
func (l *lowerer) flow(ids []NodeID) ([]Block, error) {
	var (
		blocks  []Block
		pending []Inline
	)
	flush := func() {
		if len(pending) > 0 {
			blocks = append(blocks, &Para{Inlines: pending})
			pending = nil
		}
	}
	for _, id := range ids {
		if l.isInline(id) {
			in, err := l.inline(id)
			if err != nil {
				return nil, err
			}
			if in != nil {
				pending = append(pending, in)
			}
			continue
		}
		flush()
		bs, err := l.block(id)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, bs...)
	}
	flush()
	return blocks, nil
}

func (l *lowerer) propErr(id NodeID, err error) error {
	var pe *PropertyError
	if errors.As(err, &pe) && pe.Role == "" {
		pe.Role = l.s.Role(id)
	}
	return err
}

// block lowers one node in a block position. It usually yields one block;
// a nested root yields its own flow.
func (l *lowerer) block(id NodeID) ([]Block, error) {
	if l.s.Kind(id) == KindText {
		return []Block{&Para{Inlines: []Inline{&Str{Text: l.s.Value(id)}}}}, nil
	}
	props := l.s.Props(id)
	switch role := l.s.Role(id); role {
	case RoleRoot:
		return l.flow(l.flatten(id, nil))

	case RoleHeading:
		depth, err := props.HeadingDepth("depth")
		if err != nil {
			return nil, l.propErr(id, err)
		}
		inlines, err := l.inlines(id)
		if err != nil {
			return nil, err
		}
		return []Block{&Heading{Level: depth, Inlines: inlines}}, nil

	case RoleParagraph:
		p, err := l.para(id)
		if err != nil {
			return nil, err
		}
		return []Block{p}, nil

	case RoleBlockquote:
		var blocks []Block
		for _, c := range l.s.Children(id) {
			bs, err := l.block(c)
			if err != nil {
				return nil, err
			}
			blocks = append(blocks, bs...)
		}
		return []Block{&BlockQuote{Blocks: blocks}}, nil

	case RoleCode:
		b, err := l.codeBlock(id)
		if err != nil {
			return nil, err
		}
		return []Block{b}, nil

	case RoleList:
		list, err := l.list(id)
		if err != nil {
			return nil, err
		}
		return []Block{list}, nil

	case RoleListItem:
		item, err := l.listItem(id)
		if err != nil {
			return nil, err
		}
		return []Block{&List{Start: 1, Items: []*ListItem{item}}}, nil

	case RoleTable:
		t, err := l.table(id)
		if err != nil {
			return nil, err
		}
		return []Block{t}, nil

	case RoleTableRow:
		row, err := l.tableRow(id)
		if err != nil {
			return nil, err
		}
		return []Block{&Table{Rows: []*TableRow{row}}}, nil

	case RoleTableCell, RoleTableHeader:
		cell, err := l.tableCell(id)
		if err != nil {
			return nil, err
		}
		return []Block{&Table{Rows: []*TableRow{{Cells: []*TableCell{cell}}}}}, nil

	case RoleThematicBreak:
		return []Block{HR}, nil

	case RoleImage:
		img, err := l.image(id)
		if err != nil {
			return nil, err
		}
		return []Block{&Para{Inlines: []Inline{img}}}, nil

	case RoleStrong, RoleEmphasis, RoleStrikethrough, RoleInlineCode, RoleLink:
		in, err := l.inline(id)
		if err != nil || in == nil {
			return nil, err
		}
		return []Block{&Para{Inlines: []Inline{in}}}, nil

	default:
		return nil, &RoleError{Op: "lower", Role: role, Err: ErrUnknownRole}
	}
}

func (l *lowerer) para(id NodeID) (*Para, error) {
	children := l.s.Children(id)
	if len(children) == 1 && l.s.IsElement(children[0], RoleImage) {
		img, err := l.image(children[0])
		if err != nil {
			return nil, err
		}
		return &Para{Inlines: []Inline{img}}, nil
	}
	inlines, err := l.inlines(id)
	if err != nil {
		return nil, err
	}
	return &Para{Inlines: inlines}, nil
}

func (l *lowerer) codeBlock(id NodeID) (*CodeBlock, error) {
	props := l.s.Props(id)
	lang, ok, err := props.MaybeString("language")
	if err == nil && !ok {
		lang, ok, err = props.MaybeString("lang")
	}
	if err != nil {
		return nil, l.propErr(id, err)
	}
	b := &CodeBlock{}
	if ok {
		b.Lang = &lang
	}
	value, ok, err := props.MaybeString("value")
	if err != nil {
		return nil, l.propErr(id, err)
	}
	if !ok {
		value = l.s.TextContent(id)
	}
	b.Text = value
	return b, nil
}

func (l *lowerer) list(id NodeID) (*List, error) {
	props := l.s.Props(id)
	ordered, err := props.Bool("ordered", false)
	if err != nil {
		return nil, l.propErr(id, err)
	}
	start, err := props.ListStart("start")
	if err != nil {
		return nil, l.propErr(id, err)
	}
	list := &List{Ordered: ordered, Start: start}
	for _, c := range l.s.Children(id) {
		if !l.s.IsElement(c, RoleListItem) {
			continue
		}
		item, err := l.listItem(c)
		if err != nil {
			return nil, err
		}
		list.Items = append(list.Items, item)
	}
	return list, nil
}

// listItem lowers an item the way the top level is lowered: inline runs
// become paragraphs, everything else is block content. An item with no
// content gets one empty paragraph.
func (l *lowerer) listItem(id NodeID) (*ListItem, error) {
	checked, ok, err := l.s.Props(id).MaybeBool("checked")
	if err != nil {
		return nil, l.propErr(id, err)
	}
	item := &ListItem{}
	if ok {
		item.Checkbox = Unchecked
		if checked {
			item.Checkbox = Checked
		}
	}
	if item.Blocks, err = l.flow(l.s.Children(id)); err != nil {
		return nil, err
	}
	if len(item.Blocks) == 0 {
		item.Blocks = []Block{&Para{}}
	}
	return item, nil
}

func (l *lowerer) table(id NodeID) (*Table, error) {
	t := &Table{}
	for _, c := range l.s.Children(id) {
		if !l.s.IsElement(c, RoleTableRow) {
			continue
		}
		row, err := l.tableRow(c)
		if err != nil {
			return nil, err
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func (l *lowerer) tableRow(id NodeID) (*TableRow, error) {
	row := &TableRow{}
	for _, c := range l.s.Children(id) {
		if !l.s.IsElement(c, RoleTableCell) && !l.s.IsElement(c, RoleTableHeader) {
			continue
		}
		cell, err := l.tableCell(c)
		if err != nil {
			return nil, err
		}
		row.Cells = append(row.Cells, cell)
	}
	return row, nil
}

func (l *lowerer) tableCell(id NodeID) (*TableCell, error) {
	align, err := l.s.Props(id).Alignment("align")
	if err != nil {
		return nil, l.propErr(id, err)
	}
	inlines, err := l.inlines(id)
	if err != nil {
		return nil, err
	}
	return &TableCell{Header: l.s.Role(id) == RoleTableHeader, Align: align, Inlines: inlines}, nil
}

func (l *lowerer) image(id NodeID) (*Image, error) {
	props := l.s.Props(id)
	img := &Image{}
	var err error
	if img.Target.Url, err = props.String("url", ""); err != nil {
		return nil, l.propErr(id, err)
	}
	if img.Alt, err = props.String("alt", ""); err != nil {
		return nil, l.propErr(id, err)
	}
	if img.Target.Title, err = props.String("title", ""); err != nil {
		return nil, l.propErr(id, err)
	}
	return img, nil
}

// inlines lowers the children of id as inline content, dropping anything
// that cannot appear inline.
func (l *lowerer) inlines(id NodeID) ([]Inline, error) {
	var inlines []Inline
	for _, c := range l.s.Children(id) {
		in, err := l.inline(c)
		if err != nil {
			return nil, err
		}
		if in != nil {
			inlines = append(inlines, in)
		}
	}
	return inlines, nil
}

// inline lowers one node in an inline position. It returns nil for nodes
// that have no inline form.
func (l *lowerer) inline(id NodeID) (Inline, error) {
	if l.s.Kind(id) == KindText {
		return &Str{Text: l.s.Value(id)}, nil
	}
	props := l.s.Props(id)
	switch l.s.Role(id) {
	case RoleStrong:
		inlines, err := l.inlines(id)
		if err != nil {
			return nil, err
		}
		return &Strong{Inlines: inlines}, nil
	case RoleEmphasis:
		inlines, err := l.inlines(id)
		if err != nil {
			return nil, err
		}
		return &Emph{Inlines: inlines}, nil
	case RoleStrikethrough:
		inlines, err := l.inlines(id)
		if err != nil {
			return nil, err
		}
		return &Strikeout{Inlines: inlines}, nil
	case RoleInlineCode:
		value, ok, err := props.MaybeString("value")
		if err != nil {
			return nil, l.propErr(id, err)
		}
		if !ok {
			value = l.s.TextContent(id)
		}
		return &Code{Text: value}, nil
	case RoleLink:
		link := &Link{}
		var err error
		if link.Target.Url, err = props.String("url", ""); err != nil {
			return nil, l.propErr(id, err)
		}
		if link.Target.Title, err = props.String("title", ""); err != nil {
			return nil, l.propErr(id, err)
		}
		if link.Inlines, err = l.inlines(id); err != nil {
			return nil, err
		}
		return link, nil
	}
	return nil, nil
}
