package mdtree

// Role tags an element node of the generic tree.
type Role string

const (
	RoleRoot          Role = "root"
	RoleHeading       Role = "heading"
	RoleParagraph     Role = "paragraph"
	RoleStrong        Role = "strong"
	RoleEmphasis      Role = "emphasis"
	RoleStrikethrough Role = "strikethrough"
	RoleInlineCode    Role = "inlineCode"
	RoleCode          Role = "code"
	RoleBlockquote    Role = "blockquote"
	RoleLink          Role = "link"
	RoleImage         Role = "image"
	RoleList          Role = "list"
	RoleListItem      Role = "listItem"
	RoleTable         Role = "table"
	RoleTableRow      Role = "tableRow"
	RoleTableCell     Role = "tableCell"
	RoleTableHeader   Role = "tableHeader"
	RoleThematicBreak Role = "thematicBreak"
)

var roles = map[Role]struct{}{
	RoleRoot:          {},
	RoleHeading:       {},
	RoleParagraph:     {},
	RoleStrong:        {},
	RoleEmphasis:      {},
	RoleStrikethrough: {},
	RoleInlineCode:    {},
	RoleCode:          {},
	RoleBlockquote:    {},
	RoleLink:          {},
	RoleImage:         {},
	RoleList:          {},
	RoleListItem:      {},
	RoleTable:         {},
	RoleTableRow:      {},
	RoleTableCell:     {},
	RoleTableHeader:   {},
	RoleThematicBreak: {},
}

// Roles returns the fixed role vocabulary.
func Roles() []Role {
	return []Role{
		RoleRoot, RoleHeading, RoleParagraph, RoleStrong, RoleEmphasis,
		RoleStrikethrough, RoleInlineCode, RoleCode, RoleBlockquote, RoleLink,
		RoleImage, RoleList, RoleListItem, RoleTable, RoleTableRow,
		RoleTableCell, RoleTableHeader, RoleThematicBreak,
	}
}

// Valid reports whether r belongs to the vocabulary.
func (r Role) Valid() bool {
	_, ok := roles[r]
	return ok
}

// Inline reports whether elements of this role are grouped into
// paragraphs when they appear among block content. Images are not: they
// always get a paragraph of their own.
func (r Role) Inline() bool {
	switch r {
	case RoleStrong, RoleEmphasis, RoleStrikethrough, RoleInlineCode, RoleLink:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }

// ParseRole converts s to a Role, failing with ErrUnsupportedRole when s is
// outside the vocabulary.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", &RoleError{Op: "parse", Role: r, Err: ErrUnsupportedRole}
	}
	return r, nil
}
