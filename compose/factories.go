package compose

import "github.com/growler/go-mdtree"

// Element factories. Each one only tags an element with its role and
// passes properties through; omitted optional properties are left unset.

func Document(children ...Node) *Element {
	return El(mdtree.RoleRoot, nil, children...)
}

func Heading(depth int, children ...Node) *Element {
	return El(mdtree.RoleHeading, mdtree.Props{"depth": depth}, children...)
}

func Paragraph(children ...Node) *Element {
	return El(mdtree.RoleParagraph, nil, children...)
}

func Strong(children ...Node) *Element {
	return El(mdtree.RoleStrong, nil, children...)
}

func Emphasis(children ...Node) *Element {
	return El(mdtree.RoleEmphasis, nil, children...)
}

func Strikethrough(children ...Node) *Element {
	return El(mdtree.RoleStrikethrough, nil, children...)
}

func InlineCode(value string) *Element {
	return El(mdtree.RoleInlineCode, mdtree.Props{"value": value})
}

// CodeBlock describes a code block; an empty language is left unset.
func CodeBlock(language, value string) *Element {
	props := mdtree.Props{"value": value}
	if language != "" {
		props["language"] = language
	}
	return El(mdtree.RoleCode, props)
}

func Quote(children ...Node) *Element {
	return El(mdtree.RoleBlockquote, nil, children...)
}

func Link(url, title string, children ...Node) *Element {
	props := mdtree.Props{"url": url}
	if title != "" {
		props["title"] = title
	}
	return El(mdtree.RoleLink, props, children...)
}

func Image(url, alt, title string) *Element {
	props := mdtree.Props{"url": url, "alt": alt}
	if title != "" {
		props["title"] = title
	}
	return El(mdtree.RoleImage, props)
}

func List(ordered bool, items ...Node) *Element {
	return El(mdtree.RoleList, mdtree.Props{"ordered": ordered}, items...)
}

func ListItem(children ...Node) *Element {
	return El(mdtree.RoleListItem, nil, children...)
}

// Task describes a list item rendered with a checkbox.
func Task(checked bool, children ...Node) *Element {
	return El(mdtree.RoleListItem, mdtree.Props{"checked": checked}, children...)
}

func Table(rows ...Node) *Element {
	return El(mdtree.RoleTable, nil, rows...)
}

func Row(cells ...Node) *Element {
	return El(mdtree.RoleTableRow, nil, cells...)
}

func Cell(align mdtree.Alignment, children ...Node) *Element {
	return El(mdtree.RoleTableCell, alignProps(align), children...)
}

func HeaderCell(align mdtree.Alignment, children ...Node) *Element {
	return El(mdtree.RoleTableHeader, alignProps(align), children...)
}

func alignProps(align mdtree.Alignment) mdtree.Props {
	if align == "" || align == mdtree.AlignNone {
		return nil
	}
	return mdtree.Props{"align": string(align)}
}

func ThematicBreak() *Element {
	return El(mdtree.RoleThematicBreak, nil)
}
