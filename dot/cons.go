// Package dot provides terse constructors for the lowered markdown AST,
// meant to be dot-imported in tests and transformers.
package dot

import "github.com/growler/go-mdtree"

const (
	Continue = mdtree.WalkContinue
	Replace  = mdtree.WalkReplace
	Skip     = mdtree.WalkSkip
	Stop     = mdtree.WalkStop
)

func Doc(b ...mdtree.Block) *mdtree.Doc {
	return &mdtree.Doc{Blocks: b}
}

func Blocks(b ...mdtree.Block) []mdtree.Block {
	return b
}

func Inlines(i ...mdtree.Inline) []mdtree.Inline {
	return i
}

// Text (string)
func Str(s string) *mdtree.Str {
	return &mdtree.Str{Text: s}
}

// Emphasized text (list of inlines)
func Emph(i ...mdtree.Inline) *mdtree.Emph {
	return &mdtree.Emph{Inlines: i}
}

// Strongly emphasized text (list of inlines)
func Strong(i ...mdtree.Inline) *mdtree.Strong {
	return &mdtree.Strong{Inlines: i}
}

// Struck-through text (list of inlines)
func Strikeout(i ...mdtree.Inline) *mdtree.Strikeout {
	return &mdtree.Strikeout{Inlines: i}
}

// Inline code (literal)
func Code(text string) *mdtree.Code {
	return &mdtree.Code{Text: text}
}

// Link (list of inlines as link text).
func Link(url, title string, i ...mdtree.Inline) *mdtree.Link {
	return &mdtree.Link{Target: mdtree.Target{Url: url, Title: title}, Inlines: i}
}

// Image with alternate text.
func Image(url, alt, title string) *mdtree.Image {
	return &mdtree.Image{Alt: alt, Target: mdtree.Target{Url: url, Title: title}}
}

func Para(i ...mdtree.Inline) *mdtree.Para {
	return &mdtree.Para{Inlines: i}
}

func Heading(level int, i ...mdtree.Inline) *mdtree.Heading {
	return &mdtree.Heading{Level: level, Inlines: i}
}

// Code block without a language.
func CodeBlock(text string) *mdtree.CodeBlock {
	return &mdtree.CodeBlock{Text: text}
}

// Code block tagged with a language.
func LangCodeBlock(lang, text string) *mdtree.CodeBlock {
	return &mdtree.CodeBlock{Lang: &lang, Text: text}
}

func BlockQuote(b ...mdtree.Block) *mdtree.BlockQuote {
	return &mdtree.BlockQuote{Blocks: b}
}

func BulletList(i ...*mdtree.ListItem) *mdtree.List {
	return &mdtree.List{Start: 1, Items: i}
}

func OrderedList(start int, i ...*mdtree.ListItem) *mdtree.List {
	return &mdtree.List{Ordered: true, Start: start, Items: i}
}

func Item(b ...mdtree.Block) *mdtree.ListItem {
	return &mdtree.ListItem{Blocks: b}
}

// Task list item. The first argument is the checked state.
func Task(checked bool, b ...mdtree.Block) *mdtree.ListItem {
	c := mdtree.Unchecked
	if checked {
		c = mdtree.Checked
	}
	return &mdtree.ListItem{Checkbox: c, Blocks: b}
}

func Table(r ...*mdtree.TableRow) *mdtree.Table {
	return &mdtree.Table{Rows: r}
}

func Row(c ...*mdtree.TableCell) *mdtree.TableRow {
	return &mdtree.TableRow{Cells: c}
}

func Cell(align mdtree.Alignment, i ...mdtree.Inline) *mdtree.TableCell {
	return &mdtree.TableCell{Align: align, Inlines: i}
}

func HeaderCell(align mdtree.Alignment, i ...mdtree.Inline) *mdtree.TableCell {
	return &mdtree.TableCell{Header: true, Align: align, Inlines: i}
}

// Thematic break.
func ThematicBreak() mdtree.Block {
	return mdtree.HR
}

func Filter[P any, E mdtree.Element, R mdtree.Element](elt E, fun func(P) ([]R, mdtree.WalkResult)) E {
	return mdtree.Filter[P, E, R](elt, fun)
}

func Query[P any, E mdtree.Element](elt E, fun func(P) mdtree.WalkResult) {
	mdtree.Query[P, E](elt, fun)
}
