package mdtree

import (
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Write writes the markdown text of doc to w.
//
// Example:
//
//	var doc *mdtree.Doc
//	...
//	if err := mdtree.Write(os.Stdout, doc, mdtree.DefaultOptions()); err != nil {
//		log.Fatal(err)
//	}
func Write(w io.Writer, doc *Doc, opts Options) error {
	_, err := io.WriteString(w, Format(doc, opts))
	return err
}

// Format returns the markdown text of doc. The text always ends with
// exactly one newline. Empty option fields take their default.
func Format(doc *Doc, opts Options) string {
	m := mdWriter{opts: opts.withDefaults()}
	return strings.TrimRight(m.flow(doc.Blocks, flowJoin), "\n") + "\n"
}

type mdWriter struct {
	opts Options
}

// flowJoin separates the blocks of the document and of block quotes.
func flowJoin(prev, next Block) string { return "\n\n" }

// itemJoin separates the blocks of a tight list item: only two
// consecutive paragraphs get a blank line between them.
func itemJoin(prev, next Block) string {
	if Is[*Para](prev) && Is[*Para](next) {
		return "\n\n"
	}
	return "\n"
}

// flow writes a sequence of sibling blocks. Blocks with no text are left
// out. A list directly following a list with the same marker switches to
// the other marker so the two are not read back as one list.
func (m *mdWriter) flow(blocks []Block, join func(prev, next Block) string) string {
	var (
		sb   strings.Builder
		prev Block
		last string
	)
	for _, b := range blocks {
		var s string
		if l, ok := b.(*List); ok {
			s, last = m.list(l, last)
		} else {
			s, last = m.block(b), ""
		}
		if s == "" {
			continue
		}
		if prev != nil {
			sb.WriteString(join(prev, b))
		}
		sb.WriteString(s)
		prev = b
	}
	return sb.String()
}

func (m *mdWriter) block(b Block) string {
	switch b := b.(type) {
	case *Para:
		iw := m.inlineWriter(true, false)
		iw.inlines(b.Inlines)
		return iw.String()
	case *Heading:
		iw := m.inlineWriter(false, false)
		iw.inlines(b.Inlines)
		return strings.Repeat("#", b.Level) + " " + escapeClosingHashes(iw.String())
	case *CodeBlock:
		return m.codeBlock(b)
	case *BlockQuote:
		return m.blockQuote(b)
	case *List:
		s, _ := m.list(b, "")
		return s
	case *Table:
		return m.table(b)
	case *ThematicBreak:
		return strings.Repeat(m.opts.RuleStyle, 3)
	}
	return ""
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// longestRun returns the length of the longest run of c in s.
func longestRun(s string, c byte) int {
	longest, run := 0, 0
	for i := 0; i < len(s); i++ {
		if s[i] == c {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 0
		}
	}
	return longest
}

func (m *mdWriter) codeBlock(b *CodeBlock) string {
	lines := strings.Split(b.Text, "\n")
	indented := m.opts.IndentedCode && b.Lang == nil && !isBlank(b.Text) &&
		!isBlank(lines[0]) && !isBlank(lines[len(lines)-1])
	if indented {
		for i, line := range lines {
			if line != "" {
				lines[i] = "    " + line
			}
		}
		return strings.Join(lines, "\n")
	}
	fence := strings.Repeat("`", max(longestRun(b.Text, '`')+1, 3))
	var sb strings.Builder
	sb.WriteString(fence)
	if b.Lang != nil {
		sb.WriteString(*b.Lang)
	}
	sb.WriteByte('\n')
	if b.Text != "" {
		sb.WriteString(b.Text)
		sb.WriteByte('\n')
	}
	sb.WriteString(fence)
	return sb.String()
}

func (m *mdWriter) blockQuote(b *BlockQuote) string {
	inner := m.flow(b.Blocks, flowJoin)
	lines := strings.Split(inner, "\n")
	for i, line := range lines {
		if line == "" {
			lines[i] = ">"
		} else {
			lines[i] = "> " + line
		}
	}
	return strings.Join(lines, "\n")
}

// list writes l and returns the marker character it used. prev is the
// marker of the list immediately before it, if any.
func (m *mdWriter) list(l *List, prev string) (string, string) {
	marker := m.opts.BulletMarker
	if l.Ordered {
		marker = "."
	}
	if marker == prev {
		switch marker {
		case ".":
			marker = ")"
		case "*":
			marker = "-"
		default:
			marker = "*"
		}
	}
	start := l.Start
	if start < 0 {
		start = 1
	}
	items := make([]string, 0, len(l.Items))
	for i, item := range l.Items {
		bullet := marker
		if l.Ordered {
			bullet = strconv.Itoa(start+i) + marker
		}
		items = append(items, m.listItem(item, bullet))
	}
	return strings.Join(items, "\n"), marker
}

// indentWidth is the column at which the content of an item with the
// given bullet starts.
func (m *mdWriter) indentWidth(bullet string) int {
	size := len(bullet) + 1
	if m.opts.ListIndent == IndentTabWidth {
		size = (size + 3) / 4 * 4
	}
	return size
}

func (m *mdWriter) listItem(item *ListItem, bullet string) string {
	size := m.indentWidth(bullet)
	var check string
	if len(item.Blocks) > 0 && Is[*Para](item.Blocks[0]) {
		switch item.Checkbox {
		case Checked:
			check = "[x] "
		case Unchecked:
			check = "[ ] "
		}
	}
	lines := strings.Split(m.flow(item.Blocks, itemJoin), "\n")
	for i, line := range lines {
		switch {
		case i == 0 && line == "":
			lines[i] = bullet
		case i == 0:
			lines[i] = bullet + strings.Repeat(" ", size-len(bullet)) + check + line
		case line != "":
			lines[i] = strings.Repeat(" ", size) + line
		}
	}
	return strings.Join(lines, "\n")
}

// table writes a pipe table. Every column is as wide as its widest cell
// (at least 3); rows shorter than the widest row are padded with empty
// cells. A column takes the alignment of its first aligned cell.
func (m *mdWriter) table(t *Table) string {
	cols := t.Columns()
	if cols == 0 {
		return ""
	}
	cells := make([][]string, len(t.Rows))
	widths := make([]int, cols)
	aligns := make([]Alignment, cols)
	for i := range widths {
		widths[i] = 3
		aligns[i] = AlignNone
	}
	for r, row := range t.Rows {
		cells[r] = make([]string, cols)
		for c, cell := range row.Cells {
			iw := m.inlineWriter(false, true)
			iw.inlines(cell.Inlines)
			cells[r][c] = iw.String()
			widths[c] = max(widths[c], utf8.RuneCountInString(cells[r][c]))
			if aligns[c] == AlignNone && cell.Align != "" {
				aligns[c] = cell.Align
			}
		}
	}
	lines := make([]string, 0, len(t.Rows)+1)
	for r := range cells {
		lines = append(lines, tableLine(cells[r], widths, aligns))
		if r == 0 {
			lines = append(lines, delimiterLine(widths, aligns))
		}
	}
	return strings.Join(lines, "\n")
}

func tableLine(cells []string, widths []int, aligns []Alignment) string {
	var sb strings.Builder
	sb.WriteByte('|')
	for c, s := range cells {
		pad := widths[c] - utf8.RuneCountInString(s)
		left, right := 0, pad
		switch aligns[c] {
		case AlignRight:
			left, right = pad, 0
		case AlignCenter:
			left, right = pad-pad/2, pad/2
		}
		sb.WriteByte(' ')
		sb.WriteString(strings.Repeat(" ", left))
		sb.WriteString(s)
		sb.WriteString(strings.Repeat(" ", right))
		sb.WriteString(" |")
	}
	return sb.String()
}

func delimiterLine(widths []int, aligns []Alignment) string {
	var sb strings.Builder
	sb.WriteByte('|')
	for c, w := range widths {
		sb.WriteByte(' ')
		switch aligns[c] {
		case AlignCenter:
			sb.WriteString(":" + strings.Repeat("-", w-2) + ":")
		case AlignRight:
			sb.WriteString(strings.Repeat("-", w-1) + ":")
		default:
			sb.WriteString(strings.Repeat("-", w))
		}
		sb.WriteString(" |")
	}
	return sb.String()
}

// inlineWriter accumulates one line of inline content. Whitespace runs
// collapse to a single space, across element boundaries too, and the
// line is trimmed at both ends. Only ASCII whitespace collapses; other
// spaces such as U+00A0 are content.
type inlineWriter struct {
	sb    strings.Builder
	opts  Options
	space bool // a space is due before the next output
	lead  bool // whitespace came before the first output
	para  bool // escape block syntax at the start of the line
	table bool // escape pipes
}

func (m *mdWriter) inlineWriter(para, table bool) *inlineWriter {
	return &inlineWriter{opts: m.opts, para: para, table: table}
}

func (w *inlineWriter) String() string { return w.sb.String() }

// raw writes s after any pending space.
func (w *inlineWriter) raw(s string) {
	if w.space {
		if w.sb.Len() > 0 {
			w.sb.WriteByte(' ')
		} else {
			w.lead = true
		}
	}
	w.space = false
	w.sb.WriteString(s)
}

func (w *inlineWriter) inlines(inlines []Inline) {
	for _, in := range inlines {
		w.inline(in)
	}
}

func (w *inlineWriter) inline(in Inline) {
	switch in := in.(type) {
	case *Str:
		w.text(in.Text)
	case *Strong:
		w.wrap(strings.Repeat(w.opts.StrongMarker, 2), in.Inlines)
	case *Emph:
		w.wrap(w.opts.EmphasisMarker, in.Inlines)
	case *Strikeout:
		w.wrap("~~", in.Inlines)
	case *Code:
		w.raw(inlineCode(in.Text, w.table))
	case *Link:
		w.raw("[")
		w.inlines(in.Inlines)
		w.raw("](" + destination(in.Target) + ")")
	case *Image:
		w.raw("![" + escapeText(in.Alt, w.table) + "](" + destination(in.Target) + ")")
	}
}

// wrap writes inlines between two delimiters. Whitespace at either edge
// of the content goes outside the delimiters.
func (w *inlineWriter) wrap(delim string, inlines []Inline) {
	inner := &inlineWriter{opts: w.opts, table: w.table}
	inner.inlines(inlines)
	if inner.lead {
		w.space = true
	}
	w.raw(delim + inner.String() + delim)
	w.space = inner.space
}

// isSpace reports whether r is collapsible whitespace.
func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}

func (w *inlineWriter) text(s string) {
	for s != "" {
		i := strings.IndexFunc(s, isSpace)
		switch {
		case i == 0:
			w.space = true
			s = strings.TrimLeftFunc(s, isSpace)
			continue
		case i < 0:
			i = len(s)
		}
		word := escapeText(s[:i], w.table)
		if w.para && w.sb.Len() == 0 {
			word = escapeLineStart(word)
		}
		w.raw(word)
		s = s[i:]
	}
}

// escapeText backslash-escapes the characters that would otherwise start
// inline syntax.
func escapeText(s string, table bool) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\', '*', '_', '`', '[', ']', '<', '~':
			sb.WriteByte('\\')
		case '|':
			if table {
				sb.WriteByte('\\')
			}
		case '&':
			if isEntity(s[i+1:]) {
				sb.WriteByte('\\')
			}
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}

// isEntity reports whether s, following an ampersand, reads as a
// character reference such as "amp;" or "#38;".
func isEntity(s string) bool {
	s = strings.TrimPrefix(s, "#")
	n := 0
	for n < len(s) && (s[n] < utf8.RuneSelf && (unicode.IsLetter(rune(s[n])) || unicode.IsDigit(rune(s[n])))) {
		n++
	}
	return n > 0 && n < len(s) && s[n] == ';'
}

// escapeLineStart escapes the first word of a paragraph when it would be
// read as a heading, quote, list marker, thematic break or setext
// underline.
func escapeLineStart(word string) string {
	switch {
	case word == "":
		return word
	case word[0] == '#' || word[0] == '>':
		return "\\" + word
	case word == "+":
		return "\\" + word
	case strings.Trim(word, "-") == "" || strings.Trim(word, "=") == "":
		return "\\" + word
	}
	n := 0
	for n < len(word) && word[n] >= '0' && word[n] <= '9' {
		n++
	}
	if n > 0 && n <= 9 && n == len(word)-1 && (word[n] == '.' || word[n] == ')') {
		return word[:n] + "\\" + word[n:]
	}
	return word
}

// escapeClosingHashes escapes a trailing run of '#' that an ATX heading
// would read as its closing sequence.
func escapeClosingHashes(s string) string {
	rest := strings.TrimRight(s, "#")
	if rest == s || (rest != "" && rest[len(rest)-1] != ' ') {
		return s
	}
	return rest + "\\" + s[len(rest):]
}

// inlineCode fences s with a backtick run longer than any inside it. In a
// table cell pipes are escaped, which GFM strips inside code.
func inlineCode(s string, table bool) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if table {
		s = strings.ReplaceAll(s, "|", "\\|")
	}
	fence := strings.Repeat("`", longestRun(s, '`')+1)
	if strings.HasPrefix(s, "`") || strings.HasSuffix(s, "`") ||
		(len(s) > 1 && s[0] == ' ' && s[len(s)-1] == ' ' && strings.Trim(s, " ") != "") {
		s = " " + s + " "
	}
	return fence + s + fence
}

// destination writes a link or image target. Ampersands are escaped, so a
// query string survives being read back; a URL that is empty or contains
// whitespace is wrapped in angle brackets.
func destination(t Target) string {
	var sb strings.Builder
	if t.Url == "" || strings.IndexFunc(t.Url, unicode.IsSpace) >= 0 {
		sb.WriteByte('<')
		for i := 0; i < len(t.Url); i++ {
			switch t.Url[i] {
			case '\\', '<', '>', '&':
				sb.WriteByte('\\')
			}
			sb.WriteByte(t.Url[i])
		}
		sb.WriteByte('>')
	} else {
		for i := 0; i < len(t.Url); i++ {
			switch t.Url[i] {
			case '\\', '(', ')', '&':
				sb.WriteByte('\\')
			}
			sb.WriteByte(t.Url[i])
		}
	}
	if t.Title != "" {
		sb.WriteString(" \"")
		for i := 0; i < len(t.Title); i++ {
			switch t.Title[i] {
			case '\\', '"':
				sb.WriteByte('\\')
			}
			sb.WriteByte(t.Title[i])
		}
		sb.WriteByte('"')
	}
	return sb.String()
}
