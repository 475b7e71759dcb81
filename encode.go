package mdtree

import (
	"io"
	"strconv"
	"unicode/utf8"
)

// The JSON dump uses the pandoc-style tagged encoding: every tagged
// element becomes {"t":Tag,"c":contents}; elements without contents are
// written as {"t":Tag}.

type writable interface {
	write(io.Writer) error
}

// interface check

var _ []writable = []writable{
	&Doc{},

	&Str{},
	&Emph{},
	&Strong{},
	&Strikeout{},
	&Code{},
	&Link{},
	&Image{},

	&Para{},
	&Heading{},
	&CodeBlock{},
	&BlockQuote{},
	&List{},
	&ListItem{},
	&Table{},
	&TableRow{},
	&TableCell{},
	&ThematicBreak{},
}

func (c Checkbox) String() string {
	switch c {
	case Unchecked:
		return "Unchecked"
	case Checked:
		return "Checked"
	}
	return "NoCheckbox"
}

func (s *Str) write(w io.Writer) error {
	return withTag(s, str(s.Text)).write(w)
}

func (e *Emph) write(w io.Writer) error {
	return withTag(e, list(e.Inlines)).write(w)
}

func (s *Strong) write(w io.Writer) error {
	return withTag(s, list(s.Inlines)).write(w)
}

func (s *Strikeout) write(w io.Writer) error {
	return withTag(s, list(s.Inlines)).write(w)
}

func (c *Code) write(w io.Writer) error {
	return withTag(c, str(c.Text)).write(w)
}

func (t *Target) write(w io.Writer) error {
	return tuple2(str(t.Url), str(t.Title)).write(w)
}

func (l *Link) write(w io.Writer) error {
	return withTag(l, tuple2(list(l.Inlines), &l.Target)).write(w)
}

func (i *Image) write(w io.Writer) error {
	return withTag(i, tuple2(str(i.Alt), &i.Target)).write(w)
}

func (p *Para) write(w io.Writer) error {
	return withTag(p, list(p.Inlines)).write(w)
}

func (h *Heading) write(w io.Writer) error {
	return withTag(h, tuple2(num(int64(h.Level)), list(h.Inlines))).write(w)
}

func (b *CodeBlock) write(w io.Writer) error {
	return withTag(b, tuple2(maybeStr(b.Lang), str(b.Text))).write(w)
}

func (b *BlockQuote) write(w io.Writer) error {
	return withTag(b, list(b.Blocks)).write(w)
}

func (i *ListItem) write(w io.Writer) error {
	return tuple2(taggedStr(i.Checkbox.String()), list(i.Blocks)).write(w)
}

func (l *List) write(w io.Writer) error {
	return withTag(l, tuple3(wbool(l.Ordered), num(int64(l.Start)), list(l.Items))).write(w)
}

func (c *TableCell) write(w io.Writer) error {
	return tuple3(wbool(c.Header), taggedStr(c.Align), list(c.Inlines)).write(w)
}

func (r *TableRow) write(w io.Writer) error {
	return list(r.Cells).write(w)
}

func (t *Table) write(w io.Writer) error {
	return withTag(t, list(t.Rows)).write(w)
}

func (b *ThematicBreak) write(w io.Writer) error {
	return taggedStr(b.Tag()).write(w)
}

func (d *Doc) write(w io.Writer) error {
	if err := writeDelim(w, '{'); err != nil {
		return err
	}
	if err := writeKey(w, "blocks"); err != nil {
		return err
	}
	if err := list(d.Blocks).write(w); err != nil {
		return err
	}
	return writeDelim(w, '}')
}

// -------------------

func taggedStr[T ~string](t T) tstr { return tstr(t) }

type tstr string

func (s tstr) write(w io.Writer) error {
	if _, err := w.Write(appendQuote([]byte("{\"t\":"), string(s))); err != nil {
		return err
	}
	return writeDelim(w, '}')
}

func num(n int64) wnum { return wnum(n) }

type wnum int64

func (n wnum) write(w io.Writer) error {
	_, err := w.Write(strconv.AppendInt(nil, int64(n), 10))
	return err
}

type wbool bool

func (b wbool) write(w io.Writer) error {
	_, err := w.Write(strconv.AppendBool(nil, bool(b)))
	return err
}

func str[T ~string](s T) wstr { return wstr(s) }

type wstr string

func (s wstr) write(w io.Writer) error {
	_, err := w.Write(appendQuote(nil, string(s)))
	return err
}

// maybeStr writes null for a nil string.
func maybeStr(s *string) wmaybe { return wmaybe{s} }

type wmaybe struct{ s *string }

func (m wmaybe) write(w io.Writer) error {
	if m.s == nil {
		_, err := w.Write([]byte("null"))
		return err
	}
	return str(*m.s).write(w)
}

// tuples
type t2[T1, T2 writable] struct {
	e1 T1
	e2 T2
}

func tuple2[T1, T2 writable](e1 T1, e2 T2) t2[T1, T2] {
	return t2[T1, T2]{e1, e2}
}

func (t t2[T1, T2]) write(w io.Writer) error {
	if err := writeDelim(w, '['); err != nil {
		return err
	}
	if err := t.e1.write(w); err != nil {
		return err
	}
	if err := writeDelim(w, ','); err != nil {
		return err
	}
	if err := t.e2.write(w); err != nil {
		return err
	}
	return writeDelim(w, ']')
}

type t3[T1, T2, T3 writable] struct {
	e1 T1
	e2 T2
	e3 T3
}

func tuple3[T1, T2, T3 writable](e1 T1, e2 T2, e3 T3) t3[T1, T2, T3] {
	return t3[T1, T2, T3]{e1, e2, e3}
}

func (t t3[T1, T2, T3]) write(w io.Writer) error {
	if err := writeDelim(w, '['); err != nil {
		return err
	}
	for i, e := range []writable{t.e1, t.e2, t.e3} {
		if i > 0 {
			if err := writeDelim(w, ','); err != nil {
				return err
			}
		}
		if err := e.write(w); err != nil {
			return err
		}
	}
	return writeDelim(w, ']')
}

func withTag[T Tagged, C writable](e T, c C) tagged[C] {
	return tagged[C]{t: e.Tag(), c: c}
}

type tagged[C writable] struct {
	t Tag
	c C
}

func (e tagged[C]) write(w io.Writer) error {
	if _, err := w.Write(appendQuote([]byte("{\"t\":"), string(e.t))); err != nil {
		return err
	}
	if _, err := w.Write([]byte(",\"c\":")); err != nil {
		return err
	}
	if err := e.c.write(w); err != nil {
		return err
	}
	return writeDelim(w, '}')
}

func list[T writable](lst []T) wlist[T] {
	return wlist[T](lst)
}

type wlist[T writable] []T

func (lst wlist[T]) write(w io.Writer) error {
	if err := writeDelim(w, '['); err != nil {
		return err
	}
	for i := range lst {
		if i > 0 {
			if err := writeDelim(w, ','); err != nil {
				return err
			}
		}
		if err := lst[i].write(w); err != nil {
			return err
		}
	}
	return writeDelim(w, ']')
}

func writeDelim(w io.Writer, b byte) error {
	_, err := w.Write([]byte{b})
	return err
}

func writeKey(w io.Writer, name string) error {
	if _, err := w.Write(appendQuote(nil, name)); err != nil {
		return err
	}
	return writeDelim(w, ':')
}

// appendQuote appends s as a JSON string literal. Control characters
// without a short escape are written as \u00XX; invalid UTF-8 becomes
// U+FFFD.
func appendQuote(b []byte, s string) []byte {
	const hex = "0123456789abcdef"
	b = append(b, '"')
	for i := 0; i < len(s); {
		c := s[i]
		if c >= 0x20 && c != '"' && c != '\\' && c < utf8.RuneSelf {
			b = append(b, c)
			i++
			continue
		}
		if c < utf8.RuneSelf {
			switch c {
			case '"', '\\':
				b = append(b, '\\', c)
			case '\b':
				b = append(b, '\\', 'b')
			case '\f':
				b = append(b, '\\', 'f')
			case '\n':
				b = append(b, '\\', 'n')
			case '\r':
				b = append(b, '\\', 'r')
			case '\t':
				b = append(b, '\\', 't')
			default:
				b = append(b, '\\', 'u', '0', '0', hex[c>>4], hex[c&0xf])
			}
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		b = utf8.AppendRune(b, r)
		i += size
	}
	return append(b, '"')
}

// WriteJSON writes the tagged JSON encoding of elt to w.
//
// Example:
//
//	var doc *mdtree.Doc
//	...
//	if err := mdtree.WriteJSON(os.Stdout, doc); err != nil {
//		log.Fatal(err)
//	}
func WriteJSON[E Element](w io.Writer, elt E) error {
	return elt.write(w)
}
