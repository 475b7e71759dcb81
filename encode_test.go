package mdtree

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendQuote(t *testing.T) {
	var tests = []struct {
		str, want string
	}{
		{"", `""`},
		{"a", `"a"`},
		{"\"", `"\""`},
		{"a\\b", `"a\\b"`},
		{"line\nnext\ttab", `"line\nnext\ttab"`},
		{"\x01", `"\u0001"`},
		{"héllo ✅", `"héllo ✅"`},
		{"bad\xff", "\"bad�\""},
	}
	for i := range tests {
		r := appendQuote(nil, tests[i].str)
		v := []byte(tests[i].want)
		if !bytes.Equal(r, v) {
			t.Errorf("expected [%s], got [%s]", v, r)
		}
	}
}

func TestWriteJSON(t *testing.T) {
	lang := "go"
	doc := &Doc{Blocks: []Block{
		&Heading{Level: 2, Inlines: []Inline{&Str{"Title"}}},
		&Para{Inlines: []Inline{
			&Emph{[]Inline{&Str{"e"}}},
			&Link{Inlines: []Inline{&Str{"l"}}, Target: Target{Url: "u", Title: "t"}},
			&Image{Alt: "a", Target: Target{Url: "i.png"}},
		}},
		&CodeBlock{Lang: &lang, Text: "x"},
		&CodeBlock{Text: "y"},
		&List{Ordered: true, Start: 3, Items: []*ListItem{
			{Checkbox: Checked, Blocks: []Block{&Para{[]Inline{&Str{"done"}}}}},
		}},
		&Table{Rows: []*TableRow{
			{Cells: []*TableCell{{Header: true, Align: AlignCenter, Inlines: []Inline{&Code{"c"}}}}},
		}},
		HR,
	}}

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, doc))
	assert.True(t, json.Valid(buf.Bytes()))
	assert.Equal(t, `{"blocks":[`+
		`{"t":"Heading","c":[2,[{"t":"Str","c":"Title"}]]},`+
		`{"t":"Para","c":[{"t":"Emph","c":[{"t":"Str","c":"e"}]},`+
		`{"t":"Link","c":[[{"t":"Str","c":"l"}],["u","t"]]},`+
		`{"t":"Image","c":["a",["i.png",""]]}]},`+
		`{"t":"CodeBlock","c":["go","x"]},`+
		`{"t":"CodeBlock","c":[null,"y"]},`+
		`{"t":"List","c":[true,3,[[{"t":"Checked"},[{"t":"Para","c":[{"t":"Str","c":"done"}]}]]]]},`+
		`{"t":"Table","c":[[[true,{"t":"center"},[{"t":"Code","c":"c"}]]]]},`+
		`{"t":"ThematicBreak"}`+
		`]}`, buf.String())
}

func TestWriteJSONEmptyDoc(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, &Doc{}))
	assert.Equal(t, `{"blocks":[]}`, buf.String())
}
