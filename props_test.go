package mdtree

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestPropsString(t *testing.T) {
	p := Props{"url": "https://example.com", "n": 3, "nil": nil}

	s, err := p.String("url", "")
	assert.NoError(t, err)
	assert.Equal(t, "https://example.com", s)

	s, err = p.String("missing", "def")
	assert.NoError(t, err)
	assert.Equal(t, "def", s)

	s, err = p.String("nil", "def")
	assert.NoError(t, err)
	assert.Equal(t, "def", s)

	_, err = p.String("n", "")
	assert.True(t, errors.Is(err, ErrInvalidProperty))
	assert.EqualError(t, err, "n: expected string, got int(3)")

	_, ok, err := p.MaybeString("missing")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestPropsBool(t *testing.T) {
	p := Props{"checked": false, "ordered": "yes"}

	b, ok, err := p.MaybeBool("checked")
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.False(t, b)

	_, ok, err = p.MaybeBool("missing")
	assert.NoError(t, err)
	assert.False(t, ok)

	_, err = p.Bool("ordered", false)
	assert.EqualError(t, err, `ordered: expected boolean, got string "yes"`)
}

func TestPropsNumber(t *testing.T) {
	var tests = []struct {
		value any
		want  float64
		err   bool
	}{
		{1, 1, false},
		{int64(7), 7, false},
		{uint8(2), 2, false},
		{float32(1.5), 1.5, false},
		{2.25, 2.25, false},
		{"2", 0, true},
		{true, 0, true},
		{math.NaN(), 0, true},
	}
	for _, tt := range tests {
		n, err := Props{"k": tt.value}.Number("k", 0)
		if tt.err {
			assert.Error(t, err, "%#v", tt.value)
			continue
		}
		assert.NoError(t, err, "%#v", tt.value)
		assert.Equal(t, tt.want, n, "%#v", tt.value)
	}
}

func TestPropsHeadingDepth(t *testing.T) {
	var tests = []struct {
		value any
		want  int
		err   bool
	}{
		{nil, 1, false},
		{1, 1, false},
		{3, 3, false},
		{6.0, 6, false},
		{0, 1, false},
		{7, 1, false},
		{2.5, 1, false},
		{-1, 1, false},
		{"2", 1, true},
	}
	for _, tt := range tests {
		d, err := Props{"depth": tt.value}.HeadingDepth("depth")
		assert.Equal(t, tt.err, err != nil, "%#v", tt.value)
		assert.Equal(t, tt.want, d, "%#v", tt.value)
	}
}

func TestPropsAlignment(t *testing.T) {
	for in, want := range map[any]Alignment{
		nil:      AlignNone,
		"":       AlignNone,
		"none":   AlignNone,
		"left":   AlignLeft,
		"center": AlignCenter,
		"right":  AlignRight,
	} {
		a, err := Props{"align": in}.Alignment("align")
		assert.NoError(t, err)
		assert.Equal(t, want, a)
	}

	_, err := Props{"align": "middle"}.Alignment("align")
	assert.True(t, errors.Is(err, ErrInvalidProperty))
	_, err = Props{"align": 1}.Alignment("align")
	assert.True(t, errors.Is(err, ErrInvalidProperty))
}

func TestPropsClone(t *testing.T) {
	var nilProps Props
	assert.Nil(t, nilProps.Clone())

	p := Props{"a": 1}
	c := p.Clone()
	c["a"] = 2
	assert.Equal(t, 1, p["a"])
}

func TestPropsListStart(t *testing.T) {
	var tests = []struct {
		value any
		want  int
		err   bool
	}{
		{nil, 1, false},
		{0, 0, false},
		{9, 9, false},
		{12.0, 12, false},
		{2.5, 1, false},
		{-3, 1, false},
		{1e12, 1, false},
		{math.Inf(1), 1, false},
		{"3", 1, true},
	}
	for _, tt := range tests {
		n, err := Props{"start": tt.value}.ListStart("start")
		assert.Equal(t, tt.err, err != nil, "%#v", tt.value)
		assert.Equal(t, tt.want, n, "%#v", tt.value)
	}
}
