package mdtree

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOptions(t *testing.T) {
	var tests = []struct {
		name string
		in   string
		want Options
	}{
		{"empty", "", DefaultOptions()},
		{"yaml", "bulletMarker: '*'\nlistIndent: tab-width\nuseFences: false\n", DefaultOptions().
			WithBullet("*").WithListIndent(IndentTabWidth).WithFences(false)},
		{"json", `{"ruleStyle": "_", "emphasisMarker": "_", "strongMarker": "_"}`, DefaultOptions().
			WithRule("_").WithEmphasis("_").WithStrong("_")},
		{"unknown keys", "color: red\nbulletMarker: +\n", DefaultOptions().WithBullet("+")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := LoadOptions(strings.NewReader(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.want, opts)
		})
	}
}

func TestLoadOptionsErrors(t *testing.T) {
	_, err := LoadOptions(strings.NewReader("bulletMarker: '#'\n"))
	assert.True(t, errors.Is(err, ErrInvalidOptions))
	assert.EqualError(t, err, `option bulletMarker: unrecognized value "#"`)

	_, err = LoadOptions(strings.NewReader("useFences: [1, 2]\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "could not decode options")
}

func TestOptionsValidate(t *testing.T) {
	assert.NoError(t, DefaultOptions().Validate())
	assert.Error(t, Options{}.Validate())
	assert.NoError(t, Options{}.withDefaults().Validate())

	var oe *OptionError
	err := DefaultOptions().WithListIndent("mixed").Validate()
	require.True(t, errors.As(err, &oe))
	assert.Equal(t, "listIndent", oe.Field)
	assert.Equal(t, "mixed", oe.Value)
}

func TestZeroOptionsFenceCode(t *testing.T) {
	code := &Doc{Blocks: []Block{&CodeBlock{Text: "x"}}}
	assert.Equal(t, "```\nx\n```\n", Format(code, Options{}))
	assert.Equal(t, "    x\n", Format(code, Options{IndentedCode: true}))

	opts, err := LoadOptions(strings.NewReader("useFences: false\n"))
	require.NoError(t, err)
	assert.True(t, opts.IndentedCode)

	opts, err = LoadOptions(strings.NewReader(`{"useFences": true, "bulletMarker": "*"}`))
	require.NoError(t, err)
	assert.False(t, opts.IndentedCode)
	assert.Equal(t, "*", opts.BulletMarker)
}
