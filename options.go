package mdtree

import (
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// List indentation styles.
const (
	IndentOneSpace = "one-space" // content starts one space after the marker
	IndentTabWidth = "tab-width" // content starts at the next multiple of 4
)

// Options selects the markdown style the writer produces.
type Options struct {
	BulletMarker   string `yaml:"bulletMarker"`   // '-', '*' or '+'
	ListIndent     string `yaml:"listIndent"`     // IndentOneSpace or IndentTabWidth
	RuleStyle      string `yaml:"ruleStyle"`      // '-', '*' or '_'
	IndentedCode   bool   `yaml:"-"`              // indent code blocks without a language; read as useFences
	EmphasisMarker string `yaml:"emphasisMarker"` // '*' or '_'
	StrongMarker   string `yaml:"strongMarker"`   // '*' or '_'
}

// DefaultOptions returns the default style.
func DefaultOptions() Options {
	return Options{
		BulletMarker:   "-",
		ListIndent:     IndentOneSpace,
		RuleStyle:      "-",
		EmphasisMarker: "*",
		StrongMarker:   "*",
	}
}

// Returns Options with a bullet marker.
func (o Options) WithBullet(marker string) Options {
	o.BulletMarker = marker
	return o
}

func (o Options) WithListIndent(style string) Options {
	o.ListIndent = style
	return o
}

func (o Options) WithRule(style string) Options {
	o.RuleStyle = style
	return o
}

func (o Options) WithFences(fences bool) Options {
	o.IndentedCode = !fences
	return o
}

func (o Options) WithEmphasis(marker string) Options {
	o.EmphasisMarker = marker
	return o
}

func (o Options) WithStrong(marker string) Options {
	o.StrongMarker = marker
	return o
}

// withDefaults fills empty marker fields with their default.
func (o Options) withDefaults() Options {
	def := DefaultOptions()
	for _, f := range []struct{ v, def *string }{
		{&o.BulletMarker, &def.BulletMarker},
		{&o.ListIndent, &def.ListIndent},
		{&o.RuleStyle, &def.RuleStyle},
		{&o.EmphasisMarker, &def.EmphasisMarker},
		{&o.StrongMarker, &def.StrongMarker},
	} {
		if *f.v == "" {
			*f.v = *f.def
		}
	}
	return o
}

func oneOf(field, value string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return &OptionError{Field: field, Value: value}
}

// Validate reports the first unrecognized option value.
func (o Options) Validate() error {
	for _, err := range []error{
		oneOf("bulletMarker", o.BulletMarker, "-", "*", "+"),
		oneOf("listIndent", o.ListIndent, IndentOneSpace, IndentTabWidth),
		oneOf("ruleStyle", o.RuleStyle, "-", "*", "_"),
		oneOf("emphasisMarker", o.EmphasisMarker, "*", "_"),
		oneOf("strongMarker", o.StrongMarker, "*", "_"),
	} {
		if err != nil {
			return err
		}
	}
	return nil
}

// UnmarshalYAML decodes the marker fields and maps the useFences key onto
// IndentedCode.
func (o *Options) UnmarshalYAML(value *yaml.Node) error {
	type plain Options
	if err := value.Decode((*plain)(o)); err != nil {
		return err
	}
	var fences struct {
		UseFences *bool `yaml:"useFences"`
	}
	if err := value.Decode(&fences); err != nil {
		return err
	}
	if fences.UseFences != nil {
		o.IndentedCode = !*fences.UseFences
	}
	return nil
}

// LoadOptions reads a YAML (or JSON) style document over the defaults.
// Omitted keys keep their default; unknown keys are ignored. The result is
// validated.
func LoadOptions(r io.Reader) (Options, error) {
	opts := DefaultOptions()
	if err := yaml.NewDecoder(r).Decode(&opts); err != nil && err != io.EOF {
		return Options{}, errors.Wrap(err, "could not decode options")
	}
	if err := opts.Validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}
