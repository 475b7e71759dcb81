package mdtree

import (
	"math"
)

// Props is the free-form property map of an element node.
//
// The getters below are strict about types: a value of the wrong type is
// reported as a *PropertyError instead of being coerced. A missing key (or
// a nil value) yields the default.
type Props map[string]any

// Clone returns a shallow copy of p.
func (p Props) Clone() Props {
	if p == nil {
		return nil
	}
	c := make(Props, len(p))
	for k, v := range p {
		c[k] = v
	}
	return c
}

func (p Props) lookup(key string) (any, bool) {
	v, ok := p[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// String returns the string stored under key, or def when absent.
func (p Props) String(key, def string) (string, error) {
	s, ok, err := p.MaybeString(key)
	if err != nil || !ok {
		return def, err
	}
	return s, nil
}

// MaybeString returns the string stored under key and whether it was set.
func (p Props) MaybeString(key string) (string, bool, error) {
	v, ok := p.lookup(key)
	if !ok {
		return "", false, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", false, &PropertyError{Key: key, Want: "string", Got: v}
	}
	return s, true, nil
}

// Bool returns the boolean stored under key, or def when absent.
func (p Props) Bool(key string, def bool) (bool, error) {
	b, ok, err := p.MaybeBool(key)
	if err != nil || !ok {
		return def, err
	}
	return b, nil
}

// MaybeBool returns the boolean stored under key and whether it was set.
func (p Props) MaybeBool(key string) (bool, bool, error) {
	v, ok := p.lookup(key)
	if !ok {
		return false, false, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, false, &PropertyError{Key: key, Want: "boolean", Got: v}
	}
	return b, true, nil
}

// Number returns the number stored under key, or def when absent. Any Go
// integer or float type is accepted; NaN is not.
func (p Props) Number(key string, def float64) (float64, error) {
	n, ok, err := p.MaybeNumber(key)
	if err != nil || !ok {
		return def, err
	}
	return n, nil
}

// MaybeNumber returns the number stored under key and whether it was set.
func (p Props) MaybeNumber(key string) (float64, bool, error) {
	v, ok := p.lookup(key)
	if !ok {
		return 0, false, nil
	}
	var n float64
	switch v := v.(type) {
	case int:
		n = float64(v)
	case int8:
		n = float64(v)
	case int16:
		n = float64(v)
	case int32:
		n = float64(v)
	case int64:
		n = float64(v)
	case uint:
		n = float64(v)
	case uint8:
		n = float64(v)
	case uint16:
		n = float64(v)
	case uint32:
		n = float64(v)
	case uint64:
		n = float64(v)
	case float32:
		n = float64(v)
	case float64:
		n = v
	default:
		return 0, false, &PropertyError{Key: key, Want: "number", Got: v}
	}
	if math.IsNaN(n) {
		return 0, false, &PropertyError{Key: key, Want: "number", Got: v}
	}
	return n, true, nil
}

// HeadingDepth returns the heading depth stored under key. A missing
// value, a fractional value or one outside 1..6 yields 1; only a
// non-numeric value is an error.
func (p Props) HeadingDepth(key string) (int, error) {
	n, ok, err := p.MaybeNumber(key)
	if err != nil {
		return 1, err
	}
	if !ok || n != math.Trunc(n) || n < 1 || n > 6 {
		return 1, nil
	}
	return int(n), nil
}

// maxListStart is the largest ordered list number markdown accepts (nine
// digits).
const maxListStart = 999999999

// ListStart returns the first number of an ordered list stored under key.
// A missing value, a fractional value or one outside 0..999999999 yields
// 1; only a non-numeric value is an error.
func (p Props) ListStart(key string) (int, error) {
	n, ok, err := p.MaybeNumber(key)
	if err != nil {
		return 1, err
	}
	if !ok || n != math.Trunc(n) || n < 0 || n > maxListStart {
		return 1, nil
	}
	return int(n), nil
}

// Alignment returns the table cell alignment stored under key.
func (p Props) Alignment(key string) (Alignment, error) {
	s, ok, err := p.MaybeString(key)
	if err != nil || !ok {
		return AlignNone, err
	}
	switch a := Alignment(s); a {
	case AlignNone, AlignLeft, AlignCenter, AlignRight:
		return a, nil
	case "":
		return AlignNone, nil
	}
	return AlignNone, &PropertyError{Key: key, Want: "one of left, center, right, none", Got: s}
}
