package particles

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidColor = errors.New("particles: invalid hex color")

// Color is a CSS hex color such as "#8B5CF6".
type Color string

// RGB decodes the color into its components. Short "#abc" forms are expanded.
func (c Color) RGB() (r, g, b uint8, err error) {
	s := strings.TrimPrefix(string(c), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidColor, string(c))
	}
	var v [3]uint8
	for i := range v {
		hi, ok1 := hexNibble(s[2*i])
		lo, ok2 := hexNibble(s[2*i+1])
		if !ok1 || !ok2 {
			return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidColor, string(c))
		}
		v[i] = hi<<4 | lo
	}
	return v[0], v[1], v[2], nil
}

func hexNibble(b byte) (uint8, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	}
	return 0, false
}

// Palette is the ordered set of colors particles are drawn from.
type Palette []Color

// DefaultPalette is violet, pink and indigo.
var DefaultPalette = Palette{"#8B5CF6", "#EC4899", "#6366F1"}

func (p Palette) Contains(c Color) bool {
	for _, pc := range p {
		if pc == c {
			return true
		}
	}
	return false
}

// Validate checks every entry parses as a hex color. Initialize does not
// require it; config loading does.
func (p Palette) Validate() error {
	if len(p) == 0 {
		return errors.New("particles: empty palette")
	}
	for _, c := range p {
		if _, _, _, err := c.RGB(); err != nil {
			return err
		}
	}
	return nil
}

// ParsePalette splits a comma separated list of hex colors.
func ParsePalette(s string) (Palette, error) {
	var p Palette
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if !strings.HasPrefix(part, "#") {
			part = "#" + part
		}
		p = append(p, Color(part))
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p Palette) Strings() []string {
	out := make([]string, len(p))
	for i, c := range p {
		out[i] = string(c)
	}
	return out
}
