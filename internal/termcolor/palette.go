package termcolor

import (
	"github.com/phyten/codecount/internal/classify"
	"github.com/phyten/codecount/internal/colorutil"
)

// Palette holds the styles of the count summary for one terminal.
type Palette struct {
	Header  Style
	Code    Style
	Comment Style
	Blank   Style
	Error   Style
	Gain    Style
	Loss    Style
}

var (
	codeRGB    = colorutil.RGB{R: 34, G: 197, B: 94}
	commentRGB = colorutil.RGB{R: 56, G: 189, B: 248}
	blankRGB   = colorutil.RGB{R: 156, G: 163, B: 175}
	errorRGB   = colorutil.RGB{R: 239, G: 68, B: 68}
)

// NewPalette picks colors for profile, darkening them on light backgrounds
// until they reach a 4.5:1 contrast ratio.
func NewPalette(profile Profile, scheme Scheme) Palette {
	bg := scheme.background()
	pick := func(c colorutil.RGB, basic int) Style {
		switch profile {
		case ProfileTrueColor:
			fg := colorutil.EnsureContrast(c, bg, 4.5)
			v := [3]uint8{fg.R, fg.G, fg.B}
			return Style{FGTrue: &v}
		case ProfileANSI256:
			idx := colorutil.ANSI256(colorutil.EnsureContrast(c, bg, 4.5))
			return Style{FG256: &idx}
		default:
			return Style{FGBasic: &basic}
		}
	}
	p := Palette{
		Header:  Style{Bold: true, Underline: true},
		Code:    pick(codeRGB, 2),
		Comment: pick(commentRGB, 6),
		Blank:   pick(blankRGB, 7),
		Error:   pick(errorRGB, 1),
	}
	p.Blank.Dim = profile == ProfileBasic8
	p.Error.Bold = true
	p.Gain = p.Code
	p.Loss = p.Error
	return p
}

// KindStyle returns the style for a line kind.
func (p Palette) KindStyle(k classify.LineKind) Style {
	switch k {
	case classify.Code:
		return p.Code
	case classify.Comment:
		return p.Comment
	default:
		return p.Blank
	}
}

// DeltaStyle colors a diff value: gains like code, losses like errors.
func (p Palette) DeltaStyle(n int) Style {
	switch {
	case n > 0:
		return p.Gain
	case n < 0:
		return p.Loss
	default:
		return Style{}
	}
}
