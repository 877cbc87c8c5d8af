// Package colorutil holds the WCAG contrast math used to keep the summary
// colors readable on light and dark terminals.
package colorutil

import "math"

type RGB struct {
	R uint8
	G uint8
	B uint8
}

var (
	Black = RGB{0, 0, 0}
	White = RGB{255, 255, 255}
)

func srgbToLinear(c float64) float64 {
	if c <= 0.04045 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

// Luminance は相対輝度 (0..1)
func Luminance(c RGB) float64 {
	r := srgbToLinear(float64(c.R) / 255.0)
	g := srgbToLinear(float64(c.G) / 255.0)
	b := srgbToLinear(float64(c.B) / 255.0)
	return 0.2126*r + 0.7152*g + 0.0722*b
}

func ContrastRatio(fg, bg RGB) float64 {
	l1, l2 := Luminance(fg), Luminance(bg)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

// EnsureContrast moves fg toward black on light backgrounds, or toward white
// on dark ones, in 10% steps until minRatio (default 4.5) is reached. The hue
// is kept as long as possible; the last step is pure black or white.
func EnsureContrast(fg, bg RGB, minRatio float64) RGB {
	if minRatio <= 0 {
		minRatio = 4.5
	}
	target := White
	if Luminance(bg) > 0.5 {
		target = Black
	}
	c := fg
	for step := 1; step <= 10 && ContrastRatio(c, bg) < minRatio; step++ {
		t := float64(step) / 10
		c = RGB{mix(fg.R, target.R, t), mix(fg.G, target.G, t), mix(fg.B, target.B, t)}
	}
	return c
}

func mix(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
}

// ANSI256 maps c onto the xterm 256-color cube, using the gray ramp for
// neutral colors.
func ANSI256(c RGB) int {
	if c.R == c.G && c.G == c.B {
		if c.R < 8 {
			return 16
		}
		if c.R > 248 {
			return 231
		}
		return 232 + (int(c.R)-8)*24/247
	}
	return 16 + 36*(int(c.R)*5/255) + 6*(int(c.G)*5/255) + int(c.B)*5/255
}
