package termcolor

import (
	"strconv"
	"strings"

	"github.com/phyten/codecount/internal/colorutil"
)

type Scheme int

const (
	SchemeDark Scheme = iota
	SchemeLight
)

// DetectScheme guesses the terminal background from COLORFGBG, falling back
// to a TERM name containing "light". Dark is the default.
func DetectScheme(env map[string]string) Scheme {
	if raw := strings.TrimSpace(env["COLORFGBG"]); raw != "" {
		parts := strings.Split(raw, ";")
		if bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1])); err == nil {
			if bg == 7 || bg >= 9 {
				return SchemeLight
			}
			return SchemeDark
		}
	}
	if strings.Contains(strings.ToLower(env["TERM"]), "light") {
		return SchemeLight
	}
	return SchemeDark
}

func (s Scheme) background() colorutil.RGB {
	if s == SchemeLight {
		return colorutil.RGB{R: 249, G: 250, B: 251}
	}
	return colorutil.RGB{R: 17, G: 24, B: 39}
}
