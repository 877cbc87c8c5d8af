package config

import (
	"github.com/phyten/codecount/internal/classify"
	"github.com/phyten/codecount/internal/lang"
)

func toPairs(in [][2]string) []classify.Pair {
	if len(in) == 0 {
		return nil
	}
	out := make([]classify.Pair, 0, len(in))
	for _, p := range in {
		out = append(out, classify.Pair{Begin: p[0], End: p[1]})
	}
	return out
}

func (lc LanguageConfig) RuleSet() lang.RuleSet {
	return lang.RuleSet{
		ID: lc.ID,
		Grammar: classify.Grammar{
			LineComments:  cloneStrings(lc.LineComments),
			BlockComments: toPairs(lc.BlockComments),
			BlockStrings:  toPairs(lc.BlockStrings),
		},
		Aliases:    cloneStrings(lc.Aliases),
		Extensions: cloneStrings(lc.Extensions),
		Filenames:  cloneStrings(lc.Filenames),
	}
}

// ApplyLanguages feeds the file-only sections into b: `languages` entries are
// added (merged by id), and every `block_comment` entry adds its patterns as
// block strings to each language named in types.
func (c Config) ApplyLanguages(b *lang.Builder) *lang.Builder {
	for _, lc := range c.Languages {
		b.Add(lc.RuleSet())
	}
	for _, bc := range c.BlockComment {
		patch := lang.RuleSet{Grammar: classify.Grammar{BlockStrings: toPairs(bc.Patterns)}}
		for _, typ := range bc.Types {
			b.Override(typ, patch)
		}
	}
	return b
}
