package lang

import (
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/phyten/codecount/internal/classify"
)

// Language is a registered rule set together with its compiled classifier.
type Language struct {
	RuleSet
	classifier *classify.Classifier
}

// Classify counts the lines of text with the language's rules.
func (l *Language) Classify(text string) classify.Count {
	return l.classifier.Classify(text)
}

func (l *Language) Classifier() *classify.Classifier { return l.classifier }

// Registry is the read-only lookup table built by Builder. It is safe for
// concurrent use.
type Registry struct {
	byID       map[string]*Language
	byAlias    map[string]*Language
	byFold     map[string]*Language
	byExt      map[string]*Language
	byFilename map[string]*Language
}

// ResolvePath looks p up by exact path, then basename, then extension. The
// longest dotted suffix is tried first, so "x.d.ts" checks ".d.ts" before
// ".ts". Matching is case-sensitive.
func (r *Registry) ResolvePath(p string) (*Language, bool) {
	if r == nil || p == "" {
		return nil, false
	}
	if l, ok := r.byExt[p]; ok {
		return l, true
	}
	slashed := filepath.ToSlash(p)
	if slashed != p {
		if l, ok := r.byExt[slashed]; ok {
			return l, true
		}
	}
	base := path.Base(slashed)
	if l, ok := r.byFilename[base]; ok {
		return l, true
	}
	for i := 0; i < len(base); i++ {
		if base[i] != '.' {
			continue
		}
		if l, ok := r.byExt[base[i:]]; ok {
			return l, true
		}
	}
	return nil, false
}

// ResolveID looks id up as a canonical identifier, then as an alias, then
// case-insensitively.
func (r *Registry) ResolveID(id string) (*Language, bool) {
	if r == nil {
		return nil, false
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, false
	}
	if l, ok := r.byID[id]; ok {
		return l, true
	}
	if l, ok := r.byAlias[id]; ok {
		return l, true
	}
	l, ok := r.byFold[strings.ToLower(id)]
	return l, ok
}

// Resolve prefers an explicit language id and falls back to the path.
func (r *Registry) Resolve(id, p string) (*Language, bool) {
	if l, ok := r.ResolveID(id); ok {
		return l, true
	}
	return r.ResolvePath(p)
}

// Languages returns every registered language sorted by id.
func (r *Registry) Languages() []*Language {
	if r == nil {
		return nil
	}
	out := make([]*Language, 0, len(r.byID))
	for _, l := range r.byID {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.byID)
}
