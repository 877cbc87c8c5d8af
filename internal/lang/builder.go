package lang

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/phyten/codecount/internal/classify"
)

// ErrUnknownLanguage is returned by Build when an override names a language
// that no source defined.
var ErrUnknownLanguage = errors.New("unknown language")

type keyKind int

const (
	keyAlias keyKind = iota
	keyExtension
	keyFilename
)

type keyBinding struct {
	kind keyKind
	key  string
	id   string
}

type override struct {
	target string
	patch  RuleSet
}

// Builder collects rule sets from ordered sources. Later sources are merged
// into earlier ones by id and win key conflicts.
type Builder struct {
	order     []string
	sets      map[string]RuleSet
	bindings  []keyBinding
	overrides []override
	errs      []error
}

func NewBuilder() *Builder {
	return &Builder{sets: make(map[string]RuleSet)}
}

// Add merges each set into the language with the same id.
func (b *Builder) Add(sets ...RuleSet) *Builder {
	for _, rs := range sets {
		id := strings.TrimSpace(rs.ID)
		if id == "" {
			b.errs = append(b.errs, fmt.Errorf("rule set without id (extensions %v)", rs.Extensions))
			continue
		}
		rs.ID = id
		b.merge(id, rs)
	}
	return b
}

// Override merges patch into the language named by target, which may be an
// id, an alias, a filename or an extension. Targets are resolved by Build.
func (b *Builder) Override(target string, patch RuleSet) *Builder {
	b.overrides = append(b.overrides, override{target: strings.TrimSpace(target), patch: patch})
	return b
}

func (b *Builder) merge(id string, rs RuleSet) {
	prev, ok := b.sets[id]
	if !ok {
		b.order = append(b.order, id)
		prev = RuleSet{ID: id}
	}
	rs.ID = id
	b.sets[id] = Merge(prev, rs)
	for _, a := range rs.Aliases {
		if a != "" {
			b.bindings = append(b.bindings, keyBinding{kind: keyAlias, key: a, id: id})
		}
	}
	for _, ext := range rs.Extensions {
		for _, k := range extensionKeys(ext) {
			b.bindings = append(b.bindings, keyBinding{kind: keyExtension, key: k, id: id})
		}
	}
	for _, name := range rs.Filenames {
		if name != "" {
			b.bindings = append(b.bindings, keyBinding{kind: keyFilename, key: name, id: id})
		}
	}
}

// clone copies the pending state so Build can apply overrides without
// touching the builder.
func (b *Builder) clone() *Builder {
	sets := make(map[string]RuleSet, len(b.sets))
	for id, rs := range b.sets {
		sets[id] = rs
	}
	return &Builder{
		order:    append([]string(nil), b.order...),
		sets:     sets,
		bindings: append([]keyBinding(nil), b.bindings...),
	}
}

// Build resolves overrides, validates the key tables and compiles every
// language. The returned registry is never modified afterwards. Build leaves
// the builder unchanged, so it may be called again or extended with Add.
func (b *Builder) Build() (*Registry, error) {
	errs := append([]error(nil), b.errs...)
	w := b.clone()
	for _, ov := range b.overrides {
		id, ok := w.lookup(ov.target)
		if !ok {
			errs = append(errs, fmt.Errorf("override %q: %w", ov.target, ErrUnknownLanguage))
			continue
		}
		w.merge(id, ov.patch)
	}

	reg := &Registry{
		byID:       make(map[string]*Language, len(w.sets)),
		byAlias:    make(map[string]*Language),
		byFold:     make(map[string]*Language),
		byExt:      make(map[string]*Language),
		byFilename: make(map[string]*Language),
	}
	for _, id := range w.order {
		rs := w.sets[id]
		reg.byID[id] = &Language{RuleSet: rs, classifier: classify.New(rs.Grammar)}
	}
	for _, kb := range w.bindings {
		l, ok := reg.byID[kb.id]
		if !ok {
			errs = append(errs, fmt.Errorf("key %q refers to missing language %q", kb.key, kb.id))
			continue
		}
		switch kb.kind {
		case keyAlias:
			reg.byAlias[kb.key] = l
		case keyExtension:
			reg.byExt[kb.key] = l
		case keyFilename:
			reg.byFilename[kb.key] = l
		}
	}
	// exact ids take precedence over aliases when folding case
	for _, kb := range w.bindings {
		if kb.kind == keyAlias {
			reg.byFold[strings.ToLower(kb.key)] = reg.byID[kb.id]
		}
	}
	for id, l := range reg.byID {
		reg.byFold[strings.ToLower(id)] = l
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return reg, nil
}

// lookup mirrors Registry resolution over the builder's pending state.
func (b *Builder) lookup(target string) (string, bool) {
	if target == "" {
		return "", false
	}
	if _, ok := b.sets[target]; ok {
		return target, true
	}
	aliases := make(map[string]string)
	exts := make(map[string]string)
	names := make(map[string]string)
	for _, kb := range b.bindings {
		switch kb.kind {
		case keyAlias:
			aliases[kb.key] = kb.id
		case keyExtension:
			exts[kb.key] = kb.id
		case keyFilename:
			names[kb.key] = kb.id
		}
	}
	if id, ok := aliases[target]; ok {
		return id, true
	}
	if id, ok := exts[target]; ok {
		return id, true
	}
	base := path.Base(filepath.ToSlash(target))
	if id, ok := names[base]; ok {
		return id, true
	}
	for i := 0; i < len(base); i++ {
		if base[i] == '.' {
			if id, ok := exts[base[i:]]; ok {
				return id, true
			}
		}
	}
	return "", false
}
