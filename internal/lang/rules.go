// Package lang holds the per-language comment and string rules and resolves
// file paths and language identifiers to them.
package lang

import (
	"strings"

	"github.com/phyten/codecount/internal/classify"
)

// RuleSet は 1 言語分の字句規則と解決キーをまとめたもの
type RuleSet struct {
	ID string `json:"id"`
	classify.Grammar
	Aliases    []string `json:"aliases,omitempty"`
	Extensions []string `json:"extensions,omitempty"`
	Filenames  []string `json:"filenames,omitempty"`
}

// Merge unions every token list of override into base. Identical tokens are
// kept once, in first-seen order. Neither argument is modified.
func Merge(base, override RuleSet) RuleSet {
	id := base.ID
	if id == "" {
		id = override.ID
	}
	return RuleSet{
		ID: id,
		Grammar: classify.Grammar{
			LineComments:  unionStrings(base.LineComments, override.LineComments),
			BlockComments: unionPairs(base.BlockComments, override.BlockComments),
			BlockStrings:  unionPairs(base.BlockStrings, override.BlockStrings),
		},
		Aliases:    unionStrings(base.Aliases, override.Aliases),
		Extensions: unionStrings(base.Extensions, override.Extensions),
		Filenames:  unionStrings(base.Filenames, override.Filenames),
	}
}

// MergeAll folds Merge over layers from left to right.
func MergeAll(layers ...RuleSet) RuleSet {
	var out RuleSet
	for _, layer := range layers {
		out = Merge(out, layer)
	}
	return out
}

func unionStrings(lists ...[]string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, list := range lists {
		for _, v := range list {
			if v == "" {
				continue
			}
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}

func unionPairs(lists ...[]classify.Pair) []classify.Pair {
	var out []classify.Pair
	seen := make(map[classify.Pair]struct{})
	for _, list := range lists {
		for _, p := range list {
			if p.Begin == "" || p.End == "" {
				continue
			}
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			out = append(out, p)
		}
	}
	return out
}

// extensionKeys returns the lookup keys for a declared extension: the value
// as given plus its single-leading-dot form.
func extensionKeys(ext string) []string {
	if ext == "" {
		return nil
	}
	dotted := "." + strings.TrimLeft(ext, ".")
	if dotted == "." {
		return []string{ext}
	}
	if dotted == ext {
		return []string{ext}
	}
	return []string{ext, dotted}
}
