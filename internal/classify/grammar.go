package classify

import "sort"

// Pair は開始トークンと終了トークンの組を表す
type Pair struct {
	Begin string `json:"begin" yaml:"begin" toml:"begin"`
	End   string `json:"end" yaml:"end" toml:"end"`
}

// Grammar is the flat lexical description the classifier consumes.
type Grammar struct {
	LineComments  []string `json:"line_comments,omitempty"`
	BlockComments []Pair   `json:"block_comments,omitempty"`
	BlockStrings  []Pair   `json:"block_strings,omitempty"`
}

// tokenKind orders candidates of equal length: strings shadow comments.
type tokenKind uint8

const (
	kindBlockString tokenKind = iota
	kindBlockComment
	kindLineComment
)

type candidate struct {
	token string
	kind  tokenKind
	index int
}

// Classifier は Grammar から構築した不変の行分類器です。
// 複数の goroutine から同時に利用できます。
type Classifier struct {
	grammar    Grammar
	candidates []candidate
	firstByte  [256]bool
}

// New compiles g. Empty tokens are ignored.
func New(g Grammar) *Classifier {
	c := &Classifier{grammar: cloneGrammar(g)}
	for i, p := range c.grammar.BlockStrings {
		if p.End != "" {
			c.add(p.Begin, kindBlockString, i)
		}
	}
	for i, p := range c.grammar.BlockComments {
		if p.End != "" {
			c.add(p.Begin, kindBlockComment, i)
		}
	}
	for i, tok := range c.grammar.LineComments {
		c.add(tok, kindLineComment, i)
	}
	sort.SliceStable(c.candidates, func(i, j int) bool {
		a, b := c.candidates[i], c.candidates[j]
		if len(a.token) != len(b.token) {
			return len(a.token) > len(b.token)
		}
		if a.kind != b.kind {
			return a.kind < b.kind
		}
		return a.index < b.index
	})
	return c
}

func (c *Classifier) add(token string, kind tokenKind, index int) {
	if token == "" {
		return
	}
	c.candidates = append(c.candidates, candidate{token: token, kind: kind, index: index})
	c.firstByte[token[0]] = true
}

// Grammar returns a copy of the grammar the classifier was compiled from.
func (c *Classifier) Grammar() Grammar {
	return cloneGrammar(c.grammar)
}

func cloneGrammar(g Grammar) Grammar {
	return Grammar{
		LineComments:  append([]string(nil), g.LineComments...),
		BlockComments: append([]Pair(nil), g.BlockComments...),
		BlockStrings:  append([]Pair(nil), g.BlockStrings...),
	}
}
