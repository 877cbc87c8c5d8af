// Package classify counts code, comment and blank lines of a text buffer
// according to a language Grammar.
package classify

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Mode is the lexer mode carried from one scan position to the next.
type Mode uint8

const (
	Normal Mode = iota
	InLineComment
	InBlockComment
	InBlockString
)

func (m Mode) String() string {
	switch m {
	case InLineComment:
		return "line-comment"
	case InBlockComment:
		return "block-comment"
	case InBlockString:
		return "block-string"
	default:
		return "normal"
	}
}

// State is the scanner state. Pair indexes Grammar.BlockComments or
// Grammar.BlockStrings depending on Mode and is zero otherwise.
type State struct {
	Mode Mode
	Pair int
}

// Transition describes the effect of consuming the text at one position.
type Transition struct {
	Next    State
	Advance int
	Code    bool
	Comment bool
	Newline bool
}

// LineKind は 1 行の分類結果を表す
type LineKind uint8

const (
	Blank LineKind = iota
	Comment
	Code
)

func (k LineKind) String() string {
	switch k {
	case Code:
		return "code"
	case Comment:
		return "comment"
	default:
		return "blank"
	}
}

// Count holds the per-bucket line totals of one or more texts.
type Count struct {
	Code    int `json:"code"`
	Comment int `json:"comment"`
	Blank   int `json:"blank"`
}

func (c Count) Total() int { return c.Code + c.Comment + c.Blank }

func (c Count) Add(o Count) Count {
	return Count{Code: c.Code + o.Code, Comment: c.Comment + o.Comment, Blank: c.Blank + o.Blank}
}

func (c Count) Sub(o Count) Count {
	return Count{Code: c.Code - o.Code, Comment: c.Comment - o.Comment, Blank: c.Blank - o.Blank}
}

func (c Count) Neg() Count { return Count{}.Sub(c) }

// IsZero reports whether every bucket is zero.
func (c Count) IsZero() bool { return c == Count{} }

func (c *Count) add(k LineKind) {
	switch k {
	case Code:
		c.Code++
	case Comment:
		c.Comment++
	default:
		c.Blank++
	}
}

type lineFlags struct {
	code    bool
	comment bool
}

func (f lineFlags) kind() LineKind {
	switch {
	case f.code:
		return Code
	case f.comment:
		return Comment
	default:
		return Blank
	}
}

// Classify counts the lines of text. It never fails: unterminated blocks are
// dropped at end of input and the trailing line is counted when non-empty.
func (c *Classifier) Classify(text string) Count {
	var out Count
	c.scan(text, out.add)
	return out
}

// ClassifyBytes is Classify for a byte slice.
func (c *Classifier) ClassifyBytes(data []byte) Count {
	return c.Classify(string(data))
}

// Lines returns the classification of every physical line of text.
func (c *Classifier) Lines(text string) []LineKind {
	kinds := make([]LineKind, 0, strings.Count(text, "\n")+1)
	c.scan(text, func(k LineKind) { kinds = append(kinds, k) })
	return kinds
}

func (c *Classifier) scan(text string, emit func(LineKind)) {
	var (
		st      State
		flags   lineFlags
		pending bool
	)
	for pos := 0; pos < len(text); {
		tr := c.Step(st, text[pos:])
		pos += tr.Advance
		st = tr.Next
		if tr.Code {
			flags.code = true
		}
		if tr.Comment {
			flags.comment = true
		}
		if tr.Newline {
			emit(flags.kind())
			flags = lineFlags{}
			pending = false
			continue
		}
		pending = true
	}
	if pending {
		emit(flags.kind())
	}
}

// Step performs a single transition from st over rest, which must be
// non-empty. Advance is always at least one byte.
func (c *Classifier) Step(st State, rest string) Transition {
	switch st.Mode {
	case InLineComment:
		return stepLineComment(rest)
	case InBlockComment:
		if st.Pair < len(c.grammar.BlockComments) {
			return stepBlock(st, c.grammar.BlockComments[st.Pair].End, rest, false)
		}
	case InBlockString:
		if st.Pair < len(c.grammar.BlockStrings) {
			return stepBlock(st, c.grammar.BlockStrings[st.Pair].End, rest, true)
		}
	}
	return c.stepNormal(rest)
}

func (c *Classifier) stepNormal(rest string) Transition {
	if c.firstByte[rest[0]] {
		for _, cand := range c.candidates {
			if !strings.HasPrefix(rest, cand.token) {
				continue
			}
			tr := Transition{Advance: len(cand.token)}
			switch cand.kind {
			case kindBlockString:
				tr.Next = State{Mode: InBlockString, Pair: cand.index}
				tr.Code = true
			case kindBlockComment:
				tr.Next = State{Mode: InBlockComment, Pair: cand.index}
				tr.Comment = true
			default:
				tr.Next = State{Mode: InLineComment}
				tr.Comment = true
			}
			return tr
		}
	}
	if rest[0] == '\n' {
		return Transition{Advance: 1, Newline: true}
	}
	r, size := decodeRune(rest)
	return Transition{Advance: size, Code: !unicode.IsSpace(r)}
}

func stepLineComment(rest string) Transition {
	idx := strings.IndexByte(rest, '\n')
	switch {
	case idx == 0:
		return Transition{Advance: 1, Newline: true}
	case idx < 0:
		return Transition{Next: State{Mode: InLineComment}, Advance: len(rest), Comment: true}
	default:
		return Transition{Next: State{Mode: InLineComment}, Advance: idx, Comment: true}
	}
}

func stepBlock(st State, end, rest string, isString bool) Transition {
	if strings.HasPrefix(rest, end) {
		return Transition{Advance: len(end), Code: isString, Comment: !isString}
	}
	// ブロック内の行は空白だけでもブロックの種別で数える
	if rest[0] == '\n' {
		return Transition{Next: st, Advance: 1, Newline: true, Code: isString, Comment: !isString}
	}
	_, size := decodeRune(rest)
	return Transition{Next: st, Advance: size, Code: isString, Comment: !isString}
}

func decodeRune(s string) (rune, int) {
	if s[0] < utf8.RuneSelf {
		return rune(s[0]), 1
	}
	// RuneError with size 1 for invalid bytes still advances the scan.
	return utf8.DecodeRuneInString(s)
}
