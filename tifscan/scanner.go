package tifscan

import "unicode/utf8"

// scanner holds the per-invocation scan state. One is created for every
// Tokenize call and discarded with it; offset only ever moves forward.
type scanner struct {
	input  string
	offset int
	line   int
	column int
}

func newScanner(input string) *scanner {
	return &scanner{input: input, line: 1, column: 1}
}

// Tokenize converts a text unit into its ordered token sequence. It always
// terminates and never fails: empty input yields an empty sequence, and
// unmatched characters become single-rune UNKNOWN tokens rather than
// aborting the scan. Positions are relative to the unit, starting at line
// 1, column 1.
func Tokenize(text string) []Token {
	s := newScanner(text)
	tokens := []Token{}
	for {
		tok, ok := s.next()
		if !ok {
			break
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

// TokenizeAt behaves like Tokenize but reports positions translated by
// base, for callers scanning a block pre-sliced from a larger file. Tokens
// on the unit's first line are shifted by base.Column-1; every token is
// shifted by base.Line-1 lines. Byte offsets stay relative to the unit.
func TokenizeAt(text string, base Position) []Token {
	tokens := Tokenize(text)
	if base.Line <= 1 && base.Column <= 1 {
		return tokens
	}
	for i := range tokens {
		tokens[i].Start = translate(tokens[i].Start, base)
		tokens[i].End = translate(tokens[i].End, base)
	}
	return tokens
}

func translate(p, base Position) Position {
	if p.Line == 1 && base.Column > 1 {
		p.Column += base.Column - 1
	}
	if base.Line > 1 {
		p.Line += base.Line - 1
	}
	return p
}

// next produces the token at the current offset, or ok=false once the
// input is exhausted. Spaces, tabs and carriage returns are skip events.
func (s *scanner) next() (Token, bool) {
	s.skipSpace()
	if s.offset >= len(s.input) {
		return Token{}, false
	}

	rest := s.input[s.offset:]
	best, bestLen := -1, 0
	for i := range patternTable {
		n := patternTable[i].match(rest)
		if n <= 0 {
			continue
		}
		// Longest match wins; on a length tie the higher priority class
		// (lower value) wins, and within a class the earlier table entry.
		if n > bestLen || (n == bestLen && patternTable[i].priority < patternTable[best].priority) {
			best, bestLen = i, n
		}
	}

	if best < 0 {
		return s.emitUnknown(), true
	}

	r := &patternTable[best]
	lexeme := rest[:bestLen]
	kind := r.kind
	if r.classify != nil {
		kind = r.classify(lexeme)
	}
	value := ""
	if r.valueOf != nil {
		value = r.valueOf(lexeme)
	}

	tok := Token{
		Type:        kind,
		Literal:     lexeme,
		Value:       value,
		Start:       Position{Line: s.line, Column: s.column},
		StartOffset: s.offset,
	}
	s.advance(lexeme)
	tok.End = Position{Line: s.line, Column: s.column}
	tok.EndOffset = s.offset
	return tok, true
}

// emitUnknown consumes exactly one rune so the scan always makes progress.
func (s *scanner) emitUnknown() Token {
	_, w := utf8.DecodeRuneInString(s.input[s.offset:])
	if w == 0 {
		w = 1
	}
	lexeme := s.input[s.offset : s.offset+w]
	tok := Token{
		Type:        TokenUnknown,
		Literal:     lexeme,
		Start:       Position{Line: s.line, Column: s.column},
		StartOffset: s.offset,
	}
	s.advance(lexeme)
	tok.End = Position{Line: s.line, Column: s.column}
	tok.EndOffset = s.offset
	return tok
}

// advance moves the scan state past lexeme, keeping line/column in step.
// Only docstrings and newline runs may contain line breaks.
func (s *scanner) advance(lexeme string) {
	for _, r := range lexeme {
		if r == '\n' {
			s.line++
			s.column = 1
		} else {
			s.column++
		}
	}
	s.offset += len(lexeme)
}

func (s *scanner) skipSpace() {
	for s.offset < len(s.input) {
		switch s.input[s.offset] {
		case ' ', '\t', '\r':
			s.offset++
			s.column++
		default:
			return
		}
	}
}
