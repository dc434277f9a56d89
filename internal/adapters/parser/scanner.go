package parser

import (
	"strconv"
	"strings"
)

// scanner is a cursor over one text record. Failed matches leave the cursor
// where it was, so optional groups can be attempted and abandoned freely.
type scanner struct {
	s   string
	pos int
}

func newScanner(s string) *scanner {
	return &scanner{s: s}
}

func (sc *scanner) skipSpace() {
	for sc.pos < len(sc.s) && isSpace(sc.s[sc.pos]) {
		sc.pos++
	}
}

func (sc *scanner) eof() bool {
	sc.skipSpace()
	return sc.pos >= len(sc.s)
}

func (sc *scanner) peek() byte {
	sc.skipSpace()
	if sc.pos >= len(sc.s) {
		return 0
	}
	return sc.s[sc.pos]
}

// char consumes c if it is the next non-space byte.
func (sc *scanner) char(c byte) bool {
	if sc.peek() != c {
		return false
	}
	sc.pos++
	return true
}

// literal consumes the bytes of lit in order, each optionally preceded by
// spaces, so "((b)" also matches "( (b )". Nothing is consumed on a miss.
func (sc *scanner) literal(lit string) bool {
	save := sc.pos
	for i := 0; i < len(lit); i++ {
		if !sc.char(lit[i]) {
			sc.pos = save
			return false
		}
	}
	return true
}

// skipGroup consumes through the ')' that closes a group whose '(' has
// already been read. Quoted text is skipped whole when it is terminated.
func (sc *scanner) skipGroup() bool {
	depth := 1
	for sc.pos < len(sc.s) {
		switch c := sc.s[sc.pos]; c {
		case '"', '\'':
			if _, ok := sc.quoted(c); ok {
				continue
			}
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				sc.pos++
				return true
			}
		}
		sc.pos++
	}
	return false
}

// skipUntilParen advances to the next parenthesis without consuming it.
func (sc *scanner) skipUntilParen() {
	for sc.pos < len(sc.s) && sc.s[sc.pos] != '(' && sc.s[sc.pos] != ')' {
		sc.pos++
	}
}

// token consumes a bare word: everything up to a space or parenthesis.
func (sc *scanner) token() (string, bool) {
	sc.skipSpace()
	start := sc.pos
	for sc.pos < len(sc.s) {
		c := sc.s[sc.pos]
		if isSpace(c) || c == '(' || c == ')' {
			break
		}
		sc.pos++
	}
	return sc.s[start:sc.pos], sc.pos > start
}

func (sc *scanner) integer() (int, bool) {
	save := sc.pos
	tok, ok := sc.token()
	if ok {
		if v, err := strconv.Atoi(tok); err == nil {
			return v, true
		}
	}
	sc.pos = save
	return 0, false
}

func (sc *scanner) number() (float64, bool) {
	save := sc.pos
	tok, ok := sc.token()
	if ok {
		if v, err := strconv.ParseFloat(tok, 64); err == nil {
			return v, true
		}
	}
	sc.pos = save
	return 0, false
}

// hex consumes a hexadecimal integer with or without a 0x prefix.
func (sc *scanner) hex() (uint32, bool) {
	save := sc.pos
	tok, ok := sc.token()
	if ok {
		digits := strings.TrimPrefix(strings.TrimPrefix(tok, "0x"), "0X")
		if v, err := strconv.ParseUint(digits, 16, 32); err == nil {
			return uint32(v), true
		}
	}
	sc.pos = save
	return 0, false
}

// floats consumes consecutive floats up to n of them.
func (sc *scanner) floats(n int) []float64 {
	var out []float64
	for len(out) < n {
		v, ok := sc.number()
		if !ok {
			break
		}
		out = append(out, v)
	}
	return out
}

// quoted consumes a string between quote characters q. Within it the pair
// backslash-q stands for q. It fails without consuming anything when the
// closing quote is missing.
func (sc *scanner) quoted(q byte) (string, bool) {
	save := sc.pos
	if !sc.char(q) {
		return "", false
	}
	var b strings.Builder
	for sc.pos < len(sc.s) {
		c := sc.s[sc.pos]
		switch {
		case c == '\\' && sc.pos+1 < len(sc.s) && sc.s[sc.pos+1] == q:
			b.WriteByte(q)
			sc.pos += 2
		case c == q:
			sc.pos++
			return b.String(), true
		default:
			b.WriteByte(c)
			sc.pos++
		}
	}
	sc.pos = save
	return "", false
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}
