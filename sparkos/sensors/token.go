package sensors

import (
	"strings"
	"unicode/utf8"
)

// Delimiter separates fields in the pipe-joined sensor streams.
const Delimiter = '|'

// Token is one field cut from a delimited stream.
type Token struct {
	Text      string
	Truncated bool
}

// NextToken cuts the field at the start of src, up to the first delim or the
// end of the string.
//
// size is the capacity of the destination buffer including its terminator
// slot, so at most size-1 bytes of the field are kept. Truncation backs off to
// a UTF-8 boundary and is reported in tok.Truncated.
//
// more is false when src is exhausted or when delim is its last byte.
func NextToken(src string, delim byte, size int) (tok Token, rest string, more bool) {
	field := src
	if i := strings.IndexByte(src, delim); i >= 0 {
		field = src[:i]
		rest = src[i+1:]
		more = rest != ""
	}
	tok.Text, tok.Truncated = clip(field, size-1)
	if !more {
		rest = ""
	}
	return tok, rest, more
}

// clip shortens s to at most n bytes without splitting a rune.
func clip(s string, n int) (string, bool) {
	if n < 0 {
		n = 0
	}
	if len(s) <= n {
		return s, false
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n], true
}

// Tokenizer walks a delimited stream one field at a time.
//
//	tz := NewTokenizer("21|18|30", Delimiter, ValueBufLen)
//	for tz.Next() {
//		use(tz.Token())
//	}
//
// An empty stream yields one empty field.
type Tokenizer struct {
	rest  string
	delim byte
	size  int
	done  bool
	tok   Token
}

func NewTokenizer(src string, delim byte, size int) *Tokenizer {
	return &Tokenizer{rest: src, delim: delim, size: size}
}

// Next advances to the next field. It returns false once the stream is spent.
func (t *Tokenizer) Next() bool {
	if t.done {
		return false
	}
	tok, rest, more := NextToken(t.rest, t.delim, t.size)
	t.tok = tok
	t.rest = rest
	t.done = !more
	return true
}

// Token returns the field produced by the last successful Next.
func (t *Tokenizer) Token() Token { return t.tok }
