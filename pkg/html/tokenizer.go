package html

import (
	"strings"

	xhtml "golang.org/x/net/html"
)

type TokenType int

const (
	TokenText TokenType = iota
	TokenTag
	TokenEOF
)

// Token is one unit of the scan: a run of trimmed, non-empty text or the
// raw content between a '<' and the next '>'.
type Token struct {
	Type TokenType
	Text string
}

// Tokenizer scans markup left to right in two states: outside a tag,
// characters collect as text until a '<'; inside a tag, characters
// collect until the next '>'.
type Tokenizer struct {
	input string
	pos   int
}

func NewTokenizer(html string) *Tokenizer {
	return &Tokenizer{input: html, pos: 0}
}

// NextToken returns the next token. Text that trims to nothing is skipped.
// A tag left open at the end of the input is dropped.
func (t *Tokenizer) NextToken() Token {
	for t.pos < len(t.input) {
		if t.input[t.pos] == '<' {
			return t.readTag()
		}
		if tok, ok := t.readText(); ok {
			return tok
		}
	}
	return Token{Type: TokenEOF}
}

func (t *Tokenizer) readTag() Token {
	t.pos++
	end := strings.IndexByte(t.input[t.pos:], '>')
	if end < 0 {
		tracer().Debugf("unterminated tag at end of input: %q", t.input[t.pos:])
		t.pos = len(t.input)
		return Token{Type: TokenEOF}
	}
	content := t.input[t.pos : t.pos+end]
	t.pos += end + 1
	return Token{Type: TokenTag, Text: content}
}

func (t *Tokenizer) readText() (Token, bool) {
	start := t.pos
	for t.pos < len(t.input) && t.input[t.pos] != '<' {
		t.pos++
	}
	text := strings.TrimSpace(t.input[start:t.pos])
	if text == "" {
		return Token{}, false
	}
	return Token{Type: TokenText, Text: xhtml.UnescapeString(text)}, true
}

// ParseTag splits raw tag content (e.g. `link rel=stylesheet /`) into the
// lowercased tag name and its attributes in source order. Keys and values
// are lowercased, quote characters are stripped from values, a bare key
// takes its own name as value and a lone "/" is ignored.
func ParseTag(content string) (string, []Attribute) {
	parts := strings.Fields(content)
	if len(parts) == 0 {
		return "", nil
	}
	tag := strings.ToLower(parts[0])
	if len(tag) > 1 {
		tag = strings.TrimSuffix(tag, "/")
	}
	var attrs []Attribute
	for _, part := range parts[1:] {
		key, value, hasValue := strings.Cut(part, "=")
		key = strings.ToLower(key)
		if key == "/" || key == "" {
			continue
		}
		if !hasValue {
			value = key
		}
		value = strings.NewReplacer(`'`, "", `"`, "").Replace(strings.ToLower(value))
		attrs = setAttr(attrs, key, value)
	}
	return tag, attrs
}

func setAttr(attrs []Attribute, key, value string) []Attribute {
	for i := range attrs {
		if attrs[i].Key == key {
			attrs[i].Value = value
			return attrs
		}
	}
	return append(attrs, Attribute{Key: key, Value: value})
}
