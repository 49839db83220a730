package dts

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/hashicorp/hcl/v2"
)

var punctuation = map[byte]TokenType{
	'{': LBrace,
	'}': RBrace,
	'<': LAngle,
	'>': RAngle,
	';': Semicolon,
	'=': Equals,
	'&': Amp,
	',': Comma,
	':': Colon,
}

var directives = map[string]struct{}{
	"include": {}, "define": {}, "undef": {}, "if": {}, "ifdef": {},
	"ifndef": {}, "else": {}, "elif": {}, "endif": {}, "pragma": {},
	"error": {}, "warning": {}, "line": {},
}

// Lexer converts keymap source text into tokens. Comments and whitespace are
// skipped with the same rules Preprocess applies.
type Lexer struct {
	src         string
	filename    string
	pos         hcl.Pos
	lineHasText bool
}

// NewLexer creates a lexer over src. filename is only used in token ranges.
func NewLexer(filename, src string) *Lexer {
	return &Lexer{
		src:      src,
		filename: filename,
		pos:      hcl.InitialPos,
	}
}

// Tokenize returns every token in src, ending with a single EOF token.
func Tokenize(filename, src string) []Token {
	lx := NewLexer(filename, src)
	var toks []Token
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Type == EOF {
			return toks
		}
	}
}

// Next returns the next token. After the input is exhausted it keeps
// returning EOF.
func (l *Lexer) Next() Token {
	l.skipTrivia()

	start := l.pos
	rest := l.src[start.Byte:]
	if rest == "" {
		return l.token(EOF, start)
	}

	if rest[0] == '#' && !l.lineHasText && isDirective(rest) {
		l.advance(directiveLen(rest))
		return l.token(Directive, start)
	}
	l.lineHasText = true

	if typ, ok := punctuation[rest[0]]; ok {
		l.advance(1)
		return l.token(typ, start)
	}
	if rest[0] == '"' {
		l.advance(stringLen(rest))
		return l.token(String, start)
	}

	l.advance(wordLen(rest))
	return l.token(Word, start)
}

func (l *Lexer) token(typ TokenType, start hcl.Pos) Token {
	return Token{
		Type: typ,
		Text: l.src[start.Byte:l.pos.Byte],
		Range: hcl.Range{
			Filename: l.filename,
			Start:    start,
			End:      l.pos,
		},
	}
}

func (l *Lexer) skipTrivia() {
	for l.pos.Byte < len(l.src) {
		rest := l.src[l.pos.Byte:]
		if n := commentLen(rest); n > 0 {
			l.advance(n)
			continue
		}
		r, size := utf8.DecodeRuneInString(rest)
		if !unicode.IsSpace(r) {
			return
		}
		l.advance(size)
	}
}

// advance moves the cursor n bytes forward, keeping line and column current.
func (l *Lexer) advance(n int) {
	end := l.pos.Byte + n
	for l.pos.Byte < end {
		r, size := utf8.DecodeRuneInString(l.src[l.pos.Byte:])
		l.pos.Byte += size
		if r == '\n' {
			l.pos.Line++
			l.pos.Column = 1
			l.lineHasText = false
		} else {
			l.pos.Column++
		}
	}
}

func isDelimiter(r rune) bool {
	if unicode.IsSpace(r) || r == '"' {
		return true
	}
	if r < utf8.RuneSelf {
		_, ok := punctuation[byte(r)]
		return ok
	}
	return false
}

func wordLen(s string) int {
	i := 0
	for i < len(s) {
		if commentLen(s[i:]) > 0 {
			break
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if isDelimiter(r) {
			break
		}
		i += size
	}
	if i == 0 {
		// Unreachable for well-formed callers, but never stall.
		_, size := utf8.DecodeRuneInString(s)
		return size
	}
	return i
}

// isDirective reports whether s starts a C preprocessor line. Device-tree
// properties like `#binding-cells` also start with '#', so the keyword is
// checked.
func isDirective(s string) bool {
	name := strings.TrimLeft(s[1:], " \t")
	end := strings.IndexFunc(name, func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	if end >= 0 {
		name = name[:end]
	}
	_, ok := directives[name]
	return ok
}

// directiveLen returns the length of a preprocessor line, following
// backslash-newline continuations. The final newline is not included.
func directiveLen(s string) int {
	i := 0
	for {
		end := strings.IndexByte(s[i:], '\n')
		if end < 0 {
			return len(s)
		}
		line := strings.TrimRight(s[i:i+end], " \t\r")
		if !strings.HasSuffix(line, "\\") {
			return i + end
		}
		i += end + 1
	}
}

// stringLen returns the length of the quoted string starting at s[0],
// including both quotes. An unterminated string runs to the end of the line.
func stringLen(s string) int {
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			return i + 1
		case '\n':
			return i
		}
	}
	return len(s)
}
