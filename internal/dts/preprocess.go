package dts

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Preprocess removes `/* */` and `//` comments from src, collapses every run
// of whitespace to a single space and trims the result. Quoted strings get no
// special treatment, so comment markers inside them are stripped as well; the
// Lexer is the string-aware reader. Preprocess never fails and an
// unterminated block comment extends to the end of the input.
func Preprocess(src string) string {
	var sb strings.Builder
	sb.Grow(len(src))
	pendingSpace := false

	for i := 0; i < len(src); {
		if n := commentLen(src[i:]); n > 0 {
			i += n
			pendingSpace = true
			continue
		}

		r, size := utf8.DecodeRuneInString(src[i:])
		if unicode.IsSpace(r) {
			pendingSpace = true
			i += size
			continue
		}

		if pendingSpace && sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		pendingSpace = false
		sb.WriteString(src[i : i+size])
		i += size
	}

	return sb.String()
}

// commentLen returns the length of the comment starting at s[0], or 0.
// A line comment does not include its terminating newline.
func commentLen(s string) int {
	if len(s) < 2 || s[0] != '/' {
		return 0
	}
	switch s[1] {
	case '/':
		if end := strings.IndexByte(s, '\n'); end >= 0 {
			return end
		}
		return len(s)
	case '*':
		if end := strings.Index(s[2:], "*/"); end >= 0 {
			return end + 4
		}
		return len(s)
	}
	return 0
}
