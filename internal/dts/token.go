package dts

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
)

// TokenType is the kind of a lexical token.
type TokenType int

const (
	EOF TokenType = iota
	// Word is any run of characters that are not whitespace or delimiters.
	// It covers node names, property names, numbers and binding arguments
	// such as `LS(A)`.
	Word
	String
	LBrace
	RBrace
	LAngle
	RAngle
	Semicolon
	Equals
	Amp
	Comma
	Colon
	// Directive is a whole preprocessor line such as `#include <x.h>`.
	Directive
)

var tokenNames = map[TokenType]string{
	EOF:       "end of input",
	Word:      "word",
	String:    "string",
	LBrace:    "'{'",
	RBrace:    "'}'",
	LAngle:    "'<'",
	RAngle:    "'>'",
	Semicolon: "';'",
	Equals:    "'='",
	Amp:       "'&'",
	Comma:     "','",
	Colon:     "':'",
	Directive: "preprocessor directive",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// Token is one lexical element with its exact source text and span.
type Token struct {
	Type  TokenType
	Text  string
	Range hcl.Range
}

func (t Token) String() string {
	if t.Type == Word || t.Type == String {
		return fmt.Sprintf("%s %q", t.Type, t.Text)
	}
	return t.Type.String()
}
