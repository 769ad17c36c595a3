package parsley

import (
	"fmt"
	"unicode/utf8"
)

// CharToken is the canonical Token implementation: every token is a single
// rune, and a terminal pattern matches iff it consists of exactly that
// rune. Grammars over CharTokens operate on raw characters, which is
// handy for small languages and for testing grammars without setting up
// a scanner.
type CharToken struct {
	r rune
}

var _ Token = CharToken{}

// Char wraps a single rune as a token.
func Char(r rune) CharToken {
	return CharToken{r: r}
}

// Matches is part of the Token interface. The pattern must be exactly one
// rune long; anything else is a match error.
func (c CharToken) Matches(pattern string) (bool, error) {
	r, size := utf8.DecodeRuneInString(pattern)
	if (r == utf8.RuneError && size <= 1) || size != len(pattern) {
		return false, fmt.Errorf("char token pattern %q is not a single character", pattern)
	}
	return r == c.r, nil
}

// Clone is part of the Token interface.
func (c CharToken) Clone() Token {
	return CharToken{r: c.r}
}

// Lexeme is part of the Token interface.
func (c CharToken) Lexeme() string {
	return string(c.r)
}

func (c CharToken) String() string {
	return fmt.Sprintf("'%s'", string(c.r))
}

// StringTokens explodes a string into a sequence of character tokens,
// one per rune.
func StringTokens(input string) []Token {
	toks := make([]Token, 0, len(input))
	for _, r := range input {
		toks = append(toks, Char(r))
	}
	return toks
}
