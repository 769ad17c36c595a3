package bnf

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/npillmayer/parsley"
)

// The bootstrap metagrammar operates on single characters of the grammar
// source. Its terminals are either literal characters or one of a small
// set of character classes; what a pattern means is the token type's
// business, so this richer convention stays private to the compiler and
// does not leak into client token types.
const (
	classAlpha      = "alpha"   // letter or underscore
	classAlnum      = "alnum"   // letter, digit or underscore
	classSpace      = "space"   // unicode whitespace
	classStringChar = "strchar" // any character except the double quote
)

// charToken is one character of grammar source text.
type charToken struct {
	r rune
}

var _ parsley.Token = charToken{}

func (t charToken) Matches(pattern string) (bool, error) {
	switch pattern {
	case classAlpha:
		return unicode.IsLetter(t.r) || t.r == '_', nil
	case classAlnum:
		return unicode.IsLetter(t.r) || unicode.IsDigit(t.r) || t.r == '_', nil
	case classSpace:
		return unicode.IsSpace(t.r), nil
	case classStringChar:
		return t.r != '"', nil
	}
	r, size := utf8.DecodeRuneInString(pattern)
	if (r == utf8.RuneError && size <= 1) || size != len(pattern) {
		return false, fmt.Errorf("grammar char pattern %q is not a class or a single character", pattern)
	}
	return r == t.r, nil
}

func (t charToken) Clone() parsley.Token {
	return charToken{r: t.r}
}

func (t charToken) Lexeme() string {
	return string(t.r)
}

func (t charToken) String() string {
	return fmt.Sprintf("'%s'", string(t.r))
}

// scan explodes grammar source text into character tokens, one per rune.
func scan(source string) []parsley.Token {
	toks := make([]parsley.Token, 0, len(source))
	for _, r := range source {
		toks = append(toks, charToken{r: r})
	}
	return toks
}

// position translates a rune offset, as reported by parse errors over
// the scanned tokens, into a 1-based line/column pair.
func position(source string, offset int) (line, col int) {
	line, col = 1, 1
	for i, r := range []rune(source) {
		if i == offset {
			break
		}
		if r == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}
