package bnf

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/

import (
	"sync"

	"github.com/npillmayer/parsley/rules"
)

// The metagrammar recognizes the grammar language itself, character by
// character, and is built directly in memory — the bootstrap that breaks
// the chicken-and-egg problem of compiling grammars with a parser. In
// its own notation it reads:
//
//    Grammar : W Rule+ ;
//    Rule    : Ident W ":" W Body ";" W ;
//    Body    : Alt ("|" W Alt)* ;
//    Alt     : Term+ ;
//    Term    : Atom (W Quant)? W ;
//    Quant   : "*" | "+" | "?" ;
//    Atom    : String | Ident | Group ;
//    Group   : "(" W Body ")" ;
//    String  : <"> StrChar* <"> ;
//    StrChar : any character except <">
//    Ident   : (letter | "_") (letter | digit | "_")*
//    W       : whitespace*
//
// Whitespace is significant only as a separator; every construct that
// may be followed by blanks absorbs them trailing (Term, Rule), before a
// quantifier, or after its punctuation (":", "|", "(").
var (
	bootOnce sync.Once
	boot     *rules.Parser
)

// metagrammarStart is the start rule of the bootstrap metagrammar.
const metagrammarStart = "Grammar"

// Metagrammar returns the bootstrap parser for the grammar language.
// The value is built once and shared; it is immutable like any other
// rules.Parser.
func Metagrammar() *rules.Parser {
	bootOnce.Do(func() {
		b := rules.NewBuilder("BNF")
		b.Rule("Grammar", rules.Concat(
			rules.Name("W"),
			rules.OneOrMore(rules.Name("Rule")),
		))
		b.Rule("Rule", rules.Concat(
			rules.Name("Ident"), rules.Name("W"),
			rules.Terminal(":"), rules.Name("W"),
			rules.Name("Body"),
			rules.Terminal(";"), rules.Name("W"),
		))
		b.Rule("Body", rules.Concat(
			rules.Name("Alt"),
			rules.Many(rules.Concat(
				rules.Terminal("|"), rules.Name("W"), rules.Name("Alt"),
			)),
		))
		b.Rule("Alt", rules.OneOrMore(rules.Name("Term")))
		b.Rule("Term", rules.Concat(
			rules.Name("Atom"),
			rules.Optional(rules.Concat(rules.Name("W"), rules.Name("Quant"))),
			rules.Name("W"),
		))
		b.Rule("Quant", rules.Alternatives(
			rules.Terminal("*"), rules.Terminal("+"), rules.Terminal("?"),
		))
		b.Rule("Atom", rules.Alternatives(
			rules.Name("String"), rules.Name("Ident"), rules.Name("Group"),
		))
		b.Rule("Group", rules.Concat(
			rules.Terminal("("), rules.Name("W"),
			rules.Name("Body"),
			rules.Terminal(")"),
		))
		b.Rule("String", rules.Concat(
			rules.Terminal(`"`),
			rules.Many(rules.Name("StrChar")),
			rules.Terminal(`"`),
		))
		b.Rule("StrChar", rules.Terminal(classStringChar))
		b.Rule("Ident", rules.Concat(
			rules.Terminal(classAlpha),
			rules.Many(rules.Terminal(classAlnum)),
		))
		b.Rule("W", rules.Many(rules.Terminal(classSpace)))
		p, err := b.Parser()
		if err != nil {
			panic("bnf: metagrammar does not build: " + err.Error())
		}
		boot = p
	})
	return boot
}
