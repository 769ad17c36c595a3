package rules

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/

import "fmt"

// Builder is used to create rule sets programmatically. A typical usage
// looks like this:
//
//    b := rules.NewBuilder("Sequences")
//    b.Rule("S", rules.OneOrMore(rules.Name("Item")))
//    b.Rule("Item", rules.Alternatives(rules.Terminal("a"), rules.Terminal("b")))
//    p, err := b.Parser()
//
// Rule bodies are built from the expression constructors of this package.
// The builder collects errors and reports them when Parser() is called.
type Builder struct {
	name  string
	rules map[string]*Expr
	err   error
}

// NewBuilder creates an empty grammar builder. The name is used for
// diagnostic output and is returned by the finished Parser's Name().
func NewBuilder(name string) *Builder {
	return &Builder{
		name:  name,
		rules: make(map[string]*Expr),
	}
}

// Rule adds a named rule with the given body. Adding a rule name twice
// is an error, reported by Parser().
func (b *Builder) Rule(name string, body *Expr) *Builder {
	if b.err != nil {
		return b
	}
	if name == "" {
		b.err = fmt.Errorf("grammar %s: rule with empty name", b.name)
		return b
	}
	if body == nil {
		b.err = fmt.Errorf("grammar %s: rule %s has no body", b.name, name)
		return b
	}
	if _, ok := b.rules[name]; ok {
		b.err = fmt.Errorf("grammar %s: duplicate rule %s", b.name, name)
		return b
	}
	b.rules[name] = body
	return b
}

// Parser creates the finished Parser value. It fails for an empty rule
// set and for any error collected while adding rules. Dangling rule
// references are legal at this point; they surface as parse-time errors
// (see package parse).
func (b *Builder) Parser() (*Parser, error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(b.rules) == 0 {
		return nil, fmt.Errorf("grammar %s: no rules", b.name)
	}
	rs := make(map[string]*Expr, len(b.rules))
	for name, body := range b.rules {
		rs[name] = body
	}
	p := &Parser{name: b.name, rules: rs}
	tracer().Debugf("built grammar %s with %d rules", b.name, len(rs))
	return p, nil
}

// WithMetagrammar attaches the metagrammar a parser has been compiled
// with. It is called by the grammar compiler (package bnf).
func (p *Parser) WithMetagrammar(meta *Parser) *Parser {
	p.meta = meta
	return p
}
