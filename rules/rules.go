/*
Package rules implements the in-memory representation of grammar rules.

A grammar in parsley is a set of named rules, each with a body of nested
rule expressions: terminals, references to other rules, concatenation,
ordered alternatives, and the EBNF quantifiers ?, * and +. A complete
rule set is held by a Parser value, which is what the execution engines
in parse/backtrack and parse/gss interpret.

Rule expressions are immutable after construction. Engines memoize
per-position results keyed by expression identity, so expressions are
always handled by pointer; the pointer is stable for the lifetime of the
Parser.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package rules

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cnf/structhash"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'parsley.rules'.
func tracer() tracing.Trace {
	return tracing.Select("parsley.rules")
}

// Op discriminates the variants of a rule expression.
type Op int8

// Rule expression variants.
const (
	OpTerminal     Op = iota // matches a single token against a pattern
	OpRuleName               // reference to another rule of the same rule set
	OpConcat                 // ordered sequence of sub-expressions
	OpAlternatives           // ordered choice between sub-expressions
	OpOptional               // zero or one
	OpMany                   // zero or more
	OpOneOrMore              // one or more
)

func (op Op) String() string {
	switch op {
	case OpTerminal:
		return "terminal"
	case OpRuleName:
		return "rule-name"
	case OpConcat:
		return "concatenation"
	case OpAlternatives:
		return "alternatives"
	case OpOptional:
		return "optional"
	case OpMany:
		return "many"
	case OpOneOrMore:
		return "one-or-more"
	}
	return fmt.Sprintf("op(%d)", op)
}

// Expr is a node of a rule-body expression tree.
//
// Pattern carries the terminal pattern for OpTerminal and the referenced
// rule name for OpRuleName; it is unused otherwise. Children holds the
// sub-expressions of the compound variants. Clients should treat an Expr
// as immutable once it is part of a Parser.
type Expr struct {
	Op       Op
	Pattern  string
	Children []*Expr
}

// Terminal creates an expression matching a single token against pattern.
func Terminal(pattern string) *Expr {
	return &Expr{Op: OpTerminal, Pattern: pattern}
}

// Name creates a reference to the rule with the given name.
func Name(rule string) *Expr {
	return &Expr{Op: OpRuleName, Pattern: rule}
}

// Concat creates an ordered sequence of sub-expressions.
func Concat(children ...*Expr) *Expr {
	return &Expr{Op: OpConcat, Children: children}
}

// Alternatives creates an ordered choice between sub-expressions.
func Alternatives(children ...*Expr) *Expr {
	return &Expr{Op: OpAlternatives, Children: children}
}

// Optional wraps child to match zero or one occurrence.
func Optional(child *Expr) *Expr {
	return &Expr{Op: OpOptional, Children: []*Expr{child}}
}

// Many wraps child to match zero or more occurrences.
func Many(child *Expr) *Expr {
	return &Expr{Op: OpMany, Children: []*Expr{child}}
}

// OneOrMore wraps child to match one or more occurrences.
func OneOrMore(child *Expr) *Expr {
	return &Expr{Op: OpOneOrMore, Children: []*Expr{child}}
}

// Child returns the single sub-expression of a quantifier variant.
func (e *Expr) Child() *Expr {
	return e.Children[0]
}

// String returns a grammar-like rendering of the expression, mainly for
// trace output.
func (e *Expr) String() string {
	var sb strings.Builder
	e.write(&sb)
	return sb.String()
}

func (e *Expr) write(sb *strings.Builder) {
	switch e.Op {
	case OpTerminal:
		fmt.Fprintf(sb, "%q", e.Pattern)
	case OpRuleName:
		sb.WriteString(e.Pattern)
	case OpConcat:
		e.writeChildren(sb, " ")
	case OpAlternatives:
		e.writeChildren(sb, " | ")
	case OpOptional:
		e.writeQuantified(sb, "?")
	case OpMany:
		e.writeQuantified(sb, "*")
	case OpOneOrMore:
		e.writeQuantified(sb, "+")
	}
}

func (e *Expr) writeChildren(sb *strings.Builder, sep string) {
	sb.WriteString("(")
	for i, c := range e.Children {
		if i > 0 {
			sb.WriteString(sep)
		}
		c.write(sb)
	}
	sb.WriteString(")")
}

func (e *Expr) writeQuantified(sb *strings.Builder, quant string) {
	e.Child().write(sb)
	sb.WriteString(quant)
}

// === Parser ================================================================

// Parser is a compiled grammar: a mapping from rule names to rule-body
// expressions. Parser values are created by bnf.Compile or by a Builder
// and are immutable afterwards; a single Parser may serve any number of
// concurrent parse runs, as every run owns its per-parse state.
type Parser struct {
	name  string
	rules map[string]*Expr
	meta  *Parser // the metagrammar this parser was compiled with, if any
}

// Name returns the name given to this grammar at construction time.
func (p *Parser) Name() string {
	return p.name
}

// Rule returns the body expression for a rule name, or nil if the rule
// is not part of this grammar.
func (p *Parser) Rule(name string) *Expr {
	return p.rules[name]
}

// RuleNames returns the names of all rules, sorted alphabetically.
func (p *Parser) RuleNames() []string {
	names := make([]string, 0, len(p.rules))
	for name := range p.rules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Metagrammar returns the parser for the grammar language this parser
// was compiled with, or nil if it has been built programmatically.
func (p *Parser) Metagrammar() *Parser {
	return p.meta
}

// Fingerprint returns a hash over the complete rule set. Two compilations
// of the same grammar text produce equal fingerprints.
func (p *Parser) Fingerprint() string {
	type entry struct {
		Name string
		Body *Expr
	}
	entries := make([]entry, 0, len(p.rules))
	for _, name := range p.RuleNames() {
		entries = append(entries, entry{Name: name, Body: p.rules[name]})
	}
	hash, err := structhash.Hash(struct {
		Rules []entry
	}{
		Rules: entries,
	}, 1)
	if err != nil { // no reason for this to happen, but API demands it
		panic(err)
	}
	return hash
}
