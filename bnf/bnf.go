/*
Package bnf compiles grammars from BNF source text.

The grammar language is an extended BNF: rules are written as

    Name : body ;

where a body is built from double-quoted terminal strings, references to
other rules by name, ordered alternatives (A | B), juxtaposition for
concatenation (A B), the quantifiers A?, A* and A+, and parentheses for
grouping. Whitespace separates tokens and is otherwise ignored.

Compilation runs parsley on itself: the source text is exploded into
character tokens and parsed with the hand-built bootstrap metagrammar
(see Metagrammar) by the backtracking engine; the resulting syntax tree
is then folded into rule expressions. Clients get back a rules.Parser,
ready to be handed to one of the engines:

    p, err := bnf.Compile(`S : ("a" | "b")* ;`)
    ...
    tree, err := backtrack.NewParser(p).Parse(parsley.StringTokens("abba"), "S")

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package bnf

import (
	"fmt"
	"strings"

	"github.com/npillmayer/schuko/tracing"

	"github.com/npillmayer/parsley/parse"
	"github.com/npillmayer/parsley/parse/backtrack"
	"github.com/npillmayer/parsley/rules"
)

// tracer traces with key 'parsley.bnf'.
func tracer() tracing.Trace {
	return tracing.Select("parsley.bnf")
}

// CompileError reports ill-formed grammar source. Line and Col locate
// the offending position (1-based) when the error has one.
type CompileError struct {
	Line    int
	Col     int
	Message string
}

func (e *CompileError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("grammar error at %d:%d: %s", e.Line, e.Col, e.Message)
	}
	return "grammar error: " + e.Message
}

// Compile turns grammar source text into a parser. Syntax errors in the
// source, duplicate rule names and empty grammars are reported as a
// CompileError. References to undefined rules are legal here and
// surface at parse time.
func Compile(source string) (*rules.Parser, error) {
	meta := Metagrammar()
	engine := backtrack.NewParser(meta)
	cst, err := engine.Parse(scan(source), metagrammarStart)
	if err != nil {
		return nil, sourceError(source, err)
	}
	return fold(cst, meta)
}

// sourceError converts a parse error over character tokens into a
// CompileError locating the failure in the source text.
func sourceError(source string, err error) error {
	switch e := err.(type) {
	case *parse.IncompleteParseError:
		line, col := position(source, e.Index)
		return &CompileError{
			Line: line, Col: col,
			Message: "unexpected character, expected one of " + expectation(e.Expected),
		}
	case *parse.OutOfInputError:
		if strings.TrimSpace(source) == "" {
			return &CompileError{Message: "grammar has no rules"}
		}
		return &CompileError{Message: "unexpected end of grammar source"}
	}
	return &CompileError{Message: err.Error()}
}

// expectation renders expected terminal patterns for humans, folding the
// scanner's character classes into readable names.
func expectation(patterns []string) string {
	names := make([]string, len(patterns))
	for i, p := range patterns {
		switch p {
		case classAlpha:
			names[i] = "letter"
		case classAlnum:
			names[i] = "letter or digit"
		case classSpace:
			names[i] = "whitespace"
		case classStringChar:
			names[i] = "string character"
		default:
			names[i] = fmt.Sprintf("%q", p)
		}
	}
	return strings.Join(names, ", ")
}

// === CST folding ===========================================================

// fold collapses the metagrammar's syntax tree for a grammar source into
// a rule set. The CST is as verbose as character-level parsing gets;
// folding walks it by rule name and ignores the punctuation and
// whitespace nodes in between.
func fold(cst *parse.SyntaxTree, meta *rules.Parser) (*rules.Parser, error) {
	ruleNodes := childRules(cst, "Rule")
	if len(ruleNodes) == 0 {
		return nil, &CompileError{Message: "grammar has no rules"}
	}
	type def struct {
		name string
		body *rules.Expr
	}
	defs := make([]def, 0, len(ruleNodes))
	seen := make(map[string]bool)
	for _, rn := range ruleNodes {
		rname, body, err := foldRule(rn)
		if err != nil {
			return nil, err
		}
		if seen[rname] {
			return nil, &CompileError{Message: fmt.Sprintf("duplicate rule %s", rname)}
		}
		seen[rname] = true
		defs = append(defs, def{name: rname, body: body})
	}
	b := rules.NewBuilder(defs[0].name) // a grammar goes by the name of its first rule
	for _, d := range defs {
		b.Rule(d.name, d.body)
	}
	p, err := b.Parser()
	if err != nil {
		return nil, &CompileError{Message: err.Error()}
	}
	p.WithMetagrammar(meta)
	tracer().Infof("compiled grammar %s: %d rule(s), fingerprint %s",
		p.Name(), len(p.RuleNames()), p.Fingerprint())
	return p, nil
}

func foldRule(rn *parse.SyntaxTree) (string, *rules.Expr, error) {
	ident := childRule(rn, "Ident")
	bodyNode := childRule(rn, "Body")
	if ident == nil || bodyNode == nil {
		return "", nil, &CompileError{Message: "malformed rule node"}
	}
	body, err := foldBody(bodyNode)
	if err != nil {
		return "", nil, err
	}
	return ident.Text(), body, nil
}

func foldBody(bodyNode *parse.SyntaxTree) (*rules.Expr, error) {
	alts := childRules(bodyNode, "Alt")
	exprs := make([]*rules.Expr, 0, len(alts))
	for _, alt := range alts {
		e, err := foldAlt(alt)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
	}
	if len(exprs) == 1 {
		return exprs[0], nil
	}
	return rules.Alternatives(exprs...), nil
}

func foldAlt(altNode *parse.SyntaxTree) (*rules.Expr, error) {
	terms := childRules(altNode, "Term")
	exprs := make([]*rules.Expr, 0, len(terms))
	for _, term := range terms {
		e, err := foldTerm(term)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
	}
	if len(exprs) == 1 {
		return exprs[0], nil
	}
	return rules.Concat(exprs...), nil
}

func foldTerm(termNode *parse.SyntaxTree) (*rules.Expr, error) {
	atomNode := childRule(termNode, "Atom")
	if atomNode == nil {
		return nil, &CompileError{Message: "malformed term node"}
	}
	atom, err := foldAtom(atomNode)
	if err != nil {
		return nil, err
	}
	quant := childRule(termNode, "Quant")
	if quant == nil {
		return atom, nil
	}
	switch quant.Text() {
	case "*":
		return rules.Many(atom), nil
	case "+":
		return rules.OneOrMore(atom), nil
	case "?":
		return rules.Optional(atom), nil
	}
	return nil, &CompileError{Message: fmt.Sprintf("unknown quantifier %q", quant.Text())}
}

func foldAtom(atomNode *parse.SyntaxTree) (*rules.Expr, error) {
	if s := childRule(atomNode, "String"); s != nil {
		lexeme := s.Text() // includes the surrounding quotes
		return rules.Terminal(lexeme[1 : len(lexeme)-1]), nil
	}
	if id := childRule(atomNode, "Ident"); id != nil {
		return rules.Name(id.Text()), nil
	}
	if g := childRule(atomNode, "Group"); g != nil {
		bodyNode := childRule(g, "Body")
		if bodyNode == nil {
			return nil, &CompileError{Message: "malformed group node"}
		}
		return foldBody(bodyNode)
	}
	return nil, &CompileError{Message: "malformed atom node"}
}

// childRule returns the first direct child which is a rule node of the
// given name, or nil.
func childRule(t *parse.SyntaxTree, rule string) *parse.SyntaxTree {
	for _, c := range t.Children {
		if c.RuleName == rule {
			return c
		}
	}
	return nil
}

// childRules returns all direct children which are rule nodes of the
// given name, in order.
func childRules(t *parse.SyntaxTree, rule string) []*parse.SyntaxTree {
	var nodes []*parse.SyntaxTree
	for _, c := range t.Children {
		if c.RuleName == rule {
			nodes = append(nodes, c)
		}
	}
	return nodes
}
