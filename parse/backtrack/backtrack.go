/*
Package backtrack implements a memoized backtracking parser.

The engine interprets a rule set (rules.Parser) directly, without a
table-construction step. It performs top-down parsing with full
backtracking over all alternatives and quantifiers, which handles any
context-free grammar with left-factoring ambiguity and unbounded
lookahead — with the single exception of left recursion, which does not
terminate under a top-down strategy and is not supported.

Naive backtracking is exponential. The engine therefore memoizes, per
pair of (sub-expression, input position), the complete set of partial
matches starting there. Each partial match is a continuation: the input
position immediately after the match, together with the forest of
intermediate subtrees it produced. Memoizing sets of continuations
rather than single results is what lets the engine track multiple
simultaneous derivations through a sub-expression; the idea goes back to
Mark Johnson, "Memoization in Top-Down Parsing" (Computational
Linguistics 21(3), 1995), and is a close relative of the packrat
technique of Ford ("Packrat Parsing", ICFP 2002) — generalized from a
single result per position to a result set.

Intermediate subtrees are shared between continuations (see
parse.SharedNode); the accepted derivation is converted into an unshared
syntax tree once, at the end of the parse.

If several derivations cover the complete input, the engine silently
returns the first one found; use the engine in package gss to have
ambiguity detected instead.

Recursion depth is proportional to grammar nesting and derivation depth.
The Go runtime grows goroutine stacks on demand, so deep derivations are
bounded by available memory, not by the size of an OS thread stack.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package backtrack

import (
	"github.com/npillmayer/schuko/tracing"

	"github.com/npillmayer/parsley"
	"github.com/npillmayer/parsley/parse"
	"github.com/npillmayer/parsley/rules"
)

// tracer traces with key 'parsley.parse'.
func tracer() tracing.Trace {
	return tracing.Select("parsley.parse")
}

// Parser is a backtracking-parser type. Create and initialize one with
// backtrack.NewParser(...). A Parser holds only the immutable rule set;
// all per-parse state lives on the stack of a Parse call, so a single
// Parser may run concurrent parses.
type Parser struct {
	grammar *rules.Parser
}

// NewParser creates a backtracking parser for a rule set.
func NewParser(grammar *rules.Parser) *Parser {
	return &Parser{grammar: grammar}
}

// A continuation is one successful partial match of a sub-expression:
// next is the index of the first token after the match, forest the
// ordered intermediate subtrees the match produced. The memo table maps
// (sub-expression, start index) to the set of all its continuations.
type continuation struct {
	next   int
	forest []*parse.SharedNode
}

type memoKey struct {
	expr *rules.Expr
	pos  int
}

// Per-parse state.
type run struct {
	grammar  *rules.Parser
	tokens   []parsley.Token
	memo     map[memoKey][]continuation
	failures *parse.FailureCache
}

// Parse parses a token sequence, starting at the rule named startRule.
// It returns the concrete syntax tree of the first derivation found that
// consumes the entire input, or a parse error (see package parse).
func (p *Parser) Parse(tokens []parsley.Token, startRule string) (*parse.SyntaxTree, error) {
	start := rules.Name(startRule)
	r := &run{
		grammar:  p.grammar,
		tokens:   tokens,
		memo:     make(map[memoKey][]continuation),
		failures: parse.NewFailureCache(),
	}
	tracer().Debugf("backtracking parse of %d token(s), start rule %s", len(tokens), startRule)
	if err := r.parseExpr(start, 0); err != nil {
		return nil, err
	}
	for _, c := range r.memo[memoKey{start, 0}] {
		if c.next == len(tokens) {
			tracer().Debugf("parse accepted, freezing syntax tree")
			return c.forest[0].Freeze(), nil
		}
	}
	tracer().Debugf("parse failed, furthest failure at %d", r.failures.Index())
	return nil, r.failures.Err(len(tokens))
}

// parseExpr ensures that the continuation set for (e, pos) is memoized.
// An entry already present — even an empty one — means the expression
// has been expanded at this position before and must not be re-entered.
func (r *run) parseExpr(e *rules.Expr, pos int) error {
	key := memoKey{e, pos}
	if _, ok := r.memo[key]; ok {
		return nil
	}
	var conts []continuation
	switch e.Op {
	case rules.OpTerminal:
		if pos < len(r.tokens) {
			ok, err := r.tokens[pos].Matches(e.Pattern)
			if err != nil {
				return parse.Internalf("matching token at %d: %v", pos, err)
			}
			if ok {
				conts = append(conts, continuation{
					next:   pos + 1,
					forest: []*parse.SharedNode{parse.TokenNode(r.tokens[pos])},
				})
			} else {
				r.failures.Log(pos, e.Pattern)
			}
		} else {
			r.failures.Log(pos, e.Pattern)
		}
	case rules.OpRuleName:
		body := r.grammar.Rule(e.Pattern)
		if body == nil {
			return &parse.UnknownRuleError{Name: e.Pattern}
		}
		if err := r.parseExpr(body, pos); err != nil {
			return err
		}
		for _, c := range r.memo[memoKey{body, pos}] {
			conts = append(conts, continuation{
				next:   c.next,
				forest: []*parse.SharedNode{parse.RuleNode(e.Pattern, c.forest)},
			})
		}
	case rules.OpConcat:
		pass := []continuation{{next: pos}}
		for _, sub := range e.Children {
			var err error
			if pass, err = r.extendAll(pass, sub); err != nil {
				return err
			}
		}
		conts = pass
	case rules.OpAlternatives:
		for _, sub := range e.Children {
			if err := r.parseExpr(sub, pos); err != nil {
				return err
			}
			conts = append(conts, r.memo[memoKey{sub, pos}]...)
		}
	case rules.OpOptional:
		conts = append(conts, continuation{next: pos})
		child := e.Child()
		if err := r.parseExpr(child, pos); err != nil {
			return err
		}
		conts = append(conts, r.memo[memoKey{child, pos}]...)
	case rules.OpMany, rules.OpOneOrMore:
		if e.Op == rules.OpMany {
			conts = append(conts, continuation{next: pos})
		}
		child := e.Child()
		pass := []continuation{{next: pos}}
		for len(pass) > 0 {
			var next []continuation
			for _, c := range pass {
				if err := r.parseExpr(child, c.next); err != nil {
					return err
				}
				for _, cc := range r.memo[memoKey{child, c.next}] {
					if cc.next <= c.next {
						continue // iteration without progress, repeating it would not terminate
					}
					next = append(next, continuation{
						next:   cc.next,
						forest: joinForests(c.forest, cc.forest),
					})
				}
			}
			conts = append(conts, next...)
			pass = next
		}
	default:
		return parse.Internalf("rule expression with unknown op %d", e.Op)
	}
	tracer().Debugf("memo[%s @ %d] = %d continuation(s)", e, pos, len(conts))
	r.memo[key] = conts
	return nil
}

// extendAll advances every continuation of the current pass over e,
// producing the next pass. The result may hold more or fewer
// continuations than the input.
func (r *run) extendAll(pass []continuation, e *rules.Expr) ([]continuation, error) {
	var next []continuation
	for _, c := range pass {
		if err := r.parseExpr(e, c.next); err != nil {
			return nil, err
		}
		for _, cc := range r.memo[memoKey{e, c.next}] {
			next = append(next, continuation{
				next:   cc.next,
				forest: joinForests(c.forest, cc.forest),
			})
		}
	}
	return next, nil
}

// joinForests concatenates two forests into a fresh slice. Forests are
// shared between continuations and must never be appended to in place.
func joinForests(a, b []*parse.SharedNode) []*parse.SharedNode {
	f := make([]*parse.SharedNode, 0, len(a)+len(b))
	f = append(f, a...)
	return append(f, b...)
}
