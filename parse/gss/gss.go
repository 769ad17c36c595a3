/*
Package gss implements a parser driven by a graph-structured stack.

Like package backtrack, the engine interprets a rule set directly. But
where the backtracking parser explores derivations depth-first, this
engine advances every live derivation in lock-step, token by token —
the strategy made popular by Tomita-style GLR parsing (see e.g.
McPeak/Necula, "Elkhound: A Fast, Practical GLR Parser Generator",
CC 2004). Since parsley has no parse tables, the graph-structured stack
(GSS) here encodes positions in the grammar's rule graph instead of
automaton states:

A GSS node is one parsing state — the rule expression the state points
at, plus a parent pointer naming the immediately enclosing grammar
construct, plus a small datum describing the node's role inside that
parent (the index within a concatenation, or nothing for a chosen
branch, or "done" for an accepted parse). All concurrently live states
thus form a DAG threaded by parent pointers, the parse-time analogue of
the DAG-structured stacks in gorgo's lr/dss package.

A GSS link pairs a node with its predecessor links, recording the order
in which states consumed input. Links are organized in layers: layer k
holds links whose node is a terminal expression that is to match token
k. Parsing seeds layer 0 by resolving the start rule down to its
reachable terminals, then repeatedly feeds one token to every link of
the newest layer. After the last token, exactly one surviving "done"
link means success; none means failure; several mean the grammar
derives the input in more than one way, which this engine reports as an
ambiguity error rather than silently picking a derivation.

The syntax tree is reconstructed from the accepted link's predecessor
chain, see backtrace.go. A consequence of that strategy: rules deriving
zero tokens leave no trace in the chain and are omitted from the output
tree.

Layers are not merged: structurally identical states reached on
different paths stay separate links, so layer width can grow
exponentially on heavily ambiguous grammars. Merging would require
node identity to carry input spans and is left for a future revision.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package gss

import (
	"fmt"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/npillmayer/schuko/tracing"

	"github.com/npillmayer/parsley"
	"github.com/npillmayer/parsley/parse"
	"github.com/npillmayer/parsley/rules"
)

// tracer traces with key 'parsley.parse'.
func tracer() tracing.Trace {
	return tracing.Select("parsley.parse")
}

// Parser is a GSS-parser type. Create and initialize one with
// gss.NewParser(...). A Parser holds only the immutable rule set; all
// per-parse state is local to a Parse call, so a single Parser may run
// concurrent parses.
type Parser struct {
	grammar *rules.Parser
}

// NewParser creates a GSS parser for a rule set.
func NewParser(grammar *rules.Parser) *Parser {
	return &Parser{grammar: grammar}
}

// parentData describes a node's role inside its parent construct.
type parentData struct {
	kind  dataKind
	index int // sub-expression index, for concatenations only
}

type dataKind int8

const (
	noData    dataKind = iota // branch of an alternative/option/repetition
	indexData                 // position inside a concatenation
	doneData                  // the whole parse terminated at this node
)

func (d parentData) String() string {
	switch d.kind {
	case indexData:
		return fmt.Sprintf("index(%d)", d.index)
	case doneData:
		return "done"
	}
	return "-"
}

// node is one parsing state: a position in the rule graph together with
// its enclosing syntactic context. Nodes are immutable; identity is
// what distinguishes two instances of the same rule during tree
// reconstruction.
type node struct {
	expr   *rules.Expr
	parent *node
	data   parentData
}

func (n *node) String() string {
	return fmt.Sprintf("[%s %s]", n.expr, n.data)
}

// link records how parsing reached a node: the predecessor links are the
// states the node's derivation consumed its previous token in.
type link struct {
	node *node
	prev []*link
}

// Per-parse state. active tracks advanceAuto frames of the current
// resolve/advance cascade, see below.
type run struct {
	grammar  *rules.Parser
	failures *parse.FailureCache
	active   map[advanceKey]bool
}

type advanceKey struct {
	n    *node
	data parentData
}

// Parse parses a token sequence, starting at the rule named startRule.
// It returns the concrete syntax tree of the single derivation that
// consumes the entire input, an AmbiguousParseError if more than one
// derivation does, or another parse error (see package parse).
func (p *Parser) Parse(tokens []parsley.Token, startRule string) (*parse.SyntaxTree, error) {
	r := &run{
		grammar:  p.grammar,
		failures: parse.NewFailureCache(),
		active:   make(map[advanceKey]bool),
	}
	root := &node{expr: rules.Name(startRule)}
	rootLink := &link{node: root}
	frontier, err := r.resolveToTerminals(root)
	if err != nil {
		return nil, err
	}
	layer := arraylist.New()
	for _, n := range frontier {
		layer.Add(&link{node: n, prev: []*link{rootLink}})
	}
	tracer().Debugf("GSS parse of %d token(s), %d initial state(s)", len(tokens), layer.Size())
	for i, tok := range tokens {
		next := arraylist.New()
		it := layer.Iterator()
		for it.Next() {
			l := it.Value().(*link)
			succs, err := r.advanceToken(l.node, i, tok)
			if err != nil {
				return nil, err
			}
			for _, n := range succs {
				next.Add(&link{node: n, prev: []*link{l}})
			}
		}
		tracer().Debugf("layer %d: %d live state(s)", i+1, next.Size())
		layer = next
	}
	accepted, err := r.acceptedLink(layer, len(tokens))
	if err != nil {
		return nil, err
	}
	trace, err := backtrace(accepted, len(tokens))
	if err != nil {
		return nil, err
	}
	return backtraceToTree(trace, tokens, startRule)
}

// acceptedLink inspects the final layer: exactly one link with "done"
// parent data is an accepted parse. None is a failed parse, reported
// through the failure cache; the layer's pending terminals are what the
// surviving derivations still expected.
func (r *run) acceptedLink(layer *arraylist.List, inputLen int) (*link, error) {
	var accepted []*link
	it := layer.Iterator()
	for it.Next() {
		l := it.Value().(*link)
		if l.node.data.kind == doneData {
			accepted = append(accepted, l)
		} else if l.node.expr.Op == rules.OpTerminal {
			r.failures.Log(inputLen, l.node.expr.Pattern)
		}
	}
	switch len(accepted) {
	case 0:
		tracer().Debugf("no accepting state, furthest failure at %d", r.failures.Index())
		return nil, r.failures.Err(inputLen)
	case 1:
		return accepted[0], nil
	default:
		tracer().Debugf("%d accepting states", len(accepted))
		return nil, &parse.AmbiguousParseError{}
	}
}

// advanceToken consumes one token in state n. The state must point at a
// terminal; a match moves upward through the enclosing constructs to the
// set of terminals that are to match the following token. A mismatch
// ends this derivation and is logged against the failure cache.
func (r *run) advanceToken(n *node, pos int, tok parsley.Token) ([]*node, error) {
	if n.data.kind == doneData {
		return nil, nil // completed parses do not consume further input
	}
	if n.expr.Op != rules.OpTerminal {
		return nil, parse.Internalf("fed token to non-terminal expression %s", n.expr)
	}
	ok, err := tok.Matches(n.expr.Pattern)
	if err != nil {
		return nil, parse.Internalf("matching token at %d: %v", pos, err)
	}
	if !ok {
		r.failures.Log(pos, n.expr.Pattern)
		return nil, nil
	}
	if n.parent == nil {
		return nil, parse.Internalf("terminal expression without parent")
	}
	return r.advanceAuto(n.parent, n.data)
}

// advanceAuto models "this subtree just finished — what comes next?".
// It moves one step upward to the parent construct n, with callerData
// describing which part of n finished, and returns the next frontier of
// terminal-pointing states. No token is consumed.
func (r *run) advanceAuto(n *node, callerData parentData) ([]*node, error) {
	if callerData.kind == doneData {
		return nil, nil
	}
	// A repetition whose body derives the empty string makes advanceAuto
	// and resolveToTerminals mutually recursive over the same node. A
	// frame already active contributes no states beyond what its first
	// expansion yields.
	key := advanceKey{n: n, data: callerData}
	if r.active[key] {
		return nil, nil
	}
	r.active[key] = true
	defer delete(r.active, key)
	switch n.expr.Op {
	case rules.OpTerminal:
		return nil, parse.Internalf("tried to advance terminal %s without a token", n.expr)
	case rules.OpRuleName:
		if n.parent == nil { // the start rule has terminated: accept
			return []*node{{expr: n.expr, data: parentData{kind: doneData}}}, nil
		}
		return r.advanceAuto(n.parent, n.data)
	case rules.OpConcat:
		if callerData.kind != indexData {
			return nil, parse.Internalf("advanced concatenation without index data")
		}
		k := callerData.index
		if k+1 < len(n.expr.Children) {
			return r.resolveToTerminals(&node{
				expr:   n.expr.Children[k+1],
				parent: n,
				data:   parentData{kind: indexData, index: k + 1},
			})
		}
		if n.parent == nil {
			return nil, parse.Internalf("concatenation without parent")
		}
		return r.advanceAuto(n.parent, n.data)
	case rules.OpAlternatives, rules.OpOptional:
		if n.parent == nil {
			return nil, parse.Internalf("%s without parent", n.expr.Op)
		}
		return r.advanceAuto(n.parent, n.data)
	case rules.OpMany, rules.OpOneOrMore:
		if n.parent == nil {
			return nil, parse.Internalf("%s without parent", n.expr.Op)
		}
		again, err := r.resolveToTerminals(&node{ // one more iteration …
			expr:   n.expr.Child(),
			parent: n,
			data:   parentData{kind: noData},
		})
		if err != nil {
			return nil, err
		}
		out, err := r.advanceAuto(n.parent, n.data) // … or leave the repetition
		if err != nil {
			return nil, err
		}
		return append(again, out...), nil
	}
	return nil, parse.Internalf("rule expression with unknown op %d", n.expr.Op)
}

// resolveToTerminals expands state n down to the set of descendant
// states pointing at terminals which are reachable without consuming a
// token.
func (r *run) resolveToTerminals(n *node) ([]*node, error) {
	switch n.expr.Op {
	case rules.OpTerminal:
		return []*node{n}, nil
	case rules.OpRuleName:
		body := r.grammar.Rule(n.expr.Pattern)
		if body == nil {
			return nil, &parse.UnknownRuleError{Name: n.expr.Pattern}
		}
		return r.resolveToTerminals(&node{expr: body, parent: n, data: parentData{kind: noData}})
	case rules.OpConcat:
		if len(n.expr.Children) == 0 {
			return nil, parse.Internalf("concatenation without sub-expressions")
		}
		return r.resolveToTerminals(&node{
			expr:   n.expr.Children[0],
			parent: n,
			data:   parentData{kind: indexData, index: 0},
		})
	case rules.OpAlternatives:
		var terminals []*node
		for _, sub := range n.expr.Children {
			t, err := r.resolveToTerminals(&node{expr: sub, parent: n, data: parentData{kind: noData}})
			if err != nil {
				return nil, err
			}
			terminals = append(terminals, t...)
		}
		return terminals, nil
	case rules.OpOptional:
		taken, err := r.resolveToTerminals(&node{expr: n.expr.Child(), parent: n, data: parentData{kind: noData}})
		if err != nil {
			return nil, err
		}
		skipped, err := r.advanceAuto(n, parentData{kind: noData})
		if err != nil {
			return nil, err
		}
		return append(taken, skipped...), nil
	case rules.OpMany:
		// the empty match is legal, so a Many behaves like an already
		// finished subtree: iterate or move on
		return r.advanceAuto(n, parentData{kind: noData})
	case rules.OpOneOrMore:
		return r.resolveToTerminals(&node{expr: n.expr.Child(), parent: n, data: parentData{kind: noData}})
	}
	return nil, parse.Internalf("rule expression with unknown op %d", n.expr.Op)
}
