package gss

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/

import (
	"github.com/npillmayer/parsley"
	"github.com/npillmayer/parsley/parse"
	"github.com/npillmayer/parsley/rules"
)

// backtrace walks the predecessor chain from the accepted link back to
// the seed of the parse and returns the traversed nodes in input order.
// The two chain ends — the root link and the accepting "done" link —
// belong to the synthesized start expression and are stripped; what
// remains is exactly one terminal-pointing node per consumed token.
func backtrace(accepted *link, inputLen int) ([]*node, error) {
	var chain []*node
	for l := accepted; l != nil; {
		chain = append(chain, l.node)
		if len(l.prev) == 0 {
			l = nil
		} else {
			l = l.prev[0]
		}
	}
	// chain runs backwards: done link first, root link last
	if len(chain) != inputLen+2 {
		return nil, parse.Internalf("backtrace covers %d node(s) for %d token(s)",
			len(chain)-2, inputLen)
	}
	trace := make([]*node, 0, inputLen)
	for i := len(chain) - 2; i >= 1; i-- {
		trace = append(trace, chain[i])
	}
	return trace, nil
}

// backtraceToTree reconstructs the syntax tree from a backtrace. Every
// backtrace node consumed one token; ascending its parent chain tells
// which rule instances the token sits in. Rule instances are keyed by
// node identity: the first token reaching a rule node creates its
// subtree, later tokens append to it and stop ascending there, since
// the ancestors of a known rule instance are already in place.
//
// Rules that consumed zero tokens never appear in any parent chain of
// the backtrace and are therefore absent from the resulting tree. In
// the extreme case of an empty input the whole derivation is
// zero-token, and the result collapses to a bare start-rule node.
func backtraceToTree(trace []*node, tokens []parsley.Token, startRule string) (*parse.SyntaxTree, error) {
	if len(trace) == 0 {
		return &parse.SyntaxTree{RuleName: startRule}, nil
	}
	subtrees := make(map[*node]*parse.SharedNode)
	var root *parse.SharedNode
	for i, n := range trace {
		if n.expr.Op != rules.OpTerminal {
			return nil, parse.Internalf("non-terminal %s in backtrace", n.expr)
		}
		curr := parse.TokenNode(tokens[i])
		for cn := n; cn.parent != nil; {
			par := cn.parent
			if par.expr.Op == rules.OpRuleName {
				t, seen := subtrees[par]
				if !seen {
					t = parse.RuleNode(par.expr.Pattern, nil)
					subtrees[par] = t
				}
				t.Children = append(t.Children, curr)
				curr = t
				if seen {
					break // this rule instance is already linked into the tree
				}
			}
			cn = par
			if cn.parent == nil {
				root = subtrees[cn]
			}
		}
	}
	if root == nil {
		return nil, parse.Internalf("no root subtree after reconstruction")
	}
	tracer().Debugf("reconstructed tree from %d backtrace node(s)", len(trace))
	return root.Freeze(), nil
}
