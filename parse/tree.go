package parse

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/

import (
	"strings"

	"github.com/npillmayer/parsley"
)

// SyntaxTree is the concrete syntax tree produced by a successful parse.
// A node is either a rule node — RuleName set, Token nil — with its
// children in grammar order, or a token leaf — Token set, no children —
// for one consumed input token. The leaves of a tree, read left to
// right, are exactly the input token sequence.
type SyntaxTree struct {
	RuleName string
	Token    parsley.Token
	Children []*SyntaxTree
}

// IsToken returns true for token leaves.
func (t *SyntaxTree) IsToken() bool {
	return t.Token != nil
}

// Leaves returns the tree's token leaves in left-to-right order.
func (t *SyntaxTree) Leaves() []parsley.Token {
	var leaves []parsley.Token
	t.appendLeaves(&leaves)
	return leaves
}

func (t *SyntaxTree) appendLeaves(leaves *[]parsley.Token) {
	if t.IsToken() {
		*leaves = append(*leaves, t.Token)
		return
	}
	for _, c := range t.Children {
		c.appendLeaves(leaves)
	}
}

// Text concatenates the lexemes of all leaves, i.e. the slice of input
// this tree covers.
func (t *SyntaxTree) Text() string {
	var sb strings.Builder
	for _, leaf := range t.Leaves() {
		sb.WriteString(leaf.Lexeme())
	}
	return sb.String()
}

// String renders the tree as a compact s-expression, mainly for trace
// output and tests.
func (t *SyntaxTree) String() string {
	var sb strings.Builder
	t.write(&sb)
	return sb.String()
}

func (t *SyntaxTree) write(sb *strings.Builder) {
	if t.IsToken() {
		sb.WriteString(t.Token.Lexeme())
		return
	}
	sb.WriteString("(")
	sb.WriteString(t.RuleName)
	for _, c := range t.Children {
		sb.WriteString(" ")
		c.write(sb)
	}
	sb.WriteString(")")
}

// --- Shared intermediate trees ---------------------------------------------

// SharedNode is the engine-internal syntax-tree representation. It is
// isomorphic to SyntaxTree, but subtrees may be shared: during a parse,
// many concurrent partial results reference common prefix structure, so
// the nodes form a DAG rather than a tree. Engines convert the accepted
// root exactly once into an unshared SyntaxTree via Freeze.
type SharedNode struct {
	RuleName string
	Token    parsley.Token
	Children []*SharedNode
}

// RuleNode creates a shared rule node.
func RuleNode(ruleName string, children []*SharedNode) *SharedNode {
	return &SharedNode{RuleName: ruleName, Children: children}
}

// TokenNode creates a shared leaf holding a copy of the token.
func TokenNode(tok parsley.Token) *SharedNode {
	return &SharedNode{Token: tok.Clone()}
}

// Freeze converts the intermediate DAG rooted at n into a SyntaxTree in
// which no node is shared. Nodes reachable more than once are copied
// once per occurrence.
func (n *SharedNode) Freeze() *SyntaxTree {
	if n.Token != nil {
		return &SyntaxTree{Token: n.Token.Clone()}
	}
	children := make([]*SyntaxTree, len(n.Children))
	for i, c := range n.Children {
		children[i] = c.Freeze()
	}
	return &SyntaxTree{RuleName: n.RuleName, Children: children}
}
