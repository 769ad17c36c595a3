package backtrack

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/npillmayer/parsley"
	"github.com/npillmayer/parsley/parse"
	"github.com/npillmayer/parsley/rules"
)

// Small grammars in the style of the ones the BNF compiler produces,
// built programmatically to keep these tests independent of package bnf.

func grammar(t *testing.T, build func(b *rules.Builder)) *rules.Parser {
	b := rules.NewBuilder("test grammar")
	build(b)
	p, err := b.Parser()
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func parseString(g *rules.Parser, input string, start string) (*parse.SyntaxTree, error) {
	return NewParser(g).Parse(parsley.StringTokens(input), start)
}

func leavesOf(t *testing.T, tree *parse.SyntaxTree) string {
	if tree == nil {
		t.Fatal("no tree to read leaves from")
	}
	return tree.Text()
}

// --- the Tests -------------------------------------------------------------

func TestSingleTerminal(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsley.parse")
	defer teardown()
	//
	g := grammar(t, func(b *rules.Builder) {
		b.Rule("S", rules.Terminal("a"))
	})
	tree, err := parseString(g, "a", "S")
	if err != nil {
		t.Fatal(err)
	}
	if tree.RuleName != "S" || leavesOf(t, tree) != "a" {
		t.Errorf("parsed tree is %s", tree)
	}
}

func TestOneOrMore(t *testing.T) { // scenario: S : "a"+ over "aaa"
	teardown := gotestingadapter.QuickConfig(t, "parsley.parse")
	defer teardown()
	//
	g := grammar(t, func(b *rules.Builder) {
		b.Rule("S", rules.OneOrMore(rules.Terminal("a")))
	})
	tree, err := parseString(g, "aaa", "S")
	if err != nil {
		t.Fatal(err)
	}
	if len(tree.Leaves()) != 3 {
		t.Errorf("expected 3 token leaves, got %d", len(tree.Leaves()))
	}
}

func TestOneOrMoreEmptyInput(t *testing.T) { // scenario: S : "a"+ over ""
	teardown := gotestingadapter.QuickConfig(t, "parsley.parse")
	defer teardown()
	//
	g := grammar(t, func(b *rules.Builder) {
		b.Rule("S", rules.OneOrMore(rules.Terminal("a")))
	})
	_, err := parseString(g, "", "S")
	oe, ok := err.(*parse.OutOfInputError)
	if !ok {
		t.Fatalf("expected out-of-input error, got %v", err)
	}
	if len(oe.Expected) != 1 || oe.Expected[0] != "a" {
		t.Errorf("expected set = %v", oe.Expected)
	}
}

func TestIncompleteParse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsley.parse")
	defer teardown()
	//
	g := grammar(t, func(b *rules.Builder) {
		b.Rule("S", rules.OneOrMore(rules.Terminal("a")))
	})
	_, err := parseString(g, "b", "S")
	ie, ok := err.(*parse.IncompleteParseError)
	if !ok {
		t.Fatalf("expected incomplete-parse error, got %v", err)
	}
	if ie.Index != 0 || len(ie.Expected) != 1 || ie.Expected[0] != "a" {
		t.Errorf("failure reported at %d expecting %v", ie.Index, ie.Expected)
	}
	_, err = parseString(g, "aab", "S")
	if ie, ok = err.(*parse.IncompleteParseError); !ok || ie.Index != 2 {
		t.Errorf("expected incomplete parse at 2, got %v", err)
	}
}

func TestOutOfInput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsley.parse")
	defer teardown()
	//
	g := grammar(t, func(b *rules.Builder) {
		b.Rule("S", rules.Concat(rules.Terminal("a"), rules.Terminal("b")))
	})
	_, err := parseString(g, "a", "S")
	oe, ok := err.(*parse.OutOfInputError)
	if !ok {
		t.Fatalf("expected out-of-input error, got %v", err)
	}
	if len(oe.Expected) != 1 || oe.Expected[0] != "b" {
		t.Errorf("expected set = %v", oe.Expected)
	}
}

func TestOptionalLookahead(t *testing.T) { // scenario: S : X ; X : "a"? "a" over "a"
	teardown := gotestingadapter.QuickConfig(t, "parsley.parse")
	defer teardown()
	//
	g := grammar(t, func(b *rules.Builder) {
		b.Rule("S", rules.Name("X"))
		b.Rule("X", rules.Concat(rules.Optional(rules.Terminal("a")), rules.Terminal("a")))
	})
	tree, err := parseString(g, "a", "S")
	if err != nil {
		t.Fatal(err)
	}
	if leavesOf(t, tree) != "a" {
		t.Errorf("leaves read back as %q", tree.Text())
	}
}

func TestManyAlternatives(t *testing.T) { // scenario: S : ("a" | "b")* over "abba"
	teardown := gotestingadapter.QuickConfig(t, "parsley.parse")
	defer teardown()
	//
	g := grammar(t, func(b *rules.Builder) {
		b.Rule("S", rules.Many(rules.Alternatives(rules.Terminal("a"), rules.Terminal("b"))))
	})
	tree, err := parseString(g, "abba", "S")
	if err != nil {
		t.Fatal(err)
	}
	if leavesOf(t, tree) != "abba" {
		t.Errorf("leaves read back as %q", tree.Text())
	}
	if len(tree.Leaves()) != 4 {
		t.Errorf("expected 4 token leaves, got %d", len(tree.Leaves()))
	}
}

func TestEmptyInputAccepted(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsley.parse")
	defer teardown()
	//
	g := grammar(t, func(b *rules.Builder) {
		b.Rule("W", rules.Many(rules.Terminal(" ")))
	})
	tree, err := parseString(g, "", "W")
	if err != nil {
		t.Fatal(err)
	}
	if tree.RuleName != "W" || len(tree.Leaves()) != 0 {
		t.Errorf("expected an empty rule node, got %s", tree)
	}
}

func TestLeftFactoringAmbiguity(t *testing.T) { // S : "a" | "a" "b" needs lookahead
	teardown := gotestingadapter.QuickConfig(t, "parsley.parse")
	defer teardown()
	//
	g := grammar(t, func(b *rules.Builder) {
		b.Rule("S", rules.Alternatives(
			rules.Terminal("a"),
			rules.Concat(rules.Terminal("a"), rules.Terminal("b")),
		))
	})
	tree, err := parseString(g, "ab", "S")
	if err != nil {
		t.Fatal(err)
	}
	if leavesOf(t, tree) != "ab" {
		t.Errorf("leaves read back as %q", tree.Text())
	}
}

func TestUnknownRule(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsley.parse")
	defer teardown()
	//
	g := grammar(t, func(b *rules.Builder) {
		b.Rule("S", rules.Name("Missing"))
	})
	_, err := parseString(g, "a", "S")
	ue, ok := err.(*parse.UnknownRuleError)
	if !ok || ue.Name != "Missing" {
		t.Errorf("expected unknown-rule error for Missing, got %v", err)
	}
}

func TestEmptyRepetitionStops(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsley.parse")
	defer teardown()
	//
	// W matches empty, so the repetition must not iterate forever
	g := grammar(t, func(b *rules.Builder) {
		b.Rule("S", rules.Many(rules.Name("W")))
		b.Rule("W", rules.Many(rules.Terminal(" ")))
	})
	tree, err := parseString(g, "  ", "S")
	if err != nil {
		t.Fatal(err)
	}
	if leavesOf(t, tree) != "  " {
		t.Errorf("leaves read back as %q", tree.Text())
	}
}

func TestDeepRightRecursion(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parsley.parse")
	defer teardown()
	//
	g := grammar(t, func(b *rules.Builder) {
		b.Rule("R", rules.Alternatives(
			rules.Concat(rules.Terminal("a"), rules.Name("R")),
			rules.Terminal("b"),
		))
	})
	input := strings.Repeat("a", 4000) + "b"
	tree, err := parseString(g, input, "R")
	if err != nil {
		t.Fatal(err)
	}
	if len(tree.Leaves()) != 4001 {
		t.Errorf("expected 4001 token leaves, got %d", len(tree.Leaves()))
	}
}
