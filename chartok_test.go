package parsley

import "testing"

func TestCharTokenMatch(t *testing.T) {
	tok := Char('a')
	if ok, err := tok.Matches("a"); err != nil || !ok {
		t.Errorf("expected 'a' to match pattern \"a\", got %v/%v", ok, err)
	}
	if ok, err := tok.Matches("b"); err != nil || ok {
		t.Errorf("expected 'a' not to match pattern \"b\", got %v/%v", ok, err)
	}
}

func TestCharTokenPatternError(t *testing.T) {
	tok := Char('a')
	if _, err := tok.Matches("ab"); err == nil {
		t.Error("expected match against multi-character pattern to be an error")
	}
	if _, err := tok.Matches(""); err == nil {
		t.Error("expected match against empty pattern to be an error")
	}
}

func TestCharTokenClone(t *testing.T) {
	tok := Char('ß')
	clone := tok.Clone()
	if clone.Lexeme() != "ß" {
		t.Errorf("clone has lexeme %q", clone.Lexeme())
	}
}

func TestStringTokens(t *testing.T) {
	toks := StringTokens("ab c")
	if len(toks) != 4 {
		t.Fatalf("expected 4 tokens, got %d", len(toks))
	}
	lexemes := ""
	for _, tok := range toks {
		lexemes += tok.Lexeme()
	}
	if lexemes != "ab c" {
		t.Errorf("tokens read back as %q", lexemes)
	}
}
