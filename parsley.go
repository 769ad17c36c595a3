package parsley

// --- A general purpose interface for tokens --------------------------------

// Token is the capability parsers require from input tokens. Parsley never
// inspects token contents itself: matching a token against a terminal
// pattern is entirely the token type's concern, including what a pattern
// means. Engines only rely on tokens being clonable and on Matches being
// free of side effects.
//
// An example would be a token for a keyword:
//
//    Matches("begin")  ⇒ true for a token scanned from input "begin"
//    Lexeme()          ⇒ "begin"
//
// Lexeme is used for trace output and for reading the leaves of a syntax
// tree back as input text.
type Token interface {
	Matches(pattern string) (bool, error)
	Clone() Token
	Lexeme() string
}
