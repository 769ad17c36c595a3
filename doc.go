/*
Package parsley is a grammar-driven parsing toolbox.

Parsley accepts context-free grammars written in an extended BNF notation
and parses token streams into concrete syntax trees. It is a companion
project to GoRGO: where GoRGO generates LR parse tables and drives
table-based engines, parsley interprets the grammar's rule graph
directly. That makes it well suited for on-the-fly usage — define a
grammar at runtime, get a parser for it in a couple of lines of code,
with no code-generation or table-building step in between.

Package structure is as follows:

■ rules: Package rules holds the in-memory representation of grammar
rules — recursive rule expressions with alternation, concatenation and
the usual EBNF quantifiers — together with a builder for constructing
rule sets programmatically.

■ bnf: Package bnf compiles grammars from BNF source text. The
metagrammar is bootstrapped through parsley's own backtracking engine.

■ parse: Package parse defines syntax trees and parse errors. Its
sub-packages implement two execution engines: a memoized backtracking
parser (parse/backtrack) and a graph-structured-stack parser
(parse/gss).

The base package contains the token abstraction which is used throughout
all the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package parsley
