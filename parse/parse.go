/*
Package parse defines the common ground for parsley's execution engines:
concrete syntax trees, parse errors, and the furthest-failure record.

The engines themselves live in the sub-packages backtrack and gss. Both
consume a rule set (rules.Parser) together with a token sequence and a
start-rule name, and produce either a SyntaxTree or a parse error from
this package. A parse succeeds if and only if some derivation of the
start rule consumes the entire input; the gss engine additionally fails
with an AmbiguousParseError when more than one derivation does.

Error positioning follows the furthest-failure strategy: every failed
terminal match during a parse is logged against a monotone record which
keeps only the maximum input position, together with the set of terminal
patterns expected there. Whatever an engine tried last is usually not
what a user wants reported; the rightmost failure is.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package parse

import (
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'parsley.parse'.
func tracer() tracing.Trace {
	return tracing.Select("parsley.parse")
}

// FailureCache collects terminal-match failures during a parse run and
// condenses them into the furthest failure: the maximum input position
// where a terminal failed to match, and every pattern expected there.
//
// Engines create one cache per parse run and log every miss; the zero
// position is the initial furthest position.
type FailureCache struct {
	index    int
	expected *treeset.Set // of string, sorted
}

// NewFailureCache creates an empty failure cache.
func NewFailureCache() *FailureCache {
	return &FailureCache{
		expected: treeset.NewWithStringComparator(),
	}
}

// Log records that a terminal with the given pattern failed to match at
// input position index. Positions smaller than the current furthest
// position are ignored; a larger position resets the expected set.
func (fc *FailureCache) Log(index int, pattern string) {
	if index > fc.index {
		fc.index = index
		fc.expected.Clear()
	}
	if index == fc.index {
		fc.expected.Add(pattern)
	}
}

// Index returns the furthest failure position logged so far.
func (fc *FailureCache) Index() int {
	return fc.index
}

// Expected returns the terminal patterns expected at the furthest
// failure position, sorted and without duplicates.
func (fc *FailureCache) Expected() []string {
	values := fc.expected.Values()
	patterns := make([]string, len(values))
	for i, v := range values {
		patterns[i] = v.(string)
	}
	return patterns
}

// Err condenses the cache into a parse error for a failed run over
// inputLen tokens: IncompleteParseError if the furthest failure lies
// within the input, OutOfInputError if the input ended too early.
func (fc *FailureCache) Err(inputLen int) error {
	tracer().Debugf("furthest failure at %d of %d, expecting %v", fc.index, inputLen, fc.Expected())
	if fc.index < inputLen {
		return &IncompleteParseError{Index: fc.index, Expected: fc.Expected()}
	}
	return &OutOfInputError{Expected: fc.Expected()}
}
