package search

import (
	"strings"

	"github.com/nexuscrm/datatable/pkg/constants"
	"github.com/nexuscrm/datatable/pkg/errors"
)

// Operator combines the per-term groups of a predicate
type Operator string

const (
	OperatorAnd Operator = "and"
	OperatorOr  Operator = "or"
)

// Valid reports whether the operator is one of the recognized values
func (o Operator) Valid() bool {
	return o == OperatorAnd || o == OperatorOr
}

// MatchMode selects how a term is compared against a column
type MatchMode string

const (
	// MatchExact is case-insensitive equality
	MatchExact MatchMode = constants.PatternMatchExact
	// MatchSubstring is case-insensitive "contains"
	MatchSubstring MatchMode = constants.PatternMatchLike
)

// Valid reports whether the mode is one of the recognized values
func (m MatchMode) Valid() bool {
	return m == MatchExact || m == MatchSubstring
}

// ParseMatchMode maps the export endpoint's pattern_match value to a MatchMode
func ParseMatchMode(patternMatch string) (MatchMode, error) {
	mode := MatchMode(patternMatch)
	if !mode.Valid() {
		return "", errors.NewQueryError(errors.ReasonInvalidMode, "pattern_match must be 'like' or 'exact'")
	}
	return mode, nil
}

// MatchModeFromExactFlag maps the table UI's exactsearch flag to a MatchMode.
// Only "true" selects an exact match; anything else, including a missing
// flag, is a substring search.
func MatchModeFromExactFlag(flag string) MatchMode {
	if flag == "true" {
		return MatchExact
	}
	return MatchSubstring
}

const (
	andDelimiter = "+"
	orDelimiter  = "|"
)

// Expression is a parsed free-text search
type Expression struct {
	Terms    []string
	Operator Operator
}

// Parse splits raw on '+' (AND) or '|' (OR). Mixing both delimiters is an
// error. Without a delimiter the whole string is a single OR term. Every
// term is trimmed and then sanitized.
func Parse(raw string) (Expression, error) {
	hasAnd := strings.Contains(raw, andDelimiter)
	hasOr := strings.Contains(raw, orDelimiter)

	var parts []string
	op := OperatorOr
	switch {
	case hasAnd && hasOr:
		return Expression{}, errors.NewInputError(errors.ReasonAmbiguousOperator,
			"search cannot contain both '+' (AND search) and '|' (OR search)")
	case hasAnd:
		parts = strings.Split(raw, andDelimiter)
		op = OperatorAnd
	case hasOr:
		parts = strings.Split(raw, orDelimiter)
	default:
		parts = []string{raw}
	}

	terms := make([]string, len(parts))
	for i, p := range parts {
		terms[i] = Sanitize(Trim(p))
	}
	return Expression{Terms: terms, Operator: op}, nil
}

// EffectiveTerms returns the terms that still carry text after sanitizing
func (e Expression) EffectiveTerms() []string {
	out := make([]string, 0, len(e.Terms))
	for _, t := range e.Terms {
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// Unfiltered reports whether the expression selects every row: either no
// term carries text, or the only term is the no-filter sentinel.
func (e Expression) Unfiltered() bool {
	terms := e.EffectiveTerms()
	if len(terms) == 0 {
		return true
	}
	return len(terms) == 1 && terms[0] == constants.NoFilterSentinel
}
