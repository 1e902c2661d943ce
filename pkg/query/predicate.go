package query

import (
	"strings"

	"github.com/nexuscrm/datatable/pkg/errors"
	"github.com/nexuscrm/datatable/pkg/search"
)

// Predicate is a WHERE fragment with '?' placeholders and its bound values
type Predicate struct {
	SQL  string
	Args []interface{}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// BuildPredicate renders
//
//	( (c1 CMP ? OR c2 CMP ? ...) OP (c1 CMP ? OR c2 CMP ? ...) ... )
//
// with one group per term. Inside a group the columns are OR-combined; the
// groups are joined with op. Columns must come from the table registry, never
// from request input: they are quoted but otherwise trusted. Terms are always
// bound as parameters.
func BuildPredicate(d Dialect, columns []string, terms []string, mode search.MatchMode, op search.Operator) (*Predicate, error) {
	if len(columns) == 0 {
		return nil, errors.NewQueryError(errors.ReasonEmptyColumns, "column list is empty")
	}
	if len(terms) == 0 {
		return nil, errors.NewQueryError(errors.ReasonEmptyTerms, "search term list is empty")
	}
	if !mode.Valid() {
		return nil, errors.NewQueryError(errors.ReasonInvalidMode, "match mode must be 'exact' or 'like'")
	}
	if !op.Valid() {
		return nil, errors.NewQueryError(errors.ReasonInvalidOperator, "search operator must be 'and' or 'or'")
	}

	cmp, suffix := "=", ""
	if mode == search.MatchSubstring {
		cmp, suffix = "LIKE", d.LikeEscape()
	}

	lhs := make([]string, len(columns))
	for i, col := range columns {
		lhs[i] = "lower(" + d.TextExpr(d.QuoteIdent(col)) + ")"
	}

	groups := make([]string, 0, len(terms))
	args := make([]interface{}, 0, len(terms)*len(columns))
	for _, term := range terms {
		value := term
		if mode == search.MatchSubstring {
			value = "%" + likeEscaper.Replace(term) + "%"
		}

		parts := make([]string, len(lhs))
		for i, l := range lhs {
			parts[i] = l + " " + cmp + " lower(?)" + suffix
			args = append(args, value)
		}
		groups = append(groups, "("+strings.Join(parts, " OR ")+")")
	}

	joiner := " OR "
	if op == search.OperatorAnd {
		joiner = " AND "
	}

	return &Predicate{
		SQL:  "(" + strings.Join(groups, joiner) + ")",
		Args: args,
	}, nil
}

// PredicateFor derives the predicate for a parsed search expression. It
// returns nil when the expression selects every row, so that the page and
// export paths apply the same no-filter rule.
func PredicateFor(d Dialect, columns []string, expr search.Expression, mode search.MatchMode) (*Predicate, error) {
	if expr.Unfiltered() {
		return nil, nil
	}
	return BuildPredicate(d, columns, expr.EffectiveTerms(), mode, expr.Operator)
}
