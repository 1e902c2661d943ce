package search

import (
	"testing"

	"github.com/nexuscrm/datatable/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"Empty", "", ""},
		{"Alphanumeric", "abc123XYZ", "abc123XYZ"},
		{"Allowed punctuation", "a_b.c/d-e@f,g#h:i;j", "a_b.c/d-e@f,g#h:i;j"},
		{"Quotes dropped", "O'Brien", "OBrien"},
		{"Injection attempt", "x'); DROP TABLE t_random;--", "x;DROPTABLEt_random;--"},
		{"Spaces dropped", "a b", "ab"},
		{"Percent and wildcard dropped", "50%*", "50"},
		{"Non ASCII dropped", "café", "caf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.in))
		})
	}
}

func TestTrim(t *testing.T) {
	assert.Equal(t, "a b", Trim("  a b \t\n"))
	assert.Equal(t, "", Trim("   "))
	assert.Equal(t, "", Trim(""))
}

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		terms    []string
		operator Operator
	}{
		{"OR split", "abc|def", []string{"abc", "def"}, OperatorOr},
		{"AND split", "abc + def+ghi", []string{"abc", "def", "ghi"}, OperatorAnd},
		{"Single term", "abc", []string{"abc"}, OperatorOr},
		{"Empty", "", []string{""}, OperatorOr},
		{"Trim before sanitize", "  a b  |x", []string{"ab", "x"}, OperatorOr},
		{"Sanitized terms", "ab'c|d\"ef", []string{"abc", "def"}, OperatorOr},
		{"Trailing delimiter keeps empty term", "abc|", []string{"abc", ""}, OperatorOr},
		{"Sentinel", "___", []string{"___"}, OperatorOr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, err := Parse(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.terms, expr.Terms)
			assert.Equal(t, tt.operator, expr.Operator)
		})
	}
}

func TestParse_AmbiguousOperator(t *testing.T) {
	for _, raw := range []string{"a+b|c", "|+", "x|y+z", "+|"} {
		_, err := Parse(raw)
		require.Error(t, err, raw)
		assert.True(t, errors.IsInput(err))
		assert.Equal(t, errors.ReasonAmbiguousOperator, errors.ReasonOf(err))
	}
}

func TestExpression_Unfiltered(t *testing.T) {
	tests := []struct {
		raw  string
		want bool
	}{
		{"", true},
		{"   ", true},
		{"'\"", true},
		{"___", true},
		{" ___ ", true},
		{"___|abc", false},
		{"abc", false},
		{"|", true},
	}

	for _, tt := range tests {
		expr, err := Parse(tt.raw)
		require.NoError(t, err)
		assert.Equal(t, tt.want, expr.Unfiltered(), "raw=%q", tt.raw)
	}
}

func TestExpression_EffectiveTerms(t *testing.T) {
	expr, err := Parse("abc||def|")
	require.NoError(t, err)
	assert.Equal(t, []string{"abc", "", "def", ""}, expr.Terms)
	assert.Equal(t, []string{"abc", "def"}, expr.EffectiveTerms())
}

func TestMatchModes(t *testing.T) {
	mode, err := ParseMatchMode("like")
	require.NoError(t, err)
	assert.Equal(t, MatchSubstring, mode)

	mode, err = ParseMatchMode("exact")
	require.NoError(t, err)
	assert.Equal(t, MatchExact, mode)

	_, err = ParseMatchMode("LIKE")
	assert.True(t, errors.IsQuery(err))

	assert.Equal(t, MatchExact, MatchModeFromExactFlag("true"))
	for _, flag := range []string{"false", "", "yes", "TRUE", "1"} {
		assert.Equal(t, MatchSubstring, MatchModeFromExactFlag(flag), flag)
	}
}
