package query

import (
	"fmt"
	"strings"
)

// Query is a node of a parsed vocabulary query.
type Query interface {
	queryNode()
	String() string
}

// TermQuery matches one exact word.
type TermQuery struct {
	Term string
}

func (q *TermQuery) queryNode() {}

func (q *TermQuery) String() string {
	return fmt.Sprintf("term(%s)", q.Term)
}

// PrefixQuery matches words starting with Prefix.
type PrefixQuery struct {
	Prefix string
}

func (q *PrefixQuery) queryNode() {}

func (q *PrefixQuery) String() string {
	return fmt.Sprintf("prefix(%s*)", q.Prefix)
}

// FuzzyQuery matches words within Fuzziness edits of Term.
type FuzzyQuery struct {
	Term      string
	Fuzziness uint8
}

func (q *FuzzyQuery) queryNode() {}

func (q *FuzzyQuery) String() string {
	return fmt.Sprintf("fuzzy(%s~%d)", q.Term, q.Fuzziness)
}

// RegexQuery matches words against the whole of Pattern.
type RegexQuery struct {
	Pattern string
}

func (q *RegexQuery) queryNode() {}

func (q *RegexQuery) String() string {
	return fmt.Sprintf("regex(/%s/)", q.Pattern)
}

// MatchAllQuery matches every word. It is the result of an empty query.
type MatchAllQuery struct{}

func (q *MatchAllQuery) queryNode() {}

func (q *MatchAllQuery) String() string { return "all" }

// BoolQuery combines clauses: every Must clause, at least one Should clause
// when present, and no MustNot clause.
type BoolQuery struct {
	Must    []Query
	Should  []Query
	MustNot []Query
}

func (q *BoolQuery) queryNode() {}

func (q *BoolQuery) String() string {
	var parts []string
	if len(q.Must) > 0 {
		parts = append(parts, fmt.Sprintf("AND(%s)", joinQueries(q.Must)))
	}
	if len(q.Should) > 0 {
		parts = append(parts, fmt.Sprintf("OR(%s)", joinQueries(q.Should)))
	}
	if len(q.MustNot) > 0 {
		parts = append(parts, fmt.Sprintf("NOT(%s)", joinQueries(q.MustNot)))
	}
	if len(parts) == 0 {
		return "bool(empty)"
	}
	return fmt.Sprintf("bool(%s)", strings.Join(parts, " "))
}

func joinQueries(qs []Query) string {
	strs := make([]string, len(qs))
	for i, q := range qs {
		strs[i] = q.String()
	}
	return strings.Join(strs, ", ")
}
