package query

import (
	"fmt"
	"sort"

	"harshagw/textstats/internal/analysis"
)

// Backend provides the primitive lookups of a vocabulary. A limit of zero
// returns every match.
type Backend interface {
	Count(word string) (int, bool, error)
	Prefix(prefix string, limit int) (analysis.Frequencies, error)
	Fuzzy(word string, distance uint8, limit int) (analysis.Frequencies, error)
	Match(pattern string, limit int) (analysis.Frequencies, error)
}

// Executor evaluates a Query AST against a Backend.
type Executor struct {
	backend Backend
}

// NewExecutor creates a new executor.
func NewExecutor(backend Backend) *Executor {
	return &Executor{backend: backend}
}

// Search parses input and executes it.
func Search(backend Backend, input string, limit int) (analysis.Frequencies, error) {
	q, err := ParseString(input)
	if err != nil {
		return nil, err
	}
	return NewExecutor(backend).Execute(q, limit)
}

// Execute returns up to limit matching words, most frequent first and
// alphabetical among equal counts. A limit of zero or less returns all.
func (e *Executor) Execute(q Query, limit int) (analysis.Frequencies, error) {
	set, err := e.eval(q)
	if err != nil {
		return nil, err
	}

	out := make(analysis.Frequencies, 0, len(set))
	for word, count := range set {
		out = append(out, analysis.Frequency{Key: word, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// wordSet maps matching words to their counts.
type wordSet map[string]int

func (e *Executor) eval(q Query) (wordSet, error) {
	switch v := q.(type) {
	case *TermQuery:
		count, ok, err := e.backend.Count(v.Term)
		if err != nil || !ok {
			return wordSet{}, err
		}
		return wordSet{v.Term: count}, nil
	case *PrefixQuery:
		return e.lookup(e.backend.Prefix(v.Prefix, 0))
	case *FuzzyQuery:
		if v.Fuzziness == 0 {
			return e.eval(&TermQuery{Term: v.Term})
		}
		return e.lookup(e.backend.Fuzzy(v.Term, v.Fuzziness, 0))
	case *RegexQuery:
		return e.lookup(e.backend.Match(v.Pattern, 0))
	case *MatchAllQuery:
		return e.lookup(e.backend.Prefix("", 0))
	case *BoolQuery:
		return e.evalBool(v)
	default:
		return nil, fmt.Errorf("unknown query type: %T", q)
	}
}

func (e *Executor) lookup(freqs analysis.Frequencies, err error) (wordSet, error) {
	if err != nil {
		return nil, err
	}
	set := make(wordSet, len(freqs))
	for _, f := range freqs {
		set[f.Key] = f.Count
	}
	return set, nil
}

func (e *Executor) evalBool(q *BoolQuery) (wordSet, error) {
	// "a -b" parses as AND(a, NOT(b)); fold the negation into MustNot
	must := make([]Query, 0, len(q.Must))
	mustNot := append([]Query{}, q.MustNot...)
	for _, m := range q.Must {
		if bq, ok := m.(*BoolQuery); ok && len(bq.Must) == 0 && len(bq.Should) == 0 && len(bq.MustNot) > 0 {
			mustNot = append(mustNot, bq.MustNot...)
			continue
		}
		must = append(must, m)
	}

	var result wordSet
	for _, m := range must {
		set, err := e.eval(m)
		if err != nil {
			return nil, err
		}
		if result == nil {
			result = set
		} else {
			intersect(result, set)
		}
	}

	if len(q.Should) > 0 {
		union := wordSet{}
		for _, s := range q.Should {
			set, err := e.eval(s)
			if err != nil {
				return nil, err
			}
			for word, count := range set {
				union[word] = count
			}
		}
		if result == nil {
			result = union
		} else {
			intersect(result, union)
		}
	}

	if result == nil {
		all, err := e.eval(&MatchAllQuery{})
		if err != nil {
			return nil, err
		}
		result = all
	}

	for _, n := range mustNot {
		set, err := e.eval(n)
		if err != nil {
			return nil, err
		}
		for word := range set {
			delete(result, word)
		}
	}
	return result, nil
}

func intersect(dst, other wordSet) {
	for word := range dst {
		if _, ok := other[word]; !ok {
			delete(dst, word)
		}
	}
}
