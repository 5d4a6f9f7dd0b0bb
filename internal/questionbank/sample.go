package questionbank

import (
	"math/rand/v2"
	"sort"
	"strings"
)

// DefaultSampleSize is the number of questions served when no count is configured.
const DefaultSampleSize = 15

// FilterByUnit keeps the questions whose topic tag equals unit, ignoring case.
func FilterByUnit(questions []Question, unit string) []Question {
	var out []Question
	for _, q := range questions {
		if strings.EqualFold(q.TopicTag, unit) {
			out = append(out, q)
		}
	}
	return out
}

// UniqueUnits returns the distinct topic tags in ascending order.
func UniqueUnits(questions []Question) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, q := range questions {
		if q.TopicTag == "" {
			continue
		}
		if _, ok := seen[q.TopicTag]; ok {
			continue
		}
		seen[q.TopicTag] = struct{}{}
		out = append(out, q.TopicTag)
	}
	sort.Strings(out)
	return out
}

// Sample returns min(n, len(questions)) questions drawn uniformly without
// replacement. The input slice is not modified. A nil rng uses the
// package-level source.
func Sample(questions []Question, n int, rng *rand.Rand) []Question {
	if n <= 0 || len(questions) == 0 {
		return nil
	}
	pool := make([]Question, len(questions))
	copy(pool, questions)

	swap := func(i, j int) { pool[i], pool[j] = pool[j], pool[i] }
	if rng != nil {
		rng.Shuffle(len(pool), swap)
	} else {
		rand.Shuffle(len(pool), swap)
	}
	return pool[:min(n, len(pool))]
}
