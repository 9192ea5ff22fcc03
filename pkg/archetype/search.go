package archetype

import (
	"sort"
	"strings"
)

// Search returns every archetype whose ID, name, description, category,
// keywords, or example prompts contain the query (case-insensitive).
// Results are ordered by match strength: ID and keyword hits rank above
// free-text hits, ties break alphabetically.
func (r *Registry) Search(query string) []Rules {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return r.List()
	}

	type scored struct {
		rules Rules
		score int
	}
	var hits []scored

	for _, rules := range r.List() {
		s := matchScore(rules, q)
		if s > 0 {
			hits = append(hits, scored{rules: rules, score: s})
		}
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}
		return hits[i].rules.ArchetypeID < hits[j].rules.ArchetypeID
	})

	out := make([]Rules, len(hits))
	for i, h := range hits {
		out[i] = h.rules
	}
	return out
}

func matchScore(rules Rules, q string) int {
	score := 0
	if strings.Contains(rules.ArchetypeID, q) {
		score += 4
	}
	for _, kw := range rules.Keywords {
		if strings.Contains(strings.ToLower(kw), q) {
			score += 3
			break
		}
	}
	if strings.Contains(strings.ToLower(rules.Name), q) {
		score += 2
	}
	if strings.Contains(strings.ToLower(rules.Category), q) {
		score += 2
	}
	if strings.Contains(strings.ToLower(rules.Description), q) {
		score++
	}
	for _, p := range rules.ExamplePrompts {
		if strings.Contains(strings.ToLower(p), q) {
			score++
			break
		}
	}
	return score
}
