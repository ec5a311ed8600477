// Package matching fuzzy-matches scraped company names against the sponsor
// register. Matching is deliberately naive (every name is compared against
// the full register) and relies on the per-run cache in Verifier to bound
// cost by the number of distinct company names, not the number of rows.
package matching

import (
	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/ezgiver/JobFinder/internal/sponsors"
)

// MatchThreshold is the similarity (0-100) at and above which a company is
// considered a verified sponsor.
const MatchThreshold = 85

// Result is the outcome of matching one company name against the register.
type Result struct {
	Input      string
	Matched    bool
	Canonical  string
	Confidence int
}

// Matcher scores a company name against every register entry using token
// sort ratio and keeps the best candidate.
type Matcher struct {
	threshold  int
	similarity func(a, b string) int
}

func New() *Matcher {
	return &Matcher{
		threshold: MatchThreshold,
		similarity: func(a, b string) int {
			return fuzzy.TokenSortRatio(a, b)
		},
	}
}

// Match returns the best-matching register entry for the given raw company
// name. Empty or whitespace-only names never match and report confidence 0.
func (m *Matcher) Match(name string, reg *sponsors.Register) Result {
	result := Result{Input: name}

	norm := sponsors.Normalize(name)
	if norm == "" {
		return result
	}

	best := -1
	bestName := ""
	for _, candidate := range reg.Names() {
		score := m.similarity(norm, candidate)
		if score > best {
			best = score
			bestName = candidate
		}
	}

	if best < 0 {
		return result
	}

	result.Confidence = best
	if best >= m.threshold {
		result.Matched = true
		result.Canonical = bestName
	}

	return result
}
