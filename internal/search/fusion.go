// Package search provides the catalog search engine and score fusion.
package search

import "github.com/pratham-bits/Shiksha-Setu/internal/keyword"

// NormalizeScores max-normalizes weighted keyword scores to [0,1]. The weight
// for each hit is the document's search priority, so priority documents keep
// their edge after normalization. Duplicate hits for the same document keep
// the higher score.
func NormalizeScores(results []*keyword.Result, priorities map[int64]int) map[int64]float64 {
	if len(results) == 0 {
		return make(map[int64]float64)
	}
	weighted := make(map[int64]float64, len(results))
	maxScore := 0.0
	for _, r := range results {
		p := priorities[r.ID]
		if p < 1 {
			p = 1
		}
		score := r.Score * float64(p)
		if score > weighted[r.ID] {
			weighted[r.ID] = score
		}
		if score > maxScore {
			maxScore = score
		}
	}
	if maxScore > 0 {
		for id, score := range weighted {
			weighted[id] = score / maxScore
		}
	}
	return weighted
}
