package rerank

import (
	"sort"

	domrerank "github.com/kailas-cloud/rerank-proxy/internal/domain/rerank"
)

// Rank returns a copy of results ordered by score, highest first.
//
// A NaN score compares equal to everything, so entries involving NaN have no
// defined position relative to their neighbours. Nothing is filtered or
// truncated.
func Rank(results []domrerank.Result) []domrerank.Result {
	ranked := make([]domrerank.Result, len(results))
	copy(ranked, results)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score() > ranked[j].Score()
	})
	return ranked
}
