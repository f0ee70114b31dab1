package rerank

import (
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	domrerank "github.com/kailas-cloud/rerank-proxy/internal/domain/rerank"
)

func indices(results []domrerank.Result) []int {
	out := make([]int, len(results))
	for i := range results {
		out[i] = results[i].Index()
	}
	return out
}

func TestRank_IndexMapping(t *testing.T) {
	in := []domrerank.Result{
		domrerank.NewResult(0, 0.1),
		domrerank.NewResult(1, 0.9),
	}

	ranked := Rank(in)

	require.Len(t, ranked, 2)
	assert.Equal(t, 1, ranked[0].Index())
	assert.Equal(t, 0.9, ranked[0].Score())
	assert.Equal(t, 0, ranked[1].Index())
	assert.Equal(t, 0.1, ranked[1].Score())
}

func TestRank_DoesNotMutateInput(t *testing.T) {
	in := []domrerank.Result{
		domrerank.NewResult(0, 0.2),
		domrerank.NewResult(1, 0.8),
		domrerank.NewResult(2, 0.5),
	}

	_ = Rank(in)

	assert.Equal(t, []int{0, 1, 2}, indices(in))
}

func TestRank_KeepsDuplicatesAndTies(t *testing.T) {
	in := []domrerank.Result{
		domrerank.NewResult(0, 0.5),
		domrerank.NewResult(0, 0.5),
		domrerank.NewResult(1, 0.7),
	}

	ranked := Rank(in)

	assert.Equal(t, []int{1, 0, 0}, indices(ranked))
}

func TestRank_Empty(t *testing.T) {
	assert.Empty(t, Rank(nil))
}

func TestRank_NaNKeepsAllEntries(t *testing.T) {
	in := []domrerank.Result{
		domrerank.NewResult(0, 0.3),
		domrerank.NewResult(1, math.NaN()),
		domrerank.NewResult(2, 0.9),
		domrerank.NewResult(3, 0.1),
	}

	ranked := Rank(in)

	// Placement of the NaN entry is unspecified; only membership is checked.
	got := indices(ranked)
	sort.Ints(got)
	assert.Equal(t, []int{0, 1, 2, 3}, got)
}

func TestRank_AllNaNKeepsSubmissionOrder(t *testing.T) {
	in := []domrerank.Result{
		domrerank.NewResult(0, math.NaN()),
		domrerank.NewResult(1, math.NaN()),
		domrerank.NewResult(2, math.NaN()),
	}

	assert.Equal(t, []int{0, 1, 2}, indices(Rank(in)))
}

func TestRank_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		scores := rapid.SliceOf(rapid.Float64Range(-10, 10)).Draw(t, "scores")

		in := make([]domrerank.Result, len(scores))
		for i, s := range scores {
			in[i] = domrerank.NewResult(i, s)
		}

		ranked := Rank(in)

		if len(ranked) != len(in) {
			t.Fatalf("expected %d results, got %d", len(in), len(ranked))
		}
		for i := 1; i < len(ranked); i++ {
			if ranked[i].Score() > ranked[i-1].Score() {
				t.Fatalf("score increased at %d: %f > %f", i, ranked[i].Score(), ranked[i-1].Score())
			}
		}
		for i := range ranked {
			if ranked[i].Score() != scores[ranked[i].Index()] {
				t.Fatalf("index %d lost its score", ranked[i].Index())
			}
		}
		got := indices(ranked)
		sort.Ints(got)
		for i, idx := range got {
			if idx != i {
				t.Fatalf("indices are not a permutation: %v", got)
			}
		}
	})
}
