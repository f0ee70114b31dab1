package rerank

// Result is a relevance score for one submitted document.
type Result struct {
	index int
	score float64
}

// NewResult creates a result.
func NewResult(index int, score float64) Result {
	return Result{index: index, score: score}
}

// Index returns the position of the document in the original request.
func (r *Result) Index() int { return r.index }

// Score returns the relevance score. May be NaN if the backend says so.
func (r *Result) Score() float64 { return r.score }
