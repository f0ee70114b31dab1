package rerank

// Request is a rerank query over an ordered list of candidate documents.
// A document's position in Documents is its index in the results.
type Request struct {
	query     string
	documents []string
	model     string
	topN      *int
}

// NewRequest creates a rerank request. model and topN are optional.
func NewRequest(query string, documents []string, model string, topN *int) Request {
	return Request{query: query, documents: documents, model: model, topN: topN}
}

// Query returns the query text.
func (r *Request) Query() string { return r.query }

// Documents returns the candidate documents in submission order.
func (r *Request) Documents() []string { return r.documents }

// Model returns the requested model name, if any. Informational only.
func (r *Request) Model() string { return r.model }

// TopN returns the requested result limit, if any.
// It is accepted for compatibility and never applied.
func (r *Request) TopN() *int { return r.topN }
