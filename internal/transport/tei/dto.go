package tei

// rerankRequest is the TEI POST /rerank body.
type rerankRequest struct {
	Query string   `json:"query"`
	Texts []string `json:"texts"`
}

// newRerankRequest maps the query and documents onto TEI's schema.
// Order of texts is the only link between a document and its result index.
func newRerankRequest(query string, documents []string) rerankRequest {
	texts := make([]string, len(documents))
	copy(texts, documents)
	return rerankRequest{Query: query, Texts: texts}
}

// scoreItem is one element of the TEI /rerank response array.
// Pointers distinguish missing fields from zero values.
type scoreItem struct {
	Index *int     `json:"index"`
	Score *float64 `json:"score"`
}
