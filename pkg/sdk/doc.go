// Package rerankproxy runs the rerank-proxy pipeline in-process, for Go
// programs that want TEI reranking without deploying the HTTP service.
//
//	client, _ := rerankproxy.New(rerankproxy.WithEndpoint("http://localhost:4000"))
//	results, err := client.Rerank(ctx, "what is a dog", []string{"a dog", "a cat"})
//	if errors.Is(err, rerankproxy.ErrBackend) { ... }
//
// Results come back ordered by descending relevance; Index refers to the
// position of the document in the input slice.
package rerankproxy
