// Package version holds build metadata injected via ldflags:
//
//	go build -ldflags "-X github.com/kailas-cloud/rerank-proxy/internal/version.Version=v1.0.0"
package version

//nolint:revive // Set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)
