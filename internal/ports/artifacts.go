package ports

import "context"

// ArtifactStore publishes session artifacts (merged profile, coverage
// profile, preserved binary) somewhere durable.
type ArtifactStore interface {
	// Put uploads the file at path under key and returns its location
	Put(ctx context.Context, key, path string) (string, error)
}
