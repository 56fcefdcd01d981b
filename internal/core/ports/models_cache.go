package ports

import "context"

// ModelsCache caches the distinct-models response between listing writes.
// Get returns (nil, nil) on a cache miss. Cache failures are advisory:
// callers log them and fall through to the repository.
type ModelsCache interface {
	Get(ctx context.Context) ([]ModelEntry, error)
	Set(ctx context.Context, entries []ModelEntry) error
	Invalidate(ctx context.Context) error
}
