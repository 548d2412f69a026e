package domain

import (
	"context"
	"time"
)

// Provider abstracts the source-control hosting service the analyzer reads
// from. Only read operations are needed: the analyzer never writes to the
// hosting platform.
type Provider interface {
	// Name returns the provider identifier (e.g. "gitlab").
	Name() string

	// ResolveGroup maps a slash-separated group path to the numeric
	// identifier the hosting API uses internally.
	ResolveGroup(ctx context.Context, path string) (int64, error)

	// ListGroupProjects returns every non-archived project in the group,
	// in the order the API delivered them.
	ListGroupProjects(ctx context.Context, groupID int64) ([]Repository, error)

	// ListTree returns the file tree of a project's default branch,
	// listed recursively.
	ListTree(ctx context.Context, projectID int64) ([]TreeEntry, error)
}

// ProviderSettings carries everything a provider factory needs to build a
// configured client.
type ProviderSettings struct {
	Token     string        // Auth token; empty means anonymous access
	BaseURL   string        // API base URL; empty means the provider default
	PageDelay time.Duration // Pause between successive page requests
}
