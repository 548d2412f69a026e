package gitlab

import (
	"context"
	"errors"
	"fmt"
	"time"

	gl "gitlab.com/gitlab-org/api/client-go"

	"github.com/vrothberg/testing-farm-package-analyzer/domain"
)

const (
	providerName = "gitlab"
	perPage      = 100
)

var errClientNotInitialized = errors.New("gitlab client not initialized")

// Provider implements domain.Provider for GitLab.
type Provider struct {
	client    *gl.Client
	pageDelay time.Duration
}

// New creates a GitLab provider. An empty token means anonymous access,
// which is enough for public groups.
func New(settings domain.ProviderSettings) domain.Provider {
	var opts []gl.ClientOptionFunc
	if settings.BaseURL != "" {
		opts = append(opts, gl.WithBaseURL(settings.BaseURL))
	}

	client, err := gl.NewClient(settings.Token, opts...)
	if err != nil {
		// Return a provider that will fail on use rather than panicking at construction
		return &Provider{client: nil, pageDelay: settings.PageDelay}
	}
	return &Provider{
		client:    client,
		pageDelay: settings.PageDelay,
	}
}

func (p *Provider) Name() string { return providerName }

// ResolveGroup looks up a group by its slash-separated path. The client
// library percent-encodes the separators for the single-segment endpoint.
func (p *Provider) ResolveGroup(ctx context.Context, path string) (int64, error) {
	if p.client == nil {
		return 0, errClientNotInitialized
	}

	group, resp, err := p.client.Groups.GetGroup(
		path, &gl.GetGroupOptions{}, gl.WithContext(ctx),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to look up group %q: %w", path, err)
	}
	if group == nil || group.ID <= 0 {
		// The response parsed but carried no usable id, typically a
		// permission or existence problem hidden behind HTTP 200.
		return 0, fmt.Errorf(
			"group lookup for %q returned no id (HTTP %s)", path, resp.Status,
		)
	}

	return group.ID, nil
}

// ListGroupProjects pages through the group's non-archived projects in
// their simplified representation. Pagination ends on the first empty
// page; no further page is requested after it.
func (p *Provider) ListGroupProjects(
	ctx context.Context,
	groupID int64,
) ([]domain.Repository, error) {
	if p.client == nil {
		return nil, errClientNotInitialized
	}

	var allRepos []domain.Repository
	opts := &gl.ListGroupProjectsOptions{
		ListOptions: gl.ListOptions{Page: 1, PerPage: perPage},
		Archived:    gl.Ptr(false),
		Simple:      gl.Ptr(true),
	}

	for {
		projects, _, err := p.client.Groups.ListGroupProjects(
			groupID, opts, gl.WithContext(ctx),
		)
		if err != nil {
			return nil, fmt.Errorf(
				"failed to list projects of group %d (page %d): %w",
				groupID, opts.Page, err,
			)
		}

		if len(projects) == 0 {
			break
		}

		for _, proj := range projects {
			allRepos = append(allRepos, domain.Repository{
				Name:   proj.Name,
				ID:     proj.ID,
				WebURL: proj.WebURL,
			})
		}

		opts.Page++
		if p.pageDelay > 0 {
			time.Sleep(p.pageDelay)
		}
	}

	return allRepos, nil
}

// ListTree fetches the recursive file tree of a project's default branch.
// Only the first page (100 entries) is inspected; fmf files conventionally
// sit near the tree root, so deeper pages are not followed.
func (p *Provider) ListTree(
	ctx context.Context,
	projectID int64,
) ([]domain.TreeEntry, error) {
	if p.client == nil {
		return nil, errClientNotInitialized
	}

	nodes, _, err := p.client.Repositories.ListTree(
		projectID,
		&gl.ListTreeOptions{
			ListOptions: gl.ListOptions{PerPage: perPage},
			Recursive:   gl.Ptr(true),
		},
		gl.WithContext(ctx),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list tree of project %d: %w", projectID, err)
	}

	entries := make([]domain.TreeEntry, 0, len(nodes))
	for _, node := range nodes {
		entries = append(entries, domain.TreeEntry{Name: node.Name})
	}

	return entries, nil
}
