// Package gateway provides gateways to GitHub and to local git checkouts,
// abstracting away the underlying REST and GraphQL clients and the git CLI.
package gateway

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"

	"github.com/naka-gawa/github-loc/internal/domain"
)

// Fetcher defines the behavior of a gateway for fetching information from GitHub.
type Fetcher interface {
	// FetchRepos lists repositories owned by user, excluding forks and archived ones.
	FetchRepos(ctx context.Context, user string) ([]domain.Repository, error)
	// FetchViewerLogin returns the login of the authenticated user.
	FetchViewerLogin(ctx context.Context) (string, error)
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	restClient    *github.Client
	graphqlClient *githubv4.Client
	logger        *log.Logger
}

// viewerQuery resolves the login behind the configured token.
type viewerQuery struct {
	Viewer struct {
		Login githubv4.String
	}
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
// An empty token yields an unauthenticated client with lower rate limits.
func NewGitHubGateway(token string, logger *log.Logger) (Fetcher, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Hour, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	var transport http.RoundTripper = rateLimitWaiter
	if token != "" {
		transport = &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
		}
	}
	httpClient := &http.Client{Transport: transport}
	return &GitHubGateway{
		restClient:    github.NewClient(httpClient),
		graphqlClient: githubv4.NewClient(httpClient),
		logger:        logger,
	}, nil
}

func (g *GitHubGateway) FetchRepos(ctx context.Context, user string) ([]domain.Repository, error) {
	g.logger.Printf("Fetching repositories for %s using REST API...", user)
	opts := &github.RepositoryListByUserOptions{
		Type:        "owner",
		Sort:        "updated",
		Direction:   "desc",
		ListOptions: github.ListOptions{PerPage: 100},
	}
	repos := make([]domain.Repository, 0)
	for {
		page, resp, err := g.restClient.Repositories.ListByUser(ctx, user, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list repositories with REST API: %w", err)
		}
		for _, r := range page {
			if r.GetFork() || r.GetArchived() {
				continue
			}
			repos = append(repos, domain.Repository{
				Name:     r.GetName(),
				FullName: r.GetFullName(),
				CloneURL: r.GetCloneURL(),
				Fork:     r.GetFork(),
				Archived: r.GetArchived(),
			})
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
		g.logger.Println("  Fetching next page of repositories...")
	}
	g.logger.Printf("Found %d repositories (excluding forks and archived).", len(repos))
	return repos, nil
}

func (g *GitHubGateway) FetchViewerLogin(ctx context.Context) (string, error) {
	var q viewerQuery
	if err := g.graphqlClient.Query(ctx, &q, nil); err != nil {
		return "", fmt.Errorf("failed to execute GraphQL query for viewer: %w", err)
	}
	login := string(q.Viewer.Login)
	if login == "" {
		return "", fmt.Errorf("failed to resolve viewer login: empty response")
	}
	return login, nil
}
