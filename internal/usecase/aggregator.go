// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/montanaflynn/stats"
	"golang.org/x/sync/errgroup"

	"github.com/naka-gawa/github-loc/internal/domain"
	"github.com/naka-gawa/github-loc/internal/gateway"
)

// maxConcurrentSyncs bounds the number of git processes running at once.
const maxConcurrentSyncs = 4

// TargetCounter counts lines of code for every repository under a directory.
type TargetCounter interface {
	CountTargetByRepo(targetDir string) (domain.LanguageCounts, map[string]domain.LanguageCounts, error)
}

// Aggregator is the use case for the full pipeline: fetch repositories from
// GitHub, sync them locally and count their lines of code.
type Aggregator struct {
	fetcher gateway.Fetcher
	cloner  gateway.Cloner
	counter TargetCounter
	logger  *log.Logger
	now     func() time.Time
}

// NewAggregator creates a new Aggregator instance.
func NewAggregator(fetcher gateway.Fetcher, cloner gateway.Cloner, counter TargetCounter, logger *log.Logger) *Aggregator {
	return &Aggregator{
		fetcher: fetcher,
		cloner:  cloner,
		counter: counter,
		logger:  logger,
		now:     time.Now,
	}
}

// ResolveUser returns user, or the authenticated login when user is empty.
func (a *Aggregator) ResolveUser(ctx context.Context, user string) (string, error) {
	if user != "" {
		return user, nil
	}
	a.logger.Println("Usecase: No user given, resolving authenticated login...")
	return a.fetcher.FetchViewerLogin(ctx)
}

// Sync fetches the repositories owned by user and clones or updates each one
// under reposDir. Repositories that fail to sync are logged and left out of
// the returned names; only a fetch failure is returned as an error.
func (a *Aggregator) Sync(ctx context.Context, user, reposDir string) ([]domain.Repository, []string, error) {
	a.logger.Println("Usecase: Fetching repositories...")
	repos, err := a.fetcher.FetchRepos(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	a.logger.Println("Usecase: Cloning/updating repositories...")
	synced := make([]bool, len(repos))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(maxConcurrentSyncs)
	for i, repo := range repos {
		eg.Go(func() error {
			if err := a.cloner.Sync(egCtx, repo, filepath.Join(reposDir, repo.Name)); err != nil {
				a.logger.Printf("  Warning: %v", err)
				return nil
			}
			synced[i] = true
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, nil, err
	}

	successful := make([]string, 0, len(repos))
	for i, ok := range synced {
		if ok {
			successful = append(successful, repos[i].Name)
		}
	}
	a.logger.Printf("Usecase: Successfully processed %d/%d repositories.", len(successful), len(repos))
	return repos, successful, nil
}

// Aggregate performs the main business logic.
// It syncs the user's repositories into reposDir, saves the repository list
// to reposFile (skipped when empty), counts every repository found in
// reposDir and summarizes the result.
func (a *Aggregator) Aggregate(ctx context.Context, user, reposDir, reposFile string) (*domain.Results, error) {
	repos, successful, err := a.Sync(ctx, user, reposDir)
	if err != nil {
		return nil, err
	}
	if reposFile != "" {
		if err := SaveJSON(reposFile, repos); err != nil {
			return nil, err
		}
		a.logger.Printf("Usecase: Saved %d repositories to %s.", len(repos), reposFile)
	}
	return a.Summarize(user, repos, successful, reposDir)
}

// Summarize counts every repository under reposDir and builds the results
// document for the repositories returned by Sync.
func (a *Aggregator) Summarize(user string, repos []domain.Repository, successful []string, reposDir string) (*domain.Results, error) {
	a.logger.Println("Usecase: Counting lines of code...")
	total, byRepo, err := a.counter.CountTargetByRepo(reposDir)
	if err != nil {
		return nil, err
	}

	results := &domain.Results{
		Username:       user,
		TotalRepos:     len(repos),
		ProcessedRepos: len(successful),
		Languages:      total,
		TotalLines:     total.Total(),
		RepoStats:      summarizeRepos(byRepo),
		GeneratedAt:    a.now().UTC(),
	}
	a.logger.Println("Usecase: Aggregation complete.")
	return results, nil
}

func summarizeRepos(byRepo map[string]domain.LanguageCounts) domain.RepoLineStats {
	if len(byRepo) == 0 {
		return domain.RepoLineStats{}
	}
	data := make(stats.Float64Data, 0, len(byRepo))
	for _, counts := range byRepo {
		data = append(data, float64(counts.Total()))
	}
	// Errors only occur on empty input, which is handled above.
	mean, _ := data.Mean()
	median, _ := data.Median()
	maxLines, _ := data.Max()
	return domain.RepoLineStats{Mean: mean, Median: median, Max: maxLines}
}

// SaveJSON writes v to path as indented JSON.
func SaveJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", path, err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
