package gateway

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/go-git/go-git/v5"

	"github.com/naka-gawa/github-loc/internal/domain"
)

const (
	cloneTimeout = 120 * time.Second
	pullTimeout  = 60 * time.Second
)

// Cloner keeps a local checkout of a repository up to date.
type Cloner interface {
	// Sync clones repo into dir, or pulls it when dir already exists.
	Sync(ctx context.Context, repo domain.Repository, dir string) error
}

// GitCloner is the go-git implementation of the Cloner interface.
type GitCloner struct {
	clone  func(ctx context.Context, url, dir string) error
	pull   func(ctx context.Context, dir string) error
	logger *log.Logger
}

// NewGitCloner creates a GitCloner backed by go-git.
func NewGitCloner(logger *log.Logger) *GitCloner {
	return &GitCloner{clone: shallowClone, pull: pullWorktree, logger: logger}
}

func shallowClone(ctx context.Context, url, dir string) error {
	_, err := git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{
		URL:          url,
		Depth:        1,
		SingleBranch: true,
	})
	return err
}

func pullWorktree(ctx context.Context, dir string) error {
	repo, err := git.PlainOpen(dir)
	if err != nil {
		return err
	}
	wt, err := repo.Worktree()
	if err != nil {
		return err
	}
	err = wt.PullContext(ctx, &git.PullOptions{RemoteName: git.DefaultRemoteName, Depth: 1})
	if errors.Is(err, git.NoErrAlreadyUpToDate) {
		return nil
	}
	return err
}

func (g *GitCloner) Sync(ctx context.Context, repo domain.Repository, dir string) error {
	_, err := os.Stat(dir)
	switch {
	case err == nil:
		g.logger.Printf("Updating %s...", repo.Name)
		ctx, cancel := context.WithTimeout(ctx, pullTimeout)
		defer cancel()
		return wrapGitErr(ctx, "update", repo.Name, pullTimeout, g.pull(ctx, dir))
	case errors.Is(err, fs.ErrNotExist):
		if repo.CloneURL == "" {
			return fmt.Errorf("failed to clone %s: missing clone URL", repo.Name)
		}
		g.logger.Printf("Cloning %s...", repo.Name)
		if err := os.MkdirAll(filepath.Dir(dir), 0o755); err != nil {
			return fmt.Errorf("failed to create repos directory: %w", err)
		}
		ctx, cancel := context.WithTimeout(ctx, cloneTimeout)
		defer cancel()
		return wrapGitErr(ctx, "clone", repo.Name, cloneTimeout, g.clone(ctx, repo.CloneURL, dir))
	default:
		return fmt.Errorf("failed to stat %s: %w", dir, err)
	}
}

func wrapGitErr(ctx context.Context, op, name string, timeout time.Duration, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("failed to %s %s: timed out after %s", op, name, timeout)
	}
	return fmt.Errorf("failed to %s %s: %w", op, name, err)
}
