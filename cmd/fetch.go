package cmd

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/github-loc/internal/gateway"
	"github.com/naka-gawa/github-loc/internal/rules"
	"github.com/naka-gawa/github-loc/internal/usecase"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Clones or updates a GitHub user's repositories locally",
	Long: `Lists the repositories owned by a GitHub user (excluding forks and archived
repositories), saves the list as JSON and clones or pulls each one into the
repos directory.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		logger := newLogger(cmd)
		loadEnv(logger)

		reposDir, _ := cmd.Flags().GetString("dir")
		reposFile, _ := cmd.Flags().GetString("repos-file")

		aggregator := newPipeline(logger, nil)
		user := resolveUser(ctx, cmd, aggregator)

		repos, successful, err := aggregator.Sync(ctx, user, reposDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to fetch repositories: %v\n", err)
			os.Exit(1)
		}
		if err := usecase.SaveJSON(reposFile, repos); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to save repository list: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Successfully processed %d/%d repositories\n", len(successful), len(repos))
	},
}

// newPipeline wires the GitHub and git gateways into an Aggregator.
// counter may be nil for commands that never count.
func newPipeline(logger *log.Logger, counter usecase.TargetCounter) *usecase.Aggregator {
	token := os.Getenv("GITHUB_TOKEN")
	githubGateway, err := gateway.NewGitHubGateway(token, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create GitHub gateway: %v\n", err)
		os.Exit(1)
	}
	return usecase.NewAggregator(githubGateway, gateway.NewGitCloner(logger), counter, logger)
}

// resolveUser picks the user from --user, then GITHUB_USERNAME, then the token's own login.
func resolveUser(ctx context.Context, cmd *cobra.Command, aggregator *usecase.Aggregator) string {
	user, _ := cmd.Flags().GetString("user")
	if user == "" {
		user = os.Getenv("GITHUB_USERNAME")
	}
	if user == "" && os.Getenv("GITHUB_TOKEN") == "" {
		fmt.Fprintln(os.Stderr, "Error: set --user, GITHUB_USERNAME or GITHUB_TOKEN.")
		os.Exit(1)
	}
	user, err := aggregator.ResolveUser(ctx, user)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to resolve GitHub user: %v\n", err)
		os.Exit(1)
	}
	return user
}

// loadRules loads the rule file from the working directory, exiting on failure.
func loadRules() *rules.RuleSet {
	rs, err := rules.Load(rules.DefaultFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	return rs
}

func addSyncFlags(c *cobra.Command) {
	c.Flags().StringP("user", "u", "", "GitHub user whose repositories are counted (default $GITHUB_USERNAME)")
	c.Flags().StringP("dir", "d", "repos", "Directory the repositories are cloned into")
	c.Flags().String("repos-file", "repos.json", "Where to save the fetched repository list")
}

func init() {
	rootCmd.AddCommand(fetchCmd)
	addSyncFlags(fetchCmd)
}
