package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/naka-gawa/github-loc/internal/render"
	"github.com/naka-gawa/github-loc/internal/usecase"
)

var aggregateCmd = &cobra.Command{
	Use:   "aggregate",
	Short: "Fetches, clones and counts a GitHub user's repositories",
	Long: `Runs the whole pipeline: lists the user's repositories, clones or updates
them, counts lines of code per language and writes the results as JSON.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		logger := newLogger(cmd)
		loadEnv(logger)

		reposDir, _ := cmd.Flags().GetString("dir")
		reposFile, _ := cmd.Flags().GetString("repos-file")
		output, _ := cmd.Flags().GetString("output")
		top, _ := cmd.Flags().GetInt("top")

		// Fail on a bad rule file before spending time on the network.
		rs := loadRules()
		aggregator := newPipeline(logger, usecase.NewLineCounter(rs, logger))
		user := resolveUser(ctx, cmd, aggregator)

		results, err := aggregator.Aggregate(ctx, user, reposDir, reposFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to aggregate lines of code: %v\n", err)
			os.Exit(1)
		}
		if err := usecase.SaveJSON(output, results); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to save results: %v\n", err)
			os.Exit(1)
		}
		logger.Printf("Results saved to %s", output)

		fmt.Printf("Top %d languages by LOC:\n", top)
		for _, l := range results.Languages.Ranked(top) {
			fmt.Printf("  %s: %s lines\n", l.Language, humanize.Comma(int64(l.Lines)))
		}
	},
}

func init() {
	rootCmd.AddCommand(aggregateCmd)
	addSyncFlags(aggregateCmd)
	aggregateCmd.Flags().StringP("output", "o", "loc_results.json", "Where to write the results")
	aggregateCmd.Flags().Int("top", render.DefaultTopN, "Number of languages to print")
}
