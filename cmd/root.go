// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/naka-gawa/github-loc/internal/domain"
	"github.com/naka-gawa/github-loc/internal/rules"
	"github.com/naka-gawa/github-loc/internal/usecase"
)

const rootUse = "github-loc <directory>"

var rootCmd = &cobra.Command{
	Use:   rootUse,
	Short: "Counts lines of code per language across a directory of repositories.",
	Long: `github-loc counts lines of code per language for every repository
(immediate subdirectory) under the given directory and prints the totals
as a single JSON object.

Ignore patterns and the extension-to-language mapping are read from
ignore_rules.toml in the current working directory.

A directory named like a subcommand (fetch, aggregate, render, help,
completion) must follow "--": github-loc -- fetch`,
	Example: `  github-loc repos
  github-loc -- fetch`,
	Args: cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		logger := newLogger(cmd)
		if code := runCount(cmd.OutOrStdout(), cmd.ErrOrStderr(), args, rules.DefaultFile, logger); code != 0 {
			os.Exit(code)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Add a persistent flag for verbose output, available to all commands.
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
}

// newLogger discards all logs unless --verbose is set, in which case they go to standard error.
func newLogger(cmd *cobra.Command) *log.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	logger := log.New(io.Discard, "", log.LstdFlags)
	if verbose {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

// loadEnv reads GITHUB_* settings from a .env file when one is present.
func loadEnv(logger *log.Logger) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Printf("Ignoring .env: %v", err)
	}
}

// runCount counts the repositories under args[0] and writes the per-language
// totals to stdout as one line of JSON. It returns the process exit code.
func runCount(stdout, stderr io.Writer, args []string, rulesPath string, logger *log.Logger) int {
	err := countTarget(stdout, args, rulesPath, logger)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, domain.ErrUsage):
		fmt.Fprintf(stderr, "Usage: %s\n", rootUse)
	case errors.Is(err, domain.ErrTargetNotFound):
		fmt.Fprintf(stderr, "Directory does not exist: %s\n", args[0])
	case errors.Is(err, domain.ErrConfig):
		fmt.Fprintf(stderr, "Error loading config: %v\n", err)
	default:
		fmt.Fprintf(stderr, "Failed to count lines: %v\n", err)
	}
	return 1
}

func countTarget(stdout io.Writer, args []string, rulesPath string, logger *log.Logger) error {
	if len(args) < 1 {
		return domain.ErrUsage
	}
	targetDir := args[0]

	if _, err := os.Stat(targetDir); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrTargetNotFound, targetDir)
	}

	rs, err := rules.Load(rulesPath)
	if err != nil {
		return err
	}

	total, err := usecase.NewLineCounter(rs, logger).CountTarget(targetDir)
	if err != nil {
		return err
	}

	jsonData, err := json.Marshal(total)
	if err != nil {
		return fmt.Errorf("failed to marshal results to JSON: %w", err)
	}
	fmt.Fprintln(stdout, string(jsonData))
	return nil
}
