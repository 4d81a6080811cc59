package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/github-loc/internal/readme"
	"github.com/naka-gawa/github-loc/internal/render"
	"github.com/naka-gawa/github-loc/internal/usecase"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Renders aggregated results into a README section and an SVG card",
	Long: `Reads the results written by the aggregate command, replaces the section
between <!-- LOC-STATS:START --> and <!-- LOC-STATS:END --> in the README,
updates the cache file and optionally writes an SVG stats card.`,
	Run: func(cmd *cobra.Command, args []string) {
		logger := newLogger(cmd)
		loadEnv(logger)

		resultsPath, _ := cmd.Flags().GetString("results")
		readmePath, _ := cmd.Flags().GetString("readme")
		sectionName, _ := cmd.Flags().GetString("section")
		svgPath, _ := cmd.Flags().GetString("svg")
		cachePath, _ := cmd.Flags().GetString("cache")
		top, _ := cmd.Flags().GetInt("top")

		section, err := render.ParseSectionType(sectionName)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid --section: %v\n", err)
			os.Exit(1)
		}

		results, err := readme.LoadResults(resultsPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v. Run aggregate first.\n", err)
			os.Exit(1)
		}

		if cachePath != "" {
			if err := usecase.SaveJSON(cachePath, readme.NewCache(results, time.Now())); err != nil {
				fmt.Fprintf(os.Stderr, "Failed to update cache: %v\n", err)
				os.Exit(1)
			}
			logger.Printf("Cache updated: %d total lines", results.Languages.Total())
		}

		if err := readme.Update(readmePath, render.Section(section, results.Languages, top)); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to update README: %v\n", err)
			fmt.Fprintf(os.Stderr, "Add the following lines where the stats should appear:\n%s\n%s\n", readme.StartMarker, readme.EndMarker)
			os.Exit(1)
		}
		fmt.Printf("README updated at %s\n", readmePath)

		if svgPath != "" {
			username := results.Username
			if username == "" {
				username = os.Getenv("GITHUB_USERNAME")
			}
			if err := render.SaveSVGCard(svgPath, results.Languages, username, top); err != nil {
				fmt.Fprintf(os.Stderr, "Failed to generate SVG card: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("SVG card saved to %s\n", svgPath)
		}
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().String("results", "loc_results.json", "Results file written by the aggregate command")
	renderCmd.Flags().String("readme", "README.md", "README to update")
	renderCmd.Flags().String("section", string(render.SectionCompact), "Section layout: compact or full")
	renderCmd.Flags().String("svg", "loc_stats.svg", "Where to write the SVG card (empty to skip)")
	renderCmd.Flags().String("cache", "cache.json", "Where to write the cache file (empty to skip)")
	renderCmd.Flags().Int("top", render.DefaultTopN, "Number of languages to show")
}
