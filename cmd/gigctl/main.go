// Command gigctl inspects the marketplace catalogue from the terminal.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/spec-kit/gig-market/internal/seed"
)

var (
	seedFile string

	rootCmd = &cobra.Command{
		Use:           "gigctl",
		Short:         "Inspect the gig marketplace catalogue",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&seedFile, "seed", "", "YAML seed file (defaults to the built-in demo data)")

	jobsCmd.Flags().StringVarP(&jobsQuery, "query", "q", "", "free-text search over title and description")
	jobsCmd.Flags().StringVar(&jobsCategory, "category", "", "category filter")
	jobsCmd.Flags().StringVar(&jobsLocation, "location", "", "location substring filter")
	jobsCmd.Flags().StringVar(&jobsSort, "sort", "newest", "newest, salary-high, salary-low or date")
	jobsCmd.Flags().StringVar(&jobsMatch, "match", "employer", "extend text search to employer, location or none")

	rootCmd.AddCommand(jobsCmd, categoriesCmd, streakCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func loadData(now time.Time) (*seed.Data, error) {
	if seedFile == "" {
		return seed.Default(now)
	}
	raw, err := os.ReadFile(seedFile)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return seed.Parse(raw, now)
}
