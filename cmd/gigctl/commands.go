package main

import (
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/spec-kit/gig-market/internal/domain"
	"github.com/spec-kit/gig-market/internal/search"
)

var (
	jobsQuery    string
	jobsCategory string
	jobsLocation string
	jobsSort     string
	jobsMatch    string
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "List jobs through the filter and sort engine",
	Args:  cobra.NoArgs,
	RunE:  runJobs,
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List job categories",
	Args:  cobra.NoArgs,
	RunE:  runCategories,
}

var streakCmd = &cobra.Command{
	Use:   "streak <days>",
	Short: "Show the streak tier for a day count",
	Args:  cobra.ExactArgs(1),
	RunE:  runStreak,
}

func runJobs(cmd *cobra.Command, _ []string) error {
	data, err := loadData(time.Now())
	if err != nil {
		return err
	}

	criteria := search.Criteria{
		Query:    jobsQuery,
		Location: jobsLocation,
		SortBy:   search.ParseSortKey(jobsSort),
	}
	if jobsCategory != "" {
		criteria.Category = search.ParseCategory(jobsCategory)
		if criteria.Category == nil {
			return fmt.Errorf("unknown category %q", jobsCategory)
		}
	}
	switch strings.ToLower(jobsMatch) {
	case "employer", "":
		criteria.MatchEmployer = true
	case "location":
		criteria.MatchLocation = true
	case "none":
	default:
		return fmt.Errorf("unknown match mode %q", jobsMatch)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tCATEGORY\tLOCATION\tSALARY\tDATE\tEMPLOYER")
	for _, job := range search.Apply(data.Jobs, criteria) {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			job.ID, job.Title, job.Category, job.Location,
			salary(job), job.Date.Format("2006-01-02"), job.EmployerName)
	}
	return w.Flush()
}

func runCategories(cmd *cobra.Command, _ []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "VALUE\tLABEL\tICON")
	for _, info := range domain.Categories() {
		fmt.Fprintf(w, "%s\t%s\t%s\n", info.Value, info.Label, info.Icon)
	}
	return w.Flush()
}

func runStreak(cmd *cobra.Command, args []string) error {
	days, err := strconv.Atoi(args[0])
	if err != nil || days < 0 {
		return fmt.Errorf("days must be a non-negative integer, got %q", args[0])
	}
	tier := domain.StreakTierFor(days)
	fmt.Fprintf(cmd.OutOrStdout(), "%d days: %s (%s)\n", days, tier, tier.Label())
	return nil
}

func salary(job domain.Job) string {
	unit := "gün"
	if job.SalaryUnit == domain.SalaryHourly {
		unit = "saat"
	}
	return strconv.FormatFloat(job.Salary, 'f', -1, 64) + " ₼/" + unit
}
