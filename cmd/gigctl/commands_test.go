package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetJobFlags() {
	seedFile = ""
	jobsQuery, jobsCategory, jobsLocation = "", "", ""
	jobsSort, jobsMatch = "newest", "employer"
}

func capture(cmd *cobra.Command) *bytes.Buffer {
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	return buf
}

func TestRunJobsFiltersByCategory(t *testing.T) {
	resetJobFlags()
	t.Cleanup(resetJobFlags)
	jobsCategory = "restaurant"

	cmd := &cobra.Command{}
	out := capture(cmd)
	require.NoError(t, runJobs(cmd, nil))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "job-2")
	assert.Contains(t, lines[1], "8 ₼/saat")
}

func TestRunJobsSortsBySalary(t *testing.T) {
	resetJobFlags()
	t.Cleanup(resetJobFlags)
	jobsSort = "salary-high"

	cmd := &cobra.Command{}
	out := capture(cmd)
	require.NoError(t, runJobs(cmd, nil))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Greater(t, len(lines), 2)
	assert.True(t, strings.HasPrefix(lines[1], "job-3"), lines[1])
}

func TestRunJobsMatchModes(t *testing.T) {
	resetJobFlags()
	t.Cleanup(resetJobFlags)
	jobsQuery = "milano"

	cmd := &cobra.Command{}
	out := capture(cmd)
	require.NoError(t, runJobs(cmd, nil))
	assert.Contains(t, out.String(), "job-2")

	jobsMatch = "none"
	out = capture(cmd)
	require.NoError(t, runJobs(cmd, nil))
	assert.NotContains(t, out.String(), "job-2")

	jobsMatch = "everything"
	assert.Error(t, runJobs(cmd, nil))
}

func TestRunJobsRejectsUnknownCategory(t *testing.T) {
	resetJobFlags()
	t.Cleanup(resetJobFlags)
	jobsCategory = "spaceflight"
	assert.Error(t, runJobs(&cobra.Command{}, nil))
}

func TestRunCategories(t *testing.T) {
	cmd := &cobra.Command{}
	out := capture(cmd)
	require.NoError(t, runCategories(cmd, nil))
	assert.Contains(t, out.String(), "restaurant")
	assert.Contains(t, out.String(), "Çatdırılma")
	assert.Len(t, strings.Split(strings.TrimSpace(out.String()), "\n"), 9)
}

func TestRunStreak(t *testing.T) {
	cmd := &cobra.Command{}
	out := capture(cmd)
	require.NoError(t, runStreak(cmd, []string{"10"}))
	assert.Equal(t, "10 days: diamond (Almaz)\n", out.String())

	assert.Error(t, runStreak(cmd, []string{"-1"}))
	assert.Error(t, runStreak(cmd, []string{"many"}))
}
