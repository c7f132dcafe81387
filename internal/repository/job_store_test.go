package repository

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/gig-market/internal/domain"
)

func seedJobs() []domain.Job {
	return []domain.Job{
		{ID: "j1", Title: "Tədbir köməkçisi", EmployerID: "2", Status: domain.JobStatusActive},
		{ID: "j2", Title: "Ofisiant", EmployerID: "5", Status: domain.JobStatusActive},
		{ID: "j3", Title: "Promo", EmployerID: "2", Status: domain.JobStatusActive},
	}
}

func TestJobStore_AddJobPrepends(t *testing.T) {
	store := NewJobStore(seedJobs())
	store.AddJob(domain.Job{ID: "new", EmployerID: "2"})

	list := store.List()
	require.Len(t, list, 4)
	assert.Equal(t, "new", list[0].ID)
	assert.Equal(t, "j1", list[1].ID)
}

func TestJobStore_GetJobByID(t *testing.T) {
	store := NewJobStore(seedJobs())

	job, ok := store.GetJobByID("j2")
	require.True(t, ok)
	assert.Equal(t, "Ofisiant", job.Title)

	_, ok = store.GetJobByID("missing")
	assert.False(t, ok)
}

func TestJobStore_GetJobsByEmployerKeepsOrder(t *testing.T) {
	store := NewJobStore(seedJobs())
	store.AddJob(domain.Job{ID: "j4", EmployerID: "2"})

	var got []string
	for _, j := range store.GetJobsByEmployer("2") {
		got = append(got, j.ID)
	}
	assert.Equal(t, []string{"j4", "j1", "j3"}, got)
	assert.Empty(t, store.GetJobsByEmployer("nobody"))
}

func TestJobStore_ApplyToJobIsASet(t *testing.T) {
	store := NewJobStore(seedJobs())

	assert.True(t, store.ApplyToJob("j1", "w1"))
	assert.False(t, store.ApplyToJob("j1", "w1"))
	assert.True(t, store.ApplyToJob("j1", "w2"))

	job, _ := store.GetJobByID("j1")
	assert.Equal(t, []string{"w1", "w2"}, job.Applicants)
}

func TestJobStore_ApplyToUnknownJobLeavesCollectionUnchanged(t *testing.T) {
	store := NewJobStore(seedJobs())
	store.ApplyToJob("j2", "w1")
	before := store.List()

	assert.False(t, store.ApplyToJob("missing", "w1"))

	if diff := cmp.Diff(before, store.List()); diff != "" {
		t.Fatalf("collection changed (-before +after):\n%s", diff)
	}
}

func TestJobStore_ReadsAreCopies(t *testing.T) {
	store := NewJobStore(seedJobs())
	store.ApplyToJob("j1", "w1")

	job, _ := store.GetJobByID("j1")
	job.Applicants[0] = "intruder"
	job.Title = "changed"

	list := store.List()
	list[0].Applicants = append(list[0].Applicants, "x")

	fresh, _ := store.GetJobByID("j1")
	assert.Equal(t, []string{"w1"}, fresh.Applicants)
	assert.Equal(t, "Tədbir köməkçisi", fresh.Title)
}

func TestJobStore_UpdateStatus(t *testing.T) {
	store := NewJobStore(seedJobs())
	assert.True(t, store.UpdateStatus("j3", domain.JobStatusCompleted))
	assert.False(t, store.UpdateStatus("missing", domain.JobStatusCompleted))

	job, _ := store.GetJobByID("j3")
	assert.Equal(t, domain.JobStatusCompleted, job.Status)
}
