package repository

import (
	"sync"

	"github.com/spec-kit/gig-market/internal/domain"
)

// JobStore owns the canonical job collection for the process.
type JobStore interface {
	AddJob(job domain.Job)
	GetJobByID(id string) (domain.Job, bool)
	GetJobsByEmployer(employerID string) []domain.Job
	ApplyToJob(jobID, workerID string) bool
	UpdateStatus(jobID string, status domain.JobStatus) bool
	List() []domain.Job
}

type jobStore struct {
	mu   sync.RWMutex
	jobs []domain.Job
}

// NewJobStore builds a store seeded with jobs, kept in the given order.
func NewJobStore(seed []domain.Job) JobStore {
	jobs := make([]domain.Job, 0, len(seed))
	for _, job := range seed {
		jobs = append(jobs, job.Clone())
	}
	return &jobStore{jobs: jobs}
}

// AddJob prepends, so the collection stays newest first.
func (s *jobStore) AddJob(job domain.Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs = append([]domain.Job{job.Clone()}, s.jobs...)
}

func (s *jobStore) GetJobByID(id string) (domain.Job, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, job := range s.jobs {
		if job.ID == id {
			return job.Clone(), true
		}
	}
	return domain.Job{}, false
}

func (s *jobStore) GetJobsByEmployer(employerID string) []domain.Job {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := []domain.Job{}
	for _, job := range s.jobs {
		if job.EmployerID == employerID {
			result = append(result, job.Clone())
		}
	}
	return result
}

// ApplyToJob records workerID as an applicant. Applicants form a set: a repeated
// application by the same worker and an unknown job id are both no-ops returning false.
func (s *jobStore) ApplyToJob(jobID, workerID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.jobs {
		if s.jobs[i].ID != jobID {
			continue
		}
		if s.jobs[i].HasApplicant(workerID) {
			return false
		}
		s.jobs[i].Applicants = append(s.jobs[i].Applicants, workerID)
		return true
	}
	return false
}

func (s *jobStore) UpdateStatus(jobID string, status domain.JobStatus) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.jobs {
		if s.jobs[i].ID == jobID {
			s.jobs[i].Status = status
			return true
		}
	}
	return false
}

func (s *jobStore) List() []domain.Job {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]domain.Job, 0, len(s.jobs))
	for _, job := range s.jobs {
		result = append(result, job.Clone())
	}
	return result
}
