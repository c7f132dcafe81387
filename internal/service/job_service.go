package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/gig-market/internal/domain"
	"github.com/spec-kit/gig-market/internal/events"
	"github.com/spec-kit/gig-market/internal/latency"
	"github.com/spec-kit/gig-market/internal/repository"
	"github.com/spec-kit/gig-market/internal/search"
	"github.com/spec-kit/gig-market/internal/validation"
	apperrors "github.com/spec-kit/gig-market/pkg/util/errorutil"
)

// JobService orchestrates the job catalogue workflows.
type JobService struct {
	jobs       repository.JobStore
	mailboxes  *repository.Mailboxes
	dispatcher events.Dispatcher
	create     latency.Simulator
	logger     *zap.Logger
	newID      func() string
	now        func() time.Time
}

// JobDependencies bundles collaborators for JobService.
type JobDependencies struct {
	Jobs          repository.JobStore
	Mailboxes     *repository.Mailboxes
	Dispatcher    events.Dispatcher
	CreateLatency latency.Simulator
	Logger        *zap.Logger
	NewID         func() string
	Now           func() time.Time
}

// CreateJobInput describes a new posting.
type CreateJobInput struct {
	Title       string            `json:"title" validate:"required,max=120"`
	Description string            `json:"description" validate:"max=2000"`
	Category    domain.Category   `json:"category" validate:"required,category"`
	Location    string            `json:"location" validate:"required"`
	Salary      float64           `json:"salary" validate:"gt=0"`
	SalaryUnit  domain.SalaryUnit `json:"salary_unit" validate:"required,salary_unit"`
	Date        time.Time         `json:"date" validate:"required"`
	StartTime   string            `json:"start_time" validate:"omitempty,hhmm"`
	EndTime     string            `json:"end_time" validate:"omitempty,hhmm"`
}

// EmployerSummary backs the "my ads" view.
type EmployerSummary struct {
	Total      int
	Active     int
	Completed  int
	Applicants int
}

// NewJobService constructs the service.
func NewJobService(deps JobDependencies) *JobService {
	s := &JobService{
		jobs:       deps.Jobs,
		mailboxes:  deps.Mailboxes,
		dispatcher: deps.Dispatcher,
		create:     deps.CreateLatency,
		logger:     deps.Logger,
		newID:      deps.NewID,
		now:        deps.Now,
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// CreateJob validates input, waits out the posting delay and prepends the job.
func (s *JobService) CreateJob(ctx context.Context, employer *domain.User, in CreateJobInput) (*domain.Job, error) {
	if err := requireRole(employer, domain.RoleEmployer); err != nil {
		return nil, err
	}
	in.Title = strings.TrimSpace(in.Title)
	in.Location = strings.TrimSpace(in.Location)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if err := s.create.Wait(ctx); err != nil {
		return nil, err
	}

	job := domain.Job{
		ID:           s.newID(),
		Title:        in.Title,
		Description:  strings.TrimSpace(in.Description),
		Category:     in.Category,
		Location:     in.Location,
		Salary:       in.Salary,
		SalaryUnit:   in.SalaryUnit,
		Date:         in.Date,
		StartTime:    in.StartTime,
		EndTime:      in.EndTime,
		EmployerID:   employer.ID,
		EmployerName: employer.DisplayName(),
		Status:       domain.JobStatusActive,
		Applicants:   []string{},
		CreatedAt:    s.now(),
	}
	s.jobs.AddJob(job)

	s.publish(ctx, events.EventJobCreated, employer, events.JobCreatedPayload{
		JobID:    job.ID,
		Title:    job.Title,
		Category: job.Category,
	})
	return &job, nil
}

// Apply records worker as an applicant of jobID and drops an application
// message into the worker's conversation with the employer.
func (s *JobService) Apply(ctx context.Context, worker *domain.User, jobID string) (*domain.Conversation, error) {
	if err := requireRole(worker, domain.RoleWorker); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	job, ok := s.jobs.GetJobByID(jobID)
	if !ok {
		return nil, apperrors.NewNotFound("job", map[string]any{"job_id": jobID})
	}
	if job.Status != domain.JobStatusActive {
		return nil, apperrors.NewConflict("job is not accepting applications", map[string]any{"status": job.Status})
	}
	if !s.jobs.ApplyToJob(jobID, worker.ID) {
		return nil, apperrors.NewConflict("already applied to this job", map[string]any{"job_id": jobID})
	}

	conv := s.mailboxes.For(worker.ID).SendApplicationMessage(job.EmployerID, job.EmployerName, job.Title)
	msg := conv.Messages[len(conv.Messages)-1]

	s.publish(ctx, events.EventJobApplied, worker, events.JobAppliedPayload{
		JobID:        job.ID,
		JobTitle:     job.Title,
		EmployerID:   job.EmployerID,
		EmployerName: job.EmployerName,
		Message:      msg,
	})
	return &conv, nil
}

// Search runs the filter and sort engine over a snapshot of the catalogue.
func (s *JobService) Search(criteria search.Criteria) []domain.Job {
	return search.Apply(s.jobs.List(), criteria)
}

// Get returns one job.
func (s *JobService) Get(jobID string) (*domain.Job, error) {
	job, ok := s.jobs.GetJobByID(jobID)
	if !ok {
		return nil, apperrors.NewNotFound("job", map[string]any{"job_id": jobID})
	}
	return &job, nil
}

// ListByEmployer returns the employer's postings in collection order.
func (s *JobService) ListByEmployer(employerID string) []domain.Job {
	return s.jobs.GetJobsByEmployer(employerID)
}

// EmployerSummary counts the employer's postings by status.
func (s *JobService) EmployerSummary(employerID string) EmployerSummary {
	var summary EmployerSummary
	for _, job := range s.jobs.GetJobsByEmployer(employerID) {
		summary.Total++
		summary.Applicants += len(job.Applicants)
		switch job.Status {
		case domain.JobStatusActive:
			summary.Active++
		case domain.JobStatusCompleted:
			summary.Completed++
		}
	}
	return summary
}

// UpdateStatus lets the owning employer move a posting between statuses.
func (s *JobService) UpdateStatus(ctx context.Context, employer *domain.User, jobID string, status domain.JobStatus) (*domain.Job, error) {
	if err := requireRole(employer, domain.RoleEmployer); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, apperrors.NewValidationError("invalid job status", map[string]any{"status": status})
	}
	job, ok := s.jobs.GetJobByID(jobID)
	if !ok {
		return nil, apperrors.NewNotFound("job", map[string]any{"job_id": jobID})
	}
	if job.EmployerID != employer.ID {
		return nil, apperrors.NewForbidden("only the posting employer can change its status")
	}
	if job.Status == status {
		return &job, nil
	}
	old := job.Status
	s.jobs.UpdateStatus(jobID, status)
	job.Status = status

	s.publish(ctx, events.EventJobStatusChanged, employer, events.JobStatusChangedPayload{
		JobID:     jobID,
		OldStatus: old,
		NewStatus: status,
	})
	return &job, nil
}

func (s *JobService) publish(ctx context.Context, eventType events.EventType, actor *domain.User, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	err := s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Actor:     actorOf(actor),
		Timestamp: s.now(),
		Payload:   payload,
	})
	if err != nil {
		s.logger.Warn("event handler failed", zap.String("event_type", string(eventType)), zap.Error(err))
	}
}
