package dto

import (
	"time"

	"github.com/spec-kit/gig-market/internal/domain"
)

// CreateJobRequest payload. Date is a calendar day, YYYY-MM-DD.
type CreateJobRequest struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Category    domain.Category   `json:"category"`
	Location    string            `json:"location"`
	Salary      float64           `json:"salary"`
	SalaryUnit  domain.SalaryUnit `json:"salary_unit"`
	Date        string            `json:"date"`
	StartTime   string            `json:"start_time"`
	EndTime     string            `json:"end_time"`
}

// UpdateJobStatusRequest payload.
type UpdateJobStatusRequest struct {
	Status domain.JobStatus `json:"status"`
}

// JobResponse is the public shape of a posting.
type JobResponse struct {
	ID             string            `json:"id"`
	Title          string            `json:"title"`
	Description    string            `json:"description"`
	Category       domain.Category   `json:"category"`
	Location       string            `json:"location"`
	Salary         float64           `json:"salary"`
	SalaryUnit     domain.SalaryUnit `json:"salary_unit"`
	Date           string            `json:"date"`
	StartTime      string            `json:"start_time,omitempty"`
	EndTime        string            `json:"end_time,omitempty"`
	EmployerID     string            `json:"employer_id"`
	EmployerName   string            `json:"employer_name"`
	Status         domain.JobStatus  `json:"status"`
	ApplicantCount int               `json:"applicant_count"`
	Applicants     []string          `json:"applicants,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
}

// JobListResponse wraps search results with the applied criteria.
type JobListResponse struct {
	Items []JobResponse `json:"items"`
	Total int           `json:"total"`
	Sort  string        `json:"sort"`
}

// EmployerSummaryResponse backs the "my ads" counters.
type EmployerSummaryResponse struct {
	Total      int `json:"total"`
	Active     int `json:"active"`
	Completed  int `json:"completed"`
	Applicants int `json:"applicants"`
}

// CategoryResponse is one entry of GET /categories.
type CategoryResponse struct {
	Value domain.Category `json:"value"`
	Label string          `json:"label"`
	Icon  string          `json:"icon"`
}
