package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/gig-market/internal/api/dto"
	"github.com/spec-kit/gig-market/internal/auth"
	"github.com/spec-kit/gig-market/internal/domain"
	"github.com/spec-kit/gig-market/internal/search"
	"github.com/spec-kit/gig-market/internal/service"
	apperrors "github.com/spec-kit/gig-market/pkg/util/errorutil"
)

const dateLayout = "2006-01-02"

// JobsHandler manages the job catalogue endpoints.
type JobsHandler struct {
	service *service.JobService
}

// NewJobsHandler constructs handler.
func NewJobsHandler(jobService *service.JobService) *JobsHandler {
	return &JobsHandler{service: jobService}
}

// Categories GET /categories.
func (h *JobsHandler) Categories(c *fiber.Ctx) error {
	cats := domain.Categories()
	items := make([]dto.CategoryResponse, 0, len(cats))
	for _, cat := range cats {
		items = append(items, dto.CategoryResponse{Value: cat.Value, Label: cat.Label, Icon: cat.Icon})
	}
	return c.JSON(fiber.Map{"data": items})
}

// ListJobs GET /jobs.
func (h *JobsHandler) ListJobs(c *fiber.Ctx) error {
	criteria, err := parseJobQuery(c)
	if err != nil {
		return err
	}
	jobs := h.service.Search(criteria)
	items := make([]dto.JobResponse, 0, len(jobs))
	for i := range jobs {
		items = append(items, jobResponse(&jobs[i], false))
	}
	return c.JSON(fiber.Map{"data": dto.JobListResponse{
		Items: items,
		Total: len(items),
		Sort:  string(search.ParseSortKey(string(criteria.SortBy))),
	}})
}

// GetJob GET /jobs/:id.
func (h *JobsHandler) GetJob(c *fiber.Ctx) error {
	job, err := h.service.Get(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": jobResponse(job, false)})
}

// CreateJob POST /jobs.
func (h *JobsHandler) CreateJob(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.CreateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	date, err := time.Parse(dateLayout, strings.TrimSpace(req.Date))
	if err != nil {
		return apperrors.NewValidationError("validation failed", map[string]any{"date": "must be a date as YYYY-MM-DD"})
	}

	job, err := h.service.CreateJob(c.UserContext(), principal.User, service.CreateJobInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Location:    req.Location,
		Salary:      req.Salary,
		SalaryUnit:  req.SalaryUnit,
		Date:        date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": jobResponse(job, true)})
}

// Apply POST /jobs/:id/apply.
func (h *JobsHandler) Apply(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	conv, err := h.service.Apply(c.UserContext(), principal.User, c.Params("id"))
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": conversationDetail(conv)})
}

// MyJobs GET /jobs/mine.
func (h *JobsHandler) MyJobs(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	jobs := h.service.ListByEmployer(principal.User.ID)
	items := make([]dto.JobResponse, 0, len(jobs))
	for i := range jobs {
		items = append(items, jobResponse(&jobs[i], true))
	}
	summary := employerSummary(h.service.EmployerSummary(principal.User.ID))
	return c.JSON(fiber.Map{"data": fiber.Map{
		"items":   items,
		"summary": summary,
	}})
}

// UpdateStatus PATCH /jobs/:id/status.
func (h *JobsHandler) UpdateStatus(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("user required")
	}
	var req dto.UpdateJobStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	job, err := h.service.UpdateStatus(c.UserContext(), principal.User, c.Params("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": jobResponse(job, true)})
}

// parseJobQuery reads ?q=&category=&location=&sort=&match=. The text search also
// covers employer names unless match=location selects the location field instead.
// An unknown category or match mode is a validation failure.
func parseJobQuery(c *fiber.Ctx) (search.Criteria, error) {
	criteria := search.Criteria{
		Query:    c.Query("q"),
		Location: c.Query("location"),
		SortBy:   search.ParseSortKey(c.Query("sort")),
	}
	if raw := c.Query("category"); raw != "" {
		criteria.Category = search.ParseCategory(raw)
		if criteria.Category == nil {
			return criteria, apperrors.NewValidationError("validation failed", map[string]any{
				"category": "must be one of the job categories",
			})
		}
	}
	switch strings.ToLower(c.Query("match")) {
	case "employer", "":
		criteria.MatchEmployer = true
	case "location":
		criteria.MatchLocation = true
	case "none":
	default:
		return criteria, apperrors.NewValidationError("validation failed", map[string]any{
			"match": "must be employer, location or none",
		})
	}
	return criteria, nil
}

func jobResponse(job *domain.Job, withApplicants bool) dto.JobResponse {
	resp := dto.JobResponse{
		ID:             job.ID,
		Title:          job.Title,
		Description:    job.Description,
		Category:       job.Category,
		Location:       job.Location,
		Salary:         job.Salary,
		SalaryUnit:     job.SalaryUnit,
		Date:           job.Date.Format(dateLayout),
		StartTime:      job.StartTime,
		EndTime:        job.EndTime,
		EmployerID:     job.EmployerID,
		EmployerName:   job.EmployerName,
		Status:         job.Status,
		ApplicantCount: len(job.Applicants),
		CreatedAt:      job.CreatedAt,
	}
	if withApplicants {
		resp.Applicants = nonNil(job.Applicants)
	}
	return resp
}

func employerSummary(s service.EmployerSummary) dto.EmployerSummaryResponse {
	return dto.EmployerSummaryResponse{
		Total:      s.Total,
		Active:     s.Active,
		Completed:  s.Completed,
		Applicants: s.Applicants,
	}
}
