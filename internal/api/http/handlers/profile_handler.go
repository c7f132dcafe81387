package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/gig-market/internal/api/dto"
	"github.com/spec-kit/gig-market/internal/domain"
	"github.com/spec-kit/gig-market/internal/service"
)

// ProfileHandler renders the caller's profile page.
type ProfileHandler struct {
	jobs *service.JobService
}

// NewProfileHandler constructs handler.
func NewProfileHandler(jobService *service.JobService) *ProfileHandler {
	return &ProfileHandler{jobs: jobService}
}

// Get GET /profile. Employer profiles list their postings from the live catalogue.
func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	resp := dto.ProfileResponse{User: userResponse(user)}
	if user.Role == domain.RoleEmployer && resp.User.Employer != nil {
		posted := []string{}
		for _, job := range h.jobs.ListByEmployer(user.ID) {
			posted = append(posted, job.ID)
		}
		resp.User.Employer.PostedJobs = posted
		summary := employerSummary(h.jobs.EmployerSummary(user.ID))
		resp.Summary = &summary
	}
	return c.JSON(fiber.Map{"data": resp})
}
