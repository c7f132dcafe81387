package dto

import (
	"time"

	"github.com/spec-kit/gig-market/internal/domain"
)

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	Email           string      `json:"email"`
	Phone           string      `json:"phone"`
	Password        string      `json:"password"`
	ConfirmPassword string      `json:"confirm_password"`
	Name            string      `json:"name"`
	Surname         string      `json:"surname"`
	Role            domain.Role `json:"role"`
	CompanyName     string      `json:"company_name"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// UserResponse is the public shape of an account.
type UserResponse struct {
	ID        string                   `json:"id"`
	Email     string                   `json:"email"`
	Phone     string                   `json:"phone,omitempty"`
	Name      string                   `json:"name"`
	Surname   string                   `json:"surname"`
	Age       *int                     `json:"age,omitempty"`
	Avatar    string                   `json:"avatar,omitempty"`
	Role      domain.Role              `json:"role"`
	CreatedAt time.Time                `json:"created_at"`
	Worker    *WorkerProfileResponse   `json:"worker_profile,omitempty"`
	Employer  *EmployerProfileResponse `json:"employer_profile,omitempty"`
}

// WorkerProfileResponse includes the derived streak tier and level.
type WorkerProfileResponse struct {
	Points            int               `json:"points"`
	Level             int               `json:"level"`
	PointsToNextLevel int               `json:"points_to_next_level"`
	StreakDays        int               `json:"streak_days"`
	StreakTier        domain.StreakTier `json:"streak_tier"`
	StreakLabel       string            `json:"streak_label"`
	CompletedJobs     []string          `json:"completed_jobs"`
}

// EmployerProfileResponse mirrors domain.EmployerProfile.
type EmployerProfileResponse struct {
	CompanyName     string                  `json:"company_name,omitempty"`
	PostedJobs      []string                `json:"posted_jobs"`
	PreviousWorkers []WorkerSummaryResponse `json:"previous_workers"`
}

// WorkerSummaryResponse describes a worker an employer hired before.
type WorkerSummaryResponse struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Avatar     string   `json:"avatar,omitempty"`
	DaysWorked int      `json:"days_worked"`
	Rating     *float64 `json:"rating,omitempty"`
}

// ProfileResponse is returned by GET /profile.
type ProfileResponse struct {
	User    UserResponse             `json:"user"`
	Summary *EmployerSummaryResponse `json:"ads_summary,omitempty"`
}
