package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/spec-kit/gig-market/internal/api/dto"
	"github.com/spec-kit/gig-market/internal/auth"
	"github.com/spec-kit/gig-market/internal/domain"
	"github.com/spec-kit/gig-market/internal/service"
	apperrors "github.com/spec-kit/gig-market/pkg/util/errorutil"
)

// AuthHandler exposes login, registration and session endpoints.
type AuthHandler struct {
	store  *service.AuthStore
	tokens *auth.TokenManager
}

// NewAuthHandler constructs handler.
func NewAuthHandler(store *service.AuthStore, tokens *auth.TokenManager) *AuthHandler {
	return &AuthHandler{store: store, tokens: tokens}
}

// Login handles POST /auth/login. Each successful login opens a new session slot.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("email and password required", nil)
	}

	sessionID := uuid.NewString()
	ok, err := h.store.Login(c.UserContext(), sessionID, req.Email, req.Password)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.NewUnauthorized("invalid email or password")
	}
	user, err := h.store.Current(c.UserContext(), sessionID)
	if err != nil {
		return err
	}
	return h.respondWithSession(c, http.StatusOK, sessionID, user)
}

// Register handles POST /auth/register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	sessionID := uuid.NewString()
	user, err := h.store.Register(c.UserContext(), sessionID, service.RegisterInput{
		Email:           req.Email,
		Phone:           req.Phone,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Name:            req.Name,
		Surname:         req.Surname,
		Role:            req.Role,
		CompanyName:     req.CompanyName,
	})
	if err != nil {
		return err
	}
	return h.respondWithSession(c, http.StatusCreated, sessionID, user)
}

// Logout handles POST /auth/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	if err := h.store.Logout(c.UserContext(), principal.SessionID); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("user required")
	}
	user, err := h.store.Current(c.UserContext(), principal.SessionID)
	if err != nil {
		return err
	}
	if user == nil {
		return apperrors.NewUnauthorized("session ended")
	}
	return c.JSON(fiber.Map{"data": userResponse(user)})
}

func (h *AuthHandler) respondWithSession(c *fiber.Ctx, status int, sessionID string, user *domain.User) error {
	token, exp, err := h.tokens.GenerateToken(sessionID, user)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	return c.Status(status).JSON(fiber.Map{
		"data": fiber.Map{
			"user": userResponse(user),
			"auth": dto.AuthResponse{Token: token, ExpiresAt: exp},
		},
	})
}

func userResponse(user *domain.User) dto.UserResponse {
	resp := dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Phone:     user.Phone,
		Name:      user.Name,
		Surname:   user.Surname,
		Age:       user.Age,
		Avatar:    user.Avatar,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
	if w := user.Worker; w != nil {
		tier := w.StreakTier()
		resp.Worker = &dto.WorkerProfileResponse{
			Points:            w.Points,
			Level:             w.Level(),
			PointsToNextLevel: w.PointsToNextLevel(),
			StreakDays:        w.StreakDays,
			StreakTier:        tier,
			StreakLabel:       tier.Label(),
			CompletedJobs:     nonNil(w.CompletedJobs),
		}
	}
	if e := user.Employer; e != nil {
		workers := make([]dto.WorkerSummaryResponse, 0, len(e.PreviousWorkers))
		for _, pw := range e.PreviousWorkers {
			workers = append(workers, dto.WorkerSummaryResponse{
				ID:         pw.ID,
				Name:       pw.Name,
				Avatar:     pw.Avatar,
				DaysWorked: pw.DaysWorked,
				Rating:     pw.Rating,
			})
		}
		resp.Employer = &dto.EmployerProfileResponse{
			CompanyName:     e.CompanyName,
			PostedJobs:      nonNil(e.PostedJobs),
			PreviousWorkers: workers,
		}
	}
	return resp
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
