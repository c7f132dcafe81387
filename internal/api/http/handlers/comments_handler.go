package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/gig-market/internal/api/dto"
	"github.com/spec-kit/gig-market/internal/domain"
	"github.com/spec-kit/gig-market/internal/service"
	apperrors "github.com/spec-kit/gig-market/pkg/util/errorutil"
)

// CommentsHandler manages job comments.
type CommentsHandler struct {
	service *service.CommentService
}

// NewCommentsHandler constructs handler.
func NewCommentsHandler(commentService *service.CommentService) *CommentsHandler {
	return &CommentsHandler{service: commentService}
}

// List GET /jobs/:id/comments.
func (h *CommentsHandler) List(c *fiber.Ctx) error {
	comments, err := h.service.ListByJob(c.Params("id"))
	if err != nil {
		return err
	}
	items := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		items = append(items, commentResponse(&comments[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Add POST /jobs/:id/comments.
func (h *CommentsHandler) Add(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req dto.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	comment, err := h.service.Add(c.UserContext(), user, c.Params("id"), service.AddCommentInput{
		Text:   req.Text,
		Rating: req.Rating,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": commentResponse(comment)})
}

// Like POST /comments/:id/like.
func (h *CommentsHandler) Like(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	comment, err := h.service.Like(user, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": commentResponse(comment)})
}

// Report POST /comments/:id/report. An empty body uses the default reason.
func (h *CommentsHandler) Report(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	var req dto.ReportRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return apperrors.NewValidationError("invalid payload", nil)
		}
	}
	comment, err := h.service.Report(c.UserContext(), user, c.Params("id"), req.Reason)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": commentResponse(comment)})
}

func commentResponse(comment *domain.Comment) dto.CommentResponse {
	return dto.CommentResponse{
		ID:        comment.ID,
		JobID:     comment.JobID,
		UserID:    comment.UserID,
		UserName:  comment.UserName,
		Text:      comment.Text,
		Rating:    comment.Rating,
		CreatedAt: comment.CreatedAt,
		Likes:     comment.Likes,
		Reported:  comment.Reported,
	}
}
