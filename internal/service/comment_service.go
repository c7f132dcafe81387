package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/gig-market/internal/domain"
	"github.com/spec-kit/gig-market/internal/events"
	"github.com/spec-kit/gig-market/internal/repository"
	"github.com/spec-kit/gig-market/internal/validation"
	apperrors "github.com/spec-kit/gig-market/pkg/util/errorutil"
)

// DefaultReportReason is used when a comment is reported without a reason.
const DefaultReportReason = "Uyğunsuz məzmun"

// CommentService manages reviews attached to job postings.
type CommentService struct {
	comments      repository.CommentStore
	jobs          repository.JobStore
	dispatcher    events.Dispatcher
	logger        *zap.Logger
	requireRating bool
	newID         func() string
	now           func() time.Time
}

// CommentDependencies bundles collaborators for CommentService.
type CommentDependencies struct {
	Comments   repository.CommentStore
	Jobs       repository.JobStore
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	// RequireRating rejects comments without a 1-5 rating.
	RequireRating bool
	NewID         func() string
	Now           func() time.Time
}

// AddCommentInput is the payload of a new comment.
type AddCommentInput struct {
	Text   string `json:"text" validate:"required,max=1000"`
	Rating *int   `json:"rating" validate:"omitempty,min=1,max=5"`
}

// NewCommentService constructs the service.
func NewCommentService(deps CommentDependencies) *CommentService {
	s := &CommentService{
		comments:      deps.Comments,
		jobs:          deps.Jobs,
		dispatcher:    deps.Dispatcher,
		logger:        deps.Logger,
		requireRating: deps.RequireRating,
		newID:         deps.NewID,
		now:           deps.Now,
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

// Add posts a comment on jobID.
func (s *CommentService) Add(ctx context.Context, author *domain.User, jobID string, in AddCommentInput) (*domain.Comment, error) {
	if err := requireUser(author); err != nil {
		return nil, err
	}
	in.Text = strings.TrimSpace(in.Text)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if s.requireRating && in.Rating == nil {
		return nil, apperrors.NewValidationError("validation failed", map[string]any{"rating": "this field is required"})
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if _, ok := s.jobs.GetJobByID(jobID); !ok {
		return nil, apperrors.NewNotFound("job", map[string]any{"job_id": jobID})
	}

	comment := domain.Comment{
		ID:        s.newID(),
		JobID:     jobID,
		UserID:    author.ID,
		UserName:  author.DisplayName(),
		Text:      in.Text,
		Rating:    in.Rating,
		CreatedAt: s.now(),
		LikedBy:   []string{},
	}
	s.comments.Add(comment)
	return &comment, nil
}

// ListByJob returns the job's comments, newest first.
func (s *CommentService) ListByJob(jobID string) ([]domain.Comment, error) {
	if _, ok := s.jobs.GetJobByID(jobID); !ok {
		return nil, apperrors.NewNotFound("job", map[string]any{"job_id": jobID})
	}
	return s.comments.ListByJob(jobID), nil
}

// Like counts one like from user; repeated likes are conflicts.
func (s *CommentService) Like(user *domain.User, commentID string) (*domain.Comment, error) {
	if err := requireUser(user); err != nil {
		return nil, err
	}
	if _, ok := s.comments.Get(commentID); !ok {
		return nil, commentNotFound(commentID)
	}
	if !s.comments.Like(commentID, user.ID) {
		return nil, apperrors.NewConflict("comment already liked", map[string]any{"comment_id": commentID})
	}
	comment, _ := s.comments.Get(commentID)
	return &comment, nil
}

// Report flags a comment for moderation.
func (s *CommentService) Report(ctx context.Context, user *domain.User, commentID, reason string) (*domain.Comment, error) {
	if err := requireUser(user); err != nil {
		return nil, err
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = DefaultReportReason
	}
	if !s.comments.Report(commentID, reason) {
		return nil, commentNotFound(commentID)
	}
	comment, _ := s.comments.Get(commentID)

	if s.dispatcher != nil {
		err := s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventCommentReported,
			Actor:     actorOf(user),
			Timestamp: s.now(),
			Payload: events.CommentReportedPayload{
				CommentID: comment.ID,
				JobID:     comment.JobID,
				Reason:    reason,
			},
		})
		if err != nil {
			s.logger.Warn("event handler failed", zap.String("event_type", string(events.EventCommentReported)), zap.Error(err))
		}
	}
	return &comment, nil
}

func commentNotFound(id string) error {
	return apperrors.NewNotFound("comment", map[string]any{"comment_id": id})
}
