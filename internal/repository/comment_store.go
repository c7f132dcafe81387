package repository

import (
	"sync"

	"github.com/spec-kit/gig-market/internal/domain"
)

// CommentStore keeps job comments newest first.
type CommentStore interface {
	Add(comment domain.Comment)
	Get(id string) (domain.Comment, bool)
	ListByJob(jobID string) []domain.Comment
	Like(commentID, userID string) bool
	Report(commentID, reason string) bool
}

type commentStore struct {
	mu       sync.RWMutex
	comments []domain.Comment
}

// NewCommentStore builds an empty store.
func NewCommentStore() CommentStore {
	return &commentStore{}
}

func (s *commentStore) Add(comment domain.Comment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.comments = append([]domain.Comment{comment.Clone()}, s.comments...)
}

func (s *commentStore) Get(id string) (domain.Comment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.comments {
		if c.ID == id {
			return c.Clone(), true
		}
	}
	return domain.Comment{}, false
}

func (s *commentStore) ListByJob(jobID string) []domain.Comment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := []domain.Comment{}
	for _, c := range s.comments {
		if c.JobID == jobID {
			result = append(result, c.Clone())
		}
	}
	return result
}

// Like counts at most one like per user.
func (s *commentStore) Like(commentID, userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.comments {
		if s.comments[i].ID != commentID {
			continue
		}
		for _, id := range s.comments[i].LikedBy {
			if id == userID {
				return false
			}
		}
		s.comments[i].LikedBy = append(s.comments[i].LikedBy, userID)
		s.comments[i].Likes++
		return true
	}
	return false
}

func (s *commentStore) Report(commentID, reason string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.comments {
		if s.comments[i].ID == commentID {
			s.comments[i].Reported = true
			s.comments[i].ReportReason = reason
			return true
		}
	}
	return false
}
