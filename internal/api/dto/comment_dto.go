package dto

import "time"

// CreateCommentRequest payload.
type CreateCommentRequest struct {
	Text   string `json:"text"`
	Rating *int   `json:"rating"`
}

// CommentResponse is the public shape of a comment.
type CommentResponse struct {
	ID        string    `json:"id"`
	JobID     string    `json:"job_id"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	Text      string    `json:"text"`
	Rating    *int      `json:"rating,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	Likes     int       `json:"likes"`
	Reported  bool      `json:"reported"`
}
