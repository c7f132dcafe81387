package domain

import "time"

// Comment is a review left on a job posting.
type Comment struct {
	ID           string
	JobID        string
	UserID       string
	UserName     string
	Text         string
	Rating       *int
	CreatedAt    time.Time
	Likes        int
	LikedBy      []string
	Reported     bool
	ReportReason string
}

// Clone copies the comment including its like list.
func (c Comment) Clone() Comment {
	c.LikedBy = append([]string(nil), c.LikedBy...)
	if c.Rating != nil {
		r := *c.Rating
		c.Rating = &r
	}
	return c
}
