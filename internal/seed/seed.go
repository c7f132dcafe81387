// Package seed loads the demo catalogue shipped with the service.
package seed

import (
	_ "embed"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/spec-kit/gig-market/internal/auth"
	"github.com/spec-kit/gig-market/internal/domain"
)

//go:embed seed.yaml
var defaultData []byte

// Data is the decoded demo catalogue.
type Data struct {
	Accounts      []auth.StaticAccount
	Jobs          []domain.Job
	Conversations map[string][]domain.Conversation
}

type file struct {
	Accounts []struct {
		Email           string `yaml:"email"`
		Password        string `yaml:"password"`
		ID              string `yaml:"id"`
		Role            string `yaml:"role"`
		Name            string `yaml:"name"`
		Surname         string `yaml:"surname"`
		Phone           string `yaml:"phone"`
		Age             *int   `yaml:"age"`
		Points          int    `yaml:"points"`
		StreakDays      int    `yaml:"streak_days"`
		CompanyName     string `yaml:"company_name"`
		PreviousWorkers []struct {
			ID         string   `yaml:"id"`
			Name       string   `yaml:"name"`
			DaysWorked int      `yaml:"days_worked"`
			Rating     *float64 `yaml:"rating"`
		} `yaml:"previous_workers"`
	} `yaml:"accounts"`
	Jobs []struct {
		ID              string  `yaml:"id"`
		Title           string  `yaml:"title"`
		Description     string  `yaml:"description"`
		Category        string  `yaml:"category"`
		Location        string  `yaml:"location"`
		Salary          float64 `yaml:"salary"`
		SalaryUnit      string  `yaml:"salary_unit"`
		DateInDays      int     `yaml:"date_in_days"`
		StartTime       string  `yaml:"start_time"`
		EndTime         string  `yaml:"end_time"`
		EmployerID      string  `yaml:"employer_id"`
		EmployerName    string  `yaml:"employer_name"`
		CreatedHoursAgo int     `yaml:"created_hours_ago"`
	} `yaml:"jobs"`
	Conversations []struct {
		OwnerID     string `yaml:"owner_id"`
		ID          string `yaml:"id"`
		Name        string `yaml:"name"`
		RecipientID string `yaml:"recipient_id"`
		Unread      int    `yaml:"unread"`
		Messages    []struct {
			ID     string `yaml:"id"`
			Text   string `yaml:"text"`
			Sender string `yaml:"sender"`
			Time   string `yaml:"time"`
		} `yaml:"messages"`
	} `yaml:"conversations"`
}

// Default decodes the embedded catalogue relative to now.
func Default(now time.Time) (*Data, error) {
	return Parse(defaultData, now)
}

// Parse decodes a catalogue. Job dates and creation times are stored as offsets
// from now so the demo never goes stale.
func Parse(raw []byte, now time.Time) (*Data, error) {
	var f file
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}

	data := &Data{Conversations: map[string][]domain.Conversation{}}

	for _, a := range f.Accounts {
		user := &domain.User{
			ID:        a.ID,
			Email:     a.Email,
			Phone:     a.Phone,
			Name:      a.Name,
			Surname:   a.Surname,
			Age:       a.Age,
			Role:      domain.Role(a.Role),
			CreatedAt: now,
		}
		switch user.Role {
		case domain.RoleWorker:
			user.Worker = &domain.WorkerProfile{Points: a.Points, StreakDays: a.StreakDays}
		case domain.RoleEmployer:
			profile := &domain.EmployerProfile{CompanyName: a.CompanyName}
			for _, w := range a.PreviousWorkers {
				profile.PreviousWorkers = append(profile.PreviousWorkers, domain.WorkerSummary{
					ID:         w.ID,
					Name:       w.Name,
					DaysWorked: w.DaysWorked,
					Rating:     w.Rating,
				})
			}
			user.Employer = profile
		}
		if err := user.Validate(); err != nil {
			return nil, fmt.Errorf("seed account %s: %w", a.Email, err)
		}
		data.Accounts = append(data.Accounts, auth.StaticAccount{Email: a.Email, Password: a.Password, User: user})
	}

	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	for _, j := range f.Jobs {
		job := domain.Job{
			ID:           j.ID,
			Title:        j.Title,
			Description:  j.Description,
			Category:     domain.Category(j.Category),
			Location:     j.Location,
			Salary:       j.Salary,
			SalaryUnit:   domain.SalaryUnit(j.SalaryUnit),
			Date:         day.AddDate(0, 0, j.DateInDays),
			StartTime:    j.StartTime,
			EndTime:      j.EndTime,
			EmployerID:   j.EmployerID,
			EmployerName: j.EmployerName,
			Status:       domain.JobStatusActive,
			Applicants:   []string{},
			CreatedAt:    now.Add(-time.Duration(j.CreatedHoursAgo) * time.Hour),
		}
		if !job.Category.Valid() || !job.SalaryUnit.Valid() {
			return nil, fmt.Errorf("seed job %s: invalid category or salary unit", j.ID)
		}
		data.Jobs = append(data.Jobs, job)
	}

	for _, c := range f.Conversations {
		conv := domain.Conversation{
			ID:          c.ID,
			Name:        c.Name,
			Avatar:      domain.AvatarInitial(c.Name),
			RecipientID: c.RecipientID,
			Unread:      c.Unread,
		}
		for _, m := range c.Messages {
			conv.Messages = append(conv.Messages, domain.Message{
				ID:     m.ID,
				Text:   m.Text,
				Sender: domain.Sender(m.Sender),
				Time:   m.Time,
				Type:   domain.MessageTypeText,
			})
		}
		if n := len(conv.Messages); n > 0 {
			conv.LastMessage = conv.Messages[n-1].Text
			conv.Time = conv.Messages[n-1].Time
		}
		data.Conversations[c.OwnerID] = append(data.Conversations[c.OwnerID], conv)
	}
	return data, nil
}

// ConversationsFor feeds repository.NewMailboxes.
func (d *Data) ConversationsFor(userID string) []domain.Conversation {
	if d == nil {
		return nil
	}
	return d.Conversations[userID]
}
