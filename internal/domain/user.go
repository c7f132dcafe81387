package domain

import (
	"errors"
	"strings"
	"time"
)

// Role differentiates the two sides of the marketplace.
type Role string

const (
	RoleWorker   Role = "worker"
	RoleEmployer Role = "employer"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleWorker || r == RoleEmployer
}

// User is the domain model for a marketplace account.
type User struct {
	ID        string
	Email     string
	Phone     string
	Name      string
	Surname   string
	Age       *int
	Avatar    string
	Role      Role
	CreatedAt time.Time

	Worker   *WorkerProfile
	Employer *EmployerProfile
}

// WorkerProfile holds gamification state for workers.
type WorkerProfile struct {
	Points        int
	StreakDays    int
	CompletedJobs []string
}

// EmployerProfile holds employer specific data.
type EmployerProfile struct {
	CompanyName     string
	PostedJobs      []string
	PreviousWorkers []WorkerSummary
}

// WorkerSummary is a worker an employer engaged before.
type WorkerSummary struct {
	ID         string
	Name       string
	Avatar     string
	DaysWorked int
	Rating     *float64
}

// FullName joins name and surname.
func (u *User) FullName() string {
	return strings.TrimSpace(u.Name + " " + u.Surname)
}

// DisplayName is the name shown to counterparts: company name for employers when set.
func (u *User) DisplayName() string {
	if u.Employer != nil && strings.TrimSpace(u.Employer.CompanyName) != "" {
		return u.Employer.CompanyName
	}
	return u.FullName()
}

// Validate checks that exactly the profile matching the role is populated.
func (u *User) Validate() error {
	switch u.Role {
	case RoleWorker:
		if u.Worker == nil || u.Employer != nil {
			return errors.New("worker must carry only a worker profile")
		}
	case RoleEmployer:
		if u.Employer == nil || u.Worker != nil {
			return errors.New("employer must carry only an employer profile")
		}
	default:
		return errors.New("unknown role")
	}
	return nil
}

// Clone returns a deep copy so callers cannot alias store state.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	cp := *u
	if u.Age != nil {
		age := *u.Age
		cp.Age = &age
	}
	if u.Worker != nil {
		w := *u.Worker
		w.CompletedJobs = append([]string(nil), u.Worker.CompletedJobs...)
		cp.Worker = &w
	}
	if u.Employer != nil {
		e := *u.Employer
		e.PostedJobs = append([]string(nil), u.Employer.PostedJobs...)
		e.PreviousWorkers = append([]WorkerSummary(nil), u.Employer.PreviousWorkers...)
		cp.Employer = &e
	}
	return &cp
}
