// Package search derives the displayed subset of the job catalogue. Every
// function here is pure: inputs are never mutated and results are fresh slices.
package search

import (
	"sort"
	"strings"

	"github.com/spec-kit/gig-market/internal/domain"
)

// SortKey selects the ordering of results.
type SortKey string

const (
	SortNewest     SortKey = "newest"
	SortSalaryHigh SortKey = "salary-high"
	SortSalaryLow  SortKey = "salary-low"
	SortDate       SortKey = "date"
)

// Criteria bundles the active filters and the sort key.
type Criteria struct {
	Query    string
	Category *domain.Category
	Location string
	SortBy   SortKey

	// MatchEmployer extends the text search to the employer name.
	MatchEmployer bool
	// MatchLocation extends the text search to the location field.
	MatchLocation bool
}

// Predicate decides whether a job stays in the result set.
type Predicate func(domain.Job) bool

// ParseSortKey maps query input to a key; anything unknown falls back to newest.
func ParseSortKey(raw string) SortKey {
	switch SortKey(strings.ToLower(strings.TrimSpace(raw))) {
	case SortSalaryHigh:
		return SortSalaryHigh
	case SortSalaryLow:
		return SortSalaryLow
	case SortDate:
		return SortDate
	default:
		return SortNewest
	}
}

// ParseCategory returns nil for empty or unknown input.
func ParseCategory(raw string) *domain.Category {
	c := domain.Category(strings.ToLower(strings.TrimSpace(raw)))
	if !c.Valid() {
		return nil
	}
	return &c
}

// Apply filters then sorts jobs according to c.
func Apply(jobs []domain.Job, c Criteria) []domain.Job {
	return Sort(Filter(jobs, c.Predicates()...), c.SortBy)
}

// Predicates returns the active predicates of c. Inactive filters are omitted.
// Query and location are matched as typed, surrounding spaces included.
func (c Criteria) Predicates() []Predicate {
	var preds []Predicate
	if c.Query != "" {
		preds = append(preds, TextMatch(c.Query, c.MatchEmployer, c.MatchLocation))
	}
	if c.Category != nil {
		preds = append(preds, InCategory(*c.Category))
	}
	if c.Location != "" {
		preds = append(preds, AtLocation(c.Location))
	}
	return preds
}

// Filter keeps jobs satisfying every predicate, in input order.
func Filter(jobs []domain.Job, preds ...Predicate) []domain.Job {
	result := make([]domain.Job, 0, len(jobs))
next:
	for _, job := range jobs {
		for _, pred := range preds {
			if !pred(job) {
				continue next
			}
		}
		result = append(result, job.Clone())
	}
	return result
}

// TextMatch is a case-insensitive substring match on title and description.
func TextMatch(query string, employer, location bool) Predicate {
	q := strings.ToLower(query)
	return func(job domain.Job) bool {
		if q == "" {
			return true
		}
		if contains(job.Title, q) || contains(job.Description, q) {
			return true
		}
		if employer && contains(job.EmployerName, q) {
			return true
		}
		return location && contains(job.Location, q)
	}
}

// InCategory is an exact category match.
func InCategory(category domain.Category) Predicate {
	return func(job domain.Job) bool {
		return job.Category == category
	}
}

// AtLocation is a case-insensitive substring match on the location.
func AtLocation(location string) Predicate {
	l := strings.ToLower(location)
	return func(job domain.Job) bool {
		return contains(job.Location, l)
	}
}

// Sort returns a sorted copy. The sort is stable, so jobs with equal keys keep
// their input order.
func Sort(jobs []domain.Job, key SortKey) []domain.Job {
	result := make([]domain.Job, len(jobs))
	for i := range jobs {
		result[i] = jobs[i].Clone()
	}

	var less func(a, b domain.Job) bool
	switch ParseSortKey(string(key)) {
	case SortSalaryHigh:
		less = func(a, b domain.Job) bool { return a.Salary > b.Salary }
	case SortSalaryLow:
		less = func(a, b domain.Job) bool { return a.Salary < b.Salary }
	case SortDate:
		less = func(a, b domain.Job) bool { return a.Date.Before(b.Date) }
	default:
		less = func(a, b domain.Job) bool { return a.CreatedAt.After(b.CreatedAt) }
	}
	sort.SliceStable(result, func(i, j int) bool {
		return less(result[i], result[j])
	})
	return result
}

func contains(field, lowered string) bool {
	return strings.Contains(strings.ToLower(field), lowered)
}
