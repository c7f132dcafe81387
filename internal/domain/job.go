package domain

import "time"

// Category enumerates the fixed job categories.
type Category string

const (
	CategoryEvent      Category = "event"
	CategoryRestaurant Category = "restaurant"
	CategoryWarehouse  Category = "warehouse"
	CategoryRetail     Category = "retail"
	CategoryPromotion  Category = "promotion"
	CategoryDelivery   Category = "delivery"
	CategoryCleaning   Category = "cleaning"
	CategoryOther      Category = "other"
)

// CategoryInfo pairs a category with its display label and icon name.
type CategoryInfo struct {
	Value Category
	Label string
	Icon  string
}

var categories = []CategoryInfo{
	{Value: CategoryEvent, Label: "Tədbirlər", Icon: "Calendar"},
	{Value: CategoryRestaurant, Label: "Restoran", Icon: "UtensilsCrossed"},
	{Value: CategoryWarehouse, Label: "Anbar", Icon: "Warehouse"},
	{Value: CategoryRetail, Label: "Satış", Icon: "ShoppingBag"},
	{Value: CategoryPromotion, Label: "Reklam", Icon: "Megaphone"},
	{Value: CategoryDelivery, Label: "Çatdırılma", Icon: "Truck"},
	{Value: CategoryCleaning, Label: "Təmizlik", Icon: "Sparkles"},
	{Value: CategoryOther, Label: "Digər", Icon: "MoreHorizontal"},
}

// Categories returns the ordered category catalogue.
func Categories() []CategoryInfo {
	return append([]CategoryInfo(nil), categories...)
}

// Valid reports whether c is one of the fixed categories.
func (c Category) Valid() bool {
	for _, info := range categories {
		if info.Value == c {
			return true
		}
	}
	return false
}

// SalaryUnit tells how a salary is paid.
type SalaryUnit string

const (
	SalaryHourly SalaryUnit = "hourly"
	SalaryDaily  SalaryUnit = "daily"
)

// Valid reports whether u is a known unit.
func (u SalaryUnit) Valid() bool {
	return u == SalaryHourly || u == SalaryDaily
}

// JobStatus enumerates lifecycle states for job postings.
type JobStatus string

const (
	JobStatusActive    JobStatus = "active"
	JobStatusFilled    JobStatus = "filled"
	JobStatusCompleted JobStatus = "completed"
	JobStatusCancelled JobStatus = "cancelled"
)

// Valid reports whether s is a known status.
func (s JobStatus) Valid() bool {
	switch s {
	case JobStatusActive, JobStatusFilled, JobStatusCompleted, JobStatusCancelled:
		return true
	}
	return false
}

// Job is a single gig posting.
type Job struct {
	ID           string
	Title        string
	Description  string
	Category     Category
	Location     string
	Salary       float64
	SalaryUnit   SalaryUnit
	Date         time.Time
	StartTime    string
	EndTime      string
	EmployerID   string
	EmployerName string
	Status       JobStatus
	Applicants   []string
	CreatedAt    time.Time
}

// Clone copies the job including its applicant list.
func (j Job) Clone() Job {
	j.Applicants = append([]string(nil), j.Applicants...)
	return j
}

// HasApplicant reports whether workerID already applied.
func (j Job) HasApplicant(workerID string) bool {
	for _, id := range j.Applicants {
		if id == workerID {
			return true
		}
	}
	return false
}
