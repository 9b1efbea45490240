package domain

import "time"

type ReportStatus string

const (
	StatusOpen       ReportStatus = "open"
	StatusInProgress ReportStatus = "in_progress"
	StatusResolved   ReportStatus = "resolved"
	StatusClosed     ReportStatus = "closed"
)

// statusTransitions is the administrative triage table. Owners never move
// status themselves; they can only edit/delete while the report is open.
var statusTransitions = map[ReportStatus][]ReportStatus{
	StatusOpen:       {StatusInProgress, StatusClosed},
	StatusInProgress: {StatusResolved, StatusClosed},
	StatusResolved:   {StatusClosed},
	StatusClosed:     {},
}

func (s ReportStatus) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusResolved, StatusClosed:
		return true
	}
	return false
}

func (s ReportStatus) CanTransitionTo(next ReportStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Report struct {
	ID           int64
	ReportID     string // public ID, e.g. "Rmf3k2a9q-x7c41p"
	UserID       int64
	Title        string
	Description  string
	Department   string
	Address      string
	LocationText string
	Latitude     *float64
	Longitude    *float64
	ImagePath    string // relative, under /uploads
	Status       ReportStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Mutable reports whether the owner may still edit or delete the report.
func (r *Report) Mutable() bool {
	return r.Status == StatusOpen
}
