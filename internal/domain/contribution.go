package domain

import "time"

type ContributionStatus string

const (
	ContributionPending  ContributionStatus = "pending"
	ContributionApproved ContributionStatus = "approved"
	ContributionRejected ContributionStatus = "rejected"
)

func (s ContributionStatus) Valid() bool {
	switch s {
	case ContributionPending, ContributionApproved, ContributionRejected:
		return true
	}
	return false
}

// Contribution is supplementary evidence attached to a report by another
// user. Vote counters only ever grow; there is no per-user vote tracking.
type Contribution struct {
	ID            int64
	ReportID      int64
	ContributorID int64
	Title         string
	Description   string
	Images        []string // relative paths under /uploads
	Status        ContributionStatus
	Helpful       bool
	Upvotes       int
	Downvotes     int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
