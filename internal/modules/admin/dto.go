package admin

import (
	"time"

	"civicconnect/internal/domain"
)

type ListReportsQuery struct {
	Status     string `form:"status"`
	Department string `form:"department"`
	Page       int    `form:"page,default=1"`
	PerPage    int    `form:"per_page,default=20"`
}

type StatusChangeRequest struct {
	Status string `json:"status" form:"status" validate:"required"`
}

type ModerateRequest struct {
	Status  string `json:"status" form:"status" validate:"required,oneof=approved rejected"`
	Helpful bool   `json:"helpful" form:"helpful"`
}

type ListContributionsQuery struct {
	Status  string `form:"status,default=pending"`
	Page    int    `form:"page,default=1"`
	PerPage int    `form:"per_page,default=20"`
}

type ReportItem struct {
	ID         int64  `json:"id"`
	ReportID   string `json:"report_id"`
	UserID     int64  `json:"user_id"`
	Title      string `json:"title"`
	Department string `json:"department"`
	Address    string `json:"address"`
	Status     string `json:"status"`
	ImagePath  string `json:"image_path"`
	CreatedAt  string `json:"created_at"`
}

type ReportPage struct {
	Items   []ReportItem `json:"items"`
	Total   int64        `json:"total"`
	Page    int          `json:"page"`
	PerPage int          `json:"per_page"`
}

type ContributionItem struct {
	ID          int64    `json:"id"`
	ReportID    int64    `json:"report_id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
	Status      string   `json:"status"`
	Helpful     bool     `json:"helpful"`
	Upvotes     int      `json:"upvotes"`
	Downvotes   int      `json:"downvotes"`
	CreatedAt   string   `json:"created_at"`
}

func toContributionItem(c *domain.Contribution) ContributionItem {
	return ContributionItem{
		ID:          c.ID,
		ReportID:    c.ReportID,
		Title:       c.Title,
		Description: c.Description,
		Images:      c.Images,
		Status:      string(c.Status),
		Helpful:     c.Helpful,
		Upvotes:     c.Upvotes,
		Downvotes:   c.Downvotes,
		CreatedAt:   c.CreatedAt.Format(time.RFC3339),
	}
}

func toReportItem(r *domain.Report) ReportItem {
	return ReportItem{
		ID:         r.ID,
		ReportID:   r.ReportID,
		UserID:     r.UserID,
		Title:      r.Title,
		Department: r.Department,
		Address:    r.Address,
		Status:     string(r.Status),
		ImagePath:  r.ImagePath,
		CreatedAt:  r.CreatedAt.Format(time.RFC3339),
	}
}
