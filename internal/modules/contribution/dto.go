package contribution

import (
	"time"

	"civicconnect/internal/domain"
)

type CreateRequest struct {
	Title       string `form:"title" validate:"required,max=100"`
	Description string `form:"description" validate:"required,max=500"`
}

type VoteRequest struct {
	Vote string `form:"vote" validate:"required,oneof=up down"`
}

type Response struct {
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

func toResponse(c *domain.Contribution) Response {
	return Response{
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
