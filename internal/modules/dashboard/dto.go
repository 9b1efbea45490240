package dashboard

import (
	"time"

	"civicconnect/internal/domain"
	"civicconnect/internal/repository"
)

type Counts struct {
	Total      int64 `json:"total"`
	Open       int64 `json:"open"`
	InProgress int64 `json:"in_progress"`
	Resolved   int64 `json:"resolved"`
}

type ReportItem struct {
	ReportID   string `json:"report_id"`
	Title      string `json:"title"`
	Department string `json:"department"`
	Status     string `json:"status"`
	ImagePath  string `json:"image_path"`
	CreatedAt  string `json:"created_at"`
}

type FeedItem struct {
	ReportItem
	Reporter string `json:"reporter"`
}

type Summary struct {
	Counts        Counts       `json:"counts"`
	RecentReports []ReportItem `json:"recent_reports"`
	PublicFeed    []FeedItem   `json:"public_feed"`
}

func toReportItem(r *domain.Report) ReportItem {
	return ReportItem{
		ReportID:   r.ReportID,
		Title:      r.Title,
		Department: r.Department,
		Status:     string(r.Status),
		ImagePath:  r.ImagePath,
		CreatedAt:  r.CreatedAt.Format(time.RFC3339),
	}
}

func toFeedItem(p repository.PublicReport) FeedItem {
	return FeedItem{
		ReportItem: toReportItem(&p.Report),
		Reporter:   p.Reporter,
	}
}
