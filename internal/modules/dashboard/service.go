package dashboard

import (
	"context"
	"fmt"

	"civicconnect/internal/domain"
)

const (
	recentOwnLimit  = 8
	publicFeedLimit = 5
)

type Service struct {
	reports ReportReader
}

func NewService(reports ReportReader) *Service {
	return &Service{reports: reports}
}

// Summary assembles the landing view after login: the caller's report counts
// by status, their most recent reports and a short public feed.
func (s *Service) Summary(ctx context.Context, userID int64) (*Summary, error) {
	total, err := s.reports.CountByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count reports: %w", err)
	}

	counts := Counts{Total: total}
	for _, st := range []domain.ReportStatus{domain.StatusOpen, domain.StatusInProgress, domain.StatusResolved} {
		n, err := s.reports.CountByUserAndStatus(ctx, userID, st)
		if err != nil {
			return nil, fmt.Errorf("count %s reports: %w", st, err)
		}
		switch st {
		case domain.StatusOpen:
			counts.Open = n
		case domain.StatusInProgress:
			counts.InProgress = n
		case domain.StatusResolved:
			counts.Resolved = n
		}
	}

	own, err := s.reports.ListByUser(ctx, userID, recentOwnLimit, 0)
	if err != nil {
		return nil, fmt.Errorf("list recent reports: %w", err)
	}

	feed, err := s.reports.RecentPublic(ctx, publicFeedLimit)
	if err != nil {
		return nil, fmt.Errorf("list public feed: %w", err)
	}

	summary := &Summary{
		Counts:        counts,
		RecentReports: make([]ReportItem, 0, len(own)),
		PublicFeed:    make([]FeedItem, 0, len(feed)),
	}
	for i := range own {
		summary.RecentReports = append(summary.RecentReports, toReportItem(&own[i]))
	}
	for _, p := range feed {
		summary.PublicFeed = append(summary.PublicFeed, toFeedItem(p))
	}
	return summary, nil
}
