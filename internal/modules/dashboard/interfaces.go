package dashboard

import (
	"context"

	"civicconnect/internal/domain"
	"civicconnect/internal/repository"
)

type ReportReader interface {
	CountByUser(ctx context.Context, userID int64) (int64, error)
	CountByUserAndStatus(ctx context.Context, userID int64, status domain.ReportStatus) (int64, error)
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Report, error)
	RecentPublic(ctx context.Context, limit int) ([]repository.PublicReport, error)
}
