package contribution

import (
	"context"
	"mime/multipart"

	"civicconnect/internal/domain"
)

type ContributionRepository interface {
	Create(ctx context.Context, c *domain.Contribution) error
	GetByID(ctx context.Context, id int64) (*domain.Contribution, error)
	ListByReport(ctx context.Context, reportID int64) ([]domain.Contribution, error)
	IncrementVote(ctx context.Context, id int64, up bool) (int, int, error)
}

// ReportGate resolves the target report of a contribution.
type ReportGate interface {
	GetByReportID(ctx context.Context, reportID string) (*domain.Report, error)
}

type MediaStore interface {
	SaveMultipart(fh *multipart.FileHeader, limit int64) (string, error)
	Delete(relPath string) error
}
