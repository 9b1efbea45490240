package report

import (
	"context"
	"mime/multipart"

	"civicconnect/internal/domain"
)

type ReportRepository interface {
	Create(ctx context.Context, r *domain.Report) error
	GetOwned(ctx context.Context, reportID string, userID int64) (*domain.Report, error)
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Report, error)
	Update(ctx context.Context, r *domain.Report) error
	Delete(ctx context.Context, id int64) error
}

type MediaStore interface {
	SaveMultipart(fh *multipart.FileHeader, limit int64) (string, error)
	SaveBase64(dataURI string, limit int64) (string, error)
	Delete(relPath string) error
}

type DraftManager interface {
	Start(ctx context.Context, sessionID string, d domain.Draft) error
	Get(ctx context.Context, sessionID string) (domain.Draft, error)
	Clear(ctx context.Context, sessionID string) error
}
