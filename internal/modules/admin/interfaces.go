package admin

import (
	"context"

	"civicconnect/internal/domain"
	"civicconnect/internal/repository"
)

type ReportAdminRepository interface {
	List(ctx context.Context, f repository.ListFilter) ([]domain.Report, int64, error)
	GetByReportID(ctx context.Context, reportID string) (*domain.Report, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ReportStatus) error
}

type ContributionAdminRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Contribution, error)
	ListByStatus(ctx context.Context, status string, limit, offset int) ([]domain.Contribution, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ContributionStatus, helpful bool) error
}

type SettingRepository interface {
	Get(ctx context.Context, key string) (*domain.Setting, error)
	Set(ctx context.Context, key, value string) error
	All(ctx context.Context) ([]domain.Setting, error)
}
