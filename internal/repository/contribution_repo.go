package repository

import (
	"context"
	"encoding/json"
	"time"

	"civicconnect/internal/domain"

	"gorm.io/gorm"
)

type ContributionRepository struct {
	db *gorm.DB
}

func NewContributionRepository(db *gorm.DB) *ContributionRepository {
	return &ContributionRepository{db: db}
}

type contributionModel struct {
	ID            int64     `gorm:"column:id;primaryKey"`
	ReportID      int64     `gorm:"column:report_id;index"`
	ContributorID int64     `gorm:"column:contributor_id;index"`
	Title         string    `gorm:"column:title"`
	Description   string    `gorm:"column:description"`
	Images        string    `gorm:"column:images"` // JSON array of relative paths
	Status        string    `gorm:"column:status;index"`
	Helpful       bool      `gorm:"column:helpful"`
	Upvotes       int       `gorm:"column:upvotes"`
	Downvotes     int       `gorm:"column:downvotes"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (contributionModel) TableName() string { return "contributions" }

func toDomainContribution(m contributionModel) *domain.Contribution {
	var images []string
	_ = json.Unmarshal([]byte(m.Images), &images)
	return &domain.Contribution{
		ID:            m.ID,
		ReportID:      m.ReportID,
		ContributorID: m.ContributorID,
		Title:         m.Title,
		Description:   m.Description,
		Images:        images,
		Status:        domain.ContributionStatus(m.Status),
		Helpful:       m.Helpful,
		Upvotes:       m.Upvotes,
		Downvotes:     m.Downvotes,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toContributionModel(c *domain.Contribution) contributionModel {
	images, _ := json.Marshal(c.Images)
	return contributionModel{
		ID:            c.ID,
		ReportID:      c.ReportID,
		ContributorID: c.ContributorID,
		Title:         c.Title,
		Description:   c.Description,
		Images:        string(images),
		Status:        string(c.Status),
		Helpful:       c.Helpful,
		Upvotes:       c.Upvotes,
		Downvotes:     c.Downvotes,
	}
}

func (r *ContributionRepository) Create(ctx context.Context, c *domain.Contribution) error {
	m := toContributionModel(c)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	c.ID = m.ID
	c.CreatedAt = m.CreatedAt
	c.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *ContributionRepository) GetByID(ctx context.Context, id int64) (*domain.Contribution, error) {
	var m contributionModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return toDomainContribution(m), nil
}

func (r *ContributionRepository) ListByReport(ctx context.Context, reportID int64) ([]domain.Contribution, error) {
	var ms []contributionModel
	err := r.db.WithContext(ctx).
		Where("report_id = ?", reportID).
		Order("created_at DESC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.Contribution, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainContribution(m))
	}
	return out, nil
}

// IncrementVote bumps a counter atomically and returns the fresh counts.
// There is no per-user dedup; counts only ever grow.
func (r *ContributionRepository) IncrementVote(ctx context.Context, id int64, up bool) (int, int, error) {
	column := "downvotes"
	if up {
		column = "upvotes"
	}

	res := r.db.WithContext(ctx).Model(&contributionModel{}).
		Where("id = ?", id).
		UpdateColumn(column, gorm.Expr(column+" + 1"))
	if res.Error != nil {
		return 0, 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, 0, gorm.ErrRecordNotFound
	}

	var m contributionModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return 0, 0, err
	}
	return m.Upvotes, m.Downvotes, nil
}

func (r *ContributionRepository) UpdateStatus(ctx context.Context, id int64, status domain.ContributionStatus, helpful bool) error {
	res := r.db.WithContext(ctx).Model(&contributionModel{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": string(status), "helpful": helpful})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ContributionRepository) ListByStatus(ctx context.Context, status string, limit, offset int) ([]domain.Contribution, error) {
	q := r.db.WithContext(ctx).Model(&contributionModel{})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var ms []contributionModel
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&ms).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.Contribution, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainContribution(m))
	}
	return out, nil
}
