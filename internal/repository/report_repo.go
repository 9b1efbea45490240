package repository

import (
	"context"
	"errors"
	"time"

	"civicconnect/internal/domain"
	"civicconnect/internal/pkg/words"

	"gorm.io/gorm"
)

// ErrInvalidRecord is returned when a report fails the word-count rules at
// the storage layer. The service layer already rejects these; this is the
// second line of defense so a bad record can never reach the database.
var ErrInvalidRecord = errors.New("invalid record")

type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

type reportModel struct {
	ID           int64     `gorm:"column:id;primaryKey"`
	ReportID     string    `gorm:"column:report_id;uniqueIndex"`
	UserID       int64     `gorm:"column:user_id;index"`
	Title        string    `gorm:"column:title"`
	Description  string    `gorm:"column:description"`
	Department   string    `gorm:"column:department"`
	Address      string    `gorm:"column:address"`
	LocationText *string   `gorm:"column:location_text"`
	Latitude     *float64  `gorm:"column:latitude"`
	Longitude    *float64  `gorm:"column:longitude"`
	ImagePath    string    `gorm:"column:image_path"`
	Status       string    `gorm:"column:status;index"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (reportModel) TableName() string { return "reports" }

func toDomainReport(m reportModel) *domain.Report {
	r := &domain.Report{
		ID:          m.ID,
		ReportID:    m.ReportID,
		UserID:      m.UserID,
		Title:       m.Title,
		Description: m.Description,
		Department:  m.Department,
		Address:     m.Address,
		Latitude:    m.Latitude,
		Longitude:   m.Longitude,
		ImagePath:   m.ImagePath,
		Status:      domain.ReportStatus(m.Status),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if m.LocationText != nil {
		r.LocationText = *m.LocationText
	}
	return r
}

func toReportModel(r *domain.Report) reportModel {
	m := reportModel{
		ID:          r.ID,
		ReportID:    r.ReportID,
		UserID:      r.UserID,
		Title:       r.Title,
		Description: r.Description,
		Department:  r.Department,
		Address:     r.Address,
		Latitude:    r.Latitude,
		Longitude:   r.Longitude,
		ImagePath:   r.ImagePath,
		Status:      string(r.Status),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	if r.LocationText != "" {
		v := r.LocationText
		m.LocationText = &v
	}
	return m
}

func checkReportInvariants(r *domain.Report) error {
	if !words.TitleValid(r.Title) || !words.DescriptionValid(r.Description) {
		return ErrInvalidRecord
	}
	if !words.Present(r.Address) || !words.Present(r.Department) {
		return ErrInvalidRecord
	}
	return nil
}

func (r *ReportRepository) Create(ctx context.Context, report *domain.Report) error {
	if err := checkReportInvariants(report); err != nil {
		return err
	}
	m := toReportModel(report)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	report.ID = m.ID
	report.CreatedAt = m.CreatedAt
	report.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByReportID looks up by the public report ID.
func (r *ReportRepository) GetByReportID(ctx context.Context, reportID string) (*domain.Report, error) {
	var m reportModel
	if err := r.db.WithContext(ctx).First(&m, "report_id = ?", reportID).Error; err != nil {
		return nil, err
	}
	return toDomainReport(m), nil
}

// GetOwned scopes the lookup to the owner so a non-owner probing another
// user's report gets the same not-found as a missing one.
func (r *ReportRepository) GetOwned(ctx context.Context, reportID string, userID int64) (*domain.Report, error) {
	var m reportModel
	err := r.db.WithContext(ctx).
		First(&m, "report_id = ? AND user_id = ?", reportID, userID).Error
	if err != nil {
		return nil, err
	}
	return toDomainReport(m), nil
}

func (r *ReportRepository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Report, error) {
	var ms []reportModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.Report, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainReport(m))
	}
	return out, nil
}

func (r *ReportRepository) Update(ctx context.Context, report *domain.Report) error {
	if err := checkReportInvariants(report); err != nil {
		return err
	}
	m := toReportModel(report)
	res := r.db.WithContext(ctx).Model(&reportModel{}).
		Where("id = ?", report.ID).
		Updates(map[string]any{
			"title":         m.Title,
			"description":   m.Description,
			"department":    m.Department,
			"address":       m.Address,
			"location_text": m.LocationText,
			"latitude":      m.Latitude,
			"longitude":     m.Longitude,
			"image_path":    m.ImagePath,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ReportRepository) UpdateStatus(ctx context.Context, id int64, status domain.ReportStatus) error {
	res := r.db.WithContext(ctx).Model(&reportModel{}).
		Where("id = ?", id).
		Update("status", string(status))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ReportRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&reportModel{}, "id = ?", id).Error
}

func (r *ReportRepository) CountByUser(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&reportModel{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

func (r *ReportRepository) CountByUserAndStatus(ctx context.Context, userID int64, status domain.ReportStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&reportModel{}).
		Where("user_id = ? AND status = ?", userID, string(status)).
		Count(&count).Error
	return count, err
}

// PublicReport is a report row joined with its reporter's display fields,
// used by the public dashboard feed.
type PublicReport struct {
	Report   domain.Report
	Reporter string
}

func (r *ReportRepository) RecentPublic(ctx context.Context, limit int) ([]PublicReport, error) {
	type row struct {
		reportModel
		FirstName string `gorm:"column:first_name"`
		Username  string `gorm:"column:username"`
	}

	var rows []row
	err := r.db.WithContext(ctx).Model(&reportModel{}).
		Select("reports.*, users.first_name, users.username").
		Joins("JOIN users ON users.id = reports.user_id").
		Order("reports.created_at DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]PublicReport, 0, len(rows))
	for _, rw := range rows {
		reporter := rw.FirstName
		if reporter == "" {
			reporter = rw.Username
		}
		if reporter == "" {
			reporter = "User"
		}
		out = append(out, PublicReport{Report: *toDomainReport(rw.reportModel), Reporter: reporter})
	}
	return out, nil
}

// ListFilter narrows the admin triage listing.
type ListFilter struct {
	Status     string
	Department string
	Limit      int
	Offset     int
}

func (r *ReportRepository) List(ctx context.Context, f ListFilter) ([]domain.Report, int64, error) {
	q := r.db.WithContext(ctx).Model(&reportModel{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Department != "" {
		q = q.Where("department LIKE ?", "%"+f.Department+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ms []reportModel
	err := q.Order("created_at DESC").Limit(f.Limit).Offset(f.Offset).Find(&ms).Error
	if err != nil {
		return nil, 0, err
	}

	out := make([]domain.Report, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainReport(m))
	}
	return out, total, nil
}
