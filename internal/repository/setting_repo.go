package repository

import (
	"context"
	"time"

	"civicconnect/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingRepository stores admin settings as durable records so they survive
// restarts and are shared across instances.
type SettingRepository struct {
	db *gorm.DB
}

func NewSettingRepository(db *gorm.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

type settingModel struct {
	Key       string    `gorm:"column:key;primaryKey"`
	Value     string    `gorm:"column:value"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (settingModel) TableName() string { return "settings" }

func (r *SettingRepository) Get(ctx context.Context, key string) (*domain.Setting, error) {
	var m settingModel
	if err := r.db.WithContext(ctx).First(&m, "key = ?", key).Error; err != nil {
		return nil, err
	}
	return &domain.Setting{Key: m.Key, Value: m.Value, UpdatedAt: m.UpdatedAt}, nil
}

func (r *SettingRepository) Set(ctx context.Context, key, value string) error {
	m := settingModel{Key: key, Value: value}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&m).Error
}

func (r *SettingRepository) All(ctx context.Context) ([]domain.Setting, error) {
	var ms []settingModel
	if err := r.db.WithContext(ctx).Order("key").Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Setting, 0, len(ms))
	for _, m := range ms {
		out = append(out, domain.Setting{Key: m.Key, Value: m.Value, UpdatedAt: m.UpdatedAt})
	}
	return out, nil
}
