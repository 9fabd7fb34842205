package repositories

import (
	"context"
	"errors"

	"github.com/maxaizer/hh-vacancy-search/internal/domain/models"
	"gorm.io/gorm"
)

type Industries struct {
	db *gorm.DB
}

func NewIndustriesRepository(db *gorm.DB) *Industries {
	return &Industries{db: db}
}

func (repo *Industries) GetByName(ctx context.Context, name string) (*models.Industry, error) {

	var industry models.Industry
	if err := repo.db.WithContext(ctx).
		First(&industry, "normalized_name = ?", models.NormalizeName(name)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &industry, nil
}

func (repo *Industries) Count(ctx context.Context) (int64, error) {
	var count int64
	err := repo.db.WithContext(ctx).Model(&models.Industry{}).Count(&count).Error
	return count, err
}

func (repo *Industries) Replace(ctx context.Context, industries []models.Industry) error {
	return repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.Industry{}).Error; err != nil {
			return err
		}
		if len(industries) == 0 {
			return nil
		}
		return tx.CreateInBatches(industries, 500).Error
	})
}
