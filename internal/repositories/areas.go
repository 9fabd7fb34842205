package repositories

import (
	"context"
	"errors"

	"github.com/maxaizer/hh-vacancy-search/internal/domain/models"
	"gorm.io/gorm"
)

type Areas struct {
	db *gorm.DB
}

func NewAreasRepository(db *gorm.DB) *Areas {
	return &Areas{db: db}
}

// GetByName returns nil when no area matches the normalized name.
func (repo *Areas) GetByName(ctx context.Context, name string) (*models.Area, error) {

	var area models.Area
	if err := repo.db.WithContext(ctx).
		Order("parent_id").
		First(&area, "normalized_name = ?", models.NormalizeName(name)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &area, nil
}

// GetRegionByName looks the name up among the areas of one country only.
func (repo *Areas) GetRegionByName(ctx context.Context, countryID string, name string) (*models.Area, error) {

	var area models.Area
	if err := repo.db.WithContext(ctx).
		First(&area, "normalized_name = ? AND parent_id = ?", models.NormalizeName(name), countryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &area, nil
}

func (repo *Areas) Countries(ctx context.Context) ([]models.Area, error) {

	var countries []models.Area
	if err := repo.db.WithContext(ctx).
		Where("parent_id = ?", "").
		Order("name").
		Find(&countries).Error; err != nil {
		return nil, err
	}
	return countries, nil
}

func (repo *Areas) Count(ctx context.Context) (int64, error) {
	var count int64
	err := repo.db.WithContext(ctx).Model(&models.Area{}).Count(&count).Error
	return count, err
}

// Replace swaps the whole table content in one transaction.
func (repo *Areas) Replace(ctx context.Context, areas []models.Area) error {
	return repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.Area{}).Error; err != nil {
			return err
		}
		if len(areas) == 0 {
			return nil
		}
		return tx.CreateInBatches(areas, 500).Error
	})
}
