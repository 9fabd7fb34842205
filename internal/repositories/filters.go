package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/maxaizer/hh-vacancy-search/internal/domain/models"
	"gorm.io/gorm"
)

const filtersKeyPrefix = "filters:"

// Filters keeps the filter parameters of every owner (a chat) as a JSON document.
type Filters struct {
	db *gorm.DB
}

func NewFiltersRepository(db *gorm.DB) *Filters {
	return &Filters{db: db}
}

func (repo *Filters) Save(ctx context.Context, owner string, filters models.FilterParameters) error {
	data, err := json.Marshal(filters)
	if err != nil {
		return fmt.Errorf("failed to encode filters: %w", err)
	}

	return repo.db.WithContext(ctx).Save(&models.ArbitraryData{
		ID:    filtersKeyPrefix + owner,
		Value: data,
	}).Error
}

// Load returns nil when the owner has never saved filters.
func (repo *Filters) Load(ctx context.Context, owner string) (*models.FilterParameters, error) {
	data := &models.ArbitraryData{}
	err := repo.db.WithContext(ctx).First(data, "id = ?", filtersKeyPrefix+owner).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var filters models.FilterParameters
	if err = json.Unmarshal(data.Value, &filters); err != nil {
		return nil, fmt.Errorf("failed to decode filters of %s: %w", owner, err)
	}
	return &filters, nil
}

func (repo *Filters) Clear(ctx context.Context, owner string) error {
	return repo.db.WithContext(ctx).Delete(&models.ArbitraryData{}, "id = ?", filtersKeyPrefix+owner).Error
}
