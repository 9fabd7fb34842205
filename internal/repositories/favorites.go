package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/maxaizer/hh-vacancy-search/internal/domain/models"
	"github.com/maxaizer/hh-vacancy-search/internal/metrics"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Favorites stores starred vacancies per owner (a chat).
type Favorites struct {
	db *gorm.DB
}

func NewFavoritesRepository(db *gorm.DB) *Favorites {
	return &Favorites{db: db}
}

// Add stores the vacancy or refreshes the stored copy when it is already a favorite.
func (repo *Favorites) Add(ctx context.Context, owner string, details models.VacancyDetails) error {

	if !details.ID.Valid() {
		return fmt.Errorf("can't add vacancy with invalid id to favorites")
	}

	favorite, err := models.NewFavoriteVacancy(owner, details)
	if err != nil {
		return fmt.Errorf("failed to encode vacancy %v: %w", details.ID, err)
	}

	err = repo.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "owner"}, {Name: "vacancy_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "details"}),
	}).Create(&favorite).Error
	if err != nil {
		return err
	}

	repo.updateGauge(ctx)
	return nil
}

func (repo *Favorites) Remove(ctx context.Context, owner string, id models.VacancyID) error {
	err := repo.db.WithContext(ctx).
		Delete(&models.FavoriteVacancy{}, "owner = ? AND vacancy_id = ?", owner, id).Error
	if err != nil {
		return err
	}
	repo.updateGauge(ctx)
	return nil
}

func (repo *Favorites) Contains(ctx context.Context, owner string, id models.VacancyID) (bool, error) {
	var count int64
	err := repo.db.WithContext(ctx).Model(&models.FavoriteVacancy{}).
		Where("owner = ? AND vacancy_id = ?", owner, id).
		Count(&count).Error
	return count > 0, err
}

func (repo *Favorites) IDs(ctx context.Context, owner string) ([]models.VacancyID, error) {
	var ids []models.VacancyID
	err := repo.db.WithContext(ctx).Model(&models.FavoriteVacancy{}).
		Where("owner = ?", owner).
		Order("created_at DESC").
		Pluck("vacancy_id", &ids).Error
	return ids, err
}

// List returns favorites newest first.
func (repo *Favorites) List(ctx context.Context, owner string) ([]models.VacancyDetails, error) {

	var favorites []models.FavoriteVacancy
	if err := repo.db.WithContext(ctx).
		Where("owner = ?", owner).
		Order("created_at DESC").
		Find(&favorites).Error; err != nil {
		return nil, err
	}

	result := make([]models.VacancyDetails, 0, len(favorites))
	for _, favorite := range favorites {
		details, err := favorite.ToDetails()
		if err != nil {
			return nil, fmt.Errorf("failed to decode favorite %v: %w", favorite.VacancyID, err)
		}
		result = append(result, details)
	}
	return result, nil
}

// Get returns nil when the vacancy is not a favorite of the owner.
func (repo *Favorites) Get(ctx context.Context, owner string, id models.VacancyID) (*models.VacancyDetails, error) {

	var favorite models.FavoriteVacancy
	if err := repo.db.WithContext(ctx).
		First(&favorite, "owner = ? AND vacancy_id = ?", owner, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	details, err := favorite.ToDetails()
	if err != nil {
		return nil, fmt.Errorf("failed to decode favorite %v: %w", id, err)
	}
	return &details, nil
}

func (repo *Favorites) updateGauge(ctx context.Context) {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&models.FavoriteVacancy{}).Count(&count).Error; err == nil {
		metrics.FavoritesGauge.Set(float64(count))
	}
}
