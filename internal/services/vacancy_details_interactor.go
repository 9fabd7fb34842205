package services

import (
	"context"
	"fmt"

	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/hh-vacancy-search/internal/domain/events"
	"github.com/maxaizer/hh-vacancy-search/internal/domain/models"
	"github.com/maxaizer/hh-vacancy-search/internal/logger"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type detailsRepository interface {
	GetDetails(ctx context.Context, id models.VacancyID) (models.VacancyDetails, error)
}

type favoritesRepository interface {
	Add(ctx context.Context, owner string, details models.VacancyDetails) error
	Remove(ctx context.Context, owner string, id models.VacancyID) error
	Contains(ctx context.Context, owner string, id models.VacancyID) (bool, error)
	Get(ctx context.Context, owner string, id models.VacancyID) (*models.VacancyDetails, error)
	List(ctx context.Context, owner string) ([]models.VacancyDetails, error)
	IDs(ctx context.Context, owner string) ([]models.VacancyID, error)
}

type DetailsResponse struct {
	Details *models.VacancyDetails
	// Offline is set when the network failed and the stored favorite copy is returned instead.
	Offline bool
	Err     error
}

type VacancyDetailsInteractor struct {
	vacancies detailsRepository
	favorites favoritesRepository
	bus       EventBus.Bus
}

func NewVacancyDetailsInteractor(vacancies detailsRepository, favorites favoritesRepository,
	bus EventBus.Bus) *VacancyDetailsInteractor {
	return &VacancyDetailsInteractor{vacancies: vacancies, favorites: favorites, bus: bus}
}

// GetDetails fetches the vacancy in the background. The channel yields one response and is closed.
func (i *VacancyDetailsInteractor) GetDetails(ctx context.Context, owner string, id models.VacancyID) <-chan DetailsResponse {
	out := make(chan DetailsResponse, 1)

	go func() {
		defer close(out)
		out <- i.getDetails(ctx, owner, id)
	}()

	return out
}

func (i *VacancyDetailsInteractor) getDetails(ctx context.Context, owner string, id models.VacancyID) DetailsResponse {

	details, err := i.vacancies.GetDetails(ctx, id)
	if err == nil {
		i.refreshFavorite(ctx, owner, details)
		return DetailsResponse{Details: &details}
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, models.ErrNothingFound) {
		return DetailsResponse{Err: err}
	}

	stored, dbErr := i.favorites.Get(ctx, owner, id)
	if dbErr != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to load favorite %v: %v", id, dbErr)
	}
	if stored != nil {
		return DetailsResponse{Details: stored, Offline: true}
	}

	return DetailsResponse{Err: err}
}

// refreshFavorite keeps the offline copy of a favorite up to date with what was just fetched.
func (i *VacancyDetailsInteractor) refreshFavorite(ctx context.Context, owner string, details models.VacancyDetails) {
	isFavorite, err := i.favorites.Contains(ctx, owner, details.ID)
	if err != nil || !isFavorite {
		return
	}
	if err = i.favorites.Add(ctx, owner, details); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to refresh favorite %v: %v", details.ID, err)
	}
}

func (i *VacancyDetailsInteractor) IsFavorite(ctx context.Context, owner string, id models.VacancyID) (bool, error) {
	return i.favorites.Contains(ctx, owner, id)
}

// ToggleFavorite adds the vacancy to favorites or removes it and reports whether it is a favorite now.
func (i *VacancyDetailsInteractor) ToggleFavorite(ctx context.Context, owner string,
	details models.VacancyDetails) (bool, error) {

	isFavorite, err := i.favorites.Contains(ctx, owner, details.ID)
	if err != nil {
		return false, err
	}

	if isFavorite {
		err = i.favorites.Remove(ctx, owner, details.ID)
	} else {
		err = i.favorites.Add(ctx, owner, details)
	}
	if err != nil {
		return isFavorite, err
	}

	i.bus.Publish(events.FavoritesChangedTopic, events.FavoritesChanged{
		Owner:     owner,
		VacancyID: details.ID,
		Added:     !isFavorite,
	})
	return !isFavorite, nil
}

func (i *VacancyDetailsInteractor) Favorites(ctx context.Context, owner string) ([]models.VacancyDetails, error) {
	return i.favorites.List(ctx, owner)
}

// FavoriteIDs is used to mark favorites in result lists without loading stored details.
func (i *VacancyDetailsInteractor) FavoriteIDs(ctx context.Context, owner string) ([]models.VacancyID, error) {
	return i.favorites.IDs(ctx, owner)
}

func ShareText(details models.VacancyDetails) string {
	return fmt.Sprintf("%s\n%s", details.Name, details.AlternateURL)
}
