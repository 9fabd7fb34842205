package services

import (
	"context"
	"fmt"

	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/hh-vacancy-search/internal/domain/events"
	"github.com/maxaizer/hh-vacancy-search/internal/domain/models"
)

type filtersRepository interface {
	Save(ctx context.Context, owner string, filters models.FilterParameters) error
	Load(ctx context.Context, owner string) (*models.FilterParameters, error)
	Clear(ctx context.Context, owner string) error
}

type FiltersInteractor struct {
	filters filtersRepository
	bus     EventBus.Bus
}

func NewFiltersInteractor(filters filtersRepository, bus EventBus.Bus) *FiltersInteractor {
	return &FiltersInteractor{filters: filters, bus: bus}
}

// Load returns empty parameters when the owner has nothing saved.
func (i *FiltersInteractor) Load(ctx context.Context, owner string) (models.FilterParameters, error) {
	filters, err := i.filters.Load(ctx, owner)
	if err != nil || filters == nil {
		return models.FilterParameters{}, err
	}
	return *filters, nil
}

func (i *FiltersInteractor) Save(ctx context.Context, owner string, filters models.FilterParameters) error {
	if err := filters.Validate(); err != nil {
		return fmt.Errorf("invalid filters: %w", err)
	}
	return i.filters.Save(ctx, owner, filters)
}

// Apply saves the filters and notifies the owner's search so it reruns the last query.
func (i *FiltersInteractor) Apply(ctx context.Context, owner string, filters models.FilterParameters) error {
	if err := i.Save(ctx, owner, filters); err != nil {
		return err
	}
	i.bus.Publish(events.FiltersAppliedTopic, events.FiltersApplied{Owner: owner, Filters: filters})
	return nil
}

// Reset clears saved filters and notifies the owner's search the same way Apply does.
func (i *FiltersInteractor) Reset(ctx context.Context, owner string) error {
	if err := i.filters.Clear(ctx, owner); err != nil {
		return err
	}
	i.bus.Publish(events.FiltersAppliedTopic, events.FiltersApplied{Owner: owner})
	return nil
}
