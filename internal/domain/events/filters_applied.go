package events

import "github.com/maxaizer/hh-vacancy-search/internal/domain/models"

var FiltersAppliedTopic = "FiltersAppliedEvent"

// FiltersApplied is published when the owner of a search session confirms a new filter set.
type FiltersApplied struct {
	Owner   string
	Filters models.FilterParameters
}

var FavoritesChangedTopic = "FavoritesChangedEvent"

type FavoritesChanged struct {
	Owner     string
	VacancyID models.VacancyID
	Added     bool
}
