package repositories

import (
	"context"
	"strconv"
	"time"

	"github.com/maxaizer/hh-vacancy-search/internal/clients/hh"
	"github.com/maxaizer/hh-vacancy-search/internal/domain/models"
	"github.com/maxaizer/hh-vacancy-search/internal/logger"
	"github.com/maxaizer/hh-vacancy-search/internal/mapper"
	gocache "github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type vacanciesClient interface {
	GetVacancies(ctx context.Context, parameters hh.SearchParameters) (hh.VacanciesResponse, error)
	GetVacancy(ctx context.Context, id string) (hh.VacancyDetailsDto, error)
}

// Vacancies is the remote vacancy source. Details are cached briefly since the same vacancy
// is usually opened, starred and shared within a minute.
type Vacancies struct {
	client       vacanciesClient
	perPage      int
	detailsCache *gocache.Cache
}

func NewVacanciesRepository(client vacanciesClient, perPage int) *Vacancies {
	if perPage <= 0 {
		perPage = hh.DefaultPerPage
	}
	return &Vacancies{
		client:       client,
		perPage:      perPage,
		detailsCache: gocache.New(5*time.Minute, 10*time.Minute),
	}
}

// Search runs a single page query. A page past the API depth limit yields an empty page so callers
// treat it as the end of the results.
func (v *Vacancies) Search(ctx context.Context, options map[string]string) (models.VacanciesSearchResult, error) {

	withDefaults := make(map[string]string, len(options)+1)
	for key, value := range options {
		withDefaults[key] = value
	}
	if withDefaults[models.OptionPerPage] == "" {
		withDefaults[models.OptionPerPage] = strconv.Itoa(v.perPage)
	}

	params, err := hh.ParseSearchOptions(withDefaults)
	if errors.Is(err, hh.ErrTooDeepPagination) {
		log.Debugf("search page %d is beyond the api limit, returning empty page", params.Page)
		return models.VacanciesSearchResult{Page: params.Page, Pages: params.Page}, nil
	}
	if err != nil {
		return models.VacanciesSearchResult{}, err
	}

	response, err := v.client.GetVacancies(ctx, params)
	if err != nil {
		logRequestError(err, "search vacancies")
		return models.VacanciesSearchResult{}, err
	}

	return mapper.ToSearchResult(response), nil
}

func (v *Vacancies) GetDetails(ctx context.Context, id models.VacancyID) (models.VacancyDetails, error) {

	if !id.Valid() {
		return models.VacancyDetails{}, errors.Wrapf(models.ErrNothingFound, "invalid vacancy id %d", id)
	}

	if cached, found := v.detailsCache.Get(id.String()); found {
		return cached.(models.VacancyDetails), nil
	}

	dto, err := v.client.GetVacancy(ctx, id.String())
	if err != nil {
		logRequestError(err, "get vacancy "+id.String())
		return models.VacancyDetails{}, err
	}

	details := mapper.ToVacancyDetails(dto)
	v.detailsCache.SetDefault(id.String(), details)
	return details, nil
}

func logRequestError(err error, action string) {
	if errors.Is(err, context.Canceled) || errors.Is(err, models.ErrNothingFound) {
		return
	}
	log.WithField(logger.ErrorTypeField, logger.ErrorTypeHhApi).Errorf("failed to %s: %v", action, err)
}
