package services

import (
	"context"

	"github.com/maxaizer/hh-vacancy-search/internal/domain/models"
)

type vacanciesRepository interface {
	Search(ctx context.Context, options map[string]string) (models.VacanciesSearchResult, error)
}

// SearchResponse carries exactly one of Result or Err.
type SearchResponse struct {
	Result *models.VacanciesSearchResult
	Err    error
}

type VacanciesInteractor struct {
	vacancies vacanciesRepository
}

func NewVacanciesInteractor(vacancies vacanciesRepository) *VacanciesInteractor {
	return &VacanciesInteractor{vacancies: vacancies}
}

// Search runs one query in the background. The returned channel yields a single response and is
// then closed. It is buffered, so an abandoned channel doesn't keep the goroutine alive.
func (i *VacanciesInteractor) Search(ctx context.Context, options map[string]string) <-chan SearchResponse {
	out := make(chan SearchResponse, 1)

	go func() {
		defer close(out)

		result, err := i.vacancies.Search(ctx, options)
		if err != nil {
			out <- SearchResponse{Err: err}
			return
		}
		out <- SearchResponse{Result: &result}
	}()

	return out
}
