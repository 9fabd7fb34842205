package hh

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/maxaizer/hh-vacancy-search/internal/domain/models"
	"github.com/pkg/errors"
)

var ErrTooDeepPagination = errors.New("too deep pagination")

const (
	maxResults     = 2000
	DefaultPerPage = 20
)

type SearchParameters struct {
	Text    string
	Page    int
	PerPage int
	// Filters holds every other option (area, industry, salary...) exactly as hh.ru expects it.
	Filters map[string]string
}

// ParseSearchOptions turns the flat option map used by the search core into parameters.
// Empty values are dropped, meaning "unfiltered on that dimension".
func ParseSearchOptions(options map[string]string) (SearchParameters, error) {
	params := SearchParameters{PerPage: DefaultPerPage, Filters: map[string]string{}}

	for key, value := range options {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}

		switch key {
		case models.OptionText:
			params.Text = value
		case models.OptionPage:
			page, err := strconv.Atoi(value)
			if err != nil {
				return params, fmt.Errorf("invalid page %q: %w", value, err)
			}
			params.Page = page
		case models.OptionPerPage:
			perPage, err := strconv.Atoi(value)
			if err != nil {
				return params, fmt.Errorf("invalid per page %q: %w", value, err)
			}
			params.PerPage = perPage
		default:
			params.Filters[key] = value
		}
	}

	return params, params.Validate()
}

func (s SearchParameters) Validate() error {

	if s.Page < 0 {
		return fmt.Errorf("page must be non-negative")
	}

	if s.PerPage <= 0 || s.PerPage > 100 {
		return fmt.Errorf("per page must be between 1 and 100")
	}

	maxPage := maxResults / s.PerPage
	if s.Page >= maxPage {
		return ErrTooDeepPagination
	}

	return nil
}

func (s SearchParameters) ToUrlParams() url.Values {

	params := url.Values{}
	if s.Text != "" {
		params.Add("text", s.Text)
	}

	params.Add("page", strconv.Itoa(s.Page))
	params.Add("per_page", strconv.Itoa(s.PerPage))

	keys := make([]string, 0, len(s.Filters))
	for key := range s.Filters {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		params.Add(key, s.Filters[key])
	}

	return params
}
