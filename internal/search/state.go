package search

import "github.com/maxaizer/hh-vacancy-search/internal/domain/models"

type Kind string

const (
	KindDefault              Kind = "default"
	KindLoading              Kind = "loading"
	KindNewSearchResult      Kind = "new_search_result"
	KindNextPageLoading      Kind = "next_page_loading"
	KindNextPageSearchResult Kind = "next_page_search_result"
	KindNextPageError        Kind = "next_page_error"
	KindNothingFound         Kind = "nothing_found"
	KindInternetError        Kind = "internet_error"
	KindServerError          Kind = "server_error"
)

// State is one snapshot of a search session. Items and Found are set for the result and
// next page kinds, Err for the error kinds.
type State struct {
	Kind  Kind
	Items []models.VacancyFromList
	Found int
	// Appended is the number of items the last page added to the tail of Items.
	Appended int
	Err      error
}

// LastPage returns the items appended by the transition that produced this state.
func (s State) LastPage() []models.VacancyFromList {
	if s.Appended <= 0 || s.Appended > len(s.Items) {
		return nil
	}
	return s.Items[len(s.Items)-s.Appended:]
}

func (s State) HasItems() bool {
	switch s.Kind {
	case KindNewSearchResult, KindNextPageLoading, KindNextPageSearchResult, KindNextPageError:
		return true
	default:
		return false
	}
}

// ToastEvent is a one-shot notification raised when a next page fails to load.
type ToastEvent struct {
	ErrorType models.ErrorType
	Err       error
}
