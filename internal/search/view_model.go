// Package search holds the per-session vacancy search state machine.
//
// A ViewModel owns the current query, the pagination cursor and the accumulated result list.
// Every new query bumps a generation counter; fetch completions carry the generation they were
// issued with and are dropped when it no longer matches, so a superseded query can never
// overwrite the state of a newer one.
package search

import (
	"context"
	"maps"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/maxaizer/hh-vacancy-search/internal/debounce"
	"github.com/maxaizer/hh-vacancy-search/internal/domain/models"
	"github.com/maxaizer/hh-vacancy-search/internal/logger"
	"github.com/maxaizer/hh-vacancy-search/internal/metrics"
	"github.com/maxaizer/hh-vacancy-search/internal/serial"
	"github.com/maxaizer/hh-vacancy-search/internal/services"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const DefaultDebounce = 2 * time.Second

type Searcher interface {
	Search(ctx context.Context, options map[string]string) <-chan services.SearchResponse
}

type FiltersLoader interface {
	Load(ctx context.Context, owner string) (models.FilterParameters, error)
}

type Options struct {
	// PerPage is left to the repository default when zero.
	PerPage  int
	Debounce time.Duration
}

type ViewModel struct {
	mu sync.Mutex

	ctx      context.Context
	cancel   context.CancelFunc
	searcher Searcher
	filters  FiltersLoader
	owner    string
	perPage  int

	debouncer *debounce.Debouncer
	// liveGeneration invalidates a debounced live search that fired after a newer input
	liveGeneration uint64

	state      State
	generation uint64
	stopFetch  context.CancelFunc

	lastQuery string
	hasQuery  bool
	// filterOptions are loaded with the first page and reused for the next pages of the query
	filterOptions map[string]string
	items     []models.VacancyFromList
	found     int
	pages     int
	page      int
	exhausted bool

	nextSubscriberID int
	subscribers      map[int]func(State)
	toastSubscribers map[int]func(ToastEvent)
	notifications    *serial.Queue
}

// NewViewModel creates a session bound to ctx. filters may be nil when the session has no
// saved filters support.
func NewViewModel(ctx context.Context, searcher Searcher, filters FiltersLoader, owner string,
	options Options) *ViewModel {

	if options.Debounce <= 0 {
		options.Debounce = DefaultDebounce
	}

	ctx, cancel := context.WithCancel(ctx)
	return &ViewModel{
		ctx:              ctx,
		cancel:           cancel,
		searcher:         searcher,
		filters:          filters,
		owner:            owner,
		perPage:          options.PerPage,
		debouncer:        debounce.NewDebouncer(options.Debounce),
		state:            State{Kind: KindDefault},
		subscribers:      make(map[int]func(State)),
		toastSubscribers: make(map[int]func(ToastEvent)),
		notifications:    serial.NewQueue(),
	}
}

func (vm *ViewModel) State() State {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.state
}

// LastQuery returns the last submitted text and whether anything was submitted yet.
func (vm *ViewModel) LastQuery() (string, bool) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return vm.lastQuery, vm.hasQuery
}

// Subscribe registers fn for every state transition and delivers the current state first.
// Callbacks run outside the lock on a single goroutine, in transition order.
func (vm *ViewModel) Subscribe(fn func(State)) (unsubscribe func()) {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	id := vm.nextSubscriberID
	vm.nextSubscriberID++
	vm.subscribers[id] = fn

	state := vm.state
	vm.notifications.Push(func() {
		if vm.subscribed(id) {
			fn(state)
		}
	})

	return func() {
		vm.mu.Lock()
		defer vm.mu.Unlock()
		delete(vm.subscribers, id)
	}
}

// SubscribeToasts registers fn for one-shot next page failure notifications.
func (vm *ViewModel) SubscribeToasts(fn func(ToastEvent)) (unsubscribe func()) {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	id := vm.nextSubscriberID
	vm.nextSubscriberID++
	vm.toastSubscribers[id] = fn

	return func() {
		vm.mu.Lock()
		defer vm.mu.Unlock()
		delete(vm.toastSubscribers, id)
	}
}

// SubmitQuery starts a new search from the first page. Blank text is ignored.
func (vm *ViewModel) SubmitQuery(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}

	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.submitLocked(text)
}

// OnQueryTextChanged schedules a live search once the text stops changing for the debounce window.
func (vm *ViewModel) OnQueryTextChanged(text string) {
	text = strings.TrimSpace(text)

	vm.mu.Lock()
	vm.liveGeneration++
	generation := vm.liveGeneration
	vm.mu.Unlock()

	if text == "" {
		vm.debouncer.Cancel()
		return
	}

	vm.debouncer.Schedule(func() {
		vm.mu.Lock()
		defer vm.mu.Unlock()

		if generation != vm.liveGeneration || vm.ctx.Err() != nil {
			return
		}
		if vm.hasQuery && text == vm.lastQuery {
			return
		}
		vm.submitLocked(text)
	})
}

// OnScrollNearEnd loads the next page when the current results allow it. It does nothing while a
// page is loading, before the first result or when every page has been received.
func (vm *ViewModel) OnScrollNearEnd() {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	switch vm.state.Kind {
	case KindNewSearchResult, KindNextPageSearchResult, KindNextPageError:
	default:
		return
	}

	if !vm.hasMoreLocked() {
		return
	}

	vm.setStateLocked(State{Kind: KindNextPageLoading, Items: vm.itemsLocked(), Found: vm.found})
	vm.fetchLocked(vm.page)
}

// ApplyFilters reruns the last submitted query with the currently saved filters.
func (vm *ViewModel) ApplyFilters() {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	if !vm.hasQuery {
		return
	}
	vm.submitLocked(vm.lastQuery)
}

// Close cancels the pending live search and any fetch in flight. The view model ignores
// every completion afterwards. Notifications queued before Close are still delivered.
func (vm *ViewModel) Close() {
	vm.debouncer.Cancel()

	vm.mu.Lock()
	defer vm.mu.Unlock()

	vm.generation++
	vm.cancel()
	vm.notifications.Close()
}

func (vm *ViewModel) submitLocked(text string) {
	vm.debouncer.Cancel()
	vm.liveGeneration++
	vm.generation++

	vm.lastQuery = text
	vm.hasQuery = true
	vm.filterOptions = nil
	vm.items = nil
	vm.found = 0
	vm.pages = 0
	vm.page = 0
	vm.exhausted = false

	vm.setStateLocked(State{Kind: KindLoading})
	vm.fetchLocked(0)
}

func (vm *ViewModel) fetchLocked(page int) {
	if vm.stopFetch != nil {
		vm.stopFetch()
	}

	ctx, cancel := context.WithCancel(vm.ctx)
	vm.stopFetch = cancel

	generation := vm.generation
	text := vm.lastQuery
	filterOptions := vm.filterOptions

	go func() {
		defer cancel()

		if page == 0 {
			filterOptions = vm.loadFilterOptions(ctx)
			if !vm.rememberFilterOptions(generation, filterOptions) {
				return
			}
		}

		var response services.SearchResponse
		for r := range vm.searcher.Search(ctx, vm.buildOptions(filterOptions, text, page)) {
			response = r
		}
		vm.complete(generation, page, response)
	}()
}

func (vm *ViewModel) loadFilterOptions(ctx context.Context) map[string]string {
	if vm.filters == nil {
		return nil
	}

	filters, err := vm.filters.Load(ctx, vm.owner)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).
			Errorf("failed to load filters of %s, searching without them: %v", vm.owner, err)
		return nil
	}
	return filters.Options()
}

// rememberFilterOptions stores the filters of the first page for the following pages. It reports
// false when the query was superseded meanwhile.
func (vm *ViewModel) rememberFilterOptions(generation uint64, options map[string]string) bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	if generation != vm.generation {
		return false
	}
	vm.filterOptions = options
	return true
}

func (vm *ViewModel) buildOptions(filterOptions map[string]string, text string, page int) map[string]string {
	options := make(map[string]string, len(filterOptions)+3)
	maps.Copy(options, filterOptions)

	options[models.OptionText] = text
	options[models.OptionPage] = strconv.Itoa(page)
	if vm.perPage > 0 {
		options[models.OptionPerPage] = strconv.Itoa(vm.perPage)
	}
	return options
}

func (vm *ViewModel) complete(generation uint64, page int, response services.SearchResponse) {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	if generation != vm.generation {
		log.Debugf("dropping stale search result of %s, page %d", vm.owner, page)
		return
	}
	vm.stopFetch = nil

	if response.Err == nil && response.Result == nil {
		response.Err = errors.Wrap(models.ErrServerError, "search finished without a response")
	}
	if errors.Is(response.Err, context.Canceled) {
		return
	}

	if page == 0 {
		vm.completeFirstPageLocked(response)
	} else {
		vm.completeNextPageLocked(page, response)
	}
}

func (vm *ViewModel) completeFirstPageLocked(response services.SearchResponse) {
	if vm.state.Kind != KindLoading {
		return
	}

	if response.Err != nil {
		switch models.ErrorTypeOf(response.Err) {
		case models.ErrorTypeConnectionProblem:
			vm.setStateLocked(State{Kind: KindInternetError, Err: response.Err})
		case models.ErrorTypeNothingFound:
			vm.setStateLocked(State{Kind: KindNothingFound})
		default:
			vm.setStateLocked(State{Kind: KindServerError, Err: response.Err})
		}
		return
	}

	result := response.Result
	if len(result.Items) == 0 {
		vm.setStateLocked(State{Kind: KindNothingFound})
		return
	}

	vm.items = slices.Clone(result.Items)
	vm.found = result.Found
	vm.pages = result.Pages
	vm.page = 1

	vm.setStateLocked(State{
		Kind:     KindNewSearchResult,
		Items:    vm.itemsLocked(),
		Found:    vm.found,
		Appended: len(vm.items),
	})
}

func (vm *ViewModel) completeNextPageLocked(page int, response services.SearchResponse) {
	if vm.state.Kind != KindNextPageLoading || page != vm.page {
		return
	}

	if response.Err != nil {
		vm.setStateLocked(State{Kind: KindNextPageError, Items: vm.itemsLocked(), Found: vm.found, Err: response.Err})
		vm.toastLocked(ToastEvent{ErrorType: models.ErrorTypeOf(response.Err), Err: response.Err})
		return
	}

	result := response.Result
	if len(result.Items) == 0 {
		vm.exhausted = true
	} else {
		vm.items = append(vm.items, result.Items...)
		vm.found = result.Found
		if result.Pages > 0 {
			vm.pages = result.Pages
		}
		vm.page++
	}

	vm.setStateLocked(State{
		Kind:     KindNextPageSearchResult,
		Items:    vm.itemsLocked(),
		Found:    vm.found,
		Appended: len(result.Items),
	})
}

// hasMoreLocked reports whether another page may exist. A found count that shrank below the
// number of received items ends the pagination.
func (vm *ViewModel) hasMoreLocked() bool {
	if vm.exhausted || len(vm.items) >= vm.found {
		return false
	}
	return vm.pages == 0 || vm.page < vm.pages
}

func (vm *ViewModel) itemsLocked() []models.VacancyFromList {
	return slices.Clip(vm.items)
}

func (vm *ViewModel) setStateLocked(state State) {
	vm.state = state
	metrics.SearchStatesCounter.WithLabelValues(string(state.Kind)).Inc()

	subscribers := maps.Clone(vm.subscribers)
	vm.notifications.Push(func() {
		for id, subscriber := range subscribers {
			if vm.subscribed(id) {
				subscriber(state)
			}
		}
	})
}

func (vm *ViewModel) toastLocked(event ToastEvent) {
	subscribers := maps.Clone(vm.toastSubscribers)
	vm.notifications.Push(func() {
		for id, subscriber := range subscribers {
			if vm.subscribed(id) {
				subscriber(event)
			}
		}
	})
}

// subscribed skips callbacks removed after their notification was queued.
func (vm *ViewModel) subscribed(id int) bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	if _, ok := vm.subscribers[id]; ok {
		return true
	}
	_, ok := vm.toastSubscribers[id]
	return ok
}
