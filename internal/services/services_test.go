package services

import (
	"context"
	"testing"

	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/hh-vacancy-search/internal/clients/hh"
	"github.com/maxaizer/hh-vacancy-search/internal/domain/events"
	"github.com/maxaizer/hh-vacancy-search/internal/domain/models"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func ptr[T any](v T) *T { return &v }

type mockVacancies struct {
	mock.Mock
}

func (m *mockVacancies) Search(ctx context.Context, options map[string]string) (models.VacanciesSearchResult, error) {
	args := m.Called(ctx, options)
	return args.Get(0).(models.VacanciesSearchResult), args.Error(1)
}

func (m *mockVacancies) GetDetails(ctx context.Context, id models.VacancyID) (models.VacancyDetails, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.VacancyDetails), args.Error(1)
}

type mockFavorites struct {
	mock.Mock
}

func (m *mockFavorites) Add(ctx context.Context, owner string, details models.VacancyDetails) error {
	return m.Called(ctx, owner, details).Error(0)
}

func (m *mockFavorites) Remove(ctx context.Context, owner string, id models.VacancyID) error {
	return m.Called(ctx, owner, id).Error(0)
}

func (m *mockFavorites) Contains(ctx context.Context, owner string, id models.VacancyID) (bool, error) {
	args := m.Called(ctx, owner, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockFavorites) Get(ctx context.Context, owner string, id models.VacancyID) (*models.VacancyDetails, error) {
	args := m.Called(ctx, owner, id)
	details, _ := args.Get(0).(*models.VacancyDetails)
	return details, args.Error(1)
}

func (m *mockFavorites) List(ctx context.Context, owner string) ([]models.VacancyDetails, error) {
	args := m.Called(ctx, owner)
	list, _ := args.Get(0).([]models.VacancyDetails)
	return list, args.Error(1)
}

func (m *mockFavorites) IDs(ctx context.Context, owner string) ([]models.VacancyID, error) {
	args := m.Called(ctx, owner)
	ids, _ := args.Get(0).([]models.VacancyID)
	return ids, args.Error(1)
}

func collect[T any](ch <-chan T) []T {
	var items []T
	for item := range ch {
		items = append(items, item)
	}
	return items
}

func Test_VacanciesInteractor_Search_WhenSuccessful_ShouldEmitSingleResult(t *testing.T) {

	assert := assert.New(t)
	ctx := context.Background()
	options := map[string]string{models.OptionText: "go", models.OptionPage: "0"}

	repo := &mockVacancies{}
	repo.On("Search", ctx, options).Return(models.VacanciesSearchResult{
		Items: []models.VacancyFromList{{ID: 1, Name: "Go"}}, Found: 1, Pages: 1,
	}, nil)

	responses := collect(NewVacanciesInteractor(repo).Search(ctx, options))

	assert.Len(responses, 1)
	assert.NoError(responses[0].Err)
	assert.Equal(1, responses[0].Result.Found)
	assert.Equal("Go", responses[0].Result.Items[0].Name)
}

func Test_VacanciesInteractor_Search_WhenFailed_ShouldEmitSingleError(t *testing.T) {

	assert := assert.New(t)

	repo := &mockVacancies{}
	repo.On("Search", mock.Anything, mock.Anything).
		Return(models.VacanciesSearchResult{}, errors.Wrap(models.ErrServerError, "status 500"))

	responses := collect(NewVacanciesInteractor(repo).Search(context.Background(), map[string]string{}))

	assert.Len(responses, 1)
	assert.Nil(responses[0].Result)
	assert.Equal(models.ErrorTypeServerError, models.ErrorTypeOf(responses[0].Err))
}

func Test_VacancyDetailsInteractor_GetDetails_WhenFavorite_ShouldRefreshStoredCopy(t *testing.T) {

	ctx := context.Background()
	details := models.VacancyDetails{ID: 5, Name: "Go developer"}

	vacancies := &mockVacancies{}
	vacancies.On("GetDetails", ctx, models.VacancyID(5)).Return(details, nil)
	favorites := &mockFavorites{}
	favorites.On("Contains", ctx, "42", models.VacancyID(5)).Return(true, nil)
	favorites.On("Add", ctx, "42", details).Return(nil)

	responses := collect(NewVacancyDetailsInteractor(vacancies, favorites, EventBus.New()).GetDetails(ctx, "42", 5))

	assert.Len(t, responses, 1)
	assert.Equal(t, details, *responses[0].Details)
	assert.False(t, responses[0].Offline)
	favorites.AssertExpectations(t)
}

func Test_VacancyDetailsInteractor_GetDetails_WhenOfflineAndFavorite_ShouldReturnStoredCopy(t *testing.T) {

	assert := assert.New(t)
	ctx := context.Background()
	stored := &models.VacancyDetails{ID: 5, Name: "stored"}

	vacancies := &mockVacancies{}
	vacancies.On("GetDetails", ctx, models.VacancyID(5)).Return(models.VacancyDetails{}, models.ErrConnectionProblem)
	favorites := &mockFavorites{}
	favorites.On("Get", ctx, "42", models.VacancyID(5)).Return(stored, nil)

	response := <-NewVacancyDetailsInteractor(vacancies, favorites, EventBus.New()).GetDetails(ctx, "42", 5)

	assert.NoError(response.Err)
	assert.True(response.Offline)
	assert.Equal("stored", response.Details.Name)
}

func Test_VacancyDetailsInteractor_GetDetails_WhenOfflineAndNotFavorite_ShouldReturnError(t *testing.T) {

	ctx := context.Background()

	vacancies := &mockVacancies{}
	vacancies.On("GetDetails", ctx, models.VacancyID(5)).Return(models.VacancyDetails{}, models.ErrConnectionProblem)
	favorites := &mockFavorites{}
	favorites.On("Get", ctx, "42", models.VacancyID(5)).Return(nil, nil)

	response := <-NewVacancyDetailsInteractor(vacancies, favorites, EventBus.New()).GetDetails(ctx, "42", 5)

	assert.ErrorIs(t, response.Err, models.ErrConnectionProblem)
	assert.Nil(t, response.Details)
}

func Test_VacancyDetailsInteractor_GetDetails_WhenNotFound_ShouldNotUseFavorites(t *testing.T) {

	ctx := context.Background()

	vacancies := &mockVacancies{}
	vacancies.On("GetDetails", ctx, models.VacancyID(5)).Return(models.VacancyDetails{}, models.ErrNothingFound)
	favorites := &mockFavorites{}

	response := <-NewVacancyDetailsInteractor(vacancies, favorites, EventBus.New()).GetDetails(ctx, "42", 5)

	assert.ErrorIs(t, response.Err, models.ErrNothingFound)
	favorites.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything)
}

func Test_VacancyDetailsInteractor_ToggleFavorite_ShouldAddThenRemoveAndPublish(t *testing.T) {

	assert := assert.New(t)
	ctx := context.Background()
	details := models.VacancyDetails{ID: 9, Name: "Go"}

	var published []events.FavoritesChanged
	bus := EventBus.New()
	_ = bus.Subscribe(events.FavoritesChangedTopic, func(event events.FavoritesChanged) {
		published = append(published, event)
	})

	favorites := &mockFavorites{}
	favorites.On("Contains", ctx, "42", details.ID).Return(false, nil).Once()
	favorites.On("Add", ctx, "42", details).Return(nil).Once()
	favorites.On("Contains", ctx, "42", details.ID).Return(true, nil).Once()
	favorites.On("Remove", ctx, "42", details.ID).Return(nil).Once()

	interactor := NewVacancyDetailsInteractor(&mockVacancies{}, favorites, bus)

	added, err := interactor.ToggleFavorite(ctx, "42", details)
	assert.NoError(err)
	assert.True(added)

	added, err = interactor.ToggleFavorite(ctx, "42", details)
	assert.NoError(err)
	assert.False(added)

	assert.Equal([]events.FavoritesChanged{
		{Owner: "42", VacancyID: 9, Added: true},
		{Owner: "42", VacancyID: 9, Added: false},
	}, published)
	favorites.AssertExpectations(t)
}

func Test_VacancyDetailsInteractor_FavoriteIDs_ShouldReturnOwnerFavorites(t *testing.T) {

	assert := assert.New(t)
	ctx := context.Background()

	favorites := &mockFavorites{}
	favorites.On("IDs", ctx, "1").Return([]models.VacancyID{3, 1}, nil)
	favorites.On("IDs", ctx, "2").Return(nil, errors.New("database is locked"))

	interactor := NewVacancyDetailsInteractor(&mockVacancies{}, favorites, EventBus.New())

	ids, err := interactor.FavoriteIDs(ctx, "1")
	assert.NoError(err)
	assert.Equal([]models.VacancyID{3, 1}, ids)

	_, err = interactor.FavoriteIDs(ctx, "2")
	assert.Error(err)
}

func Test_ShareText_ShouldContainNameAndLink(t *testing.T) {
	text := ShareText(models.VacancyDetails{Name: "Go developer", AlternateURL: "https://hh.ru/vacancy/1"})
	assert.Equal(t, "Go developer\nhttps://hh.ru/vacancy/1", text)
}

type mockFilters struct {
	mock.Mock
}

func (m *mockFilters) Save(ctx context.Context, owner string, filters models.FilterParameters) error {
	return m.Called(ctx, owner, filters).Error(0)
}

func (m *mockFilters) Load(ctx context.Context, owner string) (*models.FilterParameters, error) {
	args := m.Called(ctx, owner)
	filters, _ := args.Get(0).(*models.FilterParameters)
	return filters, args.Error(1)
}

func (m *mockFilters) Clear(ctx context.Context, owner string) error {
	return m.Called(ctx, owner).Error(0)
}

func Test_FiltersInteractor_Apply_ShouldSaveAndPublish(t *testing.T) {

	assert := assert.New(t)
	ctx := context.Background()
	filters := models.FilterParameters{SalaryFrom: ptr(1000), Schedule: models.Remote}

	var published []events.FiltersApplied
	bus := EventBus.New()
	_ = bus.Subscribe(events.FiltersAppliedTopic, func(event events.FiltersApplied) {
		published = append(published, event)
	})

	repo := &mockFilters{}
	repo.On("Save", ctx, "42", filters).Return(nil)

	assert.NoError(NewFiltersInteractor(repo, bus).Apply(ctx, "42", filters))
	assert.Equal([]events.FiltersApplied{{Owner: "42", Filters: filters}}, published)
}

func Test_FiltersInteractor_Apply_WhenInvalid_ShouldNotSaveOrPublish(t *testing.T) {

	published := false
	bus := EventBus.New()
	_ = bus.Subscribe(events.FiltersAppliedTopic, func(event events.FiltersApplied) { published = true })

	repo := &mockFilters{}
	err := NewFiltersInteractor(repo, bus).Apply(context.Background(), "42",
		models.FilterParameters{SalaryFrom: ptr(2000), SalaryTo: ptr(1000)})

	assert.ErrorIs(t, err, models.ErrSalaryRange)
	assert.False(t, published)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
}

func Test_FiltersInteractor_LoadAndReset(t *testing.T) {

	assert := assert.New(t)
	ctx := context.Background()

	var published []events.FiltersApplied
	bus := EventBus.New()
	_ = bus.Subscribe(events.FiltersAppliedTopic, func(event events.FiltersApplied) {
		published = append(published, event)
	})

	repo := &mockFilters{}
	repo.On("Load", ctx, "1").Return(nil, nil)
	repo.On("Load", ctx, "2").Return(&models.FilterParameters{OnlyWithSalary: true}, nil)
	repo.On("Clear", ctx, "2").Return(nil)

	interactor := NewFiltersInteractor(repo, bus)

	empty, err := interactor.Load(ctx, "1")
	assert.NoError(err)
	assert.True(empty.IsEmpty())

	saved, err := interactor.Load(ctx, "2")
	assert.NoError(err)
	assert.True(saved.OnlyWithSalary)

	assert.NoError(interactor.Reset(ctx, "2"))
	assert.Equal([]events.FiltersApplied{{Owner: "2"}}, published)
}

type mockReferenceClient struct {
	mock.Mock
}

func (m *mockReferenceClient) GetAreas(ctx context.Context) ([]hh.Area, error) {
	args := m.Called(ctx)
	areas, _ := args.Get(0).([]hh.Area)
	return areas, args.Error(1)
}

func (m *mockReferenceClient) GetIndustries(ctx context.Context) ([]hh.Industry, error) {
	args := m.Called(ctx)
	industries, _ := args.Get(0).([]hh.Industry)
	return industries, args.Error(1)
}

type mockAreasStore struct {
	mock.Mock
}

func (m *mockAreasStore) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockAreasStore) Replace(ctx context.Context, areas []models.Area) error {
	return m.Called(ctx, areas).Error(0)
}

type mockIndustriesStore struct {
	mock.Mock
}

func (m *mockIndustriesStore) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockIndustriesStore) Replace(ctx context.Context, industries []models.Industry) error {
	return m.Called(ctx, industries).Error(0)
}

func Test_ReferenceRefresher_Start_WhenTablesEmpty_ShouldPopulate(t *testing.T) {

	assert := assert.New(t)
	ctx := context.Background()

	client := &mockReferenceClient{}
	client.On("GetAreas", ctx).Return([]hh.Area{{ID: "113", Name: "Россия"}, {ID: "1", ParentID: "113", Name: "Москва"}}, nil)
	client.On("GetIndustries", ctx).Return([]hh.Industry{{ID: "7", Name: "Информационные технологии"}}, nil)

	areas := &mockAreasStore{}
	areas.On("Count", ctx).Return(int64(0), nil)
	areas.On("Replace", ctx, []models.Area{
		models.NewArea("113", "", "Россия"),
		models.NewArea("1", "113", "Москва"),
	}).Return(nil)

	industries := &mockIndustriesStore{}
	industries.On("Count", ctx).Return(int64(0), nil)
	industries.On("Replace", ctx, []models.Industry{models.NewIndustry("7", "", "Информационные технологии")}).Return(nil)

	refreshed := 0
	refresher := NewReferenceRefresher(client, areas, industries, func() { refreshed++ })

	assert.NoError(refresher.Start(ctx, "0 3 * * *"))
	refresher.Stop()

	assert.Equal(1, refreshed)
	areas.AssertExpectations(t)
	industries.AssertExpectations(t)
}

func Test_ReferenceRefresher_Start_WhenTablesFilled_ShouldNotCallApi(t *testing.T) {

	ctx := context.Background()

	client := &mockReferenceClient{}
	areas := &mockAreasStore{}
	areas.On("Count", ctx).Return(int64(10), nil)
	industries := &mockIndustriesStore{}
	industries.On("Count", ctx).Return(int64(3), nil)

	refresher := NewReferenceRefresher(client, areas, industries, nil)

	assert.NoError(t, refresher.Start(ctx, "0 3 * * *"))
	refresher.Stop()

	client.AssertNotCalled(t, "GetAreas", mock.Anything)
}

func Test_ReferenceRefresher_Start_WhenScheduleInvalid_ShouldFail(t *testing.T) {

	ctx := context.Background()

	areas := &mockAreasStore{}
	areas.On("Count", ctx).Return(int64(10), nil)
	industries := &mockIndustriesStore{}
	industries.On("Count", ctx).Return(int64(3), nil)

	refresher := NewReferenceRefresher(&mockReferenceClient{}, areas, industries, nil)
	assert.Error(t, refresher.Start(ctx, "every day"))
}

func Test_ReferenceRefresher_Refresh_WhenApiFails_ShouldKeepStoredData(t *testing.T) {

	ctx := context.Background()

	client := &mockReferenceClient{}
	client.On("GetAreas", ctx).Return(nil, models.ErrConnectionProblem)
	areas := &mockAreasStore{}

	err := NewReferenceRefresher(client, areas, &mockIndustriesStore{}, nil).Refresh(ctx)

	assert.ErrorIs(t, err, models.ErrConnectionProblem)
	areas.AssertNotCalled(t, "Replace", mock.Anything, mock.Anything)
}
