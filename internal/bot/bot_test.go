package bot

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/asaskevich/EventBus"
	botApi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/maxaizer/hh-vacancy-search/internal/domain/events"
	"github.com/maxaizer/hh-vacancy-search/internal/domain/models"
	"github.com/maxaizer/hh-vacancy-search/internal/search"
	"github.com/maxaizer/hh-vacancy-search/internal/services"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T { return &v }

type mockApi struct {
	mu           sync.Mutex
	SentMessages []botApi.Chattable
}

func (m *mockApi) Send(chattable botApi.Chattable) (botApi.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SentMessages = append(m.SentMessages, chattable)
	return botApi.Message{}, nil
}

func (m *mockApi) texts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	var texts []string
	for _, chattable := range m.SentMessages {
		if msg, ok := chattable.(botApi.MessageConfig); ok {
			texts = append(texts, msg.Text)
		}
	}
	return texts
}

func (m *mockApi) lastText() string {
	texts := m.texts()
	if len(texts) == 0 {
		return ""
	}
	return texts[len(texts)-1]
}

func (m *mockApi) containsText(substr string) bool {
	for _, text := range m.texts() {
		if strings.Contains(text, substr) {
			return true
		}
	}
	return false
}

type mockFiltersService struct {
	mu      sync.Mutex
	bus     EventBus.Bus
	stored  map[string]models.FilterParameters
	applied int
}

func newMockFiltersService() *mockFiltersService {
	return &mockFiltersService{stored: make(map[string]models.FilterParameters)}
}

func (m *mockFiltersService) Load(_ context.Context, owner string) (models.FilterParameters, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stored[owner], nil
}

func (m *mockFiltersService) Apply(_ context.Context, owner string, filters models.FilterParameters) error {
	if err := filters.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	m.stored[owner] = filters
	m.applied++
	m.mu.Unlock()

	if m.bus != nil {
		m.bus.Publish(events.FiltersAppliedTopic, events.FiltersApplied{Owner: owner, Filters: filters})
	}
	return nil
}

func (m *mockFiltersService) Reset(_ context.Context, owner string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.stored, owner)
	return nil
}

type mockAreas struct {
	Areas []models.Area
}

func (m *mockAreas) GetByName(_ context.Context, name string) (*models.Area, error) {
	for _, area := range m.Areas {
		if area.NormalizedName == models.NormalizeName(name) {
			return &area, nil
		}
	}
	return nil, nil
}

func (m *mockAreas) GetRegionByName(_ context.Context, countryID string, name string) (*models.Area, error) {
	for _, area := range m.Areas {
		if area.ParentID == countryID && area.NormalizedName == models.NormalizeName(name) {
			return &area, nil
		}
	}
	return nil, nil
}

func (m *mockAreas) Countries(_ context.Context) ([]models.Area, error) {
	var countries []models.Area
	for _, area := range m.Areas {
		if area.IsCountry() {
			countries = append(countries, area)
		}
	}
	return countries, nil
}

type mockIndustries struct {
	Industries []models.Industry
}

func (m *mockIndustries) GetByName(_ context.Context, name string) (*models.Industry, error) {
	for _, industry := range m.Industries {
		if industry.NormalizedName == models.NormalizeName(name) {
			return &industry, nil
		}
	}
	return nil, nil
}

type mockSearcher struct {
	mu      sync.Mutex
	options []map[string]string
	result  models.VacanciesSearchResult
	err     error
}

func (m *mockSearcher) Search(_ context.Context, options map[string]string) <-chan services.SearchResponse {
	m.mu.Lock()
	m.options = append(m.options, options)
	result, err := m.result, m.err
	m.mu.Unlock()

	out := make(chan services.SearchResponse, 1)
	if err != nil {
		out <- services.SearchResponse{Err: err}
	} else {
		out <- services.SearchResponse{Result: &result}
	}
	close(out)
	return out
}

func (m *mockSearcher) calls() []map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]map[string]string(nil), m.options...)
}

type mockDetails struct {
	mu        sync.Mutex
	bus       EventBus.Bus
	details   map[models.VacancyID]models.VacancyDetails
	favorites map[models.VacancyID]bool
	err       error
	requests  int
}

func (m *mockDetails) GetDetails(_ context.Context, _ string, id models.VacancyID) <-chan services.DetailsResponse {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests++

	out := make(chan services.DetailsResponse, 1)
	details, ok := m.details[id]
	switch {
	case m.err != nil:
		out <- services.DetailsResponse{Err: m.err}
	case !ok:
		out <- services.DetailsResponse{Err: models.ErrNothingFound}
	default:
		out <- services.DetailsResponse{Details: &details}
	}
	close(out)
	return out
}

func (m *mockDetails) IsFavorite(_ context.Context, _ string, id models.VacancyID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.favorites[id], nil
}

func (m *mockDetails) ToggleFavorite(_ context.Context, owner string, details models.VacancyDetails) (bool, error) {
	m.mu.Lock()
	added := !m.favorites[details.ID]
	m.favorites[details.ID] = added
	m.mu.Unlock()

	m.bus.Publish(events.FavoritesChangedTopic, events.FavoritesChanged{Owner: owner, VacancyID: details.ID,
		Added: added})
	return added, nil
}

func (m *mockDetails) Favorites(_ context.Context, _ string) ([]models.VacancyDetails, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var list []models.VacancyDetails
	for id, favorite := range m.favorites {
		if favorite {
			list = append(list, m.details[id])
		}
	}
	return list, nil
}

func (m *mockDetails) FavoriteIDs(_ context.Context, _ string) ([]models.VacancyID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var ids []models.VacancyID
	for id, favorite := range m.favorites {
		if favorite {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func simulateUserInput(cmd command, inputs []string) {
	for _, input := range inputs {
		cmd.OnUserInput(input)
	}
}

var (
	russia       = models.NewArea("113", "", "Россия")
	kazakhstan   = models.NewArea("40", "", "Казахстан")
	moscow       = models.NewArea("1", "113", "Москва")
	almaty       = models.NewArea("160", "40", "Алматы")
	itIndustry   = models.NewIndustry("7", "", "Информационные технологии")
	testAreas    = &mockAreas{Areas: []models.Area{russia, kazakhstan, moscow, almaty}}
	testIndustry = &mockIndustries{Industries: []models.Industry{itIndustry}}
)

func Test_FiltersCmd_WhenValidData_ShouldApplyFilters(t *testing.T) {

	assert := assert.New(t)

	api := &mockApi{}
	filters := newMockFiltersService()
	finished := false

	cmd := newFiltersCommand(api, 42, filters, testAreas, testIndustry)
	cmd.WithFinishCallback(func() { finished = true })

	cmd.Run()
	simulateUserInput(cmd, []string{"россия", "Москва", "Информационные технологии", "от 100000", yesAnswer,
		"Удалённая работа"})

	assert.True(finished)
	assert.Equal(1, filters.applied)

	stored := filters.stored["42"]
	assert.Equal(russia.ID, stored.Country.ID)
	assert.Equal(moscow.ID, stored.Region.ID)
	assert.Equal(itIndustry.ID, stored.Industry.ID)
	assert.Equal(100000, *stored.SalaryFrom)
	assert.Nil(stored.SalaryTo)
	assert.Equal(defaultCurrency, stored.Currency)
	assert.True(stored.OnlyWithSalary)
	assert.Equal(models.Remote, stored.Schedule)
	assert.True(strings.HasPrefix(api.lastText(), "Фильтры применены!"))
}

func Test_FiltersCmd_WhenStarted_ShouldOfferStoredCountries(t *testing.T) {

	assert := assert.New(t)

	api := &mockApi{}
	cmd := newFiltersCommand(api, 42, newMockFiltersService(), testAreas, testIndustry)
	cmd.Run()

	api.mu.Lock()
	last := api.SentMessages[len(api.SentMessages)-1].(botApi.MessageConfig)
	api.mu.Unlock()

	keyboard := last.ReplyMarkup.(botApi.ReplyKeyboardMarkup)
	assert.Equal(russia.Name, keyboard.Keyboard[0][0].Text)
	assert.Equal(kazakhstan.Name, keyboard.Keyboard[0][1].Text)
	assert.Equal(skipInput, keyboard.Keyboard[1][0].Text)
}

func Test_FiltersCmd_WhenEverythingSkipped_ShouldApplyEmptyFilters(t *testing.T) {

	assert := assert.New(t)

	filters := newMockFiltersService()
	filters.stored["42"] = models.FilterParameters{Country: &russia}
	finished := false

	cmd := newFiltersCommand(&mockApi{}, 42, filters, testAreas, testIndustry)
	cmd.WithFinishCallback(func() { finished = true })

	cmd.Run()
	simulateUserInput(cmd, []string{skipInput, skipInput, skipInput, skipInput, noAnswer, skipInput})

	assert.True(finished)
	assert.True(filters.stored["42"].IsEmpty())
}

func Test_FiltersCmd_WhenInvalidInput_ShouldWaitForValid(t *testing.T) {

	assert := assert.New(t)

	api := &mockApi{}
	filters := newMockFiltersService()
	finished := false

	cmd := newFiltersCommand(api, 42, filters, testAreas, testIndustry)
	cmd.WithFinishCallback(func() { finished = true })
	cmd.Run()

	simulateUserInput(cmd, []string{"Атлантида"})
	assert.Equal("Страна не найдена.", api.lastText())

	simulateUserInput(cmd, []string{"Москва"})
	assert.Equal("Страна не найдена.", api.lastText())

	simulateUserInput(cmd, []string{"Казахстан", "Москва"})
	assert.Equal("Регион не найден.", api.lastText())

	simulateUserInput(cmd, []string{"Алматы", "Сельское хозяйство"})
	assert.Equal("Отрасль не найдена.", api.lastText())

	simulateUserInput(cmd, []string{skipInput, "много"})
	assert.Equal("Неверный ввод.", api.lastText())

	simulateUserInput(cmd, []string{"200000-100000"})
	assert.Equal("Минимальная зарплата больше максимальной.", api.lastText())

	simulateUserInput(cmd, []string{"100000-200000", "Может быть"})
	assert.Equal("Ответьте \"Да\" или \"Нет\"", api.lastText())

	simulateUserInput(cmd, []string{noAnswer, "По настроению"})
	assert.Equal("Неверный ввод.", api.lastText())
	assert.False(finished)

	simulateUserInput(cmd, []string{"Гибкий график"})
	assert.True(finished)

	stored := filters.stored["42"]
	assert.Equal(almaty.ID, stored.Region.ID)
	assert.Equal(100000, *stored.SalaryFrom)
	assert.Equal(200000, *stored.SalaryTo)
	assert.Equal(models.Flexible, stored.Schedule)
}

func Test_ParseSalary_WhenInputVaries_ShouldParseBounds(t *testing.T) {

	tests := []struct {
		input string
		from  *int
		to    *int
		ok    bool
	}{
		{"100000", ptr(100000), nil, true},
		{"от 150000", ptr(150000), nil, true},
		{"ОТ150000", ptr(150000), nil, true},
		{"до 90000", nil, ptr(90000), true},
		{"100000 - 200000", ptr(100000), ptr(200000), true},
		{"100000–200000", ptr(100000), ptr(200000), true},
		{"сто тысяч", nil, nil, false},
		{"-5", nil, nil, false},
		{"", nil, nil, false},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			from, to, ok := parseSalary(test.input)
			assert.Equal(t, test.ok, ok)
			assert.Equal(t, test.from, from)
			assert.Equal(t, test.to, to)
		})
	}
}

func Test_DescriptionToText_WhenHtml_ShouldKeepStructure(t *testing.T) {

	assert := assert.New(t)

	text := descriptionToText("<p><strong>Задачи:</strong></p><ul><li>писать код</li><li>ревьюить &amp; тестировать" +
		"</li></ul><script>alert(1)</script>")

	assert.Equal("Задачи:\n• писать код\n• ревьюить & тестировать", text)
}

func Test_DescriptionToText_WhenTooLong_ShouldTruncate(t *testing.T) {

	text := descriptionToText(strings.Repeat("я", maxDescriptionRunes+100))

	assert.Equal(t, maxDescriptionRunes+1, len([]rune(text)))
	assert.True(t, strings.HasSuffix(text, "…"))
}

func Test_RenderState_WhenNextPageAppended_ShouldRenderOnlyNewItems(t *testing.T) {

	assert := assert.New(t)

	state := search.State{
		Kind:     search.KindNextPageSearchResult,
		Items:    []models.VacancyFromList{{ID: 1, Name: "Первая"}, {ID: 2, Name: "Вторая"}},
		Found:    5,
		Appended: 1,
	}

	text := renderState(state, []models.VacancyID{2})
	assert.NotContains(text, "Первая")
	assert.Contains(text, "Вторая")
	assert.Contains(text, "Вторая ⭐")
	assert.Contains(text, "/vacancy_2")
	assert.Empty(renderState(search.State{Kind: search.KindNextPageLoading}, nil))
}

func Test_RenderDetails_WhenOfflineFavorite_ShouldMarkBoth(t *testing.T) {

	assert := assert.New(t)

	details := models.VacancyDetails{
		ID:           10,
		Name:         "Go разработчик",
		EmployerName: ptr("Яндекс"),
		Salary:       &models.Salary{Currency: "RUR", From: ptr(200000)},
		Description:  "<p>Пишем сервисы</p>",
		KeySkills:    []string{"Go", "PostgreSQL"},
		AlternateURL: "https://hh.ru/vacancy/10",
	}

	text := renderDetails(details, true, true)
	assert.True(strings.HasPrefix(text, "Нет соединения"))
	assert.Contains(text, "Go разработчик ⭐")
	assert.Contains(text, "Компания: Яндекс")
	assert.Contains(text, "Пишем сервисы")
	assert.Contains(text, "Ключевые навыки: Go, PostgreSQL")
	assert.Contains(text, "Убрать из избранного: /fav_10")
}

func newTestBot(t *testing.T) (*Bot, *mockApi, *mockSearcher, *mockDetails, *mockFiltersService) {
	api := &mockApi{}
	bus := EventBus.New()
	searcher := &mockSearcher{}
	details := &mockDetails{
		bus:       bus,
		details:   make(map[models.VacancyID]models.VacancyDetails),
		favorites: make(map[models.VacancyID]bool),
	}
	filters := newMockFiltersService()
	filters.bus = bus

	createdBot, err := newBot(api, bus, Dependencies{
		Searcher:   searcher,
		Filters:    filters,
		Details:    details,
		Areas:      testAreas,
		Industries: testIndustry,
	}, Options{Search: search.Options{PerPage: 2, Debounce: 10 * time.Millisecond}})
	assert.NoError(t, err)
	t.Cleanup(createdBot.Stop)

	return createdBot, api, searcher, details, filters
}

func Test_NewBot_WhenDependencyMissing_ShouldFail(t *testing.T) {

	_, err := newBot(&mockApi{}, EventBus.New(), Dependencies{Searcher: &mockSearcher{}}, Options{})
	assert.Error(t, err)

	_, err = newBot(&mockApi{}, nil, Dependencies{}, Options{})
	assert.Error(t, err)
}

func Test_Bot_WhenPlainText_ShouldSearchAndRenderResult(t *testing.T) {

	assert := assert.New(t)

	createdBot, api, searcher, _, _ := newTestBot(t)
	searcher.result = models.VacanciesSearchResult{
		Items: []models.VacancyFromList{{ID: 1, Name: "Go разработчик"}, {ID: 2, Name: "Backend"}},
		Found: 3, Page: 0, Pages: 2,
	}

	createdBot.handleInput(1, "golang")

	assert.Eventually(func() bool { return api.containsText("Найдено вакансий: 3") }, time.Second,
		5*time.Millisecond)

	calls := searcher.calls()
	assert.Len(calls, 1)
	assert.Equal("golang", calls[0][models.OptionText])
	assert.Equal("0", calls[0][models.OptionPage])
	assert.Equal("2", calls[0][models.OptionPerPage])

	searcher.mu.Lock()
	searcher.result = models.VacanciesSearchResult{Items: []models.VacancyFromList{{ID: 3, Name: "Senior Go"}},
		Found: 3, Page: 1, Pages: 2}
	searcher.mu.Unlock()

	createdBot.handleMessage(&botApi.Message{Chat: &botApi.Chat{ID: 1}, Text: showMoreCommandName})

	assert.Eventually(func() bool { return api.containsText("Senior Go") }, time.Second, 5*time.Millisecond)
	assert.Equal("1", searcher.calls()[1][models.OptionPage])
}

func Test_Bot_WhenMessagesDispatched_ShouldHandleChatInArrivalOrder(t *testing.T) {

	assert := assert.New(t)

	createdBot, _, searcher, _, _ := newTestBot(t)
	searcher.result = models.VacanciesSearchResult{Items: []models.VacancyFromList{{ID: 1, Name: "Go"}}, Found: 1,
		Pages: 1}

	queries := []string{"go", "java", "kotlin", "rust", "python"}
	for _, query := range queries {
		createdBot.dispatch(&botApi.Message{Chat: &botApi.Chat{ID: 5}, Text: query})
	}

	assert.Eventually(func() bool {
		query, ok := createdBot.session(5).viewModel.LastQuery()
		return ok && query == "python"
	}, time.Second, 5*time.Millisecond)
	assert.Eventually(func() bool {
		calls := searcher.calls()
		for _, call := range calls {
			if call[models.OptionText] == "python" {
				return true
			}
		}
		return false
	}, time.Second, 5*time.Millisecond)
}

func Test_Bot_WhenStopped_ShouldIgnoreDispatchedMessages(t *testing.T) {

	createdBot, _, searcher, _, _ := newTestBot(t)
	createdBot.Stop()

	createdBot.dispatch(&botApi.Message{Chat: &botApi.Chat{ID: 5}, Text: "go"})
	time.Sleep(20 * time.Millisecond)

	assert.Empty(t, searcher.calls())
}

func Test_Bot_WhenResultContainsFavorite_ShouldMarkIt(t *testing.T) {

	createdBot, api, searcher, details, _ := newTestBot(t)
	details.favorites[2] = true
	searcher.result = models.VacanciesSearchResult{
		Items: []models.VacancyFromList{{ID: 1, Name: "Go разработчик"}, {ID: 2, Name: "Backend"}},
		Found: 2, Pages: 1,
	}

	createdBot.handleInput(1, "golang")

	assert.Eventually(t, func() bool { return api.containsText("Backend ⭐") }, time.Second, 5*time.Millisecond)
	assert.False(t, api.containsText("Go разработчик ⭐"))
}

func Test_Bot_WhenBlankText_ShouldNotSearch(t *testing.T) {

	createdBot, api, searcher, _, _ := newTestBot(t)

	createdBot.handleInput(1, "   ")

	assert.Equal(t, "Введите текст запроса.", api.lastText())
	assert.Empty(t, searcher.calls())
}

func Test_Bot_WhenSearchFails_ShouldRenderErrorState(t *testing.T) {

	createdBot, api, searcher, _, _ := newTestBot(t)
	searcher.err = errors.Wrap(models.ErrConnectionProblem, "dial")

	createdBot.handleInput(1, "golang")

	assert.Eventually(t, func() bool { return api.containsText("Нет соединения с сервером") }, time.Second,
		5*time.Millisecond)
}

func Test_Bot_WhenFiltersApplied_ShouldRepeatSearchWithFilters(t *testing.T) {

	assert := assert.New(t)

	createdBot, api, searcher, _, filters := newTestBot(t)
	searcher.result = models.VacanciesSearchResult{Items: []models.VacancyFromList{{ID: 1, Name: "Go"}}, Found: 1,
		Pages: 1}

	createdBot.handleInput(7, "golang")
	assert.Eventually(func() bool { return len(searcher.calls()) == 1 }, time.Second, 5*time.Millisecond)

	createdBot.handleCommand(7, filtersCommandName, "")
	for _, input := range []string{"Россия", skipInput, skipInput, skipInput, noAnswer, skipInput} {
		createdBot.handleInput(7, input)
	}

	assert.Equal(1, filters.applied)
	assert.True(api.containsText("Фильтры применены!"))
	assert.Eventually(func() bool { return len(searcher.calls()) == 2 }, time.Second, 5*time.Millisecond)

	repeated := searcher.calls()[1]
	assert.Equal("golang", repeated[models.OptionText])
	assert.Equal(russia.ID, repeated[models.OptionArea])
}

func Test_Bot_WhenBackToMenuDuringDialog_ShouldCancelDialog(t *testing.T) {

	assert := assert.New(t)

	createdBot, _, searcher, _, filters := newTestBot(t)

	createdBot.handleCommand(3, filtersCommandName, "")
	createdBot.handleMessage(&botApi.Message{Chat: &botApi.Chat{ID: 3}, Text: backToMenuCommandName})
	createdBot.handleInput(3, "Россия")

	assert.Equal(0, filters.applied)
	assert.Eventually(func() bool { return len(searcher.calls()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal("Россия", searcher.calls()[0][models.OptionText])
}

func Test_Bot_WhenVacancyCommand_ShouldShowDetailsAndToggleFavorite(t *testing.T) {

	assert := assert.New(t)

	createdBot, api, _, details, _ := newTestBot(t)
	details.details[5] = models.VacancyDetails{ID: 5, Name: "Go разработчик", AlternateURL: "https://hh.ru/vacancy/5"}

	createdBot.handleCommand(1, "vacancy_5", "")
	assert.Contains(api.lastText(), "Добавить в избранное: /fav_5")
	assert.Contains(api.lastText(), "/share_5")

	createdBot.handleCommand(1, "fav_5", "")
	assert.True(details.favorites[5])
	assert.Equal("Вакансия 5 добавлена в избранное.", api.lastText())

	createdBot.handleMessage(&botApi.Message{Chat: &botApi.Chat{ID: 1}, Text: favoritesCommandName})
	assert.Contains(api.lastText(), "Go разработчик")

	createdBot.handleCommand(1, "share_5", "")
	assert.Equal("Go разработчик\nhttps://hh.ru/vacancy/5", api.lastText())

	createdBot.handleCommand(1, "fav_5", "")
	assert.False(details.favorites[5])
	assert.Equal("Вакансия 5 удалена из избранного.", api.lastText())
}

func Test_Bot_WhenVacancyIdInvalidOrMissing_ShouldReport(t *testing.T) {

	assert := assert.New(t)

	createdBot, api, _, details, _ := newTestBot(t)

	createdBot.handleCommand(1, "vacancy_abc", "")
	assert.Equal("Неверный идентификатор вакансии.", api.lastText())
	assert.Equal(0, details.requests)

	createdBot.handleCommand(1, "vacancy_404", "")
	assert.Equal("Вакансия не найдена.", api.lastText())

	details.err = errors.Wrap(models.ErrServerError, "500")
	createdBot.handleCommand(1, "vacancy_404", "")
	assert.Equal("Ошибка сервера. Повторите попытку позже.", api.lastText())
}

func Test_Bot_WhenClickRepeatedTooFast_ShouldIgnoreRepeat(t *testing.T) {

	createdBot, _, _, details, _ := newTestBot(t)
	createdBot.options.ClickDebounce = time.Hour
	details.details[5] = models.VacancyDetails{ID: 5, Name: "Go"}

	createdBot.handleCommand(9, "vacancy_5", "")
	createdBot.handleCommand(9, "vacancy_5", "")

	assert.Equal(t, 1, details.requests)
}

func Test_Bot_WhenClearFilters_ShouldResetStoredFilters(t *testing.T) {

	createdBot, api, _, _, filters := newTestBot(t)
	filters.stored["1"] = models.FilterParameters{Country: &russia}

	createdBot.handleCommand(1, "clear_filters", "")

	assert.Equal(t, "Фильтры сброшены.", api.lastText())
	assert.Empty(t, filters.stored)
}

func Test_Bot_WhenUnknownCommand_ShouldReply(t *testing.T) {

	createdBot, api, _, _, _ := newTestBot(t)

	createdBot.handleCommand(1, "unknown", "")

	assert.Equal(t, "Неизвестная команда!", api.lastText())
}
