package bot

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/asaskevich/EventBus"
	botApi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/maxaizer/hh-vacancy-search/internal/domain/events"
	"github.com/maxaizer/hh-vacancy-search/internal/domain/models"
	"github.com/maxaizer/hh-vacancy-search/internal/logger"
	"github.com/maxaizer/hh-vacancy-search/internal/search"
	"github.com/maxaizer/hh-vacancy-search/internal/services"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type filtersService interface {
	Load(ctx context.Context, owner string) (models.FilterParameters, error)
	Apply(ctx context.Context, owner string, filters models.FilterParameters) error
	Reset(ctx context.Context, owner string) error
}

type detailsService interface {
	GetDetails(ctx context.Context, owner string, id models.VacancyID) <-chan services.DetailsResponse
	IsFavorite(ctx context.Context, owner string, id models.VacancyID) (bool, error)
	ToggleFavorite(ctx context.Context, owner string, details models.VacancyDetails) (bool, error)
	Favorites(ctx context.Context, owner string) ([]models.VacancyDetails, error)
	FavoriteIDs(ctx context.Context, owner string) ([]models.VacancyID, error)
}

type areaRepository interface {
	GetByName(ctx context.Context, name string) (*models.Area, error)
	GetRegionByName(ctx context.Context, countryID string, name string) (*models.Area, error)
	Countries(ctx context.Context) ([]models.Area, error)
}

type industryRepository interface {
	GetByName(ctx context.Context, name string) (*models.Industry, error)
}

type Dependencies struct {
	Searcher   search.Searcher
	Filters    filtersService
	Details    detailsService
	Areas      areaRepository
	Industries industryRepository
}

type Options struct {
	Search        search.Options
	ClickDebounce time.Duration
}

type Bot struct {
	tgApi    *botApi.BotAPI
	api      apiInterface
	ctx      context.Context
	cancel   context.CancelFunc
	mu       sync.Mutex
	sessions map[int64]*session
	bus      EventBus.Bus
	deps     Dependencies
	options  Options
}

const (
	backToMenuCommandName = "В главное меню"
	favoritesCommandName  = "Избранное"

	vacancyCommandPrefix  = "vacancy_"
	favoriteCommandPrefix = "fav_"
	shareCommandPrefix    = "share_"
)

var globalCommands = []string{filtersCommandName, favoritesCommandName, showMoreCommandName, backToMenuCommandName}

func NewBot(token string, bus EventBus.Bus, deps Dependencies, options Options) (*Bot, error) {

	api, err := botApi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	log.Infof("Authorized on account %s", api.Self.UserName)

	err = botApi.SetLogger(log.StandardLogger())
	if err != nil {
		return nil, err
	}

	createdBot, err := newBot(api, bus, deps, options)
	if err != nil {
		return nil, err
	}
	createdBot.tgApi = api
	return createdBot, nil
}

func newBot(api apiInterface, bus EventBus.Bus, deps Dependencies, options Options) (*Bot, error) {

	if bus == nil {
		return nil, errors.New("bus is nil")
	}

	if deps.Searcher == nil || deps.Filters == nil || deps.Details == nil {
		return nil, errors.New("search, filters and details services are required")
	}

	if deps.Areas == nil || deps.Industries == nil {
		return nil, errors.New("reference data repositories are required")
	}

	ctx, cancel := context.WithCancel(context.Background())
	createdBot := &Bot{
		api:      api,
		ctx:      ctx,
		cancel:   cancel,
		sessions: make(map[int64]*session),
		bus:      bus,
		deps:     deps,
		options:  options,
	}

	if err := bus.Subscribe(events.FiltersAppliedTopic, createdBot.onFiltersApplied); err != nil {
		return nil, err
	}
	if err := bus.Subscribe(events.FavoritesChangedTopic, createdBot.onFavoritesChanged); err != nil {
		return nil, err
	}
	return createdBot, nil
}

func (b *Bot) Run() {

	updateConfig := botApi.NewUpdate(0)
	updateConfig.Timeout = 60

	updates := b.tgApi.GetUpdatesChan(updateConfig)

	for update := range updates {

		if update.Message == nil {
			continue
		}

		if update.Message.Chat.IsGroup() || update.Message.Chat.IsSuperGroup() {
			continue
		}

		b.dispatch(update.Message)
	}
}

// dispatch hands the message to its chat session. Chats are handled concurrently, messages of one
// chat strictly in arrival order.
func (b *Bot) dispatch(message *botApi.Message) {
	if b.ctx.Err() != nil {
		return
	}

	s := b.session(message.Chat.ID)
	s.inbox.Push(func() {
		if b.ctx.Err() != nil {
			return
		}
		b.handleMessage(message)
	})
}

func (b *Bot) Stop() {
	if b.tgApi != nil {
		b.tgApi.StopReceivingUpdates()
	}

	_ = b.bus.Unsubscribe(events.FiltersAppliedTopic, b.onFiltersApplied)
	_ = b.bus.Unsubscribe(events.FavoritesChangedTopic, b.onFavoritesChanged)

	b.cancel()

	b.mu.Lock()
	defer b.mu.Unlock()
	for chatID, s := range b.sessions {
		s.Close()
		delete(b.sessions, chatID)
	}
}

func (b *Bot) handleMessage(message *botApi.Message) {

	cmd := message.Command()
	if cmd == "" && slices.Contains(globalCommands, message.Text) {
		cmd = message.Text
	}

	if cmd != "" {
		b.handleCommand(message.Chat.ID, cmd, message.CommandArguments())
	} else {
		b.handleInput(message.Chat.ID, message.Text)
	}
}

func (b *Bot) handleCommand(chatID int64, command string, args string) {

	s := b.session(chatID)

	switch {
	case command == "start":
		s.CancelCommand()
		msg := botApi.NewMessage(chatID, "Привет! Напишите, какую работу ищете, например \"Go разработчик\". "+
			"Фильтры задаются кнопкой \""+filtersCommandName+"\".")
		msg.ReplyMarkup = defaultReplyKeyboard()
		_, _ = sendWithLogError(b.api, msg)
	case command == backToMenuCommandName:
		s.CancelCommand()
		msg := botApi.NewMessage(chatID, "Вы были успешно перенесены в главное меню")
		msg.ReplyMarkup = defaultReplyKeyboard()
		_, _ = sendWithLogError(b.api, msg)
	case command == filtersCommandName || command == "filters":
		s.RunCommand(newFiltersCommand(b.api, chatID, b.deps.Filters, b.deps.Areas, b.deps.Industries),
			filtersCommandName)
	case command == "clear_filters":
		s.CancelCommand()
		b.clearFilters(s)
	case command == showMoreCommandName:
		s.viewModel.OnScrollNearEnd()
	case command == "live":
		s.viewModel.OnQueryTextChanged(args)
	case command == favoritesCommandName || command == "favorites":
		b.showFavorites(s)
	case strings.HasPrefix(command, vacancyCommandPrefix):
		b.withVacancyID(s, command, vacancyCommandPrefix, b.showVacancy)
	case strings.HasPrefix(command, favoriteCommandPrefix):
		b.withVacancyID(s, command, favoriteCommandPrefix, b.toggleFavorite)
	case strings.HasPrefix(command, shareCommandPrefix):
		b.withVacancyID(s, command, shareCommandPrefix, b.shareVacancy)
	default:
		sendText(b.api, chatID, "Неизвестная команда!")
	}
}

func (b *Bot) handleInput(chatID int64, input string) {

	s := b.session(chatID)

	if s.OnUserInput(input) {
		return
	}

	if strings.TrimSpace(input) == "" {
		sendText(b.api, chatID, "Введите текст запроса.")
		return
	}
	s.viewModel.SubmitQuery(input)
}

func (b *Bot) session(chatID int64) *session {
	b.mu.Lock()
	defer b.mu.Unlock()

	s, ok := b.sessions[chatID]
	if !ok {
		s = newSession(b.ctx, b.api, chatID, b.deps.Searcher, b.deps.Filters, b.deps.Details,
			b.options.Search, b.options.ClickDebounce)
		b.sessions[chatID] = s
	}
	return s
}

func (b *Bot) existingSession(owner string) *session {
	chatID, err := strconv.ParseInt(owner, 10, 64)
	if err != nil {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sessions[chatID]
}

// withVacancyID runs a click-initiated action for commands like /vacancy_123, dropping repeated taps.
func (b *Bot) withVacancyID(s *session, command string, prefix string, action func(*session, models.VacancyID)) {
	id := models.ParseVacancyID(strings.TrimPrefix(command, prefix))
	if !id.Valid() {
		sendText(b.api, s.chatID, "Неверный идентификатор вакансии.")
		return
	}

	if !s.clickGuard.Allow() {
		return
	}
	action(s, id)
}

func (b *Bot) loadDetails(s *session, id models.VacancyID) (services.DetailsResponse, bool) {
	response := <-b.deps.Details.GetDetails(b.ctx, s.owner(), id)
	if response.Err == nil {
		return response, true
	}

	switch models.ErrorTypeOf(response.Err) {
	case models.ErrorTypeNothingFound:
		sendText(b.api, s.chatID, "Вакансия не найдена.")
	case models.ErrorTypeConnectionProblem:
		sendText(b.api, s.chatID, "Нет соединения с сервером. Повторите попытку позже.")
	default:
		sendText(b.api, s.chatID, "Ошибка сервера. Повторите попытку позже.")
	}
	return response, false
}

func (b *Bot) showVacancy(s *session, id models.VacancyID) {
	response, ok := b.loadDetails(s, id)
	if !ok {
		return
	}

	isFavorite, err := b.deps.Details.IsFavorite(b.ctx, s.owner(), id)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to check favorite %v: %v", id, err)
	}

	text := renderDetails(*response.Details, isFavorite, response.Offline) +
		"\nПоделиться: /" + shareCommandPrefix + id.String()
	sendText(b.api, s.chatID, text)
}

func (b *Bot) toggleFavorite(s *session, id models.VacancyID) {
	response, ok := b.loadDetails(s, id)
	if !ok {
		return
	}

	if _, err := b.deps.Details.ToggleFavorite(b.ctx, s.owner(), *response.Details); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to toggle favorite %v: %v", id, err)
		sendText(b.api, s.chatID, "Внутренняя ошибка!")
	}
}

func (b *Bot) shareVacancy(s *session, id models.VacancyID) {
	response, ok := b.loadDetails(s, id)
	if !ok {
		return
	}
	sendText(b.api, s.chatID, services.ShareText(*response.Details))
}

func (b *Bot) showFavorites(s *session) {
	favorites, err := b.deps.Details.Favorites(b.ctx, s.owner())
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to list favorites: %v", err)
		sendText(b.api, s.chatID, "Внутренняя ошибка!")
		return
	}
	sendText(b.api, s.chatID, renderFavorites(favorites))
}

func (b *Bot) clearFilters(s *session) {
	if err := b.deps.Filters.Reset(b.ctx, s.owner()); err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to clear filters: %v", err)
		sendText(b.api, s.chatID, "Внутренняя ошибка!")
		return
	}
	sendText(b.api, s.chatID, "Фильтры сброшены.")
}

func (b *Bot) onFiltersApplied(event events.FiltersApplied) {
	if s := b.existingSession(event.Owner); s != nil {
		s.viewModel.ApplyFilters()
	}
}

func (b *Bot) onFavoritesChanged(event events.FavoritesChanged) {
	s := b.existingSession(event.Owner)
	if s == nil {
		return
	}

	text := fmt.Sprintf("Вакансия %v удалена из избранного.", event.VacancyID)
	if event.Added {
		text = fmt.Sprintf("Вакансия %v добавлена в избранное.", event.VacancyID)
	}
	sendText(b.api, s.chatID, text)
}

func defaultReplyKeyboard() botApi.ReplyKeyboardMarkup {
	return botApi.NewReplyKeyboard(
		botApi.NewKeyboardButtonRow(
			botApi.NewKeyboardButton(filtersCommandName),
			botApi.NewKeyboardButton(favoritesCommandName),
		),
	)
}

func showMoreKeyboard() botApi.ReplyKeyboardMarkup {
	return botApi.NewReplyKeyboard(
		botApi.NewKeyboardButtonRow(
			botApi.NewKeyboardButton(showMoreCommandName),
		),
		botApi.NewKeyboardButtonRow(
			botApi.NewKeyboardButton(filtersCommandName),
			botApi.NewKeyboardButton(favoritesCommandName),
		),
	)
}
