package bot

import (
	"context"
	"strconv"
	"sync"
	"time"

	botApi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/maxaizer/hh-vacancy-search/internal/debounce"
	"github.com/maxaizer/hh-vacancy-search/internal/domain/models"
	"github.com/maxaizer/hh-vacancy-search/internal/logger"
	"github.com/maxaizer/hh-vacancy-search/internal/search"
	"github.com/maxaizer/hh-vacancy-search/internal/serial"
	log "github.com/sirupsen/logrus"
)

type favoriteIDsSource interface {
	FavoriteIDs(ctx context.Context, owner string) ([]models.VacancyID, error)
}

// session is everything the bot keeps for one chat: its search state machine and the dialog
// that is currently collecting input, if any. Incoming messages of the chat go through inbox
// and are handled one by one in arrival order.
type session struct {
	mu             sync.Mutex
	ctx            context.Context
	api            apiInterface
	chatID         int64
	inbox          *serial.Queue
	favorites      favoriteIDsSource
	viewModel      *search.ViewModel
	clickGuard     *debounce.ClickGuard
	curCommand     command
	curCommandName string
	unsubscribe    []func()
}

func newSession(ctx context.Context, api apiInterface, chatID int64, searcher search.Searcher,
	filters search.FiltersLoader, favorites favoriteIDsSource, options search.Options,
	clickDebounce time.Duration) *session {

	s := &session{
		ctx:        ctx,
		api:        api,
		chatID:     chatID,
		inbox:      serial.NewQueue(),
		favorites:  favorites,
		clickGuard: debounce.NewClickGuard(clickDebounce),
	}
	s.viewModel = search.NewViewModel(ctx, searcher, filters, s.owner(), options)
	s.unsubscribe = append(s.unsubscribe,
		s.viewModel.Subscribe(s.onStateChanged),
		s.viewModel.SubscribeToasts(s.onToast),
	)
	return s
}

func (s *session) owner() string {
	return strconv.FormatInt(s.chatID, 10)
}

func (s *session) RunCommand(command command, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.curCommand = command
	s.curCommandName = name
	s.curCommand.WithFinishCallback(func() {
		s.curCommand = nil
		s.curCommandName = ""
	})
	s.curCommand.WithKeyboardOnFinalMessage(defaultReplyKeyboard())
	s.curCommand.Run()
}

func (s *session) CancelCommand() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.curCommand = nil
	s.curCommandName = ""
}

// OnUserInput forwards the input to the running dialog and reports whether there was one.
func (s *session) OnUserInput(input string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.curCommand == nil {
		return false
	}
	s.curCommand.OnUserInput(input)
	return true
}

func (s *session) Close() {
	s.inbox.Close()
	for _, unsubscribe := range s.unsubscribe {
		unsubscribe()
	}
	s.viewModel.Close()
}

func (s *session) favoriteIDs(state search.State) []models.VacancyID {
	if s.favorites == nil || len(state.LastPage()) == 0 {
		return nil
	}

	ids, err := s.favorites.FavoriteIDs(s.ctx, s.owner())
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Errorf("failed to load favorites of %s: %v",
			s.owner(), err)
	}
	return ids
}

func (s *session) onStateChanged(state search.State) {
	text := renderState(state, s.favoriteIDs(state))
	if text == "" {
		return
	}

	msg := botApi.NewMessage(s.chatID, text)
	if state.HasItems() && len(state.Items) < state.Found && !(state.Kind == search.KindNextPageSearchResult &&
		state.Appended == 0) {
		msg.ReplyMarkup = showMoreKeyboard()
	} else {
		msg.ReplyMarkup = defaultReplyKeyboard()
	}
	_, _ = sendWithLogError(s.api, msg)
}

func (s *session) onToast(event search.ToastEvent) {
	msg := botApi.NewMessage(s.chatID, renderToast(event))
	msg.ReplyMarkup = showMoreKeyboard()
	_, _ = sendWithLogError(s.api, msg)
}
