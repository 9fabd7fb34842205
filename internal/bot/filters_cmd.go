package bot

import (
	"context"
	"strconv"

	botApi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/maxaizer/hh-vacancy-search/internal/domain/models"
	"github.com/maxaizer/hh-vacancy-search/internal/logger"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	filtersCommandName = "Фильтры"
	defaultCurrency    = "RUR"
)

type filtersCommand struct {
	api                  apiInterface
	chatID               int64
	filters              filtersService
	inputHandlers        []inputHandler
	curHandlerIndex      int
	result               models.FilterParameters
	finishCallback       func()
	finalMessageKeyboard *botApi.ReplyKeyboardMarkup
}

func newFiltersCommand(api apiInterface, chatID int64, filters filtersService, areas areaRepository,
	industries industryRepository) *filtersCommand {

	cmd := &filtersCommand{api: api, chatID: chatID, filters: filters}

	country := newCountryInput(chatID, areas, func(country *models.Area) {
		cmd.result = cmd.result.WithCountry(country)
		cmd.curHandlerIndex++
	})

	region := newRegionInput(chatID, areas, func() *models.Area { return cmd.result.Country },
		func(region *models.Area) {
			cmd.result.Region = region
			cmd.curHandlerIndex++
		})

	industry := newIndustryInput(chatID, industries, func(industry *models.Industry) {
		cmd.result.Industry = industry
		cmd.curHandlerIndex++
	})

	salary := newSalaryInput(chatID, func(from *int, to *int) {
		cmd.result.SalaryFrom = from
		cmd.result.SalaryTo = to
		cmd.result.Currency = ""
		if from != nil || to != nil {
			cmd.result.Currency = defaultCurrency
		}
		cmd.curHandlerIndex++
	})

	onlyWithSalary := newOnlyWithSalaryInput(chatID, func(input string) {
		cmd.result.OnlyWithSalary = input == yesAnswer
		cmd.curHandlerIndex++
	})

	schedule := newScheduleInput(chatID, func(schedule models.Schedule) {
		cmd.result.Schedule = schedule
		cmd.curHandlerIndex++
	})

	cmd.inputHandlers = []inputHandler{country, region, industry, salary, onlyWithSalary, schedule}
	return cmd
}

func (c *filtersCommand) WithFinishCallback(callback func()) {
	c.finishCallback = callback
}

func (c *filtersCommand) WithKeyboardOnFinalMessage(keyboard botApi.ReplyKeyboardMarkup) {
	c.finalMessageKeyboard = &keyboard
}

func (c *filtersCommand) Run() {
	current, err := c.filters.Load(context.Background(), c.owner())
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Error(err)
	} else {
		sendText(c.api, c.chatID, renderFilters(current))
	}

	_, _ = sendWithLogError(c.api, c.inputHandlers[0].InitMessage())
}

func (c *filtersCommand) OnUserInput(input string) {

	previousIndex := c.curHandlerIndex
	msg := c.inputHandlers[c.curHandlerIndex].HandleInput(input)

	handlerChanged := previousIndex != c.curHandlerIndex
	allHandlersFinished := c.curHandlerIndex >= len(c.inputHandlers)

	if !handlerChanged {
		_, _ = sendWithLogError(c.api, msg)
		return
	}

	if !allHandlersFinished {
		_, _ = sendWithLogError(c.api, c.inputHandlers[c.curHandlerIndex].InitMessage())
		return
	}

	c.applyFilters()
	if c.finishCallback != nil {
		c.finishCallback()
	}
}

func (c *filtersCommand) applyFilters() {

	msg := botApi.NewMessage(c.chatID, "")
	if c.finalMessageKeyboard != nil {
		msg.ReplyMarkup = c.finalMessageKeyboard
	}

	if err := c.filters.Apply(context.Background(), c.owner(), c.result); err != nil {
		if errors.Is(err, models.ErrSalaryRange) {
			msg.Text = "Минимальная зарплата больше максимальной, фильтры не сохранены."
		} else {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Error(err)
			msg.Text = "Внутренняя ошибка!"
		}
		_, _ = sendWithLogError(c.api, msg)
		return
	}

	msg.Text = "Фильтры применены!\n" + renderFilters(c.result)
	_, _ = sendWithLogError(c.api, msg)
}

func (c *filtersCommand) owner() string {
	return strconv.FormatInt(c.chatID, 10)
}

const (
	yesAnswer = "Да"
	noAnswer  = "Нет"
)

func newOnlyWithSalaryInput(chatID int64, onFinish func(input string)) *textInput {
	input := newTextInput(chatID, "Показывать только вакансии с указанной зарплатой?", onFinish)
	input.WithKeyboard(botApi.NewReplyKeyboard(
		botApi.NewKeyboardButtonRow(
			botApi.NewKeyboardButton(yesAnswer),
			botApi.NewKeyboardButton(noAnswer),
		),
		botApi.NewKeyboardButtonRow(botApi.NewKeyboardButton(backToMenuCommandName)),
	))
	input.AddValidation(validation{
		function:     func(input string) bool { return input == yesAnswer || input == noAnswer },
		errorMessage: "Ответьте \"Да\" или \"Нет\"",
	})
	return input
}
