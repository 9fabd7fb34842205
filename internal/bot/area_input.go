package bot

import (
	"context"

	botApi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/maxaizer/hh-vacancy-search/internal/domain/models"
	"github.com/maxaizer/hh-vacancy-search/internal/logger"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

type countryInput struct {
	chatID   int64
	areas    areaRepository
	onFinish func(country *models.Area)
}

func newCountryInput(chatID int64, areas areaRepository, onFinish func(country *models.Area)) *countryInput {
	return &countryInput{chatID: chatID, areas: areas, onFinish: onFinish}
}

const maxCountryButtons = 6

func (a *countryInput) InitMessage() botApi.Chattable {
	names := []string{"Россия", "Казахстан", "Беларусь"}

	countries, err := a.areas.Countries(context.Background())
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Error(err)
	} else if len(countries) > 0 {
		names = lo.Map(lo.Slice(countries, 0, maxCountryButtons), func(c models.Area, _ int) string { return c.Name })
	}

	var rows [][]botApi.KeyboardButton
	for _, chunk := range lo.Chunk(names, 3) {
		rows = append(rows, botApi.NewKeyboardButtonRow(lo.Map(chunk, func(name string, _ int) botApi.KeyboardButton {
			return botApi.NewKeyboardButton(name)
		})...))
	}

	msg := botApi.NewMessage(a.chatID, "Введите страну поиска.")
	msg.ReplyMarkup = keyboardWithSkip(rows...)
	return msg
}

func (a *countryInput) HandleInput(input string) botApi.Chattable {

	if input == skipInput {
		a.onFinish(nil)
		return nil
	}

	area, err := a.areas.GetByName(context.Background(), input)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Error(err)
		return botApi.NewMessage(a.chatID, "Внутренняя ошибка.")
	}
	if area == nil || !area.IsCountry() {
		return botApi.NewMessage(a.chatID, "Страна не найдена.")
	}

	a.onFinish(area)
	return nil
}

// regionInput accepts a direct subdivision of the selected country, or any non-country area
// when no country was selected.
type regionInput struct {
	chatID   int64
	areas    areaRepository
	country  func() *models.Area
	onFinish func(region *models.Area)
}

func newRegionInput(chatID int64, areas areaRepository, country func() *models.Area,
	onFinish func(region *models.Area)) *regionInput {
	return &regionInput{chatID: chatID, areas: areas, country: country, onFinish: onFinish}
}

func (a *regionInput) InitMessage() botApi.Chattable {
	msg := botApi.NewMessage(a.chatID, "Введите регион поиска.")
	msg.ReplyMarkup = keyboardWithSkip(
		botApi.NewKeyboardButtonRow(
			botApi.NewKeyboardButton("Москва"),
			botApi.NewKeyboardButton("Санкт-Петербург"),
		),
		botApi.NewKeyboardButtonRow(
			botApi.NewKeyboardButton("Новосибирская область"),
			botApi.NewKeyboardButton("Свердловская область"),
		),
	)
	return msg
}

func (a *regionInput) HandleInput(input string) botApi.Chattable {

	if input == skipInput {
		a.onFinish(nil)
		return nil
	}

	var region *models.Area
	var err error

	if country := a.country(); country != nil {
		region, err = a.areas.GetRegionByName(context.Background(), country.ID, input)
	} else {
		region, err = a.areas.GetByName(context.Background(), input)
	}

	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Error(err)
		return botApi.NewMessage(a.chatID, "Внутренняя ошибка.")
	}
	if region == nil || region.IsCountry() {
		return botApi.NewMessage(a.chatID, "Регион не найден.")
	}

	a.onFinish(region)
	return nil
}
