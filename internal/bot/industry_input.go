package bot

import (
	"context"

	botApi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/maxaizer/hh-vacancy-search/internal/domain/models"
	"github.com/maxaizer/hh-vacancy-search/internal/logger"
	log "github.com/sirupsen/logrus"
)

type industryInput struct {
	chatID     int64
	industries industryRepository
	onFinish   func(industry *models.Industry)
}

func newIndustryInput(chatID int64, industries industryRepository,
	onFinish func(industry *models.Industry)) *industryInput {
	return &industryInput{chatID: chatID, industries: industries, onFinish: onFinish}
}

func (a *industryInput) InitMessage() botApi.Chattable {
	msg := botApi.NewMessage(a.chatID, "Введите отрасль компании, например \"Информационные технологии\" "+
		"или \"Разработка программного обеспечения\".")
	msg.ReplyMarkup = keyboardWithSkip()
	return msg
}

func (a *industryInput) HandleInput(input string) botApi.Chattable {

	if input == skipInput {
		a.onFinish(nil)
		return nil
	}

	industry, err := a.industries.GetByName(context.Background(), input)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeDb).Error(err)
		return botApi.NewMessage(a.chatID, "Внутренняя ошибка.")
	}
	if industry == nil {
		return botApi.NewMessage(a.chatID, "Отрасль не найдена.")
	}

	a.onFinish(industry)
	return nil
}
