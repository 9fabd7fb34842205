package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/maxaizer/hh-vacancy-search/internal/logger"
	log "github.com/sirupsen/logrus"
)

type apiInterface interface {
	Send(chattable tgbotapi.Chattable) (tgbotapi.Message, error)
}

// command is a multi-step dialog that consumes the user's plain text until it finishes.
type command interface {
	WithKeyboardOnFinalMessage(tgbotapi.ReplyKeyboardMarkup)
	WithFinishCallback(func())
	Run()
	OnUserInput(input string)
}

func sendWithLogError(api apiInterface, chattable tgbotapi.Chattable) (tgbotapi.Message, error) {
	msg, err := api.Send(chattable)
	if err != nil {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeTgApi).
			Errorf("error occured while sending message: %v", err)
	}
	return msg, err
}

func sendText(api apiInterface, chatID int64, text string) {
	_, _ = sendWithLogError(api, tgbotapi.NewMessage(chatID, text))
}
