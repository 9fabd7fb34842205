package bot

import (
	"strings"

	botApi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/maxaizer/hh-vacancy-search/internal/domain/models"
)

var scheduleNames = map[models.Schedule]string{
	models.FullDay:     "Полный день",
	models.Shift:       "Сменный график",
	models.Flexible:    "Гибкий график",
	models.Remote:      "Удалённая работа",
	models.FlyInFlyOut: "Вахтовый метод",
}

var scheduleOrder = []models.Schedule{models.FullDay, models.Shift, models.Flexible, models.Remote, models.FlyInFlyOut}

type scheduleInput struct {
	chatID   int64
	onFinish func(schedule models.Schedule)
}

func newScheduleInput(chatID int64, onFinish func(schedule models.Schedule)) *scheduleInput {
	return &scheduleInput{chatID: chatID, onFinish: onFinish}
}

func (a *scheduleInput) InitMessage() botApi.Chattable {
	var rows [][]botApi.KeyboardButton
	for _, schedule := range scheduleOrder {
		rows = append(rows, botApi.NewKeyboardButtonRow(botApi.NewKeyboardButton(scheduleNames[schedule])))
	}

	msg := botApi.NewMessage(a.chatID, "Выберите график работы.")
	msg.ReplyMarkup = keyboardWithSkip(rows...)
	return msg
}

func (a *scheduleInput) HandleInput(input string) botApi.Chattable {

	if input == skipInput {
		a.onFinish("")
		return nil
	}

	for schedule, name := range scheduleNames {
		if strings.EqualFold(name, input) {
			a.onFinish(schedule)
			return nil
		}
	}

	return botApi.NewMessage(a.chatID, "Неверный ввод.")
}
