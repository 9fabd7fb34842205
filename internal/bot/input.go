package bot

import botApi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

const skipInput = "Не указывать"

// inputHandler is one step of a dialog. HandleInput returns a reply when the input was rejected
// and calls its finish callback otherwise.
type inputHandler interface {
	InitMessage() botApi.Chattable
	HandleInput(input string) botApi.Chattable
}

func keyboardWithSkip(rows ...[]botApi.KeyboardButton) botApi.ReplyKeyboardMarkup {
	rows = append(rows,
		botApi.NewKeyboardButtonRow(botApi.NewKeyboardButton(skipInput)),
		botApi.NewKeyboardButtonRow(botApi.NewKeyboardButton(backToMenuCommandName)),
	)
	return botApi.NewReplyKeyboard(rows...)
}
