package bot

import (
	"regexp"
	"strconv"
	"strings"

	botApi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

var (
	salaryRangeRegexp = regexp.MustCompile(`^(\d+)\s*-\s*(\d+)$`)
	salaryFromRegexp  = regexp.MustCompile(`^(?:от\s*)?(\d+)$`)
	salaryToRegexp    = regexp.MustCompile(`^до\s*(\d+)$`)
)

type salaryInput struct {
	chatID   int64
	onFinish func(from *int, to *int)
}

func newSalaryInput(chatID int64, onFinish func(from *int, to *int)) *salaryInput {
	return &salaryInput{chatID: chatID, onFinish: onFinish}
}

func (a *salaryInput) InitMessage() botApi.Chattable {
	msg := botApi.NewMessage(a.chatID, "Введите желаемую зарплату в рублях: \"100000\", \"от 100000\", "+
		"\"до 200000\" или \"100000-200000\".")
	msg.ReplyMarkup = keyboardWithSkip()
	return msg
}

func (a *salaryInput) HandleInput(input string) botApi.Chattable {

	if input == skipInput {
		a.onFinish(nil, nil)
		return nil
	}

	from, to, ok := parseSalary(input)
	if !ok {
		return botApi.NewMessage(a.chatID, "Неверный ввод.")
	}
	if from != nil && to != nil && *from > *to {
		return botApi.NewMessage(a.chatID, "Минимальная зарплата больше максимальной.")
	}

	a.onFinish(from, to)
	return nil
}

func parseSalary(input string) (from *int, to *int, ok bool) {
	input = strings.ToLower(strings.Join(strings.Fields(input), " "))
	input = strings.ReplaceAll(input, "–", "-")

	atoi := func(s string) *int {
		value, err := strconv.Atoi(s)
		if err != nil {
			return nil
		}
		return &value
	}

	if m := salaryRangeRegexp.FindStringSubmatch(input); m != nil {
		from, to = atoi(m[1]), atoi(m[2])
		return from, to, from != nil && to != nil
	}
	if m := salaryFromRegexp.FindStringSubmatch(input); m != nil {
		from = atoi(m[1])
		return from, nil, from != nil
	}
	if m := salaryToRegexp.FindStringSubmatch(input); m != nil {
		to = atoi(m[1])
		return nil, to, to != nil
	}
	return nil, nil, false
}
