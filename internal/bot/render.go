package bot

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/maxaizer/hh-vacancy-search/internal/domain/models"
	"github.com/maxaizer/hh-vacancy-search/internal/search"
	"github.com/microcosm-cc/bluemonday"
	"github.com/samber/lo"
)

const (
	showMoreCommandName = "Показать ещё"
	maxDescriptionRunes = 3000
)

var (
	strictPolicy   = bluemonday.StrictPolicy()
	lineBreakTags  = regexp.MustCompile(`(?i)<br\s*/?>|</p>|</li>|</h[1-6]>|</div>`)
	listItemTags   = regexp.MustCompile(`(?i)<li[^>]*>`)
	extraLineBreak = regexp.MustCompile(`\n{3,}`)
)

// descriptionToText turns the vacancy HTML description into plain chat text keeping paragraphs
// and list items readable.
func descriptionToText(description string) string {
	text := lineBreakTags.ReplaceAllString(description, "\n")
	text = listItemTags.ReplaceAllString(text, "• ")
	text = html.UnescapeString(strictPolicy.Sanitize(text))
	text = extraLineBreak.ReplaceAllString(text, "\n\n")
	text = strings.TrimSpace(text)

	runes := []rune(text)
	if len(runes) > maxDescriptionRunes {
		text = strings.TrimSpace(string(runes[:maxDescriptionRunes])) + "…"
	}
	return text
}

// renderState returns the chat text for a search state, or an empty string when the state
// needs no message of its own. Vacancies listed in favorites are marked.
func renderState(state search.State, favorites []models.VacancyID) string {
	switch state.Kind {
	case search.KindLoading:
		return "Ищем вакансии..."
	case search.KindNewSearchResult:
		return fmt.Sprintf("Найдено вакансий: %d\n\n%s", state.Found, renderVacancyList(state.LastPage(), favorites))
	case search.KindNextPageSearchResult:
		if state.Appended == 0 {
			return "Больше вакансий нет."
		}
		return renderVacancyList(state.LastPage(), favorites)
	case search.KindNothingFound:
		return "По вашему запросу ничего не найдено."
	case search.KindInternetError:
		return "Нет соединения с сервером. Проверьте подключение и повторите поиск."
	case search.KindServerError:
		return "Ошибка сервера. Повторите поиск позже."
	default:
		return ""
	}
}

func renderToast(event search.ToastEvent) string {
	if event.ErrorType == models.ErrorTypeConnectionProblem {
		return "Не удалось загрузить следующую страницу: нет соединения. Нажмите \"" + showMoreCommandName +
			"\", чтобы повторить."
	}
	return "Не удалось загрузить следующую страницу: ошибка сервера. Нажмите \"" + showMoreCommandName +
		"\", чтобы повторить."
}

func renderVacancyList(items []models.VacancyFromList, favorites []models.VacancyID) string {
	var sb strings.Builder
	for i, item := range items {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(renderVacancySummary(item, lo.Contains(favorites, item.ID)))
	}
	return sb.String()
}

func renderVacancySummary(item models.VacancyFromList, isFavorite bool) string {
	var sb strings.Builder
	sb.WriteString("• " + item.Name)
	if isFavorite {
		sb.WriteString(" ⭐")
	}
	sb.WriteString("\n")
	sb.WriteString(item.Salary.Format())

	for _, part := range []string{item.EmployerName, item.AreaName} {
		if part != "" {
			sb.WriteString(" · " + part)
		}
	}

	if item.ID.Valid() {
		sb.WriteString("\n/vacancy_" + item.ID.String())
	}
	return sb.String()
}

func renderDetails(details models.VacancyDetails, isFavorite bool, offline bool) string {
	var sb strings.Builder

	if offline {
		sb.WriteString("Нет соединения, показана сохранённая копия.\n\n")
	}

	sb.WriteString(details.Name)
	if isFavorite {
		sb.WriteString(" ⭐")
	}
	sb.WriteString("\n" + details.Salary.Format() + "\n")

	if details.EmployerName != nil {
		sb.WriteString("Компания: " + *details.EmployerName + "\n")
	}
	if location := details.Location(); location != "" {
		sb.WriteString("Адрес: " + location + "\n")
	}
	if details.Experience != nil {
		sb.WriteString("Опыт: " + *details.Experience + "\n")
	}
	if details.Schedule != nil {
		sb.WriteString("График: " + *details.Schedule + "\n")
	}

	if description := descriptionToText(details.Description); description != "" {
		sb.WriteString("\n" + description + "\n")
	}

	if len(details.KeySkills) > 0 {
		sb.WriteString("\nКлючевые навыки: " + strings.Join(details.KeySkills, ", ") + "\n")
	}

	if details.AlternateURL != "" {
		sb.WriteString("\n" + details.AlternateURL + "\n")
	}

	if details.ID.Valid() {
		if isFavorite {
			sb.WriteString("\nУбрать из избранного: /fav_" + details.ID.String())
		} else {
			sb.WriteString("\nДобавить в избранное: /fav_" + details.ID.String())
		}
	}

	return strings.TrimSpace(sb.String())
}

func renderFavorites(favorites []models.VacancyDetails) string {
	if len(favorites) == 0 {
		return "В избранном пока пусто."
	}

	var sb strings.Builder
	sb.WriteString("Избранное:\n\n")
	for i, favorite := range favorites {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(renderVacancySummary(favorite.Summary(), true))
	}
	return sb.String()
}

func renderFilters(filters models.FilterParameters) string {
	if filters.IsEmpty() {
		return "Фильтры не заданы."
	}

	var lines []string
	if filters.Country != nil {
		lines = append(lines, "Страна: "+filters.Country.Name)
	}
	if filters.Region != nil {
		lines = append(lines, "Регион: "+filters.Region.Name)
	}
	if filters.Industry != nil {
		lines = append(lines, "Отрасль: "+filters.Industry.Name)
	}
	if filters.SalaryFrom != nil || filters.SalaryTo != nil {
		salary := models.Salary{Currency: filters.Currency, From: filters.SalaryFrom, To: filters.SalaryTo}
		lines = append(lines, "Зарплата: "+salary.Format())
	}
	if filters.OnlyWithSalary {
		lines = append(lines, "Только с указанной зарплатой")
	}
	if filters.Schedule != "" {
		lines = append(lines, "График: "+scheduleNames[filters.Schedule])
	}
	return "Текущие фильтры:\n" + strings.Join(lines, "\n")
}
