package models

import (
	"fmt"
	"strings"
)

type Salary struct {
	Currency string
	From     *int
	To       *int
}

var currencySymbols = map[string]string{
	"RUR": "₽",
	"RUB": "₽",
	"USD": "$",
	"EUR": "€",
	"KZT": "₸",
	"BYR": "Br",
	"UAH": "₴",
	"UZS": "сум",
	"GEL": "₾",
	"AZN": "₼",
	"KGS": "сом",
}

const salaryNotSpecified = "Зарплата не указана"

func (s *Salary) Format() string {
	if s == nil || (s.From == nil && s.To == nil) {
		return salaryNotSpecified
	}

	currency := s.Currency
	if symbol, ok := currencySymbols[strings.ToUpper(currency)]; ok {
		currency = symbol
	}

	var text string
	switch {
	case s.From != nil && s.To != nil:
		text = "от " + formatNumber(*s.From) + " до " + formatNumber(*s.To)
	case s.From != nil:
		text = "от " + formatNumber(*s.From)
	default:
		text = "до " + formatNumber(*s.To)
	}

	if currency == "" {
		return text
	}
	return text + " " + currency
}

// formatNumber groups thousands with spaces: 150000 -> "150 000".
func formatNumber(num int) string {
	if num < 0 {
		return "-" + formatNumber(-num)
	}
	if num >= 1000 {
		return formatNumber(num/1000) + " " + fmt.Sprintf("%03d", num%1000)
	}
	return fmt.Sprintf("%d", num)
}
