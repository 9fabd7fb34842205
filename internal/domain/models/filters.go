package models

import (
	"strconv"

	"github.com/go-playground/validator/v10"
)

// Search option keys understood by the vacancies repository. They match hh.ru query parameter
// names so the map can be passed to the API as is.
const (
	OptionText           = "text"
	OptionPage           = "page"
	OptionPerPage        = "per_page"
	OptionArea           = "area"
	OptionIndustry       = "industry"
	OptionSalaryFrom     = "salary"
	OptionSalaryTo       = "salary_to"
	OptionCurrency       = "currency"
	OptionOnlyWithSalary = "only_with_salary"
	OptionSchedule       = "schedule"
)

type Schedule string

const (
	FullDay     Schedule = "fullDay"
	Shift       Schedule = "shift"
	Flexible    Schedule = "flexible"
	Remote      Schedule = "remote"
	FlyInFlyOut Schedule = "flyInFlyOut"
)

type FilterParameters struct {
	Country        *Area     `json:"country,omitempty"`
	Region         *Area     `json:"region,omitempty"`
	Industry       *Industry `json:"industry,omitempty"`
	SalaryFrom     *int      `json:"salary_from,omitempty" validate:"omitempty,gte=0"`
	SalaryTo       *int      `json:"salary_to,omitempty" validate:"omitempty,gte=0"`
	Currency       string    `json:"currency,omitempty" validate:"omitempty,len=3,uppercase"`
	OnlyWithSalary bool      `json:"only_with_salary,omitempty"`
	Schedule       Schedule  `json:"schedule,omitempty" validate:"omitempty,oneof=fullDay shift flexible remote flyInFlyOut"`
}

var filtersValidator = validator.New()

func (f FilterParameters) Validate() error {
	if err := filtersValidator.Struct(f); err != nil {
		return err
	}
	if f.SalaryFrom != nil && f.SalaryTo != nil && *f.SalaryFrom > *f.SalaryTo {
		return ErrSalaryRange
	}
	return nil
}

func (f FilterParameters) IsEmpty() bool {
	return f.Country == nil && f.Region == nil && f.Industry == nil && f.SalaryFrom == nil &&
		f.SalaryTo == nil && !f.OnlyWithSalary && f.Schedule == ""
}

// WithCountry sets the country and drops a region that belongs to another country.
func (f FilterParameters) WithCountry(country *Area) FilterParameters {
	f.Country = country
	if country == nil || (f.Region != nil && f.Region.ParentID != country.ID) {
		f.Region = nil
	}
	return f
}

// Options flattens the filters into search option key/values. The region is more specific than
// the country so it wins the single area slot.
func (f FilterParameters) Options() map[string]string {
	options := make(map[string]string)

	if f.Region != nil {
		options[OptionArea] = f.Region.ID
	} else if f.Country != nil {
		options[OptionArea] = f.Country.ID
	}

	if f.Industry != nil {
		options[OptionIndustry] = f.Industry.ID
	}

	if f.SalaryFrom != nil {
		options[OptionSalaryFrom] = strconv.Itoa(*f.SalaryFrom)
	}

	if f.SalaryTo != nil {
		options[OptionSalaryTo] = strconv.Itoa(*f.SalaryTo)
	}

	if f.Currency != "" && (f.SalaryFrom != nil || f.SalaryTo != nil) {
		options[OptionCurrency] = f.Currency
	}

	if f.OnlyWithSalary {
		options[OptionOnlyWithSalary] = "true"
	}

	if f.Schedule != "" {
		options[OptionSchedule] = string(f.Schedule)
	}

	return options
}
