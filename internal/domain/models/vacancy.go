package models

import (
	"strconv"
	"strings"
)

// VacancyID identifies a vacancy on hh.ru. InvalidVacancyID marks an identifier
// that could not be parsed and must never be used to fetch or store a vacancy.
type VacancyID int64

const InvalidVacancyID VacancyID = -1

func ParseVacancyID(s string) VacancyID {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id < 0 {
		return InvalidVacancyID
	}
	return VacancyID(id)
}

func (id VacancyID) Valid() bool {
	return id >= 0
}

func (id VacancyID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

type VacancyFromList struct {
	ID              VacancyID
	Name            string
	Salary          *Salary
	AreaName        string
	EmployerName    string
	EmployerLogoURL *string
}

type VacancyDetails struct {
	ID              VacancyID
	Name            string
	Salary          *Salary
	AreaName        string
	EmployerName    *string
	EmployerLogoURL *string
	Experience      *string
	Schedule        *string
	Description     string
	KeySkills       []string
	Address         *Address
	AlternateURL    string
}

// Summary is used for favorites listing where only the short form is shown.
func (v VacancyDetails) Summary() VacancyFromList {
	employer := ""
	if v.EmployerName != nil {
		employer = *v.EmployerName
	}
	return VacancyFromList{
		ID:              v.ID,
		Name:            v.Name,
		Salary:          v.Salary,
		AreaName:        v.AreaName,
		EmployerName:    employer,
		EmployerLogoURL: v.EmployerLogoURL,
	}
}

// Location prefers the street address and falls back to the area name.
func (v VacancyDetails) Location() string {
	if v.Address != nil {
		if address := v.Address.String(); address != "" {
			return address
		}
	}
	return v.AreaName
}

type Address struct {
	City     *string
	Street   *string
	Building *string
}

func (a Address) String() string {
	var parts []string
	for _, part := range []*string{a.City, a.Street, a.Building} {
		if part != nil && *part != "" {
			parts = append(parts, *part)
		}
	}
	return strings.Join(parts, ", ")
}

type VacanciesSearchResult struct {
	Items []VacancyFromList
	Found int
	Page  int
	Pages int
}
