// Package mapper converts hh.ru wire DTOs into domain models. All functions are pure and safe to
// call from any goroutine.
package mapper

import (
	"github.com/maxaizer/hh-vacancy-search/internal/clients/hh"
	"github.com/maxaizer/hh-vacancy-search/internal/domain/models"
	"github.com/samber/lo"
)

func ToVacancySummary(dto hh.VacancyFromListDto) models.VacancyFromList {
	return models.VacancyFromList{
		ID:              models.ParseVacancyID(dto.ID),
		Name:            dto.Name,
		Salary:          toSalary(dto.Salary),
		AreaName:        dto.Area.Name,
		EmployerName:    dto.Employer.Name,
		EmployerLogoURL: logo240(&dto.Employer),
	}
}

func ToVacancySummaries(dtos []hh.VacancyFromListDto) []models.VacancyFromList {
	return lo.Map(dtos, func(dto hh.VacancyFromListDto, _ int) models.VacancyFromList {
		return ToVacancySummary(dto)
	})
}

func ToVacancyDetails(dto hh.VacancyDetailsDto) models.VacancyDetails {
	details := models.VacancyDetails{
		ID:              models.ParseVacancyID(dto.ID),
		Name:            dto.Name,
		Salary:          toSalary(dto.Salary),
		AreaName:        dto.Area.Name,
		EmployerLogoURL: logo240(dto.Employer),
		Experience:      namePtr(dto.Experience),
		Schedule:        namePtr(dto.Schedule),
		Description:     dto.Description,
		KeySkills: lo.Map(dto.KeySkills, func(skill hh.KeySkillDto, _ int) string {
			return skill.Name
		}),
		Address:      toAddress(dto.Address),
		AlternateURL: dto.AlternateURL,
	}

	if dto.Employer != nil {
		name := dto.Employer.Name
		details.EmployerName = &name
	}

	return details
}

func ToSearchResult(response hh.VacanciesResponse) models.VacanciesSearchResult {
	return models.VacanciesSearchResult{
		Items: ToVacancySummaries(response.Items),
		Found: response.Found,
		Page:  response.Page,
		Pages: response.Pages,
	}
}

func ToArea(area hh.Area) models.Area {
	return models.NewArea(area.ID, area.ParentID, area.Name)
}

func ToIndustry(industry hh.Industry) models.Industry {
	return models.NewIndustry(industry.ID, industry.ParentID, industry.Name)
}

func toSalary(dto *hh.SalaryDto) *models.Salary {
	if dto == nil {
		return nil
	}
	return &models.Salary{
		Currency: dto.Currency,
		From:     dto.From,
		To:       dto.To,
	}
}

func toAddress(dto *hh.AddressDto) *models.Address {
	if dto == nil {
		return nil
	}
	return &models.Address{
		City:     dto.City,
		Street:   dto.Street,
		Building: dto.Building,
	}
}

func logo240(employer *hh.EmployerDto) *string {
	if employer == nil || employer.LogoUrls == nil {
		return nil
	}
	return employer.LogoUrls.Logo240
}

func namePtr(dto *hh.NamedDto) *string {
	if dto == nil {
		return nil
	}
	name := dto.Name
	return &name
}
