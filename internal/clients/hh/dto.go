package hh

type VacanciesResponse struct {
	Items   []VacancyFromListDto `json:"items"`
	Found   int                  `json:"found"`
	Pages   int                  `json:"pages"`
	Page    int                  `json:"page"`
	PerPage int                  `json:"per_page"`
}

type VacancyFromListDto struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Salary       *SalaryDto  `json:"salary"`
	Area         AreaDto     `json:"area"`
	Employer     EmployerDto `json:"employer"`
	AlternateURL string      `json:"alternate_url"`
}

type VacancyDetailsDto struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Salary       *SalaryDto    `json:"salary"`
	Area         AreaDto       `json:"area"`
	Employer     *EmployerDto  `json:"employer"`
	Experience   *NamedDto     `json:"experience"`
	Schedule     *NamedDto     `json:"schedule"`
	Description  string        `json:"description"`
	KeySkills    []KeySkillDto `json:"key_skills"`
	Address      *AddressDto   `json:"address"`
	AlternateURL string        `json:"alternate_url"`
}

type SalaryDto struct {
	From     *int   `json:"from"`
	To       *int   `json:"to"`
	Currency string `json:"currency"`
	Gross    *bool  `json:"gross"`
}

type AreaDto struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type EmployerDto struct {
	ID       *string      `json:"id"`
	Name     string       `json:"name"`
	LogoUrls *LogoUrlsDto `json:"logo_urls"`
}

type LogoUrlsDto struct {
	Logo90   *string `json:"90"`
	Logo240  *string `json:"240"`
	Original *string `json:"original"`
}

type NamedDto struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type KeySkillDto struct {
	Name string `json:"name"`
}

type AddressDto struct {
	City     *string `json:"city"`
	Street   *string `json:"street"`
	Building *string `json:"building"`
}
