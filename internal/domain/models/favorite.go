package models

import (
	"encoding/json"
	"time"
)

// FavoriteVacancy is the stored form of a vacancy the owner has starred. The whole details object is
// kept as JSON so the vacancy can still be shown when the API is unreachable.
type FavoriteVacancy struct {
	Owner     string    `gorm:"primaryKey"`
	VacancyID VacancyID `gorm:"primaryKey;autoIncrement:false"`
	Name      string
	Details   []byte
	CreatedAt time.Time `gorm:"index"`
}

func NewFavoriteVacancy(owner string, details VacancyDetails) (FavoriteVacancy, error) {
	data, err := json.Marshal(details)
	if err != nil {
		return FavoriteVacancy{}, err
	}
	return FavoriteVacancy{Owner: owner, VacancyID: details.ID, Name: details.Name, Details: data}, nil
}

func (f FavoriteVacancy) ToDetails() (VacancyDetails, error) {
	var details VacancyDetails
	err := json.Unmarshal(f.Details, &details)
	return details, err
}

// ArbitraryData is a key/value row for small JSON documents such as saved filters.
type ArbitraryData struct {
	ID    string `gorm:"primaryKey"`
	Value []byte
}
