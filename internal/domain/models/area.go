package models

import (
	"regexp"
	"strings"
)

type Area struct {
	ID             string `gorm:"primaryKey"`
	ParentID       string `gorm:"index"`
	Name           string
	NormalizedName string `gorm:"index"`
}

func NewArea(id, parentID, name string) Area {
	return Area{
		ID:             id,
		ParentID:       parentID,
		Name:           name,
		NormalizedName: NormalizeName(name),
	}
}

func (a Area) IsCountry() bool {
	return a.ParentID == ""
}

type Industry struct {
	ID             string `gorm:"primaryKey"`
	ParentID       string `gorm:"index"`
	Name           string
	NormalizedName string `gorm:"index"`
}

func NewIndustry(id, parentID, name string) Industry {
	return Industry{
		ID:             id,
		ParentID:       parentID,
		Name:           name,
		NormalizedName: NormalizeName(name),
	}
}

var nonWordRegexp = regexp.MustCompile(`[^\wа-яА-Я]+`)

// NormalizeName makes reference data lookups insensitive to case, ё/й and punctuation.
func NormalizeName(name string) string {
	str := strings.ToLower(name)
	str = strings.ReplaceAll(str, "ё", "е")
	str = strings.ReplaceAll(str, "й", "и")
	return nonWordRegexp.ReplaceAllString(str, "")
}
