package models

import "github.com/museum-catalog/museum-backend/src/i18n"

type PeriodModel struct {
	ID          uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        i18n.Text `json:"name" gorm:"embedded;embeddedPrefix:name_"`
	StartYear   *int      `json:"start_year"`
	EndYear     *int      `json:"end_year"`
	Description i18n.Text `json:"description" gorm:"embedded;embeddedPrefix:description_"`
}
