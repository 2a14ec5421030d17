package models

import "github.com/museum-catalog/museum-backend/src/i18n"

type CultureModel struct {
	ID          uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        i18n.Text `json:"name" gorm:"embedded;embeddedPrefix:name_"`
	Description i18n.Text `json:"description" gorm:"embedded;embeddedPrefix:description_"`
}
