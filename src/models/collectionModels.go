package models

import (
	"time"

	"github.com/museum-catalog/museum-backend/src/i18n"
)

type CollectionModel struct {
	ID          uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        i18n.Text `json:"name" gorm:"embedded;embeddedPrefix:name_"`
	Description i18n.Text `json:"description" gorm:"embedded;embeddedPrefix:description_"`
	Curator     i18n.Text `json:"curator" gorm:"embedded;embeddedPrefix:curator_"`
	Image       *string   `json:"image" gorm:"type:varchar(255)"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
