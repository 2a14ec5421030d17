package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/museum-catalog/museum-backend/src/i18n"
	"github.com/museum-catalog/museum-backend/src/identity"
)

type ArtifactModel struct {
	ID                uuid.UUID            `json:"id" gorm:"type:uuid;primaryKey"`
	InventoryNumber   string               `json:"inventory_number" gorm:"type:varchar(50);uniqueIndex;not null"`
	Name              i18n.Text            `json:"name" gorm:"embedded;embeddedPrefix:name_"`
	Description       i18n.Text            `json:"description" gorm:"embedded;embeddedPrefix:description_"`
	HistoricalContext i18n.Text            `json:"historical_context" gorm:"embedded;embeddedPrefix:historical_context_"`
	Technique         i18n.Text            `json:"technique" gorm:"embedded;embeddedPrefix:technique_"`
	Material          i18n.Text            `json:"material" gorm:"embedded;embeddedPrefix:material_"`
	Dimensions        string               `json:"dimensions" gorm:"type:varchar(100)"`
	Weight            *string              `json:"weight" gorm:"type:varchar(50)"`
	CollectionID      uint                 `json:"collection_id" gorm:"not null;index"`
	Collection        CollectionModel      `json:"collection" gorm:"foreignKey:CollectionID;references:ID"`
	PeriodID          *uint                `json:"period_id" gorm:"index"`
	Period            *PeriodModel         `json:"period,omitempty" gorm:"foreignKey:PeriodID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	CultureID         *uint                `json:"culture_id" gorm:"index"`
	Culture           *CultureModel        `json:"culture,omitempty" gorm:"foreignKey:CultureID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
	MainImage         string               `json:"main_image" gorm:"type:varchar(255)"`
	QRCode            string               `json:"qr_code" gorm:"column:qr_code;type:varchar(255)"`
	AcquisitionDate   *time.Time           `json:"acquisition_date"`
	AcquisitionMethod i18n.Text            `json:"acquisition_method" gorm:"embedded;embeddedPrefix:acquisition_method_"`
	IsFeatured        bool                 `json:"is_featured" gorm:"not null;index"`
	IsOnDisplay       bool                 `json:"is_on_display" gorm:"not null;index"`
	DisplayLocation   *string              `json:"display_location" gorm:"type:varchar(100)"`
	AdditionalImages  []ArtifactImageModel `json:"additional_images,omitempty" gorm:"foreignKey:ArtifactID;constraint:OnDelete:CASCADE;"`
	AudioGuides       []AudioGuideModel    `json:"audio_guides,omitempty" gorm:"foreignKey:ArtifactID;constraint:OnDelete:CASCADE;"`
	Videos            []VideoModel         `json:"videos,omitempty" gorm:"foreignKey:ArtifactID;constraint:OnDelete:CASCADE;"`
	CreatedAt         time.Time            `json:"created_at" gorm:"index"`
	UpdatedAt         time.Time            `json:"updated_at"`
}

// BeforeCreate mints the identifier when the caller has not done so already.
// An identifier that is already set is never replaced.
func (a *ArtifactModel) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = identity.Mint()
	}
	return nil
}
