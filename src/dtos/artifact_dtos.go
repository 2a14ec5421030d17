package dtos

import (
	"time"

	"github.com/google/uuid"

	"github.com/museum-catalog/museum-backend/src/models"
)

// ArtifactListDTO is the row of the public artifact list.
type ArtifactListDTO struct {
	ID              uuid.UUID `json:"id"`
	InventoryNumber string    `json:"inventory_number"`
	QRCode          *string   `json:"qr_code"`
	Name            string    `json:"name"`
	MainImage       *string   `json:"main_image"`
	CollectionName  string    `json:"collection_name"`
	PeriodName      *string   `json:"period_name"`
	CultureName     *string   `json:"culture_name"`
	IsFeatured      bool      `json:"is_featured"`
	IsOnDisplay     bool      `json:"is_on_display"`
}

// ArtifactSearchDTO is the row of a search result.
type ArtifactSearchDTO struct {
	ID              uuid.UUID `json:"id"`
	InventoryNumber string    `json:"inventory_number"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	MainImage       *string   `json:"main_image"`
	CollectionName  string    `json:"collection_name"`
	IsFeatured      bool      `json:"is_featured"`
}

type FeaturedArtifactDTO struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Description    string    `json:"description"`
	MainImage      *string   `json:"main_image"`
	CollectionName string    `json:"collection_name"`
}

// ArtifactDetailDTO is the full public view returned by detail and scan lookups.
type ArtifactDetailDTO struct {
	ID                uuid.UUID       `json:"id"`
	InventoryNumber   string          `json:"inventory_number"`
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	HistoricalContext string          `json:"historical_context"`
	Technique         string          `json:"technique"`
	Dimensions        string          `json:"dimensions"`
	Weight            *string         `json:"weight"`
	Material          string          `json:"material"`
	MainImage         *string         `json:"main_image"`
	QRCode            *string         `json:"qr_code"`
	Collection        CollectionDTO   `json:"collection"`
	Period            *PeriodDTO      `json:"period"`
	Culture           *CultureDTO     `json:"culture"`
	AdditionalImages  []ImageDTO      `json:"additional_images"`
	AudioGuides       []AudioGuideDTO `json:"audio_guides"`
	Videos            []VideoDTO      `json:"videos"`
	AcquisitionDate   *string         `json:"acquisition_date"`
	AcquisitionMethod string          `json:"acquisition_method"`
	DisplayLocation   *string         `json:"display_location"`
	IsFeatured        bool            `json:"is_featured"`
	IsOnDisplay       bool            `json:"is_on_display"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// QRCodeDTO describes the QR image of an artifact for curators.
type QRCodeDTO struct {
	ID              uuid.UUID `json:"id"`
	InventoryNumber string    `json:"inventory_number"`
	Name            string    `json:"name"`
	QRCode          *string   `json:"qr_code"`
	Payload         string    `json:"payload"`
}

// PageDTO wraps one page of a paginated list.
type PageDTO struct {
	Count    int64       `json:"count"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
	Results  interface{} `json:"results"`
}

func (r *Renderer) ArtifactList(items []models.ArtifactModel) []ArtifactListDTO {
	out := make([]ArtifactListDTO, 0, len(items))
	for i := range items {
		a := &items[i]
		dto := ArtifactListDTO{
			ID:              a.ID,
			InventoryNumber: a.InventoryNumber,
			QRCode:          r.MediaURL(a.QRCode),
			Name:            r.text(a.Name),
			MainImage:       r.MediaURL(a.MainImage),
			CollectionName:  r.text(a.Collection.Name),
			IsFeatured:      a.IsFeatured,
			IsOnDisplay:     a.IsOnDisplay,
		}
		if a.Period != nil {
			name := r.text(a.Period.Name)
			dto.PeriodName = &name
		}
		if a.Culture != nil {
			name := r.text(a.Culture.Name)
			dto.CultureName = &name
		}
		out = append(out, dto)
	}
	return out
}

func (r *Renderer) ArtifactSearch(items []models.ArtifactModel) []ArtifactSearchDTO {
	out := make([]ArtifactSearchDTO, 0, len(items))
	for i := range items {
		a := &items[i]
		out = append(out, ArtifactSearchDTO{
			ID:              a.ID,
			InventoryNumber: a.InventoryNumber,
			Name:            r.text(a.Name),
			Description:     r.text(a.Description),
			MainImage:       r.MediaURL(a.MainImage),
			CollectionName:  r.text(a.Collection.Name),
			IsFeatured:      a.IsFeatured,
		})
	}
	return out
}

func (r *Renderer) Featured(items []models.ArtifactModel) []FeaturedArtifactDTO {
	out := make([]FeaturedArtifactDTO, 0, len(items))
	for i := range items {
		a := &items[i]
		out = append(out, FeaturedArtifactDTO{
			ID:             a.ID,
			Name:           r.text(a.Name),
			Description:    r.text(a.Description),
			MainImage:      r.MediaURL(a.MainImage),
			CollectionName: r.text(a.Collection.Name),
		})
	}
	return out
}

// ArtifactDetail renders a with its collection, period, culture and owned media.
func (r *Renderer) ArtifactDetail(a *models.ArtifactModel, collectionCount int64) ArtifactDetailDTO {
	dto := ArtifactDetailDTO{
		ID:                a.ID,
		InventoryNumber:   a.InventoryNumber,
		Name:              r.text(a.Name),
		Description:       r.text(a.Description),
		HistoricalContext: r.text(a.HistoricalContext),
		Technique:         r.text(a.Technique),
		Dimensions:        a.Dimensions,
		Weight:            a.Weight,
		Material:          r.text(a.Material),
		MainImage:         r.MediaURL(a.MainImage),
		QRCode:            r.MediaURL(a.QRCode),
		Collection:        r.Collection(&a.Collection, collectionCount),
		AdditionalImages:  r.Images(a.AdditionalImages),
		AudioGuides:       r.AudioGuides(a.AudioGuides),
		Videos:            r.Videos(a.Videos),
		AcquisitionDate:   formatDate(a.AcquisitionDate),
		AcquisitionMethod: r.text(a.AcquisitionMethod),
		DisplayLocation:   a.DisplayLocation,
		IsFeatured:        a.IsFeatured,
		IsOnDisplay:       a.IsOnDisplay,
		CreatedAt:         a.CreatedAt,
		UpdatedAt:         a.UpdatedAt,
	}
	if a.Period != nil {
		p := r.Period(a.Period)
		dto.Period = &p
	}
	if a.Culture != nil {
		c := r.Culture(a.Culture)
		dto.Culture = &c
	}
	return dto
}

func (r *Renderer) QRCode(a *models.ArtifactModel, payload string) QRCodeDTO {
	return QRCodeDTO{
		ID:              a.ID,
		InventoryNumber: a.InventoryNumber,
		Name:            r.text(a.Name),
		QRCode:          r.MediaURL(a.QRCode),
		Payload:         payload,
	}
}
