package dtos

import (
	"fmt"
	"time"

	"github.com/museum-catalog/museum-backend/src/i18n"
	"github.com/museum-catalog/museum-backend/src/models"
)

// ArtifactRequest is the curator payload for creating or replacing an artifact.
type ArtifactRequest struct {
	InventoryNumber   string    `json:"inventory_number" binding:"required,max=50"`
	Name              i18n.Text `json:"name"`
	Description       i18n.Text `json:"description"`
	HistoricalContext i18n.Text `json:"historical_context"`
	Technique         i18n.Text `json:"technique"`
	Material          i18n.Text `json:"material"`
	Dimensions        string    `json:"dimensions" binding:"max=100"`
	Weight            *string   `json:"weight"`
	CollectionID      uint      `json:"collection" binding:"required"`
	PeriodID          *uint     `json:"period"`
	CultureID         *uint     `json:"culture"`
	AcquisitionDate   *string   `json:"acquisition_date"`
	AcquisitionMethod i18n.Text `json:"acquisition_method"`
	IsFeatured        bool      `json:"is_featured"`
	IsOnDisplay       *bool     `json:"is_on_display"`
	DisplayLocation   *string   `json:"display_location"`
}

// ToModel converts the request. Artifacts are on display unless stated otherwise.
func (r *ArtifactRequest) ToModel() (*models.ArtifactModel, error) {
	a := &models.ArtifactModel{
		InventoryNumber:   r.InventoryNumber,
		Name:              r.Name,
		Description:       r.Description,
		HistoricalContext: r.HistoricalContext,
		Technique:         r.Technique,
		Material:          r.Material,
		Dimensions:        r.Dimensions,
		Weight:            r.Weight,
		CollectionID:      r.CollectionID,
		PeriodID:          r.PeriodID,
		CultureID:         r.CultureID,
		AcquisitionMethod: r.AcquisitionMethod,
		IsFeatured:        r.IsFeatured,
		IsOnDisplay:       true,
		DisplayLocation:   r.DisplayLocation,
	}
	if r.IsOnDisplay != nil {
		a.IsOnDisplay = *r.IsOnDisplay
	}
	if r.AcquisitionDate != nil && *r.AcquisitionDate != "" {
		d, err := time.Parse(dateLayout, *r.AcquisitionDate)
		if err != nil {
			return nil, fmt.Errorf("acquisition_date must be YYYY-MM-DD: %w", err)
		}
		a.AcquisitionDate = &d
	}
	return a, nil
}

type CollectionRequest struct {
	Name        i18n.Text `json:"name"`
	Description i18n.Text `json:"description"`
	Curator     i18n.Text `json:"curator"`
}

func (r *CollectionRequest) ToModel() *models.CollectionModel {
	return &models.CollectionModel{Name: r.Name, Description: r.Description, Curator: r.Curator}
}

type PeriodRequest struct {
	Name        i18n.Text `json:"name"`
	StartYear   *int      `json:"start_year"`
	EndYear     *int      `json:"end_year"`
	Description i18n.Text `json:"description"`
}

func (r *PeriodRequest) ToModel() *models.PeriodModel {
	return &models.PeriodModel{Name: r.Name, StartYear: r.StartYear, EndYear: r.EndYear, Description: r.Description}
}

type CultureRequest struct {
	Name        i18n.Text `json:"name"`
	Description i18n.Text `json:"description"`
}

func (r *CultureRequest) ToModel() *models.CultureModel {
	return &models.CultureModel{Name: r.Name, Description: r.Description}
}

// ImageForm holds the multipart fields sent along a gallery image.
type ImageForm struct {
	CaptionFr string `form:"caption_fr"`
	CaptionEn string `form:"caption_en"`
	CaptionWo string `form:"caption_wo"`
	Order     int    `form:"order"`
}

func (f *ImageForm) ToModel() *models.ArtifactImageModel {
	return &models.ArtifactImageModel{
		Caption:      i18n.Text{Fr: f.CaptionFr, En: f.CaptionEn, Wo: f.CaptionWo},
		DisplayOrder: f.Order,
	}
}

// AudioGuideForm holds the multipart fields sent along an audio guide.
type AudioGuideForm struct {
	Language     string `form:"language" binding:"required"`
	Duration     int    `form:"duration"`
	NarratorFr   string `form:"narrator_fr"`
	NarratorEn   string `form:"narrator_en"`
	NarratorWo   string `form:"narrator_wo"`
	TranscriptFr string `form:"transcript_fr"`
	TranscriptEn string `form:"transcript_en"`
	TranscriptWo string `form:"transcript_wo"`
}

func (f *AudioGuideForm) ToModel() *models.AudioGuideModel {
	lang, err := i18n.Parse(f.Language)
	if err != nil {
		// Left invalid so that the service reports it.
		lang = i18n.Language(f.Language)
	}
	return &models.AudioGuideModel{
		Language:   lang,
		Duration:   f.Duration,
		Narrator:   i18n.Text{Fr: f.NarratorFr, En: f.NarratorEn, Wo: f.NarratorWo},
		Transcript: i18n.Text{Fr: f.TranscriptFr, En: f.TranscriptEn, Wo: f.TranscriptWo},
	}
}

// VideoForm holds the multipart fields sent along a video.
type VideoForm struct {
	TitleFr       string `form:"title_fr" binding:"required"`
	TitleEn       string `form:"title_en"`
	TitleWo       string `form:"title_wo"`
	DescriptionFr string `form:"description_fr"`
	DescriptionEn string `form:"description_en"`
	DescriptionWo string `form:"description_wo"`
	VideoURL      string `form:"video_url"`
	Duration      int    `form:"duration"`
	VideoType     string `form:"video_type" binding:"required"`
	Order         int    `form:"order"`
	IsPublished   bool   `form:"is_published"`
}

func (f *VideoForm) ToModel() *models.VideoModel {
	v := &models.VideoModel{
		Title:        i18n.Text{Fr: f.TitleFr, En: f.TitleEn, Wo: f.TitleWo},
		Description:  i18n.Text{Fr: f.DescriptionFr, En: f.DescriptionEn, Wo: f.DescriptionWo},
		Duration:     f.Duration,
		VideoType:    models.VideoType(f.VideoType),
		DisplayOrder: f.Order,
		IsPublished:  f.IsPublished,
	}
	if f.VideoURL != "" {
		url := f.VideoURL
		v.VideoURL = &url
	}
	return v
}

// TrackVisitRequest is the body of the visit tracking endpoint.
type TrackVisitRequest struct {
	SessionID       string `json:"session_id" form:"session_id"`
	Language        string `json:"language" form:"language"`
	DurationSeconds int    `json:"duration_seconds" form:"duration_seconds"`
}

// ScanRequest carries the raw text read from a QR code.
type ScanRequest struct {
	QRData string `json:"qr_data" form:"qr_data"`
}

type MainImageRequest struct {
	DriveURL string `json:"drive_url" binding:"required"`
}
