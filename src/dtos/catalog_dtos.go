package dtos

import (
	"time"

	"github.com/google/uuid"

	"github.com/museum-catalog/museum-backend/src/i18n"
	"github.com/museum-catalog/museum-backend/src/models"
	"github.com/museum-catalog/museum-backend/src/services"
)

type CollectionDTO struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Curator       string    `json:"curator"`
	Image         *string   `json:"image"`
	ArtifactCount int64     `json:"artifact_count"`
	CreatedAt     time.Time `json:"created_at"`
}

type PeriodDTO struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	StartYear   *int   `json:"start_year"`
	EndYear     *int   `json:"end_year"`
	Description string `json:"description"`
}

type CultureDTO struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type ImageDTO struct {
	ID      uint    `json:"id"`
	Image   *string `json:"image"`
	Caption string  `json:"caption"`
	Order   int     `json:"order"`
}

type AudioGuideDTO struct {
	ID         uint          `json:"id"`
	Artifact   uuid.UUID     `json:"artifact"`
	Language   i18n.Language `json:"language"`
	AudioFile  *string       `json:"audio_file"`
	Duration   int           `json:"duration"`
	Narrator   string        `json:"narrator"`
	Transcript string        `json:"transcript"`
}

type VideoDTO struct {
	ID          uint             `json:"id"`
	Artifact    uuid.UUID        `json:"artifact"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	VideoFile   *string          `json:"video_file"`
	VideoURL    *string          `json:"video_url"`
	Duration    int              `json:"duration"`
	Thumbnail   *string          `json:"thumbnail"`
	VideoType   models.VideoType `json:"video_type"`
	Order       int              `json:"order"`
}

func (r *Renderer) Collection(c *models.CollectionModel, artifactCount int64) CollectionDTO {
	return CollectionDTO{
		ID:            c.ID,
		Name:          r.text(c.Name),
		Description:   r.text(c.Description),
		Curator:       r.text(c.Curator),
		Image:         r.mediaPtr(c.Image),
		ArtifactCount: artifactCount,
		CreatedAt:     c.CreatedAt,
	}
}

func (r *Renderer) Collections(items []services.CollectionWithCount) []CollectionDTO {
	out := make([]CollectionDTO, 0, len(items))
	for i := range items {
		out = append(out, r.Collection(&items[i].CollectionModel, items[i].ArtifactCount))
	}
	return out
}

func (r *Renderer) Period(p *models.PeriodModel) PeriodDTO {
	return PeriodDTO{
		ID:          p.ID,
		Name:        r.text(p.Name),
		StartYear:   p.StartYear,
		EndYear:     p.EndYear,
		Description: r.text(p.Description),
	}
}

func (r *Renderer) Periods(items []models.PeriodModel) []PeriodDTO {
	out := make([]PeriodDTO, 0, len(items))
	for i := range items {
		out = append(out, r.Period(&items[i]))
	}
	return out
}

func (r *Renderer) Culture(c *models.CultureModel) CultureDTO {
	return CultureDTO{ID: c.ID, Name: r.text(c.Name), Description: r.text(c.Description)}
}

func (r *Renderer) Cultures(items []models.CultureModel) []CultureDTO {
	out := make([]CultureDTO, 0, len(items))
	for i := range items {
		out = append(out, r.Culture(&items[i]))
	}
	return out
}

func (r *Renderer) Images(items []models.ArtifactImageModel) []ImageDTO {
	out := make([]ImageDTO, 0, len(items))
	for _, img := range items {
		out = append(out, ImageDTO{
			ID:      img.ID,
			Image:   r.MediaURL(img.Image),
			Caption: r.text(img.Caption),
			Order:   img.DisplayOrder,
		})
	}
	return out
}

func (r *Renderer) AudioGuides(items []models.AudioGuideModel) []AudioGuideDTO {
	out := make([]AudioGuideDTO, 0, len(items))
	for _, g := range items {
		out = append(out, AudioGuideDTO{
			ID:         g.ID,
			Artifact:   g.ArtifactID,
			Language:   g.Language,
			AudioFile:  r.MediaURL(g.AudioFile),
			Duration:   g.Duration,
			Narrator:   r.text(g.Narrator),
			Transcript: r.text(g.Transcript),
		})
	}
	return out
}

func (r *Renderer) Videos(items []models.VideoModel) []VideoDTO {
	out := make([]VideoDTO, 0, len(items))
	for _, v := range items {
		out = append(out, VideoDTO{
			ID:          v.ID,
			Artifact:    v.ArtifactID,
			Title:       r.text(v.Title),
			Description: r.text(v.Description),
			VideoFile:   r.mediaPtr(v.VideoFile),
			VideoURL:    v.VideoURL,
			Duration:    v.Duration,
			Thumbnail:   r.mediaPtr(v.Thumbnail),
			VideoType:   v.VideoType,
			Order:       v.DisplayOrder,
		})
	}
	return out
}
