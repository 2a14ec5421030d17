package dtos

import (
	"time"

	"github.com/google/uuid"

	"github.com/museum-catalog/museum-backend/src/i18n"
	"github.com/museum-catalog/museum-backend/src/models"
	"github.com/museum-catalog/museum-backend/src/services"
)

type VisitDTO struct {
	ID              uint          `json:"id"`
	SessionID       string        `json:"session_id"`
	Artifact        uuid.UUID     `json:"artifact"`
	ArtifactName    string        `json:"artifact_name,omitempty"`
	Language        i18n.Language `json:"language"`
	DurationSeconds int           `json:"duration_seconds"`
	VisitedAt       time.Time     `json:"visited_at"`
}

type StatsDTO struct {
	TotalArtifacts    int64 `json:"total_artifacts"`
	TotalCollections  int64 `json:"total_collections"`
	FeaturedArtifacts int64 `json:"featured_artifacts"`
	TotalVisits       int64 `json:"total_visits"`
}

type MostVisitedDTO struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	VisitCount int64     `json:"visit_count"`
}

type DashboardDTO struct {
	Stats        StatsDTO         `json:"stats"`
	MostVisited  []MostVisitedDTO `json:"most_visited"`
	RecentVisits []VisitDTO       `json:"recent_visits"`
}

// Visit renders a visit event. The artifact name is filled in only when the
// artifact was loaded with it.
func (r *Renderer) Visit(v *models.VisitModel) VisitDTO {
	return VisitDTO{
		ID:              v.ID,
		SessionID:       v.SessionID,
		Artifact:        v.ArtifactID,
		ArtifactName:    r.text(v.Artifact.Name),
		Language:        v.Language,
		DurationSeconds: v.DurationSeconds,
		VisitedAt:       v.VisitedAt,
	}
}

func (r *Renderer) Dashboard(d *services.Dashboard) DashboardDTO {
	dto := DashboardDTO{
		Stats: StatsDTO{
			TotalArtifacts:    d.Stats.TotalArtifacts,
			TotalCollections:  d.Stats.TotalCollections,
			FeaturedArtifacts: d.Stats.FeaturedArtifacts,
			TotalVisits:       d.Stats.TotalVisits,
		},
		MostVisited:  make([]MostVisitedDTO, 0, len(d.MostVisited)),
		RecentVisits: make([]VisitDTO, 0, len(d.RecentVisits)),
	}
	for _, mv := range d.MostVisited {
		dto.MostVisited = append(dto.MostVisited, MostVisitedDTO{
			ID:         mv.ID,
			Name:       r.text(mv.Name),
			VisitCount: mv.VisitCount,
		})
	}
	for i := range d.RecentVisits {
		dto.RecentVisits = append(dto.RecentVisits, r.Visit(&d.RecentVisits[i]))
	}
	return dto
}
