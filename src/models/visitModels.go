package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/museum-catalog/museum-backend/src/i18n"
)

// VisitModel is one tracked view of an artifact. Rows are appended, never updated.
type VisitModel struct {
	ID              uint          `json:"id" gorm:"primaryKey;autoIncrement"`
	SessionID       string        `json:"session_id" gorm:"type:varchar(100);not null;index"`
	ArtifactID      uuid.UUID     `json:"artifact" gorm:"type:uuid;not null;index"`
	Artifact        ArtifactModel `json:"-" gorm:"foreignKey:ArtifactID;references:ID;constraint:OnDelete:CASCADE;"`
	Language        i18n.Language `json:"language" gorm:"type:varchar(2);not null"`
	DurationSeconds int           `json:"duration_seconds" gorm:"not null;default:0"`
	VisitedAt       time.Time     `json:"visited_at" gorm:"autoCreateTime;index"`
}
