package models

import (
	"github.com/google/uuid"

	"github.com/museum-catalog/museum-backend/src/i18n"
)

// ArtifactImageModel is a gallery image owned by an artifact.
type ArtifactImageModel struct {
	ID           uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	ArtifactID   uuid.UUID `json:"artifact_id" gorm:"type:uuid;not null;index"`
	Image        string    `json:"image" gorm:"type:varchar(255);not null"`
	Caption      i18n.Text `json:"caption" gorm:"embedded;embeddedPrefix:caption_"`
	DisplayOrder int       `json:"order" gorm:"not null;default:0"`
}

// AudioGuideModel is the narration of an artifact in one language.
type AudioGuideModel struct {
	ID         uint          `json:"id" gorm:"primaryKey;autoIncrement"`
	ArtifactID uuid.UUID     `json:"artifact_id" gorm:"type:uuid;not null;uniqueIndex:idx_audio_guide_artifact_language"`
	Language   i18n.Language `json:"language" gorm:"type:varchar(2);not null;uniqueIndex:idx_audio_guide_artifact_language"`
	AudioFile  string        `json:"audio_file" gorm:"type:varchar(255);not null"`
	Duration   int           `json:"duration" gorm:"not null"`
	Narrator   i18n.Text     `json:"narrator" gorm:"embedded;embeddedPrefix:narrator_"`
	Transcript i18n.Text     `json:"transcript" gorm:"embedded;embeddedPrefix:transcript_"`
}

type VideoType string

const (
	VideoDocumentary VideoType = "documentary"
	VideoExplanation VideoType = "explanation"
	VideoInterview   VideoType = "interview"
	VideoAnimation   VideoType = "animation"
)

func (t VideoType) Valid() bool {
	switch t {
	case VideoDocumentary, VideoExplanation, VideoInterview, VideoAnimation:
		return true
	}
	return false
}

type VideoModel struct {
	ID           uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	ArtifactID   uuid.UUID `json:"artifact_id" gorm:"type:uuid;not null;index"`
	Title        i18n.Text `json:"title" gorm:"embedded;embeddedPrefix:title_"`
	Description  i18n.Text `json:"description" gorm:"embedded;embeddedPrefix:description_"`
	VideoFile    *string   `json:"video_file" gorm:"type:varchar(255)"`
	VideoURL     *string   `json:"video_url" gorm:"type:varchar(500)"`
	Duration     int       `json:"duration" gorm:"not null"`
	Thumbnail    *string   `json:"thumbnail" gorm:"type:varchar(255)"`
	VideoType    VideoType `json:"video_type" gorm:"type:varchar(20);not null"`
	DisplayOrder int       `json:"order" gorm:"not null;default:0"`
	IsPublished  bool      `json:"is_published" gorm:"not null;index"`
}
