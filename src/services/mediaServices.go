package services

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/museum-catalog/museum-backend/src/i18n"
	"github.com/museum-catalog/museum-backend/src/models"
	"github.com/museum-catalog/museum-backend/src/storage"
)

// Upload is a file received from a curator.
type Upload struct {
	Name string
	Body io.Reader
}

type MediaService struct {
	db    *gorm.DB
	files *storage.LocalStorage
	log   *zap.Logger
}

// NewMediaService creates a new instance of MediaService
func NewMediaService(db *gorm.DB, files *storage.LocalStorage, log *zap.Logger) *MediaService {
	return &MediaService{db: db, files: files, log: log}
}

func (s *MediaService) requireArtifact(ctx context.Context, id uuid.UUID) error {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.ArtifactModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrArtifactNotFound
	}
	return nil
}

// save stores upload under dir and registers the path for removal should
// the surrounding operation fail.
func (s *MediaService) save(dir string, upload *Upload, written *[]string) (string, error) {
	rel, err := s.files.Save(dir, upload.Name, upload.Body)
	if err != nil {
		return "", err
	}
	*written = append(*written, rel)
	return rel, nil
}

func (s *MediaService) discard(written []string) {
	for _, rel := range written {
		if err := s.files.Remove(rel); err != nil {
			s.log.Warn("could not remove orphaned upload", zap.String("path", rel), zap.Error(err))
		}
	}
}

// GetAudioGuides lists audio guides, optionally restricted to one artifact
// and one language.
func (s *MediaService) GetAudioGuides(ctx context.Context, artifactID *uuid.UUID, lang *i18n.Language) ([]models.AudioGuideModel, error) {
	query := s.db.WithContext(ctx).Order("artifact_id ASC, language ASC")
	if artifactID != nil {
		query = query.Where("artifact_id = ?", *artifactID)
	}
	if lang != nil {
		query = query.Where("language = ?", *lang)
	}

	var guides []models.AudioGuideModel
	if err := query.Find(&guides).Error; err != nil {
		return nil, err
	}
	return guides, nil
}

// GetPublishedVideos lists published videos, optionally restricted to one
// artifact and one video type.
func (s *MediaService) GetPublishedVideos(ctx context.Context, artifactID *uuid.UUID, videoType *models.VideoType) ([]models.VideoModel, error) {
	query := s.db.WithContext(ctx).
		Where("is_published = ?", true).
		Order("display_order ASC, id ASC")
	if artifactID != nil {
		query = query.Where("artifact_id = ?", *artifactID)
	}
	if videoType != nil {
		query = query.Where("video_type = ?", *videoType)
	}

	var videos []models.VideoModel
	if err := query.Find(&videos).Error; err != nil {
		return nil, err
	}
	return videos, nil
}

// AddImage appends a gallery image to an artifact.
func (s *MediaService) AddImage(ctx context.Context, image *models.ArtifactImageModel, upload *Upload) (*models.ArtifactImageModel, error) {
	if upload == nil {
		return nil, fmt.Errorf("%w: image file is required", ErrInvalidInput)
	}
	if err := s.requireArtifact(ctx, image.ArtifactID); err != nil {
		return nil, err
	}

	var written []string
	rel, err := s.save(storage.GalleryDir, upload, &written)
	if err != nil {
		return nil, err
	}

	image.ID = 0
	image.Image = rel
	if err := s.db.WithContext(ctx).Create(image).Error; err != nil {
		s.discard(written)
		return nil, err
	}
	return image, nil
}

// AddAudioGuide attaches a narration to an artifact. Each artifact holds at
// most one guide per language.
func (s *MediaService) AddAudioGuide(ctx context.Context, guide *models.AudioGuideModel, upload *Upload) (*models.AudioGuideModel, error) {
	if upload == nil {
		return nil, fmt.Errorf("%w: audio file is required", ErrInvalidInput)
	}
	if !guide.Language.Valid() {
		return nil, fmt.Errorf("%w: unsupported language %q", ErrInvalidInput, guide.Language)
	}
	if guide.Duration < 0 {
		return nil, fmt.Errorf("%w: duration must not be negative", ErrInvalidInput)
	}
	if err := s.requireArtifact(ctx, guide.ArtifactID); err != nil {
		return nil, err
	}

	var written []string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		err := tx.Model(&models.AudioGuideModel{}).
			Where("artifact_id = ? AND language = ?", guide.ArtifactID, guide.Language).
			Count(&existing).Error
		if err != nil {
			return err
		}
		if existing > 0 {
			return ErrDuplicateAudioGuide
		}

		rel, err := s.save(storage.AudioGuidesDir, upload, &written)
		if err != nil {
			return err
		}
		guide.ID = 0
		guide.AudioFile = rel
		return tx.Create(guide).Error
	})
	if err != nil {
		s.discard(written)
		return nil, err
	}
	return guide, nil
}

// AddVideo attaches a video to an artifact. The video is either an uploaded
// file or an external URL.
func (s *MediaService) AddVideo(ctx context.Context, video *models.VideoModel, file, thumbnail *Upload) (*models.VideoModel, error) {
	if !video.VideoType.Valid() {
		return nil, fmt.Errorf("%w: unsupported video type %q", ErrInvalidInput, video.VideoType)
	}
	if strings.TrimSpace(video.Title.Fr) == "" {
		return nil, fmt.Errorf("%w: title.fr is required", ErrInvalidInput)
	}
	hasURL := video.VideoURL != nil && strings.TrimSpace(*video.VideoURL) != ""
	if file == nil && !hasURL {
		return nil, fmt.Errorf("%w: a video file or a video_url is required", ErrInvalidInput)
	}
	if err := s.requireArtifact(ctx, video.ArtifactID); err != nil {
		return nil, err
	}

	var written []string
	if file != nil {
		rel, err := s.save(storage.VideosDir, file, &written)
		if err != nil {
			return nil, err
		}
		video.VideoFile = &rel
	}
	if thumbnail != nil {
		rel, err := s.save(storage.ThumbnailsDir, thumbnail, &written)
		if err != nil {
			s.discard(written)
			return nil, err
		}
		video.Thumbnail = &rel
	}

	video.ID = 0
	if err := s.db.WithContext(ctx).Create(video).Error; err != nil {
		s.discard(written)
		return nil, err
	}
	return video, nil
}
