package controllers

import (
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/museum-catalog/museum-backend/src/dtos"
	"github.com/museum-catalog/museum-backend/src/i18n"
	"github.com/museum-catalog/museum-backend/src/models"
	"github.com/museum-catalog/museum-backend/src/services"
)

type MediaController struct {
	service  *services.MediaService
	mediaURL string
	log      *zap.Logger
}

func NewMediaController(service *services.MediaService, mediaURL string, log *zap.Logger) *MediaController {
	return &MediaController{service: service, mediaURL: mediaURL, log: log}
}

// openUpload opens the named multipart file. A missing file yields a nil
// upload and no error.
func openUpload(ctx *gin.Context, field string) (*services.Upload, multipart.File, error) {
	header, err := ctx.FormFile(field)
	if err == http.ErrMissingFile {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	src, err := header.Open()
	if err != nil {
		return nil, nil, err
	}
	return &services.Upload{Name: header.Filename, Body: src}, src, nil
}

// GetAudioGuides handles GET /audio-guides/ with optional artifact and language filters
func (c *MediaController) GetAudioGuides(ctx *gin.Context) {
	artifactID, err := optionalArtifact(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var lang *i18n.Language
	if raw := ctx.Query("language"); raw != "" {
		parsed, err := i18n.Parse(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		lang = &parsed
	}

	guides, err := c.service.GetAudioGuides(ctx.Request.Context(), artifactID, lang)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, renderer(ctx, c.mediaURL).AudioGuides(guides))
}

// GetVideos handles GET /videos/ and lists published videos only
func (c *MediaController) GetVideos(ctx *gin.Context) {
	artifactID, err := optionalArtifact(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var videoType *models.VideoType
	if raw := ctx.Query("video_type"); raw != "" {
		t := models.VideoType(raw)
		if !t.Valid() {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid video_type parameter"})
			return
		}
		videoType = &t
	}

	videos, err := c.service.GetPublishedVideos(ctx.Request.Context(), artifactID, videoType)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusOK, renderer(ctx, c.mediaURL).Videos(videos))
}

// AddImage handles POST /admin/artifacts/:id/images (multipart "image" file)
func (c *MediaController) AddImage(ctx *gin.Context) {
	id, ok := parseArtifactParam(ctx)
	if !ok {
		return
	}
	var form dtos.ImageForm
	if err := ctx.ShouldBind(&form); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	upload, src, err := openUpload(ctx, "image")
	if err != nil || upload == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	defer src.Close()

	image := form.ToModel()
	image.ArtifactID = id
	created, err := c.service.AddImage(ctx.Request.Context(), image, upload)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusCreated, renderer(ctx, c.mediaURL).Images([]models.ArtifactImageModel{*created})[0])
}

// AddAudioGuide handles POST /admin/artifacts/:id/audio-guides (multipart "audio_file")
func (c *MediaController) AddAudioGuide(ctx *gin.Context) {
	id, ok := parseArtifactParam(ctx)
	if !ok {
		return
	}
	var form dtos.AudioGuideForm
	if err := ctx.ShouldBind(&form); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	upload, src, err := openUpload(ctx, "audio_file")
	if err != nil || upload == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}
	defer src.Close()

	guide := form.ToModel()
	guide.ArtifactID = id
	created, err := c.service.AddAudioGuide(ctx.Request.Context(), guide, upload)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusCreated, renderer(ctx, c.mediaURL).AudioGuides([]models.AudioGuideModel{*created})[0])
}

// AddVideo handles POST /admin/artifacts/:id/videos. The video is either an
// uploaded "video_file" or an external video_url; "thumbnail" is optional.
func (c *MediaController) AddVideo(ctx *gin.Context) {
	id, ok := parseArtifactParam(ctx)
	if !ok {
		return
	}
	var form dtos.VideoForm
	if err := ctx.ShouldBind(&form); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	file, fileSrc, err := openUpload(ctx, "video_file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "failed to open video_file"})
		return
	}
	if fileSrc != nil {
		defer fileSrc.Close()
	}
	thumbnail, thumbSrc, err := openUpload(ctx, "thumbnail")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "failed to open thumbnail"})
		return
	}
	if thumbSrc != nil {
		defer thumbSrc.Close()
	}

	video := form.ToModel()
	video.ArtifactID = id
	created, err := c.service.AddVideo(ctx.Request.Context(), video, file, thumbnail)
	if err != nil {
		respondError(ctx, c.log, err)
		return
	}
	ctx.JSON(http.StatusCreated, renderer(ctx, c.mediaURL).Videos([]models.VideoModel{*created})[0])
}
