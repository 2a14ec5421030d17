package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/museum-catalog/museum-backend/src/i18n"
	"github.com/museum-catalog/museum-backend/src/identity"
	"github.com/museum-catalog/museum-backend/src/models"
)

func TestAddAudioGuideOnePerLanguage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	media := NewMediaService(f.db, f.files, zap.NewNop())
	a := f.createArtifact(t, "INV-001", "Masque")

	guide, err := media.AddAudioGuide(ctx, &models.AudioGuideModel{
		ArtifactID: a.ID,
		Language:   i18n.Wolof,
		Duration:   95,
		Narrator:   i18n.Text{Fr: "M. Sow"},
	}, &Upload{Name: "masque wo.mp3", Body: strings.NewReader("audio")})
	require.NoError(t, err)
	assert.Equal(t, "audio/guides/masque_wo.mp3", guide.AudioFile)

	_, err = media.AddAudioGuide(ctx, &models.AudioGuideModel{ArtifactID: a.ID, Language: i18n.Wolof},
		&Upload{Name: "again.mp3", Body: strings.NewReader("audio")})
	assert.ErrorIs(t, err, ErrDuplicateAudioGuide)
	_, statErr := f.files.Stat("audio/guides/again.mp3")
	assert.Error(t, statErr, "rejected upload is not kept")

	_, err = media.AddAudioGuide(ctx, &models.AudioGuideModel{ArtifactID: a.ID, Language: "de"},
		&Upload{Name: "de.mp3", Body: strings.NewReader("audio")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = media.AddAudioGuide(ctx, &models.AudioGuideModel{ArtifactID: identity.Mint(), Language: i18n.French},
		&Upload{Name: "fr.mp3", Body: strings.NewReader("audio")})
	assert.ErrorIs(t, err, ErrArtifactNotFound)

	wo := i18n.Wolof
	guides, err := media.GetAudioGuides(ctx, &a.ID, &wo)
	require.NoError(t, err)
	require.Len(t, guides, 1)
	assert.Equal(t, 95, guides[0].Duration)
}

func TestAddVideo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	media := NewMediaService(f.db, f.files, zap.NewNop())
	a := f.createArtifact(t, "INV-001", "Masque")

	_, err := media.AddVideo(ctx, &models.VideoModel{
		ArtifactID: a.ID, Title: i18n.Text{Fr: "Sans source"}, VideoType: models.VideoDocumentary,
	}, nil, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = media.AddVideo(ctx, &models.VideoModel{
		ArtifactID: a.ID, Title: i18n.Text{Fr: "x"}, VideoType: "trailer",
	}, &Upload{Name: "x.mp4", Body: strings.NewReader("v")}, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	uploaded, err := media.AddVideo(ctx, &models.VideoModel{
		ArtifactID: a.ID, Title: i18n.Text{Fr: "Atelier"}, VideoType: models.VideoDocumentary, IsPublished: true,
	}, &Upload{Name: "atelier.mp4", Body: strings.NewReader("v")}, &Upload{Name: "atelier.jpg", Body: strings.NewReader("t")})
	require.NoError(t, err)
	require.NotNil(t, uploaded.VideoFile)
	assert.Equal(t, "videos/atelier.mp4", *uploaded.VideoFile)
	assert.Equal(t, "videos/thumbnails/atelier.jpg", *uploaded.Thumbnail)

	link := "https://video.example/interview"
	_, err = media.AddVideo(ctx, &models.VideoModel{
		ArtifactID: a.ID, Title: i18n.Text{Fr: "Entretien"}, VideoType: models.VideoInterview, VideoURL: &link,
	}, nil, nil)
	require.NoError(t, err)

	videos, err := media.GetPublishedVideos(ctx, &a.ID, nil)
	require.NoError(t, err)
	require.Len(t, videos, 1, "unpublished videos are hidden")
	assert.Equal(t, "Atelier", videos[0].Title.Fr)

	interview := models.VideoInterview
	videos, err = media.GetPublishedVideos(ctx, nil, &interview)
	require.NoError(t, err)
	assert.Empty(t, videos)
}

func TestAddImage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	media := NewMediaService(f.db, f.files, zap.NewNop())
	a := f.createArtifact(t, "INV-001", "Masque")

	img, err := media.AddImage(ctx, &models.ArtifactImageModel{
		ArtifactID: a.ID, Caption: i18n.Text{Fr: "Profil"}, DisplayOrder: 1,
	}, &Upload{Name: "profil.jpg", Body: strings.NewReader("img")})
	require.NoError(t, err)
	assert.Equal(t, "artifacts/gallery/profil.jpg", img.Image)

	_, err = media.AddImage(ctx, &models.ArtifactImageModel{ArtifactID: a.ID}, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	got, err := f.artifacts.GetArtifactByID(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, got.AdditionalImages, 1)
}
