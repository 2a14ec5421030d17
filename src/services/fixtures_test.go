package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/museum-catalog/museum-backend/src/i18n"
	"github.com/museum-catalog/museum-backend/src/models"
	"github.com/museum-catalog/museum-backend/src/qr"
	"github.com/museum-catalog/museum-backend/src/storage"
	"github.com/museum-catalog/museum-backend/src/testutil"
)

const testBaseURL = "https://museum-app.com"

type fixture struct {
	db         *gorm.DB
	files      *storage.LocalStorage
	cache      *Cache
	codec      *qr.Codec
	artifacts  *ArtifactService
	collection models.CollectionModel
	clock      time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		db:    testutil.NewDB(t),
		files: storage.NewLocalStorage(t.TempDir()),
		cache: NewCache(),
		codec: qr.NewCodec(testBaseURL),
		clock: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
	}
	f.artifacts = NewArtifactService(f.db, f.codec, f.files, nil, f.cache, zap.NewNop())

	f.collection = models.CollectionModel{
		Name:    i18n.Text{Fr: "Arts du Sahel", En: "Sahel arts"},
		Curator: i18n.Text{Fr: "A. Diop"},
	}
	require.NoError(t, f.db.Create(&f.collection).Error)
	return f
}

// createArtifact stores an on-display artifact through the service. Each call
// is one minute newer than the previous one.
func (f *fixture) createArtifact(t *testing.T, inventory, name string, mutate ...func(*models.ArtifactModel)) *models.ArtifactModel {
	t.Helper()

	f.clock = f.clock.Add(time.Minute)
	a := &models.ArtifactModel{
		InventoryNumber: inventory,
		Name:            i18n.Text{Fr: name},
		CollectionID:    f.collection.ID,
		IsOnDisplay:     true,
		CreatedAt:       f.clock,
	}
	for _, m := range mutate {
		m(a)
	}
	require.NoError(t, f.artifacts.CreateArtifact(context.Background(), a))
	return a
}

func withdrawn(a *models.ArtifactModel) { a.IsOnDisplay = false }

func featured(a *models.ArtifactModel) { a.IsFeatured = true }
