package services

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/museum-catalog/museum-backend/src/models"
)

func catalogWorkbook(t *testing.T, sheets map[string][][]interface{}) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	first := true
	for name, rows := range sheets {
		if first {
			require.NoError(t, f.SetSheetName("Sheet1", name))
			first = false
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			values := row
			require.NoError(t, f.SetSheetRow(name, cell, &values))
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestImportCatalog(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	importer := NewImportService(f.db, f.artifacts, f.cache, zap.NewNop())

	workbook := catalogWorkbook(t, map[string][][]interface{}{
		PeriodsSheet: {
			{"name_fr", "name_en", "start_year", "end_year"},
			{"Empire du Mali", "Mali Empire", 1235, 1670},
			{"Sans date", "", "vers 1500", ""},
			{"", "Nameless", "", ""},
		},
		CulturesSheet: {
			{"name_fr"},
			{"Sérère"},
		},
		CollectionsSheet: {
			{"name_fr", "curator_fr"},
			{"Arts du Sahel", ""},
			{"Textiles", ""},
		},
		ArtifactsSheet: {
			{"inventory_number", "name_fr", "collection", "period", "culture", "is_featured", "is_on_display"},
			{"INV-100", "Masque", "Arts du Sahel", "Empire du Mali", "Sérère", "oui", ""},
			{"INV-101", "Pagne", "Textiles", "", "", "", "non"},
			{"INV-102", "Tambour", "Inconnue", "", "", "", ""},
			{"", "Sans numéro", "Textiles", "", "", "", ""},
		},
	})

	result, err := importer.ImportCatalog(ctx, bytes.NewReader(workbook))
	require.NoError(t, err)

	assert.Equal(t, 1, result.Created[PeriodsSheet])
	assert.Equal(t, 1, result.Created[CulturesSheet])
	assert.Equal(t, 1, result.Created[CollectionsSheet])
	assert.Equal(t, 1, result.Existing[CollectionsSheet])
	assert.Equal(t, 2, result.Created[ArtifactsSheet])
	require.Len(t, result.Errors, 4)
	assert.True(t, strings.HasPrefix(result.Errors[0], "Periods row 3:"), result.Errors[0])
	assert.Contains(t, strings.Join(result.Errors, "\n"), `unknown collection "Inconnue"`)

	var textiles models.CollectionModel
	require.NoError(t, f.db.Where("name_fr = ?", "Textiles").First(&textiles).Error)
	assert.Equal(t, "Inconnu", textiles.Curator.Fr)

	masque, err := f.artifacts.GetByInventoryNumber(ctx, "INV-100")
	require.NoError(t, err)
	assert.True(t, masque.IsFeatured)
	assert.True(t, masque.IsOnDisplay)
	require.NotNil(t, masque.Period)
	assert.Equal(t, "Mali Empire", masque.Period.Name.En)
	require.NotNil(t, masque.Culture)
	assert.NotEmpty(t, masque.QRCode)
	_, err = f.files.Stat(masque.QRCode)
	assert.NoError(t, err)

	pagne, err := f.artifacts.GetByInventoryNumber(ctx, "INV-101")
	require.NoError(t, err)
	assert.False(t, pagne.IsOnDisplay)
	assert.Equal(t, textiles.ID, pagne.CollectionID)

	// Importing the same workbook again creates nothing.
	again, err := importer.ImportCatalog(ctx, bytes.NewReader(workbook))
	require.NoError(t, err)
	assert.Zero(t, again.Created[PeriodsSheet]+again.Created[CulturesSheet]+again.Created[CollectionsSheet]+again.Created[ArtifactsSheet])
	assert.Equal(t, 1, again.Existing[PeriodsSheet])
	assert.Equal(t, 2, again.Existing[CollectionsSheet])
	assert.Equal(t, 2, again.Existing[ArtifactsSheet])
}

func TestImportCatalogRejectsInvalidWorkbook(t *testing.T) {
	f := newFixture(t)
	importer := NewImportService(f.db, f.artifacts, f.cache, zap.NewNop())

	_, err := importer.ImportCatalog(context.Background(), strings.NewReader("not a workbook"))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestImportCatalogSkipsMissingSheets(t *testing.T) {
	f := newFixture(t)
	importer := NewImportService(f.db, f.artifacts, f.cache, zap.NewNop())

	workbook := catalogWorkbook(t, map[string][][]interface{}{
		CulturesSheet: {{"name_fr", "description_fr"}, {"Peul", "Pasteurs"}},
	})
	result, err := importer.ImportCatalog(context.Background(), bytes.NewReader(workbook))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Created[CulturesSheet])
	assert.Empty(t, result.Errors)
}
