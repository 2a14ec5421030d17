package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/museum-catalog/museum-backend/src/i18n"
	"github.com/museum-catalog/museum-backend/src/models"
	"github.com/museum-catalog/museum-backend/src/qr"
	"github.com/museum-catalog/museum-backend/src/services"
	"github.com/museum-catalog/museum-backend/src/storage"
	"github.com/museum-catalog/museum-backend/src/testutil"
)

const (
	testSecret  = "test-secret"
	testBaseURL = "https://museum-app.com"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	router     *gin.Engine
	svc        *Services
	collection models.CollectionModel
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	conn := testutil.NewDB(t)
	log := zap.NewNop()
	files := storage.NewLocalStorage(t.TempDir())
	cache := services.NewCache()
	codec := qr.NewCodec(testBaseURL)

	artifacts := services.NewArtifactService(conn, codec, files, nil, cache, log)
	svc := &Services{
		Artifacts:   artifacts,
		Collections: services.NewCollectionService(conn, files, cache, log),
		Periods:     services.NewPeriodService(conn, cache),
		Cultures:    services.NewCultureService(conn, cache),
		Media:       services.NewMediaService(conn, files, log),
		Visits:      services.NewVisitService(conn),
		Scans:       services.NewScanService(artifacts),
		Users:       services.NewUserService(conn, testSecret),
		Imports:     services.NewImportService(conn, artifacts, cache, log),
		Codec:       codec,
		Files:       files,
	}

	collection, err := svc.Collections.CreateCollection(context.Background(), &models.CollectionModel{
		Name:    i18n.Text{Fr: "Arts du Sahel", En: "Sahel arts"},
		Curator: i18n.Text{Fr: "A. Diop"},
	})
	require.NoError(t, err)

	router := NewRouter(svc, Options{SecretKey: testSecret, MediaURL: "/media"}, log)
	return &testServer{router: router, svc: svc, collection: *collection}
}

func (s *testServer) artifact(t *testing.T, inventory, nameFr, nameEn string, onDisplay bool) *models.ArtifactModel {
	t.Helper()
	a := &models.ArtifactModel{
		InventoryNumber: inventory,
		Name:            i18n.Text{Fr: nameFr, En: nameEn},
		CollectionID:    s.collection.ID,
		IsOnDisplay:     onDisplay,
	}
	require.NoError(t, s.svc.Artifacts.CreateArtifact(context.Background(), a))
	return a
}

func (s *testServer) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) token(t *testing.T) string {
	t.Helper()
	_, err := s.svc.Users.CreateUser(context.Background(), "curator", "s3cret-pass")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":"curator","password":"s3cret-pass"}`))
	req.Header.Set("Content-Type", "application/json")
	w := s.do(req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Token
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

func TestScan(t *testing.T) {
	s := newTestServer(t)
	a := s.artifact(t, "INV-001", "Masque Dogon", "Dogon mask", true)
	hidden := s.artifact(t, "INV-002", "Statuette", "", false)

	payload := s.svc.Codec.Payload(a.ID)

	t.Run("query payload", func(t *testing.T) {
		w := s.do(httptest.NewRequest(http.MethodGet, "/qr-scan/?qr_data="+url.QueryEscape(payload), nil))
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		body := decode(t, w)
		assert.Equal(t, "INV-001", body["inventory_number"])
		assert.Equal(t, a.ID.String(), body["id"])
		assert.Equal(t, "Masque Dogon", body["name"])
	})

	t.Run("json body with trailing slash", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/qr-scan/", strings.NewReader(`{"qr_data":"`+payload+`/"}`))
		req.Header.Set("Content-Type", "application/json")
		w := s.do(req)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "INV-001", decode(t, w)["inventory_number"])
	})

	t.Run("bare identifier in a form", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/qr-scan/?lang=en", strings.NewReader("qr_data="+a.ID.String()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := s.do(req)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "Dogon mask", decode(t, w)["name"])
	})

	tests := []struct {
		name   string
		data   string
		status int
		error  string
	}{
		{"empty", "", http.StatusBadRequest, "qr_data is required"},
		{"malformed", testBaseURL + "/artifact/not-a-uuid/", http.StatusBadRequest, "Invalid QR code: "},
		{"unknown", s.svc.Codec.Payload(uuid.New()), http.StatusNotFound, "Artifact not found"},
		{"withdrawn", s.svc.Codec.Payload(hidden.ID), http.StatusNotFound, "Artifact not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/qr-scan/", strings.NewReader(`{"qr_data":"`+tt.data+`"}`))
			req.Header.Set("Content-Type", "application/json")
			w := s.do(req)
			assert.Equal(t, tt.status, w.Code)
			msg, _ := decode(t, w)["error"].(string)
			assert.True(t, strings.HasPrefix(msg, tt.error), msg)
		})
	}
}

func TestTrackVisit(t *testing.T) {
	s := newTestServer(t)
	a := s.artifact(t, "INV-001", "Masque", "", true)
	path := "/artifacts/" + a.ID.String() + "/track_visit/"

	t.Run("empty body", func(t *testing.T) {
		w := s.do(httptest.NewRequest(http.MethodPost, path, nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"session_id is required"}`, w.Body.String())
	})

	t.Run("empty json body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(""))
		req.Header.Set("Content-Type", "application/json")
		w := s.do(req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"session_id is required"}`, w.Body.String())
	})

	t.Run("recorded with defaults", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(`{"session_id":"abc"}`))
		req.Header.Set("Content-Type", "application/json")
		w := s.do(req)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		body := decode(t, w)
		assert.Equal(t, "abc", body["session_id"])
		assert.Equal(t, "fr", body["language"])
		assert.Equal(t, float64(0), body["duration_seconds"])
		assert.Equal(t, a.ID.String(), body["artifact"])
	})

	t.Run("unknown artifact", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/artifacts/"+uuid.NewString()+"/track_visit/", strings.NewReader(`{"session_id":"abc"}`))
		req.Header.Set("Content-Type", "application/json")
		w := s.do(req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("malformed identifier", func(t *testing.T) {
		w := s.do(httptest.NewRequest(http.MethodPost, "/artifacts/42/track_visit/", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Invalid identifier"}`, w.Body.String())
	})
}

func TestDashboard(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	first := s.artifact(t, "INV-001", "Masque", "", true)
	second := s.artifact(t, "INV-002", "Statuette", "", true)
	s.artifact(t, "INV-003", "Tabouret", "", true)

	for _, id := range []uuid.UUID{first.ID, second.ID, first.ID} {
		_, err := s.svc.Visits.Record(ctx, "session-1", id, "fr", 30)
		require.NoError(t, err)
	}

	w := s.do(httptest.NewRequest(http.MethodGet, "/stats/dashboard/", nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body struct {
		Stats struct {
			TotalArtifacts    int64 `json:"total_artifacts"`
			TotalCollections  int64 `json:"total_collections"`
			FeaturedArtifacts int64 `json:"featured_artifacts"`
			TotalVisits       int64 `json:"total_visits"`
		} `json:"stats"`
		MostVisited []struct {
			ID         string `json:"id"`
			Name       string `json:"name"`
			VisitCount int64  `json:"visit_count"`
		} `json:"most_visited"`
		RecentVisits []map[string]interface{} `json:"recent_visits"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.Equal(t, int64(3), body.Stats.TotalVisits)
	assert.Equal(t, int64(3), body.Stats.TotalArtifacts)
	assert.Equal(t, int64(1), body.Stats.TotalCollections)
	require.Len(t, body.MostVisited, 3)
	assert.Equal(t, first.ID.String(), body.MostVisited[0].ID)
	assert.Equal(t, int64(2), body.MostVisited[0].VisitCount)
	assert.Equal(t, second.ID.String(), body.MostVisited[1].ID)
	assert.Equal(t, int64(1), body.MostVisited[1].VisitCount)
	assert.Equal(t, int64(0), body.MostVisited[2].VisitCount)
	assert.Len(t, body.RecentVisits, 3)
}

func TestPublicCatalog(t *testing.T) {
	s := newTestServer(t)
	a := s.artifact(t, "INV-001", "Masque", "Mask", true)
	s.artifact(t, "INV-002", "Statuette", "", false)

	w := s.do(httptest.NewRequest(http.MethodGet, "/artifacts/?lang=en", nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	list := decode(t, w)
	assert.Equal(t, float64(1), list["count"])
	results := list["results"].([]interface{})
	require.Len(t, results, 1)
	row := results[0].(map[string]interface{})
	assert.Equal(t, "Mask", row["name"])
	assert.Equal(t, "Sahel arts", row["collection_name"])
	assert.True(t, strings.HasPrefix(row["qr_code"].(string), "/media/qr_codes/"), row["qr_code"])

	w = s.do(httptest.NewRequest(http.MethodGet, "/artifacts/?ordering=bogus", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(httptest.NewRequest(http.MethodGet, "/artifacts/"+a.ID.String()+"/", nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	detail := decode(t, w)
	collection := detail["collection"].(map[string]interface{})
	assert.Equal(t, float64(1), collection["artifact_count"])

	w = s.do(httptest.NewRequest(http.MethodGet, "/collections/", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var collections []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &collections))
	require.Len(t, collections, 1)
	assert.Equal(t, float64(1), collections[0]["artifact_count"])

	// The QR image is served as a static file.
	w = s.do(httptest.NewRequest(http.MethodGet, "/media/"+a.QRCode, nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminArtifacts(t *testing.T) {
	s := newTestServer(t)

	create := func(token, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/admin/artifacts/", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		return s.do(req)
	}
	payload := `{"inventory_number":"INV-009","name":{"fr":"Calebasse"},"collection":` + jsonNumber(s.collection.ID) + `}`

	w := create("", payload)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := s.token(t)
	w = create(token, payload)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode(t, w)
	id := created["id"].(string)
	assert.NotEmpty(t, created["qr_code"])
	assert.Equal(t, true, created["is_on_display"])

	w = create(token, payload)
	assert.Equal(t, http.StatusConflict, w.Code)

	qrPath := "/admin/artifacts/" + id + "/qr-code"
	req := httptest.NewRequest(http.MethodGet, qrPath, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = s.do(req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	etag := w.Header().Get("ETag")
	require.NotEmpty(t, etag)

	req = httptest.NewRequest(http.MethodGet, qrPath, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("If-None-Match", etag)
	w = s.do(req)
	assert.Equal(t, http.StatusNotModified, w.Code)

	req = httptest.NewRequest(http.MethodPost, qrPath, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = s.do(req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, testBaseURL+"/artifact/"+id, decode(t, w)["payload"])

	req = httptest.NewRequest(http.MethodDelete, "/admin/artifacts/"+id, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = s.do(req)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(httptest.NewRequest(http.MethodGet, "/artifacts/"+id+"/", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func jsonNumber(id uint) string {
	b, _ := json.Marshal(id)
	return string(b)
}
