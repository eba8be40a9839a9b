package delivery

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sopdesk/sopdesk/internal/config"
	"github.com/sopdesk/sopdesk/internal/domain"
	"github.com/sopdesk/sopdesk/internal/models"
)

type fakeRepo struct {
	rows       []models.Record
	err        error
	lastOffset int
	lastLimit  int
	byID       map[string]models.Record
}

// List emulates the store's windowing over the fixture rows.
func (f *fakeRepo) List(ctx context.Context, offset, limit int) ([]models.Record, int, error) {
	f.lastOffset = offset
	f.lastLimit = limit
	if f.err != nil {
		return nil, 0, f.err
	}

	total := len(f.rows)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return f.rows[offset:end], total, nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id string) (models.Record, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byID[id], nil
}

type fakeSigner struct{}

func (fakeSigner) PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error) {
	return "https://signed.example/" + key, nil
}

func newTestRouter(repo *fakeRepo, production bool) http.Handler {
	log := zap.NewNop().Sugar()
	svc := domain.NewSopService(repo, domain.NewLinkResolver(fakeSigner{}, log), log)

	cfg := &config.Config{
		DatabaseURL: "postgres://gateway:secret-dsn@db/sops",
		SopTable:    "sops",
		Environment: "test",
	}

	r := chi.NewRouter()
	RegisterRoutes(r, NewSopHandler(svc, log, production), NewSystemHandler(cfg))
	return r
}

func doGet(t *testing.T, h http.Handler, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

// Three rows, newest first, as the store would return them.
func fixtureRows() []models.Record {
	return []models.Record{
		{"id": "sop-3", "title": "newest", "audio_url": "audio/sop-3.mp3"},
		{"id": "sop-2", "title": "middle", "audio_url": nil},
		{"id": "sop-1", "title": "oldest", "audio_url": "audio/sop-1.mp3"},
	}
}

func TestListFirstPageOfThree(t *testing.T) {
	router := newTestRouter(&fakeRepo{rows: fixtureRows()}, false)

	rec, body := doGet(t, router, "/api/sop?page=1&limit=1")

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, true, body["success"])

	data := body["data"].([]any)
	require.Len(t, data, 1)

	first := data[0].(map[string]any)
	require.Equal(t, "sop-3", first["id"])
	require.Equal(t, "https://signed.example/audio/sop-3.mp3", first["signed_audio_url"])

	pagination := body["pagination"].(map[string]any)
	require.Equal(t, float64(1), pagination["page"])
	require.Equal(t, float64(1), pagination["limit"])
	require.Equal(t, float64(3), pagination["total"])
	require.Equal(t, float64(3), pagination["totalPages"])
}

func TestListNonNumericParamsFallBackToDefaults(t *testing.T) {
	repo := &fakeRepo{rows: fixtureRows()}
	router := newTestRouter(repo, false)

	rec, _ := doGet(t, router, "/api/sop?page=abc&limit=")

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 0, repo.lastOffset)
	require.Equal(t, 10, repo.lastLimit)
}

func TestListNullAudioYieldsNullSignedLink(t *testing.T) {
	router := newTestRouter(&fakeRepo{rows: fixtureRows()}, false)

	_, body := doGet(t, router, "/api/sop?page=2&limit=1")

	data := body["data"].([]any)
	require.Len(t, data, 1)

	middle := data[0].(map[string]any)
	require.Equal(t, "sop-2", middle["id"])

	val, present := middle["signed_audio_url"]
	require.True(t, present)
	require.Nil(t, val)
}

func TestGetByIDSuccess(t *testing.T) {
	repo := &fakeRepo{byID: map[string]models.Record{
		"sop-1": {"id": "sop-1", "audio_url": "audio/sop-1.mp3"},
	}}
	router := newTestRouter(repo, false)

	rec, body := doGet(t, router, "/api/sop/sop-1")

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, true, body["success"])

	data := body["data"].(map[string]any)
	require.Equal(t, "https://signed.example/audio/sop-1.mp3", data["signed_audio_url"])
}

func TestGetByIDNotFound(t *testing.T) {
	router := newTestRouter(&fakeRepo{byID: map[string]models.Record{}}, false)

	rec, body := doGet(t, router, "/api/sop/missing-id")

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "Not Found", body["error"])
}

func TestUpstreamErrorGatedByEnvironment(t *testing.T) {
	boom := errors.New("relation sops does not exist")

	rec, body := doGet(t, newTestRouter(&fakeRepo{err: boom}, false), "/api/sop")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Contains(t, body["message"], "relation sops does not exist")

	rec, body = doGet(t, newTestRouter(&fakeRepo{err: boom}, true), "/api/sop")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, "an unexpected error occurred", body["message"])
}

func TestUnmatchedRouteReturnsJSON(t *testing.T) {
	router := newTestRouter(&fakeRepo{}, false)

	rec, body := doGet(t, router, "/api/nope")

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "Not Found", body["error"])
}

func TestHealth(t *testing.T) {
	router := newTestRouter(&fakeRepo{}, false)

	rec, body := doGet(t, router, "/health")

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", body["status"])
	require.Equal(t, "test", body["environment"])
	require.NotEmpty(t, body["timestamp"])
}

func TestDebugNeverExposesValues(t *testing.T) {
	router := newTestRouter(&fakeRepo{}, false)

	rec, body := doGet(t, router, "/debug")

	require.Equal(t, http.StatusOK, rec.Code)

	flags := body["config"].(map[string]any)
	require.Equal(t, true, flags["DATABASE_URL"])
	require.Equal(t, false, flags["S3_BUCKET"])
	require.False(t, strings.Contains(rec.Body.String(), "secret-dsn"))
}
