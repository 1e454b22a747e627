package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/faizan/roster/auth"
	"github.com/faizan/roster/bulk"
	"github.com/faizan/roster/metrics"
	"github.com/faizan/roster/middleware"
	"github.com/faizan/roster/models"
	"github.com/faizan/roster/repository"
	"github.com/faizan/roster/services"
	"github.com/faizan/roster/testutil"
	"github.com/faizan/roster/validation"
)

const testPassword = "secret-password"

type testServer struct {
	t      *testing.T
	router *gin.Engine
	db     *gorm.DB
	tokens *auth.TokenIssuer
	hasher *auth.PasswordHasher
}

func newTestServer(t *testing.T, uploadLimit int64) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.NewDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)

	log := zap.NewNop()
	v := validation.New()
	hasher := auth.NewPasswordHasher(4)
	tokens := auth.NewTokenIssuer("access-secret", "refresh-secret", 15*time.Minute, time.Hour)
	m := metrics.New()

	userRepo := repository.NewUserRepository(db)
	artistRepo := repository.NewArtistRepository(db)
	songRepo := repository.NewSongRepository(db)

	artists := services.NewArtistService(artistRepo, v, log)
	router, err := NewRouter(Deps{
		Users:   NewUserHandler(services.NewUserService(userRepo, v, hasher, tokens, log), m),
		Artists: NewArtistHandler(artists),
		Songs:   NewSongHandler(services.NewSongService(songRepo, artistRepo, v, log)),
		Bulk: NewBulkHandler(
			bulk.NewExporter(artistRepo),
			bulk.NewImporter(artists, 50, m, log),
			uploadLimit, log,
		),
		Tokens:       tokens,
		LoginLimiter: middleware.NewRateLimiter(100, 100, log),
		Metrics:      m,
		DB:           sqlDB,
		Log:          log,
	})
	require.NoError(t, err)

	return &testServer{t: t, router: router, db: db, tokens: tokens, hasher: hasher}
}

// seedUser stores a user with testPassword and returns a bearer header for it.
func (s *testServer) seedUser(email string, role models.Role) (*models.User, string) {
	s.t.Helper()
	hash, err := s.hasher.Hash(testPassword)
	require.NoError(s.t, err)
	u := testutil.User(email, role, hash)
	require.NoError(s.t, repository.NewUserRepository(s.db).Create(context.Background(), u))
	pair, err := s.tokens.Issue(u)
	require.NoError(s.t, err)
	return u, "Bearer " + pair.AccessToken
}

func (s *testServer) do(method, path, bearer string, body interface{}) *httptest.ResponseRecorder {
	s.t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", bearer)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Error        string          `json:"error"`
	Message      string          `json:"message"`
	Data         json.RawMessage `json:"data"`
	Pagination   map[string]any  `json:"pagination"`
	AccessToken  string          `json:"accessToken"`
	RefreshToken string          `json:"refreshToken"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

func artistBody(name string) map[string]any {
	return map[string]any{
		"name":                  name,
		"dob":                   "1950-06-01",
		"gender":                "F",
		"address":               "Detroit, MI",
		"first_release_year":    1970,
		"no_of_albums_released": 12,
	}
}

func TestLoginAndRefreshFlow(t *testing.T) {
	s := newTestServer(t, 1<<20)
	s.seedUser("admin@example.com", models.RoleSuperAdmin)

	rec := s.do(http.MethodPost, "/api/v1/users/login", "", map[string]string{"email": "admin@example.com", "password": testPassword})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	env := decode(t, rec)
	assert.NotEmpty(t, env.AccessToken)
	assert.NotEmpty(t, env.RefreshToken)
	assert.NotContains(t, string(env.Data), "password")

	rec = s.do(http.MethodPost, "/api/v1/users/refresh-token", "", map[string]string{"refreshToken": env.RefreshToken})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodPost, "/api/v1/users/refresh-token", "", map[string]string{"refreshToken": env.AccessToken})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodGet, "/api/v1/users", "Bearer "+env.RefreshToken, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginFailuresLookTheSame(t *testing.T) {
	s := newTestServer(t, 1<<20)
	s.seedUser("someone@example.com", models.RoleArtist)

	wrong := s.do(http.MethodPost, "/api/v1/users/login", "", map[string]string{"email": "someone@example.com", "password": "nope"})
	unknown := s.do(http.MethodPost, "/api/v1/users/login", "", map[string]string{"email": "nobody@example.com", "password": "nope"})

	assert.Equal(t, http.StatusUnauthorized, wrong.Code)
	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.JSONEq(t, `{"error":"unauthorized","message":"Invalid credentials"}`, wrong.Body.String())
	assert.JSONEq(t, wrong.Body.String(), unknown.Body.String())
}

func TestUserRoutesRequireSuperAdmin(t *testing.T) {
	s := newTestServer(t, 1<<20)
	_, adminAuth := s.seedUser("admin@example.com", models.RoleSuperAdmin)
	target, artistAuth := s.seedUser("artist@example.com", models.RoleArtist)
	path := fmt.Sprintf("/api/v1/users/%d", target.ID)

	rec := s.do(http.MethodDelete, path, artistAuth, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "forbidden", decode(t, rec).Error)

	rec = s.do(http.MethodDelete, path, "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodDelete, path, adminAuth, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "User deleted successfully", decode(t, rec).Message)

	rec = s.do(http.MethodGet, path, adminAuth, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUserCreateValidationAndConflict(t *testing.T) {
	s := newTestServer(t, 1<<20)
	_, adminAuth := s.seedUser("admin@example.com", models.RoleSuperAdmin)

	body := map[string]any{
		"first_name": "Ada", "last_name": "Lovelace", "address": "London",
		"email": "ada@example.com", "phone": "555", "password": "secret1",
		"dob": "1815-12-10", "gender": "F",
	}
	rec := s.do(http.MethodPost, "/api/v1/users", adminAuth, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created models.User
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &created))
	assert.Equal(t, models.RoleArtist, created.Role)

	rec = s.do(http.MethodPost, "/api/v1/users", adminAuth, body)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Email already exists", decode(t, rec).Message)

	delete(body, "first_name")
	body["email"] = "other@example.com"
	rec = s.do(http.MethodPost, "/api/v1/users", adminAuth, body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "First name is required", decode(t, rec).Message)
}

func TestArtistCRUD(t *testing.T) {
	s := newTestServer(t, 1<<20)
	_, managerAuth := s.seedUser("manager@example.com", models.RoleArtistManager)
	_, artistAuth := s.seedUser("artist@example.com", models.RoleArtist)

	rec := s.do(http.MethodPost, "/api/v1/artists", artistAuth, artistBody("Aretha"))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(http.MethodPost, "/api/v1/artists", managerAuth, artistBody("Aretha"))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var a models.Artist
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &a))
	assert.Equal(t, "1950-06-01", a.Dob.String())

	rec = s.do(http.MethodPost, "/api/v1/artists", managerAuth, artistBody("Aretha"))
	assert.Equal(t, http.StatusConflict, rec.Code)

	path := fmt.Sprintf("/api/v1/artists/%d", a.ID)
	rec = s.do(http.MethodPut, path, managerAuth, map[string]any{"no_of_albums_released": 38})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, path, artistAuth, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &a))
	assert.Equal(t, 38, a.NoOfAlbumsReleased)
	assert.Equal(t, "Aretha", a.Name)

	rec = s.do(http.MethodDelete, path, managerAuth, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(http.MethodDelete, path, managerAuth, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMalformedInputIsBadRequest(t *testing.T) {
	s := newTestServer(t, 1<<20)
	_, managerAuth := s.seedUser("manager@example.com", models.RoleArtistManager)

	for _, path := range []string{"/api/v1/artists/abc", "/api/v1/artists/0", "/api/v1/artists/-4"} {
		rec := s.do(http.MethodGet, path, managerAuth, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
	}

	rec := s.do(http.MethodPost, "/api/v1/artists", managerAuth, `{"name": `)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid JSON body", decode(t, rec).Message)

	rec = s.do(http.MethodPost, "/api/v1/artists", managerAuth, `{"first_release_year": "soon"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid value for first_release_year", decode(t, rec).Message)
}

func TestArtistListPaginationEnvelope(t *testing.T) {
	s := newTestServer(t, 1<<20)
	_, auth := s.seedUser("artist@example.com", models.RoleArtist)

	rec := s.do(http.MethodGet, "/api/v1/artists", auth, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	env := decode(t, rec)
	assert.JSONEq(t, `[]`, string(env.Data))
	assert.Equal(t, float64(0), env.Pagination["total"])

	testutil.SeedArtists(t, s.db, 12)
	rec = s.do(http.MethodGet, "/api/v1/artists?page=0&limit=abc", auth, nil)
	env = decode(t, rec)
	var items []models.Artist
	require.NoError(t, json.Unmarshal(env.Data, &items))
	assert.Len(t, items, 5)
	assert.Equal(t, float64(1), env.Pagination["currentPage"])
	assert.Equal(t, float64(3), env.Pagination["totalPages"])
	assert.Equal(t, float64(2), env.Pagination["nextPage"])

	rec = s.do(http.MethodGet, "/api/v1/artists?page=3&limit=5&search=artist", auth, nil)
	env = decode(t, rec)
	assert.Nil(t, env.Pagination["nextPage"])
}

func TestSongRoutes(t *testing.T) {
	s := newTestServer(t, 1<<20)
	_, artistAuth := s.seedUser("artist@example.com", models.RoleArtist)
	_, managerAuth := s.seedUser("manager@example.com", models.RoleArtistManager)
	a := testutil.Artist("Band")
	require.NoError(t, s.db.Create(a).Error)

	song := map[string]any{"title": "Hit", "album_name": "First", "genre": "rock", "artist_id": 999}
	rec := s.do(http.MethodPost, "/api/v1/music", artistAuth, song)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Artist not found", decode(t, rec).Message)

	song["artist_id"] = a.ID
	rec = s.do(http.MethodPost, "/api/v1/music", managerAuth, song)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(http.MethodPost, "/api/v1/music", artistAuth, song)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(http.MethodGet, fmt.Sprintf("/api/v1/music/artist/%d", a.ID), managerAuth, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), decode(t, rec).Pagination["total"])

	rec = s.do(http.MethodGet, "/api/v1/music/artist/999", managerAuth, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(http.MethodGet, "/api/v1/music/12345", managerAuth, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Music not found", decode(t, rec).Message)
}

func TestExportCSV(t *testing.T) {
	s := newTestServer(t, 1<<20)
	_, adminAuth := s.seedUser("admin@example.com", models.RoleSuperAdmin)
	_, artistAuth := s.seedUser("artist@example.com", models.RoleArtist)
	seeded := testutil.SeedArtists(t, s.db, 2)

	rec := s.do(http.MethodGet, "/api/v1/artists/export/all", adminAuth, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	assert.Len(t, lines, 3)

	rec = s.do(http.MethodGet, fmt.Sprintf("/api/v1/artists/download/%d", seeded[1].ID), adminAuth, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Artist 02")

	rec = s.do(http.MethodGet, "/api/v1/artists/download/999", adminAuth, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	rec = s.do(http.MethodGet, "/api/v1/artists/export/all", artistAuth, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func upload(t *testing.T, s *testServer, bearer, field, content string) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile(field, "artists.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/artists/upload", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", bearer)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func TestImportCSV(t *testing.T) {
	s := newTestServer(t, 1<<20)
	_, managerAuth := s.seedUser("manager@example.com", models.RoleArtistManager)

	csv := "name,dob,gender,address,first_release_year,no_of_albums_released\n" +
		"One,1990-01-01,M,Here,2010,1\n" +
		"Two,1990-01-01,Q,There,2011,2\n"
	rec := upload(t, s, managerAuth, "file", csv)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var report bulk.Report
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &report))
	assert.Equal(t, bulk.Totals{Total: 2, Created: 1, Failed: 1}, report.Totals)
	assert.Equal(t, "Gender must be one of M, F, O", report.Rows[1].Error)

	rec = upload(t, s, managerAuth, "other", csv)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "CSV file is required", decode(t, rec).Message)
}

func TestImportRejectsOversizedFile(t *testing.T) {
	s := newTestServer(t, 64)
	_, managerAuth := s.seedUser("manager@example.com", models.RoleArtistManager)

	csv := "name,dob,gender,address,first_release_year,no_of_albums_released\n" +
		strings.Repeat("Someone,1990-01-01,M,Somewhere,2010,1\n", 4)
	rec := upload(t, s, managerAuth, "file", csv)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "File exceeds the upload limit of 64 bytes", decode(t, rec).Message)
}

func TestOperationalEndpoints(t *testing.T) {
	s := newTestServer(t, 1<<20)

	rec := s.do(http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "roster_http_requests_total")

	rec = s.do(http.MethodGet, "/nowhere", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decode(t, rec).Error)
}
