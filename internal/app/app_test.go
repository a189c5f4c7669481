package app

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"skillforge_backend/internal/config"
	"skillforge_backend/internal/controller"
	"skillforge_backend/internal/model"
	"skillforge_backend/internal/service"
	"skillforge_backend/internal/util"
	"skillforge_backend/pkg/database"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Server.Port = "5000"
	cfg.Server.Mode = gin.TestMode
	cfg.Database.Driver = config.DriverSQLite
	cfg.CORS.AllowedOrigins = []string{"*"}
	cfg.RateLimit.MaxRequests = 100000
	cfg.RateLimit.WindowMinutes = 1
	return cfg
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.OpenMemory(t.Name())
	require.NoError(t, err)

	a := New(testConfig(), db, nil)
	t.Cleanup(a.Close)
	return a
}

func do(a *App, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func createSkill(t *testing.T, a *App, name string) uint {
	t.Helper()
	w := do(a, http.MethodPost, "/api/skills", fmt.Sprintf(`{"name":%q}`, name))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[controller.CreateSkillResponse](t, w).ID
}

func logSession(a *App, skillID uint, minutes int) *httptest.ResponseRecorder {
	return do(a, http.MethodPost, "/api/sessions", fmt.Sprintf(`{"skill_id":%d,"duration_minutes":%d}`, skillID, minutes))
}

func TestCreateSkill(t *testing.T) {
	a := newTestApp(t)

	w := do(a, http.MethodPost, "/api/skills", `{"name":"Guitar"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	resp := decode[controller.CreateSkillResponse](t, w)
	assert.NotZero(t, resp.ID)
	assert.Equal(t, "Guitar", resp.Name)
	assert.Equal(t, 1, resp.CurrentLevel)
}

func TestCreateSkillDuplicate(t *testing.T) {
	a := newTestApp(t)
	createSkill(t, a, "Guitar")

	for _, name := range []string{"Guitar", "guitar", "  GUITAR "} {
		w := do(a, http.MethodPost, "/api/skills", fmt.Sprintf(`{"name":%q}`, name))
		assert.Equal(t, http.StatusConflict, w.Code, name)
		assert.Contains(t, decode[util.ErrorResponse](t, w).Error, "already exists")
	}
}

func TestCreateSkillValidation(t *testing.T) {
	a := newTestApp(t)

	tests := []struct {
		name string
		body string
		want string
	}{
		{"empty object", `{}`, "Skill 'name' is required"},
		{"null name", `{"name":null}`, "Skill 'name' is required"},
		{"blank name", `{"name":"   "}`, "Skill 'name' cannot be empty"},
		{"not json", `name=Guitar`, "Skill 'name' is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(a, http.MethodPost, "/api/skills", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.want, decode[util.ErrorResponse](t, w).Error)
		})
	}
}

func TestListSkills(t *testing.T) {
	a := newTestApp(t)

	w := do(a, http.MethodGet, "/api/skills", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	first := createSkill(t, a, "Guitar")
	second := createSkill(t, a, "Chess")
	require.Equal(t, http.StatusCreated, logSession(a, second, 150).Code)

	views := decode[[]service.SkillView](t, do(a, http.MethodGet, "/api/skills", ""))
	require.Len(t, views, 2)
	assert.Equal(t, first, views[0].ID)
	assert.Equal(t, service.SkillView{
		ID: second, Name: "Chess", CurrentLevel: 2, TotalXP: 150, XPToNextLevel: 250, ProgressXP: 50,
	}, views[1])
}

func TestGetSkill(t *testing.T) {
	a := newTestApp(t)
	id := createSkill(t, a, "Guitar")

	w := do(a, http.MethodGet, fmt.Sprintf("/api/skills/%d", id), "")
	require.Equal(t, http.StatusOK, w.Code)
	view := decode[service.SkillView](t, w)
	assert.Equal(t, "Guitar", view.Name)
	assert.Equal(t, 100, view.XPToNextLevel)

	for _, path := range []string{"/api/skills/999", "/api/skills/abc", "/api/skills/0"} {
		w := do(a, http.MethodGet, path, "")
		assert.Equal(t, http.StatusNotFound, w.Code, path)
		assert.Equal(t, "Skill not found", decode[util.ErrorResponse](t, w).Error)
	}
}

func TestLogSessionLevelUp(t *testing.T) {
	a := newTestApp(t)
	id := createSkill(t, a, "Guitar")

	w := logSession(a, id, 150)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	resp := decode[controller.LogSessionResponse](t, w)
	assert.Equal(t, "Session logged successfully", resp.Message)
	assert.Equal(t, 150, resp.NewTotalXP)
	assert.Equal(t, 2, resp.NewLevel)

	resp = decode[controller.LogSessionResponse](t, logSession(a, id, 250))
	assert.Equal(t, 400, resp.NewTotalXP)
	assert.Equal(t, 3, resp.NewLevel)
}

func TestLogSessionAcceptsNumericStrings(t *testing.T) {
	a := newTestApp(t)
	id := createSkill(t, a, "Guitar")

	w := do(a, http.MethodPost, "/api/sessions", fmt.Sprintf(`{"skill_id":"%d","duration_minutes":"45"}`, id))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, 45, decode[controller.LogSessionResponse](t, w).NewTotalXP)
}

func TestLogSessionAcceptsIntegralJSONNumbers(t *testing.T) {
	a := newTestApp(t)
	id := createSkill(t, a, "Guitar")

	w := do(a, http.MethodPost, "/api/sessions", fmt.Sprintf(`{"skill_id":%d.0,"duration_minutes":4.5e1}`, id))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, 45, decode[controller.LogSessionResponse](t, w).NewTotalXP)
}

func TestLogSessionErrors(t *testing.T) {
	a := newTestApp(t)
	id := createSkill(t, a, "Guitar")

	tests := []struct {
		name string
		body string
		code int
		want string
	}{
		{"missing duration", fmt.Sprintf(`{"skill_id":%d}`, id), http.StatusBadRequest, "Both 'skill_id' and 'duration_minutes' are required"},
		{"missing skill", `{"duration_minutes":30}`, http.StatusBadRequest, "Both 'skill_id' and 'duration_minutes' are required"},
		{"empty body", ``, http.StatusBadRequest, "Both 'skill_id' and 'duration_minutes' are required"},
		{"negative", fmt.Sprintf(`{"skill_id":%d,"duration_minutes":-50}`, id), http.StatusUnprocessableEntity, "Duration must be between 1 and 1440 minutes"},
		{"zero", fmt.Sprintf(`{"skill_id":%d,"duration_minutes":0}`, id), http.StatusUnprocessableEntity, "Duration must be between 1 and 1440 minutes"},
		{"too long", fmt.Sprintf(`{"skill_id":%d,"duration_minutes":1441}`, id), http.StatusUnprocessableEntity, "Duration must be between 1 and 1440 minutes"},
		{"not a number", fmt.Sprintf(`{"skill_id":%d,"duration_minutes":"abc"}`, id), http.StatusUnprocessableEntity, "Duration must be a valid integer"},
		{"fraction", fmt.Sprintf(`{"skill_id":%d,"duration_minutes":12.5}`, id), http.StatusUnprocessableEntity, "Duration must be a valid integer"},
		{"exponent string", fmt.Sprintf(`{"skill_id":%d,"duration_minutes":"1e3"}`, id), http.StatusUnprocessableEntity, "Duration must be a valid integer"},
		{"huge number", fmt.Sprintf(`{"skill_id":%d,"duration_minutes":1e20}`, id), http.StatusUnprocessableEntity, "Duration must be between 1 and 1440 minutes"},
		{"huge digits", fmt.Sprintf(`{"skill_id":%d,"duration_minutes":"99999999999999999999"}`, id), http.StatusUnprocessableEntity, "Duration must be between 1 and 1440 minutes"},
		{"unknown skill", `{"skill_id":999,"duration_minutes":30}`, http.StatusNotFound, "Skill not found"},
		{"bad duration wins over unknown skill", `{"skill_id":999,"duration_minutes":-5}`, http.StatusUnprocessableEntity, "Duration must be between 1 and 1440 minutes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(a, http.MethodPost, "/api/sessions", tt.body)
			assert.Equal(t, tt.code, w.Code, w.Body.String())
			assert.Equal(t, tt.want, decode[util.ErrorResponse](t, w).Error)
		})
	}

	// 失败的请求不改变技能
	view := decode[service.SkillView](t, do(a, http.MethodGet, fmt.Sprintf("/api/skills/%d", id), ""))
	assert.Equal(t, 0, view.TotalXP)
	assert.Equal(t, 1, view.CurrentLevel)
}

func TestListSessions(t *testing.T) {
	a := newTestApp(t)
	guitar := createSkill(t, a, "Guitar")
	chess := createSkill(t, a, "Chess")
	logSession(a, guitar, 10)
	logSession(a, guitar, 20)
	logSession(a, chess, 30)

	all := decode[[]model.Session](t, do(a, http.MethodGet, "/api/sessions", ""))
	assert.Len(t, all, 3)

	mine := decode[[]model.Session](t, do(a, http.MethodGet, fmt.Sprintf("/api/skills/%d/sessions", guitar), ""))
	require.Len(t, mine, 2)
	assert.Equal(t, 20, mine[0].DurationMinutes)

	limited := decode[[]model.Session](t, do(a, http.MethodGet, fmt.Sprintf("/api/sessions?skill_id=%d&limit=1", guitar), ""))
	assert.Len(t, limited, 1)

	assert.Equal(t, http.StatusNotFound, do(a, http.MethodGet, "/api/sessions?skill_id=999", "").Code)
	assert.Equal(t, http.StatusNotFound, do(a, http.MethodGet, "/api/skills/999/sessions", "").Code)
}

func TestDeleteSkillCascades(t *testing.T) {
	a := newTestApp(t)
	guitar := createSkill(t, a, "Guitar")
	chess := createSkill(t, a, "Chess")
	logSession(a, guitar, 30)
	logSession(a, guitar, 40)
	logSession(a, chess, 50)

	w := do(a, http.MethodDelete, fmt.Sprintf("/api/skills/%d", guitar), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Skill 'Guitar' and all its sessions have been deleted", decode[util.MessageResponse](t, w).Message)

	var orphaned int64
	require.NoError(t, a.DB.Model(&model.Session{}).Where("skill_id = ?", guitar).Count(&orphaned).Error)
	assert.Zero(t, orphaned)

	left := decode[[]model.Session](t, do(a, http.MethodGet, "/api/sessions", ""))
	require.Len(t, left, 1)
	assert.Equal(t, chess, left[0].SkillID)

	assert.Equal(t, http.StatusNotFound, do(a, http.MethodGet, fmt.Sprintf("/api/skills/%d", guitar), "").Code)
	assert.Equal(t, http.StatusNotFound, do(a, http.MethodDelete, fmt.Sprintf("/api/skills/%d", guitar), "").Code)

	// 名称释放后可重新创建
	createSkill(t, a, "guitar")
}

func TestHealthAndMetrics(t *testing.T) {
	a := newTestApp(t)

	w := do(a, http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode[map[string]any](t, w)
	assert.Equal(t, "ok", body["status"])

	createSkill(t, a, "Guitar")
	w = do(a, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}

func TestCORSAndRequestID(t *testing.T) {
	a := newTestApp(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/skills", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	w = do(a, http.MethodGet, "/api/skills", "")
	assert.NotEmpty(t, w.Header().Get(util.RequestIDHeader))
}

func TestShouldMigrate(t *testing.T) {
	cfg := testConfig()
	assert.True(t, shouldMigrate(cfg))

	cfg.Server.Mode = gin.ReleaseMode
	assert.True(t, shouldMigrate(cfg), "sqlite always migrates")

	cfg.Database.Driver = config.DriverMySQL
	assert.False(t, shouldMigrate(cfg))

	cfg.ForceMigrate = true
	assert.True(t, shouldMigrate(cfg))
}
