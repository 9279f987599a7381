package handler_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"prodsight-server/internal/handler"
	"prodsight-server/internal/models"
	"prodsight-server/internal/optimizer"
	"prodsight-server/internal/scheduler"
	"prodsight-server/internal/scheduler/mocks"
	"prodsight-server/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestRouter wires the handler against a temp store and a mocked AI
// client, the same shape as the production wiring in cmd/server.
func newTestRouter(t *testing.T, dataDir string, client scheduler.ScheduleClient) *gin.Engine {
	t.Helper()

	log := zap.NewNop()
	st := store.New(dataDir, log)
	sch := scheduler.NewScheduler(client, "gemini-2.5-flash-lite", log)

	router := gin.New()
	handler.NewAIHandler(st, optimizer.New(), sch, log).RegisterRoutes(router)
	return router
}

func seedDocument(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func perform(router *gin.Engine, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	router.ServeHTTP(rec, req)
	return rec
}

const productionDoc = `{
  "project_info": {"title": "Static"},
  "shooting_schedule": [
    {"scene_number": 3, "scene_title": "EXT. DESERT HIGHWAY - NIGHT", "location": "Desert Highway", "time_of_day": "NIGHT", "estimated_duration_minutes": 45, "actors": [{"name": "Jake"}], "extras": []},
    {"scene_number": 1, "scene_title": "INT. RADIO STATION - CONTROL ROOM - DAY", "location": "Radio Station Control Room", "time_of_day": "DAY", "estimated_duration_minutes": 60, "actors": [{"name": "Maya"}], "extras": []},
    {"scene_number": 2, "scene_title": "INT. RADIO STATION - HALLWAY - DAY", "location": "Radio Station Hallway", "time_of_day": "DAY", "estimated_duration_minutes": 30, "actors": [{"name": "Maya"}], "extras": []}
  ]
}`

const shootingDoc = `{
  "project_title": "Static",
  "shooting_schedule": {
    "scenes": [
      {"scene_number": 1, "scene_title": "INT. RADIO STATION - DAY", "location": "Radio Station", "time_of_day": "DAY", "estimated_duration_minutes": 60, "actors": [{"name": "Maya"}], "extras": []},
      {"scene_number": 2, "scene_title": "EXT. DESERT HIGHWAY - NIGHT", "location": "Desert Highway", "time_of_day": "NIGHT", "estimated_duration_minutes": 45, "actors": [{"name": "Jake"}], "extras": []}
    ]
  }
}`

func TestSortSchedule(t *testing.T) {
	t.Run("Sorts, persists and reports the optimized order", func(t *testing.T) {
		dir := t.TempDir()
		seedDocument(t, dir, store.ProductionScheduleFile, productionDoc)
		router := newTestRouter(t, dir, mocks.NewMockScheduleClient(t))

		rec := perform(router, http.MethodPost, "/api/ai/schedule/sort")

		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Equal(t, "success", gjson.Get(body, "status").String())
		assert.Equal(t, int64(3), gjson.Get(body, "total_scenes").Int())
		assert.Equal(t, store.OptimizedScheduleFile, gjson.Get(body, "saved_file").String())

		// Clusters keep discovery order, so the Desert Highway scene stays
		// first and the two Radio Station scenes follow together.
		order := gjson.Get(body, "sorted_scenes.#.scene_number").Array()
		require.Len(t, order, 3)
		assert.Equal(t, int64(3), order[0].Int())
		assert.Equal(t, int64(1), order[1].Int())
		assert.Equal(t, int64(2), order[2].Int())

		saved, err := os.ReadFile(filepath.Join(dir, store.OptimizedScheduleFile))
		require.NoError(t, err)
		assert.Equal(t, int64(3), gjson.GetBytes(saved, "optimization_info.total_scenes").Int())
		assert.Equal(t, "Static", gjson.GetBytes(saved, "project_info.title").String())
	})

	t.Run("Missing production schedule yields 404", func(t *testing.T) {
		router := newTestRouter(t, t.TempDir(), mocks.NewMockScheduleClient(t))

		rec := perform(router, http.MethodPost, "/api/ai/schedule/sort")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "error", gjson.Get(rec.Body.String(), "status").String())
	})

	t.Run("Empty scene list yields 400", func(t *testing.T) {
		dir := t.TempDir()
		seedDocument(t, dir, store.ProductionScheduleFile, `{"shooting_schedule": []}`)
		router := newTestRouter(t, dir, mocks.NewMockScheduleClient(t))

		rec := perform(router, http.MethodPost, "/api/ai/schedule/sort")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Corrupt document yields 400", func(t *testing.T) {
		dir := t.TempDir()
		seedDocument(t, dir, store.ProductionScheduleFile, "{broken")
		router := newTestRouter(t, dir, mocks.NewMockScheduleClient(t))

		rec := perform(router, http.MethodPost, "/api/ai/schedule/sort")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestPreviewSchedule(t *testing.T) {
	t.Run("Returns at most five scenes without persisting", func(t *testing.T) {
		dir := t.TempDir()
		seedDocument(t, dir, store.ProductionScheduleFile, bigProductionDoc(t))
		router := newTestRouter(t, dir, mocks.NewMockScheduleClient(t))

		rec := perform(router, http.MethodGet, "/api/ai/schedule/preview")

		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Equal(t, int64(7), gjson.Get(body, "total_scenes_available").Int())
		assert.Equal(t, int64(5), gjson.Get(body, "preview_count").Int())
		assert.Len(t, gjson.Get(body, "preview_scenes").Array(), 5)

		_, err := os.Stat(filepath.Join(dir, store.OptimizedScheduleFile))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("Missing document yields 404", func(t *testing.T) {
		router := newTestRouter(t, t.TempDir(), mocks.NewMockScheduleClient(t))

		rec := perform(router, http.MethodGet, "/api/ai/schedule/preview")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestGenerateSchedule(t *testing.T) {
	t.Run("AI success persists the artifact", func(t *testing.T) {
		dir := t.TempDir()
		seedDocument(t, dir, store.ShootingScheduleFile, shootingDoc)

		client := mocks.NewMockScheduleClient(t)
		client.On("GenerateSchedule", mock.Anything, mock.AnythingOfType("string")).
			Return(&models.ScheduleResult{
				SchedulingStrategy: "model strategy",
				TotalShootingDays:  2,
				DailySchedules:     []models.DailySchedule{{Day: 1}, {Day: 2}},
			}, nil).Once()

		router := newTestRouter(t, dir, client)
		rec := perform(router, http.MethodPost, "/api/ai/schedule/generate")

		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Equal(t, "success", gjson.Get(body, "status").String())
		assert.Equal(t, int64(2), gjson.Get(body, "total_shooting_days").Int())
		assert.Equal(t, store.AIScheduleFile, gjson.Get(body, "saved_file").String())
		assert.False(t, gjson.Get(body, "generation_info.fallback_used").Bool())

		saved, err := os.ReadFile(filepath.Join(dir, store.AIScheduleFile))
		require.NoError(t, err)
		assert.Equal(t, int64(2), gjson.GetBytes(saved, "optimized_schedule.total_shooting_days").Int())
		assert.False(t, gjson.GetBytes(saved, "is_mock").Bool())
	})

	t.Run("Fallback answers with a warning and does not persist", func(t *testing.T) {
		dir := t.TempDir()
		seedDocument(t, dir, store.ShootingScheduleFile, shootingDoc)

		client := mocks.NewMockScheduleClient(t)
		client.On("GenerateSchedule", mock.Anything, mock.AnythingOfType("string")).
			Return(nil, scheduler.ErrMissingCredential).Once()

		router := newTestRouter(t, dir, client)
		rec := perform(router, http.MethodPost, "/api/ai/schedule/generate")

		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Equal(t, "warning", gjson.Get(body, "status").String())
		assert.Contains(t, gjson.Get(body, "message").String(), "fallback algorithm")
		assert.True(t, gjson.Get(body, "is_mock").Bool())
		assert.True(t, gjson.Get(body, "generation_info.fallback_used").Bool())
		// One day per location in the fallback plan.
		assert.Equal(t, int64(2), gjson.Get(body, "schedule_data.total_shooting_days").Int())

		_, err := os.Stat(filepath.Join(dir, store.AIScheduleFile))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("Missing shooting schedule yields 404", func(t *testing.T) {
		router := newTestRouter(t, t.TempDir(), mocks.NewMockScheduleClient(t))

		rec := perform(router, http.MethodPost, "/api/ai/schedule/generate")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("Empty scene list yields 400", func(t *testing.T) {
		dir := t.TempDir()
		seedDocument(t, dir, store.ShootingScheduleFile,
			`{"project_title": "Static", "shooting_schedule": {"scenes": []}}`)
		router := newTestRouter(t, dir, mocks.NewMockScheduleClient(t))

		rec := perform(router, http.MethodPost, "/api/ai/schedule/generate")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestScheduleAnalysis(t *testing.T) {
	t.Run("Reports locations, clusters and workload", func(t *testing.T) {
		dir := t.TempDir()
		seedDocument(t, dir, store.ShootingScheduleFile, shootingDoc)
		router := newTestRouter(t, dir, mocks.NewMockScheduleClient(t))

		rec := perform(router, http.MethodGet, "/api/ai/schedule/analysis")

		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Equal(t, "success", gjson.Get(body, "status").String())
		assert.Equal(t, store.ShootingScheduleFile, gjson.Get(body, "data_source").String())
		assert.Equal(t, int64(2), gjson.Get(body, "analysis.total_scenes").Int())
		assert.Equal(t, int64(2), gjson.Get(body, "analysis.unique_locations").Int())
		assert.Equal(t, int64(1), gjson.Get(body, "analysis.time_distribution.DAY").Int())
		assert.Equal(t, int64(1), gjson.Get(body, "analysis.time_distribution.NIGHT").Int())
	})

	t.Run("Missing document yields 404", func(t *testing.T) {
		router := newTestRouter(t, t.TempDir(), mocks.NewMockScheduleClient(t))

		rec := perform(router, http.MethodGet, "/api/ai/schedule/analysis")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func bigProductionDoc(t *testing.T) string {
	t.Helper()
	doc := `{"shooting_schedule": [`
	for i := 1; i <= 7; i++ {
		if i > 1 {
			doc += ","
		}
		doc += `{"scene_number": ` + strconv.Itoa(i) + `, "scene_title": "Scene", "location": "Stage", "time_of_day": "DAY", "actors": [], "extras": []}`
	}
	return doc + `]}`
}
