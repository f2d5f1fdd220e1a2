package bootstrap

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appControllers "github.com/yigit/school/internal/app/controllers"
	"github.com/yigit/school/internal/config"
	"github.com/yigit/school/internal/pkg/logger"
)

func TestSetupRouterServesDocsAndPing(t *testing.T) {
	cfg, err := config.Load("", "")
	require.NoError(t, err)
	cfg.Server.Mode = "production"

	deps := &Dependencies{
		FacultyController: appControllers.NewFacultyController(nil),
		StudentController: appControllers.NewStudentController(nil),
		AvatarController:  appControllers.NewAvatarController(nil),
	}
	router := SetupRouter(cfg, deps, nil, logger.Get())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"title": "School API"`)
	assert.Contains(t, rec.Body.String(), `"/students/{id}/avatar"`)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLoadConfigAndSetupLoggerMissingFileUsesDefaults(t *testing.T) {
	cfg, _, err := LoadConfigAndSetupLogger(t.TempDir() + "/absent.yaml")
	require.NoError(t, err)
	assert.Equal(t, "avatars", cfg.Storage.AvatarsDir)
	assert.Equal(t, 2, cfg.Workers.PrintPoolSize)
}
