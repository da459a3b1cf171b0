package app

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/riskibarqy/futsal-club/internal/config"
	"github.com/riskibarqy/futsal-club/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryConfig() config.Config {
	return config.Config{
		AppEnv:                  config.EnvDev,
		ServiceName:             "futsal-club-api",
		HTTPAddr:                ":0",
		StorageDriver:           config.StorageMemory,
		CacheEnabled:            true,
		CacheTTL:                time.Minute,
		CORSAllowedOrigins:      []string{"*"},
		AdminToken:              "token",
		MetricsEnabled:          true,
		RankingRefreshEnabled:   true,
		RankingRefreshInterval:  time.Hour,
		RatingRecalcWorkers:     2,
		HallOfFameMinAttendance: 25,
		GuestSkillTenScale:      5,
	}
}

func TestNew_MemoryStorageServesRoutes(t *testing.T) {
	a, err := New(t.Context(), memoryConfig(), logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	require.NotNil(t, a.Scheduler)
	require.NoError(t, a.Start())

	for _, path := range []string{"/healthz", "/v1/players", "/metrics", "/v1/rankings/2025"} {
		rec := httptest.NewRecorder()
		a.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}

	require.NoError(t, a.Close())
	require.NoError(t, a.Close())
}

func TestNew_RejectsInvalidSettings(t *testing.T) {
	cfg := memoryConfig()
	cfg.HTTPAddr = " "
	_, err := New(t.Context(), cfg, nil)
	require.Error(t, err)

	cfg = memoryConfig()
	cfg.HallOfFameMinAttendance = -1
	_, err = New(t.Context(), cfg, nil)
	require.Error(t, err)
}

func TestNew_MetricsDisabled(t *testing.T) {
	cfg := memoryConfig()
	cfg.MetricsEnabled = false
	cfg.RankingRefreshEnabled = false

	a, err := New(t.Context(), cfg, nil)
	require.NoError(t, err)
	assert.Nil(t, a.Scheduler)

	rec := httptest.NewRecorder()
	a.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
