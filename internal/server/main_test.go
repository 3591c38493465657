package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"inkwell/internal/cache"
	"inkwell/internal/config"
	"inkwell/internal/database"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var longContent = strings.Repeat("Inkwell keeps posts long enough to read. ", 3)

func testConfig() *config.Config {
	return &config.Config{
		Port:           "0",
		Env:            "test",
		DBDriver:       config.DriverSQLite,
		DBPath:         ":memory:",
		AllowedOrigins: "*",
		TemplatesDir:   "../../web/templates",
		StaticDir:      "../../static",
		MediaDir:       "../../media",
	}
}

func setupSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()
	dialector, err := database.Dialector(testConfig(), false)
	require.NoError(t, err)
	db, err := database.Open(dialector)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))
	return db
}

// setupTestServer builds the full app over an in-memory database. Caching is
// disabled unless rdb is given.
func setupTestServer(t *testing.T, rdb *redis.Client) (*Server, *fiber.App) {
	t.Helper()
	cache.SetClient(rdb)
	t.Cleanup(func() { cache.SetClient(nil) })

	s, err := NewServerWithDeps(testConfig(), setupSQLiteDB(t), rdb)
	require.NoError(t, err)
	return s, s.NewApp()
}

func doRequest(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, raw
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return out
}

type detailBody struct {
	Detail string `json:"detail"`
}

type fieldDetailBody struct {
	Detail []struct {
		Loc  []string `json:"loc"`
		Msg  string   `json:"msg"`
		Type string   `json:"type"`
	} `json:"detail"`
}
