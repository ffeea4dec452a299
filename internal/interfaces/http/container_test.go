package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	nethttp "net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	userUsecases "github.com/orris-inc/helpdesk/internal/application/user/usecases"
	"github.com/orris-inc/helpdesk/internal/infrastructure/database"
	"github.com/orris-inc/helpdesk/internal/infrastructure/migration"
	"github.com/orris-inc/helpdesk/internal/infrastructure/permission"
	"github.com/orris-inc/helpdesk/internal/infrastructure/repository"
	"github.com/orris-inc/helpdesk/internal/shared/config"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
	"github.com/orris-inc/helpdesk/internal/shared/utils"
)

// requestTimeout bounds every call so a connection-pool deadlock fails the
// test instead of hanging it.
const requestTimeout = 10 * time.Second

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		Server: config.ServerConfig{Mode: gin.TestMode},
		Database: config.DatabaseConfig{
			Driver:     config.DriverSQLite,
			SQLitePath: filepath.Join(dir, "helpdesk.db"),
		},
		Auth: config.AuthConfig{
			Password:  config.PasswordConfig{BcryptCost: bcrypt.MinCost, MinLength: 8},
			JWT:       config.JWTConfig{Secret: "test-secret", Issuer: "helpdesk-test", AccessExpMinutes: 60},
			Cookie:    config.CookieConfig{Path: "/", SameSite: "Lax"},
			RateLimit: config.RateLimitConfig{Requests: 100, WindowSeconds: 60},
		},
		Storage: config.StorageConfig{
			Driver:            config.StorageLocal,
			LocalPath:         filepath.Join(dir, "files"),
			MaxUploadMB:       1,
			AllowedExtensions: []string{".txt"},
		},
		App: config.AppConfig{Locale: "en", Timezone: "UTC"},
	}
}

// newTestContainer builds the production container on a file-backed sqlite
// database opened exactly as the server opens it.
func newTestContainer(t *testing.T) *Container {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := testConfig(t)
	log := logger.NewNopLogger()
	ctx := context.Background()

	gdb, err := database.Open(&cfg.Database)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	manager, err := migration.NewManager(&cfg.Database, log)
	require.NoError(t, err)
	require.NoError(t, manager.Up(gdb))

	defaults, err := permission.LoadDefaults()
	require.NoError(t, err)
	seedEnforcer, err := permission.NewEnforcer(gdb, log)
	require.NoError(t, err)
	seeder := permission.NewSeeder(repository.NewRoleRepository(gdb), repository.NewPermissionRepository(gdb), seedEnforcer, log)
	require.NoError(t, seeder.Seed(ctx, defaults))

	c, err := NewContainer(ctx, gdb, cfg, log)
	require.NoError(t, err)
	t.Cleanup(c.Shutdown)
	c.SetupRoutes()
	return c
}

// within runs fn and fails the test when it does not return in time.
func within(t *testing.T, what string, fn func()) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		defer close(done)
		fn()
	}()
	select {
	case <-done:
	case <-time.After(requestTimeout):
		t.Fatalf("%s did not finish within %s", what, requestTimeout)
	}
}

func doJSON(t *testing.T, c *Container, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	within(t, method+" "+path, func() {
		c.GetEngine().ServeHTTP(w, req)
	})
	return w
}

func login(t *testing.T, c *Container, email, password string) string {
	t.Helper()
	w := doJSON(t, c, nethttp.MethodPost, "/auth/login", "", map[string]string{"email": email, "password": password})
	require.Equal(t, nethttp.StatusOK, w.Code, w.Body.String())

	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == utils.AccessTokenCookie {
			return cookie.Value
		}
	}
	t.Fatalf("login for %s set no session cookie", email)
	return ""
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	require.True(t, env.Success, w.Body.String())
	require.NoError(t, json.Unmarshal(env.Data, out))
}

func TestContainer_CreateAdministratorOnSQLite(t *testing.T) {
	c := newTestContainer(t)

	var err error
	within(t, "create administrator", func() {
		_, err = c.ucs.createUserUC.Execute(context.Background(), userUsecases.CreateUserCommand{
			Name:     "Admin",
			Email:    "admin@example.com",
			Password: "secret123",
			Roles:    []string{"admin"},
		})
	})
	require.NoError(t, err)

	roles, err := c.enforcer.GetRolesForUser("1")
	require.NoError(t, err)
	assert.Equal(t, []string{"admin"}, roles)
}

func TestContainer_UserLifecycleOverHTTP(t *testing.T) {
	c := newTestContainer(t)

	var err error
	within(t, "create administrator", func() {
		_, err = c.ucs.createUserUC.Execute(context.Background(), userUsecases.CreateUserCommand{
			Name: "Admin", Email: "admin@example.com", Password: "secret123", Roles: []string{"admin"},
		})
	})
	require.NoError(t, err)
	adminToken := login(t, c, "admin@example.com", "secret123")

	w := doJSON(t, c, nethttp.MethodPost, "/customers", adminToken, map[string]string{
		"name": "Acme", "email": "acme@example.com",
	})
	require.Equal(t, nethttp.StatusCreated, w.Code, w.Body.String())
	var cust struct {
		ID uint `json:"id"`
	}
	decodeData(t, w, &cust)

	w = doJSON(t, c, nethttp.MethodPost, "/tickets", adminToken, map[string]any{
		"subject": "other", "description": "Printer jam", "customer_id": cust.ID,
	})
	require.Equal(t, nethttp.StatusCreated, w.Code, w.Body.String())
	var tk struct {
		ID uint `json:"id"`
	}
	decodeData(t, w, &tk)

	w = doJSON(t, c, nethttp.MethodPost, "/users", adminToken, map[string]any{
		"name": "Bob", "email": "bob@example.com", "password": "secret123", "roles": []string{"admin"},
	})
	require.Equal(t, nethttp.StatusCreated, w.Code, w.Body.String())
	var bob struct {
		ID    uint     `json:"id"`
		Roles []string `json:"roles"`
	}
	decodeData(t, w, &bob)
	assert.Equal(t, []string{"admin"}, bob.Roles)

	bobToken := login(t, c, "bob@example.com", "secret123")
	w = doJSON(t, c, nethttp.MethodGet, "/users", bobToken, nil)
	assert.Equal(t, nethttp.StatusOK, w.Code)

	t.Run("demotion applies to a session issued before it", func(t *testing.T) {
		w := doJSON(t, c, nethttp.MethodPut, fmt.Sprintf("/users/%d", bob.ID), adminToken, map[string]any{
			"name": "Bob", "email": "bob@example.com", "roles": []string{"customer"},
		})
		require.Equal(t, nethttp.StatusOK, w.Code, w.Body.String())

		w = doJSON(t, c, nethttp.MethodGet, "/users", bobToken, nil)
		assert.Equal(t, nethttp.StatusForbidden, w.Code)

		w = doJSON(t, c, nethttp.MethodGet, "/tickets", bobToken, nil)
		require.Equal(t, nethttp.StatusOK, w.Code, w.Body.String())
		var list struct {
			Total int64 `json:"total"`
		}
		decodeData(t, w, &list)
		assert.Zero(t, list.Total)

		w = doJSON(t, c, nethttp.MethodGet, fmt.Sprintf("/tickets/%d", tk.ID), bobToken, nil)
		assert.Equal(t, nethttp.StatusNotFound, w.Code)
	})

	t.Run("deleted user loses every grant", func(t *testing.T) {
		w := doJSON(t, c, nethttp.MethodDelete, fmt.Sprintf("/users/%d", bob.ID), adminToken, nil)
		require.Equal(t, nethttp.StatusNoContent, w.Code, w.Body.String())

		roles, err := c.enforcer.GetRolesForUser(fmt.Sprint(bob.ID))
		require.NoError(t, err)
		assert.Empty(t, roles)

		w = doJSON(t, c, nethttp.MethodGet, "/tickets", bobToken, nil)
		assert.Equal(t, nethttp.StatusForbidden, w.Code)
	})
}
