package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"equiptrack/internal/cache"
	"equiptrack/internal/database"
	"equiptrack/internal/domain/auth"
	"equiptrack/internal/pkg/jwt"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type client struct {
	t      *testing.T
	router http.Handler
	token  string
}

func (c *client) do(method, path string, body any) (int, envelope) {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)

	var env envelope
	require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func setupRouter(t *testing.T) (http.Handler, *auth.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:app_test_%s?mode=memory&cache=shared", t.Name())
	db, err := database.Connect(dsn, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, database.Bootstrap(context.Background(), db))

	tokens := jwt.New("test-secret", time.Hour)
	users := auth.NewService(auth.NewRepository(db), tokens, zap.NewNop())

	router := NewRouter(Options{
		DB:        db,
		Tokens:    tokens,
		Logger:    zap.NewNop(),
		BusySlots: cache.Nop{},
	})
	return router, users
}

func login(t *testing.T, router http.Handler, email, password string) *client {
	t.Helper()
	c := &client{t: t, router: router}
	code, env := c.do(http.MethodPost, "/api/v1/auth/login", gin.H{"email": email, "password": password})
	require.Equal(t, http.StatusOK, code, env.Error.Message)

	var data struct {
		Tokens struct {
			AccessToken string `json:"access_token"`
		} `json:"tokens"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	c.token = data.Tokens.AccessToken
	return c
}

func idOf(t *testing.T, env envelope, key string) int64 {
	t.Helper()
	var data map[string]struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	return data[key].ID
}

func TestReservationLifecycleOverHTTP(t *testing.T) {
	router, users := setupRouter(t)
	ctx := context.Background()

	_, err := users.CreateUser(ctx, auth.CreateUserRequest{
		Email: "staff@example.com", Password: "secret123", Name: "Staff", Roles: []auth.Role{auth.RoleStudio},
	})
	require.NoError(t, err)
	_, err = users.CreateUser(ctx, auth.CreateUserRequest{
		Email: "user@example.com", Password: "secret123", Name: "User", Roles: []auth.Role{auth.RoleUser},
	})
	require.NoError(t, err)

	staff := login(t, router, "staff@example.com", "secret123")
	user := login(t, router, "user@example.com", "secret123")

	// plain users cannot register equipment
	code, _ := user.do(http.MethodPost, "/api/v1/equipment", gin.H{"name": "Camera", "serial_number": "CAM-1"})
	assert.Equal(t, http.StatusForbidden, code)

	code, env := staff.do(http.MethodPost, "/api/v1/equipment", gin.H{"name": "Camera", "serial_number": "CAM-1", "type": "camera"})
	require.Equal(t, http.StatusCreated, code)
	equipmentID := idOf(t, env, "equipment")

	code, env = user.do(http.MethodPost, "/api/v1/reservations", gin.H{
		"equipment_id": equipmentID,
		"start_date":   "2025-01-10T09:00:00Z",
		"end_date":     "2025-01-10T11:00:00Z",
	})
	require.Equal(t, http.StatusCreated, code, env.Error.Message)
	reservationID := idOf(t, env, "reservation")

	code, env = user.do(http.MethodGet, fmt.Sprintf("/api/v1/equipment/%d", equipmentID), nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"name":"reserved"`)

	code, env = user.do(http.MethodPost, "/api/v1/reservations", gin.H{
		"equipment_id": equipmentID,
		"start_date":   "2025-01-10T10:00:00Z",
		"end_date":     "2025-01-10T12:00:00Z",
	})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "RESERVATION_CONFLICT", env.Error.Code)

	update := gin.H{
		"equipment_id": equipmentID,
		"start_date":   "2025-01-10T09:00:00Z",
		"end_date":     "2025-01-10T11:00:00Z",
		"status":       "returned",
	}
	path := fmt.Sprintf("/api/v1/reservations/%d", reservationID)

	code, _ = user.do(http.MethodPut, path, update)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, env = staff.do(http.MethodPut, path, update)
	require.Equal(t, http.StatusOK, code, env.Error.Message)
	var out struct {
		Deleted bool `json:"deleted"`
		History struct {
			ID   int64     `json:"id"`
			Date time.Time `json:"date"`
		} `json:"history"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.True(t, out.Deleted)
	assert.True(t, out.History.Date.Equal(time.Date(2025, 1, 10, 11, 0, 0, 0, time.UTC)))

	code, _ = staff.do(http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, env = staff.do(http.MethodGet, fmt.Sprintf("/api/v1/history/%d", out.History.ID), nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"name":"returned"`)
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	router, _ := setupRouter(t)
	anon := &client{t: t, router: router}

	code, env := anon.do(http.MethodGet, "/api/v1/reservations/1", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "AUTH_HEADER_MISSING", env.Error.Code)

	code, env = anon.do(http.MethodPost, "/api/v1/auth/login", gin.H{"email": "nobody@example.com", "password": "x"})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "INVALID_CREDENTIALS", env.Error.Code)
}
