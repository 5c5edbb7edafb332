package auth

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"locker-booking/logger"
	userModel "locker-booking/models/user"
	"locker-booking/types"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newAuthApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&userModel.User{}))

	app := fiber.New()
	h := NewAuthController(db, logger.NewAsyncLogger(db))
	app.Post("/api/register", h.Register)
	app.Post("/api/login", h.Login)
	app.Post("/api/logout", h.LogOut)
	return app, db
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) (*http.Response, types.ApiResponse) {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var parsed types.ApiResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	resp.Body.Close()
	return resp, parsed
}

func TestRegister(t *testing.T) {
	app, db := newAuthApp(t)

	resp, parsed := postJSON(t, app, "/api/register", map[string]string{
		"username": "alice",
		"password": "a-long-password",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.NotEmpty(t, parsed.Token)

	var u userModel.User
	require.NoError(t, db.Where("username = ?", "alice").First(&u).Error)
	assert.Equal(t, userModel.RoleCustomer, u.Role)
	assert.NotEmpty(t, u.Uuid)
	// The password is stored hashed, never verbatim.
	assert.NotEqual(t, "a-long-password", u.PasswordHash)

	// The password hash never leaks into the response payload.
	data, ok := parsed.Data.(map[string]interface{})
	require.True(t, ok)
	_, leaked := data["PasswordHash"]
	assert.False(t, leaked)

	t.Run("duplicate username", func(t *testing.T) {
		resp, _ := postJSON(t, app, "/api/register", map[string]string{
			"username": "alice",
			"password": "another-password",
		})
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("short password", func(t *testing.T) {
		resp, _ := postJSON(t, app, "/api/register", map[string]string{
			"username": "bob",
			"password": "short",
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestLogin(t *testing.T) {
	app, _ := newAuthApp(t)

	resp, _ := postJSON(t, app, "/api/register", map[string]string{
		"username": "alice",
		"password": "a-long-password",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	t.Run("valid credentials", func(t *testing.T) {
		resp, parsed := postJSON(t, app, "/api/login", map[string]string{
			"username": "alice",
			"password": "a-long-password",
		})
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.NotEmpty(t, parsed.Token)
		// A session cookie is set alongside the token.
		cookies := resp.Cookies()
		require.NotEmpty(t, cookies)
		assert.Equal(t, "access", cookies[0].Name)
		assert.NotEmpty(t, cookies[0].Value)
	})

	t.Run("wrong password", func(t *testing.T) {
		resp, parsed := postJSON(t, app, "/api/login", map[string]string{
			"username": "alice",
			"password": "wrong-password",
		})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "Invalid username or password", parsed.Message)
	})

	t.Run("unknown user gets the same message", func(t *testing.T) {
		resp, parsed := postJSON(t, app, "/api/login", map[string]string{
			"username": "mallory",
			"password": "whatever-password",
		})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "Invalid username or password", parsed.Message)
	})
}

func TestLogOutClearsCookie(t *testing.T) {
	app, _ := newAuthApp(t)

	resp, _ := postJSON(t, app, "/api/logout", map[string]string{})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	cookies := resp.Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, "access", cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
}
