package integration

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"eventchat-be/internal/bootstrap"
	"eventchat-be/internal/config"
	"eventchat-be/internal/dto"
	"eventchat-be/internal/model"
	"eventchat-be/internal/pkg/serverutils"
	"eventchat-be/internal/server"
	"eventchat-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthFlow(t *testing.T) {
	// Load .env from root (2 levels up) because tests run in package dir
	if err := godotenv.Load("../../.env"); err != nil {
		t.Logf("Warning: Could not load ../../.env: %v", err)
	}
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		t.Skip("DB_CONNECTION_STRING not set, skipping integration test")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	container := bootstrap.NewContainer(db, cfg)
	srv := server.New(cfg, container)
	app := srv.GetApp()

	// Seed admin and regular accounts
	pass := "secret123"
	hash, _ := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)

	adminId := uuid.New()
	admin := model.User{
		Id:           adminId,
		Username:     "itadmin",
		Email:        "itadmin@example.test",
		PasswordHash: string(hash),
		Name:         "Integration Admin",
		Role:         "admin",
		Active:       true,
	}

	userId := uuid.New()
	regular := model.User{
		Id:           userId,
		Username:     "ituser",
		Email:        "ituser@example.test",
		PasswordHash: string(hash),
		Name:         "Integration User",
		Role:         "user",
		Active:       true,
	}

	db.Create(&admin)
	db.Create(&regular)

	defer func() {
		db.Where("user_id IN ?", []uuid.UUID{adminId, userId}).Delete(&model.SessionToken{})
		db.Delete(&model.User{}, adminId)
		db.Delete(&model.User{}, userId)

		var registered model.User
		if db.Where("username = ?", "itnewuser").First(&registered).Error == nil {
			db.Where("user_id = ?", registered.Id).Delete(&model.SessionToken{})
			db.Delete(&model.User{}, registered.Id)
		}
	}()

	login := func(username, password string) (*serverutils.BaseResponse[dto.LoginResponse], int) {
		body, _ := json.Marshal(dto.LoginRequest{Username: username, Password: password})
		req := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(string(body)))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req, -1)
		assert.NoError(t, err)

		var result serverutils.BaseResponse[dto.LoginResponse]
		json.NewDecoder(resp.Body).Decode(&result)
		return &result, resp.StatusCode
	}

	var adminToken string

	t.Run("Login success returns token", func(t *testing.T) {
		result, status := login("itadmin", pass)

		assert.Equal(t, 200, status)
		assert.True(t, result.Success)
		assert.NotEmpty(t, result.Data.Token)
		assert.Equal(t, "admin", result.Data.User.Role)

		adminToken = result.Data.Token
	})

	t.Run("Login with wrong password denied", func(t *testing.T) {
		_, status := login("itadmin", "wrongpass")
		assert.Equal(t, 401, status)
	})

	t.Run("Login with unknown username denied", func(t *testing.T) {
		_, status := login("nosuchuser", pass)
		assert.Equal(t, 401, status)
	})

	t.Run("Login failure names the offending field", func(t *testing.T) {
		check := func(username, password, wantField string) {
			body, _ := json.Marshal(dto.LoginRequest{Username: username, Password: password})
			req := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(string(body)))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req, -1)
			assert.NoError(t, err)
			assert.Equal(t, 401, resp.StatusCode)

			var result serverutils.BaseResponse[map[string]string]
			json.NewDecoder(resp.Body).Decode(&result)
			assert.Equal(t, wantField, result.Data["field"])
		}

		check("nosuchuser", pass, "username")
		check("itadmin", "wrongpass", "password")
	})

	register := func(reqBody dto.RegisterRequest) (*serverutils.BaseResponse[dto.LoginResponse], int) {
		body, _ := json.Marshal(reqBody)
		req := httptest.NewRequest("POST", "/api/auth/register", strings.NewReader(string(body)))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req, -1)
		assert.NoError(t, err)

		var result serverutils.BaseResponse[dto.LoginResponse]
		json.NewDecoder(resp.Body).Decode(&result)
		return &result, resp.StatusCode
	}

	t.Run("Register creates an account and logs it in", func(t *testing.T) {
		result, status := register(dto.RegisterRequest{
			Username: "itnewuser",
			Email:    "itnewuser@example.test",
			Password: "secret456",
			Name:     "Integration Newcomer",
		})

		assert.Equal(t, 201, status)
		assert.NotEmpty(t, result.Data.Token)
		assert.Equal(t, "user", result.Data.User.Role)
	})

	t.Run("Register rejects duplicate username and email", func(t *testing.T) {
		_, status := register(dto.RegisterRequest{
			Username: "itnewuser",
			Email:    "fresh@example.test",
			Password: "secret456",
			Name:     "Duplicate Username",
		})
		assert.Equal(t, 409, status)

		_, status = register(dto.RegisterRequest{
			Username: "freshuser",
			Email:    "itnewuser@example.test",
			Password: "secret456",
			Name:     "Duplicate Email",
		})
		assert.Equal(t, 409, status)
	})

	t.Run("Verify returns current profile", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/auth/verify", nil)
		req.Header.Set("Authorization", "Bearer "+adminToken)

		resp, err := app.Test(req, -1)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var result serverutils.BaseResponse[dto.VerifyResponse]
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, "itadmin", result.Data.User.Username)
	})

	t.Run("Admin routes reject regular users", func(t *testing.T) {
		result, _ := login("ituser", pass)

		req := httptest.NewRequest("GET", "/api/admin/dashboard/stats", nil)
		req.Header.Set("Authorization", "Bearer "+result.Data.Token)

		resp, err := app.Test(req, -1)
		assert.NoError(t, err)
		assert.Equal(t, 403, resp.StatusCode)
	})

	t.Run("Logout invalidates the session", func(t *testing.T) {
		result, _ := login("itadmin", pass)
		token := result.Data.Token

		req := httptest.NewRequest("POST", "/api/auth/logout", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := app.Test(req, -1)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		req = httptest.NewRequest("GET", "/api/auth/verify", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err = app.Test(req, -1)
		assert.NoError(t, err)
		assert.Equal(t, 401, resp.StatusCode)
	})
}
