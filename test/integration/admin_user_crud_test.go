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

func TestAdminUserCrud(t *testing.T) {
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

	// Seed an admin and log in once for the whole test
	pass := "secret123"
	hash, _ := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)

	adminId := uuid.New()
	admin := model.User{
		Id:           adminId,
		Username:     "crudadmin",
		Email:        "crudadmin@example.test",
		PasswordHash: string(hash),
		Name:         "Crud Admin",
		Role:         "admin",
		Active:       true,
	}
	db.Create(&admin)

	var createdId uuid.UUID
	defer func() {
		db.Where("user_id = ?", adminId).Delete(&model.SessionToken{})
		if createdId != uuid.Nil {
			db.Delete(&model.User{}, createdId)
		}
		db.Delete(&model.User{}, adminId)
	}()

	body, _ := json.Marshal(dto.LoginRequest{Username: "crudadmin", Password: pass})
	req := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(string(body)))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)

	var loginResult serverutils.BaseResponse[dto.LoginResponse]
	json.NewDecoder(resp.Body).Decode(&loginResult)
	token := loginResult.Data.Token
	assert.NotEmpty(t, token)

	t.Run("Create user without password returns generated one", func(t *testing.T) {
		payload, _ := json.Marshal(dto.CreateUserRequest{
			Email: "newattendee@example.test",
			Name:  "New Attendee",
			Role:  "user",
		})
		r := httptest.NewRequest("POST", "/api/admin/users", strings.NewReader(string(payload)))
		r.Header.Set("Content-Type", "application/json")
		r.Header.Set("Authorization", "Bearer "+token)

		resp, err := app.Test(r, -1)
		assert.NoError(t, err)
		assert.Equal(t, 201, resp.StatusCode)

		var result serverutils.BaseResponse[dto.CreateUserResponse]
		json.NewDecoder(resp.Body).Decode(&result)

		assert.True(t, result.Success)
		assert.NotEmpty(t, result.Data.Password)
		assert.Equal(t, "newattendee", result.Data.User.Username)

		createdId = result.Data.User.Id
	})

	t.Run("Duplicate email rejected", func(t *testing.T) {
		payload, _ := json.Marshal(dto.CreateUserRequest{
			Email: "newattendee@example.test",
			Name:  "Someone Else",
			Role:  "user",
		})
		r := httptest.NewRequest("POST", "/api/admin/users", strings.NewReader(string(payload)))
		r.Header.Set("Content-Type", "application/json")
		r.Header.Set("Authorization", "Bearer "+token)

		resp, err := app.Test(r, -1)
		assert.NoError(t, err)
		assert.Equal(t, 409, resp.StatusCode)
	})

	t.Run("Update user toggles active", func(t *testing.T) {
		inactive := false
		payload, _ := json.Marshal(dto.UpdateUserRequest{Active: &inactive})
		r := httptest.NewRequest("PUT", "/api/admin/users/"+createdId.String(), strings.NewReader(string(payload)))
		r.Header.Set("Content-Type", "application/json")
		r.Header.Set("Authorization", "Bearer "+token)

		resp, err := app.Test(r, -1)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var result serverutils.BaseResponse[dto.UserProfileResponse]
		json.NewDecoder(resp.Body).Decode(&result)
		assert.False(t, result.Data.Active)
	})

	t.Run("Admin cannot delete own account", func(t *testing.T) {
		r := httptest.NewRequest("DELETE", "/api/admin/users/"+adminId.String(), nil)
		r.Header.Set("Authorization", "Bearer "+token)

		resp, err := app.Test(r, -1)
		assert.NoError(t, err)
		assert.Equal(t, 403, resp.StatusCode)
	})

	t.Run("Delete user succeeds", func(t *testing.T) {
		r := httptest.NewRequest("DELETE", "/api/admin/users/"+createdId.String(), nil)
		r.Header.Set("Authorization", "Bearer "+token)

		resp, err := app.Test(r, -1)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		r = httptest.NewRequest("GET", "/api/admin/users/"+createdId.String(), nil)
		r.Header.Set("Authorization", "Bearer "+token)

		resp, err = app.Test(r, -1)
		assert.NoError(t, err)
		assert.Equal(t, 404, resp.StatusCode)
		createdId = uuid.Nil
	})
}
