package integration

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

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

func TestChatFlow(t *testing.T) {
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

	pass := "secret123"
	hash, _ := bcrypt.GenerateFromPassword([]byte(pass), bcrypt.DefaultCost)

	creatorId := uuid.New()
	creator := model.User{
		Id:           creatorId,
		Username:     "chatadmin",
		Email:        "chatadmin@example.test",
		PasswordHash: string(hash),
		Name:         "Chat Admin",
		Role:         "admin",
		Active:       true,
	}
	aliceId := uuid.New()
	alice := model.User{
		Id:           aliceId,
		Username:     "chatalice",
		Email:        "chatalice@example.test",
		PasswordHash: string(hash),
		Name:         "Alice Attendee",
		Role:         "user",
		Active:       true,
	}
	bobId := uuid.New()
	bob := model.User{
		Id:           bobId,
		Username:     "chatbob",
		Email:        "chatbob@example.test",
		PasswordHash: string(hash),
		Name:         "Bob Attendee",
		Role:         "user",
		Active:       true,
	}

	chatbotId := uuid.New()
	chatbot := model.Chatbot{
		Id:                   chatbotId,
		Name:                 "Expo Assistant",
		EventName:            "Tech Expo",
		StartDate:            time.Now().AddDate(0, 0, -1),
		EndDate:              time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC),
		SystemPrompt:         "You are the expo assistant.",
		SinglePersonPrompt:   "single",
		MultiplePersonPrompt: "multiple",
		BackgroundImage:      "uploads/backgrounds/expo.png",
		Public:               true,
		Active:               true,
		CreatedById:          creatorId,
	}

	db.Create(&creator)
	db.Create(&alice)
	db.Create(&bob)
	db.Create(&chatbot)

	userIds := []uuid.UUID{creatorId, aliceId, bobId}
	defer func() {
		db.Where("chatbot_id = ?", chatbotId).Delete(&model.Message{})
		db.Where("chatbot_id = ?", chatbotId).Delete(&model.ChatbotParticipant{})
		db.Delete(&model.Chatbot{}, chatbotId)
		db.Where("user_id IN ?", userIds).Delete(&model.SessionToken{})
		db.Where("id IN ?", userIds).Delete(&model.User{})
	}()

	login := func(username string) string {
		body, _ := json.Marshal(dto.LoginRequest{Username: username, Password: pass})
		req := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(string(body)))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req, -1)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var result serverutils.BaseResponse[dto.LoginResponse]
		json.NewDecoder(resp.Body).Decode(&result)
		return result.Data.Token
	}

	aliceToken := login("chatalice")
	bobToken := login("chatbob")

	join := func(token string) int {
		req := httptest.NewRequest("POST", "/api/user/chatbots/"+chatbotId.String()+"/join", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		resp, err := app.Test(req, -1)
		assert.NoError(t, err)
		return resp.StatusCode
	}

	t.Run("Join succeeds once", func(t *testing.T) {
		assert.Equal(t, 201, join(aliceToken))
	})

	t.Run("Second join conflicts", func(t *testing.T) {
		assert.Equal(t, 409, join(aliceToken))
	})

	t.Run("Messages require participation", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/user/chatbots/"+chatbotId.String()+"/messages", nil)
		req.Header.Set("Authorization", "Bearer "+bobToken)

		resp, err := app.Test(req, -1)
		assert.NoError(t, err)
		assert.Equal(t, 403, resp.StatusCode)
	})

	t.Run("Sending stores the message and a bot reply", func(t *testing.T) {
		body, _ := json.Marshal(dto.SendMessageRequest{Content: "Where is hall B?"})
		req := httptest.NewRequest("POST", "/api/user/chatbots/"+chatbotId.String()+"/messages", strings.NewReader(string(body)))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+aliceToken)

		resp, err := app.Test(req, -1)
		assert.NoError(t, err)
		assert.Equal(t, 201, resp.StatusCode)

		var result serverutils.BaseResponse[dto.SendMessageResponse]
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, "Where is hall B?", result.Data.UserMessage.Content)
		assert.False(t, result.Data.BotReply.IsUserMessage)
	})

	t.Run("Participants share the thread", func(t *testing.T) {
		assert.Equal(t, 201, join(bobToken))

		req := httptest.NewRequest("GET", "/api/user/chatbots/"+chatbotId.String()+"/messages", nil)
		req.Header.Set("Authorization", "Bearer "+bobToken)

		resp, err := app.Test(req, -1)
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var result serverutils.BaseResponse[dto.Paginated[dto.MessageResponse]]
		json.NewDecoder(resp.Body).Decode(&result)

		assert.Equal(t, int64(2), result.Data.Total)
		contents := make([]string, 0, len(result.Data.Items))
		for _, m := range result.Data.Items {
			contents = append(contents, m.Content)
		}
		assert.Contains(t, contents, "Where is hall B?")
	})
}
