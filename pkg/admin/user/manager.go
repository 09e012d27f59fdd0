package user

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"
	"time"
	"unicode"

	"eventchat-be/internal/dto"
	"eventchat-be/internal/entity"
	"eventchat-be/internal/pkg/logger"
	"eventchat-be/internal/repository/specification"
	"eventchat-be/internal/repository/unitofwork"
	adminEvents "eventchat-be/pkg/admin/events"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Manager handles user-related admin operations
type Manager struct {
	logger    logger.ILogger
	publisher adminEvents.Publisher
}

func NewManager(logger logger.ILogger, publisher adminEvents.Publisher) *Manager {
	return &Manager{
		logger:    logger,
		publisher: publisher,
	}
}

// GeneratePassword returns a random URL-safe password of n characters.
func GeneratePassword(n int) (string, error) {
	raw := make([]byte, n)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	pass := base64.RawURLEncoding.EncodeToString(raw)
	if len(pass) > n {
		pass = pass[:n]
	}
	return pass, nil
}

// slugify keeps lowercase letters and digits, dropping everything else.
func slugify(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// GenerateUsername derives a username from the email local part, falling
// back to the display name, and resolves collisions with a numeric suffix.
func (m *Manager) GenerateUsername(ctx context.Context, uow unitofwork.UnitOfWork, name, email string) (string, error) {
	base := ""
	if at := strings.Index(email, "@"); at > 0 {
		base = slugify(email[:at])
	}
	if base == "" {
		base = slugify(name)
	}
	if base == "" {
		base = "user"
	}

	candidate := base
	for suffix := 2; ; suffix++ {
		existing, err := uow.UserRepository().FindOne(ctx, specification.ByUsername{Username: candidate})
		if err != nil {
			return "", err
		}
		if existing == nil {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s%d", base, suffix)
	}
}

// Create creates an account from an admin request. When the request omits a
// password, one is generated and returned so it can be shown once and
// mailed to the new user.
func (m *Manager) Create(ctx context.Context, uow unitofwork.UnitOfWork, req dto.CreateUserRequest) (*entity.User, string, error) {
	existing, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", fmt.Errorf("email already exists")
	}

	username := req.Username
	if username == "" {
		username, err = m.GenerateUsername(ctx, uow, req.Name, req.Email)
		if err != nil {
			return nil, "", err
		}
	} else {
		taken, err := uow.UserRepository().FindOne(ctx, specification.ByUsername{Username: username})
		if err != nil {
			return nil, "", err
		}
		if taken != nil {
			return nil, "", fmt.Errorf("username already exists")
		}
	}

	generated := ""
	password := req.Password
	if password == "" {
		password, err = GeneratePassword(12)
		if err != nil {
			return nil, "", err
		}
		generated = password
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	role := entity.UserRoleUser
	if req.Role != "" {
		if !entity.ValidRole(req.Role) {
			return nil, "", fmt.Errorf("invalid role %q", req.Role)
		}
		role = entity.UserRole(req.Role)
	}

	now := time.Now()
	user := &entity.User{
		Id:           uuid.New(),
		Username:     username,
		Email:        req.Email,
		PasswordHash: string(hash),
		Name:         req.Name,
		Role:         role,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, "", err
	}

	m.publisher.PublishUserCreated(ctx, user.Id, user.Email, user.Name, "admin_panel")

	return user, generated, nil
}

// Update applies the non-empty fields of an admin update request.
func (m *Manager) Update(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID, req dto.UpdateUserRequest) (*entity.User, error) {
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user not found")
	}

	if req.Username != "" && req.Username != user.Username {
		taken, err := uow.UserRepository().FindOne(ctx, specification.ByUsername{Username: req.Username})
		if err != nil {
			return nil, err
		}
		if taken != nil {
			return nil, fmt.Errorf("username already exists")
		}
		user.Username = req.Username
	}
	if req.Email != "" && req.Email != user.Email {
		taken, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
		if err != nil {
			return nil, err
		}
		if taken != nil {
			return nil, fmt.Errorf("email already exists")
		}
		user.Email = req.Email
	}
	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Role != "" {
		if !entity.ValidRole(req.Role) {
			return nil, fmt.Errorf("invalid role %q", req.Role)
		}
		user.Role = entity.UserRole(req.Role)
	}
	if req.Active != nil {
		user.Active = *req.Active
	}
	user.UpdatedAt = time.Now()

	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Delete removes an account with its sessions, messages and participations.
// Roster guests linked to the account are kept but detached.
func (m *Manager) Delete(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) error {
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("user not found")
	}

	if err := uow.UserRepository().DeleteSessionTokensByUser(ctx, userId); err != nil {
		return err
	}
	if err := uow.MessageRepository().DeleteAllByUser(ctx, userId); err != nil {
		return err
	}
	if err := uow.ParticipantRepository().DeleteAllByUser(ctx, userId); err != nil {
		return err
	}
	if err := uow.GuestRepository().UnlinkUser(ctx, userId); err != nil {
		return err
	}
	if err := uow.UserRepository().Delete(ctx, userId); err != nil {
		return err
	}

	m.logger.Info("ADMIN", "Deleted User", map[string]interface{}{
		"userId":   userId.String(),
		"username": user.Username,
	})
	m.publisher.PublishUserDeleted(ctx, userId, user.Username)

	return nil
}

// ResetPassword replaces an account password with a temporary one and
// invalidates every existing session.
func (m *Manager) ResetPassword(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) (*entity.User, string, error) {
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", fmt.Errorf("user not found")
	}

	tempPassword, err := GeneratePassword(12)
	if err != nil {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	if err := uow.UserRepository().UpdatePassword(ctx, userId, string(hash)); err != nil {
		return nil, "", err
	}
	if err := uow.UserRepository().DeleteSessionTokensByUser(ctx, userId); err != nil {
		return nil, "", err
	}

	m.publisher.PublishPasswordReset(ctx, userId, user.Username)

	return user, tempPassword, nil
}
