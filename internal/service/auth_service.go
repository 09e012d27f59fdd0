package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"eventchat-be/internal/dto"
	"eventchat-be/internal/entity"
	"eventchat-be/internal/pkg/logger"
	"eventchat-be/internal/repository/specification"
	"eventchat-be/internal/repository/unitofwork"
	"eventchat-be/pkg/admin/user"
	"eventchat-be/pkg/bus"
	pkgEvents "eventchat-be/pkg/events"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// sessionTokenTTL is how long an issued token stays valid.
const sessionTokenTTL = 30 * 24 * time.Hour

// Login failures are distinguished so the client can highlight the right
// form field. Disabled accounts get a 403 instead of a 401.
var (
	ErrInvalidUsername = errors.New("invalid username")
	ErrInvalidPassword = errors.New("invalid password")
	ErrAccountDisabled = errors.New("account is disabled")
	ErrWrongPassword   = errors.New("current password is incorrect")
	ErrUserNotFound    = errors.New("user not found")
	ErrSessionNotFound = errors.New("session not found")
	ErrUsernameTaken   = errors.New("username already exists")
)

type IAuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.LoginResponse, error)
	VerifyToken(ctx context.Context, token string) (*entity.User, error)
	Logout(ctx context.Context, token string) error
	ChangePassword(ctx context.Context, userId uuid.UUID, req dto.ChangePasswordRequest) error
	ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) (*dto.ResetPasswordResponse, error)
}

type authService struct {
	uowFactory    unitofwork.RepositoryFactory
	userManager   *user.Manager
	mailPublisher *bus.Publisher
	logger        logger.ILogger
}

func NewAuthService(
	uowFactory unitofwork.RepositoryFactory,
	userManager *user.Manager,
	mailPublisher *bus.Publisher,
	logger logger.ILogger,
) IAuthService {
	return &authService{
		uowFactory:    uowFactory,
		userManager:   userManager,
		mailPublisher: mailPublisher,
		logger:        logger,
	}
}

func generateToken() (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

func profileFromEntity(u *entity.User) dto.UserProfileResponse {
	res := dto.UserProfileResponse{
		Id:        u.Id,
		Username:  u.Username,
		Email:     u.Email,
		Name:      u.Name,
		Role:      string(u.Role),
		Active:    u.Active,
		LastLogin: u.LastLogin,
		CreatedAt: u.CreatedAt,
	}
	if u.ProfilePicture != nil {
		res.ProfilePicture = *u.ProfilePicture
	}
	if u.Bio != nil {
		res.Bio = *u.Bio
	}
	if u.Organization != nil {
		res.Organization = *u.Organization
	}
	return res
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	account, err := uow.UserRepository().FindOne(ctx, specification.ByUsername{Username: req.Username})
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrInvalidUsername
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidPassword
	}

	if !account.Active {
		return nil, ErrAccountDisabled
	}

	now := time.Now()
	if err := uow.UserRepository().UpdateLastLogin(ctx, account.Id, now); err != nil {
		return nil, err
	}
	account.LastLogin = &now

	tokenStr, err := s.issueSession(ctx, uow, account.Id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("AUTH", "User logged in", map[string]interface{}{
		"userId":   account.Id.String(),
		"username": account.Username,
	})

	return &dto.LoginResponse{
		Token: tokenStr,
		User:  profileFromEntity(account),
	}, nil
}

func (s *authService) issueSession(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) (string, error) {
	tokenStr, err := generateToken()
	if err != nil {
		return "", err
	}

	now := time.Now()
	token := &entity.SessionToken{
		Id:        uuid.New(),
		UserId:    userId,
		Token:     tokenStr,
		ExpiresAt: now.Add(sessionTokenTTL),
		CreatedAt: now,
	}
	if err := uow.UserRepository().CreateSessionToken(ctx, token); err != nil {
		return "", err
	}
	return tokenStr, nil
}

// Register self-registers an attendee account and logs it straight in.
// The role is always "user"; elevated accounts go through the admin panel.
func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.LoginResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	taken, err := uow.UserRepository().FindOne(ctx, specification.ByUsername{Username: req.Username})
	if err != nil {
		return nil, err
	}
	if taken != nil {
		return nil, ErrUsernameTaken
	}

	taken, err = uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	if taken != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	account := &entity.User{
		Id:           uuid.New(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		Name:         req.Name,
		Role:         entity.UserRoleUser,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uow.UserRepository().Create(ctx, account); err != nil {
		return nil, err
	}

	tokenStr, err := s.issueSession(ctx, uow, account.Id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("AUTH", "User registered", map[string]interface{}{
		"userId":   account.Id.String(),
		"username": account.Username,
	})

	return &dto.LoginResponse{
		Token: tokenStr,
		User:  profileFromEntity(account),
	}, nil
}

// VerifyToken resolves a bearer token. Expired tokens are deleted on the
// spot so the table does not accumulate stale rows.
func (s *authService) VerifyToken(ctx context.Context, token string) (*entity.User, error) {
	if token == "" {
		return nil, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.UserRepository().FindSessionToken(ctx, specification.ByToken{Token: token})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}

	if session.Expired(time.Now()) {
		if err := uow.UserRepository().DeleteSessionToken(ctx, session.Id); err != nil {
			s.logger.Warn("AUTH", "Failed to delete expired token", map[string]interface{}{"error": err.Error()})
		}
		return nil, nil
	}

	account, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: session.UserId})
	if err != nil {
		return nil, err
	}
	if account == nil || !account.Active {
		return nil, nil
	}

	return account, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	session, err := uow.UserRepository().FindSessionToken(ctx, specification.ByToken{Token: token})
	if err != nil {
		return err
	}
	if session == nil {
		return ErrSessionNotFound
	}

	return uow.UserRepository().DeleteSessionToken(ctx, session.Id)
}

func (s *authService) ChangePassword(ctx context.Context, userId uuid.UUID, req dto.ChangePasswordRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	account, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return err
	}
	if account == nil {
		return ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return ErrWrongPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return uow.UserRepository().UpdatePassword(ctx, userId, string(hash))
}

// ResetPassword issues a temporary password for a user and mails it. The
// temporary password is also returned so the admin can hand it over
// directly when the mail setup is unavailable.
func (s *authService) ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) (*dto.ResetPasswordResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	account, tempPassword, err := s.userManager.ResetPassword(ctx, uow, req.UserId)
	if err != nil {
		return nil, err
	}

	evt := pkgEvents.BaseEvent{
		Type: pkgEvents.TypeMailTempPassword,
		Data: map[string]interface{}{
			"email":    account.Email,
			"name":     account.Name,
			"password": tempPassword,
		},
		OccurredAt: time.Now(),
	}
	if err := s.mailPublisher.Publish(ctx, evt); err != nil {
		s.logger.Error("AUTH", "Failed to queue temporary password mail", map[string]interface{}{"error": err.Error()})
	}

	return &dto.ResetPasswordResponse{TemporaryPassword: tempPassword}, nil
}
