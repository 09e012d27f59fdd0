package service

import (
	"context"
	"io"
	"strconv"
	"time"

	"eventchat-be/internal/dto"
	"eventchat-be/internal/pkg/logger"
	"eventchat-be/internal/repository/specification"
	"eventchat-be/internal/repository/unitofwork"
	"eventchat-be/pkg/admin/dashboard"
	"eventchat-be/pkg/admin/importer"
	"eventchat-be/pkg/admin/user"
	"eventchat-be/pkg/bus"
	pkgEvents "eventchat-be/pkg/events"

	"github.com/google/uuid"
)

type IAdminService interface {
	GetDashboardStats(ctx context.Context) (*dto.DashboardStatsResponse, error)
	ListUsers(ctx context.Context, page, perPage int, role, active string) (*dto.Paginated[dto.UserProfileResponse], error)
	GetUser(ctx context.Context, userId uuid.UUID) (*dto.AdminUserDetailResponse, error)
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.CreateUserResponse, error)
	UpdateUser(ctx context.Context, userId uuid.UUID, req dto.UpdateUserRequest) (*dto.UserProfileResponse, error)
	DeleteUser(ctx context.Context, userId uuid.UUID) error
	PreviewImport(ctx context.Context, r io.Reader, filename string) (*dto.ImportPreviewResponse, error)
	ImportUsers(ctx context.Context, r io.Reader, filename string, chatbotId *uuid.UUID) (*dto.ImportUsersResponse, error)
	GetLogs(level string, limit, offset int) ([]logger.LogEntry, error)
	GetLogById(id string) (*logger.LogEntry, error)
}

type adminService struct {
	uowFactory    unitofwork.RepositoryFactory
	userManager   *user.Manager
	importer      *importer.Importer
	aggregator    *dashboard.Aggregator
	mailPublisher *bus.Publisher
	logger        logger.ILogger
}

func NewAdminService(
	uowFactory unitofwork.RepositoryFactory,
	userManager *user.Manager,
	imp *importer.Importer,
	aggregator *dashboard.Aggregator,
	mailPublisher *bus.Publisher,
	logger logger.ILogger,
) IAdminService {
	return &adminService{
		uowFactory:    uowFactory,
		userManager:   userManager,
		importer:      imp,
		aggregator:    aggregator,
		mailPublisher: mailPublisher,
		logger:        logger,
	}
}

func (s *adminService) GetDashboardStats(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return s.aggregator.GetStats(ctx, uow)
}

func (s *adminService) ListUsers(ctx context.Context, page, perPage int, role, active string) (*dto.Paginated[dto.UserProfileResponse], error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{}
	if role != "" {
		specs = append(specs, specification.ByRole{Role: role})
	}
	if active != "" {
		if v, err := strconv.ParseBool(active); err == nil {
			specs = append(specs, specification.ByActive{Active: v})
		}
	}

	total, err := uow.UserRepository().Count(ctx, specs...)
	if err != nil {
		return nil, err
	}

	listSpecs := append(specs,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: perPage, Offset: (page - 1) * perPage},
	)
	accounts, err := uow.UserRepository().FindAll(ctx, listSpecs...)
	if err != nil {
		return nil, err
	}

	items := make([]dto.UserProfileResponse, 0, len(accounts))
	for _, a := range accounts {
		items = append(items, profileFromEntity(a))
	}

	return &dto.Paginated[dto.UserProfileResponse]{
		Items:   items,
		Total:   total,
		Page:    page,
		PerPage: perPage,
	}, nil
}

func (s *adminService) GetUser(ctx context.Context, userId uuid.UUID) (*dto.AdminUserDetailResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	account, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrUserNotFound
	}

	chatbotsCreated, err := uow.ChatbotRepository().Count(ctx, specification.ByCreator{UserID: userId})
	if err != nil {
		return nil, err
	}
	messagesSent, err := uow.MessageRepository().Count(ctx,
		specification.OwnedBy{UserID: userId},
		specification.UserMessages{FromUser: true},
	)
	if err != nil {
		return nil, err
	}

	return &dto.AdminUserDetailResponse{
		UserProfileResponse: profileFromEntity(account),
		ChatbotsCreated:     chatbotsCreated,
		MessagesSent:        messagesSent,
	}, nil
}

// CreateUser creates the account and queues a credentials mail. The
// generated password rides back in the response exactly once.
func (s *adminService) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*dto.CreateUserResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	account, generated, err := s.userManager.Create(ctx, uow, req)
	if err != nil {
		return nil, err
	}

	if generated != "" {
		evt := pkgEvents.BaseEvent{
			Type: pkgEvents.TypeMailCredentials,
			Data: map[string]interface{}{
				"email":    account.Email,
				"name":     account.Name,
				"username": account.Username,
				"password": generated,
			},
			OccurredAt: time.Now(),
		}
		if err := s.mailPublisher.Publish(ctx, evt); err != nil {
			s.logger.Error("ADMIN", "Failed to queue credentials mail", map[string]interface{}{"error": err.Error()})
		}
	}

	return &dto.CreateUserResponse{
		User:     profileFromEntity(account),
		Password: generated,
	}, nil
}

func (s *adminService) UpdateUser(ctx context.Context, userId uuid.UUID, req dto.UpdateUserRequest) (*dto.UserProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	account, err := s.userManager.Update(ctx, uow, userId, req)
	if err != nil {
		return nil, err
	}

	profile := profileFromEntity(account)
	return &profile, nil
}

func (s *adminService) DeleteUser(ctx context.Context, userId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := s.userManager.Delete(ctx, uow, userId); err != nil {
		return err
	}

	return uow.Commit()
}

func (s *adminService) PreviewImport(ctx context.Context, r io.Reader, filename string) (*dto.ImportPreviewResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return s.importer.Preview(ctx, uow, r, filename)
}

func (s *adminService) ImportUsers(ctx context.Context, r io.Reader, filename string, chatbotId *uuid.UUID) (*dto.ImportUsersResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	result, err := s.importer.Import(ctx, uow, r, filename, chatbotId)
	if err != nil {
		return nil, err
	}

	// Queue a credentials mail for every account that got a generated password.
	for _, created := range result.Users {
		if created.Password == "" {
			continue
		}
		evt := pkgEvents.BaseEvent{
			Type: pkgEvents.TypeMailCredentials,
			Data: map[string]interface{}{
				"email":    created.User.Email,
				"name":     created.User.Name,
				"username": created.User.Username,
				"password": created.Password,
			},
			OccurredAt: time.Now(),
		}
		if err := s.mailPublisher.Publish(ctx, evt); err != nil {
			s.logger.Error("ADMIN", "Failed to queue credentials mail", map[string]interface{}{"error": err.Error()})
		}
	}

	return result, nil
}

func (s *adminService) GetLogs(level string, limit, offset int) ([]logger.LogEntry, error) {
	if limit < 1 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.logger.GetLogs(level, limit, offset)
}

func (s *adminService) GetLogById(id string) (*logger.LogEntry, error) {
	return s.logger.GetLogById(id)
}
