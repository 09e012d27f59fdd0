package importer

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"eventchat-be/internal/dto"
	"eventchat-be/internal/entity"
	"eventchat-be/internal/pkg/logger"
	"eventchat-be/internal/repository/specification"
	"eventchat-be/internal/repository/unitofwork"
	adminEvents "eventchat-be/pkg/admin/events"
	"eventchat-be/pkg/admin/user"
	"eventchat-be/pkg/roster"

	"github.com/google/uuid"
)

// Importer turns uploaded spreadsheets into user accounts.
type Importer struct {
	logger    logger.ILogger
	users     *user.Manager
	publisher adminEvents.Publisher
}

func NewImporter(logger logger.ILogger, users *user.Manager, publisher adminEvents.Publisher) *Importer {
	return &Importer{
		logger:    logger,
		users:     users,
		publisher: publisher,
	}
}

func validateRow(row roster.UserRow) string {
	if row.Email == "" {
		return "email is required"
	}
	if !strings.Contains(row.Email, "@") {
		return fmt.Sprintf("invalid email %q", row.Email)
	}
	if row.Name == "" {
		return "name is required"
	}
	if row.Role != "" && row.Role != "admin" && row.Role != "user" && row.Role != "speaker" {
		return fmt.Sprintf("invalid role %q", row.Role)
	}
	return ""
}

// Preview runs the same validation as Import without writing anything.
// Duplicate detection reads existing emails but never creates rows.
func (im *Importer) Preview(ctx context.Context, uow unitofwork.UnitOfWork, r io.Reader, filename string) (*dto.ImportPreviewResponse, error) {
	rows, err := roster.ParseUsers(r, filename)
	if err != nil {
		return nil, err
	}

	res := &dto.ImportPreviewResponse{
		Rows: make([]dto.ImportUserRow, 0, len(rows)),
	}
	for _, row := range rows {
		errMsg := validateRow(row)
		if errMsg == "" {
			existing, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: row.Email})
			if err != nil {
				return nil, err
			}
			if existing != nil {
				errMsg = fmt.Sprintf("email %s already exists", row.Email)
				res.Duplicate++
			}
		} else if strings.Contains(errMsg, "email") {
			res.InvalidEmail++
		}

		if errMsg == "" {
			res.Valid++
		} else {
			res.Skipped++
		}
		res.Rows = append(res.Rows, dto.ImportUserRow{
			Username: row.Username,
			Email:    row.Email,
			Name:     row.Name,
			Role:     row.Role,
			Valid:    errMsg == "",
			Error:    errMsg,
		})
	}

	res.Total = len(res.Rows)
	return res, nil
}

// Import creates an account per valid row. Rows whose email already exists
// are skipped rather than failing the whole import. When chatbotId is set,
// every created account joins that chatbot as a participant.
func (im *Importer) Import(ctx context.Context, uow unitofwork.UnitOfWork, r io.Reader, filename string, chatbotId *uuid.UUID) (*dto.ImportUsersResponse, error) {
	rows, err := roster.ParseUsers(r, filename)
	if err != nil {
		return nil, err
	}

	result := &dto.ImportUsersResponse{
		Users: []dto.CreateUserResponse{},
	}

	for i, row := range rows {
		if errMsg := validateRow(row); errMsg != "" {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %s", i+2, errMsg))
			continue
		}

		existing, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: row.Email})
		if err != nil {
			return nil, err
		}
		if existing != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: email %s already exists", i+2, row.Email))
			continue
		}

		created, generated, err := im.users.Create(ctx, uow, dto.CreateUserRequest{
			Username: row.Username,
			Email:    row.Email,
			Name:     row.Name,
			Password: row.Password,
			Role:     row.Role,
		})
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", i+2, err))
			continue
		}

		if chatbotId != nil {
			participant := &entity.ChatbotParticipant{
				Id:        uuid.New(),
				ChatbotId: *chatbotId,
				UserId:    created.Id,
				JoinedAt:  time.Now(),
			}
			if err := uow.ParticipantRepository().Create(ctx, participant); err != nil {
				result.Skipped++
				result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", i+2, err))
				continue
			}
		}

		result.Created++
		result.Users = append(result.Users, dto.CreateUserResponse{
			User: dto.UserProfileResponse{
				Id:        created.Id,
				Username:  created.Username,
				Email:     created.Email,
				Name:      created.Name,
				Role:      string(created.Role),
				Active:    created.Active,
				CreatedAt: created.CreatedAt,
			},
			Password: generated,
		})
	}

	im.logger.Info("ADMIN", "User import finished", map[string]interface{}{
		"filename": filename,
		"created":  result.Created,
		"skipped":  result.Skipped,
	})
	im.publisher.PublishUsersImported(ctx, result.Created, result.Skipped, filename)

	return result, nil
}
