package service

import (
	"context"
	"errors"
	"mime/multipart"
	"time"

	"eventchat-be/internal/dto"
	"eventchat-be/internal/entity"
	"eventchat-be/internal/pkg/logger"
	"eventchat-be/internal/repository/specification"
	"eventchat-be/internal/repository/unitofwork"
	adminEvents "eventchat-be/pkg/admin/events"
	"eventchat-be/pkg/uploads"

	"github.com/google/uuid"
)

// BotReplyText is the canned reply sent back for every attendee message.
const BotReplyText = "Thank you for your message. This is a simulated bot response."

var (
	ErrAlreadyJoined  = errors.New("already joined this chatbot")
	ErrNotParticipant = errors.New("join the chatbot before chatting")
	ErrChatbotUnavail = errors.New("chatbot is not available")
	ErrEmailTaken     = errors.New("email already exists")
)

type IUserService interface {
	Discover(ctx context.Context, page, perPage int, search string) (*dto.Paginated[dto.ChatbotResponse], error)
	Join(ctx context.Context, userId, chatbotId uuid.UUID) (*dto.JoinChatbotResponse, error)
	MyChatbots(ctx context.Context, userId uuid.UUID) ([]dto.ChatbotResponse, error)
	GetProfile(ctx context.Context, userId uuid.UUID) (*dto.MyProfileResponse, error)
	UpdateProfile(ctx context.Context, userId uuid.UUID, req dto.UpdateProfileRequest) (*dto.UserProfileResponse, error)
	UploadAvatar(ctx context.Context, userId uuid.UUID, file *multipart.FileHeader) (*dto.UserProfileResponse, error)
	GetMessages(ctx context.Context, userId, chatbotId uuid.UUID, page, perPage int) (*dto.Paginated[dto.MessageResponse], error)
	SendMessage(ctx context.Context, userId, chatbotId uuid.UUID, req dto.SendMessageRequest) (*dto.SendMessageResponse, error)
}

type userService struct {
	uowFactory unitofwork.RepositoryFactory
	store      *uploads.Store
	publisher  adminEvents.Publisher
	logger     logger.ILogger
}

func NewUserService(
	uowFactory unitofwork.RepositoryFactory,
	store *uploads.Store,
	publisher adminEvents.Publisher,
	logger logger.ILogger,
) IUserService {
	return &userService{
		uowFactory: uowFactory,
		store:      store,
		publisher:  publisher,
		logger:     logger,
	}
}

func messageResponse(m *entity.Message) dto.MessageResponse {
	return dto.MessageResponse{
		Id:            m.Id,
		ChatbotId:     m.ChatbotId,
		UserId:        m.UserId,
		Content:       m.Content,
		IsUserMessage: m.IsUserMessage,
		CreatedAt:     m.CreatedAt,
	}
}

// discoverResponse maps a chatbot for the attendee listing, without the
// prompt internals admins see.
func discoverResponse(c *entity.Chatbot) dto.ChatbotResponse {
	res := dto.ChatbotResponse{
		Id:              c.Id,
		Name:            c.Name,
		EventName:       c.EventName,
		Description:     c.Description,
		StartDate:       c.StartDate.Format(dateLayout),
		Status:          string(c.StatusAt(time.Now())),
		BackgroundImage: c.BackgroundImage,
		Public:          c.Public,
		Active:          c.Active,
		CreatedById:     c.CreatedById,
		CreatedAt:       c.CreatedAt,
	}
	if !c.IsInfiniteEndDate() {
		res.EndDate = c.EndDate.Format(dateLayout)
	}
	return res
}

func (s *userService) Discover(ctx context.Context, page, perPage int, search string) (*dto.Paginated[dto.ChatbotResponse], error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 12
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{specification.PublicAndActive{}}
	if search != "" {
		specs = append(specs, specification.SearchText{Query: search})
	}

	total, err := uow.ChatbotRepository().Count(ctx, specs...)
	if err != nil {
		return nil, err
	}

	listSpecs := append(specs,
		specification.OrderBy{Field: "start_date", Desc: false},
		specification.Pagination{Limit: perPage, Offset: (page - 1) * perPage},
	)
	chatbots, err := uow.ChatbotRepository().FindAll(ctx, listSpecs...)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ChatbotResponse, 0, len(chatbots))
	for _, c := range chatbots {
		items = append(items, discoverResponse(c))
	}

	return &dto.Paginated[dto.ChatbotResponse]{
		Items:   items,
		Total:   total,
		Page:    page,
		PerPage: perPage,
	}, nil
}

// Join registers the user as a participant. The pre-check keeps the common
// path clean; the unique index on (chatbot_id, user_id) backstops races.
func (s *userService) Join(ctx context.Context, userId, chatbotId uuid.UUID) (*dto.JoinChatbotResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	chatbot, err := uow.ChatbotRepository().FindOne(ctx, specification.ByID{ID: chatbotId})
	if err != nil {
		return nil, err
	}
	if chatbot == nil {
		return nil, ErrChatbotNotFound
	}
	if !chatbot.Active || !chatbot.Public {
		return nil, ErrChatbotUnavail
	}

	existing, err := uow.ParticipantRepository().FindOne(ctx,
		specification.ByChatbot{ChatbotID: chatbotId},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyJoined
	}

	now := time.Now()
	participant := &entity.ChatbotParticipant{
		Id:         uuid.New(),
		ChatbotId:  chatbotId,
		UserId:     userId,
		JoinedAt:   now,
		LastActive: now,
	}
	if err := uow.ParticipantRepository().Create(ctx, participant); err != nil {
		return nil, err
	}

	// Link the roster entry when the account email matches an unclaimed guest.
	account, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err == nil && account != nil {
		guest, gErr := uow.GuestRepository().FindOne(ctx,
			specification.ByChatbot{ChatbotID: chatbotId},
			specification.FilterBy{Field: "email", Value: account.Email},
		)
		if gErr == nil && guest != nil && guest.UserId == nil {
			guest.UserId = &userId
			if uErr := uow.GuestRepository().Update(ctx, guest); uErr != nil {
				s.logger.Warn("USER", "Failed to link guest to account", map[string]interface{}{"error": uErr.Error()})
			}
		}
		s.publisher.PublishChatbotJoined(ctx, chatbotId, userId, chatbot.Name, account.Username)
	}

	return &dto.JoinChatbotResponse{
		ChatbotId: chatbotId,
		JoinedAt:  participant.JoinedAt,
	}, nil
}

func (s *userService) MyChatbots(ctx context.Context, userId uuid.UUID) ([]dto.ChatbotResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	participants, err := uow.ParticipantRepository().FindAll(ctx, specification.OwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}
	if len(participants) == 0 {
		return []dto.ChatbotResponse{}, nil
	}

	ids := make([]uuid.UUID, 0, len(participants))
	for _, p := range participants {
		ids = append(ids, p.ChatbotId)
	}

	chatbots, err := uow.ChatbotRepository().FindAll(ctx,
		specification.ByIDs{IDs: ids},
		specification.OrderBy{Field: "start_date", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ChatbotResponse, 0, len(chatbots))
	for _, c := range chatbots {
		items = append(items, discoverResponse(c))
	}
	return items, nil
}

func (s *userService) GetProfile(ctx context.Context, userId uuid.UUID) (*dto.MyProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	account, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrUserNotFound
	}

	joined, err := uow.ParticipantRepository().Count(ctx, specification.OwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}
	sent, err := uow.MessageRepository().Count(ctx,
		specification.OwnedBy{UserID: userId},
		specification.UserMessages{FromUser: true},
	)
	if err != nil {
		return nil, err
	}

	return &dto.MyProfileResponse{
		UserProfileResponse: profileFromEntity(account),
		JoinedChatbots:      joined,
		MessagesSent:        sent,
	}, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userId uuid.UUID, req dto.UpdateProfileRequest) (*dto.UserProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	account, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrUserNotFound
	}

	if req.Email != "" && req.Email != account.Email {
		taken, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
		if err != nil {
			return nil, err
		}
		if taken != nil {
			return nil, ErrEmailTaken
		}
		account.Email = req.Email
	}
	if req.Name != "" {
		account.Name = req.Name
	}
	if req.Bio != "" {
		bio := req.Bio
		account.Bio = &bio
	}
	if req.Organization != "" {
		org := req.Organization
		account.Organization = &org
	}
	account.UpdatedAt = time.Now()

	if err := uow.UserRepository().Update(ctx, account); err != nil {
		return nil, err
	}

	profile := profileFromEntity(account)
	return &profile, nil
}

func (s *userService) UploadAvatar(ctx context.Context, userId uuid.UUID, file *multipart.FileHeader) (*dto.UserProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	account, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrUserNotFound
	}

	path, err := s.store.SaveImage(file, "avatars")
	if err != nil {
		return nil, err
	}

	oldAvatar := ""
	if account.ProfilePicture != nil {
		oldAvatar = *account.ProfilePicture
	}
	account.ProfilePicture = &path
	account.UpdatedAt = time.Now()

	if err := uow.UserRepository().Update(ctx, account); err != nil {
		if rmErr := s.store.Remove(path); rmErr != nil {
			s.logger.Warn("USER", "Failed to remove orphan avatar", map[string]interface{}{"error": rmErr.Error()})
		}
		return nil, err
	}

	if oldAvatar != "" {
		_ = s.store.Remove(oldAvatar)
	}

	profile := profileFromEntity(account)
	return &profile, nil
}

func (s *userService) GetMessages(ctx context.Context, userId, chatbotId uuid.UUID, page, perPage int) (*dto.Paginated[dto.MessageResponse], error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 200 {
		perPage = 50
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	participant, err := uow.ParticipantRepository().FindOne(ctx,
		specification.ByChatbot{ChatbotID: chatbotId},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if participant == nil {
		return nil, ErrNotParticipant
	}

	// The chat is a shared room: every participant sees the full thread.
	specs := []specification.Specification{
		specification.ByChatbot{ChatbotID: chatbotId},
	}

	total, err := uow.MessageRepository().Count(ctx, specs...)
	if err != nil {
		return nil, err
	}

	listSpecs := append(specs,
		specification.OrderBy{Field: "created_at", Desc: false},
		specification.Pagination{Limit: perPage, Offset: (page - 1) * perPage},
	)
	messages, err := uow.MessageRepository().FindAll(ctx, listSpecs...)
	if err != nil {
		return nil, err
	}

	items := make([]dto.MessageResponse, 0, len(messages))
	for _, m := range messages {
		items = append(items, messageResponse(m))
	}

	return &dto.Paginated[dto.MessageResponse]{
		Items:   items,
		Total:   total,
		Page:    page,
		PerPage: perPage,
	}, nil
}

// SendMessage stores the attendee message and the bot reply in one
// transaction, then bumps the participant activity counters.
func (s *userService) SendMessage(ctx context.Context, userId, chatbotId uuid.UUID, req dto.SendMessageRequest) (*dto.SendMessageResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	chatbot, err := uow.ChatbotRepository().FindOne(ctx, specification.ByID{ID: chatbotId})
	if err != nil {
		return nil, err
	}
	if chatbot == nil {
		return nil, ErrChatbotNotFound
	}
	if !chatbot.Active || chatbot.StatusAt(time.Now()) == entity.ChatbotStatusExpired {
		return nil, ErrChatbotUnavail
	}

	participant, err := uow.ParticipantRepository().FindOne(ctx,
		specification.ByChatbot{ChatbotID: chatbotId},
		specification.OwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if participant == nil {
		return nil, ErrNotParticipant
	}

	now := time.Now()
	userMessage := &entity.Message{
		Id:            uuid.New(),
		ChatbotId:     chatbotId,
		UserId:        userId,
		Content:       req.Content,
		IsUserMessage: true,
		CreatedAt:     now,
	}
	botReply := &entity.Message{
		Id:            uuid.New(),
		ChatbotId:     chatbotId,
		UserId:        userId,
		Content:       BotReplyText,
		IsUserMessage: false,
		CreatedAt:     now.Add(time.Millisecond),
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.MessageRepository().Create(ctx, userMessage); err != nil {
		return nil, err
	}
	if err := uow.MessageRepository().Create(ctx, botReply); err != nil {
		return nil, err
	}
	if err := uow.ParticipantRepository().RecordActivity(ctx, participant.Id, now); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return &dto.SendMessageResponse{
		UserMessage: messageResponse(userMessage),
		BotReply:    messageResponse(botReply),
	}, nil
}
