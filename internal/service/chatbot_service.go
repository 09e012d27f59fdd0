package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"strconv"
	"strings"
	"time"

	"eventchat-be/internal/dto"
	"eventchat-be/internal/entity"
	"eventchat-be/internal/pkg/logger"
	"eventchat-be/internal/repository/specification"
	"eventchat-be/internal/repository/unitofwork"
	adminEvents "eventchat-be/pkg/admin/events"
	"eventchat-be/pkg/roster"
	"eventchat-be/pkg/uploads"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

var (
	ErrChatbotNotFound = errors.New("chatbot not found")
	ErrChatbotPrivate  = errors.New("access to this chatbot is not allowed")
	ErrGuestNotFound   = errors.New("guest not found")
	ErrBadDateRange    = errors.New("end_date must not be before start_date")
)

// ChatbotInput bundles the multipart pieces of a create request.
type ChatbotInput struct {
	Form            dto.ChatbotForm
	BackgroundImage *multipart.FileHeader
	GuestList       *multipart.FileHeader
	GuestPhotos     map[string]*multipart.FileHeader
}

// ChatbotUpdateInput bundles the multipart pieces of an update request.
type ChatbotUpdateInput struct {
	Form            dto.ChatbotUpdateForm
	BackgroundImage *multipart.FileHeader
	GuestList       *multipart.FileHeader
	GuestPhotos     map[string]*multipart.FileHeader
}

type IChatbotService interface {
	Create(ctx context.Context, creatorId uuid.UUID, input ChatbotInput) (*dto.ChatbotDetailResponse, error)
	Update(ctx context.Context, chatbotId uuid.UUID, input ChatbotUpdateInput) (*dto.ChatbotDetailResponse, error)
	Delete(ctx context.Context, chatbotId uuid.UUID) error
	Get(ctx context.Context, chatbotId uuid.UUID, viewer *entity.User) (*dto.ChatbotDetailResponse, error)
	List(ctx context.Context, page, perPage int, search string) (*dto.Paginated[dto.ChatbotResponse], error)
	Settings(ctx context.Context, chatbotId uuid.UUID) (*dto.ChatbotSettingsResponse, error)
	Stats(ctx context.Context, chatbotId uuid.UUID) (*dto.ChatbotStatsResponse, error)
	ListGuests(ctx context.Context, chatbotId uuid.UUID) ([]dto.GuestResponse, error)
	AddGuest(ctx context.Context, chatbotId uuid.UUID, form dto.GuestForm, photo *multipart.FileHeader) (*dto.GuestResponse, error)
	UpdateGuest(ctx context.Context, guestId uuid.UUID, form dto.GuestForm, photo *multipart.FileHeader) (*dto.GuestResponse, error)
	DeleteGuest(ctx context.Context, guestId uuid.UUID) error
}

type chatbotService struct {
	uowFactory unitofwork.RepositoryFactory
	store      *uploads.Store
	publisher  adminEvents.Publisher
	logger     logger.ILogger
}

func NewChatbotService(
	uowFactory unitofwork.RepositoryFactory,
	store *uploads.Store,
	publisher adminEvents.Publisher,
	logger logger.ILogger,
) IChatbotService {
	return &chatbotService{
		uowFactory: uowFactory,
		store:      store,
		publisher:  publisher,
		logger:     logger,
	}
}

func parseBoolField(s string, fallback bool) bool {
	if s == "" {
		return fallback
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return fallback
	}
	return v
}

// parseDates validates the form dates. An empty end date becomes the
// no-expiry sentinel.
func parseDates(form dto.ChatbotForm) (time.Time, time.Time, error) {
	start, err := time.Parse(dateLayout, form.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start_date %q, expected YYYY-MM-DD", form.StartDate)
	}

	end := entity.InfiniteEndDate()
	if form.EndDate != "" {
		end, err = time.Parse(dateLayout, form.EndDate)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid end_date %q, expected YYYY-MM-DD", form.EndDate)
		}
		if end.Before(start) {
			return time.Time{}, time.Time{}, ErrBadDateRange
		}
	}
	return start, end, nil
}

func (s *chatbotService) chatbotResponse(ctx context.Context, uow unitofwork.UnitOfWork, c *entity.Chatbot) dto.ChatbotResponse {
	guestCount, _ := uow.GuestRepository().Count(ctx, specification.ByChatbot{ChatbotID: c.Id})
	participantCount, _ := uow.ParticipantRepository().Count(ctx, specification.ByChatbot{ChatbotID: c.Id})

	res := dto.ChatbotResponse{
		Id:                   c.Id,
		Name:                 c.Name,
		EventName:            c.EventName,
		Description:          c.Description,
		StartDate:            c.StartDate.Format(dateLayout),
		Status:               string(c.StatusAt(time.Now())),
		SystemPrompt:         c.SystemPrompt,
		SinglePersonPrompt:   c.SinglePersonPrompt,
		MultiplePersonPrompt: c.MultiplePersonPrompt,
		BackgroundImage:      c.BackgroundImage,
		Public:               c.Public,
		Active:               c.Active,
		CreatedById:          c.CreatedById,
		GuestCount:           guestCount,
		ParticipantCount:     participantCount,
		CreatedAt:            c.CreatedAt,
	}
	if !c.IsInfiniteEndDate() {
		res.EndDate = c.EndDate.Format(dateLayout)
	}
	return res
}

func guestResponse(g *entity.Guest) dto.GuestResponse {
	return dto.GuestResponse{
		Id:           g.Id,
		ChatbotId:    g.ChatbotId,
		Name:         g.Name,
		Title:        g.Title,
		Description:  g.Description,
		Organization: g.Organization,
		Email:        g.Email,
		Photo:        g.Photo,
		IsSpeaker:    g.IsSpeaker,
		IsModerator:  g.IsModerator,
	}
}

// photoSet matches photo references against the uploaded guest_photo_*
// files and remembers every file it writes so callers can clean up.
type photoSet struct {
	store *uploads.Store
	byKey map[string]*multipart.FileHeader
	saved []string
}

func newPhotoSet(store *uploads.Store, photos map[string]*multipart.FileHeader) *photoSet {
	byKey := make(map[string]*multipart.FileHeader, len(photos))
	for key, fh := range photos {
		byKey[roster.PhotoKey(key)] = fh
	}
	return &photoSet{store: store, byKey: byKey}
}

// save stores the photo matching ref, if any. The match is by normalized
// filename, with or without extension. No match is not an error.
func (p *photoSet) save(ref string) (string, error) {
	if ref == "" {
		return "", nil
	}
	fh, ok := p.byKey[roster.PhotoKey(ref)]
	if !ok {
		return "", nil
	}
	path, err := p.store.SaveImage(fh, "guests")
	if err != nil {
		return "", err
	}
	p.saved = append(p.saved, path)
	return path, nil
}

// buildGuests assembles guest entities from the uploaded roster file and
// the manual guests JSON.
func (s *chatbotService) buildGuests(chatbotId uuid.UUID, guestList *multipart.FileHeader, guestsJSON string, photos *photoSet) ([]*entity.Guest, error) {
	now := time.Now()
	var guests []*entity.Guest

	if guestList != nil {
		f, err := guestList.Open()
		if err != nil {
			return nil, fmt.Errorf("open guest list: %w", err)
		}
		defer f.Close()

		rows, err := roster.ParseGuests(f, guestList.Filename)
		if err != nil {
			return nil, err
		}

		for _, row := range rows {
			photo, err := photos.save(row.PhotoName)
			if err != nil {
				return nil, err
			}
			guests = append(guests, &entity.Guest{
				Id:           uuid.New(),
				ChatbotId:    chatbotId,
				Name:         row.Name,
				Title:        row.Title,
				Description:  row.Description,
				Organization: row.Organization,
				Email:        row.Email,
				Photo:        photo,
				IsSpeaker:    row.IsSpeaker,
				IsModerator:  row.IsModerator,
				CreatedAt:    now,
			})
		}
		return guests, nil
	}

	if strings.TrimSpace(guestsJSON) != "" {
		var inputs []dto.GuestInput
		if err := json.Unmarshal([]byte(guestsJSON), &inputs); err != nil {
			return nil, fmt.Errorf("invalid guests JSON: %w", err)
		}
		for _, in := range inputs {
			if strings.TrimSpace(in.Name) == "" {
				return nil, fmt.Errorf("guest name is required")
			}
			photo, err := photos.save(in.PhotoKey)
			if err != nil {
				return nil, err
			}
			guests = append(guests, &entity.Guest{
				Id:           uuid.New(),
				ChatbotId:    chatbotId,
				Name:         in.Name,
				Title:        in.Title,
				Description:  in.Description,
				Organization: in.Organization,
				Email:        in.Email,
				Photo:        photo,
				IsSpeaker:    in.IsSpeaker,
				IsModerator:  in.IsModerator,
				CreatedAt:    now,
			})
		}
	}

	return guests, nil
}

func (s *chatbotService) cleanupFiles(paths []string) {
	for _, p := range paths {
		if err := s.store.Remove(p); err != nil {
			s.logger.Warn("CHATBOT", "Failed to remove upload", map[string]interface{}{"path": p, "error": err.Error()})
		}
	}
}

func (s *chatbotService) Create(ctx context.Context, creatorId uuid.UUID, input ChatbotInput) (resp *dto.ChatbotDetailResponse, err error) {
	start, end, err := parseDates(input.Form)
	if err != nil {
		return nil, err
	}
	if input.BackgroundImage == nil {
		return nil, fmt.Errorf("background_image is required")
	}
	if input.GuestList == nil && strings.TrimSpace(input.Form.Guests) == "" {
		return nil, fmt.Errorf("a guest_list file or guests JSON is required")
	}

	var savedFiles []string
	photos := newPhotoSet(s.store, input.GuestPhotos)
	defer func() {
		if err != nil {
			s.cleanupFiles(savedFiles)
			s.cleanupFiles(photos.saved)
		}
	}()

	background, err := s.store.SaveImage(input.BackgroundImage, "backgrounds")
	if err != nil {
		return nil, err
	}
	savedFiles = append(savedFiles, background)

	singlePrompt := input.Form.SinglePersonPrompt
	if singlePrompt == "" {
		singlePrompt = entity.DefaultSinglePersonPrompt
	}
	multiPrompt := input.Form.MultiplePersonPrompt
	if multiPrompt == "" {
		multiPrompt = entity.DefaultMultiplePersonPrompt
	}

	now := time.Now()
	chatbot := &entity.Chatbot{
		Id:                   uuid.New(),
		Name:                 input.Form.Name,
		EventName:            input.Form.EventName,
		Description:          input.Form.Description,
		StartDate:            start,
		EndDate:              end,
		SystemPrompt:         input.Form.SystemPrompt,
		SinglePersonPrompt:   singlePrompt,
		MultiplePersonPrompt: multiPrompt,
		BackgroundImage:      background,
		Public:               parseBoolField(input.Form.Public, true),
		Active:               parseBoolField(input.Form.Active, true),
		CreatedById:          creatorId,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	guests, err := s.buildGuests(chatbot.Id, input.GuestList, input.Form.Guests, photos)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err = uow.ChatbotRepository().Create(ctx, chatbot); err != nil {
		return nil, err
	}
	for _, guest := range guests {
		if err = uow.GuestRepository().Create(ctx, guest); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info("CHATBOT", "Chatbot created", map[string]interface{}{
		"chatbotId": chatbot.Id.String(),
		"name":      chatbot.Name,
		"guests":    len(guests),
	})
	s.publisher.PublishChatbotCreated(ctx, chatbot.Id, chatbot.Name, chatbot.EventName)

	readUow := s.uowFactory.NewUnitOfWork(ctx)
	detail := &dto.ChatbotDetailResponse{
		Chatbot: s.chatbotResponse(ctx, readUow, chatbot),
		Guests:  make([]dto.GuestResponse, 0, len(guests)),
	}
	for _, g := range guests {
		detail.Guests = append(detail.Guests, guestResponse(g))
	}
	return detail, nil
}

// Text fields may be omitted on update, but not blanked out.
func checkUpdateText(form dto.ChatbotUpdateForm) error {
	fields := map[string]*string{
		"name":                   form.Name,
		"event_name":             form.EventName,
		"system_prompt":          form.SystemPrompt,
		"single_person_prompt":   form.SinglePersonPrompt,
		"multiple_person_prompt": form.MultiplePersonPrompt,
	}
	for name, v := range fields {
		if v != nil && strings.TrimSpace(*v) == "" {
			return fmt.Errorf("%s must not be empty", name)
		}
	}
	return nil
}

// resolveUpdateDates merges the optional form dates over the stored ones.
// An omitted date keeps its current value; an end_date supplied as an empty
// string clears the expiry to the no-expiry sentinel.
func resolveUpdateDates(chatbot *entity.Chatbot, form dto.ChatbotUpdateForm) (time.Time, time.Time, error) {
	start := chatbot.StartDate
	if form.StartDate != nil {
		parsed, err := time.Parse(dateLayout, *form.StartDate)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("invalid start_date %q, expected YYYY-MM-DD", *form.StartDate)
		}
		start = parsed
	}

	end := chatbot.EndDate
	if form.EndDate != nil {
		if *form.EndDate == "" {
			end = entity.InfiniteEndDate()
		} else {
			parsed, err := time.Parse(dateLayout, *form.EndDate)
			if err != nil {
				return time.Time{}, time.Time{}, fmt.Errorf("invalid end_date %q, expected YYYY-MM-DD", *form.EndDate)
			}
			end = parsed
		}
	}

	if end.Year() < entity.InfiniteEndDateYear && end.Before(start) {
		return time.Time{}, time.Time{}, ErrBadDateRange
	}
	return start, end, nil
}

// fetchOwnedGuest loads a guest and checks it belongs to the chatbot.
func fetchOwnedGuest(ctx context.Context, uow unitofwork.UnitOfWork, guestId, chatbotId uuid.UUID) (*entity.Guest, error) {
	guest, err := uow.GuestRepository().FindOne(ctx, specification.ByID{ID: guestId})
	if err != nil {
		return nil, err
	}
	if guest == nil || guest.ChatbotId != chatbotId {
		return nil, ErrGuestNotFound
	}
	return guest, nil
}

// Update edits the chatbot in place. Only fields present in the form are
// touched. Roster rows and manual guests JSON are appended to the guest
// list; update_guests and delete_guests adjust existing rows by id.
func (s *chatbotService) Update(ctx context.Context, chatbotId uuid.UUID, input ChatbotUpdateInput) (resp *dto.ChatbotDetailResponse, err error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	chatbot, err := uow.ChatbotRepository().FindOne(ctx, specification.ByID{ID: chatbotId})
	if err != nil {
		return nil, err
	}
	if chatbot == nil {
		return nil, ErrChatbotNotFound
	}

	start, end, err := resolveUpdateDates(chatbot, input.Form)
	if err != nil {
		return nil, err
	}
	if err = checkUpdateText(input.Form); err != nil {
		return nil, err
	}

	var deleteIds []uuid.UUID
	if strings.TrimSpace(input.Form.DeleteGuests) != "" {
		if err = json.Unmarshal([]byte(input.Form.DeleteGuests), &deleteIds); err != nil {
			return nil, fmt.Errorf("invalid delete_guests JSON: %w", err)
		}
	}
	var guestUpdates []dto.GuestUpdate
	if strings.TrimSpace(input.Form.UpdateGuests) != "" {
		if err = json.Unmarshal([]byte(input.Form.UpdateGuests), &guestUpdates); err != nil {
			return nil, fmt.Errorf("invalid update_guests JSON: %w", err)
		}
	}

	var savedFiles []string
	photos := newPhotoSet(s.store, input.GuestPhotos)
	defer func() {
		if err != nil {
			s.cleanupFiles(savedFiles)
			s.cleanupFiles(photos.saved)
		}
	}()

	// Files replaced or deleted stay on disk until the transaction commits.
	var removeAfterCommit []string

	if input.BackgroundImage != nil {
		newBackground, saveErr := s.store.SaveImage(input.BackgroundImage, "backgrounds")
		if saveErr != nil {
			err = saveErr
			return nil, err
		}
		savedFiles = append(savedFiles, newBackground)
		if chatbot.BackgroundImage != "" {
			removeAfterCommit = append(removeAfterCommit, chatbot.BackgroundImage)
		}
		chatbot.BackgroundImage = newBackground
	}

	if input.Form.Name != nil {
		chatbot.Name = *input.Form.Name
	}
	if input.Form.EventName != nil {
		chatbot.EventName = *input.Form.EventName
	}
	if input.Form.Description != nil {
		chatbot.Description = *input.Form.Description
	}
	chatbot.StartDate = start
	chatbot.EndDate = end
	if input.Form.SystemPrompt != nil {
		chatbot.SystemPrompt = *input.Form.SystemPrompt
	}
	if input.Form.SinglePersonPrompt != nil {
		chatbot.SinglePersonPrompt = *input.Form.SinglePersonPrompt
	}
	if input.Form.MultiplePersonPrompt != nil {
		chatbot.MultiplePersonPrompt = *input.Form.MultiplePersonPrompt
	}
	if input.Form.Public != nil {
		chatbot.Public = parseBoolField(*input.Form.Public, chatbot.Public)
	}
	if input.Form.Active != nil {
		chatbot.Active = parseBoolField(*input.Form.Active, chatbot.Active)
	}
	chatbot.UpdatedAt = time.Now()

	newGuests, err := s.buildGuests(chatbot.Id, input.GuestList, input.Form.Guests, photos)
	if err != nil {
		return nil, err
	}

	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err = uow.ChatbotRepository().Update(ctx, chatbot); err != nil {
		return nil, err
	}

	for _, id := range deleteIds {
		var guest *entity.Guest
		guest, err = fetchOwnedGuest(ctx, uow, id, chatbot.Id)
		if err != nil {
			return nil, err
		}
		if guest.Photo != "" {
			removeAfterCommit = append(removeAfterCommit, guest.Photo)
		}
		if err = uow.GuestRepository().Delete(ctx, id); err != nil {
			return nil, err
		}
	}

	for _, upd := range guestUpdates {
		var guest *entity.Guest
		guest, err = fetchOwnedGuest(ctx, uow, upd.Id, chatbot.Id)
		if err != nil {
			return nil, err
		}
		applyGuestUpdate(guest, upd)
		if upd.PhotoKey != "" {
			var photo string
			photo, err = photos.save(upd.PhotoKey)
			if err != nil {
				return nil, err
			}
			if photo != "" {
				if guest.Photo != "" {
					removeAfterCommit = append(removeAfterCommit, guest.Photo)
				}
				guest.Photo = photo
			}
		}
		if err = uow.GuestRepository().Update(ctx, guest); err != nil {
			return nil, err
		}
	}

	for _, guest := range newGuests {
		if err = uow.GuestRepository().Create(ctx, guest); err != nil {
			return nil, err
		}
	}

	if err = uow.Commit(); err != nil {
		return nil, err
	}

	s.cleanupFiles(removeAfterCommit)
	s.publisher.PublishChatbotUpdated(ctx, chatbot.Id, chatbot.Name)

	return s.Get(ctx, chatbot.Id, nil)
}

func applyGuestUpdate(guest *entity.Guest, upd dto.GuestUpdate) {
	if upd.Name != nil && strings.TrimSpace(*upd.Name) != "" {
		guest.Name = *upd.Name
	}
	if upd.Title != nil {
		guest.Title = *upd.Title
	}
	if upd.Description != nil {
		guest.Description = *upd.Description
	}
	if upd.Organization != nil {
		guest.Organization = *upd.Organization
	}
	if upd.Email != nil {
		guest.Email = *upd.Email
	}
	if upd.IsSpeaker != nil {
		guest.IsSpeaker = *upd.IsSpeaker
	}
	if upd.IsModerator != nil {
		guest.IsModerator = *upd.IsModerator
	}
}

func (s *chatbotService) Delete(ctx context.Context, chatbotId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	chatbot, err := uow.ChatbotRepository().FindOne(ctx, specification.ByID{ID: chatbotId})
	if err != nil {
		return err
	}
	if chatbot == nil {
		return ErrChatbotNotFound
	}

	guests, err := uow.GuestRepository().FindAll(ctx, specification.ByChatbot{ChatbotID: chatbotId})
	if err != nil {
		return err
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.MessageRepository().DeleteAllByChatbot(ctx, chatbotId); err != nil {
		return err
	}
	if err := uow.ParticipantRepository().DeleteAllByChatbot(ctx, chatbotId); err != nil {
		return err
	}
	if err := uow.GuestRepository().DeleteAllByChatbot(ctx, chatbotId); err != nil {
		return err
	}
	if err := uow.ChatbotRepository().Delete(ctx, chatbotId); err != nil {
		return err
	}

	if err := uow.Commit(); err != nil {
		return err
	}

	// Stored files go only after the rows are gone.
	if chatbot.BackgroundImage != "" {
		_ = s.store.Remove(chatbot.BackgroundImage)
	}
	for _, g := range guests {
		if g.Photo != "" {
			_ = s.store.Remove(g.Photo)
		}
	}

	s.logger.Info("CHATBOT", "Chatbot deleted", map[string]interface{}{
		"chatbotId": chatbotId.String(),
		"name":      chatbot.Name,
	})
	s.publisher.PublishChatbotDeleted(ctx, chatbotId, chatbot.Name)

	return nil
}

// Get returns the chatbot with its guests. A non-nil viewer is checked
// against private chatbots: only the creator and admins may see them.
func (s *chatbotService) Get(ctx context.Context, chatbotId uuid.UUID, viewer *entity.User) (*dto.ChatbotDetailResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	chatbot, err := uow.ChatbotRepository().FindOne(ctx, specification.ByID{ID: chatbotId})
	if err != nil {
		return nil, err
	}
	if chatbot == nil {
		return nil, ErrChatbotNotFound
	}
	if viewer != nil && !chatbot.Public &&
		viewer.Role != entity.UserRoleAdmin && viewer.Id != chatbot.CreatedById {
		return nil, ErrChatbotPrivate
	}

	guests, err := uow.GuestRepository().FindAll(ctx, specification.ByChatbot{ChatbotID: chatbotId})
	if err != nil {
		return nil, err
	}

	detail := &dto.ChatbotDetailResponse{
		Chatbot: s.chatbotResponse(ctx, uow, chatbot),
		Guests:  make([]dto.GuestResponse, 0, len(guests)),
	}
	for _, g := range guests {
		detail.Guests = append(detail.Guests, guestResponse(g))
	}
	return detail, nil
}

func (s *chatbotService) List(ctx context.Context, page, perPage int, search string) (*dto.Paginated[dto.ChatbotResponse], error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{}
	if search != "" {
		specs = append(specs, specification.SearchText{Query: search})
	}

	total, err := uow.ChatbotRepository().Count(ctx, specs...)
	if err != nil {
		return nil, err
	}

	listSpecs := append(specs,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: perPage, Offset: (page - 1) * perPage},
	)
	chatbots, err := uow.ChatbotRepository().FindAll(ctx, listSpecs...)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ChatbotResponse, 0, len(chatbots))
	for _, c := range chatbots {
		items = append(items, s.chatbotResponse(ctx, uow, c))
	}

	return &dto.Paginated[dto.ChatbotResponse]{
		Items:   items,
		Total:   total,
		Page:    page,
		PerPage: perPage,
	}, nil
}

func (s *chatbotService) findChatbot(ctx context.Context, uow unitofwork.UnitOfWork, chatbotId uuid.UUID) (*entity.Chatbot, error) {
	chatbot, err := uow.ChatbotRepository().FindOne(ctx, specification.ByID{ID: chatbotId})
	if err != nil {
		return nil, err
	}
	if chatbot == nil {
		return nil, ErrChatbotNotFound
	}
	return chatbot, nil
}

func (s *chatbotService) Settings(ctx context.Context, chatbotId uuid.UUID) (*dto.ChatbotSettingsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	chatbot, err := s.findChatbot(ctx, uow, chatbotId)
	if err != nil {
		return nil, err
	}

	res := &dto.ChatbotSettingsResponse{
		Id:                   chatbot.Id,
		SystemPrompt:         chatbot.SystemPrompt,
		SinglePersonPrompt:   chatbot.SinglePersonPrompt,
		MultiplePersonPrompt: chatbot.MultiplePersonPrompt,
		Public:               chatbot.Public,
		Active:               chatbot.Active,
		StartDate:            chatbot.StartDate.Format(dateLayout),
		IsInfiniteEndDate:    chatbot.IsInfiniteEndDate(),
	}
	if !chatbot.IsInfiniteEndDate() {
		res.EndDate = chatbot.EndDate.Format(dateLayout)
	}
	return res, nil
}

func (s *chatbotService) Stats(ctx context.Context, chatbotId uuid.UUID) (*dto.ChatbotStatsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.findChatbot(ctx, uow, chatbotId); err != nil {
		return nil, err
	}

	byChatbot := specification.ByChatbot{ChatbotID: chatbotId}

	total, err := uow.MessageRepository().Count(ctx, byChatbot)
	if err != nil {
		return nil, err
	}
	fromUsers, err := uow.MessageRepository().Count(ctx, byChatbot, specification.UserMessages{FromUser: true})
	if err != nil {
		return nil, err
	}
	guests, err := uow.GuestRepository().Count(ctx, byChatbot)
	if err != nil {
		return nil, err
	}
	participants, err := uow.ParticipantRepository().Count(ctx, byChatbot)
	if err != nil {
		return nil, err
	}

	return &dto.ChatbotStatsResponse{
		ChatbotId:        chatbotId,
		TotalMessages:    total,
		UserMessages:     fromUsers,
		BotMessages:      total - fromUsers,
		GuestCount:       guests,
		ParticipantCount: participants,
	}, nil
}

func (s *chatbotService) ListGuests(ctx context.Context, chatbotId uuid.UUID) ([]dto.GuestResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err := s.findChatbot(ctx, uow, chatbotId); err != nil {
		return nil, err
	}

	guests, err := uow.GuestRepository().FindAll(ctx, specification.ByChatbot{ChatbotID: chatbotId})
	if err != nil {
		return nil, err
	}

	items := make([]dto.GuestResponse, 0, len(guests))
	for _, g := range guests {
		items = append(items, guestResponse(g))
	}
	return items, nil
}

func (s *chatbotService) AddGuest(ctx context.Context, chatbotId uuid.UUID, form dto.GuestForm, photo *multipart.FileHeader) (resp *dto.GuestResponse, err error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if _, err = s.findChatbot(ctx, uow, chatbotId); err != nil {
		return nil, err
	}

	path := ""
	if photo != nil {
		path, err = s.store.SaveImage(photo, "guests")
		if err != nil {
			return nil, err
		}
		defer func() {
			if err != nil {
				s.cleanupFiles([]string{path})
			}
		}()
	}

	guest := &entity.Guest{
		Id:           uuid.New(),
		ChatbotId:    chatbotId,
		Name:         form.Name,
		Title:        form.Title,
		Description:  form.Description,
		Organization: form.Organization,
		Email:        form.Email,
		Photo:        path,
		IsSpeaker:    parseBoolField(form.IsSpeaker, false),
		IsModerator:  parseBoolField(form.IsModerator, false),
		CreatedAt:    time.Now(),
	}
	if err = uow.GuestRepository().Create(ctx, guest); err != nil {
		return nil, err
	}

	res := guestResponse(guest)
	return &res, nil
}

func (s *chatbotService) UpdateGuest(ctx context.Context, guestId uuid.UUID, form dto.GuestForm, photo *multipart.FileHeader) (resp *dto.GuestResponse, err error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	guest, err := uow.GuestRepository().FindOne(ctx, specification.ByID{ID: guestId})
	if err != nil {
		return nil, err
	}
	if guest == nil {
		return nil, ErrGuestNotFound
	}

	oldPhoto := ""
	if photo != nil {
		var path string
		path, err = s.store.SaveImage(photo, "guests")
		if err != nil {
			return nil, err
		}
		defer func() {
			if err != nil {
				s.cleanupFiles([]string{path})
			}
		}()
		oldPhoto = guest.Photo
		guest.Photo = path
	}

	guest.Name = form.Name
	guest.Title = form.Title
	guest.Description = form.Description
	guest.Organization = form.Organization
	guest.Email = form.Email
	guest.IsSpeaker = parseBoolField(form.IsSpeaker, guest.IsSpeaker)
	guest.IsModerator = parseBoolField(form.IsModerator, guest.IsModerator)

	if err = uow.GuestRepository().Update(ctx, guest); err != nil {
		return nil, err
	}

	if oldPhoto != "" {
		s.cleanupFiles([]string{oldPhoto})
	}

	res := guestResponse(guest)
	return &res, nil
}

func (s *chatbotService) DeleteGuest(ctx context.Context, guestId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	guest, err := uow.GuestRepository().FindOne(ctx, specification.ByID{ID: guestId})
	if err != nil {
		return err
	}
	if guest == nil {
		return ErrGuestNotFound
	}

	if err := uow.GuestRepository().Delete(ctx, guestId); err != nil {
		return err
	}

	if guest.Photo != "" {
		s.cleanupFiles([]string{guest.Photo})
	}
	return nil
}
