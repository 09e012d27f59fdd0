package controller

import (
	"errors"
	"mime/multipart"

	"eventchat-be/internal/dto"
	"eventchat-be/internal/pkg/serverutils"
	"eventchat-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router)
	GetDashboardStats(ctx *fiber.Ctx) error
	ListUsers(ctx *fiber.Ctx) error
	GetUser(ctx *fiber.Ctx) error
	CreateUser(ctx *fiber.Ctx) error
	UpdateUser(ctx *fiber.Ctx) error
	DeleteUser(ctx *fiber.Ctx) error
	ResetUserPassword(ctx *fiber.Ctx) error
	PreviewImport(ctx *fiber.Ctx) error
	ImportUsers(ctx *fiber.Ctx) error
	ListChatbots(ctx *fiber.Ctx) error
	DeleteChatbot(ctx *fiber.Ctx) error
	ListChatbotGuests(ctx *fiber.Ctx) error
	AddChatbotGuest(ctx *fiber.Ctx) error
	UpdateGuest(ctx *fiber.Ctx) error
	DeleteGuest(ctx *fiber.Ctx) error
	GetNotifications(ctx *fiber.Ctx) error
	MarkNotificationsRead(ctx *fiber.Ctx) error
	GetLogs(ctx *fiber.Ctx) error
	GetLogById(ctx *fiber.Ctx) error
}

type adminController struct {
	service        service.IAdminService
	chatbotService service.IChatbotService
	notifications  service.INotificationService
	authService    service.IAuthService
}

func NewAdminController(
	svc service.IAdminService,
	chatbotService service.IChatbotService,
	notifications service.INotificationService,
	authService service.IAuthService,
) IAdminController {
	return &adminController{
		service:        svc,
		chatbotService: chatbotService,
		notifications:  notifications,
		authService:    authService,
	}
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin")
	h.Use(serverutils.AuthMiddleware(c.authService))
	h.Use(serverutils.AdminMiddleware())

	h.Get("/dashboard/stats", c.GetDashboardStats)

	h.Get("/users", c.ListUsers)
	h.Post("/users", c.CreateUser)
	h.Get("/users/:id", c.GetUser)
	h.Put("/users/:id", c.UpdateUser)
	h.Delete("/users/:id", c.DeleteUser)
	h.Post("/users/:id/reset-password", c.ResetUserPassword)

	h.Post("/import/users/preview", c.PreviewImport)
	h.Post("/import/users", c.ImportUsers)

	h.Get("/chatbots", c.ListChatbots)
	h.Delete("/chatbots/:id", c.DeleteChatbot)
	h.Get("/chatbots/:id/guests", c.ListChatbotGuests)
	h.Post("/chatbots/:id/guests", c.AddChatbotGuest)
	h.Put("/guests/:id", c.UpdateGuest)
	h.Delete("/guests/:id", c.DeleteGuest)

	h.Get("/notifications", c.GetNotifications)
	h.Put("/notifications/read-all", c.MarkNotificationsRead)

	h.Get("/logs", c.GetLogs)
	h.Get("/logs/:id", c.GetLogById)
}

func (c *adminController) GetDashboardStats(ctx *fiber.Ctx) error {
	res, err := c.service.GetDashboardStats(ctx.UserContext())
	if err != nil {
		return respondServiceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get dashboard stats", res))
}

func (c *adminController) ListUsers(ctx *fiber.Ctx) error {
	page := ctx.QueryInt("page", 1)
	perPage := ctx.QueryInt("per_page", 20)
	role := ctx.Query("role")
	active := ctx.Query("active")

	res, err := c.service.ListUsers(ctx.UserContext(), page, perPage, role, active)
	if err != nil {
		return respondServiceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get users", res))
}

func (c *adminController) GetUser(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid user ID"))
	}

	res, err := c.service.GetUser(ctx.UserContext(), id)
	if err != nil {
		return respondServiceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get user", res))
}

func (c *adminController) CreateUser(ctx *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.service.CreateUser(ctx.UserContext(), req)
	if err != nil {
		return respondServiceError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("User created", res))
}

func (c *adminController) UpdateUser(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid user ID"))
	}

	var req dto.UpdateUserRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.service.UpdateUser(ctx.UserContext(), id, req)
	if err != nil {
		return respondServiceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("User updated", res))
}

func (c *adminController) DeleteUser(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid user ID"))
	}

	// Admins cannot delete themselves.
	selfId, err := serverutils.CurrentUserId(ctx)
	if err == nil && selfId == id {
		return ctx.Status(fiber.StatusForbidden).JSON(serverutils.ErrorResponse(403, "Cannot delete your own account"))
	}

	if err := c.service.DeleteUser(ctx.UserContext(), id); err != nil {
		return respondServiceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("User deleted", nil))
}

func (c *adminController) ResetUserPassword(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid user ID"))
	}

	res, err := c.authService.ResetPassword(ctx.UserContext(), dto.ResetPasswordRequest{UserId: id})
	if err != nil {
		return respondServiceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Password reset", res))
}

func (c *adminController) PreviewImport(ctx *fiber.Ctx) error {
	fh, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Import file is required"))
	}

	f, err := fh.Open()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	defer f.Close()

	res, err := c.service.PreviewImport(ctx.UserContext(), f, fh.Filename)
	if err != nil {
		return respondServiceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Import preview", res))
}

func (c *adminController) ImportUsers(ctx *fiber.Ctx) error {
	fh, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Import file is required"))
	}

	f, err := fh.Open()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(500, err.Error()))
	}
	defer f.Close()

	// Optional chatbot to enroll every imported account into.
	var chatbotId *uuid.UUID
	if raw := ctx.FormValue("chatbot_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid chatbot_id"))
		}
		chatbotId = &id
	}

	res, err := c.service.ImportUsers(ctx.UserContext(), f, fh.Filename, chatbotId)
	if err != nil {
		return respondServiceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Users imported", res))
}

func (c *adminController) ListChatbots(ctx *fiber.Ctx) error {
	page := ctx.QueryInt("page", 1)
	perPage := ctx.QueryInt("per_page", 20)
	search := ctx.Query("search")

	res, err := c.chatbotService.List(ctx.UserContext(), page, perPage, search)
	if err != nil {
		return respondServiceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get chatbots", res))
}

func (c *adminController) DeleteChatbot(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid chatbot ID"))
	}

	if err := c.chatbotService.Delete(ctx.UserContext(), id); err != nil {
		return respondServiceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Chatbot deleted", nil))
}

func (c *adminController) ListChatbotGuests(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid chatbot ID"))
	}

	res, err := c.chatbotService.ListGuests(ctx.UserContext(), id)
	if err != nil {
		return respondServiceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get guests", res))
}

func (c *adminController) AddChatbotGuest(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid chatbot ID"))
	}

	form, photo, err := parseGuestForm(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.chatbotService.AddGuest(ctx.UserContext(), id, form, photo)
	if err != nil {
		return respondServiceError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Guest added", res))
}

func (c *adminController) UpdateGuest(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid guest ID"))
	}

	form, photo, err := parseGuestForm(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.chatbotService.UpdateGuest(ctx.UserContext(), id, form, photo)
	if err != nil {
		return respondServiceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Guest updated", res))
}

func (c *adminController) DeleteGuest(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid guest ID"))
	}

	if err := c.chatbotService.DeleteGuest(ctx.UserContext(), id); err != nil {
		return respondServiceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Guest deleted", nil))
}

func parseGuestForm(ctx *fiber.Ctx) (dto.GuestForm, *multipart.FileHeader, error) {
	var form dto.GuestForm
	if err := ctx.BodyParser(&form); err != nil {
		return form, nil, errors.New("Invalid form data")
	}
	if err := serverutils.ValidateRequest(form); err != nil {
		return form, nil, err
	}

	var photo *multipart.FileHeader
	if fh, err := ctx.FormFile("photo"); err == nil {
		photo = fh
	}
	return form, photo, nil
}

func (c *adminController) GetNotifications(ctx *fiber.Ctx) error {
	limit := ctx.QueryInt("limit", 50)

	res, err := c.notifications.List(ctx.UserContext(), limit)
	if err != nil {
		return respondServiceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get notifications", res))
}

func (c *adminController) MarkNotificationsRead(ctx *fiber.Ctx) error {
	if err := c.notifications.MarkAllRead(ctx.UserContext()); err != nil {
		return respondServiceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Notifications marked read", nil))
}

func (c *adminController) GetLogs(ctx *fiber.Ctx) error {
	level := ctx.Query("level")
	limit := ctx.QueryInt("limit", 100)
	offset := ctx.QueryInt("offset", 0)

	res, err := c.service.GetLogs(level, limit, offset)
	if err != nil {
		return respondServiceError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get logs", res))
}

func (c *adminController) GetLogById(ctx *fiber.Ctx) error {
	res, err := c.service.GetLogById(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(serverutils.ErrorResponse(404, "Log not found"))
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get log", res))
}
