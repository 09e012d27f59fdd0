package controller

import (
	"mime/multipart"
	"strings"

	"eventchat-be/internal/pkg/serverutils"
	"eventchat-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// guestPhotoPrefix names the multipart file fields carrying guest photos.
// The suffix after the prefix is matched against the roster photo column.
const guestPhotoPrefix = "guest_photo_"

type IChatbotController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Settings(ctx *fiber.Ctx) error
	Stats(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type chatbotController struct {
	service     service.IChatbotService
	authService service.IAuthService
}

func NewChatbotController(svc service.IChatbotService, authService service.IAuthService) IChatbotController {
	return &chatbotController{service: svc, authService: authService}
}

func (c *chatbotController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chatbots")
	h.Use(serverutils.AuthMiddleware(c.authService))

	// Detail and stats are visible to any authenticated user; private
	// chatbots are filtered in the service.
	h.Get(":id", c.Show)
	h.Get(":id/stats", c.Stats)

	h.Get("", serverutils.AdminMiddleware(), c.List)
	h.Post("", serverutils.AdminMiddleware(), c.Create)
	h.Get(":id/settings", serverutils.AdminMiddleware(), c.Settings)
	h.Put(":id", serverutils.AdminMiddleware(), c.Update)
	h.Delete(":id", serverutils.AdminMiddleware(), c.Delete)
}

// parseInput gathers the multipart form fields and files of a create request.
func parseInput(ctx *fiber.Ctx) (service.ChatbotInput, error) {
	var input service.ChatbotInput
	if err := ctx.BodyParser(&input.Form); err != nil {
		return input, err
	}

	input.BackgroundImage, input.GuestList, input.GuestPhotos = parseFiles(ctx)
	return input, nil
}

// parseUpdateInput is parseInput for the update form, whose text fields are
// presence-checked.
func parseUpdateInput(ctx *fiber.Ctx) (service.ChatbotUpdateInput, error) {
	var input service.ChatbotUpdateInput
	if err := ctx.BodyParser(&input.Form); err != nil {
		return input, err
	}

	input.BackgroundImage, input.GuestList, input.GuestPhotos = parseFiles(ctx)
	return input, nil
}

func parseFiles(ctx *fiber.Ctx) (background, guestList *multipart.FileHeader, photos map[string]*multipart.FileHeader) {
	if fh, err := ctx.FormFile("background_image"); err == nil {
		background = fh
	}
	if fh, err := ctx.FormFile("guest_list"); err == nil {
		guestList = fh
	}

	if form, err := ctx.MultipartForm(); err == nil && form != nil {
		for field, files := range form.File {
			if !strings.HasPrefix(field, guestPhotoPrefix) || len(files) == 0 {
				continue
			}
			if photos == nil {
				photos = make(map[string]*multipart.FileHeader)
			}
			photos[strings.TrimPrefix(field, guestPhotoPrefix)] = files[0]
		}
	}
	return background, guestList, photos
}

func (c *chatbotController) List(ctx *fiber.Ctx) error {
	page := ctx.QueryInt("page", 1)
	perPage := ctx.QueryInt("per_page", 20)
	search := ctx.Query("search")

	res, err := c.service.List(ctx.UserContext(), page, perPage, search)
	if err != nil {
		return respondServiceError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get chatbots", res))
}

func (c *chatbotController) Create(ctx *fiber.Ctx) error {
	userId, err := serverutils.CurrentUserId(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(serverutils.ErrorResponse(401, "Invalid session"))
	}

	input, err := parseInput(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid form data"))
	}
	if err := serverutils.ValidateRequest(input.Form); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.service.Create(ctx.UserContext(), userId, input)
	if err != nil {
		return respondServiceError(ctx, err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Chatbot created", res))
}

func (c *chatbotController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid chatbot ID"))
	}

	res, err := c.service.Get(ctx.UserContext(), id, serverutils.CurrentUser(ctx))
	if err != nil {
		return respondServiceError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get chatbot", res))
}

func (c *chatbotController) Settings(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid chatbot ID"))
	}

	res, err := c.service.Settings(ctx.UserContext(), id)
	if err != nil {
		return respondServiceError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get chatbot settings", res))
}

func (c *chatbotController) Stats(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid chatbot ID"))
	}

	res, err := c.service.Stats(ctx.UserContext(), id)
	if err != nil {
		return respondServiceError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get chatbot stats", res))
}

func (c *chatbotController) Update(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid chatbot ID"))
	}

	input, err := parseUpdateInput(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid form data"))
	}
	if err := serverutils.ValidateRequest(input.Form); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.service.Update(ctx.UserContext(), id, input)
	if err != nil {
		return respondServiceError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Chatbot updated", res))
}

func (c *chatbotController) Delete(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid chatbot ID"))
	}

	if err := c.service.Delete(ctx.UserContext(), id); err != nil {
		return respondServiceError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Chatbot deleted", nil))
}
