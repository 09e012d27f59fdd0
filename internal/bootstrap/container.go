package bootstrap

import (
	"eventchat-be/internal/config"
	"eventchat-be/internal/controller"
	"eventchat-be/internal/pkg/logger"
	"eventchat-be/internal/pkg/mailer"
	"eventchat-be/internal/repository/unitofwork"
	"eventchat-be/internal/service"
	"eventchat-be/pkg/admin/dashboard"
	adminEvents "eventchat-be/pkg/admin/events"
	"eventchat-be/pkg/admin/importer"
	"eventchat-be/pkg/admin/user"
	"eventchat-be/pkg/bus"
	"eventchat-be/pkg/uploads"

	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController    controller.IAuthController
	ChatbotController controller.IChatbotController
	AdminController   controller.IAdminController
	UserController    controller.IUserController

	// Background services (run by main.go)
	NotificationService service.INotificationService
	MailConsumer        service.IMailConsumerService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.Email,
		cfg.App.Name,
	)

	store := uploads.NewStore(cfg.App.UploadDir)

	// Event bus
	pubSub := bus.New()
	mailPublisher := bus.NewPublisher(pubSub, bus.TopicMailOutbound)
	adminPublisher := adminEvents.NewBusPublisher(bus.NewPublisher(pubSub, bus.TopicAdminEvents), sysLogger)

	// Admin domain components
	userManager := user.NewManager(sysLogger, adminPublisher)
	userImporter := importer.NewImporter(sysLogger, userManager, adminPublisher)
	dashboardAggregator := dashboard.NewAggregator(sysLogger)

	// Services
	authService := service.NewAuthService(uowFactory, userManager, mailPublisher, sysLogger)
	chatbotService := service.NewChatbotService(uowFactory, store, adminPublisher, sysLogger)
	userService := service.NewUserService(uowFactory, store, adminPublisher, sysLogger)
	adminService := service.NewAdminService(uowFactory, userManager, userImporter, dashboardAggregator, mailPublisher, sysLogger)
	notificationService := service.NewNotificationService(pubSub, uowFactory, sysLogger)
	mailConsumer := service.NewMailConsumerService(pubSub, emailService, sysLogger)

	return &Container{
		AuthController:    controller.NewAuthController(authService),
		ChatbotController: controller.NewChatbotController(chatbotService, authService),
		AdminController:   controller.NewAdminController(adminService, chatbotService, notificationService, authService),
		UserController:    controller.NewUserController(userService, authService),

		NotificationService: notificationService,
		MailConsumer:        mailConsumer,

		Logger: sysLogger,
	}
}
