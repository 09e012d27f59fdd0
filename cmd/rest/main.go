package main

import (
	"context"
	"log"

	"eventchat-be/internal/bootstrap"
	"eventchat-be/internal/config"
	"eventchat-be/internal/server"
	"eventchat-be/internal/tracer"
	"eventchat-be/pkg/database"
)

func main() {
	// 0. Initialize Tracer
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Start Background Services
	go func() {
		log.Println("Background: Starting Notification Consumer...")
		if err := container.NotificationService.Consume(context.Background()); err != nil {
			log.Printf("Background Notification Consumer Error: %v", err)
		}
	}()
	go func() {
		log.Println("Background: Starting Mail Consumer...")
		if err := container.MailConsumer.Consume(context.Background()); err != nil {
			log.Printf("Background Mail Consumer Error: %v", err)
		}
	}()

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
