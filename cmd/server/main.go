package main

import (
	"os"
	"os/signal"
	"syscall"

	"recruiter/internal/app"
	"recruiter/internal/handlers"
	"recruiter/internal/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"github.com/joho/godotenv"
)

func main() {
	log := logger.New("main")

	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file found, using environment")
	}

	application, err := app.New()
	if err != nil {
		log.Er("failed to initialize application", err)
		os.Exit(1)
	}
	defer application.Close()

	engine := html.New("./views", ".html")

	server := fiber.New(fiber.Config{
		AppName: "recruiter",
		Views:   engine,
	})

	if err := handlers.Router(server, application); err != nil {
		log.Er("failed to register routes", err)
		os.Exit(1)
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-shutdown
		log.Info("shutting down")
		if err := server.Shutdown(); err != nil {
			log.Er("shutdown failed", err)
		}
	}()

	address := ":" + application.Config.ServerPort
	log.Info("starting server", "address", address, "environment", application.Config.Environment)

	if err := server.Listen(address); err != nil {
		log.Er("server stopped", err)
		os.Exit(1)
	}
}
