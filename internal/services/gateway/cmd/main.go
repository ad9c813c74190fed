package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"

	"github.com/chrisharrington/irrigo/internal/services/gateway/app"
	"github.com/chrisharrington/irrigo/internal/services/weather"
	"github.com/chrisharrington/irrigo/internal/zonecfg"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("gateway: no .env file: %v", err)
	}
	cfg := loadConfig()

	zones, err := zonecfg.Load(cfg.ZonesPath)
	if err != nil {
		log.Fatalf("gateway: load zones: %v", err)
	}

	fiberApp := fiber.New(fiber.Config{Prefork: cfg.Prefork})
	app.RegisterRoutes(fiberApp, zones, weather.NewOpenMeteoClient())

	log.Printf("gateway: listening on :%s (%d zones)", cfg.Port, len(zones))
	log.Fatal(fiberApp.Listen(":" + cfg.Port))
}
