package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"orcafacil/go_backend/internal/app"
	"orcafacil/go_backend/internal/app/config"
)

func main() {
	if os.Getenv("ENV") != "production" {
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			log.Printf("warning: .env not loaded: %v", err)
		}
	}

	if err := app.Run(config.MustLoad()); err != nil {
		log.Fatalf("orcafacil: %v", err)
	}
}
