package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/karansingh008/Tourizio/startup"
	"github.com/karansingh008/Tourizio/startup/config"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	cfg := config.NewConfig()
	server := startup.NewServer(cfg)
	server.Start()
}
