package main

import (
	"fmt"
	"log"

	"auditra-backend/internal/config"
	"auditra-backend/internal/database"
	"auditra-backend/internal/handlers"
	"auditra-backend/internal/server"
)

func main() {
	cfg := config.Load()
	database.Init(cfg.DBDSN)
	database.InitRedis(cfg.RedisAddr)
	handlers.SetUploadDir(cfg.UploadDir)

	r := server.NewRouter(cfg)

	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	log.Printf("starting server on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
