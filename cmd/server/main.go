package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/inkpost/internal/config"
	"github.com/inkpost/internal/handler"
	"github.com/inkpost/internal/router"
	"github.com/inkpost/internal/service"
	"github.com/joho/godotenv"
)

func main() {
	// .env 可选，缺失时直接使用进程环境变量
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	gin.SetMode(cfg.GinMode)

	store, closeStore, err := service.OpenPostStore(context.Background(), cfg)
	if err != nil {
		log.Fatalf("failed to initialize post store: %v", err)
	}
	defer closeStore()

	mailer := service.NewSMTPMailer(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPass)
	api := handler.NewAPI(
		service.NewPostService(store, cfg.DefaultAuthor),
		service.NewCoverStorage(cfg.UploadDir),
		service.NewMailService(mailer, cfg.RecipientEmail),
		service.NewAuthService(cfg.AdminEmail, cfg.AdminPassword, cfg.AdminPasswordHash),
	)

	if cfg.AdminEmail == "" {
		log.Printf("EMAIL is not set; admin login is disabled")
	}
	if cfg.RequireAdminForPosts {
		log.Printf("post creation requires an admin session")
	}

	// 设置并运行 Gin 服务器
	r := router.SetupRouter(cfg, api)
	log.Printf("Server is running on %s", cfg.ListenAddr)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}
