package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/inkpost/internal/config"
	"github.com/inkpost/internal/handler"
)

const sessionName = "blog_session"

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(cfg config.AppConfig, api *handler.API) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 配置会话中间件
	r.Use(sessions.Sessions(sessionName, NewSessionStore(cfg)))

	// 上传目录公开为静态文件，无需登录
	r.Static(cfg.UploadURLPath, cfg.UploadDir)

	r.GET("/", handler.Home)
	r.GET("/ping", handler.Ping)

	r.GET("/check-auth", api.CheckAuth)
	r.POST("/login", api.Login)
	r.POST("/logout", api.Logout)

	r.POST("/contact", api.Contact)

	if cfg.RequireAdminForPosts {
		r.POST("/post", handler.IsAdmin(), api.CreatePost)
	} else {
		r.POST("/post", api.CreatePost)
	}
	r.GET("/posts/:postId", api.GetPost)
	r.GET("/posts/:postId/rendered", api.GetRenderedPost)
	r.GET("/latest-posts", api.LatestPosts)
	r.GET("/tags", api.GetTags)

	return r
}
