package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Home 存活横幅
func Home(c *gin.Context) {
	c.String(http.StatusOK, "Welcome to the simple authentication example!")
}

// Ping 健康检查
func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}
