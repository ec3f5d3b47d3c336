package handler

import (
	"log"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/inkpost/internal/service"
)

const (
	sessionKeyAuthenticated = "isAuthenticated"
	sessionKeyRole          = "userRole"

	accessDeniedMessage = "Access denied. You are not authorized to edit."
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login 校验管理员账号并在会话中记录登录状态
func (a *API) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("login: invalid request body: %v", err)
	}

	if err := a.auth.Verify(req.Email, req.Password); err != nil {
		c.String(http.StatusUnauthorized, "Invalid credentials")
		return
	}

	session := sessions.Default(c)
	session.Set(sessionKeyAuthenticated, true)
	session.Set(sessionKeyRole, service.AdminRole)
	if err := session.Save(); err != nil {
		log.Printf("login: failed to save session: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to save session")
		return
	}

	respondMessage(c, http.StatusOK, "Login successful")
}

// Logout 清空会话并使 cookie 过期
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1, HttpOnly: true})
	if err := session.Save(); err != nil {
		log.Printf("logout: failed to save session: %v", err)
		respondError(c, http.StatusInternalServerError, "Failed to save session")
		return
	}

	respondMessage(c, http.StatusOK, "Logout successful")
}

// CheckAuth 返回 200 表示当前会话已登录，否则 401
func (a *API) CheckAuth(c *gin.Context) {
	if sessionAuthenticated(sessions.Default(c)) {
		c.Status(http.StatusOK)
		return
	}
	c.Status(http.StatusUnauthorized)
}

// IsAuthenticated 未登录时重定向到登录入口
func IsAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !sessionAuthenticated(sessions.Default(c)) {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// IsAdmin 仅放行已登录且角色为 admin 的会话
func IsAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		role, _ := session.Get(sessionKeyRole).(string)
		if !sessionAuthenticated(session) || role != service.AdminRole {
			c.Error(service.ErrForbidden)
			c.String(http.StatusForbidden, accessDeniedMessage)
			c.Abort()
			return
		}
		c.Next()
	}
}

func sessionAuthenticated(session sessions.Session) bool {
	authenticated, _ := session.Get(sessionKeyAuthenticated).(bool)
	return authenticated
}
