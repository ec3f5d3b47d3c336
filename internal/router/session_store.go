package router

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-contrib/sessions/memstore"
	"github.com/inkpost/internal/config"
)

// NewSessionStore picks the session backend named by cfg.SessionStore.
// The memory store keeps session data server side and only puts the session
// id in the cookie; the cookie store keeps everything in the signed cookie.
func NewSessionStore(cfg config.AppConfig) sessions.Store {
	secret := []byte(cfg.SessionSecret)

	var store sessions.Store
	switch cfg.SessionStore {
	case config.SessionStoreCookie:
		store = cookie.NewStore(secret)
	default:
		store = memstore.NewStore(secret)
	}

	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 30,
		HttpOnly: true,
	})
	return store
}
