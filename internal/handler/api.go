package handler

import (
	"github.com/inkpost/internal/service"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	posts  *service.PostService
	covers *service.CoverStorage
	mail   *service.MailService
	auth   *service.AuthService
}

// NewAPI constructs a handler set with shared services.
func NewAPI(posts *service.PostService, covers *service.CoverStorage, mail *service.MailService, auth *service.AuthService) *API {
	return &API{
		posts:  posts,
		covers: covers,
		mail:   mail,
		auth:   auth,
	}
}
