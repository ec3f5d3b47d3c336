package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/inkpost/internal/service"
)

// Contact 将联系表单通过邮件转发给站长
func (a *API) Contact(c *gin.Context) {
	var msg service.ContactMessage
	if err := c.ShouldBindJSON(&msg); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := a.mail.SendContact(c.Request.Context(), msg); err != nil {
		log.Printf("Error sending email: %v", err)
		respondError(c, http.StatusInternalServerError, "Error sending email")
		return
	}

	log.Printf("Email sent for contact from %q", msg.Email)
	respondMessage(c, http.StatusOK, "Email sent successfully")
}
