package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetTags 返回所有文章使用过的标签，每个只出现一次
func (a *API) GetTags(c *gin.Context) {
	tags, err := a.posts.Tags(c.Request.Context())
	if err != nil {
		log.Printf("Error fetching unique tags: %v", err)
		respondMessage(c, http.StatusInternalServerError, "Failed to fetch unique tags")
		return
	}

	c.JSON(http.StatusOK, tags)
}
