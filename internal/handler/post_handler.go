package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/inkpost/internal/service"
)

// coverFormField is the multipart field carrying the optional cover image.
const coverFormField = "file"

// CreatePost 创建新文章，可附带一张封面图片
func (a *API) CreatePost(c *gin.Context) {
	// 没有附件时封面为空字符串
	file, err := c.FormFile(coverFormField)
	if err != nil && !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart) {
		log.Printf("Error creating post: reading cover: %v", err)
		respondMessage(c, http.StatusInternalServerError, "Failed to create post")
		return
	}

	tags, ok := c.GetPostForm("tags")
	if !ok {
		log.Printf("Error creating post: missing tags field")
		respondMessage(c, http.StatusInternalServerError, "Failed to create post")
		return
	}

	input := service.PostInput{
		Title:   c.PostForm("title"),
		Summary: c.PostForm("summary"),
		Content: c.PostForm("content"),
		Author:  c.PostForm("author"),
		Tags:    tags,
	}

	if file != nil {
		name, err := a.covers.Save(file)
		if err != nil {
			log.Printf("Error creating post: saving cover: %v", err)
			respondMessage(c, http.StatusInternalServerError, "Failed to create post")
			return
		}
		input.Cover = name
	}

	id, err := a.posts.Create(c.Request.Context(), input)
	if err != nil {
		log.Printf("Error creating post: %v", err)
		respondMessage(c, http.StatusInternalServerError, "Failed to create post")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post created successfully", "postId": id})
}

// GetPost 获取单篇文章
func (a *API) GetPost(c *gin.Context) {
	id := c.Param("postId")
	if !a.posts.ValidID(id) {
		respondMessage(c, http.StatusBadRequest, "Invalid post ID")
		return
	}

	post, err := a.posts.Get(c.Request.Context(), id)
	if err != nil {
		a.respondPostLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// GetRenderedPost 返回文章内容渲染后的 HTML
func (a *API) GetRenderedPost(c *gin.Context) {
	id := c.Param("postId")
	if !a.posts.ValidID(id) {
		respondMessage(c, http.StatusBadRequest, "Invalid post ID")
		return
	}

	rendered, err := a.posts.Render(c.Request.Context(), id)
	if err != nil {
		a.respondPostLookupError(c, err)
		return
	}

	c.JSON(http.StatusOK, rendered)
}

// LatestPosts 按创建时间倒序分页返回文章，每页 5 篇
func (a *API) LatestPosts(c *gin.Context) {
	posts, err := a.posts.Latest(c.Request.Context(), c.Query("page"))
	if err != nil {
		log.Printf("Error fetching posts: %v", err)
		respondMessage(c, http.StatusInternalServerError, "Failed to fetch posts")
		return
	}

	c.JSON(http.StatusOK, posts)
}

func (a *API) respondPostLookupError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidIdentifier):
		respondMessage(c, http.StatusBadRequest, "Invalid post ID")
	case errors.Is(err, service.ErrPostNotFound):
		respondMessage(c, http.StatusNotFound, "Post not found")
	default:
		log.Printf("Error fetching post: %v", err)
		respondMessage(c, http.StatusInternalServerError, "Failed to fetch post")
	}
}
