package blogControllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/josuejheymi/backend-levels/models"
	"gorm.io/gorm"
)

type CreatePostRequest struct {
	Title       string     `json:"title" binding:"required"`
	Body        string     `json:"body" binding:"required"`
	Author      string     `json:"author"`
	ImageURL    string     `json:"image_url"`
	PublishedAt *time.Time `json:"published_at"`
}

// GET /blog
func GetAllPostsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var posts []models.BlogPost
		if err := db.Order("published_at DESC").Find(&posts).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
			return
		}
		c.JSON(http.StatusOK, posts)
	}
}

// GET /blog/:id
func GetPostByIDHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var post models.BlogPost
		if err := db.First(&post, c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		c.JSON(http.StatusOK, post)
	}
}

// POST /blog (admin). Publish timestamp defaults to now when absent.
func CreatePostHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreatePostRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		post := models.BlogPost{
			Title:    req.Title,
			Body:     req.Body,
			Author:   req.Author,
			ImageURL: req.ImageURL,
		}
		if req.PublishedAt != nil {
			post.PublishedAt = *req.PublishedAt
		} else {
			post.PublishedAt = time.Now()
		}

		if err := db.Create(&post).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
			return
		}
		c.JSON(http.StatusCreated, post)
	}
}

// DELETE /blog/:id (admin)
func DeletePostHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := db.Delete(&models.BlogPost{}, c.Param("id"))
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
	}
}
