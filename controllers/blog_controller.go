package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"gospelcms/models"
	"gospelcms/services"

	"github.com/gin-gonic/gin"
)

type BlogController struct {
	blogService  *services.BlogService
	userService  *services.UserService
	eventService *services.EventService
}

func NewBlogController(blogService *services.BlogService, userService *services.UserService, eventService *services.EventService) *BlogController {
	return &BlogController{
		blogService:  blogService,
		userService:  userService,
		eventService: eventService,
	}
}

// ListPublished serves the public blog index. Only published posts come back
// here no matter what the query says.
func (bc *BlogController) ListPublished(c *gin.Context) {
	var filters models.PostFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page, err := bc.blogService.ListPublic(filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": page})
}

func (bc *BlogController) GetBySlug(c *gin.Context) {
	post, err := bc.blogService.GetPostBySlug(c.Param("slug"))
	if errors.Is(err, services.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch post"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": post})
}

func (bc *BlogController) GetRelated(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "3"))

	posts, err := bc.blogService.GetRelatedPosts(c.Param("slug"), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch related posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": posts})
}

func (bc *BlogController) GetCategories(c *gin.Context) {
	categories, err := bc.blogService.GetCategories()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": categories})
}

func (bc *BlogController) GetTags(c *gin.Context) {
	tags, err := bc.blogService.GetTags()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tags"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": tags})
}

// ListAll serves the admin panel listing: all statuses unless filtered.
func (bc *BlogController) ListAll(c *gin.Context) {
	var filters models.PostFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	page, err := bc.blogService.ListAdmin(filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": page})
}

func (bc *BlogController) GetPost(c *gin.Context) {
	post, err := bc.blogService.GetPost(c.Param("id"))
	if errors.Is(err, services.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch post"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": post})
}

func (bc *BlogController) Create(c *gin.Context) {
	var req models.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	authorID := userID.(string)
	authorName := ""
	if author, err := bc.userService.GetUserByID(authorID); err == nil {
		authorName = author.Name
	}

	post, err := bc.blogService.CreatePost(&req, authorID, authorName)
	if err != nil {
		var validationErr *services.ValidationError
		if errors.As(err, &validationErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	bc.eventService.PublishPost(models.EventPostCreated, post)
	if post.Status == models.PostStatusPublished {
		bc.eventService.PublishPost(models.EventPostPublished, post)
	}

	c.JSON(http.StatusCreated, gin.H{"data": post})
}

func (bc *BlogController) Update(c *gin.Context) {
	var req models.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id := c.Param("id")

	previous, err := bc.blogService.GetPost(id)
	if errors.Is(err, services.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update post"})
		return
	}

	post, err := bc.blogService.UpdatePost(id, &req)
	if errors.Is(err, services.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update post"})
		return
	}

	bc.eventService.PublishPost(models.EventPostUpdated, post)
	if previous.Status == models.PostStatusDraft && post.Status == models.PostStatusPublished {
		bc.eventService.PublishPost(models.EventPostPublished, post)
	}

	c.JSON(http.StatusOK, gin.H{"data": post})
}

func (bc *BlogController) Delete(c *gin.Context) {
	id := c.Param("id")

	if err := bc.blogService.DeletePost(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}

	bc.eventService.PublishPostDeleted(id)

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}
