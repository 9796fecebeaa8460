package controllers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/Hemali15f/BookNest/errors"
	"github.com/Hemali15f/BookNest/models"
	"github.com/Hemali15f/BookNest/repository"
	"github.com/Hemali15f/BookNest/services"
)

// IBookService is the part of the book service the controller needs.
type IBookService interface {
	GetBook(ctx context.Context, id uuid.UUID) (*models.Book, error)
	ListBooks(ctx context.Context, params repository.ListBooksParams) (*services.BookListResult, error)
	Categories(ctx context.Context) ([]string, error)
	CreateBook(ctx context.Context, req services.BookCreateRequest) (*models.Book, error)
	UpdateBook(ctx context.Context, id uuid.UUID, req services.BookCreateRequest) error
	DeleteBook(ctx context.Context, id uuid.UUID) error
	Dashboard(ctx context.Context) (*services.DashboardStats, error)
}

type BookController struct {
	bookService IBookService
}

func NewBookController(bookService IBookService) *BookController {
	return &BookController{bookService: bookService}
}

// GetBooks returns a filtered, paginated page of the catalog.
func (bc *BookController) GetBooks(c *gin.Context) {
	params := repository.ListBooksParams{
		Page:     1,
		Limit:    20,
		Category: c.Query("category"),
		Search:   c.Query("search"),
		SortBy:   c.DefaultQuery("sortBy", "title"),
		Order:    c.DefaultQuery("order", "asc"),
	}

	const maxLimit = 100
	if p, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil && p > 0 {
		params.Page = p
	}
	if l, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil && l > 0 {
		params.Limit = l
		if params.Limit > maxLimit {
			params.Limit = maxLimit
		}
	}

	result, err := bc.bookService.ListBooks(c.Request.Context(), params)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetBookByID returns a single catalog entry.
func (bc *BookController) GetBookByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid book ID format"})
		return
	}

	book, err := bc.bookService.GetBook(c.Request.Context(), id)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

// GetCategories returns the distinct catalog categories.
func (bc *BookController) GetCategories(c *gin.Context) {
	categories, err := bc.bookService.Categories(c.Request.Context())
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// CreateBook adds a catalog entry (admin only, gated in routes).
func (bc *BookController) CreateBook(c *gin.Context) {
	var req services.BookCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	book, err := bc.bookService.CreateBook(c.Request.Context(), req)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, book)
}

// UpdateBook replaces a catalog entry's fields (admin only).
func (bc *BookController) UpdateBook(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid book ID format"})
		return
	}

	var req services.BookCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	if err := bc.bookService.UpdateBook(c.Request.Context(), id, req); err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Book updated successfully"})
}

// DeleteBook removes a catalog entry (admin only).
func (bc *BookController) DeleteBook(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid book ID format"})
		return
	}

	if err := bc.bookService.DeleteBook(c.Request.Context(), id); err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Book deleted successfully"})
}

// GetDashboard returns aggregate store stats (admin only).
func (bc *BookController) GetDashboard(c *gin.Context) {
	stats, err := bc.bookService.Dashboard(c.Request.Context())
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
