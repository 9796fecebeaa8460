package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/Hemali15f/BookNest/errors"
	"github.com/Hemali15f/BookNest/middleware"
	"github.com/Hemali15f/BookNest/services"
)

// CartItemRequest is the add/update body
type CartItemRequest struct {
	BookID   uuid.UUID `json:"book_id" binding:"required"`
	Quantity int       `json:"quantity" binding:"required"`
}

// ICartService is the part of the cart service the controller needs.
type ICartService interface {
	List(ctx context.Context, userID uuid.UUID) ([]services.CartLine, error)
	Upsert(ctx context.Context, userID, bookID uuid.UUID, quantity int) error
	Remove(ctx context.Context, userID, bookID uuid.UUID) error
}

type CartController struct {
	cartService ICartService
}

func NewCartController(cartService ICartService) *CartController {
	return &CartController{cartService: cartService}
}

// GetCart returns the user's cart joined with catalog metadata.
func (cc *CartController) GetCart(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	lines, err := cc.cartService.List(c.Request.Context(), userID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, lines)
}

// UpsertItem sets the quantity for one (user, book) line.
func (cc *CartController) UpsertItem(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	if err := cc.cartService.Upsert(c.Request.Context(), userID, req.BookID, req.Quantity); err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item added to cart"})
}

// RemoveItem deletes one line; removing an absent line still succeeds.
func (cc *CartController) RemoveItem(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	bookID, err := uuid.Parse(c.Param("bookId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid book ID format"})
		return
	}

	if err := cc.cartService.Remove(c.Request.Context(), userID, bookID); err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item removed from cart"})
}
