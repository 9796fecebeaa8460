package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/Hemali15f/BookNest/errors"
	"github.com/Hemali15f/BookNest/middleware"
	"github.com/Hemali15f/BookNest/models"
	"github.com/Hemali15f/BookNest/services"
)

// IOrderService is the part of the order service the controller needs.
type IOrderService interface {
	PlaceOrder(ctx context.Context, userID uuid.UUID, req *services.PlaceOrderRequest) (uuid.UUID, error)
	ListOrders(ctx context.Context, userID uuid.UUID) ([]services.OrderSummary, error)
	GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error)
}

type OrderController struct {
	orderService IOrderService
}

func NewOrderController(orderService IOrderService) *OrderController {
	return &OrderController{orderService: orderService}
}

// PlaceOrder handles checkout requests.
func (oc *OrderController) PlaceOrder(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req services.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	orderID, err := oc.orderService.PlaceOrder(c.Request.Context(), userID, &req)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"order_id": orderID,
		"message":  "Order placed successfully",
	})
}

// GetOrders returns the authenticated user's order history, newest first.
func (oc *OrderController) GetOrders(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	summaries, err := oc.orderService.ListOrders(c.Request.Context(), userID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, summaries)
}

// GetOrderByID returns one of the user's orders with its lines.
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID format"})
		return
	}

	order, err := oc.orderService.GetOrder(c.Request.Context(), userID, orderID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}
