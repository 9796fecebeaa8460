package services

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	apperrors "github.com/Hemali15f/BookNest/errors"
	"github.com/Hemali15f/BookNest/models"
	"github.com/Hemali15f/BookNest/repository"
)

// PlaceOrderItem is one submitted checkout line. The price is the snapshot
// that will be stored on the order, independent of later catalog changes.
type PlaceOrderItem struct {
	BookID   uuid.UUID `json:"book_id" binding:"required"`
	Quantity int       `json:"quantity" binding:"required,min=1"`
	Price    float64   `json:"price"`
}

// PlaceOrderRequest is the checkout payload.
type PlaceOrderRequest struct {
	Items           []PlaceOrderItem `json:"items" binding:"required,dive"`
	TotalAmount     float64          `json:"total_amount"`
	ShippingAddress string           `json:"shipping_address"`
}

// OrderSummary is one row of a user's order history.
type OrderSummary struct {
	ID            uuid.UUID `json:"id"`
	TotalAmount   float64   `json:"total_amount"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	CreatedAt     time.Time `json:"created_at"`
	ItemCount     int       `json:"item_count"`
	BookTitles    string    `json:"book_titles"`
}

// OrderService turns a mutable cart into an immutable order. A checkout
// either commits the header and every line in one transaction or writes
// nothing; clearing the cart happens after the commit and can never undo it.
type OrderService struct {
	orderRepo repository.OrderRepository
	cartRepo  repository.CartRepository
	bookRepo  repository.BookRepository
	logger    *zap.Logger

	// trustClientPricing names the trust boundary around submitted prices.
	// When true (the deployed behavior) client-supplied line prices and the
	// total are stored as-is; when false they are recomputed from the catalog
	// and mismatches are rejected.
	trustClientPricing bool
}

func NewOrderService(orderRepo repository.OrderRepository, cartRepo repository.CartRepository, bookRepo repository.BookRepository, logger *zap.Logger, trustClientPricing bool) *OrderService {
	return &OrderService{
		orderRepo:          orderRepo,
		cartRepo:           cartRepo,
		bookRepo:           bookRepo,
		logger:             logger,
		trustClientPricing: trustClientPricing,
	}
}

// priceEqual compares amounts at cent precision.
func priceEqual(a, b float64) bool {
	return math.Abs(a-b) < 0.005
}

// PlaceOrder validates the request, commits the order atomically and then
// clears the owner's cart best-effort. Any failure before the commit returns
// an error with no writes performed.
func (s *OrderService) PlaceOrder(ctx context.Context, userID uuid.UUID, req *PlaceOrderRequest) (uuid.UUID, error) {
	if len(req.Items) == 0 {
		return uuid.Nil, apperrors.Validation("at least one item is required")
	}

	ids := make([]uuid.UUID, 0, len(req.Items))
	for _, item := range req.Items {
		if item.Quantity < 1 {
			return uuid.Nil, apperrors.Validation("quantity must be a positive integer")
		}
		if item.Price < 0 {
			return uuid.Nil, apperrors.Validation("price must not be negative")
		}
		ids = append(ids, item.BookID)
	}

	books, err := s.bookRepo.FindByIDs(ctx, ids)
	if err != nil {
		return uuid.Nil, apperrors.Storage("failed to validate order items", err)
	}
	for _, item := range req.Items {
		if _, ok := books[item.BookID]; !ok {
			return uuid.Nil, apperrors.Validation("order references an unknown book")
		}
	}

	total := req.TotalAmount
	if !s.trustClientPricing {
		var computed float64
		for i := range req.Items {
			catalogPrice := books[req.Items[i].BookID].Price
			if !priceEqual(req.Items[i].Price, catalogPrice) {
				return uuid.Nil, apperrors.Validation("item price does not match catalog price")
			}
			computed += catalogPrice * float64(req.Items[i].Quantity)
		}
		if !priceEqual(total, computed) {
			return uuid.Nil, apperrors.Validation("total amount does not match catalog prices")
		}
		total = computed
	}

	order := &models.Order{
		ID:              uuid.New(),
		UserID:          userID,
		TotalAmount:     total,
		Status:          "pending",
		PaymentStatus:   "pending",
		ShippingAddress: req.ShippingAddress,
	}
	for _, item := range req.Items {
		order.OrderItems = append(order.OrderItems, models.OrderItem{
			ID:       uuid.New(),
			OrderID:  order.ID,
			BookID:   item.BookID,
			Quantity: item.Quantity,
			Price:    item.Price,
		})
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return uuid.Nil, apperrors.Storage("failed to place order", err)
	}

	// The order is durable from here on. A cart-clear failure is logged and
	// surfaced nowhere; the order must never be discarded over cleanup.
	if err := s.cartRepo.Clear(ctx, userID); err != nil {
		s.logger.Warn("failed to clear cart after checkout",
			zap.String("user_id", userID.String()),
			zap.String("order_id", order.ID.String()),
			zap.Error(err),
		)
	}

	return order.ID, nil
}

// ListOrders returns the user's order history, newest first. Titles are
// joined at read time for display; stored line prices are never re-read from
// the catalog.
func (s *OrderService) ListOrders(ctx context.Context, userID uuid.UUID) ([]OrderSummary, error) {
	orders, err := s.orderRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, apperrors.Storage("failed to fetch orders", err)
	}

	var ids []uuid.UUID
	for _, order := range orders {
		for _, item := range order.OrderItems {
			ids = append(ids, item.BookID)
		}
	}
	books, err := s.bookRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, apperrors.Storage("failed to fetch order books", err)
	}

	summaries := make([]OrderSummary, 0, len(orders))
	for _, order := range orders {
		var titles []string
		for _, item := range order.OrderItems {
			if book, ok := books[item.BookID]; ok {
				titles = append(titles, book.Title)
			}
		}
		summaries = append(summaries, OrderSummary{
			ID:            order.ID,
			TotalAmount:   order.TotalAmount,
			Status:        order.Status,
			PaymentStatus: order.PaymentStatus,
			CreatedAt:     order.CreatedAt,
			ItemCount:     len(order.OrderItems),
			BookTitles:    strings.Join(titles, ","),
		})
	}
	return summaries, nil
}

// GetOrder retrieves one order with its lines, scoped to the owner.
func (s *OrderService) GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*models.Order, error) {
	order, err := s.orderRepo.FindByIDAndUserID(ctx, orderID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("order not found")
		}
		return nil, apperrors.Storage("failed to fetch order", err)
	}
	return order, nil
}
