package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Hemali15f/BookNest/models"
)

// RecentOrder is an order header joined with its buyer, for the dashboard.
type RecentOrder struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	TotalAmount   float64   `json:"total_amount"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	CreatedAt     time.Time `json:"created_at"`
	UserName      string    `json:"user_name"`
	UserEmail     string    `json:"user_email"`
}

// OrderRepository defines the interface for order data access
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
	FindByIDAndUserID(ctx context.Context, orderID, userID uuid.UUID) (*models.Order, error)
	Count(ctx context.Context) (int64, error)
	CompletedRevenue(ctx context.Context) (float64, error)
	Recent(ctx context.Context, limit int) ([]RecentOrder, error)
}

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) OrderRepository {
	return &GormOrderRepository{db: db}
}

// Create persists the order header and all of its items inside one
// transaction. Either every row exists afterwards or none do; no reader can
// observe a header without its lines.
func (r *GormOrderRepository) Create(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(order).Error
	})
}

// FindByUserID retrieves the user's orders, newest first, with their items.
func (r *GormOrderRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Preload("OrderItems").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

// FindByIDAndUserID retrieves a specific order scoped to its owner.
func (r *GormOrderRepository) FindByIDAndUserID(ctx context.Context, orderID, userID uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).
		Preload("OrderItems").
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormOrderRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Order{}).Count(&count).Error
	return count, err
}

// CompletedRevenue sums the totals of orders whose payment has completed.
func (r *GormOrderRepository) CompletedRevenue(ctx context.Context) (float64, error) {
	var revenue float64
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("payment_status = ?", "completed").
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&revenue).Error
	return revenue, err
}

func (r *GormOrderRepository) Recent(ctx context.Context, limit int) ([]RecentOrder, error) {
	var recent []RecentOrder
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Select("orders.id, orders.user_id, orders.total_amount, orders.status, orders.payment_status, orders.created_at, users.name AS user_name, users.email AS user_email").
		Joins("JOIN users ON users.id = orders.user_id").
		Order("orders.created_at DESC").
		Limit(limit).
		Scan(&recent).Error
	return recent, err
}
