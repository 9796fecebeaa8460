package models

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// User model
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email     string    `gorm:"unique;not null" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Name      string    `gorm:"not null" json:"name"`
	Role      string    `gorm:"type:varchar(50);default:'user'" json:"role"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`
}

// Book model
type Book struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Title         string    `gorm:"not null;index" json:"title"`
	Author        string    `gorm:"not null" json:"author"`
	Description   string    `json:"description"`
	Price         float64   `gorm:"not null" json:"price"`
	Category      string    `gorm:"not null;index" json:"category"`
	ISBN          string    `json:"isbn"`
	StockQuantity int       `gorm:"default:0" json:"stock_quantity"`
	ImageURL      string    `json:"image_url"`
	Rating        float64   `gorm:"default:0" json:"rating"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"-"`
}

// CartItem is one line of a user's cart. A (user, book) pair maps to at most
// one row; re-adding the same book replaces the quantity.
type CartItem struct {
	ID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_book" json:"user_id"`
	BookID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_book" json:"book_id"`
	Quantity int       `gorm:"not null" json:"quantity"`
}

// Order header. Immutable after creation except status transitions performed
// by administrative flows.
type Order struct {
	ID              uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID          uuid.UUID   `gorm:"type:uuid;not null;index" json:"user_id"`
	TotalAmount     float64     `gorm:"not null" json:"total_amount"`
	Status          string      `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	PaymentStatus   string      `gorm:"type:varchar(20);not null;default:'pending'" json:"payment_status"`
	ShippingAddress string      `json:"shipping_address"`
	CreatedAt       time.Time   `gorm:"autoCreateTime" json:"created_at"`
	OrderItems      []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// OrderItem carries the price snapshot taken at order time; it never changes
// when the catalog price does.
type OrderItem struct {
	ID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	OrderID  uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	BookID   uuid.UUID `gorm:"type:uuid;not null" json:"book_id"`
	Quantity int       `gorm:"not null" json:"quantity"`
	Price    float64   `gorm:"not null" json:"price"`
}

// Migrate runs auto migration for all tables
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&User{}, &Book{}, &CartItem{}, &Order{}, &OrderItem{})
}

// SeedAdmin creates the bootstrap admin account when it does not exist yet.
func SeedAdmin(db *gorm.DB, email, password string) error {
	var count int64
	if err := db.Model(&User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &User{
		ID:       uuid.New(),
		Email:    email,
		Password: string(hashed),
		Name:     "Admin User",
		Role:     "admin",
	}
	return db.Create(admin).Error
}
