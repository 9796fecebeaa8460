package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Hemali15f/BookNest/models"
)

// ListBooksParams defines the parameters for listing books.
type ListBooksParams struct {
	Page     int
	Limit    int
	Category string
	Search   string
	SortBy   string
	Order    string
}

// BookRepository defines the interface for catalog data access
type BookRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Book, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Book, error)
	List(ctx context.Context, params ListBooksParams) ([]models.Book, int64, error)
	Categories(ctx context.Context) ([]string, error)
	Count(ctx context.Context) (int64, error)
	Create(ctx context.Context, book *models.Book) error
	Update(ctx context.Context, book *models.Book) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
}

// GormBookRepository implements BookRepository using GORM
type GormBookRepository struct {
	db *gorm.DB
}

func NewGormBookRepository(db *gorm.DB) BookRepository {
	return &GormBookRepository{db: db}
}

// sortColumns whitelists the columns callers may sort by.
var sortColumns = map[string]bool{
	"title":      true,
	"author":     true,
	"price":      true,
	"rating":     true,
	"created_at": true,
}

func (r *GormBookRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Book, error) {
	var book models.Book
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&book).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *GormBookRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Book, error) {
	byID := make(map[uuid.UUID]models.Book, len(ids))
	if len(ids) == 0 {
		return byID, nil
	}

	var books []models.Book
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&books).Error; err != nil {
		return nil, err
	}
	for _, b := range books {
		byID[b.ID] = b
	}
	return byID, nil
}

func (r *GormBookRepository) List(ctx context.Context, params ListBooksParams) ([]models.Book, int64, error) {
	var books []models.Book
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Book{})

	if params.Category != "" && params.Category != "all" {
		query = query.Where("category = ?", params.Category)
	}
	if params.Search != "" {
		like := "%" + params.Search + "%"
		query = query.Where("title ILIKE ? OR author ILIKE ? OR description ILIKE ?", like, like, like)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := params.SortBy
	if !sortColumns[sortBy] {
		sortBy = "title"
	}
	direction := "ASC"
	if strings.EqualFold(params.Order, "desc") {
		direction = "DESC"
	}

	offset := (params.Page - 1) * params.Limit
	if err := query.
		Order(fmt.Sprintf("%s %s", sortBy, direction)).
		Offset(offset).
		Limit(params.Limit).
		Find(&books).Error; err != nil {
		return nil, 0, err
	}

	return books, total, nil
}

func (r *GormBookRepository) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	err := r.db.WithContext(ctx).
		Model(&models.Book{}).
		Distinct("category").
		Order("category").
		Pluck("category", &categories).Error
	return categories, err
}

func (r *GormBookRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Book{}).Count(&count).Error
	return count, err
}

func (r *GormBookRepository) Create(ctx context.Context, book *models.Book) error {
	return r.db.WithContext(ctx).Create(book).Error
}

func (r *GormBookRepository) Update(ctx context.Context, book *models.Book) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.Book{}).Where("id = ?", book.ID).Updates(map[string]interface{}{
		"title":          book.Title,
		"author":         book.Author,
		"description":    book.Description,
		"price":          book.Price,
		"category":       book.Category,
		"isbn":           book.ISBN,
		"stock_quantity": book.StockQuantity,
	})
	return result.RowsAffected, result.Error
}

func (r *GormBookRepository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Book{})
	return result.RowsAffected, result.Error
}
