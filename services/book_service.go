package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Hemali15f/BookNest/cache"
	apperrors "github.com/Hemali15f/BookNest/errors"
	"github.com/Hemali15f/BookNest/models"
	"github.com/Hemali15f/BookNest/repository"
)

// BookCreateRequest carries the admin-submitted fields of a new book.
type BookCreateRequest struct {
	Title         string  `json:"title" binding:"required"`
	Author        string  `json:"author" binding:"required"`
	Description   string  `json:"description"`
	Price         float64 `json:"price" binding:"required"`
	Category      string  `json:"category" binding:"required"`
	ISBN          string  `json:"isbn"`
	StockQuantity int     `json:"stock_quantity"`
	ImageURL      string  `json:"image_url"`
}

// BookListResult is a page of catalog results.
type BookListResult struct {
	Books      []models.Book `json:"books"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	TotalPages int64         `json:"total_pages"`
}

// DashboardStats aggregates storefront activity for the admin dashboard.
type DashboardStats struct {
	TotalBooks   int64                    `json:"total_books"`
	TotalUsers   int64                    `json:"total_users"`
	TotalOrders  int64                    `json:"total_orders"`
	TotalRevenue float64                  `json:"total_revenue"`
	RecentOrders []repository.RecentOrder `json:"recent_orders"`
}

// BookService owns the catalog. The order engine only reads from it; catalog
// mutations are admin-gated upstream.
type BookService struct {
	bookRepo  repository.BookRepository
	userRepo  repository.UserRepository
	orderRepo repository.OrderRepository
	cache     *cache.BookCache
}

func NewBookService(bookRepo repository.BookRepository, userRepo repository.UserRepository, orderRepo repository.OrderRepository, bookCache *cache.BookCache) *BookService {
	return &BookService{
		bookRepo:  bookRepo,
		userRepo:  userRepo,
		orderRepo: orderRepo,
		cache:     bookCache,
	}
}

func (s *BookService) GetBook(ctx context.Context, id uuid.UUID) (*models.Book, error) {
	if s.cache != nil {
		if book, ok := s.cache.GetBook(ctx, id); ok {
			return book, nil
		}
	}

	book, err := s.bookRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("book not found")
		}
		return nil, apperrors.Storage("failed to fetch book", err)
	}

	if s.cache != nil {
		s.cache.SetBook(ctx, book)
	}
	return book, nil
}

func (s *BookService) ListBooks(ctx context.Context, params repository.ListBooksParams) (*BookListResult, error) {
	books, total, err := s.bookRepo.List(ctx, params)
	if err != nil {
		return nil, apperrors.Storage("failed to fetch books", err)
	}

	totalPages := int64(0)
	if params.Limit > 0 {
		totalPages = (total + int64(params.Limit) - 1) / int64(params.Limit)
	}
	return &BookListResult{
		Books:      books,
		Total:      total,
		Page:       params.Page,
		TotalPages: totalPages,
	}, nil
}

func (s *BookService) Categories(ctx context.Context) ([]string, error) {
	if s.cache != nil {
		if categories, ok := s.cache.GetCategories(ctx); ok {
			return categories, nil
		}
	}

	categories, err := s.bookRepo.Categories(ctx)
	if err != nil {
		return nil, apperrors.Storage("failed to fetch categories", err)
	}

	if s.cache != nil {
		s.cache.SetCategories(ctx, categories)
	}
	return categories, nil
}

func (s *BookService) CreateBook(ctx context.Context, req BookCreateRequest) (*models.Book, error) {
	if req.Price < 0 {
		return nil, apperrors.Validation("price must not be negative")
	}

	book := &models.Book{
		ID:            uuid.New(),
		Title:         req.Title,
		Author:        req.Author,
		Description:   req.Description,
		Price:         req.Price,
		Category:      req.Category,
		ISBN:          req.ISBN,
		StockQuantity: req.StockQuantity,
		ImageURL:      req.ImageURL,
	}
	if err := s.bookRepo.Create(ctx, book); err != nil {
		return nil, apperrors.Storage("failed to create book", err)
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, book.ID)
	}
	return book, nil
}

func (s *BookService) UpdateBook(ctx context.Context, id uuid.UUID, req BookCreateRequest) error {
	if req.Price < 0 {
		return apperrors.Validation("price must not be negative")
	}

	book := &models.Book{
		ID:            id,
		Title:         req.Title,
		Author:        req.Author,
		Description:   req.Description,
		Price:         req.Price,
		Category:      req.Category,
		ISBN:          req.ISBN,
		StockQuantity: req.StockQuantity,
	}
	affected, err := s.bookRepo.Update(ctx, book)
	if err != nil {
		return apperrors.Storage("failed to update book", err)
	}
	if affected == 0 {
		return apperrors.NotFound("book not found")
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, id)
	}
	return nil
}

func (s *BookService) DeleteBook(ctx context.Context, id uuid.UUID) error {
	affected, err := s.bookRepo.Delete(ctx, id)
	if err != nil {
		return apperrors.Storage("failed to delete book", err)
	}
	if affected == 0 {
		return apperrors.NotFound("book not found")
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, id)
	}
	return nil
}

// Dashboard aggregates counts and revenue for admins.
func (s *BookService) Dashboard(ctx context.Context) (*DashboardStats, error) {
	totalBooks, err := s.bookRepo.Count(ctx)
	if err != nil {
		return nil, apperrors.Storage("failed to count books", err)
	}
	totalUsers, err := s.userRepo.CountByRole(ctx, "user")
	if err != nil {
		return nil, apperrors.Storage("failed to count users", err)
	}
	totalOrders, err := s.orderRepo.Count(ctx)
	if err != nil {
		return nil, apperrors.Storage("failed to count orders", err)
	}
	revenue, err := s.orderRepo.CompletedRevenue(ctx)
	if err != nil {
		return nil, apperrors.Storage("failed to compute revenue", err)
	}
	recent, err := s.orderRepo.Recent(ctx, 10)
	if err != nil {
		return nil, apperrors.Storage("failed to fetch recent orders", err)
	}

	return &DashboardStats{
		TotalBooks:   totalBooks,
		TotalUsers:   totalUsers,
		TotalOrders:  totalOrders,
		TotalRevenue: revenue,
		RecentOrders: recent,
	}, nil
}
