package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "github.com/Hemali15f/BookNest/errors"
	"github.com/Hemali15f/BookNest/models"
	"github.com/Hemali15f/BookNest/repository"
)

// CartLine is a cart row joined with current catalog metadata for display.
type CartLine struct {
	BookID   uuid.UUID `json:"book_id"`
	Quantity int       `json:"quantity"`
	Title    string    `json:"title"`
	Author   string    `json:"author"`
	Price    float64   `json:"price"`
	ImageURL string    `json:"image_url"`
}

type CartService struct {
	cartRepo repository.CartRepository
	bookRepo repository.BookRepository
}

func NewCartService(cartRepo repository.CartRepository, bookRepo repository.BookRepository) *CartService {
	return &CartService{cartRepo: cartRepo, bookRepo: bookRepo}
}

// List returns the user's cart joined with catalog metadata. Lines whose book
// no longer exists in the catalog are dropped from the result.
func (s *CartService) List(ctx context.Context, userID uuid.UUID) ([]CartLine, error) {
	items, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, apperrors.Storage("failed to fetch cart", err)
	}

	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.BookID)
	}
	books, err := s.bookRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, apperrors.Storage("failed to fetch cart books", err)
	}

	lines := make([]CartLine, 0, len(items))
	for _, item := range items {
		book, ok := books[item.BookID]
		if !ok {
			continue
		}
		lines = append(lines, CartLine{
			BookID:   item.BookID,
			Quantity: item.Quantity,
			Title:    book.Title,
			Author:   book.Author,
			Price:    book.Price,
			ImageURL: book.ImageURL,
		})
	}
	return lines, nil
}

// Upsert sets the quantity for (user, book). Re-adding a book replaces the
// existing quantity rather than accumulating.
func (s *CartService) Upsert(ctx context.Context, userID, bookID uuid.UUID, quantity int) error {
	if quantity < 1 {
		return apperrors.Validation("quantity must be a positive integer")
	}

	if _, err := s.bookRepo.FindByID(ctx, bookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.Validation("book does not exist")
		}
		return apperrors.Storage("failed to validate book", err)
	}

	item := &models.CartItem{
		ID:       uuid.New(),
		UserID:   userID,
		BookID:   bookID,
		Quantity: quantity,
	}
	if err := s.cartRepo.Upsert(ctx, item); err != nil {
		return apperrors.Storage("failed to update cart", err)
	}
	return nil
}

// Remove deletes the line for (user, book); it is idempotent.
func (s *CartService) Remove(ctx context.Context, userID, bookID uuid.UUID) error {
	if err := s.cartRepo.Remove(ctx, userID, bookID); err != nil {
		return apperrors.Storage("failed to remove cart item", err)
	}
	return nil
}
