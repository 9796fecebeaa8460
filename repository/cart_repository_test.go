package repository

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/Hemali15f/BookNest/database"
	"github.com/Hemali15f/BookNest/models"
	"gorm.io/gorm"
)

// CartRepositoryTestSuite runs against a real PostgreSQL instance. Set
// POSTGRES_HOST (plus the usual POSTGRES_* variables) to enable it; without
// a database the suite is skipped.
type CartRepositoryTestSuite struct {
	suite.Suite
	db     *gorm.DB
	repo   CartRepository
	userID uuid.UUID
	bookID uuid.UUID
}

func (s *CartRepositoryTestSuite) SetupSuite() {
	host := os.Getenv("POSTGRES_HOST")
	if host == "" {
		s.T().Skip("POSTGRES_HOST not set, skipping repository suite")
	}

	db, err := database.Connect(database.Config{
		Host:     host,
		User:     getEnvOrDefault("POSTGRES_USER", "postgres"),
		Password: getEnvOrDefault("POSTGRES_PASSWORD", "postgres"),
		DBName:   getEnvOrDefault("POSTGRES_DB", "booknest_test"),
		Port:     getEnvOrDefault("POSTGRES_PORT", "5432"),
		SSLMode:  "disable",
		TimeZone: "UTC",
	})
	s.Require().NoError(err)
	s.Require().NoError(models.Migrate(db))
	s.db = db
	s.repo = NewGormCartRepository(db)
}

func (s *CartRepositoryTestSuite) SetupTest() {
	s.userID = uuid.New()
	s.bookID = uuid.New()

	user := &models.User{ID: s.userID, Name: "Cart Tester", Email: uuid.New().String() + "@test.local", Password: "x", Role: "user"}
	s.Require().NoError(s.db.Create(user).Error)

	book := &models.Book{ID: s.bookID, Title: "Suite Book", Author: "Author", Price: 12.50, Category: "fiction", StockQuantity: 10}
	s.Require().NoError(s.db.Create(book).Error)
}

func (s *CartRepositoryTestSuite) TearDownTest() {
	if s.db == nil {
		return
	}
	s.db.Where("user_id = ?", s.userID).Delete(&models.CartItem{})
	s.db.Delete(&models.Book{}, "id = ?", s.bookID)
	s.db.Delete(&models.User{}, "id = ?", s.userID)
}

func (s *CartRepositoryTestSuite) TestUpsertInsertsThenOverwrites() {
	ctx := context.Background()

	s.Require().NoError(s.repo.Upsert(ctx, &models.CartItem{
		ID: uuid.New(), UserID: s.userID, BookID: s.bookID, Quantity: 2,
	}))

	items, err := s.repo.FindByUserID(ctx, s.userID)
	s.Require().NoError(err)
	s.Require().Len(items, 1)
	s.Equal(2, items[0].Quantity)

	// A second upsert for the same (user, book) pair replaces the quantity
	// rather than adding a row.
	s.Require().NoError(s.repo.Upsert(ctx, &models.CartItem{
		ID: uuid.New(), UserID: s.userID, BookID: s.bookID, Quantity: 5,
	}))

	items, err = s.repo.FindByUserID(ctx, s.userID)
	s.Require().NoError(err)
	s.Require().Len(items, 1)
	s.Equal(5, items[0].Quantity)
}

func (s *CartRepositoryTestSuite) TestRemoveIsIdempotent() {
	ctx := context.Background()

	s.Require().NoError(s.repo.Upsert(ctx, &models.CartItem{
		ID: uuid.New(), UserID: s.userID, BookID: s.bookID, Quantity: 1,
	}))

	s.Require().NoError(s.repo.Remove(ctx, s.userID, s.bookID))
	s.Require().NoError(s.repo.Remove(ctx, s.userID, s.bookID))

	items, err := s.repo.FindByUserID(ctx, s.userID)
	s.Require().NoError(err)
	s.Empty(items)
}

func (s *CartRepositoryTestSuite) TestClearRemovesOnlyOwnLines() {
	ctx := context.Background()

	otherUser := &models.User{ID: uuid.New(), Name: "Other", Email: uuid.New().String() + "@test.local", Password: "x", Role: "user"}
	s.Require().NoError(s.db.Create(otherUser).Error)
	defer func() {
		s.db.Where("user_id = ?", otherUser.ID).Delete(&models.CartItem{})
		s.db.Delete(&models.User{}, "id = ?", otherUser.ID)
	}()

	s.Require().NoError(s.repo.Upsert(ctx, &models.CartItem{ID: uuid.New(), UserID: s.userID, BookID: s.bookID, Quantity: 2}))
	s.Require().NoError(s.repo.Upsert(ctx, &models.CartItem{ID: uuid.New(), UserID: otherUser.ID, BookID: s.bookID, Quantity: 3}))

	s.Require().NoError(s.repo.Clear(ctx, s.userID))

	mine, err := s.repo.FindByUserID(ctx, s.userID)
	s.Require().NoError(err)
	s.Empty(mine)

	theirs, err := s.repo.FindByUserID(ctx, otherUser.ID)
	s.Require().NoError(err)
	s.Len(theirs, 1)
}

func TestCartRepositorySuite(t *testing.T) {
	suite.Run(t, new(CartRepositoryTestSuite))
}

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
