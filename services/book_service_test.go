package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "github.com/Hemali15f/BookNest/errors"
	"github.com/Hemali15f/BookNest/models"
	"github.com/Hemali15f/BookNest/repository"
)

func TestGetBook(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockBooks := new(MockBookRepository)
		svc := NewBookService(mockBooks, nil, nil, nil)

		bookID := uuid.New()
		mockBooks.On("FindByID", mock.Anything, bookID).
			Return(&models.Book{ID: bookID, Title: "Found"}, nil).Once()

		book, err := svc.GetBook(ctx, bookID)
		assert.NoError(t, err)
		assert.Equal(t, "Found", book.Title)
		mockBooks.AssertExpectations(t)
	})

	t.Run("Missing Book", func(t *testing.T) {
		mockBooks := new(MockBookRepository)
		svc := NewBookService(mockBooks, nil, nil, nil)

		mockBooks.On("FindByID", mock.Anything, mock.Anything).
			Return(nil, gorm.ErrRecordNotFound).Once()

		_, err := svc.GetBook(ctx, uuid.New())
		var appErr *apperrors.Error
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 404, appErr.Code)
	})
}

func TestUpdateBook(t *testing.T) {
	ctx := context.Background()
	req := BookCreateRequest{Title: "T", Author: "A", Price: 9.99, Category: "fiction"}

	t.Run("Success", func(t *testing.T) {
		mockBooks := new(MockBookRepository)
		svc := NewBookService(mockBooks, nil, nil, nil)

		mockBooks.On("Update", mock.Anything, mock.Anything).Return(int64(1), nil).Once()

		assert.NoError(t, svc.UpdateBook(ctx, uuid.New(), req))
		mockBooks.AssertExpectations(t)
	})

	t.Run("Unknown ID", func(t *testing.T) {
		mockBooks := new(MockBookRepository)
		svc := NewBookService(mockBooks, nil, nil, nil)

		mockBooks.On("Update", mock.Anything, mock.Anything).Return(int64(0), nil).Once()

		err := svc.UpdateBook(ctx, uuid.New(), req)
		var appErr *apperrors.Error
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 404, appErr.Code)
	})

	t.Run("Negative Price", func(t *testing.T) {
		mockBooks := new(MockBookRepository)
		svc := NewBookService(mockBooks, nil, nil, nil)

		err := svc.UpdateBook(ctx, uuid.New(), BookCreateRequest{Title: "T", Author: "A", Price: -1, Category: "fiction"})
		var appErr *apperrors.Error
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.Code)
		mockBooks.AssertNotCalled(t, "Update")
	})
}

func TestDeleteBook(t *testing.T) {
	ctx := context.Background()

	t.Run("Unknown ID", func(t *testing.T) {
		mockBooks := new(MockBookRepository)
		svc := NewBookService(mockBooks, nil, nil, nil)

		mockBooks.On("Delete", mock.Anything, mock.Anything).Return(int64(0), nil).Once()

		err := svc.DeleteBook(ctx, uuid.New())
		var appErr *apperrors.Error
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 404, appErr.Code)
	})

	t.Run("Storage Failure", func(t *testing.T) {
		mockBooks := new(MockBookRepository)
		svc := NewBookService(mockBooks, nil, nil, nil)

		mockBooks.On("Delete", mock.Anything, mock.Anything).
			Return(int64(0), errors.New("connection reset")).Once()

		err := svc.DeleteBook(ctx, uuid.New())
		var appErr *apperrors.Error
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 500, appErr.Code)
	})
}

func TestDashboard(t *testing.T) {
	ctx := context.Background()

	mockBooks := new(MockBookRepository)
	mockUsers := new(MockUserRepository)
	mockOrders := new(MockOrderRepository)
	svc := NewBookService(mockBooks, mockUsers, mockOrders, nil)

	mockBooks.On("Count", mock.Anything).Return(int64(12), nil).Once()
	mockUsers.On("CountByRole", mock.Anything, "user").Return(int64(3), nil).Once()
	mockOrders.On("Count", mock.Anything).Return(int64(7), nil).Once()
	mockOrders.On("CompletedRevenue", mock.Anything).Return(199.50, nil).Once()
	mockOrders.On("Recent", mock.Anything, 10).
		Return([]repository.RecentOrder{{UserName: "A", UserEmail: "a@b.com"}}, nil).Once()

	stats, err := svc.Dashboard(ctx)
	assert.NoError(t, err)
	assert.Equal(t, int64(12), stats.TotalBooks)
	assert.Equal(t, int64(3), stats.TotalUsers)
	assert.Equal(t, int64(7), stats.TotalOrders)
	assert.Equal(t, 199.50, stats.TotalRevenue)
	assert.Len(t, stats.RecentOrders, 1)

	mockBooks.AssertExpectations(t)
	mockUsers.AssertExpectations(t)
	mockOrders.AssertExpectations(t)
}
