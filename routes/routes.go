package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Hemali15f/BookNest/controllers"
	"github.com/Hemali15f/BookNest/middleware"
)

// Register wires every endpoint. The bearer check and the admin predicate are
// applied as route-group middleware, never re-implemented inside handlers.
func Register(
	r *gin.Engine,
	tokens middleware.ITokenVerifier,
	auth *controllers.AuthController,
	books *controllers.BookController,
	carts *controllers.CartController,
	orders *controllers.OrderController,
) {
	api := r.Group("/api")

	// Credential routes, rate limited against brute force
	authRoutes := api.Group("/auth")
	authRoutes.Use(middleware.RateLimitMiddleware())
	authRoutes.POST("/register", auth.Register)
	authRoutes.POST("/login", auth.Login)

	// Public catalog
	api.GET("/books", books.GetBooks)
	api.GET("/books/:id", books.GetBookByID)
	api.GET("/categories", books.GetCategories)

	// Authenticated user routes
	user := api.Group("")
	user.Use(middleware.AuthMiddleware(tokens))
	user.GET("/cart", carts.GetCart)
	user.POST("/cart", carts.UpsertItem)
	user.DELETE("/cart/:bookId", carts.RemoveItem)
	user.POST("/orders", orders.PlaceOrder)
	user.GET("/orders", orders.GetOrders)
	user.GET("/orders/:id", orders.GetOrderByID)

	// Admin routes
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(tokens), middleware.RequireAdmin())
	admin.POST("/books", books.CreateBook)
	admin.PUT("/books/:id", books.UpdateBook)
	admin.DELETE("/books/:id", books.DeleteBook)
	admin.GET("/dashboard", books.GetDashboard)
}
