package routes

import (
	"food-order-api/handlers"
	"food-order-api/middleware"

	"github.com/gin-gonic/gin"
)

// SetupRoutes registers the API surface under /api/v1, mirroring the
// storefront's expectations. The payment webhook is the only
// unauthenticated order route; it authenticates via signature instead.
func SetupRoutes(r *gin.Engine) {
	user := r.Group("/api/v1/user")
	{
		user.POST("/signup", handlers.Signup)
		user.POST("/login", handlers.Login)
		user.POST("/logout", handlers.Logout)
		user.POST("/verify-email", handlers.VerifyEmail)
		user.POST("/forgot-password", handlers.ForgotPassword)
		user.POST("/reset-password/:token", handlers.ResetPassword)

		user.GET("/check-auth", middleware.IsAuthenticated(), handlers.CheckAuth)
		user.PUT("/profile/update", middleware.IsAuthenticated(), handlers.UpdateProfile)
	}

	restaurant := r.Group("/api/v1/restaurant")
	restaurant.Use(middleware.IsAuthenticated())
	{
		restaurant.POST("/", handlers.CreateRestaurant)
		restaurant.GET("/", handlers.GetRestaurant)
		restaurant.PUT("/", handlers.UpdateRestaurant)
		restaurant.GET("/order", handlers.GetRestaurantOrders)
		restaurant.PUT("/order/:orderId/status", handlers.UpdateOrderStatus)
		restaurant.GET("/search/:searchText", handlers.SearchRestaurant)
		restaurant.GET("/:id", handlers.GetSingleRestaurant)
	}

	menu := r.Group("/api/v1/menu")
	menu.Use(middleware.IsAuthenticated())
	{
		menu.POST("/", handlers.AddMenu)
		menu.PUT("/:id", handlers.EditMenu)
	}

	order := r.Group("/api/v1/order")
	{
		order.GET("/", middleware.IsAuthenticated(), handlers.GetOrders)
		order.POST("/checkout/create-checkout-session", middleware.IsAuthenticated(), handlers.CreateCheckoutSession)
		order.POST("/webhook", handlers.StripeWebhook)
	}
}
