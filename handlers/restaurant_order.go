package handlers

import (
	"net/http"

	"food-order-api/config"
	"food-order-api/middleware"
	"food-order-api/models"
	"food-order-api/statemachine"

	"github.com/gin-gonic/gin"
)

// GetRestaurantOrders lists every order placed against the requester's
// restaurant.
func GetRestaurantOrders(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var restaurant models.Restaurant
	if err := config.DB.Where("user_id = ?", userID).First(&restaurant).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Restaurant not found"})
		return
	}

	var orders []models.Order
	config.DB.Preload("CartItems").
		Where("restaurant_id = ?", restaurant.ID).
		Order("created_at desc").
		Find(&orders)

	c.JSON(http.StatusOK, gin.H{"success": true, "orders": orders})
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

// UpdateOrderStatus sets an order's status. The value must belong to the
// status enumeration and the order must belong to the requester's
// restaurant; within the set, any status may replace any other.
func UpdateOrderStatus(c *gin.Context) {
	userID := middleware.GetUserID(c)
	orderID := c.Param("orderId")

	var restaurant models.Restaurant
	if err := config.DB.Where("user_id = ?", userID).First(&restaurant).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Restaurant not found"})
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}
	if !statemachine.IsValid(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid status. Must be one of: " + statemachine.Describe(),
		})
		return
	}

	var order models.Order
	if err := config.DB.First(&order, orderID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found"})
		return
	}
	if order.RestaurantID != restaurant.ID {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "This order does not belong to your restaurant"})
		return
	}

	if err := config.DB.Model(&order).Update("status", req.Status).Error; err != nil {
		config.Log.Errorw("order status update failed", "error", err, "order_id", order.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"status":  req.Status,
		"message": "Status updated",
	})
}
