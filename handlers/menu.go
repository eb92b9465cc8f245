package handlers

import (
	"net/http"
	"strconv"

	"food-order-api/config"
	"food-order-api/middleware"
	"food-order-api/models"

	"github.com/gin-gonic/gin"
)

// AddMenu appends a menu item to the requester's restaurant. Multipart:
// name, description, price and an `image` file.
func AddMenu(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var restaurant models.Restaurant
	if err := config.DB.Where("user_id = ?", userID).First(&restaurant).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Create a restaurant first before adding menu items"})
		return
	}

	name := c.PostForm("name")
	price, err := strconv.ParseFloat(c.PostForm("price"), 64)
	if name == "" || err != nil || price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "name and a positive price are required"})
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Image is required"})
		return
	}
	imageURL, err := uploadImage(c.Request.Context(), file)
	if err != nil {
		config.Log.Errorw("menu image upload failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	menu := models.MenuItem{
		RestaurantID: restaurant.ID,
		Name:         name,
		Description:  c.PostForm("description"),
		Price:        price,
		ImageURL:     imageURL,
	}
	if err := config.DB.Create(&menu).Error; err != nil {
		config.Log.Errorw("menu create failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Menu added successfully",
		"menu":    menu,
	})
}

// EditMenu updates a menu item owned by the requester's restaurant.
func EditMenu(c *gin.Context) {
	userID := middleware.GetUserID(c)
	menuID := c.Param("id")

	var menu models.MenuItem
	if err := config.DB.First(&menu, menuID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Menu not found"})
		return
	}

	// Verify ownership through the restaurant back-reference
	var restaurant models.Restaurant
	if err := config.DB.Where("id = ? AND user_id = ?", menu.RestaurantID, userID).First(&restaurant).Error; err != nil {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "You don't own this menu item"})
		return
	}

	if name := c.PostForm("name"); name != "" {
		menu.Name = name
	}
	if description := c.PostForm("description"); description != "" {
		menu.Description = description
	}
	if rawPrice := c.PostForm("price"); rawPrice != "" {
		price, err := strconv.ParseFloat(rawPrice, 64)
		if err != nil || price <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "price must be a positive number"})
			return
		}
		menu.Price = price
	}
	if file, err := c.FormFile("image"); err == nil {
		imageURL, err := uploadImage(c.Request.Context(), file)
		if err != nil {
			config.Log.Errorw("menu image upload failed", "error", err, "user_id", userID)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
			return
		}
		menu.ImageURL = imageURL
	}

	if err := config.DB.Save(&menu).Error; err != nil {
		config.Log.Errorw("menu update failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Menu updated",
		"menu":    menu,
	})
}
