package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"food-order-api/config"
	"food-order-api/middleware"
	"food-order-api/models"
	"food-order-api/storage"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// seam for tests
var uploadImage = storage.UploadFileHeader

// parseCuisines decodes the JSON-encoded cuisines form field. A plain
// comma-separated value is accepted as a fallback.
func parseCuisines(raw string) []string {
	if raw == "" {
		return nil
	}
	var cuisines []string
	if err := json.Unmarshal([]byte(raw), &cuisines); err == nil {
		return cuisines
	}
	for _, c := range strings.Split(raw, ",") {
		if c = strings.TrimSpace(c); c != "" {
			cuisines = append(cuisines, c)
		}
	}
	return cuisines
}

// CreateRestaurant sets up the requester's restaurant. One per user;
// the image is mandatory.
func CreateRestaurant(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var existing models.Restaurant
	if err := config.DB.Where("user_id = ?", userID).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Restaurant already exists for this user"})
		return
	}

	name := c.PostForm("restaurantName")
	city := c.PostForm("city")
	country := c.PostForm("country")
	if name == "" || city == "" || country == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "restaurantName, city and country are required"})
		return
	}
	deliveryTime, _ := strconv.Atoi(c.PostForm("deliveryTime"))

	file, err := c.FormFile("imageFile")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Image is required"})
		return
	}

	imageURL, err := uploadImage(c.Request.Context(), file)
	if err != nil {
		config.Log.Errorw("restaurant image upload failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	restaurant := models.Restaurant{
		UserID:         userID,
		RestaurantName: name,
		City:           city,
		Country:        country,
		DeliveryTime:   deliveryTime,
		Cuisines:       parseCuisines(c.PostForm("cuisines")),
		ImageURL:       imageURL,
	}
	if err := config.DB.Create(&restaurant).Error; err != nil {
		config.Log.Errorw("restaurant create failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"message":    "Restaurant added",
		"restaurant": restaurant,
	})
}

// GetRestaurant fetches the requester's restaurant with its menus.
func GetRestaurant(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var restaurant models.Restaurant
	if err := config.DB.Preload("Menus").Where("user_id = ?", userID).First(&restaurant).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Restaurant not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "restaurant": restaurant})
}

// UpdateRestaurant replaces the mutable fields of the requester's
// restaurant. The image is only replaced when a new file is attached.
func UpdateRestaurant(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var restaurant models.Restaurant
	if err := config.DB.Where("user_id = ?", userID).First(&restaurant).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Restaurant not found"})
		return
	}

	restaurant.RestaurantName = c.PostForm("restaurantName")
	restaurant.City = c.PostForm("city")
	restaurant.Country = c.PostForm("country")
	restaurant.DeliveryTime, _ = strconv.Atoi(c.PostForm("deliveryTime"))
	restaurant.Cuisines = parseCuisines(c.PostForm("cuisines"))

	if file, err := c.FormFile("imageFile"); err == nil {
		imageURL, err := uploadImage(c.Request.Context(), file)
		if err != nil {
			config.Log.Errorw("restaurant image upload failed", "error", err, "user_id", userID)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
			return
		}
		restaurant.ImageURL = imageURL
	}

	if err := config.DB.Save(&restaurant).Error; err != nil {
		config.Log.Errorw("restaurant update failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Restaurant updated",
		"restaurant": restaurant,
	})
}

// SearchRestaurant matches restaurants against up to three filters:
// the path's searchText on name/city/country, the query's searchQuery on
// name/cuisines, and the selectedCuisines list. All supplied filters
// apply conjointly (intersection), matching case-insensitively.
func SearchRestaurant(c *gin.Context) {
	searchText := c.Param("searchText")
	searchQuery := c.Query("searchQuery")
	var selectedCuisines []string
	for _, cuisine := range strings.Split(c.Query("selectedCuisines"), ",") {
		if cuisine = strings.TrimSpace(cuisine); cuisine != "" {
			selectedCuisines = append(selectedCuisines, cuisine)
		}
	}

	query := config.DB.Model(&models.Restaurant{})

	if searchText != "" {
		p := "%" + strings.ToLower(searchText) + "%"
		query = query.Where(
			"LOWER(restaurant_name) LIKE ? OR LOWER(city) LIKE ? OR LOWER(country) LIKE ?",
			p, p, p,
		)
	}
	if searchQuery != "" {
		p := "%" + strings.ToLower(searchQuery) + "%"
		query = query.Where("LOWER(restaurant_name) LIKE ? OR LOWER(cuisines) LIKE ?", p, p)
	}
	if len(selectedCuisines) > 0 {
		// cuisines is a JSON array column; membership is a quoted match
		cuisineClause := config.DB
		for i, cuisine := range selectedCuisines {
			p := `%"` + strings.ToLower(cuisine) + `"%`
			if i == 0 {
				cuisineClause = cuisineClause.Where("LOWER(cuisines) LIKE ?", p)
			} else {
				cuisineClause = cuisineClause.Or("LOWER(cuisines) LIKE ?", p)
			}
		}
		query = query.Where(cuisineClause)
	}

	var restaurants []models.Restaurant
	if err := query.Find(&restaurants).Error; err != nil {
		config.Log.Errorw("restaurant search failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": restaurants})
}

// GetSingleRestaurant fetches a restaurant by id with its menu items
// sorted newest-first.
func GetSingleRestaurant(c *gin.Context) {
	restaurantID := c.Param("id")

	var restaurant models.Restaurant
	err := config.DB.
		Preload("Menus", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		First(&restaurant, restaurantID).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Restaurant not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "restaurant": restaurant})
}
