package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"food-order-api/config"
	"food-order-api/middleware"
	"food-order-api/models"
	"food-order-api/payments"

	"github.com/gin-gonic/gin"
	stripe "github.com/stripe/stripe-go/v76"
)

// seams for tests
var (
	createSession  = payments.CreateCheckoutSession
	constructEvent = payments.ConstructEvent
)

const checkoutCurrency = "inr"

type CheckoutCartItem struct {
	MenuID   uint    `json:"menuId" binding:"required"`
	Quantity int     `json:"quantity" binding:"required,min=1"`
	Name     string  `json:"name"`
	Image    string  `json:"image"`
	Price    float64 `json:"price"`
}

type CheckoutSessionRequest struct {
	RestaurantID    uint                   `json:"restaurantId" binding:"required"`
	CartItems       []CheckoutCartItem     `json:"cartItems" binding:"required,min=1,dive"`
	DeliveryDetails models.DeliveryDetails `json:"deliveryDetails" binding:"required"`
}

// GetOrders lists the requester's orders, newest first.
func GetOrders(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var orders []models.Order
	config.DB.Preload("CartItems").Preload("Restaurant").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&orders)
	c.JSON(http.StatusOK, gin.H{"success": true, "orders": orders})
}

// CreateCheckoutSession builds a hosted payment session for the cart.
// Line items are repriced from the menu so the client cannot tamper with
// amounts; the resulting snapshot rides along in session metadata and
// becomes the Order when the payment webhook fires.
func CreateCheckoutSession(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req CheckoutSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}
	if req.DeliveryDetails.Email == "" || req.DeliveryDetails.Name == "" ||
		req.DeliveryDetails.Address == "" || req.DeliveryDetails.City == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Delivery details are incomplete"})
		return
	}

	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, req.RestaurantID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Restaurant not found"})
		return
	}

	// Reprice the cart against the live menu and snapshot it.
	snapshot := make([]models.CartItem, 0, len(req.CartItems))
	var lineItems []*stripe.CheckoutSessionLineItemParams
	for _, item := range req.CartItems {
		var menu models.MenuItem
		if err := config.DB.Where("id = ? AND restaurant_id = ?", item.MenuID, restaurant.ID).
			First(&menu).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Menu item not found: " + strconv.Itoa(int(item.MenuID))})
			return
		}
		snapshot = append(snapshot, models.CartItem{
			MenuID:   menu.ID,
			Name:     menu.Name,
			Image:    menu.ImageURL,
			Price:    menu.Price,
			Quantity: item.Quantity,
		})
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(checkoutCurrency),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name:   stripe.String(menu.Name),
					Images: stripe.StringSlice([]string{menu.ImageURL}),
				},
				UnitAmount: stripe.Int64(int64(menu.Price * 100)),
			},
			Quantity: stripe.Int64(int64(item.Quantity)),
		})
	}

	cartJSON, err := json.Marshal(snapshot)
	if err != nil {
		config.Log.Errorw("cart snapshot marshal failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:  lineItems,
		SuccessURL: stripe.String(config.Cfg.FrontendURL + "/order/status"),
		CancelURL:  stripe.String(config.Cfg.FrontendURL + "/cart"),
	}
	params.Metadata = map[string]string{
		"userId":          strconv.Itoa(int(userID)),
		"restaurantId":    strconv.Itoa(int(restaurant.ID)),
		"cartItems":       string(cartJSON),
		"deliveryEmail":   req.DeliveryDetails.Email,
		"deliveryName":    req.DeliveryDetails.Name,
		"deliveryAddress": req.DeliveryDetails.Address,
		"deliveryCity":    req.DeliveryDetails.City,
	}

	sess, err := createSession(params)
	if err != nil {
		config.Log.Errorw("checkout session create failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}
	if sess.URL == "" {
		config.Log.Errorw("checkout session missing redirect URL", "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"session": gin.H{"url": sess.URL},
	})
}

// StripeWebhook is the sole creation path for orders. The payment
// processor calls it on checkout completion; the handler verifies the
// signature and materialises the metadata snapshot as an Order with
// status pending. Replays of the same session are a no-op.
func StripeWebhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Unable to read request body"})
		return
	}

	event, err := constructEvent(payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Webhook signature verification failed"})
		return
	}

	if event.Type != "checkout.session.completed" {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Event ignored"})
		return
	}

	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Malformed event payload"})
		return
	}

	// Idempotency: one order per checkout session.
	var existing models.Order
	if err := config.DB.Where("stripe_session_id = ?", sess.ID).First(&existing).Error; err == nil {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Order already recorded"})
		return
	}

	order, err := orderFromSession(&sess)
	if err != nil {
		config.Log.Errorw("webhook session metadata invalid", "error", err, "session_id", sess.ID)
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid session metadata"})
		return
	}

	if err := config.DB.Create(order).Error; err != nil {
		// A concurrent replay can lose the race above and hit the
		// unique index instead; that is still success.
		var lost models.Order
		if lookupErr := config.DB.Where("stripe_session_id = ?", sess.ID).First(&lost).Error; lookupErr == nil {
			c.JSON(http.StatusOK, gin.H{"success": true, "message": "Order already recorded"})
			return
		}
		config.Log.Errorw("order create failed", "error", err, "session_id", sess.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Order created"})
}

func orderFromSession(sess *stripe.CheckoutSession) (*models.Order, error) {
	meta := sess.Metadata

	userID, err := strconv.Atoi(meta["userId"])
	if err != nil {
		return nil, err
	}
	restaurantID, err := strconv.Atoi(meta["restaurantId"])
	if err != nil {
		return nil, err
	}

	var cartItems []models.CartItem
	if err := json.Unmarshal([]byte(meta["cartItems"]), &cartItems); err != nil {
		return nil, err
	}

	// Orders must reference a valid user and restaurant at creation.
	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		return nil, err
	}
	var restaurant models.Restaurant
	if err := config.DB.First(&restaurant, restaurantID).Error; err != nil {
		return nil, err
	}

	var total float64
	for _, item := range cartItems {
		total += item.Price * float64(item.Quantity)
	}

	return &models.Order{
		UserID:       uint(userID),
		RestaurantID: uint(restaurantID),
		DeliveryDetails: models.DeliveryDetails{
			Email:   meta["deliveryEmail"],
			Name:    meta["deliveryName"],
			Address: meta["deliveryAddress"],
			City:    meta["deliveryCity"],
		},
		CartItems:       cartItems,
		TotalAmount:     total,
		Status:          models.StatusPending,
		StripeSessionID: sess.ID,
	}, nil
}
