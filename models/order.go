package models

import "time"

// OrderStatus values mirror what the storefront displays. The set is
// validated by the statemachine package; anything else is rejected.
type OrderStatus string

const (
	StatusPending       OrderStatus = "pending"
	StatusConfirmed     OrderStatus = "confirmed"
	StatusPreparing     OrderStatus = "preparing"
	StatusOutOfDelivery OrderStatus = "outofdelivery"
	StatusDelivered     OrderStatus = "delivered"
)

// DeliveryDetails is captured from the checkout form and embedded into
// the order row.
type DeliveryDetails struct {
	Email   string `json:"email" gorm:"not null"`
	Name    string `json:"name" gorm:"not null"`
	Address string `json:"address" gorm:"not null"`
	City    string `json:"city" gorm:"not null"`
}

type Order struct {
	ID              uint            `json:"id" gorm:"primaryKey"`
	UserID          uint            `json:"user" gorm:"not null;index"`
	User            User            `json:"-" gorm:"foreignKey:UserID"`
	RestaurantID    uint            `json:"restaurant" gorm:"not null;index"`
	Restaurant      Restaurant      `json:"-" gorm:"foreignKey:RestaurantID"`
	DeliveryDetails DeliveryDetails `json:"deliveryDetails" gorm:"embedded;embeddedPrefix:delivery_"`
	CartItems       []CartItem      `json:"cartItems" gorm:"foreignKey:OrderID"`
	TotalAmount     float64         `json:"totalAmount"`
	Status          OrderStatus     `json:"status" gorm:"not null;default:'pending'"`
	// Checkout session that paid for this order. Unique: a replayed
	// webhook event must not create a second order.
	StripeSessionID string    `json:"-" gorm:"uniqueIndex;not null"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// CartItem is an immutable snapshot of a menu item at checkout time.
// Orders stay stable even if the menu is edited later.
type CartItem struct {
	ID       uint    `json:"id" gorm:"primaryKey"`
	OrderID  uint    `json:"order_id" gorm:"not null;index"`
	MenuID   uint    `json:"menuId" gorm:"not null"`
	Name     string  `json:"name" gorm:"not null"`
	Image    string  `json:"image"`
	Price    float64 `json:"price" gorm:"not null"`
	Quantity int     `json:"quantity" gorm:"not null"`
}
