package models

import "time"

type Restaurant struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	UserID         uint       `json:"user" gorm:"not null;index"`
	Owner          User       `json:"-" gorm:"foreignKey:UserID"`
	RestaurantName string     `json:"restaurantName" gorm:"not null"`
	City           string     `json:"city" gorm:"not null"`
	Country        string     `json:"country" gorm:"not null"`
	DeliveryTime   int        `json:"deliveryTime"`
	Cuisines       []string   `json:"cuisines" gorm:"serializer:json"`
	ImageURL       string     `json:"imageUrl"`
	Menus          []MenuItem `json:"menus,omitempty" gorm:"foreignKey:RestaurantID"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

type MenuItem struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	RestaurantID uint      `json:"restaurant_id" gorm:"not null;index"`
	Name         string    `json:"name" gorm:"not null"`
	Description  string    `json:"description"`
	Price        float64   `json:"price" gorm:"not null"`
	ImageURL     string    `json:"image"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
