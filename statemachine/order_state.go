package statemachine

import "food-order-api/models"

// allStatuses is the authoritative order-status enumeration, in
// storefront display order. Status changes are a flat set: the owner may
// move an order to any status in the set, but never outside it.
var allStatuses = []models.OrderStatus{
	models.StatusPending,
	models.StatusConfirmed,
	models.StatusPreparing,
	models.StatusOutOfDelivery,
	models.StatusDelivered,
}

var statusSet = func() map[models.OrderStatus]bool {
	m := make(map[models.OrderStatus]bool, len(allStatuses))
	for _, s := range allStatuses {
		m[s] = true
	}
	return m
}()

// All returns every valid order status.
func All() []models.OrderStatus {
	return allStatuses
}

// IsValid reports whether s belongs to the enumeration.
func IsValid(s models.OrderStatus) bool {
	return statusSet[s]
}

// Describe lists the valid statuses for error messages.
func Describe() string {
	result := ""
	for i, s := range allStatuses {
		if i > 0 {
			result += ", "
		}
		result += string(s)
	}
	return result
}
