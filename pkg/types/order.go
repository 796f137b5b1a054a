package types

import "time"

// Order statuses assigned by the kitchen as an order progresses.
const (
	StatusPending        = "Pending"
	StatusConfirmed      = "Confirmed"
	StatusCooking        = "Cooking"
	StatusOutForDelivery = "Out for Delivery"
	StatusDelivered      = "Delivered"
	StatusCancelled      = "Cancelled"
	StatusFailed         = "Failed"
)

// Toast categories for user-facing notifications.
const (
	ToastSuccess = "success"
	ToastInfo    = "info"
	ToastError   = "error"
)

// Toast is a user-facing notification: a message and a category that the
// presentation layer maps to its own styling.
type Toast struct {
	Message  string
	Category string
}

// Notifier receives toasts from the core components. Implemented by the
// presentation layer.
type Notifier interface {
	Notify(toast Toast)
}

// Order is a submitted order: the user's identity, a denormalized customer
// snapshot taken at submission time, and the full line list.
type Order struct {
	OrderID         int64      `json:"order_id,omitempty"`
	Reference       string     `json:"order_ref,omitempty"` // client-generated, set before submission
	UserID          string     `json:"user_id"`
	CustomerName    string     `json:"customer_name"`
	CustomerPhone   string     `json:"customer_phone"`
	DeliveryAddress string     `json:"delivery_address"`
	TotalPrice      float64    `json:"total_price"`
	Items           []CartLine `json:"items"`
	Status          string     `json:"status,omitempty"`
	CreatedAt       time.Time  `json:"created_at,omitempty"`
}

// statusCategories maps each recognized order status to its toast category.
var statusCategories = map[string]string{
	StatusConfirmed:      ToastSuccess,
	StatusCooking:        ToastInfo,
	StatusOutForDelivery: ToastInfo,
	StatusDelivered:      ToastSuccess,
	StatusCancelled:      ToastError,
	StatusFailed:         ToastError,
}

// StatusCategory returns the toast category for an order status. The second
// return value is false for unrecognized statuses, which produce no
// notification at all.
func StatusCategory(status string) (string, bool) {
	category, ok := statusCategories[status]
	return category, ok
}
