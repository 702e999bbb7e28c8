package models

import "time"

// Order statuses. Only PENDING is assigned by the placement workflow;
// an order is never mutated after creation.
const (
	OrderStatusPending = "PENDING"
)

// Roles carried in the bearer token's "roles" claim.
const (
	RoleClient = "CLIENT"
	RoleAdmin  = "ADMIN"
)

// OrderItem is a single line of an order. The price is the unit price the
// caller supplied at order time, not the current catalog price.
type OrderItem struct {
	ID        uint    `json:"-" gorm:"primaryKey;autoIncrement"`
	OrderID   string  `json:"-" gorm:"index;type:varchar(36)"`
	ProductID string  `json:"product_id" validate:"required"`
	Quantity  int     `json:"quantity" validate:"gt=0"`
	Price     float64 `json:"price" validate:"gt=0"`
}

// Order represents a customer order.
type Order struct {
	ID     string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Date   time.Time   `json:"date"`
	Status string      `json:"status"`
	Amount float64     `json:"amount"`
	UserID string      `json:"user_id" gorm:"index;type:varchar(100)"`
	Items  []OrderItem `json:"items" gorm:"foreignKey:OrderID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OrderRequest is the inbound payload for placing an order.
type OrderRequest struct {
	Items []OrderItem `json:"items" validate:"required,min=1,dive"`
}

// Identity is the verified caller: the username the order is booked under
// and the raw bearer token, forwarded unchanged to downstream services.
type Identity struct {
	Username string
	Token    string
}
