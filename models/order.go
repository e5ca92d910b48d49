package models

import "time"

// Order is an immutable snapshot of a completed purchase. Nothing mutates
// an order after checkout commits it.
type Order struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	UserID    uint        `gorm:"not null;index" json:"user_id"`
	User      User        `gorm:"foreignKey:UserID" json:"user"`
	Total     float64     `json:"total"`
	Street    string      `json:"street"`
	Region    string      `json:"region"`
	Commune   string      `json:"commune"`
	Items     []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time   `json:"created_at"`
}

type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	OrderID   uint    `gorm:"index" json:"order_id"`
	ProductID uint    `json:"product_id"`
	Product   Product `gorm:"foreignKey:ProductID" json:"product"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"` // historical price, decoupled from the product's live price
}
