package models

import "time"

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string    `gorm:"not null"                 json:"name"`
	Email        string    `gorm:"unique;not null"          json:"email"`
	PasswordHash string    `gorm:"not null"                 json:"-"`
	IsAdmin      bool      `gorm:"not null;default:false"   json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Rating and NumReviews are derived from Reviews and recomputed on every
// review write, never set directly.
type Product struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID       uint      `gorm:"index;not null"           json:"user_id"`
	Name         string    `gorm:"not null"                 json:"name"`
	Description  string    `gorm:"not null"                 json:"description"`
	Image        string    `json:"image"`
	Brand        string    `json:"brand"`
	Category     string    `json:"category"`
	Price        int64     `gorm:"not null;check:price >= 0" json:"price"`
	CountInStock uint      `json:"count_in_stock"`
	Rating       float64   `gorm:"not null;default:0"       json:"rating"`
	NumReviews   int       `gorm:"not null;default:0"       json:"num_reviews"`
	Reviews      []Review  `json:"reviews,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Review struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"                json:"id"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_review_author"  json:"product_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_review_author"  json:"user_id"`
	Name      string    `gorm:"not null"                                json:"name"`
	Rating    int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment   string    `gorm:"not null"                                json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// Prices are integer cents. Items carry a snapshot of the product at order
// time, so later catalog edits never change a placed order.
type Order struct {
	ID              uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          uint        `gorm:"index;not null"           json:"user_id"`
	Items           []OrderItem `json:"items"`
	Address         string      `gorm:"not null"                 json:"address"`
	City            string      `gorm:"not null"                 json:"city"`
	PostalCode      string      `gorm:"not null"                 json:"postal_code"`
	Country         string      `gorm:"not null"                 json:"country"`
	PaymentMethod   string      `gorm:"not null"                 json:"payment_method"`
	ItemsPrice      int64       `gorm:"not null"                 json:"items_price"`
	ShippingPrice   int64       `gorm:"not null"                 json:"shipping_price"`
	TaxPrice        int64       `gorm:"not null"                 json:"tax_price"`
	TotalPrice      int64       `gorm:"not null"                 json:"total_price"`
	IsPaid          bool        `gorm:"not null;default:false"   json:"is_paid"`
	PaidAt          *time.Time  `json:"paid_at,omitempty"`
	PaymentID       string      `json:"payment_id,omitempty"`
	PaymentStatus   string      `json:"payment_status,omitempty"`
	PaymentEmail    string      `json:"payment_email,omitempty"`
	IsDelivered     bool        `gorm:"not null;default:false"   json:"is_delivered"`
	DeliveredAt     *time.Time  `json:"delivered_at,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
}

type OrderItem struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"       json:"id"`
	OrderID   uint   `gorm:"index;not null"                 json:"order_id"`
	ProductID uint   `gorm:"not null"                       json:"product_id"`
	Name      string `gorm:"not null"                       json:"name"`
	Image     string `json:"image"`
	Price     int64  `gorm:"not null"                       json:"price"`
	Quantity  uint   `gorm:"not null;check:quantity > 0"    json:"quantity"`
}
