package transport

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateProfileRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

type AuthResponse struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
	Token   string `json:"token"`
}

type CreateProductRequest struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Image        string `json:"image"`
	Brand        string `json:"brand"`
	Category     string `json:"category"`
	Price        int64  `json:"price"`
	CountInStock uint   `json:"count_in_stock"`
}

type PatchProductRequest struct {
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	Image        *string `json:"image"`
	Brand        *string `json:"brand"`
	Category     *string `json:"category"`
	Price        *int64  `json:"price"`
	CountInStock *uint   `json:"count_in_stock"`
}

type CreateReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type CartItem struct {
	ProductID uint `json:"product_id"`
	Quantity  uint `json:"quantity"`
}

type ShippingAddress struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

type CreateOrderRequest struct {
	Items           []CartItem      `json:"items"`
	ShippingAddress ShippingAddress `json:"shipping_address"`
	PaymentMethod   string          `json:"payment_method"`
}

type PaymentResult struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Email  string `json:"email_address"`
}
