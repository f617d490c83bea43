package http

import "github.com/shopspring/decimal"

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type RegisterAdminRequest struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	AdminSecret string `json:"adminSecret" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AddToCartRequest struct {
	ProductID uint64 `json:"productId" binding:"required"`
	Quantity  int64  `json:"quantity" binding:"required"`
}

type RemoveFromCartRequest struct {
	ProductID uint64 `json:"productId" binding:"required"`
	Amount    int64  `json:"amount"`
}

type CheckoutRequest struct {
	DeliveryMode       string `json:"deliveryMode"`
	ShippingAddress    string `json:"shippingAddress"`
	ShippingCity       string `json:"shippingCity"`
	ShippingPostalCode string `json:"shippingPostalCode"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type ProductImageInput struct {
	URL     string `json:"url" binding:"required"`
	AltText string `json:"altText"`
}

type CreateProductRequest struct {
	Name          string              `json:"name" binding:"required"`
	Description   string              `json:"description" binding:"required"`
	Price         decimal.Decimal     `json:"price" binding:"required"`
	StockQuantity int64               `json:"stockQuantity"`
	CategoryID    *uint64             `json:"categoryId"`
	Images        []ProductImageInput `json:"images"`
}

type UpdateProductRequest struct {
	Name          *string          `json:"name"`
	Description   *string          `json:"description"`
	Price         *decimal.Decimal `json:"price"`
	StockQuantity *int64           `json:"stockQuantity"`
	CategoryID    *uint64          `json:"categoryId"`
}

type AddReviewRequest struct {
	ProductID uint64 `json:"productId" binding:"required"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Comment   string `json:"comment"`
}

type UpdateProfileRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}
