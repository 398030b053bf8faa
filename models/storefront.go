// ════════════════════════════════════════════════════════════
// STOREFRONT MODELS (CART + CHECKOUT)
// File: models/storefront.go
// ════════════════════════════════════════════════════════════

package models

import "time"

// CartLine is one product in a cart.
type CartLine struct {
	ProductID string  `json:"product_id"`
	Title     string  `json:"title"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	LineTotal float64 `json:"line_total"`
}

// Cart is the customer-facing view of a cart.
type Cart struct {
	ID        string     `json:"id"`
	Lines     []CartLine `json:"lines"`
	ItemCount int        `json:"item_count"`
	Subtotal  float64    `json:"subtotal"`
}

type AddCartItemRequest struct {
	ProductID string `json:"product_id" binding:"required" example:"0190c1b2-7d3e-7a10-9a51-0f1e6e2f4a01"`
	Quantity  int    `json:"quantity" binding:"omitempty,min=1,max=99" example:"1"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1,max=99" example:"2"`
}

type ShippingAddress struct {
	Line1      string `json:"line1" binding:"required" example:"12 Market Street"`
	Line2      string `json:"line2" example:"Flat 3"`
	City       string `json:"city" binding:"required" example:"Lagos"`
	PostalCode string `json:"postal_code" binding:"required" example:"100001"`
	Country    string `json:"country" binding:"required,len=2,uppercase" example:"NG"`
}

// CheckoutRequest is the checkout form.
type CheckoutRequest struct {
	Email          string          `json:"email" binding:"required,email" example:"ada@example.com"`
	FullName       string          `json:"full_name" binding:"required,min=2" example:"Ada Obi"`
	Phone          string          `json:"phone" binding:"omitempty,e164" example:"+2348012345678"`
	ShippingMethod string          `json:"shipping_method" binding:"required,oneof=standard express" example:"standard"`
	Address        ShippingAddress `json:"address" binding:"required"`
}

// OrderSummary is the priced result of a valid checkout. It is not persisted.
type OrderSummary struct {
	OrderID        string          `json:"order_id"`
	Email          string          `json:"email"`
	FullName       string          `json:"full_name"`
	Lines          []CartLine      `json:"lines"`
	Subtotal       float64         `json:"subtotal"`
	Shipping       float64         `json:"shipping"`
	Total          float64         `json:"total"`
	ShippingMethod string          `json:"shipping_method"`
	Address        ShippingAddress `json:"address"`
	CreatedAt      time.Time       `json:"created_at"`
}
