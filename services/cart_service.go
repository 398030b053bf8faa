package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Modeva-Ecommerce/modeva-storefront/cart"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrCartItemNotFound = errors.New("item not in cart")
	ErrOutOfStock       = errors.New("product out of stock")
	ErrNotEnoughStock   = errors.New("not enough stock")
	ErrEmptyCart        = errors.New("cart is empty")
)

// Shipping methods and their flat rates. Standard shipping is free from
// FreeShippingThreshold upwards.
const (
	ShippingStandard      = "standard"
	ShippingExpress       = "express"
	StandardShippingRate  = 5.99
	ExpressShippingRate   = 14.99
	FreeShippingThreshold = 100.0
)

// ShippingCost prices a shipping method for a subtotal.
func ShippingCost(method string, subtotal float64) float64 {
	switch method {
	case ShippingExpress:
		return ExpressShippingRate
	default:
		if subtotal >= FreeShippingThreshold {
			return 0
		}
		return StandardShippingRate
	}
}

type cartEntry struct {
	store   *cart.Store
	touched time.Time
}

// CartService holds one cart per visitor, keyed by the cart id in the
// visitor token.
type CartService struct {
	products ProductProvider

	mu    sync.Mutex
	carts map[string]*cartEntry
	now   func() time.Time
}

func NewCartService(products ProductProvider) *CartService {
	return &CartService{
		products: products,
		carts:    make(map[string]*cartEntry),
		now:      time.Now,
	}
}

func (s *CartService) entry(cartID string) *cartEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.carts[cartID]
	if !ok {
		e = &cartEntry{store: cart.NewStore()}
		s.carts[cartID] = e
	}
	e.touched = s.now()
	return e
}

func (s *CartService) Get(cartID string) models.Cart {
	return s.entry(cartID).store.State().View(cartID)
}

// AddItem looks the product up so the line carries the current title and
// price. The merged line may not exceed the product's stock.
func (s *CartService) AddItem(ctx context.Context, cartID string, req models.AddCartItemRequest) (models.Cart, error) {
	product, err := s.products.GetProduct(ctx, req.ProductID)
	if err != nil {
		return models.Cart{}, err
	}
	if product.Stock <= 0 {
		return models.Cart{}, fmt.Errorf("product %s: %w", product.ID, ErrOutOfStock)
	}

	qty := max(req.Quantity, 1)
	state, err := s.entry(cartID).store.DispatchChecked(cart.AddItem{
		ProductID: product.ID,
		Title:     product.Title,
		UnitPrice: product.Price,
		Quantity:  qty,
	}, func(current cart.State) error {
		return checkStock(product, current.Quantity(product.ID)+qty)
	})
	if err != nil {
		return models.Cart{}, err
	}
	return state.View(cartID), nil
}

func (s *CartService) UpdateItem(ctx context.Context, cartID, productID string, quantity int) (models.Cart, error) {
	product, err := s.products.GetProduct(ctx, productID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return models.Cart{}, err
	}

	state, err := s.entry(cartID).store.DispatchChecked(cart.SetQuantity{ProductID: productID, Quantity: quantity},
		func(current cart.State) error {
			if !current.Has(productID) {
				return fmt.Errorf("product %s: %w", productID, ErrCartItemNotFound)
			}
			// A product that left the catalog can still be removed.
			if quantity <= 0 || product.ID == "" {
				return nil
			}
			return checkStock(product, quantity)
		})
	if err != nil {
		return models.Cart{}, err
	}
	return state.View(cartID), nil
}

func checkStock(product models.Product, want int) error {
	if want > product.Stock {
		return fmt.Errorf("product %s: %d requested, %d in stock: %w", product.ID, want, product.Stock, ErrNotEnoughStock)
	}
	return nil
}

func (s *CartService) RemoveItem(cartID, productID string) (models.Cart, error) {
	state, err := s.entry(cartID).store.DispatchChecked(cart.RemoveItem{ProductID: productID},
		func(current cart.State) error {
			if !current.Has(productID) {
				return fmt.Errorf("product %s: %w", productID, ErrCartItemNotFound)
			}
			return nil
		})
	if err != nil {
		return models.Cart{}, err
	}
	return state.View(cartID), nil
}

func (s *CartService) Clear(cartID string) models.Cart {
	return s.entry(cartID).store.Dispatch(cart.Clear{}).View(cartID)
}

// Checkout empties the cart and prices a validated checkout form against what
// it held. Nothing is persisted.
func (s *CartService) Checkout(cartID string, req models.CheckoutRequest) (models.OrderSummary, error) {
	// Take empties the cart atomically, so a cart is only ever checked out once.
	state := s.entry(cartID).store.Take()
	if len(state.Lines) == 0 {
		return models.OrderSummary{}, ErrEmptyCart
	}

	view := state.View(cartID)
	shipping := ShippingCost(req.ShippingMethod, view.Subtotal)
	summary := models.OrderSummary{
		OrderID:        uuid.Must(uuid.NewV7()).String(),
		Email:          req.Email,
		FullName:       req.FullName,
		Lines:          view.Lines,
		Subtotal:       view.Subtotal,
		Shipping:       shipping,
		Total:          cart.RoundCents(view.Subtotal + shipping),
		ShippingMethod: req.ShippingMethod,
		Address:        req.Address,
		CreatedAt:      s.now().UTC(),
	}

	zap.L().Info("checkout completed",
		zap.String("order_id", summary.OrderID),
		zap.String("cart_id", cartID),
		zap.Int("items", view.ItemCount),
		zap.Float64("total", summary.Total),
	)
	return summary, nil
}

// PruneIdle drops carts untouched for longer than maxIdle.
func (s *CartService) PruneIdle(maxIdle time.Duration) int {
	cutoff := s.now().Add(-maxIdle)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, e := range s.carts {
		if e.touched.Before(cutoff) {
			delete(s.carts, id)
			removed++
		}
	}
	return removed
}
