// Package cart keeps a shopping cart as plain state updated by a reducer over
// explicit actions. Store serializes access for concurrent handlers.
package cart

import (
	"math"
	"slices"
	"sync"

	"github.com/Modeva-Ecommerce/modeva-storefront/models"
)

// MaxQuantity caps a single line.
const MaxQuantity = 99

type Line struct {
	ProductID string
	Title     string
	UnitPrice float64
	Quantity  int
}

// State is an ordered list of lines, one per product.
type State struct {
	Lines []Line
}

type Action interface {
	reduce(State) State
}

type (
	// AddItem adds quantity of a product, merging with an existing line.
	AddItem struct {
		ProductID string
		Title     string
		UnitPrice float64
		Quantity  int
	}
	// SetQuantity replaces a line's quantity.
	SetQuantity struct {
		ProductID string
		Quantity  int
	}
	RemoveItem struct{ ProductID string }
	Clear      struct{}
)

func (a AddItem) reduce(s State) State {
	qty := a.Quantity
	if qty <= 0 {
		qty = 1
	}
	if i := s.index(a.ProductID); i >= 0 {
		s.Lines[i].Quantity = min(s.Lines[i].Quantity+qty, MaxQuantity)
		s.Lines[i].UnitPrice = a.UnitPrice
		return s
	}
	s.Lines = append(s.Lines, Line{
		ProductID: a.ProductID,
		Title:     a.Title,
		UnitPrice: a.UnitPrice,
		Quantity:  min(qty, MaxQuantity),
	})
	return s
}

func (a SetQuantity) reduce(s State) State {
	i := s.index(a.ProductID)
	if i < 0 {
		return s
	}
	if a.Quantity <= 0 {
		s.Lines = slices.Delete(s.Lines, i, i+1)
		return s
	}
	s.Lines[i].Quantity = min(a.Quantity, MaxQuantity)
	return s
}

func (a RemoveItem) reduce(s State) State {
	if i := s.index(a.ProductID); i >= 0 {
		s.Lines = slices.Delete(s.Lines, i, i+1)
	}
	return s
}

func (Clear) reduce(State) State {
	return State{Lines: []Line{}}
}

func (s State) index(productID string) int {
	return slices.IndexFunc(s.Lines, func(l Line) bool { return l.ProductID == productID })
}

// Has reports whether the cart holds productID.
func (s State) Has(productID string) bool {
	return s.index(productID) >= 0
}

// Quantity is how many of productID the cart holds.
func (s State) Quantity(productID string) int {
	if i := s.index(productID); i >= 0 {
		return s.Lines[i].Quantity
	}
	return 0
}

// Reduce applies a to a copy of s.
func Reduce(s State, a Action) State {
	s.Lines = slices.Clone(s.Lines)
	if s.Lines == nil {
		s.Lines = []Line{}
	}
	if a == nil {
		return s
	}
	return a.reduce(s)
}

// ItemCount sums quantities.
func (s State) ItemCount() int {
	n := 0
	for _, l := range s.Lines {
		n += l.Quantity
	}
	return n
}

// Subtotal sums line totals, rounded to cents.
func (s State) Subtotal() float64 {
	total := 0.0
	for _, l := range s.Lines {
		total += l.UnitPrice * float64(l.Quantity)
	}
	return RoundCents(total)
}

// View renders s for the API.
func (s State) View(id string) models.Cart {
	lines := make([]models.CartLine, 0, len(s.Lines))
	for _, l := range s.Lines {
		lines = append(lines, models.CartLine{
			ProductID: l.ProductID,
			Title:     l.Title,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
			LineTotal: RoundCents(l.UnitPrice * float64(l.Quantity)),
		})
	}
	return models.Cart{
		ID:        id,
		Lines:     lines,
		ItemCount: s.ItemCount(),
		Subtotal:  s.Subtotal(),
	}
}

func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// Store owns one cart.
type Store struct {
	mu    sync.Mutex
	state State
}

func NewStore() *Store {
	return &Store{state: State{Lines: []Line{}}}
}

func (s *Store) Dispatch(a Action) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Reduce(s.state, a)
	return Reduce(s.state, nil)
}

// DispatchChecked runs check against the current state and applies a only if
// check returns nil. Both happen under one lock.
func (s *Store) DispatchChecked(a Action, check func(State) error) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := check(s.state); err != nil {
		return Reduce(s.state, nil), err
	}
	s.state = Reduce(s.state, a)
	return Reduce(s.state, nil), nil
}

// Take empties the cart and returns what it held.
func (s *Store) Take() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	taken := s.state
	s.state = State{Lines: []Line{}}
	return Reduce(taken, nil)
}

func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Reduce(s.state, nil)
}
