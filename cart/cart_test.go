package cart

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddMergesLines(t *testing.T) {
	s := Reduce(State{}, AddItem{ProductID: "a", Title: "Tote", UnitPrice: 15, Quantity: 2})
	s = Reduce(s, AddItem{ProductID: "b", Title: "Shirt", UnitPrice: 9.99})
	s = Reduce(s, AddItem{ProductID: "a", Title: "Tote", UnitPrice: 15, Quantity: 1})

	require.Len(t, s.Lines, 2)
	assert.Equal(t, 3, s.Lines[0].Quantity)
	assert.Equal(t, 1, s.Lines[1].Quantity)
	assert.Equal(t, 4, s.ItemCount())
	assert.Equal(t, 54.99, s.Subtotal())
}

func TestAddCapsQuantity(t *testing.T) {
	s := Reduce(State{}, AddItem{ProductID: "a", UnitPrice: 1, Quantity: 90})
	s = Reduce(s, AddItem{ProductID: "a", UnitPrice: 1, Quantity: 20})
	assert.Equal(t, MaxQuantity, s.Lines[0].Quantity)
}

func TestSetQuantityAndRemove(t *testing.T) {
	s := Reduce(State{}, AddItem{ProductID: "a", UnitPrice: 2})
	s = Reduce(s, AddItem{ProductID: "b", UnitPrice: 3})

	s = Reduce(s, SetQuantity{ProductID: "b", Quantity: 4})
	assert.Equal(t, 4, s.Lines[1].Quantity)

	s = Reduce(s, SetQuantity{ProductID: "a", Quantity: 0})
	require.Len(t, s.Lines, 1)
	assert.Equal(t, "b", s.Lines[0].ProductID)

	s = Reduce(s, RemoveItem{ProductID: "missing"})
	assert.Len(t, s.Lines, 1)
	s = Reduce(s, RemoveItem{ProductID: "b"})
	assert.Empty(t, s.Lines)
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	before := Reduce(State{}, AddItem{ProductID: "a", UnitPrice: 2})
	_ = Reduce(before, SetQuantity{ProductID: "a", Quantity: 7})
	assert.Equal(t, 1, before.Lines[0].Quantity)
}

func TestViewRoundsTotals(t *testing.T) {
	st := NewStore()
	st.Dispatch(AddItem{ProductID: "a", Title: "Socks", UnitPrice: 0.1, Quantity: 3})
	v := st.State().View("cart-1")
	assert.Equal(t, "cart-1", v.ID)
	assert.Equal(t, 0.3, v.Subtotal)
	assert.Equal(t, 0.3, v.Lines[0].LineTotal)

	st.Dispatch(Clear{})
	assert.Empty(t, st.State().Lines)
}

func TestStoreTakeEmptiesOnce(t *testing.T) {
	st := NewStore()
	st.Dispatch(AddItem{ProductID: "a", Title: "Tote", UnitPrice: 25, Quantity: 2})

	taken := st.Take()
	require.Len(t, taken.Lines, 1)
	assert.Equal(t, 2, taken.Lines[0].Quantity)
	assert.Empty(t, st.State().Lines)
	assert.Empty(t, st.Take().Lines)
}

func TestStoreDispatchChecked(t *testing.T) {
	st := NewStore()
	st.Dispatch(AddItem{ProductID: "a", Quantity: 2})

	refuse := errors.New("refused")
	s, err := st.DispatchChecked(AddItem{ProductID: "a", Quantity: 5}, func(cur State) error {
		if cur.Quantity("a")+5 > 4 {
			return refuse
		}
		return nil
	})
	assert.ErrorIs(t, err, refuse)
	assert.Equal(t, 2, s.Quantity("a"))

	s, err = st.DispatchChecked(AddItem{ProductID: "a", Quantity: 1}, func(State) error { return nil })
	require.NoError(t, err)
	assert.Equal(t, 3, s.Quantity("a"))
	assert.Zero(t, s.Quantity("missing"))
}
