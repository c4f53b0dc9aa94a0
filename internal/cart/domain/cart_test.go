package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func item(productID, price string, qty int) CartItem {
	return CartItem{ProductID: productID, Price: decimal.RequireFromString(price), Quantity: qty}
}

func TestAddItem_MergesSameProduct(t *testing.T) {
	cart := &Cart{UserID: "user-1"}

	cart.AddItem(item("p1", "100.00", 2))
	cart.AddItem(item("p1", "100.00", 3))
	cart.AddItem(item("p2", "24.99", 1))

	assert.Len(t, cart.Items, 2)
	assert.Equal(t, 5, cart.Items[0].Quantity)
}

func TestUpdateQuantity(t *testing.T) {
	cart := &Cart{UserID: "user-1"}
	cart.AddItem(item("p1", "100.00", 2))

	cart.UpdateQuantity("p1", 7)
	assert.Equal(t, 7, cart.Items[0].Quantity)
}

func TestUpdateQuantity_BelowOneRemoves(t *testing.T) {
	cart := &Cart{UserID: "user-1"}
	cart.AddItem(item("p1", "100.00", 2))

	cart.UpdateQuantity("p1", 0)
	assert.True(t, cart.IsEmpty())
}

func TestRemoveItem(t *testing.T) {
	cart := &Cart{UserID: "user-1"}
	cart.AddItem(item("p1", "100.00", 2))
	cart.AddItem(item("p2", "24.99", 1))

	cart.RemoveItem("p1")
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, "p2", cart.Items[0].ProductID)
}

func TestTotal(t *testing.T) {
	cart := &Cart{UserID: "user-1"}
	cart.AddItem(item("p1", "100.00", 2))
	cart.AddItem(item("p2", "24.99", 3))

	assert.True(t, cart.Total().Equal(decimal.RequireFromString("274.97")))
}

func TestTotal_EmptyCart(t *testing.T) {
	cart := &Cart{UserID: "user-1"}
	assert.True(t, cart.Total().IsZero())
	assert.True(t, cart.IsEmpty())
}
