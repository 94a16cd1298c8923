package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus(t *testing.T) {
	assert.True(t, OrderStatusActive.IsActive())
	assert.True(t, OrderStatusOpen.IsActive())
	assert.False(t, OrderStatusDeleted.IsActive())
	assert.False(t, OrderStatus("shipped").IsActive())

	assert.Equal(t, OrderStatusActive, OrderStatusOpen.Canonical())
	assert.Equal(t, OrderStatusDeleted, OrderStatusDeleted.Canonical())
}

func TestUserClaimOmitsPassword(t *testing.T) {
	u := User{ID: 4, FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Password: "hash"}

	assert.Equal(t, IdentityClaim{ID: 4, FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com"}, u.Claim())
}
