package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScopeRoles(t *testing.T) {
	admin := AdminScope()
	manager := Scope{Role: RoleManager}
	owner := Scope{Role: RoleShopOwner, ShopCode: "SP001"}
	anon := Scope{}

	assert.True(t, admin.CanRead())
	assert.True(t, manager.CanRead())
	assert.True(t, owner.CanRead())
	assert.False(t, anon.CanRead())

	assert.True(t, manager.CanEdit())
	assert.False(t, admin.CanEdit())
	assert.False(t, owner.CanEdit())
}

func TestScopeAllowsShop(t *testing.T) {
	owner := Scope{Role: RoleShopOwner, ShopCode: "SP001"}
	assert.True(t, owner.AllowsShop("SP001"))
	assert.False(t, owner.AllowsShop("SP002"))

	// Shopowner without a resolved shop sees nothing.
	assert.False(t, Scope{Role: RoleShopOwner}.AllowsShop("SP001"))

	// Admin and manager scopes are not shop-bounded.
	assert.True(t, AdminScope().AllowsShop("SP002"))
	assert.True(t, Scope{Role: RoleManager}.AllowsShop("SP002"))
}

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("secret", "owner@example.com", RoleShopOwner)
	assert.NoError(t, err)

	claims, err := ParseToken("secret", token)
	assert.NoError(t, err)
	assert.Equal(t, "owner@example.com", claims.Email)
	assert.Equal(t, RoleShopOwner, claims.Role)
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken("secret", "owner@example.com", RoleShopOwner)
	assert.NoError(t, err)

	_, err = ParseToken("other-secret", token)
	assert.Error(t, err)
}
