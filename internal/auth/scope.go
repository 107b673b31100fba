package auth

import "github.com/google/uuid"

const (
	RoleAdmin     = "admin"
	RoleManager   = "manager"
	RoleShopOwner = "shopowner"
)

// Scope is the resolved authorization context a request runs under. Query
// methods take a Scope, never raw credentials: admin sees everything, a
// shopowner sees its shop, a manager sees what it created.
type Scope struct {
	Role     string
	UserID   uuid.UUID
	ShopCode string
}

func AdminScope() Scope {
	return Scope{Role: RoleAdmin}
}

func (s Scope) IsAdmin() bool {
	return s.Role == RoleAdmin
}

// CanEdit reports whether the scope may create or mutate invoices.
func (s Scope) CanEdit() bool {
	return s.Role == RoleManager
}

// CanRead reports whether the scope may read invoices and warranties.
func (s Scope) CanRead() bool {
	switch s.Role {
	case RoleAdmin, RoleManager, RoleShopOwner:
		return true
	}
	return false
}

// AllowsShop reports whether rows belonging to shopCode are visible.
func (s Scope) AllowsShop(shopCode string) bool {
	if s.Role != RoleShopOwner {
		return true
	}
	return s.ShopCode != "" && s.ShopCode == shopCode
}
