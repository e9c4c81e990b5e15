package model

import (
	"encoding/json"
	"time"
)

// Role separates back-office accounts from shoppers.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)

// Tier is the loyalty classification of a user.
type Tier string

const (
	TierBronze Tier = "Bronze"
	TierSilver Tier = "Prata"
	TierGold   Tier = "Ouro"
)

// TierForPoints derives the loyalty tier from accumulated points.
func TierForPoints(points int) Tier {
	switch {
	case points > 500:
		return TierGold
	case points > 200:
		return TierSilver
	default:
		return TierBronze
	}
}

// Address is a shipping destination.
type Address struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Street    string `json:"street"`
	City      string `json:"city"`
	ZipCode   string `json:"zipCode"`
	Country   string `json:"country"`
	IsDefault bool   `json:"isDefault"`
}

// User is a customer or administrator account.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	Avatar       string    `json:"avatar,omitempty"`
	Addresses    []Address `json:"addresses"`
	Wishlist     []string  `json:"wishlist"`
	Points       int       `json:"points"`
	Provider     string    `json:"provider,omitempty"`
	PasswordHash []byte    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Tier is always derived from Points.
func (u User) Tier() Tier {
	return TierForPoints(u.Points)
}

// IsAdmin reports whether the user may use the back office.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// InWishlist reports whether productID is wishlisted.
func (u User) InWishlist(productID string) bool {
	for _, id := range u.Wishlist {
		if id == productID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the user.
func (u User) Clone() User {
	u.Addresses = append([]Address(nil), u.Addresses...)
	u.Wishlist = append([]string(nil), u.Wishlist...)
	u.PasswordHash = append([]byte(nil), u.PasswordHash...)
	return u
}

// MarshalJSON adds the derived tier to the encoded user.
func (u User) MarshalJSON() ([]byte, error) {
	type plain User
	return json.Marshal(struct {
		plain
		Tier Tier `json:"tier"`
	}{plain: plain(u), Tier: u.Tier()})
}

// UserPatch is a merge-patch over a user; nil fields are left untouched.
type UserPatch struct {
	Name      *string    `json:"name,omitempty"`
	Email     *string    `json:"email,omitempty"`
	Role      *Role      `json:"role,omitempty"`
	Avatar    *string    `json:"avatar,omitempty"`
	Addresses *[]Address `json:"addresses,omitempty"`
	Points    *int       `json:"points,omitempty"`
}
