package model

import "time"

// RestockStatus tracks a restock subscription.
type RestockStatus string

const (
	RestockPending  RestockStatus = "pending"
	RestockNotified RestockStatus = "notified"
)

// RestockRequest asks to be told when a product is back in stock.
type RestockRequest struct {
	ID         string        `json:"id"`
	ProductID  string        `json:"productId"`
	Email      string        `json:"email"`
	CreatedAt  time.Time     `json:"date"`
	Status     RestockStatus `json:"status"`
	NotifiedAt *time.Time    `json:"notifiedAt,omitempty"`
}

// TargetType tags what an admin action touched.
type TargetType string

const (
	TargetProduct  TargetType = "Product"
	TargetOrder    TargetType = "Order"
	TargetUser     TargetType = "User"
	TargetSettings TargetType = "Settings"
	TargetSocial   TargetType = "Social"
	TargetRestock  TargetType = "Restock"
)

// AdminLogEntry is an immutable audit record.
type AdminLogEntry struct {
	ID         string     `json:"id"`
	Timestamp  time.Time  `json:"timestamp"`
	AdminName  string     `json:"adminName"`
	Action     string     `json:"action"`
	TargetType TargetType `json:"targetType"`
	Details    string     `json:"details"`
}

// Theme of the storefront.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// SiteSettings is the single process-wide configuration of the storefront.
type SiteSettings struct {
	BrandName           string `json:"brandName"`
	LogoURL             string `json:"logoUrl,omitempty"`
	ShowAnnouncement    bool   `json:"showAnnouncement"`
	AnnouncementText    string `json:"announcementText"`
	DiscountPercent     int    `json:"globalDiscount"`
	StockAlertThreshold int    `json:"stockAlertThreshold"`
	SaleMode            bool   `json:"saleMode"`
	Theme               Theme  `json:"theme"`
}

// DefaultSiteSettings returns the settings of a fresh store.
func DefaultSiteSettings() SiteSettings {
	return SiteSettings{
		BrandName:           "Aura Bijoux",
		ShowAnnouncement:    true,
		AnnouncementText:    "Portes grátis em encomendas acima de 50€",
		DiscountPercent:     0,
		StockAlertThreshold: 5,
		SaleMode:            false,
		Theme:               ThemeLight,
	}
}

// SettingsPatch is a merge-patch; nil fields are left untouched.
type SettingsPatch struct {
	BrandName           *string `json:"brandName,omitempty"`
	LogoURL             *string `json:"logoUrl,omitempty"`
	ShowAnnouncement    *bool   `json:"showAnnouncement,omitempty"`
	AnnouncementText    *string `json:"announcementText,omitempty"`
	DiscountPercent     *int    `json:"globalDiscount,omitempty"`
	StockAlertThreshold *int    `json:"stockAlertThreshold,omitempty"`
	SaleMode            *bool   `json:"saleMode,omitempty"`
	Theme               *Theme  `json:"theme,omitempty"`
}
