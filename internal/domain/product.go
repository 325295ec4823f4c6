package domain

import "time"

// Product categories shown in the shop.
const (
	CategoryComputers   = "computers"
	CategoryMobiles     = "mobiles"
	CategoryAccessories = "accessories"
	CategoryOther       = "other"
)

// ValidCategory reports whether s is one of the shop categories.
func ValidCategory(s string) bool {
	switch s {
	case CategoryComputers, CategoryMobiles, CategoryAccessories, CategoryOther:
		return true
	}
	return false
}

// PriceHistoryEntry is one immutable snapshot of a product's price and offer.
type PriceHistoryEntry struct {
	Price           float64   `json:"price"`
	OfferPercentage float64   `json:"offerPercentage"`
	ChangedAt       time.Time `json:"changedAt"`
}

// Product is a catalog item. The price history is stored inline on the row as
// an append-only JSON list; the shop front uses images[0] as the display image.
type Product struct {
	ID              int64               `json:"id,string" form:"id"`
	Code            string              `gorm:"index" json:"code" form:"code"`
	Title           string              `gorm:"index" json:"title" form:"title"`
	Category        string              `gorm:"size:32;index" json:"category" form:"category"`
	Description     string              `json:"description" form:"description"`
	Price           float64             `json:"price" form:"price"`
	OfferPercentage float64             `json:"offerPercentage" form:"offer_percentage"`
	Stock           int                 `json:"stock" form:"stock"`
	HideProduct     bool                `json:"hideProduct" form:"hide_product"`
	Images          []string            `gorm:"serializer:json" json:"images"`
	OfferExpiry     *time.Time          `json:"offerExpiry"`
	PriceHistory    []PriceHistoryEntry `gorm:"serializer:json" json:"priceHistory"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
}

// TableName Specify table name
func (Product) TableName() string {
	return "shop_product"
}
