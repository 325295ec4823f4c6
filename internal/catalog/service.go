// Package catalog owns the product catalog: creation, partial updates, public
// and admin listings, and the append-only price-history audit trail.
package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"gorm.io/gorm"

	"github.com/supercomputers/shopd/internal/domain"
	"github.com/supercomputers/shopd/pkg/common"
)

const (
	offerMin = 0
	offerMax = 90
)

// Settings exposes the runtime policy flags the catalog consults.
type Settings interface {
	GetBool(category, name string) bool
}

type Service struct {
	db       *gorm.DB
	settings Settings
}

// NewService builds a catalog service. A nil settings source means strict
// offer validation.
func NewService(db *gorm.DB, settings Settings) *Service {
	return &Service{db: db, settings: settings}
}

// CreateInput is the create payload. Loosely-typed fields are tri-state so a
// string-typed price from an HTML form still coerces.
type CreateInput struct {
	Code            string       `json:"code"`
	Title           string       `json:"title"`
	Category        string       `json:"category"`
	Description     string       `json:"description"`
	Price           common.Field `json:"price"`
	OfferPercentage common.Field `json:"offerPercentage"`
	Stock           common.Field `json:"stock"`
	HideProduct     common.Field `json:"hideProduct"`
	Images          common.Field `json:"images"`
	OfferExpiry     common.Field `json:"offerExpiry"`
}

// UpdateInput is the partial-update payload: every field is independently
// optional, and absent fields leave the stored value untouched.
type UpdateInput struct {
	Code            common.Field `json:"code"`
	Title           common.Field `json:"title"`
	Category        common.Field `json:"category"`
	Description     common.Field `json:"description"`
	Price           common.Field `json:"price"`
	OfferPercentage common.Field `json:"offerPercentage"`
	Stock           common.Field `json:"stock"`
	HideProduct     common.Field `json:"hideProduct"`
	Images          common.Field `json:"images"`
	OfferExpiry     common.Field `json:"offerExpiry"`
}

// Create validates the input, seeds the price history with one entry and
// persists the product.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Product, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, common.Invalidf("title", "Product title is required")
	}
	category := strings.TrimSpace(in.Category)
	if category == "" {
		return nil, common.Invalidf("category", "Category is required")
	}
	if !domain.ValidCategory(category) {
		return nil, common.Invalidf("category", "Category must be one of computers, mobiles, accessories, other")
	}
	if !in.Price.Present() || in.Price.Blank() {
		return nil, common.Invalidf("price", "Price is required")
	}
	price, err := cast.ToFloat64E(in.Price.Value())
	if err != nil {
		return nil, common.Invalidf("price", "Price must be a number")
	}
	if price < 0 {
		return nil, common.Invalidf("price", "Price must not be negative")
	}

	offer := 0.0
	if in.OfferPercentage.Present() && !in.OfferPercentage.Blank() {
		offer, err = cast.ToFloat64E(in.OfferPercentage.Value())
		if err != nil {
			return nil, common.Invalidf("offerPercentage", "Offer percentage must be a number")
		}
	}
	if offer, err = s.normalizeOffer(offer); err != nil {
		return nil, err
	}

	stock := 0
	if in.Stock.Present() && !in.Stock.Blank() {
		stock, err = cast.ToIntE(in.Stock.Value())
		if err != nil {
			return nil, common.Invalidf("stock", "Stock must be an integer")
		}
		if stock < 0 {
			return nil, common.Invalidf("stock", "Stock must not be negative")
		}
	}

	now := time.Now()
	product := domain.Product{
		ID:              common.UUIDint64(),
		Code:            strings.TrimSpace(in.Code),
		Title:           title,
		Category:        category,
		Description:     strings.TrimSpace(in.Description),
		Price:           price,
		OfferPercentage: offer,
		Stock:           stock,
		HideProduct:     cast.ToBool(in.HideProduct.Value()),
		Images:          normalizeImages(in.Images),
		OfferExpiry:     parseExpiry(in.OfferExpiry, nil),
		PriceHistory: []domain.PriceHistoryEntry{
			{Price: price, OfferPercentage: offer, ChangedAt: now},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.db.WithContext(ctx).Create(&product).Error; err != nil {
		return nil, errors.Wrap(err, "create product")
	}
	return &product, nil
}

// Update applies a partial update. When the submitted price or offer differs
// from the stored value, exactly one history entry is appended reflecting the
// final post-update price and offer; no-op writes append nothing.
func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (*domain.Product, error) {
	var product domain.Product
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, errors.Wrap(err, "query product")
	}

	priceChanged := false

	if in.Code.Present() && !in.Code.Null() {
		product.Code = strings.TrimSpace(cast.ToString(in.Code.Value()))
	}
	if in.Title.Present() {
		title := strings.TrimSpace(cast.ToString(in.Title.Value()))
		if title == "" {
			return nil, common.Invalidf("title", "Product title is required")
		}
		product.Title = title
	}
	if in.Category.Present() {
		category := strings.TrimSpace(cast.ToString(in.Category.Value()))
		if !domain.ValidCategory(category) {
			return nil, common.Invalidf("category", "Category must be one of computers, mobiles, accessories, other")
		}
		product.Category = category
	}
	if in.Description.Present() {
		product.Description = strings.TrimSpace(cast.ToString(in.Description.Value()))
	}

	// An empty-string price means "omitted", not "zero".
	if in.Price.Present() && !in.Price.Blank() {
		price, err := cast.ToFloat64E(in.Price.Value())
		if err != nil {
			return nil, common.Invalidf("price", "Price must be a number")
		}
		if price < 0 {
			return nil, common.Invalidf("price", "Price must not be negative")
		}
		if product.Price != price {
			product.Price = price
			priceChanged = true
		}
	}

	if in.OfferPercentage.Present() {
		offer := 0.0
		if !in.OfferPercentage.Blank() {
			var err error
			offer, err = cast.ToFloat64E(in.OfferPercentage.Value())
			if err != nil {
				return nil, common.Invalidf("offerPercentage", "Offer percentage must be a number")
			}
		}
		offer, err := s.normalizeOffer(offer)
		if err != nil {
			return nil, err
		}
		if product.OfferPercentage != offer {
			product.OfferPercentage = offer
			priceChanged = true
		}
	}

	if in.Stock.Present() {
		stock := 0
		if !in.Stock.Blank() {
			var err error
			stock, err = cast.ToIntE(in.Stock.Value())
			if err != nil {
				return nil, common.Invalidf("stock", "Stock must be an integer")
			}
			if stock < 0 {
				return nil, common.Invalidf("stock", "Stock must not be negative")
			}
		}
		product.Stock = stock
	}

	if in.HideProduct.Present() {
		product.HideProduct = cast.ToBool(in.HideProduct.Value())
	}
	if in.Images.Present() {
		product.Images = normalizeImages(in.Images)
	}
	if in.OfferExpiry.Present() {
		if in.OfferExpiry.Blank() {
			product.OfferExpiry = nil
		} else {
			product.OfferExpiry = parseExpiry(in.OfferExpiry, product.OfferExpiry)
		}
	}

	now := time.Now()
	if priceChanged {
		product.PriceHistory = append(product.PriceHistory, domain.PriceHistoryEntry{
			Price:           product.Price,
			OfferPercentage: product.OfferPercentage,
			ChangedAt:       now,
		})
	}
	product.UpdatedAt = now

	if err := s.db.WithContext(ctx).Save(&product).Error; err != nil {
		return nil, errors.Wrap(err, "update product")
	}
	return &product, nil
}

// ListPublic returns visible products ordered by category then title.
func (s *Service) ListPublic(ctx context.Context) ([]domain.Product, error) {
	items := make([]domain.Product, 0)
	err := s.db.WithContext(ctx).
		Where("hide_product = ?", false).
		Order("category ASC, title ASC").
		Find(&items).Error
	if err != nil {
		return nil, errors.Wrap(err, "list products")
	}
	return items, nil
}

// ListAdmin returns every product regardless of visibility, same ordering.
func (s *Service) ListAdmin(ctx context.Context) ([]domain.Product, error) {
	items := make([]domain.Product, 0)
	err := s.db.WithContext(ctx).
		Order("category ASC, title ASC").
		Find(&items).Error
	if err != nil {
		return nil, errors.Wrap(err, "list products")
	}
	return items, nil
}

// ClearExpiredOffers resets the offer to zero on every product whose offer has
// expired, appending a history entry per touched product. Returns the number
// of products changed.
func (s *Service) ClearExpiredOffers(ctx context.Context, now time.Time) (int, error) {
	var expired []domain.Product
	err := s.db.WithContext(ctx).
		Where("offer_expiry IS NOT NULL AND offer_expiry <= ? AND offer_percentage > 0", now).
		Find(&expired).Error
	if err != nil {
		return 0, errors.Wrap(err, "query expired offers")
	}

	cleared := 0
	for i := range expired {
		p := &expired[i]
		p.OfferPercentage = 0
		p.OfferExpiry = nil
		p.PriceHistory = append(p.PriceHistory, domain.PriceHistoryEntry{
			Price:           p.Price,
			OfferPercentage: 0,
			ChangedAt:       now,
		})
		p.UpdatedAt = now
		if err := s.db.WithContext(ctx).Save(p).Error; err != nil {
			return cleared, errors.Wrap(err, "clear expired offer")
		}
		cleared++
	}
	return cleared, nil
}

func (s *Service) strictOffer() bool {
	if s.settings == nil {
		return true
	}
	return s.settings.GetBool("catalog", "StrictOfferValidation")
}

func (s *Service) normalizeOffer(offer float64) (float64, error) {
	if offer >= offerMin && offer <= offerMax {
		return offer, nil
	}
	if s.strictOffer() {
		return 0, common.Invalidf("offerPercentage", "Offer percentage must be between %d and %d", offerMin, offerMax)
	}
	if offer < offerMin {
		return offerMin, nil
	}
	return offerMax, nil
}

// normalizeImages accepts a single string or a list of strings; anything else
// collapses to an empty list.
func normalizeImages(f common.Field) []string {
	switch v := f.Value().(type) {
	case string:
		if v == "" {
			return []string{}
		}
		return []string{v}
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s := cast.ToString(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return []string{}
	}
}

// parseExpiry parses a submitted expiry timestamp; an unparseable value keeps
// the previous one.
func parseExpiry(f common.Field, prev *time.Time) *time.Time {
	if !f.Present() || f.Blank() {
		return prev
	}
	t, err := dateparse.ParseAny(cast.ToString(f.Value()))
	if err != nil {
		return prev
	}
	return &t
}
