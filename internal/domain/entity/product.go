// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"strings"
	"time"
)

// Product status values as stored in the products collection.
const (
	ProductStatusActive     = "active"
	ProductStatusInactive   = "inactive"
	ProductStatusOutOfStock = "out-of-stock"
)

// Product represents a single catalog entry in the products collection.
// Documents written by earlier versions of the storefront may omit Status
// and CreatedAt; readers must treat a missing Status as active and a missing
// CreatedAt as the zero time.
type Product struct {
	ID            string  `firestore:"-" json:"id"`                        // Document ID, assigned by the store.
	Name          string  `firestore:"name" json:"name"`                   // Display name of the product.
	Category      string  `firestore:"category" json:"category"`           // Category identifier, or a legacy display name (see category.go).
	Price         float64 `firestore:"price" json:"price"`                 // Current selling price, >= 0.
	OriginalPrice float64 `firestore:"originalPrice" json:"originalPrice"` // Pre-discount price, >= Price when set.
	Stock         int     `firestore:"stock" json:"stock"`                 // Units on hand, >= 0.
	SKU           string  `firestore:"sku" json:"sku"`                     // Stock keeping unit, uppercase.
	Description   string  `firestore:"description" json:"description"`     // Free-text description shown on the product page.
	Image         string  `firestore:"image" json:"image"`                 // Image URL; storage is external.
	Status        string  `firestore:"status" json:"status"`               // active, inactive or out-of-stock.
	Featured      bool    `firestore:"featured" json:"featured"`           // Marks the product for the featured listing.
	HeroCarousel  bool    `firestore:"heroCarousel" json:"heroCarousel"`   // Marks membership in the hero carousel.

	HeroOrder   *int       `firestore:"heroCarouselOrder" json:"heroCarouselOrder,omitempty"`     // Carousel slot, 0-based; nil when not a member.
	HeroAddedAt *time.Time `firestore:"heroCarouselAddedAt" json:"heroCarouselAddedAt,omitempty"` // When the product entered the carousel.

	Tags           []string  `firestore:"tags" json:"tags"`                     // Free-form labels, lowercase.
	Rating         float64   `firestore:"rating" json:"rating"`                 // Average review score, 0 to 5.
	ReviewCount    int       `firestore:"reviewCount" json:"reviewCount"`       // Number of reviews behind Rating.
	SearchKeywords []string  `firestore:"searchKeywords" json:"searchKeywords"` // Lowercase tokens derived from name, category and tags.
	CreatedAt      time.Time `firestore:"createdAt" json:"createdAt"`           // Timestamp of document creation.
	UpdatedAt      time.Time `firestore:"updatedAt" json:"updatedAt"`           // Timestamp of the last modification.
}

// EffectiveStatus returns the product status, treating documents written
// without a status field as active.
func (p *Product) EffectiveStatus() string {
	if p.Status == "" {
		return ProductStatusActive
	}

	return p.Status
}

// IsActive reports whether the product should appear in storefront listings.
func (p *Product) IsActive() bool {
	return p.EffectiveStatus() == ProductStatusActive
}

// SearchTokens derives the lowercase keyword set stored alongside the product
// so the store can serve token-based search without scanning descriptions.
func SearchTokens(name, category string, tags []string) []string {
	seen := make(map[string]struct{})
	tokens := make([]string, 0, 8)

	appendTokens := func(raw string) {
		for _, tok := range splitLowerFields(raw) {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			tokens = append(tokens, tok)
		}
	}

	appendTokens(name)
	appendTokens(category)
	for _, tag := range tags {
		appendTokens(tag)
	}

	return tokens
}

func splitLowerFields(raw string) []string {
	return strings.Fields(strings.ToLower(raw))
}
