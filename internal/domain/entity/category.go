// Package entity contains the core business objects of the project.
package entity

import "strings"

// Category describes a product category shown in storefront navigation.
type Category struct {
	ID   string `firestore:"-" json:"id"`      // Canonical identifier, e.g. "electronics".
	Name string `firestore:"name" json:"name"` // Display name, e.g. "Electronics".
	Icon string `firestore:"icon" json:"icon"` // Emoji shown next to the name.
}

// Categories is the static identifier/name table for the storefront.
// Product documents written by older admin builds carry the display name in
// the category field instead of the identifier, so both forms must resolve
// to the same canonical ID.
var Categories = []Category{
	{ID: "electronics", Name: "Electronics", Icon: "📱"},
	{ID: "clothing", Name: "Clothing", Icon: "👕"},
	{ID: "sports", Name: "Sports", Icon: "⚽"},
	{ID: "home", Name: "Home", Icon: "🏠"},
	{ID: "books", Name: "Books", Icon: "📚"},
}

// CanonicalCategoryID normalizes a category value to its canonical identifier.
// It accepts either the identifier itself or a legacy display name; unknown
// values are returned lowercased so comparisons stay well-defined.
func CanonicalCategoryID(value string) string {
	for _, cat := range Categories {
		if value == cat.ID || strings.EqualFold(value, cat.Name) {
			return cat.ID
		}
	}

	return strings.ToLower(value)
}

// CategoryName resolves a canonical identifier to its display name.
// Unknown identifiers fall back to the identifier with dashes replaced,
// matching how the storefront renders ad hoc categories.
func CategoryName(id string) string {
	for _, cat := range Categories {
		if cat.ID == id {
			return cat.Name
		}
	}

	return strings.ReplaceAll(id, "-", " ")
}
