package domain

// Product is one catalog record assembled from a store source file.
// Identifiers are assigned by load position and are not stable across
// catalog reloads.
type Product struct {
	ID              int     `json:"id" mapstructure:"-"`
	Name            string  `json:"name" mapstructure:"name"`
	Category        string  `json:"category" mapstructure:"category"`
	Store           string  `json:"store" mapstructure:"-"`
	Price           float64 `json:"price" mapstructure:"-"`
	Currency        string  `json:"currency" mapstructure:"-"`
	URL             string  `json:"url" mapstructure:"url"`
	Rating          string  `json:"rating" mapstructure:"rating"`
	Brand           string  `json:"brand" mapstructure:"brand"`
	ModelID         string  `json:"model_id" mapstructure:"model_id"`
	Stock           string  `json:"stock" mapstructure:"stock"`
	DiscountPercent float64 `json:"discount_percent" mapstructure:"discount_percent"`
	Description     string  `json:"description" mapstructure:"description"`
	ImageURL        string  `json:"image_url" mapstructure:"image_url"`
}

// MatchResult is a catalog record selected by the match engine. BestPrice
// marks every record whose price equals the minimum of the match set; the
// flag is computed once during ranking rather than re-derived downstream.
type MatchResult struct {
	Product
	BestPrice bool `json:"best_price"`
}
