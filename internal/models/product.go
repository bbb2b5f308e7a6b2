package models

import "github.com/shopspring/decimal"

// Product is a catalog snapshot taken on one fetch. A new fetch builds new
// values; nothing mutates a Product after the catalog client returns it.
type Product struct {
	ID             string              `json:"id"`
	Title          string              `json:"title"`
	FormattedPrice string              `json:"formatted_price"`
	Amount         decimal.NullDecimal `json:"amount"`
	Availability   string              `json:"availability,omitempty"`
	SalesRank      *int                `json:"sales_rank,omitempty"`
	DetailURL      string              `json:"detail_url"`
}
