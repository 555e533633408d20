package entity

import "strings"

// SaleType is the closed classification of how a listing is offered. Raw wire
// values outside the known set collapse into SaleTypeUnknown instead of
// growing the key space.
type SaleType string

const (
	SaleTypeInstant  SaleType = "instant"
	SaleTypeBuyout   SaleType = "buyout"
	SaleTypeFixed    SaleType = "fixed"
	SaleTypeUnpriced SaleType = "unpriced"
	SaleTypeUnknown  SaleType = "unknown"
)

func ParseSaleType(raw string) SaleType {
	switch strings.TrimPrefix(raw, "~") {
	case "instant":
		return SaleTypeInstant
	case "b/o", "bo":
		return SaleTypeBuyout
	case "price", "fixed":
		return SaleTypeFixed
	case "":
		return SaleTypeUnpriced
	default:
		return SaleTypeUnknown
	}
}

func (t SaleType) DisplayName() string {
	switch t {
	case SaleTypeInstant:
		return "Instant Buyout"
	case SaleTypeBuyout:
		return "Buyout / Negotiable"
	case SaleTypeFixed:
		return "Fixed Price"
	case SaleTypeUnpriced:
		return "No Price"
	default:
		return "Unknown"
	}
}
