package entity

import "time"

// SaleRecord is one historical completed transaction, delivered by the trade
// site newest first.
type SaleRecord struct {
	Time     time.Time
	Buyer    string
	Name     string
	TypeLine string
	Icon     string
	Price    Price
}
