package models

import "time"

// Coupon is issued by an external system and read-only here.
type Coupon struct {
	Code      string    `bson:"code" json:"code"`
	ValueType string    `bson:"value_type" json:"valueType"` // "percentage" or "flat"
	Value     int64     `bson:"value" json:"value"`
	ValidDate time.Time `bson:"valid_date" json:"validDate"`
}

const (
	CouponTypePercentage = "percentage"
	CouponTypeFlat       = "flat"
)

// Valid reports whether the coupon can be applied at the given time.
func (c Coupon) Valid(now time.Time) bool {
	return !now.After(c.ValidDate)
}
