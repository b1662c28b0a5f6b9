package models

// PriceBreakdown is the derived pricing snapshot for a booking or
// draft. Invariant: FinalPayable = BasePrice + GSTAmount −
// CouponDiscount − RedeemedCoinValue, and FinalPayable >= 0 always.
// For advance bookings FinalPayable is pinned to the reservation
// amount while the remaining fields keep the full breakdown.
type PriceBreakdown struct {
	BasePrice         int64 `bson:"base_price" json:"basePrice"`
	GSTAmount         int64 `bson:"gst_amount" json:"gstAmount"`
	CouponDiscount    int64 `bson:"coupon_discount" json:"couponDiscount"`
	RedeemedCoinValue int64 `bson:"redeemed_coin_value" json:"redeemedCoinValue"`
	FinalPayable      int64 `bson:"final_payable" json:"finalPayable"`
}
