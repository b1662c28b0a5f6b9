package models

import "time"

// BookingDraft is the in-progress package configuration. It lives in
// the session cache only, expires with its TTL, and is destroyed when
// converted into a Booking at checkout. Draft state is never a
// persisted document.
type BookingDraft struct {
	DraftID           string           `json:"draftId"`
	UserID            string           `json:"userId"`
	PackageID         string           `json:"packageId"`
	TotalAdults       int              `json:"totalAdults"`
	ExtraAdults       int              `json:"extraAdults"`
	Children          int              `json:"children"`
	Selections        PackageSelection `json:"selections"`
	TotalPackagePrice int64            `json:"totalPackagePrice"`
	CouponCode        string           `json:"couponCode,omitempty"`
	RedeemCoins       int64            `json:"redeemCoins,omitempty"`
	PaymentType       string           `json:"paymentType"`
	Breakdown         PriceBreakdown   `json:"breakdown"`
	CreatedAt         time.Time        `json:"createdAt"`
}
