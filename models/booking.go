package models

import "time"

// Booking is the persisted commitment created at checkout. The price
// breakdown is snapshotted at creation time and never recomputed from
// current catalog prices. Status, balance and EMI fields are mutated
// only by the payment service; bookings are never deleted.
type Booking struct {
	ID                string           `bson:"id" json:"id"`
	UserID            string           `bson:"user_id" json:"userId"`
	PackageID         string           `bson:"package_id" json:"packageId"`
	Selections        PackageSelection `bson:"selections" json:"selections"`
	PaymentType       string           `bson:"payment_type" json:"paymentType"` // "advance" or "full"
	TotalPackagePrice int64            `bson:"total_package_price" json:"totalPackagePrice"`
	GSTPrice          int64            `bson:"gst_price" json:"gstPrice"`
	CouponDiscount    int64            `bson:"coupon_discount" json:"couponDiscount"`
	RedeemCoin        int64            `bson:"redeem_coin" json:"redeemCoin"`
	FinalPrice        int64            `bson:"final_price" json:"finalPrice"`
	BalanceAmount     int64            `bson:"balance_amount" json:"balanceAmount"`
	Status            string           `bson:"status" json:"status"`
	IsPrepaid         bool             `bson:"is_prepaid" json:"isPrepaid"`
	PaymentDate       *time.Time       `bson:"payment_date,omitempty" json:"paymentDate,omitempty"`
	EMIDetails        *EMIDetails      `bson:"emi_details,omitempty" json:"emiDetails,omitempty"`
	Version           int64            `bson:"version" json:"-"` // optimistic concurrency guard
	CreatedAt         time.Time        `bson:"created_at" json:"createdAt"`
	UpdatedAt         time.Time        `bson:"updated_at" json:"updatedAt"`
}

// EMIDetails holds the installment plan attached to a booking at
// creation. The schedule is fixed-length; installments are only ever
// marked paid, never added or removed.
type EMIDetails struct {
	Months        int           `bson:"months" json:"months"`
	ProcessingFee int64         `bson:"processing_fee" json:"processingFee"`
	PaidCount     int           `bson:"paid_count" json:"paidCount"`
	NextDueDate   *time.Time    `bson:"next_due_date,omitempty" json:"nextDueDate,omitempty"`
	Schedule      []Installment `bson:"schedule" json:"schedule"`
}

// Installment is one entry of an EMI schedule. Numbers are contiguous
// starting at 1; the processing fee is folded into installment 1.
type Installment struct {
	InstallmentNumber int        `bson:"installment_number" json:"installmentNumber"`
	DueDate           time.Time  `bson:"due_date" json:"dueDate"`
	Amount            int64      `bson:"amount" json:"amount"`
	Status            string     `bson:"status" json:"status"` // "pending" or "paid"
	TransactionID     string     `bson:"transaction_id,omitempty" json:"transactionId,omitempty"`
	PaidAt            *time.Time `bson:"paid_at,omitempty" json:"paidAt,omitempty"`
}

const (
	InstallmentStatusPending = "pending"
	InstallmentStatusPaid    = "paid"
)

const (
	PaymentTypeAdvance = "advance"
	PaymentTypeFull    = "full"
)
