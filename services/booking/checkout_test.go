package booking

import (
	"context"
	"testing"
	"time"

	"wanderly/models"
)

var checkoutNow = time.Date(2026, 5, 20, 10, 0, 0, 0, time.UTC)

func newBookingService(drafts *fakeDraftStore, br *fakeBookingRepo, pr *fakePaymentRepo, cr *fakeCouponRepo, ur *fakeUserRepo) *DefaultBookingService {
	return &DefaultBookingService{
		Drafts:            drafts,
		BookingRepo:       br,
		PaymentRepo:       pr,
		CouponRepo:        cr,
		UserRepo:          ur,
		Gateway:           &fakeGateway{},
		Logger:            testLogger(),
		GSTPercent:        5.0,
		ReservationAmount: 1,
		ProcessingFee:     99,
		Clock:             fixedClock(checkoutNow),
	}
}

func seedDraft(t *testing.T, svc *DefaultBookingService, userID string, basePrice int64) *models.BookingDraft {
	t.Helper()
	draft, err := svc.CreateDraft(context.Background(), userID, CreateDraftRequest{
		PackageID:   "pkg-1",
		TotalAdults: 2,
		BasePrice:   basePrice,
		PaymentType: models.PaymentTypeFull,
	})
	if err != nil {
		t.Fatalf("create draft: %v", err)
	}
	return draft
}

func TestCreateDraftComputesBreakdown(t *testing.T) {
	svc := newBookingService(newFakeDraftStore(), newFakeBookingRepo(), newFakePaymentRepo(), newFakeCouponRepo(), newFakeUserRepo())

	draft := seedDraft(t, svc, "user-1", 30000)
	if draft.Breakdown.GSTAmount != 1500 {
		t.Errorf("GSTAmount = %d, want 1500", draft.Breakdown.GSTAmount)
	}
	if draft.Breakdown.FinalPayable != 31500 {
		t.Errorf("FinalPayable = %d, want 31500", draft.Breakdown.FinalPayable)
	}
}

func TestCreateDraftValidation(t *testing.T) {
	svc := newBookingService(newFakeDraftStore(), newFakeBookingRepo(), newFakePaymentRepo(), newFakeCouponRepo(), newFakeUserRepo())

	cases := []struct {
		name string
		req  CreateDraftRequest
	}{
		{"zero base price", CreateDraftRequest{PackageID: "p", TotalAdults: 2}},
		{"no chargeable adults", CreateDraftRequest{PackageID: "p", TotalAdults: 2, ExtraAdults: 2, BasePrice: 1000}},
		{"bad payment type", CreateDraftRequest{PackageID: "p", TotalAdults: 2, BasePrice: 1000, PaymentType: "later"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := svc.CreateDraft(context.Background(), "user-1", c.req)
			le, ok := AsLifecycleError(err)
			if !ok || le.Code != CodeValidation {
				t.Fatalf("expected %s, got %v", CodeValidation, err)
			}
		})
	}
}

func TestApplySelectionRecomputesTotal(t *testing.T) {
	svc := newBookingService(newFakeDraftStore(), newFakeBookingRepo(), newFakePaymentRepo(), newFakeCouponRepo(), newFakeUserRepo())

	draft, err := svc.CreateDraft(context.Background(), "user-1", CreateDraftRequest{
		PackageID:   "pkg-1",
		TotalAdults: 2,
		BasePrice:   30000,
		Selections: models.PackageSelection{
			Rooms: []models.RoomSelection{
				{BlockIndex: 0, HotelID: "h1", RoomID: "r1", MealPlan: "CP",
					Pricing: models.SelectionPricing{TotalAdultPrice: 8000}},
			},
		},
	})
	if err != nil {
		t.Fatalf("create draft: %v", err)
	}

	updated, err := svc.ApplySelection(context.Background(), "user-1", draft.DraftID, SelectionSwap{
		Kind:       SwapKindRoom,
		BlockIndex: 0,
		HotelID:    "h1",
		RoomID:     "r2",
		MealPlan:   "MAP",
		Pricing:    models.SelectionPricing{TotalAdultPrice: 10000},
	})
	if err != nil {
		t.Fatalf("apply selection: %v", err)
	}
	if updated.TotalPackagePrice != 32000 {
		t.Errorf("TotalPackagePrice = %d, want 32000", updated.TotalPackagePrice)
	}
	// Breakdown follows the new running total.
	if updated.Breakdown.BasePrice != 32000 {
		t.Errorf("Breakdown.BasePrice = %d, want 32000", updated.Breakdown.BasePrice)
	}
}

func TestApplySelectionIdenticalSwapLeavesDraft(t *testing.T) {
	store := newFakeDraftStore()
	svc := newBookingService(store, newFakeBookingRepo(), newFakePaymentRepo(), newFakeCouponRepo(), newFakeUserRepo())

	draft, err := svc.CreateDraft(context.Background(), "user-1", CreateDraftRequest{
		PackageID:   "pkg-1",
		TotalAdults: 2,
		BasePrice:   30000,
		Selections: models.PackageSelection{
			Vehicle: &models.VehicleSelection{VehicleID: "sedan",
				Pricing: models.SelectionPricing{TotalAdultPrice: 3000}},
		},
	})
	if err != nil {
		t.Fatalf("create draft: %v", err)
	}

	updated, err := svc.ApplySelection(context.Background(), "user-1", draft.DraftID, SelectionSwap{
		Kind:      SwapKindVehicle,
		VehicleID: "sedan",
		Pricing:   models.SelectionPricing{TotalAdultPrice: 3000},
	})
	if err != nil {
		t.Fatalf("apply selection: %v", err)
	}
	if updated.TotalPackagePrice != 30000 {
		t.Errorf("TotalPackagePrice = %d after no-op swap, want 30000", updated.TotalPackagePrice)
	}
}

func TestDraftOwnership(t *testing.T) {
	svc := newBookingService(newFakeDraftStore(), newFakeBookingRepo(), newFakePaymentRepo(), newFakeCouponRepo(), newFakeUserRepo())

	draft := seedDraft(t, svc, "user-1", 30000)

	_, err := svc.GetDraft(context.Background(), "user-2", draft.DraftID)
	le, ok := AsLifecycleError(err)
	if !ok || le.Code != CodeUnauthorized {
		t.Fatalf("expected %s, got %v", CodeUnauthorized, err)
	}
}

func TestGetDraftExpired(t *testing.T) {
	svc := newBookingService(newFakeDraftStore(), newFakeBookingRepo(), newFakePaymentRepo(), newFakeCouponRepo(), newFakeUserRepo())

	_, err := svc.GetDraft(context.Background(), "user-1", "gone")
	le, ok := AsLifecycleError(err)
	if !ok || le.Code != CodeNotFound {
		t.Fatalf("expected %s, got %v", CodeNotFound, err)
	}
}

func TestApplyDiscountsPreview(t *testing.T) {
	coupons := newFakeCouponRepo(models.Coupon{
		Code:      "SAVE10",
		ValueType: models.CouponTypePercentage,
		Value:     10,
		ValidDate: checkoutNow.AddDate(0, 1, 0),
	})
	users := newFakeUserRepo(models.User{ID: "user-1", RedeemCoins: 1000})
	svc := newBookingService(newFakeDraftStore(), newFakeBookingRepo(), newFakePaymentRepo(), coupons, users)

	draft := seedDraft(t, svc, "user-1", 30000)

	code := "SAVE10"
	coins := int64(500)
	updated, err := svc.ApplyDiscounts(context.Background(), "user-1", draft.DraftID, ApplyDiscountsRequest{
		CouponCode:  &code,
		RedeemCoins: &coins,
	})
	if err != nil {
		t.Fatalf("apply discounts: %v", err)
	}
	if updated.Breakdown.CouponDiscount != 3000 {
		t.Errorf("CouponDiscount = %d, want 3000", updated.Breakdown.CouponDiscount)
	}
	if updated.Breakdown.FinalPayable != 28000 {
		t.Errorf("FinalPayable = %d, want 28000", updated.Breakdown.FinalPayable)
	}
}

func TestCheckoutFullPayment(t *testing.T) {
	store := newFakeDraftStore()
	br := newFakeBookingRepo()
	pr := newFakePaymentRepo()
	svc := newBookingService(store, br, pr, newFakeCouponRepo(), newFakeUserRepo())

	draft := seedDraft(t, svc, "user-1", 30000)

	resp, err := svc.Checkout(context.Background(), "user-1", CheckoutRequest{
		DraftID:     draft.DraftID,
		PaymentType: models.PaymentTypeFull,
	})
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if resp.Status != string(StatusPending) {
		t.Errorf("status = %q, want pending", resp.Status)
	}
	if resp.FinalPrice != 31500 {
		t.Errorf("FinalPrice = %d, want 31500", resp.FinalPrice)
	}
	if resp.PaymentLink == "" {
		t.Error("expected a payment link")
	}

	b, err := br.GetByID(resp.BookingID)
	if err != nil {
		t.Fatalf("booking not persisted: %v", err)
	}
	if b.BalanceAmount != 31500 {
		t.Errorf("BalanceAmount = %d, want 31500", b.BalanceAmount)
	}
	intent, err := pr.GetByID(resp.PaymentID)
	if err != nil {
		t.Fatalf("intent not persisted: %v", err)
	}
	if intent.Amount != 31500 || intent.IsEmiPayment {
		t.Errorf("intent = %+v, want lump 31500", intent)
	}

	// The draft is consumed.
	if _, err := store.Get(context.Background(), draft.DraftID); err == nil {
		t.Error("draft survived checkout")
	}
}

func TestCheckoutAdvanceReservation(t *testing.T) {
	br := newFakeBookingRepo()
	pr := newFakePaymentRepo()
	svc := newBookingService(newFakeDraftStore(), br, pr, newFakeCouponRepo(), newFakeUserRepo())

	draft := seedDraft(t, svc, "user-1", 30000)

	resp, err := svc.Checkout(context.Background(), "user-1", CheckoutRequest{
		DraftID:     draft.DraftID,
		PaymentType: models.PaymentTypeAdvance,
	})
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if resp.FinalPrice != 1 {
		t.Errorf("FinalPrice = %d, want reservation amount 1", resp.FinalPrice)
	}
	// The balance covers the full settled price until the reservation
	// payment actually lands.
	b, _ := br.GetByID(resp.BookingID)
	if b.BalanceAmount != 31500 {
		t.Errorf("BalanceAmount = %d, want 31500", b.BalanceAmount)
	}
}

func TestAdvancePaymentsSumToFullPrice(t *testing.T) {
	store := newFakeDraftStore()
	br := newFakeBookingRepo()
	pr := newFakePaymentRepo()
	ur := newFakeUserRepo(models.User{ID: "user-1"})
	bookingSvc := newBookingService(store, br, pr, newFakeCouponRepo(), ur)
	paymentSvc, _, _ := newPaymentService(br, pr, ur)

	draft := seedDraft(t, bookingSvc, "user-1", 30000)
	resp, err := bookingSvc.Checkout(context.Background(), "user-1", CheckoutRequest{
		DraftID:     draft.DraftID,
		PaymentType: models.PaymentTypeAdvance,
	})
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}

	var collected int64

	// Reservation payment.
	reservation, _ := pr.GetByID(resp.PaymentID)
	collected += reservation.Amount
	res, err := paymentSvc.ProcessPayment(context.Background(), "user-1",
		models.ProcessPaymentRequest{PaymentID: resp.PaymentID, PaymentMethod: "card"})
	if err != nil {
		t.Fatalf("reservation payment: %v", err)
	}
	if res.BookingStatus != string(StatusWaiting) {
		t.Errorf("booking status = %q after reservation, want waiting", res.BookingStatus)
	}

	// Balance settlement.
	next, _, err := paymentSvc.CreateNextPaymentIntent(context.Background(), "user-1", resp.BookingID)
	if err != nil {
		t.Fatalf("next intent: %v", err)
	}
	collected += next.Amount
	res, err = paymentSvc.ProcessPayment(context.Background(), "user-1",
		models.ProcessPaymentRequest{PaymentID: next.PaymentID, PaymentMethod: "card"})
	if err != nil {
		t.Fatalf("balance payment: %v", err)
	}
	if res.BookingStatus != string(StatusConfirmed) {
		t.Errorf("booking status = %q after balance payment, want confirmed", res.BookingStatus)
	}

	// 30000 base + 1500 GST; the reservation must not be credited
	// against the balance twice.
	if collected != 31500 {
		t.Errorf("collected = %d across both payments, want 31500", collected)
	}
	b, _ := br.GetByID(resp.BookingID)
	if b.BalanceAmount != 0 {
		t.Errorf("BalanceAmount = %d after settlement, want 0", b.BalanceAmount)
	}
}

func TestCheckoutEMIPlan(t *testing.T) {
	br := newFakeBookingRepo()
	pr := newFakePaymentRepo()
	svc := newBookingService(newFakeDraftStore(), br, pr, newFakeCouponRepo(), newFakeUserRepo())

	draft := seedDraft(t, svc, "user-1", 30000)

	resp, err := svc.Checkout(context.Background(), "user-1", CheckoutRequest{
		DraftID:     draft.DraftID,
		PaymentType: models.PaymentTypeFull,
		EmiMonths:   6,
	})
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}

	b, _ := br.GetByID(resp.BookingID)
	if b.EMIDetails == nil {
		t.Fatal("EMI details missing")
	}
	if len(b.EMIDetails.Schedule) != 6 {
		t.Fatalf("schedule length = %d, want 6", len(b.EMIDetails.Schedule))
	}
	// 31500/6 = 5250; fee rides on installment 1.
	if b.EMIDetails.Schedule[0].Amount != 5250+99 {
		t.Errorf("installment 1 = %d, want 5349", b.EMIDetails.Schedule[0].Amount)
	}
	if b.BalanceAmount != 31500 {
		t.Errorf("BalanceAmount = %d, want full payable 31500", b.BalanceAmount)
	}

	intent, _ := pr.GetByID(resp.PaymentID)
	if !intent.IsEmiPayment || intent.InstallmentNumber != 1 {
		t.Errorf("first intent = %+v, want installment 1", intent)
	}
	if intent.Amount != 5349 {
		t.Errorf("first intent amount = %d, want 5349", intent.Amount)
	}
}

func TestCheckoutAdvanceWithEMIRejected(t *testing.T) {
	svc := newBookingService(newFakeDraftStore(), newFakeBookingRepo(), newFakePaymentRepo(), newFakeCouponRepo(), newFakeUserRepo())

	draft := seedDraft(t, svc, "user-1", 30000)

	_, err := svc.Checkout(context.Background(), "user-1", CheckoutRequest{
		DraftID:     draft.DraftID,
		PaymentType: models.PaymentTypeAdvance,
		EmiMonths:   6,
	})
	le, ok := AsLifecycleError(err)
	if !ok || le.Code != CodeValidation {
		t.Fatalf("expected %s, got %v", CodeValidation, err)
	}
}

func TestCheckoutDeductsCoins(t *testing.T) {
	users := newFakeUserRepo(models.User{ID: "user-1", RedeemCoins: 1000})
	svc := newBookingService(newFakeDraftStore(), newFakeBookingRepo(), newFakePaymentRepo(), newFakeCouponRepo(), users)

	draft := seedDraft(t, svc, "user-1", 30000)

	resp, err := svc.Checkout(context.Background(), "user-1", CheckoutRequest{
		DraftID:     draft.DraftID,
		PaymentType: models.PaymentTypeFull,
		RedeemCoin:  400,
	})
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if resp.FinalPrice != 31100 {
		t.Errorf("FinalPrice = %d, want 31100", resp.FinalPrice)
	}
	if got := users.coins("user-1"); got != 600 {
		t.Errorf("remaining coins = %d, want 600", got)
	}
}

func TestCheckoutOverRedemptionRejected(t *testing.T) {
	users := newFakeUserRepo(models.User{ID: "user-1", RedeemCoins: 100})
	svc := newBookingService(newFakeDraftStore(), newFakeBookingRepo(), newFakePaymentRepo(), newFakeCouponRepo(), users)

	draft := seedDraft(t, svc, "user-1", 30000)

	_, err := svc.Checkout(context.Background(), "user-1", CheckoutRequest{
		DraftID:     draft.DraftID,
		PaymentType: models.PaymentTypeFull,
		RedeemCoin:  500,
	})
	le, ok := AsLifecycleError(err)
	if !ok || le.Code != CodeInvalidRedemption {
		t.Fatalf("expected %s, got %v", CodeInvalidRedemption, err)
	}
	if got := users.coins("user-1"); got != 100 {
		t.Errorf("coins touched on rejected redemption: %d", got)
	}
}

func TestCheckoutUnknownCoupon(t *testing.T) {
	svc := newBookingService(newFakeDraftStore(), newFakeBookingRepo(), newFakePaymentRepo(), newFakeCouponRepo(), newFakeUserRepo())

	draft := seedDraft(t, svc, "user-1", 30000)

	_, err := svc.Checkout(context.Background(), "user-1", CheckoutRequest{
		DraftID:     draft.DraftID,
		PaymentType: models.PaymentTypeFull,
		CouponCode:  "NOPE",
	})
	le, ok := AsLifecycleError(err)
	if !ok || le.Code != CodeInvalidCoupon {
		t.Fatalf("expected %s, got %v", CodeInvalidCoupon, err)
	}
}

func TestCheckoutPriceLockedAgainstLaterDraftEdits(t *testing.T) {
	store := newFakeDraftStore()
	br := newFakeBookingRepo()
	svc := newBookingService(store, br, newFakePaymentRepo(), newFakeCouponRepo(), newFakeUserRepo())

	draft := seedDraft(t, svc, "user-1", 30000)
	resp, err := svc.Checkout(context.Background(), "user-1", CheckoutRequest{
		DraftID:     draft.DraftID,
		PaymentType: models.PaymentTypeFull,
	})
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}

	b, _ := br.GetByID(resp.BookingID)
	if b.TotalPackagePrice != 30000 || b.FinalPrice != 31500 {
		t.Errorf("snapshot wrong: total=%d final=%d", b.TotalPackagePrice, b.FinalPrice)
	}
	// GetBooking returns the same snapshot, never a recompute.
	again, err := svc.GetBooking("user-1", resp.BookingID)
	if err != nil {
		t.Fatalf("get booking: %v", err)
	}
	if again.FinalPrice != 31500 {
		t.Errorf("FinalPrice = %d on re-read, want 31500", again.FinalPrice)
	}
}

func TestGetBookingOwnership(t *testing.T) {
	br := newFakeBookingRepo()
	svc := newBookingService(newFakeDraftStore(), br, newFakePaymentRepo(), newFakeCouponRepo(), newFakeUserRepo())

	draft := seedDraft(t, svc, "user-1", 30000)
	resp, err := svc.Checkout(context.Background(), "user-1", CheckoutRequest{
		DraftID:     draft.DraftID,
		PaymentType: models.PaymentTypeFull,
	})
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}

	_, err = svc.GetBooking("user-2", resp.BookingID)
	le, ok := AsLifecycleError(err)
	if !ok || le.Code != CodeUnauthorized {
		t.Fatalf("expected %s, got %v", CodeUnauthorized, err)
	}
}
