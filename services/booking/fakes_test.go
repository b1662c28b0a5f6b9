package booking

import (
	"context"
	"sync"
	"time"

	bookingRepo "wanderly/database/repository/booking"
	couponRepo "wanderly/database/repository/coupon"
	paymentRepo "wanderly/database/repository/payment"
	userRepo "wanderly/database/repository/user"
	"wanderly/models"

	"go.uber.org/zap"
)

// In-memory fakes mirroring the conditional-update semantics of the
// Mongo repositories.

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]models.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[string]models.Booking)}
}

func (r *fakeBookingRepo) Create(b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bookings[b.ID] = *b
	return nil
}

func (r *fakeBookingRepo) GetByID(id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	cp := cloneBooking(b)
	return &cp, nil
}

func (r *fakeBookingRepo) GetByUser(userID string) ([]models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.UserID == userID {
			out = append(out, cloneBooking(b))
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) UpdateGuarded(b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.bookings[b.ID]
	if !ok {
		return bookingRepo.ErrNotFound
	}
	if stored.Version != b.Version {
		return bookingRepo.ErrVersionConflict
	}
	b.Version++
	r.bookings[b.ID] = cloneBooking(*b)
	return nil
}

func cloneBooking(b models.Booking) models.Booking {
	cp := b
	if b.EMIDetails != nil {
		emi := *b.EMIDetails
		emi.Schedule = append([]models.Installment(nil), b.EMIDetails.Schedule...)
		cp.EMIDetails = &emi
	}
	return cp
}

type fakePaymentRepo struct {
	mu      sync.Mutex
	intents map[string]models.PaymentIntent
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{intents: make(map[string]models.PaymentIntent)}
}

func (r *fakePaymentRepo) Create(p *models.PaymentIntent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.intents[p.PaymentID] = *p
	return nil
}

func (r *fakePaymentRepo) GetByID(paymentID string) (*models.PaymentIntent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.intents[paymentID]
	if !ok {
		return nil, paymentRepo.ErrNotFound
	}
	cp := p
	return &cp, nil
}

func (r *fakePaymentRepo) CompleteIfPending(paymentID, transactionID, method string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.intents[paymentID]
	if !ok {
		return false, paymentRepo.ErrNotFound
	}
	if p.Status != models.PaymentStatusPending {
		return false, nil
	}
	p.Status = models.PaymentStatusCompleted
	p.TransactionID = transactionID
	p.Method = method
	r.intents[paymentID] = p
	return true, nil
}

func (r *fakePaymentRepo) FailIfPending(paymentID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.intents[paymentID]
	if !ok {
		return false, paymentRepo.ErrNotFound
	}
	if p.Status != models.PaymentStatusPending {
		return false, nil
	}
	p.Status = models.PaymentStatusFailed
	r.intents[paymentID] = p
	return true, nil
}

func (r *fakePaymentRepo) RevertToPending(paymentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.intents[paymentID]
	if !ok {
		return paymentRepo.ErrNotFound
	}
	p.Status = models.PaymentStatusPending
	p.TransactionID = ""
	r.intents[paymentID] = p
	return nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]models.User
}

func newFakeUserRepo(users ...models.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]models.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) GetByID(id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, userRepo.ErrNotFound
	}
	cp := u
	return &cp, nil
}

func (r *fakeUserRepo) DeductRedeemCoins(id string, coins int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return userRepo.ErrNotFound
	}
	if u.RedeemCoins < coins {
		return userRepo.ErrInsufficientCoins
	}
	u.RedeemCoins -= coins
	r.users[id] = u
	return nil
}

func (r *fakeUserRepo) CreditRedeemCoins(id string, coins int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return userRepo.ErrNotFound
	}
	u.RedeemCoins += coins
	r.users[id] = u
	return nil
}

func (r *fakeUserRepo) coins(id string) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.users[id].RedeemCoins
}

type fakeCouponRepo struct {
	coupons map[string]models.Coupon
}

func newFakeCouponRepo(coupons ...models.Coupon) *fakeCouponRepo {
	r := &fakeCouponRepo{coupons: make(map[string]models.Coupon)}
	for _, c := range coupons {
		r.coupons[c.Code] = c
	}
	return r
}

func (r *fakeCouponRepo) GetByCode(code string) (*models.Coupon, error) {
	c, ok := r.coupons[code]
	if !ok {
		return nil, couponRepo.ErrNotFound
	}
	cp := c
	return &cp, nil
}

type fakeDraftStore struct {
	mu     sync.Mutex
	drafts map[string]models.BookingDraft
}

func newFakeDraftStore() *fakeDraftStore {
	return &fakeDraftStore{drafts: make(map[string]models.BookingDraft)}
}

func (s *fakeDraftStore) Save(ctx context.Context, draft *models.BookingDraft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[draft.DraftID] = *draft
	return nil
}

func (s *fakeDraftStore) Get(ctx context.Context, draftID string) (*models.BookingDraft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[draftID]
	if !ok {
		return nil, NewLifecycleError(CodeNotFound, "booking draft not found or expired")
	}
	cp := d
	return &cp, nil
}

func (s *fakeDraftStore) Delete(ctx context.Context, draftID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, draftID)
	return nil
}

type fakeGateway struct {
	mu    sync.Mutex
	calls int
	fail  bool
}

func (g *fakeGateway) CreatePaymentLink(ctx context.Context, intent *models.PaymentIntent) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	if g.fail {
		return "", context.DeadlineExceeded
	}
	return "https://pay.test/" + intent.PaymentID, nil
}

type fakeNotifier struct {
	mu    sync.Mutex
	sent  int
	calls []string
}

func (n *fakeNotifier) SendUserPushNotification(ctx context.Context, userID, title, body string, data map[string]string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent++
	n.calls = append(n.calls, title)
	return nil
}

type fakeReminders struct {
	mu        sync.Mutex
	scheduled []models.ReminderPayload
	fireAts   []time.Time
}

func (r *fakeReminders) ScheduleDueReminder(ctx context.Context, payload models.ReminderPayload, fireAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scheduled = append(r.scheduled, payload)
	r.fireAts = append(r.fireAts, fireAt)
	return nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}
