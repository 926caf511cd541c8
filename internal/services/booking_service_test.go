package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/kofi-annor/stayhub/internal/apperr"
	"github.com/kofi-annor/stayhub/internal/auth"
	"github.com/kofi-annor/stayhub/internal/models"
	"github.com/kofi-annor/stayhub/internal/payments"
	"github.com/kofi-annor/stayhub/internal/services"
)

// ---- fakes ----

type fakeHotelRepo struct {
	hotels map[string]*models.Hotel
}

func (f *fakeHotelRepo) CreateHotel(ctx context.Context, h *models.Hotel) error {
	f.hotels[h.ID] = h
	return nil
}

func (f *fakeHotelRepo) GetHotelByID(ctx context.Context, id string) (*models.Hotel, error) {
	h, ok := f.hotels[id]
	if !ok {
		return nil, apperr.New(apperr.NotFound, "hotel not found")
	}
	cp := *h
	return &cp, nil
}

func (f *fakeHotelRepo) UpdateHotelForOwner(ctx context.Context, hotelID, ownerID string, update bson.M) (*models.Hotel, error) {
	h, ok := f.hotels[hotelID]
	if !ok || h.UserID != ownerID {
		return nil, apperr.New(apperr.NotFound, "hotel not found")
	}
	return h, nil
}

func (f *fakeHotelRepo) ListHotelsByOwner(ctx context.Context, ownerID string) ([]*models.Hotel, error) {
	return nil, nil
}

func (f *fakeHotelRepo) ListFeaturedHotels(ctx context.Context, limit int) ([]*models.Hotel, error) {
	return nil, nil
}

func (f *fakeHotelRepo) SearchHotels(ctx context.Context, filter bson.M, sort bson.D, page int) ([]*models.Hotel, int64, error) {
	return nil, 0, nil
}

type counterDelta struct {
	bookings int
	amount   int64
}

type fakeBookingRepo struct {
	bookings     map[string]*models.Booking
	usedIntents  map[string]bool
	hotelDeltas  map[string]counterDelta
	userDeltas   map[string]counterDelta
	priorBooking *models.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{
		bookings:    map[string]*models.Booking{},
		usedIntents: map[string]bool{},
		hotelDeltas: map[string]counterDelta{},
		userDeltas:  map[string]counterDelta{},
	}
}

func (f *fakeBookingRepo) apply(hotelID, userID string, bookings int, amount int64) {
	hd := f.hotelDeltas[hotelID]
	hd.bookings += bookings
	hd.amount += amount
	f.hotelDeltas[hotelID] = hd

	ud := f.userDeltas[userID]
	ud.bookings += bookings
	ud.amount += amount
	f.userDeltas[userID] = ud
}

func (f *fakeBookingRepo) ConfirmBooking(ctx context.Context, b *models.Booking) error {
	if f.usedIntents[b.PaymentIntentID] {
		return apperr.New(apperr.Conflict, "this payment has already been used for a booking")
	}
	f.usedIntents[b.PaymentIntentID] = true
	f.bookings[b.ID] = b
	f.apply(b.HotelID, b.UserID, 1, b.TotalCost)
	return nil
}

func (f *fakeBookingRepo) DeleteBooking(ctx context.Context, b *models.Booking) error {
	if _, ok := f.bookings[b.ID]; !ok {
		return apperr.New(apperr.NotFound, "booking not found")
	}
	delete(f.bookings, b.ID)
	delete(f.usedIntents, b.PaymentIntentID)
	f.apply(b.HotelID, b.UserID, -1, -b.TotalCost)
	return nil
}

func (f *fakeBookingRepo) GetBookingByID(ctx context.Context, id string) (*models.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, apperr.New(apperr.NotFound, "booking not found")
	}
	return b, nil
}

func (f *fakeBookingRepo) ListBookingsByUser(ctx context.Context, userID string) ([]*models.Booking, error) {
	var out []*models.Booking
	for _, b := range f.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) FindUserBookingForHotel(ctx context.Context, userID, hotelID string) (*models.Booking, error) {
	return f.priorBooking, nil
}

func (f *fakeBookingRepo) UpdateBookingStatus(ctx context.Context, id, status string, set map[string]interface{}) (*models.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, apperr.New(apperr.NotFound, "booking not found")
	}
	b.Status = status
	if ps, ok := set["payment_status"].(string); ok {
		b.PaymentStatus = ps
	}
	return b, nil
}

type fakeProvider struct {
	intents map[string]*payments.Intent
	created []*payments.Intent
}

func (f *fakeProvider) CreateIntent(ctx context.Context, amount int64, metadata map[string]string) (*payments.Intent, error) {
	intent := &payments.Intent{
		ID:           "pi_test",
		ClientSecret: "secret_test",
		Amount:       amount,
		Status:       payments.IntentStatusRequiresPaymentMethod,
		Metadata:     metadata,
	}
	f.created = append(f.created, intent)
	return intent, nil
}

func (f *fakeProvider) GetIntent(ctx context.Context, id string) (*payments.Intent, error) {
	intent, ok := f.intents[id]
	if !ok {
		return nil, apperr.New(apperr.Validation, "payment intent not found")
	}
	return intent, nil
}

// ---- helpers ----

const (
	testHotelID = "hotel-1"
	testUserID  = "user-1"
)

func newBookingFixture() (*services.BookingService, *fakeBookingRepo, *fakeProvider) {
	hotels := &fakeHotelRepo{hotels: map[string]*models.Hotel{
		testHotelID: {ID: testHotelID, UserID: "owner-1", Name: "Accra Grand", PricePerNight: 100, IsActive: true},
	}}
	bookings := newFakeBookingRepo()
	provider := &fakeProvider{intents: map[string]*payments.Intent{}}
	return services.NewBookingService(bookings, hotels, provider), bookings, provider
}

func succeededIntent(amount int64) *payments.Intent {
	return &payments.Intent{
		ID:     "pi_ok",
		Amount: amount,
		Status: payments.IntentStatusSucceeded,
		Metadata: map[string]string{
			payments.MetadataHotelID: testHotelID,
			payments.MetadataUserID:  testUserID,
		},
	}
}

func confirmReq(nights int) *services.ConfirmBookingRequest {
	checkIn := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	return &services.ConfirmBookingRequest{
		PaymentIntentID: "pi_ok",
		TotalCost:       int64(100 * nights),
		CheckIn:         checkIn,
		CheckOut:        checkIn.AddDate(0, 0, nights),
		FirstName:       "Ama",
		LastName:        "Mensah",
		Email:           "ama@example.com",
		AdultCount:      2,
	}
}

func userCtx() auth.Context {
	return auth.Context{UserID: testUserID, Role: auth.RoleUser}
}

// ---- tests ----

func TestCreatePaymentIntent(t *testing.T) {
	svc, _, provider := newBookingFixture()

	res, err := svc.CreatePaymentIntent(context.Background(), userCtx(), testHotelID, 3)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if res.TotalCost != 300 {
		t.Errorf("total cost = %d, want 300", res.TotalCost)
	}
	if len(provider.created) != 1 {
		t.Fatalf("expected one intent, got %d", len(provider.created))
	}
	md := provider.created[0].Metadata
	if md[payments.MetadataHotelID] != testHotelID || md[payments.MetadataUserID] != testUserID {
		t.Errorf("intent metadata not stamped: %v", md)
	}
}

func TestCreatePaymentIntentUnknownHotel(t *testing.T) {
	svc, _, _ := newBookingFixture()

	_, err := svc.CreatePaymentIntent(context.Background(), userCtx(), "missing", 2)
	if apperr.KindOf(err) != apperr.NotFound {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestConfirmBookingHappyPath(t *testing.T) {
	svc, bookings, provider := newBookingFixture()
	provider.intents["pi_ok"] = succeededIntent(200)

	booking, err := svc.ConfirmBooking(context.Background(), userCtx(), testHotelID, confirmReq(2))
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if booking.Status != models.BookingStatusConfirmed || booking.PaymentStatus != models.PaymentStatusPaid {
		t.Errorf("unexpected statuses: %s/%s", booking.Status, booking.PaymentStatus)
	}
	if booking.TotalCost != 200 {
		t.Errorf("total cost = %d, want 200", booking.TotalCost)
	}

	hd := bookings.hotelDeltas[testHotelID]
	if hd.bookings != 1 || hd.amount != 200 {
		t.Errorf("hotel counters = %+v, want {1 200}", hd)
	}
	ud := bookings.userDeltas[testUserID]
	if ud.bookings != 1 || ud.amount != 200 {
		t.Errorf("user counters = %+v, want {1 200}", ud)
	}
}

func TestConfirmBookingCountersAfterRepeatedBookings(t *testing.T) {
	svc, bookings, provider := newBookingFixture()

	// Each stay is paid separately; three payments, three bookings.
	for i := 0; i < 3; i++ {
		intent := succeededIntent(200)
		intent.ID = fmt.Sprintf("pi_%d", i)
		provider.intents[intent.ID] = intent

		req := confirmReq(2)
		req.PaymentIntentID = intent.ID
		if _, err := svc.ConfirmBooking(context.Background(), userCtx(), testHotelID, req); err != nil {
			t.Fatalf("booking %d: %v", i, err)
		}
	}

	hd := bookings.hotelDeltas[testHotelID]
	if hd.bookings != 3 || hd.amount != 600 {
		t.Errorf("hotel counters = %+v, want {3 600}", hd)
	}
}

func TestConfirmBookingPaidAmountMismatchRejected(t *testing.T) {
	svc, bookings, provider := newBookingFixture()

	// Paid for one night, attempting to confirm a five-night stay.
	intent := succeededIntent(100)
	provider.intents["pi_ok"] = intent

	req := confirmReq(5)

	_, err := svc.ConfirmBooking(context.Background(), userCtx(), testHotelID, req)
	if apperr.KindOf(err) != apperr.Validation {
		t.Fatalf("expected Validation on underpaid intent, got %v", err)
	}
	if len(bookings.bookings) != 0 {
		t.Error("booking persisted despite underpayment")
	}
}

func TestConfirmBookingIntentReplayRejected(t *testing.T) {
	svc, bookings, provider := newBookingFixture()
	provider.intents["pi_ok"] = succeededIntent(200)

	if _, err := svc.ConfirmBooking(context.Background(), userCtx(), testHotelID, confirmReq(2)); err != nil {
		t.Fatalf("first confirmation: %v", err)
	}

	_, err := svc.ConfirmBooking(context.Background(), userCtx(), testHotelID, confirmReq(2))
	if apperr.KindOf(err) != apperr.Conflict {
		t.Fatalf("expected Conflict replaying the intent, got %v", err)
	}
	if len(bookings.bookings) != 1 {
		t.Errorf("one payment produced %d bookings", len(bookings.bookings))
	}
	if hd := bookings.hotelDeltas[testHotelID]; hd.bookings != 1 || hd.amount != 200 {
		t.Errorf("counters doubled by replay: %+v", hd)
	}
}

func TestConfirmBookingZeroNightsRejected(t *testing.T) {
	svc, bookings, provider := newBookingFixture()
	provider.intents["pi_ok"] = succeededIntent(0)

	req := confirmReq(2)
	req.CheckOut = req.CheckIn // same day, 0 nights

	_, err := svc.ConfirmBooking(context.Background(), userCtx(), testHotelID, req)
	if apperr.KindOf(err) != apperr.Validation {
		t.Fatalf("expected Validation, got %v", err)
	}
	if len(bookings.bookings) != 0 {
		t.Error("booking persisted despite validation failure")
	}
}

func TestConfirmBookingOneNightAccepted(t *testing.T) {
	svc, _, provider := newBookingFixture()
	provider.intents["pi_ok"] = succeededIntent(100)

	if _, err := svc.ConfirmBooking(context.Background(), userCtx(), testHotelID, confirmReq(1)); err != nil {
		t.Fatalf("one-night booking rejected: %v", err)
	}
}

func TestConfirmBookingNightCountMismatchRejected(t *testing.T) {
	svc, _, provider := newBookingFixture()
	provider.intents["pi_ok"] = succeededIntent(200)

	req := confirmReq(2)
	req.Nights = 3 // disagrees with the 2-night date range

	_, err := svc.ConfirmBooking(context.Background(), userCtx(), testHotelID, req)
	if apperr.KindOf(err) != apperr.Validation {
		t.Fatalf("expected Validation, got %v", err)
	}
}

func TestConfirmBookingMetadataMismatchRejected(t *testing.T) {
	svc, bookings, provider := newBookingFixture()

	intent := succeededIntent(200)
	intent.Metadata[payments.MetadataHotelID] = "some-other-hotel"
	provider.intents["pi_ok"] = intent

	_, err := svc.ConfirmBooking(context.Background(), userCtx(), testHotelID, confirmReq(2))
	if apperr.KindOf(err) != apperr.Validation {
		t.Fatalf("expected Validation, got %v", err)
	}
	if len(bookings.bookings) != 0 {
		t.Error("booking persisted despite intent reuse")
	}
	if d := bookings.hotelDeltas[testHotelID]; d.bookings != 0 || d.amount != 0 {
		t.Errorf("counters mutated despite rejection: %+v", d)
	}
}

func TestConfirmBookingWrongUserRejected(t *testing.T) {
	svc, _, provider := newBookingFixture()

	intent := succeededIntent(200)
	intent.Metadata[payments.MetadataUserID] = "someone-else"
	provider.intents["pi_ok"] = intent

	_, err := svc.ConfirmBooking(context.Background(), userCtx(), testHotelID, confirmReq(2))
	if apperr.KindOf(err) != apperr.Validation {
		t.Fatalf("expected Validation, got %v", err)
	}
}

func TestConfirmBookingNonSucceededStatusSurfaced(t *testing.T) {
	svc, _, provider := newBookingFixture()

	intent := succeededIntent(200)
	intent.Status = payments.IntentStatusProcessing
	provider.intents["pi_ok"] = intent

	_, err := svc.ConfirmBooking(context.Background(), userCtx(), testHotelID, confirmReq(2))
	if apperr.KindOf(err) != apperr.Validation {
		t.Fatalf("expected Validation, got %v", err)
	}
	if got := apperr.Message(err); got != "payment not completed, intent status: processing" {
		t.Errorf("literal status not surfaced: %q", got)
	}
}

func TestConfirmBookingUnknownIntentRejected(t *testing.T) {
	svc, _, _ := newBookingFixture()

	_, err := svc.ConfirmBooking(context.Background(), userCtx(), testHotelID, confirmReq(2))
	if apperr.KindOf(err) != apperr.Validation {
		t.Fatalf("expected Validation for unknown intent, got %v", err)
	}
}

func TestConfirmBookingTotalCostMismatchRejected(t *testing.T) {
	svc, _, provider := newBookingFixture()
	provider.intents["pi_ok"] = succeededIntent(200)

	req := confirmReq(2)
	req.TotalCost = 150 // price is 100/night x 2

	_, err := svc.ConfirmBooking(context.Background(), userCtx(), testHotelID, req)
	if apperr.KindOf(err) != apperr.Validation {
		t.Fatalf("expected Validation, got %v", err)
	}
}

func TestDeleteBookingRollsBackCounters(t *testing.T) {
	svc, bookings, provider := newBookingFixture()
	provider.intents["pi_ok"] = succeededIntent(200)

	booking, err := svc.ConfirmBooking(context.Background(), userCtx(), testHotelID, confirmReq(2))
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}

	if err := svc.Delete(context.Background(), booking.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if d := bookings.hotelDeltas[testHotelID]; d.bookings != 0 || d.amount != 0 {
		t.Errorf("hotel counters not rolled back: %+v", d)
	}
	if d := bookings.userDeltas[testUserID]; d.bookings != 0 || d.amount != 0 {
		t.Errorf("user counters not rolled back: %+v", d)
	}
}

func TestUpdateStatusTransitionGuard(t *testing.T) {
	svc, _, provider := newBookingFixture()
	provider.intents["pi_ok"] = succeededIntent(200)

	booking, err := svc.ConfirmBooking(context.Background(), userCtx(), testHotelID, confirmReq(2))
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}

	admin := auth.Context{UserID: "admin-1", Role: auth.RoleAdmin}

	// confirmed -> pending is not a legal transition
	_, err = svc.UpdateStatus(context.Background(), admin, booking.ID, &services.UpdateBookingStatusRequest{Status: models.BookingStatusPending})
	if apperr.KindOf(err) != apperr.Validation {
		t.Fatalf("expected Validation on illegal transition, got %v", err)
	}

	// confirmed -> completed is legal
	updated, err := svc.UpdateStatus(context.Background(), admin, booking.ID, &services.UpdateBookingStatusRequest{Status: models.BookingStatusCompleted})
	if err != nil {
		t.Fatalf("legal transition rejected: %v", err)
	}
	if updated.Status != models.BookingStatusCompleted {
		t.Errorf("status = %s, want completed", updated.Status)
	}
}

func TestUpdateStatusUserMayOnlyCancelOwnBooking(t *testing.T) {
	svc, _, provider := newBookingFixture()
	provider.intents["pi_ok"] = succeededIntent(200)

	booking, err := svc.ConfirmBooking(context.Background(), userCtx(), testHotelID, confirmReq(2))
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}

	// Another user cannot touch it.
	stranger := auth.Context{UserID: "user-2", Role: auth.RoleUser}
	_, err = svc.UpdateStatus(context.Background(), stranger, booking.ID, &services.UpdateBookingStatusRequest{Status: models.BookingStatusCancelled})
	if apperr.KindOf(err) != apperr.Forbidden {
		t.Fatalf("expected Forbidden, got %v", err)
	}

	// The owner cannot mark their own booking completed.
	_, err = svc.UpdateStatus(context.Background(), userCtx(), booking.ID, &services.UpdateBookingStatusRequest{Status: models.BookingStatusCompleted})
	if apperr.KindOf(err) != apperr.Forbidden {
		t.Fatalf("expected Forbidden, got %v", err)
	}

	// But cancelling their own booking works.
	updated, err := svc.UpdateStatus(context.Background(), userCtx(), booking.ID, &services.UpdateBookingStatusRequest{Status: models.BookingStatusCancelled, CancellationReason: "change of plans"})
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if updated.Status != models.BookingStatusCancelled {
		t.Errorf("status = %s, want cancelled", updated.Status)
	}
}

func TestUpdateStatusHotelOwnerScope(t *testing.T) {
	svc, _, provider := newBookingFixture()
	provider.intents["pi_ok"] = succeededIntent(200)

	booking, err := svc.ConfirmBooking(context.Background(), userCtx(), testHotelID, confirmReq(2))
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}

	otherOwner := auth.Context{UserID: "owner-2", Role: auth.RoleHotelOwner}
	_, err = svc.UpdateStatus(context.Background(), otherOwner, booking.ID, &services.UpdateBookingStatusRequest{Status: models.BookingStatusCompleted})
	if apperr.KindOf(err) != apperr.Forbidden {
		t.Fatalf("expected Forbidden for other owner, got %v", err)
	}

	owner := auth.Context{UserID: "owner-1", Role: auth.RoleHotelOwner}
	if _, err := svc.UpdateStatus(context.Background(), owner, booking.ID, &services.UpdateBookingStatusRequest{Status: models.BookingStatusCompleted}); err != nil {
		t.Fatalf("hotel owner transition rejected: %v", err)
	}
}
