package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"mess-booking/internal/data/entity"
	"mess-booking/internal/data/repository"
	"mess-booking/pkg/payment"
	"mess-booking/pkg/ticket"
	"mess-booking/pkg/utils"

	"github.com/google/uuid"
)

// fakeBookingRepo is an in-memory BookingRepository with the same
// conditional-update semantics as the SQL implementation.
type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]*entity.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[uuid.UUID]*entity.Booking)}
}

func (f *fakeBookingRepo) Create(ctx context.Context, booking *entity.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *booking
	f.bookings[booking.ID] = &clone
	return nil
}

func (f *fakeBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	booking, ok := f.bookings[id]
	if !ok {
		return nil, nil
	}
	clone := *booking
	return &clone, nil
}

func (f *fakeBookingRepo) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*entity.Booking
	for _, booking := range f.bookings {
		if booking.UserID == userID {
			clone := *booking
			result = append(result, &clone)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (f *fakeBookingRepo) FindAll(ctx context.Context, filter repository.BookingFilter) ([]*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*entity.Booking
	for _, booking := range f.bookings {
		if filter.Status != nil && booking.Status != *filter.Status {
			continue
		}
		if filter.MealType != nil && booking.MealType != *filter.MealType {
			continue
		}
		if filter.StartDate != nil && booking.Date.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && booking.Date.After(*filter.EndDate) {
			continue
		}
		clone := *booking
		result = append(result, &clone)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (f *fakeBookingRepo) FindRecent(ctx context.Context, limit int) ([]*entity.Booking, error) {
	all, _ := f.FindAll(ctx, repository.BookingFilter{})
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (f *fakeBookingRepo) UpdateStatusIf(ctx context.Context, id uuid.UUID, from, to entity.BookingStatus) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	booking, ok := f.bookings[id]
	if !ok || booking.Status != from {
		return false, nil
	}
	booking.Status = to
	booking.UpdatedAt = time.Now()
	return true, nil
}

func (f *fakeBookingRepo) MarkPaid(ctx context.Context, id uuid.UUID, ticketID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	booking, ok := f.bookings[id]
	if !ok || booking.Status != entity.BookingStatusPending {
		return false, nil
	}
	booking.Status = entity.BookingStatusPaid
	booking.TicketID = &ticketID
	booking.UpdatedAt = time.Now()
	return true, nil
}

func (f *fakeBookingRepo) SetPDFPath(ctx context.Context, id uuid.UUID, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	booking, ok := f.bookings[id]
	if !ok {
		return nil
	}
	if booking.PDFPath == nil {
		booking.PDFPath = &path
	}
	return nil
}

func (f *fakeBookingRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	booking, ok := f.bookings[id]
	if !ok {
		return entity.ErrBookingNotFound
	}
	booking.Status = status
	booking.UpdatedAt = time.Now()
	return nil
}

func (f *fakeBookingRepo) CountByStatus(ctx context.Context) (map[entity.BookingStatus]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	counts := make(map[entity.BookingStatus]int64)
	for _, booking := range f.bookings {
		counts[booking.Status]++
	}
	return counts, nil
}

func (f *fakeBookingRepo) CountByMealType(ctx context.Context) (map[entity.MealType]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	counts := make(map[entity.MealType]int64)
	for _, booking := range f.bookings {
		counts[booking.MealType]++
	}
	return counts, nil
}

func (f *fakeBookingRepo) SumPaidAmount(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var total int64
	for _, booking := range f.bookings {
		if booking.Status == entity.BookingStatusPaid {
			total += booking.Amount
		}
	}
	return total, nil
}

// fakeUserRepo is an in-memory UserRepository.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindAll(ctx context.Context) ([]*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*entity.User
	for _, user := range f.users {
		clone := *user
		result = append(result, &clone)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (f *fakeUserRepo) UpdateRole(ctx context.Context, id uuid.UUID, role entity.UserRole) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return entity.ErrUserNotFound
	}
	user.Role = role
	return nil
}

// fakeGateway verifies signatures by string comparison and parses the
// payload as {"type": ..., "booking_id": ...}.
type fakeGateway struct {
	enabled bool
	secret  string
}

func (g *fakeGateway) Enabled() bool {
	return g.enabled
}

func (g *fakeGateway) CreateSession(ctx context.Context, p payment.SessionParams) (string, error) {
	if !g.enabled {
		return "", payment.ErrNotConfigured
	}
	return "https://checkout.test/" + p.BookingID, nil
}

func (g *fakeGateway) VerifyEvent(payload []byte, signature string) (*payment.Event, error) {
	if signature != g.secret {
		return nil, payment.ErrSignatureVerification
	}
	var body struct {
		Type      string `json:"type"`
		BookingID string `json:"booking_id"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return nil, fmt.Errorf("%w: %v", payment.ErrSignatureVerification, err)
	}
	return &payment.Event{Type: body.Type, BookingID: body.BookingID}, nil
}

// fakeTicketGen counts artifact calls and can be told to fail.
type fakeTicketGen struct {
	mu            sync.Mutex
	counter       int
	artifactCalls int
	artifactErr   error
}

func (g *fakeTicketGen) NewTicketID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counter++
	return fmt.Sprintf("MTBS-TEST-%04d", g.counter)
}

func (g *fakeTicketGen) GenerateArtifact(ctx context.Context, t ticket.Ticket) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.artifactCalls++
	if g.artifactErr != nil {
		return "", g.artifactErr
	}
	return "tickets/" + t.TicketID + ".pdf", nil
}

func (g *fakeTicketGen) calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.artifactCalls
}

// helpers

func seedBooking(repo *fakeBookingRepo, userID uuid.UUID, status entity.BookingStatus) *entity.Booking {
	now := time.Now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:   userID,
		Date:     now.AddDate(0, 0, 1),
		MealType: entity.MealLunch,
		Persons:  2,
		Amount:   160,
		Status:   status,
	}
	repo.Create(context.Background(), booking)
	return booking
}

func testCatalog() *PriceCatalog {
	return NewPriceCatalog(utils.PriceConfig{Breakfast: 50, Lunch: 80, Dinner: 70})
}
