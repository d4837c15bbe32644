package repository

import (
	"context"
	"fmt"
	"time"

	"mess-booking/internal/data/entity"
	"mess-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// BookingFilter narrows admin listings. Nil fields are ignored.
type BookingFilter struct {
	Status    *entity.BookingStatus
	MealType  *entity.MealType
	StartDate *time.Time
	EndDate   *time.Time
}

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Booking, error)
	FindAll(ctx context.Context, filter BookingFilter) ([]*entity.Booking, error)
	FindRecent(ctx context.Context, limit int) ([]*entity.Booking, error)

	// State machine primitives. Both are single conditional UPDATEs; the
	// returned bool reports whether this caller won the transition.
	UpdateStatusIf(ctx context.Context, id uuid.UUID, from, to entity.BookingStatus) (bool, error)
	MarkPaid(ctx context.Context, id uuid.UUID, ticketID string) (bool, error)

	SetPDFPath(ctx context.Context, id uuid.UUID, path string) error

	// Admin override, no status precondition.
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus) error

	// Statistics queries
	CountByStatus(ctx context.Context) (map[entity.BookingStatus]int64, error)
	CountByMealType(ctx context.Context) (map[entity.MealType]int64, error)
	SumPaidAmount(ctx context.Context) (int64, error)
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, user_id, date, meal_type, persons, amount, status, ticket_id, pdf_path, created_at, updated_at`

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var booking entity.Booking
	err := row.Scan(
		&booking.ID,
		&booking.UserID,
		&booking.Date,
		&booking.MealType,
		&booking.Persons,
		&booking.Amount,
		&booking.Status,
		&booking.TicketID,
		&booking.PDFPath,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, user_id, date, meal_type, persons, amount, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.UserID,
		booking.Date,
		booking.MealType,
		booking.Persons,
		booking.Amount,
		booking.Status,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
			zap.String("user_id", booking.UserID.String()),
		)
		return fmt.Errorf("create booking %s: %w", booking.ID.String(), err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find bookings by user ID %s: %w", userID.String(), err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

func (r *bookingRepository) FindAll(ctx context.Context, filter BookingFilter) ([]*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings`

	var conditions []string
	var args []any

	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.MealType != nil {
		args = append(args, *filter.MealType)
		conditions = append(conditions, fmt.Sprintf("meal_type = $%d", len(args)))
	}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		conditions = append(conditions, fmt.Sprintf("date >= $%d", len(args)))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		conditions = append(conditions, fmt.Sprintf("date <= $%d", len(args)))
	}

	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to list bookings", zap.Error(err))
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

func (r *bookingRepository) FindRecent(ctx context.Context, limit int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		r.log.Error("Failed to find recent bookings", zap.Error(err))
		return nil, fmt.Errorf("find recent bookings: %w", err)
	}
	defer rows.Close()

	return collectBookings(rows)
}

// UpdateStatusIf transitions status from -> to in a single conditional
// UPDATE. Returns false when the booking was not in the expected status,
// which the caller must treat as losing the race, not as an error.
func (r *bookingRepository) UpdateStatusIf(ctx context.Context, id uuid.UUID, from, to entity.BookingStatus) (bool, error) {
	query := `
		UPDATE bookings
		SET status = $3, updated_at = $4
		WHERE id = $1 AND status = $2
	`

	tag, err := r.db.Exec(ctx, query, id, from, to, time.Now())
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", id.String()),
			zap.String("from", string(from)),
			zap.String("to", string(to)),
		)
		return false, fmt.Errorf("update booking %s status: %w", id.String(), err)
	}

	return tag.RowsAffected() == 1, nil
}

// MarkPaid atomically moves a pending booking to paid and assigns its
// ticket ID. The status guard in the WHERE clause is what makes duplicate
// webhook deliveries and cancel/pay races safe.
func (r *bookingRepository) MarkPaid(ctx context.Context, id uuid.UUID, ticketID string) (bool, error) {
	query := `
		UPDATE bookings
		SET status = $2, ticket_id = $3, updated_at = $4
		WHERE id = $1 AND status = $5
	`

	tag, err := r.db.Exec(ctx, query, id, entity.BookingStatusPaid, ticketID, time.Now(), entity.BookingStatusPending)
	if err != nil {
		r.log.Error("Failed to mark booking paid",
			zap.Error(err),
			zap.String("booking_id", id.String()),
			zap.String("ticket_id", ticketID),
		)
		return false, fmt.Errorf("mark booking %s paid: %w", id.String(), err)
	}

	return tag.RowsAffected() == 1, nil
}

func (r *bookingRepository) SetPDFPath(ctx context.Context, id uuid.UUID, path string) error {
	query := `
		UPDATE bookings
		SET pdf_path = $2, updated_at = $3
		WHERE id = $1 AND pdf_path IS NULL
	`

	_, err := r.db.Exec(ctx, query, id, path, time.Now())
	if err != nil {
		r.log.Error("Failed to set booking PDF path",
			zap.Error(err),
			zap.String("booking_id", id.String()),
			zap.String("pdf_path", path),
		)
		return fmt.Errorf("set booking %s pdf path: %w", id.String(), err)
	}

	return nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.BookingStatus) error {
	query := `
		UPDATE bookings
		SET status = $2, updated_at = $3
		WHERE id = $1
	`

	tag, err := r.db.Exec(ctx, query, id, status, time.Now())
	if err != nil {
		r.log.Error("Failed to override booking status",
			zap.Error(err),
			zap.String("booking_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("override booking %s status: %w", id.String(), err)
	}
	if tag.RowsAffected() == 0 {
		return entity.ErrBookingNotFound
	}

	return nil
}

func (r *bookingRepository) CountByStatus(ctx context.Context) (map[entity.BookingStatus]int64, error) {
	query := `SELECT status, COUNT(*) FROM bookings GROUP BY status`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to count bookings by status", zap.Error(err))
		return nil, fmt.Errorf("count bookings by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[entity.BookingStatus]int64)
	for rows.Next() {
		var status entity.BookingStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan status count row: %w", err)
		}
		counts[status] = count
	}

	return counts, rows.Err()
}

func (r *bookingRepository) CountByMealType(ctx context.Context) (map[entity.MealType]int64, error) {
	query := `SELECT meal_type, COUNT(*) FROM bookings GROUP BY meal_type`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to count bookings by meal type", zap.Error(err))
		return nil, fmt.Errorf("count bookings by meal type: %w", err)
	}
	defer rows.Close()

	counts := make(map[entity.MealType]int64)
	for rows.Next() {
		var mealType entity.MealType
		var count int64
		if err := rows.Scan(&mealType, &count); err != nil {
			return nil, fmt.Errorf("scan meal type count row: %w", err)
		}
		counts[mealType] = count
	}

	return counts, rows.Err()
}

func (r *bookingRepository) SumPaidAmount(ctx context.Context) (int64, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM bookings WHERE status = $1`

	var total int64
	if err := r.db.QueryRow(ctx, query, entity.BookingStatusPaid).Scan(&total); err != nil {
		r.log.Error("Failed to sum paid amount", zap.Error(err))
		return 0, fmt.Errorf("sum paid amount: %w", err)
	}

	return total, nil
}

func collectBookings(rows pgx.Rows) ([]*entity.Booking, error) {
	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}
	return bookings, rows.Err()
}
