// Package booking handles repair-booking intake, ticket tracking and admin
// status updates.
package booking

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"gorm.io/gorm"

	"github.com/supercomputers/shopd/internal/domain"
	"github.com/supercomputers/shopd/pkg/common"
)

// TicketPrefix is the reference-code prefix for repair bookings.
const TicketPrefix = "TF"

// ticketPattern matches queries that look like a ticket ID rather than a
// phone number: "TF", four digits, a hyphen.
var ticketPattern = regexp.MustCompile(`^(?i)TF\d{4}-`)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// IntakeInput is the public booking form.
type IntakeInput struct {
	DeviceType   string `json:"device_type"`
	DateSlot     string `json:"date_slot"`
	Description  string `json:"description"`
	ContactPhone string `json:"contact_phone"`
}

// UpdateInput is the admin partial update. Estimate and final amount are
// tri-state: omitted, empty or null resets the value to nil.
type UpdateInput struct {
	Status      common.Field `json:"status"`
	Estimate    common.Field `json:"estimate"`
	FinalAmount common.Field `json:"finalAmount"`
}

// Book validates the intake form, mints a ticket ID and persists the booking
// with status Pending. The ticket ID is the customer's tracking reference.
func (s *Service) Book(ctx context.Context, in IntakeInput) (*domain.Booking, error) {
	deviceType := strings.TrimSpace(in.DeviceType)
	dateSlot := strings.TrimSpace(in.DateSlot)
	description := strings.TrimSpace(in.Description)
	contactPhone := strings.TrimSpace(in.ContactPhone)
	if deviceType == "" || dateSlot == "" || description == "" || contactPhone == "" {
		return nil, common.Invalidf("", "Missing fields")
	}

	now := time.Now()
	record := domain.Booking{
		ID:           common.UUIDint64(),
		TicketID:     common.NewRefID(TicketPrefix, true),
		DeviceType:   deviceType,
		DateSlot:     dateSlot,
		Description:  description,
		ContactPhone: contactPhone,
		Status:       domain.BookingStatusPending,
		Estimate:     nil,
		FinalAmount:  nil,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, errors.Wrap(err, "create booking")
	}
	return &record, nil
}

// Track resolves a trimmed query to at most one booking. A query matching the
// ticket pattern is uppercased and looked up by ticket ID; anything else is
// treated as a phone number and matched exactly, with no normalization of
// phone formatting. When several bookings share a phone number, the oldest
// one wins.
func (s *Service) Track(ctx context.Context, query string) (*domain.Booking, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, common.Invalidf("phone", "Phone or Ticket ID required")
	}

	tx := s.db.WithContext(ctx)
	if ticketPattern.MatchString(query) {
		tx = tx.Where("ticket_id = ?", strings.ToUpper(query))
	} else {
		tx = tx.Where("contact_phone = ?", query)
	}

	var record domain.Booking
	if err := tx.Order("id ASC").First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, errors.Wrap(err, "query booking")
	}
	return &record, nil
}

// Update applies an admin status/estimate/final-amount update by internal id.
func (s *Service) Update(ctx context.Context, id int64, in UpdateInput) (*domain.Booking, error) {
	var record domain.Booking
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, errors.Wrap(err, "query booking")
	}

	if status := strings.TrimSpace(cast.ToString(in.Status.Value())); status != "" {
		record.Status = status
	}

	estimate, err := coerceAmount(in.Estimate, "estimate")
	if err != nil {
		return nil, err
	}
	record.Estimate = estimate

	finalAmount, err := coerceAmount(in.FinalAmount, "finalAmount")
	if err != nil {
		return nil, err
	}
	record.FinalAmount = finalAmount

	record.UpdatedAt = time.Now()
	if err := s.db.WithContext(ctx).Save(&record).Error; err != nil {
		return nil, errors.Wrap(err, "update booking")
	}
	return &record, nil
}

// ListRecent returns the newest bookings for the admin panel.
func (s *Service) ListRecent(ctx context.Context, limit int) ([]domain.Booking, error) {
	items := make([]domain.Booking, 0)
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, errors.Wrap(err, "list bookings")
	}
	return items, nil
}

// coerceAmount maps omitted, empty or null to nil and anything else to a
// number.
func coerceAmount(f common.Field, field string) (*float64, error) {
	if !f.Present() || f.Blank() {
		return nil, nil
	}
	v, err := cast.ToFloat64E(f.Value())
	if err != nil {
		return nil, common.Invalidf(field, "must be a number")
	}
	return &v, nil
}
