package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/2110503-CEDT68/be-project-68-group7/logger"
	"github.com/2110503-CEDT68/be-project-68-group7/models"
)

// maxBookingsPerUser caps concurrent bookings for non-admin users.
const maxBookingsPerUser = 3

// Identity is the authenticated requester a workflow operation runs as.
type Identity struct {
	UserID uint
	Role   models.Role
}

func (id Identity) IsAdmin() bool { return id.Role == models.RoleAdmin }

// CarStore is the slice of car persistence the workflow needs. Reserve is
// the atomic available true->false flip; a false result means the car was
// already taken.
type CarStore interface {
	FindByID(ctx context.Context, id uint) (*models.Car, error)
	Reserve(ctx context.Context, id uint) (bool, error)
	Release(ctx context.Context, id uint) error
}

type BookingStore interface {
	FindByID(ctx context.Context, id uint) (*models.Booking, error)
	FindDetailed(ctx context.Context, id uint) (*models.Booking, error)
	List(ctx context.Context, userID, carID, providerID uint) ([]models.Booking, error)
	CountByUser(ctx context.Context, userID uint) (int64, error)
	Create(ctx context.Context, b *models.Booking) error
	Save(ctx context.Context, b *models.Booking) error
	Delete(ctx context.Context, id uint) error
}

// BookingService owns the booking lifecycle and keeps car availability
// consistent with it: a car is unavailable exactly while a live booking
// references it, and no other code path touches the flag.
type BookingService struct {
	cars     CarStore
	bookings BookingStore
}

func NewBookingService(cars CarStore, bookings BookingStore) *BookingService {
	return &BookingService{cars: cars, bookings: bookings}
}

// UpdateInput carries the fields a booking update may change. Nil means
// leave as is.
type UpdateInput struct {
	Date  *time.Time
	CarID *uint
}

// List returns the requester's bookings. Admins see everything and may
// narrow by car or provider; for anyone else the filters are ignored and
// the result is scoped to their own bookings.
func (s *BookingService) List(ctx context.Context, who Identity, carID, providerID uint) ([]models.Booking, error) {
	if !who.IsAdmin() {
		return s.bookings.List(ctx, who.UserID, 0, 0)
	}
	return s.bookings.List(ctx, 0, carID, providerID)
}

func (s *BookingService) Get(ctx context.Context, who Identity, id uint) (*models.Booking, error) {
	b, err := s.bookings.FindDetailed(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if b.UserID != who.UserID && !who.IsAdmin() {
		return nil, ErrNotOwner
	}
	return b, nil
}

// Create books a car for the requester. Checks run in order: the car must
// exist, must be reservable, and the requester must be under quota (admins
// are exempt). The reservation happens before the quota check so a racing
// second request can never also pass the availability test; a quota failure
// hands the car back.
func (s *BookingService) Create(ctx context.Context, who Identity, carID uint, date time.Time) (*models.Booking, error) {
	car, err := s.cars.FindByID(ctx, carID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCarNotFound
		}
		return nil, err
	}

	ok, err := s.cars.Reserve(ctx, car.ID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrCarUnavailable
	}

	count, err := s.bookings.CountByUser(ctx, who.UserID)
	if err != nil {
		s.releaseOrLog(ctx, car.ID)
		return nil, err
	}
	if count >= maxBookingsPerUser && !who.IsAdmin() {
		s.releaseOrLog(ctx, car.ID)
		return nil, ErrQuotaExceeded
	}

	b := &models.Booking{
		Date:       date,
		UserID:     who.UserID,
		CarID:      car.ID,
		ProviderID: car.ProviderID,
	}
	if err := s.bookings.Create(ctx, b); err != nil {
		s.releaseOrLog(ctx, car.ID)
		return nil, err
	}

	return s.bookings.FindDetailed(ctx, b.ID)
}

// releaseOrLog hands a reserved car back after an aborted booking. The
// caller is already returning its own error, so a failed hand-back is
// logged rather than returned; the car would otherwise stay unavailable
// with no trace.
func (s *BookingService) releaseOrLog(ctx context.Context, carID uint) {
	if err := s.cars.Release(ctx, carID); err != nil {
		logger.GetLogger().Warn("failed to release car after aborted booking",
			zap.Uint("car_id", carID),
			zap.Error(err))
	}
}

// Update changes a booking's date and/or car. Moving the booking reserves
// the new car first, then releases the old one and rewrites the
// denormalized provider, so the two flags can never both end up unset.
func (s *BookingService) Update(ctx context.Context, who Identity, id uint, in UpdateInput) (*models.Booking, error) {
	b, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if b.UserID != who.UserID && !who.IsAdmin() {
		return nil, ErrNotOwner
	}

	if in.CarID != nil && *in.CarID != b.CarID {
		newCar, err := s.cars.FindByID(ctx, *in.CarID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// The reference reports a missing replacement car the same
				// way as an occupied one.
				return nil, ErrCarUnavailable
			}
			return nil, err
		}

		ok, err := s.cars.Reserve(ctx, newCar.ID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrCarUnavailable
		}

		if err := s.cars.Release(ctx, b.CarID); err != nil {
			return nil, err
		}
		b.CarID = newCar.ID
		b.ProviderID = newCar.ProviderID
	}

	if in.Date != nil {
		b.Date = *in.Date
	}

	if err := s.bookings.Save(ctx, b); err != nil {
		return nil, err
	}
	return s.bookings.FindDetailed(ctx, b.ID)
}

// Delete removes a booking and hands its car back.
func (s *BookingService) Delete(ctx context.Context, who Identity, id uint) error {
	b, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBookingNotFound
		}
		return err
	}
	if b.UserID != who.UserID && !who.IsAdmin() {
		return ErrNotOwner
	}

	if err := s.cars.Release(ctx, b.CarID); err != nil {
		return err
	}
	return s.bookings.Delete(ctx, b.ID)
}
