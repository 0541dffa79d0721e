package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/2110503-CEDT68/be-project-68-group7/models"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) FindByID(ctx context.Context, id uint) (*models.Booking, error) {
	var b models.Booking
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// FindDetailed loads a booking with its car and the car's provider joined
// in, the shape every read response uses.
func (r *BookingRepository) FindDetailed(ctx context.Context, id uint) (*models.Booking, error) {
	var b models.Booking
	err := r.db.WithContext(ctx).Preload("Car").Preload("Car.Provider").First(&b, id).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// List returns detailed bookings, optionally narrowed by user, car or
// provider. Zero values mean no restriction on that axis.
func (r *BookingRepository) List(ctx context.Context, userID, carID, providerID uint) ([]models.Booking, error) {
	q := r.db.WithContext(ctx).Preload("Car").Preload("Car.Provider")
	if userID != 0 {
		q = q.Where("user_id = ?", userID)
	}
	if carID != 0 {
		q = q.Where("car_id = ?", carID)
	}
	if providerID != 0 {
		q = q.Where("provider_id = ?", providerID)
	}

	var bookings []models.Booking
	if err := q.Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *BookingRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Booking{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *BookingRepository) Create(ctx context.Context, b *models.Booking) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BookingRepository) Save(ctx context.Context, b *models.Booking) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *BookingRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Booking{}, id).Error
}
