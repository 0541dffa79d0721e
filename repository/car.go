package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/2110503-CEDT68/be-project-68-group7/models"
)

type CarRepository struct {
	db *gorm.DB
}

func NewCarRepository(db *gorm.DB) *CarRepository {
	return &CarRepository{db: db}
}

func (r *CarRepository) List(ctx context.Context, opts ListOptions) ([]models.Car, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Car{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var cars []models.Car
	q := opts.WithKeys("id", "provider_id").Apply(r.db.WithContext(ctx).Model(&models.Car{}))
	err := q.Preload("Provider").Preload("Bookings").
		Offset(opts.Offset()).Limit(opts.Limit).Find(&cars).Error
	if err != nil {
		return nil, 0, err
	}
	return cars, total, nil
}

func (r *CarRepository) FindByID(ctx context.Context, id uint) (*models.Car, error) {
	var car models.Car
	if err := r.db.WithContext(ctx).Preload("Provider").Preload("Bookings").First(&car, id).Error; err != nil {
		return nil, err
	}
	return &car, nil
}

func (r *CarRepository) Create(ctx context.Context, car *models.Car) error {
	return r.db.WithContext(ctx).Create(car).Error
}

func (r *CarRepository) Update(ctx context.Context, id uint, updates map[string]any) (*models.Car, error) {
	if len(updates) > 0 {
		res := r.db.WithContext(ctx).Model(&models.Car{}).Where("id = ?", id).Updates(updates)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}
	return r.FindByID(ctx, id)
}

// Reserve flips available true -> false as one conditional update. A false
// return with nil error means somebody else holds the car; two concurrent
// bookings can never both see it available.
func (r *CarRepository) Reserve(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.Car{}).
		Where("id = ? AND available = ?", id, true).
		Update("available", false)
	return res.RowsAffected > 0, res.Error
}

// Release marks the car available again.
func (r *CarRepository) Release(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&models.Car{}).
		Where("id = ?", id).
		Update("available", true).Error
}

// DeleteCascade removes the car and every booking referencing it in one
// transaction.
func (r *CarRepository) DeleteCascade(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("car_id = ?", id).Delete(&models.Booking{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Car{}, id).Error
	})
}
