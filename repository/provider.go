package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/2110503-CEDT68/be-project-68-group7/models"
)

type ProviderRepository struct {
	db *gorm.DB
}

func NewProviderRepository(db *gorm.DB) *ProviderRepository {
	return &ProviderRepository{db: db}
}

// List returns one page of providers plus the unfiltered total, which the
// pagination hints are computed from.
func (r *ProviderRepository) List(ctx context.Context, opts ListOptions) ([]models.Provider, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Provider{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var providers []models.Provider
	q := opts.WithKeys("id").Apply(r.db.WithContext(ctx).Model(&models.Provider{}))
	if err := q.Offset(opts.Offset()).Limit(opts.Limit).Find(&providers).Error; err != nil {
		return nil, 0, err
	}
	return providers, total, nil
}

func (r *ProviderRepository) FindByID(ctx context.Context, id uint) (*models.Provider, error) {
	var p models.Provider
	if err := r.db.WithContext(ctx).Preload("Bookings").First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProviderRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Provider{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *ProviderRepository) Create(ctx context.Context, p *models.Provider) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProviderRepository) Update(ctx context.Context, id uint, updates map[string]any) (*models.Provider, error) {
	if len(updates) > 0 {
		res := r.db.WithContext(ctx).Model(&models.Provider{}).Where("id = ?", id).Updates(updates)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}
	var p models.Provider
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// DeleteCascade removes the provider and every booking referencing it in
// one transaction. Cars owned by the provider are NOT deleted and keep
// their provider_id pointing at the removed row, matching the reference
// behavior; see DESIGN.md for the open-question resolution.
func (r *ProviderRepository) DeleteCascade(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("provider_id = ?", id).Delete(&models.Booking{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Provider{}, id).Error
	})
}
