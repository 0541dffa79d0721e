package repository

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/2110503-CEDT68/be-project-68-group7/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Provider{}, &models.Car{}, &models.Booking{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedFleet(t *testing.T, db *gorm.DB) (models.Provider, models.Car) {
	t.Helper()
	p := models.Provider{
		Name:       "Rent-a-Car",
		Address:    "1 Main Rd",
		District:   "Pathumwan",
		Province:   "Bangkok",
		PostalCode: "10330",
		Region:     "Central",
	}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("seed provider: %v", err)
	}
	car := models.Car{
		LicensePlate: "AB-1234",
		Brand:        "Toyota",
		Model:        "Camry",
		Year:         2020,
		Color:        "White",
		Transmission: models.TransmissionAutomatic,
		FuelType:     models.FuelGasoline,
		Available:    true,
		ProviderID:   p.ID,
	}
	if err := db.Create(&car).Error; err != nil {
		t.Fatalf("seed car: %v", err)
	}
	return p, car
}

func seedBooking(t *testing.T, db *gorm.DB, userID, carID, providerID uint) models.Booking {
	t.Helper()
	b := models.Booking{Date: time.Now(), UserID: userID, CarID: carID, ProviderID: providerID}
	if err := db.Create(&b).Error; err != nil {
		t.Fatalf("seed booking: %v", err)
	}
	return b
}

func TestCarReserveIsConditional(t *testing.T) {
	db := newTestDB(t)
	cars := NewCarRepository(db)
	ctx := context.Background()
	_, car := seedFleet(t, db)

	ok, err := cars.Reserve(ctx, car.ID)
	if err != nil || !ok {
		t.Fatalf("first reserve = %v, %v; want true, nil", ok, err)
	}

	ok, err = cars.Reserve(ctx, car.ID)
	if err != nil {
		t.Fatalf("second reserve: %v", err)
	}
	if ok {
		t.Fatal("second reserve succeeded on an unavailable car")
	}

	if err := cars.Release(ctx, car.ID); err != nil {
		t.Fatalf("release: %v", err)
	}
	ok, err = cars.Reserve(ctx, car.ID)
	if err != nil || !ok {
		t.Fatalf("reserve after release = %v, %v; want true, nil", ok, err)
	}
}

func TestCarDeleteCascadesBookings(t *testing.T) {
	db := newTestDB(t)
	cars := NewCarRepository(db)
	ctx := context.Background()
	p, car := seedFleet(t, db)
	seedBooking(t, db, 1, car.ID, p.ID)
	seedBooking(t, db, 2, car.ID, p.ID)

	if err := cars.DeleteCascade(ctx, car.ID); err != nil {
		t.Fatalf("DeleteCascade: %v", err)
	}

	var count int64
	db.Model(&models.Booking{}).Where("car_id = ?", car.ID).Count(&count)
	if count != 0 {
		t.Errorf("%d bookings still reference deleted car", count)
	}
	if err := db.First(&models.Car{}, car.ID).Error; !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("car still present: %v", err)
	}
}

func TestProviderDeleteCascadesBookingsOnly(t *testing.T) {
	db := newTestDB(t)
	providers := NewProviderRepository(db)
	ctx := context.Background()
	p, car := seedFleet(t, db)
	seedBooking(t, db, 1, car.ID, p.ID)

	if err := providers.DeleteCascade(ctx, p.ID); err != nil {
		t.Fatalf("DeleteCascade: %v", err)
	}

	var count int64
	db.Model(&models.Booking{}).Where("provider_id = ?", p.ID).Count(&count)
	if count != 0 {
		t.Errorf("%d bookings still reference deleted provider", count)
	}
	if err := db.First(&models.Provider{}, p.ID).Error; !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("provider still present: %v", err)
	}

	// Cars survive with a dangling provider reference.
	var survivor models.Car
	if err := db.First(&survivor, car.ID).Error; err != nil {
		t.Fatalf("car should survive provider delete: %v", err)
	}
	if survivor.ProviderID != p.ID {
		t.Errorf("car provider_id = %d, want dangling %d", survivor.ProviderID, p.ID)
	}
}

func TestCarListProjectionKeepsKeysAndJoins(t *testing.T) {
	db := newTestDB(t)
	cars := NewCarRepository(db)
	ctx := context.Background()
	p, car := seedFleet(t, db)
	seedBooking(t, db, 1, car.ID, p.ID)

	opts := ListOptions{
		Page:    1,
		Limit:   25,
		Order:   "created_at DESC",
		Selects: []string{"brand"},
	}
	result, _, err := cars.List(ctx, opts)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(result) != 1 {
		t.Fatalf("len = %d, want 1", len(result))
	}

	got := result[0]
	if got.Brand != "Toyota" {
		t.Errorf("brand = %q, want the selected field populated", got.Brand)
	}
	if got.ID == 0 {
		t.Error("projection dropped the primary key")
	}
	if got.Provider == nil || got.Provider.Name != "Rent-a-Car" {
		t.Errorf("projection broke the provider join: %+v", got.Provider)
	}
	if len(got.Bookings) != 1 {
		t.Errorf("projection broke the bookings join: %d", len(got.Bookings))
	}
}

func TestWithKeys(t *testing.T) {
	// No projection means no change: the full row is loaded anyway.
	opts := ListOptions{}.WithKeys("id")
	if len(opts.Selects) != 0 {
		t.Errorf("selects = %v, want none without a projection", opts.Selects)
	}

	opts = ListOptions{Selects: []string{"brand"}}.WithKeys("id", "provider_id")
	if !reflect.DeepEqual(opts.Selects, []string{"brand", "id", "provider_id"}) {
		t.Errorf("selects = %v", opts.Selects)
	}

	// Already-selected keys are not duplicated.
	opts = ListOptions{Selects: []string{"id", "brand"}}.WithKeys("id")
	if !reflect.DeepEqual(opts.Selects, []string{"id", "brand"}) {
		t.Errorf("selects = %v", opts.Selects)
	}
}

func TestCarListFiltersAndPages(t *testing.T) {
	db := newTestDB(t)
	cars := NewCarRepository(db)
	ctx := context.Background()
	p, _ := seedFleet(t, db)

	for i, spec := range []struct {
		plate string
		year  int
		fuel  models.FuelType
	}{
		{"EV-1", 2023, models.FuelElectric},
		{"EV-2", 2024, models.FuelElectric},
		{"GS-1", 2015, models.FuelGasoline},
	} {
		car := models.Car{
			LicensePlate: spec.plate,
			Brand:        "Brand",
			Model:        "Model",
			Year:         spec.year,
			Color:        "Black",
			Transmission: models.TransmissionManual,
			FuelType:     spec.fuel,
			Available:    true,
			ProviderID:   p.ID,
		}
		if err := db.Create(&car).Error; err != nil {
			t.Fatalf("seed car %d: %v", i, err)
		}
	}

	opts := ListOptions{
		Page:  1,
		Limit: 25,
		Order: "year ASC",
		Filters: []Filter{
			{Column: "year", Op: ">=", Value: "2023"},
			{Column: "fuel_type", Op: "IN", Value: []string{"Electric", "Hybrid"}},
		},
	}
	result, total, err := cars.List(ctx, opts)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 4 {
		t.Errorf("total = %d, want unfiltered 4", total)
	}
	if len(result) != 2 {
		t.Fatalf("len = %d, want 2 electric cars", len(result))
	}
	if result[0].LicensePlate != "EV-1" || result[1].LicensePlate != "EV-2" {
		t.Errorf("order wrong: %s, %s", result[0].LicensePlate, result[1].LicensePlate)
	}
	if result[0].Provider == nil || result[0].Provider.Name != "Rent-a-Car" {
		t.Errorf("provider not joined: %+v", result[0].Provider)
	}
}
